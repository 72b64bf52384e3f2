package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/veska/flashpad/internal/chip"
	"github.com/veska/flashpad/internal/config"
	"github.com/veska/flashpad/internal/flashrom"
	"github.com/veska/flashpad/internal/logging"
	"github.com/veska/flashpad/internal/pad"
	"github.com/veska/flashpad/internal/romfile"
	"github.com/veska/flashpad/internal/ui"
	"github.com/veska/flashpad/internal/urls"
)

// Command flags
var (
	programmerFlag string
	flashromPath   string
	opTimeout      string
	verbose        bool // Show raw flashrom output
	chipFlag       string
	readOutput     string
	noStrip        bool
	writeImage     string
	noPad          bool
	forceWrite     bool
	infoScan       bool
	padTarget      string
	convertOutput  string
)

func init() {
	// Common flags for all commands (persistent on root)
	rootCmd.PersistentFlags().StringVarP(&programmerFlag, "programmer", "p", "", "flashrom programmer (e.g., ch341a_spi)")
	rootCmd.PersistentFlags().StringVar(&flashromPath, "flashrom-path", "", "Path to flashrom binary (default: search PATH)")
	rootCmd.PersistentFlags().StringVar(&opTimeout, "timeout", "10m", "flashrom operation timeout (e.g., 30s, 5m, 1h)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed flashrom output")

	// Add subcommands
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(programmersCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(padCmd)
	rootCmd.AddCommand(convertCmd)
}

// printFailure renders a failure box, and in verbose mode also the raw
// flashrom output captured from the failed invocation.
func printFailure(title string, err error, troubleshooting []string) {
	ui.PrintFailure(title, err, troubleshooting)

	var execErr *flashrom.ExecutionError
	if verbose && errors.As(err, &execErr) {
		output := execErr.Stdout
		if execErr.Stderr != "" {
			output += execErr.Stderr
		}
		if output != "" {
			ui.PrintToolOutput(output)
		}
	}
}

// loadPreferences loads the config registry, tolerating a missing or
// broken config file so chip commands still work.
func loadPreferences() *config.Registry {
	registry, err := config.LoadRegistry()
	if err != nil {
		logging.Warn("failed to load config, using defaults")
		return config.NewRegistry()
	}
	return registry
}

// resolveFlashromPath returns the flashrom binary to use, with the
// --flashrom-path flag winning over the configured preference.
func resolveFlashromPath() string {
	if flashromPath != "" {
		return flashromPath
	}
	registry := loadPreferences()
	if registry.Preferences.FlashromPath != "" {
		return registry.Preferences.FlashromPath
	}
	return flashrom.DefaultConfig().FlashromPath
}

// createExecutor creates a flashrom executor from flags and preferences.
// Flag values win over configured preferences.
func createExecutor(registry *config.Registry) (*flashrom.Executor, error) {
	timeout, err := time.ParseDuration(opTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout value: %w", err)
	}

	cfg := flashrom.DefaultConfig()
	cfg.Timeout = timeout
	cfg.Programmer = registry.ResolveProgrammer(programmerFlag)

	if flashromPath != "" {
		cfg.FlashromPath = flashromPath
	} else if registry.Preferences.FlashromPath != "" {
		cfg.FlashromPath = registry.Preferences.FlashromPath
	}
	if registry.Preferences.ScratchDir != "" {
		cfg.ScratchDir = registry.Preferences.ScratchDir
	}

	initLogging()

	return flashrom.NewExecutor(cfg, logging.GetLogger()), nil
}

// initLogging sets up logging once per command. --verbose forces debug
// level; otherwise the FLASHPAD_LOG_LEVEL environment variable decides
// (silent by default).
func initLogging() {
	var err error
	if verbose {
		err = logging.Initialize("debug")
	} else {
		err = logging.InitializeFromEnv()
	}
	// Ignore error, GetLogger will create fallback logger
	_ = err
}

// styledStepCallback converts flashrom workflow step updates into styled
// step lines printed as the workflow runs.
func styledStepCallback(step flashrom.Step) {
	var status ui.StepStatus
	switch step.Status {
	case "success":
		status = ui.StepComplete
	case "failed":
		status = ui.StepFailed
	case "skipped":
		status = ui.StepSkipped
	case "in_progress":
		status = ui.StepRunning
	default:
		status = ui.StepPending
	}

	ui.PrintStep(ui.Step{
		Name:    step.Name,
		Status:  status,
		Message: step.Message,
	})
}

// resolveChip determines which chip to operate on. If the --chip flag is
// set it is used directly; otherwise the chip is probed, with an
// interactive picker when the probe matches several models.
func resolveChip(ctx context.Context, executor *flashrom.Executor) (string, error) {
	if chipFlag != "" {
		return chipFlag, nil
	}

	ui.PrintPleaseWait("Probing for flash chip", "this may take up to 30 seconds")
	chips, err := executor.Probe(ctx)
	if err != nil {
		return "", err
	}

	if len(chips) == 1 {
		fmt.Println("  " + ui.StepCompleteStyle.Render("Found chip: "+chips[0]) + "  " + ui.StepCompleteStyle.Render(ui.StepMarkerComplete))
		fmt.Println()
		return chips[0], nil
	}

	catalog, err := chip.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load chip catalog: %w", err)
	}

	selected, err := ui.SelectChip(chips, catalog)
	if err != nil {
		return "", err
	}
	if selected == "" {
		return "", fmt.Errorf("no chip selected")
	}
	return selected, nil
}

// recordSuccess persists the programmer and chip that just worked so
// subsequent commands can default to them. Best effort.
func recordSuccess(registry *config.Registry, executor *flashrom.Executor, chipName string) {
	programmer := executor.Config().Programmer
	if programmer == "" {
		return
	}
	registry.RecordOperation(programmer, chipName)
	if err := registry.Save(); err != nil {
		logging.Warn("failed to save config")
	}
}

// probeCmd implements the 'probe' command
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe for a flash chip",
	Long: `Probe the programmer for an attached flash chip.

This command asks flashrom to identify the chip connected to the
programmer. When several chip models share an identifier, all matches
are listed with catalog details (vendor, capacity, voltage) to help
pick the right one.

A failed probe usually means a wiring or power problem, not a missing
chip. Check the clip seating and the chip's supply voltage first.`,
	Example: `  # Probe with a CH341A programmer
  flashpad probe --programmer ch341a_spi

  # Probe via Raspberry Pi SPI
  flashpad probe --programmer linux_spi:dev=/dev/spidev0.0,spispeed=1000`,
	RunE: runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	// Suppress usage on execution errors (we're past argument parsing)
	cmd.SilenceUsage = true

	registry := loadPreferences()
	executor, err := createExecutor(registry)
	if err != nil {
		printFailure("Probe failed", err, nil)
		return err
	}

	ui.PrintCommandHeader(
		"Chip Probe",
		"flashpad probe",
		map[string]string{
			"Programmer": executor.Config().Programmer,
			"Flashrom":   executor.Config().FlashromPath,
		},
	)

	ctx := context.Background()

	if err := executor.ValidateConfig(ctx); err != nil {
		printFailure("Probe failed", err, []string{
			"Install flashrom: " + urls.FlashromInstall,
			"Select a programmer with --programmer",
			"List programmers: flashpad programmers",
		})
		return err
	}

	ui.PrintPleaseWait("Probing for flash chip", "this may take up to 30 seconds")
	chips, err := executor.Probe(ctx)
	if err != nil {
		printFailure("Probe failed", err, []string{
			"Check clip seating and wiring",
			"Verify the chip's supply voltage",
			"Supported chips: " + urls.SupportedHardware,
			"In-system programming guide: " + urls.InSystemProgramming,
			"Run with --verbose for full flashrom output",
		})
		return err
	}

	// Annotate matches from the catalog
	catalog, catErr := chip.Load()
	details := make(map[string]string, len(chips))
	for i, name := range chips {
		value := "not in catalog"
		if catErr == nil {
			if c, ok := catalog.Get(name); ok {
				value = fmt.Sprintf("%s, %s, %s, %s", c.Vendor, chip.FormatSize(c.SizeBytes), c.Bus, c.Voltage())
			}
		}
		details[fmt.Sprintf("Match %d: %s", i+1, name)] = value
	}

	title := "Chip found"
	if len(chips) > 1 {
		title = fmt.Sprintf("%d chip models matched", len(chips))
	}
	ui.PrintSuccess(title, details)

	if len(chips) > 1 {
		ui.PrintWarning("Ambiguous probe", map[string]string{
			"Reason": "Several chip models share this identifier",
			"Action": "Pass --chip <name> to read/write/info commands",
		})
	}

	recordSuccess(registry, executor, chips[0])
	return nil
}

// programmersCmd implements the 'programmers' command
var programmersCmd = &cobra.Command{
	Use:   "programmers",
	Short: "List available programmers",
	Long: `List the programmer drivers this flashrom build supports.

Programmer names are passed to other commands via --programmer. Many
take parameters after a colon, e.g.:

  linux_spi:dev=/dev/spidev0.0,spispeed=1000
  ft2232_spi:type=232H`,
	Example: `  # List programmers
  flashpad programmers`,
	RunE: runProgrammers,
}

func runProgrammers(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	registry := loadPreferences()
	executor, err := createExecutor(registry)
	if err != nil {
		printFailure("Listing programmers failed", err, nil)
		return err
	}

	ui.PrintCommandHeader(
		"Programmers",
		"flashpad programmers",
		map[string]string{
			"Flashrom": executor.Config().FlashromPath,
		},
	)

	ctx := context.Background()
	programmers, err := executor.Programmers(ctx)
	if err != nil {
		printFailure("Listing programmers failed", err, []string{
			"Install flashrom: " + urls.FlashromInstall,
			"Check --flashrom-path if flashrom is not in PATH",
		})
		return err
	}

	fmt.Println()
	for _, name := range programmers {
		line := "  " + ui.ResultValueStyle.Render(name)
		if desc, ok := config.CommonProgrammerDescriptions[name]; ok {
			line += "  " + ui.StepNoteStyle.Render("("+desc+")")
		}
		fmt.Println(line)
	}

	ui.PrintSuccess("Programmers listed", map[string]string{
		"Count":   fmt.Sprintf("%d", len(programmers)),
		"Details": urls.SupportedProgrammers,
	})
	return nil
}

// readCmd implements the 'read' command
var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read a flash chip to a file",
	Long: `Read the full contents of a flash chip into a file.

After a successful read, trailing erased-flash bytes (0xFF) are removed
from the dump so it holds only meaningful content. Use --no-strip to
keep the full chip-sized dump. Writing the dump back later works either
way: the write command pads images to the chip size.

If --chip is not given, the chip is probed first; an interactive picker
appears when several models match.`,
	Example: `  # Read a chip, stripping trailing padding
  flashpad read --programmer ch341a_spi --output dump.bin

  # Keep the full chip-sized dump
  flashpad read --programmer ch341a_spi --output dump.bin --no-strip

  # Skip probing when the chip is known
  flashpad read --programmer ch341a_spi --chip W25Q64.V --output dump.bin`,
	RunE: runRead,
}

func init() {
	readCmd.Flags().StringVar(&chipFlag, "chip", "", "Chip name (default: probe)")
	readCmd.Flags().StringVarP(&readOutput, "output", "o", "", "Output file (required)")
	readCmd.Flags().BoolVar(&noStrip, "no-strip", false, "Keep trailing erased-flash padding in the dump")
	readCmd.MarkFlagRequired("output")
}

func runRead(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	registry := loadPreferences()
	executor, err := createExecutor(registry)
	if err != nil {
		printFailure("Chip read failed", err, nil)
		return err
	}

	strip := registry.Preferences.StripAfterRead && !noStrip

	ui.PrintCommandHeader(
		"Chip Read",
		"flashpad read",
		map[string]string{
			"Programmer": executor.Config().Programmer,
			"Output":     readOutput,
			"Strip":      fmt.Sprintf("%t", strip),
		},
	)

	ctx := context.Background()
	chipName, err := resolveChip(ctx, executor)
	if err != nil {
		printFailure("Chip read failed", err, []string{
			"Check clip seating and wiring",
			"Try: flashpad probe",
		})
		return err
	}

	ui.PrintPleaseWait("Reading chip", "this may take several minutes")
	start := time.Now()
	result, err := flashrom.ReadROM(ctx, flashrom.ReadOptions{
		Executor:     executor,
		Chip:         chipName,
		OutputPath:   readOutput,
		StripPadding: strip,
		OnProgress:   styledStepCallback,
	})
	if err != nil {
		printFailure("Chip read failed", err, []string{
			"Verify the programmer is still connected",
			"Run with --verbose for full flashrom output",
			"Troubleshooting: " + urls.TroubleshootingGuide,
		})
		return err
	}

	details := map[string]string{
		"Chip":     chipName,
		"Output":   result.OutputPath,
		"Size":     chip.FormatSize(result.BytesRead),
		"Duration": time.Since(start).Round(time.Second).String(),
	}
	if strip {
		details["Padding Removed"] = chip.FormatSize(result.PaddingRemoved)
		details["Content"] = chip.FormatSize(result.BytesRead - result.PaddingRemoved)
	}
	logging.LogROMFile(result.OutputPath, result.BytesRead-result.PaddingRemoved, "read")
	ui.PrintSuccess("Chip read complete", details)

	recordSuccess(registry, executor, chipName)
	return nil
}

// writeCmd implements the 'write' command
var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write an image to a flash chip",
	Long: `Write an image file onto a flash chip.

Raw binary and Intel HEX images are accepted; HEX images are converted
to raw binary first, with address gaps filled with erased-flash bytes.
Images smaller than the chip are padded to the chip size with 0xFF, so
dumps stripped by 'flashpad read' flash back unchanged. All conversion
and padding happens on a scratch copy; the input file is not modified.

Writing overwrites the entire chip. The command asks for confirmation
before touching the flash; --force skips the prompt for scripted use.`,
	Example: `  # Write a stripped dump back (padded to chip size automatically)
  flashpad write --programmer ch341a_spi --chip W25Q64.V --image dump.bin

  # Flash an Intel HEX image
  flashpad write --programmer ch341a_spi --chip W25Q64.V --image firmware.hex

  # Non-interactive write
  flashpad write --programmer ch341a_spi --chip W25Q64.V --image dump.bin --force`,
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringVar(&chipFlag, "chip", "", "Chip name (default: probe)")
	writeCmd.Flags().StringVarP(&writeImage, "image", "i", "", "Image file to flash (required)")
	writeCmd.Flags().BoolVar(&noPad, "no-pad", false, "Do not pad the image to the chip size")
	writeCmd.Flags().BoolVar(&forceWrite, "force", false, "Skip the confirmation prompt")
	writeCmd.MarkFlagRequired("image")
}

func runWrite(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	registry := loadPreferences()
	executor, err := createExecutor(registry)
	if err != nil {
		printFailure("Chip write failed", err, nil)
		return err
	}

	padImage := registry.Preferences.PadOnWrite && !noPad

	ui.PrintCommandHeader(
		"Chip Write",
		"flashpad write",
		map[string]string{
			"Programmer": executor.Config().Programmer,
			"Image":      writeImage,
			"Pad":        fmt.Sprintf("%t", padImage),
		},
	)

	// Show what's about to be flashed before asking for confirmation
	summary, err := romfile.Inspect(writeImage)
	if err != nil {
		printFailure("Chip write failed", err, []string{
			"Check the image path",
		})
		return err
	}
	fmt.Println("  " + ui.ResultKeyStyle.Render("Format") + ui.ResultValueStyle.Render(summary.Format.String()))
	fmt.Println("  " + ui.ResultKeyStyle.Render("Image size") + ui.ResultValueStyle.Render(chip.FormatSize(summary.Size)))
	logging.LogROMFile(writeImage, summary.Size, "write")

	ctx := context.Background()
	chipName, err := resolveChip(ctx, executor)
	if err != nil {
		printFailure("Chip write failed", err, []string{
			"Check clip seating and wiring",
			"Try: flashpad probe",
		})
		return err
	}

	if !forceWrite && !ui.FlashWriteConfirmation() {
		return nil // User cancelled
	}

	ui.PrintPleaseWait("Writing chip", "this may take several minutes")
	start := time.Now()
	result, err := flashrom.WriteROM(ctx, flashrom.WriteOptions{
		Executor:      executor,
		Chip:          chipName,
		ImagePath:     writeImage,
		PadToChipSize: padImage,
		OnProgress:    styledStepCallback,
	})
	if err != nil {
		printFailure("Chip write failed", err, []string{
			"The chip may be partially written - do not power the target",
			"Verify the programmer is still connected",
			"Check write protection: flashpad info",
			"Run with --verbose for full flashrom output",
		})
		return err
	}

	details := map[string]string{
		"Chip":     chipName,
		"Image":    writeImage,
		"Duration": time.Since(start).Round(time.Second).String(),
		"Verify":   "Passed (flashrom verifies after write)",
	}
	if result.Converted {
		details["Converted"] = "Intel HEX to raw binary"
	}
	if result.PaddingAdded > 0 {
		details["Padding Added"] = chip.FormatSize(result.PaddingAdded)
	}
	ui.PrintSuccess("Chip write complete", details)

	recordSuccess(registry, executor, chipName)
	return nil
}

// infoCmd implements the 'info' command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show chip details",
	Long: `Show details about the attached flash chip.

Reports the chip's vendor, model, capacity and write-protection status.
With --scan, the chip contents are also read into a scratch file to
measure how much of the chip holds non-erased content; this reads the
whole chip and can take minutes on slow programmers.`,
	Example: `  # Show chip identity and write protection
  flashpad info --programmer ch341a_spi

  # Also measure used space (reads the whole chip)
  flashpad info --programmer ch341a_spi --scan`,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&chipFlag, "chip", "", "Chip name (default: probe)")
	infoCmd.Flags().BoolVar(&infoScan, "scan", false, "Read the chip to measure used space")
}

func runInfo(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	registry := loadPreferences()
	executor, err := createExecutor(registry)
	if err != nil {
		printFailure("Chip info failed", err, nil)
		return err
	}

	ui.PrintCommandHeader(
		"Chip Info",
		"flashpad info",
		map[string]string{
			"Programmer": executor.Config().Programmer,
			"Scan":       fmt.Sprintf("%t", infoScan),
		},
	)

	ctx := context.Background()
	chipName, err := resolveChip(ctx, executor)
	if err != nil {
		printFailure("Chip info failed", err, []string{
			"Check clip seating and wiring",
			"Try: flashpad probe",
		})
		return err
	}

	if infoScan {
		ui.PrintPleaseWait("Reading chip contents", "this may take several minutes")
	}
	info, err := flashrom.GetChipInfo(ctx, flashrom.InfoOptions{
		Executor:    executor,
		Chip:        chipName,
		ScanContent: infoScan,
	})
	if err != nil {
		printFailure("Chip info failed", err, []string{
			"Verify the programmer is still connected",
			"Run with --verbose for full flashrom output",
		})
		return err
	}

	details := map[string]string{
		"Chip":          info.Chip,
		"Vendor":        info.Vendor,
		"Model":         info.Model,
		"Size":          chip.FormatSize(info.SizeBytes),
		"Write Protect": info.WriteProtect,
	}
	if info.UsedBytes >= 0 {
		details["Used"] = fmt.Sprintf("%s (%d%%)", chip.FormatSize(info.UsedBytes), info.UsedBytes*100/info.SizeBytes)
	}

	// Catalog details when available
	if catalog, err := chip.Load(); err == nil {
		if c, ok := catalog.Get(chipName); ok {
			details["Voltage"] = c.Voltage()
			if c.Notes != "" {
				details["Notes"] = c.Notes
			}
		}
	}

	ui.PrintSuccess("Chip info", details)

	recordSuccess(registry, executor, chipName)
	return nil
}

// stripCmd implements the 'strip' command
var stripCmd = &cobra.Command{
	Use:   "strip <file>",
	Short: "Remove trailing padding from an image file",
	Long: `Remove trailing erased-flash bytes (0xFF) from an image file.

The file is truncated in place to its last non-0xFF byte. A file that
is entirely 0xFF becomes empty. Running strip again is a no-op. No chip
access is involved.

The truncation is not atomic; don't interrupt it or let another process
touch the file while it runs.`,
	Example: `  # Strip a dump in place
  flashpad strip dump.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runStrip,
}

func runStrip(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	path := args[0]

	initLogging()

	ui.PrintCommandHeader(
		"Strip Padding",
		"flashpad strip",
		map[string]string{
			"File": path,
		},
	)

	before, err := romfile.Inspect(path)
	if err != nil {
		printFailure("Strip failed", err, []string{
			"Check the file path",
		})
		return err
	}

	removed, err := pad.StripFile(path)
	if err != nil {
		printFailure("Strip failed", err, nil)
		return err
	}

	logging.LogPadding(path, "strip", before.Size, before.Size-removed)

	ui.PrintSuccess("Padding stripped", map[string]string{
		"File":    path,
		"Before":  chip.FormatSize(before.Size),
		"After":   chip.FormatSize(before.Size - removed),
		"Removed": chip.FormatSize(removed),
	})
	return nil
}

// padCmd implements the 'pad' command
var padCmd = &cobra.Command{
	Use:   "pad <file>",
	Short: "Pad an image file to a target size",
	Long: `Append erased-flash bytes (0xFF) to an image file until it reaches
the target size. A file already at the target size is left unchanged.
A file larger than the target is an error and is not modified; padding
never discards content.

Sizes accept k/M suffixes (binary units): 512k, 8M, 16M.`,
	Example: `  # Pad a stripped dump back to 8 MiB
  flashpad pad dump.bin --size 8M

  # Exact byte count
  flashpad pad dump.bin --size 8388608`,
	Args: cobra.ExactArgs(1),
	RunE: runPad,
}

func init() {
	padCmd.Flags().StringVarP(&padTarget, "size", "s", "", "Target size, e.g. 512k, 8M (required)")
	padCmd.MarkFlagRequired("size")
}

func runPad(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	path := args[0]

	initLogging()

	target, err := parseSize(padTarget)
	if err != nil {
		printFailure("Invalid arguments", err, []string{
			"Sizes accept k/M suffixes: 512k, 8M",
		})
		return err
	}

	ui.PrintCommandHeader(
		"Pad Image",
		"flashpad pad",
		map[string]string{
			"File":   path,
			"Target": chip.FormatSize(target),
		},
	)

	before, err := romfile.Inspect(path)
	if err != nil {
		printFailure("Pad failed", err, []string{
			"Check the file path",
		})
		return err
	}

	added, err := pad.FillFile(path, target)
	if err != nil {
		printFailure("Pad failed", err, []string{
			"The target size must be at least the current file size",
			"Use 'flashpad strip' first if the file carries stale padding",
		})
		return err
	}

	logging.LogPadding(path, "fill", before.Size, target)

	ui.PrintSuccess("Image padded", map[string]string{
		"File":   path,
		"Before": chip.FormatSize(before.Size),
		"After":  chip.FormatSize(target),
		"Added":  chip.FormatSize(added),
	})
	return nil
}

// convertCmd implements the 'convert' command
var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert an Intel HEX image to raw binary",
	Long: `Convert an Intel HEX image to a raw binary file.

Address gaps between HEX records are filled with erased-flash bytes
(0xFF), matching what the chip would hold after flashing. The output
starts at the image's lowest record address.`,
	Example: `  # Convert firmware.hex to firmware.bin
  flashpad convert firmware.hex --output firmware.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output binary file (required)")
	convertCmd.MarkFlagRequired("output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	path := args[0]

	initLogging()

	ui.PrintCommandHeader(
		"Convert Image",
		"flashpad convert",
		map[string]string{
			"Input":  path,
			"Output": convertOutput,
		},
	)

	format, err := romfile.DetectFormat(path)
	if err != nil {
		printFailure("Convert failed", err, []string{
			"Check the file path",
		})
		return err
	}
	if format != romfile.FormatIntelHex {
		err := fmt.Errorf("not an Intel HEX file: %s", path)
		printFailure("Convert failed", err, []string{
			"Intel HEX files start with a ':' record",
			"Raw binaries need no conversion",
		})
		return err
	}

	size, err := romfile.ConvertHex(path, convertOutput)
	if err != nil {
		printFailure("Convert failed", err, []string{
			"The HEX file may be truncated or corrupted",
		})
		return err
	}

	ui.PrintSuccess("Image converted", map[string]string{
		"Input":  path,
		"Output": convertOutput,
		"Size":   chip.FormatSize(size),
	})
	return nil
}

// parseSize parses a size string with optional k/M binary suffixes
// (e.g., "512k", "8M", "8388608").
func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'k', 'K':
		multiplier = 1 << 10
		s = s[:len(s)-1]
	case 'm', 'M':
		multiplier = 1 << 20
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("size must not be negative")
	}
	return n * multiplier, nil
}
