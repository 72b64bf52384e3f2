// Flashpad is a front-end for flashrom with ROM image tooling.
//
// It drives the flashrom binary for chip operations and adds the image
// handling flashrom leaves to the user:
//
//   - Chip probing with an interactive picker for ambiguous matches
//   - Reading chips with automatic trailing-padding removal
//   - Writing chips with Intel HEX conversion and pad-to-size
//   - Standalone strip/pad/convert operations on image files
//
// Prerequisites:
//
//   - flashrom installed and in PATH (or --flashrom-path)
//   - A supported programmer (CH341A, FT2232, linux_spi, ...)
//
// See 'flashpad --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veska/flashpad/internal/flashrom"
	"github.com/veska/flashpad/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flashpad",
	Short: "Flashrom front-end with ROM image tooling",
	Long: `Flash chip operations via flashrom, with image padding tooling.

This tool wraps the flashrom binary for chip access and handles the
image plumbing around it:
  - Probe chips and list programmers
  - Read chips, stripping trailing erased-flash padding from dumps
  - Write chips, padding undersized images to the chip size
  - Convert Intel HEX images to raw binary
  - Strip or pad image files without touching a chip

Prerequisites:
  - flashrom installed and in PATH
  - A supported programmer connected

Use 'flashpad probe' to check your setup.`,
	Version: version.Version,
	Example: `  # List available programmers
  flashpad programmers

  # Probe for a chip
  flashpad probe --programmer ch341a_spi

  # Read a chip, stripping trailing padding
  flashpad read --programmer ch341a_spi --chip W25Q64.V --output dump.bin

  # Write an image, padding it to the chip size
  flashpad write --programmer ch341a_spi --chip W25Q64.V --image firmware.bin`,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flashpad %s (commit: %s)\n", version.Version, version.Commit)

		check := flashrom.CheckFlashrom(cmd.Context(), resolveFlashromPath())
		if check.Available {
			fmt.Printf("%s %s (%s)\n", check.Name, check.Version, check.Path)
		} else {
			fmt.Printf("%s: not found\n", check.Name)
		}
	},
}
