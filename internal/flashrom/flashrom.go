package flashrom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config holds the configuration for flashrom execution.
type Config struct {
	// FlashromPath is the path to the flashrom binary.
	// Default: "flashrom" (searches PATH)
	FlashromPath string

	// Programmer is the flashrom programmer driver to use
	// (e.g., "ch341a_spi", "internal"). Required for all chip operations.
	Programmer string

	// Timeout is the maximum time to wait for flashrom to complete.
	// Default: 10 minutes, sized for full-chip reads over slow programmers.
	Timeout time.Duration

	// ScratchDir is the directory for temporary images.
	// Default: os.TempDir()
	ScratchDir string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		FlashromPath: "flashrom",
		Timeout:      10 * time.Minute,
		ScratchDir:   os.TempDir(),
	}
}

// Executor runs the flashrom binary via os/exec and parses its output.
type Executor struct {
	config Config
	parser *Parser
	logger *zap.Logger
}

// NewExecutor creates a new flashrom executor with the given configuration.
func NewExecutor(config Config, logger *zap.Logger) *Executor {
	if config.FlashromPath == "" {
		config.FlashromPath = "flashrom"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Minute
	}
	if config.ScratchDir == "" {
		config.ScratchDir = os.TempDir()
	}
	return &Executor{
		config: config,
		parser: NewParser(),
		logger: logger,
	}
}

// Config returns the executor's configuration.
func (e *Executor) Config() Config {
	return e.config
}

// programmerArgs returns the leading --programmer arguments, or an error
// when no programmer is configured.
func (e *Executor) programmerArgs() ([]string, error) {
	if e.config.Programmer == "" {
		return nil, &NoProgrammerError{}
	}
	return []string{"--programmer", e.config.Programmer}, nil
}

// run executes flashrom with the given arguments.
// If streaming is true, output is mirrored to os.Stdout/os.Stderr in
// real time (used for long reads and writes where the user wants to see
// flashrom's own progress output). Output is always captured in full.
func (e *Executor) run(ctx context.Context, operation string, streaming bool, args ...string) (stdout, stderr string, exitCode int, err error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	start := time.Now()
	e.logger.Info("executing flashrom",
		zap.String("operation", operation),
		zap.String("flashrom_path", e.config.FlashromPath),
		zap.Strings("args", args),
		zap.Duration("timeout", e.config.Timeout),
	)

	cmd := exec.CommandContext(timeoutCtx, e.config.FlashromPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	if streaming {
		stdoutPipe, perr := cmd.StdoutPipe()
		if perr != nil {
			return "", "", -1, fmt.Errorf("failed to create stdout pipe: %w", perr)
		}
		stderrPipe, perr := cmd.StderrPipe()
		if perr != nil {
			return "", "", -1, fmt.Errorf("failed to create stderr pipe: %w", perr)
		}

		if err := cmd.Start(); err != nil {
			return "", "", -1, fmt.Errorf("failed to start flashrom: %w", err)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			io.Copy(io.MultiWriter(&stdoutBuf, os.Stdout), stdoutPipe)
		}()
		go func() {
			defer wg.Done()
			io.Copy(io.MultiWriter(&stderrBuf, os.Stderr), stderrPipe)
		}()

		wg.Wait()
		err = cmd.Wait()
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
		err = cmd.Run()
	}

	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	if timeoutCtx.Err() == context.DeadlineExceeded {
		err = &TimeoutError{
			Operation: operation,
			Timeout:   e.config.Timeout.String(),
		}
	}

	e.logger.Debug("flashrom run complete",
		zap.String("operation", operation),
		zap.Duration("duration", time.Since(start)),
		zap.Int("exit_code", exitCode),
		zap.Int("stdout_size", len(stdout)),
		zap.Int("stderr_size", len(stderr)),
	)

	return stdout, stderr, exitCode, err
}

// checked runs flashrom and converts any failure into an ExecutionError.
func (e *Executor) checked(ctx context.Context, operation string, streaming bool, args ...string) (string, error) {
	stdout, stderr, exitCode, err := e.run(ctx, operation, streaming, args...)
	if err != nil {
		if _, ok := err.(*TimeoutError); ok {
			return stdout, err
		}
		return stdout, &ExecutionError{
			Args:     args,
			ExitCode: exitCode,
			Stderr:   stderr,
			Stdout:   stdout,
			Err:      err,
		}
	}
	if exitCode != 0 {
		return stdout, &ExecutionError{
			Args:     args,
			ExitCode: exitCode,
			Stderr:   stderr,
			Stdout:   stdout,
		}
	}
	return stdout, nil
}

// Version returns the version string of the flashrom binary.
func (e *Executor) Version(ctx context.Context) (string, error) {
	stdout, err := e.checked(ctx, "version", false, "--version")
	if err != nil {
		return "", err
	}
	return e.parser.ParseVersion(stdout)
}

// Programmers enumerates the programmer drivers supported by the flashrom
// binary. Flashrom prints the list in its usage text under "Valid choices
// are:", so the invocation is expected to exit non-zero; the output is
// still parsed.
func (e *Executor) Programmers(ctx context.Context) ([]string, error) {
	stdout, stderr, _, err := e.run(ctx, "programmers", false, "--programmer", "help")
	if terr, ok := err.(*TimeoutError); ok {
		return nil, terr
	}
	programmers, perr := e.parser.ParseProgrammers(stdout + stderr)
	if perr != nil {
		return nil, perr
	}
	return programmers, nil
}

// Probe returns the names of the flash chips flashrom detects on the
// configured programmer. Flashrom may report several candidates when chips
// share an ID; the caller is responsible for picking one. An empty result
// is reported as a *NoChipError.
func (e *Executor) Probe(ctx context.Context) ([]string, error) {
	progArgs, err := e.programmerArgs()
	if err != nil {
		return nil, err
	}

	// A probe that finds nothing exits non-zero, so the exit code is not
	// authoritative here. The "Found ..." lines are.
	args := append(progArgs, "--flash-name")
	stdout, stderr, _, err := e.run(ctx, "probe", false, args...)
	if terr, ok := err.(*TimeoutError); ok {
		return nil, terr
	}

	chips := e.parser.ParseFoundChips(stdout + stderr)
	if len(chips) == 0 {
		return nil, &NoChipError{Programmer: e.config.Programmer}
	}

	e.logger.Info("probe complete",
		zap.String("programmer", e.config.Programmer),
		zap.Strings("chips", chips),
	)
	return chips, nil
}

// ChipIdent returns the vendor and model reported by flashrom for the
// given chip.
func (e *Executor) ChipIdent(ctx context.Context, chip string) (vendor, model string, err error) {
	progArgs, err := e.programmerArgs()
	if err != nil {
		return "", "", err
	}
	args := append(progArgs, "--chip", chip, "--flash-name")
	stdout, err := e.checked(ctx, "chip-ident", false, args...)
	if err != nil {
		return "", "", err
	}
	return e.parser.ParseChipIdent(stdout)
}

// ChipSize returns the size in bytes of the given chip as reported by
// flashrom.
func (e *Executor) ChipSize(ctx context.Context, chip string) (int64, error) {
	progArgs, err := e.programmerArgs()
	if err != nil {
		return 0, err
	}
	args := append(progArgs, "--chip", chip, "--flash-size")
	stdout, err := e.checked(ctx, "chip-size", false, args...)
	if err != nil {
		return 0, err
	}
	return e.parser.ParseFlashSize(stdout)
}

// WriteProtect returns the write-protection status line flashrom reports
// for the given chip.
func (e *Executor) WriteProtect(ctx context.Context, chip string) (string, error) {
	progArgs, err := e.programmerArgs()
	if err != nil {
		return "", err
	}
	args := append(progArgs, "--chip", chip, "--wp-status")
	stdout, err := e.checked(ctx, "wp-status", false, args...)
	if err != nil {
		return "", err
	}
	return e.parser.ParseWPStatus(stdout)
}

// Read dumps the contents of the given chip into the file at path.
// Flashrom's own progress output is streamed to the terminal.
func (e *Executor) Read(ctx context.Context, chip, path string) error {
	progArgs, err := e.programmerArgs()
	if err != nil {
		return err
	}
	args := append(progArgs, "-r", path, "--chip", chip)
	_, err = e.checked(ctx, "read", true, args...)
	return err
}

// Write flashes the image at path onto the given chip. The image must
// already match the chip size; use the padding workflow for smaller
// images. Flashrom's own progress output is streamed to the terminal.
func (e *Executor) Write(ctx context.Context, chip, path string) error {
	progArgs, err := e.programmerArgs()
	if err != nil {
		return err
	}
	args := append(progArgs, "-w", path, "--chip", chip)
	_, err = e.checked(ctx, "write", true, args...)
	return err
}
