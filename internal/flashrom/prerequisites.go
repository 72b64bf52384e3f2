package flashrom

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// PrerequisiteCheck represents the result of checking a single prerequisite.
type PrerequisiteCheck struct {
	// Name is the human-readable name of the prerequisite
	Name string
	// Available indicates whether the prerequisite is available
	Available bool
	// Path is the resolved path (for binary checks)
	Path string
	// Version is the detected version (if applicable)
	Version string
	// Message provides additional context (error message or success info)
	Message string
	// Error contains the underlying error if check failed
	Error error
}

// CheckFlashrom verifies that the flashrom binary is present and
// executable, and reports its version.
func CheckFlashrom(ctx context.Context, flashromPath string) PrerequisiteCheck {
	check := PrerequisiteCheck{
		Name: "flashrom",
	}

	path, err := exec.LookPath(flashromPath)
	if err != nil {
		check.Available = false
		check.Error = err
		check.Message = fmt.Sprintf("%s not found in PATH\n", flashromPath) +
			"Install on macOS: brew install flashrom\n" +
			"Install on Linux: sudo apt-get install flashrom"
		return check
	}
	check.Path = path

	versionCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(versionCtx, path, "--version")
	output, err := cmd.Output()
	if err != nil {
		check.Available = false
		check.Error = err
		check.Message = fmt.Sprintf("flashrom found at %s but failed to execute: %v", path, err)
		return check
	}

	if version, verr := NewParser().ParseVersion(string(output)); verr == nil {
		check.Version = version
	} else if lines := strings.Split(string(output), "\n"); len(lines) > 0 {
		check.Version = strings.TrimSpace(lines[0])
	}

	check.Available = true
	check.Message = fmt.Sprintf("Found at %s", path)
	return check
}

// ValidateFlashromPath checks that a specific flashrom binary path is
// valid and actually is flashrom.
func ValidateFlashromPath(ctx context.Context, flashromPath string) error {
	if flashromPath == "" {
		return &PrerequisiteError{
			Prerequisite: "flashrom",
			Details:      "flashrom path is empty",
		}
	}

	versionCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(versionCtx, flashromPath, "--version")
	output, err := cmd.Output()
	if err != nil {
		return &PrerequisiteError{
			Prerequisite: "flashrom",
			Details:      fmt.Sprintf("Failed to execute %s --version", flashromPath),
			Err:          err,
		}
	}

	if !strings.Contains(string(output), "flashrom") {
		return &PrerequisiteError{
			Prerequisite: "flashrom",
			Details:      fmt.Sprintf("%s does not appear to be flashrom", flashromPath),
		}
	}

	return nil
}

// ValidateConfig validates the executor's configuration against the
// environment. Called before chip operations so failures surface as a
// prerequisite problem rather than a cryptic exec error.
func (e *Executor) ValidateConfig(ctx context.Context) error {
	return ValidateFlashromPath(ctx, e.config.FlashromPath)
}
