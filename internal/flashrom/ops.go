package flashrom

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/veska/flashpad/internal/pad"
	"github.com/veska/flashpad/internal/romfile"
)

// Step describes a workflow step update delivered to an OnProgress
// callback. Status is one of "in_progress", "success", "failed",
// "skipped".
type Step struct {
	Name    string
	Status  string
	Message string
}

// ProgressFunc receives workflow step updates.
type ProgressFunc func(step Step)

// report invokes the callback if one is set.
func report(fn ProgressFunc, name, status, message string) {
	if fn != nil {
		fn(Step{Name: name, Status: status, Message: message})
	}
}

// ReadOptions holds options for the chip read workflow.
type ReadOptions struct {
	// Executor is the flashrom executor to use
	Executor *Executor

	// Chip is the chip name to read (from a probe)
	Chip string

	// OutputPath is the file to write the dump to
	OutputPath string

	// StripPadding removes trailing erased-flash bytes from the dump
	// after a successful read
	StripPadding bool

	// OnProgress receives step updates as the workflow runs (may be nil)
	OnProgress ProgressFunc
}

// ReadResult describes a completed chip read.
type ReadResult struct {
	// OutputPath is the file the dump was written to
	OutputPath string
	// BytesRead is the size of the dump before padding removal
	BytesRead int64
	// PaddingRemoved is the number of trailing fill bytes stripped
	// (0 when StripPadding was not requested)
	PaddingRemoved int64
}

// ReadROM dumps a chip to a file and optionally strips trailing padding
// from the dump.
func ReadROM(ctx context.Context, opts ReadOptions) (*ReadResult, error) {
	logger := opts.Executor.logger

	logger.Info("starting chip read workflow",
		zap.String("chip", opts.Chip),
		zap.String("output", opts.OutputPath),
		zap.Bool("strip_padding", opts.StripPadding),
	)

	if err := opts.Executor.ValidateConfig(ctx); err != nil {
		return nil, fmt.Errorf("prerequisite validation failed: %w", err)
	}

	report(opts.OnProgress, "Reading chip", "in_progress", "")
	if err := opts.Executor.Read(ctx, opts.Chip, opts.OutputPath); err != nil {
		report(opts.OnProgress, "Reading chip", "failed", "")
		return nil, err
	}

	info, err := os.Stat(opts.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("dump was not written: %w", err)
	}
	report(opts.OnProgress, "Reading chip", "success", fmt.Sprintf("%d bytes", info.Size()))

	result := &ReadResult{
		OutputPath: opts.OutputPath,
		BytesRead:  info.Size(),
	}

	if opts.StripPadding {
		removed, err := pad.StripFile(opts.OutputPath)
		if err != nil {
			report(opts.OnProgress, "Stripping padding", "failed", "")
			return nil, fmt.Errorf("failed to strip padding from dump: %w", err)
		}
		result.PaddingRemoved = removed
		report(opts.OnProgress, "Stripping padding", "success", fmt.Sprintf("%d bytes removed", removed))
		logger.Info("stripped padding from dump",
			zap.String("output", opts.OutputPath),
			zap.Int64("removed", removed),
		)
	}

	return result, nil
}

// WriteOptions holds options for the chip write workflow.
type WriteOptions struct {
	// Executor is the flashrom executor to use
	Executor *Executor

	// Chip is the chip name to write (from a probe)
	Chip string

	// ImagePath is the image file to flash. Raw binary and Intel HEX
	// are accepted; HEX images are converted before flashing.
	ImagePath string

	// PadToChipSize pads a scratch copy of the image with erased-flash
	// bytes up to the chip size before flashing. The caller's file is
	// never modified.
	PadToChipSize bool

	// OnProgress receives step updates as the workflow runs (may be nil)
	OnProgress ProgressFunc
}

// WriteResult describes a completed chip write.
type WriteResult struct {
	// Chip is the chip that was written
	Chip string
	// FlashedPath is the file that was actually flashed (a scratch
	// copy when conversion or padding was involved)
	FlashedPath string
	// Converted is true when the input was Intel HEX
	Converted bool
	// PaddingAdded is the number of fill bytes appended to the scratch
	// copy (0 when PadToChipSize was not requested or not needed)
	PaddingAdded int64
}

// WriteROM flashes an image onto a chip. Intel HEX inputs are converted
// to raw binary first, and the image can be padded to the chip size; both
// transformations happen on a scratch copy so the input file is left
// untouched.
func WriteROM(ctx context.Context, opts WriteOptions) (*WriteResult, error) {
	logger := opts.Executor.logger

	logger.Info("starting chip write workflow",
		zap.String("chip", opts.Chip),
		zap.String("image", opts.ImagePath),
		zap.Bool("pad_to_chip_size", opts.PadToChipSize),
	)

	if err := opts.Executor.ValidateConfig(ctx); err != nil {
		return nil, fmt.Errorf("prerequisite validation failed: %w", err)
	}

	result := &WriteResult{
		Chip:        opts.Chip,
		FlashedPath: opts.ImagePath,
	}

	scratch, err := os.MkdirTemp(opts.Executor.config.ScratchDir, "flashpad-write-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	format, err := romfile.DetectFormat(opts.ImagePath)
	if err != nil {
		return nil, err
	}

	if format == romfile.FormatIntelHex {
		converted := filepath.Join(scratch, "image.bin")
		size, err := romfile.ConvertHex(opts.ImagePath, converted)
		if err != nil {
			report(opts.OnProgress, "Converting Intel HEX image", "failed", "")
			return nil, fmt.Errorf("failed to convert Intel HEX image: %w", err)
		}
		result.FlashedPath = converted
		result.Converted = true
		report(opts.OnProgress, "Converting Intel HEX image", "success", fmt.Sprintf("%d bytes", size))
		logger.Info("converted Intel HEX image",
			zap.String("image", opts.ImagePath),
			zap.Int64("size", size),
		)
	} else {
		report(opts.OnProgress, "Converting Intel HEX image", "skipped", "raw binary")
	}

	if opts.PadToChipSize {
		chipSize, err := opts.Executor.ChipSize(ctx, opts.Chip)
		if err != nil {
			report(opts.OnProgress, "Padding image to chip size", "failed", "")
			return nil, fmt.Errorf("failed to query chip size: %w", err)
		}

		padded := result.FlashedPath
		if !result.Converted {
			// Pad a copy, not the caller's file.
			padded = filepath.Join(scratch, "image.bin")
			if err := copyFile(opts.ImagePath, padded); err != nil {
				return nil, fmt.Errorf("failed to copy image to scratch: %w", err)
			}
		}

		added, err := pad.FillFile(padded, chipSize)
		if err != nil {
			report(opts.OnProgress, "Padding image to chip size", "failed", "")
			return nil, fmt.Errorf("failed to pad image to chip size: %w", err)
		}
		result.FlashedPath = padded
		result.PaddingAdded = added
		report(opts.OnProgress, "Padding image to chip size", "success", fmt.Sprintf("%d bytes added", added))
		logger.Info("padded image to chip size",
			zap.Int64("chip_size", chipSize),
			zap.Int64("added", added),
		)
	}

	report(opts.OnProgress, "Flashing image", "in_progress", "")
	if err := opts.Executor.Write(ctx, opts.Chip, result.FlashedPath); err != nil {
		report(opts.OnProgress, "Flashing image", "failed", "")
		return nil, err
	}
	report(opts.OnProgress, "Flashing image", "success", "")
	return result, nil
}

// ChipInfo describes a flash chip as reported by flashrom.
type ChipInfo struct {
	// Chip is the flashrom chip name
	Chip string
	// Vendor is the chip vendor
	Vendor string
	// Model is the chip model
	Model string
	// SizeBytes is the chip size in bytes
	SizeBytes int64
	// UsedBytes is the content size before trailing erased-flash bytes,
	// or -1 when the content scan was skipped or failed
	UsedBytes int64
	// WriteProtect is the write-protection status line
	WriteProtect string
}

// InfoOptions holds options for the chip info workflow.
type InfoOptions struct {
	// Executor is the flashrom executor to use
	Executor *Executor

	// Chip is the chip name to inspect (from a probe)
	Chip string

	// ScanContent dumps the chip to a scratch file and measures how
	// much of it is non-erased content. This reads the whole chip and
	// can take minutes on slow programmers.
	ScanContent bool
}

// GetChipInfo assembles a chip report from flashrom's identity, size and
// write-protect queries, optionally measuring used space from a scratch
// dump.
func GetChipInfo(ctx context.Context, opts InfoOptions) (*ChipInfo, error) {
	logger := opts.Executor.logger

	if err := opts.Executor.ValidateConfig(ctx); err != nil {
		return nil, fmt.Errorf("prerequisite validation failed: %w", err)
	}

	vendor, model, err := opts.Executor.ChipIdent(ctx, opts.Chip)
	if err != nil {
		return nil, err
	}

	size, err := opts.Executor.ChipSize(ctx, opts.Chip)
	if err != nil {
		return nil, err
	}

	wp, err := opts.Executor.WriteProtect(ctx, opts.Chip)
	if err != nil {
		return nil, err
	}

	info := &ChipInfo{
		Chip:         opts.Chip,
		Vendor:       vendor,
		Model:        model,
		SizeBytes:    size,
		UsedBytes:    -1,
		WriteProtect: wp,
	}

	if opts.ScanContent {
		scratch, err := os.MkdirTemp(opts.Executor.config.ScratchDir, "flashpad-info-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create scratch directory: %w", err)
		}
		defer os.RemoveAll(scratch)

		dump := filepath.Join(scratch, "content.bin")
		if err := opts.Executor.Read(ctx, opts.Chip, dump); err != nil {
			logger.Warn("content scan failed, reporting size only", zap.Error(err))
			return info, nil
		}

		padding, err := pad.StripFile(dump)
		if err != nil {
			logger.Warn("content scan failed, reporting size only", zap.Error(err))
			return info, nil
		}
		info.UsedBytes = size - padding
	}

	return info, nil
}

// copyFile copies src to dst, creating or truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
