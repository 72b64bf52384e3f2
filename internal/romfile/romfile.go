package romfile

import (
	"bufio"
	"fmt"
	"os"

	"github.com/marcinbor85/gohex"

	"github.com/veska/flashpad/internal/pad"
)

// Format identifies the on-disk format of a ROM image file.
type Format int

const (
	// FormatRaw is a plain binary image, byte-for-byte chip content.
	FormatRaw Format = iota
	// FormatIntelHex is an Intel HEX text image.
	FormatIntelHex
)

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw binary"
	case FormatIntelHex:
		return "Intel HEX"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// DetectFormat sniffs the format of the image at path. Intel HEX files
// start with a ':' record mark; everything else is treated as raw binary.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatRaw, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	first, err := r.ReadByte()
	if err != nil {
		// Empty files are raw; zero bytes of chip content.
		return FormatRaw, nil
	}
	if first == ':' {
		return FormatIntelHex, nil
	}
	return FormatRaw, nil
}

// ConvertHex converts the Intel HEX image at inPath to a raw binary image
// at outPath and returns the size of the result. Gaps between HEX data
// segments are filled with the erased-flash byte, matching what the chip
// would contain after an erase.
//
// The binary starts at the lowest segment address: a HEX image based at a
// flash-mapped address (e.g. 0x08000000) converts to an image of just its
// content, not gigabytes of leading fill.
func ConvertHex(inPath, outPath string) (int64, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(in); err != nil {
		return 0, fmt.Errorf("parsing %s: %w", inPath, err)
	}

	segments := mem.GetDataSegments()
	if len(segments) == 0 {
		return 0, fmt.Errorf("%s contains no data records", inPath)
	}

	base := segments[0].Address
	end := base
	for _, seg := range segments {
		if seg.Address < base {
			base = seg.Address
		}
		if segEnd := seg.Address + uint32(len(seg.Data)); segEnd > end {
			end = segEnd
		}
	}

	data := mem.ToBinary(base, end-base, pad.FillByte)
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// Summary describes a ROM image file.
type Summary struct {
	// Path is the image file path
	Path string
	// Format is the detected on-disk format
	Format Format
	// Size is the file size in bytes
	Size int64
	// TrailingPadding is the number of trailing erased-flash bytes
	// (raw images only; 0 for Intel HEX)
	TrailingPadding int64
}

// Used returns the number of content bytes before the trailing padding.
func (s Summary) Used() int64 {
	return s.Size - s.TrailingPadding
}

// Inspect reads the image at path and reports its format, size, and
// trailing padding. The file is not modified.
func Inspect(path string) (Summary, error) {
	summary := Summary{Path: path}

	format, err := DetectFormat(path)
	if err != nil {
		return summary, err
	}
	summary.Format = format

	info, err := os.Stat(path)
	if err != nil {
		return summary, err
	}
	summary.Size = info.Size()

	if format == FormatRaw {
		data, err := os.ReadFile(path)
		if err != nil {
			return summary, err
		}
		_, removed := pad.Strip(data)
		summary.TrailingPadding = int64(removed)
	}

	return summary, nil
}
