package pad

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// FillByte is the erased-flash sentinel. Unprogrammed flash cells read as
// 0xFF, so a ROM dump from a partially used chip ends in a run of 0xFF
// bytes and an image padded to chip size gets a 0xFF suffix.
const FillByte = 0xFF

// tailChunkSize is the read size used when scanning a file backward for
// trailing fill bytes. ROM images are small (typically <= 32 MB), so a
// 64 KiB chunk keeps the scan to a handful of reads.
const tailChunkSize = 64 * 1024

// fillChunkSize bounds the write size when appending fill bytes to a file.
const fillChunkSize = 256 * 1024

// SizeError is returned when a fill target is smaller than the data it is
// supposed to pad. Shrinking an image is never implied by padding; callers
// that want truncation must do it explicitly.
type SizeError struct {
	// Current is the size of the image in bytes
	Current int64
	// Target is the requested padded size in bytes
	Target int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("target size %d is smaller than image size %d: padding cannot shrink an image",
		e.Target, e.Current)
}

// Strip removes trailing fill bytes from buf. It returns buf truncated past
// the last non-fill byte and the number of fill bytes removed.
//
// The returned slice aliases buf. An empty buffer and a buffer with no
// trailing fill bytes are returned unchanged with a count of 0; a buffer
// consisting entirely of fill bytes reduces to length 0.
func Strip(buf []byte) ([]byte, int) {
	end := len(buf)
	for end > 0 && buf[end-1] == FillByte {
		end--
	}
	return buf[:end], len(buf) - end
}

// Fill appends fill bytes to buf until it reaches target bytes. It returns
// the padded buffer and the number of bytes appended.
//
// A target equal to len(buf) is a no-op. A target smaller than len(buf)
// fails with a *SizeError and leaves buf unchanged.
func Fill(buf []byte, target int) ([]byte, int, error) {
	if target < len(buf) {
		return buf, 0, &SizeError{Current: int64(len(buf)), Target: int64(target)}
	}
	n := target - len(buf)
	if n == 0 {
		return buf, 0, nil
	}
	padded := make([]byte, target)
	copy(padded, buf)
	for i := len(buf); i < target; i++ {
		padded[i] = FillByte
	}
	return padded, n, nil
}

// StripFile removes trailing fill bytes from the file at path and returns
// the number of bytes removed. The file is truncated in place.
//
// The scan reads the file tail in bulk chunks rather than issuing a seek
// per byte. Truncation is a single syscall but is not atomic with respect
// to a crash: the file may be left at either its original or its truncated
// size, and callers should re-verify the size after a failure.
//
// The caller must ensure no other writer touches the file during the call.
func StripFile(path string) (int64, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	size := info.Size()

	padding, err := scanTail(f, size)
	if err != nil {
		return 0, err
	}
	if padding == 0 {
		return 0, nil
	}

	if err := f.Truncate(size - padding); err != nil {
		return 0, err
	}
	return padding, nil
}

// scanTail counts consecutive fill bytes at the end of r, reading backward
// in tailChunkSize chunks. size is the total length of r.
func scanTail(r io.ReaderAt, size int64) (int64, error) {
	var padding int64
	chunk := make([]byte, tailChunkSize)

	for padding < size {
		n := int64(tailChunkSize)
		if remaining := size - padding; remaining < n {
			n = remaining
		}
		off := size - padding - n
		if _, err := io.ReadFull(io.NewSectionReader(r, off, n), chunk[:n]); err != nil {
			return 0, err
		}

		// Scan this chunk from its end.
		i := n
		for i > 0 && chunk[i-1] == FillByte {
			i--
		}
		padding += n - i
		if i > 0 {
			// Hit a non-fill byte, the run is over.
			break
		}
	}
	return padding, nil
}

// FillFile appends fill bytes to the file at path until it is target bytes
// long and returns the number of bytes appended. The append position is
// anchored at the current end of file, so the caller must have exclusive
// access to the file for the duration of the call.
//
// A target equal to the current size is a no-op. A target smaller than the
// current size fails with a *SizeError and leaves the file untouched.
func FillFile(path string, target int64) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	size := info.Size()

	if target < size {
		return 0, &SizeError{Current: size, Target: target}
	}

	remaining := target - size
	chunk := bytes.Repeat([]byte{FillByte}, fillChunkSize)
	var written int64
	for written < remaining {
		n := int64(fillChunkSize)
		if left := remaining - written; left < n {
			n = left
		}
		if _, err := f.Write(chunk[:n]); err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}
