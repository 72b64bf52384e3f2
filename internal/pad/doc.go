// Package pad detects, removes, and synthesizes trailing 0xFF padding on
// ROM images.
//
// Flash chips read 0xFF from erased cells, so a dump of a partially used
// chip carries a run of 0xFF bytes after the real content, and an image
// that is smaller than its target chip must be extended with 0xFF bytes
// before flashing. This package provides both halves of that round trip,
// for in-memory buffers and for files on disk:
//
//	trimmed, removed := pad.Strip(dump)
//	padded, added, err := pad.Fill(image, chipSize)
//
//	removed, err := pad.StripFile("dump.bin")
//	added, err := pad.FillFile("image.bin", chipSize)
//
// # Semantics
//
// Strip scans backward from the end of the image and stops at the first
// byte that is not 0xFF. A buffer that is entirely 0xFF reduces to length
// zero; an empty buffer and a buffer ending in a non-0xFF byte are left
// unchanged. After a Strip, the final byte of the result (if any) is never
// 0xFF, which makes the operation idempotent.
//
// Fill appends exactly (target - current) fill bytes. A target smaller
// than the current size is rejected with a *SizeError rather than
// truncating.
//
// # File variants
//
// StripFile truncates the file in place and FillFile appends at the
// current end of file. Neither takes a lock: the caller is responsible
// for exclusive access while an operation runs. Truncation is not atomic
// with respect to a crash, so a failed StripFile should be followed by a
// size check before the file is trusted.
package pad
