// Package romfile handles ROM image files on their way to and from a
// flash chip: format detection (raw binary vs Intel HEX), HEX to binary
// conversion, and non-destructive image inspection.
//
// Flashrom writes and reads raw binary images, so Intel HEX inputs are
// converted before flashing. Gaps between HEX segments are filled with
// 0xFF, the erased-flash value.
package romfile
