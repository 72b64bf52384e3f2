package romfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// hexImage is a minimal Intel HEX file: 4 data bytes at 0x0000, 2 data
// bytes at 0x0008, EOF record. The gap should convert to 0xFF fill.
const hexImage = ":0400000001020304F2\n" +
	":02000800AABA92\n" +
	":00000001FF\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{name: "intel hex", data: []byte(hexImage), want: FormatIntelHex},
		{name: "raw binary", data: []byte{0x01, 0x02, 0xFF}, want: FormatRaw},
		{name: "raw binary starting with 0xFF", data: []byte{0xFF, 0x01}, want: FormatRaw},
		{name: "empty file", data: []byte{}, want: FormatRaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "image", tt.data)
			got, err := DetectFormat(path)
			if err != nil {
				t.Fatalf("DetectFormat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertHex(t *testing.T) {
	in := writeFile(t, "image.hex", []byte(hexImage))
	out := filepath.Join(filepath.Dir(in), "image.bin")

	size, err := ConvertHex(in, out)
	if err != nil {
		t.Fatalf("ConvertHex() error = %v", err)
	}
	if size != 10 {
		t.Errorf("ConvertHex() size = %d, want 10", size)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0xFF, 0xFF, 0xFF, 0xAA, 0xBA}
	if !bytes.Equal(got, want) {
		t.Errorf("ConvertHex() output = % x, want % x", got, want)
	}
}

func TestConvertHex_InvalidInput(t *testing.T) {
	in := writeFile(t, "image.hex", []byte(":garbage\n"))
	out := filepath.Join(filepath.Dir(in), "image.bin")

	if _, err := ConvertHex(in, out); err == nil {
		t.Fatal("ConvertHex() on malformed input succeeded, want error")
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		wantFormat  Format
		wantSize    int64
		wantPadding int64
	}{
		{
			name:        "raw with trailing padding",
			data:        []byte{0x01, 0x02, 0xFF, 0xFF, 0xFF},
			wantFormat:  FormatRaw,
			wantSize:    5,
			wantPadding: 3,
		},
		{
			name:        "raw without padding",
			data:        []byte{0x01, 0x02},
			wantFormat:  FormatRaw,
			wantSize:    2,
			wantPadding: 0,
		},
		{
			name:        "intel hex is not scanned for padding",
			data:        []byte(hexImage),
			wantFormat:  FormatIntelHex,
			wantSize:    int64(len(hexImage)),
			wantPadding: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "image", tt.data)
			summary, err := Inspect(path)
			if err != nil {
				t.Fatalf("Inspect() error = %v", err)
			}
			if summary.Format != tt.wantFormat {
				t.Errorf("Format = %v, want %v", summary.Format, tt.wantFormat)
			}
			if summary.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", summary.Size, tt.wantSize)
			}
			if summary.TrailingPadding != tt.wantPadding {
				t.Errorf("TrailingPadding = %d, want %d", summary.TrailingPadding, tt.wantPadding)
			}
			if got := summary.Used(); got != tt.wantSize-tt.wantPadding {
				t.Errorf("Used() = %d, want %d", got, tt.wantSize-tt.wantPadding)
			}
		})
	}
}
