package pad

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		want        []byte
		wantRemoved int
	}{
		{
			name:        "trailing run",
			input:       []byte{0x01, 0x02, 0xFF, 0xFF, 0xFF},
			want:        []byte{0x01, 0x02},
			wantRemoved: 3,
		},
		{
			name:        "no trailing fill",
			input:       []byte{0x01, 0x02},
			want:        []byte{0x01, 0x02},
			wantRemoved: 0,
		},
		{
			name:        "entirely fill",
			input:       []byte{0xFF, 0xFF, 0xFF},
			want:        []byte{},
			wantRemoved: 3,
		},
		{
			name:        "empty",
			input:       []byte{},
			want:        []byte{},
			wantRemoved: 0,
		},
		{
			name:        "single non-fill byte",
			input:       []byte{0x42},
			want:        []byte{0x42},
			wantRemoved: 0,
		},
		{
			name:        "single fill byte",
			input:       []byte{0xFF},
			want:        []byte{},
			wantRemoved: 1,
		},
		{
			name:        "fill bytes in the middle are kept",
			input:       []byte{0xFF, 0x01, 0xFF, 0xFF, 0x02, 0xFF},
			want:        []byte{0xFF, 0x01, 0xFF, 0xFF, 0x02},
			wantRemoved: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := Strip(tt.input)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Strip() = % x, want % x", got, tt.want)
			}
			if removed != tt.wantRemoved {
				t.Errorf("Strip() removed = %d, want %d", removed, tt.wantRemoved)
			}
		})
	}
}

func TestStrip_Idempotent(t *testing.T) {
	buf := []byte{0x10, 0x20, 0xFF, 0xFF}

	once, removed := Strip(buf)
	if removed != 2 {
		t.Fatalf("first Strip() removed = %d, want 2", removed)
	}

	twice, removed := Strip(once)
	if removed != 0 {
		t.Errorf("second Strip() removed = %d, want 0", removed)
	}
	if !bytes.Equal(twice, once) {
		t.Errorf("second Strip() changed the buffer: % x -> % x", once, twice)
	}
}

func TestFill(t *testing.T) {
	tests := []struct {
		name      string
		input     []byte
		target    int
		want      []byte
		wantAdded int
		wantErr   bool
	}{
		{
			name:      "pad to target",
			input:     []byte{0x01, 0x02},
			target:    5,
			want:      []byte{0x01, 0x02, 0xFF, 0xFF, 0xFF},
			wantAdded: 3,
		},
		{
			name:      "target equals current size",
			input:     []byte{0x01, 0x02},
			target:    2,
			want:      []byte{0x01, 0x02},
			wantAdded: 0,
		},
		{
			name:      "empty to target",
			input:     []byte{},
			target:    4,
			want:      []byte{0xFF, 0xFF, 0xFF, 0xFF},
			wantAdded: 4,
		},
		{
			name:    "target smaller than current size",
			input:   []byte{0x01, 0x02, 0x03},
			target:  2,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, added, err := Fill(tt.input, tt.target)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fill() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var sizeErr *SizeError
				if !errors.As(err, &sizeErr) {
					t.Errorf("Fill() error type = %T, want *SizeError", err)
				}
				return
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Fill() = % x, want % x", got, tt.want)
			}
			if added != tt.wantAdded {
				t.Errorf("Fill() added = %d, want %d", added, tt.wantAdded)
			}
			if len(got) != tt.target {
				t.Errorf("Fill() length = %d, want %d", len(got), tt.target)
			}
		})
	}
}

func TestFillStripRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		target int
		// want is what Strip recovers. When the input itself ends in fill
		// bytes, Strip also removes those, which is expected behavior.
		want []byte
	}{
		{
			name:   "clean tail",
			input:  []byte{0xDE, 0xAD, 0xBE, 0xEF},
			target: 16,
			want:   []byte{0xDE, 0xAD, 0xBE, 0xEF},
		},
		{
			name:   "input already ends in fill bytes",
			input:  []byte{0x01, 0xFF, 0xFF},
			target: 8,
			want:   []byte{0x01},
		},
		{
			name:   "target equals size",
			input:  []byte{0x01, 0x02},
			target: 2,
			want:   []byte{0x01, 0x02},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			padded, added, err := Fill(tt.input, tt.target)
			if err != nil {
				t.Fatalf("Fill() error = %v", err)
			}
			if added != tt.target-len(tt.input) {
				t.Errorf("Fill() added = %d, want %d", added, tt.target-len(tt.input))
			}

			got, _ := Strip(padded)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("round trip = % x, want % x", got, tt.want)
			}
		})
	}
}

func writeTestFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rom.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	return path
}

func readTestFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading test file: %v", err)
	}
	return data
}

func TestStripFile(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		want        []byte
		wantRemoved int64
	}{
		{
			name:        "trailing run",
			input:       []byte{0x01, 0x02, 0xFF, 0xFF, 0xFF},
			want:        []byte{0x01, 0x02},
			wantRemoved: 3,
		},
		{
			name:        "no trailing fill",
			input:       []byte{0x01, 0x02},
			want:        []byte{0x01, 0x02},
			wantRemoved: 0,
		},
		{
			name:        "entirely fill",
			input:       []byte{0xFF, 0xFF, 0xFF},
			want:        []byte{},
			wantRemoved: 3,
		},
		{
			name:        "empty file",
			input:       []byte{},
			want:        []byte{},
			wantRemoved: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, tt.input)

			removed, err := StripFile(path)
			if err != nil {
				t.Fatalf("StripFile() error = %v", err)
			}
			if removed != tt.wantRemoved {
				t.Errorf("StripFile() removed = %d, want %d", removed, tt.wantRemoved)
			}
			if got := readTestFile(t, path); !bytes.Equal(got, tt.want) {
				t.Errorf("file contents = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestStripFile_LargerThanChunk(t *testing.T) {
	// A fill run that spans multiple tail chunks must still be counted in
	// full, and the scan must stop at the last non-fill byte before it.
	content := []byte{0x01, 0x02, 0x03}
	run := bytes.Repeat([]byte{0xFF}, tailChunkSize*2+17)
	path := writeTestFile(t, append(append([]byte{}, content...), run...))

	removed, err := StripFile(path)
	if err != nil {
		t.Fatalf("StripFile() error = %v", err)
	}
	if want := int64(len(run)); removed != want {
		t.Errorf("StripFile() removed = %d, want %d", removed, want)
	}
	if got := readTestFile(t, path); !bytes.Equal(got, content) {
		t.Errorf("file contents = % x, want % x", got, content)
	}
}

func TestStripFile_Idempotent(t *testing.T) {
	path := writeTestFile(t, []byte{0x10, 0xFF, 0xFF})

	if removed, err := StripFile(path); err != nil || removed != 2 {
		t.Fatalf("first StripFile() = %d, %v, want 2, nil", removed, err)
	}
	if removed, err := StripFile(path); err != nil || removed != 0 {
		t.Errorf("second StripFile() = %d, %v, want 0, nil", removed, err)
	}
}

func TestStripFile_MissingFile(t *testing.T) {
	_, err := StripFile(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	if err == nil {
		t.Fatal("StripFile() on missing file succeeded, want error")
	}
	if !os.IsNotExist(err) {
		t.Errorf("StripFile() error = %v, want not-exist", err)
	}
}

func TestFillFile(t *testing.T) {
	tests := []struct {
		name      string
		input     []byte
		target    int64
		want      []byte
		wantAdded int64
		wantErr   bool
	}{
		{
			name:      "pad to target",
			input:     []byte{0x01, 0x02},
			target:    5,
			want:      []byte{0x01, 0x02, 0xFF, 0xFF, 0xFF},
			wantAdded: 3,
		},
		{
			name:      "target equals current size",
			input:     []byte{0x01, 0x02},
			target:    2,
			want:      []byte{0x01, 0x02},
			wantAdded: 0,
		},
		{
			name:    "target smaller than current size",
			input:   []byte{0x01, 0x02, 0x03},
			target:  1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, tt.input)

			added, err := FillFile(path, tt.target)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FillFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var sizeErr *SizeError
				if !errors.As(err, &sizeErr) {
					t.Errorf("FillFile() error type = %T, want *SizeError", err)
				}
				// The file must be untouched on a rejected target.
				if got := readTestFile(t, path); !bytes.Equal(got, tt.input) {
					t.Errorf("file changed on error: % x, want % x", got, tt.input)
				}
				return
			}
			if added != tt.wantAdded {
				t.Errorf("FillFile() added = %d, want %d", added, tt.wantAdded)
			}
			if got := readTestFile(t, path); !bytes.Equal(got, tt.want) {
				t.Errorf("file contents = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestFillFile_LargerThanChunk(t *testing.T) {
	input := []byte{0xAB}
	target := int64(fillChunkSize + 1234)
	path := writeTestFile(t, input)

	added, err := FillFile(path, target)
	if err != nil {
		t.Fatalf("FillFile() error = %v", err)
	}
	if want := target - int64(len(input)); added != want {
		t.Errorf("FillFile() added = %d, want %d", added, want)
	}

	got := readTestFile(t, path)
	if int64(len(got)) != target {
		t.Fatalf("file size = %d, want %d", len(got), target)
	}
	if got[0] != 0xAB {
		t.Errorf("first byte = 0x%02x, want 0xAB", got[0])
	}
	for i, b := range got[1:] {
		if b != 0xFF {
			t.Fatalf("byte %d = 0x%02x, want 0xFF", i+1, b)
		}
	}
}

func TestFillFileStripFileRoundTrip(t *testing.T) {
	input := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	path := writeTestFile(t, input)

	added, err := FillFile(path, 64)
	if err != nil {
		t.Fatalf("FillFile() error = %v", err)
	}
	if added != 60 {
		t.Errorf("FillFile() added = %d, want 60", added)
	}

	removed, err := StripFile(path)
	if err != nil {
		t.Fatalf("StripFile() error = %v", err)
	}
	if removed != 60 {
		t.Errorf("StripFile() removed = %d, want 60", removed)
	}
	if got := readTestFile(t, path); !bytes.Equal(got, input) {
		t.Errorf("round trip = % x, want % x", got, input)
	}
}
