package flashrom

import (
	"errors"
	"reflect"
	"testing"
)

const probeOutput = `flashrom v1.3.0 on Linux 6.1.0 (x86_64)
flashrom is free software, get the source code at https://flashrom.org

Calibrating delay loop... OK.
Found Winbond flash chip "W25Q64.V" (8192 kB, SPI) on ch341a_spi.
Found Winbond flash chip "W25Q64.W" (8192 kB, SPI) on ch341a_spi.
Multiple flash chip definitions match the detected chip(s): "W25Q64.V", "W25Q64.W"
Please specify which chip definition to use with the -c <chipname> option.
`

const usageOutput = `Please select a programmer with the --programmer parameter.
Valid choices are:
  internal, dummy, nic3com, gfxnvidia, drkaiser,
  satasii, atavia, it8212, ft2232_spi, serprog,
  buspirate_spi, dediprog, rayer_spi, pony_spi, nicintel,
  ch341a_spi, digilent_spi, stlinkv3_spi.
`

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{
			name:   "v prefix",
			output: "flashrom v1.3.0 on Linux 6.1.0 (x86_64)\n",
			want:   "v1.3.0",
		},
		{
			name:   "no v prefix",
			output: "flashrom 1.2 on Darwin 21.6.0 (arm64)\n",
			want:   "1.2",
		},
		{
			name:   "version after banner line",
			output: "some banner\nflashrom v1.4.0-rc1 on Linux\n",
			want:   "v1.4.0-rc1",
		},
		{
			name:    "no version",
			output:  "command not found\n",
			wantErr: true,
		},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ParseVersion(tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("ParseVersion() error type = %T, want *ParseError", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseProgrammers(t *testing.T) {
	p := NewParser()

	got, err := p.ParseProgrammers(usageOutput)
	if err != nil {
		t.Fatalf("ParseProgrammers() error = %v", err)
	}

	want := []string{
		"internal", "dummy", "nic3com", "gfxnvidia", "drkaiser",
		"satasii", "atavia", "it8212", "ft2232_spi", "serprog",
		"buspirate_spi", "dediprog", "rayer_spi", "pony_spi", "nicintel",
		"ch341a_spi", "digilent_spi", "stlinkv3_spi",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseProgrammers() = %v, want %v", got, want)
	}
}

func TestParseProgrammers_NoMarker(t *testing.T) {
	p := NewParser()
	if _, err := p.ParseProgrammers("flashrom v1.3.0\nsome usage text\n"); err == nil {
		t.Fatal("ParseProgrammers() without marker succeeded, want error")
	}
}

func TestParseFoundChips(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "multiple candidates",
			output: probeOutput,
			want:   []string{"W25Q64.V", "W25Q64.W"},
		},
		{
			name: "single chip",
			output: `Calibrating delay loop... OK.
Found Macronix flash chip "MX25L6406E/MX25L6408E" (8192 kB, SPI) on ch341a_spi.
`,
			want: []string{"MX25L6406E/MX25L6408E"},
		},
		{
			name: "duplicate lines collapse",
			output: `Found Winbond flash chip "W25Q64.V" (8192 kB, SPI) on ch341a_spi.
Found Winbond flash chip "W25Q64.V" (8192 kB, SPI) on ch341a_spi.
`,
			want: []string{"W25Q64.V"},
		},
		{
			name: "no chip",
			output: `Calibrating delay loop... OK.
No EEPROM/flash device found.
`,
			want: nil,
		},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ParseFoundChips(tt.output)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFoundChips() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseChipIdent(t *testing.T) {
	p := NewParser()

	vendor, model, err := p.ParseChipIdent(
		"flashrom v1.3.0 on Linux\nvendor=\"Winbond\" name=\"W25Q64.V\"\n")
	if err != nil {
		t.Fatalf("ParseChipIdent() error = %v", err)
	}
	if vendor != "Winbond" {
		t.Errorf("vendor = %q, want %q", vendor, "Winbond")
	}
	if model != "W25Q64.V" {
		t.Errorf("model = %q, want %q", model, "W25Q64.V")
	}

	if _, _, err := p.ParseChipIdent("no ident here\n"); err == nil {
		t.Error("ParseChipIdent() without ident succeeded, want error")
	}
}

func TestParseFlashSize(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    int64
		wantErr bool
	}{
		{
			name:   "size after banner",
			output: "flashrom v1.3.0 on Linux\n8388608\n",
			want:   8388608,
		},
		{
			name:   "trailing blank lines",
			output: "524288\n\n\n",
			want:   524288,
		},
		{
			name:    "non-numeric last line",
			output:  "flashrom v1.3.0 on Linux\nError: probe failed\n",
			wantErr: true,
		},
		{
			name:    "empty output",
			output:  "",
			wantErr: true,
		},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ParseFlashSize(tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFlashSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseFlashSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseWPStatus(t *testing.T) {
	p := NewParser()

	got, err := p.ParseWPStatus("flashrom v1.3.0 on Linux\nWP: write protect is disabled.\n")
	if err != nil {
		t.Fatalf("ParseWPStatus() error = %v", err)
	}
	if want := "WP: write protect is disabled."; got != want {
		t.Errorf("ParseWPStatus() = %q, want %q", got, want)
	}

	if _, err := p.ParseWPStatus("\n\n"); err == nil {
		t.Error("ParseWPStatus() on empty output succeeded, want error")
	}
}
