package flashrom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Parser extracts structured results from flashrom's textual output.
// It uses compiled regex patterns for the output formats the executor
// depends on. Flashrom's output is not a stable machine interface, so
// every method returns a *ParseError when the expected shape is missing
// rather than guessing.
type Parser struct {
	versionPattern   *regexp.Regexp // Matches: flashrom v1.3.0 ... or flashrom 1.3.0
	foundChipPattern *regexp.Regexp // Matches: Found Winbond flash chip "W25Q64.V" (8192 kB, SPI) ...
	chipIdentPattern *regexp.Regexp // Matches: vendor="Winbond" name="W25Q64.V"
	integerPattern   *regexp.Regexp // Matches: a bare integer line
}

// NewParser creates a new parser with compiled regex patterns.
func NewParser() *Parser {
	return &Parser{
		versionPattern:   regexp.MustCompile(`flashrom\s+(v?[0-9][^\s]*)`),
		foundChipPattern: regexp.MustCompile(`Found\s+.+?\s+flash chip\s+"([^"]+)"`),
		chipIdentPattern: regexp.MustCompile(`vendor="([^"]+)"\s+name="([^"]+)"`),
		integerPattern:   regexp.MustCompile(`^\d+$`),
	}
}

// ParseVersion extracts the flashrom version from --version output.
// Example input: flashrom v1.3.0 on Linux 6.1.0 (x86_64)
func (p *Parser) ParseVersion(output string) (string, error) {
	matches := p.versionPattern.FindStringSubmatch(output)
	if matches == nil {
		return "", &ParseError{
			Operation: "version",
			Field:     "version",
			Output:    output,
			Err:       fmt.Errorf("no version string found"),
		}
	}
	return matches[1], nil
}

// ParseProgrammers extracts the programmer driver names from flashrom's
// usage output. The list appears after a "Valid choices are:" marker,
// wrapped over several comma-separated lines terminated by a period:
//
//	--programmer <name>[:<param>]  specify the programmer device. One of
//	    internal, dummy, nic3com, gfxnvidia, drkaiser,
//	    satasii, atavia, it8212, ft2232_spi, serprog.
func (p *Parser) ParseProgrammers(output string) ([]string, error) {
	lines := strings.Split(output, "\n")

	start := -1
	for i, line := range lines {
		if strings.Contains(line, "Valid choices are:") {
			start = i + 1
			break
		}
	}
	if start == -1 {
		return nil, &ParseError{
			Operation: "programmers",
			Field:     "choices",
			Output:    output,
			Err:       fmt.Errorf(`marker "Valid choices are:" not found`),
		}
	}

	var programmers []string
	done := false
	for _, line := range lines[start:] {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		// The final list line ends in a period.
		if strings.HasSuffix(line, ".") {
			done = true
		}
		line = strings.ReplaceAll(line, ".", "")
		line = strings.ReplaceAll(line, ",", "")
		programmers = append(programmers, strings.Fields(line)...)
		if done {
			break
		}
	}

	if len(programmers) == 0 {
		return nil, &ParseError{
			Operation: "programmers",
			Field:     "choices",
			Output:    output,
			Err:       fmt.Errorf("programmer list is empty"),
		}
	}
	return programmers, nil
}

// ParseFoundChips extracts chip names from probe output. Each candidate
// chip appears on its own "Found ..." line:
//
//	Found Winbond flash chip "W25Q64.V" (8192 kB, SPI) on ch341a_spi.
//
// Returns an empty slice when no chips were found; the caller decides
// whether that is an error.
func (p *Parser) ParseFoundChips(output string) []string {
	var chips []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(output, "\n") {
		matches := p.foundChipPattern.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		if !seen[matches[1]] {
			seen[matches[1]] = true
			chips = append(chips, matches[1])
		}
	}
	return chips
}

// ParseChipIdent extracts the vendor and model from --flash-name output:
//
//	vendor="Winbond" name="W25Q64.V"
func (p *Parser) ParseChipIdent(output string) (vendor, model string, err error) {
	matches := p.chipIdentPattern.FindStringSubmatch(output)
	if matches == nil {
		return "", "", &ParseError{
			Operation: "chip-ident",
			Field:     "vendor/name",
			Output:    output,
			Err:       fmt.Errorf(`no vendor="..." name="..." pair found`),
		}
	}
	return matches[1], matches[2], nil
}

// ParseFlashSize extracts the chip size in bytes from --flash-size output.
// Flashrom prints the size as a bare integer on the last line, after any
// banner output.
func (p *Parser) ParseFlashSize(output string) (int64, error) {
	line, ok := lastNonEmptyLine(output)
	if !ok || !p.integerPattern.MatchString(line) {
		return 0, &ParseError{
			Operation: "chip-size",
			Field:     "size",
			Output:    output,
			Err:       fmt.Errorf("last line is not an integer"),
		}
	}

	size, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, &ParseError{
			Operation: "chip-size",
			Field:     "size",
			Output:    output,
			Err:       err,
		}
	}
	return size, nil
}

// ParseWPStatus extracts the write-protection status from --wp-status
// output. The status is the last non-empty line of the report.
func (p *Parser) ParseWPStatus(output string) (string, error) {
	line, ok := lastNonEmptyLine(output)
	if !ok {
		return "", &ParseError{
			Operation: "wp-status",
			Field:     "status",
			Output:    output,
			Err:       fmt.Errorf("output is empty"),
		}
	}
	return line, nil
}

// lastNonEmptyLine returns the last line of output that contains more
// than whitespace.
func lastNonEmptyLine(output string) (string, bool) {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line, true
		}
	}
	return "", false
}
