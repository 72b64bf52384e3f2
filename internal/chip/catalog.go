// Package chip carries a catalog of known flash chips used to annotate
// probe results. The catalog is embedded at build time and keyed by the
// chip name flashrom reports, so a probe hit can be enriched with vendor,
// capacity and package details without another flashrom round trip.
package chip

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed chips/chips.yaml
var chipsYAML []byte

// Chip describes a known flash chip.
type Chip struct {
	// Name is the chip name as flashrom reports it (e.g., "W25Q64.V")
	Name string `yaml:"name"`

	// Vendor is the chip vendor (e.g., "Winbond")
	Vendor string `yaml:"vendor"`

	// SizeBytes is the chip capacity in bytes
	SizeBytes int64 `yaml:"size_bytes"`

	// Bus is the chip interface (e.g., "SPI", "LPC", "Parallel")
	Bus string `yaml:"bus"`

	// VoltageMin and VoltageMax bound the supply voltage in millivolts.
	// A 1.8V part in a 3.3V clip is a common way to kill a chip, so the
	// CLI surfaces this next to probe results.
	VoltageMin int `yaml:"voltage_min_mv"`
	VoltageMax int `yaml:"voltage_max_mv"`

	// Tested indicates the chip has been exercised with this tool
	Tested bool `yaml:"tested"`

	// Notes contains additional information about this chip
	Notes string `yaml:"notes,omitempty"`
}

// String returns a human-readable representation of the chip.
func (c *Chip) String() string {
	testedStr := ""
	if c.Tested {
		testedStr = " (tested)"
	}
	return fmt.Sprintf("%s %s, %d kB, %s%s", c.Vendor, c.Name, c.SizeBytes/1024, c.Bus, testedStr)
}

// Voltage returns the supply voltage range as a display string.
func (c *Chip) Voltage() string {
	if c.VoltageMin == 0 && c.VoltageMax == 0 {
		return "unknown"
	}
	if c.VoltageMin == c.VoltageMax {
		return fmt.Sprintf("%.1fV", float64(c.VoltageMin)/1000)
	}
	return fmt.Sprintf("%.1fV-%.1fV", float64(c.VoltageMin)/1000, float64(c.VoltageMax)/1000)
}

// FormatSize renders a byte count as a compact capacity string
// (e.g., 8388608 -> "8 MiB"). Sizes that are not a whole number of
// binary units fall back to an exact byte count.
func FormatSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MiB", n/(1<<20))
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KiB", n/(1<<10))
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// Catalog holds all known chips.
type Catalog struct {
	// Chips is a slice of all catalog entries
	Chips []*Chip

	// index maps chip names to entries for fast lookup
	index map[string]*Chip

	// mu protects the index
	mu sync.RWMutex
}

// catalogContainer is for YAML unmarshaling
type catalogContainer struct {
	Chips []*Chip `yaml:"chips"`
}

var (
	globalCatalog     *Catalog
	globalCatalogOnce sync.Once
	globalCatalogErr  error
)

// Load loads the embedded chip catalog. Safe to call multiple times; the
// catalog is parsed only once.
func Load() (*Catalog, error) {
	globalCatalogOnce.Do(func() {
		globalCatalog, globalCatalogErr = loadCatalog()
	})
	return globalCatalog, globalCatalogErr
}

func loadCatalog() (*Catalog, error) {
	var container catalogContainer
	if err := yaml.Unmarshal(chipsYAML, &container); err != nil {
		return nil, fmt.Errorf("failed to parse chips.yaml: %w", err)
	}

	catalog := &Catalog{
		Chips: container.Chips,
		index: make(map[string]*Chip),
	}
	for _, c := range catalog.Chips {
		catalog.index[c.Name] = c
	}
	return catalog, nil
}

// Get retrieves a chip by its flashrom name.
// Returns nil, false if the chip is not in the catalog.
func (cat *Catalog) Get(name string) (*Chip, bool) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	c, ok := cat.index[name]
	return c, ok
}

// List returns all catalog entries.
func (cat *Catalog) List() []*Chip {
	return cat.Chips
}

// Count returns the number of chips in the catalog.
func (cat *Catalog) Count() int {
	return len(cat.Chips)
}

// ByVendor returns all catalog entries for the given vendor.
func (cat *Catalog) ByVendor(vendor string) []*Chip {
	chips := make([]*Chip, 0)
	for _, c := range cat.Chips {
		if c.Vendor == vendor {
			chips = append(chips, c)
		}
	}
	return chips
}
