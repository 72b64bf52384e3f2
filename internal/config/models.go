package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for programmers and application preferences.
type Registry struct {
	Version     int                    `yaml:"version"`
	Programmers map[string]*Programmer `yaml:"programmers,omitempty"` // Keyed by flashrom programmer name
	Preferences *Preferences           `yaml:"preferences,omitempty"`
}

// Programmer represents user-defined metadata for a single programmer.
// This is keyed by the flashrom programmer name in the Registry
// (e.g., "ch341a_spi", "linux_spi:dev=/dev/spidev0.0").
type Programmer struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name (e.g., "blue CH341A clip")
	LastChip string    `yaml:"last_chip,omitempty"` // Last chip probed through this programmer
	LastUsed time.Time `yaml:"last_used,omitempty"` // Last successful operation time
	Notes    string    `yaml:"notes,omitempty"`     // Free-form notes (wiring, voltage mods)
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultProgrammer string `yaml:"default_programmer,omitempty"` // Programmer used when --programmer is omitted
	FlashromPath      string `yaml:"flashrom_path,omitempty"`      // Explicit flashrom binary path (empty = $PATH lookup)
	ScratchDir        string `yaml:"scratch_dir,omitempty"`        // Directory for temporary images (empty = system default)
	StripAfterRead    bool   `yaml:"strip_after_read"`             // Strip trailing erased-byte padding from dumps
	PadOnWrite        bool   `yaml:"pad_on_write"`                 // Pad undersized images to chip size before writing
	ProbeTimeout      int    `yaml:"probe_timeout"`                // flashrom probe timeout in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Programmers: make(map[string]*Programmer),
		Preferences: &Preferences{
			StripAfterRead: true,
			PadOnWrite:     true,
			ProbeTimeout:   30,
		},
	}
}

// GetProgrammer retrieves programmer metadata by flashrom name.
// Returns nil if the programmer doesn't exist in the registry.
func (r *Registry) GetProgrammer(name string) *Programmer {
	return r.Programmers[name]
}

// EnsureProgrammer ensures a programmer entry exists in the registry.
// If the programmer doesn't exist, creates a new entry with default values.
// Returns the entry (existing or newly created).
func (r *Registry) EnsureProgrammer(name string) *Programmer {
	if r.Programmers == nil {
		r.Programmers = make(map[string]*Programmer)
	}

	if p, exists := r.Programmers[name]; exists {
		return p
	}

	p := &Programmer{}
	r.Programmers[name] = p
	return p
}

// RecordOperation updates the last used timestamp and chip for a programmer.
// Called after any successful flashrom operation so subsequent commands can
// default to the most recently working setup.
func (r *Registry) RecordOperation(name, chip string) {
	p := r.EnsureProgrammer(name)
	p.LastUsed = time.Now()
	if chip != "" {
		p.LastChip = chip
	}
}

// SetProgrammerNickname sets a user-friendly nickname for a programmer.
func (r *Registry) SetProgrammerNickname(name, nickname string) {
	p := r.EnsureProgrammer(name)
	p.Nickname = nickname
}

// Programmer resolution order for commands: the --programmer flag wins,
// then the configured default, then the most recently used entry.

// ResolveProgrammer picks the programmer a command should use when the
// flag value is empty. Returns "" if nothing is configured.
func (r *Registry) ResolveProgrammer(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if r.Preferences != nil && r.Preferences.DefaultProgrammer != "" {
		return r.Preferences.DefaultProgrammer
	}

	var newest string
	var newestTime time.Time
	for name, p := range r.Programmers {
		if p.LastUsed.After(newestTime) {
			newest = name
			newestTime = p.LastUsed
		}
	}
	return newest
}

// CommonProgrammerDescriptions maps well-known flashrom programmer names
// to human-readable descriptions. Used for display purposes; any programmer
// name flashrom accepts remains valid even if absent here.
var CommonProgrammerDescriptions = map[string]string{
	"ch341a_spi":    "WinChipHead CH341A USB programmer",
	"ft2232_spi":    "FTDI FT2232/FT4232/FT232H based programmer",
	"linux_spi":     "Linux spidev interface (e.g., Raspberry Pi)",
	"serprog":       "Serial programmer protocol (e.g., Arduino flasher)",
	"buspirate_spi": "Dangerous Prototypes Bus Pirate",
	"dediprog":      "Dediprog SF100/SF600",
	"internal":      "Host's own flash chip (requires root)",
	"dummy":         "Virtual programmer for testing",
}
