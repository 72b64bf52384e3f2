package urls

// Documentation URLs for guides and troubleshooting.
// Most point at the upstream flashrom documentation; project-specific
// pages live on the flashpad site.

// SupportedHardware lists the flash chips and programmers flashrom
// supports, with per-chip test status.
const SupportedHardware = "https://www.flashrom.org/supported_hw/index.html"

// SupportedProgrammers covers programmer-specific setup, wiring and
// known quirks (CH341A, FT2232, Raspberry Pi SPI, internal, ...).
const SupportedProgrammers = "https://www.flashrom.org/supported_hw/supported_prog/index.html"

// InSystemProgramming explains in-system programming with test clips,
// including the powering pitfalls that make probes fail.
const InSystemProgramming = "https://www.flashrom.org/user_docs/in_system.html"

// FlashromInstall is the flashrom installation guide for users whose
// systems don't ship a recent enough package.
const FlashromInstall = "https://www.flashrom.org/dev_guide/building_from_source.html"

// TroubleshootingGuide provides solutions to common issues encountered
// when probing, reading, and writing flash chips.
const TroubleshootingGuide = "https://github.com/veska/flashpad/blob/main/docs/troubleshooting.md"

// GettingStarted is the quick start guide for new users.
const GettingStarted = "https://github.com/veska/flashpad/blob/main/README.md"
