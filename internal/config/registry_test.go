package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	// Should not be empty
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should contain "flashpad"
	if !strings.Contains(configDir, "flashpad") {
		t.Errorf("GetConfigDir() = %v, should contain 'flashpad'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	// Should end with config.yaml
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}

	t.Logf("Config path: %s", configPath)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Programmers == nil {
		t.Error("NewRegistry().Programmers should not be nil")
	}

	if reg.Preferences == nil {
		t.Error("NewRegistry().Preferences should not be nil")
	}

	if !reg.Preferences.StripAfterRead {
		t.Error("NewRegistry().Preferences.StripAfterRead should be true by default")
	}

	if !reg.Preferences.PadOnWrite {
		t.Error("NewRegistry().Preferences.PadOnWrite should be true by default")
	}

	if reg.Preferences.ProbeTimeout != 30 {
		t.Errorf("NewRegistry().Preferences.ProbeTimeout = %v, want 30", reg.Preferences.ProbeTimeout)
	}
}

func TestRegistryEnsureProgrammer(t *testing.T) {
	reg := NewRegistry()

	// First call should create entry
	p1 := reg.EnsureProgrammer("ch341a_spi")
	if p1 == nil {
		t.Fatal("EnsureProgrammer() returned nil")
	}

	// Second call should return same entry
	p2 := reg.EnsureProgrammer("ch341a_spi")
	if p1 != p2 {
		t.Error("EnsureProgrammer() should return same instance for same name")
	}

	// Different name should create new entry
	p3 := reg.EnsureProgrammer("linux_spi:dev=/dev/spidev0.0")
	if p1 == p3 {
		t.Error("EnsureProgrammer() should create new instance for different name")
	}
}

func TestRegistryRecordOperation(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.RecordOperation("ch341a_spi", "W25Q64.V")
	after := time.Now()

	p := reg.GetProgrammer("ch341a_spi")
	if p == nil {
		t.Fatal("Programmer should exist after RecordOperation()")
	}

	if p.LastChip != "W25Q64.V" {
		t.Errorf("LastChip = %v, want W25Q64.V", p.LastChip)
	}

	if p.LastUsed.Before(before) || p.LastUsed.After(after) {
		t.Errorf("LastUsed = %v, should be between %v and %v", p.LastUsed, before, after)
	}

	// Empty chip leaves the previous value alone
	reg.RecordOperation("ch341a_spi", "")
	if p.LastChip != "W25Q64.V" {
		t.Errorf("LastChip after empty record = %v, want W25Q64.V", p.LastChip)
	}
}

func TestRegistrySetProgrammerNickname(t *testing.T) {
	reg := NewRegistry()

	reg.SetProgrammerNickname("ch341a_spi", "blue clip")

	p := reg.GetProgrammer("ch341a_spi")
	if p == nil {
		t.Fatal("Programmer should exist after SetProgrammerNickname()")
	}

	if p.Nickname != "blue clip" {
		t.Errorf("Nickname = %v, want 'blue clip'", p.Nickname)
	}
}

func TestRegistryResolveProgrammer(t *testing.T) {
	reg := NewRegistry()

	// Nothing configured
	if got := reg.ResolveProgrammer(""); got != "" {
		t.Errorf("ResolveProgrammer(\"\") = %q, want empty", got)
	}

	// Most recently used wins when no flag or default
	reg.EnsureProgrammer("ft2232_spi").LastUsed = time.Now().Add(-time.Hour)
	reg.EnsureProgrammer("ch341a_spi").LastUsed = time.Now()
	if got := reg.ResolveProgrammer(""); got != "ch341a_spi" {
		t.Errorf("ResolveProgrammer(\"\") = %q, want ch341a_spi", got)
	}

	// Configured default beats recency
	reg.Preferences.DefaultProgrammer = "ft2232_spi"
	if got := reg.ResolveProgrammer(""); got != "ft2232_spi" {
		t.Errorf("ResolveProgrammer(\"\") = %q, want ft2232_spi", got)
	}

	// Flag beats everything
	if got := reg.ResolveProgrammer("dediprog"); got != "dediprog" {
		t.Errorf("ResolveProgrammer(dediprog) = %q, want dediprog", got)
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	// Create and populate registry
	reg := NewRegistry()
	reg.SetProgrammerNickname("ch341a_spi", "blue clip")
	reg.RecordOperation("ch341a_spi", "W25Q64.V")
	reg.Preferences.DefaultProgrammer = "ch341a_spi"
	reg.Preferences.FlashromPath = "/usr/local/bin/flashrom"

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}

	if err := os.WriteFile(testConfigPath, data, 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	raw, err := os.ReadFile(testConfigPath)
	if err != nil {
		t.Fatalf("Failed to read test config: %v", err)
	}

	var loaded Registry
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		t.Fatalf("Failed to parse test config: %v", err)
	}

	if loaded.Version != 1 {
		t.Errorf("Loaded version = %v, want 1", loaded.Version)
	}

	p := loaded.GetProgrammer("ch341a_spi")
	if p == nil {
		t.Fatal("Programmer should exist in loaded registry")
	}
	if p.Nickname != "blue clip" {
		t.Errorf("Loaded nickname = %v, want 'blue clip'", p.Nickname)
	}
	if p.LastChip != "W25Q64.V" {
		t.Errorf("Loaded last chip = %v, want W25Q64.V", p.LastChip)
	}

	if loaded.Preferences.DefaultProgrammer != "ch341a_spi" {
		t.Errorf("Loaded default programmer = %v, want ch341a_spi", loaded.Preferences.DefaultProgrammer)
	}
	if loaded.Preferences.FlashromPath != "/usr/local/bin/flashrom" {
		t.Errorf("Loaded flashrom path = %v, want /usr/local/bin/flashrom", loaded.Preferences.FlashromPath)
	}
}

func TestCommonProgrammerDescriptions(t *testing.T) {
	expected := []string{
		"ch341a_spi", "ft2232_spi", "linux_spi", "serprog",
		"buspirate_spi", "dediprog", "internal", "dummy",
	}

	for _, name := range expected {
		if _, exists := CommonProgrammerDescriptions[name]; !exists {
			t.Errorf("CommonProgrammerDescriptions missing entry: %s", name)
		}
	}
}

// Benchmark tests

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}

func BenchmarkEnsureProgrammer(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.EnsureProgrammer("ch341a_spi")
	}
}
