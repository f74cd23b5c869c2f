package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	if err := NewConfig(""); err != nil {
		t.Fatal(err)
	}

	if got := CLIConfig.Console.Banner; got != "MarOS:" {
		t.Errorf("expected the default banner; got %q", got)
	}
	if got := CLIConfig.Console.TabWidth; got != 4 {
		t.Errorf("expected a default tab width of 4; got %d", got)
	}
	if fg, bg := CLIConfig.Console.CursorFg, CLIConfig.Console.CursorBg; fg != 0 || bg != 11 {
		t.Errorf("expected the default cursor colors 0/11; got %d/%d", fg, bg)
	}
	if got := CLIConfig.Input.TimerHz; got != 100 {
		t.Errorf("expected a default timer rate of 100Hz; got %d", got)
	}
}

func TestConfigFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maros.yaml")
	data := []byte("console:\n  banner: custom\n  tab_width: 8\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := NewConfig(path); err != nil {
		t.Fatal(err)
	}

	if got := CLIConfig.Console.Banner; got != "custom" {
		t.Errorf("expected the banner from the config file; got %q", got)
	}
	if got := CLIConfig.Console.TabWidth; got != 8 {
		t.Errorf("expected the tab width from the config file; got %d", got)
	}

	// Keys absent from the file keep their defaults.
	if got := CLIConfig.Console.RefreshMillis; got != 16 {
		t.Errorf("expected the default refresh interval; got %d", got)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MAROS_CONSOLE_BANNER", "from-env")
	t.Setenv("MAROS_INPUT_TIMER_HZ", "250")

	if err := NewConfig(""); err != nil {
		t.Fatal(err)
	}

	if got := CLIConfig.Console.Banner; got != "from-env" {
		t.Errorf("expected the banner from the environment; got %q", got)
	}
	if got := CLIConfig.Input.TimerHz; got != 250 {
		t.Errorf("expected the timer rate from the environment; got %d", got)
	}
}

func TestBadConfigFile(t *testing.T) {
	if err := NewConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
	if err := NewConfig(t.TempDir()); err == nil {
		t.Error("expected an error when the config file is a directory")
	}
}
