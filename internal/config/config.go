package config

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	defBanner        = "MarOS:"
	defTabWidth      = 4
	defRefreshMillis = 16
	defDefaultFg     = 15
	defDefaultBg     = 0
	defCursorFg      = 0
	defCursorBg      = 11
	defTimerHz       = 100

	// EnvVarPrefix is prepended to the environment variable overrides,
	// e.g. MAROS_CONSOLE_BANNER.
	EnvVarPrefix = "MAROS"
)

// CLIConfig holds the active configuration, populated by NewConfig.
var CLIConfig *Config

var replacer = strings.NewReplacer(".", "_")

// Config is the top-level configuration for the console emulator.
type Config struct {
	Console *Console `yaml:"console" mapstructure:"console"`
	Input   *Input   `yaml:"input" mapstructure:"input"`
}

// Console configures the terminal appearance.
type Console struct {
	Banner        string `yaml:"banner" mapstructure:"banner"`
	TabWidth      int    `yaml:"tab_width" mapstructure:"tab_width"`
	RefreshMillis int    `yaml:"refresh_millis" mapstructure:"refresh_millis"`
	DefaultFg     uint8  `yaml:"default_fg" mapstructure:"default_fg"`
	DefaultBg     uint8  `yaml:"default_bg" mapstructure:"default_bg"`
	CursorFg      uint8  `yaml:"cursor_fg" mapstructure:"cursor_fg"`
	CursorBg      uint8  `yaml:"cursor_bg" mapstructure:"cursor_bg"`
}

// Input configures the emulated input hardware.
type Input struct {
	TimerHz int `yaml:"timer_hz" mapstructure:"timer_hz"`
}

// DefaultConfig returns a configuration populated with the built-in
// defaults.
func DefaultConfig() *Config {
	return &Config{
		Console: &Console{
			Banner:        defBanner,
			TabWidth:      defTabWidth,
			RefreshMillis: defRefreshMillis,
			DefaultFg:     defDefaultFg,
			DefaultBg:     defDefaultBg,
			CursorFg:      defCursorFg,
			CursorBg:      defCursorBg,
		},
		Input: &Input{
			TimerHz: defTimerHz,
		},
	}
}

// NewConfig loads the configuration into CLIConfig, layering the optional
// yaml config file and any environment variable overrides on top of the
// defaults.
func NewConfig(cfgFile string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	CLIConfig = DefaultConfig()

	// Seed viper with the default values. Viper needs to know a key
	// exists in order to override it.
	b, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	if err = v.MergeConfig(bytes.NewReader(b)); err != nil {
		return err
	}

	if cfgFile != "" {
		fi, err := os.Stat(cfgFile)
		switch {
		case err != nil:
			return fmt.Errorf("unable to read config file %q: %v", cfgFile, err)
		case fi.IsDir():
			return fmt.Errorf("config file %q points to a directory", cfgFile)
		default:
			v.SetConfigFile(cfgFile)
			if err = v.MergeInConfig(); err != nil {
				return fmt.Errorf("unable to parse config file %q: %v", cfgFile, err)
			}
		}
	}

	// Use environment variables as the final override.
	v.AutomaticEnv()
	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(replacer)

	// Preload environment bindings so they are processed on load.
	bindVars(v, reflect.TypeOf(*CLIConfig), "")
	return v.Unmarshal(CLIConfig)
}

func bindVars(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		tag = prefix + tag

		switch {
		case field.Type.Kind() == reflect.Struct:
			bindVars(v, field.Type, tag+".")
		case field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct:
			bindVars(v, field.Type.Elem(), tag+".")
		default:
			v.BindEnv(tag)
		}
	}
}
