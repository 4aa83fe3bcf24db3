package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the CLI's TOML configuration file.
type FileConfig struct {
	Generate GenerateConfig `toml:"generate"`
	Theme    ThemeConfig    `toml:"theme"`
}

// GenerateConfig maps generation defaults. Unset keys stay nil so that the
// built-in defaults apply.
type GenerateConfig struct {
	Length  *int    `toml:"length"`
	Upper   *bool   `toml:"upper"`
	Lower   *bool   `toml:"lower"`
	Digits  *bool   `toml:"digits"`
	Symbols *bool   `toml:"symbols"`
	Copy    *bool   `toml:"copy"`
	Hide    *bool   `toml:"hide"`
	SaveDir *string `toml:"save-dir"`
}

// ThemeConfig maps display settings.
type ThemeConfig struct {
	Dark *bool `toml:"dark"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// DefaultTemplate is written by `passgen config` when no file exists.
func DefaultTemplate() string {
	return `# passgen configuration

[generate]
# length = 16
# upper = true
# lower = true
# digits = true
# symbols = true
# copy = false
# hide = false
# save-dir = "~/Downloads"

[theme]
# dark = true
`
}
