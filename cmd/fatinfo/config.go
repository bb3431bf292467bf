package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Config is the optional configuration file of fatinfo.
// Flags given on the command line take precedence.
type Config struct {
	Lossy      bool `yaml:"lossy"`
	Deleted    bool `yaml:"deleted"`
	SkipChecks bool `yaml:"skip-checks"`
}

// defaultConfigPath is empty if the home directory is unknown.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fatinfo", "config.yml")
}

// readConfig reads the configuration from path.
// A missing file is only an error if the path was given explicitly.
func readConfig(fs afero.Fs, path string, explicit bool) (Config, error) {
	var cfg Config
	if path == "" && !explicit {
		return cfg, nil
	}

	b, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %q: %w", path, err)
	}

	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return cfg, nil
}
