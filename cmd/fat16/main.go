package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// GlobalConfig is the global tool configuration
type GlobalConfig struct {
	// Verbose is used if the verbose flag is not given.
	Verbose *int `yaml:"verbose"`
	// MaxChainLength limits every cluster chain. 0 keeps the default.
	MaxChainLength int `yaml:"max-chain-length"`
}

var (
	// Config is the global tool configuration
	Config = GlobalConfig{}

	// appFs holds the config file and the images.
	appFs afero.Fs = afero.NewOsFs()
)

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".config", "fat16", "config.yml")
}

// readConfig replaces Config with the content of cfgPath.
// A missing file is only an error if the path was set explicitly.
func readConfig(cfgPath string, explicit bool) error {
	Config = GlobalConfig{}

	cfgBytes, err := afero.ReadFile(appFs, cfgPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read %q: %w", cfgPath, err)
	}
	if err := yaml.Unmarshal(cfgBytes, &Config); err != nil {
		return fmt.Errorf("failed to parse %q: %w", cfgPath, err)
	}
	if Config.MaxChainLength < 0 {
		return fmt.Errorf("failed to parse %q: max-chain-length must not be negative", cfgPath)
	}
	return nil
}

func main() {
	if err := newCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
