package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for Keyhound. All fields
// are pointers so an unset key can be told apart from a zero value when
// merging with CLI flags.
type FileConfig struct {
	Include  *string `yaml:"include"`
	Exclude  *string `yaml:"exclude"`
	Workers  *int    `yaml:"workers"`
	NoColor  *bool   `yaml:"no_color"`
	NoCache  *bool   `yaml:"no_cache"`
	Progress *bool   `yaml:"progress"`

	// Validator knobs; defaults match the built-in thresholds.
	EntropyThreshold *float64 `yaml:"entropy_threshold"`
	MinSecretLength  *int     `yaml:"min_secret_length"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .keyhound.yml/.yaml and keyhound.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".keyhound.yml", ".keyhound.yaml", "keyhound.yml", "keyhound.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "keyhound", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Merge overlays local over global: any field set locally wins.
func Merge(global, local FileConfig) FileConfig {
	out := global
	if local.Include != nil {
		out.Include = local.Include
	}
	if local.Exclude != nil {
		out.Exclude = local.Exclude
	}
	if local.Workers != nil {
		out.Workers = local.Workers
	}
	if local.NoColor != nil {
		out.NoColor = local.NoColor
	}
	if local.NoCache != nil {
		out.NoCache = local.NoCache
	}
	if local.Progress != nil {
		out.Progress = local.Progress
	}
	if local.EntropyThreshold != nil {
		out.EntropyThreshold = local.EntropyThreshold
	}
	if local.MinSecretLength != nil {
		out.MinSecretLength = local.MinSecretLength
	}
	return out
}
