package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds tunable analysis thresholds. Zero values mean "use default";
// Normalize fills them in after load.
type Config struct {
	// MaxChainDepth is the dependency depth above which the validator
	// warns about a deep chain.
	MaxChainDepth int `yaml:"max_chain_depth"`
	// MaxDirectDeps is the direct dependency count above which the
	// validator warns about an overloaded task.
	MaxDirectDeps int `yaml:"max_direct_deps"`
	// TreeDepth is the default expansion depth for dependency trees.
	TreeDepth int `yaml:"tree_depth"`
}

// Default returns the built-in thresholds.
func Default() Config {
	return Config{
		MaxChainDepth: 5,
		MaxDirectDeps: 10,
		TreeDepth:     5,
	}
}

// Load reads a YAML config file and fills missing fields with defaults.
// A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	loaded.Normalize()
	return loaded, nil
}

// Normalize replaces unset or nonsense values with defaults.
func (c *Config) Normalize() {
	def := Default()
	if c.MaxChainDepth <= 0 {
		c.MaxChainDepth = def.MaxChainDepth
	}
	if c.MaxDirectDeps <= 0 {
		c.MaxDirectDeps = def.MaxDirectDeps
	}
	if c.TreeDepth <= 0 {
		c.TreeDepth = def.TreeDepth
	}
}
