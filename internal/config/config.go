// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Bundle layout
	BundleRoot      string `json:"bundle_root,omitempty"`      // Root of the replication bundle (default ".")
	DataDir         string `json:"data_dir,omitempty"`         // Dataset CSVs (default <root>/data)
	DictionariesDir string `json:"dictionaries_dir,omitempty"` // Dictionary CSVs (default <root>/dictionaries)
	ProvenanceDir   string `json:"provenance_dir,omitempty"`   // Provenance sources table (default <root>/provenance)

	// Behavior
	Strict  bool `json:"strict,omitempty"`  // Escalate cross-file reference findings to errors
	Verbose bool `json:"verbose,omitempty"` // Print boxed report summary
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that any explicitly configured directories exist.
// Defaulted directories are checked later by bundle loading, which
// reports missing paths as setup errors.
func (c *Config) Validate() error {
	for _, dir := range []string{c.BundleRoot, c.DataDir, c.DictionariesDir, c.ProvenanceDir} {
		if dir == "" {
			continue
		}
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: directory not found: %s", dir)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: not a directory: %s", dir)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled
// from defaults. This is used to apply config file values as defaults
// for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.BundleRoot == "" {
		result.BundleRoot = defaults.BundleRoot
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DictionariesDir == "" {
		result.DictionariesDir = defaults.DictionariesDir
	}
	if result.ProvenanceDir == "" {
		result.ProvenanceDir = defaults.ProvenanceDir
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ResolveDataDir returns the effective data directory.
func (c *Config) ResolveDataDir() string {
	return c.resolve(c.DataDir, "data")
}

// ResolveDictionariesDir returns the effective dictionaries directory.
func (c *Config) ResolveDictionariesDir() string {
	return c.resolve(c.DictionariesDir, "dictionaries")
}

// ResolveProvenanceDir returns the effective provenance directory.
func (c *Config) ResolveProvenanceDir() string {
	return c.resolve(c.ProvenanceDir, "provenance")
}

func (c *Config) resolve(explicit, conventional string) string {
	if explicit != "" {
		return explicit
	}
	root := c.BundleRoot
	if root == "" {
		root = "."
	}
	return filepath.Join(root, conventional)
}
