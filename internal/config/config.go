// Package config loads alids settings from an optional .alids.yml file.
//
// Settings provide project-level defaults for the CLI flags, so a repository
// can pin, for example, its naming convention (identifiers in file names)
// or the directories to exclude. Flags given explicitly on the command line
// always win over the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileNames are the config file names searched for, in priority order.
var FileNames = []string{".alids.yml", ".alids.yaml"}

// Config holds the settings read from .alids.yml.
type Config struct {
	// Extension is the recognized AL source extension, including the dot.
	Extension string `yaml:"extension"`

	// IdentifierFromName reads object IDs from file names ("PEX50292 - ...").
	IdentifierFromName bool `yaml:"identifierFromName"`

	// ObjectNameFromFileName reads the extended object's name from the
	// file name instead of the "extends" clause.
	ObjectNameFromFileName bool `yaml:"objectNameFromFileName"`

	// Exclude lists glob patterns (slash-separated, relative to each
	// scanned root) of files and directories to skip.
	Exclude []string `yaml:"exclude"`

	// Manifest is the path to app.json. Relative paths are resolved
	// against the config file's directory. Empty means auto-detect.
	Manifest string `yaml:"manifest"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Extension: ".al",
		Exclude:   []string{".alpackages/**", ".snapshots/**"},
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("extension %q must start with a dot, e.g. \".al\"", c.Extension)
	}
	if strings.ContainsAny(c.Extension, `/\`) {
		return fmt.Errorf("extension %q must not contain path separators", c.Extension)
	}
	for _, pattern := range c.Exclude {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("exclude patterns must not be empty")
		}
	}
	return nil
}

// ManifestPath returns Manifest resolved against the config file's directory.
func (c *Config) ManifestPath() string {
	if c.Manifest == "" || filepath.IsAbs(c.Manifest) || c.Path == "" {
		return c.Manifest
	}
	return filepath.Join(filepath.Dir(c.Path), c.Manifest)
}

// Find returns the path of the first config file present in dir, or ""
// when there is none.
func Find(dir string) string {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Load reads the config file at path on top of Default().
//
// Keys not listed above are rejected so that typos ("identifierFromNames")
// surface instead of being silently ignored. An empty file yields the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir loads the config file found in dir, or returns Default() when
// dir has none.
func LoadDir(dir string) (*Config, error) {
	path := Find(dir)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
