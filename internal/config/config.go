// Package config provides configuration management for sitehl.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ProjectFile is the config file looked up in the working directory.
const ProjectFile = "sitehl.yml"

// Config holds the sitehl configuration.
type Config struct {
	PublicDir      string   `yaml:"public_dir"`
	Include        []string `yaml:"include,omitempty"`
	Exclude        []string `yaml:"exclude,omitempty"`
	Minify         bool     `yaml:"minify"`
	ChromaFallback bool     `yaml:"chroma_fallback"`
	ChromaStyle    string   `yaml:"chroma_style,omitempty"`
	OutputFormat   string   `yaml:"output_format,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		PublicDir:      "public",
		Include:        []string{"**/*.html"},
		ChromaFallback: true,
		ChromaStyle:    "monokai",
	}
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	if c.PublicDir == "" {
		return errors.New("public_dir is required")
	}
	if len(c.Include) == 0 {
		return errors.New("include needs at least one pattern")
	}
	for _, p := range c.Include {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid include pattern %q", p)
		}
	}
	for _, p := range c.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if dir := os.Getenv("SITEHL_PUBLIC_DIR"); dir != "" {
		c.PublicDir = dir
	}
	if v := os.Getenv("SITEHL_MINIFY"); v != "" {
		if minify, err := strconv.ParseBool(v); err == nil {
			c.Minify = minify
		}
	}
	if style := os.Getenv("SITEHL_CHROMA_STYLE"); style != "" {
		c.ChromaStyle = style
	}
}

// DefaultConfigPath returns the user-level configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "sitehl", "config.yml")
	}

	// Fall back to ~/.config/sitehl/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".sitehl", "config.yml")
	}

	return filepath.Join(home, ".config", "sitehl", "config.yml")
}

// ResolvePath picks the config file to use: explicit if set, then
// sitehl.yml in dir if it exists, then DefaultConfigPath.
func ResolvePath(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	project := filepath.Join(dir, ProjectFile)
	if _, err := os.Stat(project); err == nil {
		return project
	}
	return DefaultConfigPath()
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path. Fields the file
// leaves out keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file is not an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
