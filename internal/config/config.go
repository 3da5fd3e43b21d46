package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const (
	DefaultPrompt      = ": "
	DefaultHistorySize = 1000
	DefaultMaxArgs     = 512
	DefaultMaxLine     = 2048
	DefaultLogLevel    = "warn"
)

type Config struct {
	Prompt      string `yaml:"prompt"`
	HomeDir     string `yaml:"home_dir"`
	HistoryFile string `yaml:"history_file"`
	HistorySize int    `yaml:"history_size"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	NullDevice  string `yaml:"null_device"`
	MaxArgs     int    `yaml:"max_args"`
	MaxLine     int    `yaml:"max_line"`
	Plain       bool   `yaml:"plain"`
}

// DefaultPath is the config file consulted when none is given on the
// command line.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".smallsh.yml"
	}
	return filepath.Join(home, ".smallsh.yml")
}

// Load reads file and fills in defaults. A missing file yields the
// default configuration.
func Load(file string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(file)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", file, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", file, err)
		}
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}

	if c.HomeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		c.HomeDir = home
	}

	if c.HistoryFile == "" {
		c.HistoryFile = filepath.Join(c.HomeDir, ".smallsh_history")
	}
	if c.HistorySize <= 0 {
		c.HistorySize = DefaultHistorySize
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.NullDevice == "" {
		c.NullDevice = os.DevNull
	}
	if c.MaxArgs <= 0 {
		c.MaxArgs = DefaultMaxArgs
	}
	if c.MaxLine <= 0 {
		c.MaxLine = DefaultMaxLine
	}
	return nil
}
