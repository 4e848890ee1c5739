package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/inference-gateway/keybind/internal/logger"
	yaml "gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the project local configuration directory
	ConfigDirName = ".keybind"

	// ConfigFileName is the configuration file inside ConfigDirName
	ConfigFileName = "config.yaml"

	// DefaultSource tags the bindings published by the motion mode
	DefaultSource = "wbmm"

	// EnvPrefix is the prefix of environment overrides, e.g. KEYBIND_BINDINGS_PATH
	EnvPrefix = "KEYBIND"
)

// Config represents the keybind configuration
type Config struct {
	Bindings BindingsConfig `yaml:"bindings" mapstructure:"bindings"`
	Motion   MotionConfig   `yaml:"motion" mapstructure:"motion"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// BindingsConfig controls where key bindings come from and how they are published
type BindingsConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	Source      string `yaml:"source" mapstructure:"source"`
	Priority    int    `yaml:"priority" mapstructure:"priority"`
	Watch       bool   `yaml:"watch" mapstructure:"watch"`
	ShowSummary bool   `yaml:"show_summary" mapstructure:"show_summary"`
}

// MotionConfig contains the word boundary motion settings
type MotionConfig struct {
	SubwordBoundary bool `yaml:"subword_boundary" mapstructure:"subword_boundary"`
	AutoSelect      bool `yaml:"auto_select" mapstructure:"auto_select"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Bindings: BindingsConfig{
			Path:        "",
			Source:      DefaultSource,
			Priority:    0,
			Watch:       false,
			ShowSummary: false,
		},
		Motion: MotionConfig{
			SubwordBoundary: true,
			AutoSelect:      false,
		},
		Logging: LoggingConfig{
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from file. A missing file yields DefaultConfig.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath()
		logger.Debug("Using default config path", "path", configPath)
	} else {
		logger.Debug("Using custom config path", "path", configPath)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		logger.Debug("Config file not found, using default configuration", "path", configPath)
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		logger.Error("Failed to read config file", "path", configPath, "error", err)
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		logger.Error("Failed to parse config file", "path", configPath, "error", err)
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	logger.Debug("Successfully loaded config", "path", configPath, "source", cfg.Bindings.Source)
	return cfg, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	if configPath == "" {
		configPath = DefaultConfigPath()
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("Failed to create config directory", "dir", dir, "error", err)
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal(2)
	if err != nil {
		return err
	}

	logger.Debug("Writing config file", "path", configPath, "size", len(data))
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Error("Failed to write config file", "path", configPath, "error", err)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	logger.Debug("Successfully saved config", "path", configPath)
	return nil
}

// Marshal encodes the configuration as YAML with the given indentation
func (c *Config) Marshal(indent int) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(indent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close YAML encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// DefaultConfigPath returns the config file below the working directory
func DefaultConfigPath() string {
	rel := filepath.Join(ConfigDirName, ConfigFileName)
	wd, err := os.Getwd()
	if err != nil {
		return rel
	}
	return filepath.Join(wd, rel)
}
