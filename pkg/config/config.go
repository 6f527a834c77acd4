/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/cm3d2save/pkg/docfmt"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the cm3d2save configuration
type Config struct {
	// TextEncoding names the encoding of strings inside save files, using
	// WHATWG names such as "utf-8" or "shift_jis".
	TextEncoding string  `yaml:"text_encoding"`
	Output       Output  `yaml:"output"`
	Archive      Archive `yaml:"archive"`
	Server       Server  `yaml:"server"`
	Logging      Logging `yaml:"logging"`
}

// Output controls how decoded documents are written
type Output struct {
	Format string `yaml:"format"`
	Indent int    `yaml:"indent"`
}

// Archive controls backups taken before a save file is overwritten
type Archive struct {
	Dir     string `yaml:"dir"`
	Enabled bool   `yaml:"enabled"`
	// Keep is the number of snapshots retained per file; 0 keeps all.
	Keep int `yaml:"keep"`
}

// Server contains HTTP service configuration
type Server struct {
	Bind         string `yaml:"bind"`
	Port         int    `yaml:"port"`
	APIKey       string `yaml:"api_key"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		TextEncoding: "utf-8",
		Output: Output{
			Format: string(docfmt.JSON),
			Indent: docfmt.DefaultIndent,
		},
		Archive: Archive{
			Dir:     DefaultArchiveDir(),
			Enabled: true,
			Keep:    20,
		},
		Server: Server{
			Bind:         "127.0.0.1",
			Port:         9200,
			MaxBodyBytes: 64 << 20,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path. Keys missing from
// the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file may hold the API key
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every field that has a fixed set of values
func (c *Config) Validate() error {
	if _, err := c.Encoding(); err != nil {
		return err
	}
	if _, err := docfmt.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output.format: %v", ErrInvalidConfig, err)
	}
	if c.Output.Indent < 0 || c.Output.Indent > 16 {
		return fmt.Errorf("%w: output.indent must be between 0 and 16", ErrInvalidConfig)
	}
	if c.Archive.Keep < 0 {
		return fmt.Errorf("%w: archive.keep must not be negative", ErrInvalidConfig)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Encoding resolves TextEncoding. UTF-8 resolves to nil, meaning strings are
// stored as-is.
func (c *Config) Encoding() (encoding.Encoding, error) {
	name := strings.TrimSpace(c.TextEncoding)
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: text_encoding %q: %v", ErrInvalidConfig, name, err)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc, nil
}

// LogLevel parses Logging.Level
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	return level, nil
}

// OutputFormat returns the configured document format
func (c *Config) OutputFormat() docfmt.Format {
	f, err := docfmt.ParseFormat(c.Output.Format)
	if err != nil {
		return docfmt.JSON
	}
	return f
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig writes a default configuration with a generated API key
func BootstrapConfig(configPath string, archiveDir string) (*Config, error) {
	config := DefaultConfig()
	if archiveDir != "" {
		config.Archive.Dir = archiveDir
	}

	apiKey, err := GenerateSecureKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Server.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "./cm3d2save.yaml"
	}
	return filepath.Join(configDir, "cm3d2save", "config.yaml")
}

// DefaultArchiveDir returns where snapshots are kept unless configured
func DefaultArchiveDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "./archive"
	}
	return filepath.Join(configDir, "cm3d2save", "archive")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
