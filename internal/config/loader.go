package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"complaints/pkg/models"
	"complaints/pkg/utils"

	"gopkg.in/yaml.v3"
)

// Supported input encodings
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingISO88591    = "iso-8859-1"
)

// Loader handles configuration loading and validation
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadConfig loads configuration from file or returns default config
func (l *Loader) LoadConfig(configFile string) (*models.Config, error) {
	config := l.getDefaultConfig()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	return config, nil
}

// getDefaultConfig returns the default configuration
func (l *Loader) getDefaultConfig() *models.Config {
	return &models.Config{
		LogLevel: "info",
		Columns: models.ColumnsConfig{
			Date:    "Date received",
			Product: "Product",
			Company: "Company",
		},
		Input: models.InputConfig{
			Delimiter: ",",
			Encoding:  EncodingUTF8,
		},
		Output: models.OutputConfig{
			Overwrite: false,
		},
	}
}

// OverrideWithFlags overrides config values with command line flags
func (l *Loader) OverrideWithFlags(config *models.Config, flags *models.CLIOptions) error {
	if flags.Overwrite {
		config.Output.Overwrite = true
	}

	config.LogLevel = strings.ToLower(strings.TrimSpace(config.LogLevel))
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	config.Input.Encoding = strings.ToLower(strings.TrimSpace(config.Input.Encoding))
	if config.Input.Encoding == "" {
		config.Input.Encoding = EncodingUTF8
	}

	return nil
}

// ValidateConfig validates the configuration
func (l *Loader) ValidateConfig(config *models.Config) error {
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log_level %q", config.LogLevel)
	}

	names := map[string]string{
		"date":    config.Columns.Date,
		"product": config.Columns.Product,
		"company": config.Columns.Company,
	}
	seen := make(map[string]string, len(names))
	for key, name := range names {
		if name == "" {
			return fmt.Errorf("columns.%s must not be empty", key)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("columns.%s and columns.%s both name %q", other, key, name)
		}
		seen[name] = key
	}

	if utf8.RuneCountInString(config.Input.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", config.Input.Delimiter)
	}
	if config.Input.Delimiter == `"` || config.Input.Delimiter == "\n" || config.Input.Delimiter == "\r" {
		return fmt.Errorf("delimiter %q is not allowed", config.Input.Delimiter)
	}

	switch config.Input.Encoding {
	case EncodingUTF8, EncodingWindows1252, EncodingISO88591:
	default:
		return fmt.Errorf("unsupported encoding %q", config.Input.Encoding)
	}

	if config.Input.MaxSize != "" {
		if _, err := utils.ParseSize(config.Input.MaxSize); err != nil {
			return fmt.Errorf("invalid max_size: %w", err)
		}
	}

	return nil
}
