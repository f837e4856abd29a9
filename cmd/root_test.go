package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"complaints/internal/config"
	"complaints/pkg/logger"
	"complaints/pkg/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	t.Run("should have correct use", func(t *testing.T) {
		assert.Equal(t, "complaints <input> <output>", RootCmd.Use)
	})

	t.Run("should require exactly two args", func(t *testing.T) {
		cmd := &cobra.Command{}

		assert.Error(t, RootCmd.Args(cmd, []string{}))
		assert.Error(t, RootCmd.Args(cmd, []string{"input.csv"}))
		assert.Error(t, RootCmd.Args(cmd, []string{"input.csv", "output.csv", "extra"}))
		assert.NoError(t, RootCmd.Args(cmd, []string{"input.csv", "output.csv"}))
	})

	t.Run("should register flags", func(t *testing.T) {
		for _, name := range []string{"config", "overwrite", "verbose", "quiet"} {
			assert.NotNil(t, RootCmd.Flags().Lookup(name), name)
		}
	})
}

func TestRootCmd_Execute(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "complaints.csv")
	output := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"Date received,Product,Company\n"+
			"2021-05-01,Credit card,Acme\n"+
			"2021-06-01,Credit card,Beta\n"), 0644))

	RootCmd.SetArgs([]string{input, output, "--quiet"})
	t.Cleanup(func() {
		RootCmd.SetArgs(nil)
		quiet = false
		logger.Logger.SetLevel(logrus.InfoLevel)
	})

	require.NoError(t, RootCmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "credit card,2021,2,2,50\n", string(data))
}

func TestLoadConfig(t *testing.T) {
	t.Run("should load defaults", func(t *testing.T) {
		cfg, err := loadConfig(&models.CLIOptions{})
		require.NoError(t, err)
		assert.Equal(t, "Date received", cfg.Columns.Date)
		assert.Equal(t, config.EncodingUTF8, cfg.Input.Encoding)
	})

	t.Run("should apply overwrite flag", func(t *testing.T) {
		cfg, err := loadConfig(&models.CLIOptions{Overwrite: true})
		require.NoError(t, err)
		assert.True(t, cfg.Output.Overwrite)
	})

	t.Run("should reject invalid config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yml")
		require.NoError(t, os.WriteFile(path, []byte("input:\n  encoding: ebcdic\n"), 0644))

		_, err := loadConfig(&models.CLIOptions{ConfigFile: path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration validation failed")
	})

	t.Run("should reject unknown log level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: chatty\n"), 0644))

		_, err := loadConfig(&models.CLIOptions{ConfigFile: path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported log_level")
	})
}

func TestApplyLogLevel(t *testing.T) {
	t.Cleanup(func() { logger.Logger.SetLevel(logrus.InfoLevel) })

	tests := []struct {
		name     string
		logLevel string
		opts     models.CLIOptions
		expected logrus.Level
	}{
		{
			name:     "should use configured level",
			logLevel: "warn",
			expected: logrus.WarnLevel,
		},
		{
			name:     "should use debug from config",
			logLevel: "debug",
			expected: logrus.DebugLevel,
		},
		{
			name:     "should let quiet win over config",
			logLevel: "debug",
			opts:     models.CLIOptions{Quiet: true},
			expected: logrus.ErrorLevel,
		},
		{
			name:     "should let verbose win over config",
			logLevel: "error",
			opts:     models.CLIOptions{Verbose: true},
			expected: logrus.DebugLevel,
		},
		{
			name:     "should let quiet win over verbose",
			logLevel: "info",
			opts:     models.CLIOptions{Quiet: true, Verbose: true},
			expected: logrus.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger.Logger.SetLevel(logrus.InfoLevel)

			applyLogLevel(&models.Config{LogLevel: tt.logLevel}, &tt.opts)

			assert.Equal(t, tt.expected, logger.Logger.GetLevel())
		})
	}
}
