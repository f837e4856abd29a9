package cmd

import (
	"context"
	"fmt"

	"complaints/internal/config"
	"complaints/pkg/logger"
	"complaints/pkg/models"

	"github.com/spf13/cobra"
)

var (
	// Version information
	Version = "0.1.0"

	// CLI flags
	configFile string
	overwrite  bool
	verbose    bool
	quiet      bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "complaints <input> <output>",
	Short:   "Consumer complaint report generator",
	Version: Version,
	Long: `Complaints reads a table of consumer complaints and writes one summary
line per (product, year): the number of complaints, the number of companies
that received at least one, and the highest share of complaints held by a
single company, as a rounded percentage.

Rows that cannot be used are reported with their line number and skipped.

Input:
  Comma-separated text with a header naming at least "Date received",
  "Product" and "Company". Excel workbooks (.xlsx) are read from their first
  sheet.

Output:
  product,year,complaints,companies,highest_percentage
  Lines are sorted by product then year. An existing output file is appended
  to unless --overwrite is given.

Examples:
  complaints ./input/complaints.csv ./output/report.csv
  complaints complaints.xlsx report.csv --overwrite
  complaints complaints.csv report.csv --config .complaints.yml --quiet`,
	Args: cobra.ExactArgs(2),
	RunE: runReport,
}

func init() {
	RootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	RootCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace the output file instead of appending")
	RootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	RootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors")
}

// runReport executes the report command
func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliOptions := &models.CLIOptions{
		InputPath:  args[0],
		OutputPath: args[1],
		ConfigFile: configFile,
		Overwrite:  overwrite,
		Verbose:    verbose,
		Quiet:      quiet,
	}

	cfg, err := loadConfig(cliOptions)
	if err != nil {
		logger.Logger.WithError(err).Error("Configuration failed")
		return err
	}
	applyLogLevel(cfg, cliOptions)

	if err := NewRunner(cfg, cliOptions).Run(ctx); err != nil {
		logger.Logger.WithError(err).Error("Program will exit")
		return err
	}
	return nil
}

// loadConfig loads, overrides and validates configuration for one run
func loadConfig(cliOptions *models.CLIOptions) (*models.Config, error) {
	configLoader := config.NewLoader()
	cfg, err := configLoader.LoadConfig(cliOptions.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := configLoader.OverrideWithFlags(cfg, cliOptions); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	if err := configLoader.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyLogLevel sets the logger level from the config, --quiet and --verbose win over it
func applyLogLevel(cfg *models.Config, opts *models.CLIOptions) {
	switch {
	case opts.Quiet:
		logger.SetQuiet()
	case opts.Verbose:
		logger.SetVerbose()
	default:
		logger.SetLevel(cfg.LogLevel)
	}
}
