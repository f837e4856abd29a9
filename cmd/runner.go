package cmd

import (
	"context"
	"fmt"
	"time"

	"complaints/internal/pipeline"
	"complaints/internal/report"
	"complaints/internal/source"
	"complaints/pkg/logger"
	"complaints/pkg/models"

	"github.com/google/uuid"
)

// Runner coordinates one report run from input file to output file
type Runner struct {
	config     *models.Config
	cliOptions *models.CLIOptions
}

// NewRunner creates a new runner instance
func NewRunner(config *models.Config, cliOptions *models.CLIOptions) *Runner {
	return &Runner{
		config:     config,
		cliOptions: cliOptions,
	}
}

// Run reads the input, builds the report and writes it.
// Nothing is written unless the whole input was processed.
func (r *Runner) Run(ctx context.Context) error {
	startTime := time.Now()
	log := logger.ForRun(uuid.NewString())

	log.WithFields(map[string]interface{}{
		"input":  r.cliOptions.InputPath,
		"output": r.cliOptions.OutputPath,
	}).Info("Starting complaints report")

	src, err := source.Open(r.cliOptions.InputPath, r.config.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	result, err := pipeline.New(r.config.Columns, log).Run(ctx, src)
	if err != nil {
		return err
	}
	result.InputFormat = src.Format()
	result.InputSize = src.Size()

	writer := report.NewWriter(r.config.Output.Overwrite)
	if err := writer.Write(r.cliOptions.OutputPath, result.Rows); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	stats := pipeline.NewStatsCalculator().GetRunStats(result)
	log.WithFields(stats).Debug("Run statistics")

	elapsed := time.Since(startTime)
	log.WithFields(map[string]interface{}{
		"groups":       len(result.Rows),
		"rows_skipped": stats["rows_skipped"],
	}).Infof("------ This run took %.2f seconds ------", elapsed.Seconds())
	return nil
}
