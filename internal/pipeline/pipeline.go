package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"complaints/pkg/models"

	"github.com/sirupsen/logrus"
)

var (
	// ErrEmptyInput is returned when the input holds no records at all
	ErrEmptyInput = errors.New("input has no records")
	// ErrHeaderOnly is returned when nothing follows the header row
	ErrHeaderOnly = errors.New("the csv file only has a header but no data")
	// ErrNoUsableData is returned when every data row was skipped
	ErrNoUsableData = errors.New("no result, check the data in the input file")
)

// RowSource yields raw rows in input order, io.EOF when exhausted
type RowSource interface {
	Next() (models.RawRow, error)
}

// Pipeline validates, groups and summarizes one input in a single pass
type Pipeline struct {
	columns models.ColumnsConfig
	log     *logrus.Entry
}

// New creates a pipeline reading the named columns
func New(columns models.ColumnsConfig, log *logrus.Entry) *Pipeline {
	return &Pipeline{columns: columns, log: log}
}

// Run consumes src and returns the sorted report rows
func (p *Pipeline) Run(ctx context.Context, src RowSource) (*models.RunResult, error) {
	result := &models.RunResult{
		StartedAt: time.Now(),
		Skipped:   make(map[models.SkipKind]int),
	}

	header, err := p.readHeader(src)
	if err != nil {
		return nil, err
	}

	cols, err := ResolveColumns(header.Cells, p.columns)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"line":    header.Line,
		"date":    cols.Date,
		"product": cols.Product,
		"company": cols.Company,
		"width":   cols.Width,
	}).Debug("Header resolved")

	validator := NewValidator(cols)
	aggregator := NewAggregator()

	p.log.Info("------ Unexpected data with line number ------")
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var skip *models.SkipReason
		if errors.As(err, &skip) {
			result.RowsRead++
			p.recordSkip(result, skip)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		result.RowsRead++

		complaint, skip := validator.Validate(row)
		if skip != nil {
			p.recordSkip(result, skip)
			continue
		}

		result.RowsValid++
		aggregator.Fold(complaint)
	}

	if result.RowsRead == 0 {
		return nil, ErrHeaderOnly
	}
	if aggregator.Len() == 0 {
		return nil, ErrNoUsableData
	}

	result.Rows = Assemble(aggregator.Groups())
	result.Duration = time.Since(result.StartedAt)

	p.log.WithFields(logrus.Fields{
		"rows_valid": result.RowsValid,
		"groups":     len(result.Rows),
	}).Info("------ Required data aggregated ------")

	return result, nil
}

// readHeader returns the first non-empty record
func (p *Pipeline) readHeader(src RowSource) (models.RawRow, error) {
	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return models.RawRow{}, ErrEmptyInput
		}
		if err != nil {
			return models.RawRow{}, fmt.Errorf("failed to read header: %w", err)
		}
		if len(row.Cells) > 0 {
			return row, nil
		}
	}
}

func (p *Pipeline) recordSkip(result *models.RunResult, skip *models.SkipReason) {
	result.Skipped[skip.Kind]++
	if skip.Silent() {
		return
	}

	fields := logrus.Fields{
		"line":   skip.Line,
		"reason": string(skip.Kind),
	}
	if skip.Column >= 0 {
		fields["column"] = skip.Column
	}
	p.log.WithFields(fields).Warn(skip.Error())
}
