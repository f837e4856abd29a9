package source

import (
	"errors"
	"fmt"
	"os"

	"complaints/pkg/logger"
	"complaints/pkg/models"
	"complaints/pkg/utils"
)

var (
	// ErrEmptyFile is returned when the input file has zero bytes
	ErrEmptyFile = errors.New("input file is empty")
	// ErrInputTooLarge is returned when the input exceeds input.max_size
	ErrInputTooLarge = errors.New("input file exceeds configured max size")
)

// Input formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Source yields raw rows in file order.
// Row numbers are 1-based physical line numbers: a record spanning several
// lines carries the line it starts on, and the lines it covers are not
// numbered again. Blank lines come back as rows without cells.
// Next returns io.EOF once the input is exhausted. A record that cannot be
// decoded is reported as a *models.SkipReason and reading may continue.
type Source interface {
	Next() (models.RawRow, error)
	Format() string
	Size() int64
	Close() error
}

// Open opens path and picks a source implementation from its extension
func Open(path string, cfg models.InputConfig) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input file not found or path not correct: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input path %s is a directory", path)
	}
	if info.Size() == 0 {
		return nil, ErrEmptyFile
	}

	if cfg.MaxSize != "" {
		maxSize, err := utils.ParseSize(cfg.MaxSize)
		if err != nil {
			return nil, fmt.Errorf("invalid max_size: %w", err)
		}
		if info.Size() > maxSize {
			return nil, fmt.Errorf("%w: %s > %s", ErrInputTooLarge,
				utils.FormatBytes(info.Size()), utils.FormatBytes(maxSize))
		}
	}

	logger.Logger.WithFields(map[string]interface{}{
		"path": path,
		"size": utils.FormatBytes(info.Size()),
	}).Debug("Opening input file")

	switch utils.FileExtension(path) {
	case FormatXLSX, "xlsm":
		return OpenXLSX(path, info.Size(), cfg)
	default:
		return OpenCSV(path, info.Size(), cfg)
	}
}
