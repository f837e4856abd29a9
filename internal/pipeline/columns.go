package pipeline

import (
	"errors"
	"fmt"

	"complaints/pkg/models"
	"complaints/pkg/utils"
)

var (
	// ErrMissingColumn is returned when a required column is absent from the header
	ErrMissingColumn = errors.New("required column missing from header")
	// ErrNoHeader is returned when the first record looks like data
	ErrNoHeader = errors.New("first row is not a header")
)

// ResolveColumns locates the required columns in the header row
func ResolveColumns(header []string, names models.ColumnsConfig) (models.Columns, error) {
	for _, cell := range header {
		if utils.IsDigits(cell) {
			return models.Columns{}, fmt.Errorf("%w: cell %q is numeric, please add a header row", ErrNoHeader, cell)
		}
	}

	cols := models.Columns{Width: len(header)}
	var err error
	if cols.Date, err = indexOf(header, names.Date); err != nil {
		return models.Columns{}, err
	}
	if cols.Product, err = indexOf(header, names.Product); err != nil {
		return models.Columns{}, err
	}
	if cols.Company, err = indexOf(header, names.Company); err != nil {
		return models.Columns{}, err
	}
	return cols, nil
}

func indexOf(header []string, name string) (int, error) {
	for i, cell := range header {
		if cell == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: could not find %q in header", ErrMissingColumn, name)
}
