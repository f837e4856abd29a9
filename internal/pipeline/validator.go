package pipeline

import (
	"strings"
	"time"

	"complaints/pkg/models"
)

const dateLayout = "2006-01-02"

// rowCheck is one validation step. Checks run in order and the first
// failure decides the skip reason reported for the row.
type rowCheck struct {
	kind  models.SkipKind
	fails func(cells []string, cols models.Columns) (column int, detail string, failed bool)
}

var rowChecks = []rowCheck{
	{
		kind: models.SkipEmptyRow,
		fails: func(cells []string, _ models.Columns) (int, string, bool) {
			return -1, "", len(cells) == 0
		},
	},
	{
		kind: models.SkipMissingData,
		fails: func(cells []string, cols models.Columns) (int, string, bool) {
			return -1, "", len(cells) < cols.Width
		},
	},
	{
		kind: models.SkipOverBound,
		fails: func(cells []string, cols models.Columns) (int, string, bool) {
			return -1, "", len(cells) > cols.Width
		},
	},
	{
		kind: models.SkipEmptyDate,
		fails: func(cells []string, cols models.Columns) (int, string, bool) {
			return cols.Date, "date received", cells[cols.Date] == ""
		},
	},
	{
		kind: models.SkipInvalidDate,
		fails: func(cells []string, cols models.Columns) (int, string, bool) {
			_, err := parseDate(cells[cols.Date])
			return cols.Date, cells[cols.Date], err != nil
		},
	},
	{
		kind: models.SkipEmptyProduct,
		fails: func(cells []string, cols models.Columns) (int, string, bool) {
			return cols.Product, "product", cells[cols.Product] == ""
		},
	},
	{
		kind: models.SkipEmptyCompany,
		fails: func(cells []string, cols models.Columns) (int, string, bool) {
			return cols.Company, "company", cells[cols.Company] == ""
		},
	},
}

// parseDate accepts only real calendar dates written as YYYY-MM-DD
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	if t.Year() < 1 {
		return time.Time{}, &time.ParseError{Layout: dateLayout, Value: value, Message: ": year out of range"}
	}
	return t, nil
}

// Validator turns raw rows into complaints
type Validator struct {
	cols models.Columns
}

// NewValidator creates a validator for the resolved header columns
func NewValidator(cols models.Columns) *Validator {
	return &Validator{cols: cols}
}

// Validate returns the complaint carried by row, or the reason it is skipped
func (v *Validator) Validate(row models.RawRow) (models.Complaint, *models.SkipReason) {
	for _, check := range rowChecks {
		if column, detail, failed := check.fails(row.Cells, v.cols); failed {
			return models.Complaint{}, &models.SkipReason{
				Kind:   check.kind,
				Line:   row.Line,
				Column: column,
				Detail: detail,
			}
		}
	}

	date, _ := parseDate(row.Cells[v.cols.Date])
	return models.Complaint{
		Product: strings.ToLower(row.Cells[v.cols.Product]),
		Year:    date.Year(),
		Company: strings.ToLower(row.Cells[v.cols.Company]),
	}, nil
}
