package models

import (
	"fmt"
	"time"
)

// Config represents the complete configuration for a report run
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Columns  ColumnsConfig `yaml:"columns"`
	Input    InputConfig   `yaml:"input"`
	Output   OutputConfig  `yaml:"output"`
}

// ColumnsConfig names the header columns the pipeline reads
type ColumnsConfig struct {
	Date    string `yaml:"date"`
	Product string `yaml:"product"`
	Company string `yaml:"company"`
}

// InputConfig contains input decoding settings
type InputConfig struct {
	Delimiter string `yaml:"delimiter"`
	Encoding  string `yaml:"encoding"`
	Sheet     string `yaml:"sheet"`    // xlsx only, empty means first sheet
	MaxSize   string `yaml:"max_size"` // e.g. "2GB", empty means unlimited
}

// OutputConfig contains report writing settings
type OutputConfig struct {
	Overwrite bool `yaml:"overwrite"`
}

// CLIOptions contains command-line options
type CLIOptions struct {
	InputPath  string
	OutputPath string
	ConfigFile string
	Overwrite  bool
	Verbose    bool
	Quiet      bool
}

// RawRow is one record as read from the input, before validation
type RawRow struct {
	Line  int
	Cells []string
}

// Columns holds the header positions of the required columns
type Columns struct {
	Date    int
	Product int
	Company int
	Width   int
}

// Complaint is a row that passed validation, with case-folded text fields
type Complaint struct {
	Product string
	Year    int
	Company string
}

// GroupKey identifies one (product, year) group
type GroupKey struct {
	Product string
	Year    int
}

// GroupRecord accumulates the complaints of one group.
// Companies maps each company name to its number of complaints.
type GroupRecord struct {
	Product    string
	Year       int
	Complaints int
	Companies  map[string]int
}

// SummaryRow is one finished line of the report
type SummaryRow struct {
	Product           string
	Year              int
	Complaints        int
	Companies         int
	HighestPercentage int
}

// Less reports whether r sorts before other, comparing every field in order
func (r SummaryRow) Less(other SummaryRow) bool {
	if r.Product != other.Product {
		return r.Product < other.Product
	}
	if r.Year != other.Year {
		return r.Year < other.Year
	}
	if r.Complaints != other.Complaints {
		return r.Complaints < other.Complaints
	}
	if r.Companies != other.Companies {
		return r.Companies < other.Companies
	}
	return r.HighestPercentage < other.HighestPercentage
}

// SkipKind classifies why a row was discarded
type SkipKind string

const (
	SkipEmptyRow     SkipKind = "empty_row"
	SkipMissingData  SkipKind = "missing_data"
	SkipOverBound    SkipKind = "over_bound"
	SkipEmptyDate    SkipKind = "empty_date"
	SkipInvalidDate  SkipKind = "invalid_date"
	SkipEmptyProduct SkipKind = "empty_product"
	SkipEmptyCompany SkipKind = "empty_company"
	SkipMalformedRow SkipKind = "malformed_row"
)

// SkipReason describes a recoverable per-row error
type SkipReason struct {
	Kind   SkipKind
	Line   int
	Column int // -1 when the reason is not tied to one column
	Detail string
}

func (s *SkipReason) Error() string {
	switch s.Kind {
	case SkipEmptyRow:
		return fmt.Sprintf("line %d is empty", s.Line)
	case SkipMissingData:
		return fmt.Sprintf("missing some of line %d data", s.Line)
	case SkipOverBound:
		return fmt.Sprintf("items in line %d are over bound", s.Line)
	case SkipEmptyDate, SkipEmptyProduct, SkipEmptyCompany:
		return fmt.Sprintf("line %d item[%d] is empty, expected input is %s", s.Line, s.Column, s.Detail)
	case SkipInvalidDate:
		return fmt.Sprintf("line %d has invalid date format %q, it should be YYYY-MM-DD", s.Line, s.Detail)
	case SkipMalformedRow:
		return fmt.Sprintf("line %d could not be parsed: %s", s.Line, s.Detail)
	default:
		return fmt.Sprintf("line %d skipped", s.Line)
	}
}

// Silent reports whether the skip should be counted without a diagnostic
func (s *SkipReason) Silent() bool {
	return s.Kind == SkipEmptyRow
}

// RunResult contains the outcome of one pipeline run
type RunResult struct {
	Rows        []SummaryRow
	RowsRead    int
	RowsValid   int
	Skipped     map[SkipKind]int
	StartedAt   time.Time
	Duration    time.Duration
	InputSize   int64
	InputFormat string
}
