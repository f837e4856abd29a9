package source

import (
	"fmt"
	"io"

	"complaints/pkg/models"

	"github.com/xuri/excelize/v2"
)

// XLSXSource streams rows from one worksheet of an Excel workbook
type XLSXSource struct {
	file  *excelize.File
	rows  *excelize.Rows
	size  int64
	line  int
	width int
}

// OpenXLSX opens the configured sheet of a workbook, or its first sheet
func OpenXLSX(path string, size int64, cfg models.InputConfig) (*XLSXSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheet := cfg.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		f.Close()
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return &XLSXSource{file: f, rows: rows, size: size}, nil
}

// Next returns the next worksheet row. Rows are numbered as in the sheet.
// Spreadsheets drop trailing empty cells, so data rows shorter than the
// header are padded back to its width.
func (s *XLSXSource) Next() (models.RawRow, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return models.RawRow{}, fmt.Errorf("failed to read row: %w", err)
		}
		return models.RawRow{}, io.EOF
	}
	s.line++

	cells, err := s.rows.Columns()
	if err != nil {
		return models.RawRow{Line: s.line}, &models.SkipReason{
			Kind:   models.SkipMalformedRow,
			Line:   s.line,
			Column: -1,
			Detail: err.Error(),
		}
	}

	if len(cells) > 0 {
		if s.width == 0 {
			s.width = len(cells)
		} else if len(cells) < s.width {
			padded := make([]string, s.width)
			copy(padded, cells)
			cells = padded
		}
	}

	return models.RawRow{Line: s.line, Cells: cells}, nil
}

// Format returns the input format name
func (s *XLSXSource) Format() string {
	return FormatXLSX
}

// Size returns the workbook size in bytes
func (s *XLSXSource) Size() int64 {
	return s.size
}

// Close releases the row iterator and the workbook
func (s *XLSXSource) Close() error {
	if err := s.rows.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
