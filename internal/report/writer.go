package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"complaints/pkg/logger"
	"complaints/pkg/models"
)

// Writer writes summary rows to the report file
type Writer struct {
	overwrite bool
}

// NewWriter creates a report writer. Without overwrite an existing report
// is appended to.
func NewWriter(overwrite bool) *Writer {
	return &Writer{overwrite: overwrite}
}

// Write creates or extends path with one line per row
func (w *Writer) Write(path string, rows []models.SummaryRow) error {
	file, err := w.open(path)
	if err != nil {
		return err
	}

	if err := WriteRows(file, rows); err != nil {
		file.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close report: %w", err)
	}

	logger.Logger.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(rows),
	}).Debug("Report written")
	return nil
}

func (w *Writer) open(path string) (*os.File, error) {
	if w.overwrite {
		file, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create report file: %w", err)
		}
		return file, nil
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err == nil {
		return file, nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	logger.Logger.WithField("path", path).Warn("File already exists, will append to existing file")
	file, err = os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file for append: %w", err)
	}
	return file, nil
}

// WriteRows writes rows to out in report format
func WriteRows(out io.Writer, rows []models.SummaryRow) error {
	buf := bufio.NewWriter(out)
	for _, row := range rows {
		if _, err := buf.WriteString(FormatRow(row)); err != nil {
			return err
		}
		if err := buf.WriteByte('\n'); err != nil {
			return err
		}
	}
	return buf.Flush()
}

// FormatRow renders one report line without its newline.
// The product is quoted only when it contains a comma.
func FormatRow(row models.SummaryRow) string {
	product := row.Product
	if strings.Contains(product, ",") {
		product = `"` + product + `"`
	}

	return strings.Join([]string{
		product,
		strconv.Itoa(row.Year),
		strconv.Itoa(row.Complaints),
		strconv.Itoa(row.Companies),
		strconv.Itoa(row.HighestPercentage),
	}, ",")
}
