package pipeline

import (
	"bytes"
	"io"

	"complaints/pkg/models"

	"github.com/sirupsen/logrus"
)

// sliceSource serves pre-built rows, then io.EOF
type sliceSource struct {
	rows []models.RawRow
	errs map[int]error
	pos  int
}

func (s *sliceSource) Next() (models.RawRow, error) {
	if s.pos >= len(s.rows) {
		return models.RawRow{}, io.EOF
	}
	i := s.pos
	s.pos++
	if err, ok := s.errs[i]; ok {
		return s.rows[i], err
	}
	return s.rows[i], nil
}

// rowsFrom numbers cells the way a file reader would, starting at line 1
func rowsFrom(cells ...[]string) *sliceSource {
	rows := make([]models.RawRow, len(cells))
	for i, c := range cells {
		rows[i] = models.RawRow{Line: i + 1, Cells: c}
	}
	return &sliceSource{rows: rows}
}

func testLogger() (*logrus.Entry, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	return logrus.NewEntry(l), &buf
}

func defaultColumns() models.ColumnsConfig {
	return models.ColumnsConfig{
		Date:    "Date received",
		Product: "Product",
		Company: "Company",
	}
}

var header = []string{"Date received", "Product", "Company"}
