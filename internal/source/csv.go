package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"complaints/pkg/models"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const byteOrderMark = "\ufeff"

// CSVSource reads delimited text records. Blank lines, which the CSV
// reader drops, are handed back as empty rows so they keep their place in
// the line count.
type CSVSource struct {
	reader  *csv.Reader
	counter *lineCounter
	closer  io.Closer
	size    int64
	started bool

	nextLine int            // first physical line not yet returned
	stopAt   int            // first line of the held record, or one past the last line at EOF
	held     *pendingRecord // record read ahead while blank lines before it drain
	finalErr error
}

type pendingRecord struct {
	row models.RawRow
	err error
	end int
}

// lineCounter counts newlines passing through to the CSV reader
type lineCounter struct {
	r        io.Reader
	newlines int
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.newlines += bytes.Count(p[:n], []byte{'\n'})
	return n, err
}

// OpenCSV opens a delimited text file
func OpenCSV(path string, size int64, cfg models.InputConfig) (*CSVSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	src, err := NewCSVSource(file, cfg)
	if err != nil {
		file.Close()
		return nil, err
	}
	src.closer = file
	src.size = size
	return src, nil
}

// NewCSVSource wraps r, decoding it with the configured encoding
func NewCSVSource(r io.Reader, cfg models.InputConfig) (*CSVSource, error) {
	decoded, err := decode(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}

	counter := &lineCounter{r: decoded}
	reader := csv.NewReader(counter)
	reader.Comma = ','
	if cfg.Delimiter != "" {
		reader.Comma = []rune(cfg.Delimiter)[0]
	}
	// Width mismatches are reported per row by the validator
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return &CSVSource{reader: reader, counter: counter, nextLine: 1}, nil
}

func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// Next returns the next row with the physical line it starts on
func (s *CSVSource) Next() (models.RawRow, error) {
	if s.held == nil && s.finalErr == nil {
		s.readAhead()
	}

	if s.nextLine < s.stopAt {
		line := s.nextLine
		s.nextLine++
		return models.RawRow{Line: line}, nil
	}

	if s.held != nil {
		held := s.held
		s.held = nil
		s.nextLine = held.end + 1
		return held.row, held.err
	}

	return models.RawRow{}, s.finalErr
}

// readAhead reads one record and notes where it starts, so the blank lines
// in front of it can be returned first
func (s *CSVSource) readAhead() {
	record, err := s.reader.Read()
	if err == nil {
		if !s.started {
			s.started = true
			if len(record) > 0 {
				record[0] = strings.TrimPrefix(record[0], byteOrderMark)
			}
		}

		start, _ := s.reader.FieldPos(0)
		last := len(record) - 1
		end, _ := s.reader.FieldPos(last)
		end += strings.Count(record[last], "\n")

		s.held = &pendingRecord{row: models.RawRow{Line: start, Cells: record}, end: end}
		s.stopAt = start
		return
	}

	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		s.held = &pendingRecord{
			row: models.RawRow{Line: parseErr.StartLine},
			err: &models.SkipReason{
				Kind:   models.SkipMalformedRow,
				Line:   parseErr.StartLine,
				Column: -1,
				Detail: parseErr.Err.Error(),
			},
			end: parseErr.Line,
		}
		s.stopAt = parseErr.StartLine
		return
	}

	s.finalErr = err
	s.stopAt = s.nextLine
	if errors.Is(err, io.EOF) {
		// Every line after the last record is blank
		s.stopAt = s.counter.newlines + 1
	}
}

// Format returns the input format name
func (s *CSVSource) Format() string {
	return FormatCSV
}

// Size returns the input size in bytes, zero when unknown
func (s *CSVSource) Size() int64 {
	return s.size
}

// Close releases the underlying file
func (s *CSVSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
