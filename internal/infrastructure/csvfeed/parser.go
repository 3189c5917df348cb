// Package csvfeed parses the published-sheet CSV documents the bot
// ingests. It handles UTF-8 BOM stripping, header mapping, and tolerant
// row reading.
package csvfeed

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyDocument is returned when the CSV document has no content.
	ErrEmptyDocument = errors.New("csvfeed: document is empty")
	// ErrInvalidEncoding is returned when the document is not valid UTF-8.
	ErrInvalidEncoding = errors.New("csvfeed: invalid document encoding")
	// ErrMissingHeader is returned when the document has no header row.
	ErrMissingHeader = errors.New("csvfeed: missing header row")
)

// Parser reads a headered CSV document row by row.
type Parser struct {
	reader     *csv.Reader
	headers    []string
	headerMap  map[string]int
	currentRow int
}

// NewParser creates a parser over r, stripping a UTF-8 BOM if present and
// validating the encoding.
func NewParser(r io.Reader) (*Parser, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("csvfeed: read document: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	if err := validateUTF8(buf); err != nil {
		return nil, err
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	return &Parser{
		reader:    reader,
		headerMap: make(map[string]int),
	}, nil
}

// validateUTF8 checks that the leading content is valid UTF-8.
func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("csvfeed: read document for encoding check: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyDocument
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}

// ParseHeader reads and indexes the header row. Header names are
// whitespace-trimmed.
func (p *Parser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("csvfeed: read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		name := strings.TrimSpace(h)
		p.headers[i] = name
		p.headerMap[name] = i
	}
	p.currentRow = 1
	return nil
}

// MissingHeaders returns the required header names absent from the
// document.
func (p *Parser) MissingHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if _, ok := p.headerMap[h]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is one parsed data row mapped by header name.
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the whitespace-trimmed value for a column by header name.
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// IsEmpty returns true if the row has no non-empty values.
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow reads the next data row, or io.EOF at the end of the document.
func (p *Parser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	p.currentRow++
	if err != nil {
		return nil, fmt.Errorf("csvfeed: read row %d: %w", p.currentRow, err)
	}

	row := &Row{
		LineNumber: p.currentRow,
		Data:       make(map[string]string, len(p.headers)),
	}
	for i, header := range p.headers {
		if i < len(record) {
			row.Data[header] = strings.TrimSpace(record[i])
		} else {
			row.Data[header] = ""
		}
	}
	return row, nil
}

// ReadAllRows reads all remaining data rows, skipping fully empty ones.
func (p *Parser) ReadAllRows() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
}
