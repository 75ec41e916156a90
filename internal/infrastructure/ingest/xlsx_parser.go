package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first sheet of an Excel workbook into header-keyed
// rows, mirroring the CSVParser contract so callers can ingest either
// format through the same pipeline.
type XLSXParser struct {
	headers   []string
	headerMap map[string]int
	records   [][]string
	cursor    int
	totalRows int
}

// NewXLSXParser opens a workbook from a reader and loads its first sheet.
func NewXLSXParser(r io.Reader) (*XLSXParser, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	return &XLSXParser{records: records, headerMap: make(map[string]int)}, nil
}

// ParseHeader reads the first sheet row as the header row
func (p *XLSXParser) ParseHeader() error {
	if len(p.records) == 0 {
		return ErrMissingHeader
	}

	record := p.records[0]
	p.headers = make([]string, len(record))
	for i, h := range record {
		header := strings.TrimSpace(h)
		p.headers[i] = header
		p.headerMap[header] = i
	}

	if len(p.headers) == 0 {
		return ErrMissingHeader
	}

	p.cursor = 1

	return nil
}

// Headers returns the parsed header names
func (p *XLSXParser) Headers() []string {
	return p.headers
}

// HasHeader checks if a header exists
func (p *XLSXParser) HasHeader(name string) bool {
	_, ok := p.headerMap[name]
	return ok
}

// ReadRow reads the next data row from the sheet
func (p *XLSXParser) ReadRow() (*Row, error) {
	if p.cursor >= len(p.records) {
		return nil, io.EOF
	}

	record := p.records[p.cursor]
	p.cursor++
	p.totalRows++

	row := &Row{
		LineNumber: p.cursor,
		Headers:    p.headers,
		Values:     make(map[string]string, len(p.headers)),
	}

	for i, header := range p.headers {
		if i < len(record) {
			row.Values[header] = strings.TrimSpace(record[i])
		} else {
			row.Values[header] = ""
		}
	}

	return row, nil
}

// ReadAllRows reads all remaining rows, skipping completely empty ones
func (p *XLSXParser) ReadAllRows() ([]*Row, error) {
	var rows []*Row

	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}

		if row.IsEmpty() {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// TotalRows returns the total number of data rows read
func (p *XLSXParser) TotalRows() int {
	return p.totalRows
}
