// Package tabular reads CSV and Excel inputs into the table model the
// pipeline consumes.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"lipidflow/domain/core"
	"lipidflow/domain/table"
)

// DataReader handles reading Excel and CSV files into a table.
type DataReader struct {
	name     string
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for a file path, picking the format from the
// extension.
func NewDataReader(name, filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{name: name, filePath: filePath, fileType: fileType}
}

// Read parses the file into a table.
func (r *DataReader) Read() (*table.Table, error) {
	log.Printf("[DataReader] Reading %s file: %s", r.fileType, r.filePath)

	f, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
		}
		return nil, fmt.Errorf("failed to open %s file: %w", r.fileType, err)
	}
	defer f.Close()

	return ReadFrom(r.name, filepath.Base(r.filePath), f)
}

// ReadFrom parses an already-open stream, picking the format from the
// filename extension. This is the entry point for HTTP uploads.
func ReadFrom(name, filename string, src io.Reader) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(name, src)
	case ".xlsx", ".xls":
		return readExcel(name, src)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
}

// readCSV reads the stream as CSV, first row as headers.
func readCSV(name string, src io.Reader) (*table.Table, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	return fromRecords(name, records)
}

// readExcel reads the first sheet of an xlsx stream, first row as headers.
func readExcel(name string, src io.Reader) (*table.Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel data: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromRecords(name, records)
}

// fromRecords converts raw row slices into the table model. Cell text is
// trimmed; short rows leave the missing cells empty.
func fromRecords(name string, records [][]string) (*table.Table, error) {
	if len(records) == 0 {
		return nil, core.ErrEmptyTable
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]table.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(table.Row, len(headers))
		for j, header := range headers {
			if j < len(record) {
				row[header] = strings.TrimSpace(record[j])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	log.Printf("[DataReader] Loaded table %q - Fields: %d, Rows: %d", name, len(headers), len(rows))
	return &table.Table{Name: name, Headers: headers, Rows: rows}, nil
}
