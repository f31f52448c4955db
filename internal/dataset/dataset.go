// Package dataset loads the exoplanet table from CSV or Excel files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/exodash/internal/planet"
)

// ErrEmpty is returned when a file has a header but no data rows.
var ErrEmpty = errors.New("dataset has no rows")

// Load reads and normalizes every row of a .csv or .xlsx file. The first row
// is the header. Lines starting with '#' in CSV files are comments.
func Load(path string) ([]planet.Record, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readExcel(path)
	default:
		return nil, fmt.Errorf("unsupported dataset type %q", ext)
	}
	if err != nil {
		return nil, err
	}
	records, err := FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadCSV parses CSV data from r.
func ReadCSV(r io.Reader) ([]planet.Record, error) {
	rows, err := csvRows(r)
	if err != nil {
		return nil, err
	}
	return FromRows(rows)
}

// FromRows normalizes a header row followed by data rows. Short rows leave
// the missing columns blank.
func FromRows(rows [][]string) ([]planet.Record, error) {
	if len(rows) == 0 {
		return nil, errors.New("dataset has no header row")
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	records := make([]planet.Record, 0, len(rows)-1)
	raw := make(map[string]string, len(header))
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		clear(raw)
		for j, cell := range row {
			if j < len(header) {
				raw[header[j]] = cell
			}
		}
		records = append(records, planet.Normalize(raw))
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	return records, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()
	rows, err := csvRows(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func csvRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
