// Package dataset loads season tables from .xlsx and .csv files.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/hooplab/internal/domain/model"
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than .xlsx and .csv.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrSheetNotFound is returned when a named worksheet does not exist.
	ErrSheetNotFound = errors.New("worksheet not found")
	// ErrNoHeader is returned for files without a header row.
	ErrNoHeader = errors.New("dataset has no header row")
)

// Load reads the file at path. sheet selects the worksheet of an .xlsx file;
// an empty sheet reads the first one.
func Load(ctx context.Context, path, sheet string) (*model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return loadXLSX(path, sheet)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer func() { _ = f.Close() }()
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func loadXLSX(path, sheet string) (*model.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if sheet == "" && len(sheets) > 0 {
		sheet = sheets[0]
	}
	if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", sheet, err)
	}
	return fromRows(rows)
}

// ReadCSV reads a comma separated table with a header row.
func ReadCSV(r io.Reader) (*model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(rows)
}

// fromRows treats the first row as headers and pads short rows.
func fromRows(rows [][]string) (*model.Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("col_%d", i)
		}
		headers[i] = h
	}
	ds := &model.Dataset{Headers: headers, Rows: make([][]string, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		cells := make([]string, len(headers))
		copy(cells, row)
		ds.Rows = append(ds.Rows, cells)
	}
	return ds, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
