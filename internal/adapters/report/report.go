// Package report writes analysis results for people and downstream renderers:
// the cluster means workbook, JSON player reports and radar chart series.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/okian/hooplab/internal/domain/catalog"
	"github.com/okian/hooplab/internal/domain/profile"
	"github.com/okian/hooplab/internal/domain/roles"
)

// Workbook layout.
const (
	MeansSheet    = "Cluster Means"
	MeansFileName = "cluster_means_report.xlsx"
	overallRow    = "Overall"
)

// WriteClusterMeans saves one row per cluster (id, role, size, then the mean
// of every profiled statistic) and a final population row to path.
func WriteClusterMeans(path string, p *profile.Profile, labels roles.Labels, cat *catalog.Catalog) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", MeansSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := []any{"Cluster", "Role", "Size"}
	for _, c := range p.Columns {
		header = append(header, cat.DisplayName(c))
	}
	if err := f.SetSheetRow(MeansSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, c := range p.Clusters {
		row := []any{c.ID, labels[c.ID], c.Size}
		row = appendMeans(row, c.Means, p.Columns)
		if err := f.SetSheetRow(MeansSheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return fmt.Errorf("write cluster %d: %w", c.ID, err)
		}
	}

	total := 0
	for _, c := range p.Clusters {
		total += c.Size
	}
	row := appendMeans([]any{overallRow, "", total}, p.Overall, p.Columns)
	if err := f.SetSheetRow(MeansSheet, "A"+strconv.Itoa(len(p.Clusters)+2), &row); err != nil {
		return fmt.Errorf("write overall row: %w", err)
	}

	if err := f.SetPanes(MeansSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      3,
		YSplit:      1,
		TopLeftCell: "D2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return fmt.Errorf("freeze panes: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func appendMeans(row []any, means map[string]float64, columns []string) []any {
	for _, c := range columns {
		if v, ok := means[c]; ok {
			row = append(row, v)
			continue
		}
		row = append(row, nil)
	}
	return row
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// SaveJSON writes v as indented JSON to path, creating parent directories.
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteJSON(f, v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
