// Package features selects and cleans the numeric statistic columns used for
// clustering.
package features

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/okian/hooplab/internal/domain/dedupe"
	"github.com/okian/hooplab/internal/domain/model"
	"github.com/okian/hooplab/pkg/logger"
)

// Result is the output of Prepare.
type Result struct {
	Matrix     *Matrix
	Records    []model.PlayerRecord // aligned with Matrix rows
	Warnings   []MissingStatisticWarning
	Dropped    int // rows with at least one retained statistic undefined
	Duplicates int // complete rows collapsed as repeated player-season-team keys
}

type preparer struct {
	logger logger.Logger
	dedupe bool
}

// Prepare intersects the declared columns with the dataset headers, coerces
// each retained cell to a number and drops rows with any value missing.
func Prepare(ctx context.Context, ds *model.Dataset, columns []string, opts ...Option) (*Result, error) {
	p := &preparer{logger: logger.Nop(), dedupe: true}
	for _, opt := range opts {
		opt(p)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("prepare features: %w", err)
	}
	if ds == nil {
		ds = &model.Dataset{}
	}

	present, warnings := intersect(ds, columns)
	for _, w := range warnings {
		p.logger.Warn(ctx, "declared statistic column absent from dataset", logger.String("column", w.Column))
	}
	if len(present) == 0 {
		return nil, &EmptyDatasetError{Declared: len(columns), SourceRows: ds.Len()}
	}

	all := Records(ds, present)
	seen := dedupe.New(dedupe.WithCapacity(len(all)))
	res := &Result{Warnings: warnings}
	values := make([]float64, 0, len(all)*len(present))
	index := make([]int, 0, len(all))

	for _, rec := range all {
		row, ok := completeRow(rec, present)
		if !ok {
			res.Dropped++
			continue
		}
		if p.dedupe && rec.Name != "" && seen.SeenAndRecord(ctx, rec.Key()) {
			res.Duplicates++
			continue
		}
		values = append(values, row...)
		index = append(index, rec.Row)
		res.Records = append(res.Records, rec)
	}

	if len(index) == 0 {
		return nil, &EmptyDatasetError{
			Declared:   len(columns),
			Columns:    len(present),
			SourceRows: ds.Len(),
		}
	}

	res.Matrix = &Matrix{
		Columns: present,
		Index:   index,
		Data:    mat.NewDense(len(index), len(present), values),
	}

	p.logger.Info(ctx, "features prepared",
		logger.Int("rows", len(index)),
		logger.Int("columns", len(present)),
		logger.Int("dropped", res.Dropped),
		logger.Int("duplicates", res.Duplicates),
	)
	return res, nil
}

// Records builds a record for every dataset row, parsing the given statistic
// columns. Cells that are not numeric are left undefined.
func Records(ds *model.Dataset, columns []string) []model.PlayerRecord {
	if ds == nil {
		return nil
	}
	statIdx := make(map[string]int, len(columns))
	for _, c := range columns {
		if i := ds.ColumnIndex(c); i >= 0 {
			statIdx[c] = i
		}
	}
	nameIdx := ds.ColumnIndex(model.ColumnPlayerName)
	idIdx := ds.ColumnIndex(model.ColumnPlayerID)
	teamIdx := ds.ColumnIndex(model.ColumnTeam)
	seasonIdx := ds.ColumnIndex(model.ColumnSeason)
	ageIdx := ds.ColumnIndex(model.ColumnAge)

	out := make([]model.PlayerRecord, len(ds.Rows))
	for r, cells := range ds.Rows {
		rec := model.PlayerRecord{
			Row:      r,
			Name:     strings.TrimSpace(cell(cells, nameIdx)),
			PlayerID: strings.TrimSpace(cell(cells, idIdx)),
			Team:     strings.TrimSpace(cell(cells, teamIdx)),
			Season:   strings.TrimSpace(cell(cells, seasonIdx)),
			Stats:    make(map[string]float64, len(statIdx)),
		}
		if age, ok := ParseNumeric(cell(cells, ageIdx)); ok {
			rec.Age = age
		}
		for name, i := range statIdx {
			if v, ok := ParseNumeric(cell(cells, i)); ok {
				rec.Stats[name] = v
			}
		}
		out[r] = rec
	}
	return out
}

// ParseNumeric coerces a raw cell to a finite float. Empty, non-numeric, NaN
// and infinite input is reported as missing.
func ParseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func intersect(ds *model.Dataset, columns []string) ([]string, []MissingStatisticWarning) {
	present := make([]string, 0, len(columns))
	var warnings []MissingStatisticWarning
	dup := make(map[string]bool, len(columns))
	for _, c := range columns {
		if dup[c] {
			continue
		}
		dup[c] = true
		if ds.HasColumn(c) {
			present = append(present, c)
			continue
		}
		warnings = append(warnings, MissingStatisticWarning{Column: c})
	}
	return present, warnings
}

func completeRow(rec model.PlayerRecord, columns []string) ([]float64, bool) {
	row := make([]float64, len(columns))
	for j, c := range columns {
		v, ok := rec.Stat(c)
		if !ok {
			return nil, false
		}
		row[j] = v
	}
	return row, true
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}
