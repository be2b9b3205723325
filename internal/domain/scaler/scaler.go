// Package scaler standardizes feature matrices to zero mean and unit variance.
package scaler

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/hooplab/internal/domain/features"
)

var (
	// ErrNotFitted is returned by Transform before any fit.
	ErrNotFitted = errors.New("scaler not fitted")
	// ErrColumnMismatch is returned when a matrix does not carry the fitted columns.
	ErrColumnMismatch = errors.New("columns differ from fitted columns")
)

// Params are the per-column statistics frozen at fit time.
type Params struct {
	Columns []string
	Mean    []float64
	Std     []float64 // population standard deviation
}

// Scaled is a standardized matrix. Index and Columns mirror the source matrix.
type Scaled struct {
	Columns []string
	Index   []int
	Data    *mat.Dense
}

// Rows returns the number of rows.
func (s *Scaled) Rows() int {
	if s == nil || s.Data == nil {
		return 0
	}
	r, _ := s.Data.Dims()
	return r
}

// Scaler owns the fitted parameters for one pipeline run.
type Scaler struct {
	params *Params
}

// New returns an unfitted scaler.
func New() *Scaler {
	return &Scaler{}
}

// FitTransform fits the column statistics on m and standardizes it.
func (s *Scaler) FitTransform(m *features.Matrix) (*Scaled, error) {
	if m == nil || m.Data == nil {
		return nil, fmt.Errorf("fit scaler: %w", features.ErrEmptyDataset)
	}
	_, c := m.Data.Dims()
	p := &Params{
		Columns: append([]string(nil), m.Columns...),
		Mean:    make([]float64, c),
		Std:     make([]float64, c),
	}
	for j := 0; j < c; j++ {
		p.Mean[j], p.Std[j] = stat.PopMeanStdDev(mat.Col(nil, j, m.Data), nil)
	}
	s.params = p
	return s.apply(m), nil
}

// Transform standardizes m with previously fitted parameters.
func (s *Scaler) Transform(m *features.Matrix) (*Scaled, error) {
	if s.params == nil {
		return nil, ErrNotFitted
	}
	if m == nil || !features.SameColumns(m.Columns, s.params.Columns) {
		return nil, ErrColumnMismatch
	}
	return s.apply(m), nil
}

// Params returns a copy of the fitted parameters, or nil before a fit.
func (s *Scaler) Params() *Params {
	if s.params == nil {
		return nil
	}
	return &Params{
		Columns: append([]string(nil), s.params.Columns...),
		Mean:    append([]float64(nil), s.params.Mean...),
		Std:     append([]float64(nil), s.params.Std...),
	}
}

func (s *Scaler) apply(m *features.Matrix) *Scaled {
	r, c := m.Data.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, j int, v float64) float64 {
		// zero-variance columns carry no signal
		if s.params.Std[j] == 0 {
			return 0
		}
		return (v - s.params.Mean[j]) / s.params.Std[j]
	}, m.Data)
	return &Scaled{
		Columns: append([]string(nil), m.Columns...),
		Index:   append([]int(nil), m.Index...),
		Data:    out,
	}
}
