package features

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is a rectangular, fully defined numeric table. Rows keep the position
// of their source row in Index; columns follow the declared order.
type Matrix struct {
	Columns []string
	Index   []int
	Data    *mat.Dense
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return len(m.Index)
}

// ColumnIndex returns the position of a column, or -1.
func (m *Matrix) ColumnIndex(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Row copies row i into a new slice.
func (m *Matrix) Row(i int) []float64 {
	return mat.Row(nil, i, m.Data)
}

// Column copies the named column into a new slice; nil when the column is unknown.
func (m *Matrix) Column(name string) []float64 {
	j := m.ColumnIndex(name)
	if j < 0 {
		return nil
	}
	return mat.Col(nil, j, m.Data)
}

// SameColumns reports whether two matrices declare the same columns in order.
func SameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
