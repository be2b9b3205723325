package features

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is matched by EmptyDatasetError via errors.Is.
var ErrEmptyDataset = errors.New("empty dataset")

// EmptyDatasetError reports that no usable columns or rows remain after cleaning.
type EmptyDatasetError struct {
	Declared   int // columns requested by the caller
	Columns    int // declared columns present in the dataset
	SourceRows int // rows in the raw dataset
	UsableRows int // rows with every retained statistic defined
}

func (e *EmptyDatasetError) Error() string {
	if e.Columns == 0 {
		return fmt.Sprintf("empty dataset: none of the %d declared statistic columns are present", e.Declared)
	}
	return fmt.Sprintf("empty dataset: 0 of %d rows have all %d statistic columns defined", e.SourceRows, e.Columns)
}

func (e *EmptyDatasetError) Unwrap() error { return ErrEmptyDataset }

// MissingStatisticWarning notes a declared column absent from the input.
// It never aborts preparation.
type MissingStatisticWarning struct {
	Column string
}

func (w MissingStatisticWarning) String() string {
	return "missing statistic column " + w.Column
}
