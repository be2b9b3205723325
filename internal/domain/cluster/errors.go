package cluster

import (
	"errors"
	"fmt"
)

// ErrInvalidK matches every InvalidKError.
var ErrInvalidK = errors.New("invalid cluster count")

// InvalidKError reports a cluster count the data cannot support.
type InvalidKError struct {
	K    int
	Rows int
}

func (e *InvalidKError) Error() string {
	return fmt.Sprintf("invalid cluster count: k=%d with %d rows (need 1 <= k <= rows)", e.K, e.Rows)
}

func (e *InvalidKError) Unwrap() error {
	return ErrInvalidK
}
