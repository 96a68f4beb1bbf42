package matrix

import "github.com/pkg/errors"

var (
	// ErrDimensionMismatch is returned by Mul when a.Cols() != b.Rows().
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNotSquare is returned when inverting a matrix with rows != cols.
	ErrNotSquare = errors.New("matrix: matrix is not square")

	// ErrSingular is returned when elimination meets a zero pivot.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrRowLength is returned when a row does not have Cols() elements.
	ErrRowLength = errors.New("matrix: row length does not match columns")
)
