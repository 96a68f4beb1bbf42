package matrix

import (
	"github.com/pkg/errors"

	"github.com/moratsam/gfmat/gf"
)

// Mul returns the product a*b. a.Cols() must equal b.Rows().
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, errors.Wrapf(ErrDimensionMismatch, "multiplying %dx%d by %dx%d", a.rows, a.cols, b.rows, b.cols)
	}

	result := New(a.rows, b.cols)
	for i := 0; i < result.rows; i++ {
		for j := 0; j < result.cols; j++ {
			var tmp byte
			for k := 0; k < a.cols; k++ {
				tmp = gf.Add(tmp, gf.Mul(a.data[i][k], b.data[k][j]))
			}
			result.data[i][j] = tmp
		}
	}
	return result, nil
}

// Equal reports whether a and b have the same dimensions and cells.
func Equal(a, b *Matrix) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			if a.data[i][j] != b.data[i][j] {
				return false
			}
		}
	}
	return true
}
