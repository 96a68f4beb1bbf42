package matrix

import (
	"github.com/pkg/errors"
)

// Invert returns the inverse of the square matrix m using Gauss-Jordan
// elimination on a copy of m, mirrored onto an identity accumulator.
//
// No pivot search is done: each diagonal entry is used as the pivot as
// found. A zero pivot returns ErrSingular even if m is invertible under a
// different row order; use InvertPivoted for arbitrary invertible input.
// m is not modified.
func Invert(m *Matrix) (*Matrix, error) {
	return gaussJordan(m, false)
}

// InvertPivoted is Invert with row interchange: when the diagonal entry is
// zero, the first lower row with a nonzero entry in that column is swapped
// in. It returns ErrSingular only for matrices with no inverse.
func InvertPivoted(m *Matrix) (*Matrix, error) {
	return gaussJordan(m, true)
}

func gaussJordan(m *Matrix, pivoting bool) (*Matrix, error) {
	if m.rows != m.cols {
		return nil, errors.Wrapf(ErrNotSquare, "inverting %dx%d matrix", m.rows, m.cols)
	}

	n := m.rows
	work := m.Copy()
	result := Identity(n)

	for h := 0; h < n; h++ {
		if work.data[h][h] == 0 && pivoting {
			for i := h + 1; i < n; i++ {
				if work.data[i][h] != 0 {
					work.swapRows(h, i)
					result.swapRows(h, i)
					break
				}
			}
		}

		//make the pivot 1
		pivot := work.data[h][h]
		if pivot == 0 {
			work.Release()
			result.Release()
			return nil, errors.Wrapf(ErrSingular, "zero pivot at %d", h)
		}
		// pivot is nonzero, scaling cannot fail
		_ = ScaleRow(work.data[h], pivot)
		_ = ScaleRow(result.data[h], pivot)

		//eliminate column h from every other row
		for i := 0; i < n; i++ {
			if i == h {
				continue
			}
			factor := work.data[i][h]
			CombineRow(work.data[i], work.data[h], factor)
			CombineRow(result.data[i], result.data[h], factor)
		}
	}

	work.Release()
	return result, nil
}
