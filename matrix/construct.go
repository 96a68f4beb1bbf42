package matrix

import (
	"math/rand"

	"github.com/moratsam/gfmat/gf"
)

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i][i] = 1
	}
	return m
}

// Random returns a matrix with every cell drawn from gf.Random.
func Random(rows, cols int) *Matrix {
	m := New(rows, cols)
	for _, row := range m.data {
		for j := range row {
			row[j] = gf.Random()
		}
	}
	return m
}

// RandomFrom is Random with cells drawn from r.
func RandomFrom(rows, cols int, r *rand.Rand) *Matrix {
	m := New(rows, cols)
	for _, row := range m.data {
		for j := range row {
			row[j] = gf.RandomFrom(r)
		}
	}
	return m
}

// Copy returns a deep copy of m.
func (m *Matrix) Copy() *Matrix {
	c := New(m.rows, m.cols)
	for i, row := range m.data {
		copy(c.data[i], row)
	}
	return c
}
