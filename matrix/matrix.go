// Package matrix is dense matrix algebra over GF(256).
//
// A Matrix keeps each row in its own slice so that rows can be appended and
// widened without moving the rest of the grid. Every operation is
// synchronous and a Matrix must not be mutated from more than one goroutine.
package matrix

import (
	"github.com/pkg/errors"
)

type Matrix struct {
	rows, cols int
	data       [][]byte
}

// New allocates a rows x cols matrix. A matrix with no rows has no row table.
// The contents are zero, but callers should not rely on it unless they built
// the matrix through Identity, Random or Copy.
func New(rows, cols int) *Matrix {
	m := &Matrix{
		rows: rows,
		cols: cols,
	}
	if rows != 0 {
		m.data = make([][]byte, rows)
		for i := range m.data {
			m.data[i] = make([]byte, cols)
		}
	}
	return m
}

// FromRows builds a matrix holding a copy of rows.
func FromRows(rows [][]byte) (*Matrix, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}

	m := New(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, errors.Wrapf(ErrRowLength, "row %d has %d elements, expected %d", i, len(row), m.cols)
		}
		copy(m.data[i], row)
	}
	return m, nil
}

func (m *Matrix) Rows() int {
	return m.rows
}

func (m *Matrix) Cols() int {
	return m.cols
}

func (m *Matrix) At(i, j int) byte {
	return m.data[i][j]
}

func (m *Matrix) Set(i, j int, v byte) {
	m.data[i][j] = v
}

// Row returns row i. The slice aliases the matrix storage.
func (m *Matrix) Row(i int) []byte {
	return m.data[i]
}

// Release drops every row and then the row table. The matrix must not be
// used afterwards.
func (m *Matrix) Release() {
	for i := range m.data {
		m.data[i] = nil
	}
	m.data = nil
	m.rows, m.cols = 0, 0
}

// Grow widens every row to cols elements, zero filling the new tail.
// It never shrinks the matrix: cols <= Cols() is a no-op.
func (m *Matrix) Grow(cols int) {
	if cols <= m.cols {
		return
	}
	for i, row := range m.data {
		if cap(row) >= cols {
			row = row[:cols]
			for j := m.cols; j < cols; j++ {
				row[j] = 0
			}
		} else {
			grown := make([]byte, cols)
			copy(grown, row)
			row = grown
		}
		m.data[i] = row
	}
	m.cols = cols
}

// AppendRow makes row the new last row of m. The matrix takes ownership of
// row, the caller must not modify it afterwards. A row whose length is not
// Cols() is rejected, except that an empty 0x0 matrix adopts the length of
// its first row.
func (m *Matrix) AppendRow(row []byte) error {
	if m.rows == 0 && m.cols == 0 {
		m.cols = len(row)
	}
	if len(row) != m.cols {
		return errors.Wrapf(ErrRowLength, "appending row of %d elements to %d columns", len(row), m.cols)
	}
	m.data = append(m.data, row)
	m.rows++
	return nil
}

// swapRows exchanges rows i and j without copying them.
func (m *Matrix) swapRows(i, j int) {
	m.data[i], m.data[j] = m.data[j], m.data[i]
}
