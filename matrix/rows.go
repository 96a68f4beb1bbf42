package matrix

import (
	"github.com/moratsam/gfmat/gf"
)

// ScaleRow divides every element of row by factor, in place.
// Pass row[:size] to scale only a prefix. A zero factor leaves row untouched
// and returns gf.ErrDivByZero.
func ScaleRow(row []byte, factor byte) error {
	inv, err := gf.Inverse(factor)
	if err != nil {
		return err
	}
	for i := range row {
		row[i] = gf.Mul(row[i], inv)
	}
	return nil
}

// CombineRow sets a = a - coeff*b, in place, over the common length of a and b.
func CombineRow(a, b []byte, coeff byte) {
	if coeff == 0 {
		return
	}
	if len(b) < len(a) {
		a = a[:len(b)]
	}
	for i := range a {
		a[i] = gf.Sub(a[i], gf.Mul(coeff, b[i]))
	}
}
