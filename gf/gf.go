// Package gf implements arithmetic over GF(256) with the primitive
// polynomial 0x11d and generator 2.
package gf

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Poly is the irreducible polynomial the field is reduced by.
const Poly = 0x11d

// Order is the number of elements in the field.
const Order = 256

var ErrDivByZero = errors.New("gf: division by zero")

var (
	expTable [512]byte
	logTable [256]byte
)

func init() {
	initTables()
}

// mulSlow multiplies by shift and add, reducing by Poly whenever the
// shifted operand overflows a byte.
func mulSlow(a, b byte) byte {
	var p byte
	x := uint16(a)
	for y := b; y > 0; y >>= 1 {
		if y&1 == 1 {
			p ^= byte(x)
		}
		x <<= 1
		if x&0x100 != 0 {
			x ^= Poly
		}
	}
	return p
}

func initTables() {
	x := byte(1)
	for i := 0; i < Order-1; i++ {
		expTable[i] = x
		logTable[x] = byte(i)
		x = mulSlow(x, 2)
	}
	// repeated so Mul and Div can index log sums up to 509 without reducing mod 255
	copy(expTable[Order-1:2*(Order-1)], expTable[:Order-1])
}

func Add(a, b byte) byte {
	return a ^ b
}

func Sub(a, b byte) byte {
	return a ^ b
}

func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[int(logTable[a])+int(logTable[b])]
}

// Div returns a/b. Dividing by 0 is the one undefined operation of the field.
func Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	if a == 0 {
		return 0, nil
	}
	return expTable[int(logTable[a])+255-int(logTable[b])], nil
}

// Inverse returns the multiplicative inverse of a.
func Inverse(a byte) (byte, error) {
	return Div(1, a)
}

// Exp returns a to the power of n. Exp(0, 0) is 1.
func Exp(a byte, n int) byte {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	return expTable[(int(logTable[a])*n)%255]
}

// Random returns an element uniformly distributed over the field.
// It draws from the shared math/rand source and offers no security guarantee.
func Random() byte {
	return byte(rand.Intn(Order))
}

// RandomFrom is Random drawing from r. r must not be shared between goroutines.
func RandomFrom(r *rand.Rand) byte {
	return byte(r.Intn(Order))
}
