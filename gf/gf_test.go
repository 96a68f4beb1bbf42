package gf

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestTablesMatchSlowMul(t *testing.T) {
	require.Equal(t, byte(0x1d), mulSlow(0x80, 2))
	require.Equal(t, byte(1), Mul(expTable[254], 2))

	for a := 0; a < Order; a++ {
		for b := 0; b < Order; b++ {
			require.Equal(t, mulSlow(byte(a), byte(b)), Mul(byte(a), byte(b)), "a=%d b=%d", a, b)
		}
	}
}

func TestField(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"add is its own inverse":       testAddSelfInverse,
		"div undoes mul":               testDivUndoesMul,
		"div by zero fails":            testDivByZero,
		"every nonzero has an inverse": testInverse,
		"exp":                          testExp,
		"mul distributes over add":     testDistributive,
	} {
		t.Run(scenario, fn)
	}
}

func testAddSelfInverse(t *testing.T) {
	for a := 0; a < Order; a++ {
		require.Equal(t, byte(0), Add(byte(a), byte(a)))
		require.Equal(t, byte(a), Sub(Add(byte(a), 77), 77))
	}
}

func testDivUndoesMul(t *testing.T) {
	for a := 0; a < Order; a++ {
		for b := 1; b < Order; b++ {
			q, err := Div(Mul(byte(a), byte(b)), byte(b))
			require.NoError(t, err)
			require.Equal(t, byte(a), q)
		}
	}
}

func testDivByZero(t *testing.T) {
	_, err := Div(5, 0)
	require.True(t, errors.Is(err, ErrDivByZero))

	_, err = Div(0, 0)
	require.True(t, errors.Is(err, ErrDivByZero))

	_, err = Inverse(0)
	require.True(t, errors.Is(err, ErrDivByZero))
}

func testInverse(t *testing.T) {
	for a := 1; a < Order; a++ {
		inv, err := Inverse(byte(a))
		require.NoError(t, err)
		require.Equal(t, byte(1), Mul(byte(a), inv))
	}
}

func testExp(t *testing.T) {
	require.Equal(t, byte(1), Exp(0, 0))
	require.Equal(t, byte(0), Exp(0, 3))
	require.Equal(t, byte(1), Exp(2, 255))
	require.Equal(t, byte(0x1d), Exp(2, 8))

	x := byte(1)
	for n := 0; n < 20; n++ {
		require.Equal(t, x, Exp(3, n))
		x = Mul(x, 3)
	}
}

func testDistributive(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		a, b, c := RandomFrom(r), RandomFrom(r), RandomFrom(r)
		require.Equal(t, Add(Mul(a, b), Mul(a, c)), Mul(a, Add(b, c)))
	}
}

func TestRandomCoversField(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	var seen [Order]bool
	for i := 0; i < 100*Order; i++ {
		seen[RandomFrom(r)] = true
	}
	for v, ok := range seen {
		require.True(t, ok, "value %d never drawn", v)
	}
	_ = Random()
}
