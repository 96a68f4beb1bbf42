// Package shamir implements Shamir's threshold secret sharing over GF(256),
// one polynomial per secret byte.
//
// Polynomial coefficients come from crypto/rand unless a deterministic
// source is installed with WithRand, which is only fit for tests.
package shamir

import (
	crand "crypto/rand"
	"math/rand"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/moratsam/gfmat/gf"
)

var (
	ErrThreshold = errors.New("shamir: invalid threshold")
	ErrShareX    = errors.New("shamir: invalid share x coordinate")
)

// Share is the evaluation of every byte polynomial at X.
type Share struct {
	X byte
	Y []byte
}

type Manager struct {
	logger *zap.Logger

	//any k of the n shares recover the secret
	k, n int

	rnd *rand.Rand
}

func NewManager(logger *zap.Logger, k, n int) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if k < 1 || n < k || n >= gf.Order {
		return nil, errors.Wrapf(ErrThreshold, "k=%d n=%d", k, n)
	}

	return &Manager{
		logger: logger,
		k:      k,
		n:      n,
	}, nil
}

// WithRand makes the manager draw polynomial coefficients from r instead of
// crypto/rand. Shares made this way are only as secret as r is unpredictable.
func (m *Manager) WithRand(r *rand.Rand) *Manager {
	m.rnd = r
	return m
}

// randomCoefs fills coefs with uniformly random field elements.
func (m *Manager) randomCoefs(coefs []byte) error {
	if m.rnd == nil {
		_, err := crand.Read(coefs)
		return errors.Wrap(err, "reading random coefficients")
	}
	for i := range coefs {
		coefs[i] = gf.RandomFrom(m.rnd)
	}
	return nil
}

// polyEval evaluates the polynomial with coefficients poly (lowest first) at x.
func polyEval(poly []byte, x byte) byte {
	value := byte(0)
	for ix, coef := range poly {
		value = gf.Add(value, gf.Mul(coef, gf.Exp(x, ix)))
	}
	return value
}

// Split returns n shares of secret with x coordinates 1..n.
func (m *Manager) Split(secret []byte) ([]Share, error) {
	shares := make([]Share, m.n)
	for ix := range shares { //points go from 1 onwards, because poly(0) = secret
		shares[ix] = Share{X: byte(1 + ix), Y: make([]byte, len(secret))}
	}

	poly := make([]byte, m.k)
	for b, s := range secret {
		poly[0] = s
		if err := m.randomCoefs(poly[1:]); err != nil {
			return nil, err
		}
		for ix := range shares {
			shares[ix].Y[b] = polyEval(poly, shares[ix].X)
		}
	}

	m.logger.Debug("split secret", zap.Int("k", m.k), zap.Int("n", m.n), zap.Int("size", len(secret)))
	return shares, nil
}

// Combine recovers the secret from the first k shares by Lagrange
// interpolation at 0.
func (m *Manager) Combine(shares []Share) ([]byte, error) {
	if len(shares) < m.k {
		return nil, errors.Wrapf(ErrThreshold, "got %d shares, need %d", len(shares), m.k)
	}
	points := shares[:m.k]

	seen := make(map[byte]bool, len(points))
	for _, p := range points {
		if p.X == 0 || seen[p.X] {
			return nil, errors.Wrapf(ErrShareX, "x=%d", p.X)
		}
		if len(p.Y) != len(points[0].Y) {
			return nil, errors.Wrapf(ErrThreshold, "share %d has %d bytes, expected %d", p.X, len(p.Y), len(points[0].Y))
		}
		seen[p.X] = true
	}

	basis, err := lagrangeBasis(points)
	if err != nil {
		return nil, errors.Wrap(err, "computing lagrange basis")
	}

	secret := make([]byte, len(points[0].Y))
	for b := range secret {
		var ss byte
		for ix, p := range points {
			ss = gf.Add(ss, gf.Mul(p.Y[b], basis[ix]))
		}
		secret[b] = ss
	}
	return secret, nil
}

// lagrangeBasis returns the lagrange basis polynomials of points evaluated at 0.
func lagrangeBasis(points []Share) ([]byte, error) {
	coefs := make([]byte, len(points))
	for ix := range coefs {
		coefs[ix] = 1
		for i := range points {
			if i == ix {
				continue
			}
			//(0 - x_i) / (x_ix - x_i), and minus is plus
			part, err := gf.Div(points[i].X, gf.Add(points[ix].X, points[i].X))
			if err != nil {
				return nil, err
			}
			coefs[ix] = gf.Mul(coefs[ix], part)
		}
	}
	return coefs, nil
}
