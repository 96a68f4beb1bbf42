// Package erasure is a Cauchy Reed-Solomon style erasure code over GF(256).
//
// n data rows are encoded into n+k shards, and any n of the shards are
// enough to reconstruct the data.
package erasure

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/moratsam/gfmat/gf"
	"github.com/moratsam/gfmat/matrix"
)

var (
	ErrShardCount      = errors.New("erasure: invalid shard count")
	ErrDataLength      = errors.New("erasure: incorrect data length")
	ErrNotEnoughShards = errors.New("erasure: not enough shards to reconstruct data")
	ErrShardIndex      = errors.New("erasure: invalid shard index")
	ErrShardHeader     = errors.New("erasure: malformed shard header")
)

// Shard is one encoded row, tagged with the index of the Cauchy row that
// produced it.
type Shard struct {
	Index byte
	Data  []byte
}

type Manager struct {
	logger *zap.Logger

	k, n int
	mat  *matrix.Matrix
}

// NewManager returns a coder for n data shards and k parity shards.
// The Cauchy points of all n+k rows and n columns must be distinct field
// elements, so 2n+k may not exceed 256.
func NewManager(logger *zap.Logger, k, n int) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if n < 1 || k < 0 || 2*n+k > gf.Order {
		return nil, errors.Wrapf(ErrShardCount, "k=%d n=%d", k, n)
	}

	mat, err := createCauchy(k, n)
	if err != nil {
		return nil, errors.Wrap(err, "creating cauchy matrix")
	}

	logger.Debug("created erasure manager", zap.Int("k", k), zap.Int("n", n))
	return &Manager{
		logger: logger,
		k:      k,
		n:      n,
		mat:    mat,
	}, nil
}

// create cauchy matrix of dimensions (n+k)xn
// every n rows of it form an invertible matrix
func createCauchy(k, n int) (*matrix.Matrix, error) {
	mat := matrix.New(n+k, n)
	for i := 0; i < n+k; i++ {
		for j := 0; j < n; j++ {
			v, err := gf.Div(1, gf.Add(byte(i), byte(n+k+j)))
			if err != nil {
				return nil, err
			}
			mat.Set(i, j, v)
		}
	}
	return mat, nil
}

func (m *Manager) DataShards() int {
	return m.n
}

func (m *Manager) ParityShards() int {
	return m.k
}

// Encode encodes n equally long data rows into n+k shards.
func (m *Manager) Encode(data [][]byte) ([]Shard, error) {
	if len(data) != m.n {
		return nil, errors.Wrapf(ErrDataLength, "got %d rows, expected %d", len(data), m.n)
	}
	for i := range data {
		if len(data[i]) != len(data[0]) {
			return nil, errors.Wrapf(ErrDataLength, "row %d has %d bytes, expected %d", i, len(data[i]), len(data[0]))
		}
	}

	d, err := matrix.FromRows(data)
	if err != nil {
		return nil, errors.Wrap(err, "building data matrix")
	}

	enc, err := matrix.Mul(m.mat, d)
	if err != nil {
		return nil, errors.Wrap(err, "encoding data")
	}
	d.Release()

	shards := make([]Shard, enc.Rows())
	for i := range shards {
		shards[i] = Shard{Index: byte(i), Data: enc.Row(i)}
	}
	m.logger.Debug("encoded data", zap.Int("shards", len(shards)), zap.Int("shardSize", len(data[0])))
	return shards, nil
}

// Decode reconstructs the n data rows from at least n shards. The shards
// with the lowest indexes are used.
func (m *Manager) Decode(shards []Shard) ([][]byte, error) {
	ixs, err := m.selectRows(shardIndexes(shards))
	if err != nil {
		return nil, err
	}

	byIndex := make(map[int][]byte, len(shards))
	for _, s := range shards {
		byIndex[int(s.Index)] = s.Data
	}
	width := len(byIndex[ixs[0]])

	enc := matrix.New(0, width)
	for _, ix := range ixs {
		row := make([]byte, len(byIndex[ix]))
		copy(row, byIndex[ix])
		if err := enc.AppendRow(row); err != nil {
			return nil, errors.Wrapf(ErrDataLength, "shard %d: %v", ix, err)
		}
	}

	inv, err := m.inverse(ixs)
	if err != nil {
		return nil, err
	}
	dec, err := matrix.Mul(inv, enc)
	if err != nil {
		return nil, errors.Wrap(err, "decoding shards")
	}

	data := make([][]byte, dec.Rows())
	for i := range data {
		data[i] = dec.Row(i)
	}
	m.logger.Debug("decoded shards", zap.Ints("rows", ixs))
	return data, nil
}

func shardIndexes(shards []Shard) []int {
	ixs := make([]int, len(shards))
	for i, s := range shards {
		ixs[i] = int(s.Index)
	}
	return ixs
}

// selectRows validates shard indexes and returns the n lowest, ascending.
func (m *Manager) selectRows(ixs []int) ([]int, error) {
	seen := make(map[int]bool, len(ixs))
	for _, ix := range ixs {
		if ix < 0 || ix >= m.n+m.k {
			return nil, errors.Wrapf(ErrShardIndex, "index %d out of range [0, %d)", ix, m.n+m.k)
		}
		if seen[ix] {
			return nil, errors.Wrapf(ErrShardIndex, "duplicate index %d", ix)
		}
		seen[ix] = true
	}
	if len(ixs) < m.n {
		return nil, errors.Wrapf(ErrNotEnoughShards, "got %d, need %d", len(ixs), m.n)
	}

	sorted := make([]int, len(ixs))
	copy(sorted, ixs)
	sort.Ints(sorted)
	return sorted[:m.n], nil
}

// inverse returns the inverse of the Cauchy sub-matrix made of rows ixs.
func (m *Manager) inverse(ixs []int) (*matrix.Matrix, error) {
	sub := matrix.New(0, m.n)
	for _, ix := range ixs {
		row := make([]byte, m.n)
		copy(row, m.mat.Row(ix))
		if err := sub.AppendRow(row); err != nil {
			return nil, errors.Wrap(err, "building cauchy sub-matrix")
		}
	}
	defer sub.Release()

	// leading minors of a cauchy matrix are cauchy matrices, so no pivot is ever 0
	inv, err := matrix.Invert(sub)
	if err != nil {
		return nil, errors.Wrap(err, "inverting cauchy sub-matrix")
	}
	return inv, nil
}
