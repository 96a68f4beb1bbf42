package erasure

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/moratsam/gfmat/matrix"
)

// ChunkWords is how many n-byte words are encoded per matrix multiplication.
const ChunkWords = 121

// HeaderSize is the length of the shard header: one byte Cauchy row index,
// one byte each for the n and k the shard was encoded with, then the length
// of the original data as a little endian uint64.
const HeaderSize = 11

type header struct {
	index int
	n, k  int
	size  uint64
}

func (m *Manager) writeHeader(w io.Writer, index int, size uint64) error {
	buf := make([]byte, HeaderSize)
	buf[0] = byte(index)
	buf[1] = byte(m.n)
	buf[2] = byte(m.k)
	binary.LittleEndian.PutUint64(buf[3:], size)
	_, err := w.Write(buf)
	return err
}

// readHeader reads a shard header and rejects shards encoded with a
// different n or k, since their Cauchy rows differ from ours.
func (m *Manager) readHeader(r io.Reader) (header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return header{}, errors.Wrap(ErrShardHeader, err.Error())
	}
	h := header{
		index: int(buf[0]),
		n:     int(buf[1]),
		k:     int(buf[2]),
		size:  binary.LittleEndian.Uint64(buf[3:]),
	}
	if h.n != m.n || h.k != m.k {
		return header{}, errors.Wrapf(ErrShardHeader, "shard encoded with k=%d n=%d, decoder has k=%d n=%d", h.k, h.n, m.k, m.n)
	}
	return h, nil
}

// EncodeStream reads size bytes from r and writes shard i to ws[i].
// The data is split into n-byte words, each word is a column of the data
// matrix; the last word is padded with zeros.
func (m *Manager) EncodeStream(r io.Reader, size int64, ws []io.Writer) error {
	if len(ws) != m.n+m.k {
		return errors.Wrapf(ErrShardCount, "got %d writers, expected %d", len(ws), m.n+m.k)
	}
	if size < 0 {
		return errors.Wrapf(ErrDataLength, "negative size %d", size)
	}

	for i, w := range ws {
		if err := m.writeHeader(w, i, uint64(size)); err != nil {
			return errors.Wrapf(err, "writing header of shard %d", i)
		}
	}

	buf := make([]byte, ChunkWords*m.n)
	remaining := size
	for remaining > 0 {
		toRead := int64(len(buf))
		if remaining < toRead {
			toRead = remaining
		}
		if _, err := io.ReadFull(r, buf[:toRead]); err != nil {
			return errors.Wrapf(ErrDataLength, "reading data: %v", err)
		}
		remaining -= toRead

		words := (int(toRead) + m.n - 1) / m.n
		for i := int(toRead); i < words*m.n; i++ {
			buf[i] = 0
		}

		data := matrix.New(m.n, words)
		for w := 0; w < words; w++ {
			for j := 0; j < m.n; j++ {
				data.Set(j, w, buf[w*m.n+j])
			}
		}
		enc, err := matrix.Mul(m.mat, data)
		if err != nil {
			return errors.Wrap(err, "encoding chunk")
		}
		data.Release()

		for i, w := range ws {
			if _, err := w.Write(enc.Row(i)); err != nil {
				return errors.Wrapf(err, "writing shard %d", i)
			}
		}
		enc.Release()
	}

	m.logger.Debug("encoded stream", zap.Int64("size", size), zap.Int("shards", len(ws)))
	return nil
}

// DecodeStream reads shards from rs and writes the original data to w.
// At least n shards are needed; the ones with the lowest indexes are used.
// It returns the number of bytes written.
func (m *Manager) DecodeStream(rs []io.Reader, w io.Writer) (int64, error) {
	headers := make([]header, len(rs))
	readers := make(map[int]io.Reader, len(rs))
	ixs := make([]int, len(rs))
	for i, r := range rs {
		h, err := m.readHeader(r)
		if err != nil {
			return 0, errors.Wrapf(err, "reading header of shard %d", i)
		}
		if i > 0 && h.size != headers[0].size {
			return 0, errors.Wrapf(ErrShardHeader, "shard %d has size %d, shard 0 has %d", i, h.size, headers[0].size)
		}
		headers[i] = h
		readers[h.index] = r
		ixs[i] = h.index
	}

	rows, err := m.selectRows(ixs)
	if err != nil {
		return 0, err
	}
	inv, err := m.inverse(rows)
	if err != nil {
		return 0, err
	}

	size := headers[0].size
	totalWords := (size + uint64(m.n) - 1) / uint64(m.n)
	m.logger.Debug("decoding stream", zap.Ints("rows", rows), zap.Uint64("size", size))

	var written int64
	remaining := size
	out := make([]byte, 0, ChunkWords*m.n)
	for totalWords > 0 {
		words := uint64(ChunkWords)
		if totalWords < words {
			words = totalWords
		}
		totalWords -= words

		enc := matrix.New(0, int(words))
		for _, ix := range rows {
			row := make([]byte, words)
			if _, err := io.ReadFull(readers[ix], row); err != nil {
				return written, errors.Wrapf(ErrDataLength, "shard with index %d truncated: %v", ix, err)
			}
			if err := enc.AppendRow(row); err != nil {
				return written, err
			}
		}

		data, err := matrix.Mul(inv, enc)
		if err != nil {
			return written, errors.Wrap(err, "decoding chunk")
		}
		enc.Release()

		out = out[:0]
		for c := 0; c < data.Cols(); c++ {
			for j := 0; j < data.Rows(); j++ {
				out = append(out, data.At(j, c))
			}
		}
		data.Release()

		if uint64(len(out)) > remaining {
			out = out[:remaining]
		}
		nw, err := w.Write(out)
		written += int64(nw)
		if err != nil {
			return written, errors.Wrap(err, "writing decoded data")
		}
		remaining -= uint64(nw)
	}

	return written, nil
}
