package erasure

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ShardPath returns the path of shard i of inpath, inside outDir. An empty
// outDir puts the shard next to inpath.
func ShardPath(inpath, outDir string, i int) string {
	if outDir == "" {
		outDir = filepath.Dir(inpath)
	}
	return filepath.Join(outDir, filepath.Base(inpath)+"_"+strconv.Itoa(i)+".enc")
}

// EncodeFile encodes the file at inpath and returns the paths of the n+k
// shards it wrote. On error no shard files are left behind.
func (m *Manager) EncodeFile(inpath, outDir string) (paths []string, err error) {
	in, err := os.Open(inpath)
	if err != nil {
		return nil, errors.Wrap(err, "opening input file")
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "getting input file size")
	}

	outpaths := make([]string, m.n+m.k)
	files := make([]*os.File, m.n+m.k)
	bufs := make([]*bufio.Writer, m.n+m.k)
	ws := make([]io.Writer, m.n+m.k)
	defer func() {
		for i, f := range files {
			if f != nil {
				f.Close()
			}
			if err != nil && outpaths[i] != "" {
				os.Remove(outpaths[i])
			}
		}
	}()
	for i := range outpaths {
		f, err := os.Create(ShardPath(inpath, outDir, i))
		if err != nil {
			return nil, errors.Wrap(err, "creating shard file")
		}
		outpaths[i], files[i] = f.Name(), f
		bufs[i] = bufio.NewWriter(f)
		ws[i] = bufs[i]
	}

	if err := m.EncodeStream(bufio.NewReader(in), fi.Size(), ws); err != nil {
		return nil, err
	}
	for i, b := range bufs {
		if err := b.Flush(); err != nil {
			return nil, errors.Wrapf(err, "flushing shard %d", i)
		}
		f := files[i]
		files[i] = nil
		if err := f.Close(); err != nil {
			return nil, errors.Wrapf(err, "closing shard %d", i)
		}
	}

	m.logger.Info("encoded file", zap.String("path", inpath), zap.Int64("size", fi.Size()), zap.Strings("shards", outpaths))
	return outpaths, nil
}

// DecodeFiles decodes the shard files at shardPaths into outpath. On error
// the output file is removed.
func (m *Manager) DecodeFiles(shardPaths []string, outpath string) (err error) {
	rs := make([]io.Reader, len(shardPaths))
	for i, p := range shardPaths {
		f, err := os.Open(p)
		if err != nil {
			return errors.Wrap(err, "opening shard file")
		}
		defer f.Close()
		rs[i] = bufio.NewReader(f)
	}

	out, err := os.Create(outpath)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	closed := false
	defer func() {
		if !closed {
			out.Close()
		}
		if err != nil {
			os.Remove(outpath)
		}
	}()

	w := bufio.NewWriter(out)
	written, err := m.DecodeStream(rs, w)
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "flushing output file")
	}
	closed = true
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "closing output file")
	}

	m.logger.Info("decoded file", zap.String("path", outpath), zap.Int64("size", written), zap.Int("shards", len(shardPaths)))
	return nil
}
