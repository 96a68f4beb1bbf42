package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moratsam/gfmat/matrix"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := &app{logger: zap.NewNop()}
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"invert prints the inverse":     testInvert,
		"invert without pivot fails":    testInvertZeroPivot,
		"invert rejects ragged rows":    testInvertRagged,
		"encode then decode a file":     testEncodeDecode,
		"split then combine a secret":   testSplitCombine,
		"decode without out path fails": testDecodeNoOut,
	} {
		t.Run(scenario, fn)
	}
}

func testInvert(t *testing.T) {
	out, err := run(t, "invert", "01 00", "00 01")
	require.NoError(t, err)
	require.Equal(t, matrix.Identity(2).String(), out)
}

func testInvertZeroPivot(t *testing.T) {
	_, err := run(t, "invert", "00 01", "01 00")
	require.True(t, errors.Is(err, matrix.ErrSingular))

	out, err := run(t, "invert", "--pivot", "00,01", "0100")
	require.NoError(t, err)
	require.Equal(t, "rows = 2, columns = 2\n| 00 01 |\n| 01 00 |\n", out)
}

func testInvertRagged(t *testing.T) {
	_, err := run(t, "invert", "01 00", "00")
	require.True(t, errors.Is(err, matrix.ErrRowLength))

	_, err = run(t, "invert", "zz")
	require.Error(t, err)
}

func testEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	inpath := filepath.Join(dir, "fajl")
	data := bytes.Repeat([]byte("kurba sem DOBR BOBR "), 100)
	require.NoError(t, os.WriteFile(inpath, data, 0o644))

	out, err := run(t, "encode", "-k", "2", "-n", "3", inpath)
	require.NoError(t, err)
	paths := strings.Fields(out)
	require.Len(t, paths, 5)

	outpath := filepath.Join(dir, "dekodiran")
	_, err = run(t, "decode", "-k", "2", "-n", "3", "-o", outpath, paths[4], paths[1], paths[3])
	require.NoError(t, err)
	got, err := os.ReadFile(outpath)
	require.NoError(t, err)
	require.Equal(t, data, got)

	// shards made with -k 2 cannot be decoded as -k 3
	wrong := filepath.Join(dir, "napacno")
	_, err = run(t, "decode", "-k", "3", "-n", "3", "-o", wrong, paths[1], paths[3], paths[4])
	require.Error(t, err)
	_, err = os.Stat(wrong)
	require.True(t, os.IsNotExist(err))
}

func testSplitCombine(t *testing.T) {
	out, err := run(t, "split", "-k", "2", "-n", "4", "AI reconquista")
	require.NoError(t, err)
	shares := strings.Fields(out)
	require.Len(t, shares, 4)

	out, err = run(t, append([]string{"combine"}, shares[1], shares[3])...)
	require.NoError(t, err)
	require.Equal(t, "AI reconquista\n", out)

	_, err = run(t, "combine", "nope")
	require.Error(t, err)
}

func testDecodeNoOut(t *testing.T) {
	_, err := run(t, "decode", "whatever.enc")
	require.Error(t, err)
}
