// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jdlib/fluentio"
)

func TestBytesSourceReopenable(t *testing.T) {
	src := fluentio.Bytes([]byte("data"))
	for i := 0; i < 2; i++ {
		got, err := fluentio.Read(src).All()
		require.NoError(t, err)
		require.Equal(t, []byte("data"), got)
	}
}

func TestStrSource(t *testing.T) {
	s, err := fluentio.ReadText(fluentio.Str("héllo")).String()
	require.NoError(t, err)
	require.Equal(t, "héllo", s)

	b, err := fluentio.Read(fluentio.Str("héllo")).All()
	require.NoError(t, err)
	require.Equal(t, []byte("héllo"), b)
}

func TestLinesSource(t *testing.T) {
	s, err := fluentio.FromText(fluentio.Lines([]string{"a", "b"})).String()
	require.NoError(t, err)
	require.Equal(t, "a\nb\n", s)

	s, err = fluentio.FromText(fluentio.Lines(nil)).String()
	require.NoError(t, err)
	require.Empty(t, s)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("file data"), 0o644))

	src := fluentio.FromFile(path)
	for i := 0; i < 2; i++ {
		got, err := fluentio.Read(src).All()
		require.NoError(t, err)
		require.Equal(t, []byte("file data"), got)
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := fluentio.Read(fluentio.FromFile(filepath.Join(t.TempDir(), "nope"))).All()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromReaderSingleUse(t *testing.T) {
	src := fluentio.FromReader(strings.NewReader("once"))

	got, err := fluentio.Read(src).All()
	require.NoError(t, err)
	require.Equal(t, []byte("once"), got)

	_, err = fluentio.Read(src).All()
	require.ErrorIs(t, err, fluentio.ErrSingleUse)
	require.True(t, fluentio.IsSingleUse(err))
}

func TestFromReaderClosesCloser(t *testing.T) {
	st := &recordingStream{r: strings.NewReader("x")}
	_, err := fluentio.Read(fluentio.FromReader(st)).All()
	require.NoError(t, err)
	require.True(t, st.closed)
}

func TestFromOpener(t *testing.T) {
	opens := 0
	src := fluentio.FromOpener(func() (io.ReadCloser, error) {
		opens++
		return io.NopCloser(strings.NewReader("gen")), nil
	})
	for i := 0; i < 2; i++ {
		got, err := fluentio.Read(src).All()
		require.NoError(t, err)
		require.Equal(t, []byte("gen"), got)
	}
	require.Equal(t, 2, opens)
}

func TestFromTextOpener(t *testing.T) {
	src := fluentio.FromTextOpener(func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("text")), nil
	})
	s, err := fluentio.ReadText(src).String()
	require.NoError(t, err)
	require.Equal(t, "text", s)
}
