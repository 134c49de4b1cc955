// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jdlib/fluentio"
)

func TestTeeReader(t *testing.T) {
	var side bytes.Buffer
	r := fluentio.TeeReader(strings.NewReader("duplicate"), &side)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "duplicate", string(got))
	require.Equal(t, "duplicate", side.String())
}

func TestTeeReaderWriteError(t *testing.T) {
	boom := errors.New("side boom")
	r := fluentio.TeeReader(strings.NewReader("data"), errWriter{err: boom})
	_, err := io.ReadAll(r)
	require.ErrorIs(t, err, boom)
}

func TestTeeReaderShortWrite(t *testing.T) {
	r := fluentio.TeeReader(strings.NewReader("data"), shortWriter{limit: 1})
	_, err := io.ReadAll(r)
	require.ErrorIs(t, err, io.ErrShortWrite)
}

func TestTeeReaderPropagatesReadError(t *testing.T) {
	boom := errors.New("read boom")
	var side bytes.Buffer
	r := fluentio.TeeReader(errReader{err: boom}, &side)
	_, err := io.ReadAll(r)
	require.ErrorIs(t, err, boom)
	require.Zero(t, side.Len())
}

func TestTeeWriter(t *testing.T) {
	var primary, side bytes.Buffer
	w := fluentio.TeeWriter(&primary, &side)
	n, err := w.Write([]byte("both"))
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "both", primary.String())
	require.Equal(t, "both", side.String())
}

func TestTeeWriterPrimaryError(t *testing.T) {
	boom := errors.New("primary boom")
	var side bytes.Buffer
	w := fluentio.TeeWriter(errWriter{n: 2, err: boom}, &side)
	n, err := w.Write([]byte("data"))
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, n)
	// the tee must not see data the primary did not accept
	require.Zero(t, side.Len())
}

func TestTeeWriterPrimaryShortWrite(t *testing.T) {
	var side bytes.Buffer
	w := fluentio.TeeWriter(shortWriter{limit: 2}, &side)
	_, err := w.Write([]byte("data"))
	require.ErrorIs(t, err, io.ErrShortWrite)
	require.Zero(t, side.Len())
}

func TestTeeWriterTeeError(t *testing.T) {
	boom := errors.New("tee boom")
	var primary bytes.Buffer
	w := fluentio.TeeWriter(&primary, errWriter{err: boom})
	_, err := w.Write([]byte("data"))
	require.ErrorIs(t, err, boom)
	require.Equal(t, "data", primary.String())
}
