// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio_test

import (
	"bufio"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/jdlib/fluentio"
)

func TestWriteToCountBytes(t *testing.T) {
	n, err := fluentio.To(fluentio.Discard).CountBytes().Bytes([]byte("12345"))
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
}

func TestWriteToCountBytesOnStream(t *testing.T) {
	var sb strings.Builder
	n, err := fluentio.WriteStream(&sb).CountBytes().Bytes([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.Equal(t, "abc", sb.String())
}

func TestCountBytesFlushesBufferedStream(t *testing.T) {
	// the counting layer must not swallow the flush of the caller's stream
	rec := &recordingWriteStream{}
	bw := bufio.NewWriter(rec)

	n, err := fluentio.WriteStream(bw).CountBytes().Bytes([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, []byte("hello"), rec.data)
	require.False(t, rec.closed)
}

func TestCountRunesFlushesBufferedStream(t *testing.T) {
	rec := &recordingWriteStream{}
	bw := bufio.NewWriter(rec)

	n, err := fluentio.WriteTextStream(bw).CountRunes().Str("äb")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Equal(t, []byte("äb"), rec.data)
	require.False(t, rec.closed)
}

func TestWriteTextCountRunes(t *testing.T) {
	// "äb" is three bytes but two runes
	n, err := fluentio.ToText(fluentio.Discard).CountRunes().Str("äb")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestCountRunesSplitAcrossWrites(t *testing.T) {
	// runes arriving one byte per write must still be counted once each
	src := fluentio.FromReader(iotest.OneByteReader(strings.NewReader("äö")))
	n, err := fluentio.ToText(fluentio.Discard).CountRunes().From(src)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestCountToDiscardStillCounts(t *testing.T) {
	n, err := fluentio.From(fluentio.Bytes(make([]byte, 512))).
		CountBytes().
		To(fluentio.Discard)
	require.NoError(t, err)
	require.Equal(t, int64(512), n)
}

// The counting layer only comes into existence when the pipeline actually
// opens its stream. A pipeline that fails before that point reports a count
// of zero rather than an error about the missing counter; this behavior is
// intentional and pinned here.
func TestCountFallbackZeroWhenTargetNeverOpened(t *testing.T) {
	boom := errors.New("open boom")

	var seen error
	n, err := fluentio.To(&recordingTarget{}).
		CountBytes().
		Silent(func(e error) { seen = e }).
		From(failingSource{err: boom})
	require.NoError(t, err)
	require.Zero(t, n)
	require.ErrorIs(t, seen, boom)
}

func TestCountFallbackZeroWhenSourceNeverOpened(t *testing.T) {
	boom := errors.New("open boom")

	n, err := fluentio.From(failingSource{err: boom}).
		CountBytes().
		Silent(nil).
		To(fluentio.Discard)
	require.NoError(t, err)
	require.Zero(t, n)
}
