// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio_test

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jdlib/fluentio"
)

func TestCopyToTarget(t *testing.T) {
	var buf bytes.Buffer
	n, err := fluentio.From(fluentio.Bytes([]byte("payload"))).To(fluentio.ToBuffer(&buf))
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "payload", buf.String())
}

func TestCopyToWriterFlushesNotCloses(t *testing.T) {
	rec := &recordingWriteStream{}
	bw := bufio.NewWriter(rec)

	n, err := fluentio.From(fluentio.Bytes([]byte("direct"))).ToWriter(bw)
	require.NoError(t, err)
	require.Equal(t, int64(6), n)
	require.Equal(t, []byte("direct"), rec.data)
	require.False(t, rec.closed)
}

func TestCopyOpensSourceBeforeTarget(t *testing.T) {
	// A target that cannot be created must leave the source closed and the
	// target untouched beyond the failed create.
	src := &recordingSource{data: "data"}
	tgt := &failingTarget{err: errors.New("create boom")}

	_, err := fluentio.From(src).To(tgt)
	require.Error(t, err)
	require.True(t, tgt.tried)
	require.Len(t, src.streams, 1)
	require.True(t, src.streams[0].closed)
}

func TestCopyUnreadableSourceCreatesNoTarget(t *testing.T) {
	tgt := &recordingTarget{}
	_, err := fluentio.From(failingSource{err: errors.New("open boom")}).To(tgt)
	require.Error(t, err)
	require.Empty(t, tgt.streams)
}

func TestCopyUnreadableSourceDoesNotTruncateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(path, []byte("precious"), 0o644))

	_, err := fluentio.From(failingSource{err: errors.New("open boom")}).To(fluentio.ToFile(path))
	require.Error(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("precious"), got)
}

func TestCopyClosesTarget(t *testing.T) {
	tgt := &recordingTarget{}
	_, err := fluentio.From(fluentio.Bytes([]byte("x"))).To(tgt)
	require.NoError(t, err)
	require.Len(t, tgt.streams, 1)
	require.True(t, tgt.streams[0].closed)
}

func TestCopyBytesTerminal(t *testing.T) {
	got, err := fluentio.From(fluentio.Bytes([]byte("mem"))).Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("mem"), got)
}

func TestCopyCountBytesRawSource(t *testing.T) {
	n, err := fluentio.From(fluentio.Bytes(make([]byte, 1234))).CountBytes().To(fluentio.Discard)
	require.NoError(t, err)
	require.Equal(t, int64(1234), n)
}

func TestCopySilentKeepsPartialCount(t *testing.T) {
	boom := errors.New("write boom")
	var seen error

	n, err := fluentio.From(fluentio.Bytes([]byte("abcdef"))).
		Silent(func(e error) { seen = e }).
		ToWriter(errWriter{n: 2, err: boom})
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.ErrorIs(t, seen, boom)
}

func TestTextCopyToTarget(t *testing.T) {
	var sb strings.Builder
	n, err := fluentio.FromText(fluentio.Str("hällo")).To(fluentio.ToStringBuilder(&sb))
	require.NoError(t, err)
	require.Equal(t, int64(6), n) // UTF-8 bytes
	require.Equal(t, "hällo", sb.String())
}

func TestTextCopyString(t *testing.T) {
	s, err := fluentio.FromText(fluentio.Lines([]string{"a", "b"})).String()
	require.NoError(t, err)
	require.Equal(t, "a\nb\n", s)
}

func TestWriteToBytes(t *testing.T) {
	var buf bytes.Buffer
	n, err := fluentio.To(fluentio.ToBuffer(&buf)).Bytes([]byte("pushed"))
	require.NoError(t, err)
	require.Equal(t, int64(6), n)
	require.Equal(t, "pushed", buf.String())
}

func TestWriteToFrom(t *testing.T) {
	var buf bytes.Buffer
	n, err := fluentio.To(fluentio.ToBuffer(&buf)).From(fluentio.Bytes([]byte("moved")))
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, "moved", buf.String())
}

func TestWriteToFromOpensSourceFirst(t *testing.T) {
	tgt := &recordingTarget{}
	_, err := fluentio.To(tgt).From(failingSource{err: errors.New("open boom")})
	require.Error(t, err)
	require.Empty(t, tgt.streams)
}

func TestWriteToFromReader(t *testing.T) {
	var buf bytes.Buffer
	n, err := fluentio.To(fluentio.ToBuffer(&buf)).FromReader(strings.NewReader("reader"))
	require.NoError(t, err)
	require.Equal(t, int64(6), n)
	require.Equal(t, "reader", buf.String())
}

func TestWriteToTee(t *testing.T) {
	var primary, side bytes.Buffer
	_, err := fluentio.To(fluentio.ToBuffer(&primary)).Tee(&side).Bytes([]byte("dup"))
	require.NoError(t, err)
	require.Equal(t, "dup", primary.String())
	require.Equal(t, "dup", side.String())
}

func TestWriteToWrapWriter(t *testing.T) {
	// a buffering wrapper must be drained before the target is closed
	rec := &recordingTarget{}
	n, err := fluentio.To(rec).
		WrapWriter(func(w io.Writer) io.Writer { return bufio.NewWriter(w) }).
		Bytes([]byte("wrapped"))
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Len(t, rec.streams, 1)
	require.Equal(t, []byte("wrapped"), rec.streams[0].data)
	require.True(t, rec.streams[0].closed)
}

func TestWriteTextLines(t *testing.T) {
	var sb strings.Builder
	n, err := fluentio.ToText(fluentio.ToStringBuilder(&sb)).Lines([]string{"one", "two"})
	require.NoError(t, err)
	require.Equal(t, int64(8), n)
	require.Equal(t, "one\ntwo\n", sb.String())
}

func TestWriteTextFromSource(t *testing.T) {
	var sb strings.Builder
	_, err := fluentio.ToText(fluentio.ToStringBuilder(&sb)).From(fluentio.Str("über"))
	require.NoError(t, err)
	require.Equal(t, "über", sb.String())
}

func TestWriteStreamFlushes(t *testing.T) {
	rec := &recordingWriteStream{}
	bw := bufio.NewWriter(rec)
	_, err := fluentio.WriteStream(bw).Bytes([]byte("flushed through"))
	require.NoError(t, err)
	require.Equal(t, []byte("flushed through"), rec.data)
	require.False(t, rec.closed)
}

func TestWriteStreamTeeFlushes(t *testing.T) {
	// a stacked decorator must not hide the caller stream's flush
	rec := &recordingWriteStream{}
	bw := bufio.NewWriter(rec)
	var side bytes.Buffer

	_, err := fluentio.WriteStream(bw).Tee(&side).Bytes([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), rec.data)
	require.Equal(t, "hello", side.String())
	require.False(t, rec.closed)
}

func TestWriteStreamWrapWriterFlushes(t *testing.T) {
	rec := &recordingWriteStream{}
	bw := bufio.NewWriter(rec)

	_, err := fluentio.WriteStream(bw).
		WrapWriter(func(w io.Writer) io.Writer { return bufio.NewWriter(w) }).
		Bytes([]byte("double buffered"))
	require.NoError(t, err)
	require.Equal(t, []byte("double buffered"), rec.data)
	require.False(t, rec.closed)
}

func TestWriteRoundTripLines(t *testing.T) {
	var buf bytes.Buffer
	_, err := fluentio.ToText(fluentio.ToBuffer(&buf)).Lines([]string{"a", "b", "c"})
	require.NoError(t, err)

	got, err := fluentio.ReadText(fluentio.Str(buf.String())).Lines().Slice()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, got)
}
