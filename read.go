// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// Read starts a read pipeline pulling data from src into memory.
func Read(src ByteSource) *ByteRead { return &ByteRead{open: src.Open} }

// ReadStream starts a read pipeline over an already-open stream. The stream
// is never closed by the pipeline.
func ReadStream(r io.Reader) *ByteRead { return &ByteRead{direct: r} }

// ReadText starts a text read pipeline pulling UTF-8 text from src.
func ReadText(src CharSource) *CharRead { return &CharRead{open: src.OpenText} }

// ReadTextStream starts a text read pipeline over an already-open stream of
// UTF-8 text. The stream is never closed by the pipeline.
func ReadTextStream(r io.Reader) *CharRead { return &CharRead{direct: r} }

// ByteRead is a builder for reading raw bytes. Each modifier returns a new
// builder; the chain is assembled once by the terminal call and is intended
// for a single invocation.
type ByteRead struct {
	open   OpenReader
	direct io.Reader
	wraps  []readWrap
	policy ErrorPolicy
}

func (b *ByteRead) clone() *ByteRead {
	c := *b
	c.wraps = append([]readWrap(nil), b.wraps...)
	return &c
}

// Wrap decorates the stream with fn. fn must not close the reader it
// receives; the pipeline closes the raw stream itself.
func (b *ByteRead) Wrap(fn func(io.Reader) io.Reader) *ByteRead {
	c := b.clone()
	c.wraps = append(c.wraps, readWrap{name: "Wrap", fn: fn})
	return c
}

// Tee writes everything read by the pipeline to w as a side effect.
// A failed or short side write fails the read.
func (b *ByteRead) Tee(w io.Writer) *ByteRead {
	c := b.clone()
	c.wraps = append(c.wraps, readWrap{name: "Tee", fn: func(r io.Reader) io.Reader {
		return TeeReader(r, w)
	}})
	return c
}

// Decode turns the remaining pipeline into a text pipeline by decoding the
// bytes read so far from enc into UTF-8.
func (b *ByteRead) Decode(enc encoding.Encoding) *CharRead {
	c := b.clone()
	c.wraps = append(c.wraps, decodeWrap(enc))
	return &CharRead{open: c.open, direct: c.direct, wraps: c.wraps, policy: c.policy}
}

// DecodeUTF8 is Decode with the package's UTF-8 encoding. Invalid input
// bytes are replaced with U+FFFD rather than failing the read.
func (b *ByteRead) DecodeUTF8() *CharRead { return b.Decode(UTF8) }

// WithPolicy selects the error policy for the whole chain. The last policy
// selected wins.
func (b *ByteRead) WithPolicy(p ErrorPolicy) *ByteRead {
	c := b.clone()
	c.policy = p
	return c
}

// Silent suppresses failures: terminals report the zero value and hand the
// original error to sink. A nil sink discards it.
func (b *ByteRead) Silent(sink func(error)) *ByteRead { return b.WithPolicy(Silent(sink)) }

// SilentLogger is Silent with a zap logger sink.
func (b *ByteRead) SilentLogger(log *zap.Logger) *ByteRead { return b.WithPolicy(SilentLogger(log)) }

// Mapped converts failures through fn before they reach the caller.
func (b *ByteRead) Mapped(fn func(error) error) *ByteRead { return b.WithPolicy(Mapped(fn)) }

// All reads the entire stream.
func (b *ByteRead) All() ([]byte, error) {
	return runRead(buildRead[[]byte](readAll{}, b.wraps, b.policy), b.open, b.direct)
}

// First reads at most n bytes. A stream shorter than n yields the available
// bytes without error.
func (b *ByteRead) First(n int) ([]byte, error) {
	return runRead(buildRead[[]byte](readFirst{n: n}, b.wraps, b.policy), b.open, b.direct)
}

// Count drains the stream and reports the number of bytes it produced after
// all stacked decorations.
func (b *ByteRead) Count() (int64, error) {
	return runRead(buildRead[int64](drain{}, b.wraps, b.policy), b.open, b.direct)
}

// CharRead is ByteRead's text counterpart: it reads a stream of UTF-8 text.
type CharRead struct {
	open   OpenReader
	direct io.Reader
	wraps  []readWrap
	policy ErrorPolicy
}

func (b *CharRead) clone() *CharRead {
	c := *b
	c.wraps = append([]readWrap(nil), b.wraps...)
	return &c
}

// Wrap decorates the text stream with fn; fn must preserve UTF-8 and must
// not close the reader it receives.
func (b *CharRead) Wrap(fn func(io.Reader) io.Reader) *CharRead {
	c := b.clone()
	c.wraps = append(c.wraps, readWrap{name: "Wrap", fn: fn})
	return c
}

// Tee writes all text read by the pipeline to w as a side effect.
func (b *CharRead) Tee(w io.Writer) *CharRead {
	c := b.clone()
	c.wraps = append(c.wraps, readWrap{name: "Tee", fn: func(r io.Reader) io.Reader {
		return TeeReader(r, w)
	}})
	return c
}

// WithPolicy selects the error policy for the whole chain.
func (b *CharRead) WithPolicy(p ErrorPolicy) *CharRead {
	c := b.clone()
	c.policy = p
	return c
}

// Silent suppresses failures; see ByteRead.Silent.
func (b *CharRead) Silent(sink func(error)) *CharRead { return b.WithPolicy(Silent(sink)) }

// SilentLogger is Silent with a zap logger sink.
func (b *CharRead) SilentLogger(log *zap.Logger) *CharRead { return b.WithPolicy(SilentLogger(log)) }

// Mapped converts failures through fn before they reach the caller.
func (b *CharRead) Mapped(fn func(error) error) *CharRead { return b.WithPolicy(Mapped(fn)) }

// String reads the entire stream as one string.
func (b *CharRead) String() (string, error) {
	return runRead(buildRead[string](readString{}, b.wraps, b.policy), b.open, b.direct)
}

// First reads at most n runes. A stream shorter than n runes yields the
// available text without error.
func (b *CharRead) First(n int) (string, error) {
	return runRead(buildRead[string](readFirstRunes{n: n}, b.wraps, b.policy), b.open, b.direct)
}

// CountRunes drains the stream and reports the number of runes it produced.
func (b *CharRead) CountRunes() (int64, error) {
	return runRead(buildRead[int64](drainRunes{}, b.wraps, b.policy), b.open, b.direct)
}

// Lines switches to line-oriented terminals.
func (b *CharRead) Lines() *LineRead {
	return &LineRead{open: b.open, direct: b.direct, wraps: b.wraps, policy: b.policy}
}

// runOpen adapts a direct-mode operation to the supplier-mode contract:
// open the stream, run, close.
func runOpen[R any](open OpenReader, direct func(io.Reader) (R, error)) (R, error) {
	rc, err := open()
	if err != nil {
		var zero R
		return zero, err
	}
	res, err := direct(rc)
	if cerr := rc.Close(); err == nil {
		err = cerr
	}
	return res, err
}

type readAll struct{}

func (h readAll) Run(open OpenReader) ([]byte, error) { return runOpen(open, h.RunDirect) }

func (readAll) RunDirect(r io.Reader) ([]byte, error) { return io.ReadAll(r) }

func (readAll) String() string { return "ReadAll" }

type readString struct{}

func (h readString) Run(open OpenReader) (string, error) { return runOpen(open, h.RunDirect) }

func (readString) RunDirect(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	return string(b), err
}

func (readString) String() string { return "ReadString" }

type readFirst struct {
	n int
}

func (h readFirst) Run(open OpenReader) ([]byte, error) { return runOpen(open, h.RunDirect) }

func (h readFirst) RunDirect(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	_, err := CopyN(&buf, r, int64(h.n))
	if err == io.ErrUnexpectedEOF {
		// shorter source: deliver what is available
		err = nil
	}
	return buf.Bytes(), err
}

func (readFirst) String() string { return "First" }

type readFirstRunes struct {
	n int
}

func (h readFirstRunes) Run(open OpenReader) (string, error) { return runOpen(open, h.RunDirect) }

func (h readFirstRunes) RunDirect(r io.Reader) (string, error) {
	var sb strings.Builder
	br := bufio.NewReader(r)
	for i := 0; i < h.n; i++ {
		ch, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteRune(ch)
	}
	return sb.String(), nil
}

func (readFirstRunes) String() string { return "FirstRunes" }

type drain struct {
}

func (h drain) Run(open OpenReader) (int64, error) { return runOpen(open, h.RunDirect) }

func (drain) RunDirect(r io.Reader) (int64, error) { return Copy(io.Discard, r) }

func (drain) String() string { return "CountBytes" }

type drainRunes struct {
}

func (h drainRunes) Run(open OpenReader) (int64, error) { return runOpen(open, h.RunDirect) }

func (drainRunes) RunDirect(r io.Reader) (int64, error) {
	cw := &runeCountingWriter{w: io.Discard}
	_, err := Copy(cw, r)
	return cw.runes, err
}

func (drainRunes) String() string { return "CountRunes" }
