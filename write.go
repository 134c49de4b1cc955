// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio

import (
	"io"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// From starts a copy pipeline moving raw bytes from src toward a target.
func From(src ByteSource) *ByteCopy { return &ByteCopy{open: src.Open} }

// FromText starts a copy pipeline moving UTF-8 text from src.
func FromText(src CharSource) *CharCopy { return &CharCopy{open: src.OpenText} }

// ByteCopy is a builder for moving raw bytes from a source to a target or
// into memory. Modifiers return new builders; the chain is composed once by
// the terminal call and intended for a single invocation.
type ByteCopy struct {
	open    OpenReader
	wraps   []readWrap
	policy  ErrorPolicy
	counter *int64
}

func (b *ByteCopy) clone() *ByteCopy {
	c := *b
	c.wraps = append([]readWrap(nil), b.wraps...)
	return &c
}

// Wrap decorates the data stream with fn at the current chain position.
func (b *ByteCopy) Wrap(fn func(io.Reader) io.Reader) *ByteCopy {
	c := b.clone()
	c.wraps = append(c.wraps, readWrap{name: "Wrap", fn: fn})
	return c
}

// Tee writes everything passing the current chain position to w.
func (b *ByteCopy) Tee(w io.Writer) *ByteCopy {
	c := b.clone()
	c.wraps = append(c.wraps, readWrap{name: "Tee", fn: func(r io.Reader) io.Reader {
		return TeeReader(r, w)
	}})
	return c
}

// CountBytes makes the terminal report the number of bytes passing the
// current chain position instead of the transfer result. A pipeline whose
// source cannot be opened never engages the counting stream and reports 0.
func (b *ByteCopy) CountBytes() *ByteCopy {
	c := b.clone()
	ctr := new(int64)
	c.wraps = append(c.wraps, readWrap{name: "CountBytes", fn: func(r io.Reader) io.Reader {
		return &countingReader{r: r, n: ctr}
	}})
	c.counter = ctr
	return c
}

// Decode turns the remaining pipeline into a text pipeline, decoding the
// bytes at the current chain position from enc into UTF-8.
func (b *ByteCopy) Decode(enc encoding.Encoding) *CharCopy {
	c := b.clone()
	c.wraps = append(c.wraps, decodeWrap(enc))
	return &CharCopy{open: c.open, wraps: c.wraps, policy: c.policy, counter: c.counter}
}

// WithPolicy selects the error policy for the whole chain.
func (b *ByteCopy) WithPolicy(p ErrorPolicy) *ByteCopy {
	c := b.clone()
	c.policy = p
	return c
}

// Silent suppresses failures: transfer terminals report the units moved so
// far, memory terminals report the zero value; sink receives the original
// error.
func (b *ByteCopy) Silent(sink func(error)) *ByteCopy { return b.WithPolicy(Silent(sink)) }

// SilentLogger is Silent with a zap logger sink.
func (b *ByteCopy) SilentLogger(log *zap.Logger) *ByteCopy { return b.WithPolicy(SilentLogger(log)) }

// Mapped converts failures through fn before they reach the caller.
func (b *ByteCopy) Mapped(fn func(error) error) *ByteCopy { return b.WithPolicy(Mapped(fn)) }

// To moves all data into t and reports the bytes written to it, or the value
// of the counting layer when CountBytes was selected.
func (b *ByteCopy) To(t ByteTarget) (int64, error) {
	return b.run(t.Create, nil)
}

// ToWriter moves all data into an already-open stream. The stream is flushed
// if possible but never closed.
func (b *ByteCopy) ToWriter(w io.Writer) (int64, error) {
	return b.run(nil, w)
}

func (b *ByteCopy) run(create OpenWriter, direct io.Writer) (int64, error) {
	h := buildWrite(transfer{open: b.open, wraps: b.wraps}, nil, countTransferred, b.policy)
	n, err := runWrite(h, create, direct)
	if b.counter != nil {
		n = *b.counter
	}
	return n, err
}

// Bytes pulls the pipeline's output into memory.
func (b *ByteCopy) Bytes() ([]byte, error) {
	return runRead(buildRead[[]byte](readAll{}, b.wraps, b.policy), b.open, nil)
}

// CharCopy is ByteCopy's text counterpart.
type CharCopy struct {
	open    OpenReader
	wraps   []readWrap
	policy  ErrorPolicy
	counter *int64
}

func (b *CharCopy) clone() *CharCopy {
	c := *b
	c.wraps = append([]readWrap(nil), b.wraps...)
	return &c
}

// Wrap decorates the text stream with fn; fn must preserve UTF-8.
func (b *CharCopy) Wrap(fn func(io.Reader) io.Reader) *CharCopy {
	c := b.clone()
	c.wraps = append(c.wraps, readWrap{name: "Wrap", fn: fn})
	return c
}

// Tee writes all text passing the current chain position to w.
func (b *CharCopy) Tee(w io.Writer) *CharCopy {
	c := b.clone()
	c.wraps = append(c.wraps, readWrap{name: "Tee", fn: func(r io.Reader) io.Reader {
		return TeeReader(r, w)
	}})
	return c
}

// CountRunes makes the terminal report the number of runes passing the
// current chain position. Select it before Encode to count text runes, since
// the stream past Encode is no longer UTF-8.
func (b *CharCopy) CountRunes() *CharCopy {
	c := b.clone()
	ctr := new(int64)
	c.wraps = append(c.wraps, readWrap{name: "CountRunes", fn: func(r io.Reader) io.Reader {
		return &runeCountingReader{r: r, runes: ctr}
	}})
	c.counter = ctr
	return c
}

// Encode turns the remaining pipeline back into a byte pipeline, encoding
// the UTF-8 text at the current chain position into enc.
func (b *CharCopy) Encode(enc encoding.Encoding) *ByteCopy {
	c := b.clone()
	c.wraps = append(c.wraps, encodeReadWrap(enc))
	return &ByteCopy{open: c.open, wraps: c.wraps, policy: c.policy, counter: c.counter}
}

// EncodeUTF8 is Encode with the package's UTF-8 encoding.
func (b *CharCopy) EncodeUTF8() *ByteCopy { return b.Encode(UTF8) }

// WithPolicy selects the error policy for the whole chain.
func (b *CharCopy) WithPolicy(p ErrorPolicy) *CharCopy {
	c := b.clone()
	c.policy = p
	return c
}

// Silent suppresses failures; see ByteCopy.Silent.
func (b *CharCopy) Silent(sink func(error)) *CharCopy { return b.WithPolicy(Silent(sink)) }

// SilentLogger is Silent with a zap logger sink.
func (b *CharCopy) SilentLogger(log *zap.Logger) *CharCopy { return b.WithPolicy(SilentLogger(log)) }

// Mapped converts failures through fn before they reach the caller.
func (b *CharCopy) Mapped(fn func(error) error) *CharCopy { return b.WithPolicy(Mapped(fn)) }

// To moves all text into t and reports the bytes written to it (UTF-8), or
// the value of the counting layer when CountRunes was selected.
func (b *CharCopy) To(t CharTarget) (int64, error) {
	h := buildWrite(transfer{open: b.open, wraps: b.wraps}, nil, countTransferred, b.policy)
	n, err := runWrite(h, t.CreateText, nil)
	if b.counter != nil {
		n = *b.counter
	}
	return n, err
}

// String pulls the pipeline's text into memory.
func (b *CharCopy) String() (string, error) {
	return runRead(buildRead[string](readString{}, b.wraps, b.policy), b.open, nil)
}

// Bytes pulls the pipeline's text into memory as UTF-8 bytes.
func (b *CharCopy) Bytes() ([]byte, error) {
	return runRead(buildRead[[]byte](readAll{}, b.wraps, b.policy), b.open, nil)
}

// To starts a write pipeline pushing caller-supplied data into t.
func To(t ByteTarget) *ByteWriteTo { return &ByteWriteTo{create: t.Create} }

// WriteStream starts a write pipeline over an already-open stream. The
// stream is flushed if possible but never closed by the pipeline.
func WriteStream(w io.Writer) *ByteWriteTo { return &ByteWriteTo{direct: w} }

// ToText starts a text write pipeline pushing UTF-8 text into t.
func ToText(t CharTarget) *CharWriteTo { return &CharWriteTo{create: t.CreateText} }

// WriteTextStream starts a text write pipeline over an already-open stream.
func WriteTextStream(w io.Writer) *CharWriteTo { return &CharWriteTo{direct: w} }

// ByteWriteTo is a builder for pushing data into a byte target.
type ByteWriteTo struct {
	create OpenWriter
	direct io.Writer
	wraps  []writeWrap
	count  counterKind
	policy ErrorPolicy
}

func (b *ByteWriteTo) clone() *ByteWriteTo {
	c := *b
	c.wraps = append([]writeWrap(nil), b.wraps...)
	return &c
}

// WrapWriter decorates the target with fn. Data written by the terminal
// passes the first-declared wrap first. fn must not close the writer it
// receives; a buffering wrapper must expose Flush or a Close that only
// drains the wrapper layer.
func (b *ByteWriteTo) WrapWriter(fn func(io.Writer) io.Writer) *ByteWriteTo {
	c := b.clone()
	c.wraps = append(c.wraps, writeWrap{name: "Wrap", fn: fn})
	return c
}

// Tee duplicates everything written at the current chain position to w.
func (b *ByteWriteTo) Tee(w io.Writer) *ByteWriteTo {
	c := b.clone()
	c.wraps = append(c.wraps, writeWrap{name: "Tee", fn: func(primary io.Writer) io.Writer {
		return TeeWriter(primary, w)
	}})
	return c
}

// CountBytes makes terminals report the bytes that reached the raw target.
// A pipeline that never opens the target reports 0.
func (b *ByteWriteTo) CountBytes() *ByteWriteTo {
	c := b.clone()
	c.count = countOutputBytes
	return c
}

// WithPolicy selects the error policy for the whole chain.
func (b *ByteWriteTo) WithPolicy(p ErrorPolicy) *ByteWriteTo {
	c := b.clone()
	c.policy = p
	return c
}

// Silent suppresses failures: terminals report the units written so far and
// hand the original error to sink.
func (b *ByteWriteTo) Silent(sink func(error)) *ByteWriteTo { return b.WithPolicy(Silent(sink)) }

// SilentLogger is Silent with a zap logger sink.
func (b *ByteWriteTo) SilentLogger(log *zap.Logger) *ByteWriteTo {
	return b.WithPolicy(SilentLogger(log))
}

// Mapped converts failures through fn before they reach the caller.
func (b *ByteWriteTo) Mapped(fn func(error) error) *ByteWriteTo { return b.WithPolicy(Mapped(fn)) }

func (b *ByteWriteTo) run(base WriteHandler) (int64, error) {
	h := buildWrite(base, b.wraps, b.count, b.policy)
	return runWrite(h, b.create, b.direct)
}

// Bytes writes data and reports the units written.
func (b *ByteWriteTo) Bytes(data []byte) (int64, error) { return b.run(writeBytes{data: data}) }

// From moves all data of src into the target. The source is opened before
// the target, so an unreadable source never creates or truncates an output.
func (b *ByteWriteTo) From(src ByteSource) (int64, error) {
	return b.run(transfer{open: src.Open})
}

// FromReader moves all data of an already-open stream into the target.
// The stream is closed only if it is an io.Closer-backed source; a plain
// reader is left alone.
func (b *ByteWriteTo) FromReader(r io.Reader) (int64, error) {
	return b.run(transfer{open: FromReader(r).Open})
}

// CharWriteTo is ByteWriteTo's text counterpart.
type CharWriteTo struct {
	create OpenWriter
	direct io.Writer
	wraps  []writeWrap
	count  counterKind
	policy ErrorPolicy
}

func (b *CharWriteTo) clone() *CharWriteTo {
	c := *b
	c.wraps = append([]writeWrap(nil), b.wraps...)
	return &c
}

// WrapWriter decorates the target with fn; see ByteWriteTo.WrapWriter.
func (b *CharWriteTo) WrapWriter(fn func(io.Writer) io.Writer) *CharWriteTo {
	c := b.clone()
	c.wraps = append(c.wraps, writeWrap{name: "Wrap", fn: fn})
	return c
}

// Tee duplicates all text written at the current chain position to w.
func (b *CharWriteTo) Tee(w io.Writer) *CharWriteTo {
	c := b.clone()
	c.wraps = append(c.wraps, writeWrap{name: "Tee", fn: func(primary io.Writer) io.Writer {
		return TeeWriter(primary, w)
	}})
	return c
}

// CountRunes makes terminals report the runes that reached the raw target.
func (b *CharWriteTo) CountRunes() *CharWriteTo {
	c := b.clone()
	c.count = countOutputRunes
	return c
}

// Encode inserts a transcoding layer: text written by terminals is encoded
// from UTF-8 into enc before reaching the target.
func (b *CharWriteTo) Encode(enc encoding.Encoding) *CharWriteTo {
	c := b.clone()
	c.wraps = append(c.wraps, encodeWriteWrap(enc))
	return c
}

// WithPolicy selects the error policy for the whole chain.
func (b *CharWriteTo) WithPolicy(p ErrorPolicy) *CharWriteTo {
	c := b.clone()
	c.policy = p
	return c
}

// Silent suppresses failures; see ByteWriteTo.Silent.
func (b *CharWriteTo) Silent(sink func(error)) *CharWriteTo { return b.WithPolicy(Silent(sink)) }

// SilentLogger is Silent with a zap logger sink.
func (b *CharWriteTo) SilentLogger(log *zap.Logger) *CharWriteTo {
	return b.WithPolicy(SilentLogger(log))
}

// Mapped converts failures through fn before they reach the caller.
func (b *CharWriteTo) Mapped(fn func(error) error) *CharWriteTo { return b.WithPolicy(Mapped(fn)) }

func (b *CharWriteTo) run(base WriteHandler) (int64, error) {
	h := buildWrite(base, b.wraps, b.count, b.policy)
	return runWrite(h, b.create, b.direct)
}

// Str writes s and reports the units written.
func (b *CharWriteTo) Str(s string) (int64, error) { return b.run(writeString{s: s}) }

// Lines writes each line followed by "\n".
func (b *CharWriteTo) Lines(lines []string) (int64, error) {
	return b.run(writeLines{lines: lines})
}

// From moves all text of src into the target; the source is opened first.
func (b *CharWriteTo) From(src CharSource) (int64, error) {
	return b.run(transfer{open: src.OpenText})
}

// transfer moves a whole source stream into the pipeline's target.
type transfer struct {
	open  OpenReader
	wraps []readWrap
}

func (h transfer) source() (io.ReadCloser, error) {
	rc, err := h.open()
	if err != nil {
		return nil, err
	}
	if len(h.wraps) == 0 {
		return rc, nil
	}
	r := io.Reader(rc)
	for _, w := range h.wraps {
		r = w.fn(r)
	}
	return stackedReader{r: r, under: rc}, nil
}

// Run opens the source before the target: an unreadable source must never
// create or truncate an output resource, and a target that cannot be created
// leaves the source closed by the enclosing scope.
func (h transfer) Run(open OpenWriter) (int64, error) {
	src, err := h.source()
	if err != nil {
		return 0, err
	}
	defer src.Close()
	dst, err := open()
	if err != nil {
		return 0, err
	}
	n, err := Copy(dst, src)
	if cerr := closeOrAbort(dst, err); err == nil {
		err = cerr
	}
	return n, err
}

func (h transfer) RunDirect(w io.Writer) (int64, error) {
	src, err := h.source()
	if err != nil {
		return 0, err
	}
	defer src.Close()
	n, err := Copy(w, src)
	if ferr := flushIfPossible(w); err == nil {
		err = ferr
	}
	return n, err
}

func (h transfer) String() string {
	s := "Transfer"
	for i := len(h.wraps) - 1; i >= 0; i-- {
		s = h.wraps[i].name + "->" + s
	}
	return s
}

// runCreate adapts a direct-mode write operation to the supplier-mode
// contract: create the target, run, close. Only valid for bases without a
// source of their own; transfer orders its opens itself.
func runCreate(open OpenWriter, direct func(io.Writer) (int64, error)) (int64, error) {
	wc, err := open()
	if err != nil {
		return 0, err
	}
	n, err := direct(wc)
	if cerr := closeOrAbort(wc, err); err == nil {
		err = cerr
	}
	return n, err
}

type writeBytes struct {
	data []byte
}

func (h writeBytes) Run(open OpenWriter) (int64, error) { return runCreate(open, h.RunDirect) }

func (h writeBytes) RunDirect(w io.Writer) (int64, error) {
	n, err := w.Write(h.data)
	if ferr := flushIfPossible(w); err == nil {
		err = ferr
	}
	return int64(n), err
}

func (writeBytes) String() string { return "WriteBytes" }

type writeString struct {
	s string
}

func (h writeString) Run(open OpenWriter) (int64, error) { return runCreate(open, h.RunDirect) }

func (h writeString) RunDirect(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, h.s)
	if ferr := flushIfPossible(w); err == nil {
		err = ferr
	}
	return int64(n), err
}

func (writeString) String() string { return "WriteString" }

type writeLines struct {
	lines []string
}

func (h writeLines) Run(open OpenWriter) (int64, error) { return runCreate(open, h.RunDirect) }

func (h writeLines) RunDirect(w io.Writer) (int64, error) {
	var written int64
	for _, line := range h.lines {
		n, err := io.WriteString(w, line)
		written += int64(n)
		if err != nil {
			return written, err
		}
		n, err = io.WriteString(w, "\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, flushIfPossible(w)
}

func (writeLines) String() string { return "WriteLines" }
