// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// ByteTarget is a capability producing one fresh output stream per Create
// call. Filesystem and buffer targets are reopenable; targets adapted from a
// live io.Writer are single-use and return ErrSingleUse on the second Create.
type ByteTarget interface {
	Create() (io.WriteCloser, error)
}

// CharTarget is a capability accepting one fresh stream of UTF-8 text per
// CreateText call. The single-use rule of ByteTarget applies equally.
type CharTarget interface {
	CreateText() (io.WriteCloser, error)
}

// ToFile returns a reopenable target that creates (or truncates) the file at
// path on every Create.
func ToFile(path string) interface {
	ByteTarget
	CharTarget
} {
	return fileTarget(path)
}

type fileTarget string

func (t fileTarget) Create() (io.WriteCloser, error) { return os.Create(string(t)) }

func (t fileTarget) CreateText() (io.WriteCloser, error) { return t.Create() }

// ToAtomicFile returns a target that stages all output in memory and moves it
// into place at path in one atomic rename when the stream is closed. A failed
// or abandoned pipeline therefore never leaves a half-written file behind.
func ToAtomicFile(path string) interface {
	ByteTarget
	CharTarget
} {
	return atomicTarget(path)
}

type atomicTarget string

func (t atomicTarget) Create() (io.WriteCloser, error) {
	return &atomicWriter{path: string(t)}, nil
}

func (t atomicTarget) CreateText() (io.WriteCloser, error) { return t.Create() }

type atomicWriter struct {
	path   string
	buf    bytes.Buffer
	closed bool
}

func (w *atomicWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *atomicWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return atomic.WriteFile(w.path, &w.buf)
}

// Abort discards the staged content; the destination is left untouched.
func (w *atomicWriter) Abort() error {
	w.closed = true
	w.buf.Reset()
	return nil
}

// ToBuffer returns a reopenable target appending to buf.
func ToBuffer(buf *bytes.Buffer) interface {
	ByteTarget
	CharTarget
} {
	return (*bufferTarget)(buf)
}

type bufferTarget bytes.Buffer

func (t *bufferTarget) Create() (io.WriteCloser, error) {
	return nopWriteCloser{w: (*bytes.Buffer)(t)}, nil
}

func (t *bufferTarget) CreateText() (io.WriteCloser, error) { return t.Create() }

// ToStringBuilder returns a reopenable CharTarget appending to sb.
func ToStringBuilder(sb *strings.Builder) CharTarget { return builderTarget{sb: sb} }

type builderTarget struct {
	sb *strings.Builder
}

func (t builderTarget) CreateText() (io.WriteCloser, error) {
	return nopWriteCloser{w: t.sb}, nil
}

// ToWriter adapts a live writer into a single-use target. Closing the stream
// produced by Create flushes w if it can be flushed but never closes it; w
// remains owned by the caller.
func ToWriter(w io.Writer) interface {
	ByteTarget
	CharTarget
} {
	return &singleWriter{w: w}
}

type singleWriter struct {
	w    io.Writer
	used bool
}

func (t *singleWriter) Create() (io.WriteCloser, error) {
	if t.used {
		return nil, ErrSingleUse
	}
	t.used = true
	return nopWriteCloser{w: t.w}, nil
}

func (t *singleWriter) CreateText() (io.WriteCloser, error) { return t.Create() }

// ToCreator adapts a create function into a ByteTarget. Reusability is
// whatever fn provides; this is the factory form for repeated writes to
// custom streams.
func ToCreator(fn func() (io.WriteCloser, error)) ByteTarget { return creatorTarget(fn) }

type creatorTarget func() (io.WriteCloser, error)

func (t creatorTarget) Create() (io.WriteCloser, error) { return t() }

// ToTextCreator adapts a create function into a CharTarget.
func ToTextCreator(fn func() (io.WriteCloser, error)) CharTarget { return textCreatorTarget(fn) }

type textCreatorTarget func() (io.WriteCloser, error)

func (t textCreatorTarget) CreateText() (io.WriteCloser, error) { return t() }

// Discard accepts and drops all output. Writing to it is legal and useful
// when only the counts computed by a pipeline matter.
var Discard interface {
	ByteTarget
	CharTarget
} = discardTarget{}

type discardTarget struct{}

func (discardTarget) Create() (io.WriteCloser, error) {
	return nopWriteCloser{w: io.Discard}, nil
}

func (discardTarget) CreateText() (io.WriteCloser, error) {
	return nopWriteCloser{w: io.Discard}, nil
}

// nopWriteCloser hands out a caller-owned writer behind the WriteCloser
// contract: Close flushes when possible and leaves the writer open.
type nopWriteCloser struct {
	w io.Writer
}

func (c nopWriteCloser) Write(p []byte) (int, error) { return c.w.Write(p) }

func (c nopWriteCloser) Close() error { return flushIfPossible(c.w) }
