// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio

import (
	"bytes"
	"io"
	"os"
	"strings"
)

// ByteSource is a capability producing one fresh raw byte stream per Open
// call. Implementations backed by immutable data or by the filesystem are
// reopenable; implementations adapted from a live io.Reader are single-use
// and return ErrSingleUse on the second Open.
type ByteSource interface {
	Open() (io.ReadCloser, error)
}

// CharSource is a capability producing one fresh stream of UTF-8 text per
// OpenText call. The single-use rule of ByteSource applies equally.
//
// A raw ByteSource in a legacy charset becomes a CharSource through the
// Decode modifier on read builders, or through DecodeSource.
type CharSource interface {
	OpenText() (io.ReadCloser, error)
}

// Bytes returns a reopenable ByteSource over b. The slice is not copied;
// callers must not mutate it while pipelines read from it.
func Bytes(b []byte) ByteSource { return bytesSource(b) }

type bytesSource []byte

func (s bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s)), nil
}

// Str returns a reopenable source over s. It serves as a CharSource of the
// string's text and as a ByteSource of its UTF-8 bytes.
func Str(s string) interface {
	ByteSource
	CharSource
} {
	return strSource(s)
}

type strSource string

func (s strSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

func (s strSource) OpenText() (io.ReadCloser, error) { return s.Open() }

// Lines returns a reopenable CharSource over lines joined with "\n".
// Every line, including the last, is followed by the separator; an empty
// slice yields an empty stream.
func Lines(lines []string) CharSource {
	if len(lines) == 0 {
		return strSource("")
	}
	return strSource(strings.Join(lines, "\n") + "\n")
}

// FromFile returns a reopenable source over the file at path. Every Open
// opens the file fresh; as a CharSource the content is assumed UTF-8
// (combine FromFile with Decode for other charsets).
func FromFile(path string) interface {
	ByteSource
	CharSource
} {
	return fileSource(path)
}

type fileSource string

func (s fileSource) Open() (io.ReadCloser, error) { return os.Open(string(s)) }

func (s fileSource) OpenText() (io.ReadCloser, error) { return s.Open() }

// FromOpener adapts an open function into a ByteSource. Reusability is
// whatever fn provides; this is the factory form for repeated reads over
// custom streams.
func FromOpener(fn func() (io.ReadCloser, error)) ByteSource { return openerSource(fn) }

type openerSource func() (io.ReadCloser, error)

func (s openerSource) Open() (io.ReadCloser, error) { return s() }

// FromTextOpener adapts an open function into a CharSource. fn must produce
// UTF-8 text streams.
func FromTextOpener(fn func() (io.ReadCloser, error)) CharSource { return textOpenerSource(fn) }

type textOpenerSource func() (io.ReadCloser, error)

func (s textOpenerSource) OpenText() (io.ReadCloser, error) { return s() }

// FromReader adapts a live reader into a single-use source. The second Open
// (or OpenText) returns ErrSingleUse, since the stream cannot be rewound.
// Close on the returned stream closes r only if r is an io.Closer.
func FromReader(r io.Reader) interface {
	ByteSource
	CharSource
} {
	return &singleReader{r: r}
}

type singleReader struct {
	r    io.Reader
	used bool
}

func (s *singleReader) Open() (io.ReadCloser, error) {
	if s.used {
		return nil, ErrSingleUse
	}
	s.used = true
	if rc, ok := s.r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(s.r), nil
}

func (s *singleReader) OpenText() (io.ReadCloser, error) { return s.Open() }
