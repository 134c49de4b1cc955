// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio

import (
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// UTF8 is the package's canonical UTF-8 encoding, re-exported so callers of
// Encode/Decode do not need to import x/text for the common case.
var UTF8 encoding.Encoding = unicode.UTF8

// DecodeSource returns a CharSource view over src: every opened stream is
// decoded from enc into UTF-8 text on the fly. The view inherits the
// reusability of src.
func DecodeSource(src ByteSource, enc encoding.Encoding) CharSource {
	return decodedSource{src: src, enc: enc}
}

type decodedSource struct {
	src ByteSource
	enc encoding.Encoding
}

func (s decodedSource) OpenText() (io.ReadCloser, error) {
	rc, err := s.src.Open()
	if err != nil {
		return nil, err
	}
	return stackedReader{r: transform.NewReader(rc, s.enc.NewDecoder()), under: rc}, nil
}

// EncodeTarget returns a CharTarget view over tgt: text written to it is
// encoded from UTF-8 into enc before reaching tgt. Closing the created
// stream flushes transcoder state before the underlying target is closed.
func EncodeTarget(tgt ByteTarget, enc encoding.Encoding) CharTarget {
	return encodedTarget{tgt: tgt, enc: enc}
}

type encodedTarget struct {
	tgt ByteTarget
	enc encoding.Encoding
}

func (t encodedTarget) CreateText() (io.WriteCloser, error) {
	wc, err := t.tgt.Create()
	if err != nil {
		return nil, err
	}
	return stackedWriter{w: transform.NewWriter(wc, t.enc.NewEncoder()), under: wc}, nil
}

// decodeWrap decodes a raw byte stream from enc into UTF-8 text.
func decodeWrap(enc encoding.Encoding) readWrap {
	return readWrap{name: "Decode", fn: func(r io.Reader) io.Reader {
		return transform.NewReader(r, enc.NewDecoder())
	}}
}

// encodeReadWrap encodes UTF-8 text flowing through a read-side pipeline
// into enc bytes.
func encodeReadWrap(enc encoding.Encoding) readWrap {
	return readWrap{name: "Encode", fn: func(r io.Reader) io.Reader {
		return transform.NewReader(r, enc.NewEncoder())
	}}
}

// encodeWriteWrap encodes UTF-8 text written through a write-side pipeline
// into enc bytes. transform.Writer settles its transcoder state on Close
// without closing the writer beneath it, which is exactly the wrapper-layer
// contract of writeWrap.
func encodeWriteWrap(enc encoding.Encoding) writeWrap {
	return writeWrap{name: "Encode", fn: func(w io.Writer) io.Writer {
		return transform.NewWriter(w, enc.NewEncoder())
	}}
}
