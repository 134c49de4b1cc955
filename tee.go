// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio

import "io"

// TeeReader returns a Reader that writes to w what it reads from r.
// It mirrors io.TeeReader: data delivered by r.Read is written to w before
// the read returns. If writing to w fails, that error is returned; short
// writes to w are reported as io.ErrShortWrite.
//
// The Tee modifier on read builders is implemented in terms of TeeReader.
func TeeReader(r io.Reader, w io.Writer) io.Reader {
	return teeReader{r: r, w: w}
}

type teeReader struct {
	r io.Reader
	w io.Writer
}

func (t teeReader) Read(p []byte) (n int, err error) {
	n, err = t.r.Read(p)
	if n > 0 {
		if nw, ew := t.w.Write(p[:n]); ew != nil {
			return nw, ew
		} else if nw != n {
			return nw, io.ErrShortWrite
		}
	}
	return n, err
}

// TeeWriter returns a Writer that duplicates all writes to primary and tee.
// If writing to primary returns an error or short count, it is returned
// immediately and tee never sees the data. If writing to tee fails or is
// short, the error (or io.ErrShortWrite) is returned.
//
// The Tee modifier on write builders is implemented in terms of TeeWriter.
func TeeWriter(primary io.Writer, tee io.Writer) io.Writer {
	return teeWriter{w: primary, tee: tee}
}

type teeWriter struct {
	w   io.Writer
	tee io.Writer
}

func (t teeWriter) Write(p []byte) (n int, err error) {
	n, err = t.w.Write(p)
	if err != nil {
		return n, err
	}
	if n != len(p) {
		return n, io.ErrShortWrite
	}
	n2, err2 := t.tee.Write(p)
	if err2 != nil {
		return n2, err2
	}
	if n2 != len(p) {
		return n2, io.ErrShortWrite
	}
	return len(p), nil
}
