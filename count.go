// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio

import "io"

// countingReader wraps a reader and accumulates the bytes read through it
// into an external counter, so the count survives the stream's lifetime.
type countingReader struct {
	r io.Reader
	n *int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		*c.n += int64(n)
	}
	return n, err
}

// runeCountingReader is countingReader for text streams: it accumulates the
// number of UTF-8 runes read through it.
//
// A rune is counted at its start byte, so runes split across Read calls are
// counted exactly once and no carry buffer is needed. Bytes that are neither
// valid starts nor continuations each count as one rune, matching how the
// stdlib decodes broken input one byte at a time.
type runeCountingReader struct {
	r     io.Reader
	runes *int64
}

func (c *runeCountingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	for _, b := range p[:n] {
		if b&0xC0 != 0x80 { // not a continuation byte
			*c.runes++
		}
	}
	return n, err
}

// countingWriter wraps a writer and counts bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.n += int64(n)
	}
	return n, err
}

// runeCountingWriter counts UTF-8 runes in the bytes written through it,
// using the same start-byte rule as runeCountingReader.
type runeCountingWriter struct {
	w     io.Writer
	runes int64
}

func (c *runeCountingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	for _, b := range p[:n] {
		if b&0xC0 != 0x80 { // not a continuation byte
			c.runes++
		}
	}
	return n, err
}
