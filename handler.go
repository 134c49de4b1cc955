// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio

import (
	"io"
)

// OpenReader produces a fresh byte stream. The caller that invokes it owns
// the stream and must close it.
type OpenReader func() (io.ReadCloser, error)

// OpenWriter produces a fresh output stream. The caller that invokes it owns
// the stream and must close it.
type OpenWriter func() (io.WriteCloser, error)

// ReadHandler is one link of a read pipeline producing a result of type R.
//
// Run opens the stream from open, performs the operation and closes the
// stream before returning. RunDirect performs the operation against an
// already-open stream and never closes it.
//
// Handlers are immutable; decorators aggregate an inner handler and add one
// concern (transcoding, counting, teeing, error policy) without touching the
// others. String renders the chain outer-to-inner, e.g. "Decode->ReadAll".
type ReadHandler[R any] interface {
	Run(open OpenReader) (R, error)
	RunDirect(r io.Reader) (R, error)
	String() string
}

// WriteHandler is one link of a write pipeline. Results are the number of
// units written at the handler's layer (bytes for byte pipelines, bytes of
// UTF-8 for text pipelines unless a rune counter is stacked on top).
//
// Run opens the target from open, performs the operation and closes the
// target. RunDirect writes to an already-open stream; it flushes the stream
// if it can but never closes it, since the stream remains owned by the
// caller.
type WriteHandler interface {
	Run(open OpenWriter) (int64, error)
	RunDirect(w io.Writer) (int64, error)
	String() string
}

// readWrap is one stream-level decoration of a read pipeline.
// fn must not close the reader it receives.
type readWrap struct {
	name string
	fn   func(io.Reader) io.Reader
}

// writeWrap is one stream-level decoration of a write pipeline.
// fn must not close the writer it receives; if the returned writer buffers,
// it must expose Flush() error or a Close that only drains the wrapper layer.
type writeWrap struct {
	name string
	fn   func(io.Writer) io.Writer
}

// buildRead stacks wraps around base so that the first-declared wrap touches
// the raw stream first, then applies the error policy outermost.
func buildRead[R any](base ReadHandler[R], wraps []readWrap, policy ErrorPolicy) ReadHandler[R] {
	h := base
	for i := len(wraps) - 1; i >= 0; i-- {
		h = wrapRead[R]{inner: h, wrap: wraps[i]}
	}
	if policy != nil {
		h = policyRead[R]{inner: h, policy: policy}
	}
	return h
}

// buildWrite stacks wraps around base so that data written by the base passes
// the first-declared wrap first, then applies counting and the error policy.
func buildWrite(base WriteHandler, wraps []writeWrap, count counterKind, policy ErrorPolicy) WriteHandler {
	h := base
	for i := 0; i < len(wraps); i++ {
		h = wrapWrite{inner: h, wrap: wraps[i]}
	}
	switch count {
	case countOutputBytes:
		h = countWrite{inner: h}
	case countOutputRunes:
		h = countRunesWrite{inner: h}
	}
	if policy != nil {
		h = policyWrite{inner: h, policy: policy}
	}
	return h
}

// counterKind selects what a write terminal reports.
type counterKind uint8

const (
	countTransferred counterKind = iota // whatever the base handler reports
	countOutputBytes                    // bytes entering the raw target
	countOutputRunes                    // runes entering the raw target
)

// runRead executes h against either a capability or a directly supplied
// stream and attaches the pipeline description to escaping errors.
func runRead[R any](h ReadHandler[R], open OpenReader, direct io.Reader) (R, error) {
	var (
		res R
		err error
	)
	if direct != nil {
		res, err = h.RunDirect(direct)
	} else {
		res, err = h.Run(open)
	}
	return res, annotate(err, h.String())
}

// runWrite is the write-side counterpart of runRead.
func runWrite(h WriteHandler, open OpenWriter, direct io.Writer) (int64, error) {
	var (
		n   int64
		err error
	)
	if direct != nil {
		n, err = h.RunDirect(direct)
	} else {
		n, err = h.Run(open)
	}
	return n, annotate(err, h.String())
}

// wrapRead decorates the opened stream with wrap.fn before the inner handler
// consumes it. The raw stream stays responsible for Close.
type wrapRead[R any] struct {
	inner ReadHandler[R]
	wrap  readWrap
}

func (h wrapRead[R]) Run(open OpenReader) (R, error) {
	return h.inner.Run(func() (io.ReadCloser, error) {
		rc, err := open()
		if err != nil {
			return nil, err
		}
		return stackedReader{r: h.wrap.fn(rc), under: rc}, nil
	})
}

func (h wrapRead[R]) RunDirect(r io.Reader) (R, error) {
	return h.inner.RunDirect(h.wrap.fn(r))
}

func (h wrapRead[R]) String() string { return h.wrap.name + "->" + h.inner.String() }

// wrapWrite decorates the opened target with wrap.fn. Closing the stacked
// writer first drains the wrapper layer, then closes the raw target.
type wrapWrite struct {
	inner WriteHandler
	wrap  writeWrap
}

func (h wrapWrite) Run(open OpenWriter) (int64, error) {
	return h.inner.Run(func() (io.WriteCloser, error) {
		wc, err := open()
		if err != nil {
			return nil, err
		}
		return stackedWriter{w: h.wrap.fn(wc), under: wc}, nil
	})
}

func (h wrapWrite) RunDirect(w io.Writer) (int64, error) {
	ww := h.wrap.fn(w)
	n, err := h.inner.RunDirect(ww)
	if ferr := finishWrapper(ww); err == nil {
		err = ferr
	}
	// the wrapper drained into w; the caller's stream still needs its flush
	if ferr := flushIfPossible(w); err == nil {
		err = ferr
	}
	return n, err
}

func (h wrapWrite) String() string { return h.wrap.name + "->" + h.inner.String() }

// policyRead resolves failures of the whole inner chain through policy.
// A suppressed failure yields the zero value of R: partially read data is
// not delivered as if it were complete.
type policyRead[R any] struct {
	inner  ReadHandler[R]
	policy ErrorPolicy
}

func (h policyRead[R]) Run(open OpenReader) (R, error) {
	res, err := h.inner.Run(open)
	return h.resolve(res, err)
}

func (h policyRead[R]) RunDirect(r io.Reader) (R, error) {
	res, err := h.inner.RunDirect(r)
	return h.resolve(res, err)
}

func (h policyRead[R]) resolve(res R, err error) (R, error) {
	if err == nil {
		return res, nil
	}
	if err = h.policy.Resolve(err); err != nil {
		return res, err
	}
	var zero R
	return zero, nil
}

func (h policyRead[R]) String() string { return "Errors->" + h.inner.String() }

// policyWrite resolves failures of the inner write chain through policy.
// A suppressed failure keeps the partial count: unlike read results, the
// units already written are a fact about the target.
type policyWrite struct {
	inner  WriteHandler
	policy ErrorPolicy
}

func (h policyWrite) Run(open OpenWriter) (int64, error) {
	n, err := h.inner.Run(open)
	if err != nil {
		err = h.policy.Resolve(err)
	}
	return n, err
}

func (h policyWrite) RunDirect(w io.Writer) (int64, error) {
	n, err := h.inner.RunDirect(w)
	if err != nil {
		err = h.policy.Resolve(err)
	}
	return n, err
}

func (h policyWrite) String() string { return "Errors->" + h.inner.String() }

// countWrite reports the number of bytes that reached the raw target instead
// of whatever the inner handler reports.
//
// If the inner handler never opens the target, no counting stream exists and
// the count is reported as zero alongside the inner error. See the package
// tests for this fallback.
type countWrite struct {
	inner WriteHandler
}

func (h countWrite) Run(open OpenWriter) (int64, error) {
	var cw *countingWriter
	_, err := h.inner.Run(func() (io.WriteCloser, error) {
		wc, err := open()
		if err != nil {
			return nil, err
		}
		cw = &countingWriter{w: wc}
		return stackedWriter{w: cw, under: wc}, nil
	})
	if cw == nil {
		return 0, err
	}
	return cw.n, err
}

func (h countWrite) RunDirect(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	_, err := h.inner.RunDirect(cw)
	// the counting layer hides w's Flush from the inner handler
	if ferr := flushIfPossible(w); err == nil {
		err = ferr
	}
	return cw.n, err
}

func (h countWrite) String() string { return "CountBytes->" + h.inner.String() }

// countRunesWrite is countWrite for text pipelines: it reports the number of
// runes that reached the raw target. Counting is by UTF-8 start bytes, so a
// rune split across Write calls is still counted once.
type countRunesWrite struct {
	inner WriteHandler
}

func (h countRunesWrite) Run(open OpenWriter) (int64, error) {
	var cw *runeCountingWriter
	_, err := h.inner.Run(func() (io.WriteCloser, error) {
		wc, err := open()
		if err != nil {
			return nil, err
		}
		cw = &runeCountingWriter{w: wc}
		return stackedWriter{w: cw, under: wc}, nil
	})
	if cw == nil {
		return 0, err
	}
	return cw.runes, err
}

func (h countRunesWrite) RunDirect(w io.Writer) (int64, error) {
	cw := &runeCountingWriter{w: w}
	_, err := h.inner.RunDirect(cw)
	if ferr := flushIfPossible(w); err == nil {
		err = ferr
	}
	return cw.runes, err
}

func (h countRunesWrite) String() string { return "CountRunes->" + h.inner.String() }

// stackedReader pairs a decorated view of a stream with the raw stream that
// owns the close.
type stackedReader struct {
	r     io.Reader
	under io.ReadCloser
}

func (s stackedReader) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s stackedReader) Close() error { return s.under.Close() }

// stackedWriter pairs a decorated view of a target with the raw target.
// Close drains the wrapper layer first so buffered data reaches the raw
// target before it is closed.
type stackedWriter struct {
	w     io.Writer
	under io.WriteCloser
}

func (s stackedWriter) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s stackedWriter) Close() error {
	err := finishWrapper(s.w)
	if cerr := s.under.Close(); err == nil {
		err = cerr
	}
	return err
}

func (s stackedWriter) Abort() error { return abortWriter(s.under) }

type flusher interface {
	Flush() error
}

// aborter is implemented by target streams that can discard staged output
// instead of committing it, such as the atomic file target.
type aborter interface {
	Abort() error
}

// closeOrAbort settles a pipeline-owned target stream. After a failed
// operation a target that stages its output is aborted so the failure never
// installs partial content; everything else is closed normally.
func closeOrAbort(wc io.WriteCloser, opErr error) error {
	if opErr != nil {
		return abortWriter(wc)
	}
	return wc.Close()
}

func abortWriter(wc io.WriteCloser) error {
	if a, ok := wc.(aborter); ok {
		return a.Abort()
	}
	return wc.Close()
}

// finishWrapper drains a wrapper-owned writer layer. Wrapper writers must not
// close the stream beneath them, so Close here only ever settles the wrapper
// itself (e.g. a transform.Writer flushing transcoder state).
func finishWrapper(w io.Writer) error {
	switch x := w.(type) {
	case flusher:
		return x.Flush()
	case io.Closer:
		return x.Close()
	}
	return nil
}

// flushIfPossible flushes a caller-owned stream without closing it.
func flushIfPossible(w io.Writer) error {
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
