// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"
)

// LineRead reads a text stream line by line. Lines are split on "\n" with a
// trailing "\r" removed, per bufio.Scanner; the final line does not need a
// terminator.
type LineRead struct {
	open      OpenReader
	direct    io.Reader
	wraps     []readWrap
	policy    ErrorPolicy
	trim      bool
	skipBlank bool
}

func (l *LineRead) clone() *LineRead {
	c := *l
	c.wraps = append([]readWrap(nil), l.wraps...)
	return &c
}

// Trim strips leading and trailing whitespace from every line before it is
// delivered or tested for blankness.
func (l *LineRead) Trim() *LineRead {
	c := l.clone()
	c.trim = true
	return c
}

// SkipBlank drops empty lines. Combined with Trim, whitespace-only lines are
// dropped as well.
func (l *LineRead) SkipBlank() *LineRead {
	c := l.clone()
	c.skipBlank = true
	return c
}

// Slice reads all lines into a slice. On failure (including suppressed
// failure) no partial slice is delivered.
func (l *LineRead) Slice() ([]string, error) {
	var lines []string
	res := l.visit(func(s string) error {
		lines = append(lines, s)
		return nil
	})
	if res.err != nil || res.suppressed {
		return nil, res.err
	}
	return lines, nil
}

// First returns the first delivered line, or "" when the stream has none.
func (l *LineRead) First() (string, error) {
	var first string
	res := l.visit(func(s string) error {
		first = s
		return errStopIteration
	})
	return first, res.err
}

// Count reports the number of delivered lines.
func (l *LineRead) Count() (int64, error) {
	res := l.visit(nil)
	if res.suppressed {
		return 0, nil
	}
	return res.n, res.err
}

// ForEach calls fn for every delivered line. A non-nil error from fn stops
// the iteration and is returned unchanged.
func (l *LineRead) ForEach(fn func(line string) error) error {
	var userErr error
	res := l.visit(func(s string) error {
		if err := fn(s); err != nil {
			userErr = err
			return errStopIteration
		}
		return nil
	})
	if userErr != nil {
		return userErr
	}
	return res.err
}

// Seq returns a single-use iterator over the lines. Stream failures are
// yielded as the final pair after policy resolution; breaking out of the
// loop closes the stream.
func (l *LineRead) Seq() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		res := l.visit(func(s string) error {
			if !yield(s, nil) {
				return errStopIteration
			}
			return nil
		})
		if res.err != nil {
			yield("", res.err)
		}
	}
}

// errStopIteration aborts a line visit early; it never escapes the package.
var errStopIteration = errors.New("stop iteration")

type visitResult struct {
	n          int64
	suppressed bool
	err        error
}

// visit runs the line pipeline without an in-chain policy, so the policy and
// its sink observe the original stream error rather than an annotated form
// or the internal stop sentinel.
func (l *LineRead) visit(fn func(string) error) visitResult {
	h := buildRead[int64](linesVisit{trim: l.trim, skipBlank: l.skipBlank, fn: fn}, l.wraps, nil)
	var (
		n   int64
		err error
	)
	if l.direct != nil {
		n, err = h.RunDirect(l.direct)
	} else {
		n, err = h.Run(l.open)
	}
	if err == nil || errors.Is(err, errStopIteration) {
		return visitResult{n: n}
	}
	if l.policy != nil {
		if err = l.policy.Resolve(err); err == nil {
			return visitResult{n: n, suppressed: true}
		}
	}
	return visitResult{n: n, err: annotate(err, h.String())}
}

// linesVisit delivers lines to fn and reports how many were delivered.
// A nil fn just counts.
type linesVisit struct {
	trim      bool
	skipBlank bool
	fn        func(line string) error
}

func (h linesVisit) Run(open OpenReader) (int64, error) { return runOpen(open, h.RunDirect) }

func (h linesVisit) RunDirect(r io.Reader) (int64, error) {
	var delivered int64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if h.trim {
			line = strings.TrimSpace(line)
		}
		if h.skipBlank && line == "" {
			continue
		}
		delivered++
		if h.fn != nil {
			if err := h.fn(line); err != nil {
				return delivered, err
			}
		}
	}
	return delivered, sc.Err()
}

func (linesVisit) String() string { return "Lines" }
