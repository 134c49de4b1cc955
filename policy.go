// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrorPolicy customizes how a pipeline reacts to a failure.
//
// This is a decision function that maps the error caught around the whole
// handler chain to the error the caller finally observes. Returning nil
// suppresses the failure: the terminal then reports success with the zero
// value of its result type.
//
// Contract expectations:
//   - Resolve is only called with a non-nil error.
//   - Resolve receives the original error instance, before the pipeline
//     description is attached.
//   - A policy sits at one point of the chain; the last policy selected on a
//     builder is the effective one.
type ErrorPolicy interface {
	Resolve(err error) error
}

// PolicyFunc is a convenience implementation for callers that want to inject
// behavior without defining a struct type. A nil function propagates the
// error unchanged.
type PolicyFunc func(err error) error

func (p PolicyFunc) Resolve(err error) error {
	if p == nil {
		return err
	}
	return p(err)
}

// Propagate is the simplest policy: every error is returned unchanged.
// It is the behavior of a builder with no policy selected, made explicit.
type Propagate struct{}

func (Propagate) Resolve(err error) error { return err }

// Mapped converts failures through fn before they reach the caller.
// fn receives the original error and returns the error to report instead.
//
// A mapper that returns nil for a non-nil error is a programming error: the
// policy then reports ErrNilMapped carrying the original message, rather than
// silently converting the failure into success.
func Mapped(fn func(err error) error) ErrorPolicy {
	return mappedPolicy{fn: fn}
}

type mappedPolicy struct {
	fn func(err error) error
}

func (p mappedPolicy) Resolve(err error) error {
	mapped := p.fn(err)
	if mapped == nil {
		return errors.WithMessage(ErrNilMapped, err.Error())
	}
	return mapped
}

// Silent suppresses every failure: the terminal reports success with a zero
// result, and the original error instance is handed to sink. A nil sink
// discards the error.
func Silent(sink func(err error)) ErrorPolicy {
	return silentPolicy{sink: sink}
}

// SilentLogger is Silent with a zap logger as the sink. Errors are logged at
// Warn level and never reach the caller. A nil logger discards errors, like
// Silent with a nil sink.
func SilentLogger(log *zap.Logger) ErrorPolicy {
	if log == nil {
		return silentPolicy{}
	}
	return silentPolicy{sink: func(err error) {
		log.Warn("pipeline failed", zap.Error(err))
	}}
}

type silentPolicy struct {
	sink func(err error)
}

func (p silentPolicy) Resolve(err error) error {
	if p.sink != nil {
		p.sink(err)
	}
	return nil
}

// Swallow discards every failure without recording it anywhere.
// Intended for diagnostics and tests; production code should prefer Silent
// with a sink.
type Swallow struct{}

func (Swallow) Resolve(error) error { return nil }
