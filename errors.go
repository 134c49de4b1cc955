// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fluentio

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// fluentio introduces two sentinel errors for misuse of the pipeline API.
//
// Mental model:
//   - ErrSingleUse: a stream-backed capability was opened twice; obtain a
//     reopenable capability (Bytes, Str, FromFile, FromOpener) instead.
//   - ErrNilMapped: an error mapper converted a real failure into nil; that is
//     a bug in the mapper, not a successful operation.

// ErrSingleUse is returned by Open/Create on capabilities adapted from a live
// io.Reader or io.Writer when they are opened a second time. Such capabilities
// wrap a stream that cannot be rewound; every other constructor produces a
// fresh stream per call and may be reused freely.
var ErrSingleUse = stderrors.New("fluentio: single-use capability opened twice")

// ErrNilMapped is returned when a Mapped error policy returns nil for a
// non-nil error. Suppressing an error is the job of Silent or Swallow; a
// mapper returning nil is treated as a programming error.
var ErrNilMapped = stderrors.New("fluentio: error mapper returned nil")

// IsSingleUse reports whether err carries the single-use violation, including
// wrapped forms (via errors.Is).
func IsSingleUse(err error) bool { return stderrors.Is(err, ErrSingleUse) }

// annotate tags err with the pipeline description so failures read like
// "Decode->ReadAll: ...". Errors produced by a policy are passed through
// policy resolution first, so the annotation never hides the mapped value.
func annotate(err error, pipeline string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, pipeline)
}
