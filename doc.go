// ©The jdlib Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fluentio provides fluent, composable pipelines over Go's standard
// io streams: sources and targets as reopenable capabilities, a decorator
// chain for charset transcoding, counting, teeing and stream wrapping, and
// caller-selected error policies.
//
// A pipeline is built in three steps:
//
//  1. Obtain a capability: Bytes, Str, Lines, FromFile, FromReader for input;
//     ToFile, ToAtomicFile, ToBuffer, ToWriter, Discard for output.
//  2. Enter a builder: Read / ReadText to pull data into memory,
//     From / FromText to move data toward a target,
//     To / ToText to push data into a target.
//  3. Chain modifiers (Decode, Encode, CountBytes, Tee, Wrap, Silent, Mapped)
//     and finish with a terminal (All, First, String, Lines, To, Bytes, ...).
//
// Every modifier returns a new builder wrapping the previous handler in one
// more decorator; the chain is immutable and intended for a single terminal
// invocation. Streams are blocking and synchronous; an operation runs to
// completion or fails, there are no retries and no cancellation points beyond
// ordinary blocking I/O.
//
// Resource ordering: source-to-target transfers open the source before the
// target, so a target that cannot be created never observes a half-built
// pipeline and an unreadable source never truncates an existing output file.
package fluentio
