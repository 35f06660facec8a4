// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringerr defines the sentinel error taxonomy shared by the
// ringpool manager and stream. Every exported error is meant to be
// wrapped with fmt.Errorf("...: %w") at the call site so callers can
// both read a human message and errors.Is against the sentinel.
package ringerr

import "errors"

var (
	// ErrNullArgument is returned when a required argument is nil.
	ErrNullArgument = errors.New("ringpool: argument must not be nil")

	// ErrArgumentRange is returned when an argument falls outside its
	// permitted range (negative offsets/counts, oversized lengths,
	// invalid seek origins, non-positive sizing parameters).
	ErrArgumentRange = errors.New("ringpool: argument out of range")

	// ErrArgumentInvalid is returned when an argument is structurally
	// wrong for the operation (offset+count overflowing a buffer, a
	// zero-length large buffer return, a batch containing a
	// wrong-sized block, an illegal sizing rule).
	ErrArgumentInvalid = errors.New("ringpool: argument invalid")

	// ErrIO is returned for stream positioning/write failures that the
	// host stream contract models as I/O errors (seeking before the
	// origin, a write endpoint exceeding the addressable range).
	ErrIO = errors.New("ringpool: i/o error")

	// ErrInvalidOperation is returned when an operation is individually
	// well-formed but violates a configured policy (growing capacity
	// past MaximumStreamCapacity).
	ErrInvalidOperation = errors.New("ringpool: invalid operation")

	// ErrDisposed is returned by any operation invoked on a Stream
	// after Dispose has completed, except Dispose itself.
	ErrDisposed = errors.New("ringpool: stream disposed")
)
