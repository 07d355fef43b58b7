// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstread

import "context"

// FileReader is the random-access file abstraction the read path drives.
// It is the Go analogue of the reference implementation's
// RandomAccessFileReader, generalized to expose both a synchronous and a
// cooperative-asynchronous entry point over the same underlying file.
//
// On completion the requested bytes are in the destination slice p passed
// to ReadAt/RequestReadAt: implementations copy into p and have no way to
// hand back a different buffer. Callers must treat p as valid only for the
// duration of the completion (synchronous return, or invocation of cb for
// the async path).
type FileReader interface {
	// ReadAt synchronously reads len(p) bytes starting at off into p,
	// returning the number of bytes actually read (n < len(p) only at
	// EOF) and any error encountered.
	ReadAt(ctx context.Context, p []byte, off int64) (n int, err error)

	// RequestReadAt submits an asynchronous read of len(p) bytes starting
	// at off into p. A nil return means the read already completed
	// in-line and p already holds the result — cb is NOT invoked in this
	// case. A return of status.ErrIOPending means cb will be invoked
	// exactly once, later, with the result. Any other error is a hard
	// failure and cb is not invoked.
	RequestReadAt(p []byte, off int64, cb func(n int, err error)) error

	// UseDirectIO reports whether this reader bypasses the OS page cache.
	UseDirectIO() bool

	// RequiredBufferAlignment reports the byte alignment a caller-provided
	// buffer must satisfy when UseDirectIO is true. Implementations that do
	// not use direct I/O return 1.
	RequiredBufferAlignment() int

	// Size reports the total size of the underlying file.
	Size() int64
}
