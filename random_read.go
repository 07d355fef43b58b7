// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstread

import (
	"context"
	"errors"
	"io"

	"github.com/colblock/sstread/status"
)

// randomReadContext is the reusable substrate for issuing one bounded range
// read against a FileReader and delivering a single contiguous result
// slice. Every higher-level context (readFooterContext, readBlockContext)
// embeds one of these rather than calling FileReader directly.
type randomReadContext struct {
	file   FileReader
	offset int64
	length int

	directIO  bool
	alignment int

	result []byte
}

func newRandomReadContext(file FileReader, offset int64, length int) *randomReadContext {
	return &randomReadContext{
		file:      file,
		offset:    offset,
		length:    length,
		directIO:  file.UseDirectIO(),
		alignment: file.RequiredBufferAlignment(),
	}
}

// onComplete normalizes a completed read's (n, err) pair into rc.result,
// truncating scratch to the bytes actually returned. An io.EOF that ends a
// short read is not an I/O failure: the short result is kept so the caller's
// own length check reports it.
func (rc *randomReadContext) onComplete(scratch []byte, n int, err error) error {
	if err != nil && !errors.Is(err, io.EOF) {
		return status.IOError(err, status.SubCodeNone)
	}
	rc.result = scratch[:n]
	return nil
}

// read performs the synchronous variant of the read, blocking the calling
// goroutine inside FileReader.ReadAt.
func (rc *randomReadContext) read(ctx context.Context, scratch []byte) error {
	if err := ctx.Err(); err != nil {
		return status.New(status.CodeTimedOut, err.Error())
	}
	n, err := rc.file.ReadAt(ctx, scratch[:rc.length], rc.offset)
	return rc.onComplete(scratch, n, err)
}

// requestRead performs the asynchronous variant: it returns nil if the read
// completed inline (rc.result is already populated and cb is NOT invoked),
// status.ErrIOPending if cb will be invoked later exactly once, or a hard
// error.
func (rc *randomReadContext) requestRead(scratch []byte, cb func(error)) error {
	err := rc.file.RequestReadAt(scratch[:rc.length], rc.offset, func(n int, err error) {
		cb(rc.onComplete(scratch, n, err))
	})
	if err == nil {
		// Inline completion: the callback above was never invoked, so
		// rc.result is still unset. Populate it now from the bytes
		// RequestReadAt already wrote into scratch.
		return rc.onComplete(scratch, rc.length, nil)
	}
	if status.IsIOPending(err) {
		return status.ErrIOPending
	}
	return status.IOError(err, status.SubCodeNone)
}
