// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package memfile provides an in-memory FileReader used by the read path's
// own tests to drive both the synchronous and asynchronous code paths
// identically, without real I/O — the async contract is exercised by
// completing reads on a background goroutine.
package memfile

import (
	"context"
	"io"

	"github.com/colblock/sstread/status"
)

// File is an in-memory random-access file.
type File struct {
	data []byte

	// AlwaysDefer, when true, makes every RequestReadAt complete on a
	// background goroutine instead of inline, exercising the pending path.
	AlwaysDefer bool

	// FailNextReadAt, when set, is returned (and cleared) by the next call
	// to ReadAt or RequestReadAt, simulating an I/O error.
	FailNextReadAt error

	// ReadCount tracks how many times ReadAt/RequestReadAt was invoked, so
	// tests can assert a cache hit skipped the file entirely.
	ReadCount int
}

// New returns a File backed by data.
func New(data []byte) *File {
	return &File{data: data}
}

func (f *File) Size() int64 { return int64(len(f.data)) }

func (f *File) UseDirectIO() bool { return false }

func (f *File) RequiredBufferAlignment() int { return 1 }

func (f *File) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	f.ReadCount++
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if f.FailNextReadAt != nil {
		err := f.FailNextReadAt
		f.FailNextReadAt = nil
		return 0, err
	}
	if off < 0 || off > int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// RequestReadAt completes inline unless AlwaysDefer is set, in which case it
// runs the read on a new goroutine and returns status.ErrIOPending.
func (f *File) RequestReadAt(p []byte, off int64, cb func(n int, err error)) error {
	if !f.AlwaysDefer {
		_, err := f.ReadAt(context.Background(), p, off)
		return err
	}
	go func() {
		n, err := f.ReadAt(context.Background(), p, off)
		cb(n, err)
	}()
	return status.ErrIOPending
}
