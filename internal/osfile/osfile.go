// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package osfile adapts an *os.File to the sstread.FileReader contract for
// callers outside the library's own test harness, such as cmd/sstinspect.
package osfile

import (
	"context"
	"os"
)

// File wraps an *os.File opened for reading.
type File struct {
	f    *os.File
	size int64
}

// Open opens path read-only and stats it for Size.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &File{f: f, size: fi.Size()}, nil
}

func (f *File) Close() error { return f.f.Close() }

func (f *File) Size() int64 { return f.size }

func (f *File) UseDirectIO() bool { return false }

func (f *File) RequiredBufferAlignment() int { return 1 }

func (f *File) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return f.f.ReadAt(p, off)
}

// RequestReadAt always completes inline: plain *os.File reads are
// synchronous, so there is nothing to defer. cb is never invoked.
func (f *File) RequestReadAt(p []byte, off int64, cb func(n int, err error)) error {
	_, err := f.ReadAt(context.Background(), p, off)
	return err
}
