// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package testcache provides trivial in-memory block.PersistentCache
// implementations for exercising the read path's cache-probe and
// cache-fill logic without a real secondary cache backend.
package testcache

import (
	"sync"

	"github.com/colblock/sstread/block"
	"github.com/colblock/sstread/status"
)

type key struct {
	offset, length uint64
}

func keyOf(h block.Handle) key { return key{h.Offset, h.Length} }

// Uncompressed is an in-memory uncompressed-page cache.
type Uncompressed struct {
	mu      sync.Mutex
	entries map[key]block.Contents
}

func NewUncompressed() *Uncompressed {
	return &Uncompressed{entries: make(map[key]block.Contents)}
}

func (c *Uncompressed) IsCompressed() bool { return false }

func (c *Uncompressed) LookupUncompressed(h block.Handle) (block.Contents, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[keyOf(h)]
	if !ok {
		return block.Contents{}, status.ErrNotFound
	}
	return v.Clone(), nil
}

func (c *Uncompressed) InsertUncompressed(h block.Handle, v block.Contents) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[keyOf(h)] = v.Clone()
	return nil
}

func (c *Uncompressed) LookupRaw(block.Handle, []byte) (int, error) {
	return 0, status.InvalidArgument("LookupRaw called on an uncompressed cache")
}

func (c *Uncompressed) InsertRaw(block.Handle, []byte) error {
	return status.InvalidArgument("InsertRaw called on an uncompressed cache")
}

// Compressed is an in-memory raw/compressed-page cache.
type Compressed struct {
	mu      sync.Mutex
	entries map[key][]byte

	// Inserts counts InsertRaw calls, so tests can assert fill-cache
	// behavior (invariant 8 in the read-path test suite).
	Inserts int
}

func NewCompressed() *Compressed {
	return &Compressed{entries: make(map[key][]byte)}
}

func (c *Compressed) IsCompressed() bool { return true }

func (c *Compressed) LookupRaw(h block.Handle, buf []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[keyOf(h)]
	if !ok {
		return 0, status.ErrNotFound
	}
	if len(v) != len(buf) {
		return 0, status.Corruption("raw cache entry size mismatch")
	}
	copy(buf, v)
	return len(v), nil
}

func (c *Compressed) InsertRaw(h block.Handle, buf []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[keyOf(h)] = append([]byte(nil), buf...)
	c.Inserts++
	return nil
}

func (c *Compressed) LookupUncompressed(block.Handle) (block.Contents, error) {
	return block.Contents{}, status.InvalidArgument("LookupUncompressed called on a compressed cache")
}

func (c *Compressed) InsertUncompressed(block.Handle, block.Contents) error {
	return status.InvalidArgument("InsertUncompressed called on a compressed cache")
}
