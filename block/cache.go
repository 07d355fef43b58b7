// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

// PersistentCache is a secondary, byte-addressable cache (e.g. flash)
// consulted before reading an sstable file. It is generalized from this
// lineage's own internal/cache.SecondaryCache interface
// (GetAndEvict/Set/DeleteFile) into the two-mode contract the read path
// needs: an uncompressed-page cache that stores decoded Contents directly,
// or a raw-page cache that stores the still-compressed bytes plus trailer.
//
// Implementations must be safe for concurrent use; the read path issues
// read-through and write-through calls without additional locking of its
// own.
type PersistentCache interface {
	// IsCompressed reports which of the two lookup/insert pairs below this
	// cache implements. A cache is either always-compressed or
	// always-uncompressed for its lifetime.
	IsCompressed() bool

	// LookupUncompressed returns the cached Contents for h, or a NotFound
	// error (status.ErrNotFound) on a miss. Valid only when IsCompressed()
	// is false.
	LookupUncompressed(h Handle) (Contents, error)
	// InsertUncompressed stores c under h. Valid only when IsCompressed()
	// is false.
	InsertUncompressed(h Handle, c Contents) error

	// LookupRaw copies the cached raw bytes (block payload plus trailer)
	// for h into buf and returns the number of bytes copied, or a NotFound
	// error on a miss. Valid only when IsCompressed() is true.
	LookupRaw(h Handle, buf []byte) (int, error)
	// InsertRaw stores buf (block payload plus trailer) under h. Valid only
	// when IsCompressed() is true.
	InsertRaw(h Handle, buf []byte) error
}
