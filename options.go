// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstread

import (
	"github.com/colblock/sstread/block"
)

// ReaderOptions configures a reader's environment: its logger, performance
// counters, and codec preferences. It follows this lineage's own
// options-struct convention — plain exported fields defaulted by a
// DefaultReaderOptions constructor — rather than a functional-options
// pattern.
type ReaderOptions struct {
	Logger block.Logger
	Stats  *block.Stats

	// Compression configures decompressor selection (e.g. cgo vs. pure-Go
	// ZSTD).
	Compression block.ReaderOptions

	// UncompressedCache, if non-nil, must have IsCompressed() == false.
	UncompressedCache block.PersistentCache
	// CompressedCache, if non-nil, must have IsCompressed() == true.
	CompressedCache block.PersistentCache
}

// DefaultReaderOptions returns a ReaderOptions with a DefaultLogger and no
// caches or metrics wired in.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{Logger: block.DefaultLogger{}}
}

func (o ReaderOptions) logger() block.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return block.DefaultLogger{}
}

// ReadOptions configures one read request.
type ReadOptions struct {
	// VerifyChecksums, when true, validates each block's trailer checksum
	// after reading it.
	VerifyChecksums bool
	// FillCache, when true, populates any configured persistent cache on a
	// successful disk read.
	FillCache bool
	// DecompressionRequested, when true, decompresses a compressed block
	// before returning it.
	DecompressionRequested bool
	// CompressionDict is an optional codec-specific dictionary; none of the
	// codecs wired into this module consume it, and the read path does not
	// pass it to any decompressor.
	CompressionDict []byte
}

// DefaultReadOptions returns the common case: verify checksums, fill the
// cache, and decompress.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{VerifyChecksums: true, FillCache: true, DecompressionRequested: true}
}
