// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/colblock/sstread/status"
)

// zstdDecompressor is the pure-Go ZSTD path, matching this lineage's own
// no-cgo build-tagged decompressor: a single pooled *zstd.Decoder reused
// across calls via DecodeAll, which is safe for concurrent use.
type zstdDecompressor struct{}

var sharedZstdDecoder = sync.OnceValue(func() *zstd.Decoder {
	d, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
	return d
})

func (zstdDecompressor) DecompressedLen(src []byte) (int, error) {
	return -1, nil
}

func (zstdDecompressor) DecompressInto(dst, src []byte) ([]byte, error) {
	out, err := sharedZstdDecoder().DecodeAll(src, dst[:0])
	if err != nil {
		return nil, status.Corruption("ZSTD not supported or corrupted ZSTD compressed block contents")
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}
