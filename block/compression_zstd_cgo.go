// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	datadogzstd "github.com/DataDog/zstd"

	"github.com/colblock/sstread/status"
)

// cgoZstdDecompressor is the cgo-backed alternative ZSTD path, selected via
// ReaderOptions.PreferCgoZstd. This mirrors the reference storage engine's
// own dual pure-Go/cgo ZSTD strategy: the cgo binding is typically faster
// but requires a working C toolchain at build time, so it is opt-in rather
// than the default.
type cgoZstdDecompressor struct{}

func (cgoZstdDecompressor) DecompressedLen(src []byte) (int, error) {
	n, err := datadogzstd.DecompressedSize(src)
	if err != nil {
		return -1, nil
	}
	return n, nil
}

func (cgoZstdDecompressor) DecompressInto(dst, src []byte) ([]byte, error) {
	out, err := datadogzstd.Decompress(dst, src)
	if err != nil {
		return nil, status.Corruption("ZSTD not supported or corrupted ZSTD compressed block contents")
	}
	return out, nil
}
