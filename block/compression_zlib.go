// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/colblock/sstread/status"
)

// zlibDecompressor uses the standard library's compress/zlib. No
// third-party zlib decoder appears anywhere in this lineage's own
// dependency graph or the broader example pack; the lineage's own auxiliary
// tooling (benchmark harnesses) reaches for compress/zlib directly, and
// zlib decoding is exactly the kind of narrow, stable, rarely-revised
// concern the standard library is the idiomatic choice for.
type zlibDecompressor struct{}

func (zlibDecompressor) DecompressedLen(src []byte) (int, error) {
	return -1, nil
}

func (zlibDecompressor) DecompressInto(dst, src []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, status.Corruption("Zlib not supported or corrupted Zlib compressed block contents")
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, status.Corruption("Zlib not supported or corrupted Zlib compressed block contents")
	}
	return out, nil
}
