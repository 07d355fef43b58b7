// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"bytes"
	"compress/bzip2"
	"io"

	"github.com/colblock/sstread/status"
)

// bzip2Decompressor uses the standard library's compress/bzip2, which is
// decode-only — matching this module's own decode-only requirement exactly,
// and matching the same justification as zlibDecompressor: no third-party
// bzip2 decoder appears in this lineage's dependency graph.
type bzip2Decompressor struct{}

func (bzip2Decompressor) DecompressedLen(src []byte) (int, error) {
	return -1, nil
}

func (bzip2Decompressor) DecompressInto(dst, src []byte) ([]byte, error) {
	r := bzip2.NewReader(bytes.NewReader(src))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, status.Corruption("BZip2 not supported or corrupted BZip2 compressed block contents")
	}
	return out, nil
}
