// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"github.com/golang/snappy"

	"github.com/colblock/sstread/status"
)

type snappyDecompressor struct{}

func (snappyDecompressor) DecompressedLen(src []byte) (int, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return -1, status.Corruption("Snappy not supported or corrupted Snappy compressed block contents")
	}
	return n, nil
}

func (snappyDecompressor) DecompressInto(dst, src []byte) ([]byte, error) {
	out, err := snappy.Decode(dst, src)
	if err != nil {
		return nil, status.Corruption("Snappy not supported or corrupted Snappy compressed block contents")
	}
	return out, nil
}
