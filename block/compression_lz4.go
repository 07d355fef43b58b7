// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"errors"

	lz4 "github.com/pierrec/lz4/v4"

	"github.com/colblock/sstread/status"
)

// lz4Decompressor serves both CompressionLz4 and CompressionLz4hc: LZ4HC is
// a compressor-side speed/ratio tradeoff only, the decode path is identical.
// pierrec/lz4/v4's block format does not record the original size, so this
// grows the destination buffer and retries on ErrInvalidSourceShortBuffer,
// the same pattern used elsewhere in the example pack.
type lz4Decompressor struct{}

func (lz4Decompressor) DecompressedLen(src []byte) (int, error) {
	return -1, nil
}

const maxLz4RetryBuf = 64 << 20

func (lz4Decompressor) DecompressInto(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}
	size := len(src) * 3
	if size < 1024 {
		size = 1024
	}
	if dst != nil && len(dst) > size {
		size = len(dst)
	}
	buf := make([]byte, size)
	for {
		n, err := lz4.UncompressBlock(src, buf)
		if err == nil {
			return buf[:n], nil
		}
		if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			if len(buf) > maxLz4RetryBuf {
				return nil, status.Corruption("LZ4 not supported or corrupted LZ4 compressed block contents")
			}
			buf = make([]byte, len(buf)*2)
			continue
		}
		return nil, status.Corruption("LZ4 not supported or corrupted LZ4 compressed block contents")
	}
}
