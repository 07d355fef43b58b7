// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"github.com/colblock/sstread/internal/binfmt"
	"github.com/colblock/sstread/status"
)

// MaxEncodedLen is the maximum number of bytes a Handle occupies once
// encoded: two varint64 values, each at most 10 bytes.
const MaxEncodedLen = 20

// Handle locates a block within an sstable file as a byte range.
type Handle struct {
	Offset uint64
	Length uint64
}

// Zero reports whether h is the null handle, (0, 0).
func (h Handle) Zero() bool {
	return h.Offset == 0 && h.Length == 0
}

// EncodeInto appends h's varint64-encoded offset and length to dst and
// returns the extended slice.
func (h Handle) EncodeInto(dst []byte) []byte {
	dst = binfmt.PutUvarint64(dst, h.Offset)
	dst = binfmt.PutUvarint64(dst, h.Length)
	return dst
}

// DecodeHandle reads a Handle from the head of src, returning the handle and
// the number of bytes consumed. On malformed input it returns the zero
// Handle, 0, and a Corruption error.
func DecodeHandle(src []byte) (Handle, int, error) {
	off, n1 := binfmt.Uvarint64(src)
	if n1 <= 0 {
		return Handle{}, 0, status.Corruption("bad block handle")
	}
	length, n2 := binfmt.Uvarint64(src[n1:])
	if n2 <= 0 {
		return Handle{}, 0, status.Corruption("bad block handle")
	}
	return Handle{Offset: off, Length: length}, n1 + n2, nil
}
