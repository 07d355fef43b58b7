// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstread

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colblock/sstread/block"
	"github.com/colblock/sstread/internal/memfile"
)

func buildBlockFile(t *testing.T, prefix, payload []byte, ctype block.CompressionIndicator, checksumType block.ChecksumType) (*memfile.File, block.Handle) {
	t.Helper()
	summer := block.Checksummer{Type: checksumType}
	checksum := summer.Compute(payload, byte(ctype))
	trailer := block.MakeTrailer(ctype, checksum)

	data := append([]byte{}, prefix...)
	h := block.Handle{Offset: uint64(len(data)), Length: uint64(len(payload))}
	data = append(data, payload...)
	data = append(data, trailer[:]...)
	return memfile.New(data), h
}

func TestReadBlockSuccess(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	file, h := buildBlockFile(t, make([]byte, 17), payload, block.CompressionNone, block.ChecksumCRC32C)

	raw, err := ReadBlock(context.Background(), file, block.ChecksumCRC32C, true, h, make([]byte, h.Length+block.TrailerLen), nil)
	require.NoError(t, err)
	require.Equal(t, payload, raw[:len(payload)])
}

func TestReadBlockChecksumMismatchFailsWhenVerifying(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	file, h := buildBlockFile(t, nil, payload, block.CompressionNone, block.ChecksumCRC32C)

	// Flip a single bit in the on-disk payload without touching the stored
	// checksum.
	data := mustReadAll(t, file)
	data[h.Offset] ^= 0x01
	corrupted := memfile.New(data)

	_, err := ReadBlock(context.Background(), corrupted, block.ChecksumCRC32C, true, h, make([]byte, h.Length+block.TrailerLen), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "block checksum mismatch")
}

func TestReadBlockSkipsChecksumWhenNotVerifying(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	file, h := buildBlockFile(t, nil, payload, block.CompressionNone, block.ChecksumCRC32C)

	data := mustReadAll(t, file)
	data[h.Offset] ^= 0x01
	corrupted := memfile.New(data)

	raw, err := ReadBlock(context.Background(), corrupted, block.ChecksumCRC32C, false, h, make([]byte, h.Length+block.TrailerLen), nil)
	require.NoError(t, err)
	require.Len(t, raw, int(h.Length)+block.TrailerLen)
}

func TestReadBlockTruncated(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	file, h := buildBlockFile(t, nil, payload, block.CompressionNone, block.ChecksumCRC32C)
	h.Length += 100 // request more than is actually present

	_, err := ReadBlock(context.Background(), file, block.ChecksumCRC32C, true, h, make([]byte, h.Length+block.TrailerLen), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "truncated block read")
}

func mustReadAll(t *testing.T, f *memfile.File) []byte {
	t.Helper()
	buf := make([]byte, f.Size())
	n, err := f.ReadAt(context.Background(), buf, 0)
	require.NoError(t, err)
	return buf[:n]
}
