// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildBlock(payload []byte, ctype CompressionIndicator, checksumType ChecksumType) []byte {
	summer := Checksummer{Type: checksumType}
	checksum := summer.Compute(payload, byte(ctype))
	trailer := MakeTrailer(ctype, checksum)
	return append(append([]byte{}, payload...), trailer[:]...)
}

func TestValidateChecksumCRC32CSuccess(t *testing.T) {
	block := buildBlock([]byte{0x01, 0x02, 0x03, 0x04}, CompressionNone, ChecksumCRC32C)
	require.NoError(t, ValidateChecksum(ChecksumCRC32C, block))
}

func TestValidateChecksumXXHashSuccess(t *testing.T) {
	block := buildBlock([]byte("hello block contents"), CompressionNone, ChecksumXXHash)
	require.NoError(t, ValidateChecksum(ChecksumXXHash, block))
}

func TestValidateChecksumBitFlipFails(t *testing.T) {
	block := buildBlock([]byte{0x01, 0x02, 0x03, 0x04}, CompressionNone, ChecksumCRC32C)
	block[0] ^= 0x01
	err := ValidateChecksum(ChecksumCRC32C, block)
	require.Error(t, err)
	require.Contains(t, err.Error(), "block checksum mismatch")
}

func TestValidateChecksumUnknownType(t *testing.T) {
	block := buildBlock([]byte{1, 2, 3}, CompressionNone, ChecksumCRC32C)
	err := ValidateChecksum(ChecksumType(99), block)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown checksum type")
}

func TestValidateChecksumTruncated(t *testing.T) {
	err := ValidateChecksum(ChecksumCRC32C, []byte{1, 2})
	require.Error(t, err)
	require.Contains(t, err.Error(), "truncated")
}

func TestTrailerAccessors(t *testing.T) {
	trailer := MakeTrailer(CompressionSnappy, 0xdeadbeef)
	require.Equal(t, CompressionSnappy, trailer.CompressionType())
	require.Equal(t, uint32(0xdeadbeef), trailer.Checksum())
}
