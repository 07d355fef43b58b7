// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"github.com/colblock/sstread/internal/binfmt"
	"github.com/colblock/sstread/internal/crc"
	"github.com/colblock/sstread/internal/xxhash32"
	"github.com/colblock/sstread/status"
)

// TrailerLen is the number of bytes following a block's payload on disk:
// one compression-type byte plus a 4-byte little-endian checksum.
const TrailerLen = 5

// Trailer is the 5-byte footer appended to every on-disk block.
type Trailer [TrailerLen]byte

// CompressionType returns the compression-type byte stored in t.
func (t Trailer) CompressionType() CompressionIndicator {
	return CompressionIndicator(t[0])
}

// Checksum returns the little-endian checksum stored in t.
func (t Trailer) Checksum() uint32 {
	return binfmt.Fixed32LE(t[1:5])
}

// MakeTrailer builds a Trailer from a compression type and an already-masked
// (or already-xxhash) checksum value.
func MakeTrailer(ctype CompressionIndicator, checksum uint32) Trailer {
	var t Trailer
	t[0] = byte(ctype)
	copy(t[1:5], binfmt.PutFixed32LE(nil, checksum))
	return t
}

// ChecksumType selects the algorithm used to protect a block's payload.
type ChecksumType byte

const (
	ChecksumCRC32C ChecksumType = 1
	ChecksumXXHash ChecksumType = 2
)

func (c ChecksumType) String() string {
	switch c {
	case ChecksumCRC32C:
		return "CRC32C"
	case ChecksumXXHash:
		return "xxHash"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a recognized checksum type.
func (c ChecksumType) Valid() bool {
	return c == ChecksumCRC32C || c == ChecksumXXHash
}

// Checksummer computes a block checksum over a payload plus its trailing
// compression-type byte, per the algorithm selected by Type.
type Checksummer struct {
	Type ChecksumType
}

// Compute returns the on-disk checksum value for payload followed by
// ctypeByte: masked CRC32C, or seed-0 xxHash32.
func (c Checksummer) Compute(payload []byte, ctypeByte byte) uint32 {
	switch c.Type {
	case ChecksumXXHash:
		return xxhash32.ChecksumSeed(appendByte(payload, ctypeByte), 0)
	default:
		return crc.Mask(crc.New(payload).Update([]byte{ctypeByte}).Value())
	}
}

func appendByte(b []byte, c byte) []byte {
	// xxHash32 takes one contiguous slice; payload is never mutated since we
	// only read from the result.
	out := make([]byte, len(b)+1)
	copy(out, b)
	out[len(b)] = c
	return out
}

// ValidateChecksum recomputes the checksum over block (which must be
// len(block)-TrailerLen bytes of payload followed by a Trailer) and compares
// it against the stored value, returning a Corruption error on mismatch or
// on an unrecognized checksum type.
func ValidateChecksum(checksumType ChecksumType, block []byte) error {
	if len(block) < TrailerLen {
		return status.Corruption("truncated block read")
	}
	if !checksumType.Valid() {
		return status.Corruption("unknown checksum type")
	}
	n := len(block) - TrailerLen
	payload := block[:n]
	ctypeByte := block[n]
	stored := binfmt.Fixed32LE(block[n+1 : n+5])

	summer := Checksummer{Type: checksumType}
	want := summer.Compute(payload, ctypeByte)
	if want != stored {
		if bit, ok := findBitFlip(checksumType, payload, ctypeByte, stored); ok {
			return status.Corruption(
				"block checksum mismatch: computed 0x%x, stored 0x%x, bit flip detected at byte %d bit %d",
				want, stored, bit/8, bit%8)
		}
		return status.Corruption("block checksum mismatch: computed 0x%x, stored 0x%x", want, stored)
	}
	return nil
}

// findBitFlip performs the diagnostic best-effort scan described by the read
// path's checksum-mismatch handling: it looks for the single bit whose flip
// would reconcile the computed and stored checksums, to aid triage. It is a
// linear scan over len(payload)*8 bits and is only invoked on the (already
// exceptional) mismatch path.
func findBitFlip(checksumType ChecksumType, payload []byte, ctypeByte byte, stored uint32) (int, bool) {
	scratch := append([]byte(nil), payload...)
	summer := Checksummer{Type: checksumType}
	totalBits := len(scratch) * 8
	for bit := 0; bit < totalBits; bit++ {
		byteIdx, bitIdx := bit/8, uint(bit%8)
		scratch[byteIdx] ^= 1 << bitIdx
		if summer.Compute(scratch, ctypeByte) == stored {
			return bit, true
		}
		scratch[byteIdx] ^= 1 << bitIdx
	}
	return 0, false
}
