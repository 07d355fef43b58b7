// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstread

import (
	"github.com/colblock/sstread/block"
	"github.com/colblock/sstread/internal/binfmt"
	"github.com/colblock/sstread/status"
)

const (
	magicNumberLen = 8

	// legacyFooterLen is the on-disk size of a version-0 (legacy) footer:
	// two block handles, each padded to block.MaxEncodedLen, plus the
	// 8-byte magic number.
	legacyFooterLen = 2*block.MaxEncodedLen + 8

	// currentFooterLen is the on-disk size of a current-format footer: one
	// checksum-type byte, two block handles padded to block.MaxEncodedLen,
	// a 4-byte format version, and the 8-byte magic number.
	currentFooterLen = 1 + 2*block.MaxEncodedLen + 4 + 8

	// MinEncodedLen is the smallest footer shape recognized: the legacy
	// layout.
	MinEncodedLen = legacyFooterLen
	// MaxEncodedLen is the largest footer shape recognized: the current
	// layout.
	MaxEncodedLen = currentFooterLen
)

// Magic number pairs, legacy and current, for the two table formats this
// module recognizes.
const (
	blockBasedLegacyMagic = 0xdb4775248b80fb57
	blockBasedMagic       = 0x88e241b785f4cff7

	plainTableLegacyMagic = 0x4f3418eb7a8f13b8
	plainTableMagic       = 0x8242229663bf9564
)

// Footer is the versioned trailer at the end of every sstable file.
type Footer struct {
	TableMagicNumber uint64
	FormatVersion    uint32
	ChecksumType     block.ChecksumType
	MetaindexHandle  block.Handle
	IndexHandle      block.Handle
}

// NewFooter builds a Footer for the write path, with explicit magic and
// version. Legacy footers (FormatVersion == 0) must use CRC32C.
func NewFooter(magic uint64, formatVersion uint32, checksumType block.ChecksumType, metaindex, index block.Handle) (Footer, error) {
	if formatVersion == 0 && checksumType != block.ChecksumCRC32C {
		return Footer{}, status.InvalidArgument("legacy footer format requires CRC32C checksums")
	}
	return Footer{
		TableMagicNumber: magic,
		FormatVersion:    formatVersion,
		ChecksumType:     checksumType,
		MetaindexHandle:  metaindex,
		IndexHandle:      index,
	}, nil
}

func upconvertLegacyMagic(m uint64) (uint64, bool) {
	switch m {
	case blockBasedLegacyMagic:
		return blockBasedMagic, true
	case plainTableLegacyMagic:
		return plainTableMagic, true
	default:
		return 0, false
	}
}

// Encode appends f's on-disk representation to dst and returns the extended
// slice. Legacy footers (FormatVersion == 0) are encoded without a
// checksum-type byte and without a format-version field, per the §4.2
// legacy layout; f.ChecksumType must be CRC32C in that case.
func (f Footer) Encode(dst []byte) ([]byte, error) {
	start := len(dst)
	if f.FormatVersion == 0 {
		if f.ChecksumType != block.ChecksumCRC32C {
			return nil, status.InvalidArgument("legacy footer format requires CRC32C checksums")
		}
		dst = f.MetaindexHandle.EncodeInto(dst)
		dst = f.IndexHandle.EncodeInto(dst)
		dst = padTo(dst, start, 2*block.MaxEncodedLen)
		dst = binfmt.PutFixed32LE(dst, uint32(f.TableMagicNumber&0xffffffff))
		dst = binfmt.PutFixed32LE(dst, uint32(f.TableMagicNumber>>32))
		return dst, nil
	}

	dst = append(dst, byte(f.ChecksumType))
	dst = f.MetaindexHandle.EncodeInto(dst)
	dst = f.IndexHandle.EncodeInto(dst)
	dst = padTo(dst, start, currentFooterLen-4-8)
	dst = binfmt.PutFixed32LE(dst, f.FormatVersion)
	dst = binfmt.PutFixed32LE(dst, uint32(f.TableMagicNumber&0xffffffff))
	dst = binfmt.PutFixed32LE(dst, uint32(f.TableMagicNumber>>32))
	return dst, nil
}

func padTo(dst []byte, start, targetLen int) []byte {
	for len(dst)-start < targetLen {
		dst = append(dst, 0)
	}
	return dst
}

// DecodeFooter decodes a Footer from the tail of input, returning the
// footer and the number of bytes (from the end of input) the footer
// occupied. input must be at least MinEncodedLen bytes; if it is longer
// than the footer it actually occupies, only the trailing bytes are
// consulted.
func DecodeFooter(input []byte) (Footer, int, error) {
	if len(input) < MinEncodedLen {
		return Footer{}, 0, status.Corruption("file is too short to be an sstable")
	}

	tail := input[len(input)-magicNumberLen:]
	magicLo := binfmt.Fixed32LE(tail[0:4])
	magicHi := binfmt.Fixed32LE(tail[4:8])
	magic := uint64(magicLo) | uint64(magicHi)<<32

	if upconverted, ok := upconvertLegacyMagic(magic); ok {
		if len(input) < legacyFooterLen {
			return Footer{}, 0, status.Corruption("file is too short to be an sstable")
		}
		body := input[len(input)-legacyFooterLen:]
		metaindex, n1, err := block.DecodeHandle(body)
		if err != nil {
			return Footer{}, 0, err
		}
		index, _, err := block.DecodeHandle(body[n1:])
		if err != nil {
			return Footer{}, 0, err
		}
		return Footer{
			TableMagicNumber: upconverted,
			FormatVersion:    0,
			ChecksumType:     block.ChecksumCRC32C,
			MetaindexHandle:  metaindex,
			IndexHandle:      index,
		}, legacyFooterLen, nil
	}

	if len(input) < currentFooterLen {
		return Footer{}, 0, status.Corruption("input is too short to be an sstable")
	}
	body := input[len(input)-currentFooterLen:]

	checksumVal, n0 := binfmt.Uvarint64(body)
	if n0 <= 0 {
		return Footer{}, 0, status.Corruption("bad checksum type")
	}
	checksumType := block.ChecksumType(checksumVal)
	if !checksumType.Valid() {
		return Footer{}, 0, status.Corruption("bad checksum type")
	}

	rest := body[n0:]
	metaindex, n1, err := block.DecodeHandle(rest)
	if err != nil {
		return Footer{}, 0, err
	}
	index, _, err := block.DecodeHandle(rest[n1:])
	if err != nil {
		return Footer{}, 0, err
	}

	formatVersion := binfmt.Fixed32LE(body[currentFooterLen-12 : currentFooterLen-8])

	return Footer{
		TableMagicNumber: magic,
		FormatVersion:    formatVersion,
		ChecksumType:     checksumType,
		MetaindexHandle:  metaindex,
		IndexHandle:      index,
	}, currentFooterLen, nil
}
