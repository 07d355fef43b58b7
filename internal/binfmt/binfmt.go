// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package binfmt holds the fixed-width and varint binary primitives the
// footer and block handle codecs build on. It is a thin wrapper over
// encoding/binary rather than a reimplementation, matching how this
// lineage's own sstable package leans directly on the standard library for
// these primitives.
package binfmt

import "encoding/binary"

// PutUvarint64 appends v to dst as a varint and returns the extended slice.
func PutUvarint64(dst []byte, v uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return append(dst, buf[:n]...)
}

// Uvarint64 reads a varint from the head of src, returning the value and the
// number of bytes consumed. A return of n<=0 indicates src was too short (n
// == 0) or the varint overflowed 64 bits (n < 0), matching encoding/binary's
// own convention.
func Uvarint64(src []byte) (uint64, int) {
	return binary.Uvarint(src)
}

// PutFixed32LE appends v to dst as 4 little-endian bytes.
func PutFixed32LE(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// Fixed32LE reads 4 little-endian bytes from the head of src. Callers must
// ensure len(src) >= 4.
func Fixed32LE(src []byte) uint32 {
	return binary.LittleEndian.Uint32(src)
}

// PutFixed64LE appends v to dst as 8 little-endian bytes.
func PutFixed64LE(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// Fixed64LE reads 8 little-endian bytes from the head of src. Callers must
// ensure len(src) >= 8.
func Fixed64LE(src []byte) uint64 {
	return binary.LittleEndian.Uint64(src)
}
