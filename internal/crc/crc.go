// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package crc implements the masked CRC32C convention used by the block
// trailer checksum: the raw Castagnoli CRC is rotated and offset before
// being stored on disk so that a block of all-zero bytes (a common
// corruption pattern) never produces a checksum that collides with a
// legitimately stored, unmasked CRC.
package crc

import "hash/crc32"

var table = crc32.MakeTable(crc32.Castagnoli)

const maskDelta = 0xa282ead8

// Digest accumulates a CRC32C checksum over one or more calls to Update,
// mirroring the call shape `crc.New(data).Update(more).Value()` used
// throughout this lineage's block and log record formats.
type Digest struct {
	crc uint32
}

// New starts a new Digest seeded with the checksum of b.
func New(b []byte) *Digest {
	return &Digest{crc: crc32.Update(0, table, b)}
}

// Update extends the digest with additional bytes and returns the receiver
// for chaining.
func (d *Digest) Update(b []byte) *Digest {
	d.crc = crc32.Update(d.crc, table, b)
	return d
}

// Value returns the raw (unmasked) CRC32C checksum accumulated so far.
func (d *Digest) Value() uint32 {
	return d.crc
}

// Mask transforms a raw CRC32C value into its on-disk masked form.
func Mask(crc uint32) uint32 {
	return ((crc >> 15) | (crc << 17)) + maskDelta
}

// Unmask is the inverse of Mask, recovering the raw CRC32C value from its
// on-disk masked form.
func Unmask(masked uint32) uint32 {
	rot := masked - maskDelta
	return (rot >> 17) | (rot << 15)
}
