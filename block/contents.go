// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

// Contents is the decoded, checksum-verified, (optionally) decompressed
// payload of one block, ready for a caller to parse.
type Contents struct {
	Data            []byte
	Cachable        bool
	CompressionType CompressionIndicator

	// owned records whether Data is a freshly allocated buffer this value
	// exclusively holds, as opposed to a borrowed view into a caller's
	// scratch buffer. Go's garbage collector is the actual lifetime
	// mechanism for Data either way; owned only decides cache-insert
	// eligibility (mirrored by Cachable) and is never consulted for memory
	// safety.
	owned bool
}

// Owned reports whether c holds an exclusively-owned copy of its bytes.
func (c Contents) Owned() bool {
	return c.owned
}

// NewOwned wraps data (which the caller must not mutate or reuse) as an
// owning, cachable Contents value.
func NewOwned(data []byte, ctype CompressionIndicator) Contents {
	return Contents{Data: data, Cachable: true, CompressionType: ctype, owned: true}
}

// NewBorrowed wraps data, a view into storage whose lifetime the Contents
// value does not control, as a non-cachable Contents value.
func NewBorrowed(data []byte, ctype CompressionIndicator) Contents {
	return Contents{Data: data, Cachable: false, CompressionType: ctype, owned: false}
}

// Clone returns a Contents value holding an independent copy of c's bytes,
// always owning and always cachable.
func (c Contents) Clone() Contents {
	data := append([]byte(nil), c.Data...)
	return NewOwned(data, c.CompressionType)
}
