// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xxhash32

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyInputKnownVector(t *testing.T) {
	// The empty-input, seed-0 digest is a widely published reference vector
	// for this algorithm.
	require.Equal(t, uint32(0x02cc5d05), Checksum(nil))
}

func TestDeterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	require.Equal(t, Checksum(data), Checksum(data))
}

func TestSeedChangesDigest(t *testing.T) {
	data := []byte("hello world")
	require.NotEqual(t, ChecksumSeed(data, 0), ChecksumSeed(data, 1))
}

func TestLongInputExercisesMainLoop(t *testing.T) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i)
	}
	// No panics, and two independent calls agree.
	require.Equal(t, Checksum(data), Checksum(data))
}
