// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"bytes"
	"compress/bzip2"
	"compress/zlib"
	"testing"

	"github.com/golang/snappy"
	lz4 "github.com/pierrec/lz4/v4"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/colblock/sstread/status"
)

var corpus = [][]byte{
	[]byte("hello world"),
	[]byte(""),
	bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 200),
	{0, 0, 0, 0, 0, 0, 0, 0},
}

func TestSnappyRoundTrip(t *testing.T) {
	for _, b := range corpus {
		compressed := snappy.Encode(nil, b)
		out, err := Decompress(CompressionSnappy, 0, compressed, ReaderOptions{})
		require.NoError(t, err)
		require.Equal(t, b, out)
	}
}

func TestZlibRoundTrip(t *testing.T) {
	for _, b := range corpus {
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		_, err := w.Write(b)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		out, err := Decompress(CompressionZlib, 0, buf.Bytes(), ReaderOptions{})
		require.NoError(t, err)
		require.Equal(t, b, out)
	}
}

func TestBzip2RejectsNonBzip2Data(t *testing.T) {
	// compress/bzip2 is decode-only in the standard library, so no encoder
	// is available to build a round trip; this test validates the
	// not-bzip2-data failure path, the one deterministic bzip2 behavior
	// testable without an external encoder.
	_, err := Decompress(CompressionBzip2, 0, []byte("not bzip2 data"), ReaderOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "BZip2")
	_ = bzip2.NewReader
}

func TestLZ4RoundTrip(t *testing.T) {
	for _, b := range corpus {
		dst := make([]byte, lz4.CompressBlockBound(len(b)))
		n, err := lz4.CompressBlock(b, dst, nil)
		require.NoError(t, err)
		compressed := dst[:n]
		if n == 0 {
			// incompressible or empty input: pierrec returns n=0 to signal
			// "store uncompressed"; skip, this module's callers never
			// produce that framing for a block trailer already tagged
			// CompressionLz4.
			continue
		}
		out, err := Decompress(CompressionLz4, 0, compressed, ReaderOptions{})
		require.NoError(t, err)
		require.Equal(t, b, out)
	}
}

func TestZstdRoundTripPureGo(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	for _, b := range corpus {
		compressed := enc.EncodeAll(b, nil)
		out, err := Decompress(CompressionZstd, 0, compressed, ReaderOptions{})
		require.NoError(t, err)
		require.Equal(t, b, out)
	}
}

func TestXpressUnsupported(t *testing.T) {
	_, err := Decompress(CompressionXpress, 0, []byte{1, 2, 3}, ReaderOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "XPRESS not supported")
	code, ok := status.GetCode(err)
	require.True(t, ok)
	require.Equal(t, status.CodeNotSupported, code)
}

func TestUnknownCompressionType(t *testing.T) {
	_, err := GetDecompressor(CompressionIndicator(0xfe), 0, ReaderOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad block type")
}

func TestNoneRoundTrip(t *testing.T) {
	b := []byte("raw bytes")
	out, err := Decompress(CompressionNone, 0, b, ReaderOptions{})
	require.NoError(t, err)
	require.Equal(t, b, out)
}
