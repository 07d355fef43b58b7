// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstread

import (
	"context"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/require"

	"github.com/colblock/sstread/block"
	"github.com/colblock/sstread/internal/memfile"
	"github.com/colblock/sstread/internal/testcache"
	"github.com/colblock/sstread/status"
)

func footerFor(checksumType block.ChecksumType) Footer {
	return Footer{TableMagicNumber: blockBasedMagic, FormatVersion: 2, ChecksumType: checksumType}
}

func TestReadBlockContentsSnappyRoundTrip(t *testing.T) {
	compressed := snappy.Encode(nil, []byte("hello world"))
	file, h := buildBlockFile(t, nil, compressed, block.CompressionSnappy, block.ChecksumCRC32C)

	opts := DefaultReaderOptions()
	contents, err := ReadBlockContents(context.Background(), file, footerFor(block.ChecksumCRC32C), opts, DefaultReadOptions(), h)
	require.NoError(t, err)
	require.Equal(t, []byte("hello world"), contents.Data)
	require.Equal(t, block.CompressionNone, contents.CompressionType)
}

func TestReadBlockContentsUncompressedCacheHit(t *testing.T) {
	cache := testcache.NewUncompressed()
	h := block.Handle{Offset: 100, Length: 50}
	want := block.NewOwned([]byte("cached block payload here........................"), block.CompressionNone)
	require.NoError(t, cache.InsertUncompressed(h, want))

	file := memfile.New(nil) // deliberately empty/unreadable — must not be touched
	opts := DefaultReaderOptions()
	opts.UncompressedCache = cache

	contents, err := ReadBlockContents(context.Background(), file, footerFor(block.ChecksumCRC32C), opts, DefaultReadOptions(), h)
	require.NoError(t, err)
	require.Equal(t, want.Data, contents.Data)
	require.Equal(t, 0, file.ReadCount, "the file reader must never be invoked on an uncompressed cache hit")
}

func TestReadBlockContentsFillsRawCacheOnDiskRead(t *testing.T) {
	payload := []byte("raw cache fill test payload")
	file, h := buildBlockFile(t, nil, payload, block.CompressionNone, block.ChecksumCRC32C)

	cache := testcache.NewCompressed()
	opts := DefaultReaderOptions()
	opts.CompressedCache = cache
	readOpts := DefaultReadOptions()
	readOpts.FillCache = true

	_, err := ReadBlockContents(context.Background(), file, footerFor(block.ChecksumCRC32C), opts, readOpts, h)
	require.NoError(t, err)
	require.Equal(t, 1, cache.Inserts)
}

func TestReadBlockContentsRawCacheHitThenDiskUnavailable(t *testing.T) {
	payload := []byte("served from the raw cache, not the disk")
	_, h := buildBlockFile(t, nil, payload, block.CompressionNone, block.ChecksumCRC32C)

	cache := testcache.NewCompressed()
	raw := append(append([]byte{}, payload...), block.MakeTrailer(block.CompressionNone, block.Checksummer{Type: block.ChecksumCRC32C}.Compute(payload, byte(block.CompressionNone)))[:]...)
	require.NoError(t, cache.InsertRaw(h, raw))

	brokenFile := memfile.New(nil)
	brokenFile.FailNextReadAt = context.DeadlineExceeded

	opts := DefaultReaderOptions()
	opts.CompressedCache = cache
	readOpts := DefaultReadOptions()
	readOpts.FillCache = true

	contents, err := ReadBlockContents(context.Background(), brokenFile, footerFor(block.ChecksumCRC32C), opts, readOpts, h)
	require.NoError(t, err)
	require.Equal(t, payload, contents.Data)
	require.Equal(t, 0, brokenFile.ReadCount)
	require.Equal(t, 1, cache.Inserts, "a raw-cache hit must not re-insert into the same cache (the one insert is the seeding call above)")
}

func TestReadBlockContentsAsyncParityWithSync(t *testing.T) {
	payload := []byte("async parity check payload, long enough to matter")
	file, h := buildBlockFile(t, make([]byte, 13), payload, block.CompressionNone, block.ChecksumCRC32C)
	file.AlwaysDefer = true

	opts := DefaultReaderOptions()
	readOpts := DefaultReadOptions()

	done := make(chan struct{})
	var asyncContents block.Contents
	var asyncErr error
	_, err := ReadBlockContentsAsync(file, footerFor(block.ChecksumCRC32C), opts, readOpts, h, func(c block.Contents, e error) {
		asyncContents, asyncErr = c, e
		close(done)
	})
	require.True(t, status.IsIOPending(err))
	<-done
	require.NoError(t, asyncErr)

	file2, h2 := buildBlockFile(t, make([]byte, 13), payload, block.CompressionNone, block.ChecksumCRC32C)
	syncContents, err := ReadBlockContents(context.Background(), file2, footerFor(block.ChecksumCRC32C), opts, readOpts, h2)
	require.NoError(t, err)

	require.Equal(t, syncContents.Data, asyncContents.Data)
}
