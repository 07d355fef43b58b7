// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstread

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/colblock/sstread/block"
	"github.com/colblock/sstread/internal/memfile"
	"github.com/colblock/sstread/status"
)

func makeCurrentFooterFile(t *testing.T, f Footer, padding int) *memfile.File {
	t.Helper()
	data := make([]byte, padding)
	buf, err := f.Encode(data)
	require.NoError(t, err)
	return memfile.New(buf)
}

func TestReadFooterSync(t *testing.T) {
	want := Footer{
		TableMagicNumber: blockBasedMagic,
		FormatVersion:    2,
		ChecksumType:     block.ChecksumCRC32C,
		MetaindexHandle:  block.Handle{Offset: 10, Length: 20},
		IndexHandle:      block.Handle{Offset: 30, Length: 40},
	}
	file := makeCurrentFooterFile(t, want, 1000)

	got, err := ReadFooter(context.Background(), file, file.Size(), 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestReadFooterEnforceMagicMismatch(t *testing.T) {
	f := Footer{TableMagicNumber: blockBasedMagic, FormatVersion: 1, ChecksumType: block.ChecksumCRC32C}
	file := makeCurrentFooterFile(t, f, 200)

	_, err := ReadFooter(context.Background(), file, file.Size(), plainTableMagic)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad table magic number")
}

func TestReadFooterTooShortFile(t *testing.T) {
	file := memfile.New(make([]byte, 10))
	_, err := ReadFooter(context.Background(), file, file.Size(), 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "too short to be an sstable")
}

func TestReadFooterAsyncDeferred(t *testing.T) {
	want := Footer{
		TableMagicNumber: blockBasedMagic,
		FormatVersion:    3,
		ChecksumType:     block.ChecksumXXHash,
		MetaindexHandle:  block.Handle{Offset: 1, Length: 2},
		IndexHandle:      block.Handle{Offset: 3, Length: 4},
	}
	file := makeCurrentFooterFile(t, want, 500)
	file.AlwaysDefer = true

	var wg sync.WaitGroup
	wg.Add(1)
	var got Footer
	var cbErr error
	_, err := ReadFooterAsync(file, file.Size(), 0, func(f Footer, e error) {
		got, cbErr = f, e
		wg.Done()
	})
	require.True(t, status.IsIOPending(err))

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async callback never fired")
	}

	require.NoError(t, cbErr)
	require.Equal(t, want, got)
}

func TestReadFooterAsyncInline(t *testing.T) {
	want := Footer{TableMagicNumber: blockBasedMagic, FormatVersion: 1, ChecksumType: block.ChecksumCRC32C}
	file := makeCurrentFooterFile(t, want, 100)

	called := false
	got, err := ReadFooterAsync(file, file.Size(), 0, func(Footer, error) { called = true })
	require.NoError(t, err)
	require.False(t, called, "callback must not fire on the inline completion path")
	require.Equal(t, want, got)
}
