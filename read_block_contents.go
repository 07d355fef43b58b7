// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstread

import (
	"context"
	"time"

	"github.com/colblock/sstread/block"
	"github.com/colblock/sstread/status"
)

// readBlockContentsContext is the top-level composer: it checks the
// persistent cache, drives a readBlockContext on a miss, optionally
// decompresses, and optionally fills the persistent cache, producing a
// block.Contents value.
type readBlockContentsContext struct {
	file          FileReader
	checksumType  block.ChecksumType
	formatVersion uint32
	h             block.Handle
	opts          ReaderOptions
	readOpts      ReadOptions
}

// checkPersistentCache implements §4.8 step 1. It returns (contents, true,
// nil) on a direct uncompressed-cache hit (nothing further to do); (nil,
// false, raw) where raw is non-nil on a raw-cache hit (proceed straight to
// decompression); or (nil, false, nil) on a full miss (go read the file).
func (c *readBlockContentsContext) checkPersistentCache() (block.Contents, bool, []byte) {
	if c.opts.UncompressedCache != nil {
		contents, err := c.opts.UncompressedCache.LookupUncompressed(c.h)
		if err == nil {
			return contents, true, nil
		}
		if !status.IsNotFound(err) {
			c.opts.logger().Infof("Error reading from persistent cache: %v", err)
		}
		return block.Contents{}, false, nil
	}

	if c.opts.CompressedCache != nil {
		buf := make([]byte, int(c.h.Length)+block.TrailerLen)
		n, err := c.opts.CompressedCache.LookupRaw(c.h, buf)
		if err == nil && n == len(buf) {
			return block.Contents{}, false, buf
		}
		if err != nil && !status.IsNotFound(err) {
			c.opts.logger().Infof("Error reading from persistent cache: %v", err)
		}
	}

	return block.Contents{}, false, nil
}

// finish implements §4.8 steps 3-5 given the raw bytes (payload + trailer)
// for the block, however they were obtained. fromCache indicates the raw
// bytes came from the compressed persistent cache rather than a fresh disk
// read, which skips the raw-cache-insert step (it would just be writing
// back what was just read from the same cache).
func (c *readBlockContentsContext) finish(raw []byte, fromCache bool) (block.Contents, error) {
	n := int(c.h.Length)

	if !fromCache && c.readOpts.FillCache && c.opts.CompressedCache != nil {
		if err := c.opts.CompressedCache.InsertRaw(c.h, raw); err != nil {
			c.opts.logger().Infof("Error inserting into persistent cache: %v", err)
		}
	}

	ctype := block.CompressionIndicator(raw[n])

	var contents block.Contents
	if c.readOpts.DecompressionRequested && ctype != block.CompressionNone {
		decompressStart := time.Now()
		decompressed, err := block.Decompress(ctype, c.formatVersion, raw[:n], c.opts.Compression)
		if err != nil {
			return block.Contents{}, err
		}
		c.opts.Stats.RecordDecompression(time.Since(decompressStart), len(decompressed))
		contents = block.NewOwned(decompressed, block.CompressionNone)
	} else {
		// raw is a buffer owned by this request (either the ReadBlock
		// scratch or the compressed-cache lookup buffer); the payload is
		// copied out of it, without the trailer, into an owned, cachable
		// Contents. A FileReader that instead handed back a view into its own
		// internal buffer cannot arise here: ReadAt's signature only ever
		// writes into the slice the caller supplied.
		contents = block.NewOwned(append([]byte(nil), raw[:n]...), ctype)
	}

	if c.readOpts.FillCache && c.opts.UncompressedCache != nil {
		if err := c.opts.UncompressedCache.InsertUncompressed(c.h, contents); err != nil {
			c.opts.logger().Infof("Error inserting into persistent cache: %v", err)
		}
	}

	return contents, nil
}

// ReadBlockContents synchronously resolves the contents of the block at h:
// persistent cache probe, then disk read on a miss, then checksum verify,
// then optional decompression, then optional cache fill.
func ReadBlockContents(ctx context.Context, file FileReader, footer Footer, opts ReaderOptions, readOpts ReadOptions, h block.Handle) (block.Contents, error) {
	c := &readBlockContentsContext{
		file:          file,
		checksumType:  footer.ChecksumType,
		formatVersion: footer.FormatVersion,
		h:             h,
		opts:          opts,
		readOpts:      readOpts,
	}

	if contents, hit, raw := c.checkPersistentCache(); hit {
		return contents, nil
	} else if raw != nil {
		return c.finish(raw, true)
	}

	scratch := make([]byte, int(h.Length)+block.TrailerLen)
	raw, err := ReadBlock(ctx, file, footer.ChecksumType, readOpts.VerifyChecksums, h, scratch, opts.Stats)
	if err != nil {
		return block.Contents{}, err
	}
	return c.finish(raw, false)
}

// ReadBlockContentsAsync is the cooperative-asynchronous counterpart to
// ReadBlockContents. Persistent cache probing and cache-fill are always
// synchronous (the PersistentCache interface has no async variant); only
// the disk read, when required, may defer. If it returns
// status.ErrIOPending, cb fires exactly once, later, with Async=true on any
// resulting error.
func ReadBlockContentsAsync(file FileReader, footer Footer, opts ReaderOptions, readOpts ReadOptions, h block.Handle, cb func(block.Contents, error)) (block.Contents, error) {
	c := &readBlockContentsContext{
		file:          file,
		checksumType:  footer.ChecksumType,
		formatVersion: footer.FormatVersion,
		h:             h,
		opts:          opts,
		readOpts:      readOpts,
	}

	if contents, hit, raw := c.checkPersistentCache(); hit {
		return contents, nil
	} else if raw != nil {
		contents, err := c.finish(raw, true)
		return contents, err
	}

	scratch := make([]byte, int(h.Length)+block.TrailerLen)
	raw, err := ReadBlockAsync(file, footer.ChecksumType, readOpts.VerifyChecksums, h, scratch, opts.Stats, func(raw []byte, readErr error) {
		if readErr != nil {
			if se, ok := status.AsError(readErr); ok {
				readErr = se.WithAsync(true)
			}
			cb(block.Contents{}, readErr)
			return
		}
		contents, finishErr := c.finish(raw, false)
		if finishErr != nil {
			if se, ok := status.AsError(finishErr); ok {
				finishErr = se.WithAsync(true)
			}
		}
		cb(contents, finishErr)
	})
	if status.IsIOPending(err) {
		return block.Contents{}, status.ErrIOPending
	}
	if err != nil {
		return block.Contents{}, err
	}
	return c.finish(raw, false)
}
