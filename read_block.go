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

// readBlockContext reads one block by its Handle, validates its trailer
// checksum (if requested), and yields the raw bytes (payload + trailer).
type readBlockContext struct {
	rrc *randomReadContext

	checksumType    block.ChecksumType
	verifyChecksums bool
	handle          block.Handle
	scratch         []byte

	stats *block.Stats
}

func newReadBlockContext(file FileReader, checksumType block.ChecksumType, verifyChecksums bool, h block.Handle, scratch []byte, stats *block.Stats) *readBlockContext {
	readLen := int(h.Length) + block.TrailerLen
	return &readBlockContext{
		rrc:             newRandomReadContext(file, int64(h.Offset), readLen),
		checksumType:    checksumType,
		verifyChecksums: verifyChecksums,
		handle:          h,
		scratch:         scratch[:readLen],
		stats:           stats,
	}
}

// finish validates the read result (length, then optionally checksum) and
// returns the raw block bytes (payload + trailer) on success. It always
// updates block-read counters, win or lose.
func (bc *readBlockContext) finish(readStart time.Time) ([]byte, error) {
	bc.stats.RecordBlockRead(time.Since(readStart), len(bc.rrc.result))

	wantLen := int(bc.handle.Length) + block.TrailerLen
	if len(bc.rrc.result) != wantLen {
		return nil, status.Corruption("truncated block read")
	}
	if bc.verifyChecksums {
		checkStart := time.Now()
		err := block.ValidateChecksum(bc.checksumType, bc.rrc.result)
		bc.stats.RecordChecksum(time.Since(checkStart))
		if err != nil {
			return nil, err
		}
	}
	return bc.rrc.result, nil
}

// ReadBlock synchronously reads the raw bytes (payload + trailer) for h,
// validating the trailer checksum when verifyChecksums is true. scratch
// must be at least h.Length+block.TrailerLen bytes.
func ReadBlock(ctx context.Context, file FileReader, checksumType block.ChecksumType, verifyChecksums bool, h block.Handle, scratch []byte, stats *block.Stats) ([]byte, error) {
	bc := newReadBlockContext(file, checksumType, verifyChecksums, h, scratch, stats)
	start := time.Now()
	if err := bc.rrc.read(ctx, bc.scratch); err != nil {
		bc.stats.RecordBlockRead(time.Since(start), 0)
		return nil, err
	}
	return bc.finish(start)
}

// ReadBlockAsync is the cooperative-asynchronous counterpart to ReadBlock.
func ReadBlockAsync(file FileReader, checksumType block.ChecksumType, verifyChecksums bool, h block.Handle, scratch []byte, stats *block.Stats, cb func([]byte, error)) ([]byte, error) {
	bc := newReadBlockContext(file, checksumType, verifyChecksums, h, scratch, stats)
	start := time.Now()
	err := bc.rrc.requestRead(bc.scratch, func(readErr error) {
		if readErr != nil {
			bc.stats.RecordBlockRead(time.Since(start), 0)
			if se, ok := status.AsError(readErr); ok {
				readErr = se.WithAsync(true)
			}
			cb(nil, readErr)
			return
		}
		data, finishErr := bc.finish(start)
		if finishErr != nil {
			if se, ok := status.AsError(finishErr); ok {
				finishErr = se.WithAsync(true)
			}
		}
		cb(data, finishErr)
	})
	if status.IsIOPending(err) {
		return nil, status.ErrIOPending
	}
	if err != nil {
		return nil, err
	}
	return bc.finish(start)
}
