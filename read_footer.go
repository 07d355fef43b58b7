// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstread

import (
	"context"

	"github.com/colblock/sstread/status"
)

// readFooterContext orchestrates reading the last bytes of a file and
// decoding its footer, with optional magic-number enforcement.
type readFooterContext struct {
	rrc          *randomReadContext
	scratch      []byte
	enforceMagic uint64
}

func newReadFooterContext(file FileReader, fileSize int64, enforceMagic uint64) (*readFooterContext, error) {
	if fileSize < int64(MinEncodedLen) {
		return nil, status.Corruption("file is too short to be an sstable")
	}
	readLen := MaxEncodedLen
	if fileSize < int64(readLen) {
		readLen = int(fileSize)
	}
	offset := fileSize - int64(readLen)
	return &readFooterContext{
		rrc:          newRandomReadContext(file, offset, readLen),
		scratch:      make([]byte, readLen),
		enforceMagic: enforceMagic,
	}, nil
}

func (fc *readFooterContext) finish() (Footer, error) {
	if len(fc.rrc.result) < MinEncodedLen {
		return Footer{}, status.Corruption("file is too short to be an sstable")
	}
	footer, _, err := DecodeFooter(fc.rrc.result)
	if err != nil {
		return Footer{}, err
	}
	if fc.enforceMagic != 0 && footer.TableMagicNumber != fc.enforceMagic {
		return Footer{}, status.Corruption("bad table magic number")
	}
	return footer, nil
}

// ReadFooter synchronously reads and decodes the footer of a file of the
// given size. enforceMagic, if non-zero, must equal the decoded (already
// upconverted) magic number or the read fails.
func ReadFooter(ctx context.Context, file FileReader, fileSize int64, enforceMagic uint64) (Footer, error) {
	fc, err := newReadFooterContext(file, fileSize, enforceMagic)
	if err != nil {
		return Footer{}, err
	}
	if err := fc.rrc.read(ctx, fc.scratch); err != nil {
		return Footer{}, err
	}
	return fc.finish()
}

// ReadFooterAsync is the cooperative-asynchronous counterpart to ReadFooter.
// If it returns status.ErrIOPending, cb will be invoked exactly once, later,
// with the decoded footer and a nil error, or with an error whose Async
// field is true. Otherwise
// the footer (or error) is already final and cb is NOT invoked.
func ReadFooterAsync(file FileReader, fileSize int64, enforceMagic uint64, cb func(Footer, error)) (Footer, error) {
	fc, err := newReadFooterContext(file, fileSize, enforceMagic)
	if err != nil {
		return Footer{}, err
	}

	err = fc.rrc.requestRead(fc.scratch, func(readErr error) {
		if readErr != nil {
			if se, ok := status.AsError(readErr); ok {
				readErr = se.WithAsync(true)
			}
			cb(Footer{}, readErr)
			return
		}
		footer, finishErr := fc.finish()
		if finishErr != nil {
			if se, ok := status.AsError(finishErr); ok {
				finishErr = se.WithAsync(true)
			}
		}
		cb(footer, finishErr)
	})
	if status.IsIOPending(err) {
		return Footer{}, status.ErrIOPending
	}
	if err != nil {
		return Footer{}, err
	}
	return fc.finish()
}
