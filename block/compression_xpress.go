// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import "github.com/colblock/sstread/status"

// xpressDecompressor has no backing implementation: XPRESS is a
// Windows-platform compression API with no Go implementation anywhere in
// this lineage's dependency graph, the broader example pack, or (as far as
// this module's authors could find) the wider Go ecosystem. The reference
// storage engine itself only supports XPRESS when built against a platform
// SDK providing it; everywhere else, reading an XPRESS-tagged block fails
// the same way this does.
type xpressDecompressor struct{}

func (xpressDecompressor) DecompressedLen(src []byte) (int, error) {
	return -1, status.NotSupported("XPRESS not supported or corrupted XPRESS compressed block contents")
}

func (xpressDecompressor) DecompressInto(dst, src []byte) ([]byte, error) {
	return nil, status.NotSupported("XPRESS not supported or corrupted XPRESS compressed block contents")
}
