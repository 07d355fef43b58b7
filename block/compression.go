// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import "github.com/colblock/sstread/status"

// CompressionIndicator is the single byte stored immediately after a
// block's payload (and before the trailer checksum) identifying which codec
// produced the payload.
type CompressionIndicator byte

const (
	CompressionNone CompressionIndicator = 0
	CompressionSnappy CompressionIndicator = 1
	CompressionZlib CompressionIndicator = 2
	CompressionBzip2 CompressionIndicator = 3
	CompressionLz4 CompressionIndicator = 4
	CompressionLz4hc CompressionIndicator = 5
	CompressionXpress CompressionIndicator = 6
	CompressionZstd CompressionIndicator = 7
)

func (c CompressionIndicator) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionSnappy:
		return "Snappy"
	case CompressionZlib:
		return "Zlib"
	case CompressionBzip2:
		return "Bzip2"
	case CompressionLz4:
		return "LZ4"
	case CompressionLz4hc:
		return "LZ4HC"
	case CompressionXpress:
		return "XPRESS"
	case CompressionZstd:
		return "ZSTD"
	default:
		return "Unknown"
	}
}

// Decompressor decodes one codec's framing of a compressed block payload.
// FormatVersion is threaded through for codecs whose on-disk framing varies
// across table format versions; none of the codecs wired in this module
// currently branch on it.
type Decompressor interface {
	// DecompressedLen reports the size of the decompressed payload encoded
	// in src, without fully decoding it, when the codec's framing makes that
	// possible (Snappy prefixes a length). Codecs without a cheap length
	// prefix, LZ4 among them, report -1 and the caller must decompress into
	// a growable buffer.
	DecompressedLen(src []byte) (int, error)
	// DecompressInto decodes src into dst, which callers size using
	// DecompressedLen when it returns a length, and resize/reallocate
	// otherwise.
	DecompressInto(dst, src []byte) ([]byte, error)
}

// ReaderOptions influences decompressor selection; see GetDecompressor.
type ReaderOptions struct {
	// PreferCgoZstd selects the cgo-backed github.com/DataDog/zstd
	// decompressor over the pure-Go klauspost/compress/zstd one.
	PreferCgoZstd bool
}

// GetDecompressor returns the Decompressor for ctype, or a Corruption error
// ("bad block type") for an unrecognized compression tag. XPRESS, which has
// no available decoder, gets a Decompressor whose methods return a
// NotSupported error.
func GetDecompressor(ctype CompressionIndicator, formatVersion uint32, opts ReaderOptions) (Decompressor, error) {
	switch ctype {
	case CompressionNone:
		return noopDecompressor{}, nil
	case CompressionSnappy:
		return snappyDecompressor{}, nil
	case CompressionZlib:
		return zlibDecompressor{}, nil
	case CompressionBzip2:
		return bzip2Decompressor{}, nil
	case CompressionLz4, CompressionLz4hc:
		return lz4Decompressor{}, nil
	case CompressionXpress:
		return xpressDecompressor{}, nil
	case CompressionZstd:
		if opts.PreferCgoZstd {
			return cgoZstdDecompressor{}, nil
		}
		return zstdDecompressor{}, nil
	default:
		return nil, status.Corruption("bad block type: %d", ctype)
	}
}

// Decompress is a convenience wrapper that looks up the decompressor for
// ctype and decodes src in one call.
func Decompress(ctype CompressionIndicator, formatVersion uint32, src []byte, opts ReaderOptions) ([]byte, error) {
	dec, err := GetDecompressor(ctype, formatVersion, opts)
	if err != nil {
		return nil, err
	}
	n, lenErr := dec.DecompressedLen(src)
	var dst []byte
	if lenErr == nil && n >= 0 {
		dst = make([]byte, n)
	}
	out, err := dec.DecompressInto(dst, src)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type noopDecompressor struct{}

func (noopDecompressor) DecompressedLen(src []byte) (int, error) { return len(src), nil }
func (noopDecompressor) DecompressInto(dst, src []byte) ([]byte, error) {
	if dst == nil {
		dst = make([]byte, len(src))
	}
	copy(dst, src)
	return dst[:len(src)], nil
}
