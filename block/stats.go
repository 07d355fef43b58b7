// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Logger defines the minimal logging seam the read path writes to: cache
// probe failures other than "not found" are reported at Infof.
type Logger interface {
	Infof(format string, args ...interface{})
}

// DefaultLogger logs to the Go standard library's log package.
type DefaultLogger struct{}

// Infof implements Logger.
func (DefaultLogger) Infof(format string, args ...interface{}) {
	_ = log.Output(2, fmt.Sprintf(format, args...))
}

// Stats holds the optional performance counters the read path updates.
// Every field is a Prometheus metric and is nil-checked before use, so a
// caller that does not care about metrics can leave Stats entirely zero.
type Stats struct {
	BlockReadTime  prometheus.Histogram
	BlockReadCount prometheus.Counter
	BlockReadBytes prometheus.Counter
	ChecksumTime   prometheus.Histogram

	DecompressionTime  prometheus.Histogram
	BytesDecompressed  prometheus.Counter
	BlocksDecompressed prometheus.Counter

	// DetailedTimingEnabled gates DecompressionTime/BytesDecompressed
	// recording, mirroring the statistics-level check that must pass
	// before the reference implementation emits its own detailed timers.
	DetailedTimingEnabled bool
}

func (s *Stats) recordBlockRead(d time.Duration, n int) {
	if s == nil {
		return
	}
	if s.BlockReadTime != nil {
		s.BlockReadTime.Observe(d.Seconds())
	}
	if s.BlockReadCount != nil {
		s.BlockReadCount.Inc()
	}
	if s.BlockReadBytes != nil {
		s.BlockReadBytes.Add(float64(n))
	}
}

func (s *Stats) recordChecksum(d time.Duration) {
	if s == nil || s.ChecksumTime == nil {
		return
	}
	s.ChecksumTime.Observe(d.Seconds())
}

func (s *Stats) recordDecompression(d time.Duration, n int) {
	if s == nil || !s.DetailedTimingEnabled {
		return
	}
	if s.DecompressionTime != nil {
		s.DecompressionTime.Observe(d.Seconds())
	}
	if s.BytesDecompressed != nil {
		s.BytesDecompressed.Add(float64(n))
	}
	if s.BlocksDecompressed != nil {
		s.BlocksDecompressed.Inc()
	}
}

// RecordBlockRead is the exported entry point used by callers outside this
// package (the top-level read contexts) to update block-read counters.
func (s *Stats) RecordBlockRead(d time.Duration, n int) { s.recordBlockRead(d, n) }

// RecordChecksum is the exported entry point for checksum timing.
func (s *Stats) RecordChecksum(d time.Duration) { s.recordChecksum(d) }

// RecordDecompression is the exported entry point for decompression timing.
func (s *Stats) RecordDecompression(d time.Duration, n int) { s.recordDecompression(d, n) }
