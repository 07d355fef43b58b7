// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command sstinspect dumps the footer and top-level block handles of an
// sstable file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/colblock/sstread"
	"github.com/colblock/sstread/internal/osfile"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verifyChecksums bool

	cmd := &cobra.Command{
		Use:   "sstinspect <path>",
		Short: "Inspect the footer and top-level blocks of an sstable file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(cmd.OutOrStdout(), args[0], verifyChecksums)
		},
	}
	cmd.Flags().BoolVar(&verifyChecksums, "verify-checksums", true, "validate block checksums while inspecting")
	return cmd
}

func inspect(w io.Writer, path string, verifyChecksums bool) error {
	f, err := osfile.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx := context.Background()
	footer, err := sstread.ReadFooter(ctx, f, f.Size(), 0)
	if err != nil {
		return fmt.Errorf("reading footer: %w", err)
	}

	fmt.Fprintf(w, "magic:          %#016x\n", footer.TableMagicNumber)
	fmt.Fprintf(w, "format version: %d\n", footer.FormatVersion)
	fmt.Fprintf(w, "checksum type:  %s\n", footer.ChecksumType)
	fmt.Fprintf(w, "metaindex:      offset=%d length=%d\n", footer.MetaindexHandle.Offset, footer.MetaindexHandle.Length)
	fmt.Fprintf(w, "index:          offset=%d length=%d\n", footer.IndexHandle.Offset, footer.IndexHandle.Length)

	opts := sstread.DefaultReaderOptions()
	readOpts := sstread.DefaultReadOptions()
	readOpts.VerifyChecksums = verifyChecksums
	readOpts.DecompressionRequested = false

	metaindex, err := sstread.ReadBlockContents(ctx, f, footer, opts, readOpts, footer.MetaindexHandle)
	if err != nil {
		return fmt.Errorf("reading metaindex block: %w", err)
	}
	fmt.Fprintf(w, "metaindex block: %d bytes, compression=%s\n", len(metaindex.Data), metaindex.CompressionType)

	index, err := sstread.ReadBlockContents(ctx, f, footer, opts, readOpts, footer.IndexHandle)
	if err != nil {
		return fmt.Errorf("reading index block: %w", err)
	}
	fmt.Fprintf(w, "index block:     %d bytes, compression=%s\n", len(index.Data), index.CompressionType)

	return nil
}
