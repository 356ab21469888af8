/*
 * files.go, part of goparm.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goParm is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package parm

import (
	"compress/bzip2"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Amber installations ship several of the big parameter files gzipped,
//and it is handy to keep local ones compressed too, so every reader in
//this package opens files through zopen, which picks a decompressor
//from the file name.

type zreadcloser struct {
	io.Reader
	closers []io.Closer
}

func (z *zreadcloser) Close() error {
	var first error
	for _, c := range z.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

//why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (s zstdql) Close() error {
	s.closeql()
	return nil
}

//zopen opens a text file, transparently decompressing .gz, .zst and
//.bz2 files.
func zopen(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &zreadcloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &zreadcloser{Reader: zr, closers: []io.Closer{zstdql{zr.Close, zr}, f}}, nil
	case strings.HasSuffix(name, ".bz2"):
		return &zreadcloser{Reader: bzip2.NewReader(f), closers: []io.Closer{f}}, nil
	}
	return f, nil
}

type zwritecloser struct {
	io.Writer
	closers []io.Closer
}

func (z *zwritecloser) Close() error {
	var first error
	for _, c := range z.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

//zcreate creates a text file, compressing it if the name ends in .gz or
//.zst.
func zcreate(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz := gzip.NewWriter(f)
		return &zwritecloser{Writer: gz, closers: []io.Closer{gz, f}}, nil
	case strings.HasSuffix(name, ".zst"):
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &zwritecloser{Writer: zw, closers: []io.Closer{zw, f}}, nil
	}
	return f, nil
}
