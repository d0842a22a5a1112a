/*
* Compression test module
* Copyright (C) 2025  Artem Stefankiv
*
* This program is free software: you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation, either version 3 of the License, or
* (at your option) any later version.
*
* This program is distributed in the hope that it will be useful,
* but WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
* GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package cipherscan

import (
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

var (
	zstdOnce    sync.Once
	zstdEncoder *zstd.Encoder
	zstdErr     error
)

// sharedZstdEncoder builds the encoder on first use. EncodeAll is safe for
// concurrent callers.
func sharedZstdEncoder() (*zstd.Encoder, error) {
	zstdOnce.Do(func() {
		zstdEncoder, zstdErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zstdErr != nil {
			zstdErr = errors.Wrapf(zstdErr, "error creating zstd encoder")
		}
	})
	return zstdEncoder, zstdErr
}

func lz4CompressedSize(data []byte) (int, error) {
	dest := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, dest, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "lz4 compression")
	}

	// incompressible input
	if n == 0 {
		return len(data), nil
	}
	return n, nil
}

func zstdCompressedSize(data []byte) (int, error) {
	enc, err := sharedZstdEncoder()
	if err != nil {
		return 0, err
	}
	return len(enc.EncodeAll(data, nil)), nil
}

// CompressionTest returns the average of the lz4 and zstd compression
// ratios, original size over compressed size. Values near or below 1 mean
// the data did not compress. Empty input yields 0.
func CompressionTest(data []byte) (float64, error) {
	if len(data) == 0 {
		return 0, nil
	}

	fileSize := float64(len(data))

	lz4Size, err := lz4CompressedSize(data)
	if err != nil {
		return 0, err
	}

	zstdSize, err := zstdCompressedSize(data)
	if err != nil {
		return 0, err
	}

	lz4Compression := fileSize / float64(lz4Size)
	zstdCompression := fileSize / float64(zstdSize)

	return (lz4Compression + zstdCompression) / 2.0, nil
}
