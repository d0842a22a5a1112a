/*
* Common functions library
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
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

const DefaultBlockSize = 1048576

var ErrFileTooLarge = errors.New("file exceeds configured size limit")

// Histogram holds the number of occurrences of every byte value.
type Histogram [256]int

// Total returns the sum of all bins.
func (h *Histogram) Total() int {
	var total int
	for _, c := range h {
		total += c
	}
	return total
}

func CountBytes(data []byte) Histogram {
	var counter Histogram
	for _, b := range data {
		counter[b]++
	}
	return counter
}

func widenBytes(data []byte) []float64 {
	signal := make([]float64, len(data))
	for i, b := range data {
		signal[i] = float64(b)
	}
	return signal
}

// ReadFile loads the whole file through a buffered reader of blockSize bytes.
// A maxSize above zero rejects larger files before reading them.
func ReadFile(filename string, blockSize int, maxSize int64) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %s", filename)
	}
	defer file.Close()

	fileStat, err := file.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "error reading attributes of %s", filename)
	}

	fsize := fileStat.Size()
	if maxSize > 0 && fsize > maxSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes", filename, fsize)
	}

	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	reader := bufio.NewReaderSize(file, blockSize)
	data := make([]byte, 0, fsize)
	buffer := make([]byte, blockSize)

	for {
		bytesRead, err := reader.Read(buffer)
		data = append(data, buffer[:bytesRead]...)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrapf(err, "error reading %s", filename)
		}

		if maxSize > 0 && int64(len(data)) > maxSize {
			return nil, errors.Wrapf(ErrFileTooLarge, "%s grew past %d bytes", filename, maxSize)
		}
	}

	return data, nil
}
