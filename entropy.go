/*
* Entropy estimation test module
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
	"math"
)

// EntropyEstimation returns the Shannon entropy of the counted bytes in bits
// per byte, from 0 for constant data up to 8 for a uniform distribution.
func EntropyEstimation(totalCounter *Histogram, readBytesCount int) float64 {
	if readBytesCount == 0 {
		return 0
	}

	var p, entropy float64
	for _, count := range totalCounter {
		if count == 0 {
			continue
		}
		p = float64(count) / float64(readBytesCount)
		entropy += p * math.Log2(p)
	}

	// -0 for constant data
	if entropy == 0 {
		return 0
	}
	return -entropy
}
