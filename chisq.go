/*
* Pearson chi-squared test module
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

// ChiSqTest computes Pearson's statistic of the counted bytes against a
// uniform distribution over all 256 values. Empty input yields 0.
func ChiSqTest(totalCounter *Histogram, readBytesCount int) float64 {
	if readBytesCount == 0 {
		return 0
	}

	expected := float64(readBytesCount) / 256

	var chiSquare, diff float64
	for _, count := range totalCounter {
		diff = float64(count) - expected
		chiSquare += diff * diff / expected
	}
	return chiSquare
}
