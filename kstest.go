/*
* Kolmogorov test module
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

// KsTest returns the Kolmogorov-Smirnov statistic of the byte distribution
// against the uniform CDF together with the byte value where the largest
// deviation was found.
func KsTest(totalCounter *Histogram, readBytesCount int) (float64, int) {
	if readBytesCount == 0 {
		return 0, 0
	}

	var empiricalCumSum, ksStatistic float64
	maxDiffPosition := 0

	for i, count := range totalCounter {
		empiricalCumSum += float64(count) / float64(readBytesCount)
		theoretical := float64(i+1) / 256

		if diff := math.Abs(empiricalCumSum - theoretical); diff > ksStatistic {
			ksStatistic = diff
			maxDiffPosition = i
		}
	}

	return ksStatistic, maxDiffPosition
}

// KsCriticalValues returns the 1% and 5% critical values for n samples.
func KsCriticalValues(readBytesCount int) (float64, float64) {
	if readBytesCount == 0 {
		return 0, 0
	}
	n := math.Sqrt(float64(readBytesCount))
	return 1.63 / n, 1.36 / n
}
