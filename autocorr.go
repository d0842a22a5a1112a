/*
* Autocorrelation test module
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
	"github.com/montanaflynn/stats"
)

// ArithmeticMean is the average byte value; random data sits near 127.5.
func ArithmeticMean(data []byte) float64 {
	mean, err := stats.Mean(widenBytes(data))
	if err != nil {
		return 0
	}
	return mean
}

// SerialCorrelation returns the lag-1 autocorrelation coefficient of the
// byte stream. Fewer than two bytes or constant data yield 0.
func SerialCorrelation(data []byte) float64 {
	if len(data) < 2 {
		return 0
	}

	floatBuffer := widenBytes(data)

	correlation, err := stats.Correlation(floatBuffer[1:], floatBuffer[:len(floatBuffer)-1])
	if err != nil {
		return 0
	}
	return correlation
}
