/*
* Wavelet decomposition test module
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
	"math/bits"

	"github.com/montanaflynn/stats"
)

const (
	// HaarFilterLength is the number of taps in the Haar decomposition filters.
	HaarFilterLength = 2

	// MaxWaveletLevel bounds the decomposition depth.
	MaxWaveletLevel = 3

	// MinWaveletSamples is the shortest signal the wavelet measure accepts.
	MinWaveletSamples = 8
)

// MaxDecompositionLevel is the deepest level at which a signal of dataLen
// samples can still be split by a filter of filterLen taps.
func MaxDecompositionLevel(dataLen, filterLen int) int {
	if filterLen < 2 || dataLen < filterLen-1 {
		return 0
	}
	q := dataLen / (filterLen - 1)
	return bits.Len(uint(q)) - 1
}

// DecompositionLevels clamps MaxWaveletLevel to what dataLen supports.
func DecompositionLevels(dataLen int) int {
	return min(MaxWaveletLevel, MaxDecompositionLevel(dataLen, HaarFilterLength))
}

// HaarStep splits signal into approximation and detail halves. Odd lengths
// are extended symmetrically by repeating the last sample.
func HaarStep(signal []float64) ([]float64, []float64) {
	n := (len(signal) + 1) / 2
	approx := make([]float64, n)
	detail := make([]float64, n)

	for i := 0; i < n; i++ {
		a := signal[2*i]
		b := a
		if 2*i+1 < len(signal) {
			b = signal[2*i+1]
		}
		approx[i] = (a + b) / math.Sqrt2
		detail[i] = (a - b) / math.Sqrt2
	}

	return approx, detail
}

// WaveletDecompose performs a multi-level Haar decomposition and returns the
// coefficient arrays ordered as [cA_n, cD_n, ..., cD_1].
func WaveletDecompose(signal []float64, level int) [][]float64 {
	if level <= 0 || len(signal) == 0 {
		return nil
	}

	details := make([][]float64, 0, level)
	approx := signal
	for i := 0; i < level; i++ {
		var detail []float64
		approx, detail = HaarStep(approx)
		details = append(details, detail)
	}

	coeffs := make([][]float64, 0, level+1)
	coeffs = append(coeffs, approx)
	for i := len(details) - 1; i >= 0; i-- {
		coeffs = append(coeffs, details[i])
	}
	return coeffs
}

// WaveletMaxCoefficient returns the largest coefficient magnitude across all
// levels of the Haar decomposition of data. Signals shorter than
// MinWaveletSamples yield 0.
func WaveletMaxCoefficient(data []byte) float64 {
	if len(data) < MinWaveletSamples {
		return 0
	}

	level := DecompositionLevels(len(data))
	coeffs := WaveletDecompose(widenBytes(data), level)
	if len(coeffs) == 0 {
		return 0
	}

	var magnitudes stats.Float64Data
	for _, coeff := range coeffs {
		for _, c := range coeff {
			magnitudes = append(magnitudes, math.Abs(c))
		}
	}

	maxCoeff, err := magnitudes.Max()
	if err != nil {
		return 0
	}
	return maxCoeff
}
