/*
* Wavelet and Monte Carlo test module tests
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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecompositionLevels(t *testing.T) {
	t.Run("max level follows signal length", func(t *testing.T) {
		r := require.New(t)

		r.Equal(0, MaxDecompositionLevel(0, HaarFilterLength))
		r.Equal(0, MaxDecompositionLevel(1, HaarFilterLength))
		r.Equal(1, MaxDecompositionLevel(2, HaarFilterLength))
		r.Equal(2, MaxDecompositionLevel(7, HaarFilterLength))
		r.Equal(3, MaxDecompositionLevel(8, HaarFilterLength))
		r.Equal(10, MaxDecompositionLevel(1024, HaarFilterLength))
		r.Equal(2, MaxDecompositionLevel(16, 5))
		r.Equal(0, MaxDecompositionLevel(16, 1))
	})

	t.Run("levels are clamped to three", func(t *testing.T) {
		r := require.New(t)

		r.Equal(2, DecompositionLevels(4))
		r.Equal(3, DecompositionLevels(8))
		r.Equal(3, DecompositionLevels(1<<20))
	})
}

func TestHaarStep(t *testing.T) {
	t.Run("even length", func(t *testing.T) {
		r := require.New(t)

		approx, detail := HaarStep([]float64{1, 3, 5, 5})
		r.InDeltaSlice([]float64{4 / math.Sqrt2, 10 / math.Sqrt2}, approx, 1e-12)
		r.InDeltaSlice([]float64{-2 / math.Sqrt2, 0}, detail, 1e-12)
	})

	t.Run("odd length repeats the last sample", func(t *testing.T) {
		r := require.New(t)

		approx, detail := HaarStep([]float64{1, 2, 3})
		r.InDeltaSlice([]float64{3 / math.Sqrt2, 6 / math.Sqrt2}, approx, 1e-12)
		r.InDeltaSlice([]float64{-1 / math.Sqrt2, 0}, detail, 1e-12)
	})
}

func TestWaveletDecompose(t *testing.T) {
	r := require.New(t)

	coeffs := WaveletDecompose(widenBytes(make([]byte, 8)), 3)
	r.Len(coeffs, 4)
	r.Len(coeffs[0], 1)
	r.Len(coeffs[1], 1)
	r.Len(coeffs[2], 2)
	r.Len(coeffs[3], 4)

	r.Nil(WaveletDecompose(nil, 3))
	r.Nil(WaveletDecompose([]float64{1, 2}, 0))
}

func TestWaveletMaxCoefficient(t *testing.T) {
	t.Run("short buffers are zero", func(t *testing.T) {
		r := require.New(t)

		for n := 0; n < MinWaveletSamples; n++ {
			r.Equal(0.0, WaveletMaxCoefficient(repeated(0xff, n)))
		}
	})

	t.Run("constant signal peaks in the approximation", func(t *testing.T) {
		// three levels of averaging scale a constant by sqrt(2)^3
		require.InDelta(t, 65*2*math.Sqrt2, WaveletMaxCoefficient(repeated(0x41, 1000)), 1e-9)
	})

	t.Run("single spike peaks in the first detail level", func(t *testing.T) {
		data := make([]byte, 8)
		data[7] = 255
		require.InDelta(t, 255/math.Sqrt2, WaveletMaxCoefficient(data), 1e-9)
	})

	t.Run("odd lengths decompose", func(t *testing.T) {
		require.InDelta(t, 10*2*math.Sqrt2, WaveletMaxCoefficient(repeated(10, 9)), 1e-9)
	})
}

func TestMonteCarloPi(t *testing.T) {
	t.Run("fewer than two bytes is zero", func(t *testing.T) {
		r := require.New(t)

		r.Equal(0.0, MonteCarloPi(nil))
		r.Equal(0.0, MonteCarloPi([]byte{0x80}))
	})

	t.Run("points near the origin are inside", func(t *testing.T) {
		require.Equal(t, 4.0, MonteCarloPi(repeated(0x41, 1000)))
	})

	t.Run("the far corner is outside", func(t *testing.T) {
		require.Equal(t, 0.0, MonteCarloPi(repeated(0xff, 10)))
	})

	t.Run("unit axis points are on the circle", func(t *testing.T) {
		require.Equal(t, 4.0, MonteCarloPi([]byte{255, 0, 0, 255}))
	})

	t.Run("trailing byte is ignored", func(t *testing.T) {
		r := require.New(t)

		r.Equal(2.0, MonteCarloPi([]byte{0, 0, 255, 255}))
		r.Equal(2.0, MonteCarloPi([]byte{0, 0, 255, 255, 255}))
	})

	t.Run("bounded and close to pi for random data", func(t *testing.T) {
		r := require.New(t)

		for _, n := range []int{2, 3, 17, 1000} {
			v := MonteCarloPi(randomBytes(t, n))
			r.GreaterOrEqual(v, 0.0)
			r.LessOrEqual(v, 4.0)
		}

		r.InDelta(math.Pi, MonteCarloPi(randomBytes(t, 1<<20)), 0.05)
	})
}

func BenchmarkWaveletMaxCoefficient(b *testing.B) {
	data := randomBytes(b, 1<<20)

	for i := 0; i < b.N; i++ {
		WaveletMaxCoefficient(data)
	}
}
