/*
* Analysis pipeline tests
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

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	a := NewAnalyzer(hclog.NewNullLogger(), AnalyzerOptions{})

	t.Run("constant buffer", func(t *testing.T) {
		r := require.New(t)

		res := a.Analyze("const.bin", repeated(0x41, 1000))

		r.Equal("const.bin", res.FileName)
		r.Equal(uint64(1000), res.ByteLength)
		r.Equal(0.0, res.Entropy)
		r.InDelta(255000.0, res.ChiSquare, 1e-6)
		r.InDelta(65*2*math.Sqrt2, res.WaveletMaxCoefficient, 1e-9)
		r.Equal(4.0, res.MonteCarloPiEstimate)
		r.Empty(res.NotApplicable)
		r.Empty(res.Failed)
		r.Nil(res.Extended)
	})

	t.Run("every byte once", func(t *testing.T) {
		r := require.New(t)

		res := a.Analyze("uniform.bin", everyByteOnce())

		r.Equal(8.0, res.Entropy)
		r.Equal(0.0, res.ChiSquare)
	})

	t.Run("short buffers mark measures not applicable", func(t *testing.T) {
		r := require.New(t)

		res := a.Analyze("short.bin", []byte{1, 2, 3, 4, 5})
		r.Equal(0.0, res.WaveletMaxCoefficient)
		r.Equal([]string{MeasureWavelet}, res.NotApplicable)
		r.False(res.Applicable(MeasureWavelet))
		r.True(res.Applicable(MeasureEntropy))

		res = a.Analyze("one.bin", []byte{0x7f})
		r.Equal(0.0, res.MonteCarloPiEstimate)
		r.Contains(res.NotApplicable, MeasureMonteCarlo)
	})

	t.Run("empty buffer does not fail", func(t *testing.T) {
		r := require.New(t)

		res := a.Analyze("empty.bin", nil)

		r.Equal(uint64(0), res.ByteLength)
		r.Equal(0.0, res.Entropy)
		r.Equal(0.0, res.ChiSquare)
		r.Equal(0.0, res.WaveletMaxCoefficient)
		r.Equal(0.0, res.MonteCarloPiEstimate)
		r.Equal([]string{MeasureEntropy, MeasureChiSquare, MeasureWavelet, MeasureMonteCarlo}, res.NotApplicable)
		r.Empty(res.Failed)
	})

	t.Run("repeated calls are identical", func(t *testing.T) {
		r := require.New(t)

		data := randomBytes(t, 4096)
		r.Equal(a.Analyze("x", data), a.Analyze("x", data))
	})

	t.Run("random data stays within bounds", func(t *testing.T) {
		r := require.New(t)

		for _, n := range []int{2, 9, 333, 65536} {
			res := a.Analyze("rand", randomBytes(t, n))
			r.GreaterOrEqual(res.Entropy, 0.0)
			r.LessOrEqual(res.Entropy, 8.0)
			r.GreaterOrEqual(res.ChiSquare, 0.0)
			r.GreaterOrEqual(res.MonteCarloPiEstimate, 0.0)
			r.LessOrEqual(res.MonteCarloPiEstimate, 4.0)
		}
	})
}

func TestAnalyzeExtended(t *testing.T) {
	a := NewAnalyzer(hclog.NewNullLogger(), AnalyzerOptions{Extended: true, Identify: true})

	t.Run("supplementary measures are filled", func(t *testing.T) {
		r := require.New(t)

		res := a.Analyze("uniform.bin", everyByteOnce())

		r.NotNil(res.Extended)
		r.Equal(127.5, res.Extended.ArithmeticMean)
		r.InDelta(0.0, res.Extended.KsStatistic, 1e-12)
		r.Greater(res.Extended.SerialCorrelation, 0.9)
		r.Greater(res.Extended.CompressionRatio, 0.0)
		r.Len(res.Digest, 64)
		r.NotEmpty(res.MIME)
	})

	t.Run("empty buffer", func(t *testing.T) {
		r := require.New(t)

		res := a.Analyze("empty.bin", nil)
		r.Contains(res.NotApplicable, MeasureCompression)
		r.Contains(res.NotApplicable, MeasureSerialCorrelation)
		r.Empty(res.Failed)
	})
}

func TestMeasureRun(t *testing.T) {
	t.Run("panics become errors", func(t *testing.T) {
		r := require.New(t)

		var dest float64
		m := measure{"boom", 0, func() (float64, error) { panic("index out of range") }, &dest}

		v, err := m.run()
		r.Error(err)
		r.Equal(0.0, v)
	})

	t.Run("non-finite values are rejected", func(t *testing.T) {
		r := require.New(t)

		var dest float64
		m := measure{"nan", 0, plain(math.NaN), &dest}

		_, err := m.run()
		r.Error(err)
	})

	t.Run("errors are wrapped with the measure name", func(t *testing.T) {
		r := require.New(t)

		cause := errors.New("broken")
		m := measure{"wrapped", 0, func() (float64, error) { return 1, cause }, nil}

		_, err := m.run()
		r.ErrorIs(err, cause)
		r.Contains(err.Error(), "wrapped")
	})
}
