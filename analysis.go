/*
* Analysis pipeline module
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
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

const (
	MeasureEntropy           = "entropy"
	MeasureChiSquare         = "chi_square"
	MeasureWavelet           = "wavelet_max_coefficient"
	MeasureMonteCarlo        = "monte_carlo_pi_estimate"
	MeasureMean              = "arithmetic_mean"
	MeasureSerialCorrelation = "serial_correlation"
	MeasureKolmogorov        = "ks_statistic"
	MeasureCompression       = "compression_ratio"
)

// Result is the statistical profile of one file.
type Result struct {
	FileName   string `json:"file_name"`
	Path       string `json:"path,omitempty"`
	ScanID     string `json:"scan_id,omitempty"`
	ByteLength uint64 `json:"byte_length"`
	Digest     string `json:"blake3,omitempty"`
	MIME       string `json:"mime,omitempty"`

	Entropy               float64 `json:"entropy"`
	ChiSquare             float64 `json:"chi_square"`
	WaveletMaxCoefficient float64 `json:"wavelet_max_coefficient"`
	MonteCarloPiEstimate  float64 `json:"monte_carlo_pi_estimate"`

	Extended *ExtendedResult `json:"extended,omitempty"`

	// NotApplicable lists measures whose input was too short, their 0 is
	// a placeholder rather than a measurement.
	NotApplicable []string `json:"not_applicable,omitempty"`

	// Failed lists measures that panicked or produced a non-finite value.
	Failed []string `json:"failed,omitempty"`
}

type ExtendedResult struct {
	ArithmeticMean    float64 `json:"arithmetic_mean"`
	SerialCorrelation float64 `json:"serial_correlation"`
	KsStatistic       float64 `json:"ks_statistic"`
	KsPosition        int     `json:"ks_position"`
	CompressionRatio  float64 `json:"compression_ratio"`
}

// Applicable reports whether the named measure holds a computed value.
func (r *Result) Applicable(name string) bool {
	for _, m := range r.NotApplicable {
		if m == name {
			return false
		}
	}
	for _, m := range r.Failed {
		if m == name {
			return false
		}
	}
	return true
}

type AnalyzerOptions struct {
	// Extended enables the supplementary measures.
	Extended bool

	// Identify attaches a BLAKE3 digest and sniffed MIME type.
	Identify bool
}

// Analyzer applies every measure to one in-memory buffer. It holds no state
// between calls and is safe for concurrent use.
type Analyzer struct {
	log  hclog.Logger
	opts AnalyzerOptions
}

func NewAnalyzer(log hclog.Logger, opts AnalyzerOptions) *Analyzer {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Analyzer{log: log, opts: opts}
}

type measure struct {
	name string

	// minLen is the shortest input the measure is defined for.
	minLen int

	fn   func() (float64, error)
	dest *float64
}

// run calls fn and converts panics and non-finite values into errors.
func (m measure) run() (value float64, err error) {
	defer func() {
		if v := recover(); v != nil {
			value = 0
			err = errors.Errorf("%s panicked: %v", m.name, v)
		}
	}()

	value, err = m.fn()
	if err != nil {
		return 0, errors.Wrapf(err, "%s", m.name)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.Errorf("%s produced non-finite value %v", m.name, value)
	}

	return value, nil
}

func plain(fn func() float64) func() (float64, error) {
	return func() (float64, error) {
		return fn(), nil
	}
}

// Analyze computes the profile of data. name is only used for display.
func (a *Analyzer) Analyze(name string, data []byte) *Result {
	start := time.Now()

	res := &Result{
		FileName:   name,
		ByteLength: uint64(len(data)),
	}

	counter := CountBytes(data)
	total := len(data)

	measures := []measure{
		{MeasureEntropy, 1, plain(func() float64 { return EntropyEstimation(&counter, total) }), &res.Entropy},
		{MeasureChiSquare, 1, plain(func() float64 { return ChiSqTest(&counter, total) }), &res.ChiSquare},
		{MeasureWavelet, MinWaveletSamples, plain(func() float64 { return WaveletMaxCoefficient(data) }), &res.WaveletMaxCoefficient},
		{MeasureMonteCarlo, 2, plain(func() float64 { return MonteCarloPi(data) }), &res.MonteCarloPiEstimate},
	}

	if a.opts.Extended {
		ext := &ExtendedResult{}
		res.Extended = ext

		ksTest := func() float64 {
			var stat float64
			stat, ext.KsPosition = KsTest(&counter, total)
			return stat
		}

		measures = append(measures,
			measure{MeasureMean, 1, plain(func() float64 { return ArithmeticMean(data) }), &ext.ArithmeticMean},
			measure{MeasureSerialCorrelation, 2, plain(func() float64 { return SerialCorrelation(data) }), &ext.SerialCorrelation},
			measure{MeasureKolmogorov, 1, plain(ksTest), &ext.KsStatistic},
			measure{MeasureCompression, 1, func() (float64, error) { return CompressionTest(data) }, &ext.CompressionRatio},
		)
	}

	for _, m := range measures {
		if total < m.minLen {
			res.NotApplicable = append(res.NotApplicable, m.name)
			continue
		}

		value, err := m.run()
		if err != nil {
			a.log.Error("measure failed", "file", name, "measure", m.name, "error", err)
			measureFailures.WithLabelValues(m.name).Inc()
			res.Failed = append(res.Failed, m.name)
			continue
		}

		*m.dest = value
	}

	if a.opts.Identify {
		digest := blake3.Sum256(data)
		res.Digest = hex.EncodeToString(digest[:])
		res.MIME = mimetype.Detect(data).String()
	}

	analysisLatency.Observe(time.Since(start).Seconds())
	bytesAnalyzed.Add(float64(total))

	return res
}

func (r *Result) String() string {
	return fmt.Sprintf("%s (%d bytes): entropy=%g chi_square=%g wavelet=%g monte_carlo=%g",
		r.FileName, r.ByteLength, r.Entropy, r.ChiSquare, r.WaveletMaxCoefficient, r.MonteCarloPiEstimate)
}
