/*
* Result reporting
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
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Encoder writes one Result at a time.
type Encoder interface {
	Encode(r *Result) error
}

func NewEncoder(format string, w io.Writer) (Encoder, error) {
	switch format {
	case FormatText, "":
		return &textEncoder{w: w}, nil
	case FormatJSON:
		return jsonEncoder{json.NewEncoder(w)}, nil
	case FormatCBOR:
		return cborEncoder{cbor.NewEncoder(w)}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

type jsonEncoder struct {
	enc *json.Encoder
}

func (j jsonEncoder) Encode(r *Result) error {
	return j.enc.Encode(r)
}

type cborEncoder struct {
	enc *cbor.Encoder
}

func (c cborEncoder) Encode(r *Result) error {
	return c.enc.Encode(r)
}

var labelColor = color.New(color.Bold)

type textEncoder struct {
	w   io.Writer
	err error
}

func (t *textEncoder) line(label, value string) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, "%s %s\n", labelColor.Sprint(label+":"), value)
}

func formatMeasure(r *Result, name string, value float64) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if r.Applicable(name) {
		return s
	}
	for _, f := range r.Failed {
		if f == name {
			return s + " (failed)"
		}
	}
	return s + " (n/a)"
}

// Encode renders one labelled line per field followed by a blank line.
func (t *textEncoder) Encode(r *Result) error {
	t.err = nil

	t.line("File name", r.FileName)
	if r.Path != "" && r.Path != r.FileName {
		t.line("Path", r.Path)
	}
	t.line("File size", fmt.Sprintf("%d bytes", r.ByteLength))
	t.line("Entropy", formatMeasure(r, MeasureEntropy, r.Entropy))
	t.line("Pearson chi-square", formatMeasure(r, MeasureChiSquare, r.ChiSquare))
	t.line("Max wavelet coefficient", formatMeasure(r, MeasureWavelet, r.WaveletMaxCoefficient))
	t.line("Monte Carlo pi estimate", formatMeasure(r, MeasureMonteCarlo, r.MonteCarloPiEstimate))

	if ext := r.Extended; ext != nil {
		t.line("Arithmetic mean", formatMeasure(r, MeasureMean, ext.ArithmeticMean))
		t.line("Serial correlation", formatMeasure(r, MeasureSerialCorrelation, ext.SerialCorrelation))
		ks := formatMeasure(r, MeasureKolmogorov, ext.KsStatistic)
		if r.Applicable(MeasureKolmogorov) {
			ks = fmt.Sprintf("%s at byte %d", ks, ext.KsPosition)
		}
		t.line("Kolmogorov-Smirnov statistic", ks)
		t.line("Compression ratio", formatMeasure(r, MeasureCompression, ext.CompressionRatio))
	}

	if r.MIME != "" {
		t.line("MIME type", r.MIME)
	}
	if r.Digest != "" {
		t.line("BLAKE3", r.Digest)
	}

	if t.err == nil {
		_, t.err = fmt.Fprintln(t.w)
	}

	return t.err
}

// WriteSoftware renders the software scan result on a single line with
// entries in sorted order.
func WriteSoftware(w io.Writer, found map[string]bool) error {
	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)

	var readable string
	for i, name := range names {
		if i > 0 {
			readable += ", "
		}
		readable += fmt.Sprintf("%s: %t", name, found[name])
	}

	_, err := fmt.Fprintf(w, "%s {%s}\n", labelColor.Sprint("Detected cryptographic software traces:"), readable)
	return err
}
