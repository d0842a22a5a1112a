/*
* Prometheus metrics
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cipherscan_files_analyzed",
		Help: "The total number of files analyzed",
	})

	fileFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cipherscan_file_failures",
		Help: "The total number of files that could not be read",
	})

	bytesAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cipherscan_bytes_analyzed",
		Help: "The total number of bytes passed through the analyzers",
	})

	measureFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cipherscan_measure_failures",
		Help: "Number of measures that failed unexpectedly",
	}, []string{"measure"})

	analysisLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cipherscan_analysis_time",
		Help:    "Time spent analyzing one buffer",
		Buckets: prometheus.DefBuckets,
	})

	softwareMatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cipherscan_software_matches",
		Help: "The total number of installed software entries matching a signature",
	})
)
