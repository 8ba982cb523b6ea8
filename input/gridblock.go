// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/geom"
)

// CellRecord is the external per-gridblock record: eight cornerpoints,
// four edge-faulted flags (N,E,S,W, matching package grid's Edge
// ordering) and optional thickness/depth overrides (spec §6).
type CellRecord struct {
	Row, Col     int
	Cornerpoints [8]geom.Point3
	Faulted      [4]bool
	ThicknessOverride *float64
	DepthOverride     *float64
}

// Sample is one raw measurement feeding a cell-averaged property (spec
// §6 "Petrel-cell averaging"). It carries only the value; whether it is
// averaged as a scalar or as an undirected azimuth depends on whether
// the caller uses AverageScalar or AverageAzimuth.
type Sample struct {
	Value float64
}

// AverageScalar returns the arithmetic mean of a set of per-cell
// samples (spec §6). Non-finite values are treated as missing (spec
// §7); when no finite sample remains, an error is returned and the
// caller falls back to the scalar default.
func AverageScalar(samples []Sample) (float64, error) {
	var sum float64
	n := 0
	for _, s := range samples {
		if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			continue
		}
		sum += s.Value
		n++
	}
	if n == 0 {
		return 0, chk.Err("input: AverageScalar found no finite sample")
	}
	return sum / float64(n), nil
}

// AverageAzimuth averages axial (undirected-line) strike azimuths: each
// sample is folded into a 180° window chosen by the dominant direction
// of the samples already accumulated -- east-west dominant folds into
// (-π/2, π/2], north-south dominant into [0, π) -- and the averaged
// orientation is then atan(Σ sin / Σ cos) (spec §6 "orientation
// averaging"). Folding before summing is what keeps samples straddling
// the 0/π wraparound from cancelling to a spurious perpendicular mean.
func AverageAzimuth(samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, chk.Err("input: AverageAzimuth requires at least one sample")
	}
	var sumSin, sumCos float64
	for _, s := range samples {
		if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			continue // non-finite samples are treated as missing
		}
		a := math.Mod(s.Value, math.Pi)
		if a < 0 {
			a += math.Pi
		}
		if math.Abs(sumCos) >= math.Abs(sumSin) {
			// east-west dominant: fold into (-π/2, π/2]
			if a > math.Pi/2 {
				a -= math.Pi
			}
		}
		// north-south dominant: [0, π), which a already lies in
		sumSin += math.Sin(a)
		sumCos += math.Cos(a)
	}
	if sumCos == 0 {
		if sumSin == 0 {
			return 0, chk.Err("input: AverageAzimuth samples cancel exactly; orientation is undefined")
		}
		return math.Pi / 2, nil
	}
	mean := math.Atan(sumSin / sumCos)
	if mean < 0 {
		mean += math.Pi
	}
	return mean, nil
}

// AverageAzimuthCircular is the double-angle circular-statistics
// estimator atan2(Σ sin 2θ, Σ cos 2θ)/2, kept alongside AverageAzimuth
// so the two can be benchmarked against each other on real orientation
// fields before either becomes the sole estimator.
func AverageAzimuthCircular(samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, chk.Err("input: AverageAzimuthCircular requires at least one sample")
	}
	var sumSin, sumCos float64
	for _, s := range samples {
		sumSin += math.Sin(2 * s.Value)
		sumCos += math.Cos(2 * s.Value)
	}
	if sumSin == 0 && sumCos == 0 {
		return 0, chk.Err("input: AverageAzimuthCircular samples cancel exactly; orientation is undefined")
	}
	mean := 0.5 * math.Atan2(sumSin, sumCos)
	if mean < 0 {
		mean += math.Pi
	}
	return mean, nil
}
