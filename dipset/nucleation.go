// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dipset

import (
	"math"

	"github.com/cpmech/gosl/rnd"
)

// drawCount turns an expected count (possibly fractional) into an
// integer draw for this timestep, using gosl/rnd the way
// inp.Simulation.AdjRandom draws values for its random adjustable
// parameters. When policy.Mode is Deterministic, or the expected count
// is at or above policy.Threshold, the expectation is used directly
// (fractional remainder carried by the caller as density); otherwise a
// Poisson(expected) draw is taken so small cells do not lose fractures
// to rounding (spec §4.2).
func drawCount(expected float64, policy NucleationPolicy) float64 {
	if expected <= 0 {
		return 0
	}
	if policy.Mode == Deterministic || expected >= policy.Threshold {
		return expected
	}
	return float64(poissonDraw(expected))
}

// poissonDraw samples from a Poisson(lambda) distribution using Knuth's
// product-of-uniforms algorithm, drawing uniforms from gosl/rnd.
func poissonDraw(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= rnd.Float64(0, 1)
		if p <= l {
			return k - 1
		}
	}
}
