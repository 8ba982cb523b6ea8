// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dipset

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/ode"
)

// RadiusBin is one cohort of the microfracture radius-bin histogram: all
// fractures counted by P30 currently have radius in [RLo, RHi). Bins
// are Lagrangian cohorts: their edges shift upward as the cohort grows,
// rather than fixed Eulerian radius cells, so that mass is conserved
// exactly without any numerical diffusion across bin boundaries (spec
// §3 "radius bins partition [r_min, h/2] and never overlap").
type RadiusBin struct {
	RLo, RHi float64 // current radius-cohort edges [m]
	P30      float64 // volumetric density of fractures in this cohort [1/m^3]
}

// growthODE integrates dr/dt = v(r) for a single radius value over
// [0, dt] using gosl/ode with adaptive step control, grounded on
// ana.ColumnFluidPressure.CalcNum's use of ode.ODE.Solve with
// fixedStp=false to get automatic step selection (spec §4.2
// "Microfracture numerical integration").
func growthODE(r0, dt float64, velocity func(r float64) float64) (float64, error) {
	if dt <= 0 {
		return r0, nil
	}
	if r0 <= 0 {
		r0 = 1e-6
	}
	var solver ode.ODE
	silent := true
	solver.Init("Dopri5", 1, func(f []float64, dT, T float64, xi []float64, args ...interface{}) error {
		f[0] = velocity(xi[0])
		return nil
	}, nil, nil, nil, silent)
	solver.Distr = false
	xi := []float64{r0}
	err := solver.Solve(xi, 0, dt, dt, false)
	if err != nil {
		return 0, chk.Err("dipset: radius-growth ODE failed: %v", err)
	}
	if math.IsNaN(xi[0]) || math.IsInf(xi[0], 0) {
		return 0, chk.Err("dipset: radius-growth ODE produced a non-finite radius")
	}
	return xi[0], nil
}

// newBins builds n equal-width cohorts partitioning [rMin, rMax) with
// zero initial density; rMax is the transition radius (half the layer
// thickness, spec §3).
func newBins(n int, rMin, rMax float64) ([]RadiusBin, error) {
	if n <= 0 {
		return nil, chk.Err("dipset: number of radius bins must be > 0, got %d", n)
	}
	if rMin <= 0 {
		return nil, chk.Err("dipset: rMin must be > 0, got %v", rMin)
	}
	if rMax <= rMin {
		return nil, chk.Err("dipset: rMax (%v) must be > rMin (%v)", rMax, rMin)
	}
	width := (rMax - rMin) / float64(n)
	bins := make([]RadiusBin, n)
	for i := range bins {
		bins[i] = RadiusBin{
			RLo: rMin + float64(i)*width,
			RHi: rMin + float64(i+1)*width,
		}
	}
	return bins, nil
}

// seedPowerLaw fills the cohorts with the initial microfracture
// population: a truncated power-law size distribution with exponent c
// (spec §3 "the size distribution follows a power law with exponent
// c"), cumulative density N(>r) proportional to r^-c over [rMin, rMax)
// and normalised so the histogram's total density equals the
// initial-density parameter a.
func seedPowerLaw(bins []RadiusBin, a, c, rMin, rMax float64) {
	norm := math.Pow(rMin, -c) - math.Pow(rMax, -c)
	if a <= 0 || norm <= 0 {
		return
	}
	for i := range bins {
		b := &bins[i]
		b.P30 = a * (math.Pow(b.RLo, -c) - math.Pow(b.RHi, -c)) / norm
	}
}

// integralP32 returns the areal intensity implied by the current
// histogram: sum over bins of P30_i * (area of a disc at the bin's mid
// radius, π·((r_lo+r_hi)/2)^2),
// used both as uFP32_total and to check the "radius-bin histogram
// integral equals uFP32_total" invariant (spec §8).
func integralP32(bins []RadiusBin) float64 {
	var sum float64
	for _, b := range bins {
		rMean := 0.5 * (b.RLo + b.RHi)
		area := math.Pi * rMean * rMean
		sum += b.P30 * area
	}
	return sum
}
