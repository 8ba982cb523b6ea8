// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dipset

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/stressstate"
)

// SuggestDt estimates the timestep this set can tolerate so that its
// own ΔMFP33 over the step stays within mfp33Bound, subject to
// dtUpperBound (spec §4.2 "Timestep selection"). The growth rate comes
// from the velocity law at the current mean half-length and the bound
// is divided by it; trial is only checked to be positive.
func (d *DipSet) SuggestDt(trial, dtUpperBound, mfp33Bound float64, state *stressstate.State, azimuthHMin, biot, layerThickness, meanAperture float64) (float64, error) {
	if !d.Active {
		return dtUpperBound, nil
	}
	if trial <= 0 {
		return 0, chk.Err("dipset: SuggestDt requires a positive trial step")
	}
	sigmaD := d.drivingStress(state, azimuthHMin, biot)
	if sigmaD <= 0 {
		return dtUpperBound, nil
	}
	mean := math.Max(d.MeanMacrofractureLength(), d.RMin)
	v := d.velocity(mean, sigmaD)
	if v <= 0 || d.ActiveP30 <= 0 {
		return dtUpperBound, nil
	}
	// growMacrofractures raises the half-length density by v*activeP30
	// per unit time, so dMFP32/dt = v * activeP30 * layerThickness; the
	// factor 2 doubles that estimate, keeping the step's ΔMFP33 at or
	// below half of mfp33Bound
	rate := 2 * v * d.ActiveP30 * layerThickness * meanAperture
	if rate <= 0 {
		return dtUpperBound, nil
	}
	dt := mfp33Bound / rate
	if dt > dtUpperBound {
		dt = dtUpperBound
	}
	if dt <= 0 {
		return 0, chk.Err("dipset: SuggestDt produced a non-positive timestep")
	}
	return dt, nil
}
