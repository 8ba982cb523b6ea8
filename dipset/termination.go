// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dipset

// TerminationConfig bundles the configured fractions for the three
// per-set termination tests (spec §4.2); the two global caps (duration,
// max timesteps) are evaluated by the owning gridblock/grid.
type TerminationConfig struct {
	PeakActiveRatio  float64 // test 1: active/peak a_MFP33 ratio floor
	ActiveTotalRatio float64 // test 2: active/total MFP30 ratio floor
	ClearZoneFloor   float64 // test 3: clear-zone volume fraction floor
}

// ShouldTerminate evaluates the three per-set termination tests and, if
// any fires, marks the set inactive and returns true (spec §4.2).
func (d *DipSet) ShouldTerminate(cfg TerminationConfig, meanAperture, layerThickness float64) bool {
	if !d.Active {
		return true
	}
	if d.PeakActiveMFP33 > 0 {
		current := d.macrofractureMFP32(layerThickness) * meanAperture
		// only the active-node share counts towards the historic-ratio test
		activeShare := 0.0
		if d.ActiveP30+d.RelayP30+d.IntersectP30 > 0 {
			activeShare = d.ActiveP30 / (d.ActiveP30 + d.RelayP30 + d.IntersectP30)
		}
		if current*activeShare/d.PeakActiveMFP33 < cfg.PeakActiveRatio {
			d.Active = false
			return true
		}
	}
	if d.MFP30Total() > 0 && d.ActiveToTotalMFP30Ratio() < cfg.ActiveTotalRatio {
		d.Active = false
		return true
	}
	if d.ClearZoneFrac < cfg.ClearZoneFloor {
		d.Active = false
		return true
	}
	return false
}
