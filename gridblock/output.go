// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gridblock

import (
	"github.com/JointFlow/DFMGenerator-sub004/dipset"
	"github.com/JointFlow/DFMGenerator-sub004/fracset"
)

// SetSummary is the per-(orientation,mode) output record (spec §6
// "Output arrays", one row per dip set).
type SetSummary struct {
	Orientation     dipset.Orientation
	Mode            dipset.Mode
	MFP30Total      float64
	MFP32           float64
	UFP32Total      float64
	MeanLength      float64
	ActiveRatio     float64 // active (unconnected I-node) share of MFP30Total
	RelayRatio      float64
	IntersectRatio  float64
	EndActiveTime   float64
}

// StateAt returns the per-set summaries as of the latest snapshot at or before simTime (spec §4.3 "state_at(time)").
// Sets with no snapshot at or before simTime are reported at their
// zero value.
func (g *Gridblock) StateAt(simTime float64) ([]SetSummary, error) {
	var out []SetSummary
	for _, fs := range g.FractureSets {
		for _, d := range fs.DipSets {
			snap, ok := d.StateAt(simTime)
			summary := SetSummary{Orientation: d.Orientation, Mode: d.ModeKind}
			if ok {
				total := snap.MFP30Total()
				summary.MFP30Total = total
				summary.MFP32 = snap.MFP32
				summary.UFP32Total = snap.UFP32Total
				summary.MeanLength = snap.MeanMacroLength
				if total > 0 {
					summary.ActiveRatio = snap.ActiveP30 / total
					summary.RelayRatio = snap.RelayP30 / total
					summary.IntersectRatio = snap.IntersectP30 / total
				}
			}
			if !d.Active {
				summary.EndActiveTime = g.FinalActiveTime
			}
			out = append(out, summary)
		}
	}
	return out, nil
}

// P32Anisotropy returns MFP32(H-max)/MFP32(H-min) (and the microfracture
// analogue uFP32) at simTime, spec §6 "P32_anisotropy". A zero
// denominator reports anisotropy as 0 rather than dividing by zero.
func (g *Gridblock) P32Anisotropy(simTime float64) (float64, error) {
	var hmin, hmax float64
	for _, fs := range g.FractureSets {
		if fs.Orientation != dipset.HMin && fs.Orientation != dipset.HMax {
			continue
		}
		for _, d := range fs.DipSets {
			snap, ok := d.StateAt(simTime)
			if !ok {
				continue
			}
			v := snap.MFP32 + snap.UFP32Total
			if fs.Orientation == dipset.HMin {
				hmin += v
			} else {
				hmax += v
			}
		}
	}
	if hmin <= 0 {
		return 0, nil
	}
	return hmax / hmin, nil
}

// P33Anisotropy is the aperture-weighted analogue of P32Anisotropy,
// using each set's current mean aperture via its owning fracture set's
// aperture law (spec §6 "P33_anisotropy").
func (g *Gridblock) P33Anisotropy(simTime float64) (float64, error) {
	var hmin, hmax float64
	for _, fs := range g.FractureSets {
		if fs.Orientation != dipset.HMin && fs.Orientation != dipset.HMax {
			continue
		}
		for _, d := range fs.DipSets {
			snap, ok := d.StateAt(simTime)
			if !ok {
				continue
			}
			aperture, err := fs.MeanAperture(d.ModeKind, fracset.Context{
				EffectiveNormalStress: g.Stress.EffectiveNormal(d.Azimuth, g.AzimuthHMin),
				PoissonsRatio:         g.Props.PoissonsRatio,
				YoungsModulus:         g.Props.YoungsModulus,
				LayerThickness:        g.Geom.Thickness,
			})
			if err != nil {
				return 0, err
			}
			v := (snap.MFP32 + snap.UFP32Total) * aperture
			if fs.Orientation == dipset.HMin {
				hmin += v
			} else {
				hmax += v
			}
		}
	}
	if hmin <= 0 {
		return 0, nil
	}
	return hmax / hmin, nil
}

// TotalPorosity sums CombinedPorosity across every fracture set,
// spec §6 "fracture porosity, per aperture model".
func (g *Gridblock) TotalPorosity() (float64, error) {
	var total float64
	for _, fs := range g.FractureSets {
		if len(fs.DipSets) == 0 {
			continue
		}
		// CombinedPorosity already sums over the set's dip sets, which
		// share one orientation; call it once per fracture set
		ctx := fracset.Context{
			EffectiveNormalStress: g.Stress.EffectiveNormal(fs.DipSets[0].Azimuth, g.AzimuthHMin),
			PoissonsRatio:         g.Props.PoissonsRatio,
			YoungsModulus:         g.Props.YoungsModulus,
			LayerThickness:        g.Geom.Thickness,
		}
		p, err := fs.CombinedPorosity(ctx, g.Geom.Thickness)
		if err != nil {
			return 0, err
		}
		total += p
	}
	return total, nil
}
