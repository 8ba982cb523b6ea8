// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fracset

import (
	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/dipset"
)

// FractureSet groups the dip sets sharing one orientation (typically
// one Mode1 and one Mode2 dip set) and owns the aperture-law parameters
// per mode (spec §4.4).
type FractureSet struct {
	Orientation dipset.Orientation
	DipSets     []*dipset.DipSet // members of this orientation, any Mode

	ApertureByMode map[dipset.Mode]ApertureParams
}

// New builds a FractureSet from its member dip sets, all of which must
// share Orientation.
func New(orientation dipset.Orientation, members []*dipset.DipSet, apertureByMode map[dipset.Mode]ApertureParams) (*FractureSet, error) {
	for _, d := range members {
		if d.Orientation != orientation {
			return nil, chk.Err("fracset: member dip set has orientation %v, expected %v", d.Orientation, orientation)
		}
	}
	for mode, p := range apertureByMode {
		if err := p.Validate(); err != nil {
			return nil, chk.Err("fracset: aperture params for %v invalid: %v", mode, err)
		}
	}
	return &FractureSet{Orientation: orientation, DipSets: members, ApertureByMode: apertureByMode}, nil
}

// MeanAperture returns the current mean aperture for the dip set of the
// given mode within this orientation, or 0 if no aperture law is
// configured for that mode.
func (f *FractureSet) MeanAperture(mode dipset.Mode, ctx Context) (float64, error) {
	p, ok := f.ApertureByMode[mode]
	if !ok {
		return 0, nil
	}
	return Aperture(p, ctx)
}

// CombinedP32 sums uFP32_total and MFP32 (via the caller-supplied
// per-set layer thickness) across every member dip set (spec §4.4
// "sums per-dip-set ... contributions into combined P32").
func (f *FractureSet) CombinedP32(layerThickness float64) float64 {
	var total float64
	for _, d := range f.DipSets {
		total += d.UFP32Total()
		total += (d.ActiveHalfLenDensity + d.FrozenHalfLenDensity) * layerThickness
	}
	return total
}

// CombinedPorosity returns sum over member dip sets of P32 * mean
// aperture (spec §4.4 "Porosity is P32*mean_aperture summed over
// sets").
func (f *FractureSet) CombinedPorosity(ctx Context, layerThickness float64) (float64, error) {
	var total float64
	for _, d := range f.DipSets {
		aperture, err := f.MeanAperture(d.ModeKind, ctx)
		if err != nil {
			return 0, err
		}
		macroP32 := (d.ActiveHalfLenDensity + d.FrozenHalfLenDensity) * layerThickness
		total += (d.UFP32Total() + macroP32) * aperture
	}
	return total, nil
}
