// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mechprops holds the per-gridblock elastic and fracture
// parameters (spec §4.1 "Mechanical Properties"), the smallest, leaf
// most data object in the design, grounded on the teacher's
// inp.Material: a flat, JSON-friendly record of named scalar properties
// with a default value, the same role msolid/mconduct/mreten parameter
// structs play for the FE material models.
package mechprops

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Properties holds the material parameters of one gridblock that are
// uniform across its dip sets (elastic response, fracture toughness
// inputs, relaxation time constants). Per-dip-set parameters (initial
// density A, size exponent c, subcritical index b) are held per
// orientation/mode because the source grid may vary them by set; see
// input.PropertyField.
type Properties struct {
	YoungsModulus float64 // E [Pa]
	PoissonsRatio float64 // ν
	Biot          float64 // Biot coefficient α
	CrackSurfEner float64 // crack surface energy G_c [J/m^2]
	Friction      float64 // Coulomb/frictional coefficient μ
	TauRock       float64 // rock-strain relaxation time constant τ_r [s]
	TauFracture   float64 // fracture-strain relaxation time constant τ_f [s]

	RockDensity  float64 // ρ_rock [kg/m^3]
	FluidDensity float64 // ρ_fluid [kg/m^3]
	Overpressure float64 // excess pore pressure term added to hydrostatic [Pa]
	Gravity      float64 // g [m/s^2]
}

// Validate checks the invariants configuration errors must fail on
// (spec §7 "Invalid configuration")
func (p Properties) Validate() error {
	if p.YoungsModulus <= 0 {
		return chk.Err("mechprops: Young's modulus must be > 0, got %v", p.YoungsModulus)
	}
	if p.PoissonsRatio <= -1 || p.PoissonsRatio >= 0.5 {
		return chk.Err("mechprops: Poisson's ratio must be in (-1, 0.5), got %v", p.PoissonsRatio)
	}
	if p.Biot < 0 || p.Biot > 1 {
		return chk.Err("mechprops: Biot coefficient must be in [0,1], got %v", p.Biot)
	}
	if p.TauRock < 0 || p.TauFracture < 0 {
		return chk.Err("mechprops: relaxation time constants must be >= 0")
	}
	return nil
}

// EffectiveVertical computes σ_v' = (ρ_rock - ρ_fluid)·g·D + overpressure
// (spec §4.1), where D is depth at deformation (positive down).
func (p Properties) EffectiveVertical(depth float64) float64 {
	return (p.RockDensity-p.FluidDensity)*p.Gravity*depth + p.Overpressure
}

// FractureToughness derives K_Ic from the crack surface energy via the
// plane-strain Irwin relation K_Ic = sqrt(2·G_c·E/(1-ν²)).
func (p Properties) FractureToughness() float64 {
	return math.Sqrt(2 * p.CrackSurfEner * p.YoungsModulus / (1 - p.PoissonsRatio*p.PoissonsRatio))
}

// DipSetParams holds the parameters that may vary per (orientation,
// mode) dip set: initial density, size-distribution exponent and
// subcritical index (spec §4.2, §6).
type DipSetParams struct {
	InitialDensityA float64 // nucleation-rate coefficient A
	SizeExponentC   float64 // power-law exponent c
	SubcriticalB    float64 // subcritical index b (Mode-dependent)
	CriticalVelocity float64 // v_crit [m/s]
	FractureToughnessKIc float64 // K_Ic [Pa.sqrt(m)]
}

// Validate checks DipSetParams invariants
func (d DipSetParams) Validate() error {
	if d.InitialDensityA < 0 {
		return chk.Err("mechprops: initial density A must be >= 0, got %v", d.InitialDensityA)
	}
	if d.SizeExponentC <= 0 {
		return chk.Err("mechprops: size-distribution exponent c must be > 0, got %v", d.SizeExponentC)
	}
	if d.SubcriticalB <= 0 {
		return chk.Err("mechprops: subcritical index b must be > 0, got %v", d.SubcriticalB)
	}
	if d.CriticalVelocity <= 0 {
		return chk.Err("mechprops: critical velocity must be > 0, got %v", d.CriticalVelocity)
	}
	if d.FractureToughnessKIc <= 0 {
		return chk.Err("mechprops: K_Ic must be > 0, got %v", d.FractureToughnessKIc)
	}
	return nil
}
