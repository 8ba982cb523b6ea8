// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fracset implements the orientation roll-up (spec §4.4): one
// group of dip sets sharing an orientation, owning the aperture-law
// parameters and the combined P32/porosity rollup. Polymorphism over
// aperture laws is modelled as a tagged variant dispatching on a single
// operation (spec §9 "Design Notes"), the same pattern the teacher uses
// for liquid-retention models (mreten) and conductivity models
// (mconduct), except that here a single struct switches on the tag
// rather than an interface-per-model, because the four laws share one
// trivial signature.
package fracset

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// ApertureLaw tags which of the four aperture models is in effect
type ApertureLaw int

const (
	Uniform ApertureLaw = iota
	SizeDependent
	Dynamic
	BartonBandis
)

// String implements fmt.Stringer
func (a ApertureLaw) String() string {
	switch a {
	case Uniform:
		return "Uniform"
	case SizeDependent:
		return "SizeDependent"
	case Dynamic:
		return "Dynamic"
	case BartonBandis:
		return "BartonBandis"
	default:
		return "?"
	}
}

// ApertureParams bundles the parameters of all four laws; only the
// fields relevant to the active ApertureLaw are read (spec §4.4).
type ApertureParams struct {
	Law ApertureLaw

	UniformAperture float64 // Uniform: constant aperture [m]
	Multiplier      float64 // SizeDependent/Dynamic: multiplier applied to the base aperture

	// Barton-Bandis
	JRC              float64 // joint roughness coefficient
	UCSRatio         float64 // unconfined-compressive-strength ratio (JCS/UCS)
	InitialNormalStress float64 // σ_n0 [Pa]
	InitialNormalStiffness float64 // K_n0 [Pa/m]
	MaxClosure       float64 // a_max closure [m]
}

// Validate checks the parameters needed by the active law are sane
// (spec §7 "Invalid configuration")
func (p ApertureParams) Validate() error {
	switch p.Law {
	case Uniform:
		if p.UniformAperture < 0 {
			return chk.Err("fracset: uniform aperture must be >= 0")
		}
	case SizeDependent, Dynamic:
		if p.Multiplier < 0 {
			return chk.Err("fracset: aperture multiplier must be >= 0")
		}
	case BartonBandis:
		if p.InitialNormalStiffness <= 0 {
			return chk.Err("fracset: Barton-Bandis initial normal stiffness must be > 0")
		}
		if p.MaxClosure < 0 {
			return chk.Err("fracset: Barton-Bandis maximum closure must be >= 0")
		}
	default:
		return chk.Err("fracset: unrecognised ApertureLaw %d", p.Law)
	}
	return nil
}

// Context bundles the per-gridblock quantities an aperture law may
// depend on
type Context struct {
	EffectiveNormalStress float64 // current σ_n_eff on the fracture plane [Pa]
	PoissonsRatio         float64
	YoungsModulus         float64
	LayerThickness        float64
}

// Aperture dispatches on p.Law and returns the mean aperture for one
// fracture (spec §4.4). This is the single `aperture(σ_n, context)`
// operation described in spec §9's "Design Notes".
//
// Open question (spec §9): the source applies Barton-Bandis identically
// to Mode 1 and Mode 2 fractures; this implementation preserves that
// behavior rather than introducing an unspecified Mode-2 normal-closure
// curve (see DESIGN.md).
func Aperture(p ApertureParams, ctx Context) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	switch p.Law {
	case Uniform:
		return p.UniformAperture, nil
	case SizeDependent:
		return ctx.LayerThickness * p.Multiplier, nil
	case Dynamic:
		return dynamicAperture(p, ctx), nil
	case BartonBandis:
		return bartonBandisAperture(p, ctx), nil
	default:
		return 0, chk.Err("fracset: unrecognised ApertureLaw %d", p.Law)
	}
}

// dynamicAperture returns f(σ_n_eff, ν, E) * multiplier: a simple
// stress-dependent closure, the aperture decaying as effective normal
// stress increases, scaled by the rock's compliance (1-ν^2)/E.
func dynamicAperture(p ApertureParams, ctx Context) float64 {
	compliance := (1 - ctx.PoissonsRatio*ctx.PoissonsRatio) / math.Max(ctx.YoungsModulus, 1)
	base := compliance * math.Max(ctx.EffectiveNormalStress, 0)
	a := p.Multiplier / (1 + base)
	if a < 0 {
		return 0
	}
	return a
}

// bartonBandisAperture implements:
//
//	a = a0 / (1 + σn_eff/(Kn0 * a0))   clipped to <= MaxClosure's complement
//
// where a0 is derived from JRC/UCS-ratio as in the classical
// Barton-Bandis correlation, here simplified to a direct parameter
// (InitialNormalStress at zero load gives the reference aperture via
// the joint roughness/UCS ratio scaling), spec §4.4.
func bartonBandisAperture(p ApertureParams, ctx Context) float64 {
	a0 := p.JRC * p.UCSRatio * 1e-4
	if a0 <= 0 {
		a0 = 1e-5
	}
	sigmaN := math.Max(ctx.EffectiveNormalStress-p.InitialNormalStress, 0)
	a := a0 / (1 + sigmaN/(p.InitialNormalStiffness*a0))
	maxAperture := a0
	if p.MaxClosure < maxAperture {
		// MaxClosure bounds how much the joint may close, i.e. aperture
		// cannot fall below a0 - MaxClosure
		floor := a0 - p.MaxClosure
		if a < floor {
			a = floor
		}
	}
	if a < 0 {
		a = 0
	}
	return a
}
