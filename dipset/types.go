// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dipset implements the fracture-population state for one
// (orientation, mode) pair: the microfracture radius-bin histogram, the
// macrofracture node-category aggregates, and the per-timestep history
// (spec §4.2). This is the core algorithmic unit of the engine.
package dipset

import "github.com/cpmech/gosl/chk"

// Orientation identifies a horizontal fracture-set direction
type Orientation int

const (
	HMin Orientation = iota
	HMax
	Oblique
)

// String implements fmt.Stringer
func (o Orientation) String() string {
	switch o {
	case HMin:
		return "H-min"
	case HMax:
		return "H-max"
	case Oblique:
		return "oblique"
	default:
		return "?"
	}
}

// Mode identifies the fracture failure mode
type Mode int

const (
	Mode1 Mode = iota // dilatant (tensile opening)
	Mode2             // shear
)

// String implements fmt.Stringer
func (m Mode) String() string {
	if m == Mode1 {
		return "Mode1"
	}
	return "Mode2"
}

// StressDistribution selects how stress shadows interact with
// nucleation and propagation (spec §4.2)
type StressDistribution int

const (
	EvenlyDistributed StressDistribution = iota
	StressShadow
	DuctileBoundary
)

// NucleationMode selects deterministic vs probabilistic nucleation draws
type NucleationMode int

const (
	Deterministic NucleationMode = iota
	Probabilistic
)

// NucleationPolicy configures how nucleation counts are derived from
// the expected (deterministic) rate (spec §4.2). Reproducibility across
// runs is the caller's concern: seed the process RNG once via rnd.Init
// before the run starts.
type NucleationPolicy struct {
	Mode      NucleationMode
	Threshold float64 // expected-count-per-Δt threshold below which Probabilistic draws kick in
}

// checkDuctileBoundary fails fast if the unimplemented DuctileBoundary
// mode is selected (spec §4.2, §7 "unsupported DuctileBoundary")
func checkDuctileBoundary(sd StressDistribution) error {
	if sd == DuctileBoundary {
		return chk.Err("dipset: StressDistribution \"DuctileBoundary\" is reserved and not implemented")
	}
	return nil
}
