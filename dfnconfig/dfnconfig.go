// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dfnconfig holds the explicit-DFN generation control record
// (spec §4.7): every toggle and threshold that governs how the explicit
// builder (package dfn) turns the implicit population model's history
// into discrete fracture objects. It is deliberately a flat, validated
// options struct in the teacher's inp.Simulation/inp.Data style rather
// than a functional-options API, since every field here is a simple
// named scalar read straight from an input record (spec §6).
package dfnconfig

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// IntermediateMode selects how n_intermediate_outputs divides the
// simulation into growth-stage snapshots (spec §4.7).
type IntermediateMode int

const (
	// ByEqualArea divides into stages of roughly equal total MFP32 growth
	ByEqualArea IntermediateMode = iota
	// ByTime divides into stages of equal simulation-time span
	ByTime
)

// SearchAdjacentMode selects whether a tip's stress-shadow search may
// reach into neighbouring gridblocks (spec §4.6 step 4, §4.7
// "search_adjacent").
type SearchAdjacentMode int

const (
	// SearchNone restricts shadow searches to the tip's own cell
	SearchNone SearchAdjacentMode = iota
	// SearchAll always searches unfaulted neighbour cells too
	SearchAll
	// SearchAutomatic decides per cell by comparing the cell's in-plane
	// extent to the typical stress-shadow width: if shadows can
	// plausibly reach a neighbour, searching is enabled
	SearchAutomatic
)

// String implements fmt.Stringer
func (m SearchAdjacentMode) String() string {
	switch m {
	case SearchNone:
		return "None"
	case SearchAll:
		return "All"
	case SearchAutomatic:
		return "Automatic"
	default:
		return "?"
	}
}

// Config bundles the explicit DFN generation controls (spec §4.7).
type Config struct {
	GenerateExplicit bool

	MinMicrofractureRadius float64 // [m]
	MinMacrofractureLength float64 // [m]
	MinLayerThickness      float64 // [m], also used by gridblock geometry validity

	MaxConsistencyAngle float64 // [rad]; caps deviation allowed when linking a tip across a cell boundary

	CropAtBoundary    bool
	LinkStressShadows bool
	SearchAdjacent    SearchAdjacentMode

	MicrofractureCornerpoints int // polygon sides used to render a microfracture disk (spec §4.6)
	TriangularSegments        bool // render macrofracture segments as triangles rather than quads

	NIntermediateOutputs int
	IntermediatesByTime  IntermediateMode
	OutputCentrepoints   bool

	// ProbabilisticNucleationLimit is the expected-count-per-step
	// ceiling below which nucleation draws a Poisson variate rather
	// than rounding deterministically: 0 disables the probabilistic
	// draw entirely, -1 selects an automatic limit (spec §4.7).
	ProbabilisticNucleationLimit float64
	PropagateInNucleationOrder   bool // process tips oldest-nucleated-first within a timestep
}

// Validate checks the invariants an invalid configuration record must
// fail on (spec §7 "Invalid configuration").
func (c Config) Validate() error {
	if !c.GenerateExplicit {
		return nil
	}
	if c.MinMicrofractureRadius < 0 {
		return chk.Err("dfnconfig: min_microfracture_radius must be >= 0, got %v", c.MinMicrofractureRadius)
	}
	if c.MinMacrofractureLength < 0 {
		return chk.Err("dfnconfig: min_macrofracture_length must be >= 0, got %v", c.MinMacrofractureLength)
	}
	if c.MinLayerThickness <= 0 {
		return chk.Err("dfnconfig: min_layer_thickness must be > 0, got %v", c.MinLayerThickness)
	}
	if c.MaxConsistencyAngle <= 0 || c.MaxConsistencyAngle > math.Pi/2 {
		return chk.Err("dfnconfig: max_consistency_angle must be in (0, pi/2], got %v", c.MaxConsistencyAngle)
	}
	switch c.SearchAdjacent {
	case SearchNone, SearchAll, SearchAutomatic:
	default:
		return chk.Err("dfnconfig: unrecognised search_adjacent mode %d", c.SearchAdjacent)
	}
	if c.MicrofractureCornerpoints < 0 {
		return chk.Err("dfnconfig: microfracture_cornerpoints must be >= 0, got %d", c.MicrofractureCornerpoints)
	}
	if c.MicrofractureCornerpoints > 0 && c.MicrofractureCornerpoints < 3 {
		return chk.Err("dfnconfig: microfracture_cornerpoints must be 0 (centre+radius only) or >= 3, got %d", c.MicrofractureCornerpoints)
	}
	if c.NIntermediateOutputs < 0 {
		return chk.Err("dfnconfig: n_intermediate_outputs must be >= 0, got %d", c.NIntermediateOutputs)
	}
	if c.ProbabilisticNucleationLimit < 0 && c.ProbabilisticNucleationLimit != -1 {
		return chk.Err("dfnconfig: probabilistic_nucleation_limit must be >= 0 or -1 (automatic), got %v", c.ProbabilisticNucleationLimit)
	}
	return nil
}
