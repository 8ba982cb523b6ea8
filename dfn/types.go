// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dfn builds the explicit discrete fracture network from a
// completed (or partially completed) implicit population history (spec
// §4.6): individual microfracture disks and macrofracture tip objects,
// with their own per-tip state machine, relay-zone linking,
// cross-boundary continuation and growth-stage snapshotting. Where the
// implicit phase (package dipset) tracks population-level densities,
// this package instantiates actual geometric objects, grounded on the
// teacher's ele/ipm per-Gauss-point state-flag pattern (mdl/solid.Driver
// tracks a state struct per integration point across loading history;
// here each tip owns its own TipState across growth history).
package dfn

import "github.com/JointFlow/DFMGenerator-sub004/dipset"

// TipState is the per-tip lifecycle state (spec §4.6).
type TipState int

const (
	// Active tips still propagate every step.
	Active TipState = iota
	// RelayTerminated: the tip entered another fracture's stress shadow
	// and stopped (parallel-set relay zone).
	RelayTerminated
	// IntersectTerminated: the tip met a non-parallel fracture and
	// stopped at the intersection.
	IntersectTerminated
	// BoundaryCropped: the tip reached a gridblock/grid boundary it could
	// not continue across (faulted edge, or continuation disabled).
	BoundaryCropped
	// Completed: the tip's owning dip set terminated (spec §4.2) before
	// any of the above fired; growth simply stopped.
	Completed
)

// String implements fmt.Stringer
func (s TipState) String() string {
	switch s {
	case Active:
		return "Active"
	case RelayTerminated:
		return "RelayTerminated"
	case IntersectTerminated:
		return "IntersectTerminated"
	case BoundaryCropped:
		return "BoundaryCropped"
	case Completed:
		return "Completed"
	default:
		return "?"
	}
}

// terminal reports whether a tip in this state still needs stepping
func (s TipState) terminal() bool { return s != Active }

// TipEnd identifies which of a macrofracture's two tips is meant
type TipEnd int

const (
	Positive TipEnd = iota // grows along +azimuth direction
	Negative                // grows along azimuth+pi direction
)

// SourceDipSet identifies which implicit (orientation, mode) population
// a DFN object was instantiated from.
type SourceDipSet struct {
	Orientation dipset.Orientation
	Mode        dipset.Mode
}
