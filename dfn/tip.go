// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dfn

import "github.com/JointFlow/DFMGenerator-sub004/geom"

// Tip is one propagating end of a Macrofracture.
type Tip struct {
	End             TipEnd
	Position        geom.Point3 // current tip position
	HalfLength      float64     // distance grown from the nucleation centre
	State           TipState
	NucleationOrder int // sequence number within the owning dip set, for propagate_in_nucleation_order
	ContinuedFromID int // 0 if this tip took no part in cross-boundary continuation; else the ID of the fracture linked to it across the boundary
}

// grow advances the tip by v*dt along dir (a unit direction vector in
// the horizontal plane) and returns the new position without mutating
// the receiver, so the caller can run boundary/relay/intersect checks
// before committing (spec §4.6).
func (t Tip) grow(dt, v, dirX, dirY float64) geom.Point3 {
	d := v * dt
	return geom.Point3{
		X: t.Position.X + d*dirX,
		Y: t.Position.Y + d*dirY,
		Z: t.Position.Z,
	}
}
