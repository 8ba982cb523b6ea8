// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dfn

import (
	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/geom"
)

// Macrofracture is one explicit fracture with two independently
// propagating tips about a fixed nucleation centre (spec §4.6).
type Macrofracture struct {
	ID       int
	Source   SourceDipSet
	Centre   geom.Point3
	Azimuth  float64 // strike azimuth [rad]
	Aperture float64 // current mean aperture [m]

	// CellRow/CellCol identify the gridblock this fracture (or fracture
	// segment, for a cross-boundary continuation) was instantiated in
	// (spec §4.6); set by the grid-level orchestrator, not by Builder
	// itself, which has no grid context.
	CellRow, CellCol int

	Tips [2]Tip // [Positive, Negative]

	// RelayLinkedTo is the ID of the fracture this one's relay-terminated
	// tip linked to, if LinkStressShadows produced a connection (spec
	// §4.7 "link_stress_shadows"); 0 if none.
	RelayLinkedTo [2]int
}

// NewMacrofracture creates a zero-length fracture nucleated at centre
// with both tips Active (spec §4.6).
func NewMacrofracture(id int, src SourceDipSet, centre geom.Point3, azimuth float64, order int) *Macrofracture {
	return &Macrofracture{
		ID:      id,
		Source:  src,
		Centre:  centre,
		Azimuth: azimuth,
		Tips: [2]Tip{
			{End: Positive, Position: centre, NucleationOrder: order},
			{End: Negative, Position: centre, NucleationOrder: order},
		},
	}
}

// direction returns the unit growth direction for tip end e
func (m *Macrofracture) direction(e TipEnd) (dx, dy float64) {
	az := m.Azimuth
	if e == Negative {
		az += 3.14159265358979323846
	}
	return geom.UnitVec2D(az)
}

// Active reports whether either tip is still propagating
func (m *Macrofracture) Active() bool {
	return m.Tips[0].State == Active || m.Tips[1].State == Active
}

// HalfLength returns the tip's distance from the centre (spec §4.6, §8
// "half-length" convention carried over from the implicit model).
func (t Tip) length(centre geom.Point3) float64 {
	return t.Position.Dist2D(centre)
}

// GrowTip advances one tip of the fracture by v*dt, provided it is
// still Active. Terminal-state checks (relay, intersect, boundary) are
// evaluated by the owning Builder, which has the neighbor context this
// type alone does not.
func (m *Macrofracture) GrowTip(end TipEnd, dt, v float64) error {
	if dt < 0 {
		return chk.Err("dfn: GrowTip requires dt >= 0, got %v", dt)
	}
	t := &m.Tips[end]
	if t.State != Active {
		return nil
	}
	dx, dy := m.direction(end)
	t.Position = t.grow(dt, v, dx, dy)
	t.HalfLength = t.length(m.Centre)
	return nil
}

// Segment returns the Quad geometry for the current half-length of tip
// end, over layer thickness h (spec §4.6).
func (m *Macrofracture) Segment(end TipEnd, h float64) geom.Quad {
	t := m.Tips[end]
	return geom.MacrofractureSegment(m.Centre, t.Position, h)
}
