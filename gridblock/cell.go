// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gridblock composes the per-orientation fracture sets owned by
// one cell (spec §4.3): geometry, state objects, and the implicit
// solver loop (adaptive timestep, termination checks, nucleation,
// propagation, stress update, relaxation), grounded on the teacher's
// fem.Domain/fem.FEM stage-and-timestep orchestration style.
package gridblock

import (
	"github.com/JointFlow/DFMGenerator-sub004/geom"
)

// Cornerpoints holds the eight gridblock corners: four top, four base
// (spec §3 "Gridblock cornerpoints").
type Cornerpoints [8]geom.Point3

// indices into Cornerpoints
const (
	top0 = iota
	top1
	top2
	top3
	base0
	base1
	base2
	base3
)

// Geometry holds the derived, per-cell scalars spec §3 defines: layer
// thickness and depth are arithmetic means over the four top/base
// pairs.
type Geometry struct {
	Thickness    float64
	Depth        float64 // depth at deformation (positive down), from mean elevation
	TopCentre    geom.Point3
	BaseCentre   geom.Point3
	AreaHorizontal float64 // approximate in-plane area, for cell bulk volume
	Valid        bool

	// MinX/MinY/MaxX/MaxY is the horizontal bounding box of the top face,
	// used by the explicit DFN builder (package dfn, via package grid) to
	// place objects within the cell footprint and detect boundary
	// crossings (spec §4.6).
	MinX, MinY, MaxX, MaxY float64
}

// DeriveGeometry computes Geometry from a cell's cornerpoints and
// checks validity: all four corners defined (non-zero-valued struct
// check is the caller's responsibility via explicit Defined flags; here
// we take minLayerThickness as the configured floor) and thickness
// exceeding it (spec §3, §7 "Degenerate cell").
func DeriveGeometry(cp Cornerpoints, minLayerThickness float64) Geometry {
	var thickness float64
	var topSum, baseSum geom.Point3
	for i := 0; i < 4; i++ {
		top := cp[i]
		base := cp[i+4]
		thickness += top.Z - base.Z
		topSum = topSum.Add(top)
		baseSum = baseSum.Add(base)
	}
	thickness /= 4
	topCentre := topSum.Scale(0.25)
	baseCentre := baseSum.Scale(0.25)
	depth := -0.5 * (topCentre.Z + baseCentre.Z)

	area := shoelaceArea(cp[top0], cp[top1], cp[top2], cp[top3])

	minX, minY, maxX, maxY := cp[top0].X, cp[top0].Y, cp[top0].X, cp[top0].Y
	for i := 1; i < 4; i++ {
		p := cp[i]
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	return Geometry{
		Thickness:      thickness,
		Depth:          depth,
		TopCentre:      topCentre,
		BaseCentre:     baseCentre,
		AreaHorizontal: area,
		Valid:          thickness > minLayerThickness,
		MinX:           minX,
		MinY:           minY,
		MaxX:           maxX,
		MaxY:           maxY,
	}
}

// BulkVolume returns the cell's bulk rock volume, used to convert
// volumetric densities to expected counts for nucleation (spec §4.2).
func (g Geometry) BulkVolume() float64 {
	return g.AreaHorizontal * g.Thickness
}

// shoelaceArea returns the horizontal projected area of the quadrilateral
// top face, via the shoelace formula
func shoelaceArea(a, b, c, d geom.Point3) float64 {
	pts := [4]geom.Point3{a, b, c, d}
	var sum float64
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}
