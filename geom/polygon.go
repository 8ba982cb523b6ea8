// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "github.com/cpmech/gosl/chk"

// Quad is a planar quadrilateral patch: top-near, top-far, base-far,
// base-near, matching the macrofracture segment corner ordering used by
// the explicit DFN builder (spec §4.6)
type Quad [4]Point3

// Triangle is one triangular patch, produced when a Quad or a
// microfracture polygon is split for triangular output
type Triangle [3]Point3

// Split replaces q with its two triangles sharing the near-far diagonal
func (q Quad) Split() [2]Triangle {
	return [2]Triangle{
		{q[0], q[1], q[2]},
		{q[0], q[2], q[3]},
	}
}

// Fan builds a triangle fan from a polygon's cornerpoints around its
// centre, used for triangulated microfracture output
func Fan(centre Point3, ring []Point3) ([]Triangle, error) {
	n := len(ring)
	if n < 3 {
		return nil, chk.Err("geom: Fan requires at least 3 ring points, got %d", n)
	}
	tris := make([]Triangle, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		tris[i] = Triangle{centre, ring[i], ring[j]}
	}
	return tris, nil
}

// MacrofractureSegment builds the Quad for one propagation step of a
// macrofracture tip: from point a to point b, over the full layer
// thickness h (vertical extent), centred on the layer mid-depth z0.
func MacrofractureSegment(a, b Point3, h float64) Quad {
	top := h / 2
	base := -h / 2
	return Quad{
		{a.X, a.Y, a.Z + top},
		{b.X, b.Y, b.Z + top},
		{b.X, b.Y, b.Z + base},
		{a.X, a.Y, a.Z + base},
	}
}
