// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dfn

import (
	"github.com/JointFlow/DFMGenerator-sub004/dfnconfig"
	"github.com/JointFlow/DFMGenerator-sub004/geom"
)

// Patch is one output polygon of a rendered fracture: 4 corners for a
// quadrilateral segment, 3 when triangular_segments splits quads and
// microfracture polygons into triangles (spec §4.6 step 6, §6 "each
// fracture carries its polygonal or triangular patches and a scalar
// mean aperture per patch").
type Patch struct {
	Corners  []geom.Point3
	Aperture float64
}

// Centreline returns the tip-to-tip polyline through the nucleation
// centre (spec §4.6 "a centreline polyline").
func (m *Macrofracture) Centreline() []geom.Point3 {
	return []geom.Point3{m.Tips[Negative].Position, m.Centre, m.Tips[Positive].Position}
}

// Patches renders the macrofracture as one quadrilateral segment per
// propagation direction over layer thickness h, split into triangle
// pairs when triangular is set. Zero-length directions emit nothing.
func (m *Macrofracture) Patches(h float64, triangular bool) []Patch {
	var out []Patch
	for end := 0; end < 2; end++ {
		t := m.Tips[end]
		if t.HalfLength <= 0 {
			continue
		}
		q := m.Segment(TipEnd(end), h)
		if triangular {
			for _, tri := range q.Split() {
				out = append(out, Patch{Corners: []geom.Point3{tri[0], tri[1], tri[2]}, Aperture: m.Aperture})
			}
			continue
		}
		out = append(out, Patch{Corners: []geom.Point3{q[0], q[1], q[2], q[3]}, Aperture: m.Aperture})
	}
	return out
}

// Patches renders the microfracture as an n-sided polygon (or a
// triangle fan when triangular is set). n == 0 records the fracture as
// centre+radius only and emits no patches.
func (m *Microfracture) Patches(n int, triangular bool) ([]Patch, error) {
	if n == 0 {
		return nil, nil
	}
	if triangular {
		tris, err := m.Triangulate(n)
		if err != nil {
			return nil, err
		}
		out := make([]Patch, len(tris))
		for i, tri := range tris {
			out[i] = Patch{Corners: []geom.Point3{tri[0], tri[1], tri[2]}, Aperture: m.Aperture}
		}
		return out, nil
	}
	ring, err := m.Cornerpoints(n)
	if err != nil {
		return nil, err
	}
	return []Patch{{Corners: ring, Aperture: m.Aperture}}, nil
}

// RenderPatches renders every fracture in the network into its output
// patches under cfg's microfracture_cornerpoints and
// triangular_segments settings, given the per-cell layer thickness
// lookup (spec §4.6 steps 6-7, §6).
func (d *GlobalDFN) RenderPatches(cfg dfnconfig.Config, thickness func(row, col int) float64) ([]Patch, error) {
	var out []Patch
	for _, mf := range d.Macrofractures {
		h := thickness(mf.CellRow, mf.CellCol)
		out = append(out, mf.Patches(h, cfg.TriangularSegments)...)
	}
	for _, uf := range d.Microfractures {
		ps, err := uf.Patches(cfg.MicrofractureCornerpoints, cfg.TriangularSegments)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}

// Centrepoints collects every fracture's centre, emitted when
// output_centrepoints is set (spec §4.7).
func (d *GlobalDFN) Centrepoints() []geom.Point3 {
	out := make([]geom.Point3, 0, len(d.Macrofractures)+len(d.Microfractures))
	for _, mf := range d.Macrofractures {
		out = append(out, mf.Centre)
	}
	for _, uf := range d.Microfractures {
		out = append(out, uf.Centre)
	}
	return out
}
