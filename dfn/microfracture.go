// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dfn

import "github.com/JointFlow/DFMGenerator-sub004/geom"

// Microfracture is one explicit penny-shaped crack below the
// macrofracture transition radius (spec §4.6).
type Microfracture struct {
	ID       int
	Source   SourceDipSet
	Centre   geom.Point3
	Azimuth  float64 // strike azimuth [rad]
	Radius   float64 // [m]
	Aperture float64 // current mean aperture [m]
}

// Cornerpoints renders the microfracture as an n-sided polygon in its
// own plane (spec §4.7 microfracture_cornerpoints). n == 0 means only
// the centrepoint and radius are recorded; Cornerpoints then returns an
// empty, non-error ring and the caller is expected to emit just
// Centre/Radius.
func (m Microfracture) Cornerpoints(n int) ([]geom.Point3, error) {
	if n == 0 {
		return nil, nil
	}
	return geom.CircleCornerpoints(m.Centre, m.Radius, m.Azimuth, n)
}

// Triangulate fans the polygon into triangles, for triangular_segments
// output (spec §4.7).
func (m Microfracture) Triangulate(n int) ([]geom.Triangle, error) {
	ring, err := m.Cornerpoints(n)
	if err != nil {
		return nil, err
	}
	return geom.Fan(m.Centre, ring)
}
