// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_geom01_angle_between(tst *testing.T) {

	chk.PrintTitle("geom01: AngleBetween treats azimuths as undirected lines")

	chk.Float64(tst, "same azimuth", 1e-12, AngleBetween(0.3, 0.3), 0)
	chk.Float64(tst, "antiparallel is the same line", 1e-12, AngleBetween(0.1, 0.1+math.Pi), 0)
	chk.Float64(tst, "quarter turn", 1e-12, AngleBetween(0, math.Pi/2), math.Pi/2)
	chk.Float64(tst, "wraparound", 1e-12, AngleBetween(0.1, math.Pi+0.2), 0.1)
	chk.Float64(tst, "symmetry", 1e-12, AngleBetween(1.2, 0.4), AngleBetween(0.4, 1.2))
}

func Test_geom02_circle_cornerpoints(tst *testing.T) {

	chk.PrintTitle("geom02: circle cornerpoints lie on the fracture plane at radius r")

	c := Point3{X: 10, Y: -5, Z: 3}
	r := 2.5
	az := 0.7
	ring, err := CircleCornerpoints(c, r, az, 8)
	if err != nil {
		tst.Fatalf("CircleCornerpoints failed: %v", err)
	}
	if len(ring) != 8 {
		tst.Fatalf("expected 8 points, got %d", len(ring))
	}
	for i, p := range ring {
		d := p.Sub(c)
		dist := math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
		chk.Float64(tst, "radius", 1e-12, dist, r)
		// the plane contains the strike direction and the vertical, so
		// the point's horizontal offset must be along the strike azimuth
		horiz := math.Sqrt(d.X*d.X + d.Y*d.Y)
		if horiz > 1e-12 {
			chk.Float64(tst, "in-plane", 1e-9, math.Abs(d.X*math.Sin(az)-d.Y*math.Cos(az)), 0)
		}
		_ = i
	}

	if _, err := CircleCornerpoints(c, r, az, 2); err == nil {
		tst.Fatalf("expected error for n < 3")
	}
}

func Test_geom03_plane_coords_roundtrip(tst *testing.T) {

	chk.PrintTitle("geom03: plane-coordinate transform round-trips")

	origin := Point3{X: 1, Y: 2, Z: 3}
	az := 1.1
	p := FromPlaneCoords(4.2, -1.7, origin, az)
	u, v := ToPlaneCoords(p, origin, az)
	chk.Float64(tst, "u", 1e-12, u, 4.2)
	chk.Float64(tst, "v", 1e-12, v, -1.7)
}

func Test_geom04_segment_intersection(tst *testing.T) {

	chk.PrintTitle("geom04: 2D segment intersection")

	p, ok := SegmentIntersection2D(Point3{X: -1, Y: 0}, Point3{X: 1, Y: 0}, Point3{X: 0, Y: -1}, Point3{X: 0, Y: 1})
	if !ok {
		tst.Fatalf("expected crossing segments to intersect")
	}
	chk.Float64(tst, "x", 1e-12, p.X, 0)
	chk.Float64(tst, "y", 1e-12, p.Y, 0)

	if _, ok := SegmentIntersection2D(Point3{X: -1, Y: 0}, Point3{X: 1, Y: 0}, Point3{X: 2, Y: -1}, Point3{X: 2, Y: 1}); ok {
		tst.Fatalf("expected disjoint segments not to intersect")
	}
	if _, ok := SegmentIntersection2D(Point3{X: 0, Y: 0}, Point3{X: 1, Y: 0}, Point3{X: 0, Y: 1}, Point3{X: 1, Y: 1}); ok {
		tst.Fatalf("expected parallel segments not to intersect")
	}
}

func Test_geom05_quad_split_and_fan(tst *testing.T) {

	chk.PrintTitle("geom05: quad split and polygon fan triangulation")

	q := MacrofractureSegment(Point3{X: 0, Y: 0, Z: 50}, Point3{X: 10, Y: 0, Z: 50}, 100)
	chk.Float64(tst, "top corner z", 1e-12, q[0].Z, 100)
	chk.Float64(tst, "base corner z", 1e-12, q[3].Z, 0)

	tris := q.Split()
	// the two triangles share the q[0]-q[2] diagonal
	if tris[0][0] != q[0] || tris[1][0] != q[0] || tris[0][2] != q[2] || tris[1][1] != q[2] {
		tst.Fatalf("split triangles do not share the diagonal: %+v", tris)
	}

	ring, err := CircleCornerpoints(Point3{}, 1, 0, 6)
	if err != nil {
		tst.Fatalf("CircleCornerpoints failed: %v", err)
	}
	fan, err := Fan(Point3{}, ring)
	if err != nil {
		tst.Fatalf("Fan failed: %v", err)
	}
	if len(fan) != 6 {
		tst.Fatalf("expected 6 fan triangles, got %d", len(fan))
	}
}
