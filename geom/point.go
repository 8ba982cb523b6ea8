// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the 3D geometry primitives the fracture engine
// needs: points, fracture-plane coordinate transforms and polygon
// construction. It wraps github.com/cpmech/gosl/gm the way the teacher's
// shp package wraps gm/la with shape-function-specific operations.
package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/gosl/la"
)

// Point3 is a point in 3D space (x, y, z); z is elevation (positive up)
type Point3 struct {
	X, Y, Z float64
}

// ToGm converts p to a gosl/gm point usable with gm.Bins nearest-point
// queries
func (p Point3) ToGm() *gm.Point {
	return &gm.Point{X: p.X, Y: p.Y, Z: p.Z}
}

// Sub returns p - q
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Add returns p + q
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Scale returns p scaled by f
func (p Point3) Scale(f float64) Point3 {
	return Point3{p.X * f, p.Y * f, p.Z * f}
}

// Lerp linearly interpolates between p and q at parameter t in [0,1]
func (p Point3) Lerp(q Point3, t float64) Point3 {
	return p.Add(q.Sub(p).Scale(t))
}

// Dist2D returns the horizontal (x-y) distance between p and q
func (p Point3) Dist2D(q Point3) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Mean returns the arithmetic mean of pts; used to derive layer
// thickness/depth from gridblock cornerpoints
func Mean(pts []Point3) Point3 {
	var m Point3
	for _, p := range pts {
		m = m.Add(p)
	}
	n := float64(len(pts))
	if n == 0 {
		return m
	}
	return m.Scale(1 / n)
}

// Azimuth returns the horizontal azimuth (radians, from the H-min axis,
// counter-clockwise) of the direction from p to q
func Azimuth(p, q Point3) float64 {
	return math.Atan2(q.Y-p.Y, q.X-p.X)
}

// UnitVec2D returns the horizontal unit vector at azimuth az (radians)
func UnitVec2D(az float64) (dx, dy float64) {
	return math.Cos(az), math.Sin(az)
}

// normalise folds an angle into [0, 2π)
func normalise(a float64) float64 {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleBetween returns the smallest unsigned angle (radians, in
// [0, π/2]) between two fracture-set azimuths, treating a and b as
// undirected lines (azimuth and azimuth+π are the same set)
func AngleBetween(a, b float64) float64 {
	d := normalise(a - b)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d
}

// SegmentIntersection2D returns the point where segments a1-a2 and
// b1-b2 cross in the horizontal plane, if they do; collinear overlaps
// report no intersection.
func SegmentIntersection2D(a1, a2, b1, b2 Point3) (Point3, bool) {
	r := a2.Sub(a1)
	s := b2.Sub(b1)
	denom := r.X*s.Y - r.Y*s.X
	if denom == 0 {
		return Point3{}, false
	}
	t := ((b1.X-a1.X)*s.Y - (b1.Y-a1.Y)*s.X) / denom
	u := ((b1.X-a1.X)*r.Y - (b1.Y-a1.Y)*r.X) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point3{}, false
	}
	return a1.Add(r.Scale(t)), true
}

// RotatePoint rotates p about the origin by angle (radians), in the
// horizontal plane; used to validate the "swap H-min/H-max and rotate
// output by 90°" invariant (spec §8)
func RotatePoint(p Point3, angle float64) Point3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Point3{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
		Z: p.Z,
	}
}

// PlaneBasis returns the two orthonormal in-plane basis vectors for a
// vertical fracture plane whose strike azimuth is az (radians); ex is
// horizontal along strike, ey is vertical (up)
func PlaneBasis(az float64) (ex, ey [3]float64) {
	cx, cy := UnitVec2D(az)
	ex = [3]float64{cx, cy, 0}
	ey = [3]float64{0, 0, 1}
	return
}

// ToPlaneCoords projects the 3D point p onto the vertical plane through
// origin at azimuth az, returning (along-strike, vertical) local
// coordinates. Grounded on the teacher's shp coordinate-transform style
// (local <-> global mappings via small dense matrices, gosl/la).
func ToPlaneCoords(p Point3, origin Point3, az float64) (u, v float64) {
	rel := p.Sub(origin)
	ex, ey := PlaneBasis(az)
	vec := []float64{rel.X, rel.Y, rel.Z}
	u = la.VecDot(vec, ex[:])
	v = la.VecDot(vec, ey[:])
	return
}

// FromPlaneCoords is the inverse of ToPlaneCoords
func FromPlaneCoords(u, v float64, origin Point3, az float64) Point3 {
	ex, ey := PlaneBasis(az)
	return Point3{
		X: origin.X + u*ex[0] + v*ey[0],
		Y: origin.Y + u*ex[1] + v*ey[1],
		Z: origin.Z + u*ex[2] + v*ey[2],
	}
}

// CircleCornerpoints samples n points evenly around a circle of radius r
// centred at c, lying in the vertical plane at azimuth az (the plane
// spanned by the strike direction and the vertical, see PlaneBasis).
// n must be >= 3.
func CircleCornerpoints(c Point3, r, az float64, n int) ([]Point3, error) {
	if n < 3 {
		return nil, chk.Err("geom: CircleCornerpoints requires n >= 3, got %d", n)
	}
	pts := make([]Point3, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		u := r * math.Cos(theta)
		v := r * math.Sin(theta)
		pts[i] = FromPlaneCoords(u, v, c, az)
	}
	return pts, nil
}
