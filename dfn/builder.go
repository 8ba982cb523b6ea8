// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dfn

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"

	"github.com/JointFlow/DFMGenerator-sub004/dfnconfig"
	"github.com/JointFlow/DFMGenerator-sub004/dipset"
	"github.com/JointFlow/DFMGenerator-sub004/geom"
)

// NextMacrofractureID reserves and returns the next ID from this
// builder's shared macrofracture counter. Package grid's cross-boundary
// continuation pass (spec §4.6 step 3) uses this so continuation
// fractures it assembles outside package dfn stay numbered from the
// same sequence as this builder's own per-cell output.
func (bld *Builder) NextMacrofractureID() int {
	bld.nextID++
	return bld.nextID
}

// CellBounds is the horizontal footprint a Builder instantiates objects
// within, and the boundary-faulting flags a tip may cross (spec §4.6,
// §4.5): order is North, East, South, West, matching package grid's Edge.
type CellBounds struct {
	MinX, MinY, MaxX, MaxY float64
	Thickness              float64
	Faulted                [4]bool
}

// contains reports whether p lies within b (inclusive)
func (b CellBounds) contains(p geom.Point3) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Builder instantiates explicit DFN objects from an implicit dip set's
// final population counts (spec §4.6). One Builder serves one
// gridblock; it is not safe for concurrent use by multiple goroutines
// (matches the teacher's driver-per-integration-point pattern, where
// each instance owns private mutable history).
type Builder struct {
	Cfg      dfnconfig.Config
	nextID   int
	nextMFID int
}

// NewBuilder validates cfg and returns a Builder; GenerateExplicit must
// be true (callers should skip DFN generation entirely otherwise).
func NewBuilder(cfg dfnconfig.Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.GenerateExplicit {
		return nil, chk.Err("dfn: NewBuilder requires dfnconfig.Config.GenerateExplicit")
	}
	if cfg.ProbabilisticNucleationLimit == -1 {
		// automatic limit: below one expected fracture per draw the
		// deterministic rounding loses the whole population, so that is
		// where the Poisson draw takes over (spec §4.7 "-1 auto")
		cfg.ProbabilisticNucleationLimit = 1
	}
	return &Builder{Cfg: cfg}, nil
}

// drawPoissonCount mirrors dipset's probabilistic-nucleation draw (spec
// §4.6, §4.7 "probabilistic_nucleation_limit"): below the configured
// limit, the expected count is drawn as a Poisson variate; at or above
// it, explicit instantiation would be too costly, so the expected count
// is rounded deterministically instead.
func drawPoissonCount(expected float64, limit float64) int {
	if expected <= 0 {
		return 0
	}
	if expected >= limit {
		return int(expected + 0.5)
	}
	l := math.Exp(-expected)
	k := 0
	p := 1.0
	for {
		k++
		p *= rnd.Float64(0, 1)
		if p <= l {
			return k - 1
		}
	}
}

// placeUniform draws a uniformly random footprint position within
// bounds, at mid-layer elevation (spec §4.6: cell-uniform placement when
// the implicit model carries no finer spatial information).
func placeUniform(b CellBounds) geom.Point3 {
	x := rnd.Float64(b.MinX, b.MaxX)
	y := rnd.Float64(b.MinY, b.MaxY)
	return geom.Point3{X: x, Y: y, Z: 0}
}

// BuildMicrofractures instantiates explicit microfracture disks from a
// dip set's current radius-bin histogram (spec §4.6).
func (bld *Builder) BuildMicrofractures(src SourceDipSet, bins []dipset.RadiusBin, bulkVolume float64, azimuth float64, meanAperture float64, bounds CellBounds) []*Microfracture {
	var out []*Microfracture
	for _, bin := range bins {
		if bin.P30 <= 0 || bin.RLo < bld.Cfg.MinMicrofractureRadius {
			continue
		}
		expected := bin.P30 * bulkVolume
		count := drawPoissonCount(expected, bld.Cfg.ProbabilisticNucleationLimit)
		radius := 0.5 * (bin.RLo + bin.RHi)
		for i := 0; i < count; i++ {
			bld.nextMFID++
			out = append(out, &Microfracture{
				ID:       bld.nextMFID,
				Source:   src,
				Centre:   placeUniform(bounds),
				Azimuth:  azimuth,
				Radius:   radius,
				Aperture: meanAperture,
			})
		}
	}
	return out
}

// BuildMacrofractures instantiates explicit macrofractures from a dip
// set's final node-category densities (active/relay/intersect): each
// fracture is centred at a uniformly drawn point and both tips are
// placed at the dip set's current mean macrofracture half-length, with
// the tip state of its node category. Tips are not grown step by step
// and are not cropped here.
func (bld *Builder) BuildMacrofractures(src SourceDipSet, d *dipset.DipSet, bulkVolume, meanAperture float64, bounds CellBounds) ([]*Macrofracture, error) {
	meanHalf := d.MeanMacrofractureLength()
	if meanHalf < bld.Cfg.MinMacrofractureLength && d.ActiveP30 <= 0 {
		meanHalf = bld.Cfg.MinMacrofractureLength
	}

	var out []*Macrofracture
	order := 0
	emit := func(density float64, endState TipState) {
		count := drawPoissonCount(density*bulkVolume, bld.Cfg.ProbabilisticNucleationLimit)
		for i := 0; i < count; i++ {
			bld.nextID++
			centre := placeUniform(bounds)
			mf := NewMacrofracture(bld.nextID, src, centre, d.Azimuth, order)
			order++
			mf.Aperture = meanAperture
			for end := 0; end < 2; end++ {
				dx, dy := mf.direction(TipEnd(end))
				mf.Tips[end].Position = geom.Point3{X: centre.X + dx*meanHalf, Y: centre.Y + dy*meanHalf, Z: centre.Z}
				mf.Tips[end].HalfLength = meanHalf
				mf.Tips[end].State = endState
			}
			out = append(out, mf)
		}
	}

	emit(d.ActiveP30, Completed)
	emit(d.RelayP30, RelayTerminated)
	emit(d.IntersectP30, IntersectTerminated)

	if bld.Cfg.LinkStressShadows {
		bld.linkRelayZones(out)
	}
	return out, nil
}

// BuildMacrofracturesAt instantiates macrofractures from a dip set's
// node-category densities as recorded in a historic Snapshot, rather
// than its live end-of-run state (spec §4.7 "n_intermediate_outputs"):
// used by package grid to build growth-stage snapshots at times before
// the final one. Per-timestep history only retains aggregate totals
// (spec §3), so the grid-level continuation/crop pass is not applied
// to these: the growth-stage assembler treats them as the
// macrofracture-only content of an intermediate stage.
func (bld *Builder) BuildMacrofracturesAt(src SourceDipSet, snap dipset.Snapshot, azimuth, bulkVolume, meanAperture float64, bounds CellBounds) ([]*Macrofracture, error) {
	meanHalf := snap.MeanMacroLength
	if meanHalf < bld.Cfg.MinMacrofractureLength && snap.ActiveP30 <= 0 {
		meanHalf = bld.Cfg.MinMacrofractureLength
	}

	var out []*Macrofracture
	order := 0
	emit := func(density float64, endState TipState) {
		count := drawPoissonCount(density*bulkVolume, bld.Cfg.ProbabilisticNucleationLimit)
		for i := 0; i < count; i++ {
			bld.nextID++
			centre := placeUniform(bounds)
			mf := NewMacrofracture(bld.nextID, src, centre, azimuth, order)
			order++
			mf.Aperture = meanAperture
			for end := 0; end < 2; end++ {
				dx, dy := mf.direction(TipEnd(end))
				mf.Tips[end].Position = geom.Point3{X: centre.X + dx*meanHalf, Y: centre.Y + dy*meanHalf, Z: centre.Z}
				mf.Tips[end].HalfLength = meanHalf
				mf.Tips[end].State = endState
			}
			out = append(out, mf)
		}
	}

	emit(snap.ActiveP30, Completed)
	emit(snap.RelayP30, RelayTerminated)
	emit(snap.IntersectP30, IntersectTerminated)
	return out, nil
}

// CropToBounds clamps any tip that has grown past the cell footprint
// back onto the boundary and marks it BoundaryCropped (spec §4.7
// "crop_at_boundary"). Cropping runs after cross-boundary continuation
// has had first refusal on each escaped tip, so a standalone (single
// cell) caller applies it directly while package grid applies it only
// to tips no neighbour accepted.
func (bld *Builder) CropToBounds(mf *Macrofracture, bounds CellBounds) {
	for end := 0; end < 2; end++ {
		t := &mf.Tips[end]
		if bounds.contains(t.Position) {
			continue
		}
		clamped := t.Position
		if clamped.X < bounds.MinX {
			clamped.X = bounds.MinX
		}
		if clamped.X > bounds.MaxX {
			clamped.X = bounds.MaxX
		}
		if clamped.Y < bounds.MinY {
			clamped.Y = bounds.MinY
		}
		if clamped.Y > bounds.MaxY {
			clamped.Y = bounds.MaxY
		}
		t.Position = clamped
		t.HalfLength = t.Position.Dist2D(mf.Centre)
		t.State = BoundaryCropped
	}
}

// linkRelayZones pairs every RelayTerminated tip with the other
// same-azimuth fracture whose centre is nearest to it, provided that
// centre lies within 4x the tip's own half-length (spec §4.7
// "link_stress_shadows"). A plain nearest-neighbor scan is used rather
// than gosl/gm.Bins: the corpus only exercises Bins.Init/Append for
// export bucketing, never a point-query method, so reproducing its
// query API here would be guesswork (see DESIGN.md).
func (bld *Builder) linkRelayZones(fracs []*Macrofracture) {
	for i, mf := range fracs {
		for end := 0; end < 2; end++ {
			t := &mf.Tips[end]
			if t.State != RelayTerminated {
				continue
			}
			best := -1
			bestDist := math.Inf(1)
			for j, other := range fracs {
				if j == i {
					continue
				}
				if geom.AngleBetween(mf.Azimuth, other.Azimuth) > 0.05 {
					continue // only link within-set relay pairs
				}
				dist := t.Position.Dist2D(other.Centre)
				if dist < bestDist {
					bestDist = dist
					best = other.ID
				}
			}
			shadowScale := 4 * math.Max(t.HalfLength, 1e-6)
			if best >= 0 && bestDist <= shadowScale {
				mf.RelayLinkedTo[end] = best
			}
		}
	}
}
