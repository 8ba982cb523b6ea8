// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/dfn"
	"github.com/JointFlow/DFMGenerator-sub004/dfnconfig"
	"github.com/JointFlow/DFMGenerator-sub004/dipset"
	"github.com/JointFlow/DFMGenerator-sub004/fracset"
	"github.com/JointFlow/DFMGenerator-sub004/geom"
	"github.com/JointFlow/DFMGenerator-sub004/progress"
)

// cellBounds converts a Cell's derived gridblock geometry into the
// footprint package dfn's Builder instantiates objects within.
func cellBounds(c *Cell) dfn.CellBounds {
	g := c.Block.Geom
	return dfn.CellBounds{
		MinX: g.MinX, MinY: g.MinY, MaxX: g.MaxX, MaxY: g.MaxY,
		Thickness: g.Thickness,
		Faulted:   c.Faulted,
	}
}

func meanAperture(c *Cell, fs *fracset.FractureSet, d *dipset.DipSet) (float64, error) {
	return fs.MeanAperture(d.ModeKind, fracset.Context{
		EffectiveNormalStress: c.Block.Stress.EffectiveNormal(d.Azimuth, c.Block.AzimuthHMin),
		PoissonsRatio:         c.Block.Props.PoissonsRatio,
		YoungsModulus:         c.Block.Props.YoungsModulus,
		LayerThickness:        c.Block.Geom.Thickness,
	})
}

// GenerateDFN runs the explicit phase (spec §4.5 "GenerateDFN", §4.6):
// it instantiates microfracture and macrofracture objects from every
// valid cell's converged implicit population, then stitches tips that
// cross an unfaulted, azimuth-consistent boundary into a second, linked
// macrofracture segment on the neighbor side (spec §4.6 step 3).
func (g *Grid) GenerateDFN(cfg dfnconfig.Config, pctx progress.Context) (*dfn.GlobalDFN, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.GenerateExplicit {
		return &dfn.GlobalDFN{}, nil
	}
	bld, err := dfn.NewBuilder(cfg)
	if err != nil {
		return nil, err
	}

	global := &dfn.GlobalDFN{}
	total := len(g.cells)
	done := 0
	for _, c := range g.cells {
		if pctx.Cancelled() {
			return global, nil
		}
		if c.Block == nil || !c.Block.Geom.Valid {
			done++
			continue
		}
		bounds := cellBounds(c)
		for _, fs := range c.Block.FractureSets {
			for _, d := range fs.DipSets {
				src := dfn.SourceDipSet{Orientation: d.Orientation, Mode: d.ModeKind}
				aperture, err := meanAperture(c, fs, d)
				if err != nil {
					return nil, err
				}

				micros := bld.BuildMicrofractures(src, d.Bins, c.Block.Geom.BulkVolume(), d.Azimuth, aperture, bounds)
				global.Microfractures = append(global.Microfractures, micros...)

				if c.Block.Geom.Thickness < cfg.MinLayerThickness {
					continue // spec §4.6 step 7: thin-layer cells omit macrofractures
				}
				macros, err := bld.BuildMacrofractures(src, d, c.Block.Geom.BulkVolume(), aperture, bounds)
				if err != nil {
					return nil, err
				}
				for _, mf := range macros {
					if mf.Tips[0].HalfLength+mf.Tips[1].HalfLength < cfg.MinMacrofractureLength {
						continue // spec §4.7 min_macrofracture_length
					}
					mf.CellRow, mf.CellCol = c.Row, c.Col
					global.Macrofractures = append(global.Macrofractures, mf)
				}
			}
		}
		done++
		pctx.Report("explicit", float64(done)/float64(total), "cell instantiated")
	}

	if cfg.PropagateInNucleationOrder {
		sort.SliceStable(global.Macrofractures, func(i, j int) bool {
			return global.Macrofractures[i].Tips[0].NucleationOrder < global.Macrofractures[j].Tips[0].NucleationOrder
		})
	}
	g.relayAcrossCells(cfg, global)
	g.terminateCrossings(cfg, global)
	g.linkCrossBoundary(cfg, bld, global)
	return global, nil
}

// terminateCrossings stops still-growing tips at the nearest
// non-parallel fracture centreline their growth path crosses (spec
// §4.6 step 5),
// searching the tip's own cell always and unfaulted neighbour cells
// under the same search_adjacent policy the relay search uses.
func (g *Grid) terminateCrossings(cfg dfnconfig.Config, global *dfn.GlobalDFN) {
	byCell := map[[2]int][]*dfn.Macrofracture{}
	for _, mf := range global.Macrofractures {
		key := [2]int{mf.CellRow, mf.CellCol}
		byCell[key] = append(byCell[key], mf)
	}
	for _, mf := range global.Macrofractures {
		c := g.At(mf.CellRow, mf.CellCol)
		if c == nil || c.Block == nil {
			continue
		}
		candidates := byCell[[2]int{c.Row, c.Col}]
		if adjacentSearchEnabled(cfg, c, candidates) {
			for _, e := range []Edge{North, East, South, West} {
				if nb := g.Neighbor(c.Row, c.Col, e); nb != nil {
					candidates = append(candidates, byCell[[2]int{nb.Row, nb.Col}]...)
				}
			}
		}
		for end := 0; end < 2; end++ {
			t := &mf.Tips[end]
			if t.State != dfn.Completed {
				continue
			}
			var nearest geom.Point3
			nearestDist := math.Inf(1)
			for _, other := range candidates {
				if other == mf {
					continue
				}
				if geom.AngleBetween(mf.Azimuth, other.Azimuth) <= 0.05 {
					continue // parallel sets interact via shadows, not crossings
				}
				hit, ok := geom.SegmentIntersection2D(mf.Centre, t.Position, other.Tips[0].Position, other.Tips[1].Position)
				if !ok {
					continue
				}
				if d := hit.Dist2D(mf.Centre); d < nearestDist {
					nearest, nearestDist = hit, d
				}
			}
			if !math.IsInf(nearestDist, 1) {
				t.Position = nearest
				t.HalfLength = nearestDist
				t.State = dfn.IntersectTerminated
			}
		}
	}
}

// shadowWidth returns the stress-shadow half-width a macrofracture
// projects: proportional to its tip-to-tip length with the same
// Poisson-factor scaling the implicit approximation uses
// (dipset.applyStressShadow, spec §4.2).
func shadowWidth(mf *dfn.Macrofracture, poissonsRatio float64) float64 {
	length := mf.Tips[0].HalfLength + mf.Tips[1].HalfLength
	return 0.5 * length / (1 - poissonsRatio)
}

// adjacentSearchEnabled decides whether cell c's tips search neighbour
// cells' stress shadows (spec §4.6 "SearchAdjacentGridblocks"):
// Automatic compares the cell's in-plane extent to the typical shadow
// width of the fractures it hosts.
func adjacentSearchEnabled(cfg dfnconfig.Config, c *Cell, hosted []*dfn.Macrofracture) bool {
	switch cfg.SearchAdjacent {
	case dfnconfig.SearchNone:
		return false
	case dfnconfig.SearchAll:
		return true
	}
	if len(hosted) == 0 {
		return false
	}
	var wSum float64
	for _, mf := range hosted {
		wSum += shadowWidth(mf, c.Block.Props.PoissonsRatio)
	}
	wMean := wSum / float64(len(hosted))
	extent := math.Min(c.Block.Geom.MaxX-c.Block.Geom.MinX, c.Block.Geom.MaxY-c.Block.Geom.MinY)
	return 2*wMean >= extent
}

// relayAcrossCells terminates still-growing (Completed I-node) tips
// that sit inside the stress shadow of a parallel fracture hosted by an
// unfaulted neighbour cell, subject to the search_adjacent policy (spec
// §4.6 step 4). Within-cell shadow interactions were already resolved
// statistically during the implicit phase and geometrically by
// Builder.linkRelayZones; this pass adds only the cross-cell cases the
// per-cell builder cannot see.
func (g *Grid) relayAcrossCells(cfg dfnconfig.Config, global *dfn.GlobalDFN) {
	if cfg.SearchAdjacent == dfnconfig.SearchNone {
		return
	}
	byCell := map[[2]int][]*dfn.Macrofracture{}
	for _, mf := range global.Macrofractures {
		key := [2]int{mf.CellRow, mf.CellCol}
		byCell[key] = append(byCell[key], mf)
	}
	for _, mf := range global.Macrofractures {
		c := g.At(mf.CellRow, mf.CellCol)
		if c == nil || c.Block == nil {
			continue
		}
		if !adjacentSearchEnabled(cfg, c, byCell[[2]int{c.Row, c.Col}]) {
			continue
		}
		for end := 0; end < 2; end++ {
			t := &mf.Tips[end]
			if t.State != dfn.Completed {
				continue
			}
			for _, e := range []Edge{North, East, South, West} {
				nb := g.Neighbor(c.Row, c.Col, e)
				if nb == nil || nb.Block == nil {
					continue
				}
				for _, other := range byCell[[2]int{nb.Row, nb.Col}] {
					if geom.AngleBetween(mf.Azimuth, other.Azimuth) > 0.05 {
						continue // shadows only deactivate parallel-set tips
					}
					w := shadowWidth(other, nb.Block.Props.PoissonsRatio)
					if t.Position.Dist2D(other.Centre) <= w {
						t.State = dfn.RelayTerminated
						if cfg.LinkStressShadows {
							mf.RelayLinkedTo[end] = other.ID
						}
						break
					}
				}
				if t.State != dfn.Completed {
					break
				}
			}
		}
	}
}

// exitEdge reports which cell edge (if any) pos lies beyond.
func exitEdge(pos geom.Point3, b dfn.CellBounds) (Edge, bool) {
	if pos.X < b.MinX {
		return West, true
	}
	if pos.X > b.MaxX {
		return East, true
	}
	if pos.Y < b.MinY {
		return North, true
	}
	if pos.Y > b.MaxY {
		return South, true
	}
	return 0, false
}

// boundaryPoint returns where the segment centre->tip crosses the cell
// edge identified by e.
func boundaryPoint(centre, tip geom.Point3, b dfn.CellBounds, e Edge) geom.Point3 {
	var target float64
	var useX bool
	switch e {
	case West:
		target, useX = b.MinX, true
	case East:
		target, useX = b.MaxX, true
	case North:
		target, useX = b.MinY, false
	default: // South
		target, useX = b.MaxY, false
	}
	var s float64
	if useX {
		if tip.X == centre.X {
			return tip
		}
		s = (target - centre.X) / (tip.X - centre.X)
	} else {
		if tip.Y == centre.Y {
			return tip
		}
		s = (target - centre.Y) / (tip.Y - centre.Y)
	}
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return centre.Lerp(tip, s)
}

// matchingDipSet returns the neighbor cell's dip set sharing src's
// orientation and mode, or nil if none is configured there.
func matchingDipSet(c *Cell, src dfn.SourceDipSet) *dipset.DipSet {
	if c == nil || c.Block == nil {
		return nil
	}
	for _, fs := range c.Block.FractureSets {
		if fs.Orientation != src.Orientation {
			continue
		}
		for _, d := range fs.DipSets {
			if d.ModeKind == src.Mode {
				return d
			}
		}
	}
	return nil
}

// linkCrossBoundary resolves every macrofracture tip that grew past its
// owning cell's footprint (spec §4.6 step 3): tips crossing an
// unfaulted edge into a neighbor whose matching dip set's azimuth is
// within MaxConsistencyAngle continue as a second, linked Macrofracture
// sharing the boundary crossing point; all other tips are cropped to
// the boundary (or left to propagate out, if crop_at_boundary is
// false). Only tips still in the Completed state (package dfn's "was an
// active I-node" sentinel) are candidates: relay- and
// intersect-terminated tips are neither continued nor cropped, and stay
// where the builder placed them even if that lies outside the cell.
func (g *Grid) linkCrossBoundary(cfg dfnconfig.Config, bld *dfn.Builder, global *dfn.GlobalDFN) {
	// iterate by index, not range, since continuation appends new
	// elements to global.Macrofractures as it goes
	for i := 0; i < len(global.Macrofractures); i++ {
		mf := global.Macrofractures[i]
		c := g.At(mf.CellRow, mf.CellCol)
		if c == nil {
			continue
		}
		bounds := cellBounds(c)
		for end := 0; end < 2; end++ {
			t := &mf.Tips[end]
			if t.State != dfn.Completed {
				continue
			}
			edge, out := exitEdge(t.Position, bounds)
			if !out {
				continue
			}

			nb := g.Neighbor(c.Row, c.Col, edge)
			linked := false
			if nb != nil && nb.Block != nil && nb.Block.Geom.Valid && nb.Block.Geom.Thickness >= cfg.MinLayerThickness {
				if match := matchingDipSet(nb, mf.Source); match != nil {
					if geom.AngleBetween(mf.Azimuth, match.Azimuth) <= cfg.MaxConsistencyAngle {
						boundary := boundaryPoint(mf.Centre, t.Position, bounds, edge)
						remaining := boundary.Dist2D(t.Position)
						dx, dy := geom.UnitVec2D(match.Azimuth)
						continuedEnd := geom.Point3{X: boundary.X + dx*remaining, Y: boundary.Y + dy*remaining, Z: boundary.Z}

						id := bld.NextMacrofractureID()
						cont := dfn.NewMacrofracture(id, mf.Source, boundary, match.Azimuth, t.NucleationOrder)
						cont.CellRow, cont.CellCol = nb.Row, nb.Col
						cont.Aperture = mf.Aperture
						cont.Tips[end].Position = continuedEnd
						cont.Tips[end].HalfLength = remaining
						cont.Tips[end].State = dfn.Completed
						cont.Tips[end].ContinuedFromID = mf.ID
						cont.Tips[1-end].Position = boundary
						cont.Tips[1-end].HalfLength = 0
						cont.Tips[1-end].State = dfn.Completed

						t.Position = boundary
						t.HalfLength = boundary.Dist2D(mf.Centre)
						t.ContinuedFromID = cont.ID

						global.Macrofractures = append(global.Macrofractures, cont)
						linked = true
					}
				}
			}
			if !linked && cfg.CropAtBoundary {
				t.Position = boundaryPoint(mf.Centre, t.Position, bounds, edge)
				t.HalfLength = t.Position.Dist2D(mf.Centre)
				t.State = dfn.BoundaryCropped
			}
			// else: crop_at_boundary is false and no consistent neighbor
			// exists, so the tip is left exactly where it grew to (spec
			// §4.6 step 3 "propagate out").
		}
	}
}

// GenerateDFNGrowthStages builds the explicit DFN at cfg.NIntermediateOutputs
// intermediate simulation times plus the final one (spec §4.5
// "DFNGrowthStages", §4.7 "n_intermediate_outputs",
// "intermediates_by_time"). Per-timestep history only retains aggregate
// totals, not full microfracture bin histograms (spec §3), so
// intermediate stages carry macrofractures only; the final stage alone
// also carries microfractures and cross-boundary-linked segments, built
// from the live end-of-run state via GenerateDFN.
func (g *Grid) GenerateDFNGrowthStages(cfg dfnconfig.Config, pctx progress.Context) ([]dfn.GrowthStage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.GenerateExplicit {
		return nil, nil
	}

	endtimes := g.GetTimestepEndtimeList()
	final, err := g.GenerateDFN(cfg, pctx)
	if err != nil {
		return nil, err
	}
	finalTime := 0.0
	if len(endtimes) > 0 {
		finalTime = endtimes[len(endtimes)-1]
	}
	finalStage := dfn.GrowthStage{Time: finalTime, Macrofractures: final.Macrofractures, Microfractures: final.Microfractures}

	if cfg.NIntermediateOutputs <= 0 || len(endtimes) == 0 {
		return []dfn.GrowthStage{finalStage}, nil
	}

	bld, err := dfn.NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	var candidates []dfn.GrowthStage
	for _, t := range endtimes {
		stage, err := g.buildMacrofractureStageAt(cfg, bld, t)
		if err != nil {
			return nil, err
		}
		stage.Time = t
		candidates = append(candidates, stage)
	}

	picked, err := dfn.Stages(cfg, candidates)
	if err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return []dfn.GrowthStage{finalStage}, nil
	}
	picked[len(picked)-1] = finalStage
	for i := range picked {
		picked[i].Index = i
	}
	return picked, nil
}

// buildMacrofractureStageAt instantiates macrofractures only, from
// every active cell's historic Snapshot at time t (spec §3 "state_at").
func (g *Grid) buildMacrofractureStageAt(cfg dfnconfig.Config, bld *dfn.Builder, t float64) (dfn.GrowthStage, error) {
	var stage dfn.GrowthStage
	for _, c := range g.cells {
		if c.Block == nil || !c.Block.Geom.Valid || c.Block.Geom.Thickness < cfg.MinLayerThickness {
			continue
		}
		bounds := cellBounds(c)
		for _, fs := range c.Block.FractureSets {
			for _, d := range fs.DipSets {
				snap, ok := d.StateAt(t)
				if !ok {
					continue
				}
				src := dfn.SourceDipSet{Orientation: d.Orientation, Mode: d.ModeKind}
				aperture, err := meanAperture(c, fs, d)
				if err != nil {
					return stage, err
				}
				macros, err := bld.BuildMacrofracturesAt(src, snap, d.Azimuth, c.Block.Geom.BulkVolume(), aperture, bounds)
				if err != nil {
					return stage, chk.Err("grid: GenerateDFNGrowthStages failed at t=%v: %v", t, err)
				}
				for _, mf := range macros {
					mf.CellRow, mf.CellCol = c.Row, c.Col
				}
				stage.Macrofractures = append(stage.Macrofractures, macros...)
			}
		}
	}
	return stage, nil
}
