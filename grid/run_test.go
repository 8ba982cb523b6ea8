// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"context"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/dipset"
	"github.com/JointFlow/DFMGenerator-sub004/fracset"
	"github.com/JointFlow/DFMGenerator-sub004/geom"
	"github.com/JointFlow/DFMGenerator-sub004/gridblock"
	"github.com/JointFlow/DFMGenerator-sub004/mechprops"
	"github.com/JointFlow/DFMGenerator-sub004/progress"
	"github.com/JointFlow/DFMGenerator-sub004/stressstate"
)

// buildLiveCell builds one 100x100x100 m cell at (row,col) with a
// seeded, tensile-loaded H-min dip set so its population actually
// grows over multiple timesteps.
func buildLiveCell(tst *testing.T, row, col int, duration float64) *Cell {
	x0, y0 := float64(col)*100, float64(row)*100
	var cp gridblock.Cornerpoints
	top := []geom.Point3{{X: x0, Y: y0, Z: 100}, {X: x0 + 100, Y: y0, Z: 100}, {X: x0 + 100, Y: y0 + 100, Z: 100}, {X: x0, Y: y0 + 100, Z: 100}}
	base := []geom.Point3{{X: x0, Y: y0, Z: 0}, {X: x0 + 100, Y: y0, Z: 0}, {X: x0 + 100, Y: y0 + 100, Z: 0}, {X: x0, Y: y0 + 100, Z: 0}}
	copy(cp[0:4], top)
	copy(cp[4:8], base)

	props := mechprops.Properties{
		YoungsModulus: 3e10, PoissonsRatio: 0.25, Biot: 1, Friction: 0.5,
		RockDensity: 2600, FluidDensity: 1000, Gravity: 9.81,
	}
	cfg := stressstate.Config{YoungsModulus: props.YoungsModulus, PoissonsRatio: props.PoissonsRatio, Friction: props.Friction, Biot: props.Biot}
	state, err := stressstate.New(cfg, 5e7, 1e6, 0, 0, stressstate.Elastic, 0, 0, 0, false)
	if err != nil {
		tst.Fatalf("stressstate.New failed: %v", err)
	}
	state.SigmaHmin = -1e6 // tensile driving stress on the H-min set

	dparams := mechprops.DipSetParams{InitialDensityA: 1e-3, SizeExponentC: 2, SubcriticalB: 10, CriticalVelocity: 1e-3, FractureToughnessKIc: 1e6}
	d, err := dipset.New(dipset.HMin, dipset.Mode1, 0, dparams, 10, 0.001, 50)
	if err != nil {
		tst.Fatalf("dipset.New failed: %v", err)
	}
	d.ActiveP30 = 1e-4
	d.ActiveHalfLenDensity = 1e-3

	fs, err := fracset.New(dipset.HMin, []*dipset.DipSet{d}, map[dipset.Mode]fracset.ApertureParams{
		dipset.Mode1: {Law: fracset.Uniform, UniformAperture: 1e-4},
	})
	if err != nil {
		tst.Fatalf("fracset.New failed: %v", err)
	}

	caps := gridblock.TerminationCaps{DeformationDuration: duration, MaxTimesteps: 15}
	term := dipset.TerminationConfig{PeakActiveRatio: 0.001, ActiveTotalRatio: 0.001, ClearZoneFloor: 0.001}
	gb, err := gridblock.New(cp, 1, props, state, []*fracset.FractureSet{fs}, 0,
		dipset.StressShadow, dipset.NucleationPolicy{Mode: dipset.Deterministic}, term, caps, nil)
	if err != nil {
		tst.Fatalf("gridblock.New failed: %v", err)
	}
	return &Cell{Row: row, Col: col, Block: gb}
}

func Test_run01_lockstep_within_sync_group(tst *testing.T) {

	chk.PrintTitle("run01: cross-boundary peers advance on a common clock")

	cells := []*Cell{buildLiveCell(tst, 0, 0, 1e7), buildLiveCell(tst, 0, 1, 1e7)}
	g, err := New(1, 2, cells)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}

	if err := g.CalculateAllFractureData(progress.NewBackground()); err != nil {
		tst.Fatalf("CalculateAllFractureData failed: %v", err)
	}
	for _, c := range cells {
		if !c.Block.Complete {
			tst.Fatalf("cell (%d,%d) did not complete", c.Row, c.Col)
		}
	}

	// both cells belong to one sync group across an unfaulted edge, so
	// their snapshot end-times must coincide
	h0 := cells[0].Block.FractureSets[0].DipSets[0].History
	h1 := cells[1].Block.FractureSets[0].DipSets[0].History
	if len(h0) == 0 || len(h0) != len(h1) {
		tst.Fatalf("expected identical history lengths, got %d and %d", len(h0), len(h1))
	}
	for i := range h0 {
		chk.Float64(tst, "aligned end-time", 1e-9, h0[i].Time, h1[i].Time)
	}

	// the merged end-time list is strictly increasing
	times := g.GetTimestepEndtimeList()
	if len(times) == 0 {
		tst.Fatalf("expected a non-empty end-time list")
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			tst.Fatalf("end-time list not strictly increasing at %d: %v", i, times)
		}
	}
}

func Test_run02_faulted_cells_run_independently(tst *testing.T) {

	chk.PrintTitle("run02: a fully faulted boundary decouples the cells")

	cells := []*Cell{buildLiveCell(tst, 0, 0, 1e7), buildLiveCell(tst, 0, 1, 1e7)}
	cells[0].Faulted[East] = true
	cells[1].Faulted[West] = true
	g, err := New(1, 2, cells)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	groups, err := g.SyncGroups()
	if err != nil {
		tst.Fatalf("SyncGroups failed: %v", err)
	}
	if len(groups) != 2 {
		tst.Fatalf("expected 2 independent groups, got %d", len(groups))
	}
	if err := g.CalculateAllFractureData(progress.NewBackground()); err != nil {
		tst.Fatalf("CalculateAllFractureData failed: %v", err)
	}
	for _, c := range cells {
		if !c.Block.Complete {
			tst.Fatalf("cell (%d,%d) did not complete", c.Row, c.Col)
		}
	}
}

func Test_run03_cancellation(tst *testing.T) {

	chk.PrintTitle("run03: cancellation stops the run promptly without error")

	cells := []*Cell{buildLiveCell(tst, 0, 0, 1e7)}
	g, err := New(1, 1, cells)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.CalculateAllFractureData(progress.Context{Ctx: ctx}); err != nil {
		tst.Fatalf("expected nil error on cancellation, got %v", err)
	}
	if cells[0].Block.Complete {
		tst.Fatalf("expected the cancelled cell to remain incomplete")
	}
}
