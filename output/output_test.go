// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/dipset"
	"github.com/JointFlow/DFMGenerator-sub004/fracset"
	"github.com/JointFlow/DFMGenerator-sub004/geom"
	"github.com/JointFlow/DFMGenerator-sub004/grid"
	"github.com/JointFlow/DFMGenerator-sub004/gridblock"
	"github.com/JointFlow/DFMGenerator-sub004/mechprops"
	"github.com/JointFlow/DFMGenerator-sub004/stressstate"
)

func flatCell(thickness float64) gridblock.Cornerpoints {
	var cp gridblock.Cornerpoints
	top := []geom.Point3{{X: 0, Y: 0, Z: thickness}, {X: 100, Y: 0, Z: thickness}, {X: 100, Y: 100, Z: thickness}, {X: 0, Y: 100, Z: thickness}}
	base := []geom.Point3{{X: 0, Y: 0, Z: 0}, {X: 100, Y: 0, Z: 0}, {X: 100, Y: 100, Z: 0}, {X: 0, Y: 100, Z: 0}}
	copy(cp[0:4], top)
	copy(cp[4:8], base)
	return cp
}

func Test_output01_collect_single_cell(tst *testing.T) {
	chk.PrintTitle("output01: Collect assembles a 1x1 grid's output")
	props := mechprops.Properties{YoungsModulus: 3e10, PoissonsRatio: 0.25, Biot: 1, Friction: 0.5}
	cfg := stressstate.Config{YoungsModulus: props.YoungsModulus, PoissonsRatio: props.PoissonsRatio, Friction: props.Friction, Biot: props.Biot}
	state, err := stressstate.New(cfg, 5e7, 1e6, 0, 0, stressstate.Elastic, -1, 0, 0, false)
	if err != nil {
		tst.Fatalf("stressstate.New failed: %v", err)
	}

	dparams := mechprops.DipSetParams{InitialDensityA: 1e-3, SizeExponentC: 2, SubcriticalB: 10, CriticalVelocity: 1e-3, FractureToughnessKIc: 1e6}
	d, err := dipset.New(dipset.HMin, dipset.Mode1, 0, dparams, 5, 0.001, 50)
	if err != nil {
		tst.Fatalf("dipset.New failed: %v", err)
	}
	fs, err := fracset.New(dipset.HMin, []*dipset.DipSet{d}, map[dipset.Mode]fracset.ApertureParams{
		dipset.Mode1: {Law: fracset.Uniform, UniformAperture: 1e-4},
	})
	if err != nil {
		tst.Fatalf("fracset.New failed: %v", err)
	}

	caps := gridblock.TerminationCaps{DeformationDuration: 1e6, MaxTimesteps: 10}
	term := dipset.TerminationConfig{PeakActiveRatio: 0.01, ActiveTotalRatio: 0.01, ClearZoneFloor: 0.01}
	gb, err := gridblock.New(flatCell(100), 1, props, state, []*fracset.FractureSet{fs}, 0, dipset.StressShadow, dipset.NucleationPolicy{Mode: dipset.Deterministic}, term, caps, nil)
	if err != nil {
		tst.Fatalf("gridblock.New failed: %v", err)
	}

	g, err := grid.New(1, 1, []*grid.Cell{{Row: 0, Col: 0, Block: gb}})
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}

	out, err := Collect(g, 0)
	if err != nil {
		tst.Fatalf("Collect failed: %v", err)
	}
	if len(out.Cells) != 1 {
		tst.Fatalf("expected 1 cell, got %d", len(out.Cells))
	}
	if out.At(0, 0) == nil {
		tst.Fatalf("expected a record at (0,0)")
	}
}
