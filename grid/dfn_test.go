// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/dfn"
	"github.com/JointFlow/DFMGenerator-sub004/dfnconfig"
	"github.com/JointFlow/DFMGenerator-sub004/dipset"
	"github.com/JointFlow/DFMGenerator-sub004/fracset"
	"github.com/JointFlow/DFMGenerator-sub004/progress"
)

// seedLongFractures gives each cell's dip set a small population whose
// mean half-length far exceeds the 100 m cell footprint, so every
// instantiated fracture's tips escape their cell.
func seedLongFractures(cells []*Cell) {
	for _, c := range cells {
		d := c.Block.FractureSets[0].DipSets[0]
		d.ActiveP30 = 4e-6 // 4 fractures in a 1e6 m3 cell
		d.ActiveHalfLenDensity = d.ActiveP30 * 300
	}
}

func explicitCfg() dfnconfig.Config {
	return dfnconfig.Config{
		GenerateExplicit:             true,
		MinMicrofractureRadius:       0.01,
		MinMacrofractureLength:       1,
		MinLayerThickness:            1,
		MaxConsistencyAngle:          0.2,
		CropAtBoundary:               true,
		LinkStressShadows:            true,
		MicrofractureCornerpoints:    4,
		ProbabilisticNucleationLimit: 1, // deterministic counts for any expectation >= 1
	}
}

func Test_dfn01_cross_boundary_continuation(tst *testing.T) {

	chk.PrintTitle("dfn01: tips continue across an unfaulted, consistent boundary")

	cells := []*Cell{buildLiveCell(tst, 0, 0, 1e7), buildLiveCell(tst, 0, 1, 1e7)}
	seedLongFractures(cells)
	g, err := New(1, 2, cells)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}

	network, err := g.GenerateDFN(explicitCfg(), progress.NewBackground())
	if err != nil {
		tst.Fatalf("GenerateDFN failed: %v", err)
	}
	if len(network.Macrofractures) == 0 {
		tst.Fatalf("expected macrofractures in the network")
	}

	linked := 0
	for _, mf := range network.Macrofractures {
		for end := 0; end < 2; end++ {
			if mf.Tips[end].ContinuedFromID != 0 {
				linked++
				// a source tip stops on the point where its continuation
				// nucleates; the continuation's far tip may still be
				// cropped at the outer edge of the grid
				partner := findFracture(network, mf.Tips[end].ContinuedFromID)
				isSource := partner != nil && partner.Centre.Dist2D(mf.Tips[end].Position) < 1e-9
				if isSource && mf.Tips[end].State == dfn.BoundaryCropped {
					tst.Fatalf("a continued tip must not also be boundary-cropped")
				}
			}
		}
	}
	if linked == 0 {
		tst.Fatalf("expected at least one cross-boundary continuation")
	}

	// every link resolves, and at least one source tip shares its
	// boundary crossing point with its continuation's nucleation centre
	shared := 0
	for _, mf := range network.Macrofractures {
		for end := 0; end < 2; end++ {
			t := mf.Tips[end]
			if t.ContinuedFromID == 0 {
				continue
			}
			partner := findFracture(network, t.ContinuedFromID)
			if partner == nil {
				tst.Fatalf("dangling continuation link to fracture %d", t.ContinuedFromID)
			}
			if partner.Centre.Dist2D(t.Position) < 1e-9 {
				shared++
			}
		}
	}
	if shared == 0 {
		tst.Fatalf("expected a continuation pair sharing a boundary point")
	}
}

func findFracture(n *dfn.GlobalDFN, id int) *dfn.Macrofracture {
	for _, mf := range n.Macrofractures {
		if mf.ID == id {
			return mf
		}
	}
	return nil
}

func Test_dfn02_fault_blocks_continuation(tst *testing.T) {

	chk.PrintTitle("dfn02: a faulted boundary blocks continuation and crops instead")

	cells := []*Cell{buildLiveCell(tst, 0, 0, 1e7), buildLiveCell(tst, 0, 1, 1e7)}
	seedLongFractures(cells)
	cells[0].Faulted[East] = true
	cells[1].Faulted[West] = true
	g, err := New(1, 2, cells)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}

	network, err := g.GenerateDFN(explicitCfg(), progress.NewBackground())
	if err != nil {
		tst.Fatalf("GenerateDFN failed: %v", err)
	}
	for _, mf := range network.Macrofractures {
		for end := 0; end < 2; end++ {
			t := mf.Tips[end]
			if t.ContinuedFromID != 0 {
				tst.Fatalf("no tip may continue across a faulted boundary")
			}
			c := g.At(mf.CellRow, mf.CellCol)
			b := cellBounds(c)
			if t.Position.X < b.MinX-1e-9 || t.Position.X > b.MaxX+1e-9 ||
				t.Position.Y < b.MinY-1e-9 || t.Position.Y > b.MaxY+1e-9 {
				tst.Fatalf("cropped tip escaped its cell: %+v", t.Position)
			}
		}
	}
}

func Test_dfn04_crossing_termination(tst *testing.T) {

	chk.PrintTitle("dfn04: tips stop at the first crossing non-parallel fracture")

	c := buildLiveCell(tst, 0, 0, 1e7)

	// add a perpendicular (H-max) set so crossings exist
	d := c.Block.FractureSets[0].DipSets[0]
	dMax, err := dipset.New(dipset.HMax, dipset.Mode1, math.Pi/2, d.Params, 10, 0.001, 50)
	if err != nil {
		tst.Fatalf("dipset.New failed: %v", err)
	}
	fsMax, err := fracset.New(dipset.HMax, []*dipset.DipSet{dMax}, map[dipset.Mode]fracset.ApertureParams{
		dipset.Mode1: {Law: fracset.Uniform, UniformAperture: 1e-4},
	})
	if err != nil {
		tst.Fatalf("fracset.New failed: %v", err)
	}
	c.Block.FractureSets = append(c.Block.FractureSets, fsMax)

	cells := []*Cell{c}
	seedLongFractures(cells)
	dMax.ActiveP30 = 4e-6
	dMax.ActiveHalfLenDensity = dMax.ActiveP30 * 300

	g, err := New(1, 1, cells)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	network, err := g.GenerateDFN(explicitCfg(), progress.NewBackground())
	if err != nil {
		tst.Fatalf("GenerateDFN failed: %v", err)
	}

	crossed := 0
	for _, mf := range network.Macrofractures {
		for end := 0; end < 2; end++ {
			if mf.Tips[end].State == dfn.IntersectTerminated {
				crossed++
			}
		}
	}
	if crossed == 0 {
		tst.Fatalf("expected at least one intersect-terminated tip")
	}
}

func Test_dfn03_growth_stages(tst *testing.T) {

	chk.PrintTitle("dfn03: growth stages end with the full final network")

	cells := []*Cell{buildLiveCell(tst, 0, 0, 1e7)}
	g, err := New(1, 1, cells)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	if err := g.CalculateAllFractureData(progress.NewBackground()); err != nil {
		tst.Fatalf("CalculateAllFractureData failed: %v", err)
	}

	cfg := explicitCfg()
	cfg.NIntermediateOutputs = 3
	cfg.IntermediatesByTime = dfnconfig.ByTime
	stages, err := g.GenerateDFNGrowthStages(cfg, progress.NewBackground())
	if err != nil {
		tst.Fatalf("GenerateDFNGrowthStages failed: %v", err)
	}
	if len(stages) == 0 {
		tst.Fatalf("expected at least the final stage")
	}
	for i := 1; i < len(stages); i++ {
		if stages[i].Time < stages[i-1].Time {
			tst.Fatalf("stages out of time order at %d", i)
		}
	}

	// n_intermediate_outputs = 0 emits exactly one (final) stage
	cfg.NIntermediateOutputs = 0
	only, err := g.GenerateDFNGrowthStages(cfg, progress.NewBackground())
	if err != nil {
		tst.Fatalf("GenerateDFNGrowthStages failed: %v", err)
	}
	if len(only) != 1 {
		tst.Fatalf("expected exactly one stage for zero intermediates, got %d", len(only))
	}
}
