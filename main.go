// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"

	"github.com/JointFlow/DFMGenerator-sub004/dfn"
	"github.com/JointFlow/DFMGenerator-sub004/dfnconfig"
	"github.com/JointFlow/DFMGenerator-sub004/dipset"
	"github.com/JointFlow/DFMGenerator-sub004/fracset"
	"github.com/JointFlow/DFMGenerator-sub004/geom"
	"github.com/JointFlow/DFMGenerator-sub004/grid"
	"github.com/JointFlow/DFMGenerator-sub004/gridblock"
	"github.com/JointFlow/DFMGenerator-sub004/mechprops"
	"github.com/JointFlow/DFMGenerator-sub004/output"
	"github.com/JointFlow/DFMGenerator-sub004/progress"
	"github.com/JointFlow/DFMGenerator-sub004/stressstate"
	"github.com/JointFlow/DFMGenerator-sub004/units"
)

func main() {

	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	rows := flag.Int("rows", 4, "number of gridblock rows")
	cols := flag.Int("cols", 4, "number of gridblock columns")
	cellSize := flag.Float64("cellsize", 100, "gridblock footprint side length [m]")
	thickness := flag.Float64("thickness", 50, "layer thickness [m]")
	strainRate := flag.Float64("strainrate", -1e-15, "driving strain rate along H-min [1/s]; negative = extension")
	duration := flag.Float64("duration", 0.3, "deformation duration [timeunits]")
	timeunits := flag.String("timeunits", "Ma", "time units for -duration and reported stage times: s, yr or Ma")
	verbose := flag.Bool("verbose", true, "print progress reports")
	seed := flag.Int("seed", 0, "RNG seed for probabilistic draws (0 = time-based)")
	explicit := flag.Bool("explicit", true, "generate the explicit DFN after the implicit run")
	nStages := flag.Int("stages", 3, "number of intermediate growth-stage snapshots (0 = final only)")
	flag.Parse()

	io.PfWhite("\nDFMGenerator -- explicit/implicit fracture network simulation\n\n")

	rnd.Init(*seed)

	tunit, err := units.Parse(*timeunits)
	if err != nil {
		chk.Panic("invalid time units: %v", err)
	}
	durSeconds, err := tunit.ToSeconds(*duration)
	if err != nil {
		chk.Panic("invalid duration: %v", err)
	}

	g, err := buildUniformGrid(*rows, *cols, *cellSize, *thickness, durSeconds, *strainRate)
	if err != nil {
		chk.Panic("failed to build grid: %v", err)
	}

	pctx := progress.NewBackground()
	if *verbose {
		pctx.Sink = progress.IOSink{}
	}

	if err := g.CalculateAllFractureData(pctx); err != nil {
		chk.Panic("simulation failed: %v", err)
	}

	out, err := output.Collect(g, durSeconds)
	if err != nil {
		chk.Panic("failed to collect output: %v", err)
	}
	io.Pf("done: %d cells processed\n", len(out.Cells))

	dcfg := dfnconfig.Config{
		GenerateExplicit:             *explicit,
		MinMicrofractureRadius:       0.01,
		MinMacrofractureLength:       1,
		MinLayerThickness:            *thickness * 0.01,
		MaxConsistencyAngle:          0.2,
		CropAtBoundary:               true,
		LinkStressShadows:            true,
		MicrofractureCornerpoints:    8,
		NIntermediateOutputs:         *nStages,
		IntermediatesByTime:          dfnconfig.ByTime,
		ProbabilisticNucleationLimit: 1e4,
		SearchAdjacent:               dfnconfig.SearchAutomatic,
		OutputCentrepoints:           true,
	}
	if dcfg.GenerateExplicit {
		stages, err := g.GenerateDFNGrowthStages(dcfg, pctx)
		if err != nil {
			chk.Panic("failed to generate explicit DFN: %v", err)
		}
		for _, s := range stages {
			t, _ := tunit.FromSeconds(s.Time)
			io.Pf("stage %d (t=%.4g %v): %d macrofractures, %d microfractures\n",
				s.Index, t, tunit, len(s.Macrofractures), len(s.Microfractures))
		}
		if len(stages) > 0 {
			last := stages[len(stages)-1]
			network := &dfn.GlobalDFN{Macrofractures: last.Macrofractures, Microfractures: last.Microfractures}
			patches, err := network.RenderPatches(dcfg, func(row, col int) float64 {
				if c := g.At(row, col); c != nil && c.Block != nil {
					return c.Block.Geom.Thickness
				}
				return *thickness
			})
			if err != nil {
				chk.Panic("failed to render DFN patches: %v", err)
			}
			io.Pf("final network: %d patches", len(patches))
			if dcfg.OutputCentrepoints {
				io.Pf(", %d centrepoints", len(network.Centrepoints()))
			}
			io.Pf("\n")
		}
	}
}

// buildUniformGrid constructs a rows x cols grid of identical, unfaulted
// gridblocks on a regular footprint, each seeded with one H-min and one
// H-max dip set (spec §4.5, §6). This stands in for the file-driven
// input package (package input) when no .sim-like configuration file is
// supplied; a full deployment wires package input's CellRecord/
// PropertyField machinery in here instead.
func buildUniformGrid(rows, cols int, cellSize, thickness, duration, strainRate float64) (*grid.Grid, error) {
	props := mechprops.Properties{
		YoungsModulus: 3e10, PoissonsRatio: 0.25, Biot: 1, Friction: 0.5,
		CrackSurfEner: 10, TauRock: 1e12, TauFracture: 1e10,
		RockDensity: 2600, FluidDensity: 1000, Gravity: 9.81,
	}
	dparams := mechprops.DipSetParams{
		InitialDensityA: 1e-4, SizeExponentC: 2, SubcriticalB: 10,
		CriticalVelocity: 1e-3, FractureToughnessKIc: props.FractureToughness(),
	}
	term := dipset.TerminationConfig{PeakActiveRatio: 0.01, ActiveTotalRatio: 0.01, ClearZoneFloor: 0.01}
	caps := gridblock.TerminationCaps{DeformationDuration: duration, MaxTimesteps: 200}
	sscfg := stressstate.Config{YoungsModulus: props.YoungsModulus, PoissonsRatio: props.PoissonsRatio, Friction: props.Friction, Biot: props.Biot}

	cells := make([]*grid.Cell, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x0, y0 := float64(c)*cellSize, float64(r)*cellSize
			var cp gridblock.Cornerpoints
			top := []geom.Point3{{X: x0, Y: y0, Z: thickness}, {X: x0 + cellSize, Y: y0, Z: thickness}, {X: x0 + cellSize, Y: y0 + cellSize, Z: thickness}, {X: x0, Y: y0 + cellSize, Z: thickness}}
			base := []geom.Point3{{X: x0, Y: y0, Z: 0}, {X: x0 + cellSize, Y: y0, Z: 0}, {X: x0 + cellSize, Y: y0 + cellSize, Z: 0}, {X: x0, Y: y0 + cellSize, Z: 0}}
			copy(cp[0:4], top)
			copy(cp[4:8], base)

			depth := 2000.0
			state, err := stressstate.New(sscfg, props.EffectiveVertical(depth), 1e7, 0, 0, stressstate.Elastic, -1, props.TauRock, props.TauFracture, false)
			if err != nil {
				return nil, err
			}

			dHMin, err := dipset.New(dipset.HMin, dipset.Mode1, 0, dparams, 10, 0.001, thickness/2)
			if err != nil {
				return nil, err
			}
			dHMax, err := dipset.New(dipset.HMax, dipset.Mode1, 1.5707963267948966, dparams, 10, 0.001, thickness/2)
			if err != nil {
				return nil, err
			}
			fsHMin, err := fracset.New(dipset.HMin, []*dipset.DipSet{dHMin}, map[dipset.Mode]fracset.ApertureParams{
				dipset.Mode1: {Law: fracset.Uniform, UniformAperture: 1e-4},
			})
			if err != nil {
				return nil, err
			}
			fsHMax, err := fracset.New(dipset.HMax, []*dipset.DipSet{dHMax}, map[dipset.Mode]fracset.ApertureParams{
				dipset.Mode1: {Law: fracset.Uniform, UniformAperture: 1e-4},
			})
			if err != nil {
				return nil, err
			}

			driving := func(simTime float64) gridblock.DrivingStrainRate {
				return gridblock.DrivingStrainRate{EpsDotHmin: strainRate}
			}
			gb, err := gridblock.New(cp, 1, props, state, []*fracset.FractureSet{fsHMin, fsHMax}, 0,
				dipset.StressShadow, dipset.NucleationPolicy{Mode: dipset.Deterministic}, term, caps, driving)
			if err != nil {
				return nil, err
			}
			cells = append(cells, &grid.Cell{Row: r, Col: c, Block: gb})
		}
	}
	return grid.New(rows, cols, cells)
}
