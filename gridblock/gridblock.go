// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gridblock

import (
	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/dipset"
	"github.com/JointFlow/DFMGenerator-sub004/fracset"
	"github.com/JointFlow/DFMGenerator-sub004/mechprops"
	"github.com/JointFlow/DFMGenerator-sub004/stressstate"
)

// DrivingStrainRate holds the imposed horizontal strain-rate history
// driving this cell (spec §4.1, §6): ε̇_h_min and ε̇_h_max are SI
// strain rates (1/s) along the cell's own principal axes.
type DrivingStrainRate struct {
	EpsDotHmin float64
	EpsDotHmax float64
}

// TerminationCaps holds the two global caps checked by the grid/engine
// rather than per-set (spec §4.2 test 4): deformation duration and
// maximum timestep count.
type TerminationCaps struct {
	DeformationDuration float64 // [s]
	MaxTimesteps        int
}

// Gridblock is one cell: geometry, owned state objects, and the
// implicit solver loop (spec §4.3).
type Gridblock struct {
	Geom  Geometry
	Props mechprops.Properties
	Stress *stressstate.State

	FractureSets []*fracset.FractureSet
	AzimuthHMin  float64 // azimuth of the H-min principal direction [rad]

	StressDist  dipset.StressDistribution
	Nucleation  dipset.NucleationPolicy
	Termination dipset.TerminationConfig
	Caps        TerminationCaps

	Driving func(simTime float64) DrivingStrainRate

	DtUpperBound float64
	MFP33Bound   float64
	DtFloor      float64 // hard floor for non-convergence detection (spec §7)

	SimTime      float64
	StepCount    int
	Complete     bool
	LastStepDt   float64
	FinalActiveTime float64
	NonConvergent bool
}

// New builds a Gridblock. Cells failing the validity check (spec §3,
// §7 "Degenerate cell") are still constructed but Geom.Valid is false;
// the caller (grid) is responsible for skipping inactive cells rather
// than advancing them.
func New(cp Cornerpoints, minLayerThickness float64, props mechprops.Properties, stress *stressstate.State, sets []*fracset.FractureSet, azimuthHMin float64, sd dipset.StressDistribution, nucl dipset.NucleationPolicy, term dipset.TerminationConfig, caps TerminationCaps, driving func(float64) DrivingStrainRate) (*Gridblock, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}
	geometry := DeriveGeometry(cp, minLayerThickness)
	return &Gridblock{
		Geom:         geometry,
		Props:        props,
		Stress:       stress,
		FractureSets: sets,
		AzimuthHMin:  azimuthHMin,
		StressDist:   sd,
		Nucleation:   nucl,
		Termination:  term,
		Caps:         caps,
		Driving:      driving,
		DtUpperBound: caps.DeformationDuration,
		MFP33Bound:   0.002,
		DtFloor:      1e-6,
	}, nil
}

// allDipSets returns every member dip set across every fracture set
func (g *Gridblock) allDipSets() []*dipset.DipSet {
	var all []*dipset.DipSet
	for _, fs := range g.FractureSets {
		all = append(all, fs.DipSets...)
	}
	return all
}

// anyActive reports whether at least one dip set is still propagating
func (g *Gridblock) anyActive() bool {
	for _, d := range g.allDipSets() {
		if d.Active {
			return true
		}
	}
	return false
}

// chooseDt implements step 1 of spec §4.3: the minimum suggested Δt
// across all active dip sets, bounded above and by the remaining
// simulation duration.
func (g *Gridblock) chooseDt() (float64, error) {
	dt := g.DtUpperBound
	if remaining := g.Caps.DeformationDuration - g.SimTime; remaining < dt {
		dt = remaining
	}
	trial := dt
	if trial <= 0 {
		return 0, nil
	}
	for _, fs := range g.FractureSets {
		for _, d := range fs.DipSets {
			if !d.Active {
				continue
			}
			aperture, err := fs.MeanAperture(d.ModeKind, fracset.Context{
				EffectiveNormalStress: g.Stress.EffectiveNormal(d.Azimuth, g.AzimuthHMin),
				PoissonsRatio:         g.Props.PoissonsRatio,
				YoungsModulus:         g.Props.YoungsModulus,
				LayerThickness:        g.Geom.Thickness,
			})
			if err != nil {
				return 0, err
			}
			suggested, err := d.SuggestDt(trial, dt, g.MFP33Bound, g.Stress, g.AzimuthHMin, g.Props.Biot, g.Geom.Thickness, aperture)
			if err != nil {
				return 0, err
			}
			if suggested < dt {
				dt = suggested
			}
		}
	}
	return dt, nil
}

// StepResult reports the outcome of one AdvanceOneStep call
type StepResult struct {
	Dt        float64
	Converged bool
	Done      bool // true once the cell has terminated (no further steps needed)
}

// preStepCheck evaluates the guards every step shares: degenerate
// geometry, completion, and the two global caps (spec §4.2 test 4).
// The second return is non-nil only for the degenerate-cell error.
func (g *Gridblock) preStepCheck() (done bool, err error) {
	if !g.Geom.Valid {
		return true, chk.Err("gridblock: cannot advance an invalid (degenerate) cell")
	}
	if g.Complete || !g.anyActive() {
		g.Complete = true
		return true, nil
	}
	if g.SimTime >= g.Caps.DeformationDuration || g.StepCount >= g.Caps.MaxTimesteps {
		g.Complete = true
		return true, nil
	}
	return false, nil
}

// SuggestStepDt returns the Δt this cell would choose for its next
// step (spec §4.5: "the cell reports its own step size"). The grid
// driver takes the minimum across a synchronization group before
// calling AdvanceStepWithDt, so cross-boundary peers see a consistent
// clock.
func (g *Gridblock) SuggestStepDt() (float64, error) {
	if done, err := g.preStepCheck(); done {
		return 0, err
	}
	return g.chooseDt()
}

// AdvanceOneStep implements the five-step per-timestep loop of spec
// §4.3, with the cell choosing its own Δt.
func (g *Gridblock) AdvanceOneStep() (StepResult, error) {
	if done, err := g.preStepCheck(); done {
		return StepResult{Done: true, Converged: err == nil}, err
	}
	dt, err := g.chooseDt()
	if err != nil {
		return StepResult{}, err
	}
	return g.AdvanceStepWithDt(dt)
}

// AdvanceStepWithDt runs steps 2-5 of the per-timestep loop under an
// externally agreed Δt: the grid driver passes the minimum step across
// a synchronization group so that cross-boundary stress-shadow and
// propagation queries see a consistent state (spec §4.5).
func (g *Gridblock) AdvanceStepWithDt(dt float64) (StepResult, error) {
	if done, err := g.preStepCheck(); done {
		return StepResult{Done: true, Converged: err == nil}, err
	}
	if remaining := g.Caps.DeformationDuration - g.SimTime; remaining < dt {
		dt = remaining
	}

	// a Δt below the hard floor is raised to it; one that is non-positive
	// or more than 1000x below the floor marks the cell non-convergent,
	// and outputs up to the last snapshot are retained (spec §7)
	if dt < g.DtFloor {
		if dt <= 0 || dt < g.DtFloor/1e3 {
			g.NonConvergent = true
			g.Complete = true
			return StepResult{Dt: dt, Converged: false, Done: true}, nil
		}
		dt = g.DtFloor
	}

	drive := DrivingStrainRate{}
	if g.Driving != nil {
		drive = g.Driving(g.SimTime)
	}

	// step 2: advance each dip set, collecting induced strain rates per
	// principal-direction channel
	var inducedMin, inducedMax float64
	activeDensityByOrientation := map[dipset.Orientation]float64{}
	for _, d := range g.allDipSets() {
		if d.Active {
			activeDensityByOrientation[d.Orientation] += d.ActiveP30
		}
	}
	for _, fs := range g.FractureSets {
		for _, d := range fs.DipSets {
			if !d.Active {
				continue
			}
			aperture, err := fs.MeanAperture(d.ModeKind, fracset.Context{
				EffectiveNormalStress: g.Stress.EffectiveNormal(d.Azimuth, g.AzimuthHMin),
				PoissonsRatio:         g.Props.PoissonsRatio,
				YoungsModulus:         g.Props.YoungsModulus,
				LayerThickness:        g.Geom.Thickness,
			})
			if err != nil {
				return StepResult{}, err
			}
			var crossDensity float64
			for orient, dens := range activeDensityByOrientation {
				if orient != d.Orientation {
					crossDensity += dens
				}
			}
			rate, err := d.Advance(dipset.AdvanceInputs{
				Dt:                    dt,
				Stress:                g.Stress,
				AzimuthHMin:           g.AzimuthHMin,
				Biot:                  g.Props.Biot,
				PoissonsRatio:         g.Props.PoissonsRatio,
				LayerThickness:        g.Geom.Thickness,
				CellBulkVolume:        g.Geom.BulkVolume(),
				StressDist:            g.StressDist,
				Nucleation:            g.Nucleation,
				CrossSetActiveDensity: crossDensity,
				MeanAperture:          aperture,
			})
			if err != nil {
				return StepResult{}, err
			}
			switch d.Orientation {
			case dipset.HMin:
				inducedMin += rate
			default:
				inducedMax += rate
			}
		}
	}

	// step 3: update stress state
	err = g.Stress.Advance(stressstate.Config{
		YoungsModulus: g.Props.YoungsModulus,
		PoissonsRatio: g.Props.PoissonsRatio,
		Friction:      g.Props.Friction,
		Biot:          g.Props.Biot,
	}, dt, drive.EpsDotHmin, drive.EpsDotHmax, inducedMin, inducedMax)
	if err != nil {
		return StepResult{}, err
	}

	g.SimTime += dt
	g.StepCount++
	g.LastStepDt = dt

	// step 4: snapshot all sets
	for _, fs := range g.FractureSets {
		for _, d := range fs.DipSets {
			aperture, err := fs.MeanAperture(d.ModeKind, fracset.Context{
				EffectiveNormalStress: g.Stress.EffectiveNormal(d.Azimuth, g.AzimuthHMin),
				PoissonsRatio:         g.Props.PoissonsRatio,
				YoungsModulus:         g.Props.YoungsModulus,
				LayerThickness:        g.Geom.Thickness,
			})
			if err != nil {
				return StepResult{}, err
			}
			if _, err := d.Snapshot(g.SimTime, g.Geom.Thickness, aperture); err != nil {
				return StepResult{}, err
			}
		}
	}

	// step 5: evaluate termination
	allDone := true
	for _, fs := range g.FractureSets {
		for _, d := range fs.DipSets {
			if !d.Active {
				continue
			}
			aperture, err := fs.MeanAperture(d.ModeKind, fracset.Context{
				EffectiveNormalStress: g.Stress.EffectiveNormal(d.Azimuth, g.AzimuthHMin),
				PoissonsRatio:         g.Props.PoissonsRatio,
				YoungsModulus:         g.Props.YoungsModulus,
				LayerThickness:        g.Geom.Thickness,
			})
			if err != nil {
				return StepResult{}, err
			}
			if d.ShouldTerminate(g.Termination, aperture, g.Geom.Thickness) {
				if g.FinalActiveTime < g.SimTime {
					g.FinalActiveTime = g.SimTime
				}
			} else {
				allDone = false
			}
		}
	}
	if allDone {
		g.Complete = true
		g.FinalActiveTime = g.SimTime
	}

	return StepResult{Dt: dt, Converged: true, Done: g.Complete}, nil
}

// GetFinalActiveTime returns the simulation time at which this cell's
// last dip set terminated (spec §4.3).
func (g *Gridblock) GetFinalActiveTime() float64 { return g.FinalActiveTime }
