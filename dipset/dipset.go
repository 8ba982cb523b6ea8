// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dipset

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/mechprops"
	"github.com/JointFlow/DFMGenerator-sub004/stressstate"
)

// Snapshot is one history entry: the population state at the end of
// timestep T, stored so that a later query can retrieve the state at a
// given simulation time by binary search (spec §3).
type Snapshot struct {
	T               int
	Time            float64 // simulation end-time of this step [s]
	ActiveP30       float64 // a_MFP30
	RelayP30        float64 // sR_MFP30
	IntersectP30    float64 // sI_MFP30
	MFP32           float64
	MFP33           float64
	UFP32Total      float64
	MeanMacroLength float64
}

// MFP30Total returns a_MFP30 + sR_MFP30 + sI_MFP30
func (s Snapshot) MFP30Total() float64 {
	return s.ActiveP30 + s.RelayP30 + s.IntersectP30
}

// DipSet is the population-density state for one (orientation, mode)
// pair within one gridblock.
type DipSet struct {
	Orientation Orientation
	ModeKind    Mode
	Azimuth     float64 // strike azimuth of this set [rad]

	Params mechprops.DipSetParams

	Bins []RadiusBin // microfracture radius-bin histogram
	RMin float64     // minimum cutoff radius [m]
	RMax float64     // transition radius = h/2 [m]

	// macrofracture aggregates (densities, count/m^3)
	ActiveP30    float64
	RelayP30     float64
	IntersectP30 float64

	ActiveHalfLenDensity float64 // sum of half-lengths of active nodes, per unit volume [m * 1/m^3]
	FrozenHalfLenDensity float64 // same, for relay+intersect nodes (frozen at deactivation)

	PeakActiveMFP33 float64 // historic maximum of the active-only MFP33
	ClearZoneFrac   float64 // fraction of cell volume outside all shadows, in [0,1]

	Active  bool // false once termination tests fire
	History []Snapshot

	nextT int
}

// New builds a DipSet for one (orientation, mode) pair, seeding the
// radius-bin histogram with the initial microfracture population: a
// truncated power law with exponent c, total density A (spec §3, §6
// "initial microfracture density A"). The macrofracture aggregates
// start empty.
func New(orientation Orientation, mode Mode, azimuth float64, params mechprops.DipSetParams, nBins int, rMin, rMax float64) (*DipSet, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	bins, err := newBins(nBins, rMin, rMax)
	if err != nil {
		return nil, err
	}
	seedPowerLaw(bins, params.InitialDensityA, params.SizeExponentC, rMin, rMax)
	return &DipSet{
		Orientation:   orientation,
		ModeKind:      mode,
		Azimuth:       azimuth,
		Params:        params,
		Bins:          bins,
		RMin:          rMin,
		RMax:          rMax,
		ClearZoneFrac: 1,
		Active:        true,
	}, nil
}

// velocity returns the Charles'-law subcritical crack-tip velocity for
// a crack of radius r under driving stress sigmaD (spec §4.2):
//
//	K   = sigmaD * sqrt(pi * r)          (clipped to >= 0)
//	v   = v_crit * (K / K_Ic)^b           (clipped to <= v_crit)
func (d *DipSet) velocity(r, sigmaD float64) float64 {
	if sigmaD <= 0 || r <= 0 {
		return 0
	}
	K := sigmaD * math.Sqrt(math.Pi*r)
	ratio := K / d.Params.FractureToughnessKIc
	if ratio <= 0 {
		return 0
	}
	v := d.Params.CriticalVelocity * math.Pow(ratio, d.Params.SubcriticalB)
	if v > d.Params.CriticalVelocity {
		v = d.Params.CriticalVelocity
	}
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	return v
}

// AdvanceInputs bundles the per-step context a DipSet needs from its
// owning gridblock/grid: the ambient stress, geometry and cross-set/
// cross-cell statistical information the stress-shadow approximation
// uses (spec §4.2, §4.5).
type AdvanceInputs struct {
	Dt                    float64
	Stress                *stressstate.State
	AzimuthHMin           float64
	Biot                  float64
	PoissonsRatio         float64
	LayerThickness        float64
	CellBulkVolume        float64
	StressDist            StressDistribution
	Nucleation            NucleationPolicy
	CrossSetActiveDensity float64 // active-node density of non-parallel sets sharing this cell, for Y-node classification
	MeanAperture          float64 // current mean aperture for this dip set (from the aperture law, fracset)
}

// Advance advances the population by Δt and returns the anisotropic
// induced strain rate this set imposes on the rock (spec §4.2).
func (d *DipSet) Advance(in AdvanceInputs) (inducedStrainRate float64, err error) {
	if err = checkDuctileBoundary(in.StressDist); err != nil {
		return 0, err
	}
	if !d.Active || in.Dt <= 0 {
		return 0, nil
	}
	sigmaD := d.drivingStress(in.Stress, in.AzimuthHMin, in.Biot)

	mfp33Before := d.macrofractureMFP32(in.LayerThickness) * in.MeanAperture

	if err = d.nucleate(in, sigmaD); err != nil {
		return 0, err
	}
	if err = d.growMicrofractures(in.Dt, sigmaD); err != nil {
		return 0, err
	}
	d.growMacrofractures(in.Dt, sigmaD)
	d.applyStressShadow(in)

	mfp33After := d.macrofractureMFP32(in.LayerThickness) * in.MeanAperture
	activeMFP33 := d.ActiveHalfLenDensity * in.LayerThickness * in.MeanAperture
	if activeMFP33 > d.PeakActiveMFP33 {
		d.PeakActiveMFP33 = activeMFP33
	}
	inducedStrainRate = (mfp33After - mfp33Before) / in.Dt
	return inducedStrainRate, nil
}

// drivingStress returns the stress driving crack growth for this set
// (spec §4.2): Mode 1 uses the Biot-coupled effective tension normal to
// the set; Mode 2 uses the resolved shear stress minus frictional
// resistance.
func (d *DipSet) drivingStress(state *stressstate.State, azimuthHMin, biot float64) float64 {
	sigmaN := state.EffectiveNormal(d.Azimuth, azimuthHMin)
	if d.ModeKind == Mode1 {
		return biot*state.PorePres - sigmaN
	}
	theta := d.Azimuth - azimuthHMin
	tau := math.Abs(0.5 * (state.SigmaV - sigmaN) * math.Sin(2*theta))
	return tau - d.Params.Friction*sigmaN
}

// nucleate adds new smallest-radius microfractures at a rate
// proportional to A and the supercritical (clear-zone) volume (spec
// §4.2). The density enters the cohort currently holding the lowest
// radius range: bin transitions recycle cohorts back to RMin, so after
// the first transition the lowest cohort is not necessarily Bins[0]
// until growMicrofractures re-sorts.
func (d *DipSet) nucleate(in AdvanceInputs, sigmaD float64) error {
	if sigmaD <= 0 {
		return nil
	}
	rateDensity := d.Params.InitialDensityA * d.ClearZoneFrac
	expectedDensity := rateDensity * in.Dt
	if in.CellBulkVolume <= 0 {
		return chk.Err("dipset: cell bulk volume must be > 0 for nucleation")
	}
	expectedCount := expectedDensity * in.CellBulkVolume
	count := drawCount(expectedCount, in.Nucleation)
	addedDensity := count / in.CellBulkVolume
	if len(d.Bins) == 0 {
		return chk.Err("dipset: no radius bins allocated")
	}
	lowest := 0
	for i := 1; i < len(d.Bins); i++ {
		if d.Bins[i].RLo < d.Bins[lowest].RLo {
			lowest = i
		}
	}
	d.Bins[lowest].P30 += addedDensity
	return nil
}

// growMicrofractures advances every bin's radius cohort by the
// subcritical growth law, transitioning any bin whose upper edge
// exceeds RMax into the macrofracture population (spec §4.2). Emptied
// bins are recycled to repartition [RMin, lowest surviving RLo), and
// the slice is re-sorted by radius, so the histogram stays a
// radius-ordered, non-overlapping partition of [RMin, RMax) with a
// constant bin count.
func (d *DipSet) growMicrofractures(dt, sigmaD float64) error {
	vel := func(r float64) float64 { return d.velocity(r, sigmaD) }
	transitioned := make([]bool, len(d.Bins))
	var recycled []int
	for i := range d.Bins {
		b := &d.Bins[i]
		newLo, err := growthODE(b.RLo, dt, vel)
		if err != nil {
			return err
		}
		newHi, err := growthODE(b.RHi, dt, vel)
		if err != nil {
			return err
		}
		if newHi > d.RMax {
			// this cohort transitions to macrofractures; new
			// macrofractures start at half-length 0 (spec §4.2), so
			// only the node count contributes here
			d.ActiveP30 += b.P30
			b.P30 = 0
			transitioned[i] = true
			recycled = append(recycled, i)
			continue
		}
		b.RLo, b.RHi = newLo, newHi
	}
	if len(recycled) > 0 {
		low := d.RMax
		for i := range d.Bins {
			if !transitioned[i] && d.Bins[i].RLo < low {
				low = d.Bins[i].RLo
			}
		}
		if low <= d.RMin {
			low = d.RMin + (d.RMax-d.RMin)*1e-12
		}
		width := (low - d.RMin) / float64(len(recycled))
		for k, i := range recycled {
			d.Bins[i].RLo = d.RMin + float64(k)*width
			d.Bins[i].RHi = d.RMin + float64(k+1)*width
		}
	}
	sort.Slice(d.Bins, func(i, j int) bool { return d.Bins[i].RLo < d.Bins[j].RLo })
	return nil
}

// growMacrofractures advances active macrofracture half-lengths by
// v·Δt, using the current mean active half-length as the representative
// radius for the velocity law (spec §4.2).
func (d *DipSet) growMacrofractures(dt, sigmaD float64) {
	if d.ActiveP30 <= 0 {
		return
	}
	mean := d.ActiveHalfLenDensity / d.ActiveP30
	v := d.velocity(math.Max(mean, d.RMin), sigmaD)
	d.ActiveHalfLenDensity += v * dt * d.ActiveP30
}

// applyStressShadow runs the mean-field stress-shadow approximation
// used during the implicit phase: it estimates the clear-zone fraction
// from the self-set active population, and migrates a share of the
// active population into the Relay (parallel-shadow) and Intersect
// (crossing-fracture) static categories (spec §4.2). The precise
// geometric classification of individual tips is performed later by
// the explicit DFN builder (spec §4.6); this is a statistical
// approximation used only to drive the implicit population counts
// reported in the output arrays.
func (d *DipSet) applyStressShadow(in AdvanceInputs) {
	if in.StressDist == EvenlyDistributed {
		d.ClearZoneFrac = 1
		return
	}
	if d.ActiveP30 <= 0 {
		d.ClearZoneFrac = 1
		return
	}
	meanLen := d.ActiveHalfLenDensity / d.ActiveP30
	poissonFactor := 1.0 / (1.0 - in.PoissonsRatio)
	shadowVolFrac := poissonFactor * 2 * d.ActiveHalfLenDensity * meanLen * in.LayerThickness
	if shadowVolFrac > 1 {
		shadowVolFrac = 1
	}
	d.ClearZoneFrac = 1 - shadowVolFrac

	relayRate := math.Min(d.ActiveP30, shadowVolFrac*d.ActiveP30*in.Dt)
	if relayRate < 0 {
		relayRate = 0
	}
	var intersectRate float64
	if in.CrossSetActiveDensity > 0 {
		crossFrac := poissonFactor * in.CrossSetActiveDensity * meanLen * in.LayerThickness * in.Dt
		if crossFrac > 1 {
			crossFrac = 1
		}
		intersectRate = math.Min(d.ActiveP30-relayRate, crossFrac*d.ActiveP30)
	}
	moved := relayRate + intersectRate
	if moved <= 0 {
		return
	}
	movedHalfLen := 0.0
	if d.ActiveP30 > 0 {
		movedHalfLen = (moved / d.ActiveP30) * d.ActiveHalfLenDensity
	}
	d.ActiveP30 -= moved
	d.ActiveHalfLenDensity -= movedHalfLen
	d.RelayP30 += relayRate
	d.IntersectP30 += intersectRate
	d.FrozenHalfLenDensity += movedHalfLen
}

// macrofractureMFP32 returns the areal intensity contributed by all
// macrofracture nodes (active + relay + intersect), spec §3.
func (d *DipSet) macrofractureMFP32(layerThickness float64) float64 {
	return (d.ActiveHalfLenDensity + d.FrozenHalfLenDensity) * layerThickness
}

// UFP32Total returns the microfracture areal intensity implied by the
// current radius-bin histogram (spec §3, §8 invariant).
func (d *DipSet) UFP32Total() float64 {
	return integralP32(d.Bins)
}

// MFP30Total returns a_MFP30 + sR_MFP30 + sI_MFP30 (spec §8 invariant)
func (d *DipSet) MFP30Total() float64 {
	return d.ActiveP30 + d.RelayP30 + d.IntersectP30
}

// PeakActiveMFP33Value returns the historic peak of the active-only
// MFP33 (for the termination ratio test)
func (d *DipSet) PeakActiveMFP33Value() float64 { return d.PeakActiveMFP33 }

// ActiveToTotalMFP30Ratio implements the termination test of the same
// name (spec §4.2)
func (d *DipSet) ActiveToTotalMFP30Ratio() float64 {
	total := d.MFP30Total()
	if total <= 0 {
		return 1
	}
	return d.ActiveP30 / total
}

// ClearZoneFraction returns the current clear-zone volume fraction
func (d *DipSet) ClearZoneFraction() float64 { return d.ClearZoneFrac }

// MeanMacrofractureLength returns the mean half-length of currently
// active macrofractures, or 0 if none are active
func (d *DipSet) MeanMacrofractureLength() float64 {
	if d.ActiveP30 <= 0 {
		return 0
	}
	return d.ActiveHalfLenDensity / d.ActiveP30
}

// Snapshot appends the current state to the history under monotonic
// index T (spec §3, §4.2 "snapshot(T)").
func (d *DipSet) Snapshot(simTime, layerThickness, meanAperture float64) (Snapshot, error) {
	if len(d.History) > 0 && simTime <= d.History[len(d.History)-1].Time {
		return Snapshot{}, chk.Err("dipset: snapshot end-times must be strictly increasing; got %v after %v", simTime, d.History[len(d.History)-1].Time)
	}
	mfp32 := d.macrofractureMFP32(layerThickness)
	s := Snapshot{
		T:               d.nextT,
		Time:            simTime,
		ActiveP30:       d.ActiveP30,
		RelayP30:        d.RelayP30,
		IntersectP30:    d.IntersectP30,
		MFP32:           mfp32,
		MFP33:           mfp32 * meanAperture,
		UFP32Total:      d.UFP32Total(),
		MeanMacroLength: d.MeanMacrofractureLength(),
	}
	d.nextT++
	d.History = append(d.History, s)
	return s, nil
}

// StateAt returns the snapshot with the largest end-time <= t (binary
// search into history, spec §3, §8 boundary behavior).
func (d *DipSet) StateAt(t float64) (Snapshot, bool) {
	h := d.History
	idx := sort.Search(len(h), func(i int) bool { return h[i].Time > t })
	if idx == 0 {
		return Snapshot{}, false
	}
	return h[idx-1], true
}
