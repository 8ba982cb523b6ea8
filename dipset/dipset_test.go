// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dipset

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/mechprops"
	"github.com/JointFlow/DFMGenerator-sub004/stressstate"
)

func testParams() mechprops.DipSetParams {
	return mechprops.DipSetParams{
		InitialDensityA:      1e-3,
		SizeExponentC:        2,
		SubcriticalB:         10,
		CriticalVelocity:     1e-3,
		FractureToughnessKIc: 1e6,
	}
}

func Test_dipset01(tst *testing.T) {

	chk.PrintTitle("dipset01: mass conservation and monotonicity")

	d, err := New(HMin, Mode1, 0, testParams(), 10, 0.001, 50)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}

	cfg := stressstate.Config{YoungsModulus: 3e10, PoissonsRatio: 0.25, Friction: 0.5, Biot: 1}
	state, err := stressstate.New(cfg, 5e7, 1e6, 0, 0, stressstate.Elastic, -1, 0, 0, false)
	if err != nil {
		tst.Fatalf("stressstate.New failed: %v", err)
	}
	// force a tensile driving stress so the set actually nucleates/grows
	state.SigmaHmin = -1e6

	simTime := 0.0
	dt := 1e4
	for i := 0; i < 20; i++ {
		in := AdvanceInputs{
			Dt:             dt,
			Stress:         state,
			AzimuthHMin:    0,
			Biot:           1,
			PoissonsRatio:  0.25,
			LayerThickness: 100,
			CellBulkVolume: 1e6,
			StressDist:     StressShadow,
			Nucleation:     NucleationPolicy{Mode: Deterministic},
			MeanAperture:   1e-4,
		}
		_, err := d.Advance(in)
		if err != nil {
			tst.Fatalf("Advance failed at step %d: %v", i, err)
		}
		simTime += dt
		before := 0.0
		if len(d.History) > 0 {
			before = d.History[len(d.History)-1].MFP30Total()
		}
		snap, err := d.Snapshot(simTime, 100, 1e-4)
		if err != nil {
			tst.Fatalf("Snapshot failed at step %d: %v", i, err)
		}
		if snap.MFP30Total() < before {
			tst.Fatalf("MFP30Total decreased at step %d: %v -> %v", i, before, snap.MFP30Total())
		}
		chk.Float64(tst, "a+r+i == total", 1e-9, d.ActiveP30+d.RelayP30+d.IntersectP30, snap.MFP30Total())
		if len(d.Bins) != 10 {
			tst.Fatalf("bin count changed: got %d", len(d.Bins))
		}
	}

	// snapshot end-times must be strictly increasing
	for i := 1; i < len(d.History); i++ {
		if d.History[i].Time <= d.History[i-1].Time {
			tst.Fatalf("snapshot times not strictly increasing at %d", i)
		}
	}

	// StateAt boundary behaviour: exact equality returns that snapshot
	mid := d.History[5]
	got, ok := d.StateAt(mid.Time)
	if !ok || got.T != mid.T {
		tst.Fatalf("StateAt exact match failed: got %+v want %+v", got, mid)
	}
}

func Test_dipset04_bins_stay_partitioned(tst *testing.T) {

	chk.PrintTitle("dipset04: bins stay radius-ordered and non-overlapping across transitions")

	d, err := New(HMin, Mode1, 0, testParams(), 10, 0.001, 50)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	cfg := stressstate.Config{YoungsModulus: 3e10, PoissonsRatio: 0.25, Friction: 0.5, Biot: 1}
	state, err := stressstate.New(cfg, 5e7, 1e6, 0, 0, stressstate.Elastic, 0, 0, 0, false)
	if err != nil {
		tst.Fatalf("stressstate.New failed: %v", err)
	}
	// strong tensile driving stress so the upper cohorts transition to
	// macrofractures within a few steps
	state.SigmaHmin = -1e6

	prevActive := 0.0
	for step := 0; step < 10; step++ {
		_, err := d.Advance(AdvanceInputs{
			Dt:             1e4,
			Stress:         state,
			AzimuthHMin:    0,
			Biot:           1,
			PoissonsRatio:  0.25,
			LayerThickness: 100,
			CellBulkVolume: 1e6,
			StressDist:     EvenlyDistributed,
			Nucleation:     NucleationPolicy{Mode: Deterministic},
			MeanAperture:   1e-4,
		})
		if err != nil {
			tst.Fatalf("Advance failed at step %d: %v", step, err)
		}

		if len(d.Bins) != 10 {
			tst.Fatalf("bin count changed at step %d: got %d", step, len(d.Bins))
		}
		if d.Bins[0].RLo < d.RMin-1e-12 {
			tst.Fatalf("lowest bin dropped below RMin at step %d: %v", step, d.Bins[0].RLo)
		}
		for i := range d.Bins {
			b := d.Bins[i]
			if b.RHi <= b.RLo {
				tst.Fatalf("degenerate bin %d at step %d: [%v, %v)", i, step, b.RLo, b.RHi)
			}
			if b.RHi > d.RMax+1e-9 {
				tst.Fatalf("bin %d exceeds RMax at step %d: %v", i, step, b.RHi)
			}
			if i > 0 && b.RLo < d.Bins[i-1].RHi-1e-9 {
				tst.Fatalf("bins %d and %d overlap at step %d: [%v,%v) then [%v,%v)",
					i-1, i, step, d.Bins[i-1].RLo, d.Bins[i-1].RHi, b.RLo, b.RHi)
			}
		}
		if d.ActiveP30 > prevActive {
			// a cohort transitioned this step, so a recycled cohort
			// must cover the bottom of the radius range again and
			// nucleation keeps a smallest-radius home
			chk.Float64(tst, "recycled bin restarts at RMin", 1e-12, d.Bins[0].RLo, d.RMin)
		}
		prevActive = d.ActiveP30
	}
	if d.ActiveP30 <= 0 {
		tst.Fatalf("expected at least one cohort to transition to macrofractures")
	}
}

func Test_dipset02_zero_strain(tst *testing.T) {

	chk.PrintTitle("dipset02: zero driving stress emits nothing")

	d, err := New(HMax, Mode1, 1.5707963267948966, testParams(), 5, 0.001, 50)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	cfg := stressstate.Config{YoungsModulus: 3e10, PoissonsRatio: 0.25, Friction: 0.5, Biot: 1}
	state, err := stressstate.New(cfg, 5e7, 1e6, 0, 0, stressstate.Viscoelastic, -1, 0, 0, false)
	if err != nil {
		tst.Fatalf("stressstate.New failed: %v", err)
	}
	in := AdvanceInputs{
		Dt:             1e6,
		Stress:         state,
		AzimuthHMin:    0,
		Biot:           1,
		PoissonsRatio:  0.25,
		LayerThickness: 100,
		CellBulkVolume: 1e6,
		StressDist:     EvenlyDistributed,
		Nucleation:     NucleationPolicy{Mode: Deterministic},
		MeanAperture:   1e-4,
	}
	rate, err := d.Advance(in)
	if err != nil {
		tst.Fatalf("Advance failed: %v", err)
	}
	chk.Float64(tst, "induced strain rate", 1e-20, rate, 0)
	chk.Float64(tst, "MFP30Total", 1e-20, d.MFP30Total(), 0)
}

func Test_dipset03_ductile_boundary_rejected(tst *testing.T) {

	chk.PrintTitle("dipset03: DuctileBoundary fails fast")

	d, err := New(HMin, Mode1, 0, testParams(), 5, 0.001, 50)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	cfg := stressstate.Config{YoungsModulus: 3e10, PoissonsRatio: 0.25, Friction: 0.5, Biot: 1}
	state, _ := stressstate.New(cfg, 5e7, 1e6, 0, 0, stressstate.Elastic, -1, 0, 0, false)
	_, err = d.Advance(AdvanceInputs{
		Dt: 1, Stress: state, StressDist: DuctileBoundary,
	})
	if err == nil {
		tst.Fatalf("expected error for DuctileBoundary, got nil")
	}
}
