// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fracset

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/dipset"
	"github.com/JointFlow/DFMGenerator-sub004/mechprops"
)

func testCtx(sigmaN float64) Context {
	return Context{
		EffectiveNormalStress: sigmaN,
		PoissonsRatio:         0.25,
		YoungsModulus:         3e10,
		LayerThickness:        100,
	}
}

func Test_fracset01_aperture_laws(tst *testing.T) {

	chk.PrintTitle("fracset01: the four aperture laws dispatch on the tag")

	a, err := Aperture(ApertureParams{Law: Uniform, UniformAperture: 2e-4}, testCtx(1e7))
	if err != nil {
		tst.Fatalf("Uniform failed: %v", err)
	}
	chk.Float64(tst, "uniform", 1e-12, a, 2e-4)

	a, err = Aperture(ApertureParams{Law: SizeDependent, Multiplier: 1e-5}, testCtx(1e7))
	if err != nil {
		tst.Fatalf("SizeDependent failed: %v", err)
	}
	chk.Float64(tst, "size-dependent", 1e-12, a, 100*1e-5)

	lo, err := Aperture(ApertureParams{Law: Dynamic, Multiplier: 1e-4}, testCtx(1e8))
	if err != nil {
		tst.Fatalf("Dynamic failed: %v", err)
	}
	hi, err := Aperture(ApertureParams{Law: Dynamic, Multiplier: 1e-4}, testCtx(0))
	if err != nil {
		tst.Fatalf("Dynamic failed: %v", err)
	}
	if lo > hi {
		tst.Fatalf("dynamic aperture must not increase with normal stress: %v > %v", lo, hi)
	}

	bb := ApertureParams{Law: BartonBandis, JRC: 10, UCSRatio: 0.5, InitialNormalStress: 0, InitialNormalStiffness: 1e10, MaxClosure: 1e-4}
	open, err := Aperture(bb, testCtx(0))
	if err != nil {
		tst.Fatalf("BartonBandis failed: %v", err)
	}
	closed, err := Aperture(bb, testCtx(5e7))
	if err != nil {
		tst.Fatalf("BartonBandis failed: %v", err)
	}
	if closed >= open {
		tst.Fatalf("Barton-Bandis aperture must close under load: %v >= %v", closed, open)
	}
	if closed < 0 {
		tst.Fatalf("aperture went negative: %v", closed)
	}
}

func Test_fracset02_barton_bandis_max_closure(tst *testing.T) {

	chk.PrintTitle("fracset02: Barton-Bandis closure is capped at max-closure")

	bb := ApertureParams{Law: BartonBandis, JRC: 10, UCSRatio: 0.5, InitialNormalStiffness: 1e9, MaxClosure: 1e-5}
	a0, err := Aperture(bb, testCtx(0))
	if err != nil {
		tst.Fatalf("Aperture failed: %v", err)
	}
	squeezed, err := Aperture(bb, testCtx(1e12))
	if err != nil {
		tst.Fatalf("Aperture failed: %v", err)
	}
	if a0-squeezed > bb.MaxClosure+1e-15 {
		tst.Fatalf("closure %v exceeded MaxClosure %v", a0-squeezed, bb.MaxClosure)
	}
}

func Test_fracset03_combined_porosity(tst *testing.T) {

	chk.PrintTitle("fracset03: porosity is P32 x mean aperture summed over sets")

	params := mechprops.DipSetParams{InitialDensityA: 1e-3, SizeExponentC: 2, SubcriticalB: 10, CriticalVelocity: 1e-3, FractureToughnessKIc: 1e6}
	d, err := dipset.New(dipset.HMin, dipset.Mode1, 0, params, 4, 0.5, 50)
	if err != nil {
		tst.Fatalf("dipset.New failed: %v", err)
	}
	// replace the seeded initial population with a single known cohort
	// so the expected P32 is exact
	for i := range d.Bins {
		d.Bins[i].P30 = 0
	}
	d.Bins[0].P30 = 2e-3 // cohort [0.5, 12.875)

	aperture := 1e-4
	fs, err := New(dipset.HMin, []*dipset.DipSet{d}, map[dipset.Mode]ApertureParams{
		dipset.Mode1: {Law: Uniform, UniformAperture: aperture},
	})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}

	rMean := 0.5 * (d.Bins[0].RLo + d.Bins[0].RHi)
	wantP32 := 2e-3 * math.Pi * rMean * rMean
	chk.Float64(tst, "combined P32", 1e-9, fs.CombinedP32(100), wantP32)

	porosity, err := fs.CombinedPorosity(testCtx(1e7), 100)
	if err != nil {
		tst.Fatalf("CombinedPorosity failed: %v", err)
	}
	chk.Float64(tst, "porosity", 1e-12, porosity, wantP32*aperture)
}

func Test_fracset04_mismatched_orientation_rejected(tst *testing.T) {

	chk.PrintTitle("fracset04: member dip sets must share the set orientation")

	params := mechprops.DipSetParams{InitialDensityA: 1e-3, SizeExponentC: 2, SubcriticalB: 10, CriticalVelocity: 1e-3, FractureToughnessKIc: 1e6}
	d, err := dipset.New(dipset.HMax, dipset.Mode1, math.Pi/2, params, 4, 0.5, 50)
	if err != nil {
		tst.Fatalf("dipset.New failed: %v", err)
	}
	if _, err := New(dipset.HMin, []*dipset.DipSet{d}, nil); err == nil {
		tst.Fatalf("expected orientation mismatch error")
	}
}
