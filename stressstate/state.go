// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stressstate implements the per-gridblock effective-stress and
// strain bookkeeping described in spec §4.1: the two horizontal
// effective stresses evolve under a driving strain rate with
// viscoelastic relaxation towards an equilibrium value, while the
// vertical effective stress is carried as an overburden boundary
// condition (vertical is always a principal direction, spec §1
// Non-goals: no inclined principal stresses).
package stressstate

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/tsr"
)

// InitMode selects how the initial horizontal effective stresses are
// derived from the vertical effective stress (spec §4.1)
type InitMode int

const (
	// Elastic and Viscoelastic name the end-members σ_h' = (ν/(1-ν))·σ_v'
	// and σ_h' = σ_v'; for either of them the initial value is set by
	// RelaxFactor (0 gives the elastic, 1 the viscoelastic end-member)
	Elastic InitMode = iota
	Viscoelastic
	// Critical: σ_h' set so the Mohr circle touches the Coulomb envelope
	Critical
)

// State holds the effective-stress and strain bookkeeping for one
// gridblock. Stresses use the engineering sign convention: positive is
// compressive.
type State struct {
	SigmaV    float64 // effective vertical stress σ_v' [Pa]
	SigmaHmin float64 // effective horizontal stress along H-min [Pa]
	SigmaHmax float64 // effective horizontal stress along H-max [Pa]
	PorePres  float64 // pore pressure, >= 0 [Pa]

	SigmaHminEq float64 // long-term equilibrium σ_h'_eq along H-min
	SigmaHmaxEq float64 // long-term equilibrium σ_h'_eq along H-max

	EpsHmin float64 // accumulated total horizontal strain along H-min
	EpsHmax float64 // accumulated total horizontal strain along H-max

	// RelaxFactor in [0,1] interpolates initial stress between Elastic
	// (0) and Viscoelastic (1); a negative value selects Critical.
	RelaxFactor float64

	TauRock     float64 // rock-strain relaxation time constant τ_r [s]
	TauFracture float64 // fracture-strain relaxation time constant τ_f [s]
	// UseFractureRelax selects the relaxation time constant: TauFracture
	// when true, TauRock when false (spec §4.1). Either way relaxation
	// acts on the whole horizontal stress departure from equilibrium; the
	// fracture-induced contribution is not relaxed separately.
	UseFractureRelax bool
}

// Config bundles the elastic parameters needed to initialise and
// advance a State
type Config struct {
	YoungsModulus float64 // E [Pa]
	PoissonsRatio float64 // ν
	Friction      float64 // Coulomb friction coefficient μ
	Biot          float64 // Biot coefficient α
}

// New builds an initial State at effective vertical stress sigmaV and
// pore pressure pp, using mode to derive the horizontal stresses, and
// sigmaHeqMin/Max as the long-term equilibrium values the horizontal
// stresses relax towards.
func New(cfg Config, sigmaV, pp, sigmaHeqMin, sigmaHeqMax float64, mode InitMode, relaxFactor float64, tauR, tauF float64, useFractureRelax bool) (*State, error) {
	if sigmaV < 0 {
		return nil, chk.Err("stressstate: effective vertical stress must be >= 0, got %v", sigmaV)
	}
	if pp < 0 {
		return nil, chk.Err("stressstate: pore pressure must be >= 0, got %v", pp)
	}
	s := &State{
		SigmaV:           sigmaV,
		PorePres:         pp,
		SigmaHminEq:      sigmaHeqMin,
		SigmaHmaxEq:      sigmaHeqMax,
		RelaxFactor:      relaxFactor,
		TauRock:          tauR,
		TauFracture:      tauF,
		UseFractureRelax: useFractureRelax,
	}
	sh, err := initialHorizontal(cfg, sigmaV, mode, relaxFactor)
	if err != nil {
		return nil, err
	}
	s.SigmaHmin = sh
	s.SigmaHmax = sh
	return s, nil
}

// initialHorizontal computes σ_h': a relaxFactor in [0,1]
// interpolates continuously between the elastic and viscoelastic
// end-members, and a negative factor selects the critical
// Mohr-Coulomb state, as does mode == Critical.
func initialHorizontal(cfg Config, sigmaV float64, mode InitMode, relaxFactor float64) (float64, error) {
	if relaxFactor < 0 || mode == Critical {
		return criticalHorizontal(cfg, sigmaV), nil
	}
	switch mode {
	case Elastic, Viscoelastic:
	default:
		return 0, chk.Err("stressstate: unrecognised InitMode %d", mode)
	}
	elastic := cfg.PoissonsRatio / (1 - cfg.PoissonsRatio) * sigmaV
	viscoelastic := sigmaV
	if relaxFactor > 1 {
		relaxFactor = 1
	}
	return elastic + relaxFactor*(viscoelastic-elastic), nil
}

// criticalHorizontal returns σ_h' such that the Mohr circle through
// (σ_v', σ_h') is tangent to the Coulomb failure envelope τ = μ·σ_n,
// i.e. sin(φ) = (σ_v'-σ_h')/(σ_v'+σ_h') with tan(φ) = μ.
func criticalHorizontal(cfg Config, sigmaV float64) float64 {
	phi := math.Atan(cfg.Friction)
	sinphi := math.Sin(phi)
	// (σv - σh)/(σv + σh) = sinφ  =>  σh = σv·(1-sinφ)/(1+sinφ)
	return sigmaV * (1 - sinphi) / (1 + sinphi)
}

// Advance updates the horizontal effective stresses by one timestep Δt,
// given the driving (rock) strain rates and the induced strain rate
// contributed by fracture growth (spec §4.1, §4.3 step 3):
//
//	σ_h' <- σ_h' + E·(ε̇_driving - ε̇_induced)·Δt - (σ_h' - σ_h'_eq)·(Δt/τ)
//
// The isotropic/deviatoric split of the elastic increment is carried
// out with gosl/tsr the way msolid/elasticity.go computes
// σ += λ·tr(Δε)·Im + 2G·Δε, specialised here to the two horizontal
// principal directions (the vertical direction is not advanced: σ_v' is
// an imposed overburden boundary condition, spec §1 Non-goals).
func (s *State) Advance(cfg Config, dt, epsDotDrivingMin, epsDotDrivingMax, epsDotInducedMin, epsDotInducedMax float64) error {
	if dt < 0 {
		return chk.Err("stressstate: Advance requires dt >= 0, got %v", dt)
	}
	G := cfg.YoungsModulus / (2 * (1 + cfg.PoissonsRatio))
	lambda := cfg.YoungsModulus * cfg.PoissonsRatio / ((1 + cfg.PoissonsRatio) * (1 - 2*cfg.PoissonsRatio))

	dEpsMin := (epsDotDrivingMin - epsDotInducedMin) * dt
	dEpsMax := (epsDotDrivingMax - epsDotInducedMax) * dt
	trace := dEpsMin + dEpsMax

	dSig := make([]float64, 2)
	dEps := []float64{dEpsMin, dEpsMax}
	im := tsr.Im
	for i := range dSig {
		var imi float64
		if i < len(im) {
			imi = im[i]
		} else {
			imi = 1
		}
		dSig[i] = lambda*trace*imi + 2*G*dEps[i]
	}

	tauMin := s.relaxTau()
	s.SigmaHmin += dSig[0]
	s.SigmaHmax += dSig[1]
	if tauMin > 0 && dt > 0 {
		s.SigmaHmin -= (s.SigmaHmin - s.SigmaHminEq) * (dt / tauMin)
		s.SigmaHmax -= (s.SigmaHmax - s.SigmaHmaxEq) * (dt / tauMin)
	}

	s.EpsHmin += dEpsMin
	s.EpsHmax += dEpsMax
	return nil
}

// relaxTau returns the active relaxation time constant: fracture-strain
// relaxation when enabled, else rock-strain relaxation (spec §4.1)
func (s *State) relaxTau() float64 {
	if s.UseFractureRelax {
		return s.TauFracture
	}
	return s.TauRock
}

// EffectiveNormal returns the effective normal stress acting on a
// fracture plane whose strike is along azimuth az, where azMin is the
// azimuth of the H-min direction: normal stress is the horizontal
// effective stress component perpendicular to the fracture strike,
// interpolated between σ_h_min' and σ_h_max' by the angle to H-min.
func (s *State) EffectiveNormal(az, azMin float64) float64 {
	d := az - azMin
	c := math.Cos(d)
	return s.SigmaHmin*c*c + s.SigmaHmax*(1-c*c)
}
