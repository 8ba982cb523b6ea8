// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package input implements the external interface the engine reads a
// grid's geometry and driving properties through (spec §6). Per-property
// records may be a constant or a named function of simulation time, the
// same scalar-or-function convention the teacher's inp.FuncsData/dbf.Params
// pair uses for material and boundary-condition parameters; here it is
// specialised to the handful of time-varying drivers this engine needs
// (far-field strain rate, overpressure).
package input

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
)

// PropertyField is one named scalar-or-function input (spec §6): either
// a constant, or a reference to a function of simulation time built via
// gosl/fun, matching inp.FuncData's {Type, Prms} shape.
type PropertyField struct {
	Name  string
	Const bool
	Value float64    // used when Const
	Type  string     // gosl/fun function type, e.g. "cte", "rmp"; used when !Const
	Prms  dbf.Params // function parameters; used when !Const

	fcn fun.TimeSpace
}

// Resolve builds the underlying fun.TimeSpace once (spec §6); callers
// must call this before At.
func (p *PropertyField) Resolve() error {
	if p.Const {
		return nil
	}
	f, err := fun.New(p.Type, p.Prms)
	if err != nil {
		return chk.Err("input: cannot build function for property %q: %v", p.Name, err)
	}
	p.fcn = f
	return nil
}

// At returns the property value at simulation time t.
func (p *PropertyField) At(t float64) float64 {
	if p.Const {
		return p.Value
	}
	if p.fcn == nil {
		return 0
	}
	return p.fcn.F(t, nil)
}
