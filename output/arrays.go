// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package output assembles the per-gridblock, per-dip-set result arrays
// the engine exposes once a grid has been advanced (spec §6): row-major
// output records mirroring package grid's cell layout, plus the
// cell-level anisotropy and porosity scalars. Diagnostic plotting is
// optional and layered on top of gosl/plt, the teacher's own plotting
// library (out/plotting.go), never on the critical path of core
// operations.
package output

import (
	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/grid"
	"github.com/JointFlow/DFMGenerator-sub004/gridblock"
)

// CellOutput is the full output record for one gridblock at one query
// time (spec §6): per-set summaries plus cell-level totals.
type CellOutput struct {
	Row, Col      int
	Sets          []gridblock.SetSummary
	P32Anisotropy float64
	P33Anisotropy float64
	Porosity      float64
	FinalActiveTime float64
}

// GridOutput is the row-major array of CellOutput records for a whole
// grid at one query time (spec §6).
type GridOutput struct {
	Rows, Cols int
	Cells      []CellOutput
}

// Collect assembles a GridOutput by querying every valid cell in g at
// simTime (spec §6). Degenerate (invalid-geometry) cells are included
// with zero-value Sets so that row-major indexing stays aligned with
// the input grid.
func Collect(g *grid.Grid, simTime float64) (*GridOutput, error) {
	out := &GridOutput{Rows: g.Rows, Cols: g.Cols}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			c := g.At(row, col)
			if c == nil {
				return nil, chk.Err("output: missing cell at (%d,%d)", row, col)
			}
			rec := CellOutput{Row: row, Col: col}
			if c.Block != nil && c.Block.Geom.Valid {
				sets, err := c.Block.StateAt(simTime)
				if err != nil {
					return nil, err
				}
				rec.Sets = sets
				p32, err := c.Block.P32Anisotropy(simTime)
				if err != nil {
					return nil, err
				}
				p33, err := c.Block.P33Anisotropy(simTime)
				if err != nil {
					return nil, err
				}
				porosity, err := c.Block.TotalPorosity()
				if err != nil {
					return nil, err
				}
				rec.P32Anisotropy = p32
				rec.P33Anisotropy = p33
				rec.Porosity = porosity
				rec.FinalActiveTime = c.Block.FinalActiveTime
			}
			out.Cells = append(out.Cells, rec)
		}
	}
	return out, nil
}

// At returns the record for (row,col), or nil if out of range.
func (o *GridOutput) At(row, col int) *CellOutput {
	if row < 0 || row >= o.Rows || col < 0 || col >= o.Cols {
		return nil
	}
	return &o.Cells[row*o.Cols+col]
}
