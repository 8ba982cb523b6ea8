// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/gridblock"
)

func emptyCells(rows, cols int) []*Cell {
	cells := make([]*Cell, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells = append(cells, &Cell{Row: r, Col: c})
		}
	}
	return cells
}

func Test_grid01_neighbor_wiring(tst *testing.T) {
	chk.PrintTitle("grid01: neighbor lookup respects bounds and faulting")
	g, err := New(2, 2, emptyCells(2, 2))
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	if g.Neighbor(0, 0, East).Col != 1 {
		tst.Fatalf("expected east neighbor at col 1")
	}
	if g.Neighbor(0, 0, North) != nil {
		tst.Fatalf("expected nil neighbor off the top edge")
	}
	g.At(0, 0).Faulted[East] = true
	if g.Neighbor(0, 0, East) != nil {
		tst.Fatalf("expected faulted edge to block the neighbor lookup")
	}
}

func Test_grid02_sync_groups_split_by_fault(tst *testing.T) {
	chk.PrintTitle("grid02: a fully faulted boundary splits sync groups")
	cells := emptyCells(1, 4)
	g, err := New(1, 4, cells)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	// fault the boundary between column 1 and column 2
	g.At(0, 1).Faulted[East] = true
	g.At(0, 2).Faulted[West] = true

	groups, err := g.SyncGroups()
	if err != nil {
		tst.Fatalf("SyncGroups failed: %v", err)
	}
	if len(groups) != 2 {
		tst.Fatalf("expected 2 sync groups, got %d", len(groups))
	}
	sizes := map[int]bool{}
	for _, grp := range groups {
		sizes[len(grp)] = true
	}
	if !sizes[2] {
		tst.Fatalf("expected both groups to have size 2, got sizes %v", groups)
	}
}

func Test_grid03_invalid_dimensions(tst *testing.T) {
	chk.PrintTitle("grid03: cell count must match rows*cols")
	_, err := New(2, 2, emptyCells(2, 3))
	if err == nil {
		tst.Fatalf("expected error for mismatched cell count")
	}
}

func Test_grid04_timestep_endtime_list(tst *testing.T) {
	chk.PrintTitle("grid04: endtime list is empty for a fresh gridblock")
	g, err := New(1, 1, []*Cell{{Row: 0, Col: 0, Block: &gridblock.Gridblock{}}})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	times := g.GetTimestepEndtimeList()
	if len(times) != 0 {
		tst.Fatalf("expected no history on a fresh gridblock, got %v", times)
	}
}
