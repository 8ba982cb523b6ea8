// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/JointFlow/DFMGenerator-sub004/gridblock"
	"github.com/JointFlow/DFMGenerator-sub004/progress"
)

// CalculateAllFractureData advances every cell's implicit population
// model to completion (spec §4.5 "CalculateAllFractureData"). Cells are
// partitioned into synchronization groups (SyncGroups): members of
// independent groups run on independent goroutines with no shared
// state, while cells within one group advance in lockstep on the
// smallest suggested Δt among them, so cross-boundary stress-shadow and
// propagation queries always compare states at the same simulation time
// (spec §4.5, §5). No mutex is held across scientific work; the only
// coordination is the per-step Δt reduction inside each group.
func (g *Grid) CalculateAllFractureData(pctx progress.Context) error {
	groups, err := g.SyncGroups()
	if err != nil {
		return err
	}

	total := int32(0)
	for _, c := range g.cells {
		if c.Block != nil && c.Block.Geom.Valid {
			total++
		}
	}
	if total == 0 {
		return nil
	}

	var wg sync.WaitGroup
	var done int32
	errCh := make(chan error, len(groups))
	for _, grp := range groups {
		wg.Add(1)
		go func(cells []*Cell) {
			defer wg.Done()
			errCh <- runGroup(cells, pctx, &done, total)
		}(grp)
	}
	wg.Wait()
	close(errCh)

	var firstErr error
	for err := range errCh {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// runGroup advances one synchronization group to completion. A
// single-cell group steps freely; a multi-cell group reduces the
// suggested Δt across its still-active members each step and advances
// them all with it. Cancellation is polled at every timestep boundary
// (spec §5); a cancelled group returns nil with its cells left at their
// last completed snapshot.
func runGroup(cells []*Cell, pctx progress.Context, done *int32, total int32) error {
	var active []*gridblock.Gridblock
	for _, c := range cells {
		if c.Block != nil && c.Block.Geom.Valid {
			active = append(active, c.Block)
		}
	}

	finish := func() {
		n := atomic.AddInt32(done, 1)
		pctx.Report("implicit", float64(n)/float64(total), "cell advanced to completion")
	}

	if len(active) == 1 {
		b := active[0]
		for !b.Complete {
			if pctx.Cancelled() {
				return nil
			}
			if _, err := b.AdvanceOneStep(); err != nil {
				return err
			}
		}
		finish()
		return nil
	}

	for len(active) > 0 {
		if pctx.Cancelled() {
			return nil
		}
		dt := 0.0
		for _, b := range active {
			suggested, err := b.SuggestStepDt()
			if err != nil {
				return err
			}
			if b.Complete {
				continue
			}
			if dt == 0 || suggested < dt {
				dt = suggested
			}
		}
		var next []*gridblock.Gridblock
		for _, b := range active {
			if b.Complete {
				finish()
				continue
			}
			if dt <= 0 {
				b.Complete = true
				finish()
				continue
			}
			if _, err := b.AdvanceStepWithDt(dt); err != nil {
				return err
			}
			if b.Complete {
				finish()
				continue
			}
			next = append(next, b)
		}
		active = next
	}
	return nil
}

// GetTimestepEndtimeList returns the sorted union of every cell's
// history end-times across the whole grid, deduplicated (spec
// §4.5 "GetTimestepEndtimeList", used by n_intermediate_outputs'
// by-time mode and by explicit-DFN growth-stage snapshotting).
func (g *Grid) GetTimestepEndtimeList() []float64 {
	seen := map[float64]bool{}
	var times []float64
	for _, c := range g.cells {
		if c.Block == nil {
			continue
		}
		for _, fs := range c.Block.FractureSets {
			for _, d := range fs.DipSets {
				for _, snap := range d.History {
					if !seen[snap.Time] {
						seen[snap.Time] = true
						times = append(times, snap.Time)
					}
				}
			}
		}
	}
	sort.Float64s(times)
	return times
}
