// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dfn

import (
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub004/dfnconfig"
)

// GrowthStage is one snapshot of the explicit network at a point in its
// construction (spec §4.7 "n_intermediate_outputs").
type GrowthStage struct {
	Index         int
	Time          float64
	Macrofractures []*Macrofracture
	Microfractures []*Microfracture
}

// totalArea sums each macrofracture's current two-tip half-length, used
// as the ByEqualArea stage-splitting metric (a cheap proxy for MFP32
// growth, avoiding a full triangulation pass per candidate stage).
func totalArea(fracs []*Macrofracture) float64 {
	var sum float64
	for _, mf := range fracs {
		sum += mf.Tips[Positive].HalfLength + mf.Tips[Negative].HalfLength
	}
	return sum
}

// Stages splits a time-ordered sequence of (time, macrofracture-set)
// observations into cfg.NIntermediateOutputs intermediate stages plus
// the final one, selected either by equal time spacing or by equal
// growth-area increments (spec §4.7 "intermediates_by_time", §8
// scenario 6: n intermediates yield n+1 stages).
//
// snapshots must be supplied in increasing time order; each entry's
// Macrofractures slice is the full network state as of that time (the
// caller is expected to have already applied growth up to that time).
func Stages(cfg dfnconfig.Config, snapshots []GrowthStage) ([]GrowthStage, error) {
	if len(snapshots) == 0 {
		return snapshots, nil
	}
	if cfg.NIntermediateOutputs <= 0 {
		return snapshots[len(snapshots)-1:], nil
	}
	if !sort.SliceIsSorted(snapshots, func(i, j int) bool { return snapshots[i].Time < snapshots[j].Time }) {
		return nil, chk.Err("dfn: Stages requires snapshots in increasing time order")
	}
	n := cfg.NIntermediateOutputs
	if n+1 >= len(snapshots) {
		return snapshots, nil
	}

	var metric func(GrowthStage) float64
	switch cfg.IntermediatesByTime {
	case dfnconfig.ByTime:
		metric = func(s GrowthStage) float64 { return s.Time }
	default:
		metric = func(s GrowthStage) float64 { return totalArea(s.Macrofractures) }
	}

	lo, hi := metric(snapshots[0]), metric(snapshots[len(snapshots)-1])
	if hi <= lo {
		return snapshots[len(snapshots)-1:], nil
	}

	var out []GrowthStage
	for k := 1; k <= n+1; k++ {
		target := lo + (hi-lo)*float64(k)/float64(n+1)
		idx := sort.Search(len(snapshots), func(i int) bool { return metric(snapshots[i]) >= target })
		if idx >= len(snapshots) {
			idx = len(snapshots) - 1
		}
		s := snapshots[idx]
		s.Index = k
		out = append(out, s)
	}
	return out, nil
}
