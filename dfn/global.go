// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dfn

// GlobalDFN is the full explicit fracture-network realization across
// every gridblock in a grid, at one point in its construction (spec
// §4.6 "GlobalDFN", §4.5 "GenerateDFN"). Fracture segments refer to
// their owning cell by row/column rather than holding a pointer back
// into the grid, matching the index-not-pointer convention spec §9
// requires for cyclic-graph avoidance.
type GlobalDFN struct {
	Microfractures []*Microfracture
	Macrofractures []*Macrofracture
}
