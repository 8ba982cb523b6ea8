// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import "github.com/cpmech/gosl/plt"

// PlotMFP32History draws MFP32Total vs time for a single set across a
// slice of (time, value) samples, matching the teacher's
// plt.Plot/plt.Gll/plt.Save diagnostic-figure idiom (ana/t_colpresfluid_test.go).
// This is a debugging aid, never invoked by Collect or any core
// operation.
func PlotMFP32History(times, mfp32 []float64, dirout, fnkey string) error {
	plt.Reset(false, nil)
	plt.Plot(times, mfp32, &plt.A{C: "b", L: "MFP32_total"})
	plt.Gll("time [s]", "MFP32 [1/m]", nil)
	return plt.Save(dirout, fnkey)
}
