// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package units holds the single time-unit tag the engine is configured
// with and the conversion factors applied at the input/output boundary.
// Internally, every rate and duration is carried in SI seconds; a
// TimeUnit only changes how durations are read in and reported out.
package units

import "github.com/cpmech/gosl/chk"

// TimeUnit selects the unit durations and strain rates are expressed in
// at the input/output boundary. Internal state is always SI seconds.
type TimeUnit int

// recognised time units
const (
	Seconds TimeUnit = iota
	Years
	Ma
)

// secondsPerUnit holds the SI-seconds conversion factor for each TimeUnit
var secondsPerUnit = map[TimeUnit]float64{
	Seconds: 1.0,
	Years:   365.25 * 24 * 3600,
	Ma:      1e6 * 365.25 * 24 * 3600,
}

// labels holds the display label for each TimeUnit; used for the
// "1/<timeUnits>" strain-rate label in output records
var labels = map[TimeUnit]string{
	Seconds: "s",
	Years:   "yr",
	Ma:      "Ma",
}

// Parse maps a display label ("s", "yr", "Ma") to its TimeUnit
func Parse(label string) (TimeUnit, error) {
	for u, l := range labels {
		if l == label {
			return u, nil
		}
	}
	return Seconds, chk.Err("units: unrecognised time-unit label %q", label)
}

// ToSeconds converts a duration expressed in u to SI seconds
func (u TimeUnit) ToSeconds(value float64) (float64, error) {
	f, ok := secondsPerUnit[u]
	if !ok {
		return 0, chk.Err("units: unrecognised TimeUnit %d", u)
	}
	return value * f, nil
}

// FromSeconds converts an SI-seconds duration to u
func (u TimeUnit) FromSeconds(seconds float64) (float64, error) {
	f, ok := secondsPerUnit[u]
	if !ok {
		return 0, chk.Err("units: unrecognised TimeUnit %d", u)
	}
	return seconds / f, nil
}

// RateLabel returns the "1/<timeUnits>" label used on strain-rate outputs
func (u TimeUnit) RateLabel() string {
	l, ok := labels[u]
	if !ok {
		return "1/s"
	}
	return "1/" + l
}

// String implements fmt.Stringer
func (u TimeUnit) String() string {
	if l, ok := labels[u]; ok {
		return l
	}
	return "?"
}
