// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package progress defines the narrow port the core reports progress
// through and observes cancellation on. The core has no globals and no
// process-wide logger (spec §6, §9 "globals and singletons ... are not
// present in the core"); callers wire in whatever logging or UI they
// need by implementing Sink, the same way the teacher's fem.FEM takes a
// verbose flag and writes through gosl/io rather than a global logger.
package progress

import (
	"context"

	"github.com/cpmech/gosl/io"
)

// Sink receives progress reports from the implicit and explicit phases.
// Implementations must be safe for concurrent use: the implicit phase
// reports from one goroutine per synchronization group of gridblocks.
type Sink interface {
	// Report is called at coarse-grained milestones: cell/stage
	// completion, growth-stage emission. frac is in [0,1].
	Report(stage string, frac float64, msg string)
}

// Context bundles a cancellation context with a progress Sink. It is
// threaded through the implicit and explicit phases instead of a
// process-global, per spec §5 "the only blocking operations inside the
// core are (a) boundary barriers ... and (b) cancellation checks".
type Context struct {
	Ctx  context.Context
	Sink Sink
}

// Cancelled reports whether the caller has requested cancellation
func (c Context) Cancelled() bool {
	if c.Ctx == nil {
		return false
	}
	select {
	case <-c.Ctx.Done():
		return true
	default:
		return false
	}
}

// Report forwards to the Sink if one is set; nil Sinks are valid and
// silently discard all reports
func (c Context) Report(stage string, frac float64, msg string) {
	if c.Sink != nil {
		c.Sink.Report(stage, frac, msg)
	}
}

// NewBackground returns a Context with no cancellation and no reporting
func NewBackground() Context {
	return Context{Ctx: context.Background()}
}

// IOSink is a default Sink implementation that writes through gosl/io,
// matching the "> message\n" narration style of fem.FEM.Run
type IOSink struct{}

// Report implements Sink
func (IOSink) Report(stage string, frac float64, msg string) {
	io.Pf("> [%s %5.1f%%] %s\n", stage, frac*100, msg)
}
