// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package amplitude implements the steady-state envelope extraction and
// convergence test of spec.md §4.6: a per-cell running maximum |field|
// with a relative-accuracy convergence criterion evaluated over every
// non-PML cell.
package amplitude

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"

	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/grid"
)

// Threshold is the default convergence accuracy of spec.md §4.6.
const Threshold = 1e-6

// Tracker holds the envelope grid A (spec.md §3's amplitude-tracker
// state) and the last Sample's maximum relative accuracy across
// non-PML cells.
type Tracker struct {
	A            *grid.Grid[float64]
	IsPML        func(global coord.Int3) bool
	lastMaxAccur float64
	sampledOnce  bool
}

// NewTracker allocates the envelope grid at the given rank-local layout.
// isPML excludes PML cells from the convergence criterion, per spec.md
// §4.6's "max accuracy across all non-PML cells".
func NewTracker(size, offset, halo coord.Int3, isPML func(global coord.Int3) bool) *Tracker {
	return &Tracker{
		A:     grid.New[float64](size, size, offset, halo, grid.LayerNone),
		IsPML: isPML,
	}
}

// Sample updates the envelope from one field's current values (spec.md
// §4.6: v = |field(cell)|; if v >= A, accuracy = (v-A)/max(A,v), A <- v)
// and returns the maximum accuracy observed across every non-PML cell
// this call touched.
func (t *Tracker) Sample(field *grid.Grid[float64]) float64 {
	size := t.A.LocalSize()
	accuracies := make([]float64, 0, size.I*size.J*size.K)
	for i := 0; i < size.I; i++ {
		for j := 0; j < size.J; j++ {
			for k := 0; k < size.K; k++ {
				local := coord.Int3{I: i, J: j, K: k}
				global := t.A.TotalPosition(local)
				if t.IsPML != nil && t.IsPML(global) {
					continue
				}
				v := math.Abs(field.Current(local))
				a := t.A.Current(local)
				accuracy := 0.0
				if v >= a {
					denom := math.Max(a, v)
					if denom > 0 {
						accuracy = (v - a) / denom
					}
					t.A.Set(local, v)
				}
				accuracies = append(accuracies, accuracy)
			}
		}
	}
	if len(accuracies) == 0 {
		t.lastMaxAccur = 0
	} else {
		t.lastMaxAccur = floats.Max(accuracies)
	}
	t.sampledOnce = true
	return t.lastMaxAccur
}

// Stable reports whether the last Sample's maximum accuracy fell below
// threshold, spec.md §4.6's stabilization criterion.
func (t *Tracker) Stable(threshold float64) bool {
	return t.sampledOnce && t.lastMaxAccur < threshold
}

// Run drives the amplitude-mode convergence loop of spec.md §4.6/§7:
// it calls step once per iteration (expected to advance the FDTD
// timestep and return the field to sample), stops as soon as Stable
// holds, and fails with the spec's exact "Increase number of steps"
// message if maxSteps is exhausted first.
func (t *Tracker) Run(maxSteps int, threshold float64, step func(iter int) (*grid.Grid[float64], error)) error {
	for iter := 0; iter < maxSteps; iter++ {
		field, err := step(iter)
		if err != nil {
			return err
		}
		t.Sample(field)
		if t.Stable(threshold) {
			return nil
		}
	}
	return chk.Err("amplitude: Stable state not reached. Increase number of steps")
}
