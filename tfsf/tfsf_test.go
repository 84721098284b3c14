// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tfsf

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/yee"
)

func TestSizeGrowsWithProblem(tst *testing.T) {
	chk.PrintTitle("SizeGrowsWithProblem")
	small := Size(coord.Int3{I: 10, J: 10, K: 10}, math.Pi/2)
	large := Size(coord.Int3{I: 40, J: 40, K: 40}, math.Pi/2)
	if large <= small {
		tst.Errorf("expected larger problem to need a longer lattice: small=%d large=%d", small, large)
	}
	if small < 4 {
		tst.Errorf("lattice size must be at least 4 for interpolation margin, got %d", small)
	}
}

func TestAdvanceEInjectsSource(tst *testing.T) {
	chk.PrintTitle("AdvanceEInjectsSource")
	size := Size(coord.Int3{I: 20, J: 20, K: 20}, math.Pi/2)
	inc := NewIncident1D(size, math.Pi/2, 0, 1e-9, 1e-18, SinusoidalSource{Freq: 1e14})
	inc.AdvanceE(0)
	chk.Scalar(tst, "EInc[0] at t=0 is sin(0)=0", 1e-12, inc.SampleAt(0), 0.0)

	dt := 1.0 / (4 * 1e14)
	inc2 := NewIncident1D(size, math.Pi/2, 0, 1e-9, 1e-18, SinusoidalSource{Freq: 1e14})
	inc2.AdvanceE(dt)
	expected := math.Sin(2 * math.Pi * 1e14 * dt)
	chk.Scalar(tst, "EInc[0] tracks the sinusoidal source", 1e-12, inc2.SampleAt(0), expected)
}

func TestRightTaperDampsTowardZero(tst *testing.T) {
	chk.PrintTitle("RightTaperDampsTowardZero")
	v := make([]float64, 10)
	for i := range v {
		v[i] = 1.0
	}
	applyRightTaper(v)
	if v[len(v)-1] >= v[len(v)-1-rightTaperCells] {
		tst.Errorf("outermost cell should be damped more than cells further in")
	}
}

func TestSurfaceProjectionMatchesIncidentProjection(tst *testing.T) {
	chk.PrintTitle("SurfaceProjectionMatchesIncidentProjection")
	box := yee.Box{Min: coord.Int3{I: 10, J: 10, K: 10}, Max: coord.Int3{I: 40, J: 40, K: 40}}
	theta, phi := math.Pi/2, 0.0
	s := NewSurface(box, theta, phi, 1e-9)
	size := Size(coord.Int3{I: 50, J: 50, K: 50}, theta)
	inc := NewIncident1D(size, theta, phi, 1e-9, 1e-18, SinusoidalSource{Freq: 1e14})
	inc.AdvanceE(1e-16)
	inc.AdvanceH()

	pos := coord.Float3{X: 25e-9, Y: 25e-9, Z: 25e-9}
	got := s.ProjectOntoSurface(inc, yee.Ex, pos)
	idx := s.index1D(pos, 0)
	want := yee.IncidentProjection(yee.Ex, theta, phi, inc.SampleAt(idx))
	chk.Scalar(tst, "Ex projection matches direct computation", 1e-12, got, want)
}
