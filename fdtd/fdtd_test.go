// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdtd

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/material"
	"github.com/xj361685640/fdtd3d/physics"
)

func newTestEngine(tst *testing.T, opts Options) *Engine {
	size := coord.Int3{I: 16, J: 16, K: 16}
	mat := material.NewGrids(size, coord.Int3{}, coord.Int3{})
	if opts.UsePML {
		params := material.DefaultPMLParams(opts.PMLSize, 1e-9)
		mat.FillSigma(params, opts.PMLAxes)
	}
	dx := 1e-9
	dt := physics.TimeStep(dx)
	return NewEngine(mat, dt, dx, size, coord.Int3{}, coord.Int3{}, opts)
}

func TestPlainYeeStepStaysZeroWithoutSource(tst *testing.T) {
	chk.PrintTitle("PlainYeeStepStaysZeroWithoutSource")
	eng := newTestEngine(tst, Options{})
	if err := eng.StepE(0); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if err := eng.StepH(0); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	center := coord.Int3{I: 8, J: 8, K: 8}
	chk.Scalar(tst, "Ex stays zero with no excitation", 1e-15, eng.E[0].Current(center), 0.0)
	chk.Scalar(tst, "Hz stays zero with no excitation", 1e-15, eng.H[2].Current(center), 0.0)
}

func TestHardSourceInjectsIntoEz(tst *testing.T) {
	chk.PrintTitle("HardSourceInjectsIntoEz")
	center := coord.Int3{I: 8, J: 8, K: 8}
	eng := newTestEngine(tst, Options{
		HardSource:   true,
		SourceCenter: center,
		SourceFunc:   constSource(1.0),
	})
	if err := eng.StepE(0); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "Ez at source center reads the injected value", 1e-15, eng.E[2].Previous(center), 1.0)
}

func TestPMLCoefficientsInactiveOutsidePMLRegion(tst *testing.T) {
	chk.PrintTitle("PMLCoefficientsInactiveOutsidePMLRegion")
	eng := newTestEngine(tst, Options{UsePML: true, PMLSize: 4, PMLAxes: [3]bool{true, true, true}})
	interior := coord.Int3{I: 8, J: 8, K: 8}
	if eng.pmlCellActive(interior) {
		tst.Errorf("center cell should not be classified as PML")
	}
	edge := coord.Int3{I: 1, J: 8, K: 8}
	if !eng.pmlCellActive(edge) {
		tst.Errorf("cell within PML thickness of the boundary should be classified as PML")
	}
}

func TestIsDrudeCellReflectsMaterialGrids(tst *testing.T) {
	chk.PrintTitle("IsDrudeCellReflectsMaterialGrids")
	eng := newTestEngine(tst, Options{UseMetamaterials: true})
	local := coord.Int3{I: 5, J: 5, K: 5}
	if eng.isDrudeCell(0, local, true) {
		tst.Errorf("expected no dispersion before FillDrude is called")
	}
	eng.Material.OmegaPE.Set(local, 1e15)
	if !eng.isDrudeCell(0, local, true) {
		tst.Errorf("expected dispersion once OmegaPE is nonzero")
	}
}

// constSource is a fun.Func returning a fixed value, used to drive the
// hard-source injection test without depending on the sinusoidal source
// the tfsf package provides.
type constSource float64

func (c constSource) F(t float64, x []float64) float64 { return float64(c) }
func (c constSource) G(t float64, x []float64) float64 { return 0 }
func (c constSource) H(t float64, x []float64) float64 { return 0 }
