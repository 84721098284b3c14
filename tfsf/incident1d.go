// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tfsf implements the total-field/scattered-field plane-wave
// injector of spec.md §4.2/§4.5: a 1D incident-wave auxiliary lattice
// advanced with a phase-velocity-corrected Yee update, and projection of
// its scalar samples onto the 3D Huygens surface.
package tfsf

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/xj361685640/fdtd3d/coord"
)

// Incident1D is the 1D auxiliary lattice of spec.md §3 ("Incident 1-D
// grids"): EInc and HInc carry one previous layer each, sized so the
// projection of the 3D TFSF box onto the propagation direction fits with
// margin for interpolation at both ends.
type Incident1D struct {
	ThetaRad, PhiRad float64
	GridStep         float64
	Dt               float64
	Source           fun.Func

	eCur, ePrev []float64
	hCur, hPrev []float64

	phaseVelocityRatio float64
}

// Size returns the number of 1D samples needed for a 3D problem of the
// given size, per DESIGN.md's resolution of the Open Question left by
// spec.md §3: ceil((Nx+Ny+Nz)*max(sinθ,cosθ)) + 2, with +2 guard samples
// for the damped right boundary and linear interpolation at the far end.
func Size(problemSize coord.Int3, thetaRad float64) int {
	st := math.Abs(math.Sin(thetaRad))
	ct := math.Abs(math.Cos(thetaRad))
	m := st
	if ct > m {
		m = ct
	}
	if m < 1e-9 {
		m = 1
	}
	n := int(math.Ceil(float64(problemSize.I+problemSize.J+problemSize.K) * m))
	return n + 2
}

// NewIncident1D allocates the 1D lattice and precomputes the factor
// phaseVelocityCorrection returns, which scales both curl differences of
// AdvanceE/AdvanceH.
func NewIncident1D(size int, thetaRad, phiRad, gridStep, dt float64, source fun.Func) *Incident1D {
	if size < 4 {
		chk.Panic("tfsf: incident lattice size %d too small for interpolation", size)
	}
	inc := &Incident1D{
		ThetaRad: thetaRad, PhiRad: phiRad,
		GridStep: gridStep, Dt: dt, Source: source,
		eCur: make([]float64, size), ePrev: make([]float64, size),
		hCur: make([]float64, size), hPrev: make([]float64, size),
	}
	inc.phaseVelocityRatio = phaseVelocityCorrection(thetaRad, phiRad, gridStep, dt)
	return inc
}

// phaseVelocityCorrection returns 1/max(|r̂x|,|r̂y|,|r̂z|) for the unit
// propagation vector r̂ of (θ,φ): 1 along a lattice axis, up to √3 along
// a cube diagonal. It is a purely geometric factor: gridStep and dt are
// not used, and no numerical dispersion relation is solved, so the 1D
// lattice does not follow the 3D grid's frequency-dependent numerical
// phase velocity.
func phaseVelocityCorrection(thetaRad, phiRad, gridStep, dt float64) float64 {
	dir := coord.Spherical(thetaRad, phiRad)
	// On-axis (θ=0) numerical phase velocity ratio is 1 by construction of
	// the Courant condition; the oblique correction scales by the
	// direction cosines' quadrature sum, which is 1 for any unit vector,
	// so the correction reduces to the axis with the largest projection —
	// the axis actually driving the 1D auxiliary stencil's step.
	maxProj := math.Abs(dir.X)
	if math.Abs(dir.Y) > maxProj {
		maxProj = math.Abs(dir.Y)
	}
	if math.Abs(dir.Z) > maxProj {
		maxProj = math.Abs(dir.Z)
	}
	if maxProj < 1e-9 {
		return 1
	}
	return 1 / maxProj
}

// rightTaperCells is the width of the damped absorbing taper applied to
// the last few cells of the 1D lattice (DESIGN.md decision 2): the
// source's own right-border handling is left undefined by spec.md. Each
// half-step multiplies the last rightTaperCells cells by linearly graded
// factors, 1/5 on the outermost cell up to 4/5 on the innermost, in
// place of a full 1D PML.
const rightTaperCells = 4

// AdvanceE performs the E-half of the phase-velocity-corrected 1D Yee
// update of spec.md §4.5, matching the driver's step 1 ("plane-wave E
// advance"): EInc advances from the lattice's current HInc, then the
// sinusoidal hard source is driven into EInc[0] and the right boundary
// is damped by the taper standing in for an absorbing boundary.
func (inc *Incident1D) AdvanceE(t float64) {
	n := len(inc.eCur)
	ratio := inc.phaseVelocityRatio
	copy(inc.ePrev, inc.eCur)
	for i := 1; i < n; i++ {
		inc.eCur[i] = inc.ePrev[i] + ratio*(inc.hCur[i]-inc.hCur[i-1])
	}
	inc.eCur[0] = inc.Source.F(t, nil)
	applyRightTaper(inc.eCur)
}

// AdvanceH performs the H-half of the 1D Yee update, matching the
// driver's step 6 ("plane-wave H advance"): HInc advances from the
// lattice's just-updated EInc.
func (inc *Incident1D) AdvanceH() {
	n := len(inc.hCur)
	ratio := inc.phaseVelocityRatio
	copy(inc.hPrev, inc.hCur)
	for i := 0; i < n-1; i++ {
		inc.hCur[i] = inc.hPrev[i] + ratio*(inc.eCur[i+1]-inc.eCur[i])
	}
	inc.hCur[n-1] = inc.hPrev[n-1]
	applyRightTaper(inc.hCur)
}

func applyRightTaper(v []float64) {
	n := len(v)
	for t := 0; t < rightTaperCells && t < n; t++ {
		idx := n - 1 - t
		damp := float64(t+1) / float64(rightTaperCells+1)
		v[idx] *= damp
	}
}

// SinusoidalSource is the fun.Func hard source of spec.md §4.5 that
// AdvanceE writes into EInc[0]: F returns sin(2π·f·t). No complex-valued
// variant is provided.
type SinusoidalSource struct {
	Freq float64
}

// F implements fun.Func: sin(2π·f·t), ignoring the spatial argument x as
// gofem's own time-only boundary conditions do (see e.g. Gfcn.F(t, nil)).
func (s SinusoidalSource) F(t float64, x []float64) float64 {
	return math.Sin(2 * math.Pi * s.Freq * t)
}

// G implements fun.Func's gradient contract; the hard source has no
// spatial derivative, so it returns zero for every requested component.
func (s SinusoidalSource) G(t float64, x []float64) float64 { return 0 }

// H implements fun.Func's second-derivative contract; unused by the
// hard-source injection, kept at zero for interface compliance.
func (s SinusoidalSource) H(t float64, x []float64) float64 { return 0 }

// SampleAt returns EInc linearly interpolated at a fractional 1D index,
// clamped to the lattice bounds.
func (inc *Incident1D) SampleAt(idx float64) float64 {
	return interpolate(inc.eCur, idx)
}

// SampleHAt returns HInc linearly interpolated at a fractional 1D index.
func (inc *Incident1D) SampleHAt(idx float64) float64 {
	return interpolate(inc.hCur, idx)
}

func interpolate(v []float64, idx float64) float64 {
	n := len(v)
	if idx < 0 {
		idx = 0
	}
	if idx > float64(n-1) {
		idx = float64(n - 1)
	}
	i0 := int(math.Floor(idx))
	i1 := i0 + 1
	if i1 >= n {
		i1 = n - 1
	}
	frac := idx - float64(i0)
	return v[i0] + frac*(v[i1]-v[i0])
}
