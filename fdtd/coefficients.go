// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fdtd implements the per-timestep update engine of spec.md
// §4.5: the composed plain-Yee/PML/Drude updates, the TFSF correction
// applied to cells straddling the Huygens surface, and the per-cell
// coefficient caches that make both affordable.
package fdtd

import (
	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/grid"
	"github.com/xj361685640/fdtd3d/material"
	"github.com/xj361685640/fdtd3d/physics"
	"github.com/xj361685640/fdtd3d/yee"
)

// PerCellCoefficients caches the split-field PML coefficients for one
// vector field component, computed once from the (static, read-only)
// material grids rather than recomputed every timestep — SPEC_FULL.md's
// supplement to spec.md §4.5's "precomputed per-cell material" note,
// generalizing the original per-step coefficient expressions the way
// gofem precomputes shape-function derivatives once per element instead
// of once per Gauss-point evaluation.
type PerCellCoefficients struct {
	Ca, Cb           *grid.Grid[float64] // curl -> auxiliary (D or B) update
	RecA, RecB, RecC *grid.Grid[float64] // auxiliary -> field recovery
}

func sigmaGrid(mat *material.Grids, axis coord.Axis) *grid.Grid[float64] {
	switch axis {
	case coord.AxisX:
		return mat.SigmaX
	case coord.AxisY:
		return mat.SigmaY
	default:
		return mat.SigmaZ
	}
}

func allocLike(ref *grid.Grid[float64]) *grid.Grid[float64] {
	return grid.New[float64](ref.Size(), ref.LocalSize(), ref.Offset(), ref.Halo(), grid.LayerNone)
}

// buildCoefficients computes the PML split-field coefficients of spec.md
// §4.5 for one component: Ca/Cb drive the curl->auxiliary step using the
// sigma on the curl's "positive" partner axis; RecA/RecB/RecC recover the
// physical field from the auxiliary variable using sigma on the
// component's own axis and its "negative" partner axis, cyclically
// permuted from the Ex example the spec gives. usesMu swaps ε0/ε for
// μ0/μ, per the spec's "H/B updates are symmetric with μ replacing ε".
// The recovery denominator uses the cell's own ε_r/μ_r; the Drude
// recovery triple, which uses 1 there instead (spec.md §4.5's
// "modifier=1"), comes from buildCoefficientsWithModifier.
func buildCoefficients(comp yee.Component, mat *material.Grids, dt, dx float64, usesMu bool) *PerCellCoefficients {
	a := yee.AxisOf(comp)
	posAxis := coord.Axis((int(a) + 1) % 3)
	negAxis := coord.Axis((int(a) + 2) % 3)
	sigmaPos := sigmaGrid(mat, posAxis)
	sigmaNeg := sigmaGrid(mat, negAxis)
	sigmaSelf := sigmaGrid(mat, a)

	matConst := physics.Eps0
	matRel := mat.Eps
	if usesMu {
		matConst = physics.Mu0
		matRel = mat.Mu
	}

	c := &PerCellCoefficients{Ca: allocLike(mat.Eps), Cb: allocLike(mat.Eps), RecA: allocLike(mat.Eps), RecB: allocLike(mat.Eps), RecC: allocLike(mat.Eps)}
	size := mat.Eps.LocalSize()
	for i := 0; i < size.I; i++ {
		for j := 0; j < size.J; j++ {
			for k := 0; k < size.K; k++ {
				local := coord.Int3{I: i, J: j, K: k}
				sp := sigmaPos.Current(local)
				sn := sigmaNeg.Current(local)
				ss := sigmaSelf.Current(local)

				den1 := 2*matConst + sp*dt
				c.Ca.Set(local, (2*matConst-sp*dt)/den1)
				c.Cb.Set(local, (2*matConst*dt/dx)/den1)

				den2 := 2*matConst + sn*dt
				c.RecA.Set(local, (2*matConst-sn*dt)/den2)
				relEps := matRel.Current(local) * matConst
				c.RecB.Set(local, ((2*matConst+ss*dt)/relEps)/den2)
				c.RecC.Set(local, ((2*matConst-ss*dt)/relEps)/den2)
			}
		}
	}
	return c
}

// DrudeCoefficients caches the five dispersive-recursion coefficients of
// spec.md §4.5's D1 update, plus a recovery triple built with
// modifier=1 (ε folded into the dispersion recursion already, so
// the final field recovery from D1 must not divide by ε_r a second
// time).
type DrudeCoefficients struct {
	CD1, CD0, CDm1, CD1_0, CD1_m1 *grid.Grid[float64]
	Recovery                      *PerCellCoefficients
}

// buildDrudeCoefficients computes spec.md §4.5's Drude dispersive
// coefficients for one component's axis, using γ (GammaE or GammaM) and
// ωP (OmegaPE or OmegaPM) from the material grids.
func buildDrudeCoefficients(comp yee.Component, mat *material.Grids, dt, dx float64, usesMu bool) *DrudeCoefficients {
	matConst := physics.Eps0
	matRel := mat.Eps
	gamma := mat.GammaE
	omegaP := mat.OmegaPE
	if usesMu {
		matConst = physics.Mu0
		matRel = mat.Mu
		gamma = mat.GammaM
		omegaP = mat.OmegaPM
	}

	d := &DrudeCoefficients{
		CD1: allocLike(mat.Eps), CD0: allocLike(mat.Eps), CDm1: allocLike(mat.Eps),
		CD1_0: allocLike(mat.Eps), CD1_m1: allocLike(mat.Eps),
	}
	size := mat.Eps.LocalSize()
	for i := 0; i < size.I; i++ {
		for j := 0; j < size.J; j++ {
			for k := 0; k < size.K; k++ {
				local := coord.Int3{I: i, J: j, K: k}
				eps := matRel.Current(local)
				g := gamma.Current(local)
				wp := omegaP.Current(local)

				A := 4*matConst*eps + 2*dt*matConst*eps*g + matConst*dt*dt*wp*wp
				if A == 0 {
					A = 1 // outside any Drude region: coefficients unused (see isDrude gate)
				}
				d.CD1.Set(local, (4+2*dt*g)/A)
				d.CD0.Set(local, -8/A)
				d.CDm1.Set(local, (4-2*dt*g)/A)
				d.CD1_0.Set(local, (2*matConst*dt*dt*wp*wp-8*matConst*eps)/A)
				d.CD1_m1.Set(local, (4*matConst*eps-2*dt*matConst*eps*g+matConst*dt*dt*wp*wp)/A)
			}
		}
	}
	d.Recovery = buildCoefficientsWithModifier(comp, mat, dt, dx, usesMu, 1)
	return d
}

// buildCoefficientsWithModifier is buildCoefficients generalized to take
// an explicit recovery-denominator material factor instead of always
// reading it from the Eps/Mu grid, so Drude's D1->field recovery can pass
// modifier=1 per spec.md §4.5.
func buildCoefficientsWithModifier(comp yee.Component, mat *material.Grids, dt, dx float64, usesMu bool, modifier float64) *PerCellCoefficients {
	a := yee.AxisOf(comp)
	posAxis := coord.Axis((int(a) + 1) % 3)
	negAxis := coord.Axis((int(a) + 2) % 3)
	sigmaPos := sigmaGrid(mat, posAxis)
	sigmaNeg := sigmaGrid(mat, negAxis)
	sigmaSelf := sigmaGrid(mat, a)

	matConst := physics.Eps0
	if usesMu {
		matConst = physics.Mu0
	}

	c := &PerCellCoefficients{Ca: allocLike(mat.Eps), Cb: allocLike(mat.Eps), RecA: allocLike(mat.Eps), RecB: allocLike(mat.Eps), RecC: allocLike(mat.Eps)}
	size := mat.Eps.LocalSize()
	for i := 0; i < size.I; i++ {
		for j := 0; j < size.J; j++ {
			for k := 0; k < size.K; k++ {
				local := coord.Int3{I: i, J: j, K: k}
				sp := sigmaPos.Current(local)
				sn := sigmaNeg.Current(local)
				ss := sigmaSelf.Current(local)

				den1 := 2*matConst + sp*dt
				c.Ca.Set(local, (2*matConst-sp*dt)/den1)
				c.Cb.Set(local, (2*matConst*dt/dx)/den1)

				den2 := 2*matConst + sn*dt
				c.RecA.Set(local, (2*matConst-sn*dt)/den2)
				relEps := modifier * matConst
				c.RecB.Set(local, ((2*matConst+ss*dt)/relEps)/den2)
				c.RecC.Set(local, ((2*matConst-ss*dt)/relEps)/den2)
			}
		}
	}
	return c
}
