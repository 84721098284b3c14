// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdtd

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/grid"
	"github.com/xj361685640/fdtd3d/physics"
	"github.com/xj361685640/fdtd3d/yee"
)

func axisDirections(axis coord.Axis) (low, high yee.Direction) {
	switch axis {
	case coord.AxisX:
		return yee.Left, yee.Right
	case coord.AxisY:
		return yee.Down, yee.Up
	default:
		return yee.Back, yee.Front
	}
}

// curlAndTFSF computes the discrete curl term of spec.md §4.5's plain
// Yee update (posFamily difference along posAxis minus negFamily
// difference along negAxis, per yee.CurlTerms), patching each of the
// four neighbor reads with the projected incident field whenever that
// neighbor straddles the TFSF Huygens surface (spec.md §4.5's "TFSF
// correction"). forE selects the sign convention: subtracting the
// incident value when updating E from H, adding it when updating H
// from E.
func (eng *Engine) curlAndTFSF(comp yee.Component, local, global coord.Int3, forE bool) float64 {
	posAxis, _, negAxis, _ := yee.CurlTerms(comp)
	lowPosDir, highPosDir := axisDirections(posAxis)
	lowNegDir, highNegDir := axisDirections(negAxis)

	posHigh := eng.neighborValue(comp, local, global, highPosDir, forE)
	posLow := eng.neighborValue(comp, local, global, lowPosDir, forE)
	negHigh := eng.neighborValue(comp, local, global, highNegDir, forE)
	negLow := eng.neighborValue(comp, local, global, lowNegDir, forE)
	return (posHigh - posLow) - (negHigh - negLow)
}

func (eng *Engine) neighborValue(comp yee.Component, local, global coord.Int3, dir yee.Direction, forE bool) float64 {
	neighborComp, neighborLocal := yee.GetCircuitElement(comp, local, dir)
	fieldGrid := eng.componentGrid(neighborComp)
	value := fieldGrid.Current(neighborLocal)
	if eng.Opts.UseTFSF && yee.NeedTFSFUpdateBorder(comp, global, dir, eng.Opts.TFSFBox) {
		neighborGlobal := fieldGrid.TotalPosition(neighborLocal)
		pos := realPositionGlobal(eng.Dx, neighborComp, neighborGlobal)
		incident := eng.Surface.ProjectOntoSurface(eng.Incident, neighborComp, pos)
		if forE {
			value -= incident
		} else {
			value += incident
		}
	}
	return value
}

// isNonFinite reports NaN or infinity, the spec.md §7 "Non-finite" fatal
// error condition every StepE/StepH write must guard against.
func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// StepE performs spec.md §4.5's E-half of one timestep: the TFSF plane-
// wave E advance (if enabled), the composed Yee/PML/Drude E update over
// every interior cell, the optional hard-source injection, and the
// time-layer roll. Halo exchange is the Time Driver's responsibility
// (it needs the Topology/Transport this package intentionally does not
// depend on).
func (eng *Engine) StepE(t float64) error {
	if eng.Opts.UseTFSF {
		eng.Incident.AdvanceE(t)
	}
	margin := coord.Int3{I: 1, J: 1, K: 1}
	for a := 0; a < 3; a++ {
		comp := eFamily[a]
		fieldGrid := eng.E[a]
		auxGrid := eng.D[a]
		start := fieldGrid.ComputationStart(margin)
		end := fieldGrid.ComputationEnd(margin)
		for i := start.I; i < end.I; i++ {
			for j := start.J; j < end.J; j++ {
				for k := start.K; k < end.K; k++ {
					local := coord.Int3{I: i, J: j, K: k}
					global := fieldGrid.TotalPosition(local)
					curlVal := eng.curlAndTFSF(comp, local, global, true)
					ePrev := fieldGrid.Current(local)
					var eNew float64
					if eng.pmlCellActive(global) || (eng.Opts.UsePML && eng.Opts.UseMetamaterials && eng.isDrudeCell(a, local, true)) {
						eNew = eng.pmlUpdate(a, auxGrid, eng.pmlE[a], local, curlVal, ePrev, true)
					} else {
						eps := eng.Material.Eps.Current(local) * physics.Eps0
						eNew = ePrev + (eng.Dt/(eps*eng.Dx))*curlVal
					}
					if isNonFinite(eNew) {
						return chk.Err("fdtd: non-finite Ex/Ey/Ez at global cell %v", global)
					}
					fieldGrid.Set(local, eNew)
				}
			}
		}
	}
	if !eng.Opts.UseTFSF && eng.Opts.HardSource {
		eng.injectHardSource(t)
	}
	return eng.rollE()
}

// StepH is StepE's mirror for the H-half of the timestep.
func (eng *Engine) StepH(t float64) error {
	if eng.Opts.UseTFSF {
		eng.Incident.AdvanceH()
	}
	margin := coord.Int3{I: 1, J: 1, K: 1}
	for a := 0; a < 3; a++ {
		comp := hFamily[a]
		fieldGrid := eng.H[a]
		auxGrid := eng.B[a]
		start := fieldGrid.ComputationStart(margin)
		end := fieldGrid.ComputationEnd(margin)
		for i := start.I; i < end.I; i++ {
			for j := start.J; j < end.J; j++ {
				for k := start.K; k < end.K; k++ {
					local := coord.Int3{I: i, J: j, K: k}
					global := fieldGrid.TotalPosition(local)
					curlVal := eng.curlAndTFSF(comp, local, global, false)
					hPrev := fieldGrid.Current(local)
					var hNew float64
					if eng.pmlCellActive(global) || (eng.Opts.UsePML && eng.Opts.UseMetamaterials && eng.isDrudeCell(a, local, false)) {
						hNew = eng.pmlUpdate(a, auxGrid, eng.pmlH[a], local, -curlVal, hPrev, false)
					} else {
						mu := eng.Material.Mu.Current(local) * physics.Mu0
						hNew = hPrev - (eng.Dt/(mu*eng.Dx))*curlVal
					}
					if isNonFinite(hNew) {
						return chk.Err("fdtd: non-finite Hx/Hy/Hz at global cell %v", global)
					}
					fieldGrid.Set(local, hNew)
				}
			}
		}
	}
	return eng.rollH()
}

// pmlCellActive is the original's "no-PML corner" fast path, kept per
// SPEC_FULL.md's supplement note: cells outside the PML region take the
// cheaper plain-Yee branch even when UsePML is enabled for the run,
// except Drude cells (isDrudeCell), which StepE/StepH route through
// pmlUpdate where the dispersive sub-update lives.
func (eng *Engine) pmlCellActive(global coord.Int3) bool {
	if !eng.Opts.UsePML {
		return false
	}
	return yee.IsPMLRegion(global, eng.Material.Eps.Size(), eng.Opts.PMLSize, eng.Opts.PMLAxes)
}

// pmlUpdate performs the split-field D/B update plus field recovery of
// spec.md §4.5, dispatching to the Drude D1/B1 sub-update when the cell
// carries dispersion (OmegaPE/OmegaPM nonzero).
func (eng *Engine) pmlUpdate(axis int, auxGrid *grid.Grid[float64], pml *PerCellCoefficients, local coord.Int3, curlVal, fieldPrev float64, forE bool) float64 {
	dPrev := auxGrid.Current(local)
	dNew := pml.Ca.Current(local)*dPrev + pml.Cb.Current(local)*curlVal
	auxGrid.Set(local, dNew)

	if eng.Opts.UseMetamaterials && eng.isDrudeCell(axis, local, forE) {
		var aux1 *grid.Grid[float64]
		var dc *DrudeCoefficients
		if forE {
			aux1 = eng.D1[axis]
			dc = eng.drudeE[axis]
		} else {
			aux1 = eng.B1[axis]
			dc = eng.drudeH[axis]
		}
		dPrevPrev := auxGrid.Previous(local)
		d1Prev := aux1.Current(local)
		d1PrevPrev := aux1.Previous(local)
		d1New := dc.CD1.Current(local)*dNew +
			dc.CD0.Current(local)*dPrev +
			dc.CDm1.Current(local)*dPrevPrev +
			dc.CD1_0.Current(local)*d1Prev +
			dc.CD1_m1.Current(local)*d1PrevPrev
		aux1.Set(local, d1New)
		rec := dc.Recovery
		return rec.RecA.Current(local)*fieldPrev + rec.RecB.Current(local)*d1New - rec.RecC.Current(local)*d1Prev
	}

	return pml.RecA.Current(local)*fieldPrev + pml.RecB.Current(local)*dNew - pml.RecC.Current(local)*dPrev
}

// injectHardSource writes spec.md §4.5 step 3's optional non-TFSF hard
// source into Ez at the configured grid center.
func (eng *Engine) injectHardSource(t float64) {
	local := eng.E[2].RelativePosition(eng.Opts.SourceCenter)
	if !local.InBounds(eng.E[2].LocalSize()) {
		return
	}
	eng.E[2].Set(local, eng.Opts.SourceFunc.F(t, nil))
}

func (eng *Engine) rollE() error {
	for a := 0; a < 3; a++ {
		eng.E[a].MarkComputed()
		if err := eng.E[a].AdvanceLayers(); err != nil {
			return err
		}
		eng.D[a].MarkComputed()
		if err := eng.D[a].AdvanceLayers(); err != nil {
			return err
		}
		if eng.Opts.UseMetamaterials {
			eng.D1[a].MarkComputed()
			if err := eng.D1[a].AdvanceLayers(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (eng *Engine) rollH() error {
	for a := 0; a < 3; a++ {
		eng.H[a].MarkComputed()
		if err := eng.H[a].AdvanceLayers(); err != nil {
			return err
		}
		eng.B[a].MarkComputed()
		if err := eng.B[a].AdvanceLayers(); err != nil {
			return err
		}
		if eng.Opts.UseMetamaterials {
			eng.B1[a].MarkComputed()
			if err := eng.B1[a].AdvanceLayers(); err != nil {
				return err
			}
		}
	}
	return nil
}
