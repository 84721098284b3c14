// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tfsf

import (
	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/yee"
)

// Surface binds an Incident1D lattice to the 3D Huygens box geometry it
// drives, letting the FDTD kernel ask "what is the incident E or H at
// this real-space position" without knowing about the 1D auxiliary grid
// at all.
type Surface struct {
	Box      yee.Box
	ThetaRad float64
	PhiRad   float64
	GridStep float64

	dir    coord.Float3
	origin coord.Float3 // real-space point mapping to 1D index marginCells
}

// marginCells reserves room at the front of the 1D lattice so every
// position the TFSF correction samples (one cell outside the box) maps
// to a non-negative index.
const marginCells = 1.0

// NewSurface computes the projection origin: the box corner most
// "upstream" along the propagation direction (the corner minimizing
// dot(corner, dir)), so every position inside the box projects to an
// index >= marginCells before the H half-cell offset is subtracted.
func NewSurface(box yee.Box, thetaRad, phiRad, gridStep float64) *Surface {
	dir := coord.Spherical(thetaRad, phiRad)
	pick := func(lo, hi int, d float64) int {
		if d >= 0 {
			return lo
		}
		return hi
	}
	corner := coord.Int3{
		I: pick(box.Min.I, box.Max.I, dir.X),
		J: pick(box.Min.J, box.Max.J, dir.Y),
		K: pick(box.Min.K, box.Max.K, dir.Z),
	}
	return &Surface{
		Box: box, ThetaRad: thetaRad, PhiRad: phiRad, GridStep: gridStep,
		dir:    dir,
		origin: coord.FromInt3(corner).Scale(gridStep),
	}
}

// index1D returns the fractional 1D-lattice index for a real-space
// position, per spec.md §4.5 step 2: project along
// (sinθcosφ, sinθsinφ, cosθ), subtract a half-cell offset for H fields
// (none for E), then add back the reserved margin.
func (s *Surface) index1D(pos coord.Float3, halfCellOffset float64) float64 {
	rel := pos.Sub(s.origin)
	return rel.Dot(s.dir)/s.GridStep - halfCellOffset + marginCells
}

// ProjectE returns the incident E-field vector component at a real-space
// position, via 1D interpolation on inc.EInc followed by the angular
// projection of yee.IncidentProjection.
func (s *Surface) ProjectE(inc *Incident1D, comp yee.Component, pos coord.Float3) float64 {
	scalar := inc.SampleAt(s.index1D(pos, 0))
	return yee.IncidentProjection(comp, s.ThetaRad, s.PhiRad, scalar)
}

// ProjectH returns the incident H-field vector component at a real-space
// position, subtracting the half-cell offset spec.md §4.5 step 2 assigns
// to H samples before interpolating on inc.HInc.
func (s *Surface) ProjectH(inc *Incident1D, comp yee.Component, pos coord.Float3) float64 {
	scalar := inc.SampleHAt(s.index1D(pos, 0.5))
	return yee.IncidentProjection(comp, s.ThetaRad, s.PhiRad, scalar)
}

// ProjectOntoSurface dispatches to ProjectE or ProjectH by component
// family, the single entry point spec.md §4.5's TFSF correction calls
// when patching a neighbor value that straddles the Huygens surface.
func (s *Surface) ProjectOntoSurface(inc *Incident1D, comp yee.Component, pos coord.Float3) float64 {
	switch comp {
	case yee.Ex, yee.Ey, yee.Ez:
		return s.ProjectE(inc, comp, pos)
	default:
		return s.ProjectH(inc, comp, pos)
	}
}
