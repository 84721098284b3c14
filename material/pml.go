// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"

	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/physics"
	"github.com/xj361685640/fdtd3d/yee"
)

// PMLParams configures the polynomial conductivity grading of spec.md
// §4.4: order m (default 6), thickness in cells, and target reflection
// error.
type PMLParams struct {
	Order       int
	Size        int // PML thickness in cells
	GridStep    float64
	TargetError float64 // R_err, default 1e-16
}

// DefaultPMLParams returns spec.md §4.4's defaults (order 6, R_err
// 1e-16) for the given thickness and grid step.
func DefaultPMLParams(size int, gridStep float64) PMLParams {
	return PMLParams{Order: 6, Size: size, GridStep: gridStep, TargetError: 1e-16}
}

// sigmaMax computes σ_max = -ln(Rerr)*(m+1) / (2*sqrt(mu0/eps0)*L),
// spec.md §4.4.
func (p PMLParams) sigmaMax() float64 {
	L := float64(p.Size) * p.GridStep
	return -math.Log(p.TargetError) * float64(p.Order+1) / (2 * physics.Eta0() * L)
}

// boundaryFactor computes σ_max / (gridStep * L^m * (m+1)), spec.md §4.4.
func (p PMLParams) boundaryFactor() float64 {
	L := float64(p.Size) * p.GridStep
	return p.sigmaMax() / (p.GridStep * math.Pow(L, float64(p.Order)) * float64(p.Order+1))
}

// SigmaAtDistance returns σ(d) for a cell at distance d (in cells) from
// the inner PML boundary (d=0) to the outermost cell (d=Size-1), spec.md
// §4.4's polynomial grading:
//
//	σ(d) = boundaryFactor * ((d+1)^(m+1) - d^(m+1)) * gridStep^(m+1)
func (p PMLParams) SigmaAtDistance(d int) float64 {
	if d < 0 || d >= p.Size {
		return 0
	}
	m1 := float64(p.Order + 1)
	return p.boundaryFactor() * (math.Pow(float64(d+1), m1) - math.Pow(float64(d), m1)) * math.Pow(p.GridStep, m1)
}

// distanceFromOuterFace returns the PML cell's depth along axis a in
// SigmaAtDistance's convention: 0 for the cell next to the interior,
// size-1 for the cell on the grid's outer face, or -1 if pos is not
// within the PML thickness on that axis's low or high face.
func distanceFromOuterFace(pos, totalSize coord.Int3, axis coord.Axis, size int) int {
	lo := pos.Component(axis)
	hi := totalSize.Component(axis) - 1 - lo
	if lo < size {
		return size - 1 - lo
	}
	if hi < size {
		return size - 1 - hi
	}
	return -1
}

// FillSigma populates SigmaX/SigmaY/SigmaZ independently using the
// distance from the x, y, z outer faces respectively, per spec.md §4.4.
// enabledAxes selects which axes carry PML at all (a 1D-X run, say, only
// grades SigmaX).
func (g *Grids) FillSigma(params PMLParams, enabledAxes [3]bool) {
	size := g.SigmaX.LocalSize()
	for i := 0; i < size.I; i++ {
		for j := 0; j < size.J; j++ {
			for k := 0; k < size.K; k++ {
				local := coord.Int3{I: i, J: j, K: k}
				global := g.SigmaX.TotalPosition(local)
				if enabledAxes[coord.AxisX] {
					if d := distanceFromOuterFace(global, g.SigmaX.Size(), coord.AxisX, params.Size); d >= 0 {
						g.SigmaX.Set(local, params.SigmaAtDistance(d))
					}
				}
				if enabledAxes[coord.AxisY] {
					if d := distanceFromOuterFace(global, g.SigmaY.Size(), coord.AxisY, params.Size); d >= 0 {
						g.SigmaY.Set(local, params.SigmaAtDistance(d))
					}
				}
				if enabledAxes[coord.AxisZ] {
					if d := distanceFromOuterFace(global, g.SigmaZ.Size(), coord.AxisZ, params.Size); d >= 0 {
						g.SigmaZ.Set(local, params.SigmaAtDistance(d))
					}
				}
			}
		}
	}
}

// IsPML reports whether a global cell coordinate lies in the PML region
// on any enabled axis, delegating to yee.IsPMLRegion so the kernel and
// material init agree on the boundary.
func IsPML(pos, totalSize coord.Int3, size int, enabledAxes [3]bool) bool {
	return yee.IsPMLRegion(pos, totalSize, size, enabledAxes)
}
