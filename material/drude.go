// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"

	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/grid"
)

// DrudeRegion describes a dispersive region: a shape plus its plasma
// frequencies and damping rates, the data spec.md §4.4 calls for instead
// of hard-coded per-shape update code.
type DrudeRegion struct {
	Geometry Geometry
	OmegaPE  float64
	OmegaPM  float64
	GammaE   float64
	GammaM   float64
}

// PlasmaFrequency returns ωP = sqrt(2)*2π*f_source, spec.md §4.4's
// default for dispersive regions.
func PlasmaFrequency(sourceFreq float64) float64 {
	return math.Sqrt2 * 2 * math.Pi * sourceFreq
}

// FillDrude populates OmegaPE/OmegaPM/GammaE/GammaM for every configured
// dispersive region (blending by VolumeFraction the same way StampEps
// blends permittivity), then leaves them at their zero default inside
// the PML per the resolved Open Question of spec.md §9 ("this
// specification assumes PML dominates in PML cells"): see DESIGN.md
// decision 1.
func (g *Grids) FillDrude(regions []DrudeRegion, gridStep float64, pmlSize int, pmlAxes [3]bool) {
	size := g.OmegaPE.LocalSize()
	for i := 0; i < size.I; i++ {
		for j := 0; j < size.J; j++ {
			for k := 0; k < size.K; k++ {
				local := coord.Int3{I: i, J: j, K: k}
				global := g.OmegaPE.TotalPosition(local)
				if pmlSize > 0 && IsPML(global, g.OmegaPE.Size(), pmlSize, pmlAxes) {
					continue
				}
				center := coord.Float3{
					X: (float64(global.I) + 0.5) * gridStep,
					Y: (float64(global.J) + 0.5) * gridStep,
					Z: (float64(global.K) + 0.5) * gridStep,
				}
				for _, r := range regions {
					frac := r.Geometry.VolumeFraction(center, gridStep)
					if frac <= 0 {
						continue
					}
					blend(g.OmegaPE, local, frac, r.OmegaPE)
					blend(g.OmegaPM, local, frac, r.OmegaPM)
					blend(g.GammaE, local, frac, r.GammaE)
					blend(g.GammaM, local, frac, r.GammaM)
				}
			}
		}
	}
}

func blend(g *grid.Grid[float64], local coord.Int3, frac, target float64) {
	cur := g.Current(local)
	g.Set(local, cur+frac*(target-cur))
}
