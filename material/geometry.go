// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material builds the relative-permittivity/permeability, PML
// conductivity, and Drude dispersion grids of spec.md §4.4. Scatterer and
// dispersive-region shapes are treated as data (a Geometry value), not
// code, per SPEC_FULL.md's generalization of the sphere-only original.
package material

import "github.com/xj361685640/fdtd3d/coord"

// Geometry approximates the fraction of a cubic cell's volume that falls
// inside a region, the "linearly weights the cell value by the fraction
// of its volume inside the object" approximator of spec.md §4.4.
type Geometry interface {
	VolumeFraction(cellCenter coord.Float3, cellSize float64) float64
}

// Sphere is a spherical region, the scatterer spec.md §4.4 names
// explicitly ("a sphere of permittivity 2").
type Sphere struct {
	Center coord.Float3
	Radius float64
}

// VolumeFraction linearly ramps from 0 to 1 over one cell width centered
// on the sphere's surface: cells entirely inside return 1, entirely
// outside return 0, and cells straddling the surface get a value
// proportional to how much of the ramp they cover.
func (s Sphere) VolumeFraction(cellCenter coord.Float3, cellSize float64) float64 {
	d := cellCenter.Sub(s.Center).Norm()
	return clamp01(0.5 - (d-s.Radius)/cellSize)
}

// Box is an axis-aligned box region, supplementing the spec's sphere-only
// example with the box-shaped scatterers/dispersive regions present in
// original_source (SPEC_FULL.md's "treat shapes as data" note).
type Box struct {
	Min, Max coord.Float3
}

// VolumeFraction computes the overlap volume between the cell (a cube of
// side cellSize centered at cellCenter) and the box, divided by the
// cell's volume.
func (b Box) VolumeFraction(cellCenter coord.Float3, cellSize float64) float64 {
	half := cellSize / 2
	fx := axisOverlap(cellCenter.X-half, cellCenter.X+half, b.Min.X, b.Max.X) / cellSize
	fy := axisOverlap(cellCenter.Y-half, cellCenter.Y+half, b.Min.Y, b.Max.Y) / cellSize
	fz := axisOverlap(cellCenter.Z-half, cellCenter.Z+half, b.Min.Z, b.Max.Z) / cellSize
	return fx * fy * fz
}

func axisOverlap(a0, a1, b0, b1 float64) float64 {
	lo := a0
	if b0 > lo {
		lo = b0
	}
	hi := a1
	if b1 < hi {
		hi = b1
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
