// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/xj361685640/fdtd3d/coord"
)

func TestSphereVolumeFraction(tst *testing.T) {
	chk.PrintTitle("SphereVolumeFraction")
	s := Sphere{Center: coord.Float3{X: 5, Y: 5, Z: 5}, Radius: 2}
	chk.Scalar(tst, "deep inside", 1e-15, s.VolumeFraction(coord.Float3{X: 5, Y: 5, Z: 5}, 1.0), 1.0)
	chk.Scalar(tst, "far outside", 1e-15, s.VolumeFraction(coord.Float3{X: 20, Y: 5, Z: 5}, 1.0), 0.0)
	onSurface := s.VolumeFraction(coord.Float3{X: 7, Y: 5, Z: 5}, 1.0)
	if onSurface <= 0 || onSurface >= 1 {
		tst.Errorf("expected fractional value straddling the surface, got %v", onSurface)
	}
}

func TestBoxVolumeFraction(tst *testing.T) {
	chk.PrintTitle("BoxVolumeFraction")
	b := Box{Min: coord.Float3{X: 0, Y: 0, Z: 0}, Max: coord.Float3{X: 2, Y: 2, Z: 2}}
	chk.Scalar(tst, "fully inside", 1e-15, b.VolumeFraction(coord.Float3{X: 1, Y: 1, Z: 1}, 1.0), 1.0)
	chk.Scalar(tst, "fully outside", 1e-15, b.VolumeFraction(coord.Float3{X: 10, Y: 10, Z: 10}, 1.0), 0.0)
	half := b.VolumeFraction(coord.Float3{X: 2, Y: 1, Z: 1}, 1.0)
	chk.Scalar(tst, "straddling a face", 1e-12, half, 0.5)
}

func TestPMLSigmaMonotoneIncreasing(tst *testing.T) {
	chk.PrintTitle("PMLSigmaMonotoneIncreasing")
	p := DefaultPMLParams(8, 0.01)
	prev := -1.0
	for d := 0; d < p.Size; d++ {
		s := p.SigmaAtDistance(d)
		if s <= prev {
			tst.Errorf("sigma should increase toward outer face: d=%d sigma=%v prev=%v", d, s, prev)
		}
		prev = s
	}
	chk.Scalar(tst, "sigma outside PML thickness is zero", 1e-15, p.SigmaAtDistance(p.Size), 0.0)
	chk.Scalar(tst, "sigma at negative distance is zero", 1e-15, p.SigmaAtDistance(-1), 0.0)
}

func TestStampEpsBlendsTowardTarget(tst *testing.T) {
	chk.PrintTitle("StampEpsBlendsTowardTarget")
	size := coord.Int3{I: 6, J: 6, K: 6}
	g := NewGrids(size, coord.Int3{}, coord.Int3{})
	sphere := Sphere{Center: coord.Float3{X: 3, Y: 3, Z: 3}, Radius: 2}
	g.StampEps(sphere, 2.0, 1.0)
	center := coord.Int3{I: 3, J: 3, K: 3}
	chk.Scalar(tst, "eps at sphere center reaches target", 1e-9, g.Eps.Current(center), 2.0)
	corner := coord.Int3{I: 0, J: 0, K: 0}
	chk.Scalar(tst, "eps far from sphere stays vacuum", 1e-15, g.Eps.Current(corner), 1.0)
}

func TestFillDrudeSkipsPMLRegion(tst *testing.T) {
	chk.PrintTitle("FillDrudeSkipsPMLRegion")
	size := coord.Int3{I: 10, J: 10, K: 10}
	g := NewGrids(size, coord.Int3{}, coord.Int3{})
	omegaPE := PlasmaFrequency(5e14)
	region := DrudeRegion{
		Geometry: Box{Min: coord.Float3{X: 0, Y: 0, Z: 0}, Max: coord.Float3{X: 10, Y: 10, Z: 10}},
		OmegaPE:  omegaPE,
		OmegaPM:  omegaPE,
		GammaE:   1e13,
		GammaM:   1e13,
	}
	g.FillDrude([]DrudeRegion{region}, 1.0, 2, [3]bool{true, true, true})

	interior := coord.Int3{I: 5, J: 5, K: 5}
	chk.Scalar(tst, "interior cell picks up plasma frequency", 1e-6, g.OmegaPE.Current(interior), omegaPE)

	pmlCell := coord.Int3{I: 0, J: 5, K: 5}
	chk.Scalar(tst, "PML cell left at default zero", 1e-15, g.OmegaPE.Current(pmlCell), 0.0)
}
