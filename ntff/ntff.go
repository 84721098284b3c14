// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ntff implements the near-to-far-field radiation-pattern
// transform of spec.md §4.7: surface-current integration over the six
// faces of a closed box into the vector potentials N and L, decomposed
// into (θ, φ) spherical components, and the scattered Poynting-flux
// pattern those vectors imply.
package ntff

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/grid"
	"github.com/xj361685640/fdtd3d/physics"
)

// Box is the rectangular closed surface of spec.md §3 ("NTFF surface"):
// leftNTFF/rightNTFF corners placed between the TFSF surface and the PML
// region.
type Box struct {
	LeftNTFF, RightNTFF coord.Int3
}

// Fields bundles the six complex-phasor field grids the transform reads,
// gathered onto a single rank by the Time Driver before invoking
// Accumulate (spec.md §4.7: "requires a gathered full grid").
type Fields struct {
	Ex, Ey, Ez *grid.Grid[complex128]
	Hx, Hy, Hz *grid.Grid[complex128]
}

func (f *Fields) component(axis coord.Axis, electric bool) *grid.Grid[complex128] {
	if electric {
		return [3]*grid.Grid[complex128]{f.Ex, f.Ey, f.Ez}[axis]
	}
	return [3]*grid.Grid[complex128]{f.Hx, f.Hy, f.Hz}[axis]
}

// Angle is one (θ, φ) sample direction.
type Angle struct {
	ThetaRad, PhiRad float64
}

// Vectors holds the Cartesian N and L vector-potential accumulations for
// one angle, before spherical decomposition.
type Vectors struct {
	N, L [3]complex128
}

// Spherical holds the (θ, φ) components of N and L the Poynting formula
// of spec.md §4.7 needs.
type Spherical struct {
	Angle        Angle
	Ntheta, Nphi complex128
	Ltheta, Lphi complex128
}

// Accumulate surface-integrates the six faces of box into N and L for
// every requested angle, per spec.md §4.7: each face contribution
// averages the two samples straddling the face, multiplies by face area
// gridStep², applies the outward-normal sign, and multiplies by the
// phase factor e^{i·k·r̂·r}.
func Accumulate(fields *Fields, box Box, gridStep, wavenumber float64, angles []Angle) []Spherical {
	results := make([]Spherical, len(angles))
	for idx, ang := range angles {
		dir := coord.Spherical(ang.ThetaRad, ang.PhiRad)
		var vec Vectors
		for axis := coord.Axis(0); axis < coord.NumAxes; axis++ {
			accumulateFace(fields, box, gridStep, wavenumber, dir, axis, box.LeftNTFF, -1, &vec)
			accumulateFace(fields, box, gridStep, wavenumber, dir, axis, box.RightNTFF, 1, &vec)
		}
		results[idx] = toSpherical(ang, vec)
	}
	return results
}

func tangentialAxes(a coord.Axis) (b, c coord.Axis) {
	return coord.Axis((int(a) + 1) % 3), coord.Axis((int(a) + 2) % 3)
}

// accumulateFace integrates one face of the box (the face at cornerOnAxis's
// coordinate along `axis`, with outward sign `sign`) into vec.
func accumulateFace(fields *Fields, box Box, gridStep, wavenumber float64, dir coord.Float3, axis coord.Axis, corner coord.Int3, sign float64, vec *Vectors) {
	b, c := tangentialAxes(axis)
	area := gridStep * gridStep
	lo := box.LeftNTFF
	hi := box.RightNTFF
	bRange := axisRange(lo, hi, b)
	cRange := axisRange(lo, hi, c)
	aIdx := corner.Component(axis)

	for bi := bRange[0]; bi <= bRange[1]; bi++ {
		for ci := cRange[0]; ci <= cRange[1]; ci++ {
			pos := coord.Int3{}.WithComponent(axis, aIdx).WithComponent(b, bi).WithComponent(c, ci)
			real := coord.Float3{
				X: float64(pos.I) * gridStep,
				Y: float64(pos.J) * gridStep,
				Z: float64(pos.K) * gridStep,
			}
			phase := cmplx.Exp(complex(0, wavenumber*dir.Dot(real)))

			eb := faceAverage(fields.component(b, true), pos, axis)
			ec := faceAverage(fields.component(c, true), pos, axis)
			hb := faceAverage(fields.component(b, false), pos, axis)
			hc := faceAverage(fields.component(c, false), pos, axis)

			// J_s = n x H, M_s = -n x E, with n = sign * axis-unit-vector;
			// axis,b,c is a right-handed cyclic triple so n x H has
			// tangential components (-Hc, Hb) and -n x E has (Ec, -Eb).
			weight := complex(sign*area, 0) * phase
			vec.N[b] += -hc * weight
			vec.N[c] += hb * weight
			vec.L[b] += ec * weight
			vec.L[c] += -eb * weight
		}
	}
}

// faceAverage samples a tangential field component at the two cells
// straddling a face along `axis`, per spec.md §4.7's "average the two
// surrounding samples".
func faceAverage(g *grid.Grid[complex128], pos coord.Int3, axis coord.Axis) complex128 {
	lowPos := pos
	if lowPos.Component(axis) > 0 {
		lowPos = lowPos.WithComponent(axis, lowPos.Component(axis)-1)
	}
	return (g.Current(pos) + g.Current(lowPos)) / 2
}

func axisRange(lo, hi coord.Int3, axis coord.Axis) [2]int {
	return [2]int{lo.Component(axis), hi.Component(axis)}
}

// toSpherical decomposes Cartesian N/L into (θ, φ) components via the
// standard spherical unit-vector projection.
func toSpherical(ang Angle, vec Vectors) Spherical {
	st, ct := math.Sincos(ang.ThetaRad)
	sp, cp := math.Sincos(ang.PhiRad)

	thetaHat := coord.Float3{X: ct * cp, Y: ct * sp, Z: -st}
	phiHat := coord.Float3{X: -sp, Y: cp, Z: 0}

	project := func(v [3]complex128, hat coord.Float3) complex128 {
		return v[0]*complex(hat.X, 0) + v[1]*complex(hat.Y, 0) + v[2]*complex(hat.Z, 0)
	}
	return Spherical{
		Angle:  ang,
		Ntheta: project(vec.N, thetaHat),
		Nphi:   project(vec.N, phiHat),
		Ltheta: project(vec.L, thetaHat),
		Lphi:   project(vec.L, phiHat),
	}
}

// ScatteredPattern implements spec.md §4.7's P_scat formula:
// k²/(8π·η₀) · (|-Lφ + η₀·Nθ|² + |-Lθ - η₀·Nφ|²).
func ScatteredPattern(s Spherical, wavenumber float64) float64 {
	eta0 := physics.Eta0()
	termTheta := -s.Lphi + complex(eta0, 0)*s.Ntheta
	termPhi := -s.Ltheta - complex(eta0, 0)*s.Nphi
	return wavenumber * wavenumber / (8 * math.Pi * eta0) * (cmplx.Abs(termTheta)*cmplx.Abs(termTheta) + cmplx.Abs(termPhi)*cmplx.Abs(termPhi))
}

// IncidentPoynting is spec.md §4.7's constant P_inc = sqrt(eps0/mu0).
func IncidentPoynting() float64 {
	return math.Sqrt(physics.Eps0 / physics.Mu0)
}

// Sweep generates a uniform (θ, φ) angle grid of thetaCount x phiCount
// samples over the full sphere.
func Sweep(thetaCount, phiCount int) []Angle {
	angles := make([]Angle, 0, thetaCount*phiCount)
	for ti := 0; ti < thetaCount; ti++ {
		theta := math.Pi * float64(ti) / float64(thetaCount-1)
		for pi := 0; pi < phiCount; pi++ {
			phi := 2 * math.Pi * float64(pi) / float64(phiCount)
			angles = append(angles, Angle{ThetaRad: theta, PhiRad: phi})
		}
	}
	return angles
}

// TotalPower integrates P_scat over the full sphere via the trapezoidal
// solid-angle weighting sinθ·Δθ·Δφ, the S3 testable property's "pattern
// integrated over 4π" check.
func TotalPower(results []Spherical, wavenumber float64, thetaCount, phiCount int) float64 {
	patterns := make([]float64, len(results))
	for i, r := range results {
		patterns[i] = ScatteredPattern(r, wavenumber)
	}
	dTheta := math.Pi / float64(thetaCount-1)
	dPhi := 2 * math.Pi / float64(phiCount)
	total := 0.0
	for ti := 0; ti < thetaCount; ti++ {
		theta := math.Pi * float64(ti) / float64(thetaCount-1)
		rowStart := ti * phiCount
		rowSum := floats.Sum(patterns[rowStart : rowStart+phiCount])
		total += rowSum * math.Sin(theta) * dTheta * dPhi
	}
	return total
}
