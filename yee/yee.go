// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yee is the pure-function description of the staggered Yee
// lattice: where each field component sits relative to the grid origin,
// which neighboring component its discrete curl reads, and the TFSF/PML
// region predicates and incident-field projections every other package
// consults rather than re-deriving.
//
// Per SPEC_FULL.md's generalization of spec.md §4.2 (the "preprocessor-
// driven specialization" redesign note), every component is a table
// lookup keyed by Component, not a hand-written function per field name.
package yee

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/xj361685640/fdtd3d/coord"
)

// Component enumerates every named quantity placed on the lattice.
type Component int

const (
	Ex Component = iota
	Ey
	Ez
	Hx
	Hy
	Hz
	Dx
	Dy
	Dz
	Bx
	By
	Bz
	Eps
	Mu
	SigmaX
	SigmaY
	SigmaZ
	OmegaPE
	OmegaPM
	GammaE
	GammaM
	numComponents
)

func (c Component) String() string {
	names := [...]string{"Ex", "Ey", "Ez", "Hx", "Hy", "Hz", "Dx", "Dy", "Dz", "Bx", "By", "Bz",
		"Eps", "Mu", "SigmaX", "SigmaY", "SigmaZ", "OmegaPE", "OmegaPM", "GammaE", "GammaM"}
	if int(c) < 0 || int(c) >= len(names) {
		return "Component(?)"
	}
	return names[c]
}

// minOffset is the half-cell offset table of spec.md §4.2: Ex sits at
// (0.5,0,0), Ey at (0,0.5,0), Ez at (0,0,0.5); Hx at (0,0.5,0.5), Hy at
// (0.5,0,0.5), Hz at (0.5,0.5,0); D shares E's offsets and B shares H's.
// The scalar material components have no entry and get the zero offset.
var minOffset = [numComponents]coord.Float3{
	Ex: {X: 0.5, Y: 0, Z: 0}, Ey: {X: 0, Y: 0.5, Z: 0}, Ez: {X: 0, Y: 0, Z: 0.5},
	Hx: {X: 0, Y: 0.5, Z: 0.5}, Hy: {X: 0.5, Y: 0, Z: 0.5}, Hz: {X: 0.5, Y: 0.5, Z: 0},
	Dx: {X: 0.5, Y: 0, Z: 0}, Dy: {X: 0, Y: 0.5, Z: 0}, Dz: {X: 0, Y: 0, Z: 0.5},
	Bx: {X: 0, Y: 0.5, Z: 0.5}, By: {X: 0.5, Y: 0, Z: 0.5}, Bz: {X: 0.5, Y: 0.5, Z: 0},
}

// MinCoordFP returns the fixed offset of a component's (0,0,0) cell from
// the global origin, spec.md §4.2's min_<F>_coord_fp.
func MinCoordFP(c Component) coord.Float3 { return minOffset[c] }

// AxisOf returns 0/1/2 (x/y/z) for the E, H, D and B vector components; it
// panics for scalar material components, which have no curl axis.
func AxisOf(c Component) coord.Axis {
	return axisOf(c)
}

// axisOf returns 0/1/2 (x/y/z) for the E, H, D and B vector components; it
// panics for scalar material components, which have no curl axis.
func axisOf(c Component) coord.Axis {
	switch c {
	case Ex, Hx, Dx, Bx:
		return coord.AxisX
	case Ey, Hy, Dy, By:
		return coord.AxisY
	case Ez, Hz, Dz, Bz:
		return coord.AxisZ
	default:
		chk.Panic("yee: component %v has no curl axis", c)
		return coord.AxisX
	}
}

func vectorOfAxis(family Component, a coord.Axis) Component {
	switch family {
	case Ex, Ey, Ez:
		return [3]Component{Ex, Ey, Ez}[a]
	case Hx, Hy, Hz:
		return [3]Component{Hx, Hy, Hz}[a]
	case Dx, Dy, Dz:
		return [3]Component{Dx, Dy, Dz}[a]
	default:
		return [3]Component{Bx, By, Bz}[a]
	}
}

func partnerFamily(family Component) Component {
	switch family {
	case Ex, Ey, Ez:
		return Hx
	case Hx, Hy, Hz:
		return Ex
	case Dx, Dy, Dz:
		return Hx
	default:
		return Ex
	}
}

// Direction names one of the six neighbor-lookup directions of spec.md
// §4.2. Down/Up always walk the Y axis, Back/Front the Z axis, Left/Right
// the X axis — the binding is fixed regardless of which field component
// is being updated, exactly as spec.md's example (Ex's DOWN/UP/BACK/FRONT
// neighbors) implies.
type Direction int

const (
	Down Direction = iota
	Up
	Back
	Front
	Left
	Right
)

// Axis returns the lattice axis a Direction walks.
func (d Direction) Axis() coord.Axis {
	switch d {
	case Down, Up:
		return coord.AxisY
	case Back, Front:
		return coord.AxisZ
	default:
		return coord.AxisX
	}
}

// isHighSide reports whether d is the "UP"-like (higher-index) side of
// its axis pair, as opposed to the "DOWN"-like (lower-index) side.
func (d Direction) isHighSide() bool {
	return d == Up || d == Front || d == Right
}

// CurlTerms returns the two curl-partner axes and the vector-family
// components read along them for a component on axis `a`: the discrete
// curl of family `comp`'s axis reads `posFamily` differenced along
// `posAxis` with a positive sign and `negFamily` differenced along
// `negAxis` with a negative sign. This is the general form of spec.md
// §4.2's Ex example (Hz along Y, minus Hy along Z), valid for every
// vector component by cyclic permutation.
func CurlTerms(comp Component) (posAxis coord.Axis, posFamily Component, negAxis coord.Axis, negFamily Component) {
	a := axisOf(comp)
	other := partnerFamily(comp)
	ap1 := coord.Axis((int(a) + 1) % 3)
	ap2 := coord.Axis((int(a) + 2) % 3)
	return ap1, vectorOfAxis(other, ap2), ap2, vectorOfAxis(other, ap1)
}

// GetCircuitElement returns the neighboring cell used in the discrete
// curl along the given direction: for Ex this is Hz at (i,j±½,k) and Hy
// at (i,j,k±½) (spec.md §4.2), generalized to every component via
// CurlTerms. For E/D components, whose H/B neighbors sit half a cell
// above them on the curl axes, the "up"-like sides (UP/FRONT/RIGHT) read
// the same integer index as pos and the "down"-like sides
// (DOWN/BACK/LEFT) read index-1; for H/B components, whose E/D
// neighbors sit half a cell below them, the "up"-like sides read
// index+1 and the "down"-like sides the same index.
func GetCircuitElement(comp Component, pos coord.Int3, dir Direction) (neighborComp Component, neighborPos coord.Int3) {
	posAxis, posFamily, negAxis, negFamily := CurlTerms(comp)
	var family Component
	var axis coord.Axis
	switch dir.Axis() {
	case posAxis:
		family, axis = posFamily, posAxis
	case negAxis:
		family, axis = negFamily, negAxis
	default:
		chk.Panic("yee: direction %v does not participate in %v's curl", dir, comp)
	}
	low := pos.Component(axis) - 1
	if (comp >= Hx && comp <= Hz) || (comp >= Bx && comp <= Bz) {
		low++
	}
	if dir.isHighSide() {
		return family, pos.WithComponent(axis, low+1)
	}
	return family, pos.WithComponent(axis, low)
}

// Box is a rectangular region in integer lattice coordinates, used both
// as the TFSF Huygens surface and the NTFF integration surface.
type Box struct {
	Min, Max coord.Int3 // inclusive bounds
}

// Contains reports whether pos lies within the box (inclusive).
func (b Box) Contains(pos coord.Int3) bool {
	return pos.I >= b.Min.I && pos.I <= b.Max.I &&
		pos.J >= b.Min.J && pos.J <= b.Max.J &&
		pos.K >= b.Min.K && pos.K <= b.Max.K
}

// NeedTFSFUpdateBorder reports whether the 4-point stencil centered at
// posAbs straddles the Huygens surface along the given direction: true
// exactly when one of {posAbs, neighbor} lies inside box and the other
// lies outside, per spec.md §4.5 step 1.
func NeedTFSFUpdateBorder(comp Component, posAbs coord.Int3, dir Direction, box Box) bool {
	_, neighborPos := GetCircuitElement(comp, posAbs, dir)
	return box.Contains(posAbs) != box.Contains(neighborPos)
}

// IsPMLRegion reports whether pos lies within pmlSize cells of any
// boundary face of a grid of the given total size, on the axes where PML
// is enabled (enabledAxes[a] == true).
func IsPMLRegion(pos, totalSize coord.Int3, pmlSize int, enabledAxes [3]bool) bool {
	if enabledAxes[coord.AxisX] && (pos.I < pmlSize || pos.I >= totalSize.I-pmlSize) {
		return true
	}
	if enabledAxes[coord.AxisY] && (pos.J < pmlSize || pos.J >= totalSize.J-pmlSize) {
		return true
	}
	if enabledAxes[coord.AxisZ] && (pos.K < pmlSize || pos.K >= totalSize.K-pmlSize) {
		return true
	}
	return false
}

// scaleReal multiplies a Numeric scalar by a real coefficient, the
// generic-over-real/complex primitive the incident projection needs.
func scaleReal[T interface{ ~float64 | ~complex128 }](v T, f float64) T {
	switch x := any(v).(type) {
	case float64:
		return any(x * f).(T)
	case complex128:
		return any(x * complex(f, 0)).(T)
	default:
		chk.Panic("yee: unsupported scalar type in scaleReal")
		var zero T
		return zero
	}
}

// IncidentProjection implements spec.md §4.2's table projecting a scalar
// incident field onto a vector lattice component given the incidence
// angles (thetaRad elevation, phiRad azimuth). Signs are chosen, per the
// spec, so the resulting incident field is divergence-free and matches
// the TFSF correction signs of spec.md §4.5.
func IncidentProjection[T interface{ ~float64 | ~complex128 }](comp Component, thetaRad, phiRad float64, incident T) T {
	st, ct := math.Sincos(thetaRad)
	sp, cp := math.Sincos(phiRad)
	switch comp {
	case Ex:
		return scaleReal(incident, -sp)
	case Ey:
		return scaleReal(incident, cp)
	case Ez:
		var zero T
		return zero
	case Hx:
		return scaleReal(incident, -ct*cp)
	case Hy:
		return scaleReal(incident, -ct*sp)
	case Hz:
		return scaleReal(incident, st)
	default:
		chk.Panic("yee: IncidentProjection undefined for component %v", comp)
		var zero T
		return zero
	}
}
