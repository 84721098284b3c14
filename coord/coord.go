// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coord implements integer and floating-point 1D/2D/3D
// coordinates used throughout the Yee lattice: component arithmetic,
// linearization to a flat buffer index, and its inverse.
package coord

import "math"

// Int3 is an integer 3D lattice coordinate (i, j, k).
type Int3 struct {
	I, J, K int
}

// NewInt3 returns a new integer coordinate.
func NewInt3(i, j, k int) Int3 { return Int3{I: i, J: j, K: k} }

// Add returns o+p component-wise.
func (o Int3) Add(p Int3) Int3 { return Int3{o.I + p.I, o.J + p.J, o.K + p.K} }

// Sub returns o-p component-wise.
func (o Int3) Sub(p Int3) Int3 { return Int3{o.I - p.I, o.J - p.J, o.K - p.K} }

// Scale returns o scaled by an integer factor.
func (o Int3) Scale(f int) Int3 { return Int3{o.I * f, o.J * f, o.K * f} }

// InBounds reports whether 0 <= component < size on every axis.
func (o Int3) InBounds(size Int3) bool {
	return o.I >= 0 && o.I < size.I &&
		o.J >= 0 && o.J < size.J &&
		o.K >= 0 && o.K < size.K
}

// Index linearizes o into a flat buffer of the given size, row-major
// with K varying fastest.
func (o Int3) Index(size Int3) int {
	return (o.I*size.J+o.J)*size.K + o.K
}

// FromIndex is the inverse of Index.
func FromIndex(idx int, size Int3) Int3 {
	k := idx % size.K
	idx /= size.K
	j := idx % size.J
	i := idx / size.J
	return Int3{I: i, J: j, K: k}
}

// Float3 is a floating-point 3D coordinate, used for half-cell lattice
// offsets and real-space positions.
type Float3 struct {
	X, Y, Z float64
}

// NewFloat3 returns a new floating-point coordinate.
func NewFloat3(x, y, z float64) Float3 { return Float3{X: x, Y: y, Z: z} }

// FromInt3 converts an integer coordinate to its floating-point sibling.
func FromInt3(p Int3) Float3 { return Float3{X: float64(p.I), Y: float64(p.J), Z: float64(p.K)} }

// Add returns o+p component-wise.
func (o Float3) Add(p Float3) Float3 { return Float3{o.X + p.X, o.Y + p.Y, o.Z + p.Z} }

// Sub returns o-p component-wise.
func (o Float3) Sub(p Float3) Float3 { return Float3{o.X - p.X, o.Y - p.Y, o.Z - p.Z} }

// Scale returns o scaled by a real factor.
func (o Float3) Scale(f float64) Float3 { return Float3{o.X * f, o.Y * f, o.Z * f} }

// Dot returns the scalar (inner) product of o and p.
func (o Float3) Dot(p Float3) float64 { return o.X*p.X + o.Y*p.Y + o.Z*p.Z }

// Norm returns the Euclidean length of o.
func (o Float3) Norm() float64 { return math.Sqrt(o.Dot(o)) }

// Spherical returns the unit propagation vector r̂ = (sinθcosφ, sinθsinφ,
// cosθ) shared by the TFSF incident-wave projection and the NTFF phase
// calculation, so both packages agree on the angle convention.
func Spherical(thetaRad, phiRad float64) Float3 {
	st, ct := math.Sincos(thetaRad)
	sp, cp := math.Sincos(phiRad)
	return Float3{X: st * cp, Y: st * sp, Z: ct}
}

// Axis enumerates the three lattice axes, used to index per-axis
// quantities (halo widths, partition rank counts, PML grading) without
// repeating per-component switch statements.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	NumAxes
)

// Component returns the axis component of an integer coordinate.
func (o Int3) Component(a Axis) int {
	switch a {
	case AxisX:
		return o.I
	case AxisY:
		return o.J
	default:
		return o.K
	}
}

// WithComponent returns a copy of o with axis a set to v.
func (o Int3) WithComponent(a Axis, v int) Int3 {
	switch a {
	case AxisX:
		o.I = v
	case AxisY:
		o.J = v
	default:
		o.K = v
	}
	return o
}

// Component returns the axis component of a floating-point coordinate.
func (o Float3) Component(a Axis) float64 {
	switch a {
	case AxisX:
		return o.X
	case AxisY:
		return o.Y
	default:
		return o.Z
	}
}
