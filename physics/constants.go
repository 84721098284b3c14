// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics holds the process-wide immutable physical constants
// every other package needs, kept as plain constants rather than carried
// through call sites, per SPEC_FULL.md's "Global singletons" redesign
// note (spec.md §9).
package physics

import "math"

const (
	// Eps0 is the vacuum permittivity, F/m.
	Eps0 = 8.8541878128e-12
	// Mu0 is the vacuum permeability, H/m.
	Mu0 = 1.25663706212e-6
	// CourantNumber is the fixed Courant number of spec.md §6 (1/2).
	CourantNumber = 0.5
)

// C is the vacuum speed of light, c = 1/sqrt(mu0*eps0).
func C() float64 { return 1 / math.Sqrt(Mu0*Eps0) }

// Eta0 is the vacuum wave impedance, sqrt(mu0/eps0), used by the NTFF
// scattered-Poynting formula of spec.md §4.7.
func Eta0() float64 { return math.Sqrt(Mu0 / Eps0) }

// TimeStep returns Δt = Δx * CourantNumber / c, spec.md §6's derived
// constant.
func TimeStep(dx float64) float64 { return dx * CourantNumber / C() }

// Wavelength returns λ = c/f.
func Wavelength(freq float64) float64 { return C() / freq }

// WaveNumber returns k = 2π/λ.
func WaveNumber(freq float64) float64 { return 2 * math.Pi * freq / C() }
