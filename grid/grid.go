// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the dense N-dimensional field buffer shared by
// every Yee-lattice field: a struct-of-arrays time-layered store with
// linear-index <-> coordinate mapping and a per-cell point-value view.
//
// Per the redesign note in SPEC_FULL.md ("Layered point value as heap
// object with three pointers"), layers are contiguous buffers on the Grid
// itself rather than per-cell heap objects; AdvanceLayers is therefore an
// index rotation, not a per-cell operation.
package grid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"github.com/xj361685640/fdtd3d/coord"
)

// Numeric is the set of scalar kinds a Grid may hold: real fields for
// amplitude-mode runs, complex fields for NTFF-capable runs.
type Numeric interface {
	~float64 | ~complex128
}

// LayerCount selects how many previous time layers a Grid retains,
// mirroring the ONE_TIME_STEP / TWO_TIME_STEPS build options of spec.md §6.
type LayerCount int

const (
	LayerNone LayerCount = iota
	LayerOne
	LayerTwo
)

// Side names one face of a halo exchange along a given axis.
type Side int

const (
	SideLow Side = iota
	SideHigh
)

// PointValue is the per-cell view returned by Grid.Get: up to three
// layers, CURRENT/PREVIOUS/PREVIOUS2, whose retention was fixed when the
// owning Grid was constructed.
type PointValue[T Numeric] struct {
	Current   T
	Previous  T
	Previous2 T
}

// stepPhase tracks whether a Grid is in a state where AdvanceLayers is
// safe to call: it must follow a completed compute pass over CURRENT.
type stepPhase int

const (
	phaseIdle stepPhase = iota
	phaseComputed
)

// Grid is a dense, rank-local field buffer. TotalSize is the full
// (global) problem size; LocalSize is this rank's subgrid including
// halos; Offset is the global coordinate of local index (0,0,0); Halo is
// the halo width per axis (0 on axes this rank does not share a boundary
// with a neighbor, 1 otherwise, per spec.md §4.3).
type Grid[T Numeric] struct {
	totalSize coord.Int3
	localSize coord.Int3
	offset    coord.Int3
	halo      coord.Int3
	layers    LayerCount

	current   []T
	previous  []T
	previous2 []T

	phase stepPhase
}

// New returns a new Grid. localSize must already include the halo width
// on every partitioned axis.
func New[T Numeric](totalSize, localSize, offset, halo coord.Int3, layers LayerCount) *Grid[T] {
	n := localSize.I * localSize.J * localSize.K
	if n <= 0 {
		chk.Panic("grid: local size must be positive, got %v", localSize)
	}
	g := &Grid[T]{
		totalSize: totalSize,
		localSize: localSize,
		offset:    offset,
		halo:      halo,
		layers:    layers,
		current:   newBuffer[T](n),
	}
	if layers >= LayerOne {
		g.previous = newBuffer[T](n)
	}
	if layers >= LayerTwo {
		g.previous2 = newBuffer[T](n)
	}
	return g
}

// newBuffer allocates a zero-filled layer buffer. The float64
// instantiation (every field grid except NTFF's complex phasor grids)
// goes through utl.DblVals, the same allocate-and-fill idiom gofem uses
// for its initial-stress state vectors (fem/inistress.go: `utl.DblVals(nip,
// dat.S0)`); complex128 has no such helper in gosl/utl, so it falls back
// to a plain make.
func newBuffer[T Numeric](n int) []T {
	var zero T
	if _, ok := any(zero).(float64); ok {
		filled := utl.DblVals(n, 0)
		buf := make([]T, n)
		for i, v := range filled {
			buf[i] = any(v).(T)
		}
		return buf
	}
	return make([]T, n)
}

// Size returns the full (global) problem size.
func (g *Grid[T]) Size() coord.Int3 { return g.totalSize }

// LocalSize returns this rank's subgrid size, halo included.
func (g *Grid[T]) LocalSize() coord.Int3 { return g.localSize }

// Offset returns the global coordinate of local index (0,0,0).
func (g *Grid[T]) Offset() coord.Int3 { return g.offset }

// Halo returns the halo width per axis.
func (g *Grid[T]) Halo() coord.Int3 { return g.halo }

// Layers reports how many previous layers this Grid retains.
func (g *Grid[T]) Layers() LayerCount { return g.layers }

func (g *Grid[T]) checkBounds(local coord.Int3) {
	if !local.InBounds(g.localSize) {
		chk.Panic("grid: coordinate %v out of bounds for local size %v", local, g.localSize)
	}
}

// Get returns the point value (all retained layers) at a local coordinate.
func (g *Grid[T]) Get(local coord.Int3) PointValue[T] {
	g.checkBounds(local)
	idx := local.Index(g.localSize)
	pv := PointValue[T]{Current: g.current[idx]}
	if g.layers >= LayerOne {
		pv.Previous = g.previous[idx]
	}
	if g.layers >= LayerTwo {
		pv.Previous2 = g.previous2[idx]
	}
	return pv
}

// Current returns just the CURRENT layer value at a local coordinate.
func (g *Grid[T]) Current(local coord.Int3) T {
	g.checkBounds(local)
	return g.current[local.Index(g.localSize)]
}

// Previous returns the PREVIOUS layer value at a local coordinate.
func (g *Grid[T]) Previous(local coord.Int3) T {
	if g.layers < LayerOne {
		chk.Panic("grid: PREVIOUS layer not retained by this grid")
	}
	g.checkBounds(local)
	return g.previous[local.Index(g.localSize)]
}

// Previous2 returns the PREVIOUS2 layer value at a local coordinate.
func (g *Grid[T]) Previous2(local coord.Int3) T {
	if g.layers < LayerTwo {
		chk.Panic("grid: PREVIOUS2 layer not retained by this grid")
	}
	g.checkBounds(local)
	return g.previous2[local.Index(g.localSize)]
}

// Set writes the CURRENT layer value at a local coordinate.
func (g *Grid[T]) Set(local coord.Int3, v T) {
	g.checkBounds(local)
	g.current[local.Index(g.localSize)] = v
}

// TotalPosition converts a local coordinate to its global counterpart.
func (g *Grid[T]) TotalPosition(local coord.Int3) coord.Int3 { return local.Add(g.offset) }

// RelativePosition converts a global coordinate to its local counterpart.
func (g *Grid[T]) RelativePosition(global coord.Int3) coord.Int3 { return global.Sub(g.offset) }

// ComputationStart returns the inclusive loop-start bound for a stencil
// update, shrinking the local index space by the halo and by diff, a
// component-specific extra margin (e.g. an Ex update that reads i-1 needs
// diff.I=1 so the loop never reads outside the halo).
func (g *Grid[T]) ComputationStart(diff coord.Int3) coord.Int3 {
	return coord.Int3{I: g.halo.I + diff.I, J: g.halo.J + diff.J, K: g.halo.K + diff.K}
}

// ComputationEnd returns the exclusive loop-end bound, symmetric to
// ComputationStart.
func (g *Grid[T]) ComputationEnd(diff coord.Int3) coord.Int3 {
	return coord.Int3{
		I: g.localSize.I - g.halo.I - diff.I,
		J: g.localSize.J - g.halo.J - diff.J,
		K: g.localSize.K - g.halo.K - diff.K,
	}
}

// MarkComputed records that every cell's CURRENT layer holds this step's
// freshly computed value, the precondition AdvanceLayers checks for.
func (g *Grid[T]) MarkComputed() { g.phase = phaseComputed }

// AdvanceLayers rotates time layers on every cell: PREVIOUS2 <- PREVIOUS,
// PREVIOUS <- CURRENT, CURRENT <- 0. It fails if the grid has not been
// marked computed since the last rotation (spec.md §4.1's "post-compute
// state" sanity check, and the ordering guarantee of spec.md §5(iv)).
func (g *Grid[T]) AdvanceLayers() error {
	if g.phase != phaseComputed {
		return chk.Err("grid: AdvanceLayers called before MarkComputed; readers of PREVIOUS may not have finished")
	}
	if g.layers >= LayerTwo {
		g.previous2, g.previous, g.current = g.previous, g.current, g.previous2
	} else if g.layers >= LayerOne {
		g.previous, g.current = g.current, g.previous
	}
	var zero T
	for i := range g.current {
		g.current[i] = zero
	}
	g.phase = phaseIdle
	return nil
}

// BoundarySlice extracts the `width` local-index layers of CURRENT data
// adjacent to the core boundary on the given side of the given axis, in
// row-major (other two axes) order, for sending to a neighbor rank's halo.
func (g *Grid[T]) BoundarySlice(axis coord.Axis, side Side, width int) []T {
	return g.extractPlane(axis, g.boundaryStart(axis, side, width), width)
}

// HaloSlice extracts the `width` halo layers on the given side, in the
// same order BoundarySlice uses, for diagnostics/tests.
func (g *Grid[T]) HaloSlice(axis coord.Axis, side Side, width int) []T {
	return g.extractPlane(axis, g.haloStart(axis, side, width), width)
}

// SetHaloSlice writes previously exchanged neighbor data into the halo
// region on the given side of the given axis.
func (g *Grid[T]) SetHaloSlice(axis coord.Axis, side Side, width int, data []T) {
	g.writePlane(axis, g.haloStart(axis, side, width), width, data)
}

func (g *Grid[T]) boundaryStart(axis coord.Axis, side Side, width int) int {
	if side == SideLow {
		return g.halo.Component(axis)
	}
	return g.localSize.Component(axis) - g.halo.Component(axis) - width
}

func (g *Grid[T]) haloStart(axis coord.Axis, side Side, width int) int {
	if side == SideLow {
		return g.halo.Component(axis) - width
	}
	return g.localSize.Component(axis) - g.halo.Component(axis)
}

// extractPlane copies a `width`-thick slab starting at `start` along axis
// into a freshly allocated slice.
func (g *Grid[T]) extractPlane(axis coord.Axis, start, width int) []T {
	size := g.localSize
	out := make([]T, 0, width*planeArea(size, axis))
	forPlane(size, axis, start, width, func(p coord.Int3) {
		out = append(out, g.current[p.Index(size)])
	})
	return out
}

func (g *Grid[T]) writePlane(axis coord.Axis, start, width int, data []T) {
	size := g.localSize
	i := 0
	forPlane(size, axis, start, width, func(p coord.Int3) {
		g.current[p.Index(size)] = data[i]
		i++
	})
}

func planeArea(size coord.Int3, axis coord.Axis) int {
	switch axis {
	case coord.AxisX:
		return size.J * size.K
	case coord.AxisY:
		return size.I * size.K
	default:
		return size.I * size.J
	}
}

// forPlane visits every cell whose axis-component lies in
// [start, start+width), in row-major order of the other two axes then
// the axis itself.
func forPlane(size coord.Int3, axis coord.Axis, start, width int, visit func(coord.Int3)) {
	for a := start; a < start+width; a++ {
		switch axis {
		case coord.AxisX:
			for j := 0; j < size.J; j++ {
				for k := 0; k < size.K; k++ {
					visit(coord.Int3{I: a, J: j, K: k})
				}
			}
		case coord.AxisY:
			for i := 0; i < size.I; i++ {
				for k := 0; k < size.K; k++ {
					visit(coord.Int3{I: i, J: a, K: k})
				}
			}
		default:
			for i := 0; i < size.I; i++ {
				for j := 0; j < size.J; j++ {
					visit(coord.Int3{I: i, J: j, K: a})
				}
			}
		}
	}
}

// Flatten reinterprets a scalar slice as a []float64, real values passed
// through and complex values expanded into interleaved (re, im) pairs, so
// a Grid's boundary data can cross a byte/float-oriented MPI transport
// regardless of its Numeric instantiation.
func Flatten[T Numeric](s []T) []float64 {
	switch vs := any(s).(type) {
	case []float64:
		return vs
	case []complex128:
		out := make([]float64, 2*len(vs))
		for i, c := range vs {
			out[2*i] = real(c)
			out[2*i+1] = imag(c)
		}
		return out
	default:
		chk.Panic("grid: unsupported Numeric instantiation for Flatten")
		return nil
	}
}

// Unflatten is the inverse of Flatten: it reconstructs n scalars of type T
// from a float64 buffer (twice as long as n for complex128).
func Unflatten[T Numeric](data []float64, n int) []T {
	var zero T
	switch any(zero).(type) {
	case float64:
		out := make([]T, n)
		for i := range out {
			out[i] = any(data[i]).(T)
		}
		return out
	case complex128:
		out := make([]T, n)
		for i := range out {
			c := complex(data[2*i], data[2*i+1])
			out[i] = any(c).(T)
		}
		return out
	default:
		chk.Panic("grid: unsupported Numeric instantiation for Unflatten")
		return nil
	}
}

// Gatherer is the minimal collective capability a full-grid gather needs:
// enough to ship every rank's core region to rank 0.
// partition.MPITransport and partition.MockTransport both satisfy it
// structurally. Orchestration (who owns which global block) lives in
// partition.GatherFull, which knows the Cartesian topology; Grid only
// provides the core-region extraction/assembly primitives below.
type Gatherer interface {
	Rank() int
	Size() int
	SendFloats(to int, data []float64)
	RecvFloats(from int, n int) []float64
}

// NewFull allocates a zero-halo, single-rank Grid of the full global
// size, the shape partition.GatherFull assembles into on rank 0.
func (g *Grid[T]) NewFull() *Grid[T] {
	return New[T](g.totalSize, g.totalSize, coord.Int3{}, coord.Int3{}, g.layers)
}

// ExtractCore copies this rank's owned (halo-excluded) region, given its
// size and the local-index offset of its first owned cell (normally equal
// to the halo width on each partitioned axis).
func (g *Grid[T]) ExtractCore(coreSize, coreLocalOffset coord.Int3) []T {
	out := make([]T, 0, coreSize.I*coreSize.J*coreSize.K)
	for i := 0; i < coreSize.I; i++ {
		for j := 0; j < coreSize.J; j++ {
			for k := 0; k < coreSize.K; k++ {
				local := coord.Int3{I: coreLocalOffset.I + i, J: coreLocalOffset.J + j, K: coreLocalOffset.K + k}
				out = append(out, g.Current(local))
			}
		}
	}
	return out
}

// WriteCoreBlock writes a flat core block (as produced by ExtractCore on
// some rank) into this (presumably full, zero-halo) grid at the given
// global offset.
func (g *Grid[T]) WriteCoreBlock(coreSize, globalOffset coord.Int3, data []T) {
	idx := 0
	for i := 0; i < coreSize.I; i++ {
		for j := 0; j < coreSize.J; j++ {
			for k := 0; k < coreSize.K; k++ {
				global := coord.Int3{I: globalOffset.I + i, J: globalOffset.J + j, K: globalOffset.K + k}
				g.Set(global, data[idx])
				idx++
			}
		}
	}
}
