// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"github.com/cpmech/gosl/chk"
	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/grid"
)

// ExchangeHalo implements spec.md §4.3's halo exchange: for every
// partitioned axis, in order X, Y, Z, each rank ships the boundary slab
// it owns to the corresponding neighbor and receives that neighbor's
// boundary slab into its own halo. A diagonal (corner) exchange is
// produced, as the spec requires, by composing the sequential per-axis
// exchanges: once X has been exchanged, the Y exchange already carries
// X's contribution into the corner cells.
//
// DESIGN.md documents why this uses a parity-ordered pair of blocking
// Send/Recv calls rather than non-blocking primitives: gosl/mpi, as used
// throughout the teacher codebase, exposes blocking point-to-point calls.
// Even-coordinate ranks along an axis send before they receive; odd
// ranks receive before they send; this is deadlock-free for any chain
// length and preserves the ordering guarantee of spec.md §5(iii).
func ExchangeHalo[T grid.Numeric](g *grid.Grid[T], topo *Topology, transport Transport) error {
	floatsPerElem := elemWidth[T]()
	for axis := coord.Axis(0); axis < coord.NumAxes; axis++ {
		width := g.Halo().Component(axis)
		if width == 0 {
			continue
		}
		even := topo.Coord[axis]%2 == 0
		if even {
			if err := sendSide(g, topo, transport, axis, grid.SideHigh, width, floatsPerElem); err != nil {
				return err
			}
			if err := recvSide(g, topo, transport, axis, grid.SideHigh, width, floatsPerElem); err != nil {
				return err
			}
			if err := recvSide(g, topo, transport, axis, grid.SideLow, width, floatsPerElem); err != nil {
				return err
			}
			if err := sendSide(g, topo, transport, axis, grid.SideLow, width, floatsPerElem); err != nil {
				return err
			}
		} else {
			if err := recvSide(g, topo, transport, axis, grid.SideLow, width, floatsPerElem); err != nil {
				return err
			}
			if err := sendSide(g, topo, transport, axis, grid.SideLow, width, floatsPerElem); err != nil {
				return err
			}
			if err := sendSide(g, topo, transport, axis, grid.SideHigh, width, floatsPerElem); err != nil {
				return err
			}
			if err := recvSide(g, topo, transport, axis, grid.SideHigh, width, floatsPerElem); err != nil {
				return err
			}
		}
	}
	return nil
}

func sendSide[T grid.Numeric](g *grid.Grid[T], topo *Topology, transport Transport, axis coord.Axis, side grid.Side, width, floatsPerElem int) error {
	if !topo.HasNeighbor(axis, side) {
		return nil
	}
	data := g.BoundarySlice(axis, side, width)
	transport.SendFloats(topo.NeighborRank(axis, side), grid.Flatten(data))
	return nil
}

func recvSide[T grid.Numeric](g *grid.Grid[T], topo *Topology, transport Transport, axis coord.Axis, side grid.Side, width, floatsPerElem int) error {
	if !topo.HasNeighbor(axis, side) {
		return nil
	}
	n := width * planeElemCount(g.LocalSize(), axis)
	raw := transport.RecvFloats(topo.NeighborRank(axis, side), n*floatsPerElem)
	if len(raw) != n*floatsPerElem {
		return chk.Err("partition: halo exchange received %d floats, expected %d", len(raw), n*floatsPerElem)
	}
	typed := grid.Unflatten[T](raw, n)
	// side names the neighbor direction this call concerns; the data
	// that neighbor owns adjacent to our shared face fills our halo on
	// that same side.
	g.SetHaloSlice(axis, side, width, typed)
	return nil
}

func planeElemCount(size coord.Int3, axis coord.Axis) int {
	switch axis {
	case coord.AxisX:
		return size.J * size.K
	case coord.AxisY:
		return size.I * size.K
	default:
		return size.I * size.J
	}
}

// elemWidth returns how many float64s one T scalar occupies on the wire:
// 1 for real fields, 2 for complex fields (spec.md's dual-mode
// real/complex arithmetic, §9).
func elemWidth[T grid.Numeric]() int {
	var zero T
	switch any(zero).(type) {
	case complex128:
		return 2
	default:
		return 1
	}
}
