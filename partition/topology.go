// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package partition implements the Cartesian domain decomposition of
// spec.md §4.3: per-rank subgrid sizing, neighbor identification, halo
// buffer exchange, and full-grid gather, over an MPI transport modeled
// after github.com/cpmech/gosl/mpi the way gofem's fem package wires it.
package partition

import (
	"github.com/cpmech/gosl/chk"
	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/grid"
)

// Topology is a fixed Cartesian rank grid: Dims[a] ranks are laid out
// along axis a (1 if that axis is not partitioned), and Π Dims[a] must
// equal the world size (spec.md §4.3, and the DomainTopology error of
// spec.md §7 when it does not).
type Topology struct {
	Dims  [3]int
	World int
	Rank  int
	Coord [3]int
}

// NewTopology validates dims against the world size and returns the
// Topology for the calling rank. A mismatch is the DomainTopology error
// of spec.md §7: rank count inconsistent with topology.
func NewTopology(world, rank int, dims [3]int) (*Topology, error) {
	product := dims[0] * dims[1] * dims[2]
	if product != world {
		return nil, chk.Err("partition: topology dims %v (product %d) inconsistent with world size %d", dims, product, world)
	}
	if rank < 0 || rank >= world {
		return nil, chk.Err("partition: rank %d out of range for world size %d", rank, world)
	}
	t := &Topology{Dims: dims, World: world, Rank: rank}
	t.Coord = t.CoordOfRank(rank)
	return t, nil
}

// CoordOfRank returns the Cartesian coordinate of an arbitrary rank in
// this topology (row-major, Z fastest), used by rank 0 during gather to
// address every other rank's subgrid without an extra round trip.
func (t *Topology) CoordOfRank(rank int) [3]int {
	z := rank % t.Dims[2]
	rank /= t.Dims[2]
	y := rank % t.Dims[1]
	x := rank / t.Dims[1]
	return [3]int{x, y, z}
}

// RankOfCoord is the inverse of CoordOfRank.
func (t *Topology) RankOfCoord(c [3]int) int {
	return (c[0]*t.Dims[1]+c[1])*t.Dims[2] + c[2]
}

// CoreSizeForCoord returns the core (halo-excluded) size and global
// offset a rank at Cartesian coordinate c owns of a problem of the given
// total size, per spec.md §4.3: core size is floor(Na/Pa) on every axis,
// except the last rank along that axis which also takes the remainder.
func (t *Topology) CoreSizeForCoord(c [3]int, problem coord.Int3) (size, offset coord.Int3) {
	axisSize := func(a int, n int) (s, off int) {
		p := t.Dims[a]
		base := n / p
		off = c[a] * base
		if c[a] == p-1 {
			s = n - (p-1)*base
		} else {
			s = base
		}
		return
	}
	size.I, offset.I = axisSize(0, problem.I)
	size.J, offset.J = axisSize(1, problem.J)
	size.K, offset.K = axisSize(2, problem.K)
	return
}

// CoreSize returns this rank's owned (halo-excluded) size and global
// offset.
func (t *Topology) CoreSize(problem coord.Int3) (size, offset coord.Int3) {
	return t.CoreSizeForCoord(t.Coord, problem)
}

// HaloWidth returns one cell of halo on every axis this topology
// partitions, zero on axes with a single rank (spec.md §4.3: "each rank
// allocates a halo of one cell on every partitioned face").
func (t *Topology) HaloWidth() coord.Int3 {
	w := func(a int) int {
		if t.Dims[a] > 1 {
			return 1
		}
		return 0
	}
	return coord.Int3{I: w(0), J: w(1), K: w(2)}
}

// LocalLayout returns the full local grid size (core plus halo on both
// sides of every partitioned axis) and the global coordinate of local
// index (0,0,0), ready to pass to grid.New.
func (t *Topology) LocalLayout(problem coord.Int3) (localSize, globalOffset, halo coord.Int3) {
	core, coreOffset := t.CoreSize(problem)
	halo = t.HaloWidth()
	localSize = core.Add(halo.Scale(2))
	globalOffset = coreOffset.Sub(halo)
	return
}

// HasNeighbor reports whether this rank has a neighbor on the given side
// of the given axis.
func (t *Topology) HasNeighbor(axis coord.Axis, side grid.Side) bool {
	c := t.Coord[axis]
	if side == grid.SideLow {
		return c > 0
	}
	return c < t.Dims[axis]-1
}

// NeighborRank returns the rank id of the neighbor on the given side of
// the given axis. Callers must check HasNeighbor first.
func (t *Topology) NeighborRank(axis coord.Axis, side grid.Side) int {
	c := t.Coord
	if side == grid.SideLow {
		c[axis]--
	} else {
		c[axis]++
	}
	return t.RankOfCoord(c)
}
