// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"github.com/xj361685640/fdtd3d/grid"
)

// GatherFull implements spec.md §4.1's gather_full collective: every
// non-root rank ships its owned core region to rank 0, which assembles
// them into a single non-partitioned Grid of the full problem size. Non-
// root callers get nil. The NTFF transform requires exactly this shape
// of input (spec.md §4.7).
func GatherFull[T grid.Numeric](g *grid.Grid[T], topo *Topology, transport Transport) *grid.Grid[T] {
	floatsPerElem := elemWidth[T]()
	coreSize, coreOffset := topo.CoreSize(g.Size())
	coreLocalOffset := g.Halo()
	own := g.ExtractCore(coreSize, coreLocalOffset)

	if topo.Rank != 0 {
		transport.SendFloats(0, grid.Flatten(own))
		return nil
	}

	full := g.NewFull()
	full.WriteCoreBlock(coreSize, coreOffset, own)
	for src := 1; src < topo.World; src++ {
		srcCoord := topo.CoordOfRank(src)
		srcCoreSize, srcCoreOffset := topo.CoreSizeForCoord(srcCoord, g.Size())
		n := srcCoreSize.I * srcCoreSize.J * srcCoreSize.K
		raw := transport.RecvFloats(src, n*floatsPerElem)
		typed := grid.Unflatten[T](raw, n)
		full.WriteCoreBlock(srcCoreSize, srcCoreOffset, typed)
	}
	full.MarkComputed()
	return full
}
