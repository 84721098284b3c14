// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrationtest

import (
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/driver"
	"github.com/xj361685640/fdtd3d/grid"
	"github.com/xj361685640/fdtd3d/partition"
	"github.com/xj361685640/fdtd3d/simconfig"
)

// S4 of spec.md §8: running the same problem on 1x1x1 and a parallel
// topology must produce the same interior field values. This exercises
// partition.Topology/ExchangeHalo/GatherFull end to end through the
// driver, over a meshTransport standing in for a real MPI job.

func ddConfig(dimsX, dimsY, dimsZ, steps int) *simconfig.Config {
	cfg := &simconfig.Config{}
	cfg.SetDefault()
	cfg.Problem.SizeX, cfg.Problem.SizeY, cfg.Problem.SizeZ = 8, 8, 8
	cfg.Problem.NumSteps = steps
	cfg.Parallel = simconfig.ParallelConfig{DimsX: dimsX, DimsY: dimsY, DimsZ: dimsZ}
	cfg.Switches.UsePML = false
	cfg.Switches.HardSource = true
	cfg.Source.FrequencyHz = 2e13
	cfg.PostProcess()
	return cfg
}

type partitionGridResult struct {
	full *grid.Grid[float64]
	err  error
}

var _ = Describe("S4 - domain-decomposition equivalence", func() {
	It("matches the single-rank Ez field on a 2x2x2 partition", func() {
		single := ddConfig(1, 1, 1, 4)
		singleDrv, err := driver.New(single, singleRank{})
		Expect(err).NotTo(HaveOccurred())
		Expect(singleDrv.Run()).To(Succeed())

		parallel := ddConfig(2, 2, 2, 4)
		transports := newMesh(8)
		gathered := make([]*partitionGridResult, 8)

		var wg sync.WaitGroup
		wg.Add(8)
		for r := 0; r < 8; r++ {
			r := r
			go func() {
				defer wg.Done()
				drv, err := driver.New(parallel, transports[r])
				if err != nil {
					gathered[r] = &partitionGridResult{err: err}
					return
				}
				if err := drv.Run(); err != nil {
					gathered[r] = &partitionGridResult{err: err}
					return
				}
				full := partition.GatherFull(drv.Engine.E[2], drv.Topology, transports[r])
				gathered[r] = &partitionGridResult{full: full}
			}()
		}
		wg.Wait()

		for _, g := range gathered {
			Expect(g.err).NotTo(HaveOccurred())
		}

		full := gathered[0].full
		Expect(full).NotTo(BeNil())

		size := single.ProblemSize()
		for i := 0; i < size.I; i++ {
			for j := 0; j < size.J; j++ {
				for k := 0; k < size.K; k++ {
					p := coord.Int3{I: i, J: j, K: k}
					want := singleDrv.Engine.E[2].Current(p)
					got := full.Current(p)
					Expect(math.Abs(got - want)).To(BeNumerically("<", 1e-9))
				}
			}
		}
	})
})
