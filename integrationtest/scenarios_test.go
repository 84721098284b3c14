// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrationtest

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/driver"
	"github.com/xj361685640/fdtd3d/physics"
	"github.com/xj361685640/fdtd3d/simconfig"
)

// These specs follow spec.md §8's concrete scenarios S1, S2 and S5
// verbatim in shape (same switches, same pass/fail threshold); grid size
// and step count are scaled down from S1/S2's 32-50 cell / 100-200 step
// originals to keep the suite's wall-clock cost proportionate, the same
// trade a CI smoke profile of a scenario test makes.

var _ = Describe("S1 - point source inside a PML box", func() {
	It("attenuates the PML region's Ez to below 1e-8 of the interior maximum", func() {
		cfg := &simconfig.Config{}
		cfg.SetDefault()
		cfg.Problem.SizeX, cfg.Problem.SizeY, cfg.Problem.SizeZ = 24, 24, 24
		cfg.Problem.GridStep = 1e-9
		cfg.Problem.NumSteps = 60
		cfg.Source.FrequencyHz = physics.C() / (20 * cfg.Problem.GridStep)
		cfg.Switches.UsePML = true
		cfg.PML = simconfig.PMLConfig{Size: 8, Order: 6, Rerr: 1e-16, AxesX: true, AxesY: true, AxesZ: true}
		cfg.Switches.HardSource = true
		cfg.PostProcess()

		drv, err := driver.New(cfg, singleRank{})
		Expect(err).NotTo(HaveOccurred())
		Expect(drv.Run()).To(Succeed())

		size := drv.Engine.E[2].LocalSize()
		maxInterior, maxPML := 0.0, 0.0
		for i := 0; i < size.I; i++ {
			for j := 0; j < size.J; j++ {
				for k := 0; k < size.K; k++ {
					inPML := i < cfg.PML.Size || i >= size.I-cfg.PML.Size ||
						j < cfg.PML.Size || j >= size.J-cfg.PML.Size ||
						k < cfg.PML.Size || k >= size.K-cfg.PML.Size
					v := math.Abs(drv.Engine.E[2].Previous(coord.Int3{I: i, J: j, K: k}))
					if inPML {
						if v > maxPML {
							maxPML = v
						}
					} else if v > maxInterior {
						maxInterior = v
					}
				}
			}
		}
		Expect(maxInterior).To(BeNumerically(">", 0))
		Expect(maxPML / maxInterior).To(BeNumerically("<", 1e-8))
	})
})

var _ = Describe("S2 - TFSF box with no scatterer", func() {
	It("keeps the scattered-region |Ez| below 1e-10", func() {
		cfg := &simconfig.Config{}
		cfg.SetDefault()
		cfg.Problem.SizeX, cfg.Problem.SizeY, cfg.Problem.SizeZ = 30, 30, 30
		cfg.Problem.NumSteps = 60
		cfg.Source.FrequencyHz = 1e13
		cfg.Switches.UsePML = false
		cfg.Switches.UseTFSF = true
		cfg.TFSF = simconfig.TFSFConfig{
			MinX: 8, MinY: 8, MinZ: 8, MaxX: 21, MaxY: 21, MaxZ: 21,
			ThetaRad: math.Pi / 2, PhiRad: 0,
		}
		cfg.PostProcess()

		drv, err := driver.New(cfg, singleRank{})
		Expect(err).NotTo(HaveOccurred())
		Expect(drv.Run()).To(Succeed())

		size := drv.Engine.E[2].LocalSize()
		box := cfg.TFSFBox()
		maxScattered := 0.0
		for i := 0; i < size.I; i++ {
			for j := 0; j < size.J; j++ {
				for k := 0; k < size.K; k++ {
					p := coord.Int3{I: i, J: j, K: k}
					outside := p.I < box.Min.I-1 || p.I > box.Max.I+1 ||
						p.J < box.Min.J-1 || p.J > box.Max.J+1 ||
						p.K < box.Min.K-1 || p.K > box.Max.K+1
					if !outside {
						continue
					}
					v := math.Abs(drv.Engine.E[2].Previous(p))
					if v > maxScattered {
						maxScattered = v
					}
				}
			}
		}
		Expect(maxScattered).To(BeNumerically("<", 1e-10))
	})
})

var _ = Describe("S5 - amplitude mode with PML and a hard sinusoidal source", func() {
	It("converges to a stable envelope in fewer than 50 source periods", func() {
		cfg := &simconfig.Config{}
		cfg.SetDefault()
		cfg.Problem.SizeX, cfg.Problem.SizeY, cfg.Problem.SizeZ = 20, 20, 20
		cfg.Problem.GridStep = 1e-9
		cfg.Source.FrequencyHz = 5e13
		cfg.Switches.UsePML = true
		cfg.PML = simconfig.PMLConfig{Size: 6, Order: 6, Rerr: 1e-16, AxesX: true, AxesY: true, AxesZ: true}
		cfg.Switches.HardSource = true
		cfg.Switches.CalculateAmplitude = true
		cfg.PostProcess()

		period := 1 / cfg.Source.FrequencyHz
		stepsPerPeriod := int(period/cfg.Derived.Dt) + 1
		cfg.Problem.NumSteps = 50 * stepsPerPeriod

		drv, err := driver.New(cfg, singleRank{})
		Expect(err).NotTo(HaveOccurred())

		// amplitude.Tracker.Run reports "Stable state not reached" when
		// maxSteps is exhausted without settling below Threshold; this
		// configuration settles within the 50-period step budget.
		err = drv.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(drv.Amplitude).NotTo(BeNil())
	})
})
