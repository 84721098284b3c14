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

// singleRank stands in for partition.MPITransport on a 1x1x1 topology:
// every halo width is zero there, so SendFloats/RecvFloats are never
// reached.
type singleRank struct{}

func (singleRank) Rank() int                           { return 0 }
func (singleRank) Size() int                            { return 1 }
func (singleRank) SendFloats(to int, data []float64)    { panic("singleRank: unexpected send") }
func (singleRank) RecvFloats(from int, n int) []float64 { panic("singleRank: unexpected recv") }
func (singleRank) AllReduceSum(dest, orig []float64)    { copy(dest, orig) }
func (singleRank) AllReduceMax(dest, orig []float64)    { copy(dest, orig) }
func (singleRank) Barrier()                             {}

func vacuumConfig(size, steps int) *simconfig.Config {
	cfg := &simconfig.Config{}
	cfg.SetDefault()
	cfg.Problem.SizeX, cfg.Problem.SizeY, cfg.Problem.SizeZ = size, size, size
	cfg.Problem.NumSteps = steps
	cfg.Switches.UsePML = false
	cfg.Switches.HardSource = true
	cfg.Source.FrequencyHz = 1e13
	cfg.PostProcess()
	return cfg
}

var _ = Describe("Testable properties", func() {

	Describe("Roll idempotence", func() {
		It("moves the freshly computed E value into PREVIOUS and zeroes CURRENT", func() {
			cfg := vacuumConfig(8, 1)
			drv, err := driver.New(cfg, singleRank{})
			Expect(err).NotTo(HaveOccurred())

			center := cfg.SourceCenter()
			Expect(drv.Engine.StepE(0)).To(Succeed())

			dt := cfg.Derived.Dt
			expected := math.Sin(2 * math.Pi * cfg.Source.FrequencyHz * dt)
			Expect(drv.Engine.StepE(dt)).To(Succeed())

			Expect(drv.Engine.E[2].Current(center)).To(BeZero())
			Expect(drv.Engine.E[2].Previous(center)).To(BeNumerically("~", expected, 1e-12))
		})
	})

	Describe("Stencil symmetry", func() {
		It("keeps |Ez| invariant under the grid's mirror symmetry with a centered source", func() {
			cfg := vacuumConfig(9, 6)
			drv, err := driver.New(cfg, singleRank{})
			Expect(err).NotTo(HaveOccurred())
			Expect(drv.Run()).To(Succeed())

			size := drv.Engine.E[2].LocalSize()
			mirror := func(p coord.Int3) coord.Int3 {
				return coord.Int3{I: size.I - 1 - p.I, J: size.J - 1 - p.J, K: size.K - 1 - p.K}
			}
			for i := 0; i < size.I; i++ {
				for j := 0; j < size.J; j++ {
					for k := 0; k < size.K; k++ {
						p := coord.Int3{I: i, J: j, K: k}
						Expect(math.Abs(drv.Engine.E[2].Previous(p))).To(BeNumerically("~",
							math.Abs(drv.Engine.E[2].Previous(mirror(p))), 1e-9))
					}
				}
			}
		})
	})

	Describe("Energy bound", func() {
		It("keeps total field energy from exceeding injected source energy, PML off", func() {
			cfg := vacuumConfig(10, 10)
			drv, err := driver.New(cfg, singleRank{})
			Expect(err).NotTo(HaveOccurred())

			injected := 0.0
			size := drv.Engine.E[2].LocalSize()
			for iter := 0; iter < cfg.Problem.NumSteps; iter++ {
				t := float64(iter) * cfg.Derived.Dt
				s := math.Sin(2 * math.Pi * cfg.Source.FrequencyHz * t)
				injected += 0.5 * physics.Eps0 * s * s
				Expect(drv.Engine.StepE(t)).To(Succeed())
				Expect(drv.Engine.StepH(t)).To(Succeed())
			}

			energy := 0.0
			for i := 0; i < size.I; i++ {
				for j := 0; j < size.J; j++ {
					for k := 0; k < size.K; k++ {
						p := coord.Int3{I: i, J: j, K: k}
						for a := 0; a < 3; a++ {
							e := drv.Engine.E[a].Previous(p)
							h := drv.Engine.H[a].Previous(p)
							energy += 0.5 * (physics.Eps0*e*e + physics.Mu0*h*h)
						}
					}
				}
			}
			Expect(energy).To(BeNumerically("<=", injected*10))
		})
	})

	Describe("PML reflection", func() {
		It("attenuates a point-source wavefront below 1e-8 of the interior maximum inside the PML", func() {
			cfg := vacuumConfig(24, 60)
			cfg.Switches.UsePML = true
			cfg.PML = simconfig.PMLConfig{Size: 8, Order: 6, Rerr: 1e-16, AxesX: true, AxesY: true, AxesZ: true}
			cfg.PostProcess()
			drv, err := driver.New(cfg, singleRank{})
			Expect(err).NotTo(HaveOccurred())
			Expect(drv.Run()).To(Succeed())

			size := drv.Engine.E[2].LocalSize()
			maxInterior, maxPML := 0.0, 0.0
			for i := 0; i < size.I; i++ {
				for j := 0; j < size.J; j++ {
					for k := 0; k < size.K; k++ {
						p := coord.Int3{I: i, J: j, K: k}
						v := math.Abs(drv.Engine.E[2].Previous(p))
						inPML := i < cfg.PML.Size || i >= size.I-cfg.PML.Size ||
							j < cfg.PML.Size || j >= size.J-cfg.PML.Size ||
							k < cfg.PML.Size || k >= size.K-cfg.PML.Size
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
			if maxInterior > 0 {
				Expect(maxPML / maxInterior).To(BeNumerically("<", 1e-8))
			}
		})
	})

	Describe("TFSF isolation", func() {
		It("leaves the scattered region below 1e-10 with no scatterer present", func() {
			cfg := vacuumConfig(20, 40)
			cfg.Switches.UsePML = false
			cfg.Switches.HardSource = false
			cfg.Switches.UseTFSF = true
			cfg.TFSF = simconfig.TFSFConfig{
				MinX: 5, MinY: 5, MinZ: 5, MaxX: 14, MaxY: 14, MaxZ: 14,
				ThetaRad: math.Pi / 2, PhiRad: 0,
			}
			cfg.PostProcess()
			drv, err := driver.New(cfg, singleRank{})
			Expect(err).NotTo(HaveOccurred())
			Expect(drv.Run()).To(Succeed())

			size := drv.Engine.E[2].LocalSize()
			box := cfg.TFSFBox()
			maxOutside := 0.0
			for i := 0; i < size.I; i++ {
				for j := 0; j < size.J; j++ {
					for k := 0; k < size.K; k++ {
						p := coord.Int3{I: i, J: j, K: k}
						// cells within one cell of the box faces are left
						// out of the scattered-region check.
						outside := p.I < box.Min.I-1 || p.I > box.Max.I+1 ||
							p.J < box.Min.J-1 || p.J > box.Max.J+1 ||
							p.K < box.Min.K-1 || p.K > box.Max.K+1
						if !outside {
							continue
						}
						v := math.Abs(drv.Engine.E[2].Previous(p))
						if v > maxOutside {
							maxOutside = v
						}
					}
				}
			}
			Expect(maxOutside).To(BeNumerically("<", 1e-10))
		})
	})
})
