// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver sequences the ten-step FDTD state machine of spec.md
// §4.5, wiring simconfig.Config, material.Grids, fdtd.Engine,
// partition.Topology and the Amplitude/NTFF post-processors into the one
// object a caller needs: construct a Driver, call Run.
package driver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/xj361685640/fdtd3d/amplitude"
	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/fdtd"
	"github.com/xj361685640/fdtd3d/grid"
	"github.com/xj361685640/fdtd3d/material"
	"github.com/xj361685640/fdtd3d/partition"
	"github.com/xj361685640/fdtd3d/physics"
	"github.com/xj361685640/fdtd3d/simconfig"
	"github.com/xj361685640/fdtd3d/tfsf"
)

// Driver owns every long-lived object a run needs and sequences the
// state machine of spec.md §4.5 step by step.
type Driver struct {
	Config    *simconfig.Config
	Topology  *partition.Topology
	Transport partition.Transport
	Material  *material.Grids
	Engine    *fdtd.Engine
	Amplitude *amplitude.Tracker

	ntffState *ntffAccumulator
}

// New validates cfg, builds the Cartesian topology, material grids, and
// FDTD engine, and precomputes everything construction-time checks of
// spec.md §7's ConfigurationError cover, before any timestep runs.
func New(cfg *simconfig.Config, transport partition.Transport) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	topo, err := partition.NewTopology(transport.Size(), transport.Rank(), cfg.TopologyDims())
	if err != nil {
		return nil, err
	}
	localSize, offset, halo := topo.LocalLayout(cfg.ProblemSize())
	dx := cfg.Problem.GridStep
	dt := cfg.Derived.Dt

	mat := material.NewGrids(localSize, offset, halo)
	if cfg.Switches.UsePML {
		mat.FillSigma(cfg.PMLParams(), cfg.PMLAxes())
	}
	geoms, epses, err := cfg.DielectricRegions()
	if err != nil {
		return nil, err
	}
	for i, geom := range geoms {
		mat.StampEps(geom, epses[i], dx)
	}
	if cfg.Switches.UseMetamaterials {
		regions, err := cfg.DrudeRegions()
		if err != nil {
			return nil, err
		}
		mat.FillDrude(regions, dx, cfg.PML.Size, cfg.PMLAxes())
	}
	if err := exchangeMaterialHalos(mat, topo, transport); err != nil {
		return nil, err
	}
	mat.LogSummary(dx)

	opts := fdtd.Options{
		UsePML:           cfg.Switches.UsePML,
		PMLSize:          cfg.PML.Size,
		PMLAxes:          cfg.PMLAxes(),
		UseMetamaterials: cfg.Switches.UseMetamaterials,
		UseTFSF:          cfg.Switches.UseTFSF,
		TFSFBox:          cfg.TFSFBox(),
		ThetaRad:         cfg.TFSF.ThetaRad,
		PhiRad:           cfg.TFSF.PhiRad,
		HardSource:       cfg.Switches.HardSource,
		SourceCenter:     cfg.SourceCenter(),
		SourceFunc:       tfsf.SinusoidalSource{Freq: cfg.Source.FrequencyHz},
	}
	eng := fdtd.NewEngine(mat, dt, dx, localSize, offset, halo, opts)

	drv := &Driver{Config: cfg, Topology: topo, Transport: transport, Material: mat, Engine: eng}

	if cfg.Switches.CalculateAmplitude {
		drv.Amplitude = amplitude.NewTracker(localSize, offset, halo, func(global coord.Int3) bool {
			return material.IsPML(global, mat.Eps.Size(), cfg.PML.Size, cfg.PMLAxes())
		})
	}
	if cfg.Switches.UseNTFF {
		drv.ntffState = newNTFFAccumulator(mat, localSize, offset, halo, cfg.Source.FrequencyHz)
	}

	return drv, nil
}

func exchangeMaterialHalos(mat *material.Grids, topo *partition.Topology, transport partition.Transport) error {
	grids := []*grid.Grid[float64]{mat.Eps, mat.Mu, mat.SigmaX, mat.SigmaY, mat.SigmaZ, mat.OmegaPE, mat.OmegaPM, mat.GammaE, mat.GammaM}
	for _, g := range grids {
		if err := partition.ExchangeHalo(g, topo, transport); err != nil {
			return chk.Err("driver: material halo exchange failed: %v", err)
		}
	}
	return nil
}

// Run executes the configured number of timesteps, or until amplitude
// mode converges, per spec.md §7's Convergence error when it doesn't.
func (d *Driver) Run() error {
	if d.Config.Switches.CalculateAmplitude {
		return d.runAmplitude()
	}
	return d.runFixedSteps()
}

func (d *Driver) runFixedSteps() error {
	for iter := 0; iter < d.Config.Problem.NumSteps; iter++ {
		if err := d.stepOnce(iter); err != nil {
			return err
		}
		if d.ntffState != nil && d.shouldEmitNTFF(iter) {
			if err := d.emitNTFF(iter); err != nil {
				return err
			}
		}
		if d.shouldEmitDiagnostics(iter) {
			d.logGlobalDiagnostics(iter)
		}
	}
	return nil
}

func (d *Driver) runAmplitude() error {
	maxSteps := d.Config.Problem.NumSteps
	return d.Amplitude.Run(maxSteps, amplitude.Threshold, func(iter int) (*grid.Grid[float64], error) {
		if err := d.stepOnce(iter); err != nil {
			return nil, err
		}
		return d.Engine.E[2], nil
	})
}

func (d *Driver) shouldEmitNTFF(iter int) bool {
	every := d.Config.NTFF.EmitEveryStep
	if every <= 0 {
		every = 1
	}
	last := d.Config.Problem.NumSteps - 1
	return iter == last || iter%every == 0
}

func (d *Driver) shouldEmitDiagnostics(iter int) bool {
	every := d.Config.Output.DumpInterval
	if every <= 0 {
		return false
	}
	last := d.Config.Problem.NumSteps - 1
	return iter == last || iter%every == 0
}

// logGlobalDiagnostics sums this rank's owned-cell field energy and tracks
// its peak |Ez|, then combines those per-rank quantities into global
// totals with Transport.AllReduceSum/AllReduceMax, the same "one collective
// over the boundary-sharing ranks" idiom gofem uses in
// fem/s_implicit.go/s_linimp.go (`mpi.AllReduceSum(d.Fb, d.Wb)`) to
// reconcile per-rank state before proceeding. Owned cells only (via
// ComputationStart/End with a zero margin), so halo cells shared between
// neighbors are not double-counted in the sum.
func (d *Driver) logGlobalDiagnostics(iter int) {
	ez := d.Engine.E[2]
	start := ez.ComputationStart(coord.Int3{})
	end := ez.ComputationEnd(coord.Int3{})

	localEnergy, localMaxEz := 0.0, 0.0
	for i := start.I; i < end.I; i++ {
		for j := start.J; j < end.J; j++ {
			for k := start.K; k < end.K; k++ {
				p := coord.Int3{I: i, J: j, K: k}
				for a := 0; a < 3; a++ {
					e := d.Engine.E[a].Current(p)
					h := d.Engine.H[a].Current(p)
					localEnergy += 0.5 * (physics.Eps0*e*e + physics.Mu0*h*h)
				}
				if v := ez.Current(p); v > localMaxEz {
					localMaxEz = v
				} else if -v > localMaxEz {
					localMaxEz = -v
				}
			}
		}
	}

	globalEnergy, globalMaxEz := make([]float64, 1), make([]float64, 1)
	d.Transport.AllReduceSum(globalEnergy, []float64{localEnergy})
	d.Transport.AllReduceMax(globalMaxEz, []float64{localMaxEz})

	if d.Transport.Rank() == 0 {
		io.Pfcyan("diagnostics: step %d  total field energy %.6e  peak |Ez| %.6e\n", iter, globalEnergy[0], globalMaxEz[0])
	}
}

// stepOnce runs steps 1-9 of spec.md §4.5's state machine for one
// timestep: the engine's StepE/StepH already perform the TFSF plane-wave
// advance, the Yee/PML/Drude update, the hard-source injection, and the
// layer roll internally (see fdtd.Engine.StepE/StepH); stepOnce adds the
// halo exchange the Engine cannot do for itself, and the running NTFF
// phasor accumulation when enabled.
func (d *Driver) stepOnce(iter int) error {
	t := float64(iter) * d.Config.Derived.Dt
	if err := d.Engine.StepE(t); err != nil {
		return err
	}
	if err := d.exchangeFieldHalos(d.Engine.E[:]); err != nil {
		return err
	}
	if err := d.Engine.StepH(t); err != nil {
		return err
	}
	if err := d.exchangeFieldHalos(d.Engine.H[:]); err != nil {
		return err
	}
	if d.ntffState != nil {
		d.ntffState.accumulate(d.Engine, t+d.Config.Derived.Dt)
	}
	return nil
}

func (d *Driver) exchangeFieldHalos(grids []*grid.Grid[float64]) error {
	for _, g := range grids {
		if err := partition.ExchangeHalo(g, d.Topology, d.Transport); err != nil {
			return chk.Err("driver: field halo exchange failed: %v", err)
		}
	}
	return nil
}

// emitNTFF gathers the running phasor accumulation to rank 0, runs the
// NTFF transform, and prints one line per angle, per spec.md §6's "Dump
// outputs" contract.
func (d *Driver) emitNTFF(iter int) error {
	return d.ntffState.emit(d.Topology, d.Transport, d.Config, iter, io.Pfcyan)
}
