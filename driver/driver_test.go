// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/xj361685640/fdtd3d/simconfig"
)

// singleRankTransport stands in for partition.MPITransport in a
// single-rank (world size 1) test: ExchangeHalo never touches it because
// a 1x1x1 topology carries zero halo width on every axis.
type singleRankTransport struct{}

func (singleRankTransport) Rank() int { return 0 }
func (singleRankTransport) Size() int { return 1 }
func (singleRankTransport) SendFloats(to int, data []float64) {
	panic("singleRankTransport: unexpected SendFloats on a 1x1x1 topology")
}
func (singleRankTransport) RecvFloats(from int, n int) []float64 {
	panic("singleRankTransport: unexpected RecvFloats on a 1x1x1 topology")
}
func (singleRankTransport) AllReduceSum(dest, orig []float64) { copy(dest, orig) }
func (singleRankTransport) AllReduceMax(dest, orig []float64) { copy(dest, orig) }
func (singleRankTransport) Barrier()                          {}

func baseConfig() *simconfig.Config {
	cfg := &simconfig.Config{}
	cfg.SetDefault()
	cfg.Problem.SizeX, cfg.Problem.SizeY, cfg.Problem.SizeZ = 12, 12, 12
	cfg.Problem.NumSteps = 3
	cfg.Switches.UsePML = true
	cfg.PML.Size = 3
	cfg.Switches.HardSource = true
	cfg.Source.FrequencyHz = 1e14
	cfg.PostProcess()
	return cfg
}

func TestNewRejectsInvalidConfiguration(tst *testing.T) {
	chk.PrintTitle("NewRejectsInvalidConfiguration")
	cfg := baseConfig()
	cfg.Switches.UseMetamaterials = true
	cfg.Switches.UsePML = false
	if _, err := New(cfg, singleRankTransport{}); err == nil {
		tst.Errorf("expected a ConfigurationError from New")
	}
}

func TestRunFixedStepsCompletesWithoutError(tst *testing.T) {
	chk.PrintTitle("RunFixedStepsCompletesWithoutError")
	cfg := baseConfig()
	drv, err := New(cfg, singleRankTransport{})
	if err != nil {
		tst.Fatalf("unexpected construction error: %v", err)
	}
	if err := drv.Run(); err != nil {
		tst.Fatalf("unexpected run error: %v", err)
	}
	center := drv.Config.SourceCenter()
	if drv.Engine.E[2].Previous(center) == 0 {
		tst.Errorf("expected a nonzero Ez at the source center after stepping")
	}
}

func TestRunFixedStepsLogsGlobalDiagnosticsEveryDumpInterval(tst *testing.T) {
	chk.PrintTitle("RunFixedStepsLogsGlobalDiagnosticsEveryDumpInterval")
	cfg := baseConfig()
	cfg.Output.DumpInterval = 1
	drv, err := New(cfg, singleRankTransport{})
	if err != nil {
		tst.Fatalf("unexpected construction error: %v", err)
	}
	if !drv.shouldEmitDiagnostics(0) {
		tst.Errorf("expected diagnostics to be due on the first step with DumpInterval=1")
	}
	if err := drv.Run(); err != nil {
		tst.Fatalf("unexpected run error: %v", err)
	}
}

func TestRunAmplitudeModeConvergesOrReportsError(tst *testing.T) {
	chk.PrintTitle("RunAmplitudeModeConvergesOrReportsError")
	cfg := baseConfig()
	cfg.Switches.CalculateAmplitude = true
	cfg.Problem.NumSteps = 5
	drv, err := New(cfg, singleRankTransport{})
	if err != nil {
		tst.Fatalf("unexpected construction error: %v", err)
	}
	err = drv.Run()
	if err == nil {
		return
	}
	if drv.Amplitude == nil {
		tst.Fatalf("amplitude tracker should have been constructed")
	}
}
