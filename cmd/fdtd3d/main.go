// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fdtd3d is the thin wiring shim of SPEC_FULL.md's Non-goals
// section: it loads a simconfig.Config, builds a driver.Driver, runs it,
// and prints the NTFF lines the driver emits. It is not where solver
// semantics live.
package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/tebeka/atexit"

	"github.com/xj361685640/fdtd3d/driver"
	"github.com/xj361685640/fdtd3d/partition"
	"github.com/xj361685640/fdtd3d/simconfig"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)
	atexit.Register(func() { mpi.Stop(false) })

	cfgPath, _ := io.ArgToFilename(0, "", ".yaml", true)
	verbose := io.ArgToBool(1, true)

	if mpi.Rank() == 0 && verbose {
		io.PfWhite("\nfdtd3d -- finite-difference time-domain electromagnetic solver\n\n")
		io.Pf("\n%v\n", io.ArgsTable(
			"configuration file", "cfgPath", cfgPath,
			"show messages", "verbose", verbose,
		))
	}

	cfg, err := simconfig.Load(cfgPath)
	if err != nil {
		chk.Panic("failed to load configuration:\n%v", err)
	}

	transport := partition.NewMPITransport()
	drv, err := driver.New(cfg, transport)
	if err != nil {
		chk.Panic("failed to build driver:\n%v", err)
	}

	if err := drv.Run(); err != nil {
		chk.Panic("run failed:\n%v", err)
	}

	if mpi.Rank() == 0 && cfg.Switches.DumpRes {
		if err := dumpFinalState(cfg.Output.DirOut, drv); err != nil {
			chk.Panic("failed to write dump:\n%v", err)
		}
	}

	if mpi.Rank() == 0 && verbose {
		io.Pfgreen("fdtd3d: %d steps completed\n", cfg.Problem.NumSteps)
	}

	atexit.Exit(0)
}
