// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simconfig

import "github.com/cpmech/gosl/chk"

// Validate runs spec.md §7's ConfigurationError checks: conflicting
// switches that the kernel has no defined behavior for. It is called
// from Load and again, defensively, from driver.New before any stepping
// begins (construction-time validation, per SPEC_FULL.md's Time Driver
// section).
func (c *Config) Validate() error {
	if c.Switches.UseMetamaterials && !c.Switches.UsePML {
		return chk.Err("simconfig: ConfigurationError: use_metamaterials requires use_pml")
	}
	if c.Switches.CalculateAmplitude && c.TopologyDims() != [3]int{1, 1, 1} {
		return chk.Err("simconfig: ConfigurationError: calculate_amplitude is not supported with a parallel topology")
	}
	if c.Switches.UseNTFF && !c.Switches.UseTFSF {
		return chk.Err("simconfig: ConfigurationError: use_ntff requires use_tfsf")
	}
	product := c.Parallel.DimsX * c.Parallel.DimsY * c.Parallel.DimsZ
	if product <= 0 {
		return chk.Err("simconfig: ConfigurationError: parallel dims %v must be positive", c.TopologyDims())
	}
	if c.Problem.GridStep <= 0 {
		return chk.Err("simconfig: ConfigurationError: grid_step must be positive, got %v", c.Problem.GridStep)
	}
	if c.Problem.NumSteps <= 0 {
		return chk.Err("simconfig: ConfigurationError: num_steps must be positive, got %v", c.Problem.NumSteps)
	}
	if c.Switches.UsePML && c.PML.Size <= 0 {
		return chk.Err("simconfig: ConfigurationError: use_pml requires a positive pml.size")
	}
	if c.Switches.UseTFSF {
		box := c.TFSFBox()
		if box.Min.I >= box.Max.I || box.Min.J >= box.Max.J || box.Min.K >= box.Max.K {
			return chk.Err("simconfig: ConfigurationError: tfsf box %v..%v is degenerate", box.Min, box.Max)
		}
	}
	if c.Switches.UseNTFF {
		box := c.NTFFBox()
		if box.LeftNTFF.I >= box.RightNTFF.I || box.LeftNTFF.J >= box.RightNTFF.J || box.LeftNTFF.K >= box.RightNTFF.K {
			return chk.Err("simconfig: ConfigurationError: ntff box %v..%v is degenerate", box.LeftNTFF, box.RightNTFF)
		}
	}
	return nil
}
