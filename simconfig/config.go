// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simconfig implements the YAML runtime configuration of spec.md
// §6: spatial step, source frequency and incidence angle, the feature
// switches, PML thickness, and the geometry/dispersive-region data
// material init and the Time Driver consume. Build-time options (GRID_*,
// PARALLEL_BUFFER_DIMENSION_*, ONE_TIME_STEP/TWO_TIME_STEPS,
// COMPLEX_FIELD_VALUES) are Go type parameters and package choices, not
// config fields, per SPEC_FULL.md's "enumerated option set, not
// preprocessor forks" redesign note.
package simconfig

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"

	"github.com/xj361685640/fdtd3d/coord"
	"github.com/xj361685640/fdtd3d/material"
	"github.com/xj361685640/fdtd3d/ntff"
	"github.com/xj361685640/fdtd3d/physics"
	"github.com/xj361685640/fdtd3d/yee"
)

// Config is the root runtime input, the gofem inp.Data idiom applied to
// spec.md §6's runtime contract.
type Config struct {
	Problem     ProblemConfig     `yaml:"problem"`
	Parallel    ParallelConfig    `yaml:"parallel"`
	Source      SourceConfig      `yaml:"source"`
	Switches    SwitchesConfig    `yaml:"switches"`
	PML         PMLConfig         `yaml:"pml"`
	TFSF        TFSFConfig        `yaml:"tfsf"`
	NTFF        NTFFConfig        `yaml:"ntff"`
	Dielectrics []RegionConfig    `yaml:"dielectrics"`
	Dispersive  []DispersiveConfig `yaml:"dispersive"`
	Output      OutputConfig      `yaml:"output"`

	// Derived holds values computed once by PostProcess, per spec.md
	// §6's "Derived constants" table.
	Derived DerivedConfig `yaml:"-"`
}

// ProblemConfig is the grid/time extent spec.md §6 calls the Time
// Driver's runtime inputs.
type ProblemConfig struct {
	SizeX, SizeY, SizeZ int     `yaml:"size"`
	GridStep            float64 `yaml:"grid_step"`
	NumSteps            int     `yaml:"num_steps"`
}

// ParallelConfig names the Cartesian rank topology (the
// PARALLEL_BUFFER_DIMENSION_* choice of spec.md §6, as runtime data
// rather than a compiled-in option).
type ParallelConfig struct {
	DimsX, DimsY, DimsZ int `yaml:"dims"`
}

// SourceConfig describes the excitation: frequency f and, for a hard
// point source, its lattice position.
type SourceConfig struct {
	FrequencyHz float64 `yaml:"frequency_hz"`
	CenterX     int     `yaml:"center_x"`
	CenterY     int     `yaml:"center_y"`
	CenterZ     int     `yaml:"center_z"`
}

// SwitchesConfig is spec.md §6's runtime switch set.
type SwitchesConfig struct {
	UsePML              bool `yaml:"use_pml"`
	UseTFSF             bool `yaml:"use_tfsf"`
	UseMetamaterials    bool `yaml:"use_metamaterials"`
	UseNTFF             bool `yaml:"use_ntff"`
	CalculateAmplitude  bool `yaml:"calculate_amplitude"`
	DumpRes             bool `yaml:"dump_res"`
	HardSource          bool `yaml:"hard_source"`
}

// PMLConfig configures the convolutional-PML boundary of spec.md §4.4.
type PMLConfig struct {
	Size  int     `yaml:"size"`
	Order int     `yaml:"order"`
	Rerr  float64 `yaml:"rerr"`
	AxesX bool    `yaml:"axes_x"`
	AxesY bool    `yaml:"axes_y"`
	AxesZ bool    `yaml:"axes_z"`
}

// TFSFConfig configures the Huygens plane-wave injection surface.
type TFSFConfig struct {
	MinX, MinY, MinZ int     `yaml:"min"`
	MaxX, MaxY, MaxZ int     `yaml:"max"`
	ThetaRad         float64 `yaml:"theta_rad"`
	PhiRad           float64 `yaml:"phi_rad"`
}

// NTFFConfig configures the near-to-far-field transform surface and
// angular sweep, spec.md §4.7.
type NTFFConfig struct {
	MinX, MinY, MinZ int `yaml:"min"`
	MaxX, MaxY, MaxZ int `yaml:"max"`
	ThetaCount       int `yaml:"theta_count"`
	PhiCount         int `yaml:"phi_count"`
	EmitEveryStep    int `yaml:"emit_every_step"`
}

// RegionConfig names a scatterer's shape and relative permittivity,
// spec.md §4.4's "shapes are data, not code".
type RegionConfig struct {
	Shape  string  `yaml:"shape"` // "sphere" or "box"
	Eps    float64 `yaml:"eps"`
	CX, CY, CZ float64 `yaml:"center"`
	Radius float64 `yaml:"radius"`
	MinX, MinY, MinZ float64 `yaml:"min"`
	MaxX, MaxY, MaxZ float64 `yaml:"max"`
}

// DispersiveConfig names a Drude dispersive region; zero OmegaPE/OmegaPM
// means "derive from the source frequency" via material.PlasmaFrequency.
type DispersiveConfig struct {
	RegionConfig `yaml:",inline"`
	OmegaPE      float64 `yaml:"omega_pe"`
	OmegaPM      float64 `yaml:"omega_pm"`
	GammaE       float64 `yaml:"gamma_e"`
	GammaM       float64 `yaml:"gamma_m"`
}

// OutputConfig configures dump scheduling, spec.md §6's "Dump outputs"
// external collaborator.
type OutputConfig struct {
	DirOut       string `yaml:"dir_out"`
	DumpInterval int    `yaml:"dump_interval"`
}

// DerivedConfig holds spec.md §6's derived constants, computed once by
// PostProcess.
type DerivedConfig struct {
	C       float64
	Courant float64
	Dt      float64
	Lambda  float64
}

// SetDefault sets the gofem inp.Data-style defaults: a 32^3 vacuum
// problem, single rank, 6th-order PML over 10 cells, per spec.md's S1
// scenario shape.
func (c *Config) SetDefault() {
	c.Problem = ProblemConfig{SizeX: 32, SizeY: 32, SizeZ: 32, GridStep: 1e-9, NumSteps: 100}
	c.Parallel = ParallelConfig{DimsX: 1, DimsY: 1, DimsZ: 1}
	c.Switches.UsePML = true
	c.PML = PMLConfig{Size: 10, Order: 6, Rerr: 1e-16, AxesX: true, AxesY: true, AxesZ: true}
	c.NTFF = NTFFConfig{ThetaCount: 19, PhiCount: 181, EmitEveryStep: 1}
	c.Output = OutputConfig{DirOut: "/tmp/fdtd3d", DumpInterval: 0}
}

// PostProcess fills Derived from Problem/Source, the gofem
// inp.Data.PostProcess idiom, and defaults the source position to the
// grid center when unset.
func (c *Config) PostProcess() {
	c.Derived.C = physics.C()
	c.Derived.Courant = physics.CourantNumber
	c.Derived.Dt = physics.TimeStep(c.Problem.GridStep)
	if c.Source.FrequencyHz > 0 {
		c.Derived.Lambda = physics.Wavelength(c.Source.FrequencyHz)
	}
	if c.Source.CenterX == 0 && c.Source.CenterY == 0 && c.Source.CenterZ == 0 {
		c.Source.CenterX = c.Problem.SizeX / 2
		c.Source.CenterY = c.Problem.SizeY / 2
		c.Source.CenterZ = c.Problem.SizeZ / 2
	}
	if c.Output.DirOut == "" {
		c.Output.DirOut = "/tmp/fdtd3d"
	}
}

// Load reads a YAML file into a Config, applying SetDefault before
// unmarshalling and PostProcess after, mirroring how gofem's inp package
// loads a .sim file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("simconfig: cannot read %q: %v", path, err)
	}
	cfg := &Config{}
	cfg.SetDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, chk.Err("simconfig: cannot parse %q: %v", path, err)
	}
	cfg.PostProcess()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProblemSize returns the global grid size as a coord.Int3.
func (c *Config) ProblemSize() coord.Int3 {
	return coord.Int3{I: c.Problem.SizeX, J: c.Problem.SizeY, K: c.Problem.SizeZ}
}

// TopologyDims returns the Cartesian rank layout for partition.NewTopology.
func (c *Config) TopologyDims() [3]int {
	return [3]int{c.Parallel.DimsX, c.Parallel.DimsY, c.Parallel.DimsZ}
}

// PMLAxes returns the per-axis PML enable flags yee/material expect.
func (c *Config) PMLAxes() [3]bool {
	return [3]bool{c.PML.AxesX, c.PML.AxesY, c.PML.AxesZ}
}

// PMLParams builds the material.PMLParams the PML grading uses.
func (c *Config) PMLParams() material.PMLParams {
	return material.PMLParams{Order: c.PML.Order, Size: c.PML.Size, GridStep: c.Problem.GridStep, TargetError: c.PML.Rerr}
}

// SourceCenter returns the hard-source lattice position.
func (c *Config) SourceCenter() coord.Int3 {
	return coord.Int3{I: c.Source.CenterX, J: c.Source.CenterY, K: c.Source.CenterZ}
}

// TFSFBox converts the TFSF corners into a yee.Box.
func (c *Config) TFSFBox() yee.Box {
	return yee.Box{
		Min: coord.Int3{I: c.TFSF.MinX, J: c.TFSF.MinY, K: c.TFSF.MinZ},
		Max: coord.Int3{I: c.TFSF.MaxX, J: c.TFSF.MaxY, K: c.TFSF.MaxZ},
	}
}

// NTFFBox converts the NTFF corners into an ntff.Box.
func (c *Config) NTFFBox() ntff.Box {
	return ntff.Box{
		LeftNTFF:  coord.Int3{I: c.NTFF.MinX, J: c.NTFF.MinY, K: c.NTFF.MinZ},
		RightNTFF: coord.Int3{I: c.NTFF.MaxX, J: c.NTFF.MaxY, K: c.NTFF.MaxZ},
	}
}

// geometryOf converts a RegionConfig into the material.Geometry it
// describes.
func geometryOf(r RegionConfig) (material.Geometry, error) {
	switch r.Shape {
	case "sphere":
		return material.Sphere{Center: coord.Float3{X: r.CX, Y: r.CY, Z: r.CZ}, Radius: r.Radius}, nil
	case "box":
		return material.Box{
			Min: coord.Float3{X: r.MinX, Y: r.MinY, Z: r.MinZ},
			Max: coord.Float3{X: r.MaxX, Y: r.MaxY, Z: r.MaxZ},
		}, nil
	default:
		return nil, chk.Err("simconfig: unknown region shape %q", r.Shape)
	}
}

// DielectricRegions builds the (geometry, eps) pairs material init needs
// from the configured scatterers.
func (c *Config) DielectricRegions() ([]material.Geometry, []float64, error) {
	geoms := make([]material.Geometry, 0, len(c.Dielectrics))
	epses := make([]float64, 0, len(c.Dielectrics))
	for _, r := range c.Dielectrics {
		geom, err := geometryOf(r)
		if err != nil {
			return nil, nil, err
		}
		geoms = append(geoms, geom)
		epses = append(epses, r.Eps)
	}
	return geoms, epses, nil
}

// DrudeRegions builds the material.DrudeRegion list, defaulting
// OmegaPE/OmegaPM from the source frequency when a dispersive entry
// leaves them at zero, per spec.md §4.4's PlasmaFrequency default.
func (c *Config) DrudeRegions() ([]material.DrudeRegion, error) {
	regions := make([]material.DrudeRegion, 0, len(c.Dispersive))
	for _, d := range c.Dispersive {
		geom, err := geometryOf(d.RegionConfig)
		if err != nil {
			return nil, err
		}
		omegaPE, omegaPM := d.OmegaPE, d.OmegaPM
		if omegaPE == 0 && omegaPM == 0 {
			p := material.PlasmaFrequency(c.Source.FrequencyHz)
			omegaPE, omegaPM = p, p
		}
		regions = append(regions, material.DrudeRegion{
			Geometry: geom,
			OmegaPE:  omegaPE,
			OmegaPM:  omegaPM,
			GammaE:   d.GammaE,
			GammaM:   d.GammaM,
		})
	}
	return regions, nil
}
