// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import "github.com/cpmech/gosl/mpi"

// Transport is the point-to-point and collective capability halo
// exchange and full-grid gather need. It is kept behind an interface —
// the way gofem keeps its linear solver behind la.LinSol — so the
// Cartesian decomposition logic can be unit tested without a running MPI
// job, over the channel-backed loopbackTransport of halo_test.go.
type Transport interface {
	Rank() int
	Size() int
	SendFloats(to int, data []float64)
	RecvFloats(from int, n int) []float64
	AllReduceSum(dest, orig []float64)
	AllReduceMax(dest, orig []float64)
	Barrier()
}

// MPITransport implements Transport over github.com/cpmech/gosl/mpi,
// exactly the calls gofem's fem package makes (mpi.Rank, mpi.Size,
// mpi.AllReduceSum) plus the point-to-point Send/Recv gofem's own
// packages do not need but the FDTD halo exchange does.
type MPITransport struct{}

// NewMPITransport returns a Transport backed by the process's MPI
// runtime. Callers must have already called mpi.Start.
func NewMPITransport() *MPITransport { return &MPITransport{} }

func (t *MPITransport) Rank() int { return mpi.Rank() }
func (t *MPITransport) Size() int { return mpi.Size() }

func (t *MPITransport) SendFloats(to int, data []float64) {
	mpi.Send(data, to)
}

func (t *MPITransport) RecvFloats(from int, n int) []float64 {
	buf := make([]float64, n)
	mpi.Recv(buf, from)
	return buf
}

func (t *MPITransport) AllReduceSum(dest, orig []float64) { mpi.AllReduceSum(dest, orig) }
func (t *MPITransport) AllReduceMax(dest, orig []float64) { mpi.AllReduceMax(dest, orig) }
func (t *MPITransport) Barrier()                          { mpi.Barrier() }
