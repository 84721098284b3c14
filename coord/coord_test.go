// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coord

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestIndexRoundTrip(tst *testing.T) {
	chk.PrintTitle("IndexRoundTrip")
	size := Int3{I: 4, J: 5, K: 6}
	for i := 0; i < size.I; i++ {
		for j := 0; j < size.J; j++ {
			for k := 0; k < size.K; k++ {
				p := Int3{I: i, J: j, K: k}
				idx := p.Index(size)
				q := FromIndex(idx, size)
				if q != p {
					tst.Errorf("round trip failed: %v => %d => %v", p, idx, q)
				}
			}
		}
	}
}

func TestInBounds(tst *testing.T) {
	chk.PrintTitle("InBounds")
	size := Int3{I: 3, J: 3, K: 3}
	if !NewInt3(0, 0, 0).InBounds(size) {
		tst.Errorf("origin should be in bounds")
	}
	if NewInt3(3, 0, 0).InBounds(size) {
		tst.Errorf("(3,0,0) should be out of bounds for size 3")
	}
	if NewInt3(-1, 0, 0).InBounds(size) {
		tst.Errorf("negative component should be out of bounds")
	}
}

func TestSpherical(tst *testing.T) {
	chk.PrintTitle("Spherical")
	r := Spherical(math.Pi/2, 0)
	chk.Scalar(tst, "rx", 1e-15, r.X, 1)
	chk.Scalar(tst, "ry", 1e-15, r.Y, 0)
	chk.Scalar(tst, "rz", 1e-15, r.Z, 0)
	if math.Abs(r.Norm()-1) > 1e-15 {
		tst.Errorf("propagation vector must be unit length, got %v", r.Norm())
	}
}
