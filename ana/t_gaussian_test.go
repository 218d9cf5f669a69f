// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/sontanon/Elliptic-Solver/grd"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_gaussian01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gaussian01. values and symmetry")

	var sol Gaussian
	chk.Float64(tst, "u(0,0)", 1e-15, sol.U(0, 0), 1.0)
	chk.Float64(tst, "s(0,0)", 1e-15, sol.S(0, 0), 0.5)
	chk.Float64(tst, "Δu(0,0)", 1e-15, sol.Lap(0, 0), -6.0)
	chk.Float64(tst, "f(0,0)", 1e-15, sol.Rhs(0, 0), -5.5)

	// all fields are even across both reflection boundaries
	for _, pt := range [][2]float64{{0.25, 1.0}, {1.5, 0.125}, {0.75, 0.75}} {
		r, z := pt[0], pt[1]
		chk.Float64(tst, "u even in r", 1e-15, sol.U(-r, z), sol.U(r, z))
		chk.Float64(tst, "u even in z", 1e-15, sol.U(r, -z), sol.U(r, z))
		chk.Float64(tst, "s even in r", 1e-15, sol.S(-r, z), sol.S(r, z))
		chk.Float64(tst, "f even in z", 1e-15, sol.Rhs(r, -z), sol.Rhs(r, z))
	}
}

func Test_gaussian02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gaussian02. Laplacian versus central differences")

	// compare the closed-form Laplacian against a fine central-difference
	// approximation at a few off-axis points
	var sol Gaussian
	h := 1e-5
	for _, pt := range [][2]float64{{0.5, 0.5}, {1.25, 0.25}, {0.375, 1.5}} {
		r, z := pt[0], pt[1]
		urr := (sol.U(r+h, z) - 2.0*sol.U(r, z) + sol.U(r-h, z)) / (h * h)
		uzz := (sol.U(r, z+h) - 2.0*sol.U(r, z) + sol.U(r, z-h)) / (h * h)
		ur := (sol.U(r+h, z) - sol.U(r-h, z)) / (2.0 * h)
		num := urr + ur/r + uzz
		chk.Float64(tst, io.Sf("Δu(%g,%g)", r, z), 1e-5, sol.Lap(r, z), num)
	}
}

func Test_gaussian03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gaussian03. fields on grid")

	g, err := grd.New(2, 8, 8, 0.25, 0.25)
	if err != nil {
		tst.Errorf("grid failed:\n%v", err)
		return
	}
	var sol Gaussian
	u, s, f := sol.Fields(g)
	chk.IntAssert(len(u), g.Dim)
	chk.IntAssert(len(s), g.Dim)
	chk.IntAssert(len(f), g.Dim)
	k := g.Idx(g.Ghost, g.Ghost)
	r, z := g.R(g.Ghost), g.Z(g.Ghost)
	chk.Float64(tst, "u first interior", 1e-15, u[k], sol.U(r, z))
	chk.Float64(tst, "f = Δu + s*u", 1e-15, f[k], sol.Lap(r, z)+s[k]*u[k])
}
