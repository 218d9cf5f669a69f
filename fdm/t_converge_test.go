// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdm

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/sontanon/Elliptic-Solver/ana"
	"github.com/sontanon/Elliptic-Solver/grd"
)

// truncationError assembles the operator at the given resolution and applies
// it to the exact manufactured solution; the maximum residual over the
// centered-stencil interior region is the local truncation error. Rows using
// the biased edge template are excluded so the measured rate is the one of
// the centered templates.
func truncationError(tst *testing.T, norder, nint int, extent float64) float64 {
	h := extent / float64(nint)
	g, err := grd.New(norder, nint, nint, h, h)
	if err != nil {
		tst.Fatalf("grid failed:\n%v", err)
	}
	var sol ana.Gaussian
	u, s, f := sol.Fields(g)
	A := Assemble(g, s, 1, 0)
	b := BuildRHS(g, f, sol.U)
	res := A.Residual(u, b)
	emax := 0.0
	for i := g.Ghost; i < g.NrTot-2; i++ {
		for j := g.Ghost; j < g.NzTot-2; j++ {
			if e := math.Abs(res[g.Idx(i, j)]); e > emax {
				emax = e
			}
		}
	}
	return emax
}

func Test_converge01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("converge01. second order truncation rate")

	extent := 4.0
	e1 := truncationError(tst, 2, 16, extent)
	e2 := truncationError(tst, 2, 32, extent)
	e3 := truncationError(tst, 2, 64, extent)
	r12 := math.Log2(e1 / e2)
	r23 := math.Log2(e2 / e3)
	io.Pforan("errors = %v %v %v\n", e1, e2, e3)
	io.Pforan("rates  = %v %v\n", r12, r23)
	if r12 < 1.6 || r23 < 1.7 {
		tst.Errorf("second order rate too low: %g %g", r12, r23)
		return
	}
	if r23 > 2.5 {
		tst.Errorf("second order rate suspiciously high: %g", r23)
		return
	}
}

func Test_converge02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("converge02. fourth order truncation rate")

	extent := 4.0
	e1 := truncationError(tst, 4, 16, extent)
	e2 := truncationError(tst, 4, 32, extent)
	e3 := truncationError(tst, 4, 64, extent)
	r12 := math.Log2(e1 / e2)
	r23 := math.Log2(e2 / e3)
	io.Pforan("errors = %v %v %v\n", e1, e2, e3)
	io.Pforan("rates  = %v %v\n", r12, r23)
	if r12 < 3.3 || r23 < 3.5 {
		tst.Errorf("fourth order rate too low: %g %g", r12, r23)
		return
	}

	// at equal resolution, fourth order must beat second order
	if e2 >= truncationError(tst, 2, 32, extent) {
		tst.Errorf("fourth order truncation is not smaller than second order")
		return
	}
}
