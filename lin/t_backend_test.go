// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/sontanon/Elliptic-Solver/fdm"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// smallCSR returns the 1-based CSR form of
//   | 2 1 0 |
//   | 1 3 1 |
//   | 0 1 4 |
func smallCSR() *fdm.CSR {
	A := &fdm.CSR{
		Am:    []float64{2, 1, 1, 3, 1, 1, 4},
		Ja:    []int{1, 2, 1, 2, 3, 2, 3},
		Ia:    []int{1, 3, 6, 8},
		Nrows: 3,
		Ncols: 3,
		Nnz:   7,
		Base:  1,
	}
	A.Check()
	return A
}

func Test_backend01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("backend01. registry")

	bk, err := New("sparse13")
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	if bk == nil {
		tst.Errorf("nil backend")
		return
	}
	_, err = New("pentadiagonal")
	if err == nil {
		tst.Errorf("unknown backend name must be rejected")
		return
	}
}

func Test_backend02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("backend02. direct solve of a small system")

	A := smallCSR()
	xref := []float64{1, 2, 3}
	b := make([]float64, 3)
	A.MatVec(b, xref) // b = {4, 10, 14}
	chk.Array(tst, "b", 1e-15, b, []float64{4, 10, 14})

	bk, err := New("sparse13")
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	defer bk.Free()
	if err = bk.Init(A.Nrows); err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	tok, err := bk.FactorOrReorder(A, PermNone)
	if err != nil {
		tst.Errorf("FactorOrReorder failed:\n%v", err)
		return
	}
	x, resNorm, err := bk.Solve(A, tok, b, RefineNone)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	io.Pforan("x = %v. resnorm = %v\n", x, resNorm)
	chk.Array(tst, "x", 1e-12, x, xref)
	if resNorm > 1e-11 {
		tst.Errorf("residual norm %g is too large", resNorm)
		return
	}
}

func Test_backend03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("backend03. ordering tokens")

	A := smallCSR()
	b := []float64{4, 10, 14}

	bk, err := New("sparse13")
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	defer bk.Free()
	bk.Init(A.Nrows)

	// reuse before any ordering was computed must fail up front
	if _, err = bk.FactorOrReorder(A, PermReuse); err == nil {
		tst.Errorf("reuse without a cached ordering must fail")
		return
	}

	// compute, then reuse
	tok, err := bk.FactorOrReorder(A, PermCompute)
	if err != nil {
		tst.Errorf("FactorOrReorder failed:\n%v", err)
		return
	}
	x1, _, err := bk.Solve(A, tok, b, RefineNone)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	tok2, err := bk.FactorOrReorder(A, PermReuse)
	if err != nil {
		tst.Errorf("reuse with matching structure failed:\n%v", err)
		return
	}
	x2, _, err := bk.Solve(A, tok2, b, RefineNone)
	if err != nil {
		tst.Errorf("Solve after reuse failed:\n%v", err)
		return
	}
	chk.Array(tst, "x (reused ordering)", 1e-12, x2, x1)

	// a structurally different matrix must be rejected in reuse mode
	B := &fdm.CSR{
		Am:    []float64{2, 1, 3, 1, 4},
		Ja:    []int{1, 1, 2, 2, 3},
		Ia:    []int{1, 2, 4, 6},
		Nrows: 3,
		Ncols: 3,
		Nnz:   5,
		Base:  1,
	}
	B.Check()
	if _, err = bk.FactorOrReorder(B, PermReuse); err == nil {
		tst.Errorf("reuse against a different structure must fail")
		return
	}

	// a stale token must be rejected by Solve
	if _, _, err = bk.Solve(A, Token{}, b, RefineNone); err == nil {
		tst.Errorf("invalid token must be rejected")
		return
	}
}

func Test_backend04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("backend04. krylov refinement on a small system")

	A := smallCSR()
	b := []float64{4, 10, 14}

	bk, err := New("sparse13")
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	defer bk.Free()
	bk.Init(A.Nrows)
	tok, err := bk.FactorOrReorder(A, PermNone)
	if err != nil {
		tst.Errorf("FactorOrReorder failed:\n%v", err)
		return
	}
	x, resNorm, err := bk.Solve(A, tok, b, RefineBiCGStab)
	if err != nil {
		tst.Errorf("refined solve failed:\n%v", err)
		return
	}
	io.Pforan("x = %v. resnorm = %v\n", x, resNorm)
	chk.Array(tst, "x", 1e-10, x, []float64{1, 2, 3})
	if resNorm > 1e-9 {
		tst.Errorf("refined residual norm %g is too large", resNorm)
		return
	}
}
