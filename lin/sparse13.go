// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"github.com/cpmech/gosl/chk"
	"github.com/edp1096/sparse"
	"github.com/sontanon/Elliptic-Solver/fdm"
)

// pivoting thresholds of the Sparse-1.3 Markowitz ordering
const (
	s13RelThreshold = 1e-3
	s13AbsThreshold = 0.0
)

// Sparse13 is the default backend, wrapping the pure-Go port of the
// Sparse-1.3 direct solver. Its Markowitz ordering is computed by
// OrderAndFactor and kept inside the session matrix, which is what makes the
// reuse mode a plain numerical refactorization.
type Sparse13 struct {
	cfg *sparse.Configuration
	mat *sparse.Matrix
	tok Token
}

func init() {
	Register("sparse13", func() Backend { return new(Sparse13) })
}

// Init prepares the session
func (o *Sparse13) Init(sizeHint int) error {
	// Translate must stay on: after OrderAndFactor the session matrix is
	// reordered internally, and the reuse path refills it through GetElement
	// by external indices
	o.cfg = &sparse.Configuration{
		Real:           true,
		Expandable:     true,
		Translate:      true,
		ModifiedNodal:  false,
		TiesMultiplier: 5,
		PrinterWidth:   140,
	}
	return nil
}

// load rebuilds the session matrix from scratch with the structure and values
// of A. Rows and columns of the backend are 1-based.
func (o *Sparse13) load(A *fdm.CSR) (err error) {
	if o.mat != nil {
		o.mat.Destroy()
		o.mat = nil
	}
	o.mat, err = sparse.Create(int64(A.Nrows), o.cfg)
	if err != nil {
		return
	}
	o.mat.Clear()
	o.fill(A)
	return
}

// fill copies the values of A into the session matrix
func (o *Sparse13) fill(A *fdm.CSR) {
	for i := 0; i < A.Nrows; i++ {
		for p := A.Ia[i] - A.Base; p < A.Ia[i+1]-A.Base; p++ {
			o.mat.GetElement(int64(i+1), int64(A.Ja[p]-A.Base+1)).Real = A.Am[p]
		}
	}
}

// FactorOrReorder factorizes A. PermNone and PermCompute rebuild the matrix
// and run the ordering; PermReuse keeps the cached ordering and only
// refactorizes, after checking the token against the structure of A.
func (o *Sparse13) FactorOrReorder(A *fdm.CSR, mode PermMode) (tok Token, err error) {
	if o.cfg == nil {
		chk.Panic("backend session was not initialized")
	}
	switch mode {
	case PermNone, PermCompute:
		if err = o.load(A); err != nil {
			return
		}
		if err = o.mat.OrderAndFactor(nil, s13RelThreshold, s13AbsThreshold, true); err != nil {
			return
		}
		o.tok = Token{Nrows: A.Nrows, Nnz: A.Nnz, valid: true}
	case PermReuse:
		if o.mat == nil || !o.tok.Matches(A) {
			return tok, chk.Err("cannot reuse ordering: no cached ordering matches matrix structure (nrows=%d, nnz=%d)", A.Nrows, A.Nnz)
		}
		o.mat.Clear()
		o.fill(A)
		if err = o.mat.Factor(); err != nil {
			return
		}
	default:
		chk.Panic("unknown permutation mode %d", mode)
	}
	return o.tok, nil
}

// Solve solves A*x = b using the current factorization
func (o *Sparse13) Solve(A *fdm.CSR, tok Token, b []float64, method RefineMethod) (x []float64, resNorm float64, err error) {
	if o.mat == nil || !o.tok.Matches(A) || tok != o.tok {
		return nil, 0, chk.Err("token does not match the factorized matrix (nrows=%d, nnz=%d)", A.Nrows, A.Nnz)
	}
	x = make([]float64, A.Nrows)
	if err = o.psolve(x, b); err != nil {
		return nil, 0, err
	}
	if method != RefineNone {
		return refine(A, b, x, method, o.psolve)
	}
	resNorm = residualNorm(A, x, b)
	return
}

// psolve applies the factorization: dst = A⁻¹*rhs. The backend works with
// 1-based vectors of length n+1.
func (o *Sparse13) psolve(dst, rhs []float64) error {
	n := len(dst)
	rhs1 := make([]float64, n+1)
	copy(rhs1[1:], rhs)
	sol1, err := o.mat.Solve(rhs1)
	if err != nil {
		return err
	}
	copy(dst, sol1[1:n+1])
	return nil
}

// Free releases the session matrix and invalidates the cached ordering
func (o *Sparse13) Free() {
	if o.mat != nil {
		o.mat.Destroy()
		o.mat = nil
	}
	o.tok = Token{}
}
