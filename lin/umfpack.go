// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/sontanon/Elliptic-Solver/fdm"
)

// Umfpack is an alternative backend wrapping the gosl sparse solvers. The
// operator is exported to triplet format for the solver. UMFPACK does not
// expose its ordering to callers, so the reuse mode only validates the token
// and refactorizes; timings of the reuse configurations are then close to the
// compute ones with this backend. The gosl solver panics on failure, so the
// calls are fenced and surfaced as solve-level errors.
type Umfpack struct {
	sol la.SparseSolver
	tok Token
}

func init() {
	Register("umfpack", func() Backend { return new(Umfpack) })
}

// Init prepares the session
func (o *Umfpack) Init(sizeHint int) error {
	return nil
}

// FactorOrReorder factorizes A
func (o *Umfpack) FactorOrReorder(A *fdm.CSR, mode PermMode) (tok Token, err error) {
	if mode == PermReuse && !o.tok.Matches(A) {
		return tok, chk.Err("cannot reuse ordering: no cached ordering matches matrix structure (nrows=%d, nnz=%d)", A.Nrows, A.Nnz)
	}
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("umfpack factorization failed: %v", r)
		}
	}()
	if o.sol != nil {
		o.sol.Free()
		o.sol = nil
	}
	o.sol = la.NewSparseSolver("umfpack")
	o.sol.Init(A.ToTriplet(), &la.SpArgs{})
	o.sol.Fact()
	o.tok = Token{Nrows: A.Nrows, Nnz: A.Nnz, valid: true}
	return o.tok, nil
}

// Solve solves A*x = b using the current factorization
func (o *Umfpack) Solve(A *fdm.CSR, tok Token, b []float64, method RefineMethod) (x []float64, resNorm float64, err error) {
	if o.sol == nil || !o.tok.Matches(A) || tok != o.tok {
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

// psolve applies the factorization: dst = A⁻¹*rhs
func (o *Umfpack) psolve(dst, rhs []float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("umfpack solve failed: %v", r)
		}
	}()
	o.sol.Solve(la.Vector(dst), la.Vector(rhs), false)
	return
}

// Free releases the solver and invalidates the cached ordering
func (o *Umfpack) Free() {
	if o.sol != nil {
		o.sol.Free()
		o.sol = nil
	}
	o.tok = Token{}
}
