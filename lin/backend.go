// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lin dispatches the assembled operator to sparse linear solver
// backends and benchmarks solve strategies
package lin

import (
	"github.com/cpmech/gosl/chk"
	"github.com/sontanon/Elliptic-Solver/fdm"
)

// PermMode selects how the backend handles its fill-reducing ordering
type PermMode int

const (
	PermNone    PermMode = iota // compute a fresh ordering and discard it
	PermCompute                 // compute a fresh ordering and cache it in the session
	PermReuse                   // reuse the ordering cached by a previous call
)

func (o PermMode) String() string {
	switch o {
	case PermNone:
		return "none"
	case PermCompute:
		return "compute"
	case PermReuse:
		return "reuse"
	}
	return "unknown"
}

// RefineMethod selects the iterative refinement applied after the direct solve
type RefineMethod int

const (
	RefineNone     RefineMethod = iota // direct solution only
	RefineBiCGStab                     // BiCGSTAB preconditioned by the factorization
	RefineCG                           // CG preconditioned by the factorization
)

func (o RefineMethod) String() string {
	switch o {
	case RefineNone:
		return "none"
	case RefineBiCGStab:
		return "bicgstab"
	case RefineCG:
		return "cg"
	}
	return "unknown"
}

// Token is an opaque fingerprint of the nonzero structure for which a backend
// ordering was computed. A token only authorizes reuse against a matrix with
// the identical structure.
type Token struct {
	Nrows int
	Nnz   int
	valid bool
}

// Matches tells whether the token was issued for the structure of A
func (o Token) Matches(A *fdm.CSR) bool {
	return o.valid && o.Nrows == A.Nrows && o.Nnz == A.Nnz
}

// Backend wraps a sparse linear solver. A backend session holds process-wide
// state (factorization, cached ordering) and must be called sequentially;
// Free releases the state and must be called before switching to a
// structurally different matrix.
type Backend interface {
	Init(sizeHint int) error                                                                       // prepares the session for systems of about sizeHint unknowns
	FactorOrReorder(A *fdm.CSR, mode PermMode) (Token, error)                                      // factorizes A, computing or reusing the ordering
	Solve(A *fdm.CSR, tok Token, b []float64, method RefineMethod) ([]float64, float64, error)     // returns solution and final residual norm
	Free()                                                                                         // releases backend resources
}

// allocators holds all available backends
var allocators = make(map[string]func() Backend)

// Register registers a backend allocator
func Register(name string, alloc func() Backend) {
	allocators[name] = alloc
}

// New returns a new backend session
func New(name string) (Backend, error) {
	if alloc, ok := allocators[name]; ok {
		return alloc(), nil
	}
	return nil, chk.Err("cannot find linear solver backend named %q", name)
}
