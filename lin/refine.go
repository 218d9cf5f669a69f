// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"github.com/cpmech/gosl/chk"
	"github.com/gonum/floats"
	"github.com/sontanon/Elliptic-Solver/fdm"
	"github.com/vladimir-ch/iterative"
)

// refinement settings; the Krylov iteration is preconditioned by the direct
// factorization, so a handful of iterations is enough
var (
	refineTolerance = 1e-12
	refineMaxIt     = 50
)

// SetRefineParams changes the tolerance and the max number of iterations of
// the Krylov refinement. Zero values keep the current settings
func SetRefineParams(tolerance float64, maxit int) {
	if tolerance > 0 {
		refineTolerance = tolerance
	}
	if maxit > 0 {
		refineMaxIt = maxit
	}
}

// refine polishes the direct solution x0 with a Krylov method preconditioned
// by the backend factorization (psolve). The returned residual norm is the
// true norm ‖A*x - b‖₂, not the method's internal estimate.
func refine(A *fdm.CSR, b, x0 []float64, method RefineMethod, psolve func(dst, rhs []float64) error) (x []float64, resNorm float64, err error) {
	var krylov iterative.Method
	switch method {
	case RefineBiCGStab:
		krylov = &iterative.BiCGSTAB{}
	case RefineCG:
		krylov = &iterative.CG{}
	default:
		return nil, 0, chk.Err("unknown refinement method %q", method)
	}
	ops := iterative.MatrixOps{MatVec: A.MatVec}
	settings := iterative.Settings{
		X0:            x0,
		Tolerance:     refineTolerance,
		MaxIterations: refineMaxIt,
		PSolve:        psolve,
	}
	result, err := iterative.LinearSolve(ops, b, krylov, settings)
	if err != nil {
		return nil, 0, chk.Err("%s refinement failed after %d iterations: %v", method, result.Stats.Iterations, err)
	}
	x = result.X
	resNorm = residualNorm(A, x, b)
	return
}

// residualNorm returns ‖A*x - b‖₂
func residualNorm(A *fdm.CSR, x, b []float64) float64 {
	return floats.Norm(A.Residual(x, b), 2)
}
