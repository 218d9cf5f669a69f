// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/sontanon/Elliptic-Solver/fdm"
)

// Config selects one solve strategy
type Config struct {
	Label  string       // human readable name
	Mode   PermMode     // ordering handling
	Method RefineMethod // iterative refinement
}

// BenchmarkSet returns the standard benchmark configurations, in an order
// that guarantees an ordering is cached before any reuse configuration runs
func BenchmarkSet() []Config {
	return []Config{
		{"direct", PermNone, RefineNone},
		{"direct, computing ordering", PermCompute, RefineNone},
		{"direct, reusing ordering", PermReuse, RefineNone},
		{"bicgstab refinement", PermNone, RefineBiCGStab},
		{"bicgstab, reusing ordering", PermReuse, RefineBiCGStab},
	}
}

// Result records the outcome of one configuration
type Result struct {
	Label   string        // configuration name
	Elapsed time.Duration // wall time of factorization plus solve
	ResNorm float64       // final residual norm ‖A*x - b‖₂
	X       []float64     // solution vector (nil on failure)
	Err     error         // numerical failure, tagged with the configuration
}

// RunAll runs every configuration against the same operator and right-hand
// side, sequentially on a single backend session. A failure in one
// configuration is recorded in its result and does not prevent the others
// from running.
func RunAll(bk Backend, A *fdm.CSR, b []float64, cfgs []Config) (results []Result) {
	A.Check()
	if len(b) != A.Nrows {
		chk.Panic("right-hand side has length %d. must equal the number of rows %d", len(b), A.Nrows)
	}
	defer bk.Free()
	if err := bk.Init(A.Nrows); err != nil {
		for _, cfg := range cfgs {
			results = append(results, Result{Label: cfg.Label, Err: chk.Err("%s: backend initialization failed: %v", cfg.Label, err)})
		}
		return
	}
	for _, cfg := range cfgs {
		sta := time.Now()
		var x []float64
		var resNorm float64
		tok, err := bk.FactorOrReorder(A, cfg.Mode)
		if err == nil {
			x, resNorm, err = bk.Solve(A, tok, b, cfg.Method)
		}
		if err != nil {
			err = chk.Err("%s (mode=%s, method=%s): %v", cfg.Label, cfg.Mode, cfg.Method, err)
			x = nil
		}
		results = append(results, Result{
			Label:   cfg.Label,
			Elapsed: time.Since(sta),
			ResNorm: resNorm,
			X:       x,
			Err:     err,
		})
	}
	return
}

// Report prints one line per result
func Report(results []Result) {
	for _, res := range results {
		if res.Err != nil {
			io.PfRed("%-28s FAILED: %v\n", res.Label, res.Err)
			continue
		}
		io.Pf("%-28s took %12.3E s. residual norm = %9.3E\n", res.Label, res.Elapsed.Seconds(), res.ResNorm)
	}
}
