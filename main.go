// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/sontanon/Elliptic-Solver/ana"
	"github.com/sontanon/Elliptic-Solver/fdm"
	"github.com/sontanon/Elliptic-Solver/grd"
	"github.com/sontanon/Elliptic-Solver/inp"
	"github.com/sontanon/Elliptic-Solver/lin"
	"github.com/sontanon/Elliptic-Solver/out"
)

func main() {

	// catch errors
	failed := false
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
			failed = true
		}
		if failed {
			os.Exit(1)
		}
	}()

	// read input parameters. either a single .par file or positional arguments
	dat := new(inp.Data)
	dat.SetDefault()
	parfile := ""
	if len(os.Args) > 1 && strings.HasSuffix(os.Args[1], ".par") {
		parfile = os.Args[1]
		dat = inp.ReadParams(parfile)
	} else {
		dat.NrInt = io.ArgToInt(0, dat.NrInt)
		dat.NzInt = io.ArgToInt(1, dat.NzInt)
		dat.Dr = io.ArgToFloat(2, dat.Dr)
		dat.Dz = io.ArgToFloat(3, dat.Dz)
		dat.Norder = io.ArgToInt(4, dat.Norder)
		dat.DirOut = io.ArgToString(5, dat.DirOut)
		dat.LinSol.Name = io.ArgToString(6, dat.LinSol.Name)
		dat.Nproc = io.ArgToInt(7, dat.Nproc)
		if err := dat.Validate(); err != nil {
			chk.Panic("invalid input parameters:\n%v", err)
		}
	}

	// message
	io.PfWhite("\nEllsolve -- Axisymmetric Elliptic Solver\n")
	io.Pf("Copyright 2018 The Ellsolve Authors. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n")
	io.Pf("\n%v\n", io.ArgsTable("INPUT PARAMETERS",
		"parameters file", "parfile", parfile,
		"interior cells along r", "nrint", dat.NrInt,
		"interior cells along z", "nzint", dat.NzInt,
		"step size along r", "dr", dat.Dr,
		"step size along z", "dz", dat.Dz,
		"finite difference order", "norder", dat.Norder,
		"output directory", "dirout", dat.DirOut,
		"linear solver backend", "linsol", dat.LinSol.Name,
		"number of goroutines", "nproc", dat.Nproc,
	))

	// output directory
	err := os.MkdirAll(dat.DirOut, 0777)
	if err != nil {
		chk.Panic("cannot create directory for output results (%s): %v", dat.DirOut, err)
	}

	// grid and fields
	g, err := grd.New(dat.Norder, dat.NrInt, dat.NzInt, dat.Dr, dat.Dz)
	if err != nil {
		chk.Panic("cannot allocate grid:\n%v", err)
	}
	r, z := g.Coords(dat.Nproc)
	var sol ana.Gaussian
	s := g.NewField()
	f := g.NewField()
	for k := 0; k < g.Dim; k++ {
		s[k] = sol.S(r[k], z[k])
	}

	// discretization. the solution tends to one far from the origin
	A := fdm.Assemble(g, s, 1, dat.Nproc)
	b := fdm.BuildRHS(g, f, func(rr, zz float64) float64 { return 1.0 })
	io.Pf("grid is %d x %d, matrix is %d x %d with %d nonzeros\n\n", g.NrTot, g.NzTot, A.Nrows, A.Ncols, A.Nnz)

	// linear solver backend
	lin.SetRefineParams(dat.LinSol.Tolerance, dat.LinSol.MaxIt)
	bk, err := lin.New(dat.LinSol.Name)
	if err != nil {
		chk.Panic("cannot allocate linear solver backend:\n%v", err)
	}

	// run benchmarks
	results := lin.RunAll(bk, A, b, lin.BenchmarkSet())
	lin.Report(results)

	// keep the solution of the last successful strategy
	var u []float64
	for _, res := range results {
		if res.Err == nil {
			u = res.X
		}
	}
	if u == nil {
		chk.Panic("all solve strategies failed")
	}

	// write output files
	res := A.Residual(u, b)
	err = out.WriteFields(dat.DirOut, g, r, z, map[string][]float64{
		"r.asc":   r,
		"z.asc":   z,
		"s.asc":   s,
		"f.asc":   f,
		"u.asc":   u,
		"res.asc": res,
	})
	if err != nil {
		chk.Panic("cannot write output files:\n%v", err)
	}
	io.Pf("\nresults saved in %s\n", dat.DirOut)
}
