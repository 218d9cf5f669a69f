// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdm

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/sontanon/Elliptic-Solver/grd"
)

// Assemble walks all grid points in row-major order and packs the operator
// rows generated by GenRow into a CSR matrix with the given index base.
// Row generation is independent per point: the first pass counts nonzeros per
// row in parallel chunks, the row pointers are accumulated sequentially, and
// the second pass fills each row into its pre-computed range, again in
// parallel. nproc ≤ 0 means all available processors.
func Assemble(g *grd.Grid, s []float64, base, nproc int) (A *CSR) {
	if s != nil && len(s) != g.Dim {
		chk.Panic("linear term field has length %d. must equal the number of grid points %d", len(s), g.Dim)
	}
	st := &Stencil{G: g, S: s}
	ranges := grd.SplitRange(g.Dim, nproc)

	// first pass: per-row nonzero counts
	counts := make([]int, g.Dim)
	var wg sync.WaitGroup
	for _, rng := range ranges {
		wg.Add(1)
		go func(klo, khi int) {
			defer wg.Done()
			var row Row
			for k := klo; k < khi; k++ {
				st.GenRow(k/g.NzTot, k%g.NzTot, &row)
				counts[k] = row.Nnz()
			}
		}(rng[0], rng[1])
	}
	wg.Wait()

	// row pointers: sequential prefix sum
	ia := make([]int, g.Dim+1)
	ia[0] = base
	for k := 0; k < g.Dim; k++ {
		ia[k+1] = ia[k] + counts[k]
	}
	nnz := ia[g.Dim] - base

	// second pass: fill rows into disjoint ranges
	am := make([]float64, nnz)
	ja := make([]int, nnz)
	for _, rng := range ranges {
		wg.Add(1)
		go func(klo, khi int) {
			defer wg.Done()
			var row Row
			for k := klo; k < khi; k++ {
				st.GenRow(k/g.NzTot, k%g.NzTot, &row)
				p := ia[k] - base
				n := row.Emit(ja[p:], am[p:], base)
				if n != counts[k] {
					chk.Panic("row %d emitted %d entries. %d were counted", k, n, counts[k])
				}
			}
		}(rng[0], rng[1])
	}
	wg.Wait()

	A = &CSR{
		Am:    am,
		Ja:    ja,
		Ia:    ia,
		Nrows: g.Dim,
		Ncols: g.Dim,
		Nnz:   nnz,
		Base:  base,
	}
	A.Check()
	return
}

// BuildRHS builds the right-hand side vector matching the assembled operator:
// the source field at interior points, zero at ghost rows (the parity
// condition is homogeneous), and the pinned boundary value at outer rows.
func BuildRHS(g *grd.Grid, f []float64, ubnd func(r, z float64) float64) (b []float64) {
	if len(f) != g.Dim {
		chk.Panic("source field has length %d. must equal the number of grid points %d", len(f), g.Dim)
	}
	b = g.NewField()
	for i := 0; i < g.NrTot; i++ {
		for j := 0; j < g.NzTot; j++ {
			k := g.Idx(i, j)
			switch {
			case g.IsGhost(i, j):
				b[k] = 0
			case g.IsOuter(i, j):
				b[k] = ubnd(g.R(i), g.Z(j))
			default:
				b[k] = f[k]
			}
		}
	}
	return
}
