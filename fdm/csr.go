// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fdm implements the finite difference discretization of the
// axisymmetric elliptic operator and its assembly into compressed sparse row
// (CSR) form
package fdm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// CSR holds a sparse matrix in compressed sparse row format. The index base
// (0 or 1) is fixed when the matrix is assembled and applies to both column
// indices and row pointers, following the convention of the downstream
// solver backend.
type CSR struct {
	Am    []float64 // nonzero values
	Ja    []int     // column index of each value (Base-based)
	Ia    []int     // row pointers, length Nrows+1 (Base-based)
	Nrows int       // number of rows
	Ncols int       // number of columns
	Nnz   int       // number of nonzero values
	Base  int       // index base: 0 or 1
}

// NnzRow returns the number of nonzero entries in row i (0-based)
func (o *CSR) NnzRow(i int) int {
	return o.Ia[i+1] - o.Ia[i]
}

// Check verifies the structural invariants of the matrix. Any violation is a
// programming-logic failure and aborts with a diagnostic.
func (o *CSR) Check() {
	if o.Base != 0 && o.Base != 1 {
		chk.Panic("CSR index base must be 0 or 1. %d is invalid", o.Base)
	}
	if len(o.Ia) != o.Nrows+1 {
		chk.Panic("CSR row pointers have length %d. must be nrows+1 = %d", len(o.Ia), o.Nrows+1)
	}
	if len(o.Am) != o.Nnz || len(o.Ja) != o.Nnz {
		chk.Panic("CSR arrays have lengths am=%d ja=%d. must equal nnz = %d", len(o.Am), len(o.Ja), o.Nnz)
	}
	if o.Ia[0] != o.Base {
		chk.Panic("CSR first row pointer is %d. must equal base = %d", o.Ia[0], o.Base)
	}
	if o.Ia[o.Nrows]-o.Base != o.Nnz {
		chk.Panic("CSR row pointers account for %d values. must equal nnz = %d", o.Ia[o.Nrows]-o.Base, o.Nnz)
	}
	for i := 0; i < o.Nrows; i++ {
		if o.Ia[i+1] < o.Ia[i] {
			chk.Panic("CSR row pointers decrease at row %d", i)
		}
		for p := o.Ia[i] - o.Base; p < o.Ia[i+1]-o.Base; p++ {
			j := o.Ja[p]
			if j < o.Base || j >= o.Base+o.Ncols {
				chk.Panic("CSR column index %d of row %d is outside [%d,%d)", j, i, o.Base, o.Base+o.Ncols)
			}
			if p > o.Ia[i]-o.Base && o.Ja[p-1] >= j {
				chk.Panic("CSR column indices of row %d are not strictly increasing", i)
			}
		}
	}
}

// MatVec computes dst = A*x. Vectors are always 0-based regardless of the
// matrix index base.
func (o *CSR) MatVec(dst, x []float64) {
	if len(dst) != o.Nrows || len(x) != o.Ncols {
		chk.Panic("MatVec: vector lengths (%d,%d) do not match matrix dimensions (%d,%d)", len(dst), len(x), o.Nrows, o.Ncols)
	}
	for i := 0; i < o.Nrows; i++ {
		sum := 0.0
		for p := o.Ia[i] - o.Base; p < o.Ia[i+1]-o.Base; p++ {
			sum += o.Am[p] * x[o.Ja[p]-o.Base]
		}
		dst[i] = sum
	}
}

// Residual computes res = A*u - f without modifying its inputs
func (o *CSR) Residual(u, f []float64) (res []float64) {
	res = make([]float64, o.Nrows)
	o.MatVec(res, u)
	for i := 0; i < o.Nrows; i++ {
		res[i] -= f[i]
	}
	return
}

// ToTriplet converts the matrix to the triplet (DOK) format consumed by the
// gosl linear solvers. Triplet indices are always 0-based.
func (o *CSR) ToTriplet() (t *la.Triplet) {
	t = new(la.Triplet)
	t.Init(o.Nrows, o.Ncols, o.Nnz)
	for i := 0; i < o.Nrows; i++ {
		for p := o.Ia[i] - o.Base; p < o.Ia[i+1]-o.Base; p++ {
			t.Put(i, o.Ja[p]-o.Base, o.Am[p])
		}
	}
	return
}
