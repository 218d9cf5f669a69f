// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/sontanon/Elliptic-Solver/grd"
)

// maxRowEntries is the widest possible operator row: two 5-point axis
// stencils sharing the diagonal at fourth order
const maxRowEntries = 9

// template holds the per-axis finite difference weights of the second and
// first derivative over a fixed set of neighbor offsets. Weights are in grid
// units; the generator scales them by 1/h² and 1/h respectively.
type template struct {
	offs []int
	d2   []float64
	d1   []float64
}

var (
	// centered 3-point, second order
	tplO2 = template{
		offs: []int{-1, 0, 1},
		d2:   []float64{1, -2, 1},
		d1:   []float64{-1.0 / 2.0, 0, 1.0 / 2.0},
	}

	// centered 5-point, fourth order
	tplO4 = template{
		offs: []int{-2, -1, 0, 1, 2},
		d2:   []float64{-1.0 / 12.0, 16.0 / 12.0, -30.0 / 12.0, 16.0 / 12.0, -1.0 / 12.0},
		d1:   []float64{1.0 / 12.0, -8.0 / 12.0, 0, 8.0 / 12.0, -1.0 / 12.0},
	}

	// biased 5-point, fourth order, for the last stencil row before the
	// outer boundary where the centered form would leave the grid
	tplO4Edge = template{
		offs: []int{-3, -2, -1, 0, 1},
		d2:   []float64{-1.0 / 12.0, 4.0 / 12.0, 6.0 / 12.0, -20.0 / 12.0, 11.0 / 12.0},
		d1:   []float64{-1.0 / 12.0, 6.0 / 12.0, -18.0 / 12.0, 10.0 / 12.0, 3.0 / 12.0},
	}
)

// pickTemplate selects the stencil template for a point at index pos along an
// axis with ntot points, so that every referenced index stays in [0,ntot)
func pickTemplate(order, pos, ntot int) template {
	if order == 4 && pos == ntot-2 {
		return tplO4Edge
	}
	if order == 4 {
		return tplO4
	}
	return tplO2
}

// FoldRule describes how a stencil offset crossing a reflection boundary is
// folded back into the grid: the coefficient at Off is added, multiplied by
// Sign, to the entry at Into.
type FoldRule struct {
	Off  int     // offset referencing the reflected ghost point
	Into int     // in-grid offset receiving the folded coefficient
	Sign float64 // +1 for even parity fields, -1 for odd
}

// foldTable lists the folding rules per order and distance from the
// reflection boundary (dist = index - ghost), for even parity. Only stencil
// offsets that cross the boundary appear; the dist 2 entry at order 4 serves
// the -3 offset of the edge-biased template on the smallest grids.
var foldTable = map[int]map[int][]FoldRule{
	2: {
		0: {{-1, 0, 1}},
	},
	4: {
		0: {{-2, 1, 1}, {-1, 0, 1}},
		1: {{-2, -1, 1}},
		2: {{-3, -2, 1}},
	},
}

// FoldRules returns the folding rules for a point at the given distance from
// the reflection boundary. even selects the parity of the field; scalar
// fields are even. The returned slice is empty when no offset crosses.
func FoldRules(order, dist int, even bool) (rules []FoldRule) {
	for _, rule := range foldTable[order][dist] {
		if !even {
			rule.Sign = -rule.Sign
		}
		rules = append(rules, rule)
	}
	return
}

// Row accumulates the entries of one operator row. Entries with the same
// column are merged; exact zeros are dropped on output.
type Row struct {
	n    int
	cols [maxRowEntries]int
	vals [maxRowEntries]float64
}

// Reset empties the row
func (o *Row) Reset() {
	o.n = 0
}

// Add accumulates val into the entry with the given column
func (o *Row) Add(col int, val float64) {
	for m := 0; m < o.n; m++ {
		if o.cols[m] == col {
			o.vals[m] += val
			return
		}
	}
	if o.n == maxRowEntries {
		chk.Panic("operator row exceeds %d entries", maxRowEntries)
	}
	o.cols[o.n] = col
	o.vals[o.n] = val
	o.n++
}

// Nnz returns the number of nonzero entries
func (o *Row) Nnz() (n int) {
	for m := 0; m < o.n; m++ {
		if o.vals[m] != 0 {
			n++
		}
	}
	return
}

// Get returns the accumulated value at the given column (0 if absent)
func (o *Row) Get(col int) float64 {
	for m := 0; m < o.n; m++ {
		if o.cols[m] == col {
			return o.vals[m]
		}
	}
	return 0
}

// Emit writes the nonzero entries, sorted by increasing column, into the
// prefixes of cols and vals, adding base to each column index, and returns
// the number of entries written
func (o *Row) Emit(cols []int, vals []float64, base int) (n int) {
	// insertion sort; rows have at most maxRowEntries entries
	for a := 1; a < o.n; a++ {
		c, v := o.cols[a], o.vals[a]
		b := a - 1
		for b >= 0 && o.cols[b] > c {
			o.cols[b+1], o.vals[b+1] = o.cols[b], o.vals[b]
			b--
		}
		o.cols[b+1], o.vals[b+1] = c, v
	}
	for m := 0; m < o.n; m++ {
		if o.vals[m] != 0 {
			cols[n] = o.cols[m] + base
			vals[n] = o.vals[m]
			n++
		}
	}
	return
}

// Stencil generates the operator rows of the discretized equation
//
//   u_rr + (1/r) u_r + u_zz + s(r,z)*u = f(r,z)
//
// on grid G. S is the linear term field; a nil S means s ≡ 0.
type Stencil struct {
	G *grd.Grid // the grid
	S []float64 // linear term field (diagonal contribution)
}

// GenRow builds the operator row of point (i,j) into row:
//  - low-side ghost rows carry the parity condition linking the ghost point
//    to its reflection (even parity for scalar fields);
//  - outer boundary rows pin the solution with a unit diagonal (Dirichlet);
//  - interior rows carry the finite difference stencil with ghost-crossing
//    offsets folded back into the grid.
func (o *Stencil) GenRow(i, j int, row *Row) {
	g := o.G
	row.Reset()
	k := g.Idx(i, j)

	// ghost row: u(i,j) - u(mirror) = 0
	if g.IsGhost(i, j) {
		im, jm := i, j
		if im < g.Ghost {
			im = g.Mirror(im)
		}
		if jm < g.Ghost {
			jm = g.Mirror(jm)
		}
		row.Add(k, 1)
		row.Add(g.Idx(im, jm), -1)
		return
	}

	// outer boundary row: pinned value
	if g.IsOuter(i, j) {
		row.Add(k, 1)
		return
	}

	// interior row: r-direction, u_rr + (1/r) u_r
	r := g.R(i)
	tpl := pickTemplate(g.Norder, i, g.NrTot)
	o.axis(row, tpl, i, j, g.Dr, r, true)

	// z-direction, u_zz
	tpl = pickTemplate(g.Norder, j, g.NzTot)
	o.axis(row, tpl, i, j, g.Dz, 0, false)

	// linear term
	if o.S != nil {
		row.Add(k, o.S[k])
	}
}

// axis accumulates one axis of the stencil into row. When radial is true the
// moving index is i and the first derivative term with coefficient 1/r is
// included; otherwise the moving index is j and only the second derivative
// contributes.
func (o *Stencil) axis(row *Row, tpl template, i, j int, h, r float64, radial bool) {
	g := o.G
	pos := j
	if radial {
		pos = i
	}
	dist := pos - g.Ghost
	rules := FoldRules(g.Norder, dist, true)
	for m, off := range tpl.offs {
		c := tpl.d2[m] / (h * h)
		if radial {
			c += tpl.d1[m] / (h * r)
		}
		target := off
		sign := 1.0
		if dist+off < 0 {
			target, sign = foldOffset(rules, off)
		}
		if radial {
			row.Add(g.Idx(i+target, j), sign*c)
		} else {
			row.Add(g.Idx(i, j+target), sign*c)
		}
	}
}

// foldOffset looks up the folding rule for a crossing offset
func foldOffset(rules []FoldRule, off int) (into int, sign float64) {
	for _, rule := range rules {
		if rule.Off == off {
			return rule.Into, rule.Sign
		}
	}
	chk.Panic("no folding rule for stencil offset %d", off)
	return
}
