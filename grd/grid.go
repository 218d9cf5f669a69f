// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grd implements the cell-centered (r,z) grid with ghost zones
package grd

import (
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"
)

// Grid holds the dimensions and spacing of a 2D axisymmetric grid. The grid
// is cell-centered: point i along r sits at (i-Ghost+0.5)*Dr, hence the
// symmetry axis r=0 lies between points Ghost-1 and Ghost, and no point falls
// exactly on the axis. The last point in each direction is the outer boundary.
type Grid struct {
	Norder int     // finite difference order: 2 or 4
	Ghost  int     // ghost zone width: 2 (order 2) or 3 (order 4)
	NrInt  int     // number of interior points along r
	NzInt  int     // number of interior points along z
	NrTot  int     // total number of points along r = Ghost + NrInt + 1
	NzTot  int     // total number of points along z = Ghost + NzInt + 1
	Dim    int     // total number of grid points = NrTot * NzTot
	Dr     float64 // radial step
	Dz     float64 // axial step
}

// New returns a new grid for the given finite difference order
//  Input:
//   norder       -- finite difference order: 2 or 4
//   nrint, nzint -- number of interior points along r and z
//   dr, dz       -- spatial steps along r and z
func New(norder, nrint, nzint int, dr, dz float64) (o *Grid, err error) {
	var ghost int
	switch norder {
	case 2:
		ghost = 2
	case 4:
		ghost = 3
	default:
		return nil, chk.Err("finite difference order %d is not supported, only 2 or 4", norder)
	}
	if nrint < 1 || nzint < 1 {
		return nil, chk.Err("number of interior points (%d,%d) must be positive", nrint, nzint)
	}
	if dr <= 0 || dz <= 0 {
		return nil, chk.Err("spatial steps (%g,%g) must be positive", dr, dz)
	}
	o = &Grid{
		Norder: norder,
		Ghost:  ghost,
		NrInt:  nrint,
		NzInt:  nzint,
		NrTot:  ghost + nrint + 1,
		NzTot:  ghost + nzint + 1,
		Dr:     dr,
		Dz:     dz,
	}
	o.Dim = o.NrTot * o.NzTot
	if o.NrTot < 2*ghost+1 || o.NzTot < 2*ghost+1 {
		return nil, chk.Err("total extents (%d,%d) must be at least %d", o.NrTot, o.NzTot, 2*ghost+1)
	}
	return
}

// Idx returns the row-major linear index of point (i,j)
func (o *Grid) Idx(i, j int) int {
	if i < 0 || i >= o.NrTot || j < 0 || j >= o.NzTot {
		chk.Panic("point (%d,%d) is outside grid %dx%d", i, j, o.NrTot, o.NzTot)
	}
	return i*o.NzTot + j
}

// R returns the radial coordinate of column i
func (o *Grid) R(i int) float64 {
	return (float64(i-o.Ghost) + 0.5) * o.Dr
}

// Z returns the axial coordinate of row j
func (o *Grid) Z(j int) float64 {
	return (float64(j-o.Ghost) + 0.5) * o.Dz
}

// Mirror returns the index of the reflection of ghost index i across the
// symmetry axis sitting between indices Ghost-1 and Ghost. It panics if i is
// not a ghost index.
func (o *Grid) Mirror(i int) int {
	if i < 0 || i >= o.Ghost {
		chk.Panic("index %d is not a ghost index; ghost zone is [0,%d)", i, o.Ghost)
	}
	return 2*o.Ghost - 1 - i
}

// IsGhost tells whether point (i,j) lies in a low-side ghost zone
func (o *Grid) IsGhost(i, j int) bool {
	return i < o.Ghost || j < o.Ghost
}

// IsOuter tells whether point (i,j) lies on the outer boundary. Points that
// are also ghost points are classified as ghost, not outer.
func (o *Grid) IsOuter(i, j int) bool {
	if o.IsGhost(i, j) {
		return false
	}
	return i == o.NrTot-1 || j == o.NzTot-1
}

// NewField allocates a dense field with one value per grid point
func (o *Grid) NewField() []float64 {
	return make([]float64, o.Dim)
}

// Coords allocates and fills the coordinate fields. The fill is performed in
// parallel over chunks of rows; nproc ≤ 0 means all available processors.
func (o *Grid) Coords(nproc int) (r, z []float64) {
	r = o.NewField()
	z = o.NewField()
	var wg sync.WaitGroup
	for _, rng := range SplitRange(o.NrTot, nproc) {
		wg.Add(1)
		go func(ilo, ihi int) {
			defer wg.Done()
			for i := ilo; i < ihi; i++ {
				ri := o.R(i)
				for j := 0; j < o.NzTot; j++ {
					k := i*o.NzTot + j
					r[k] = ri
					z[k] = o.Z(j)
				}
			}
		}(rng[0], rng[1])
	}
	wg.Wait()
	return
}

// SplitRange splits [0,n) into at most nproc contiguous chunks. nproc ≤ 0
// means all available processors.
func SplitRange(n, nproc int) (ranges [][2]int) {
	if nproc <= 0 {
		nproc = runtime.NumCPU()
	}
	if nproc > n {
		nproc = n
	}
	lo := 0
	for m := 0; m < nproc; m++ {
		sz := n / nproc
		if m < n%nproc {
			sz++
		}
		ranges = append(ranges, [2]int{lo, lo + sz})
		lo += sz
	}
	return
}
