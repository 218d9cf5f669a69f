// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out writes grid fields as plain-text diagnostic files
package out

import (
	"bytes"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/sontanon/Elliptic-Solver/grd"
)

// WriteField writes one field to dirout/fname in the diagnostic format: the
// grid dimensions on the first line followed by one "r z value" triple per
// grid point, in row-major order. The output directory is created if needed.
func WriteField(dirout, fname string, g *grd.Grid, r, z, u []float64) error {
	if len(r) != g.Dim || len(z) != g.Dim || len(u) != g.Dim {
		return chk.Err("field lengths (%d,%d,%d) do not match the number of grid points %d", len(r), len(z), len(u), g.Dim)
	}
	var buf bytes.Buffer
	io.Ff(&buf, "%d %d\n", g.NrTot, g.NzTot)
	for i := 0; i < g.NrTot; i++ {
		for j := 0; j < g.NzTot; j++ {
			k := g.Idx(i, j)
			io.Ff(&buf, "%23.15E %23.15E %23.15E\n", r[k], z[k], u[k])
		}
	}
	io.WriteFileD(dirout, fname, &buf)
	return nil
}

// WriteFields writes the named fields, one file per field
func WriteFields(dirout string, g *grd.Grid, r, z []float64, fields map[string][]float64) error {
	for fname, u := range fields {
		if err := WriteField(dirout, fname, g, r, z, u); err != nil {
			return err
		}
	}
	return nil
}
