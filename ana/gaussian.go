// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements closed-form reference solutions of the axisymmetric
// elliptic equation
//
//   u_rr + (1/r) u_r + u_zz + s(r,z)*u = f(r,z)
//
// used to manufacture consistent (u, s, f) triples for convergence tests and
// to build the default benchmark source fields.
package ana

import (
	"math"

	"github.com/sontanon/Elliptic-Solver/grd"
)

// Gaussian implements the manufactured solution
//
//   u(r,z) = exp(-r² - z²)
//
// with the linear term of the original ELLSOLVEC benchmark
//
//   s(r,z) = exp(-r² - z²)*(1/2 + r²*(-3 + r² + z²))
//
// and the right-hand side f = Δu + s*u computed exactly, so that u solves
// the equation by construction.
type Gaussian struct{}

// U returns the exact solution at (r,z)
func (o Gaussian) U(r, z float64) float64 {
	return math.Exp(-r*r - z*z)
}

// S returns the linear term coefficient at (r,z)
func (o Gaussian) S(r, z float64) float64 {
	return math.Exp(-r*r-z*z) * (0.5 + r*r*(-3.0+r*r+z*z))
}

// Lap returns the flat axisymmetric Laplacian of the exact solution,
// u_rr + u_r/r + u_zz, at (r,z)
func (o Gaussian) Lap(r, z float64) float64 {
	return math.Exp(-r*r-z*z) * (4.0*r*r + 4.0*z*z - 6.0)
}

// Rhs returns the consistent right-hand side f = Δu + s*u at (r,z)
func (o Gaussian) Rhs(r, z float64) float64 {
	return o.Lap(r, z) + o.S(r, z)*o.U(r, z)
}

// Fields evaluates the exact solution, linear term and right-hand side on all
// points of grid g
func (o Gaussian) Fields(g *grd.Grid) (u, s, f []float64) {
	u = g.NewField()
	s = g.NewField()
	f = g.NewField()
	for i := 0; i < g.NrTot; i++ {
		r := g.R(i)
		for j := 0; j < g.NzTot; j++ {
			z := g.Z(j)
			k := g.Idx(i, j)
			u[k] = o.U(r, z)
			s[k] = o.S(r, z)
			f[k] = o.Rhs(r, z)
		}
	}
	return
}
