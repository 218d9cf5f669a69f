// Copyright 2018 The Ellsolve Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input parameters read from a (.par) JSON file
// or from command line arguments
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// limits on grid parameters
const (
	NintMin = 32          // minimum number of interior cells per direction
	NintMax = 2048        // maximum number of interior cells per direction
	StepMin = 0.000976562 // minimum step size; 2^-10
	StepMax = 1.0         // maximum step size
)

// LinSolData holds data for the linear solver backend
type LinSolData struct {
	Name      string  `json:"name"`      // "sparse13" or "umfpack"
	Tolerance float64 `json:"tolerance"` // tolerance for iterative refinement
	MaxIt     int     `json:"maxit"`     // max number of refinement iterations
}

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Name = "sparse13"
	o.Tolerance = 1e-12
	o.MaxIt = 50
}

// Data holds the discretization parameters for one run
type Data struct {

	// output
	Desc   string `json:"desc"`   // description of run
	DirOut string `json:"dirout"` // directory for output; e.g. "output"

	// grid
	Norder int     `json:"norder"` // order of the finite difference scheme: 2 or 4
	NrInt  int     `json:"nrint"`  // number of interior cells along r
	NzInt  int     `json:"nzint"`  // number of interior cells along z
	Dr     float64 `json:"dr"`     // step size along r
	Dz     float64 `json:"dz"`     // step size along z

	// linear solver
	LinSol LinSolData `json:"linsol"` // linear solver data

	// execution
	Nproc int `json:"nproc"` // number of goroutines for assembly; 0 => use all CPUs
}

// SetDefault sets defaults values
func (o *Data) SetDefault() {
	o.DirOut = "output"
	o.Norder = 2
	o.NrInt = 256
	o.NzInt = 64
	o.Dr = 0.03125
	o.Dz = 0.125
	o.LinSol.SetDefault()
}

// Validate checks whether parameters are within allowed ranges.
// It returns an error message instead of panicking so that callers
// may fall back to default values.
func (o *Data) Validate() (err error) {
	if o.Norder != 2 && o.Norder != 4 {
		return chk.Err("norder must be 2 or 4. norder=%d is invalid", o.Norder)
	}
	if o.NrInt < NintMin || o.NrInt > NintMax {
		return chk.Err("nrint must be within [%d,%d]. nrint=%d is invalid", NintMin, NintMax, o.NrInt)
	}
	if o.NzInt < NintMin || o.NzInt > NintMax {
		return chk.Err("nzint must be within [%d,%d]. nzint=%d is invalid", NintMin, NintMax, o.NzInt)
	}
	if o.Dr < StepMin || o.Dr > StepMax {
		return chk.Err("dr must be within [%g,%g]. dr=%g is invalid", StepMin, StepMax, o.Dr)
	}
	if o.Dz < StepMin || o.Dz > StepMax {
		return chk.Err("dz must be within [%g,%g]. dz=%g is invalid", StepMin, StepMax, o.Dz)
	}
	if o.DirOut == "" {
		return chk.Err("dirout must not be empty")
	}
	return
}

// ReadParams reads parameters from a JSON file. Note: this function panics on errors
func ReadParams(parfilepath string) *Data {

	// new data with defaults
	var o Data
	o.SetDefault()

	// read file (panics on a missing or unreadable file)
	b := io.ReadFile(parfilepath)

	// decode
	err := json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadParams: cannot unmarshal parameters file %q", parfilepath)
	}

	// expand environment variables in output directory
	o.DirOut = os.ExpandEnv(o.DirOut)

	// check ranges
	if err = o.Validate(); err != nil {
		chk.Panic("ReadParams: %q has invalid parameters:\n%v", filepath.Base(parfilepath), err)
	}
	return &o
}
