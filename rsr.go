/*
Copyright © 2019 the RSR authors.
This file is part of RSR.

RSR is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RSR is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RSR.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package rsr is the core of a black-oil reservoir simulator: the mesh,
// rock and phase state, the pressure-matrix accumulator shared by the
// well models, and the IMPES time loop that ties the science packages
// together.
package rsr

import "errors"

// Version gives the version number.
const Version = "0.3.0"

// VSmall is a very small number used to avoid division by zero and to
// mark numerically absent quantities.
const VSmall = 1.0e-300

// ErrNotImplemented is returned when a model combination (for example an
// equivalent-radius formula for anisotropic rock) is not available.
var ErrNotImplemented = errors.New("not implemented")

// Reducer performs global reductions across the processes that share a
// partitioned domain. Every process holding part of a quantity must call
// the same reduction.
type Reducer interface {
	Sum(v float64) float64
	Max(v float64) float64
}

// SingleProcess is a Reducer for simulations that run in one process.
type SingleProcess struct{}

// Sum returns v.
func (SingleProcess) Sum(v float64) float64 { return v }

// Max returns v.
func (SingleProcess) Max(v float64) float64 { return v }
