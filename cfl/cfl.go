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

// Package cfl bounds the time step of an IMPES simulation. A Method
// computes a per-cell Courant-like number for the explicit saturation
// update, and the Controller turns it, together with a limit on the
// saturation change per step, into the next time step.
package cfl

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
)

// Method computes a per-cell Courant number.
type Method interface {
	// Correct recomputes the Courant number of each cell for time step
	// dt from the current flow state.
	Correct(dt float64) error

	// CFLNo returns the Courant number of each cell as of the last call
	// to Correct.
	CFLNo() []float64
}

// Setup holds what a Method needs to compute the Courant number.
type Setup struct {
	Sim *rsr.Simulation

	// Kr supplies the relative permeabilities and their derivatives.
	Kr rsr.FieldModel

	// Pc supplies capillary pressure derivatives. It may be nil.
	Pc rsr.FieldModel
}

// A Constructor creates a Method from its configuration.
type Constructor func(name string, cfg rsr.Dict, s Setup) (Method, error)

var constructors = map[string]Constructor{
	"CoatsNo": newCoatsNo,
}

// Register adds a method type. It panics if typ is already registered.
func Register(typ string, c Constructor) {
	if _, ok := constructors[typ]; ok {
		panic(fmt.Errorf("cfl: method type %s is already registered", typ))
	}
	constructors[typ] = c
}

// Types returns the registered method types.
func Types() []string {
	o := make([]string, 0, len(constructors))
	for k := range constructors {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

// New creates the method selected by the "CFLMethod" key of cfg, which
// defaults to "CoatsNo".
func New(name string, cfg rsr.Dict, s Setup) (Method, error) {
	typ, err := cfg.StringDefault("CFLMethod", "CoatsNo")
	if err != nil {
		return nil, fmt.Errorf("cfl: %v", err)
	}
	c, ok := constructors[typ]
	if !ok {
		return nil, &rsr.UnknownTypeError{Family: "CFL method", Type: typ, Valid: Types()}
	}
	if s.Sim == nil {
		return nil, fmt.Errorf("cfl: %s: no simulation", name)
	}
	logrus.WithFields(logrus.Fields{"name": name, "type": typ}).Info("Selecting CFL method type")
	return c(name, cfg, s)
}
