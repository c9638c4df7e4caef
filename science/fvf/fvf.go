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

// Package fvf provides formation volume factor models, which give the
// ratio of a phase's reservoir density to its surface density as a
// function of pressure.
package fvf

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
	"github.com/spatialmodel/rsr/interpolation"
)

// Model is a formation volume factor model.
type Model interface {
	rsr.FVFModel

	// Field returns RFVFName(phase) or DRFVFdPName(phase).
	Field(name string) ([]float64, error)
}

// RFVFName returns the name of the reciprocal FVF field of phase.
func RFVFName(phase string) string { return phase + ".rFVF" }

// DRFVFdPName returns the name of the field holding the pressure
// derivative of the reciprocal FVF of phase.
func DRFVFdPName(phase string) string { return phase + ".drFVF/dP" }

var constructors = map[string]func(phase string, cfg rsr.Dict, n int) (Model, error){
	"incompressible":       newIncompressible,
	"tabularFVFvsPressure": newTabular,
}

// Types returns the registered model types.
func Types() []string {
	o := make([]string, 0, len(constructors))
	for k := range constructors {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

// New creates the FVF model of a phase on n cells from the phase
// configuration. The model type is read from the "FVFModel" key and
// defaults to "tabularFVFvsPressure".
func New(phase string, cfg rsr.Dict, n int) (Model, error) {
	typ, err := cfg.StringDefault("FVFModel", "tabularFVFvsPressure")
	if err != nil {
		return nil, err
	}
	cstr, ok := constructors[typ]
	if !ok {
		return nil, &rsr.UnknownTypeError{Family: "FVF model", Type: typ, Valid: Types()}
	}
	logrus.WithFields(logrus.Fields{"phase": phase, "type": typ}).Info("Selecting FVF model type")
	return cstr(phase, cfg, n)
}

type base struct {
	phase         string
	rFVF, drFVFdP []float64
}

func (b *base) RFVF() []float64    { return b.rFVF }
func (b *base) DRFVFdP() []float64 { return b.drFVFdP }

func (b *base) Field(name string) ([]float64, error) {
	switch name {
	case RFVFName(b.phase):
		return b.rFVF, nil
	case DRFVFdPName(b.phase):
		return b.drFVFdP, nil
	}
	return nil, fmt.Errorf("fvf: no field named %q; available fields are [%s %s]",
		name, RFVFName(b.phase), DRFVFdPName(b.phase))
}

// Incompressible is a model with a constant reciprocal FVF.
type Incompressible struct {
	base
}

func newIncompressible(phase string, cfg rsr.Dict, n int) (Model, error) {
	r, err := cfg.FieldDefault("rFVF", 1, n)
	if err != nil {
		return nil, fmt.Errorf("fvf: phase %s: %v", phase, err)
	}
	return &Incompressible{base{phase: phase, rFVF: r, drFVFdP: make([]float64, n)}}, nil
}

// Correct does nothing: the reciprocal FVF does not depend on pressure.
func (m *Incompressible) Correct(p []float64) error { return nil }

// Tabular interpolates the reciprocal FVF and its pressure derivative from
// a table keyed by pressure. Each row holds [rFVF, drFVF/dP].
type Tabular struct {
	base
	table interpolation.Table
}

func newTabular(phase string, cfg rsr.Dict, n int) (Model, error) {
	tcfg, err := cfg.Sub("FVFData")
	if err != nil {
		return nil, fmt.Errorf("fvf: phase %s: %v", phase, err)
	}
	t, err := interpolation.New(tcfg)
	if err != nil {
		return nil, fmt.Errorf("fvf: phase %s: %v", phase, err)
	}
	return &Tabular{
		base:  base{phase: phase, rFVF: rsr.Uniform(1, n), drFVFdP: make([]float64, n)},
		table: t,
	}, nil
}

// Correct interpolates the reciprocal FVF at pressure p.
func (m *Tabular) Correct(p []float64) error {
	if len(p) != len(m.rFVF) {
		return fmt.Errorf("fvf: phase %s: pressure has %d values but there are %d cells", m.phase, len(p), len(m.rFVF))
	}
	for i, pi := range p {
		v, err := m.table.Interpolate(pi)
		if err != nil {
			return fmt.Errorf("fvf: phase %s: cell %d: %v", m.phase, i, err)
		}
		if len(v) < 2 {
			return fmt.Errorf("fvf: phase %s: table has %d values per row but needs 2", m.phase, len(v))
		}
		m.rFVF[i], m.drFVFdP[i] = v[0], v[1]
	}
	return nil
}
