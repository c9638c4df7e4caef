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

// Package relperm provides relative permeability models, which compute the
// relative permeability of each phase and its derivatives with respect to
// the saturations of the canonical phases.
package relperm

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
)

// Model is a relative permeability model.
type Model interface {
	// Name returns the name of the model.
	Name() string

	// Phases returns the names of the phases the model applies to.
	Phases() []string

	// CanonicalPhases returns the names of the phases whose saturations
	// are the independent variables of the model.
	CanonicalPhases() []string

	// Correct recomputes the output fields from the current saturations.
	Correct() error

	// Field returns an output field by name. See KrName and DkrName.
	Field(name string) ([]float64, error)

	// FieldNames returns the names of the output fields.
	FieldNames() []string
}

// KrName returns the name of the relative permeability field of phase.
func KrName(phase string) string { return rsr.KrName(phase) }

// DkrName returns the name of the field holding the derivative of the
// relative permeability of phase with respect to the saturation of
// canonical.
func DkrName(phase, canonical string) string {
	return phase + ".dkr/dS(" + canonical + ")"
}

// A Constructor creates a model from the common model state b, the model
// configuration, and the phases the model applies to, ordered as
// b.Phases().
type Constructor func(b *Base, cfg rsr.Dict, phases []*rsr.Phase) (Model, error)

var constructors = map[string]Constructor{
	"BrooksCorey": newBrooksCorey,
	"tabular":     newTabular,
}

// Register adds a model type. It panics if typ is already registered.
func Register(typ string, c Constructor) {
	if _, ok := constructors[typ]; ok {
		panic(fmt.Errorf("relperm: model type %s is already registered", typ))
	}
	constructors[typ] = c
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

// New creates the relative permeability model called name, for example
// "krModel<water,oil>", from its configuration cfg. The model type is read
// from the "type" key. phases must include every phase the model applies
// to.
func New(name string, cfg rsr.Dict, phases []*rsr.Phase) (Model, error) {
	typ, err := cfg.String("type")
	if err != nil {
		return nil, fmt.Errorf("relperm: %s: %v", name, err)
	}
	cstr, ok := constructors[typ]
	if !ok {
		return nil, &rsr.UnknownTypeError{Family: "relative permeability model", Type: typ, Valid: Types()}
	}
	logrus.WithFields(logrus.Fields{"name": name, "type": typ}).Info("Selecting relative permeability model type")
	b, err := NewBase(name, cfg, phases)
	if err != nil {
		return nil, err
	}
	ph, err := rsr.SelectPhases(b.phases, phases)
	if err != nil {
		return nil, fmt.Errorf("relperm: %s: %v", name, err)
	}
	return cstr(b, cfg, ph)
}

// Base holds the state shared by two-phase relative permeability models.
// Its kr fields start at 1 and its derivative fields at 0.
type Base struct {
	name      string
	phases    []string
	canonical []string
	fields    rsr.FieldTable
	n         int
}

// NewBase returns the common state of a two-phase model called name.
func NewBase(name string, cfg rsr.Dict, phases []*rsr.Phase) (*Base, error) {
	ph, canonical, err := rsr.ModelPhases(name, cfg, 2)
	if err != nil {
		return nil, fmt.Errorf("relperm: %v", err)
	}
	if len(phases) == 0 {
		return nil, fmt.Errorf("relperm: %s: no phases provided", name)
	}
	b := &Base{name: name, phases: ph, canonical: canonical, n: len(phases[0].Mu)}
	for _, p := range ph {
		kr := b.fields.Add(KrName(p), b.n)
		for i := range kr {
			kr[i] = 1
		}
		for _, c := range canonical {
			b.fields.Add(DkrName(p, c), b.n)
		}
	}
	return b, nil
}

// Name returns the model name.
func (b *Base) Name() string { return b.name }

// Phases returns the phase names.
func (b *Base) Phases() []string { return b.phases }

// CanonicalPhases returns the canonical phase names.
func (b *Base) CanonicalPhases() []string { return b.canonical }

// Field returns the output field called name.
func (b *Base) Field(name string) ([]float64, error) {
	f, err := b.fields.Field(name)
	if err != nil {
		return nil, fmt.Errorf("relperm: %s: %v", b.name, err)
	}
	return f, nil
}

// FieldNames returns the names of the output fields.
func (b *Base) FieldNames() []string { return b.fields.FieldNames() }

// otherPhase returns the phase that is not the first canonical phase.
func (b *Base) otherPhase() string {
	if b.phases[0] == b.canonical[0] {
		return b.phases[1]
	}
	return b.phases[0]
}

// twoPhaseFields returns the kr and derivative fields of the canonical
// and other phases.
func (b *Base) twoPhaseFields() (kr1, kr2, dkr1, dkr2 []float64) {
	c, o := b.canonical[0], b.otherPhase()
	kr1, _ = b.fields.Field(KrName(c))
	kr2, _ = b.fields.Field(KrName(o))
	dkr1, _ = b.fields.Field(DkrName(c, c))
	dkr2, _ = b.fields.Field(DkrName(o, c))
	return
}

// canonicalPhase returns the first canonical phase from phases, which are
// ordered as b.Phases().
func (b *Base) canonicalPhase(phases []*rsr.Phase) (*rsr.Phase, error) {
	for _, p := range phases {
		if p.Name == b.canonical[0] {
			if p.Alpha == nil {
				return nil, fmt.Errorf("relperm: %s: phase %s has no saturation", b.name, p.Name)
			}
			return p, nil
		}
	}
	return nil, fmt.Errorf("relperm: %s: canonical phase %s was not provided", b.name, b.canonical[0])
}
