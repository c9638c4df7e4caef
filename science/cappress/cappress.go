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

// Package cappress provides capillary pressure models, which compute the
// capillary pressure of each canonical phase and its derivative with
// respect to that phase's saturation.
package cappress

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
)

// ErrBelowPcMin is returned when capillary pressure is requested at a
// saturation at or below the minimum saturation of the model.
var ErrBelowPcMin = errors.New("cappress: capillary pressure is not defined at or below the minimum saturation")

// Model is a capillary pressure model.
type Model interface {
	Name() string
	Phases() []string
	CanonicalPhases() []string

	// Correct recomputes the output fields from the current saturations.
	Correct() error

	// Field returns an output field by name. See PcName and DpcName.
	Field(name string) ([]float64, error)

	FieldNames() []string
}

// PcName returns the name of the capillary pressure field of phase.
func PcName(phase string) string { return phase + ".pc" }

// DpcName returns the name of the field holding the derivative of the
// capillary pressure of phase with respect to the saturation of canonical.
func DpcName(phase, canonical string) string {
	return phase + ".dpc/dS(" + canonical + ")"
}

// A Constructor creates a model from the common model state, the model
// configuration and the phases the model applies to.
type Constructor func(b *Base, cfg rsr.Dict, phases []*rsr.Phase) (Model, error)

var constructors = map[string]Constructor{
	"BrooksCorey": newBrooksCorey,
	"tabular":     newTabular,
}

// Register adds a model type. It panics if typ is already registered.
func Register(typ string, c Constructor) {
	if _, ok := constructors[typ]; ok {
		panic(fmt.Errorf("cappress: model type %s is already registered", typ))
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

// New creates the capillary pressure model called name, for example
// "pcModel<water,oil>", from its configuration. The model type is read from
// the "type" key.
func New(name string, cfg rsr.Dict, phases []*rsr.Phase) (Model, error) {
	typ, err := cfg.String("type")
	if err != nil {
		return nil, fmt.Errorf("cappress: %s: %v", name, err)
	}
	cstr, ok := constructors[typ]
	if !ok {
		return nil, &rsr.UnknownTypeError{Family: "capillary pressure model", Type: typ, Valid: Types()}
	}
	logrus.WithFields(logrus.Fields{"name": name, "type": typ}).Info("Selecting capillary pressure model type")
	b, err := newBase(name, cfg, phases)
	if err != nil {
		return nil, err
	}
	ph, err := rsr.SelectPhases(b.phases, phases)
	if err != nil {
		return nil, fmt.Errorf("cappress: %s: %v", name, err)
	}
	return cstr(b, cfg, ph)
}

// Base holds the state shared by two-phase capillary pressure models.
type Base struct {
	name      string
	phases    []string
	canonical []string
	fields    rsr.FieldTable
	n         int
}

func newBase(name string, cfg rsr.Dict, phases []*rsr.Phase) (*Base, error) {
	ph, canonical, err := rsr.ModelPhases(name, cfg, 2)
	if err != nil {
		return nil, fmt.Errorf("cappress: %v", err)
	}
	if len(phases) == 0 {
		return nil, fmt.Errorf("cappress: %s: no phases provided", name)
	}
	b := &Base{name: name, phases: ph, canonical: canonical, n: len(phases[0].Mu)}
	for _, c := range canonical {
		b.fields.Add(PcName(c), b.n)
		b.fields.Add(DpcName(c, c), b.n)
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
		return nil, fmt.Errorf("cappress: %s: %v", b.name, err)
	}
	return f, nil
}

// FieldNames returns the names of the output fields.
func (b *Base) FieldNames() []string { return b.fields.FieldNames() }

func (b *Base) canonicalPhase(phases []*rsr.Phase) (*rsr.Phase, error) {
	for _, p := range phases {
		if p.Name == b.canonical[0] {
			if p.Alpha == nil {
				return nil, fmt.Errorf("cappress: %s: phase %s has no saturation", b.name, p.Name)
			}
			return p, nil
		}
	}
	return nil, fmt.Errorf("cappress: %s: canonical phase %s was not provided", b.name, b.canonical[0])
}

func (b *Base) pcFields() (pc, dpc []float64) {
	c := b.canonical[0]
	pc, _ = b.fields.Field(PcName(c))
	dpc, _ = b.fields.Field(DpcName(c, c))
	return
}
