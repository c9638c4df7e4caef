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

package wells

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
)

// Model holds the wells of a simulation and the per-phase matrices their
// drives add to. It implements rsr.WellSource.
type Model struct {
	Name string

	wells    []*Well
	groups   map[string][]*Well
	matrices map[string]*rsr.Matrix

	Log logrus.FieldLogger
}

var wellModels = []string{"Peaceman"}

// NewModel creates a well model from cfg. The "wellModel" key selects the
// model type and "wells" lists the wells, each a dictionary with a "name".
// Wells may not share perforated cells.
func NewModel(name string, cfg rsr.Dict, env Environment) (*Model, error) {
	typ, err := cfg.StringDefault("wellModel", "Peaceman")
	if err != nil {
		return nil, fmt.Errorf("wells: %v", err)
	}
	if !containsString(wellModels, typ) {
		return nil, &rsr.UnknownTypeError{Family: "well model", Type: typ, Valid: wellModels}
	}
	if env.Mesh == nil {
		return nil, fmt.Errorf("wells: well model %s has no mesh", name)
	}
	if env.Reducer == nil {
		env.Reducer = rsr.SingleProcess{}
	}
	m := &Model{
		Name:     name,
		groups:   make(map[string][]*Well),
		matrices: make(map[string]*rsr.Matrix, len(env.Phases)),
		Log:      logrus.StandardLogger(),
	}
	m.Log.WithFields(logrus.Fields{"name": name, "type": typ}).Info("Selecting well model type")
	for _, ph := range env.Phases {
		m.matrices[ph.Name] = rsr.NewMatrix(env.Mesh)
	}

	var wcfgs []rsr.Dict
	if cfg.Has("wells") {
		if wcfgs, err = cfg.List("wells"); err != nil {
			return nil, fmt.Errorf("wells: well model %s: %v", name, err)
		}
	}
	owner := make(map[int]string)
	for i, wc := range wcfgs {
		wn, err := wc.String("name")
		if err != nil {
			return nil, fmt.Errorf("wells: well %d: %v", i, err)
		}
		if _, err := m.Well(wn); err == nil {
			return nil, fmt.Errorf("wells: well %s is defined twice", wn)
		}
		w, err := NewWell(wn, wc, env, m.matrices)
		if err != nil {
			return nil, err
		}
		for _, c := range w.Props.Cells {
			if o, ok := owner[c]; ok {
				return nil, fmt.Errorf("wells: wells %s and %s both perforate cell %d", o, wn, c)
			}
			owner[c] = wn
		}
		m.wells = append(m.wells, w)
		for _, g := range w.Groups {
			m.groups[g] = append(m.groups[g], w)
		}
	}
	return m, nil
}

// ClearMatrices resets the well matrices to zero.
func (m *Model) ClearMatrices() {
	for _, mm := range m.matrices {
		mm.Clear()
	}
}

// Correct rebuilds the well matrices for time t and pressure p.
func (m *Model) Correct(t float64, p []float64) error {
	if len(m.wells) == 0 {
		return nil
	}
	m.ClearMatrices()
	for _, w := range m.wells {
		if err := w.Correct(t, p); err != nil {
			return err
		}
	}
	return nil
}

// Matrix returns the well matrix of phase.
func (m *Model) Matrix(phase string) (*rsr.Matrix, error) {
	mm, ok := m.matrices[phase]
	if !ok {
		return nil, fmt.Errorf("wells: well model %s has no phase %s", m.Name, phase)
	}
	return mm, nil
}

// ExplicitSource returns the rate of phase into each cell implied by the
// current well matrix at pressure p.
func (m *Model) ExplicitSource(phase string, p []float64) ([]float64, error) {
	mm, err := m.Matrix(phase)
	if err != nil {
		return nil, err
	}
	return mm.Rate(p), nil
}

// Wells returns the wells in the order they were defined.
func (m *Model) Wells() []*Well { return m.wells }

// Well returns the well called name.
func (m *Model) Well(name string) (*Well, error) {
	for _, w := range m.wells {
		if w.Name == name {
			return w, nil
		}
	}
	return nil, fmt.Errorf("wells: no well named %s", name)
}

// Group returns the wells in group name.
func (m *Model) Group(name string) ([]*Well, error) {
	g, ok := m.groups[name]
	if !ok {
		return nil, fmt.Errorf("wells: no well group named %s; groups are %v", name, m.Groups())
	}
	return g, nil
}

// Groups returns the sorted group names.
func (m *Model) Groups() []string {
	o := make([]string, 0, len(m.groups))
	for g := range m.groups {
		o = append(o, g)
	}
	sort.Strings(o)
	return o
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

var _ rsr.WellSource = &Model{}
