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

package rsr

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DomainManipulator is a function that changes the state of a simulation.
type DomainManipulator func(s *Simulation) error

// Simulation holds the current state of a reservoir simulation.
type Simulation struct {
	Mesh Mesh
	Rock *Rock

	// Phases are the flowing phases. For two-phase runs the first phase
	// is the canonical phase whose saturation is solved for.
	Phases []*Phase

	P       []float64 // pressure [Pa]
	Gravity Vector    // [m/s²]

	Time    float64 // [s]
	Dt      float64 // [s]
	EndTime float64 // [s]
	Step    int

	// InitFuncs are run once when the simulation is initialized.
	InitFuncs []DomainManipulator

	// RunFuncs are run once per time step until Done is true.
	RunFuncs []DomainManipulator

	// CleanupFuncs are run once after the run is finished.
	CleanupFuncs []DomainManipulator

	// Done specifies that the simulation is finished.
	Done bool

	Log logrus.FieldLogger
}

// Init initializes the simulation by running s.InitFuncs.
func (s *Simulation) Init() error {
	if s.Log == nil {
		s.Log = logrus.StandardLogger()
	}
	for _, f := range s.InitFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// Run carries out the simulation by running s.RunFuncs until s.Done is
// true, and then running s.CleanupFuncs.
func (s *Simulation) Run() error {
	for !s.Done {
		for _, f := range s.RunFuncs {
			if err := f(s); err != nil {
				return err
			}
		}
	}
	return s.Cleanup()
}

// Cleanup runs s.CleanupFuncs.
func (s *Simulation) Cleanup() error {
	for _, f := range s.CleanupFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// Phase returns the phase with the given name.
func (s *Simulation) Phase(name string) (*Phase, error) {
	for _, p := range s.Phases {
		if p.Name == name {
			return p, nil
		}
	}
	names := make([]string, len(s.Phases))
	for i, p := range s.Phases {
		names[i] = p.Name
	}
	return nil, fmt.Errorf("rsr: no phase named %q; phases are %v", name, names)
}

// PhaseNames returns the names of the phases in order.
func (s *Simulation) PhaseNames() []string {
	o := make([]string, len(s.Phases))
	for i, p := range s.Phases {
		o[i] = p.Name
	}
	return o
}
