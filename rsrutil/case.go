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

package rsrutil

import (
	"fmt"

	"github.com/spatialmodel/rsr"
	"github.com/spatialmodel/rsr/cfl"
	"github.com/spatialmodel/rsr/science/cappress"
	"github.com/spatialmodel/rsr/science/fvf"
	"github.com/spatialmodel/rsr/science/relperm"
	"github.com/spatialmodel/rsr/wells"
)

// Case holds a simulation assembled from a case file together with the
// models that drive it.
type Case struct {
	Sim *rsr.Simulation

	Kr relperm.Model
	Pc cappress.Model // nil if the case has no capillary pressure model

	Wells *wells.Model

	// Controller sets the time step. It is nil if the time step is fixed.
	Controller *cfl.Controller

	// Rates reports the well rates. It is nil if the case has no "rates"
	// section.
	Rates *wells.RateReporter
}

// NewCase assembles a two-phase IMPES simulation from case file c and the
// time-loop options t. The phases are created in the order given by the
// "names" key of the "phases" section; the first is the canonical phase.
func NewCase(c rsr.Dict, t *TimeOptions) (*Case, error) {
	mcfg, err := c.Sub("mesh")
	if err != nil {
		return nil, err
	}
	mc, err := MeshConfig(mcfg)
	if err != nil {
		return nil, err
	}
	mesh, err := rsr.NewBlockMesh(mc)
	if err != nil {
		return nil, err
	}
	n := mesh.NCells()

	rcfg, err := c.Sub("rock")
	if err != nil {
		return nil, err
	}
	rock, err := rsr.NewRock("rock", rcfg, n)
	if err != nil {
		return nil, err
	}

	phases, err := newPhases(c, mesh)
	if err != nil {
		return nil, err
	}

	sim := &rsr.Simulation{
		Mesh:    mesh,
		Rock:    rock,
		Phases:  phases,
		Dt:      t.DeltaT,
		EndTime: t.EndTime,
	}
	if c.Has("gravity") {
		g, err := c.Floats("gravity")
		if err != nil {
			return nil, err
		}
		if len(g) != 3 {
			return nil, fmt.Errorf("rsrutil: gravity has %d components but should have 3", len(g))
		}
		sim.Gravity = rsr.Vector{X: g[0], Y: g[1], Z: g[2]}
	}
	if err := initialConditions(c, sim); err != nil {
		return nil, err
	}

	cs := &Case{Sim: sim}
	if err := cs.transport(c); err != nil {
		return nil, err
	}

	wcfg, err := c.SubDefault("wells")
	if err != nil {
		return nil, err
	}
	cs.Wells, err = wells.NewModel("wells", wcfg, wells.Environment{
		Mesh:    mesh,
		Rock:    rock,
		Phases:  phases,
		Gravity: sim.Gravity,
		Kr:      cs.Kr,
		Reducer: rsr.SingleProcess{},
	})
	if err != nil {
		return nil, err
	}
	if err := checkDrives(cs.Wells); err != nil {
		return nil, err
	}

	if t.AdjustTimeStep {
		scfg, err := c.SubDefault("solution")
		if err != nil {
			return nil, err
		}
		if !scfg.Has("maxCo") {
			scfg["maxCo"] = t.MaxCo
		}
		if !scfg.Has("maxDeltaT") {
			scfg["maxDeltaT"] = t.MaxDeltaT
		}
		setup := cfl.Setup{Sim: sim, Kr: cs.Kr}
		if cs.Pc != nil {
			setup.Pc = cs.Pc
		}
		if cs.Controller, err = cfl.NewController(scfg, setup, cs.Wells, rsr.SingleProcess{}); err != nil {
			return nil, err
		}
	}

	if c.Has("rates") {
		rcfg, err := c.Sub("rates")
		if err != nil {
			return nil, err
		}
		if cs.Rates, err = wells.NewRateReporter(rcfg, cs.Wells, phases); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

// checkDrives rejects drives whose rates have the wrong sign for the
// pressure equation. A BHP drive multiplies the Peaceman rate J(BHP-p) by
// the operation sign, so on a producer its matrix rows hold the rate out
// of the reservoir rather than into it.
func checkDrives(m *wells.Model) error {
	for _, w := range m.Wells() {
		if w.Props.Mode != wells.Production {
			continue
		}
		for _, d := range w.Drives {
			if _, ok := d.(*wells.BHPDrive); ok {
				return fmt.Errorf("rsrutil: well %s: BHP drive %s on a producer is not supported by the IMPES loop; use a flowRate drive", w.Name, d.Name())
			}
		}
	}
	return nil
}

// newPhases creates the phases listed in the "phases" section.
func newPhases(c rsr.Dict, m rsr.Mesh) ([]*rsr.Phase, error) {
	pcfg, err := c.Sub("phases")
	if err != nil {
		return nil, err
	}
	names, err := pcfg.Strings("names")
	if err != nil {
		return nil, fmt.Errorf("rsrutil: phases: %v", err)
	}
	if len(names) != 2 {
		return nil, fmt.Errorf("rsrutil: %d phases: %w", len(names), rsr.ErrNotImplemented)
	}
	phases := make([]*rsr.Phase, len(names))
	for i, name := range names {
		cfg, err := pcfg.Sub(name)
		if err != nil {
			return nil, fmt.Errorf("rsrutil: phases: %v", err)
		}
		var fm rsr.FVFModel
		typ, err := cfg.StringDefault("phaseType", "incompressible")
		if err != nil {
			return nil, err
		}
		if typ == "blackoil" || cfg.Has("FVFModel") {
			f, err := fvf.New(name, cfg, m.NCells())
			if err != nil {
				return nil, err
			}
			fm = f
		}
		if phases[i], err = rsr.NewPhase(name, cfg, m, fm); err != nil {
			return nil, err
		}
	}
	return phases, nil
}

// initialConditions sets the initial pressure and the canonical phase
// saturation from the "initial" section. The other phase takes the
// complement.
func initialConditions(c rsr.Dict, s *rsr.Simulation) error {
	icfg, err := c.SubDefault("initial")
	if err != nil {
		return err
	}
	n := s.Mesh.NCells()
	if s.P, err = icfg.FieldDefault("pressure", 1.e5, n); err != nil {
		return fmt.Errorf("rsrutil: initial conditions: %v", err)
	}
	cp, op := s.Phases[0], s.Phases[1]
	if icfg.Has("alpha") {
		if cp.Alpha, err = icfg.Field("alpha", n); err != nil {
			return fmt.Errorf("rsrutil: initial conditions: %v", err)
		}
	}
	if cp.Alpha == nil {
		return fmt.Errorf("rsrutil: initial conditions: no saturation given for phase %s", cp.Name)
	}
	// The models hold on to the saturation slices, so they are filled in
	// place from here on.
	op.Alpha = make([]float64, n)
	for i, a := range cp.Alpha {
		if a < 0 || a > 1 {
			return fmt.Errorf("rsrutil: initial conditions: saturation in cell %d is %g but should be in [0, 1]", i, a)
		}
		op.Alpha[i] = 1 - a
	}
	return s.Rock.Correct(s.P)
}

// transport creates the relative permeability and capillary pressure
// models listed in the "transport" section, keyed by model name such as
// "krModel<water,oil>".
func (cs *Case) transport(c rsr.Dict) error {
	tcfg, err := c.Sub("transport")
	if err != nil {
		return err
	}
	for _, name := range tcfg.Keys() {
		cfg, err := tcfg.Sub(name)
		if err != nil {
			return fmt.Errorf("rsrutil: transport: %v", err)
		}
		base, _ := rsr.ParseModelName(name)
		switch base {
		case "krModel":
			if cs.Kr != nil {
				return fmt.Errorf("rsrutil: transport: more than one relative permeability model")
			}
			if cs.Kr, err = relperm.New(name, cfg, cs.Sim.Phases); err != nil {
				return err
			}
		case "pcModel":
			if cs.Pc != nil {
				return fmt.Errorf("rsrutil: transport: more than one capillary pressure model")
			}
			if cs.Pc, err = cappress.New(name, cfg, cs.Sim.Phases); err != nil {
				return err
			}
		default:
			return &rsr.UnknownTypeError{Family: "transport model", Type: base, Valid: []string{"krModel", "pcModel"}}
		}
	}
	if cs.Kr == nil {
		return fmt.Errorf("rsrutil: transport: a relative permeability model is required")
	}
	return nil
}

// fieldModels returns the constitutive models in the order they are
// corrected.
func (cs *Case) fieldModels() []rsr.FieldModel {
	o := []rsr.FieldModel{cs.Kr}
	if cs.Pc != nil {
		o = append(o, cs.Pc)
	}
	return o
}

// stepper returns the time stepper of the case, or nil if the time step
// is fixed.
func (cs *Case) stepper() rsr.TimeStepper {
	if cs.Controller == nil {
		return nil
	}
	return cs.Controller
}
