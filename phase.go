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

import "fmt"

// FVFModel computes the reciprocal formation volume factor of a phase as
// a function of pressure.
type FVFModel interface {
	// Correct recomputes the model's fields for pressure field p.
	Correct(p []float64) error

	// RFVF returns the reciprocal formation volume factor, the ratio of
	// reservoir to surface density.
	RFVF() []float64

	// DRFVFdP returns the pressure derivative of RFVF.
	DRFVFdP() []float64
}

// Phase is a flowing fluid.
type Phase struct {
	Name string

	// BlackOil phases derive their density from the surface density and
	// the FVF model.
	BlackOil bool

	Alpha []float64 // saturation; nil for single-phase setups
	Rho   []float64 // density [kg/m³]
	Mu    []float64 // dynamic viscosity [Pa s]
	RhoSc []float64 // surface density [kg/m³]
	U     []Vector  // cell-centre Darcy velocity [m/s]
	Phi   []float64 // volumetric flux through each internal face [m³/s]

	FVF FVFModel
}

// NewPhase creates a phase on mesh m from its configuration.
// Keys: "phaseType" ("incompressible" or "blackoil"), "rho", "mu",
// optionally "rhoSc" and the initial saturation "alpha". fvf may be nil for
// incompressible phases.
func NewPhase(name string, cfg Dict, m Mesh, fvf FVFModel) (*Phase, error) {
	n := m.NCells()
	typ, err := cfg.StringDefault("phaseType", "incompressible")
	if err != nil {
		return nil, err
	}
	p := &Phase{Name: name, FVF: fvf}
	switch typ {
	case "incompressible":
	case "blackoil":
		p.BlackOil = true
		if fvf == nil {
			return nil, fmt.Errorf("rsr: phase %s: black-oil phases need an FVF model", name)
		}
	default:
		return nil, &UnknownTypeError{Family: "phase", Type: typ, Valid: []string{"blackoil", "incompressible"}}
	}
	if p.Rho, err = cfg.Field("rho", n); err != nil {
		return nil, fmt.Errorf("rsr: phase %s: %v", name, err)
	}
	if p.Mu, err = cfg.Field("mu", n); err != nil {
		return nil, fmt.Errorf("rsr: phase %s: %v", name, err)
	}
	for i, mu := range p.Mu {
		if mu <= 0 {
			return nil, fmt.Errorf("rsr: phase %s: viscosity in cell %d is %g but should be >0", name, i, mu)
		}
	}
	if cfg.Has("rhoSc") {
		if p.RhoSc, err = cfg.Field("rhoSc", n); err != nil {
			return nil, fmt.Errorf("rsr: phase %s: %v", name, err)
		}
	} else {
		p.RhoSc = append([]float64(nil), p.Rho...)
	}
	if cfg.Has("alpha") {
		if p.Alpha, err = cfg.Field("alpha", n); err != nil {
			return nil, fmt.Errorf("rsr: phase %s: %v", name, err)
		}
		for i, a := range p.Alpha {
			if a < 0 || a > 1 {
				return nil, fmt.Errorf("rsr: phase %s: saturation in cell %d is %g but should be in [0, 1]", name, i, a)
			}
		}
	}
	p.U = make([]Vector, n)
	p.Phi = make([]float64, len(m.InternalFaces()))
	return p, nil
}

// Correct updates the pressure-dependent properties of the phase.
func (p *Phase) Correct(pressure []float64) error {
	if p.FVF == nil {
		return nil
	}
	if err := p.FVF.Correct(pressure); err != nil {
		return fmt.Errorf("rsr: phase %s: %v", p.Name, err)
	}
	if p.BlackOil {
		r := p.FVF.RFVF()
		for i := range p.Rho {
			p.Rho[i] = p.RhoSc[i] * r[i]
		}
	}
	return nil
}
