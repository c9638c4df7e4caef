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

package cfl

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
	"gonum.org/v1/gonum/floats"
)

// Controller chooses the IMPES time step. It limits both the Courant
// number computed by its Method and the change in canonical saturation
// per step. It implements rsr.TimeStepper.
type Controller struct {
	// MaxCo is the largest allowed Courant number.
	MaxCo float64

	// DSMax is the largest allowed change in saturation per step.
	DSMax float64

	// MaxDeltaT is the largest allowed time step [s].
	MaxDeltaT float64

	Method  Method
	Sim     *rsr.Simulation
	Wells   rsr.WellSource
	Reducer rsr.Reducer

	Log logrus.FieldLogger
}

// NewController creates a controller from the solution settings cfg, which
// hold "dSMax" (required), "maxCo" (default 1), "maxDeltaT" (default no
// limit) and the keys of the CFL method. wells may be nil when there are no
// wells.
func NewController(cfg rsr.Dict, s Setup, wells rsr.WellSource, r rsr.Reducer) (*Controller, error) {
	c := &Controller{Sim: s.Sim, Wells: wells, Reducer: r, Log: logrus.StandardLogger()}
	if c.Reducer == nil {
		c.Reducer = rsr.SingleProcess{}
	}
	var err error
	if c.DSMax, err = cfg.Float("dSMax"); err != nil {
		return nil, fmt.Errorf("cfl: could not read solution parameters: %v", err)
	}
	if c.DSMax <= 0 {
		return nil, fmt.Errorf("cfl: dSMax=%g but should be >0", c.DSMax)
	}
	if c.MaxCo, err = cfg.FloatDefault("maxCo", 1); err != nil {
		return nil, fmt.Errorf("cfl: %v", err)
	}
	if c.MaxCo <= 0 {
		return nil, fmt.Errorf("cfl: maxCo=%g but should be >0", c.MaxCo)
	}
	if c.MaxDeltaT, err = cfg.FloatDefault("maxDeltaT", math.MaxFloat64); err != nil {
		return nil, fmt.Errorf("cfl: %v", err)
	}
	if c.Method, err = New("CFL", cfg, s); err != nil {
		return nil, err
	}
	return c, nil
}

// DeltaTFromSaturation returns the time step that limits the change in
// saturation of a cell to DSMax, given the phase flux phi through each
// internal face, the phase rate q into each cell from wells and the
// porosity.
func (c *Controller) DeltaTFromSaturation(phi, q, porosity []float64) float64 {
	m := c.Sim.Mesh
	div := make([]float64, m.NCells())
	for f, face := range m.InternalFaces() {
		div[face.Owner] += phi[f]
		div[face.Neighbour] -= phi[f]
	}
	vol := m.CellVolumes()
	var dSdtMax float64
	for i := range div {
		src := 0.
		if q != nil {
			src = q[i]
		}
		dSdt := math.Abs(-div[i]+src) / (porosity[i] * vol[i])
		dSdtMax = math.Max(dSdtMax, dSdt)
	}
	return c.DSMax / (c.Reducer.Max(dSdtMax) + rsr.VSmall)
}

// DeltaT returns the next time step given the previous one, dt0. The step
// grows by at most 20% per step.
func (c *Controller) DeltaT(dt0 float64) (float64, error) {
	cp := c.Sim.Phases[0]
	var q []float64
	if c.Wells != nil {
		var err error
		if q, err = c.Wells.ExplicitSource(cp.Name, c.Sim.P); err != nil {
			return 0, err
		}
	}
	dtSat := c.DeltaTFromSaturation(cp.Phi, q, c.Sim.Rock.Porosity)

	if err := c.Method.Correct(dt0); err != nil {
		return 0, err
	}
	coMax := math.Inf(-1)
	if co := c.Method.CFLNo(); len(co) > 0 {
		coMax = floats.Max(co)
	}
	coMax = math.Max(c.Reducer.Max(coMax), 0)
	maxCFLDeltaT := c.MaxCo / (coMax + rsr.VSmall)
	good := math.Min(math.Min(maxCFLDeltaT, 1+0.1*maxCFLDeltaT), 1.2)
	dt := math.Min(dtSat, math.Min(good*dt0, c.MaxDeltaT))
	c.Log.WithFields(logrus.Fields{
		"CoMax":      coMax,
		"factor":     good,
		"dtAlphaEqn": dtSat,
		"dt":         dt,
	}).Info("time step")
	return dt, nil
}

var _ rsr.TimeStepper = &Controller{}
