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
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// WellSource provides the well contributions to each phase's pressure
// equation.
type WellSource interface {
	// Correct rebuilds the well matrices for time t and pressure p.
	Correct(t float64, p []float64) error

	// Matrix returns the well matrix for the named phase.
	Matrix(phase string) (*Matrix, error)

	// ExplicitSource returns the volumetric rate of the named phase into
	// each cell for pressure p.
	ExplicitSource(phase string, p []float64) ([]float64, error)
}

// FieldModel is a constitutive model that owns named per-cell fields.
type FieldModel interface {
	Correct() error
	Field(name string) ([]float64, error)
}

// TimeStepper chooses the next time step given the previous one.
type TimeStepper interface {
	DeltaT(dt0 float64) (float64, error)
}

// KrName returns the name of the relative permeability field of a phase.
func KrName(phase string) string { return phase + ".kr" }

// mobilities returns kr/μ for each phase. If kr is nil, kr is taken to be 1.
func (s *Simulation) mobilities(kr FieldModel) ([][]float64, error) {
	o := make([][]float64, len(s.Phases))
	for j, ph := range s.Phases {
		o[j] = make([]float64, len(ph.Mu))
		var k []float64
		if kr != nil {
			var err error
			if k, err = kr.Field(KrName(ph.Name)); err != nil {
				return nil, err
			}
		}
		for i, mu := range ph.Mu {
			if k == nil {
				o[j][i] = 1 / mu
			} else {
				o[j][i] = k[i] / mu
			}
		}
	}
	return o, nil
}

// CorrectWells returns a function that rebuilds the well matrices at the
// current time and pressure.
func CorrectWells(w WellSource) DomainManipulator {
	return func(s *Simulation) error {
		return w.Correct(s.Time, s.P)
	}
}

// SetTimeStep returns a function that sets the time step. If ts is nil the
// time step is left unchanged. The step is shortened so the simulation does
// not pass s.EndTime.
func SetTimeStep(ts TimeStepper) DomainManipulator {
	return func(s *Simulation) error {
		if ts != nil {
			dt, err := ts.DeltaT(s.Dt)
			if err != nil {
				return err
			}
			s.Dt = dt
		}
		if s.EndTime > 0 && s.Time+s.Dt > s.EndTime {
			s.Dt = s.EndTime - s.Time
		}
		if !(s.Dt > 0) {
			return fmt.Errorf("rsr: invalid time step %g at time %g", s.Dt, s.Time)
		}
		return nil
	}
}

// UpdateSaturation returns a function that advances the saturation of the
// canonical phase explicitly using the current face fluxes and well sources,
// and sets the saturation of the other phase to its complement.
func UpdateSaturation(w WellSource) DomainManipulator {
	return func(s *Simulation) error {
		if len(s.Phases) < 2 {
			return nil
		}
		if len(s.Phases) > 2 {
			return fmt.Errorf("rsr: explicit saturation update: %d phases: %w", len(s.Phases), ErrNotImplemented)
		}
		c, o := s.Phases[0], s.Phases[1]
		q, err := w.ExplicitSource(c.Name, s.P)
		if err != nil {
			return err
		}
		vol := s.Mesh.CellVolumes()
		poro := s.Rock.Porosity
		for f, face := range s.Mesh.InternalFaces() {
			q[face.Owner] -= c.Phi[f]
			q[face.Neighbour] += c.Phi[f]
		}
		for i := range c.Alpha {
			a := c.Alpha[i] + s.Dt*q[i]/(poro[i]*vol[i])
			c.Alpha[i] = math.Min(math.Max(a, 0), 1)
			o.Alpha[i] = 1 - c.Alpha[i]
		}
		return nil
	}
}

// CorrectProperties returns a function that updates the rock and phase
// properties for the current pressure and then corrects the given models
// in order.
func CorrectProperties(models ...FieldModel) DomainManipulator {
	return func(s *Simulation) error {
		if err := s.Rock.Correct(s.P); err != nil {
			return err
		}
		for _, ph := range s.Phases {
			if err := ph.Correct(s.P); err != nil {
				return err
			}
		}
		for _, m := range models {
			if m == nil {
				continue
			}
			if err := m.Correct(); err != nil {
				return err
			}
		}
		return nil
	}
}

// SolvePressure returns a function that solves the total pressure equation
//
//	Σ_f T_f λ_f (p_n - p_i) + Σ_α q_α,i = φ c V (p_i - p_i⁰)/Δt
//
// with the well rates q_α taken implicitly from w, and then updates the
// phase fluxes and velocities. Gravity and capillarity are not included
// in the pressure equation.
func SolvePressure(w WellSource, kr FieldModel) DomainManipulator {
	return func(s *Simulation) error {
		n := s.Mesh.NCells()
		faces := s.Mesh.InternalFaces()
		lam, err := s.mobilities(kr)
		if err != nil {
			return err
		}
		lamT := make([]float64, n)
		for _, l := range lam {
			for i, v := range l {
				lamT[i] += v
			}
		}
		trans := s.transmissibility()

		a := mat.NewDense(n, n, nil)
		b := mat.NewVecDense(n, nil)
		for f, face := range faces {
			i, j := face.Owner, face.Neighbour
			t := trans[f] * 0.5 * (lamT[i] + lamT[j])
			a.Set(i, i, a.At(i, i)-t)
			a.Set(j, j, a.At(j, j)-t)
			a.Set(i, j, a.At(i, j)+t)
			a.Set(j, i, a.At(j, i)+t)
		}
		if s.Dt > 0 {
			vol := s.Mesh.CellVolumes()
			for i, c := range s.Rock.Compressibility {
				acc := s.Rock.Porosity[i] * c * vol[i] / s.Dt
				a.Set(i, i, a.At(i, i)-acc)
				b.SetVec(i, b.AtVec(i)-acc*s.P[i])
			}
		}
		for _, ph := range s.Phases {
			m, err := w.Matrix(ph.Name)
			if err != nil {
				return err
			}
			am, src := m.Dense()
			a.Add(a, am)
			b.SubVec(b, src)
		}

		var x mat.VecDense
		if err := x.SolveVec(a, b); err != nil {
			if _, ok := err.(mat.Condition); !ok {
				return fmt.Errorf("rsr: solving pressure equation: %v", err)
			}
			s.Log.WithField("condition", float64(err.(mat.Condition))).Warn("pressure matrix is ill-conditioned")
		}
		for i := range s.P {
			s.P[i] = x.AtVec(i)
		}
		s.fluxes(trans, lam, lamT)
		return nil
	}
}

// transmissibility returns K_f|S_f|/|d_f| for each internal face.
func (s *Simulation) transmissibility() []float64 {
	kf := s.Rock.FaceK(s.Mesh)
	d := Deltas(s.Mesh)
	o := make([]float64, len(kf))
	for f, face := range s.Mesh.InternalFaces() {
		o[f] = kf[f] * face.Area.Mag() / d[f]
	}
	return o
}

// fluxes sets the phase face fluxes from the pressure field, distributing
// the total flux by the upwind fractional flow, and reconstructs the cell
// velocities.
func (s *Simulation) fluxes(trans []float64, lam [][]float64, lamT []float64) {
	faces := s.Mesh.InternalFaces()
	centers := s.Mesh.CellCenters()
	vol := s.Mesh.CellVolumes()
	for j, ph := range s.Phases {
		for i := range ph.U {
			ph.U[i] = Vector{}
		}
		for f, face := range faces {
			o, n := face.Owner, face.Neighbour
			phiT := trans[f] * 0.5 * (lamT[o] + lamT[n]) * (s.P[o] - s.P[n])
			up := o
			if phiT < 0 {
				up = n
			}
			ph.Phi[f] = phiT * lam[j][up] / (lamT[up] + VSmall)
			ph.U[o] = ph.U[o].Add(face.Center.Sub(centers[o]).Scale(ph.Phi[f] / vol[o]))
			ph.U[n] = ph.U[n].Sub(face.Center.Sub(centers[n]).Scale(ph.Phi[f] / vol[n]))
		}
	}
}

// AdvanceTime returns a function that moves the simulation forward by one
// time step and sets s.Done when s.EndTime is reached.
func AdvanceTime() DomainManipulator {
	return func(s *Simulation) error {
		s.Time += s.Dt
		s.Step++
		if s.EndTime > 0 && s.Time >= s.EndTime*(1-1e-12) {
			s.Done = true
		}
		return nil
	}
}

// Log returns a function that logs the simulation status after each step.
func Log() DomainManipulator {
	startTime := time.Now()
	stepTime := time.Now()
	return func(s *Simulation) error {
		s.Log.WithFields(logrus.Fields{
			"step":      s.Step,
			"time":      s.Time,
			"dt":        s.Dt,
			"walltime":  time.Since(startTime).Round(time.Millisecond),
			"Δwalltime": time.Since(stepTime).Round(time.Millisecond),
		}).Info("time step complete")
		stepTime = time.Now()
		return nil
	}
}
