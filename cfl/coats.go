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

	"github.com/GaryBoone/GoStats/stats"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
)

// CoatsNo is the two-phase Coats stability number. With c the canonical
// and n the other phase, λ = kr/μ and S the canonical saturation, it
// combines the derivative of the fractional flow with respect to S, a
// gravity segregation term and, when a capillary pressure derivative is
// available, a capillary diffusion term:
//
//	Co = Δt/(φV) [ dF Σ_f|φ_f| + 2|dpc/dS| Σ_f K_f|S_f|/|δ_f| kr_c kr_n/(μ_c kr_n + μ_n kr_c) ]
type CoatsNo struct {
	name string
	sim  *rsr.Simulation
	kr   rsr.FieldModel
	pc   rsr.FieldModel

	krc, krn, dkrc, dkrn, dpc string

	// requirePc is set when the capillary field name is configured
	// explicitly, in which case the field must exist.
	requirePc bool

	// Geometric sums that do not change during a run.
	sumSfg    []float64 // Σ_f |S_f·g|
	sumKSfDel []float64 // Σ_f K_f|S_f|/|δ_f|

	co  []float64
	Log logrus.FieldLogger
}

func newCoatsNo(name string, cfg rsr.Dict, s Setup) (Method, error) {
	sim := s.Sim
	if len(sim.Phases) != 2 {
		return nil, fmt.Errorf("cfl: %s: Coats number needs 2 phases but there are %d: %w", name, len(sim.Phases), rsr.ErrNotImplemented)
	}
	if s.Kr == nil {
		return nil, fmt.Errorf("cfl: %s: Coats number needs a relative permeability model", name)
	}
	c, n := sim.Phases[0].Name, sim.Phases[1].Name
	fn, err := cfg.SubDefault("fieldNames")
	if err != nil {
		return nil, fmt.Errorf("cfl: %s: %v", name, err)
	}
	m := &CoatsNo{name: name, sim: sim, kr: s.Kr, pc: s.Pc, Log: logrus.StandardLogger()}
	for _, v := range []struct {
		key, def string
		v        *string
	}{
		{c + ".kr", c + ".kr", &m.krc},
		{n + ".kr", n + ".kr", &m.krn},
		{c + ".dkrdS", c + ".dkr/dS(" + c + ")", &m.dkrc},
		{n + ".dkrdS", n + ".dkr/dS(" + c + ")", &m.dkrn},
		{"dpc", c + ".dpc/dS(" + c + ")", &m.dpc},
	} {
		if *v.v, err = fn.StringDefault(v.key, v.def); err != nil {
			return nil, fmt.Errorf("cfl: %s: %v", name, err)
		}
	}
	m.requirePc = fn.Has("dpc")

	mesh := sim.Mesh
	nc := mesh.NCells()
	m.sumSfg = make([]float64, nc)
	for _, f := range mesh.InternalFaces() {
		v := math.Abs(f.Area.Dot(sim.Gravity))
		m.sumSfg[f.Owner] += v
		m.sumSfg[f.Neighbour] += v
	}
	for _, f := range mesh.BoundaryFaces() {
		m.sumSfg[f.Owner] += math.Abs(f.Area.Dot(sim.Gravity))
	}
	kf := sim.Rock.FaceK(mesh)
	d := rsr.Deltas(mesh)
	t := make([]float64, len(kf))
	for i, f := range mesh.InternalFaces() {
		t[i] = kf[i] * f.Area.Mag() / d[i]
	}
	m.sumKSfDel = rsr.SurfaceSum(mesh, t)
	m.co = make([]float64, nc)
	return m, nil
}

// CFLNo returns the Courant number of each cell.
func (m *CoatsNo) CFLNo() []float64 { return m.co }

func (m *CoatsNo) fields(names ...string) ([][]float64, error) {
	o := make([][]float64, len(names))
	for i, n := range names {
		var err error
		if o[i], err = m.kr.Field(n); err != nil {
			return nil, fmt.Errorf("cfl: %s: %v", m.name, err)
		}
	}
	return o, nil
}

// hasField returns whether fm provides a field called name. Models that
// do not list their fields are assumed to provide it.
func hasField(fm rsr.FieldModel, name string) bool {
	l, ok := fm.(interface{ FieldNames() []string })
	if !ok {
		return true
	}
	for _, n := range l.FieldNames() {
		if n == name {
			return true
		}
	}
	return false
}

// Correct recomputes the Coats number for time step dt.
func (m *CoatsNo) Correct(dt float64) error {
	f, err := m.fields(m.krc, m.krn, m.dkrc, m.dkrn)
	if err != nil {
		return err
	}
	krc, krn, dkrc, dkrn := f[0], f[1], f[2], f[3]
	var dpc []float64
	if m.pc != nil && (m.requirePc || hasField(m.pc, m.dpc)) {
		if dpc, err = m.pc.Field(m.dpc); err != nil {
			return fmt.Errorf("cfl: %s: %v", m.name, err)
		}
	}

	sim := m.sim
	cp, np := sim.Phases[0], sim.Phases[1]
	magPhi := make([]float64, len(cp.Phi))
	for i := range magPhi {
		magPhi[i] = math.Abs(cp.Phi[i] + np.Phi[i])
	}
	sumPhi := rsr.SurfaceSum(sim.Mesh, magPhi)
	vol := sim.Mesh.CellVolumes()

	for i := range m.co {
		muc, mun := cp.Mu[i], np.Mu[i]
		muRatio := muc / mun
		symm := muRatio*krn[i]*krn[i] + 2*krc[i]*krn[i] + krc[i]*krc[i]/muRatio
		dPhi := (dkrc[i]*krn[i] - dkrn[i]*krc[i]) / symm
		dPhi -= sim.Rock.KMag(i) * (np.Rho[i] - cp.Rho[i]) *
			m.sumSfg[i] / (sumPhi[i] + rsr.VSmall) *
			(krn[i]*krn[i]*dkrc[i]/mun + krc[i]*krc[i]*dkrn[i]/muc) / symm
		co := dt / sim.Rock.Porosity[i] * dPhi * sumPhi[i]
		if dpc != nil {
			co += dt / sim.Rock.Porosity[i] * 2 * math.Abs(dpc[i]) * m.sumKSfDel[i] *
				krn[i] * krc[i] / (muc*krn[i] + mun*krc[i])
		}
		m.co[i] = co / vol[i]
	}
	m.Log.WithFields(logrus.Fields{
		"method": "CoatsNo",
		"mean":   stats.StatsMean(m.co),
		"max":    stats.StatsMax(m.co),
	}).Info("CFL number")
	return nil
}
