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
	"errors"
	"math"
	"testing"

	"github.com/spatialmodel/rsr"
	"github.com/spatialmodel/rsr/science/cappress"
	"github.com/spatialmodel/rsr/science/relperm"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

// testSetup returns a 10-cell 1-D water-oil simulation with water flowing
// in the +x direction and a corrected Brooks-Corey relative permeability
// model.
func testSetup(t *testing.T) Setup {
	m, err := rsr.NewBlockMesh(&rsr.BlockMeshConfig{Nx: 10, Ny: 1, Nz: 1, Dx: 10, Dy: 1, Dz: 1})
	if err != nil {
		t.Fatal(err)
	}
	rock, err := rsr.NewRock("rock", rsr.Dict{"porosity": 0.2, "permeability": 1.e-12}, m.NCells())
	if err != nil {
		t.Fatal(err)
	}
	alpha := make([]float64, m.NCells())
	oilAlpha := make([]float64, m.NCells())
	for i := range alpha {
		alpha[i] = 0.25 + float64(i)*0.06
		oilAlpha[i] = 1 - alpha[i]
	}
	water, err := rsr.NewPhase("water", rsr.Dict{"rho": 1000., "mu": 1.e-3, "alpha": alpha}, m, nil)
	if err != nil {
		t.Fatal(err)
	}
	oil, err := rsr.NewPhase("oil", rsr.Dict{"rho": 800., "mu": 5.e-3, "alpha": oilAlpha}, m, nil)
	if err != nil {
		t.Fatal(err)
	}
	for f := range water.Phi {
		water.Phi[f] = 2.e-6
		oil.Phi[f] = 1.e-6
	}
	kr, err := relperm.New("krModel<water,oil>", rsr.Dict{
		"type":           "BrooksCorey",
		"water.alphaIrr": 0.2,
		"oil.alphaRes":   0.1,
		"water.m":        2,
		"oil.m":          2,
		"water.krMax":    1.0,
		"oil.krMax":      0.9,
	}, []*rsr.Phase{water, oil})
	if err != nil {
		t.Fatal(err)
	}
	if err := kr.Correct(); err != nil {
		t.Fatal(err)
	}
	sim := &rsr.Simulation{
		Mesh:   m,
		Rock:   rock,
		Phases: []*rsr.Phase{water, oil},
		P:      make([]float64, m.NCells()),
		Dt:     100,
	}
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	return Setup{Sim: sim, Kr: kr}
}

func TestCoatsNo(t *testing.T) {
	s := testSetup(t)
	m, err := New("CFL", rsr.Dict{}, s)
	if err != nil {
		t.Fatal(err)
	}
	const dt = 100.
	if err := m.Correct(dt); err != nil {
		t.Fatal(err)
	}
	co := m.CFLNo()

	field := func(name string) []float64 {
		f, err := s.Kr.Field(name)
		if err != nil {
			t.Fatal(err)
		}
		return f
	}
	krc, krn := field("water.kr"), field("oil.kr")
	dkrc, dkrn := field("water.dkr/dS(water)"), field("oil.dkr/dS(water)")
	for _, i := range []int{0, 4, 9} {
		muRatio := 1.e-3 / 5.e-3
		symm := muRatio*krn[i]*krn[i] + 2*krc[i]*krn[i] + krc[i]*krc[i]/muRatio
		sumPhi := 6.e-6 // two faces of 3e-6 for interior cells
		if i == 0 || i == 9 {
			sumPhi = 3.e-6
		}
		want := dt / 0.2 * (dkrc[i]*krn[i] - dkrn[i]*krc[i]) / symm * sumPhi / 10
		if different(co[i], want, 1.e-10) {
			t.Errorf("cell %d: have %g, want %g", i, co[i], want)
		}
		if co[i] <= 0 {
			t.Errorf("cell %d: Coats number %g should be >0", i, co[i])
		}
	}
}

// pcTable is a capillary pressure model with fixed fields.
type pcTable struct{ rsr.FieldTable }

func (*pcTable) Correct() error { return nil }

func TestCoatsNoCapillary(t *testing.T) {
	s := testSetup(t)
	noPc, err := New("CFL", rsr.Dict{}, s)
	if err != nil {
		t.Fatal(err)
	}
	pc, err := cappress.New("pcModel<water,oil>", rsr.Dict{
		"type":              "BrooksCorey",
		"water.alpha.PcMin": 0.1,
		"water.alpha.PcMax": 0.95,
		"n":                 0.238,
		"pc0":               3.e4,
	}, s.Sim.Phases)
	if err != nil {
		t.Fatal(err)
	}
	if err := pc.Correct(); err != nil {
		t.Fatal(err)
	}
	s.Pc = pc
	withPc, err := New("CFL", rsr.Dict{}, s)
	if err != nil {
		t.Fatal(err)
	}
	if err := noPc.Correct(100); err != nil {
		t.Fatal(err)
	}
	if err := withPc.Correct(100); err != nil {
		t.Fatal(err)
	}
	for i := range noPc.CFLNo() {
		if withPc.CFLNo()[i] <= noPc.CFLNo()[i] {
			t.Errorf("cell %d: capillary term should increase the Coats number: %g <= %g",
				i, withPc.CFLNo()[i], noPc.CFLNo()[i])
		}
	}

	// A capillary pressure model without the derivative field adds no
	// capillary term.
	plain := new(pcTable)
	plain.Add("water.pc", s.Sim.Mesh.NCells())
	s.Pc = plain
	without, err := New("CFL", rsr.Dict{}, s)
	if err != nil {
		t.Fatal(err)
	}
	if err := without.Correct(100); err != nil {
		t.Fatal(err)
	}
	for i := range noPc.CFLNo() {
		if without.CFLNo()[i] != noPc.CFLNo()[i] {
			t.Errorf("cell %d: have %g, want %g", i, without.CFLNo()[i], noPc.CFLNo()[i])
		}
	}

	// A configured field name must exist.
	s.Pc = pc
	renamed, err := New("CFL", rsr.Dict{"fieldNames": rsr.Dict{"dpc": "water.dpc/dSS"}}, s)
	if err != nil {
		t.Fatal(err)
	}
	if err := renamed.Correct(100); err == nil {
		t.Error("expected an error for a missing capillary field")
	}
}

func TestCoatsNoErrors(t *testing.T) {
	s := testSetup(t)
	if _, err := New("CFL", rsr.Dict{"CFLMethod": "Courant"}, s); err == nil {
		t.Error("expected an error for an unknown method")
	}
	m, err := New("CFL", rsr.Dict{"fieldNames": rsr.Dict{"water.kr": "water.krr"}}, s)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Correct(1); err == nil {
		t.Error("expected an error for a missing kr field")
	}
	s.Sim.Phases = append(s.Sim.Phases, s.Sim.Phases[0])
	if _, err := New("CFL", rsr.Dict{}, s); !errors.Is(err, rsr.ErrNotImplemented) {
		t.Errorf("want ErrNotImplemented, have %v", err)
	}
	s.Sim.Phases = s.Sim.Phases[:2]
	if _, err := New("CFL", rsr.Dict{}, Setup{Sim: s.Sim}); err == nil {
		t.Error("expected an error without a relative permeability model")
	}
}
