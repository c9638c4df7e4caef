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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/spatialmodel/rsr"
)

func TestOutputter(t *testing.T) {
	dir, err := ioutil.TempDir("", "rsr_output")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	m, err := rsr.NewBlockMesh(&rsr.BlockMeshConfig{Nx: 3, Ny: 1, Nz: 1, Dx: 10, Dy: 1, Dz: 1})
	if err != nil {
		t.Fatal(err)
	}
	rock, err := rsr.NewRock("rock", rsr.Dict{"porosity": 0.2, "permeability": 1.e-12}, 3)
	if err != nil {
		t.Fatal(err)
	}
	s := &rsr.Simulation{
		Mesh: m,
		Rock: rock,
		Phases: []*rsr.Phase{
			{Name: "water", Alpha: []float64{0.2, 0.3, 0.4}},
			{Name: "oil", Alpha: []float64{0.8, 0.7, 0.6}},
		},
		P: []float64{3, 2, 1},
	}
	path := filepath.Join(dir, "out.ncf")
	o := NewOutputter(path, 0)
	if err := o.Init()(s); err != nil {
		t.Fatal(err)
	}
	s.Time = 10
	s.P = []float64{6, 5, 4}
	s.Phases[0].Alpha = []float64{0.5, 0.5, 0.5}
	if err := o.Output()(s); err != nil {
		t.Fatal(err)
	}
	if err := o.Close()(s); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		t.Fatal(err)
	}
	if l := ff.Header.Lengths("P"); l[0] != 2 || l[1] != 3 {
		t.Fatalf("P dimensions: have %v, want [2 3]", l)
	}

	x := make([]float64, 3)
	if _, err := ff.Reader("x", []int{0}, []int{3}).Read(x); err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{5, 15, 25} {
		if x[i] != want {
			t.Errorf("x[%d]: have %g, want %g", i, x[i], want)
		}
	}
	time := make([]float64, 2)
	if _, err := ff.Reader("time", []int{0}, []int{2}).Read(time); err != nil {
		t.Fatal(err)
	}
	if time[0] != 0 || time[1] != 10 {
		t.Errorf("time: have %v, want [0 10]", time)
	}
	for rec, want := range [][]float64{{3, 2, 1}, {6, 5, 4}} {
		p := make([]float64, 3)
		if _, err := ff.Reader("P", []int{rec, 0}, []int{rec + 1, 0}).Read(p); err != nil {
			t.Fatal(err)
		}
		for i := range p {
			if p[i] != want[i] {
				t.Errorf("record %d: P[%d] = %g, want %g", rec, i, p[i], want[i])
			}
		}
	}
	w := make([]float64, 3)
	if _, err := ff.Reader("water.alpha", []int{1, 0}, []int{2, 0}).Read(w); err != nil {
		t.Fatal(err)
	}
	if w[0] != 0.5 || w[2] != 0.5 {
		t.Errorf("water.alpha record 1: have %v", w)
	}
}
