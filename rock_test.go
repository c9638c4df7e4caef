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
	"math"
	"testing"
)

func TestRockIsotropic(t *testing.T) {
	r, err := NewRock("rock", Dict{
		"porosity":          0.2,
		"compressibility":   1e-9,
		"referencePressure": 1e5,
		"permeability":      []interface{}{1.0, 3.0},
	}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != Isotropic || r.NCells() != 2 {
		t.Errorf("kind %v, %d cells", r.Kind, r.NCells())
	}
	if k := r.FaceK(line(t, 2)); len(k) != 1 || k[0] != 1.5 {
		t.Errorf("face permeability %v", k)
	}
	if err := r.Correct([]float64{1.1e5, 1e5}); err != nil {
		t.Fatal(err)
	}
	if different(r.Porosity[0], 0.2*(1+1e-5), 1e-12) || r.Porosity[1] != 0.2 {
		t.Errorf("porosity %v", r.Porosity)
	}
	// Corrections are relative to the initial porosity, not cumulative.
	if err := r.Correct([]float64{1.1e5, 1e5}); err != nil {
		t.Fatal(err)
	}
	if different(r.Porosity[0], 0.2*(1+1e-5), 1e-12) {
		t.Errorf("porosity after second correction %g", r.Porosity[0])
	}
	if err := r.Correct([]float64{1}); err == nil {
		t.Error("pressure of the wrong length should fail")
	}
}

func TestRockIncompressible(t *testing.T) {
	r, err := NewRock("rock", Dict{
		"porosity":        0.3,
		"compressibility": 1e-9,
		"incompressible":  true,
		"permeability":    1e-13,
	}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Correct([]float64{1e7, 1e7, 1e7}); err != nil {
		t.Fatal(err)
	}
	for i, p := range r.Porosity {
		if p != 0.3 {
			t.Errorf("cell %d: porosity %g", i, p)
		}
	}
}

func TestRockAnisotropic(t *testing.T) {
	r, err := NewRock("rock", Dict{
		"rockType":     "diagonalAnisotropic",
		"porosity":     0.2,
		"permeability": []interface{}{1.0, 2.0, 3.0},
	}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r.KMag(1) != 3 {
		t.Errorf("diagonal KMag %g", r.KMag(1))
	}
	if k := r.Directional(0, Vector{Y: 1}); k != 2 {
		t.Errorf("diagonal y permeability %g", k)
	}

	r, err = NewRock("rock", Dict{
		"rockType":     "anisotropic",
		"porosity":     0.2,
		"permeability": []interface{}{1.0, 0.5, 0.0, 0.5, 2.0, 0.0, 0.0, 0.0, 3.0},
	}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if r.KMag(0) != 3 {
		t.Errorf("full KMag %g", r.KMag(0))
	}
	n := Vector{X: 1, Y: 1}.Scale(1 / math.Sqrt2)
	if k := r.Directional(0, n); different(k, 2, 1e-12) {
		t.Errorf("full directional permeability %g", k)
	}
}

func TestNewRockErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  Dict
	}{
		{"type", Dict{"rockType": "granite", "porosity": 0.2, "permeability": 1.0}},
		{"porosity", Dict{"porosity": 1.2, "permeability": 1.0}},
		{"zero porosity", Dict{"porosity": 0.0, "permeability": 1.0}},
		{"no permeability", Dict{"porosity": 0.2}},
		{"components", Dict{"rockType": "diagonalAnisotropic", "porosity": 0.2, "permeability": []interface{}{1.0, 2.0}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewRock("rock", tc.cfg, 2); err == nil {
				t.Error("should have failed")
			}
		})
	}
	_, err := NewRock("rock", Dict{"rockType": "granite"}, 1)
	if _, ok := err.(*UnknownTypeError); !ok {
		t.Errorf("have %T, want *UnknownTypeError", err)
	}
}
