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
	"testing"

	"github.com/kr/pretty"
	"github.com/spatialmodel/rsr"
)

func TestPerforations(t *testing.T) {
	m, err := rsr.NewBlockMesh(&rsr.BlockMeshConfig{Nx: 10, Ny: 1, Nz: 1, Dx: 10, Dy: 1, Dz: 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name string
		cfgs []rsr.Dict
		want []int
	}{
		{
			name: "cellIDs",
			cfgs: []rsr.Dict{{"type": "cellIDs", "cells": []int{5, 2}}},
			want: []int{2, 5},
		},
		{
			name: "box",
			cfgs: []rsr.Dict{{"type": "box", "min": []float64{0, 0, 0}, "max": []float64{30, 1, 1}}},
			want: []int{0, 1, 2},
		},
		{
			name: "expression",
			cfgs: []rsr.Dict{{"type": "expression", "expression": "x > 30 && x < 60"}},
			want: []int{3, 4, 5},
		},
		{
			name: "expression index",
			cfgs: []rsr.Dict{{"type": "expression", "expression": "i >= 8"}},
			want: []int{8, 9},
		},
		{
			name: "polygon",
			cfgs: []rsr.Dict{{"type": "polygon", "x": []float64{0, 20, 20, 0}, "y": []float64{0, 0, 1, 1}}},
			want: []int{0, 1},
		},
		{
			// The centre of cell 2 is on the polygon edge.
			name: "polygon edge",
			cfgs: []rsr.Dict{{"type": "polygon", "x": []float64{0, 25, 25, 0}, "y": []float64{0, 0, 1, 1}}},
			want: []int{0, 1, 2},
		},
		{
			name: "polygon depth",
			cfgs: []rsr.Dict{{"type": "polygon", "x": []float64{0, 25, 25, 0}, "y": []float64{0, 0, 1, 1}, "zMin": 2}},
			want: []int{},
		},
		{
			name: "union",
			cfgs: []rsr.Dict{
				{"type": "cellIDs", "cells": []int{1, 9}},
				{"type": "box", "min": []float64{0, 0, 0}, "max": []float64{30, 1, 1}},
			},
			want: []int{0, 1, 2, 9},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			have, err := Perforations(tc.cfgs, m)
			if err != nil {
				t.Fatal(err)
			}
			if diff := pretty.Diff(have, tc.want); len(diff) != 0 {
				t.Error(diff)
			}
		})
	}
}

func TestPerforationErrors(t *testing.T) {
	m, err := rsr.NewBlockMesh(&rsr.BlockMeshConfig{Nx: 10, Ny: 1, Nz: 1, Dx: 10, Dy: 1, Dz: 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name string
		cfg  rsr.Dict
	}{
		{name: "no type", cfg: rsr.Dict{"cells": []int{1}}},
		{name: "bad type", cfg: rsr.Dict{"type": "sphere"}},
		{name: "outside", cfg: rsr.Dict{"type": "cellIDs", "cells": []int{10}}},
		{name: "box dims", cfg: rsr.Dict{"type": "box", "min": []float64{0, 0}, "max": []float64{1, 1, 1}}},
		{name: "bad expression", cfg: rsr.Dict{"type": "expression", "expression": "x >"}},
		{name: "not boolean", cfg: rsr.Dict{"type": "expression", "expression": "x + 1"}},
		{name: "unknown variable", cfg: rsr.Dict{"type": "expression", "expression": "w > 1"}},
		{name: "polygon", cfg: rsr.Dict{"type": "polygon", "x": []float64{0, 1}, "y": []float64{0, 1}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Perforations([]rsr.Dict{tc.cfg}, m); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
