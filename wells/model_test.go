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
	"errors"
	"testing"

	"github.com/kr/pretty"
	"github.com/spatialmodel/rsr"
)

func testModelConfig() rsr.Dict {
	return rsr.Dict{
		"wellModel": "Peaceman",
		"wells": []rsr.Dict{
			{
				"name":          "inj",
				"groups":        []string{"injectors"},
				"operationMode": "injection",
				"injectedPhase": "water",
				"radius":        0.1,
				"orientation":   "vertical",
				"perforations":  []rsr.Dict{{"type": "cellIDs", "cells": []int{0, 1}}},
				"imposedDrives": []rsr.Dict{{"type": "BHP", "values": [][]float64{{0, 2.e5}}}},
			},
			{
				"name":          "prod",
				"groups":        []string{"producers"},
				"operationMode": "production",
				"radius":        0.1,
				"skin":          1,
				"perforations": []rsr.Dict{
					{"type": "box", "min": []float64{70, 0, 0}, "max": []float64{100, 1, 1}},
				},
				"imposedDrives": []rsr.Dict{
					{"type": "flowRate", "phase": "oil", "values": [][]float64{{0, 1.e-6}}},
				},
			},
		},
	}
}

func TestModel(t *testing.T) {
	env := testEnv(t)
	m, err := NewModel("wells", testModelConfig(), env)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Wells()) != 2 {
		t.Fatalf("have %d wells, want 2", len(m.Wells()))
	}
	if diff := pretty.Diff(m.Groups(), []string{"injectors", "producers"}); len(diff) != 0 {
		t.Error(diff)
	}
	prod, err := m.Group("producers")
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(prod[0].Props.Cells, []int{7, 8, 9}); len(diff) != 0 {
		t.Errorf("producer cells: %v", diff)
	}
	if _, err := m.Group("defaultGrp"); err == nil {
		t.Error("expected an error for a missing group")
	}

	p := testPressure(10)
	if err := m.Correct(0, p); err != nil {
		t.Fatal(err)
	}
	oil1, err := m.ExplicitSource("oil", p)
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, c := range []int{7, 8, 9} {
		sum += oil1[c]
	}
	if different(sum, -1.e-6, 1.e-8) {
		t.Errorf("producer oil rate: have %g, want -1e-6", sum)
	}
	water, err := m.ExplicitSource("water", p)
	if err != nil {
		t.Fatal(err)
	}
	// The injector pressure is above the reservoir pressure.
	for _, c := range []int{1} {
		if water[c] <= 0 {
			t.Errorf("injection rate in cell %d is %g but should be >0", c, water[c])
		}
	}
	for _, c := range []int{2, 3, 4, 5, 6, 7, 8, 9} {
		if water[c] != 0 {
			t.Errorf("cell %d has water rate %g but no water well", c, water[c])
		}
	}

	// The matrices are cleared before each correction.
	if err := m.Correct(0, p); err != nil {
		t.Fatal(err)
	}
	oil2, err := m.ExplicitSource("oil", p)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(oil1, oil2); len(diff) != 0 {
		t.Errorf("repeated correction: %v", diff)
	}

	if _, err := m.Matrix("gas"); err == nil {
		t.Error("expected an error for a missing phase")
	}
	var _ rsr.WellSource = m
}

func TestModelNoWells(t *testing.T) {
	env := testEnv(t)
	m, err := NewModel("wells", rsr.Dict{"wellModel": "Peaceman"}, env)
	if err != nil {
		t.Fatal(err)
	}
	p := testPressure(10)
	if err := m.Correct(0, p); err != nil {
		t.Fatal(err)
	}
	q, err := m.ExplicitSource("water", p)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range q {
		if v != 0 {
			t.Errorf("cell %d: rate %g", i, v)
		}
	}
}

func TestModelErrors(t *testing.T) {
	env := testEnv(t)

	overlap := testModelConfig()
	ws := overlap["wells"].([]rsr.Dict)
	ws[1]["perforations"] = []rsr.Dict{{"type": "cellIDs", "cells": []int{1, 2}}}

	duplicate := testModelConfig()
	ws = duplicate["wells"].([]rsr.Dict)
	ws[1]["name"] = "inj"

	noName := testModelConfig()
	ws = noName["wells"].([]rsr.Dict)
	delete(ws[0], "name")

	badPerf := testModelConfig()
	ws = badPerf["wells"].([]rsr.Dict)
	ws[0]["perforations"] = []interface{}{"cellIDs"}

	badDrive := testModelConfig()
	ws = badDrive["wells"].([]rsr.Dict)
	ws[0]["imposedDrives"] = []rsr.Dict{{"type": "THP", "values": [][]float64{{0, 1}}}}

	badWell := testModelConfig()
	ws = badWell["wells"].([]rsr.Dict)
	ws[0]["type"] = "multiSegment"

	for _, tc := range []struct {
		name string
		cfg  rsr.Dict
	}{
		{name: "overlap", cfg: overlap},
		{name: "duplicate", cfg: duplicate},
		{name: "no name", cfg: noName},
		{name: "perforation", cfg: badPerf},
		{name: "drive", cfg: badDrive},
		{name: "well type", cfg: badWell},
		{name: "model type", cfg: rsr.Dict{"wellModel": "Babu"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewModel("wells", tc.cfg, env); err == nil {
				t.Error("expected an error")
			}
		})
	}

	_, err := NewModel("wells", badDrive, env)
	var ute *rsr.UnknownTypeError
	if !errors.As(err, &ute) || ute.Family != "drive" {
		t.Errorf("want an unknown drive type error, have %v", err)
	}
}
