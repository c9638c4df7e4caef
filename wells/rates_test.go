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

	"github.com/ctessum/unit"
	"github.com/spatialmodel/rsr"
)

func TestRateReporter(t *testing.T) {
	env := testEnv(t)
	m, err := NewModel("wells", testModelConfig(), env)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRateReporter(rsr.Dict{
		"conditions": "surface",
		"wells": []rsr.Dict{
			{"group": "producers", "phases": []string{"oil"}},
			{"group": "injectors", "wellNames": []string{"inj"}},
		},
	}, m, env.Phases)
	if err != nil {
		t.Fatal(err)
	}
	s := &rsr.Simulation{
		Mesh:   env.Mesh,
		Rock:   env.Rock,
		Phases: env.Phases,
		P:      testPressure(10),
		Time:   3,
		Step:   1,
	}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := m.Correct(s.Time, s.P); err != nil {
		t.Fatal(err)
	}
	if err := r.Report()(s); err != nil {
		t.Fatal(err)
	}
	if len(r.History) != 3 {
		t.Fatalf("have %d rates, want 3", len(r.History))
	}
	prod := r.History[0]
	if prod.Well != "prod" || prod.Phase != "oil" || prod.Time != 3 {
		t.Errorf("unexpected rate %+v", prod)
	}
	if different(prod.Rate.Value(), -1.e-6, 1.e-8) {
		t.Errorf("producer rate: have %g, want -1e-6", prod.Rate.Value())
	}
	if err := prod.Rate.Check(unit.Meter3PerSecond); err != nil {
		t.Error(err)
	}
	inj := r.History[1]
	if inj.Well != "inj" || inj.Phase != "water" || inj.Rate.Value() <= 0 {
		t.Errorf("unexpected injector rate %+v", inj)
	}
	if r.History[2].Phase != "oil" || r.History[2].Rate.Value() != 0 {
		t.Errorf("a water injector should not produce oil: %+v", r.History[2])
	}

	// A second report at the same step reuses the cached sources.
	rates, err := r.Rates(1, 3, s.P)
	if err != nil {
		t.Fatal(err)
	}
	if rates[0].Rate.Value() != prod.Rate.Value() {
		t.Errorf("cached rate: have %g, want %g", rates[0].Rate.Value(), prod.Rate.Value())
	}
}

func TestRateReporterErrors(t *testing.T) {
	env := testEnv(t)
	m, err := NewModel("wells", testModelConfig(), env)
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name string
		cfg  rsr.Dict
	}{
		{name: "conditions", cfg: rsr.Dict{"conditions": "standard", "wells": []rsr.Dict{}}},
		{name: "no wells", cfg: rsr.Dict{}},
		{name: "group", cfg: rsr.Dict{"wells": []rsr.Dict{{"group": "observers"}}}},
		{name: "well", cfg: rsr.Dict{"wells": []rsr.Dict{{"group": "producers", "wellNames": []string{"nope"}}}}},
		{name: "membership", cfg: rsr.Dict{"wells": []rsr.Dict{{"group": "producers", "wellNames": []string{"inj"}}}}},
		{name: "phase", cfg: rsr.Dict{"wells": []rsr.Dict{{"group": "producers", "phases": []string{"gas"}}}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewRateReporter(tc.cfg, m, env.Phases); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
