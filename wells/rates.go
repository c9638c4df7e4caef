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
	"fmt"

	"github.com/ctessum/unit"
	"github.com/golang/groupcache/lru"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
)

// Rate is the actual flow rate of one phase through one well, positive
// into the reservoir.
type Rate struct {
	Time  float64
	Group string
	Well  string
	Phase string
	Rate  *unit.Unit // [m³/s]
}

// rateSelection is one entry of the reporter's "wells" list.
type rateSelection struct {
	group  string
	wells  []*Well
	phases []*rsr.Phase
}

// RateReporter computes the actual flow rate of the selected wells from
// the well matrices, at reservoir or surface conditions.
type RateReporter struct {
	model *Model
	sel   []rateSelection

	// Surface specifies that rates are converted to surface conditions by
	// multiplying by the reciprocal formation volume factor.
	Surface bool

	// History holds every reported rate.
	History []Rate

	cache *lru.Cache
	Log   logrus.FieldLogger
}

// NewRateReporter creates a rate reporter for the wells of m. cfg holds
// "conditions" ("reservoir", the default, or "surface") and a "wells" list
// whose entries hold a "group" (default "defaultGrp"), optional
// "wellNames" restricting the wells of the group, and optional "phases".
func NewRateReporter(cfg rsr.Dict, m *Model, phases []*rsr.Phase) (*RateReporter, error) {
	r := &RateReporter{model: m, Log: logrus.StandardLogger()}
	cond, err := cfg.StringDefault("conditions", "reservoir")
	if err != nil {
		return nil, fmt.Errorf("wells: rate reporter: %v", err)
	}
	switch cond {
	case "reservoir":
	case "surface":
		r.Surface = true
	default:
		return nil, &rsr.UnknownTypeError{Family: "rate conditions", Type: cond, Valid: []string{"reservoir", "surface"}}
	}
	entries, err := cfg.List("wells")
	if err != nil {
		return nil, fmt.Errorf("wells: rate reporter: %v", err)
	}
	for _, e := range entries {
		var s rateSelection
		if s.group, err = e.StringDefault("group", "defaultGrp"); err != nil {
			return nil, fmt.Errorf("wells: rate reporter: %v", err)
		}
		group, err := m.Group(s.group)
		if err != nil {
			return nil, fmt.Errorf("wells: rate reporter: %v", err)
		}
		s.wells = group
		if e.Has("wellNames") {
			names, err := e.Strings("wellNames")
			if err != nil {
				return nil, fmt.Errorf("wells: rate reporter: %v", err)
			}
			s.wells = nil
			for _, n := range names {
				w, err := m.Well(n)
				if err != nil {
					return nil, fmt.Errorf("wells: rate reporter: %v", err)
				}
				if !containsString(w.Groups, s.group) {
					return nil, fmt.Errorf("wells: rate reporter: well %s is not in group %s", n, s.group)
				}
				s.wells = append(s.wells, w)
			}
		}
		s.phases = phases
		if e.Has("phases") {
			names, err := e.Strings("phases")
			if err != nil {
				return nil, fmt.Errorf("wells: rate reporter: %v", err)
			}
			if s.phases, err = rsr.SelectPhases(names, phases); err != nil {
				return nil, fmt.Errorf("wells: rate reporter: %v", err)
			}
		}
		r.sel = append(r.sel, s)
	}
	r.cache = lru.New(2 * len(phases))
	return r, nil
}

// source returns the explicit source of ph for pressure p at the given
// step, computing it at most once per step.
func (r *RateReporter) source(ph *rsr.Phase, step int, p []float64) ([]float64, error) {
	key := fmt.Sprintf("%s@%d", ph.Name, step)
	if q, ok := r.cache.Get(key); ok {
		return q.([]float64), nil
	}
	q, err := r.model.ExplicitSource(ph.Name, p)
	if err != nil {
		return nil, err
	}
	if r.Surface && ph.FVF != nil {
		rfvf := ph.FVF.RFVF()
		for i := range q {
			q[i] *= rfvf[i]
		}
	}
	r.cache.Add(key, q)
	return q, nil
}

// Rates returns the rate of each selected well and phase for pressure p
// at the given step and time.
func (r *RateReporter) Rates(step int, t float64, p []float64) ([]Rate, error) {
	var o []Rate
	for _, s := range r.sel {
		for _, w := range s.wells {
			for _, ph := range s.phases {
				q, err := r.source(ph, step, p)
				if err != nil {
					return nil, err
				}
				var sum float64
				for _, c := range w.Props.Cells {
					sum += q[c]
				}
				o = append(o, Rate{
					Time:  t,
					Group: s.group,
					Well:  w.Name,
					Phase: ph.Name,
					Rate:  unit.New(sum, unit.Meter3PerSecond),
				})
			}
		}
	}
	return o, nil
}

// Report returns a function that records and logs the well rates after
// each time step.
func (r *RateReporter) Report() rsr.DomainManipulator {
	return func(s *rsr.Simulation) error {
		rates, err := r.Rates(s.Step, s.Time, s.P)
		if err != nil {
			return err
		}
		for _, rt := range rates {
			r.Log.WithFields(logrus.Fields{
				"time":  rt.Time,
				"group": rt.Group,
				"well":  rt.Well,
				"phase": rt.Phase,
			}).Infof("well rate %v", rt.Rate)
		}
		r.History = append(r.History, rates...)
		return nil
	}
}
