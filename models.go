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
	"regexp"
	"strings"
)

var modelNameRegexp = regexp.MustCompile(`^(.*)<(.*)>$`)

// ParseModelName splits a model name of the form "krModel<water,oil>"
// into its base name and phase names. Names without a phase list return
// no phases.
func ParseModelName(name string) (base string, phases []string) {
	m := modelNameRegexp.FindStringSubmatch(name)
	if m == nil {
		return name, nil
	}
	for _, p := range strings.Split(m[2], ",") {
		if p = strings.TrimSpace(p); p != "" {
			phases = append(phases, p)
		}
	}
	return m[1], phases
}

// ModelPhases returns the phases a constitutive model with the given name
// and configuration applies to, taken from the name or, failing that,
// from the "phases" key, and its canonical phases, taken from the
// "canonicalPhases" key and defaulting to all but the last phase. The
// number of phases must equal arity.
func ModelPhases(name string, cfg Dict, arity int) (phases, canonical []string, err error) {
	if _, phases = ParseModelName(name); len(phases) == 0 {
		if phases, err = cfg.Strings("phases"); err != nil {
			return nil, nil, fmt.Errorf("rsr: model %s: %v", name, err)
		}
	}
	if len(phases) != arity {
		return nil, nil, fmt.Errorf("rsr: model %s is supposed to have %d phases but got %d", name, arity, len(phases))
	}
	if cfg.Has("canonicalPhases") {
		if canonical, err = cfg.Strings("canonicalPhases"); err != nil {
			return nil, nil, fmt.Errorf("rsr: model %s: %v", name, err)
		}
		for _, c := range canonical {
			if !contains(phases, c) {
				return nil, nil, fmt.Errorf("rsr: model %s: canonical phase %s is not one of %v", name, c, phases)
			}
		}
	} else {
		canonical = append([]string(nil), phases[:len(phases)-1]...)
	}
	return phases, canonical, nil
}

// SelectPhases returns the phases with the given names, in order.
func SelectPhases(names []string, phases []*Phase) ([]*Phase, error) {
	o := make([]*Phase, len(names))
	for i, n := range names {
		for _, p := range phases {
			if p.Name == n {
				o[i] = p
				break
			}
		}
		if o[i] == nil {
			return nil, fmt.Errorf("rsr: phase %s was not provided", n)
		}
	}
	return o, nil
}

func contains(s []string, v string) bool {
	for _, ss := range s {
		if ss == v {
			return true
		}
	}
	return false
}
