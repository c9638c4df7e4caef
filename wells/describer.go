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
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
)

// A Describer linearizes the well rate of one phase in each perforated
// cell as
//
//	q_i = c0_i*p_i + c1_i*BHP + c2_i
//
// where q_i is the volumetric rate into cell i. Each method fills out,
// which must have the same length as cells, with one coefficient per cell.
type Describer interface {
	// Phase returns the name of the phase the describer applies to.
	Phase() string

	Coeff0(out []float64, sp *SourceProperties, cells []int) error
	Coeff1(out []float64, sp *SourceProperties, cells []int) error
	Coeff2(out []float64, sp *SourceProperties, cells []int) error
}

// A DescriberConstructor creates a Describer for phase from its
// configuration. kr supplies the phase's relative permeability field and
// may be nil, in which case kr is taken to be 1.
type DescriberConstructor func(phase *rsr.Phase, cfg rsr.Dict, rock *rsr.Rock, kr rsr.FieldModel) (Describer, error)

var describers = map[string]DescriberConstructor{
	"Peaceman": newPeaceman,
}

// RegisterDescriber adds a well source type. It panics if typ is already
// registered.
func RegisterDescriber(typ string, c DescriberConstructor) {
	if _, ok := describers[typ]; ok {
		panic(fmt.Errorf("wells: well source type %s is already registered", typ))
	}
	describers[typ] = c
}

// DescriberTypes returns the registered well source types.
func DescriberTypes() []string {
	o := make([]string, 0, len(describers))
	for k := range describers {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

// NewDescriber creates the well source describer selected by the
// "wellSourceType" key of cfg, which defaults to "Peaceman".
func NewDescriber(phase *rsr.Phase, cfg rsr.Dict, rock *rsr.Rock, kr rsr.FieldModel) (Describer, error) {
	typ, err := cfg.StringDefault("wellSourceType", "Peaceman")
	if err != nil {
		return nil, fmt.Errorf("wells: %v", err)
	}
	c, ok := describers[typ]
	if !ok {
		return nil, &rsr.UnknownTypeError{Family: "well source", Type: typ, Valid: DescriberTypes()}
	}
	logrus.WithFields(logrus.Fields{"phase": phase.Name, "type": typ}).Debug("Selecting well source type")
	return c(phase, cfg, rock, kr)
}

func checkLen(out []float64, cells []int) error {
	if len(out) != len(cells) {
		return fmt.Errorf("wells: coefficient array has length %d but there are %d cells", len(out), len(cells))
	}
	return nil
}
