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

package relperm

import (
	"fmt"

	"github.com/spatialmodel/rsr"
	"github.com/spatialmodel/rsr/interpolation"
)

// Tabular is a two-phase relative permeability model interpolated from a
// table keyed by canonical phase saturation. Each table row holds
// [kr_c, kr_o, dkr_c/dS_c, dkr_o/dS_c].
type Tabular struct {
	*Base
	alpha []float64
	table interpolation.Table
}

func newTabular(b *Base, cfg rsr.Dict, phases []*rsr.Phase) (Model, error) {
	c, err := b.canonicalPhase(phases)
	if err != nil {
		return nil, err
	}
	tcfg, err := cfg.Sub("krData")
	if err != nil {
		return nil, fmt.Errorf("relperm: %s: %v", b.name, err)
	}
	t, err := interpolation.New(tcfg)
	if err != nil {
		return nil, fmt.Errorf("relperm: %s: %v", b.name, err)
	}
	return &Tabular{Base: b, alpha: c.Alpha, table: t}, nil
}

// Correct interpolates the relative permeabilities and their derivatives
// at the canonical phase saturation.
func (m *Tabular) Correct() error {
	kr1, kr2, dkr1, dkr2 := m.twoPhaseFields()
	for i, s := range m.alpha {
		v, err := m.table.Interpolate(s)
		if err != nil {
			return fmt.Errorf("relperm: %s: cell %d: %v", m.name, i, err)
		}
		if len(v) < 4 {
			return fmt.Errorf("relperm: %s: table has %d values per row but needs 4", m.name, len(v))
		}
		kr1[i], kr2[i], dkr1[i], dkr2[i] = v[0], v[1], v[2], v[3]
	}
	return nil
}
