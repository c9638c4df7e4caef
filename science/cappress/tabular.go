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

package cappress

import (
	"fmt"

	"github.com/spatialmodel/rsr"
	"github.com/spatialmodel/rsr/interpolation"
)

// Tabular is a two-phase capillary pressure model interpolated from a table
// keyed by canonical phase saturation. Each row holds [pc, dpc/dS].
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
	tcfg, err := cfg.Sub("pcData")
	if err != nil {
		return nil, fmt.Errorf("cappress: %s: %v", b.name, err)
	}
	t, err := interpolation.New(tcfg)
	if err != nil {
		return nil, fmt.Errorf("cappress: %s: %v", b.name, err)
	}
	return &Tabular{Base: b, alpha: c.Alpha, table: t}, nil
}

// Correct interpolates the capillary pressure and its derivative at the
// canonical phase saturation.
func (m *Tabular) Correct() error {
	pc, dpc := m.pcFields()
	for i, s := range m.alpha {
		v, err := m.table.Interpolate(s)
		if err != nil {
			return fmt.Errorf("cappress: %s: cell %d: %v", m.name, i, err)
		}
		if len(v) < 2 {
			return fmt.Errorf("cappress: %s: table has %d values per row but needs 2", m.name, len(v))
		}
		pc[i], dpc[i] = v[0], v[1]
	}
	return nil
}
