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
	"math"

	"github.com/spatialmodel/rsr"
)

// BrooksCorey is a two-phase capillary pressure model:
//
//	pc = pc0 Sn^-n,  Sn = (S-PcMin)/(PcMax-PcMin)
//
// where S is the canonical phase saturation. It is undefined for
// S <= PcMin.
type BrooksCorey struct {
	*Base
	alpha []float64

	sMin, sMax, pc0, n []float64
}

func newBrooksCorey(b *Base, cfg rsr.Dict, phases []*rsr.Phase) (Model, error) {
	c, err := b.canonicalPhase(phases)
	if err != nil {
		return nil, err
	}
	m := &BrooksCorey{Base: b, alpha: c.Alpha}
	for _, p := range []struct {
		key string
		v   *[]float64
	}{
		{key: c.Name + ".alpha.PcMin", v: &m.sMin},
		{key: c.Name + ".alpha.PcMax", v: &m.sMax},
		{key: "pc0", v: &m.pc0},
		{key: "n", v: &m.n},
	} {
		if *p.v, err = cfg.Field(p.key, b.n); err != nil {
			return nil, fmt.Errorf("cappress: %s: %v", b.name, err)
		}
	}
	for i := range m.sMin {
		if m.sMax[i] <= m.sMin[i] {
			return nil, fmt.Errorf("cappress: %s: PcMax=%g is not greater than PcMin=%g in cell %d", b.name, m.sMax[i], m.sMin[i], i)
		}
	}
	return m, nil
}

// Correct recomputes the capillary pressure and its derivative. It
// returns ErrBelowPcMin if any cell's saturation is at or below PcMin.
func (m *BrooksCorey) Correct() error {
	pc, dpc := m.pcFields()
	for i, s := range m.alpha {
		if s <= m.sMin[i] {
			return fmt.Errorf("%w: phase %s has saturation %g in cell %d (minimum %g)",
				ErrBelowPcMin, m.canonical[0], s, i, m.sMin[i])
		}
		sLower := m.sMax[i] - m.sMin[i]
		sNorm := (s - m.sMin[i]) / sLower
		pc[i] = m.pc0[i] * math.Pow(sNorm, -m.n[i])
		dpc[i] = -m.n[i] * m.pc0[i] * math.Pow(sNorm, -m.n[i]-1) / sLower
	}
	return nil
}
