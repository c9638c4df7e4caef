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
	"math"

	"github.com/spatialmodel/rsr"
)

// BrooksCorey is a two-phase relative permeability model where, in terms of
// the canonical phase saturation S, the irreducible canonical saturation Scr
// and the residual saturation Sor of the other phase,
//
//	kr_c = krcMax ((S-Scr)/(1-Scr-Sor))^mc
//	kr_o = kroMax ((1-S-Sor)/(1-Scr-Sor))^mo
//
// Outside [Scr, 1-Sor] the immobile phase has kr = VSmall and the other is
// at its end point.
type BrooksCorey struct {
	*Base
	alpha []float64

	scr, sor, mc, mo, krcMax, kroMax []float64
}

func newBrooksCorey(b *Base, cfg rsr.Dict, phases []*rsr.Phase) (Model, error) {
	c, err := b.canonicalPhase(phases)
	if err != nil {
		return nil, err
	}
	o := b.otherPhase()
	m := &BrooksCorey{Base: b, alpha: c.Alpha}
	for _, p := range []struct {
		key string
		v   *[]float64
	}{
		{key: c.Name + ".alphaIrr", v: &m.scr},
		{key: o + ".alphaRes", v: &m.sor},
		{key: c.Name + ".m", v: &m.mc},
		{key: o + ".m", v: &m.mo},
		{key: c.Name + ".krMax", v: &m.krcMax},
		{key: o + ".krMax", v: &m.kroMax},
	} {
		if *p.v, err = cfg.Field(p.key, b.n); err != nil {
			return nil, fmt.Errorf("relperm: %s: %v", b.name, err)
		}
	}
	for i := range m.scr {
		if m.scr[i]+m.sor[i] >= 1 {
			return nil, fmt.Errorf("relperm: %s: %s + %s = %g in cell %d but should be <1",
				b.name, c.Name+".alphaIrr", o+".alphaRes", m.scr[i]+m.sor[i], i)
		}
	}
	return m, nil
}

// Correct recomputes the relative permeabilities and their derivatives
// from the canonical phase saturation.
func (m *BrooksCorey) Correct() error {
	kr1, kr2, dkr1, dkr2 := m.twoPhaseFields()
	for i, s := range m.alpha {
		scr, sor := m.scr[i], m.sor[i]
		mc, mo := m.mc[i], m.mo[i]
		krcMax, kroMax := m.krcMax[i], m.kroMax[i]
		switch {
		case s < scr:
			kr1[i], kr2[i] = rsr.VSmall, kroMax
			dkr1[i], dkr2[i] = 0, 0
		case s > 1-sor:
			kr1[i], kr2[i] = krcMax, rsr.VSmall
			dkr1[i], dkr2[i] = 0, 0
		default:
			sceUpper := s - scr
			soeUpper := 1 - s - sor
			sLower := 1 - scr - sor
			kr1[i] = krcMax * math.Pow(sceUpper/sLower, mc)
			kr2[i] = kroMax * math.Pow(soeUpper/sLower, mo)
			if sceUpper != 0 && soeUpper != 0 {
				dkr1[i] = mc * kr1[i] / sceUpper
				dkr2[i] = -mo * kr2[i] / soeUpper
			} else {
				// At the end points the closed form is 0/0.
				dkr1[i] = mc * krcMax * math.Pow(sceUpper/sLower, mc-1) / sLower
				dkr2[i] = -mo * kroMax * math.Pow(soeUpper/sLower, mo-1) / sLower
			}
		}
	}
	return nil
}
