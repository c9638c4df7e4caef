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
	"math"

	"github.com/spatialmodel/rsr"
)

// Peaceman is the Peaceman well model. The well index of a perforated cell
// is
//
//	J = 2π K h∥ / (ln(re/rw) + skin),   re = 0.14 sqrt(h1² + h2²)
//
// where h∥ is the cell size along the well bore, h1 and h2 are the cell
// sizes across it and rw is the well bore radius. Only isotropic rock is
// supported.
type Peaceman struct {
	phase *rsr.Phase
	rock  *rsr.Rock
	kr    rsr.FieldModel

	// h caches the cell sizes of the cells seen so far.
	h map[int]rsr.Vector
}

func newPeaceman(phase *rsr.Phase, cfg rsr.Dict, rock *rsr.Rock, kr rsr.FieldModel) (Describer, error) {
	if phase == nil || rock == nil {
		return nil, fmt.Errorf("wells: Peaceman well source needs a phase and a rock")
	}
	return &Peaceman{
		phase: phase,
		rock:  rock,
		kr:    kr,
		h:     make(map[int]rsr.Vector),
	}, nil
}

// Phase returns the name of the phase.
func (p *Peaceman) Phase() string { return p.phase.Name }

// cellSize returns the largest extent of any edge of cell along each axis.
func (p *Peaceman) cellSize(m rsr.Mesh, cell int) rsr.Vector {
	if h, ok := p.h[cell]; ok {
		return h
	}
	var h rsr.Vector
	for _, e := range m.CellEdges(cell) {
		h.X = math.Max(h.X, math.Abs(e.X))
		h.Y = math.Max(h.Y, math.Abs(e.Y))
		h.Z = math.Max(h.Z, math.Abs(e.Z))
	}
	p.h[cell] = h
	return h
}

// WellIndex fills out with the well index of each of cells. Well indices
// are cached in sp.
func (p *Peaceman) WellIndex(out []float64, sp *SourceProperties, cells []int) error {
	if err := checkLen(out, cells); err != nil {
		return err
	}
	if p.rock.Kind != rsr.Isotropic {
		return fmt.Errorf("wells: Peaceman equivalent radius for %v rock: %w", p.rock.Kind, rsr.ErrNotImplemented)
	}
	a1, a2, par := sp.Orientation.axes()
	for i, c := range cells {
		if j, ok := sp.wellIndex[c]; ok {
			out[i] = j
			continue
		}
		h := p.cellSize(sp.Mesh, c)
		h1, h2 := h.Component(a1), h.Component(a2)
		re := 0.14 * math.Sqrt(h1*h1+h2*h2)
		den := math.Log(re/sp.Radius) + sp.Skin
		if den <= 0 {
			return fmt.Errorf("wells: well %s: cell %d: ln(re/rw)+skin=%g but should be >0", sp.Name, c, den)
		}
		j := 2 * math.Pi * p.rock.K[c] * h.Component(par) / den
		sp.wellIndex[c] = j
		out[i] = j
	}
	return nil
}

// mobility fills out with J*kr/μ for each of cells.
func (p *Peaceman) mobility(out []float64, sp *SourceProperties, cells []int) error {
	if err := p.WellIndex(out, sp, cells); err != nil {
		return err
	}
	var kr []float64
	if p.kr != nil {
		var err error
		if kr, err = p.kr.Field(rsr.KrName(p.phase.Name)); err != nil {
			return fmt.Errorf("wells: well %s: %v", sp.Name, err)
		}
	}
	for i, c := range cells {
		if kr != nil {
			out[i] *= kr[c]
		}
		out[i] /= p.phase.Mu[c]
	}
	return nil
}

// Coeff0 fills out with -J*kr/μ.
func (p *Peaceman) Coeff0(out []float64, sp *SourceProperties, cells []int) error {
	if err := p.mobility(out, sp, cells); err != nil {
		return err
	}
	for i := range out {
		out[i] = -out[i]
	}
	return nil
}

// Coeff1 fills out with J*kr/μ.
func (p *Peaceman) Coeff1(out []float64, sp *SourceProperties, cells []int) error {
	return p.mobility(out, sp, cells)
}

// Coeff2 fills out with the hydrostatic correction J*ρ|g|(d - dBH),
// where d is the depth of the cell centre along gravity and dBH is the
// depth of the deepest perforated cell.
func (p *Peaceman) Coeff2(out []float64, sp *SourceProperties, cells []int) error {
	if sp.Gravity.Mag() == 0 {
		if err := checkLen(out, cells); err != nil {
			return err
		}
		for i := range out {
			out[i] = 0
		}
		return nil
	}
	if err := p.WellIndex(out, sp, cells); err != nil {
		return err
	}
	dBH := sp.BottomHoleDepth()
	for i, c := range cells {
		d, g := sp.depth(c)
		out[i] *= p.phase.Rho[c] * g * (d - dBH)
	}
	return nil
}
