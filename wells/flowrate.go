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

	"github.com/spatialmodel/rsr"
	"github.com/spatialmodel/rsr/interpolation"
	"gonum.org/v1/gonum/floats"
)

// FlowRateDrive imposes a scheduled total rate of one phase on a well.
// The bottom-hole pressure shared by the perforations is eliminated from
// the linearized rates using the constraint Σq_i = qt, which gives
//
//	q_i = c0_i p_i + c2_i + b_i (qt - Σc2 - Σ_j c0_j p_j),   b_i = c1_i / Σc1
//
// The couplings to perforated face neighbours become off-diagonal matrix
// coefficients. Couplings to the other perforated cells are evaluated
// at the current pressure and added to the source.
type FlowRateDrive struct {
	driveBase
	phase string
	src   Describer
	b     []float64
}

func newFlowRateDrive(name string, cfg rsr.Dict, schedule interpolation.Table, s DriveSetup) (Drive, error) {
	phase, err := cfg.StringDefault("phase", "water")
	if err != nil {
		return nil, fmt.Errorf("wells: drive %s: %v", name, err)
	}
	src, ok := s.Sources[phase]
	if !ok {
		return nil, fmt.Errorf("wells: drive %s works on phase %s but has no well source for it", name, phase)
	}
	if src.Phase() != phase {
		return nil, fmt.Errorf("wells: drive %s works on phase %s but got a well source for phase %s",
			name, phase, src.Phase())
	}
	d := &FlowRateDrive{
		driveBase: newDriveBase(name, schedule, s),
		phase:     phase,
		src:       src,
		b:         make([]float64, len(s.Props.Cells)),
	}
	return d, nil
}

// Correct adds the drive's contribution at time t and pressure p.
func (d *FlowRateDrive) Correct(t float64, p []float64) error {
	if d.Props.Skips(d.phase) {
		return nil
	}
	m, err := d.matrix(d.phase)
	if err != nil {
		return err
	}
	rate, err := d.imposed(t)
	if err != nil {
		return err
	}
	qt := d.Props.OperationSign() * rate
	cells := d.Props.Cells

	if len(cells) == 1 {
		m.Source.AddVal(qt, cells[0])
		return nil
	}

	if err := d.coefficients(d.src); err != nil {
		return err
	}
	a, c := d.c[0], d.c[2]
	if err := d.weights(); err != nil {
		return err
	}
	cSum := d.Reducer.Sum(floats.Sum(c))

	pos := make(map[int]int, len(cells))
	for i, cell := range cells {
		pos[cell] = i
	}
	for i, cell := range cells {
		m.Diag.AddVal(a[i]*(1-d.b[i]), cell)
		s := c[i] + d.b[i]*(qt-cSum)
		neighbours := d.Props.Mesh.CellCells(cell)
		for j, cellj := range cells {
			if j == i || containsInt(neighbours, cellj) {
				continue
			}
			s -= d.b[i] * a[j] * p[cellj]
		}
		m.Source.AddVal(s, cell)
	}
	faces := d.Props.Mesh.InternalFaces()
	for _, f := range d.Props.Faces {
		o, n := pos[faces[f].Owner], pos[faces[f].Neighbour]
		m.Lower.AddVal(-d.b[o]*a[n], f)
		m.Upper.AddVal(-d.b[n]*a[o], f)
	}
	return nil
}

// weights sets the rate allocation weights b from c1. If no perforation is
// mobile the well indices are used instead.
func (d *FlowRateDrive) weights() error {
	var bSum float64
	for _, v := range d.c[1] {
		bSum += v
	}
	bSum = d.Reducer.Sum(bSum)
	if bSum != 0 {
		for i, v := range d.c[1] {
			d.b[i] = v / bSum
		}
		return nil
	}
	wi, ok := d.src.(interface {
		WellIndex(out []float64, sp *SourceProperties, cells []int) error
	})
	if !ok {
		return fmt.Errorf("wells: drive %s: total mobility of well %s is zero", d.name, d.Props.Name)
	}
	if err := wi.WellIndex(d.b, d.Props, d.Props.Cells); err != nil {
		return err
	}
	var jSum float64
	for _, v := range d.b {
		jSum += v
	}
	jSum = d.Reducer.Sum(jSum)
	for i := range d.b {
		d.b[i] /= jSum
	}
	return nil
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
