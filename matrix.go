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
	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a cell-centred linear system in LDU form, used to accumulate
// the well contributions to one phase's pressure equation. Row i of the
// system gives the volumetric rate into cell i:
//
//	q_i = Diag_i*p_i + Σ_f offdiag_f*p_other + Source_i
//
// so injection is positive and production negative. Flow-rate drives
// follow this convention for both operation modes. A BHP drive scales the
// Peaceman rate J(BHP-p) by the well's operation sign, so for a producer
// its rows hold the rate out of the reservoir instead.
//
// For internal face f, Lower[f] is the coefficient of p[neighbour] in the
// owner's row and Upper[f] is the coefficient of p[owner] in the
// neighbour's row. Wells touch few cells, so storage is sparse.
type Matrix struct {
	faces []Face
	n     int

	Diag, Source *sparse.SparseArray // indexed by cell
	Lower, Upper *sparse.SparseArray // indexed by internal face
}

// NewMatrix returns an empty matrix addressed by the internal faces of m.
func NewMatrix(m Mesh) *Matrix {
	mm := &Matrix{faces: m.InternalFaces(), n: m.NCells()}
	mm.Clear()
	return mm
}

// Clear resets all coefficients to zero.
func (m *Matrix) Clear() {
	m.Diag = sparse.ZerosSparse(m.n)
	m.Source = sparse.ZerosSparse(m.n)
	m.Lower = sparse.ZerosSparse(len(m.faces))
	m.Upper = sparse.ZerosSparse(len(m.faces))
}

// Size returns the number of rows in the matrix.
func (m *Matrix) Size() int { return m.n }

// Faces returns the internal faces addressing the off-diagonal coefficients.
func (m *Matrix) Faces() []Face { return m.faces }

// Diagonal returns whether the matrix has no off-diagonal coefficients.
func (m *Matrix) Diagonal() bool {
	for _, v := range m.Lower.Elements {
		if v != 0 {
			return false
		}
	}
	for _, v := range m.Upper.Elements {
		if v != 0 {
			return false
		}
	}
	return true
}

// Amul returns the matrix-vector product A*x, without boundary terms.
func (m *Matrix) Amul(x []float64) []float64 {
	y := make([]float64, m.n)
	for i, v := range m.Diag.Elements {
		y[i] += v * x[i]
	}
	for f, v := range m.Lower.Elements {
		y[m.faces[f].Owner] += v * x[m.faces[f].Neighbour]
	}
	for f, v := range m.Upper.Elements {
		y[m.faces[f].Neighbour] += v * x[m.faces[f].Owner]
	}
	return y
}

// Rate returns the volumetric rate into each cell implied by the matrix
// for pressure field p: A*p + source.
func (m *Matrix) Rate(p []float64) []float64 {
	var q []float64
	if m.Diagonal() {
		q = make([]float64, m.n)
		for i, v := range m.Diag.Elements {
			q[i] = v * p[i]
		}
	} else {
		q = m.Amul(p)
	}
	for i, v := range m.Source.Elements {
		q[i] += v
	}
	return q
}

// Dense returns the coefficients as a dense matrix and the source as a
// dense vector.
func (m *Matrix) Dense() (*mat.Dense, *mat.VecDense) {
	a := mat.NewDense(m.n, m.n, nil)
	b := mat.NewVecDense(m.n, nil)
	for i, v := range m.Diag.Elements {
		a.Set(i, i, a.At(i, i)+v)
	}
	for f, v := range m.Lower.Elements {
		o, n := m.faces[f].Owner, m.faces[f].Neighbour
		a.Set(o, n, a.At(o, n)+v)
	}
	for f, v := range m.Upper.Elements {
		o, n := m.faces[f].Owner, m.faces[f].Neighbour
		a.Set(n, o, a.At(n, o)+v)
	}
	for i, v := range m.Source.Elements {
		b.SetVec(i, v)
	}
	return a, b
}
