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

import "math"

// Vector is a 3-D vector.
type Vector struct {
	X, Y, Z float64
}

// Add returns v + v2.
func (v Vector) Add(v2 Vector) Vector { return Vector{v.X + v2.X, v.Y + v2.Y, v.Z + v2.Z} }

// Sub returns v - v2.
func (v Vector) Sub(v2 Vector) Vector { return Vector{v.X - v2.X, v.Y - v2.Y, v.Z - v2.Z} }

// Scale returns a*v.
func (v Vector) Scale(a float64) Vector { return Vector{a * v.X, a * v.Y, a * v.Z} }

// Dot returns the inner product of v and v2.
func (v Vector) Dot(v2 Vector) float64 { return v.X*v2.X + v.Y*v2.Y + v.Z*v2.Z }

// Mag returns the magnitude of v.
func (v Vector) Mag() float64 { return math.Sqrt(v.Dot(v)) }

// Component returns the i-th component of v (0=X, 1=Y, 2=Z).
func (v Vector) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("rsr: vector component out of range")
}

// Face is a mesh face. For internal faces Owner < Neighbour; boundary
// faces have Neighbour == -1. Area is the face area vector, pointing out
// of the owner cell.
type Face struct {
	Owner, Neighbour int
	Area             Vector
	Center           Vector
}

// Internal returns whether f connects two cells.
func (f Face) Internal() bool { return f.Neighbour >= 0 }

// Mesh is the finite-volume mesh consumed by the well and stability models.
type Mesh interface {
	// NCells returns the number of cells.
	NCells() int

	// CellCenters returns the cell centroids.
	CellCenters() []Vector

	// CellVolumes returns the cell volumes.
	CellVolumes() []float64

	// CellEdges returns the edge vectors of the given cell.
	CellEdges(cell int) []Vector

	// CellCells returns the indices of the cells that share a face with
	// the given cell.
	CellCells(cell int) []int

	// InternalFaces returns the faces between two cells, in LDU order:
	// sorted by owner, then by neighbour.
	InternalFaces() []Face

	// BoundaryFaces returns the non-empty boundary faces.
	BoundaryFaces() []Face
}

// Deltas returns the distance between the owner and neighbour centres
// of each internal face of m.
func Deltas(m Mesh) []float64 {
	c := m.CellCenters()
	faces := m.InternalFaces()
	o := make([]float64, len(faces))
	for i, f := range faces {
		o[i] = c[f.Neighbour].Sub(c[f.Owner]).Mag()
	}
	return o
}

// SurfaceSum sums the face values v (one per internal face) into the
// owner and neighbour cells of each face.
func SurfaceSum(m Mesh, v []float64) []float64 {
	o := make([]float64, m.NCells())
	for i, f := range m.InternalFaces() {
		o[f.Owner] += v[i]
		o[f.Neighbour] += v[i]
	}
	return o
}
