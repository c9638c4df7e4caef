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

import "fmt"

// BlockMeshConfig holds the parameters of a Cartesian block mesh.
type BlockMeshConfig struct {
	Nx, Ny, Nz int     // number of cells in each direction
	Dx, Dy, Dz float64 // cell edge lengths [m]
	Xo, Yo, Zo float64 // coordinates of the lower-left-bottom corner [m]
}

// Check returns an error if the configuration is invalid.
func (c *BlockMeshConfig) Check() error {
	for _, v := range []struct {
		name string
		n    int
	}{{"Nx", c.Nx}, {"Ny", c.Ny}, {"Nz", c.Nz}} {
		if v.n <= 0 {
			return fmt.Errorf("parsing mesh configuration: %s=%d but should be >0", v.name, v.n)
		}
	}
	for _, v := range []struct {
		name string
		d    float64
	}{{"Dx", c.Dx}, {"Dy", c.Dy}, {"Dz", c.Dz}} {
		if v.d <= 0 {
			return fmt.Errorf("parsing mesh configuration: %s=%g but should be >0", v.name, v.d)
		}
	}
	return nil
}

// BlockMesh is a structured Cartesian mesh. Cell (i, j, k) has index
// i + Nx*(j + Ny*k). Directions with a single cell are empty: their
// boundary faces carry no flux and are not reported as boundary faces.
type BlockMesh struct {
	cfg       BlockMeshConfig
	centers   []Vector
	volumes   []float64
	faces     []Face
	boundary  []Face
	cellCells [][]int
}

// NewBlockMesh creates a Cartesian block mesh.
func NewBlockMesh(c *BlockMeshConfig) (*BlockMesh, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	m := &BlockMesh{cfg: *c}
	n := c.Nx * c.Ny * c.Nz
	m.centers = make([]Vector, n)
	m.volumes = make([]float64, n)
	m.cellCells = make([][]int, n)
	vol := c.Dx * c.Dy * c.Dz
	ax, ay, az := c.Dy*c.Dz, c.Dx*c.Dz, c.Dx*c.Dy
	for k := 0; k < c.Nz; k++ {
		for j := 0; j < c.Ny; j++ {
			for i := 0; i < c.Nx; i++ {
				id := m.Index(i, j, k)
				ctr := Vector{
					X: c.Xo + (float64(i)+0.5)*c.Dx,
					Y: c.Yo + (float64(j)+0.5)*c.Dy,
					Z: c.Zo + (float64(k)+0.5)*c.Dz,
				}
				m.centers[id] = ctr
				m.volumes[id] = vol
				// Faces to higher-index neighbours, in increasing
				// neighbour order.
				if i+1 < c.Nx {
					m.addFace(id, m.Index(i+1, j, k), Vector{X: ax}, ctr.Add(Vector{X: c.Dx / 2}))
				}
				if j+1 < c.Ny {
					m.addFace(id, m.Index(i, j+1, k), Vector{Y: ay}, ctr.Add(Vector{Y: c.Dy / 2}))
				}
				if k+1 < c.Nz {
					m.addFace(id, m.Index(i, j, k+1), Vector{Z: az}, ctr.Add(Vector{Z: c.Dz / 2}))
				}
				if c.Nx > 1 && (i == 0 || i == c.Nx-1) {
					s := 1.
					if i == 0 {
						s = -1
					}
					m.boundary = append(m.boundary, Face{Owner: id, Neighbour: -1,
						Area: Vector{X: s * ax}, Center: ctr.Add(Vector{X: s * c.Dx / 2})})
				}
				if c.Ny > 1 && (j == 0 || j == c.Ny-1) {
					s := 1.
					if j == 0 {
						s = -1
					}
					m.boundary = append(m.boundary, Face{Owner: id, Neighbour: -1,
						Area: Vector{Y: s * ay}, Center: ctr.Add(Vector{Y: s * c.Dy / 2})})
				}
				if c.Nz > 1 && (k == 0 || k == c.Nz-1) {
					s := 1.
					if k == 0 {
						s = -1
					}
					m.boundary = append(m.boundary, Face{Owner: id, Neighbour: -1,
						Area: Vector{Z: s * az}, Center: ctr.Add(Vector{Z: s * c.Dz / 2})})
				}
			}
		}
	}
	return m, nil
}

func (m *BlockMesh) addFace(owner, neighbour int, area, center Vector) {
	m.faces = append(m.faces, Face{Owner: owner, Neighbour: neighbour, Area: area, Center: center})
	m.cellCells[owner] = append(m.cellCells[owner], neighbour)
	m.cellCells[neighbour] = append(m.cellCells[neighbour], owner)
}

// Index returns the cell index of the cell at (i, j, k).
func (m *BlockMesh) Index(i, j, k int) int {
	return i + m.cfg.Nx*(j+m.cfg.Ny*k)
}

// NCells returns the number of cells in the mesh.
func (m *BlockMesh) NCells() int { return len(m.centers) }

// CellCenters returns the cell centroids.
func (m *BlockMesh) CellCenters() []Vector { return m.centers }

// CellVolumes returns the cell volumes.
func (m *BlockMesh) CellVolumes() []float64 { return m.volumes }

// CellCells returns the face neighbours of cell.
func (m *BlockMesh) CellCells(cell int) []int { return m.cellCells[cell] }

// InternalFaces returns the internal faces in LDU order.
func (m *BlockMesh) InternalFaces() []Face { return m.faces }

// BoundaryFaces returns the non-empty boundary faces.
func (m *BlockMesh) BoundaryFaces() []Face { return m.boundary }

// CellEdges returns the twelve edge vectors of a hexahedral cell.
func (m *BlockMesh) CellEdges(cell int) []Vector {
	c := m.cfg
	e := make([]Vector, 0, 12)
	for i := 0; i < 4; i++ {
		e = append(e, Vector{X: c.Dx}, Vector{Y: c.Dy}, Vector{Z: c.Dz})
	}
	return e
}
