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

// Package wells couples injection and production wells to the pressure
// equation. A well's perforated cells and geometry are held in
// SourceProperties; a Describer turns them into the linearized per-cell
// rate q_i = c0_i*p_i + c1_i*BHP + c2_i of one phase; and a Drive imposes
// the well's constraint (bottom-hole pressure or total rate) by adding
// those coefficients to the phase's pressure matrix.
package wells

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
)

// Orientation is the direction of a well bore through its perforated cells.
type Orientation int

// Well orientations. Generic wells are treated as if they were aligned
// with the x axis.
const (
	Vertical Orientation = iota
	HorizontalX
	HorizontalY
	Generic
)

var orientations = map[string]Orientation{
	"vertical":    Vertical,
	"horizontalX": HorizontalX,
	"horizontalY": HorizontalY,
	"generic":     Generic,
}

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case HorizontalX:
		return "horizontalX"
	case HorizontalY:
		return "horizontalY"
	case Generic:
		return "generic"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// axes returns the two axes perpendicular to the well bore, which set the
// equivalent radius, and the axis parallel to it.
func (o Orientation) axes() (perp1, perp2, parallel int) {
	switch o {
	case Vertical:
		return 0, 1, 2
	case HorizontalY:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

// OperationMode specifies whether a well takes fluid out of the reservoir
// or puts it in.
type OperationMode int

// Operation modes.
const (
	Production OperationMode = iota
	Injection
)

func (m OperationMode) String() string {
	if m == Injection {
		return "injection"
	}
	return "production"
}

// Sign returns -1 for production and +1 for injection.
func (m OperationMode) Sign() float64 {
	if m == Injection {
		return 1
	}
	return -1
}

// SourceProperties holds the geometry and operating state of one well that
// is shared by the describers and drives acting on it.
type SourceProperties struct {
	Name string
	Mesh rsr.Mesh

	// Cells are the perforated cells, in increasing order.
	Cells []int

	// Faces are the indices of the internal faces of Mesh whose owner and
	// neighbour are both perforated.
	Faces []int

	Radius      float64 // well bore radius [m]
	Skin        float64 // skin factor [-]
	Orientation Orientation
	Mode        OperationMode

	// InjectedPhase is the phase an injector injects, or "none" for
	// producers.
	InjectedPhase string

	Gravity rsr.Vector

	wellIndex map[int]float64
}

// NewSourceProperties reads the well keys "radius", "skin", "orientation",
// "operationMode" and "injectedPhase" from cfg for a well perforating cells
// of mesh m. Unrecognized orientations and operation modes are replaced by
// "generic" and "production", with a warning.
func NewSourceProperties(name string, cfg rsr.Dict, m rsr.Mesh, cells []int, g rsr.Vector) (*SourceProperties, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("wells: well %s has no perforated cells", name)
	}
	sp := &SourceProperties{
		Name:      name,
		Mesh:      m,
		Gravity:   g,
		wellIndex: make(map[int]float64),
	}
	sp.Cells = append([]int(nil), cells...)
	sort.Ints(sp.Cells)
	for i, c := range sp.Cells {
		if c < 0 || c >= m.NCells() {
			return nil, fmt.Errorf("wells: well %s: cell %d is outside of the mesh", name, c)
		}
		if i > 0 && c == sp.Cells[i-1] {
			return nil, fmt.Errorf("wells: well %s: cell %d is perforated twice", name, c)
		}
	}
	sp.Faces = internalFaces(m, sp.Cells)

	var err error
	if sp.Radius, err = cfg.Float("radius"); err != nil {
		return nil, fmt.Errorf("wells: well %s: %v", name, err)
	}
	if sp.Radius <= 0 {
		return nil, fmt.Errorf("wells: well %s: radius=%g but should be >0", name, sp.Radius)
	}
	if sp.Skin, err = cfg.FloatDefault("skin", 0); err != nil {
		return nil, fmt.Errorf("wells: well %s: %v", name, err)
	}

	orient, err := cfg.StringDefault("orientation", "vertical")
	if err != nil {
		return nil, fmt.Errorf("wells: well %s: %v", name, err)
	}
	var ok bool
	if sp.Orientation, ok = orientations[orient]; !ok {
		logrus.WithField("well", name).Warnf("bad well orientation %q, using 'generic'", orient)
		sp.Orientation = Generic
	}

	mode, err := cfg.String("operationMode")
	if err != nil {
		return nil, fmt.Errorf("wells: well %s: %v", name, err)
	}
	switch mode {
	case "production":
		sp.Mode = Production
	case "injection":
		sp.Mode = Injection
	default:
		logrus.WithField("well", name).Warnf("bad well operation mode %q, using 'production'", mode)
		sp.Mode = Production
	}
	sp.InjectedPhase = "none"
	if sp.Mode == Injection {
		if sp.InjectedPhase, err = cfg.StringDefault("injectedPhase", "water"); err != nil {
			return nil, fmt.Errorf("wells: well %s: %v", name, err)
		}
	}
	return sp, nil
}

// OperationSign returns the sign of the well's operation mode.
func (sp *SourceProperties) OperationSign() float64 { return sp.Mode.Sign() }

// Skips returns whether the well has nothing to do for phase: an injector
// only acts on its injected phase.
func (sp *SourceProperties) Skips(phase string) bool {
	return sp.Mode == Injection && sp.InjectedPhase != phase
}

// Contains returns whether cell is perforated.
func (sp *SourceProperties) Contains(cell int) bool {
	i := sort.SearchInts(sp.Cells, cell)
	return i < len(sp.Cells) && sp.Cells[i] == cell
}

// depth returns the distance of cell's centre along the direction of
// gravity, and |g|. Both are zero when gravity is unset.
func (sp *SourceProperties) depth(cell int) (d, g float64) {
	g = sp.Gravity.Mag()
	if g == 0 {
		return 0, 0
	}
	return sp.Mesh.CellCenters()[cell].Dot(sp.Gravity) / g, g
}

// BottomHoleDepth returns the depth of the deepest perforated cell, which
// is the reference depth of the bottom-hole pressure.
func (sp *SourceProperties) BottomHoleDepth() float64 {
	dMax := math.Inf(-1)
	for _, c := range sp.Cells {
		if d, _ := sp.depth(c); d > dMax {
			dMax = d
		}
	}
	return dMax
}

// internalFaces returns the indices of the internal faces of m that
// connect two of cells, which must be sorted.
func internalFaces(m rsr.Mesh, cells []int) []int {
	in := make(map[int]bool, len(cells))
	for _, c := range cells {
		in[c] = true
	}
	var o []int
	for f, face := range m.InternalFaces() {
		if in[face.Owner] && in[face.Neighbour] {
			o = append(o, f)
		}
	}
	return o
}
