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
	"sort"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/geom"
	"github.com/spatialmodel/rsr"
)

// A Selector picks a set of cells from a mesh.
type Selector interface {
	Select(m rsr.Mesh) ([]int, error)
}

// A SelectorConstructor creates a Selector from its configuration.
type SelectorConstructor func(cfg rsr.Dict) (Selector, error)

var selectors = map[string]SelectorConstructor{
	"cellIDs":    newCellIDs,
	"box":        newBox,
	"expression": newExpression,
	"polygon":    newPolygon,
}

// SelectorTypes returns the registered perforation selector types.
func SelectorTypes() []string {
	o := make([]string, 0, len(selectors))
	for k := range selectors {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

// NewSelector creates the selector named by the "type" key of cfg.
func NewSelector(cfg rsr.Dict) (Selector, error) {
	typ, err := cfg.String("type")
	if err != nil {
		return nil, fmt.Errorf("wells: perforation: %v", err)
	}
	c, ok := selectors[typ]
	if !ok {
		return nil, &rsr.UnknownTypeError{Family: "perforation selector", Type: typ, Valid: SelectorTypes()}
	}
	return c(cfg)
}

// Perforations returns the sorted union of the cells picked by each of
// the selectors in cfgs.
func Perforations(cfgs []rsr.Dict, m rsr.Mesh) ([]int, error) {
	set := make(map[int]struct{})
	for _, cfg := range cfgs {
		s, err := NewSelector(cfg)
		if err != nil {
			return nil, err
		}
		cells, err := s.Select(m)
		if err != nil {
			return nil, err
		}
		for _, c := range cells {
			set[c] = struct{}{}
		}
	}
	o := make([]int, 0, len(set))
	for c := range set {
		o = append(o, c)
	}
	sort.Ints(o)
	return o, nil
}

// CellIDs selects cells by index, from the "cells" key.
type CellIDs []int

func newCellIDs(cfg rsr.Dict) (Selector, error) {
	c, err := cfg.Ints("cells")
	if err != nil {
		return nil, fmt.Errorf("wells: cellIDs perforation: %v", err)
	}
	return CellIDs(c), nil
}

// Select returns the cells, which must be in the mesh.
func (s CellIDs) Select(m rsr.Mesh) ([]int, error) {
	for _, c := range s {
		if c < 0 || c >= m.NCells() {
			return nil, fmt.Errorf("wells: cellIDs perforation: cell %d is outside of the mesh", c)
		}
	}
	return s, nil
}

// Box selects the cells whose centres lie within [Min, Max].
type Box struct {
	Min, Max rsr.Vector
}

func newBox(cfg rsr.Dict) (Selector, error) {
	var b Box
	for _, v := range []struct {
		key string
		v   *rsr.Vector
	}{{"min", &b.Min}, {"max", &b.Max}} {
		x, err := cfg.Floats(v.key)
		if err != nil {
			return nil, fmt.Errorf("wells: box perforation: %v", err)
		}
		if len(x) != 3 {
			return nil, fmt.Errorf("wells: box perforation: %s has %d components but should have 3", v.key, len(x))
		}
		*v.v = rsr.Vector{X: x[0], Y: x[1], Z: x[2]}
	}
	return b, nil
}

// Select returns the cells in the box.
func (b Box) Select(m rsr.Mesh) ([]int, error) {
	var o []int
	for i, c := range m.CellCenters() {
		if c.X >= b.Min.X && c.X <= b.Max.X &&
			c.Y >= b.Min.Y && c.Y <= b.Max.Y &&
			c.Z >= b.Min.Z && c.Z <= b.Max.Z {
			o = append(o, i)
		}
	}
	return o, nil
}

// Expression selects the cells for which a boolean expression of the
// cell centre coordinates x, y and z and the cell index i is true.
type Expression struct {
	*govaluate.EvaluableExpression
}

func newExpression(cfg rsr.Dict) (Selector, error) {
	s, err := cfg.String("expression")
	if err != nil {
		return nil, fmt.Errorf("wells: expression perforation: %v", err)
	}
	e, err := govaluate.NewEvaluableExpression(s)
	if err != nil {
		return nil, fmt.Errorf("wells: expression perforation %q: %v", s, err)
	}
	return Expression{e}, nil
}

// Select returns the cells for which the expression is true.
func (e Expression) Select(m rsr.Mesh) ([]int, error) {
	var o []int
	params := make(map[string]interface{}, 4)
	for i, c := range m.CellCenters() {
		params["x"], params["y"], params["z"], params["i"] = c.X, c.Y, c.Z, float64(i)
		v, err := e.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("wells: expression perforation %q: %v", e.String(), err)
		}
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("wells: expression perforation %q evaluates to %v, not a boolean", e.String(), v)
		}
		if b {
			o = append(o, i)
		}
	}
	return o, nil
}

// Polygon selects the cells whose centres lie, in plan view, within a
// polygon and whose z coordinate is within [ZMin, ZMax]. Centres on the
// polygon edge are selected.
type Polygon struct {
	geom.Polygon
	ZMin, ZMax float64
}

func newPolygon(cfg rsr.Dict) (Selector, error) {
	x, err := cfg.Floats("x")
	if err != nil {
		return nil, fmt.Errorf("wells: polygon perforation: %v", err)
	}
	y, err := cfg.Floats("y")
	if err != nil {
		return nil, fmt.Errorf("wells: polygon perforation: %v", err)
	}
	if len(x) != len(y) || len(x) < 3 {
		return nil, fmt.Errorf("wells: polygon perforation: need at least 3 vertices with x and y of equal length; have %d and %d", len(x), len(y))
	}
	ring := make([]geom.Point, len(x))
	for i := range x {
		ring[i] = geom.Point{X: x[i], Y: y[i]}
	}
	p := Polygon{Polygon: geom.Polygon{ring}}
	if p.ZMin, err = cfg.FloatDefault("zMin", -1e300); err != nil {
		return nil, fmt.Errorf("wells: polygon perforation: %v", err)
	}
	if p.ZMax, err = cfg.FloatDefault("zMax", 1e300); err != nil {
		return nil, fmt.Errorf("wells: polygon perforation: %v", err)
	}
	return p, nil
}

// Select returns the cells in the polygon.
func (p Polygon) Select(m rsr.Mesh) ([]int, error) {
	var o []int
	for i, c := range m.CellCenters() {
		if c.Z < p.ZMin || c.Z > p.ZMax {
			continue
		}
		if (geom.Point{X: c.X, Y: c.Y}).Within(p.Polygon) != geom.Outside {
			o = append(o, i)
		}
	}
	return o, nil
}
