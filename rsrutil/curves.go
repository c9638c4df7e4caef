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

package rsrutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spatialmodel/rsr"
	"github.com/spatialmodel/rsr/science/cappress"
	"github.com/spatialmodel/rsr/science/relperm"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Curves plots the relative permeability and capillary pressure curves
// of the transport models in case c against the canonical phase
// saturation, sampled at the given number of points. The relative
// permeability plot is saved to path and the capillary pressure plot, if
// the case has a capillary pressure model, to path with "_pc" inserted
// before the extension. Model parameters must be uniform. It returns the
// files written.
func Curves(c rsr.Dict, path string, points int) ([]string, error) {
	if points < 2 {
		return nil, fmt.Errorf("rsrutil: CurvesPoints=%d but should be >1", points)
	}
	pcfg, err := c.Sub("phases")
	if err != nil {
		return nil, err
	}
	names, err := pcfg.Strings("names")
	if err != nil {
		return nil, fmt.Errorf("rsrutil: phases: %v", err)
	}
	if len(names) != 2 {
		return nil, fmt.Errorf("rsrutil: %d phases: %w", len(names), rsr.ErrNotImplemented)
	}
	tcfg, err := c.Sub("transport")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, name := range tcfg.Keys() {
		cfg, err := tcfg.Sub(name)
		if err != nil {
			return nil, fmt.Errorf("rsrutil: transport: %v", err)
		}
		base, _ := rsr.ParseModelName(name)
		switch base {
		case "krModel":
			phases := sweep(names, 0, points)
			m, err := relperm.New(name, cfg, phases)
			if err != nil {
				return nil, err
			}
			p, err := curvePlot(m, phases[0].Alpha, "Relative permeability", "kr",
				relperm.KrName(names[0]), relperm.KrName(names[1]))
			if err != nil {
				return nil, err
			}
			if err := p.Save(5*vg.Inch, 3.5*vg.Inch, path); err != nil {
				return nil, fmt.Errorf("rsrutil: saving curves: %v", err)
			}
			files = append(files, path)
		case "pcModel":
			// Brooks-Corey capillary pressure is undefined at and below
			// its lower saturation bound.
			lo, err := cfg.FloatDefault(names[0]+".alpha.PcMin", 0)
			if err != nil {
				return nil, err
			}
			phases := sweep(names, lo, points)
			m, err := cappress.New(name, cfg, phases)
			if err != nil {
				return nil, err
			}
			p, err := curvePlot(m, phases[0].Alpha, "Capillary pressure", "pc (Pa)", cappress.PcName(names[0]))
			if err != nil {
				return nil, err
			}
			f := strings.TrimSuffix(path, filepath.Ext(path)) + "_pc" + filepath.Ext(path)
			if err := p.Save(5*vg.Inch, 3.5*vg.Inch, f); err != nil {
				return nil, fmt.Errorf("rsrutil: saving curves: %v", err)
			}
			files = append(files, f)
		}
	}
	return files, nil
}

// sweep returns two phases whose canonical saturation rises to 1 over
// the given number of points, starting at 0 if lo is 0 and just above lo
// otherwise.
func sweep(names []string, lo float64, points int) []*rsr.Phase {
	c := &rsr.Phase{Name: names[0], Alpha: make([]float64, points), Mu: rsr.Uniform(1, points)}
	o := &rsr.Phase{Name: names[1], Alpha: make([]float64, points), Mu: rsr.Uniform(1, points)}
	for i := range c.Alpha {
		if lo == 0 {
			c.Alpha[i] = float64(i) / float64(points-1)
		} else {
			c.Alpha[i] = lo + (1-lo)*float64(i+1)/float64(points)
		}
		o.Alpha[i] = 1 - c.Alpha[i]
	}
	return []*rsr.Phase{c, o}
}

// curvePlot corrects m and plots the given fields of it against alpha.
func curvePlot(m rsr.FieldModel, alpha []float64, title, ylabel string, fields ...string) (*plot.Plot, error) {
	if err := m.Correct(); err != nil {
		return nil, err
	}
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = title
	p.X.Label.Text = "Saturation"
	p.Y.Label.Text = ylabel
	for i, f := range fields {
		v, err := m.Field(f)
		if err != nil {
			return nil, err
		}
		xy := make(plotter.XYs, len(alpha))
		for j := range alpha {
			xy[j].X = alpha[j]
			xy[j].Y = v[j]
		}
		l, err := plotter.NewLine(xy)
		if err != nil {
			return nil, err
		}
		l.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(f, l)
	}
	return p, nil
}
