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
	"os"

	"github.com/ctessum/cdf"
	"github.com/spatialmodel/rsr"
)

// Outputter writes the simulation state to a NetCDF file. Static cell
// data are written once; the pressure and phase saturations are written
// as records along the unlimited "time" dimension.
type Outputter struct {
	path     string
	interval float64

	f    *os.File
	ff   *cdf.File
	n    int
	rec  int
	next float64
}

// NewOutputter returns an outputter that writes to path every interval
// seconds of simulated time. An interval of 0 writes every step.
func NewOutputter(path string, interval float64) *Outputter {
	return &Outputter{path: path, interval: interval}
}

func alphaName(phase string) string { return phase + ".alpha" }

// Init returns a function that creates the output file and writes the
// initial state.
func (o *Outputter) Init() rsr.DomainManipulator {
	return func(s *rsr.Simulation) error {
		o.n = s.Mesh.NCells()
		h := cdf.NewHeader([]string{"time", "cell"}, []int{0, o.n})
		h.AddAttribute("", "comment", "RSR simulation results")
		h.AddAttribute("", "rsr_version", rsr.Version)

		h.AddVariable("time", []string{"time"}, []float64{0})
		h.AddAttribute("time", "units", "s")
		h.AddVariable("P", []string{"time", "cell"}, []float64{0})
		h.AddAttribute("P", "description", "Pressure")
		h.AddAttribute("P", "units", "Pa")
		for _, ph := range s.Phases {
			v := alphaName(ph.Name)
			h.AddVariable(v, []string{"time", "cell"}, []float64{0})
			h.AddAttribute(v, "description", fmt.Sprintf("%s saturation", ph.Name))
			h.AddAttribute(v, "units", "-")
		}
		for _, v := range []string{"x", "y", "z"} {
			h.AddVariable(v, []string{"cell"}, []float64{0})
			h.AddAttribute(v, "description", fmt.Sprintf("cell centre %s coordinate", v))
			h.AddAttribute(v, "units", "m")
		}
		h.AddVariable("porosity", []string{"cell"}, []float64{0})
		h.AddAttribute("porosity", "units", "-")
		h.AddVariable("permeability", []string{"cell"}, []float64{0})
		h.AddAttribute("permeability", "units", "m2")
		h.Define()

		var err error
		if o.f, err = os.Create(o.path); err != nil {
			return fmt.Errorf("rsrutil: creating output file: %v", err)
		}
		if o.ff, err = cdf.Create(o.f, h); err != nil {
			return fmt.Errorf("rsrutil: creating output file: %v", err)
		}

		centers := s.Mesh.CellCenters()
		x, y, z := make([]float64, o.n), make([]float64, o.n), make([]float64, o.n)
		k := make([]float64, o.n)
		for i, c := range centers {
			x[i], y[i], z[i] = c.X, c.Y, c.Z
			k[i] = s.Rock.KMag(i)
		}
		for _, v := range []struct {
			name string
			data []float64
		}{{"x", x}, {"y", y}, {"z", z}, {"porosity", s.Rock.Porosity}, {"permeability", k}} {
			w := o.ff.Writer(v.name, []int{0}, []int{o.n})
			if _, err := w.Write(v.data); err != nil {
				return fmt.Errorf("rsrutil: writing variable %s to output file: %v", v.name, err)
			}
		}
		return o.write(s)
	}
}

// write appends the current state as a new record.
func (o *Outputter) write(s *rsr.Simulation) error {
	w := o.ff.Writer("time", []int{o.rec}, []int{o.rec + 1})
	if _, err := w.Write([]float64{s.Time}); err != nil {
		return fmt.Errorf("rsrutil: writing time to output file: %v", err)
	}
	if err := o.writeRecord("P", s.P); err != nil {
		return err
	}
	for _, ph := range s.Phases {
		if err := o.writeRecord(alphaName(ph.Name), ph.Alpha); err != nil {
			return err
		}
	}
	o.rec++
	o.next = s.Time + o.interval
	return nil
}

func (o *Outputter) writeRecord(v string, data []float64) error {
	w := o.ff.Writer(v, []int{o.rec, 0}, []int{o.rec + 1, 0})
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("rsrutil: writing variable %s record %d to output file: %v", v, o.rec, err)
	}
	return nil
}

// Output returns a function that writes the state after a time step if
// the write interval has elapsed or the simulation is done.
func (o *Outputter) Output() rsr.DomainManipulator {
	return func(s *rsr.Simulation) error {
		if s.Time < o.next*(1-1e-12) && !s.Done {
			return nil
		}
		return o.write(s)
	}
}

// Close returns a function that finalizes and closes the output file.
func (o *Outputter) Close() rsr.DomainManipulator {
	return func(s *rsr.Simulation) error {
		if o.f == nil {
			return nil
		}
		if err := cdf.UpdateNumRecs(o.f); err != nil {
			return fmt.Errorf("rsrutil: finalizing output file: %v", err)
		}
		err := o.f.Close()
		o.f = nil
		return err
	}
}
