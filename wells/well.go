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

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
)

// Environment holds the simulation state that wells act on.
type Environment struct {
	Mesh    rsr.Mesh
	Rock    *rsr.Rock
	Phases  []*rsr.Phase
	Gravity rsr.Vector

	// Kr supplies the relative permeability of each phase. If it is nil,
	// kr is taken to be 1.
	Kr rsr.FieldModel

	// Reducer performs the well-wide sums. It defaults to
	// rsr.SingleProcess.
	Reducer rsr.Reducer
}

// Well is a set of perforated cells operated under one or more imposed
// drives.
type Well struct {
	Name   string
	Groups []string
	Props  *SourceProperties

	// Sources holds the well source describer of each phase.
	Sources map[string]Describer

	Drives []Drive
}

// NewWell creates a well called name from its configuration. Its drives add
// to matrices, which must hold one matrix per phase of env.
func NewWell(name string, cfg rsr.Dict, env Environment, matrices map[string]*rsr.Matrix) (*Well, error) {
	typ, err := cfg.StringDefault("type", "standard")
	if err != nil {
		return nil, fmt.Errorf("wells: well %s: %v", name, err)
	}
	if typ != "standard" {
		return nil, &rsr.UnknownTypeError{Family: "well", Type: typ, Valid: []string{"standard"}}
	}
	logrus.WithFields(logrus.Fields{"name": name, "type": typ}).Info("Selecting well type")
	w := &Well{Name: name, Groups: []string{"defaultGrp"}}
	if cfg.Has("groups") {
		if w.Groups, err = cfg.Strings("groups"); err != nil {
			return nil, fmt.Errorf("wells: well %s: %v", name, err)
		}
	}

	perfs, err := cfg.List("perforations")
	if err != nil {
		return nil, fmt.Errorf("wells: well %s: %v", name, err)
	}
	cells, err := Perforations(perfs, env.Mesh)
	if err != nil {
		return nil, fmt.Errorf("wells: well %s: %v", name, err)
	}
	if w.Props, err = NewSourceProperties(name, cfg, env.Mesh, cells, env.Gravity); err != nil {
		return nil, err
	}

	srcCfg, err := cfg.SubDefault("wellSource")
	if err != nil {
		return nil, fmt.Errorf("wells: well %s: %v", name, err)
	}
	w.Sources = make(map[string]Describer, len(env.Phases))
	for _, ph := range env.Phases {
		if w.Sources[ph.Name], err = NewDescriber(ph, srcCfg, env.Rock, env.Kr); err != nil {
			return nil, fmt.Errorf("wells: well %s: %v", name, err)
		}
	}

	driveCfgs, err := cfg.List("imposedDrives")
	if err != nil {
		return nil, fmt.Errorf("wells: well %s: %v", name, err)
	}
	setup := DriveSetup{
		Sources:  w.Sources,
		Props:    w.Props,
		Matrices: matrices,
		Reducer:  env.Reducer,
	}
	for i, dc := range driveCfgs {
		dn, err := dc.StringDefault("name", fmt.Sprintf("%s.drive%d", name, i))
		if err != nil {
			return nil, err
		}
		d, err := NewDrive(dn, dc, setup)
		if err != nil {
			return nil, err
		}
		w.Drives = append(w.Drives, d)
	}
	logrus.WithFields(logrus.Fields{
		"well":   name,
		"cells":  len(w.Props.Cells),
		"drives": len(w.Drives),
		"mode":   w.Props.Mode,
	}).Info("constructed well")
	return w, nil
}

// Correct corrects each of the well's drives.
func (w *Well) Correct(t float64, p []float64) error {
	for _, d := range w.Drives {
		if err := d.Correct(t, p); err != nil {
			return err
		}
	}
	return nil
}
