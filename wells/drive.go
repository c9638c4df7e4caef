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

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
	"github.com/spatialmodel/rsr/interpolation"
)

// A Drive imposes a well constraint by adding the well's contribution to
// the per-phase pressure matrices.
type Drive interface {
	// Name returns the name of the drive.
	Name() string

	// Correct adds the drive's contribution at time t and pressure p to
	// the matrices it was created with.
	Correct(t float64, p []float64) error
}

// DriveSetup holds what a drive acts on: the well source describer of
// each phase, the well geometry, the per-phase matrices to add to, and
// the reducer for well-wide sums.
type DriveSetup struct {
	Sources  map[string]Describer
	Props    *SourceProperties
	Matrices map[string]*rsr.Matrix
	Reducer  rsr.Reducer
}

// A DriveConstructor creates a Drive from its configuration and imposed
// schedule.
type DriveConstructor func(name string, cfg rsr.Dict, schedule interpolation.Table, s DriveSetup) (Drive, error)

var drives = map[string]DriveConstructor{
	"BHP":      newBHPDrive,
	"flowRate": newFlowRateDrive,
}

// RegisterDrive adds a drive type. It panics if typ is already registered.
func RegisterDrive(typ string, c DriveConstructor) {
	if _, ok := drives[typ]; ok {
		panic(fmt.Errorf("wells: drive type %s is already registered", typ))
	}
	drives[typ] = c
}

// DriveTypes returns the registered drive types.
func DriveTypes() []string {
	o := make([]string, 0, len(drives))
	for k := range drives {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

// NewDrive creates the drive selected by the "type" key of cfg. The
// imposed schedule is read from cfg as an interpolation table.
func NewDrive(name string, cfg rsr.Dict, s DriveSetup) (Drive, error) {
	typ, err := cfg.String("type")
	if err != nil {
		return nil, fmt.Errorf("wells: drive %s: %v", name, err)
	}
	c, ok := drives[typ]
	if !ok {
		return nil, &rsr.UnknownTypeError{Family: "drive", Type: typ, Valid: DriveTypes()}
	}
	if len(s.Sources) == 0 {
		return nil, fmt.Errorf("wells: no well source describers were passed to drive %s", name)
	}
	if s.Props == nil {
		return nil, fmt.Errorf("wells: drive %s has no well properties", name)
	}
	if s.Reducer == nil {
		s.Reducer = rsr.SingleProcess{}
	}
	schedule, err := interpolation.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("wells: drive %s: %v", name, err)
	}
	logrus.WithFields(logrus.Fields{"name": name, "type": typ}).Info("Selecting drive type")
	return c(name, cfg, schedule, s)
}

// driveBase holds the state shared by the drives.
type driveBase struct {
	name     string
	schedule interpolation.Table
	DriveSetup

	// c holds the scratch coefficient arrays c0, c1 and c2.
	c [3][]float64
}

func newDriveBase(name string, schedule interpolation.Table, s DriveSetup) driveBase {
	n := len(s.Props.Cells)
	return driveBase{
		name:       name,
		schedule:   schedule,
		DriveSetup: s,
		c:          [3][]float64{make([]float64, n), make([]float64, n), make([]float64, n)},
	}
}

// Name returns the name of the drive.
func (d *driveBase) Name() string { return d.name }

// imposed returns the scheduled value at time t.
func (d *driveBase) imposed(t float64) (float64, error) {
	v, err := d.schedule.Interpolate(t)
	if err != nil {
		return 0, fmt.Errorf("wells: drive %s: %v", d.name, err)
	}
	return v[0], nil
}

// matrix returns the matrix of phase.
func (d *driveBase) matrix(phase string) (*rsr.Matrix, error) {
	m, ok := d.Matrices[phase]
	if !ok {
		return nil, fmt.Errorf("wells: drive %s: no matrix for phase %s", d.name, phase)
	}
	return m, nil
}

// coefficients computes the coefficients of src for the perforated cells.
func (d *driveBase) coefficients(src Describer) error {
	cells := d.Props.Cells
	if err := src.Coeff0(d.c[0], d.Props, cells); err != nil {
		return err
	}
	if err := src.Coeff1(d.c[1], d.Props, cells); err != nil {
		return err
	}
	return src.Coeff2(d.c[2], d.Props, cells)
}
