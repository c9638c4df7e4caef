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
	"sort"

	"github.com/spatialmodel/rsr"
	"github.com/spatialmodel/rsr/interpolation"
)

// BHPDrive imposes a scheduled bottom-hole pressure. For every phase it
// has a describer for it adds sign*c0 to the diagonal and
// sign*(c1*BHP + c2) to the source of each perforated cell, where sign is
// the well's operation sign. With c0 = -J and c1 = J an injector adds
// the rate into the reservoir and a producer the rate out of it.
type BHPDrive struct {
	driveBase
	phases []string
}

func newBHPDrive(name string, cfg rsr.Dict, schedule interpolation.Table, s DriveSetup) (Drive, error) {
	d := &BHPDrive{driveBase: newDriveBase(name, schedule, s)}
	for ph := range s.Sources {
		d.phases = append(d.phases, ph)
	}
	sort.Strings(d.phases)
	return d, nil
}

// Correct adds the drive's contribution at time t.
func (d *BHPDrive) Correct(t float64, p []float64) error {
	bhp, err := d.imposed(t)
	if err != nil {
		return err
	}
	sign := d.Props.OperationSign()
	for _, ph := range d.phases {
		if d.Props.Skips(ph) {
			continue
		}
		m, err := d.matrix(ph)
		if err != nil {
			return err
		}
		if err := d.coefficients(d.Sources[ph]); err != nil {
			return err
		}
		for i, c := range d.Props.Cells {
			m.Diag.AddVal(sign*d.c[0][i], c)
			m.Source.AddVal(sign*(d.c[1][i]*bhp+d.c[2][i]), c)
		}
	}
	return nil
}
