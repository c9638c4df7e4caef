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

	"github.com/ctessum/unit"
	"github.com/spatialmodel/rsr/wells"
	"github.com/tealeg/xlsx"
)

// rateColumns are the columns of the rate report.
var rateColumns = []string{"Time (s)", "Group", "Well", "Phase", "Rate (m³/s)"}

// WriteRates saves the well rate history to an Excel workbook at path,
// one row per time, well and phase.
func WriteRates(path string, history []wells.Rate) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("rates")
	if err != nil {
		return fmt.Errorf("rsrutil: creating rate report: %v", err)
	}
	hdr := sheet.AddRow()
	for _, c := range rateColumns {
		hdr.AddCell().SetString(c)
	}
	for _, r := range history {
		if err := r.Rate.Check(unit.Meter3PerSecond); err != nil {
			return fmt.Errorf("rsrutil: rate report: well %s phase %s: %v", r.Well, r.Phase, err)
		}
		row := sheet.AddRow()
		row.AddCell().SetFloat(r.Time)
		row.AddCell().SetString(r.Group)
		row.AddCell().SetString(r.Well)
		row.AddCell().SetString(r.Phase)
		row.AddCell().SetFloat(r.Rate.Value())
	}
	if err := f.Save(os.ExpandEnv(path)); err != nil {
		return fmt.Errorf("rsrutil: saving rate report: %v", err)
	}
	return nil
}
