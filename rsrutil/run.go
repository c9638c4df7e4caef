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
	"io"
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rsr"
	"github.com/spf13/cobra"
)

// Setup fills in the initialization, time-step and cleanup functions of
// the simulation. Each step solves the IMPES equations in the order:
// time step, explicit saturation update, constitutive models, well
// matrices, pressure and fluxes. o may be nil, in which case nothing is
// written.
func (cs *Case) Setup(o *Outputter) {
	s := cs.Sim
	models := cs.fieldModels()
	s.InitFuncs = []rsr.DomainManipulator{
		rsr.CorrectProperties(models...),
		rsr.CorrectWells(cs.Wells),
		rsr.SolvePressure(cs.Wells, cs.Kr),
	}
	s.RunFuncs = []rsr.DomainManipulator{
		rsr.SetTimeStep(cs.stepper()),
		rsr.UpdateSaturation(cs.Wells),
		rsr.CorrectProperties(models...),
		rsr.CorrectWells(cs.Wells),
		rsr.SolvePressure(cs.Wells, cs.Kr),
		rsr.AdvanceTime(),
		rsr.Log(),
	}
	s.CleanupFuncs = nil
	if cs.Rates != nil {
		s.RunFuncs = append(s.RunFuncs, cs.Rates.Report())
	}
	if o != nil {
		s.InitFuncs = append(s.InitFuncs, o.Init())
		s.RunFuncs = append(s.RunFuncs, o.Output())
		s.CleanupFuncs = append(s.CleanupFuncs, o.Close())
	}
}

// Run runs the simulation described by the case file at caseFile.
//
// CobraCommand is the cobra.Command instance where Run is called from.
// Log messages are written to its output and to LogFile.
//
// OutputFile is the path of the NetCDF results file and RatesFile the
// path of the Excel well rate report. Either may be empty, in which case
// the file is not written. Both can include environment variables.
//
// t holds the time-loop settings.
func Run(CobraCommand *cobra.Command, caseFile, LogFile, OutputFile, RatesFile string, t *TimeOptions) error {
	startTime := time.Now()

	logfile, err := os.Create(LogFile)
	if err != nil {
		return fmt.Errorf("rsrutil: problem creating log file: %v", err)
	}
	defer logfile.Close()
	mw := io.MultiWriter(CobraCommand.OutOrStdout(), logfile)
	logrus.SetOutput(mw)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	defer logrus.SetOutput(os.Stderr)

	c, err := LoadCase(caseFile)
	if err != nil {
		return err
	}
	cs, err := NewCase(c, t)
	if err != nil {
		return err
	}
	var o *Outputter
	if OutputFile != "" {
		o = NewOutputter(OutputFile, t.WriteInterval)
	}
	cs.Setup(o)

	logrus.WithField("case", caseFile).Info("initializing simulation")
	if err := cs.Sim.Init(); err != nil {
		return err
	}
	if err := cs.Sim.Run(); err != nil {
		return err
	}

	if RatesFile != "" && cs.Rates != nil {
		if err := WriteRates(RatesFile, cs.Rates.History); err != nil {
			return err
		}
	}
	logrus.WithFields(logrus.Fields{
		"steps":    cs.Sim.Step,
		"time":     cs.Sim.Time,
		"walltime": time.Since(startTime).Round(time.Millisecond),
	}).Info("simulation complete")
	return nil
}

// caseSummary describes an assembled case.
type caseSummary struct {
	Cells  int
	Phases []string
	Groups map[string][]string
	Wells  []wellSummary
	CFL    bool
}

type wellSummary struct {
	Name   string
	Mode   string
	Cells  []int
	Drives []string
}

// Check assembles the case at caseFile without running it and writes a
// summary to w.
func Check(w io.Writer, caseFile string, t *TimeOptions) error {
	c, err := LoadCase(caseFile)
	if err != nil {
		return err
	}
	cs, err := NewCase(c, t)
	if err != nil {
		return err
	}
	s := caseSummary{
		Cells:  cs.Sim.Mesh.NCells(),
		Phases: cs.Sim.PhaseNames(),
		Groups: make(map[string][]string),
		CFL:    cs.Controller != nil,
	}
	for _, g := range cs.Wells.Groups() {
		wells, err := cs.Wells.Group(g)
		if err != nil {
			return err
		}
		for _, wl := range wells {
			s.Groups[g] = append(s.Groups[g], wl.Name)
		}
	}
	for _, wl := range cs.Wells.Wells() {
		ws := wellSummary{Name: wl.Name, Mode: wl.Props.Mode.String(), Cells: wl.Props.Cells}
		for _, d := range wl.Drives {
			ws.Drives = append(ws.Drives, d.Name())
		}
		s.Wells = append(s.Wells, ws)
	}
	_, err = fmt.Fprintf(w, "%# v\n", pretty.Formatter(s))
	return err
}
