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
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/rsr"
)

// LoadCase reads the TOML case file at path. Environment variables in
// the path are expanded.
func LoadCase(path string) (rsr.Dict, error) {
	if path == "" {
		return nil, fmt.Errorf("you need to specify a case file (for example: --case=case.toml)")
	}
	var d map[string]interface{}
	if _, err := toml.DecodeFile(os.ExpandEnv(path), &d); err != nil {
		return nil, fmt.Errorf("rsrutil: problem reading case file: %v", err)
	}
	return rsr.Dict(d), nil
}

// MeshConfig reads the block mesh parameters from the "mesh" section of
// a case. Cell counts default to 1 and the origin to 0.
func MeshConfig(c rsr.Dict) (*rsr.BlockMeshConfig, error) {
	m := new(rsr.BlockMeshConfig)
	var err error
	for _, v := range []struct {
		name string
		n    *int
	}{{"Nx", &m.Nx}, {"Ny", &m.Ny}, {"Nz", &m.Nz}} {
		if *v.n, err = c.Int(v.name, 1); err != nil {
			return nil, fmt.Errorf("parsing mesh configuration: %v", err)
		}
	}
	for _, v := range []struct {
		name string
		d    *float64
		def  float64
	}{
		{"Dx", &m.Dx, math.NaN()}, {"Dy", &m.Dy, math.NaN()}, {"Dz", &m.Dz, math.NaN()},
		{"Xo", &m.Xo, 0}, {"Yo", &m.Yo, 0}, {"Zo", &m.Zo, 0},
	} {
		if *v.d, err = c.FloatDefault(v.name, v.def); err != nil {
			return nil, fmt.Errorf("parsing mesh configuration: %v", err)
		}
		if math.IsNaN(*v.d) {
			return nil, fmt.Errorf("parsing mesh configuration: %s is not specified", v.name)
		}
	}
	if err := m.Check(); err != nil {
		return nil, err
	}
	return m, nil
}

// TimeOptions hold the time-loop settings given on the command line or
// in the configuration file.
type TimeOptions struct {
	EndTime       float64 // [s]
	DeltaT        float64 // initial time step [s]
	WriteInterval float64 // simulated time between output records [s]

	// AdjustTimeStep specifies whether the CFL controller sets the time
	// step. If false, DeltaT is used throughout.
	AdjustTimeStep bool

	MaxCo     float64
	MaxDeltaT float64 // [s]
}

// TimeConfig reads the time-loop settings from cfg.
func TimeConfig(cfg *viper.Viper) (*TimeOptions, error) {
	t := &TimeOptions{
		EndTime:        cfg.GetFloat64("EndTime"),
		DeltaT:         cfg.GetFloat64("DeltaT"),
		WriteInterval:  cfg.GetFloat64("WriteInterval"),
		AdjustTimeStep: cfg.GetBool("adjustTimeStep"),
		MaxCo:          cfg.GetFloat64("maxCo"),
		MaxDeltaT:      cfg.GetFloat64("maxDeltaT"),
	}
	vars := []float64{t.EndTime, t.DeltaT, t.MaxCo, t.MaxDeltaT}
	varNames := []string{"EndTime", "DeltaT", "maxCo", "maxDeltaT"}
	for i, v := range vars {
		if !(v > 0) {
			return nil, fmt.Errorf("parsing time configuration: %s=%g but should be >0", varNames[i], v)
		}
	}
	if t.WriteInterval < 0 {
		return nil, fmt.Errorf("parsing time configuration: WriteInterval=%g but should be >=0", t.WriteInterval)
	}
	return t, nil
}

// checkOutputFile makes sure that the directory of output file f exists,
// and expands any environment variables. An empty f is allowed and means
// no output.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", nil
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("rsrutil: the directory of output file %s doesn't exist: %v", f, err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified.
func checkLogFile(logFile, caseFile string) string {
	if logFile == "" {
		logFile = strings.TrimSuffix(caseFile, filepath.Ext(caseFile)) + ".log"
	}
	return os.ExpandEnv(logFile)
}
