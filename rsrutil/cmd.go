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

	"github.com/lnashier/viper"
	"github.com/spatialmodel/rsr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to RSR.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "case",
			usage: `
              case specifies the location of the TOML case file describing
              the mesh, rock, phases, transport models, wells and solution
              controls of the simulation.`,
			shorthand:  "c",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), checkCmd.Flags(), curvesCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can
              include environment variables. If LogFile is left blank, the logfile
              will be saved next to the case file with the extension ".log".`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile specifies the path to the NetCDF file the pressure
              and saturation results are written to. It can include environment
              variables. If blank, no results are written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "RatesFile",
			usage: `
              RatesFile specifies the path to the Excel file the well rates
              selected in the "rates" section of the case are written to.
              If blank, the rates are only logged.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "EndTime",
			usage: `
              EndTime is the simulated time at which the run ends [s].`,
			defaultVal: 8.64e6,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "DeltaT",
			usage: `
              DeltaT is the initial time step [s]. If adjustTimeStep is false
              it is used for every step.`,
			defaultVal: 3600.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "WriteInterval",
			usage: `
              WriteInterval is the simulated time between records in
              OutputFile [s]. If 0, every step is written.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "adjustTimeStep",
			usage: `
              adjustTimeStep specifies whether the time step is set each step
              from the Courant number and the saturation change, using the
              "solution" section of the case.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "maxCo",
			usage: `
              maxCo is the largest allowed Courant number. The value in the
              "solution" section of the case takes precedence.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "maxDeltaT",
			usage: `
              maxDeltaT is the largest allowed time step [s]. The value in the
              "solution" section of the case takes precedence.`,
			defaultVal: math.MaxFloat64,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "CurvesFile",
			usage: `
              CurvesFile is the path of the relative permeability plot. The
              capillary pressure plot is written next to it with "_pc" added
              to the name. The file extension sets the image format.`,
			defaultVal: "curves.png",
			flagsets:   []*pflag.FlagSet{curvesCmd.Flags()},
		},
		{
			name: "CurvesPoints",
			usage: `
              CurvesPoints is the number of saturation values at which the
              curves are evaluated.`,
			defaultVal: 101,
			flagsets:   []*pflag.FlagSet{curvesCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("RSR")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				set.Bool(option.name, option.defaultVal.(bool), option.usage)
			case int:
				set.Int(option.name, option.defaultVal.(int), option.usage)
			case float64:
				set.Float64(option.name, option.defaultVal.(float64), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(checkCmd)
	Root.AddCommand(curvesCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("rsr: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "rsr",
	Short: "A black-oil reservoir simulator.",
	Long: `RSR simulates two-phase flow in porous media with injection and
production wells, solving pressure implicitly and saturation explicitly (IMPES).
Use the subcommands specified below to access the model functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'RSR_var' where 'var' is the
name of the variable to be set. The physical case itself (mesh, rock, phases,
wells) is described in the TOML file given by --case.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of RSR.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("RSR v%s\n", rsr.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd is a command that runs a simulation.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation.",
	Long: `run runs the simulation described by the case file until EndTime,
writing the results to OutputFile and the well rates to RatesFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := TimeConfig(Cfg)
		if err != nil {
			return err
		}
		caseFile := Cfg.GetString("case")
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		ratesFile, err := checkOutputFile(Cfg.GetString("RatesFile"))
		if err != nil {
			return err
		}
		return Run(cmd, caseFile, checkLogFile(Cfg.GetString("LogFile"), caseFile),
			outputFile, ratesFile, t)
	},
	DisableAutoGenTag: true,
}

// checkCmd is a command that checks a case file.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a case file.",
	Long: `check assembles the simulation described by the case file without
running it, and prints a summary of its wells and groups.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := TimeConfig(Cfg)
		if err != nil {
			return err
		}
		return Check(cmd.OutOrStdout(), Cfg.GetString("case"), t)
	},
	DisableAutoGenTag: true,
}

// curvesCmd is a command that plots the transport model curves.
var curvesCmd = &cobra.Command{
	Use:   "curves",
	Short: "Plot relative permeability and capillary pressure curves.",
	Long: `curves plots the relative permeability and capillary pressure models
of the case file against saturation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := LoadCase(Cfg.GetString("case"))
		if err != nil {
			return err
		}
		path, err := checkOutputFile(Cfg.GetString("CurvesFile"))
		if err != nil {
			return err
		}
		files, err := Curves(c, path, Cfg.GetInt("CurvesPoints"))
		if err != nil {
			return err
		}
		for _, f := range files {
			cmd.Printf("wrote %s\n", f)
		}
		return nil
	},
	DisableAutoGenTag: true,
}
