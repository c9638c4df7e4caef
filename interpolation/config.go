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

package interpolation

import (
	"fmt"
	"sort"

	"github.com/spatialmodel/rsr"
	"github.com/spf13/cast"
)

// constructors holds the registered table types.
var constructors = map[string]func(entries []Entry, periodic bool) (Table, error){
	"linear":  func(e []Entry, p bool) (Table, error) { return NewLinear(e, p) },
	"stepped": func(e []Entry, p bool) (Table, error) { return NewStepped(e, p) },
}

// Types returns the registered interpolation types.
func Types() []string {
	o := make([]string, 0, len(constructors))
	for k := range constructors {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

// New creates a table from its configuration. Recognized keys are
// "interpolationType" ("linear" or "stepped", default "linear"),
// "periodic" (default false), and either "values", a list of rows of the
// form [x, v1, v2, ...], or "file", the path to a schedule file read with
// ReadFile using the optional keys "timeColumn", "valueColumns" and "sheet".
func New(cfg rsr.Dict) (Table, error) {
	typ, err := cfg.StringDefault("interpolationType", "linear")
	if err != nil {
		return nil, err
	}
	cstr, ok := constructors[typ]
	if !ok {
		return nil, &rsr.UnknownTypeError{Family: "interpolation", Type: typ, Valid: Types()}
	}
	periodic, err := cfg.Bool("periodic", false)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	switch {
	case cfg.Has("values"):
		v, _ := cfg.Lookup("values")
		if entries, err = rows(v); err != nil {
			return nil, err
		}
	case cfg.Has("file"):
		file, err := cfg.String("file")
		if err != nil {
			return nil, err
		}
		opts := FileOptions{}
		if opts.TimeColumn, err = cfg.Int("timeColumn", 0); err != nil {
			return nil, err
		}
		if cfg.Has("valueColumns") {
			if opts.ValueColumns, err = cfg.Ints("valueColumns"); err != nil {
				return nil, err
			}
		}
		if opts.Sheet, err = cfg.StringDefault("sheet", ""); err != nil {
			return nil, err
		}
		if entries, err = ReadFile(file, opts); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("interpolation: table needs either \"values\" or \"file\"")
	}
	t, err := cstr(entries, periodic)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// rows converts a list of [x, v1, v2, ...] rows into table entries.
func rows(v interface{}) ([]Entry, error) {
	rs, err := cast.ToSliceE(v)
	if err != nil {
		if fs, ok := v.([][]float64); ok {
			rs = make([]interface{}, len(fs))
			for i, f := range fs {
				rs[i] = f
			}
		} else {
			return nil, fmt.Errorf("interpolation: values: %v", err)
		}
	}
	o := make([]Entry, len(rs))
	for i, r := range rs {
		var row []float64
		if f, ok := r.([]float64); ok {
			row = f
		} else {
			items, err := cast.ToSliceE(r)
			if err != nil {
				return nil, fmt.Errorf("interpolation: values row %d: %v", i, err)
			}
			row = make([]float64, len(items))
			for j, item := range items {
				if row[j], err = cast.ToFloat64E(item); err != nil {
					return nil, fmt.Errorf("interpolation: values row %d: %v", i, err)
				}
			}
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("interpolation: values row %d has %d items but needs at least 2", i, len(row))
		}
		o[i] = Entry{X: row[0], V: row[1:]}
	}
	return o, nil
}
