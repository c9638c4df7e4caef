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
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/kr/pretty"
	"github.com/spatialmodel/rsr"
	"github.com/tealeg/xlsx"
)

func TestNew(t *testing.T) {
	cfg := rsr.Dict{
		"interpolationType": "stepped",
		"periodic":          true,
		"values": []interface{}{
			[]interface{}{0, 1.5e6},
			[]interface{}{int64(100), 2.0e6},
		},
	}
	tbl, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tbl.(*Stepped); !ok {
		t.Errorf("want *Stepped, have %T", tbl)
	}
	if !tbl.Periodic() {
		t.Error("table should be periodic")
	}
	v, err := tbl.Interpolate(150)
	if err != nil {
		t.Fatal(err)
	}
	if v[0] != 1.5e6 {
		t.Errorf("have %g, want 1.5e6", v[0])
	}
}

func TestNewDefaults(t *testing.T) {
	tbl, err := New(rsr.Dict{"values": [][]float64{{0, 0}, {10, 1}}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tbl.(*Linear); !ok {
		t.Errorf("want *Linear, have %T", tbl)
	}
	if tbl.Periodic() {
		t.Error("table should not be periodic")
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(rsr.Dict{"interpolationType": "cubic", "values": [][]float64{{0, 1}}})
	var ute *rsr.UnknownTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("want UnknownTypeError, have %v", err)
	}
	if diff := pretty.Diff(ute.Valid, []string{"linear", "stepped"}); len(diff) != 0 {
		t.Error(diff)
	}
	if _, err := New(rsr.Dict{}); err == nil {
		t.Error("missing values and file should be an error")
	}
	if _, err := New(rsr.Dict{"values": [][]float64{{1, 1}, {0, 1}}}); !errors.Is(err, ErrNotMonotonic) {
		t.Errorf("want ErrNotMonotonic, have %v", err)
	}
	if _, err := New(rsr.Dict{"values": []interface{}{[]interface{}{1}}}); err == nil {
		t.Error("row without values should be an error")
	}
}

func TestReadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "interpolation")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	want := []Entry{
		{X: 0, V: []float64{1e6, 5}},
		{X: 86400, V: []float64{1.2e6, 6}},
		{X: 172800, V: []float64{1.1e6, 7}},
	}

	txt := filepath.Join(dir, "bhp.dat")
	if err := ioutil.WriteFile(txt, []byte("# BHP schedule\ntime bhp rate\n0 1e6 5\n\n86400\t1.2e6 6\n// comment\n172800 1.1e6 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	csv := filepath.Join(dir, "bhp.csv")
	if err := ioutil.WriteFile(csv, []byte("rate,time,bhp\n5,0,1e6\n6,86400,1.2e6\n7,172800,1.1e6\n"), 0644); err != nil {
		t.Fatal(err)
	}
	xl := filepath.Join(dir, "bhp.xlsx")
	f := xlsx.NewFile()
	s, err := f.AddSheet("schedule")
	if err != nil {
		t.Fatal(err)
	}
	hdr := s.AddRow()
	for _, h := range []string{"time", "bhp", "rate"} {
		hdr.AddCell().SetString(h)
	}
	for _, e := range want {
		row := s.AddRow()
		row.AddCell().SetFloat(e.X)
		for _, v := range e.V {
			row.AddCell().SetFloat(v)
		}
	}
	if err := f.Save(xl); err != nil {
		t.Fatal(err)
	}

	for _, test := range []struct {
		name string
		path string
		opts FileOptions
	}{
		{name: "text", path: txt},
		{name: "csv", path: csv, opts: FileOptions{TimeColumn: 1, ValueColumns: []int{2, 0}}},
		{name: "xlsx", path: xl, opts: FileOptions{Sheet: "schedule"}},
	} {
		t.Run(test.name, func(t *testing.T) {
			have, err := ReadFile(test.path, test.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(have) != len(want) {
				t.Fatalf("have %d entries, want %d", len(have), len(want))
			}
			for i := range want {
				if have[i].X != want[i].X {
					t.Errorf("row %d: x=%g, want %g", i, have[i].X, want[i].X)
				}
				for j := range want[i].V {
					if different(have[i].V[j], want[i].V[j], 1e-12) {
						t.Errorf("row %d: %v, want %v", i, have[i].V, want[i].V)
					}
				}
			}
		})
	}

	tbl, err := New(rsr.Dict{"file": txt, "valueColumns": []interface{}{1}})
	if err != nil {
		t.Fatal(err)
	}
	v, err := tbl.Interpolate(43200)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(v, []float64{1.1e6}); len(diff) != 0 {
		t.Error(diff)
	}
}

func TestReadFileNotMonotonic(t *testing.T) {
	dir, err := ioutil.TempDir("", "interpolation")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "bad.dat")
	if err := ioutil.WriteFile(path, []byte("0 1\n2 1\n1 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path, FileOptions{}); !errors.Is(err, ErrNotMonotonic) {
		t.Errorf("want ErrNotMonotonic, have %v", err)
	}
}
