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

package rsr

import (
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

func TestDict(t *testing.T) {
	d := Dict{
		"a":      int64(3),
		"b":      1.5,
		"s":      "CoatsNo",
		"names":  []interface{}{"water", "oil"},
		"one":    "water",
		"ids":    []interface{}{int64(0), int64(4)},
		"field":  []interface{}{1.0, int64(2), 3.0},
		"flag":   true,
		"nested": map[string]interface{}{"x": 2.0},
		"list": []map[string]interface{}{
			{"name": "INJ1"},
			{"name": "PROD1"},
		},
	}
	if v, err := d.Float("a"); err != nil || v != 3 {
		t.Errorf("a=%g (%v)", v, err)
	}
	if v, err := d.FloatDefault("missing", 7); err != nil || v != 7 {
		t.Errorf("missing=%g (%v)", v, err)
	}
	if v, err := d.StringDefault("s", "x"); err != nil || v != "CoatsNo" {
		t.Errorf("s=%s (%v)", v, err)
	}
	if v, err := d.Int("a", 0); err != nil || v != 3 {
		t.Errorf("a=%d (%v)", v, err)
	}
	if v, err := d.Bool("flag", false); err != nil || !v {
		t.Errorf("flag=%v (%v)", v, err)
	}
	if v, err := d.Strings("names"); err != nil || !reflect.DeepEqual(v, []string{"water", "oil"}) {
		t.Errorf("names=%v (%v)", v, err)
	}
	if v, err := d.Strings("one"); err != nil || !reflect.DeepEqual(v, []string{"water"}) {
		t.Errorf("one=%v (%v)", v, err)
	}
	if v, err := d.Ints("ids"); err != nil || !reflect.DeepEqual(v, []int{0, 4}) {
		t.Errorf("ids=%v (%v)", v, err)
	}
	if v, err := d.Field("field", 3); err != nil || !reflect.DeepEqual(v, []float64{1, 2, 3}) {
		t.Errorf("field=%v (%v)", v, err)
	}
	if v, err := d.Field("b", 2); err != nil || !reflect.DeepEqual(v, []float64{1.5, 1.5}) {
		t.Errorf("uniform field=%v (%v)", v, err)
	}
	if _, err := d.Field("field", 4); err == nil {
		t.Error("field of the wrong length should fail")
	}
	sub, err := d.Sub("nested")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := sub.Float("x"); v != 2 {
		t.Errorf("nested x=%g", v)
	}
	if sub, err := d.SubDefault("missing"); err != nil || len(sub) != 0 {
		t.Errorf("missing sub=%v (%v)", sub, err)
	}
	if _, err := d.Sub("s"); err == nil {
		t.Error("string should not be a dictionary")
	}
	l, err := d.List("list")
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(l, []Dict{{"name": "INJ1"}, {"name": "PROD1"}}); len(diff) != 0 {
		t.Errorf("list: %v", diff)
	}
	if _, err := d.List("names"); err == nil {
		t.Error("list of strings should not be a list of dictionaries")
	}
	if _, err := d.Float("missing"); err == nil || err.Error() != `rsr: missing configuration key "missing"` {
		t.Errorf("missing key error: %v", err)
	}
	want := []string{"a", "b", "field", "flag", "ids", "list", "names", "nested", "one", "s"}
	if k := d.Keys(); !reflect.DeepEqual(k, want) {
		t.Errorf("keys %v", k)
	}
}

func TestUnknownTypeError(t *testing.T) {
	err := &UnknownTypeError{Family: "CFL method", Type: "Courant", Valid: []string{"CoatsNo", "ConvectiveCourantNo"}}
	want := `unknown CFL method type "Courant"; valid types are: CoatsNo, ConvectiveCourantNo`
	if err.Error() != want {
		t.Errorf("have %s, want %s", err, want)
	}
}

func TestFieldTable(t *testing.T) {
	var ft FieldTable
	kr := ft.Add("water.kr", 3)
	kr[1] = 0.5
	ft.Add("oil.kr", 3)
	if again := ft.Add("water.kr", 3); again[1] != 0.5 {
		t.Error("adding an existing field should return it")
	}
	if !reflect.DeepEqual(ft.FieldNames(), []string{"water.kr", "oil.kr"}) {
		t.Errorf("names %v", ft.FieldNames())
	}
	if f, err := ft.Field("water.kr"); err != nil || f[1] != 0.5 {
		t.Errorf("field %v (%v)", f, err)
	}
	if ft.Has("gas.kr") {
		t.Error("gas.kr should not exist")
	}
	if _, err := ft.Field("gas.kr"); err == nil || err.Error() != `rsr: no field named "gas.kr"; available fields are [oil.kr water.kr]` {
		t.Errorf("missing field error: %v", err)
	}
}
