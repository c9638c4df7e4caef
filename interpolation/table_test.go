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
	"math"
	"testing"

	"github.com/kr/pretty"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func testEntries() []Entry {
	return []Entry{
		{X: 0, V: []float64{1, 10}},
		{X: 2, V: []float64{3, 20}},
		{X: 10, V: []float64{-1, 40}},
	}
}

func TestMonotonicity(t *testing.T) {
	for _, test := range []struct {
		name string
		x    []float64
		ok   bool
	}{
		{name: "increasing", x: []float64{0, 1, 2}, ok: true},
		{name: "single", x: []float64{5}, ok: true},
		{name: "duplicate", x: []float64{0, 1, 1}, ok: false},
		{name: "decreasing", x: []float64{0, 2, 1}, ok: false},
	} {
		t.Run(test.name, func(t *testing.T) {
			e := make([]Entry, len(test.x))
			for i, x := range test.x {
				e[i] = Entry{X: x, V: []float64{x}}
			}
			_, errL := NewLinear(e, false)
			_, errS := NewStepped(e, true)
			for _, err := range []error{errL, errS} {
				if test.ok && err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if !test.ok && !errors.Is(err, ErrNotMonotonic) {
					t.Errorf("want ErrNotMonotonic, have %v", err)
				}
			}
		})
	}
}

func TestLinear(t *testing.T) {
	tbl, err := NewLinear(testEntries(), false)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		x    float64
		want []float64
	}{
		{x: 0, want: []float64{1, 10}},
		{x: 1, want: []float64{2, 15}},
		{x: 2, want: []float64{3, 20}},
		{x: 6, want: []float64{1, 30}},
		{x: 10, want: []float64{-1, 40}},
	} {
		have, err := tbl.Interpolate(test.x)
		if err != nil {
			t.Fatal(err)
		}
		if diff := pretty.Diff(have, test.want); len(diff) != 0 {
			t.Errorf("x=%g: %v", test.x, diff)
		}
	}
}

func TestStepped(t *testing.T) {
	tbl, err := NewStepped(testEntries(), false)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		x    float64
		want []float64
	}{
		{x: 0, want: []float64{1, 10}},
		{x: 1.999, want: []float64{1, 10}},
		{x: 2, want: []float64{3, 20}},
		{x: 9, want: []float64{3, 20}},
		{x: 10, want: []float64{-1, 40}},
	} {
		have, err := tbl.Interpolate(test.x)
		if err != nil {
			t.Fatal(err)
		}
		if diff := pretty.Diff(have, test.want); len(diff) != 0 {
			t.Errorf("x=%g: %v", test.x, diff)
		}
	}
}

func TestLookupIndex(t *testing.T) {
	tbl, err := NewLinear(testEntries(), false)
	if err != nil {
		t.Fatal(err)
	}
	for x, want := range map[float64]int{0: 0, 0.5: 1, 2: 1, 2.1: 2, 10: 2} {
		have, err := tbl.LookupIndex(x)
		if err != nil {
			t.Fatal(err)
		}
		if have != want {
			t.Errorf("x=%g: have %d, want %d", x, have, want)
		}
	}
	for _, x := range []float64{-1, 10.5} {
		if _, err := tbl.LookupIndex(x); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("x=%g: want ErrOutOfRange, have %v", x, err)
		}
		if _, err := tbl.Interpolate(x); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("x=%g: want ErrOutOfRange, have %v", x, err)
		}
	}
}

func TestPeriodic(t *testing.T) {
	const span = 10.
	for _, tbl := range []Table{
		func() Table { t, _ := NewLinear(testEntries(), true); return t }(),
		func() Table { t, _ := NewStepped(testEntries(), true); return t }(),
	} {
		for _, delta := range []float64{0.5, 1, 3.25, 7.5} {
			want, err := tbl.Interpolate(delta)
			if err != nil {
				t.Fatal(err)
			}
			for k := 0; k < 4; k++ {
				x := 10 + float64(k)*span + delta
				have, err := tbl.Interpolate(x)
				if err != nil {
					t.Fatal(err)
				}
				for i := range want {
					if different(have[i], want[i], 1e-10) {
						t.Errorf("%T x=%g: have %v, want %v", tbl, x, have, want)
					}
				}
			}
		}
		// A whole number of periods past the end maps onto the last entry.
		have, err := tbl.Interpolate(30)
		if err != nil {
			t.Fatal(err)
		}
		if diff := pretty.Diff(have, []float64{-1, 40}); len(diff) != 0 {
			t.Errorf("%T: %v", tbl, diff)
		}
	}
}

func TestSizeMismatch(t *testing.T) {
	tbl, err := NewLinear([]Entry{
		{X: 0, V: []float64{1}},
		{X: 1, V: []float64{1, 2}},
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Interpolate(0.5); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("want ErrSizeMismatch, have %v", err)
	}
	if v, err := tbl.Interpolate(1); err != nil || len(v) != 2 {
		t.Errorf("exact abscissa: %v, %v", v, err)
	}
}

func TestSingleEntry(t *testing.T) {
	tbl, err := NewLinear([]Entry{{X: 5, V: []float64{7}}}, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{5, 100} {
		v, err := tbl.Interpolate(x)
		if err != nil {
			t.Fatal(err)
		}
		if v[0] != 7 {
			t.Errorf("x=%g: have %v", x, v)
		}
	}
}

func TestDeltaT(t *testing.T) {
	tbl, err := NewStepped(testEntries(), true)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		x, want float64
	}{
		{x: 0, want: 2},
		{x: 1, want: 1},
		{x: 2, want: 8},
		{x: 9.5, want: 0.5},
		{x: 10, want: 0},
		{x: 11, want: 1},
	} {
		have, err := tbl.DeltaT(test.x)
		if err != nil {
			t.Fatal(err)
		}
		if have != test.want {
			t.Errorf("x=%g: have %g, want %g", test.x, have, test.want)
		}
	}
}
