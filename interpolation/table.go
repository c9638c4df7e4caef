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

// Package interpolation provides tables of vector values indexed by a
// scalar abscissa, such as time schedules and saturation tables.
package interpolation

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfRange is returned when a table is queried outside its range.
	ErrOutOfRange = errors.New("interpolation: value out of range")

	// ErrSizeMismatch is returned when two neighbouring entries have
	// value vectors of different lengths.
	ErrSizeMismatch = errors.New("interpolation: mismatched vector size")

	// ErrNotMonotonic is returned when the abscissas of a table are not
	// strictly increasing.
	ErrNotMonotonic = errors.New("interpolation: abscissas are not strictly increasing")

	// ErrEmpty is returned when a table has no entries.
	ErrEmpty = errors.New("interpolation: table is empty")
)

// Entry is a table row: an abscissa and the values stored at it.
type Entry struct {
	X float64
	V []float64
}

// Table is an interpolation table.
type Table interface {
	// LookupIndex returns the index of the first entry whose abscissa is
	// not less than x, after projecting x into the table range if the
	// table is periodic.
	LookupIndex(x float64) (int, error)

	// Interpolate returns the value vector at x.
	Interpolate(x float64) ([]float64, error)

	// DeltaT returns the distance from x to the next abscissa, or 0 if x
	// is at or after the last entry.
	DeltaT(x float64) (float64, error)

	// Entries returns the table rows.
	Entries() []Entry

	// Periodic returns whether the table repeats past its last entry.
	Periodic() bool
}

// table holds the state shared by all table variants.
type table struct {
	entries  []Entry
	periodic bool
}

func newTable(entries []Entry, periodic bool) (table, error) {
	if len(entries) == 0 {
		return table{}, ErrEmpty
	}
	for i := 1; i < len(entries); i++ {
		if !(entries[i].X > entries[i-1].X) {
			return table{}, fmt.Errorf("%w: entry %d has x=%g after x=%g", ErrNotMonotonic, i, entries[i].X, entries[i-1].X)
		}
	}
	return table{entries: entries, periodic: periodic}, nil
}

func (t *table) Entries() []Entry { return t.entries }

func (t *table) Periodic() bool { return t.periodic }

func (t *table) first() float64 { return t.entries[0].X }
func (t *table) last() float64  { return t.entries[len(t.entries)-1].X }

// project maps x into the range of the table.
func (t *table) project(x float64) (float64, error) {
	if x < t.first() {
		return 0, fmt.Errorf("%w: got %g but the table starts at %g", ErrOutOfRange, x, t.first())
	}
	if x <= t.last() {
		return x, nil
	}
	if !t.periodic {
		return 0, fmt.Errorf("%w: got %g but the table ends at %g", ErrOutOfRange, x, t.last())
	}
	span := t.last() - t.first()
	if span == 0 {
		return t.last(), nil
	}
	return x - math.Ceil((x-t.last())/span)*span, nil
}

func (t *table) LookupIndex(x float64) (int, error) {
	xp, err := t.project(x)
	if err != nil {
		return -1, err
	}
	lo, hi := 0, len(t.entries)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if t.entries[mid].X >= xp {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, nil
}

// bracket returns the index of the first entry not less than x and whether
// x is exactly at that entry.
func (t *table) bracket(x float64) (i int, exact bool, xp float64, err error) {
	if xp, err = t.project(x); err != nil {
		return
	}
	if i, err = t.LookupIndex(xp); err != nil {
		return
	}
	return i, t.entries[i].X == xp, xp, nil
}

func (t *table) DeltaT(x float64) (float64, error) {
	i, exact, xp, err := t.bracket(x)
	if err != nil {
		return 0, err
	}
	if exact {
		i++
	}
	if i >= len(t.entries) {
		return 0, nil
	}
	return t.entries[i].X - xp, nil
}

// Linear is a table that interpolates linearly between entries.
type Linear struct {
	table
}

// NewLinear returns a linear table holding entries, which must have
// strictly increasing abscissas.
func NewLinear(entries []Entry, periodic bool) (*Linear, error) {
	t, err := newTable(entries, periodic)
	if err != nil {
		return nil, err
	}
	return &Linear{table: t}, nil
}

// Interpolate returns the component-wise linear interpolation of the two
// entries bracketing x.
func (t *Linear) Interpolate(x float64) ([]float64, error) {
	if len(t.entries) == 1 {
		return t.entries[0].V, nil
	}
	i, exact, xp, err := t.bracket(x)
	if err != nil {
		return nil, err
	}
	if exact {
		return t.entries[i].V, nil
	}
	lo, hi := t.entries[i-1], t.entries[i]
	if len(lo.V) != len(hi.V) {
		return nil, fmt.Errorf("%w: %d values at x=%g and %d at x=%g", ErrSizeMismatch, len(lo.V), lo.X, len(hi.V), hi.X)
	}
	w := (xp - lo.X) / (hi.X - lo.X)
	o := make([]float64, len(lo.V))
	for j := range o {
		o[j] = lo.V[j] + w*(hi.V[j]-lo.V[j])
	}
	return o, nil
}

// Stepped is a table whose value is constant between entries.
type Stepped struct {
	table
}

// NewStepped returns a stepped table holding entries, which must have
// strictly increasing abscissas.
func NewStepped(entries []Entry, periodic bool) (*Stepped, error) {
	t, err := newTable(entries, periodic)
	if err != nil {
		return nil, err
	}
	return &Stepped{table: t}, nil
}

// Interpolate returns the values of the entry at x, or of the entry
// immediately below x.
func (t *Stepped) Interpolate(x float64) ([]float64, error) {
	if len(t.entries) == 1 {
		return t.entries[0].V, nil
	}
	i, exact, _, err := t.bracket(x)
	if err != nil {
		return nil, err
	}
	if exact {
		return t.entries[i].V, nil
	}
	return t.entries[i-1].V, nil
}
