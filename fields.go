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
	"fmt"
	"sort"
)

// FieldTable holds named per-cell output fields owned by a model.
type FieldTable struct {
	names  []string
	fields map[string][]float64
}

// Add creates a zero-valued field of length n under name and returns it.
// Adding an existing name returns the existing field.
func (t *FieldTable) Add(name string, n int) []float64 {
	if t.fields == nil {
		t.fields = make(map[string][]float64)
	}
	if f, ok := t.fields[name]; ok {
		return f
	}
	f := make([]float64, n)
	t.fields[name] = f
	t.names = append(t.names, name)
	return f
}

// Field returns the field stored under name.
func (t *FieldTable) Field(name string) ([]float64, error) {
	f, ok := t.fields[name]
	if !ok {
		valid := append([]string(nil), t.names...)
		sort.Strings(valid)
		return nil, fmt.Errorf("rsr: no field named %q; available fields are %v", name, valid)
	}
	return f, nil
}

// Has returns whether a field called name exists.
func (t *FieldTable) Has(name string) bool {
	_, ok := t.fields[name]
	return ok
}

// FieldNames returns the field names in the order they were added.
func (t *FieldTable) FieldNames() []string { return t.names }
