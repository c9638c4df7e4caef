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
	"strings"

	"github.com/spf13/cast"
)

// Dict is a nested key-value configuration, as decoded from a TOML case
// file. Sub-dictionaries are Dicts (or map[string]interface{}), lists of
// sub-dictionaries are []interface{} or []map[string]interface{}.
type Dict map[string]interface{}

// Has returns whether key is present in d.
func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Lookup returns the raw value stored under key.
func (d Dict) Lookup(key string) (interface{}, error) {
	v, ok := d[key]
	if !ok {
		return nil, fmt.Errorf("rsr: missing configuration key %q", key)
	}
	return v, nil
}

// Float returns the value under key as a float64.
func (d Dict) Float(key string) (float64, error) {
	v, err := d.Lookup(key)
	if err != nil {
		return 0, err
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("rsr: configuration key %q: %v", key, err)
	}
	return f, nil
}

// FloatDefault returns the value under key as a float64, or def if
// key is not present.
func (d Dict) FloatDefault(key string, def float64) (float64, error) {
	if !d.Has(key) {
		return def, nil
	}
	return d.Float(key)
}

// String returns the value under key as a string.
func (d Dict) String(key string) (string, error) {
	v, err := d.Lookup(key)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("rsr: configuration key %q: %v", key, err)
	}
	return s, nil
}

// StringDefault returns the value under key as a string, or def if
// key is not present.
func (d Dict) StringDefault(key, def string) (string, error) {
	if !d.Has(key) {
		return def, nil
	}
	return d.String(key)
}

// Bool returns the value under key as a bool, or def if key is not present.
func (d Dict) Bool(key string, def bool) (bool, error) {
	if !d.Has(key) {
		return def, nil
	}
	b, err := cast.ToBoolE(d[key])
	if err != nil {
		return false, fmt.Errorf("rsr: configuration key %q: %v", key, err)
	}
	return b, nil
}

// Int returns the value under key as an int, or def if key is not present.
func (d Dict) Int(key string, def int) (int, error) {
	if !d.Has(key) {
		return def, nil
	}
	i, err := cast.ToIntE(d[key])
	if err != nil {
		return 0, fmt.Errorf("rsr: configuration key %q: %v", key, err)
	}
	return i, nil
}

// Strings returns the value under key as a list of strings.
// A single string is returned as a list of length one.
func (d Dict) Strings(key string) ([]string, error) {
	v, err := d.Lookup(key)
	if err != nil {
		return nil, err
	}
	if s, ok := v.(string); ok {
		return []string{s}, nil
	}
	s, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("rsr: configuration key %q: %v", key, err)
	}
	return s, nil
}

// Floats returns the value under key as a list of float64s.
func (d Dict) Floats(key string) ([]float64, error) {
	v, err := d.Lookup(key)
	if err != nil {
		return nil, err
	}
	return toFloats(key, v)
}

// Ints returns the value under key as a list of ints.
func (d Dict) Ints(key string) ([]int, error) {
	v, err := d.Lookup(key)
	if err != nil {
		return nil, err
	}
	s, err := cast.ToSliceE(v)
	if err != nil {
		if is, ok := v.([]int); ok {
			return is, nil
		}
		return nil, fmt.Errorf("rsr: configuration key %q: %v", key, err)
	}
	o := make([]int, len(s))
	for i, vv := range s {
		if o[i], err = cast.ToIntE(vv); err != nil {
			return nil, fmt.Errorf("rsr: configuration key %q item %d: %v", key, i, err)
		}
	}
	return o, nil
}

// Field returns a per-cell field of length n from the value under key,
// which may be a single number (broadcast to every cell) or a list of
// exactly n numbers.
func (d Dict) Field(key string, n int) ([]float64, error) {
	v, err := d.Lookup(key)
	if err != nil {
		return nil, err
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return Uniform(f, n), nil
	}
	o, err := toFloats(key, v)
	if err != nil {
		return nil, err
	}
	if len(o) != n {
		return nil, fmt.Errorf("rsr: configuration key %q has %d values but there are %d cells", key, len(o), n)
	}
	return o, nil
}

// FieldDefault is like Field but returns a uniform field with value def
// when key is not present.
func (d Dict) FieldDefault(key string, def float64, n int) ([]float64, error) {
	if !d.Has(key) {
		return Uniform(def, n), nil
	}
	return d.Field(key, n)
}

// Sub returns the sub-dictionary stored under key.
func (d Dict) Sub(key string) (Dict, error) {
	v, err := d.Lookup(key)
	if err != nil {
		return nil, err
	}
	s, ok := toDict(v)
	if !ok {
		return nil, fmt.Errorf("rsr: configuration key %q is not a dictionary", key)
	}
	return s, nil
}

// SubDefault returns the sub-dictionary stored under key, or an empty
// Dict if key is not present.
func (d Dict) SubDefault(key string) (Dict, error) {
	if !d.Has(key) {
		return Dict{}, nil
	}
	return d.Sub(key)
}

// List returns the list of sub-dictionaries stored under key.
func (d Dict) List(key string) ([]Dict, error) {
	v, err := d.Lookup(key)
	if err != nil {
		return nil, err
	}
	switch vv := v.(type) {
	case []Dict:
		return vv, nil
	case []map[string]interface{}:
		o := make([]Dict, len(vv))
		for i, m := range vv {
			o[i] = Dict(m)
		}
		return o, nil
	case []interface{}:
		o := make([]Dict, len(vv))
		for i, m := range vv {
			var ok bool
			if o[i], ok = toDict(m); !ok {
				return nil, fmt.Errorf("rsr: entry %d of %q is not a valid dictionary", i, key)
			}
		}
		return o, nil
	}
	return nil, fmt.Errorf("rsr: configuration key %q is not a list of dictionaries", key)
}

// Keys returns the sorted keys of d.
func (d Dict) Keys() []string {
	k := make([]string, 0, len(d))
	for kk := range d {
		k = append(k, kk)
	}
	sort.Strings(k)
	return k
}

func toDict(v interface{}) (Dict, bool) {
	switch vv := v.(type) {
	case Dict:
		return vv, true
	case map[string]interface{}:
		return Dict(vv), true
	}
	return nil, false
}

func toFloats(key string, v interface{}) ([]float64, error) {
	if f, ok := v.([]float64); ok {
		return f, nil
	}
	s, err := cast.ToSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("rsr: configuration key %q: %v", key, err)
	}
	o := make([]float64, len(s))
	for i, vv := range s {
		if o[i], err = cast.ToFloat64E(vv); err != nil {
			return nil, fmt.Errorf("rsr: configuration key %q item %d: %v", key, i, err)
		}
	}
	return o, nil
}

// Uniform returns a field of length n with every value set to v.
func Uniform(v float64, n int) []float64 {
	o := make([]float64, n)
	for i := range o {
		o[i] = v
	}
	return o
}

// UnknownTypeError is returned by model factories when a type tag is not
// registered.
type UnknownTypeError struct {
	Family string   // e.g. "relative permeability model"
	Type   string   // the requested type
	Valid  []string // registered types
}

func (e *UnknownTypeError) Error() string {
	v := append([]string(nil), e.Valid...)
	sort.Strings(v)
	return fmt.Sprintf("unknown %s type %q; valid types are: %s", e.Family, e.Type, strings.Join(v, ", "))
}
