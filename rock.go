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
	"math"
)

// RockKind is the anisotropy class of a rock's permeability.
type RockKind int

// Anisotropy classes.
const (
	Isotropic RockKind = iota
	DiagonalAnisotropic
	FullAnisotropic
)

func (k RockKind) String() string {
	switch k {
	case Isotropic:
		return "isotropic"
	case DiagonalAnisotropic:
		return "diagonalAnisotropic"
	case FullAnisotropic:
		return "anisotropic"
	}
	return fmt.Sprintf("RockKind(%d)", int(k))
}

// rockTypes maps the "rockType" configuration tag to an anisotropy class.
var rockTypes = map[string]RockKind{
	"standard":            Isotropic,
	"diagonalAnisotropic": DiagonalAnisotropic,
	"anisotropic":         FullAnisotropic,
}

// Rock holds the per-cell properties of the porous medium.
type Rock struct {
	Name string
	Kind RockKind

	Porosity        []float64 // [-]
	Compressibility []float64 // [1/Pa]

	K     []float64    // isotropic permeability [m²]
	KDiag []Vector     // principal permeabilities of diagonal-anisotropic rock [m²]
	KFull [][9]float64 // row-major permeability tensors [m²]

	// Incompressible rock keeps its initial porosity regardless of pressure.
	Incompressible bool

	// ReferencePressure is the pressure at which Porosity was specified.
	ReferencePressure float64

	poro0 []float64
}

// NewRock creates a rock for a mesh with n cells from its configuration.
// Porosity and compressibility may be uniform or per cell. Permeability is a
// single value or one per cell for "standard" rock; three principal values
// (or 3n values, cell by cell) for "diagonalAnisotropic" rock; and nine
// tensor components (or 9n) for "anisotropic" rock.
func NewRock(name string, cfg Dict, n int) (*Rock, error) {
	typ, err := cfg.StringDefault("rockType", "standard")
	if err != nil {
		return nil, err
	}
	kind, ok := rockTypes[typ]
	if !ok {
		valid := make([]string, 0, len(rockTypes))
		for k := range rockTypes {
			valid = append(valid, k)
		}
		return nil, &UnknownTypeError{Family: "rock", Type: typ, Valid: valid}
	}
	r := &Rock{Name: name, Kind: kind}
	if r.Porosity, err = cfg.Field("porosity", n); err != nil {
		return nil, fmt.Errorf("rsr: rock %s: %v", name, err)
	}
	for i, p := range r.Porosity {
		if p <= 0 || p > 1 {
			return nil, fmt.Errorf("rsr: rock %s: porosity in cell %d is %g but should be in (0, 1]", name, i, p)
		}
	}
	r.poro0 = append([]float64(nil), r.Porosity...)
	if r.Compressibility, err = cfg.FieldDefault("compressibility", 0, n); err != nil {
		return nil, fmt.Errorf("rsr: rock %s: %v", name, err)
	}
	if r.Incompressible, err = cfg.Bool("incompressible", false); err != nil {
		return nil, err
	}
	if r.ReferencePressure, err = cfg.FloatDefault("referencePressure", 0); err != nil {
		return nil, err
	}

	switch kind {
	case Isotropic:
		if r.K, err = cfg.Field("permeability", n); err != nil {
			return nil, fmt.Errorf("rsr: rock %s: %v", name, err)
		}
	case DiagonalAnisotropic:
		k, err := permComponents(cfg, 3, n)
		if err != nil {
			return nil, fmt.Errorf("rsr: rock %s: %v", name, err)
		}
		r.KDiag = make([]Vector, n)
		for i := range r.KDiag {
			r.KDiag[i] = Vector{k[3*i], k[3*i+1], k[3*i+2]}
		}
	case FullAnisotropic:
		k, err := permComponents(cfg, 9, n)
		if err != nil {
			return nil, fmt.Errorf("rsr: rock %s: %v", name, err)
		}
		r.KFull = make([][9]float64, n)
		for i := range r.KFull {
			copy(r.KFull[i][:], k[9*i:9*i+9])
		}
	}
	return r, nil
}

// permComponents reads a permeability given as nc components, either
// uniform (nc values) or per cell (nc*n values), and returns nc*n values.
func permComponents(cfg Dict, nc, n int) ([]float64, error) {
	k, err := cfg.Floats("permeability")
	if err != nil {
		return nil, err
	}
	switch len(k) {
	case nc * n:
		return k, nil
	case nc:
		o := make([]float64, nc*n)
		for i := 0; i < n; i++ {
			copy(o[nc*i:], k)
		}
		return o, nil
	}
	return nil, fmt.Errorf("permeability has %d values but should have %d or %d", len(k), nc, nc*n)
}

// NCells returns the number of cells the rock is defined on.
func (r *Rock) NCells() int { return len(r.Porosity) }

// Correct updates the porosity for pressure field p using the rock
// compressibility: φ = φ₀(1 + c(p - pRef)).
func (r *Rock) Correct(p []float64) error {
	if r.Incompressible {
		return nil
	}
	if len(p) != len(r.Porosity) {
		return fmt.Errorf("rsr: rock %s: pressure has %d values but there are %d cells", r.Name, len(p), len(r.Porosity))
	}
	for i, c := range r.Compressibility {
		if c == 0 {
			continue
		}
		r.Porosity[i] = r.poro0[i] * (1 + c*(p[i]-r.ReferencePressure))
	}
	return nil
}

// KMag returns a scalar permeability for the given cell. For anisotropic
// rock it is the largest diagonal component.
func (r *Rock) KMag(cell int) float64 {
	switch r.Kind {
	case DiagonalAnisotropic:
		k := r.KDiag[cell]
		return math.Max(k.X, math.Max(k.Y, k.Z))
	case FullAnisotropic:
		k := r.KFull[cell]
		return math.Max(k[0], math.Max(k[4], k[8]))
	}
	return r.K[cell]
}

// Directional returns the permeability of the given cell in the direction
// of the unit vector n: n·K·n.
func (r *Rock) Directional(cell int, n Vector) float64 {
	switch r.Kind {
	case DiagonalAnisotropic:
		k := r.KDiag[cell]
		return n.X*n.X*k.X + n.Y*n.Y*k.Y + n.Z*n.Z*k.Z
	case FullAnisotropic:
		k := r.KFull[cell]
		var s float64
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				s += n.Component(i) * k[3*i+j] * n.Component(j)
			}
		}
		return s
	}
	return r.K[cell]
}

// FaceK returns the harmonic mean of the owner and neighbour permeabilities
// normal to each internal face of m.
func (r *Rock) FaceK(m Mesh) []float64 {
	faces := m.InternalFaces()
	o := make([]float64, len(faces))
	for i, f := range faces {
		n := f.Area.Scale(1 / f.Area.Mag())
		ko := r.Directional(f.Owner, n)
		kn := r.Directional(f.Neighbour, n)
		if ko+kn > 0 {
			o[i] = 2 * ko * kn / (ko + kn)
		}
	}
	return o
}
