// Copyright (C) 2026, VigilantDoomer
//
// This file is part of SphereBSP program.
//
// SphereBSP is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// SphereBSP is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with SphereBSP.  If not, see <https://www.gnu.org/licenses/>.
package circular

import (
	"math"

	"github.com/golang/geo/s1"

	"github.com/vigilantdoomer/spherebsp/bsp"
)

// Arc is a single connected interval of the circle. Bounds are in radians,
// Inf is normalized into [0, 2π) and Sup lies within 2π above it
type Arc struct {
	lower     float64
	upper     float64
	middle    float64
	tolerance float64
}

// NewArc creates the arc going counterclockwise from lower to upper. Equal
// bounds, as well as bounds at least 2π apart, give the full circle
func NewArc(lower, upper, tolerance float64) (Arc, error) {
	if err := bsp.CheckTolerance(tolerance); err != nil {
		return Arc{}, err
	}
	a := Arc{tolerance: tolerance}
	if lower == upper || upper-lower >= TWO_PI {
		// the full circle
		a.lower = 0
		a.upper = TWO_PI
		a.middle = math.Pi
	} else if lower <= upper {
		a.lower = NormalizeAngle(lower, math.Pi)
		a.upper = a.lower + (upper - lower)
		a.middle = 0.5 * (a.lower + a.upper)
	} else {
		return Arc{}, &IntervalError{Lower: lower, Upper: upper}
	}
	return a, nil
}

// MustNewArc is NewArc for bounds known to be valid, it panics otherwise
func MustNewArc(lower, upper, tolerance float64) Arc {
	a, err := NewArc(lower, upper, tolerance)
	if err != nil {
		bsp.InternalError("arc [%g, %g]: %v", lower, upper, err)
	}
	return a
}

func (a Arc) Inf() float64 {
	return a.lower
}

func (a Arc) Sup() float64 {
	return a.upper
}

func (a Arc) Size() float64 {
	return a.upper - a.lower
}

func (a Arc) Barycenter() float64 {
	return a.middle
}

func (a Arc) Tolerance() float64 {
	return a.tolerance
}

// CheckPoint locates an angle with respect to the arc. On a full circle
// nothing lies on the boundary
func (a Arc) CheckPoint(point s1.Angle) bsp.Location {
	p := NormalizeAngle(point.Radians(), a.middle)
	if p < a.lower-a.tolerance || p > a.upper+a.tolerance {
		return bsp.Outside
	}
	if p > a.lower+a.tolerance && p < a.upper-a.tolerance {
		return bsp.Inside
	}
	if a.Size() >= TWO_PI-a.tolerance {
		return bsp.Inside
	}
	return bsp.Boundary
}
