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

// Package circular implements regions of the unit circle: arcs, limit
// angles, and arbitrary sets of arcs partitioned by a BSP tree
package circular

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

const TWO_PI = 2 * math.Pi

// Smallest positive normal float64, used to decide whether a size is large
// enough to divide by
const SAFE_MIN = 0x1p-1022

// NormalizeAngle brings a into [center - π, center + π)
func NormalizeAngle(a, center float64) float64 {
	return a - TWO_PI*math.Floor((a+math.Pi-center)/TWO_PI)
}

// IntervalError is returned when an arc is requested with its lower bound
// above its upper bound
type IntervalError struct {
	Lower float64
	Upper float64
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("endpoints do not specify an interval: [%g, %g]",
		e.Lower, e.Upper)
}

// ErrInconsistentStateAt2PiWrapping is returned when a tree disagrees with
// itself about the point where the circle wraps around
var ErrInconsistentStateAt2PiWrapping = errors.New("inconsistent state at 2π wrapping")
