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

// Package bsp is the dimension independent binary space partitioning engine
// regions on the circle and on the sphere are built upon. P is the point
// type of the space being partitioned.
//
// Sign convention used everywhere: the inside of a region lies on the MINUS
// side of the cut hyperplanes, the outside lies on the PLUS side
package bsp

import (
	"math"
)

// Smallest tolerance that regions accept, ulp(4π). Anything smaller can't
// be distinguished from zero when comparing angles on the circle or sphere
var SmallestTolerance = math.Nextafter(4*math.Pi, math.Inf(1)) - 4*math.Pi

// Location of a point relative to a region
type Location uint8

const (
	Inside Location = iota
	Outside
	Boundary
)

func (l Location) String() string {
	switch l {
	case Inside:
		return "INSIDE"
	case Outside:
		return "OUTSIDE"
	case Boundary:
		return "BOUNDARY"
	}
	return "UNKNOWN"
}

// Side of an object relative to a hyperplane
type Side uint8

const (
	Plus Side = iota
	Minus
	Both
	// Hyper means the object lies on the hyperplane itself
	Hyper
)

func (s Side) String() string {
	switch s {
	case Plus:
		return "PLUS"
	case Minus:
		return "MINUS"
	case Both:
		return "BOTH"
	case Hyper:
		return "HYPER"
	}
	return "UNKNOWN"
}

// Hyperplane of the space: a limit angle on the circle, a great circle on
// the sphere
type Hyperplane[P any] interface {
	// Offset is signed: positive on the plus side, negative on the minus
	// side, zero on the hyperplane
	Offset(point P) float64
	// WholeHyperplane is a sub-hyperplane covering the entire hyperplane
	WholeHyperplane() SubHyperplane[P]
	Tolerance() float64
}

// SubHyperplane is a portion of a hyperplane. Implementations are immutable
type SubHyperplane[P any] interface {
	Hyperplane() Hyperplane[P]
	// Split cuts the sub-hyperplane in two with the given hyperplane.
	// Parts that do not exist are nil
	Split(h Hyperplane[P]) SplitSubHyperplane[P]
	// Reunite computes the union with a sub-hyperplane lying on the same
	// hyperplane
	Reunite(other SubHyperplane[P]) SubHyperplane[P]
	IsEmpty() bool
	Size() float64
}

// SplitSubHyperplane holds both parts of a split sub-hyperplane
type SplitSubHyperplane[P any] struct {
	Plus  SubHyperplane[P]
	Minus SubHyperplane[P]
}

func (s SplitSubHyperplane[P]) Side() Side {
	if s.Plus != nil {
		if s.Minus != nil {
			return Both
		}
		return Plus
	}
	if s.Minus != nil {
		return Minus
	}
	return Hyper
}
