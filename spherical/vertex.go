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
package spherical

import (
	"github.com/golang/geo/s2"
)

// Vertex is a point of a boundary loop, linking the edge arriving to it
// with the edge leaving it
type Vertex struct {
	location s2.Point
	incoming *Edge
	outgoing *Edge
}

func (v *Vertex) Location() s2.Point {
	return v.location
}

func (v *Vertex) Incoming() *Edge {
	return v.incoming
}

func (v *Vertex) Outgoing() *Edge {
	return v.outgoing
}

// Edge is an arc of great circle between two vertices of a boundary loop.
// The region inside lies on the left, on the pole side of the circle
type Edge struct {
	start  *Vertex
	end    *Vertex
	length float64
	circle *Circle
}

func (e *Edge) Start() *Vertex {
	return e.start
}

func (e *Edge) End() *Vertex {
	return e.end
}

func (e *Edge) Length() float64 {
	return e.length
}

func (e *Edge) Circle() *Circle {
	return e.circle
}

// PointAt is the point located alpha radians after the start of the edge
func (e *Edge) PointAt(alpha float64) s2.Point {
	return s2.Point{Vector: e.circle.PointAt(alpha + e.circle.Phase(e.start.location.Vector))}
}

// Loop calls f on every vertex of the loop v belongs to, starting with v.
// It stops early if f returns false
func (v *Vertex) Loop(f func(*Vertex) bool) {
	w := v
	for {
		if !f(w) {
			return
		}
		w = w.outgoing.end
		if w == v {
			return
		}
	}
}
