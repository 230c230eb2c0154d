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

// Package spherical implements regions of the unit sphere bounded by arcs
// of great circles: hemispheres, polygons with any number of loops, and
// their geometrical properties
package spherical

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/vigilantdoomer/spherebsp/bsp"
	"github.com/vigilantdoomer/spherebsp/circular"
)

// Circle is an oriented great circle, the hyperplane of the sphere. Its
// inside (the minus side) is the hemisphere around the pole. x and y span
// the plane of the circle, phases are measured from x toward y
type Circle struct {
	pole      r3.Vector
	x         r3.Vector
	y         r3.Vector
	tolerance float64
}

// NewCircle builds the great circle of the given pole. The pole needs not
// be normalized but must not be zero
func NewCircle(pole r3.Vector, tolerance float64) *Circle {
	c := &Circle{tolerance: tolerance}
	c.pole = pole.Normalize()
	c.x = c.pole.Ortho()
	c.y = c.pole.Cross(c.x).Normalize()
	return c
}

// NewCircleThrough builds the great circle going from first to second, the
// inside being on the left when walking along it
func NewCircleThrough(first, second s2.Point, tolerance float64) *Circle {
	return NewCircle(first.Cross(second.Vector), tolerance)
}

func (c *Circle) Pole() r3.Vector {
	return c.pole
}

func (c *Circle) Tolerance() float64 {
	return c.tolerance
}

// Reverse returns the same circle with swapped inside and outside
func (c *Circle) Reverse() *Circle {
	return &Circle{pole: c.pole.Mul(-1), x: c.x, y: c.y.Mul(-1), tolerance: c.tolerance}
}

// SameOrientationAs tells whether both poles lie in the same hemisphere
func (c *Circle) SameOrientationAs(other *Circle) bool {
	return c.pole.Dot(other.pole) >= 0
}

// Phase of the projection of direction onto the circle plane, in [0, 2π]
func (c *Circle) Phase(direction r3.Vector) float64 {
	return math.Pi + math.Atan2(-direction.Dot(c.y), -direction.Dot(c.x))
}

// PointAt is the point of the circle at the given phase
func (c *Circle) PointAt(alpha float64) r3.Vector {
	return c.x.Mul(math.Cos(alpha)).Add(c.y.Mul(math.Sin(alpha)))
}

func (c *Circle) ToSubSpace(point s2.Point) s1.Angle {
	return s1.Angle(c.Phase(point.Vector))
}

func (c *Circle) ToSpace(phase s1.Angle) s2.Point {
	return s2.Point{Vector: c.PointAt(phase.Radians())}
}

// InsideArc is the half of this circle lying inside other
func (c *Circle) InsideArc(other *Circle) circular.Arc {
	alpha := c.Phase(other.pole)
	return circular.MustNewArc(alpha-math.Pi/2, alpha+math.Pi/2, c.tolerance)
}

// Offset is the angular distance to the circle, negative on the pole side
func (c *Circle) Offset(point s2.Point) float64 {
	return c.pole.Angle(point.Vector).Radians() - math.Pi/2
}

func (c *Circle) WholeHyperplane() bsp.SubHyperplane[s2.Point] {
	return &SubCircle{circle: c, arcs: circular.MustNewFullArcsSet(c.tolerance)}
}

// SubCircle is a set of arcs of one great circle
type SubCircle struct {
	circle *Circle
	arcs   *circular.ArcsSet
}

func NewSubCircle(circle *Circle, arcs *circular.ArcsSet) *SubCircle {
	return &SubCircle{circle: circle, arcs: arcs}
}

func (s *SubCircle) Hyperplane() bsp.Hyperplane[s2.Point] {
	return s.circle
}

func (s *SubCircle) Circle() *Circle {
	return s.circle
}

// Arcs is the remaining region of the circle, in phases of the circle
func (s *SubCircle) Arcs() *circular.ArcsSet {
	return s.arcs
}

func (s *SubCircle) Split(h bsp.Hyperplane[s2.Point]) bsp.SplitSubHyperplane[s2.Point] {
	other := h.(*Circle)
	angle := s.circle.pole.Angle(other.pole).Radians()
	tolerance := s.circle.tolerance
	if angle < tolerance || angle > math.Pi-tolerance {
		// the two circles are aligned or opposite
		return bsp.SplitSubHyperplane[s2.Point]{}
	}

	// the two circles intersect each other
	split := s.arcs.Split(s.circle.InsideArc(other))
	var result bsp.SplitSubHyperplane[s2.Point]
	if split.Plus() != nil {
		result.Plus = &SubCircle{circle: s.circle, arcs: split.Plus()}
	}
	if split.Minus() != nil {
		result.Minus = &SubCircle{circle: s.circle, arcs: split.Minus()}
	}
	return result
}

func (s *SubCircle) Reunite(other bsp.SubHyperplane[s2.Point]) bsp.SubHyperplane[s2.Point] {
	return &SubCircle{circle: s.circle, arcs: s.arcs.Union(other.(*SubCircle).arcs)}
}

func (s *SubCircle) IsEmpty() bool {
	return s.arcs.IsEmpty()
}

func (s *SubCircle) Size() float64 {
	return s.arcs.Size()
}
