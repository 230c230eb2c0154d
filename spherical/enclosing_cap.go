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
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/vigilantdoomer/spherebsp/bsp"
	"github.com/vigilantdoomer/spherebsp/circular"
	"github.com/vigilantdoomer/spherebsp/internal/enclose"
)

// EnclosingCap returns a small cap containing the whole region. It is the
// smallest one unless the region is spread so much that the enclosing ball
// of its points contains the center of the sphere; then it is only an
// approximation built from the outside cells
func (s *PolygonsSet) EnclosingCap() s2.Cap {
	// handle special cases first
	if s.IsEmpty() {
		return s2.EmptyCap()
	}
	if s.IsFull() {
		return s2.FullCap()
	}

	// as the polygon is neither empty nor full, it has some boundaries and
	// cut hyperplanes
	tree := s.Tree(false)
	root := tree.Root()
	if tree.IsEmpty(tree.Minus(root)) && tree.IsFull(tree.Plus(root)) {
		// the polygon covers a hemisphere, its boundary is one 2π long edge
		circle := tree.Cut(root).Hyperplane().(*Circle)
		return s2.CapFromCenterAngle(s2.Point{Vector: circle.pole.Mul(-1)}, s1.Angle(math.Pi/2))
	}
	if tree.IsFull(tree.Minus(root)) && tree.IsEmpty(tree.Plus(root)) {
		// the polygon covers a hemisphere, its boundary is one 2π long edge
		circle := tree.Cut(root).Hyperplane().(*Circle)
		return s2.CapFromCenterAngle(s2.Point{Vector: circle.pole}, s1.Angle(math.Pi/2))
	}

	// gather some inside points, and the vertices of the boundary loops
	points := s.insidePoints()
	for _, loopStart := range s.BoundaryLoops() {
		loopStart.Loop(func(v *Vertex) bool {
			points = append(points, v.location.Vector)
			return true
		})
	}

	// find the smallest enclosing 3D sphere
	ball, err := enclose.NewEncloser(s.Tolerance()).Enclose(points)
	if err != nil {
		bsp.InternalError("enclosing region of area %g: %v", s.Size(), err)
	}

	// convert the 3D sphere to a spherical cap
	r := ball.Radius
	h := ball.Center.Norm()
	if h < s.Tolerance() {
		// the 3D sphere is centered on the unit sphere and covers it, fall
		// back to a crude approximation based only on outside convex cells
		return s.capAvoidingOutsideCells()
	}
	cosRadius := (1 + h*h - r*r) / (2 * h)
	return s2.CapFromCenterAngle(s2.Point{Vector: ball.Center.Mul(1 / h)},
		s1.Angle(math.Acos(math.Max(-1, math.Min(1, cosRadius)))))
}

func (s *PolygonsSet) capAvoidingOutsideCells() s2.Cap {
	radius := math.Inf(1)
	center := r3.Vector{Z: 1}
	for _, outside := range s.outsidePoints() {
		projection := s.ProjectToBoundary(s2.Point{Vector: outside})
		if math.Pi-projection.Offset < radius {
			radius = math.Pi - projection.Offset
			center = outside.Mul(-1)
		}
	}
	if math.IsInf(radius, 1) {
		return s2.FullCap()
	}
	return s2.CapFromCenterAngle(s2.Point{Vector: center}, s1.Angle(radius))
}

// BoundaryProjection is the result of projecting a point to the boundary of
// a region. Offset is the angular distance to the boundary, positive when
// the point is outside, negative when inside
type BoundaryProjection struct {
	Original  s2.Point
	Projected s2.Point
	Offset    float64
}

// ProjectToBoundary finds the boundary point closest to point. A region
// without boundary projects nothing: Projected is point itself and Offset
// is +Inf for an empty region, -Inf for the whole sphere
func (s *PolygonsSet) ProjectToBoundary(point s2.Point) BoundaryProjection {
	loops := s.BoundaryLoops()
	if len(loops) == 0 {
		offset := math.Inf(1)
		if s.IsFull() {
			offset = math.Inf(-1)
		}
		return BoundaryProjection{Original: point, Projected: point, Offset: offset}
	}

	best := math.Inf(1)
	var projected s2.Point
	for _, loopStart := range loops {
		loopStart.Loop(func(v *Vertex) bool {
			d, q := v.outgoing.closestPoint(point)
			if d < best {
				best = d
				projected = q
			}
			return true
		})
	}

	switch s.CheckPoint(point) {
	case bsp.Inside:
		best = -best
	case bsp.Boundary:
		best = 0
	}
	return BoundaryProjection{Original: point, Projected: projected, Offset: best}
}

// closestPoint finds the point of the edge closest to p, and its distance
func (e *Edge) closestPoint(p s2.Point) (float64, s2.Point) {
	startPhase := e.circle.Phase(e.start.location.Vector)
	relative := circular.NormalizeAngle(e.circle.Phase(p.Vector)-startPhase, math.Pi)
	if relative <= e.length {
		q := s2.Point{Vector: e.circle.PointAt(startPhase + relative)}
		return p.Distance(q).Radians(), q
	}
	ds := p.Distance(e.start.location).Radians()
	de := p.Distance(e.end.location).Radians()
	if ds <= de {
		return ds, e.start.location
	}
	return de, e.end.location
}
