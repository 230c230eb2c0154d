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
	"github.com/pkg/errors"

	"github.com/vigilantdoomer/spherebsp/bsp"
	"github.com/vigilantdoomer/spherebsp/circular"
	"github.com/vigilantdoomer/spherebsp/internal/mylog"
)

var ErrTooFewVertices = errors.New("a regular polygon needs at least 3 vertices")

// PolygonsSet is a region of the sphere. Its boundary is made of arcs of
// great circles, and the inside lies on the minus side (the pole side) of
// every circle of the tree
type PolygonsSet struct {
	bsp.Region[s2.Point]

	loopsDone bool
	loops     []*Vertex

	propsDone  bool
	size       float64
	barycenter s2.Point
}

func newPolygonsSet(tree *bsp.Tree[s2.Point], tolerance float64) *PolygonsSet {
	return &PolygonsSet{Region: bsp.NewRegion(tree, tolerance)}
}

// NewFullPolygonsSet creates the region covering the whole sphere
func NewFullPolygonsSet(tolerance float64) (*PolygonsSet, error) {
	if err := bsp.CheckTolerance(tolerance); err != nil {
		return nil, err
	}
	return newPolygonsSet(bsp.NewTree[s2.Point](bsp.In), tolerance), nil
}

// NewHemisphere creates the hemisphere centered on pole
func NewHemisphere(pole r3.Vector, tolerance float64) (*PolygonsSet, error) {
	if err := bsp.CheckTolerance(tolerance); err != nil {
		return nil, err
	}
	tree := bsp.NewTree[s2.Point](bsp.Unset)
	tree.Attach(tree.Root(), NewCircle(pole, tolerance).WholeHyperplane(), bsp.Out, bsp.In)
	return newPolygonsSet(tree, tolerance), nil
}

// NewRegularPolygon creates a polygon with n vertices evenly spread at
// outsideRadius from center, the first one lying toward meridian
func NewRegularPolygon(center, meridian r3.Vector, outsideRadius float64, n int, tolerance float64) (*PolygonsSet, error) {
	if err := bsp.CheckTolerance(tolerance); err != nil {
		return nil, err
	}
	if n < 3 {
		return nil, errors.Wrapf(ErrTooFewVertices, "got %d", n)
	}
	return newPolygonsSet(verticesToTree(tolerance, regularVertices(center, meridian, outsideRadius, n)), tolerance), nil
}

func regularVertices(center, meridian r3.Vector, outsideRadius float64, n int) []s2.Point {
	c := s2.Point{Vector: center.Normalize()}
	axis := s2.Point{Vector: center.Cross(meridian).Normalize()}
	vertices := make([]s2.Point, n)
	vertices[0] = s2.Rotate(c, axis, s1.Angle(outsideRadius))
	step := s1.Angle(circular.TWO_PI / float64(n))
	for i := 1; i < n; i++ {
		vertices[i] = s2.Rotate(vertices[i-1], c, step)
	}
	return vertices
}

// NewPolygonsSetFromTree wraps an existing tree, which is not copied
func NewPolygonsSetFromTree(tree *bsp.Tree[s2.Point], tolerance float64) (*PolygonsSet, error) {
	if err := bsp.CheckTolerance(tolerance); err != nil {
		return nil, err
	}
	return newPolygonsSet(tree, tolerance), nil
}

// NewPolygonsSetFromBoundary builds the region enclosed by sub-circles. The
// boundary must be closed and each sub-circle must have the inside on its
// pole side. Holes and disjoint parts are allowed
func NewPolygonsSetFromBoundary(boundary []bsp.SubHyperplane[s2.Point], tolerance float64) (*PolygonsSet, error) {
	if err := bsp.CheckTolerance(tolerance); err != nil {
		return nil, err
	}
	return newPolygonsSet(bsp.NewTreeFromBoundary(boundary), tolerance), nil
}

// NewPolygonsSetFromVertices builds a simple polygon walking counterclockwise
// through vertices, the inside lying on the left. Vertices closer than
// hyperplaneThickness to the circle of an edge are considered to be on it.
// No vertices at all means the whole sphere
func NewPolygonsSetFromVertices(hyperplaneThickness float64, vertices ...s2.Point) (*PolygonsSet, error) {
	if err := bsp.CheckTolerance(hyperplaneThickness); err != nil {
		return nil, err
	}
	tree := verticesToTree(hyperplaneThickness, vertices)
	mylog.Log.Verbose(1, "Polygon of %d vertices turned into a tree of %d nodes\n",
		len(vertices), tree.Len())
	return newPolygonsSet(tree, hyperplaneThickness), nil
}

// BoundaryFromLoops turns closed loops of vertices into the sub-circles
// bounding them, ready for NewPolygonsSetFromBoundary. Outer loops go
// counterclockwise, holes go clockwise
func BoundaryFromLoops(tolerance float64, loops ...[]s2.Point) ([]bsp.SubHyperplane[s2.Point], error) {
	var boundary []bsp.SubHyperplane[s2.Point]
	for _, loop := range loops {
		n := len(loop)
		for i := 0; i < n; i++ {
			start, end := loop[i], loop[(i+1)%n]
			length := start.Angle(end.Vector).Radians()
			if length <= tolerance {
				// repeated vertex
				continue
			}
			circle := NewCircleThrough(start, end, tolerance)
			phase := circle.Phase(start.Vector)
			arcs, err := circular.NewArcsSet(phase, phase+length, tolerance)
			if err != nil {
				return nil, errors.Wrapf(err, "edge %d of loop", i)
			}
			boundary = append(boundary, NewSubCircle(circle, arcs))
		}
	}
	return boundary, nil
}

// BuildNew creates a region of the same tolerance from a tree
func (s *PolygonsSet) BuildNew(tree *bsp.Tree[s2.Point]) *PolygonsSet {
	return newPolygonsSet(tree, s.Tolerance())
}

// Complement is the region covering exactly what s does not
func (s *PolygonsSet) Complement() *PolygonsSet {
	return newPolygonsSet(s.Tree(false).Complement(), s.Tolerance())
}

// BoundaryLoops returns one vertex per boundary loop. Following outgoing
// edges from it walks the whole loop with the inside on the left. A region
// without boundary has no loops
func (s *PolygonsSet) BoundaryLoops() []*Vertex {
	if s.loopsDone {
		return s.loops
	}
	tree := s.Tree(false)
	if tree.IsLeaf(tree.Root()) {
		s.loops = nil
	} else {
		tree = s.Tree(true)
		builder := newEdgesBuilder(tree, s.Tolerance())
		tree.Visit(builder)
		s.loops = builder.g.freeze(builder.loops())
		mylog.Log.Verbose(2, "Found %d boundary loops\n", len(s.loops))
	}
	s.loopsDone = true
	return s.loops
}

// Size is the area covered by the region
func (s *PolygonsSet) Size() float64 {
	s.computeGeometricalProperties()
	return s.size
}

// Barycenter is NaN when the region is empty or covers the whole sphere
func (s *PolygonsSet) Barycenter() s2.Point {
	s.computeGeometricalProperties()
	return s.barycenter
}

func nanPoint() s2.Point {
	return s2.Point{Vector: r3.Vector{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}}
}

func (s *PolygonsSet) computeGeometricalProperties() {
	if s.propsDone {
		return
	}
	s.propsDone = true
	tree := s.Tree(true)
	if tree.IsLeaf(tree.Root()) {
		// a single cell without any boundaries
		s.barycenter = nanPoint()
		if tree.Attribute(tree.Root()) == bsp.In {
			s.size = 4 * math.Pi
		} else {
			s.size = 0
		}
		return
	}

	pc := newPropertiesComputer(s.Tolerance())
	tree.Visit(pc)
	s.size = pc.area()
	switch {
	case s.size == 4*math.Pi:
		s.barycenter = nanPoint()
	case s.size < circular.SAFE_MIN:
		s.barycenter = s2.Point{Vector: tree.Cut(tree.Root()).Hyperplane().(*Circle).pole}
	default:
		s.barycenter = pc.barycenter()
	}
	mylog.Log.Verbose(1, "Region area %g, barycenter %v\n", s.size, s.barycenter)
}

// insidePoints lists one point inside each inside convex cell
func (s *PolygonsSet) insidePoints() []r3.Vector {
	pc := newPropertiesComputer(s.Tolerance())
	s.Tree(true).Visit(pc)
	return pc.insidePoints
}

// outsidePoints lists one point inside each outside convex cell
func (s *PolygonsSet) outsidePoints() []r3.Vector {
	return s.Complement().insidePoints()
}
