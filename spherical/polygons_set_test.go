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
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigilantdoomer/spherebsp/bsp"
)

const tol = 1e-10

var (
	plusI = r3.Vector{X: 1}
	plusJ = r3.Vector{Y: 1}
	plusK = r3.Vector{Z: 1}
)

func pt(v r3.Vector) s2.Point {
	return s2.Point{Vector: v.Normalize()}
}

func TestHemisphere(t *testing.T) {
	h, err := NewHemisphere(plusK, tol)
	require.NoError(t, err)

	assert.Equal(t, bsp.Inside, h.CheckPoint(pt(plusK)))
	assert.Equal(t, bsp.Outside, h.CheckPoint(pt(plusK.Mul(-1))))
	assert.Equal(t, bsp.Boundary, h.CheckPoint(pt(plusI)))
	assert.Equal(t, bsp.Inside, h.CheckPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(10, 77))))

	assert.InDelta(t, 2*math.Pi, h.Size(), 1e-10)
	assert.InDelta(t, 0, h.Barycenter().Distance(pt(plusK)).Radians(), 1e-10)
	assert.InDelta(t, 2*math.Pi, h.BoundarySize(), 1e-10)

	loops := h.BoundaryLoops()
	require.Len(t, loops, 1)
	v := loops[0]
	require.NotNil(t, v.Outgoing())
	assert.Same(t, v.Outgoing(), v.Incoming())
	assert.InDelta(t, 2*math.Pi, v.Outgoing().Length(), 1e-10)
	assert.InDelta(t, 0, v.Outgoing().Circle().Offset(v.Location()), 1e-12)
	// the edge runs counterclockwise around the pole
	next := v.Outgoing().PointAt(0.1)
	assert.Greater(t, v.Location().Cross(next.Vector).Dot(plusK), 0.0)

	c := h.EnclosingCap()
	assert.InDelta(t, 0, c.Center().Distance(pt(plusK)).Radians(), 1e-12)
	assert.InDelta(t, math.Pi/2, c.Radius().Radians(), 1e-10)

	complement := h.Complement()
	assert.Equal(t, bsp.Outside, complement.CheckPoint(pt(plusK)))
	assert.Equal(t, bsp.Inside, complement.CheckPoint(pt(plusK.Mul(-1))))
	cc := complement.EnclosingCap()
	assert.InDelta(t, 0, cc.Center().Distance(pt(plusK.Mul(-1))).Radians(), 1e-12)
}

func TestFullAndEmptySphere(t *testing.T) {
	full, err := NewFullPolygonsSet(tol)
	require.NoError(t, err)
	assert.True(t, full.IsFull())
	assert.InDelta(t, 4*math.Pi, full.Size(), 1e-15)
	assert.True(t, math.IsNaN(full.Barycenter().X))
	assert.Empty(t, full.BoundaryLoops())
	assert.True(t, full.EnclosingCap().IsFull())
	assert.Equal(t, bsp.Inside, full.CheckPoint(pt(plusJ)))
	assert.True(t, math.IsInf(full.ProjectToBoundary(pt(plusJ)).Offset, -1))

	empty := full.Complement()
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, 0.0, empty.Size())
	assert.True(t, math.IsNaN(empty.Barycenter().Y))
	assert.True(t, empty.EnclosingCap().IsEmpty())
	assert.True(t, math.IsInf(empty.ProjectToBoundary(pt(plusJ)).Offset, 1))

	none, err := NewPolygonsSetFromVertices(tol)
	require.NoError(t, err)
	assert.True(t, none.IsFull())

	_, err = NewFullPolygonsSet(0)
	assert.ErrorIs(t, err, bsp.ErrToleranceTooSmall)
}

func TestPositiveOctant(t *testing.T) {
	octant, err := NewPolygonsSetFromVertices(tol, pt(plusI), pt(plusJ), pt(plusK))
	require.NoError(t, err)

	assert.InDelta(t, math.Pi/2, octant.Size(), 1e-10)
	expected := pt(r3.Vector{X: 1, Y: 1, Z: 1})
	assert.InDelta(t, 0, octant.Barycenter().Distance(expected).Radians(), 1e-10)
	assert.InDelta(t, 3*math.Pi/2, octant.BoundarySize(), 1e-10)

	assert.Equal(t, bsp.Inside, octant.CheckPoint(expected))
	assert.Equal(t, bsp.Outside, octant.CheckPoint(pt(r3.Vector{X: -1, Y: 1, Z: 1})))
	assert.Equal(t, bsp.Outside, octant.CheckPoint(pt(r3.Vector{X: 1, Y: 1, Z: -1})))
	assert.Equal(t, bsp.Boundary, octant.CheckPoint(pt(plusI)))
	assert.Equal(t, bsp.Boundary, octant.CheckPoint(pt(r3.Vector{X: 1, Y: 1})))

	loops := octant.BoundaryLoops()
	require.Len(t, loops, 1)
	count := 0
	loops[0].Loop(func(v *Vertex) bool {
		count++
		assert.InDelta(t, math.Pi/2, v.Outgoing().Length(), 1e-10)
		assert.Same(t, v, v.Outgoing().Start())
		assert.Same(t, v, v.Incoming().End())
		// every vertex is one of the axes
		assert.InDelta(t, 1, math.Max(v.Location().X, math.Max(v.Location().Y, v.Location().Z)), 1e-10)
		return true
	})
	assert.Equal(t, 3, count)

	c := octant.EnclosingCap()
	assert.InDelta(t, 0, c.Center().Distance(expected).Radians(), 1e-10)
	// distance from the center of the octant to its corners
	assert.InDelta(t, math.Acos(1/math.Sqrt(3)), c.Radius().Radians(), 1e-10)
}

// area of a regular polygon with n vertices at angular radius r from its
// center, from the interior angle given by Napier's rules
func regularArea(n int, r float64) float64 {
	halfAngle := math.Atan2(1, math.Tan(math.Pi/float64(n))*math.Cos(r))
	return 2*float64(n)*halfAngle - float64(n-2)*math.Pi
}

func TestRegularPolygonArea(t *testing.T) {
	previous := 0.0
	for _, r := range []float64{0.1, 0.4, 0.8, 1.2, 1.5, 2.0, 2.6} {
		for _, n := range []int{3, 5, 8} {
			p, err := NewRegularPolygon(plusK, plusI, r, n, tol)
			require.NoError(t, err)
			assert.InDelta(t, regularArea(n, r), p.Size(), 1e-8, "n=%d r=%g", n, r)
			assert.Equal(t, bsp.Inside, p.CheckPoint(pt(plusK)), "n=%d r=%g", n, r)
			assert.Equal(t, bsp.Outside, p.CheckPoint(pt(plusK.Mul(-1))), "n=%d r=%g", n, r)
		}
		p, err := NewRegularPolygon(plusK, plusI, r, 6, tol)
		require.NoError(t, err)
		assert.Greater(t, p.Size(), previous, "area must grow with radius")
		previous = p.Size()
	}

	_, err := NewRegularPolygon(plusK, plusI, 0.5, 2, tol)
	assert.ErrorIs(t, err, ErrTooFewVertices)
}

func TestRegularPolygonShape(t *testing.T) {
	center := r3.Vector{X: 1, Y: -2, Z: 0.5}
	p, err := NewRegularPolygon(center, plusK, 0.5, 6, tol)
	require.NoError(t, err)

	assert.InDelta(t, 0, p.Barycenter().Distance(pt(center)).Radians(), 1e-10)
	loops := p.BoundaryLoops()
	require.Len(t, loops, 1)
	count := 0
	loops[0].Loop(func(v *Vertex) bool {
		count++
		assert.InDelta(t, 0.5, v.Location().Distance(pt(center)).Radians(), 1e-10)
		return true
	})
	assert.Equal(t, 6, count)

	c := p.EnclosingCap()
	assert.InDelta(t, 0, c.Center().Distance(pt(center)).Radians(), 1e-8)
	assert.InDelta(t, 0.5, c.Radius().Radians(), 1e-8)
}

func TestProjectToBoundary(t *testing.T) {
	h, err := NewHemisphere(plusK, tol)
	require.NoError(t, err)

	inside := s2.PointFromLatLng(s2.LatLngFromDegrees(30, 40))
	proj := h.ProjectToBoundary(inside)
	assert.InDelta(t, -math.Pi/6, proj.Offset, 1e-10)
	assert.InDelta(t, 0, proj.Projected.Distance(s2.PointFromLatLng(s2.LatLngFromDegrees(0, 40))).Radians(), 1e-10)

	outside := s2.PointFromLatLng(s2.LatLngFromDegrees(-20, 40))
	assert.InDelta(t, math.Pi/9, h.ProjectToBoundary(outside).Offset, 1e-10)

	onBoundary := s2.PointFromLatLng(s2.LatLngFromDegrees(0, 12))
	assert.Equal(t, 0.0, h.ProjectToBoundary(onBoundary).Offset)

	// beyond the ends of an edge, the closest point is a vertex
	octant, err := NewPolygonsSetFromVertices(tol, pt(plusI), pt(plusJ), pt(plusK))
	require.NoError(t, err)
	far := pt(r3.Vector{X: 1, Y: -1, Z: -1})
	proj = octant.ProjectToBoundary(far)
	assert.InDelta(t, 0, proj.Projected.Distance(pt(plusI)).Radians(), 1e-10)
	assert.InDelta(t, far.Distance(pt(plusI)).Radians(), proj.Offset, 1e-10)
}

func TestCapAroundOutsideCells(t *testing.T) {
	const n = 5
	const r = 0.3
	small, err := NewRegularPolygon(plusK, plusI, r, n, tol)
	require.NoError(t, err)
	large := small.Complement()

	c := large.capAvoidingOutsideCells()
	inradius := math.Atan(math.Tan(r) * math.Cos(math.Pi/n))
	assert.InDelta(t, 0, c.Center().Distance(pt(plusK.Mul(-1))).Radians(), 1e-10)
	assert.InDelta(t, math.Pi-inradius, c.Radius().Radians(), 1e-9)
}

func TestPolygonWithHole(t *testing.T) {
	outer := regularVertices(plusK, plusI, 1.0, 6)
	hole := regularVertices(plusK, plusI, 0.3, 4)
	// holes go clockwise
	for i, j := 0, len(hole)-1; i < j; i, j = i+1, j-1 {
		hole[i], hole[j] = hole[j], hole[i]
	}
	boundary, err := BoundaryFromLoops(tol, outer, hole)
	require.NoError(t, err)
	require.Len(t, boundary, 10)

	ring, err := NewPolygonsSetFromBoundary(boundary, tol)
	require.NoError(t, err)
	assert.InDelta(t, regularArea(6, 1.0)-regularArea(4, 0.3), ring.Size(), 1e-8)
	assert.Equal(t, bsp.Outside, ring.CheckPoint(pt(plusK)))
	assert.Equal(t, bsp.Inside, ring.CheckPoint(s2.Rotate(pt(plusK), pt(plusJ), 0.6)))
	assert.Equal(t, bsp.Outside, ring.CheckPoint(pt(plusK.Mul(-1))))
	assert.Len(t, ring.BoundaryLoops(), 2)

	// the same outer loop alone matches the polygon built from vertices
	outerOnly, err := BoundaryFromLoops(tol, outer)
	require.NoError(t, err)
	plain, err := NewPolygonsSetFromBoundary(outerOnly, tol)
	require.NoError(t, err)
	byVertices, err := NewPolygonsSetFromVertices(tol, outer...)
	require.NoError(t, err)
	assert.InDelta(t, byVertices.Size(), plain.Size(), 1e-10)
}

func TestEdgeSplitting(t *testing.T) {
	g := new(graph)
	equator := NewCircle(plusK, tol)
	start := g.addVertex(pt(plusI))
	end := g.addVertex(pt(plusI.Mul(-1)))
	// half of the equator, through +J
	e := g.addEdge(start, end, math.Pi, equator)

	// the plane x = y cuts it a quarter of the way: the edge starts on
	// the pole side of it and leaves toward +J
	splitter := NewCircle(r3.Vector{X: 1, Y: -1}, tol)
	outside, inside := g.splitEdge(e, splitter, nil, nil)
	require.Len(t, outside, 1)
	require.Len(t, inside, 1)
	assert.InDelta(t, math.Pi/4, g.edges[inside[0]].length, 1e-12)
	assert.InDelta(t, 3*math.Pi/4, g.edges[outside[0]].length, 1e-12)
	assert.Equal(t, g.edges[inside[0]].end, g.edges[outside[0]].start)
	assert.Equal(t, start, g.edges[inside[0]].start)
	assert.Equal(t, end, g.edges[outside[0]].end)
	middle := g.vertices[g.edges[inside[0]].end].location
	assert.InDelta(t, 0, middle.Distance(pt(r3.Vector{X: 1, Y: 1})).Radians(), 1e-12)

	// circles through both ends leave the edge whole on one side
	outside, inside = g.splitEdge(e, NewCircle(plusJ, tol), nil, nil)
	assert.Empty(t, outside)
	require.Len(t, inside, 1)
	assert.InDelta(t, math.Pi, g.edges[inside[0]].length, 1e-9)
	outside, inside = g.splitEdge(e, NewCircle(plusJ.Mul(-1), tol), nil, nil)
	require.Len(t, outside, 1)
	assert.Empty(t, inside)
	assert.InDelta(t, math.Pi, g.edges[outside[0]].length, 1e-9)

	// an edge on the splitter goes nowhere
	outside, inside = g.splitEdge(e, NewCircle(plusK, tol), nil, nil)
	assert.Empty(t, outside)
	assert.Empty(t, inside)
}
