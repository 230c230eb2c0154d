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

	"github.com/golang/geo/s2"

	"github.com/vigilantdoomer/spherebsp/bsp"
	"github.com/vigilantdoomer/spherebsp/circular"
)

const NO_LINK = -1

// Vertices and edges are first assembled here, referring to each other by
// index, while edges get split and reconnected. Once the loops are known
// they are frozen into Vertex and Edge
type graphVertex struct {
	location s2.Point
	incoming int
	outgoing int
	// circles the vertex is known to lie on
	circles []*Circle
}

type graphEdge struct {
	start  int
	end    int
	length float64
	circle *Circle
}

type graph struct {
	vertices []graphVertex
	edges    []graphEdge
}

func (g *graph) addVertex(location s2.Point) int {
	g.vertices = append(g.vertices, graphVertex{
		location: location,
		incoming: NO_LINK,
		outgoing: NO_LINK,
	})
	return len(g.vertices) - 1
}

func (g *graph) bindWith(v int, circle *Circle) {
	for _, c := range g.vertices[v].circles {
		if c == circle {
			return
		}
	}
	g.vertices[v].circles = append(g.vertices[v].circles, circle)
}

// sharedCircle finds a circle both vertices are bound to, nil if none
func (g *graph) sharedCircle(v1, v2 int) *Circle {
	for _, c1 := range g.vertices[v1].circles {
		for _, c2 := range g.vertices[v2].circles {
			if c1 == c2 {
				return c1
			}
		}
	}
	return nil
}

// addEdge links start and end through a new edge, overriding whatever
// outgoing and incoming edges they had before
func (g *graph) addEdge(start, end int, length float64, circle *Circle) int {
	g.edges = append(g.edges, graphEdge{
		start:  start,
		end:    end,
		length: length,
		circle: circle,
	})
	e := len(g.edges) - 1
	g.vertices[start].outgoing = e
	g.bindWith(start, circle)
	g.vertices[end].incoming = e
	g.bindWith(end, circle)
	return e
}

func (g *graph) startLocation(e int) s2.Point {
	return g.vertices[g.edges[e].start].location
}

func (g *graph) endLocation(e int) s2.Point {
	return g.vertices[g.edges[e].end].location
}

// setNextEdge connects e to next: the end of e becomes the start of next
func (g *graph) setNextEdge(e, next int) {
	end := g.edges[next].start
	g.edges[e].end = end
	g.vertices[end].incoming = e
	g.bindWith(end, g.edges[e].circle)
}

// splitEdge distributes the parts of edge e lying on the plus side of
// splitCircle into outside and those lying on its minus side into inside
func (g *graph) splitEdge(e int, splitCircle *Circle, outside, inside []int) ([]int, []int) {
	edge := g.edges[e]
	circle := edge.circle
	tolerance := circle.tolerance

	angle := circle.pole.Angle(splitCircle.pole).Radians()
	if angle < tolerance || angle > math.Pi-tolerance {
		// the edge lies on the split circle itself, it can never be
		// inserted below it
		return outside, inside
	}

	// get the inside arc, synchronizing its phase with the edge itself
	edgeStart := circle.Phase(g.startLocation(e).Vector)
	arc := circle.InsideArc(splitCircle)
	arcRelativeStart := circular.NormalizeAngle(arc.Inf(), edgeStart+math.Pi) - edgeStart
	arcRelativeEnd := arcRelativeStart + arc.Size()
	unwrappedEnd := arcRelativeEnd - circular.TWO_PI

	// build the sub-edges
	if unwrappedEnd >= edge.length-tolerance {
		// the edge is entirely contained inside the circle, we don't
		// split anything
		return outside, append(inside, e)
	}

	// there are at least some parts of the edge that should be outside
	// (even if they are later filtered out as being too small)
	previous := edge.start
	alreadyManaged := 0.0
	if unwrappedEnd >= 0 {
		// the start of the edge is inside the circle
		previous, inside = g.addSubEdge(e, previous, g.vertexAt(circle, edgeStart+unwrappedEnd),
			unwrappedEnd, inside)
		alreadyManaged = unwrappedEnd
	}

	if arcRelativeStart >= edge.length-tolerance {
		// the edge ends while still outside of the circle
		if unwrappedEnd >= 0 {
			_, outside = g.addSubEdge(e, previous, edge.end, edge.length-alreadyManaged, outside)
		} else {
			// the edge is entirely outside of the circle, we don't
			// split anything
			outside = append(outside, e)
		}
		return outside, inside
	}

	// the edge is long enough to enter inside the circle
	previous, outside = g.addSubEdge(e, previous, g.vertexAt(circle, edgeStart+arcRelativeStart),
		arcRelativeStart-alreadyManaged, outside)
	alreadyManaged = arcRelativeStart

	if arcRelativeEnd >= edge.length-tolerance {
		// the edge ends while inside of the circle
		_, inside = g.addSubEdge(e, previous, edge.end, edge.length-alreadyManaged, inside)
		return outside, inside
	}

	// the edge is long enough to exit outside of the circle
	previous, inside = g.addSubEdge(e, previous, g.vertexAt(circle, edgeStart+arcRelativeEnd),
		arcRelativeEnd-alreadyManaged, inside)
	alreadyManaged = arcRelativeEnd
	_, outside = g.addSubEdge(e, previous, edge.end, edge.length-alreadyManaged, outside)
	return outside, inside
}

func (g *graph) vertexAt(circle *Circle, phase float64) int {
	return g.addVertex(s2.Point{Vector: circle.PointAt(phase)})
}

// addSubEdge keeps the part of e going from subStart to subEnd unless it is
// too short. It returns the vertex the next sub-edge should start from
func (g *graph) addSubEdge(e, subStart, subEnd int, subLength float64, list []int) (int, []int) {
	circle := g.edges[e].circle
	if subLength <= circle.tolerance {
		// the edge is too short, we ignore it
		return subStart, list
	}
	// we have a sub-edge long enough to be kept. subEnd is not bound to the
	// split circle, sharedCircle is only consulted while building from vertices
	sub := g.addEdge(subStart, subEnd, subLength, circle)
	return subEnd, append(list, sub)
}

// verticesToTree builds the tree of the polygon walking through vertices,
// the inside lying on the left
func verticesToTree(hyperplaneThickness float64, vertices []s2.Point) *bsp.Tree[s2.Point] {
	n := len(vertices)
	if n == 0 {
		// the whole sphere
		return bsp.NewTree[s2.Point](bsp.In)
	}

	g := new(graph)
	for _, p := range vertices {
		g.addVertex(s2.Point{Vector: p.Normalize()})
	}

	// build the edges
	edges := make([]int, 0, n)
	end := n - 1
	for i := 0; i < n; i++ {
		// get the endpoints of the edge
		start := end
		end = i
		startLocation := g.vertices[start].location
		endLocation := g.vertices[end].location

		// get the circle supporting the edge, taking care not to recreate
		// it if it was already created earlier due to another edge being
		// aligned with the current one
		through := NewCircleThrough(startLocation, endLocation, hyperplaneThickness)
		circle := g.sharedCircle(start, end)
		if circle == nil || !circle.SameOrientationAs(through) {
			circle = through
		}

		length := startLocation.Angle(endLocation.Vector).Radians()
		edges = append(edges, g.addEdge(start, end, length, circle))

		// check if another vertex also happens to be on this circle
		for v := range vertices {
			if v != start && v != end &&
				math.Abs(circle.Offset(g.vertices[v].location)) <= hyperplaneThickness {
				g.bindWith(v, circle)
			}
		}
	}

	// build the tree top-down
	tree := bsp.NewTree[s2.Point](bsp.Unset)
	g.insertEdges(tree, tree.Root(), edges)
	return tree
}

func (g *graph) insertEdges(tree *bsp.Tree[s2.Point], n bsp.Node, edges []int) {
	// find an edge with a hyperplane that can be inserted in the node
	inserted := NO_LINK
	for i := 0; inserted == NO_LINK && i < len(edges); i++ {
		if tree.InsertCut(n, g.edges[edges[i]].circle) {
			inserted = edges[i]
		}
	}

	if inserted == NO_LINK {
		// no suitable edge was found, the node remains a leaf node and we
		// need to set its inside/outside indicator
		if tree.Parent(n) == bsp.NoNode || tree.IsMinusChild(n) {
			tree.SetAttribute(n, bsp.In)
		} else {
			tree.SetAttribute(n, bsp.Out)
		}
		return
	}

	// we have split the node by inserting an edge as a cut sub-hyperplane,
	// distribute the remaining edges in the two sub-trees
	var outside, inside []int
	splitCircle := g.edges[inserted].circle
	for _, e := range edges {
		if e != inserted {
			outside, inside = g.splitEdge(e, splitCircle, outside, inside)
		}
	}

	// recurse through lower levels
	if len(outside) > 0 {
		g.insertEdges(tree, tree.Plus(n), outside)
	} else {
		tree.SetAttribute(tree.Plus(n), bsp.Out)
	}
	if len(inside) > 0 {
		g.insertEdges(tree, tree.Minus(n), inside)
	} else {
		tree.SetAttribute(tree.Minus(n), bsp.In)
	}
}

// freeze turns the loops found in the graph into linked Vertex and Edge
// values, returning the start vertex of each loop
func (g *graph) freeze(loops [][]int) []*Vertex {
	frozen := make(map[int]*Vertex)
	vertexOf := func(v int) *Vertex {
		if fv, ok := frozen[v]; ok {
			return fv
		}
		fv := &Vertex{location: g.vertices[v].location}
		frozen[v] = fv
		return fv
	}
	starts := make([]*Vertex, 0, len(loops))
	for _, loop := range loops {
		for _, e := range loop {
			edge := &Edge{
				start:  vertexOf(g.edges[e].start),
				end:    vertexOf(g.edges[e].end),
				length: g.edges[e].length,
				circle: g.edges[e].circle,
			}
			edge.start.outgoing = edge
			edge.end.incoming = edge
		}
		starts = append(starts, vertexOf(g.edges[loop[0]].start))
	}
	return starts
}
