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
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/vigilantdoomer/spherebsp/bsp"
)

// edgesBuilder collects the boundary of a tree as edges, then connects
// them into loops
type edgesBuilder struct {
	tree      *bsp.Tree[s2.Point]
	tolerance float64
	g         *graph
	// edges contributed by each internal node, for close cut lookups
	nodeEdges map[bsp.Node][]int
	// every edge in the order it was created
	order []int
}

func newEdgesBuilder(tree *bsp.Tree[s2.Point], tolerance float64) *edgesBuilder {
	return &edgesBuilder{
		tree:      tree,
		tolerance: tolerance,
		g:         new(graph),
		nodeEdges: make(map[bsp.Node][]int),
	}
}

func (b *edgesBuilder) VisitOrder(t *bsp.Tree[s2.Point], n bsp.Node) bsp.Order {
	return bsp.MinusSubPlus
}

func (b *edgesBuilder) VisitLeafNode(t *bsp.Tree[s2.Point], n bsp.Node) {}

func (b *edgesBuilder) VisitInternalNode(t *bsp.Tree[s2.Point], n bsp.Node) {
	b.nodeEdges[n] = nil
	attr := t.Boundary(n)
	if attr.PlusOutside != nil {
		b.addContribution(attr.PlusOutside.(*SubCircle), false, n)
	}
	if attr.PlusInside != nil {
		b.addContribution(attr.PlusInside.(*SubCircle), true, n)
	}
}

func (b *edgesBuilder) addContribution(sub *SubCircle, reversed bool, n bsp.Node) {
	circle := sub.circle
	for _, a := range sub.arcs.AsList() {
		start := b.g.addVertex(circle.ToSpace(s1.Angle(a.Inf())))
		end := b.g.addVertex(circle.ToSpace(s1.Angle(a.Sup())))
		b.g.bindWith(start, circle)
		b.g.bindWith(end, circle)
		var e int
		if reversed {
			e = b.g.addEdge(end, start, a.Size(), circle.Reverse())
		} else {
			e = b.g.addEdge(start, end, a.Size(), circle)
		}
		b.nodeEdges[n] = append(b.nodeEdges[n], e)
		b.order = append(b.order, e)
	}
}

// followingEdge finds the edge starting where previous ends
func (b *edgesBuilder) followingEdge(previous int) int {
	point := b.g.endLocation(previous)
	candidates := b.tree.CloseCuts(point, b.tolerance)

	// the following edge we are looking for must start from one of the
	// candidates nodes
	closest := b.tolerance
	following := NO_LINK
	for _, n := range candidates {
		for _, e := range b.nodeEdges[n] {
			if e == previous || b.g.vertices[b.g.edges[e].start].incoming != NO_LINK {
				continue
			}
			gap := point.Distance(b.g.startLocation(e)).Radians()
			if gap <= closest {
				closest = gap
				following = e
			}
		}
	}

	if following == NO_LINK {
		if point.Distance(b.g.startLocation(previous)).Radians() <= b.tolerance {
			// the edge connects back to itself
			return previous
		}
		bsp.InternalError("boundary loop is open at %v", point)
	}
	return following
}

// edges connects every edge to its follower and returns them all
func (b *edgesBuilder) edges() []int {
	for _, previous := range b.order {
		b.g.setNextEdge(previous, b.followingEdge(previous))
	}
	return append([]int(nil), b.order...)
}

// loops peels the connected edges into closed loops
func (b *edgesBuilder) loops() [][]int {
	remaining := b.edges()
	pending := make(map[int]bool, len(remaining))
	for _, e := range remaining {
		pending[e] = true
	}

	var loops [][]int
	for _, first := range remaining {
		if !pending[first] {
			continue
		}
		// this is an edge belonging to a new loop
		startVertex := b.g.edges[first].start
		var loop []int
		e := first
		for {
			if !pending[e] {
				bsp.InternalError("edge %d belongs to two boundary loops", e)
			}
			delete(pending, e)
			loop = append(loop, e)
			// go to next edge following the boundary loop
			e = b.g.vertices[b.g.edges[e].end].outgoing
			if b.g.edges[e].start == startVertex {
				break
			}
		}
		loops = append(loops, loop)
	}
	return loops
}
