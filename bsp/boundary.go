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
package bsp

// BoundaryAttribute describes which parts of the cut of an internal node
// belong to the region boundary
type BoundaryAttribute[P any] struct {
	// part of the cut with the outside on its plus side and the inside on
	// its minus side, nil if there is none
	PlusOutside SubHyperplane[P]
	// part of the cut with the inside on its plus side and the outside on
	// its minus side, nil if there is none
	PlusInside SubHyperplane[P]
}

// Boundary returns the boundary attribute of an internal node, computing the
// attributes of the whole tree first if needed
func (t *Tree[P]) Boundary(n Node) *BoundaryAttribute[P] {
	t.BuildBoundary()
	return t.nodes[n].boundary
}

// BuildBoundary computes the boundary attribute of every internal node. It
// is a no-op when the attributes are up to date
func (t *Tree[P]) BuildBoundary() {
	if t.boundaryBuilt {
		return
	}
	t.Visit(boundaryBuilder[P]{})
	t.boundaryBuilt = true
}

type boundaryBuilder[P any] struct{}

func (b boundaryBuilder[P]) VisitOrder(t *Tree[P], n Node) Order {
	return PlusMinusSub
}

func (b boundaryBuilder[P]) VisitLeafNode(t *Tree[P], n Node) {}

func (b boundaryBuilder[P]) VisitInternalNode(t *Tree[P], n Node) {
	var plusOutside, plusInside SubHyperplane[P]
	cut := t.nodes[n].cut

	// characterize the cut sub-hyperplane, first with respect to the plus
	// sub-tree
	plusChar := characterize(t, t.nodes[n].plus, cut)

	if plusChar.outsideTouching != nil && !plusChar.outsideTouching.IsEmpty() {
		// plusChar.outsideTouching corresponds to a subset of the cut
		// sub-hyperplane known to have outside cells on its plus side, we
		// want to check if parts of this subset do have inside cells on
		// their minus side
		minusChar := characterize(t, t.nodes[n].minus, plusChar.outsideTouching)
		if minusChar.insideTouching != nil && !minusChar.insideTouching.IsEmpty() {
			plusOutside = minusChar.insideTouching
		}
	}

	if plusChar.insideTouching != nil && !plusChar.insideTouching.IsEmpty() {
		// same thing the other way round
		minusChar := characterize(t, t.nodes[n].minus, plusChar.insideTouching)
		if minusChar.outsideTouching != nil && !minusChar.outsideTouching.IsEmpty() {
			plusInside = minusChar.outsideTouching
		}
	}

	t.nodes[n].boundary = &BoundaryAttribute[P]{
		PlusOutside: plusOutside,
		PlusInside:  plusInside,
	}
}

// characterization splits a sub-hyperplane into the parts that touch inside
// cells and the parts that touch outside cells of a subtree
type characterization[P any] struct {
	outsideTouching SubHyperplane[P]
	insideTouching  SubHyperplane[P]
}

func characterize[P any](t *Tree[P], n Node, sub SubHyperplane[P]) *characterization[P] {
	c := new(characterization[P])
	c.walk(t, n, sub)
	return c
}

func (c *characterization[P]) walk(t *Tree[P], n Node, sub SubHyperplane[P]) {
	if t.IsLeaf(n) {
		if t.nodes[n].attr == In {
			c.insideTouching = reunite(c.insideTouching, sub)
		} else {
			c.outsideTouching = reunite(c.outsideTouching, sub)
		}
		return
	}
	split := sub.Split(t.nodes[n].cut.Hyperplane())
	switch split.Side() {
	case Plus:
		c.walk(t, t.nodes[n].plus, sub)
	case Minus:
		c.walk(t, t.nodes[n].minus, sub)
	case Both:
		c.walk(t, t.nodes[n].plus, split.Plus)
		c.walk(t, t.nodes[n].minus, split.Minus)
	default:
		InternalError("sub-hyperplane lies on the cut of node %d", n)
	}
}

func reunite[P any](acc, sub SubHyperplane[P]) SubHyperplane[P] {
	if acc == nil {
		return sub
	}
	return acc.Reunite(sub)
}

type boundarySizer[P any] struct {
	size float64
}

func (b *boundarySizer[P]) VisitOrder(t *Tree[P], n Node) Order {
	return MinusSubPlus
}

func (b *boundarySizer[P]) VisitLeafNode(t *Tree[P], n Node) {}

func (b *boundarySizer[P]) VisitInternalNode(t *Tree[P], n Node) {
	attr := t.nodes[n].boundary
	if attr.PlusOutside != nil {
		b.size += attr.PlusOutside.Size()
	}
	if attr.PlusInside != nil {
		b.size += attr.PlusInside.Size()
	}
}

// BoundarySize sums the sizes of all boundary parts of the tree
func (t *Tree[P]) BoundarySize() float64 {
	t.BuildBoundary()
	sizer := new(boundarySizer[P])
	t.Visit(sizer)
	return sizer.size
}
