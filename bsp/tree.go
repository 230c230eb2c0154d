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

// Node is a handle on a node of a Tree. Handles stay valid for the lifetime
// of the tree, nodes are never freed, only orphaned when a cut replaces them
type Node int32

const NoNode Node = -1

// Attribute of a leaf cell
type Attribute uint8

const (
	// Unset is only seen while a tree is under construction, or on
	// internal nodes
	Unset Attribute = iota
	In
	Out
)

func (a Attribute) String() string {
	switch a {
	case In:
		return "IN"
	case Out:
		return "OUT"
	}
	return "UNSET"
}

type treeNode[P any] struct {
	cut    SubHyperplane[P]
	plus   Node
	minus  Node
	parent Node
	attr   Attribute
	// filled by BuildBoundary, internal nodes only
	boundary *BoundaryAttribute[P]
}

// Tree is a BSP tree kept in an arena: all nodes live in one slice and refer
// to each other by index. Node 0 is always the root.
//
// Every internal node has both children, every leaf has none. The cut of a
// node is the whole hyperplane clipped to the cell that node covers
type Tree[P any] struct {
	nodes         []treeNode[P]
	boundaryBuilt bool
}

// NewTree creates a tree made of a single leaf with the given attribute
func NewTree[P any](attr Attribute) *Tree[P] {
	t := new(Tree[P])
	t.newNode(NoNode, attr)
	return t
}

func (t *Tree[P]) newNode(parent Node, attr Attribute) Node {
	t.nodes = append(t.nodes, treeNode[P]{
		plus:   NoNode,
		minus:  NoNode,
		parent: parent,
		attr:   attr,
	})
	return Node(len(t.nodes) - 1)
}

func (t *Tree[P]) Root() Node {
	return 0
}

func (t *Tree[P]) Cut(n Node) SubHyperplane[P] {
	return t.nodes[n].cut
}

func (t *Tree[P]) Plus(n Node) Node {
	return t.nodes[n].plus
}

func (t *Tree[P]) Minus(n Node) Node {
	return t.nodes[n].minus
}

func (t *Tree[P]) Parent(n Node) Node {
	return t.nodes[n].parent
}

func (t *Tree[P]) IsLeaf(n Node) bool {
	return t.nodes[n].cut == nil
}

func (t *Tree[P]) Attribute(n Node) Attribute {
	return t.nodes[n].attr
}

func (t *Tree[P]) SetAttribute(n Node, attr Attribute) {
	t.nodes[n].attr = attr
	t.boundaryBuilt = false
}

// IsMinusChild tells whether n hangs on the minus side of its parent. The
// root is not a minus child
func (t *Tree[P]) IsMinusChild(n Node) bool {
	parent := t.nodes[n].parent
	return parent != NoNode && t.nodes[parent].minus == n
}

// Attach turns leaf n into an internal node carrying cut as is, without
// clipping it to the cell. Both new children get the requested attributes
func (t *Tree[P]) Attach(n Node, cut SubHyperplane[P], plusAttr, minusAttr Attribute) (Node, Node) {
	if !t.IsLeaf(n) {
		InternalError("attaching a cut to internal node %d", n)
	}
	plus := t.newNode(n, plusAttr)
	minus := t.newNode(n, minusAttr)
	t.nodes[n].cut = cut
	t.nodes[n].plus = plus
	t.nodes[n].minus = minus
	t.nodes[n].attr = Unset
	t.boundaryBuilt = false
	return plus, minus
}

// InsertCut clips the whole hyperplane to the cell of n and, unless nothing
// is left of it, turns n into an internal node with two fresh leaves. If n
// already had a subtree, that subtree is orphaned. Leaf attributes of the
// new children are Unset
func (t *Tree[P]) InsertCut(n Node, h Hyperplane[P]) bool {
	chopped := t.fitToCell(n, h.WholeHyperplane())
	if chopped == nil || chopped.IsEmpty() {
		return false
	}
	plus := t.newNode(n, Unset)
	minus := t.newNode(n, Unset)
	t.nodes[n].cut = chopped
	t.nodes[n].plus = plus
	t.nodes[n].minus = minus
	t.nodes[n].attr = Unset
	t.boundaryBuilt = false
	return true
}

// Each ancestor cut keeps the part of sub lying on the side of the path
// leading down to n
func (t *Tree[P]) fitToCell(n Node, sub SubHyperplane[P]) SubHyperplane[P] {
	s := sub
	for child, parent := n, t.nodes[n].parent; parent != NoNode; child, parent = parent, t.nodes[parent].parent {
		split := s.Split(t.nodes[parent].cut.Hyperplane())
		if t.nodes[parent].plus == child {
			s = split.Plus
		} else {
			s = split.Minus
		}
		if s == nil {
			return nil
		}
	}
	return s
}

// Cell finds the deepest node whose cell contains point. Descent stops at an
// internal node when point is within tolerance of its cut
func (t *Tree[P]) Cell(point P, tolerance float64) Node {
	return t.subtreeCell(t.Root(), point, tolerance)
}

// CloseCuts lists internal nodes whose cut hyperplane passes within
// maxOffset of point
func (t *Tree[P]) CloseCuts(point P, maxOffset float64) []Node {
	var close []Node
	t.recurseCloseCuts(t.Root(), point, maxOffset, &close)
	return close
}

func (t *Tree[P]) recurseCloseCuts(n Node, point P, maxOffset float64, close *[]Node) {
	if t.IsLeaf(n) {
		return
	}
	offset := t.nodes[n].cut.Hyperplane().Offset(point)
	switch {
	case offset < -maxOffset:
		t.recurseCloseCuts(t.nodes[n].minus, point, maxOffset, close)
	case offset > maxOffset:
		t.recurseCloseCuts(t.nodes[n].plus, point, maxOffset, close)
	default:
		// this cut is close enough, look on both sides
		*close = append(*close, n)
		t.recurseCloseCuts(t.nodes[n].plus, point, maxOffset, close)
		t.recurseCloseCuts(t.nodes[n].minus, point, maxOffset, close)
	}
}

// PruneAroundConvexCell builds a new tree that only keeps the cuts on the
// path from the root down to n. The cell of n gets cellAttr, every sibling
// cell met along the path gets otherAttr
func (t *Tree[P]) PruneAroundConvexCell(n Node, cellAttr, otherAttr Attribute) *Tree[P] {
	var path []Node
	for m := n; m != NoNode; m = t.nodes[m].parent {
		path = append(path, m)
	}
	pruned := NewTree[P](Unset)
	current := pruned.Root()
	for i := len(path) - 1; i > 0; i-- {
		ancestor, child := path[i], path[i-1]
		plus, minus := pruned.Attach(current, t.nodes[ancestor].cut, otherAttr, otherAttr)
		if t.nodes[ancestor].plus == child {
			current = plus
		} else {
			current = minus
		}
	}
	pruned.nodes[current].attr = cellAttr
	return pruned
}

// Complement returns a copy of the tree with every leaf attribute flipped.
// Cuts are shared, they are immutable
func (t *Tree[P]) Complement() *Tree[P] {
	c := &Tree[P]{nodes: make([]treeNode[P], len(t.nodes))}
	for i, nd := range t.nodes {
		nd.boundary = nil
		switch nd.attr {
		case In:
			nd.attr = Out
		case Out:
			nd.attr = In
		}
		c.nodes[i] = nd
	}
	return c
}

// IsEmpty tells whether the subtree rooted at n has no inside leaf
func (t *Tree[P]) IsEmpty(n Node) bool {
	if t.IsLeaf(n) {
		return t.nodes[n].attr != In
	}
	return t.IsEmpty(t.nodes[n].minus) && t.IsEmpty(t.nodes[n].plus)
}

// IsFull tells whether every leaf of the subtree rooted at n is inside
func (t *Tree[P]) IsFull(n Node) bool {
	if t.IsLeaf(n) {
		return t.nodes[n].attr == In
	}
	return t.IsFull(t.nodes[n].minus) && t.IsFull(t.nodes[n].plus)
}

// CheckPoint locates point with respect to the region described by the
// subtree rooted at n
func (t *Tree[P]) CheckPoint(n Node, point P, tolerance float64) Location {
	cell := t.subtreeCell(n, point, tolerance)
	if t.IsLeaf(cell) {
		if t.nodes[cell].attr == In {
			return Inside
		}
		return Outside
	}
	// point lies on the cut, both sides must agree for it not to be on
	// the boundary
	minus := t.CheckPoint(t.nodes[cell].minus, point, tolerance)
	plus := t.CheckPoint(t.nodes[cell].plus, point, tolerance)
	if minus == plus {
		return minus
	}
	return Boundary
}

func (t *Tree[P]) subtreeCell(n Node, point P, tolerance float64) Node {
	for !t.IsLeaf(n) {
		offset := t.nodes[n].cut.Hyperplane().Offset(point)
		if offset > -tolerance && offset < tolerance {
			return n
		}
		if offset <= 0 {
			n = t.nodes[n].minus
		} else {
			n = t.nodes[n].plus
		}
	}
	return n
}

// Len is the number of nodes reachable from the root
func (t *Tree[P]) Len() int {
	return t.countNodes(t.Root())
}

func (t *Tree[P]) countNodes(n Node) int {
	if t.IsLeaf(n) {
		return 1
	}
	return 1 + t.countNodes(t.nodes[n].plus) + t.countNodes(t.nodes[n].minus)
}
