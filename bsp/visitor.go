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

// Order in which a visitor wants to see the plus subtree, the minus
// subtree and the cut of an internal node
type Order uint8

const (
	PlusMinusSub Order = iota
	PlusSubMinus
	MinusPlusSub
	MinusSubPlus
	SubPlusMinus
	SubMinusPlus
)

// Visitor walks a tree, see Tree.Visit
type Visitor[P any] interface {
	VisitOrder(t *Tree[P], n Node) Order
	VisitInternalNode(t *Tree[P], n Node)
	VisitLeafNode(t *Tree[P], n Node)
}

// Visit walks the whole tree depth first
func (t *Tree[P]) Visit(v Visitor[P]) {
	t.visit(t.Root(), v)
}

func (t *Tree[P]) visit(n Node, v Visitor[P]) {
	if t.IsLeaf(n) {
		v.VisitLeafNode(t, n)
		return
	}
	plus, minus := t.nodes[n].plus, t.nodes[n].minus
	switch v.VisitOrder(t, n) {
	case PlusMinusSub:
		t.visit(plus, v)
		t.visit(minus, v)
		v.VisitInternalNode(t, n)
	case PlusSubMinus:
		t.visit(plus, v)
		v.VisitInternalNode(t, n)
		t.visit(minus, v)
	case MinusPlusSub:
		t.visit(minus, v)
		t.visit(plus, v)
		v.VisitInternalNode(t, n)
	case MinusSubPlus:
		t.visit(minus, v)
		v.VisitInternalNode(t, n)
		t.visit(plus, v)
	case SubPlusMinus:
		v.VisitInternalNode(t, n)
		t.visit(plus, v)
		t.visit(minus, v)
	case SubMinusPlus:
		v.VisitInternalNode(t, n)
		t.visit(minus, v)
		t.visit(plus, v)
	default:
		InternalError("unknown visit order %d at node %d", v.VisitOrder(t, n), n)
	}
}

// leafVisitor adapts a plain function that only cares about leaves
type leafVisitor[P any] func(t *Tree[P], n Node)

func (f leafVisitor[P]) VisitOrder(t *Tree[P], n Node) Order {
	return MinusSubPlus
}

func (f leafVisitor[P]) VisitInternalNode(t *Tree[P], n Node) {}

func (f leafVisitor[P]) VisitLeafNode(t *Tree[P], n Node) {
	f(t, n)
}

// VisitLeaves calls f on every leaf, in minus-before-plus order
func (t *Tree[P]) VisitLeaves(f func(t *Tree[P], n Node)) {
	t.Visit(leafVisitor[P](f))
}
