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

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Oriented points on the real line are the simplest hyperplanes around,
// good enough to exercise the engine
type linePoint struct {
	location float64
	direct   bool
}

func (h *linePoint) Offset(p float64) float64 {
	if h.direct {
		return p - h.location
	}
	return h.location - p
}

func (h *linePoint) WholeHyperplane() SubHyperplane[float64] {
	return &subLinePoint{h}
}

func (h *linePoint) Tolerance() float64 {
	return 1e-10
}

type subLinePoint struct {
	h *linePoint
}

func (s *subLinePoint) Hyperplane() Hyperplane[float64] {
	return s.h
}

func (s *subLinePoint) Split(h Hyperplane[float64]) SplitSubHyperplane[float64] {
	offset := h.Offset(s.h.location)
	if offset < -s.h.Tolerance() {
		return SplitSubHyperplane[float64]{Minus: s}
	}
	if offset > s.h.Tolerance() {
		return SplitSubHyperplane[float64]{Plus: s}
	}
	return SplitSubHyperplane[float64]{}
}

func (s *subLinePoint) Reunite(other SubHyperplane[float64]) SubHyperplane[float64] {
	return s
}

func (s *subLinePoint) IsEmpty() bool {
	return false
}

func (s *subLinePoint) Size() float64 {
	return 0
}

// unitInterval builds (0, 1) by hand
func unitInterval(t *testing.T) *Tree[float64] {
	tree := NewTree[float64](Unset)
	require.True(t, tree.InsertCut(tree.Root(), &linePoint{0, false}))
	tree.SetAttribute(tree.Plus(tree.Root()), Out)
	m := tree.Minus(tree.Root())
	require.True(t, tree.InsertCut(m, &linePoint{1, true}))
	tree.SetAttribute(tree.Plus(m), Out)
	tree.SetAttribute(tree.Minus(m), In)
	return tree
}

func TestCheckPoint(t *testing.T) {
	tree := unitInterval(t)
	cases := []struct {
		point float64
		want  Location
	}{
		{0.5, Inside},
		{-1, Outside},
		{2, Outside},
		{0, Boundary},
		{1, Boundary},
		{1 + 1e-12, Boundary},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tree.CheckPoint(tree.Root(), c.point, 1e-10), "point %g", c.point)
	}
	assert.False(t, tree.IsEmpty(tree.Root()))
	assert.False(t, tree.IsFull(tree.Root()))
	assert.Equal(t, 5, tree.Len())
}

func TestInsertCutOutsideCell(t *testing.T) {
	tree := unitInterval(t)
	m := tree.Minus(tree.Root())
	leaf := tree.Minus(m)
	// -1 is not within the cell (0, 1)
	assert.False(t, tree.InsertCut(leaf, &linePoint{-1, true}))
	assert.True(t, tree.IsLeaf(leaf))
	assert.True(t, tree.InsertCut(leaf, &linePoint{0.5, true}))
	assert.False(t, tree.IsLeaf(leaf))
}

func TestCellAndCloseCuts(t *testing.T) {
	tree := unitInterval(t)
	assert.Equal(t, tree.Root(), tree.Cell(0, 1e-10))
	assert.Equal(t, tree.Minus(tree.Root()), tree.Cell(1, 1e-10))
	assert.Equal(t, tree.Plus(tree.Root()), tree.Cell(-3, 1e-10))

	close := tree.CloseCuts(0.5, 0.6)
	assert.ElementsMatch(t, []Node{tree.Root(), tree.Minus(tree.Root())}, close)
	assert.Equal(t, []Node{tree.Minus(tree.Root())}, tree.CloseCuts(0.95, 0.1))
	assert.Empty(t, tree.CloseCuts(5, 0.1))
}

func TestComplement(t *testing.T) {
	tree := unitInterval(t)
	c := tree.Complement()
	assert.Equal(t, Outside, c.CheckPoint(c.Root(), 0.5, 1e-10))
	assert.Equal(t, Inside, c.CheckPoint(c.Root(), 3, 1e-10))
	// original untouched
	assert.Equal(t, Inside, tree.CheckPoint(tree.Root(), 0.5, 1e-10))
}

func TestPruneAroundConvexCell(t *testing.T) {
	tree := unitInterval(t)
	outsideLeaf := tree.Plus(tree.Minus(tree.Root()))
	pruned := tree.PruneAroundConvexCell(outsideLeaf, In, Out)
	assert.Equal(t, Inside, pruned.CheckPoint(pruned.Root(), 2, 1e-10))
	assert.Equal(t, Outside, pruned.CheckPoint(pruned.Root(), 0.5, 1e-10))
	assert.Equal(t, Outside, pruned.CheckPoint(pruned.Root(), -2, 1e-10))
	assert.Equal(t, 5, pruned.Len())

	single := NewTree[float64](In).PruneAroundConvexCell(0, Out, In)
	assert.True(t, single.IsLeaf(single.Root()))
	assert.Equal(t, Out, single.Attribute(single.Root()))
}

type recordingVisitor struct {
	order Order
	seen  []string
}

func (v *recordingVisitor) VisitOrder(t *Tree[float64], n Node) Order {
	return v.order
}

func (v *recordingVisitor) VisitInternalNode(t *Tree[float64], n Node) {
	v.seen = append(v.seen, "cut")
}

func (v *recordingVisitor) VisitLeafNode(t *Tree[float64], n Node) {
	v.seen = append(v.seen, t.Attribute(n).String())
}

func TestVisitOrders(t *testing.T) {
	tree := NewTree[float64](Unset)
	tree.Attach(tree.Root(), (&linePoint{0, true}).WholeHyperplane(), Out, In)
	cases := []struct {
		order Order
		want  []string
	}{
		{PlusMinusSub, []string{"OUT", "IN", "cut"}},
		{PlusSubMinus, []string{"OUT", "cut", "IN"}},
		{MinusPlusSub, []string{"IN", "OUT", "cut"}},
		{MinusSubPlus, []string{"IN", "cut", "OUT"}},
		{SubPlusMinus, []string{"cut", "OUT", "IN"}},
		{SubMinusPlus, []string{"cut", "IN", "OUT"}},
	}
	for _, c := range cases {
		v := &recordingVisitor{order: c.order}
		tree.Visit(v)
		assert.Equal(t, c.want, v.seen)
	}
}

func TestTreeFromBoundary(t *testing.T) {
	boundary := []SubHyperplane[float64]{
		(&linePoint{0, false}).WholeHyperplane(),
		(&linePoint{1, true}).WholeHyperplane(),
	}
	tree := NewTreeFromBoundary(boundary)
	assert.Equal(t, Inside, tree.CheckPoint(tree.Root(), 0.5, 1e-10))
	assert.Equal(t, Outside, tree.CheckPoint(tree.Root(), 1.5, 1e-10))
	assert.Equal(t, Outside, tree.CheckPoint(tree.Root(), -0.5, 1e-10))
	assert.Equal(t, Boundary, tree.CheckPoint(tree.Root(), 1, 1e-10))

	whole := NewTreeFromBoundary[float64](nil)
	assert.True(t, whole.IsFull(whole.Root()))
}

func TestBoundaryAttributes(t *testing.T) {
	tree := unitInterval(t)
	rootAttr := tree.Boundary(tree.Root())
	require.NotNil(t, rootAttr)
	assert.NotNil(t, rootAttr.PlusOutside)
	assert.Nil(t, rootAttr.PlusInside)

	innerAttr := tree.Boundary(tree.Minus(tree.Root()))
	assert.NotNil(t, innerAttr.PlusOutside)
	assert.Nil(t, innerAttr.PlusInside)

	// points have no size
	assert.Equal(t, 0.0, tree.BoundarySize())

	// complement swaps sides of the boundary
	c := tree.Complement()
	attr := c.Boundary(c.Root())
	assert.Nil(t, attr.PlusOutside)
	assert.NotNil(t, attr.PlusInside)
}

func TestRegion(t *testing.T) {
	r := NewRegion(unitInterval(t), 1e-10)
	assert.Equal(t, 1e-10, r.Tolerance())
	assert.False(t, r.IsEmpty())
	assert.False(t, r.IsFull())
	assert.Equal(t, Inside, r.CheckPoint(0.25))
	assert.NotNil(t, r.Tree(true).Boundary(0))
}

func TestCheckTolerance(t *testing.T) {
	assert.NoError(t, CheckTolerance(1e-10))
	assert.NoError(t, CheckTolerance(SmallestTolerance))
	err := CheckTolerance(SmallestTolerance / 2)
	assert.True(t, errors.Is(err, ErrToleranceTooSmall))
	assert.Error(t, CheckTolerance(0))
}

func TestInternalErrorPanics(t *testing.T) {
	tree := unitInterval(t)
	assert.Panics(t, func() {
		tree.Attach(tree.Root(), (&linePoint{3, true}).WholeHyperplane(), Out, In)
	})
}

func TestSplitSide(t *testing.T) {
	s := (&linePoint{0, true}).WholeHyperplane()
	assert.Equal(t, Hyper, SplitSubHyperplane[float64]{}.Side())
	assert.Equal(t, Plus, SplitSubHyperplane[float64]{Plus: s}.Side())
	assert.Equal(t, Minus, SplitSubHyperplane[float64]{Minus: s}.Side())
	assert.Equal(t, Both, SplitSubHyperplane[float64]{Plus: s, Minus: s}.Side())
}
