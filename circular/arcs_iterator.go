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
package circular

import (
	"iter"

	"github.com/vigilantdoomer/spherebsp/bsp"
)

// Going around the circle counterclockwise, the leaves of a limit node
// come before or after its location depending on the orientation of the
// limit. The helpers below walk internal nodes and leaves in angular order

func (s *ArcsSet) isDirect(n bsp.Node) bool {
	return s.Tree(false).Cut(n).Hyperplane().(*LimitAngle).IsDirect()
}

func (s *ArcsSet) angle(n bsp.Node) float64 {
	return s.Tree(false).Cut(n).Hyperplane().(*LimitAngle).Location().Radians()
}

func (s *ArcsSet) childBefore(n bsp.Node) bsp.Node {
	if s.isDirect(n) {
		// smaller angles are on minus side, larger angles are on plus side
		return s.Tree(false).Minus(n)
	}
	// smaller angles are on plus side, larger angles are on minus side
	return s.Tree(false).Plus(n)
}

func (s *ArcsSet) childAfter(n bsp.Node) bsp.Node {
	if s.isDirect(n) {
		return s.Tree(false).Plus(n)
	}
	return s.Tree(false).Minus(n)
}

func (s *ArcsSet) isBeforeParent(n bsp.Node) bool {
	parent := s.Tree(false).Parent(n)
	if parent == bsp.NoNode {
		return false
	}
	return n == s.childBefore(parent)
}

func (s *ArcsSet) isAfterParent(n bsp.Node) bool {
	parent := s.Tree(false).Parent(n)
	if parent == bsp.NoNode {
		return false
	}
	return n == s.childAfter(parent)
}

// leafBefore is the last leaf preceding internal node n
func (s *ArcsSet) leafBefore(n bsp.Node) bsp.Node {
	tree := s.Tree(false)
	n = s.childBefore(n)
	for !tree.IsLeaf(n) {
		n = s.childAfter(n)
	}
	return n
}

// leafAfter is the first leaf following internal node n
func (s *ArcsSet) leafAfter(n bsp.Node) bsp.Node {
	tree := s.Tree(false)
	n = s.childAfter(n)
	for !tree.IsLeaf(n) {
		n = s.childBefore(n)
	}
	return n
}

// nextInternalNode returns NoNode past the largest limit
func (s *ArcsSet) nextInternalNode(n bsp.Node) bsp.Node {
	tree := s.Tree(false)
	if !tree.IsLeaf(s.childAfter(n)) {
		// the next node is in the sub-tree
		return tree.Parent(s.leafAfter(n))
	}
	// there is nothing left deeper in the tree, we backtrack
	for s.isAfterParent(n) {
		n = tree.Parent(n)
	}
	return tree.Parent(n)
}

// previousInternalNode returns NoNode before the smallest limit
func (s *ArcsSet) previousInternalNode(n bsp.Node) bsp.Node {
	tree := s.Tree(false)
	if !tree.IsLeaf(s.childBefore(n)) {
		return tree.Parent(s.leafBefore(n))
	}
	for s.isBeforeParent(n) {
		n = tree.Parent(n)
	}
	return tree.Parent(n)
}

// firstLeaf is the leaf containing angles just above 0
func (s *ArcsSet) firstLeaf() bsp.Node {
	tree := s.Tree(false)
	root := tree.Root()
	if tree.IsLeaf(root) {
		return root
	}
	smallest := bsp.NoNode
	for n := root; n != bsp.NoNode; n = s.previousInternalNode(n) {
		smallest = n
	}
	return s.leafBefore(smallest)
}

// lastLeaf is the leaf containing angles just below 2π
func (s *ArcsSet) lastLeaf() bsp.Node {
	tree := s.Tree(false)
	root := tree.Root()
	if tree.IsLeaf(root) {
		return root
	}
	largest := bsp.NoNode
	for n := root; n != bsp.NoNode; n = s.nextInternalNode(n) {
		largest = n
	}
	return s.leafAfter(largest)
}

func (s *ArcsSet) isInside(leaf bsp.Node) bool {
	return s.Tree(false).Attribute(leaf) == bsp.In
}

func (s *ArcsSet) isArcStart(n bsp.Node) bool {
	return !s.isInside(s.leafBefore(n)) && s.isInside(s.leafAfter(n))
}

func (s *ArcsSet) isArcEnd(n bsp.Node) bool {
	return s.isInside(s.leafBefore(n)) && !s.isInside(s.leafAfter(n))
}

func (s *ArcsSet) firstArcStart() bsp.Node {
	tree := s.Tree(false)
	if tree.IsLeaf(tree.Root()) {
		return bsp.NoNode
	}
	n := tree.Parent(s.firstLeaf())
	for n != bsp.NoNode && !s.isArcStart(n) {
		n = s.nextInternalNode(n)
	}
	return n
}

// subArcsIterator yields arcs in increasing order of their start. When the
// last arc wraps around 2π its end is reported above 2π
type subArcsIterator struct {
	set        *ArcsSet
	firstStart bsp.Node
	current    bsp.Node
	pending    [2]float64
	hasPending bool
}

func newSubArcsIterator(s *ArcsSet) *subArcsIterator {
	it := &subArcsIterator{set: s}
	it.firstStart = s.firstArcStart()
	it.current = it.firstStart
	if it.firstStart == bsp.NoNode {
		// all the leaves share the same inside/outside status
		if s.isInside(s.firstLeaf()) {
			it.pending = [2]float64{0, TWO_PI}
			it.hasPending = true
		}
		return it
	}
	it.selectPending()
	return it
}

func (it *subArcsIterator) selectPending() {
	s := it.set
	// look for the start of the arc
	start := it.current
	for start != bsp.NoNode && !s.isArcStart(start) {
		start = s.nextInternalNode(start)
	}
	if start == bsp.NoNode {
		// we have exhausted the iterator
		it.current = bsp.NoNode
		it.hasPending = false
		return
	}

	// look for the end of the arc
	end := start
	for end != bsp.NoNode && !s.isArcEnd(end) {
		end = s.nextInternalNode(end)
	}
	if end != bsp.NoNode {
		it.pending = [2]float64{s.angle(start), s.angle(end)}
		it.hasPending = true
		// prepare search for next arc
		it.current = end
		return
	}

	// the final arc wraps around 2π, its end is before the first start
	end = it.firstStart
	for end != bsp.NoNode && !s.isArcEnd(end) {
		end = s.previousInternalNode(end)
	}
	if end == bsp.NoNode {
		bsp.InternalError("arc starting at %g never ends", s.angle(start))
	}
	it.pending = [2]float64{s.angle(start), s.angle(end) + TWO_PI}
	it.hasPending = true
	it.current = bsp.NoNode
}

func (it *subArcsIterator) next() (float64, float64, bool) {
	if !it.hasPending {
		return 0, 0, false
	}
	arc := it.pending
	it.selectPending()
	return arc[0], arc[1], true
}

// Iterator returns a single pass generator over the arcs. Each call yields
// the next [start, end] pair, ok turns false once the arcs are exhausted
// and stays so. The generator keeps its cursor unguarded, so it must not be
// shared between goroutines
func (s *ArcsSet) Iterator() func() (start, end float64, ok bool) {
	return newSubArcsIterator(s).next
}

// All ranges over the arcs. Every range starts a new iteration
func (s *ArcsSet) All() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		it := newSubArcsIterator(s)
		for {
			start, end, ok := it.next()
			if !ok || !yield(start, end) {
				return
			}
		}
	}
}
