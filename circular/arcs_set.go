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
	"math"

	"github.com/golang/geo/s1"

	"github.com/vigilantdoomer/spherebsp/bsp"
	"github.com/vigilantdoomer/spherebsp/internal/mylog"
)

// ArcsSet is a region of the circle: any number of disjoint arcs, or the
// full circle, or nothing. The inside lies on the minus side of every limit
// angle of the tree
type ArcsSet struct {
	bsp.Region[s1.Angle]
	propsDone  bool
	size       float64
	barycenter s1.Angle
}

func newArcsSet(tree *bsp.Tree[s1.Angle], tolerance float64) *ArcsSet {
	return &ArcsSet{Region: bsp.NewRegion(tree, tolerance)}
}

// NewFullArcsSet creates the region covering the whole circle
func NewFullArcsSet(tolerance float64) (*ArcsSet, error) {
	if err := bsp.CheckTolerance(tolerance); err != nil {
		return nil, err
	}
	return newArcsSet(bsp.NewTree[s1.Angle](bsp.In), tolerance), nil
}

// MustNewFullArcsSet is NewFullArcsSet for tolerances already validated
// elsewhere, it panics otherwise
func MustNewFullArcsSet(tolerance float64) *ArcsSet {
	s, err := NewFullArcsSet(tolerance)
	if err != nil {
		bsp.InternalError("full circle: %v", err)
	}
	return s
}

// NewEmptyArcsSet creates the region covering nothing
func NewEmptyArcsSet(tolerance float64) (*ArcsSet, error) {
	if err := bsp.CheckTolerance(tolerance); err != nil {
		return nil, err
	}
	return newArcsSet(bsp.NewTree[s1.Angle](bsp.Out), tolerance), nil
}

// NewArcsSet creates the region made of the single arc going from lower to
// upper. Equal bounds, or bounds at least 2π apart, give the full circle
func NewArcsSet(lower, upper, tolerance float64) (*ArcsSet, error) {
	if err := bsp.CheckTolerance(tolerance); err != nil {
		return nil, err
	}
	tree, err := buildTree(lower, upper, tolerance)
	if err != nil {
		return nil, err
	}
	return newArcsSet(tree, tolerance), nil
}

// NewArcsSetFromTree wraps an existing tree, which is not copied. The tree
// must agree with itself about the state of the circle around the point
// where it wraps from 2π back to 0
func NewArcsSetFromTree(tree *bsp.Tree[s1.Angle], tolerance float64) (*ArcsSet, error) {
	if err := bsp.CheckTolerance(tolerance); err != nil {
		return nil, err
	}
	s := newArcsSet(tree, tolerance)
	if err := s.check2PiConsistency(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewArcsSetFromBoundary builds the region enclosed by the given limit
// angles, the inside lying on their minus side
func NewArcsSetFromBoundary(boundary []bsp.SubHyperplane[s1.Angle], tolerance float64) (*ArcsSet, error) {
	if err := bsp.CheckTolerance(tolerance); err != nil {
		return nil, err
	}
	return NewArcsSetFromTree(bsp.NewTreeFromBoundary(boundary), tolerance)
}

// BuildNew creates a region of the same kind and tolerance from a tree
func (s *ArcsSet) BuildNew(tree *bsp.Tree[s1.Angle]) (*ArcsSet, error) {
	return NewArcsSetFromTree(tree, s.Tolerance())
}

func buildTree(lower, upper, tolerance float64) (*bsp.Tree[s1.Angle], error) {
	if lower == upper || upper-lower >= TWO_PI {
		// the tree must cover the whole circle
		return bsp.NewTree[s1.Angle](bsp.In), nil
	} else if lower > upper {
		return nil, &IntervalError{Lower: lower, Upper: upper}
	}

	// this is a regular arc, covering only part of the circle
	normalizedLower := NormalizeAngle(lower, math.Pi)
	normalizedUpper := normalizedLower + (upper - lower)
	lowerCut := NewLimitAngle(s1.Angle(normalizedLower), false, tolerance).WholeHyperplane()

	tree := bsp.NewTree[s1.Angle](bsp.Unset)
	if normalizedUpper < TWO_PI {
		// simple arc starting after 0 and ending before 2π
		upperCut := NewLimitAngle(s1.Angle(normalizedUpper), true, tolerance).WholeHyperplane()
		_, minus := tree.Attach(tree.Root(), lowerCut, bsp.Out, bsp.Unset)
		tree.Attach(minus, upperCut, bsp.Out, bsp.In)
	} else {
		// arc wrapping around 2π. An arc ending exactly at 2π goes here
		// too, its upper limit is stored at 0
		upperCut := NewLimitAngle(s1.Angle(normalizedUpper-TWO_PI), true, tolerance).WholeHyperplane()
		plus, _ := tree.Attach(tree.Root(), lowerCut, bsp.Unset, bsp.In)
		tree.Attach(plus, upperCut, bsp.Out, bsp.In)
	}
	return tree, nil
}

func (s *ArcsSet) check2PiConsistency() error {
	tree := s.Tree(false)
	if tree.IsLeaf(tree.Root()) {
		return nil
	}
	stateBefore := tree.Attribute(s.firstLeaf()) == bsp.In
	stateAfter := tree.Attribute(s.lastLeaf()) == bsp.In
	if stateBefore != stateAfter {
		return ErrInconsistentStateAt2PiWrapping
	}
	return nil
}

// CheckPoint locates an angle, which may lie outside of [0, 2π). Angles
// within tolerance below 2π are also checked against the limits at 0
func (s *ArcsSet) CheckPoint(point s1.Angle) bsp.Location {
	p := NormalizeAngle(point.Radians(), math.Pi)
	location := s.Region.CheckPoint(s1.Angle(p))
	if location != bsp.Boundary && p >= TWO_PI-s.Tolerance() {
		if s.Region.CheckPoint(s1.Angle(p-TWO_PI)) == bsp.Boundary {
			return bsp.Boundary
		}
	}
	return location
}

// Size is the total angular length of the arcs
func (s *ArcsSet) Size() float64 {
	s.computeGeometricalProperties()
	return s.size
}

// Barycenter is NaN for the empty set and the full circle
func (s *ArcsSet) Barycenter() s1.Angle {
	s.computeGeometricalProperties()
	return s.barycenter
}

func (s *ArcsSet) computeGeometricalProperties() {
	if s.propsDone {
		return
	}
	s.propsDone = true
	tree := s.Tree(false)
	if tree.IsLeaf(tree.Root()) {
		s.barycenter = s1.Angle(math.NaN())
		if tree.Attribute(tree.Root()) == bsp.In {
			s.size = TWO_PI
		} else {
			s.size = 0
		}
		return
	}
	size := 0.0
	sum := 0.0
	for start, end := range s.All() {
		length := end - start
		size += length
		sum += length * (start + end)
	}
	s.size = size
	if size == TWO_PI {
		s.barycenter = s1.Angle(math.NaN())
	} else if size >= SAFE_MIN {
		s.barycenter = s1.Angle(NormalizeAngle(sum/(2*size), math.Pi))
	} else {
		limit := tree.Cut(tree.Root()).Hyperplane().(*LimitAngle)
		s.barycenter = limit.Location()
	}
}

// AsList snapshots the arcs, in increasing order of their start
func (s *ArcsSet) AsList() []Arc {
	var list []Arc
	for start, end := range s.All() {
		list = append(list, MustNewArc(start, end, s.Tolerance()))
	}
	return list
}

// Union builds the region covering both s and other
func (s *ArcsSet) Union(other *ArcsSet) *ArcsSet {
	tolerance := s.Tolerance()
	if s.IsFull() || other.IsFull() {
		return newArcsSet(bsp.NewTree[s1.Angle](bsp.In), tolerance)
	}
	limits, full := unionLimits(append(s.AsList(), other.AsList()...), tolerance)
	if full {
		return newArcsSet(bsp.NewTree[s1.Angle](bsp.In), tolerance)
	}
	union := s.createSplitPart(limits)
	if union == nil {
		return newArcsSet(bsp.NewTree[s1.Angle](bsp.Out), tolerance)
	}
	mylog.Log.Verbose(2, "Union of arcs sets has size %g\n", union.Size())
	return union
}
