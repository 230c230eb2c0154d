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
	"sort"

	"github.com/golang/geo/s1"

	"github.com/vigilantdoomer/spherebsp/bsp"
	"github.com/vigilantdoomer/spherebsp/internal/mylog"
)

// Split holds the parts of an arcs set lying on the plus side (outside) and
// on the minus side (inside) of a splitting arc. Either may be nil
type Split struct {
	plus  *ArcsSet
	minus *ArcsSet
}

func (s Split) Plus() *ArcsSet {
	return s.plus
}

func (s Split) Minus() *ArcsSet {
	return s.minus
}

func (s Split) Side() bsp.Side {
	if s.plus != nil {
		if s.minus != nil {
			return bsp.Both
		}
		return bsp.Plus
	}
	if s.minus != nil {
		return bsp.Minus
	}
	return bsp.Hyper
}

// Side tells where the set lies relative to arc.
//
// Deprecated: use Split(arc).Side() instead.
func (s *ArcsSet) Side(arc Arc) bsp.Side {
	return s.Split(arc).Side()
}

// Split separates the parts of the set lying inside arc (the minus part)
// from those lying outside of it (the plus part)
func (s *ArcsSet) Split(arc Arc) Split {
	var minus, plus []float64
	reference := math.Pi + arc.Inf()
	arcLength := arc.Sup() - arc.Inf()

	for start, end := range s.All() {
		syncedStart := NormalizeAngle(start, reference) - arc.Inf()
		arcOffset := start - syncedStart
		syncedEnd := end - arcOffset
		if syncedStart < arcLength {
			// the start point is in the minus part of the arc
			minus = append(minus, start)
			if syncedEnd > arcLength {
				// the end point is past the end of the arc, so we leave
				// the minus part and enter the plus part
				minusToPlus := arcLength + arcOffset
				minus = append(minus, minusToPlus)
				plus = append(plus, minusToPlus)
				if syncedEnd > TWO_PI {
					// the end point goes far enough that we leave the plus
					// part of the arc and enter the minus part again
					plusToMinus := TWO_PI + arcOffset
					plus = append(plus, plusToMinus)
					minus = append(minus, plusToMinus)
					minus = append(minus, end)
				} else {
					// the end point is in the plus part of the arc
					plus = append(plus, end)
				}
			} else {
				// the end point is in the minus part of the arc
				minus = append(minus, end)
			}
		} else {
			// the start point is in the plus part of the arc
			plus = append(plus, start)
			if syncedEnd > TWO_PI {
				// the end point wraps around, we leave the plus part and
				// enter the minus part
				plusToMinus := TWO_PI + arcOffset
				plus = append(plus, plusToMinus)
				minus = append(minus, plusToMinus)
				if syncedEnd > TWO_PI+arcLength {
					// and we leave the minus part once again
					minusToPlus := TWO_PI + arcLength + arcOffset
					minus = append(minus, minusToPlus)
					plus = append(plus, minusToPlus)
					plus = append(plus, end)
				} else {
					minus = append(minus, end)
				}
			} else {
				plus = append(plus, end)
			}
		}
	}

	return Split{plus: s.createSplitPart(plus), minus: s.createSplitPart(minus)}
}

// createSplitPart builds a set out of a flat list of arc limits, start and
// end alternating. Limits closer than the tolerance collapse together,
// nil means nothing is left
func (s *ArcsSet) createSplitPart(limits []float64) *ArcsSet {
	if len(limits) == 0 {
		return nil
	}
	tolerance := s.Tolerance()

	for i := 0; i < len(limits); i++ {
		j := (i + 1) % len(limits)
		lA := limits[i]
		lB := NormalizeAngle(limits[j], lA)
		if math.Abs(lB-lA) > tolerance {
			continue
		}
		// the two limits are too close to each other, we remove both of them
		mylog.Log.Verbose(2, "Collapsing arc limits %g and %g\n", lA, limits[j])
		if j > 0 {
			// regular case, the two entries are consecutive ones
			limits = append(limits[:i], limits[j+1:]...)
			i--
			continue
		}
		// special case, i is the last entry and j is the first entry: we
		// have wrapped around list end
		lEnd := limits[len(limits)-1]
		lStart := limits[0]
		limits = limits[1 : len(limits)-1]
		if len(limits) == 0 {
			// the ends were the only limits, is it a full circle or an
			// empty circle?
			if lEnd-lStart > math.Pi {
				return newArcsSet(bsp.NewTree[s1.Angle](bsp.In), tolerance)
			}
			return nil
		}
		// we have removed the first interval start, so our list currently
		// starts with an interval end, which is wrong. We need to move this
		// interval end to the end of the list
		first := limits[0]
		limits = append(limits[1:], first+TWO_PI)
	}

	// build the tree by adding all angular sectors
	tree := bsp.NewTree[s1.Angle](bsp.Out)
	for i := 0; i < len(limits)-1; i += 2 {
		s.addArcLimit(tree, limits[i], true)
		s.addArcLimit(tree, limits[i+1], false)
	}
	if tree.IsLeaf(tree.Root()) {
		// we did not insert anything
		return nil
	}
	return newArcsSet(tree, tolerance)
}

func (s *ArcsSet) addArcLimit(tree *bsp.Tree[s1.Angle], alpha float64, isStart bool) {
	tolerance := s.Tolerance()
	limit := NewLimitAngle(s1.Angle(alpha), !isStart, tolerance)
	n := tree.Cell(limit.Location(), tolerance)
	if !tree.IsLeaf(n) {
		// we cannot allow inserting two times the same limit
		bsp.InternalError("arc limit %g already present in the tree", alpha)
	}
	if !tree.InsertCut(n, limit) {
		bsp.InternalError("arc limit %g does not fit in its own cell", alpha)
	}
	tree.SetAttribute(tree.Plus(n), bsp.Out)
	tree.SetAttribute(tree.Minus(n), bsp.In)
}

// unionLimits merges arcs that overlap or touch within tolerance and
// flattens the result into alternating start/end limits. full reports that
// the merged arcs cover the whole circle
func unionLimits(arcs []Arc, tolerance float64) (limits []float64, full bool) {
	if len(arcs) == 0 {
		return nil, false
	}
	sort.Slice(arcs, func(i, j int) bool {
		return arcs[i].Inf() < arcs[j].Inf()
	})
	merged := [][2]float64{{arcs[0].Inf(), arcs[0].Sup()}}
	for _, a := range arcs[1:] {
		last := &merged[len(merged)-1]
		if a.Inf() <= last[1]+tolerance {
			last[1] = math.Max(last[1], a.Sup())
		} else {
			merged = append(merged, [2]float64{a.Inf(), a.Sup()})
		}
	}
	// the last arcs may wrap around 2π and swallow the first ones
	for len(merged) > 1 {
		last := &merged[len(merged)-1]
		if last[1]-TWO_PI < merged[0][0]-tolerance {
			break
		}
		last[1] = math.Max(last[1], merged[0][1]+TWO_PI)
		merged = merged[1:]
	}
	last := merged[len(merged)-1]
	if last[1]-merged[0][0] >= TWO_PI-tolerance {
		return nil, true
	}
	for _, m := range merged {
		limits = append(limits, m[0], m[1])
	}
	return limits, false
}
