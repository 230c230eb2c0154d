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
	"sort"

	"github.com/vigilantdoomer/spherebsp/internal/mylog"
)

// NewTreeFromBoundary builds a tree from the sub-hyperplanes enclosing a
// region. Each sub-hyperplane must have the inside of the region on its
// minus side. Sub-hyperplanes are inserted largest first, which tends to
// give shallower trees. An empty boundary gives the whole space
func NewTreeFromBoundary[P any](boundary []SubHyperplane[P]) *Tree[P] {
	if len(boundary) == 0 {
		return NewTree[P](In)
	}
	ordered := make([]SubHyperplane[P], len(boundary))
	copy(ordered, boundary)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Size() > ordered[j].Size()
	})

	t := NewTree[P](Unset)
	t.insertCuts(t.Root(), ordered)

	// leaves on the minus side of their parent are inside, as is the root
	// if nothing could be inserted at all
	t.VisitLeaves(func(t *Tree[P], n Node) {
		if t.Parent(n) == NoNode || t.IsMinusChild(n) {
			t.nodes[n].attr = In
		} else {
			t.nodes[n].attr = Out
		}
	})
	mylog.Log.Verbose(1, "Built tree of %d nodes from %d boundary parts\n",
		t.Len(), len(boundary))
	return t
}

func (t *Tree[P]) insertCuts(n Node, boundary []SubHyperplane[P]) {
	var inserted Hyperplane[P]
	i := 0
	for inserted == nil && i < len(boundary) {
		inserted = boundary[i].Hyperplane()
		i++
		if !t.InsertCut(n, inserted) {
			inserted = nil
		}
	}
	if inserted == nil || i >= len(boundary) {
		return
	}

	var plusList, minusList []SubHyperplane[P]
	for _, other := range boundary[i:] {
		split := other.Split(inserted)
		switch split.Side() {
		case Plus:
			plusList = append(plusList, other)
		case Minus:
			minusList = append(minusList, other)
		case Both:
			plusList = append(plusList, split.Plus)
			minusList = append(minusList, split.Minus)
		default:
			// lies on the inserted cut, nothing more to do with it
		}
	}

	t.insertCuts(t.nodes[n].plus, plusList)
	t.insertCuts(t.nodes[n].minus, minusList)
}
