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

// Region couples a tree with the tolerance used to query it. Dimension
// specific region types embed it
type Region[P any] struct {
	tree      *Tree[P]
	tolerance float64
}

func NewRegion[P any](tree *Tree[P], tolerance float64) Region[P] {
	return Region[P]{tree: tree, tolerance: tolerance}
}

// Tree returns the underlying tree. When includeBoundary is set, boundary
// attributes of internal nodes are computed first
func (r *Region[P]) Tree(includeBoundary bool) *Tree[P] {
	if includeBoundary {
		r.tree.BuildBoundary()
	}
	return r.tree
}

func (r *Region[P]) Tolerance() float64 {
	return r.tolerance
}

func (r *Region[P]) IsEmpty() bool {
	return r.tree.IsEmpty(r.tree.Root())
}

func (r *Region[P]) IsFull() bool {
	return r.tree.IsFull(r.tree.Root())
}

func (r *Region[P]) CheckPoint(point P) Location {
	return r.tree.CheckPoint(r.tree.Root(), point, r.tolerance)
}

func (r *Region[P]) BoundarySize() float64 {
	return r.tree.BoundarySize()
}
