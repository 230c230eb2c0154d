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
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"github.com/vigilantdoomer/spherebsp/bsp"
	"github.com/vigilantdoomer/spherebsp/circular"
)

// propertiesComputer sums area and barycenter over the inside convex cells
// of a tree
type propertiesComputer struct {
	tolerance        float64
	summedArea       float64
	summedBarycenter r3.Vector
	insidePoints     []r3.Vector
}

func newPropertiesComputer(tolerance float64) *propertiesComputer {
	return &propertiesComputer{tolerance: tolerance}
}

func (pc *propertiesComputer) VisitOrder(t *bsp.Tree[s2.Point], n bsp.Node) bsp.Order {
	return bsp.MinusSubPlus
}

func (pc *propertiesComputer) VisitInternalNode(t *bsp.Tree[s2.Point], n bsp.Node) {}

func (pc *propertiesComputer) VisitLeafNode(t *bsp.Tree[s2.Point], n bsp.Node) {
	if t.Attribute(n) != bsp.In {
		return
	}
	// transform this inside leaf cell into a simple convex polygon
	convex := newPolygonsSet(t.PruneAroundConvexCell(n, bsp.In, bsp.Out), pc.tolerance)

	// extract the start of the single loop boundary of the convex cell
	boundary := convex.BoundaryLoops()
	if len(boundary) != 1 {
		bsp.InternalError("convex cell at node %d has %d boundary loops", n, len(boundary))
	}

	area := convexCellArea(boundary[0])
	barycenter := convexCellBarycenter(boundary[0])
	pc.insidePoints = append(pc.insidePoints, barycenter)

	// add the cell contribution to the global properties
	pc.summedArea += area
	pc.summedBarycenter = pc.summedBarycenter.Add(barycenter.Mul(area))
}

// convexCellArea applies the extended Girard theorem: the area of a
// spherical polygon is the sum of its interior angles minus (n-2)π
func convexCellArea(start *Vertex) float64 {
	n := 0
	sum := 0.0
	start.Loop(func(v *Vertex) bool {
		// interior angle at the vertex, between the incoming and the
		// outgoing edges
		previousPole := v.incoming.circle.pole
		nextPole := v.outgoing.circle.pole
		point := v.location.Vector
		alpha := math.Atan2(nextPole.Dot(point.Cross(previousPole)), -nextPole.Dot(previousPole))
		if alpha < 0 {
			alpha += circular.TWO_PI
		}
		sum += alpha
		n++
		return true
	})
	return sum - float64(n-2)*math.Pi
}

// convexCellBarycenter sums the poles of the edges weighted by their length
func convexCellBarycenter(start *Vertex) r3.Vector {
	sum := r3.Vector{}
	start.Loop(func(v *Vertex) bool {
		e := v.outgoing
		sum = sum.Add(e.circle.pole.Mul(e.length))
		return true
	})
	return sum.Normalize()
}

func (pc *propertiesComputer) area() float64 {
	return pc.summedArea
}

func (pc *propertiesComputer) barycenter() s2.Point {
	if pc.summedBarycenter.Norm2() == 0 {
		return nanPoint()
	}
	return s2.Point{Vector: pc.summedBarycenter.Normalize()}
}
