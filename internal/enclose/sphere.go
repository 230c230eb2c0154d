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
package enclose

import (
	"math"
	"math/big"

	"github.com/golang/geo/r3"
)

// sphereBall computes the sphere through 4 points. Determinants are
// computed exactly on rationals, the points are often nearly coplanar
// when they all come from a small patch of the unit sphere
func sphereBall(p []r3.Vector) Ball {
	var c1, c2, c3, c4 [4]*big.Rat
	for i, v := range p {
		c2[i] = ratOf(v.X)
		c3[i] = ratOf(v.Y)
		c4[i] = ratOf(v.Z)
		n := new(big.Rat).Mul(c2[i], c2[i])
		n.Add(n, new(big.Rat).Mul(c3[i], c3[i]))
		n.Add(n, new(big.Rat).Mul(c4[i], c4[i]))
		c1[i] = n
	}

	twoM11 := minor(c2, c3, c4)
	twoM11.Mul(twoM11, big.NewRat(2, 1))
	if twoM11.Sign() == 0 {
		return coplanarBall(p)
	}
	m12 := minor(c1, c3, c4)
	m13 := minor(c1, c2, c4)
	m14 := minor(c1, c2, c3)

	centerX := new(big.Rat).Quo(m12, twoM11)
	centerY := new(big.Rat).Quo(m13, twoM11)
	centerY.Neg(centerY)
	centerZ := new(big.Rat).Quo(m14, twoM11)

	dx := new(big.Rat).Sub(c2[0], centerX)
	dy := new(big.Rat).Sub(c3[0], centerY)
	dz := new(big.Rat).Sub(c4[0], centerZ)
	r2 := new(big.Rat).Mul(dx, dx)
	r2.Add(r2, new(big.Rat).Mul(dy, dy))
	r2.Add(r2, new(big.Rat).Mul(dz, dz))

	x, _ := centerX.Float64()
	y, _ := centerY.Float64()
	z, _ := centerZ.Float64()
	radius2, _ := r2.Float64()
	return Ball{
		Center:  r3.Vector{X: x, Y: y, Z: z},
		Radius:  math.Sqrt(radius2),
		Support: p,
	}
}

func ratOf(f float64) *big.Rat {
	return new(big.Rat).SetFloat64(f)
}

// minor is the determinant of the 4x4 matrix whose columns are c1, c2, c3
// and a column of ones
func minor(c1, c2, c3 [4]*big.Rat) *big.Rat {
	terms := [][4]int{
		// c2 index, c3 index, c1 positive index, c1 negative index
		{0, 1, 2, 3},
		{0, 2, 3, 1},
		{0, 3, 1, 2},
		{1, 0, 3, 2},
		{1, 2, 0, 3},
		{1, 3, 2, 0},
		{2, 0, 1, 3},
		{2, 1, 3, 0},
		{2, 3, 0, 1},
		{3, 0, 2, 1},
		{3, 1, 0, 2},
		{3, 2, 1, 0},
	}
	sum := new(big.Rat)
	for _, k := range terms {
		diff := new(big.Rat).Sub(c1[k[2]], c1[k[3]])
		term := new(big.Rat).Mul(c2[k[0]], c3[k[1]])
		term.Mul(term, diff)
		sum.Add(sum, term)
	}
	return sum
}

// coplanarBall handles 4 points with no sphere through them: among the
// balls on 3 of them, keep the smallest containing the fourth one
func coplanarBall(p []r3.Vector) Ball {
	best := Ball{Radius: math.Inf(1)}
	largest := Ball{Radius: math.Inf(-1)}
	for skip := range p {
		var three []r3.Vector
		for i, v := range p {
			if i != skip {
				three = append(three, v)
			}
		}
		ball := circumscribedBall(three)
		if ball.Radius > largest.Radius {
			largest = ball
		}
		if ball.Contains(p[skip], 1e-12*(1+ball.Radius)) && ball.Radius < best.Radius {
			best = ball
		}
	}
	if math.IsInf(best.Radius, 1) {
		return largest
	}
	return best
}
