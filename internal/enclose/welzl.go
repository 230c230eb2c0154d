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

// Package enclose computes the smallest ball enclosing a set of points in
// 3D space, using Welzl's move-to-front algorithm with pivoting
package enclose

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/vigilantdoomer/spherebsp/internal/mylog"
)

// A ball in 3D is defined by at most 4 support points
const MAX_SUPPORT = 4

var ErrNoPoints = errors.New("no points to enclose")

// Ball is an enclosing ball together with the points it was built on
type Ball struct {
	Center  r3.Vector
	Radius  float64
	Support []r3.Vector
}

// Contains tells whether p lies within the ball, enlarged by margin
func (b Ball) Contains(p r3.Vector, margin float64) bool {
	return p.Distance(b.Center) <= b.Radius+margin
}

type Encloser struct {
	tolerance float64
}

func NewEncloser(tolerance float64) *Encloser {
	return &Encloser{tolerance: tolerance}
}

// Enclose computes the smallest ball containing every point
func (e *Encloser) Enclose(points []r3.Vector) (Ball, error) {
	if len(points) == 0 {
		return Ball{}, ErrNoPoints
	}
	return e.pivotingBall(points), nil
}

func (e *Encloser) pivotingBall(points []r3.Vector) Ball {
	extreme := make([]r3.Vector, 0, MAX_SUPPORT+1)
	support := make([]r3.Vector, 0, MAX_SUPPORT+1)

	// start with only first point selected as a candidate support
	extreme = append(extreme, points[0])
	ball := e.moveToFrontBall(extreme, len(extreme), support)

	for {
		// select the point farthest to current ball
		farthest := selectFarthest(points, ball)
		if ball.Contains(farthest, e.tolerance) {
			// we have found a ball containing all points
			return ball
		}

		// recurse search, restricted to the small subset containing
		// support and farthest point
		support = append(support[:0], farthest)
		savedBall := ball
		ball = e.moveToFrontBall(extreme, len(extreme), support)
		if ball.Radius < savedBall.Radius {
			// this should never happen
			mylog.Log.Panic("enclosing ball shrank from %g to %g", savedBall.Radius, ball.Radius)
		}

		// it was an interesting point, move it to the front according to
		// Gärtner's heuristic
		extreme = append(extreme, r3.Vector{})
		copy(extreme[1:], extreme)
		extreme[0] = farthest

		// prune the least interesting points
		keep := len(ball.Support)
		if keep < len(extreme) {
			extreme = extreme[:keep]
		}
		mylog.Log.Verbose(2, "Enclosing ball radius %g with %d support points\n",
			ball.Radius, len(ball.Support))
	}
}

func (e *Encloser) moveToFrontBall(extreme []r3.Vector, nbExtreme int, support []r3.Vector) Ball {
	// create a new ball on the prescribed support
	ball := ballOnSupport(support)

	if len(ball.Support) <= MAX_SUPPORT {
		for i := 0; i < nbExtreme; i++ {
			pi := extreme[i]
			if !ball.Contains(pi, e.tolerance) {
				// we have found an outside point, enlarge the ball by
				// adding it to the support
				support = append(support, pi)
				ball = e.moveToFrontBall(extreme, i, support)
				support = support[:len(support)-1]

				// it was an interesting point, move it to the front
				copy(extreme[1:i+1], extreme[:i])
				extreme[0] = pi
			}
		}
	}
	return ball
}

func selectFarthest(points []r3.Vector, ball Ball) r3.Vector {
	farthest := points[0]
	dMax := -1.0
	for _, p := range points {
		if d := p.Distance(ball.Center); d > dMax {
			farthest = p
			dMax = d
		}
	}
	return farthest
}

// ballOnSupport builds the smallest ball having every support point on its
// surface. Only the first MAX_SUPPORT points are used
func ballOnSupport(support []r3.Vector) Ball {
	if len(support) > MAX_SUPPORT {
		support = support[:MAX_SUPPORT]
	}
	kept := make([]r3.Vector, len(support))
	copy(kept, support)

	switch len(kept) {
	case 0:
		return Ball{Radius: math.Inf(-1)}
	case 1:
		return Ball{Center: kept[0], Radius: 0, Support: kept}
	case 2:
		center := kept[0].Add(kept[1]).Mul(0.5)
		return Ball{Center: center, Radius: center.Distance(kept[0]), Support: kept}
	case 3:
		return circumscribedBall(kept)
	}
	return sphereBall(kept)
}

// circumscribedBall is the ball centered on the circumcenter of 3 points,
// within their plane
func circumscribedBall(p []r3.Vector) Ball {
	a := p[1].Sub(p[0])
	b := p[2].Sub(p[0])
	axb := a.Cross(b)
	d := 2 * axb.Norm2()
	if d == 0 {
		// aligned points, the ball on the farthest pair is the best we can do
		return widestPairBall(p)
	}
	offset := b.Mul(a.Norm2()).Sub(a.Mul(b.Norm2())).Cross(axb).Mul(1 / d)
	center := p[0].Add(offset)
	return Ball{Center: center, Radius: offset.Norm(), Support: p}
}

func widestPairBall(p []r3.Vector) Ball {
	best := Ball{Radius: math.Inf(-1)}
	for i := 0; i < len(p); i++ {
		for j := i + 1; j < len(p); j++ {
			if ball := ballOnSupport([]r3.Vector{p[i], p[j]}); ball.Radius > best.Radius {
				best = ball
			}
		}
	}
	return best
}
