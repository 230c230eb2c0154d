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
)

// LimitAngle is the hyperplane of the circle: an oriented point. A direct
// limit has its plus side in the counterclockwise direction, so the inside
// of the region (the minus side) lies before it
type LimitAngle struct {
	location  s1.Angle
	direct    bool
	tolerance float64
}

// NewLimitAngle normalizes location into [0, 2π)
func NewLimitAngle(location s1.Angle, direct bool, tolerance float64) *LimitAngle {
	return &LimitAngle{
		location:  s1.Angle(NormalizeAngle(location.Radians(), math.Pi)),
		direct:    direct,
		tolerance: tolerance,
	}
}

func (l *LimitAngle) Location() s1.Angle {
	return l.location
}

func (l *LimitAngle) IsDirect() bool {
	return l.direct
}

func (l *LimitAngle) Tolerance() float64 {
	return l.tolerance
}

// Reverse returns the limit with the opposite orientation
func (l *LimitAngle) Reverse() *LimitAngle {
	return &LimitAngle{location: l.location, direct: !l.direct, tolerance: l.tolerance}
}

// Offset is the signed angular difference, no wrapping is attempted here
func (l *LimitAngle) Offset(point s1.Angle) float64 {
	delta := (point - l.location).Radians()
	if l.direct {
		return delta
	}
	return -delta
}

func (l *LimitAngle) WholeHyperplane() bsp.SubHyperplane[s1.Angle] {
	return &SubLimitAngle{limit: l}
}

// SubLimitAngle is the only sub-hyperplane a point has: itself
type SubLimitAngle struct {
	limit *LimitAngle
}

func (s *SubLimitAngle) Hyperplane() bsp.Hyperplane[s1.Angle] {
	return s.limit
}

func (s *SubLimitAngle) Limit() *LimitAngle {
	return s.limit
}

func (s *SubLimitAngle) Split(h bsp.Hyperplane[s1.Angle]) bsp.SplitSubHyperplane[s1.Angle] {
	offset := h.Offset(s.limit.location)
	if offset < -s.limit.tolerance {
		return bsp.SplitSubHyperplane[s1.Angle]{Minus: s}
	}
	if offset > s.limit.tolerance {
		return bsp.SplitSubHyperplane[s1.Angle]{Plus: s}
	}
	return bsp.SplitSubHyperplane[s1.Angle]{}
}

func (s *SubLimitAngle) Reunite(other bsp.SubHyperplane[s1.Angle]) bsp.SubHyperplane[s1.Angle] {
	return s
}

func (s *SubLimitAngle) IsEmpty() bool {
	return false
}

func (s *SubLimitAngle) Size() float64 {
	return 0
}
