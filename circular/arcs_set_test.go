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
	"fmt"
	"math"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigilantdoomer/spherebsp/bsp"
)

var testRandom *rand.Rand

func TestMain(m *testing.M) {
	seed := time.Now().UnixNano()
	testRandom = rand.New(rand.NewSource(seed))
	code := m.Run()
	if code != 0 {
		// lets the failing random case be replayed
		fmt.Fprintf(os.Stderr, "random seed was %d\n", seed)
	}
	os.Exit(code)
}

func degrees(d float64) float64 {
	return d * math.Pi / 180
}

func mustArcs(t *testing.T, lower, upper float64) *ArcsSet {
	s, err := NewArcsSet(lower, upper, tol)
	require.NoError(t, err)
	return s
}

func TestSimpleArcsSet(t *testing.T) {
	s := mustArcs(t, 0.5, 2.5)
	assert.InDelta(t, 2.0, s.Size(), 1e-15)
	assert.InDelta(t, 1.5, s.Barycenter().Radians(), 1e-15)
	list := s.AsList()
	require.Len(t, list, 1)
	assert.InDelta(t, 0.5, list[0].Inf(), 1e-15)
	assert.InDelta(t, 2.5, list[0].Sup(), 1e-15)

	assert.Equal(t, bsp.Inside, s.CheckPoint(1))
	assert.Equal(t, bsp.Outside, s.CheckPoint(3))
	assert.Equal(t, bsp.Boundary, s.CheckPoint(0.5))
	assert.Equal(t, bsp.Boundary, s.CheckPoint(2.5))
	assert.Equal(t, bsp.Boundary, s.CheckPoint(0.5+0.5*tol))
	assert.Equal(t, bsp.Boundary, s.CheckPoint(0.5-0.5*tol))
	assert.Equal(t, bsp.Outside, s.CheckPoint(0.5-2*tol))
	assert.Equal(t, bsp.Boundary, s.CheckPoint(2.5+0.9*tol))
	assert.Equal(t, bsp.Inside, s.CheckPoint(s1.Angle(1+TWO_PI)))
	assert.False(t, s.IsEmpty())
	assert.False(t, s.IsFull())
}

func TestWrappingArcsSet(t *testing.T) {
	s := mustArcs(t, degrees(350), degrees(370))
	assert.InDelta(t, degrees(20), s.Size(), 1e-12)
	assert.InDelta(t, 0, NormalizeAngle(s.Barycenter().Radians(), 0), 1e-12)

	list := s.AsList()
	require.Len(t, list, 1)
	assert.InDelta(t, degrees(350), list[0].Inf(), 1e-12)
	assert.InDelta(t, degrees(370), list[0].Sup(), 1e-12)

	assert.Equal(t, bsp.Inside, s.CheckPoint(0))
	assert.Equal(t, bsp.Inside, s.CheckPoint(s1.Angle(degrees(355))))
	assert.Equal(t, bsp.Inside, s.CheckPoint(s1.Angle(degrees(5))))
	assert.Equal(t, bsp.Outside, s.CheckPoint(s1.Angle(degrees(20))))
	assert.Equal(t, bsp.Boundary, s.CheckPoint(s1.Angle(degrees(10))))
}

func TestArcEndingAt2Pi(t *testing.T) {
	s := mustArcs(t, math.Pi, TWO_PI)
	assert.InDelta(t, math.Pi, s.Size(), 1e-12)
	assert.Equal(t, bsp.Inside, s.CheckPoint(s1.Angle(1.5*math.Pi)))
	assert.Equal(t, bsp.Outside, s.CheckPoint(s1.Angle(0.5*math.Pi)))
	assert.Equal(t, bsp.Boundary, s.CheckPoint(0))
}

func TestFullAndEmpty(t *testing.T) {
	full, err := NewFullArcsSet(tol)
	require.NoError(t, err)
	assert.Equal(t, TWO_PI, full.Size())
	assert.True(t, math.IsNaN(full.Barycenter().Radians()))
	assert.True(t, full.IsFull())
	list := full.AsList()
	require.Len(t, list, 1)
	assert.Equal(t, 0.0, list[0].Inf())
	assert.Equal(t, TWO_PI, list[0].Sup())

	fromEqualBounds := mustArcs(t, 1, 1)
	assert.True(t, fromEqualBounds.IsFull())

	empty, err := NewEmptyArcsSet(tol)
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.Size())
	assert.True(t, math.IsNaN(empty.Barycenter().Radians()))
	assert.Empty(t, empty.AsList())
	assert.True(t, empty.IsEmpty())

	_, err = NewArcsSet(2, 1, tol)
	var ierr *IntervalError
	assert.ErrorAs(t, err, &ierr)

	_, err = NewFullArcsSet(1e-20)
	assert.ErrorIs(t, err, bsp.ErrToleranceTooSmall)
}

func TestInconsistentTree(t *testing.T) {
	// a single limit: inside before 1.0, outside after it, so the state
	// just above 0 disagrees with the state just below 2π
	tree := bsp.NewTree[s1.Angle](bsp.Unset)
	tree.Attach(tree.Root(), NewLimitAngle(1, true, tol).WholeHyperplane(), bsp.Out, bsp.In)
	_, err := NewArcsSetFromTree(tree, tol)
	assert.ErrorIs(t, err, ErrInconsistentStateAt2PiWrapping)
}

func TestFromBoundary(t *testing.T) {
	boundary := []bsp.SubHyperplane[s1.Angle]{
		NewLimitAngle(1, false, tol).WholeHyperplane(),
		NewLimitAngle(2, true, tol).WholeHyperplane(),
	}
	s, err := NewArcsSetFromBoundary(boundary, tol)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s.Size(), 1e-15)
	assert.Equal(t, bsp.Inside, s.CheckPoint(1.5))
	assert.Equal(t, bsp.Outside, s.CheckPoint(3))
	// boundary made of two points
	assert.Equal(t, 0.0, s.BoundarySize())

	rebuilt, err := s.BuildNew(s.Tree(false))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rebuilt.Size(), 1e-15)
}

func TestIteratorIsSinglePass(t *testing.T) {
	s := mustArcs(t, 0.5, 2.5).Union(mustArcs(t, 3, 4))
	next := s.Iterator()
	start, end, ok := next()
	require.True(t, ok)
	assert.InDelta(t, 0.5, start, 1e-15)
	assert.InDelta(t, 2.5, end, 1e-15)
	start, end, ok = next()
	require.True(t, ok)
	assert.InDelta(t, 3.0, start, 1e-15)
	assert.InDelta(t, 4.0, end, 1e-15)
	_, _, ok = next()
	assert.False(t, ok)
	_, _, ok = next()
	assert.False(t, ok)

	// a fresh range starts over
	count := 0
	for range s.All() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestAsListRoundTrip(t *testing.T) {
	s := mustArcs(t, 0.5, 1).Union(mustArcs(t, 2, 3)).Union(mustArcs(t, degrees(350), degrees(365)))
	list := s.AsList()
	require.Len(t, list, 3)

	rebuilt, err := NewEmptyArcsSet(tol)
	require.NoError(t, err)
	for _, a := range list {
		rebuilt = rebuilt.Union(mustArcs(t, a.Inf(), a.Sup()))
	}
	again := rebuilt.AsList()
	require.Len(t, again, len(list))
	for i := range list {
		assert.InDelta(t, list[i].Inf(), again[i].Inf(), 1e-12)
		assert.InDelta(t, list[i].Sup(), again[i].Sup(), 1e-12)
	}
	assert.InDelta(t, s.Size(), rebuilt.Size(), 1e-12)
}

func TestSplit(t *testing.T) {
	s := mustArcs(t, 0.5, 2.5)
	arc := MustNewArc(1, 2, tol)
	split := s.Split(arc)
	assert.Equal(t, bsp.Both, split.Side())
	assert.Equal(t, bsp.Both, s.Side(arc))
	require.NotNil(t, split.Minus())
	require.NotNil(t, split.Plus())
	assert.InDelta(t, 1.0, split.Minus().Size(), 1e-12)
	assert.InDelta(t, 1.0, split.Plus().Size(), 1e-12)
	assert.Equal(t, bsp.Inside, split.Plus().CheckPoint(0.75))
	assert.Equal(t, bsp.Inside, split.Plus().CheckPoint(2.25))
	assert.Equal(t, bsp.Outside, split.Plus().CheckPoint(1.5))

	// splitting the minus part again changes nothing
	again := split.Minus().Split(arc)
	assert.Equal(t, bsp.Minus, again.Side())
	assert.InDelta(t, 1.0, again.Minus().Size(), 1e-12)

	// and so does splitting the plus part
	plusAgain := split.Plus().Split(arc)
	assert.Equal(t, bsp.Plus, plusAgain.Side())
	assert.Nil(t, plusAgain.Minus())
	require.NotNil(t, plusAgain.Plus())
	assert.InDelta(t, 1.0, plusAgain.Plus().Size(), 1e-12)

	outside := mustArcs(t, 3, 4).Split(arc)
	assert.Equal(t, bsp.Plus, outside.Side())
	assert.Nil(t, outside.Minus())
}

func TestCheckPointNearTwoPi(t *testing.T) {
	upper := mustArcs(t, math.Pi, TWO_PI)
	arc := MustNewArc(math.Pi, TWO_PI, tol)
	for _, p := range []float64{TWO_PI - 0.5*tol, -0.5 * tol, 0, 0.5 * tol} {
		assert.Equal(t, bsp.Boundary, upper.CheckPoint(s1.Angle(p)), "point %g", p)
		assert.Equal(t, bsp.Boundary, arc.CheckPoint(s1.Angle(p)), "point %g", p)
	}
	assert.Equal(t, bsp.Inside, upper.CheckPoint(s1.Angle(TWO_PI-2*tol)))
	assert.Equal(t, bsp.Outside, upper.CheckPoint(s1.Angle(2*tol)))

	lower := mustArcs(t, 0, math.Pi)
	assert.Equal(t, bsp.Boundary, lower.CheckPoint(s1.Angle(TWO_PI-0.5*tol)))
	assert.Equal(t, bsp.Outside, lower.CheckPoint(s1.Angle(TWO_PI-2*tol)))
}

func TestSplitFullCircle(t *testing.T) {
	full, err := NewFullArcsSet(tol)
	require.NoError(t, err)
	split := full.Split(MustNewArc(1, 2, tol))
	require.NotNil(t, split.Plus())
	require.NotNil(t, split.Minus())
	assert.InDelta(t, 1.0, split.Minus().Size(), 1e-12)
	assert.InDelta(t, TWO_PI-1, split.Plus().Size(), 1e-12)
	assert.Equal(t, bsp.Inside, split.Plus().CheckPoint(0))
}

func TestSplitWrappingArc(t *testing.T) {
	s := mustArcs(t, 1, 5)
	split := s.Split(MustNewArc(4.5, TWO_PI+1.5, tol))
	assert.Equal(t, bsp.Both, split.Side())
	assert.InDelta(t, 1.0, split.Minus().Size(), 1e-12)
	assert.InDelta(t, 3.0, split.Plus().Size(), 1e-12)
	assert.Equal(t, bsp.Inside, split.Minus().CheckPoint(1.2))
	assert.Equal(t, bsp.Inside, split.Minus().CheckPoint(4.8))
}

func TestUnion(t *testing.T) {
	overlapping := mustArcs(t, 0.5, 1).Union(mustArcs(t, 0.8, 2))
	list := overlapping.AsList()
	require.Len(t, list, 1)
	assert.InDelta(t, 0.5, list[0].Inf(), 1e-15)
	assert.InDelta(t, 2.0, list[0].Sup(), 1e-15)

	wrapped := mustArcs(t, 6, TWO_PI).Union(mustArcs(t, 0, 0.5))
	assert.InDelta(t, TWO_PI-6+0.5, wrapped.Size(), 1e-12)
	assert.Equal(t, bsp.Inside, wrapped.CheckPoint(0.2))
	assert.Equal(t, bsp.Inside, wrapped.CheckPoint(6.1))
	assert.Equal(t, bsp.Outside, wrapped.CheckPoint(1))

	whole := mustArcs(t, 0, 4).Union(mustArcs(t, 3, TWO_PI+0.5))
	assert.True(t, whole.IsFull())

	empty, err := NewEmptyArcsSet(tol)
	require.NoError(t, err)
	assert.True(t, empty.Union(empty).IsEmpty())
}

// Unions of random arcs must agree with the arcs themselves on points that
// are far enough from every limit
func TestRandomUnions(t *testing.T) {
	for round := 0; round < 50; round++ {
		n := 1 + testRandom.Intn(5)
		var arcs []Arc
		set, err := NewEmptyArcsSet(tol)
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			lower := testRandom.Float64() * TWO_PI
			upper := lower + 0.05 + testRandom.Float64()*2
			arcs = append(arcs, MustNewArc(lower, upper, tol))
			set = set.Union(mustArcs(t, lower, upper))
		}
		for probe := 0; probe < 200; probe++ {
			p := s1.Angle(testRandom.Float64() * TWO_PI)
			want := bsp.Outside
			nearLimit := false
			for _, a := range arcs {
				d := math.Abs(NormalizeAngle(p.Radians(), a.Inf()) - a.Inf())
				e := math.Abs(NormalizeAngle(p.Radians(), a.Sup()) - a.Sup())
				if d < 1e-6 || e < 1e-6 {
					nearLimit = true
				}
				if a.CheckPoint(p) == bsp.Inside {
					want = bsp.Inside
				}
			}
			if nearLimit {
				continue
			}
			if got := set.CheckPoint(p); got != want {
				t.Errorf("round %d: point %g is %v in union, expected %v", round, p.Radians(), got, want)
			}
		}
	}
}

func BenchmarkSplit(b *testing.B) {
	s, _ := NewArcsSet(0.5, 2.5, tol)
	s = s.Union(MustNewFullArcsSet(tol).Split(MustNewArc(3, 4, tol)).Minus())
	arc := MustNewArc(1, 3.5, tol)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Split(arc)
	}
}
