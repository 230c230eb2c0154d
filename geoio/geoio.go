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
// Package geoio loads polygons from GeoJSON and WKT documents into rings of
// points on the unit sphere, and builds spherical regions out of them.
package geoio

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/vigilantdoomer/spherebsp/internal/mylog"
	"github.com/vigilantdoomer/spherebsp/spherical"
)

var (
	ErrNoPolygon           = errors.New("no polygon found")
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
	ErrRingTooShort        = errors.New("ring has less than 3 distinct vertices")
)

// Ring is a closed loop of vertices, without the repeated closing vertex
type Ring []s2.Point

// ReadFile decodes the polygons of a file. Files ending in .wkt are read as
// WKT, others as GeoJSON
func ReadFile(name string) ([]Ring, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	var rings []Ring
	if strings.EqualFold(filepath.Ext(name), ".wkt") {
		rings, err = ParseWKT(string(data))
	} else {
		rings, err = ParseGeoJSON(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", name)
	}
	mylog.Log.Verbose(1, "Read %d rings from %s\n", len(rings), name)
	return rings, nil
}

// ParseGeoJSON accepts a bare geometry, a Feature or a FeatureCollection
func ParseGeoJSON(data []byte) ([]Ring, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, "reading GeoJSON type")
	}
	switch probe.Type {
	case "Feature":
		var f geojson.Feature
		if err := f.UnmarshalJSON(data); err != nil {
			return nil, errors.Wrap(err, "decoding feature")
		}
		return ringsOf(f.Geometry)
	case "FeatureCollection":
		var fc geojson.FeatureCollection
		if err := fc.UnmarshalJSON(data); err != nil {
			return nil, errors.Wrap(err, "decoding feature collection")
		}
		var rings []Ring
		for i, f := range fc.Features {
			r, err := ringsOf(f.Geometry)
			if err != nil {
				return nil, errors.Wrapf(err, "feature %d", i)
			}
			rings = append(rings, r...)
		}
		if len(rings) == 0 {
			return nil, ErrNoPolygon
		}
		return rings, nil
	}
	var g geom.T
	if err := geojson.Unmarshal(bytes.TrimSpace(data), &g); err != nil {
		return nil, errors.Wrap(err, "decoding geometry")
	}
	return ringsOf(g)
}

// ParseWKT reads a POLYGON or MULTIPOLYGON
func ParseWKT(text string) ([]Ring, error) {
	g, err := wkt.Unmarshal(strings.TrimSpace(text))
	if err != nil {
		return nil, errors.Wrap(err, "decoding WKT")
	}
	return ringsOf(g)
}

func ringsOf(g geom.T) ([]Ring, error) {
	var rings []Ring
	switch g := g.(type) {
	case *geom.Polygon:
		for i := 0; i < g.NumLinearRings(); i++ {
			rings = append(rings, ringFromLinearRing(g.LinearRing(i)))
		}
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			r, err := ringsOf(g.Polygon(i))
			if err != nil {
				return nil, err
			}
			rings = append(rings, r...)
		}
	case nil:
		return nil, ErrNoPolygon
	default:
		return nil, errors.Wrapf(ErrUnsupportedGeometry, "%T", g)
	}
	if len(rings) == 0 {
		return nil, ErrNoPolygon
	}
	return rings, nil
}

func pointFromCoord(c geom.Coord) s2.Point {
	// coordinates come as [longitude, latitude]
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Y(), c.X()))
}

func ringFromLinearRing(r *geom.LinearRing) Ring {
	n := r.NumCoords()
	ring := make(Ring, 0, n)
	for i := 0; i < n; i++ {
		p := pointFromCoord(r.Coord(i))
		if len(ring) > 0 && ring[len(ring)-1].ApproxEqual(p) {
			continue
		}
		ring = append(ring, p)
	}
	// the closing vertex repeats the first one
	if len(ring) > 1 && ring[0].ApproxEqual(ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}
	return ring
}

// BuildPolygon turns rings into a spherical region. A single ring goes
// through the vertices constructor, several rings (holes, disjoint parts)
// through the boundary one. With autoOrient, a region larger than a
// hemisphere is taken as a misoriented small one and complemented
func BuildPolygon(rings []Ring, tolerance float64, autoOrient bool) (*spherical.PolygonsSet, error) {
	if len(rings) == 0 {
		return nil, ErrNoPolygon
	}
	loops := make([][]s2.Point, len(rings))
	for i, r := range rings {
		if len(r) < 3 {
			return nil, errors.Wrapf(ErrRingTooShort, "ring %d has %d", i, len(r))
		}
		loops[i] = r
	}

	var region *spherical.PolygonsSet
	if len(loops) == 1 {
		var err error
		region, err = spherical.NewPolygonsSetFromVertices(tolerance, loops[0]...)
		if err != nil {
			return nil, err
		}
	} else {
		boundary, err := spherical.BoundaryFromLoops(tolerance, loops...)
		if err != nil {
			return nil, err
		}
		region, err = spherical.NewPolygonsSetFromBoundary(boundary, tolerance)
		if err != nil {
			return nil, err
		}
	}

	if autoOrient && region.Size() > 2*math.Pi {
		mylog.Log.Printf("Area %g exceeds a hemisphere, using the complement\n", region.Size())
		region = region.Complement()
	}
	return region, nil
}
