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
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vigilantdoomer/spherebsp/circular"
	"github.com/vigilantdoomer/spherebsp/spherical"
)

// Report is anything a command prints. Text output is hand written, json
// and yaml go through the struct tags
type Report interface {
	WriteText(w io.Writer) error
}

func writeReport(w io.Writer, format string, r Report) error {
	switch format {
	case FORMAT_JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(r), "writing json report")
	case FORMAT_YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(err, "writing yaml report")
		}
		return errors.Wrap(enc.Close(), "writing yaml report")
	}
	return r.WriteText(w)
}

type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// latLngOf converts to degrees. NaN points (barycenter of the whole sphere)
// come out as nil
func latLngOf(p s2.Point) *LatLng {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
		return nil
	}
	ll := s2.LatLngFromPoint(p)
	return &LatLng{Lat: ll.Lat.Degrees(), Lng: ll.Lng.Degrees()}
}

func (ll *LatLng) String() string {
	if ll == nil {
		return "undefined"
	}
	return fmt.Sprintf("(%.6f, %.6f)", ll.Lat, ll.Lng)
}

type CapReport struct {
	Empty         bool    `json:"empty,omitempty" yaml:"empty,omitempty"`
	Full          bool    `json:"full,omitempty" yaml:"full,omitempty"`
	Center        *LatLng `json:"center,omitempty" yaml:"center,omitempty"`
	RadiusDegrees float64 `json:"radiusDegrees" yaml:"radiusDegrees"`
}

func capReportOf(c s2.Cap) CapReport {
	switch {
	case c.IsEmpty():
		return CapReport{Empty: true}
	case c.IsFull():
		return CapReport{Full: true, RadiusDegrees: 180}
	}
	return CapReport{Center: latLngOf(c.Center()), RadiusDegrees: c.Radius().Degrees()}
}

func (c CapReport) String() string {
	switch {
	case c.Empty:
		return "empty"
	case c.Full:
		return "whole sphere"
	}
	return fmt.Sprintf("center %s, radius %.6f°", c.Center, c.RadiusDegrees)
}

type LoopReport struct {
	Vertices []LatLng `json:"vertices" yaml:"vertices"`
	Length   float64  `json:"length" yaml:"length"`
}

type PolygonReport struct {
	Area       float64      `json:"area" yaml:"area"`
	Perimeter  float64      `json:"perimeter" yaml:"perimeter"`
	Barycenter *LatLng      `json:"barycenter,omitempty" yaml:"barycenter,omitempty"`
	Cap        CapReport    `json:"cap" yaml:"cap"`
	Loops      []LoopReport `json:"loops" yaml:"loops"`
	// only filled for regular polygons
	ExpectedArea *float64 `json:"expectedArea,omitempty" yaml:"expectedArea,omitempty"`
}

func polygonReportOf(region *spherical.PolygonsSet) *PolygonReport {
	r := &PolygonReport{
		Area:       region.Size(),
		Perimeter:  region.BoundarySize(),
		Barycenter: latLngOf(region.Barycenter()),
		Cap:        capReportOf(region.EnclosingCap()),
		Loops:      []LoopReport{},
	}
	for _, start := range region.BoundaryLoops() {
		var loop LoopReport
		start.Loop(func(v *spherical.Vertex) bool {
			loop.Vertices = append(loop.Vertices, *latLngOf(v.Location()))
			loop.Length += v.Outgoing().Length()
			return true
		})
		r.Loops = append(r.Loops, loop)
	}
	return r
}

func (r *PolygonReport) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Area:       %.12g sr\n", r.Area)
	if r.ExpectedArea != nil {
		fmt.Fprintf(w, "Expected:   %.12g sr\n", *r.ExpectedArea)
	}
	fmt.Fprintf(w, "Perimeter:  %.12g rad\n", r.Perimeter)
	fmt.Fprintf(w, "Barycenter: %s\n", r.Barycenter)
	fmt.Fprintf(w, "Cap:        %s\n", r.Cap)
	fmt.Fprintf(w, "Loops:      %d\n", len(r.Loops))
	for i, loop := range r.Loops {
		fmt.Fprintf(w, "  loop %d: %d vertices, length %.12g\n", i, len(loop.Vertices), loop.Length)
		for _, v := range loop.Vertices {
			fmt.Fprintf(w, "    %s\n", &v)
		}
	}
	return nil
}

type ArcReport struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

type ArcsReport struct {
	Size  float64     `json:"size" yaml:"size"`
	Arcs  []ArcReport `json:"arcs" yaml:"arcs"`
	Plus  []ArcReport `json:"plus,omitempty" yaml:"plus,omitempty"`
	Minus []ArcReport `json:"minus,omitempty" yaml:"minus,omitempty"`
	// angles are given in degrees rather than radians
	Degrees bool `json:"degrees" yaml:"degrees"`
}

func arcReportsOf(s *circular.ArcsSet, degrees bool) []ArcReport {
	arcs := []ArcReport{}
	if s == nil {
		return arcs
	}
	for _, a := range s.AsList() {
		lower, upper := a.Inf(), a.Sup()
		if degrees {
			lower, upper = s1.Angle(lower).Degrees(), s1.Angle(upper).Degrees()
		}
		arcs = append(arcs, ArcReport{Lower: lower, Upper: upper})
	}
	return arcs
}

func writeArcs(w io.Writer, title string, arcs []ArcReport) {
	fmt.Fprintf(w, "%s %d\n", title, len(arcs))
	for _, a := range arcs {
		fmt.Fprintf(w, "  [%.12g, %.12g]\n", a.Lower, a.Upper)
	}
}

func (r *ArcsReport) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Size: %.12g\n", r.Size)
	writeArcs(w, "Arcs:", r.Arcs)
	if r.Plus != nil || r.Minus != nil {
		writeArcs(w, "Outside:", r.Plus)
		writeArcs(w, "Inside:", r.Minus)
	}
	return nil
}

type PointReport struct {
	Point    LatLng `json:"point" yaml:"point"`
	Location string `json:"location" yaml:"location"`
	// missing when the region has no boundary
	Offset    *float64 `json:"offset,omitempty" yaml:"offset,omitempty"`
	Projected *LatLng  `json:"projected,omitempty" yaml:"projected,omitempty"`
}

type ContainsReport struct {
	Points []PointReport `json:"points" yaml:"points"`
}

func (r *ContainsReport) WriteText(w io.Writer) error {
	for _, p := range r.Points {
		fmt.Fprintf(w, "%s %s", &p.Point, p.Location)
		if p.Offset != nil {
			fmt.Fprintf(w, " offset %.12g nearest %s", *p.Offset, p.Projected)
		}
		fmt.Fprintln(w)
	}
	return nil
}
