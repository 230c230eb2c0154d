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
	"math"
	"time"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/vigilantdoomer/spherebsp/bsp"
	"github.com/vigilantdoomer/spherebsp/circular"
	"github.com/vigilantdoomer/spherebsp/geoio"
	"github.com/vigilantdoomer/spherebsp/internal/mylog"
	"github.com/vigilantdoomer/spherebsp/spherical"
)

type stopper interface {
	Stop()
}

type noOpStopper struct{}

func (noOpStopper) Stop() {}

// application carries what the commands share once flags are parsed
type application struct {
	config     *ProgramConfig
	configFile string
	profiler   stopper
	timeStart  time.Time
}

func newRootCommand() *cobra.Command {
	app := &application{config: defaultConfig(), profiler: noOpStopper{}}
	def := defaultConfig()

	root := &cobra.Command{
		Use:   "spherebsp",
		Short: "Regions of the circle and of the sphere as BSP trees",
		Long: `spherebsp builds regions of the unit circle and of the unit sphere as
binary space partitioning trees and reports their properties: area,
perimeter, barycenter, enclosing cap, boundary loops, point location.`,
		Version:           VERSION,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
		PersistentPostRun: app.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configFile, "config", "", "config file (yaml, toml or json)")
	flags.Float64(KEY_TOLERANCE, def.Tolerance, "tolerance below which points are considered on a boundary")
	flags.CountP(KEY_VERBOSITY, "v", "add verbosity to text output, use multiple times for more")
	flags.StringP(KEY_FORMAT, "f", def.Format, "report format: text, json or yaml")
	flags.Bool(KEY_AUTO_ORIENT, def.AutoOrient, "take polygons larger than a hemisphere as misoriented")
	flags.String(KEY_PROFILE, def.Profile, "write a profile: cpu or mem")
	flags.String(KEY_PROFILE_DIR, def.ProfilePath, "directory receiving profiles")

	root.AddCommand(
		app.polygonCommand(),
		app.regularCommand(),
		app.arcsCommand(),
		app.containsCommand(),
	)
	return root
}

func (app *application) setup(cmd *cobra.Command, args []string) error {
	app.timeStart = time.Now()
	v, err := newViper(cmd.Root().PersistentFlags(), app.configFile)
	if err != nil {
		return err
	}
	if err := app.config.FromViper(v); err != nil {
		return err
	}
	logger, err := app.config.NewLogger()
	if err != nil {
		return err
	}
	bsp.SetLogger(logger, app.config.VerbosityLevel)
	mylog.Log.Verbose(1, "SphereBSP ver %s\n", VERSION)
	if used := v.ConfigFileUsed(); used != "" {
		mylog.Log.Verbose(1, "Using config file %s\n", used)
	}

	options := []func(*profile.Profile){profile.ProfilePath(app.config.ProfilePath)}
	if mylog.Log.Verbosity() == 0 {
		options = append(options, profile.Quiet)
	}
	switch app.config.Profile {
	case PROFILE_CPU:
		app.profiler = profile.Start(append(options, profile.CPUProfile)...)
	case PROFILE_MEM:
		app.profiler = profile.Start(append(options, profile.MemProfile)...)
	}
	return nil
}

func (app *application) teardown(cmd *cobra.Command, args []string) {
	app.profiler.Stop()
	app.profiler = noOpStopper{}
	mylog.Log.Verbose(1, "Total time: %s\n", time.Since(app.timeStart))
	mylog.Log.Sync()
}

func (app *application) report(cmd *cobra.Command, r Report) error {
	return writeReport(cmd.OutOrStdout(), app.config.Format, r)
}

func (app *application) polygonCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "polygon FILE",
		Short: "Report on a polygon read from a GeoJSON or WKT file",
		Long: `Reads the polygons of a GeoJSON (geometry, feature or feature collection)
or WKT file. Outer rings go counterclockwise, holes clockwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			region, err := app.loadPolygon(args[0])
			if err != nil {
				return err
			}
			return app.report(cmd, polygonReportOf(region))
		},
	}
}

func (app *application) loadPolygon(name string) (*spherical.PolygonsSet, error) {
	rings, err := geoio.ReadFile(name)
	if err != nil {
		return nil, err
	}
	region, err := geoio.BuildPolygon(rings, app.config.Tolerance, app.config.AutoOrient)
	if err != nil {
		return nil, errors.Wrapf(err, "building polygon of %s", name)
	}
	return region, nil
}

func (app *application) regularCommand() *cobra.Command {
	var lat, lng, radius float64
	var sides int
	cmd := &cobra.Command{
		Use:   "regular",
		Short: "Report on a regular polygon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			center := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
			// the first vertex lies toward the north pole, unless the
			// center is too close to it
			meridian := r3.Vector{Z: 1}
			if math.Abs(center.Z) > 0.99 {
				meridian = r3.Vector{X: 1}
			}
			r := (s1.Angle(radius) * s1.Degree).Radians()
			region, err := spherical.NewRegularPolygon(center.Vector, meridian, r, sides, app.config.Tolerance)
			if err != nil {
				return err
			}
			report := polygonReportOf(region)
			expected := regularPolygonArea(sides, r)
			report.ExpectedArea = &expected
			return app.report(cmd, report)
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the center, in degrees")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude of the center, in degrees")
	cmd.Flags().Float64Var(&radius, "radius", 10, "angular distance from the center to the vertices, in degrees")
	cmd.Flags().IntVarP(&sides, "sides", "n", 6, "number of vertices")
	return cmd
}

// regularPolygonArea is the spherical excess of a regular polygon, each
// interior angle coming from the right triangle between the center, a
// vertex and the middle of an edge
func regularPolygonArea(n int, radius float64) float64 {
	halfAngle := math.Atan2(1, math.Tan(math.Pi/float64(n))*math.Cos(radius))
	return 2*float64(n)*halfAngle - float64(n-2)*math.Pi
}

func (app *application) arcsCommand() *cobra.Command {
	var degrees bool
	var split []float64
	cmd := &cobra.Command{
		Use:   "arcs LOWER UPPER [LOWER UPPER ...]",
		Short: "Normalize a union of arcs of the circle, optionally splitting it",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return errors.Errorf("expected pairs of limits, got %d values", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			limits, err := parseAngles(args, degrees)
			if err != nil {
				return err
			}
			tolerance := app.config.Tolerance
			set, err := circular.NewEmptyArcsSet(tolerance)
			if err != nil {
				return err
			}
			for i := 0; i < len(limits); i += 2 {
				arcs, err := circular.NewArcsSet(limits[i], limits[i+1], tolerance)
				if err != nil {
					return errors.Wrapf(err, "arc %d", i/2)
				}
				set = set.Union(arcs)
			}
			report := &ArcsReport{
				Size:    set.Size(),
				Arcs:    arcReportsOf(set, degrees),
				Degrees: degrees,
			}
			if degrees {
				report.Size = s1.Angle(report.Size).Degrees()
			}

			if cmd.Flags().Changed("split") {
				if len(split) != 2 {
					return errors.Errorf("--split expects 2 limits, got %d", len(split))
				}
				bounds := split
				if degrees {
					bounds = []float64{(s1.Angle(split[0]) * s1.Degree).Radians(), (s1.Angle(split[1]) * s1.Degree).Radians()}
				}
				arc, err := circular.NewArc(bounds[0], bounds[1], tolerance)
				if err != nil {
					return err
				}
				parts := set.Split(arc)
				report.Plus = arcReportsOf(parts.Plus(), degrees)
				report.Minus = arcReportsOf(parts.Minus(), degrees)
			}
			return app.report(cmd, report)
		},
	}
	cmd.Flags().BoolVarP(&degrees, "degrees", "d", false, "angles are given and reported in degrees")
	cmd.Flags().Float64SliceVar(&split, "split", nil, "split the arcs by the arc LOWER,UPPER")
	return cmd
}

func parseAngles(args []string, degrees bool) ([]float64, error) {
	angles := make([]float64, len(args))
	for i, arg := range args {
		a, err := cast.ToFloat64E(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		if degrees {
			a = (s1.Angle(a) * s1.Degree).Radians()
		}
		angles[i] = a
	}
	return angles, nil
}

func (app *application) containsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contains FILE LAT LNG [LAT LNG ...]",
		Short: "Locate points relative to a polygon read from a file",
		Long: `Tells whether each point lies inside, outside or on the boundary of the
polygon, and how far it is from the boundary. Coordinates are in degrees;
put -- before the arguments when some of them are negative.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 || len(args)%2 != 1 {
				return errors.Errorf("expected a file and pairs of coordinates, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := parseAngles(args[1:], false)
			if err != nil {
				return err
			}
			region, err := app.loadPolygon(args[0])
			if err != nil {
				return err
			}
			report := &ContainsReport{Points: []PointReport{}}
			for i := 0; i < len(coords); i += 2 {
				p := s2.PointFromLatLng(s2.LatLngFromDegrees(coords[i], coords[i+1]))
				projection := region.ProjectToBoundary(p)
				pr := PointReport{
					Point:    LatLng{Lat: coords[i], Lng: coords[i+1]},
					Location: region.CheckPoint(p).String(),
				}
				if !math.IsInf(projection.Offset, 0) {
					offset := projection.Offset
					pr.Offset = &offset
					pr.Projected = latLngOf(projection.Projected)
				}
				report.Points = append(report.Points, pr)
			}
			return app.report(cmd, report)
		},
	}
}
