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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vigilantdoomer/spherebsp/bsp"
)

const VERSION = "0.1.0"

const (
	FORMAT_TEXT = "text"
	FORMAT_JSON = "json"
	FORMAT_YAML = "yaml"
)

const (
	PROFILE_NONE = ""
	PROFILE_CPU  = "cpu"
	PROFILE_MEM  = "mem"
)

// Keys under which options are known to flags, environment (SPHEREBSP_
// prefix, dashes become underscores) and config files
const (
	KEY_TOLERANCE   = "tolerance"
	KEY_VERBOSITY   = "verbose"
	KEY_FORMAT      = "format"
	KEY_AUTO_ORIENT = "auto-orient"
	KEY_PROFILE     = "profile"
	KEY_PROFILE_DIR = "profile-dir"
)

const DEFAULT_TOLERANCE = 1e-10

var ErrBadOption = errors.New("invalid option")

type ProgramConfig struct {
	Tolerance      float64
	VerbosityLevel int
	Format         string
	AutoOrient     bool // complement polygons larger than a hemisphere
	Profile        string
	ProfilePath    string
}

func defaultConfig() *ProgramConfig {
	return &ProgramConfig{
		Tolerance:      DEFAULT_TOLERANCE,
		VerbosityLevel: 0,
		Format:         FORMAT_TEXT,
		AutoOrient:     false,
		Profile:        PROFILE_NONE,
		ProfilePath:    ".",
	}
}

// newViper prepares the option sources shared by all commands. flags must
// already hold the persistent flags of the root command
func newViper(flags *pflag.FlagSet, configFile string) (*viper.Viper, error) {
	v := viper.New()
	def := defaultConfig()
	v.SetDefault(KEY_TOLERANCE, def.Tolerance)
	v.SetDefault(KEY_VERBOSITY, def.VerbosityLevel)
	v.SetDefault(KEY_FORMAT, def.Format)
	v.SetDefault(KEY_AUTO_ORIENT, def.AutoOrient)
	v.SetDefault(KEY_PROFILE, def.Profile)
	v.SetDefault(KEY_PROFILE_DIR, def.ProfilePath)

	v.SetEnvPrefix("SPHEREBSP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, errors.Wrap(err, "binding flags")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", configFile)
		}
	}
	return v, nil
}

// FromViper fills the config and checks it is sane
func (c *ProgramConfig) FromViper(v *viper.Viper) error {
	c.Tolerance = v.GetFloat64(KEY_TOLERANCE)
	c.VerbosityLevel = v.GetInt(KEY_VERBOSITY)
	c.Format = strings.ToLower(v.GetString(KEY_FORMAT))
	c.AutoOrient = v.GetBool(KEY_AUTO_ORIENT)
	c.Profile = strings.ToLower(v.GetString(KEY_PROFILE))
	c.ProfilePath = v.GetString(KEY_PROFILE_DIR)

	if err := bsp.CheckTolerance(c.Tolerance); err != nil {
		return err
	}
	switch c.Format {
	case FORMAT_TEXT, FORMAT_JSON, FORMAT_YAML:
	default:
		return errors.Wrapf(ErrBadOption, "unknown output format %q", c.Format)
	}
	switch c.Profile {
	case PROFILE_NONE, PROFILE_CPU, PROFILE_MEM:
	default:
		return errors.Wrapf(ErrBadOption, "unknown profile mode %q", c.Profile)
	}
	if c.VerbosityLevel < 0 {
		c.VerbosityLevel = 0
	}
	return nil
}

// NewLogger builds the console logger of the program. Messages go to
// stderr so that they never mix with reports
func (c *ProgramConfig) NewLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if c.VerbosityLevel == 0 {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return logger, nil
}
