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

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vigilantdoomer/spherebsp/internal/mylog"
)

var ErrToleranceTooSmall = errors.New("tolerance too small")

// ErrInternal is what panics carry when a region ends up in a state that
// should be unreachable
var ErrInternal = errors.New("internal error, please fill a bug report")

// CheckTolerance refuses tolerances below SmallestTolerance
func CheckTolerance(tolerance float64) error {
	if !(tolerance >= SmallestTolerance) {
		return errors.Wrapf(ErrToleranceTooSmall, "tolerance %g is smaller than %g",
			tolerance, SmallestTolerance)
	}
	return nil
}

// SetLogger routes diagnostics of every region package to the given zap
// logger. Verbosity 1 reports per-region summaries, 2 also reports the
// splitting and collapsing of arcs
func SetLogger(logger *zap.Logger, verbosity int) {
	mylog.Log.Reset(logger, verbosity)
}

// InternalError panics with ErrInternal. The message should name the node
// or the object that broke
func InternalError(s string, a ...interface{}) {
	mylog.Log.PanicErr(ErrInternal, s, a...)
}
