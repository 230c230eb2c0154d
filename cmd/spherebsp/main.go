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
// -- This file is where the program entry is.
// SphereBSP builds regions of the unit circle and of the unit sphere as BSP
// trees, the same way a nodebuilder partitions a level, and reports on them.
package main

import (
	"os"

	"github.com/vigilantdoomer/spherebsp/internal/mylog"
)

func main() {
	// errors met before the configuration is read still need a log
	if logger, err := defaultConfig().NewLogger(); err == nil {
		mylog.Log.Reset(logger, 0)
	}
	if err := newRootCommand().Execute(); err != nil {
		mylog.Log.Error("%v", err)
		mylog.Log.Sync()
		os.Exit(1)
	}
}
