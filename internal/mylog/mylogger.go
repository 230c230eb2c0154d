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

// Central log of the program and of the region libraries. Libraries stay
// silent until somebody installs a real zap logger via Reset
package mylog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type MyLogger struct {
	// Mutex guards swapping the logger while other goroutines might be
	// writing through it
	mu        sync.Mutex
	sugar     *zap.SugaredLogger
	verbosity int
}

func CreateLogger() *MyLogger {
	log := new(MyLogger)
	log.sugar = zap.NewNop().Sugar()
	return log
}

var Log = CreateLogger()

// Reset installs a new backend. Passing nil brings back the silent one.
// verbosity controls which Verbose messages make it to the backend
func (log *MyLogger) Reset(backend *zap.Logger, verbosity int) {
	if backend == nil {
		backend = zap.NewNop()
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	log.sugar = backend.Sugar()
	log.verbosity = verbosity
}

func (log *MyLogger) current() (*zap.SugaredLogger, int) {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.sugar, log.verbosity
}

// Your generic printf to let user see things. A trailing newline is dropped,
// the backend ends every entry with one
func (log *MyLogger) Printf(s string, a ...interface{}) {
	sugar, _ := log.current()
	sugar.Infof(strings.TrimSuffix(s, "\n"), a...)
}

// Same as Printf, but goes at error level. Does NOT interrupt execution
func (log *MyLogger) Error(s string, a ...interface{}) {
	sugar, _ := log.current()
	sugar.Errorf(strings.TrimSuffix(s, "\n"), a...)
}

// For the curious ones. Level 1 is for per-region summaries, level 2 for
// everything that happens inside splits and collapses
func (log *MyLogger) Verbose(verbosityLevel int, s string, a ...interface{}) {
	sugar, verbosity := log.current()
	if verbosityLevel <= verbosity {
		sugar.Debugf(strings.TrimSuffix(s, "\n"), a...)
	}
}

// Verbosity reports the level set by the last Reset
func (log *MyLogger) Verbosity() int {
	_, verbosity := log.current()
	return verbosity
}

// Panicking is not a good thing, but at least we can now use formatted printing
// for it. The panic value is an error carrying a stack trace
func (log *MyLogger) Panic(s string, a ...interface{}) {
	sugar, _ := log.current()
	msg := fmt.Sprintf(s, a...)
	sugar.Error(msg)
	panic(errors.New(msg))
}

// PanicErr is Panic for callers who want the panic value to wrap a sentinel
// error, so that errors.Is still recognizes it after recover
func (log *MyLogger) PanicErr(err error, s string, a ...interface{}) {
	sugar, _ := log.current()
	wrapped := errors.Wrapf(err, s, a...)
	sugar.Error(wrapped.Error())
	panic(wrapped)
}

// Sync is used to wait until all messages are written to the output
func (log *MyLogger) Sync() {
	sugar, _ := log.current()
	// Syncing stdout/stderr fails on some platforms, nothing to do about it
	_ = sugar.Sync()
}
