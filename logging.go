// Copyright 2021 Irfan Sharif.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package solver

import (
	"fmt"
	"io/ioutil"
	"log"
)

// logger wraps a *log.Logger with a verbosity level: 0 disables tracing
// entirely, 1 traces at the solve/consistency level, 2 adds per-constraint
// narrowing trace lines, and 3 additionally dumps the propagation queue on
// every iteration.
type logger struct {
	*log.Logger
	verbosity int
}

// discardLogger returns a logger that drops everything, the default for a
// Solver that isn't given WithLogger.
func discardLogger() *logger {
	return &logger{Logger: log.New(ioutil.Discard, "", 0), verbosity: 0}
}

// trace logs msg (formatted with args) if the logger's verbosity is at
// least level.
func (l *logger) trace(level int, format string, args ...interface{}) {
	if l == nil || l.verbosity < level {
		return
	}
	l.Output(2, fmt.Sprintf(format, args...))
}
