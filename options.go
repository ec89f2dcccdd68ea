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
	"io"
	"log"
)

// SolverOption configures a Solver at construction time, following the same
// functional-options shape as the rest of the package.
type SolverOption func(o *solverOptions)

type solverOptions struct {
	logger      *logger
	distributor Distributor
}

func defaultSolverOptions() *solverOptions {
	return &solverOptions{
		logger:      discardLogger(),
		distributor: Naive(),
	}
}

// WithLogger configures the solver to route its internal propagation/search
// trace to the given io.Writer, using the given prefix and verbosity (1
// traces solve-level events, 2 adds per-constraint narrowing, 3 adds queue
// dumps).
func WithLogger(w io.Writer, prefix string, verbosity int) SolverOption {
	return func(o *solverOptions) {
		o.logger = &logger{Logger: log.New(w, prefix, 0), verbosity: verbosity}
	}
}

// WithDistributor configures the Distributor used to branch repositories
// that propagation alone couldn't resolve. Defaults to Naive().
func WithDistributor(d Distributor) SolverOption {
	return func(o *solverOptions) { o.distributor = d }
}
