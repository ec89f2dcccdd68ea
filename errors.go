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
	"errors"
	"fmt"
)

// Inconsistency is raised when a domain has become empty, or when a
// constraint can no longer be satisfied given the current domains. It's the
// normal signal used to drive backtracking during search and is recovered
// locally by Solver; callers only see it surface out of Repository.Consistency
// when the root repository itself is inconsistent.
type Inconsistency struct {
	reason string
}

// NewInconsistency constructs an Inconsistency carrying a human-readable
// reason, used for tracing/debugging failed branches.
func NewInconsistency(reason string) *Inconsistency {
	return &Inconsistency{reason: reason}
}

// Error is part of the error interface.
func (i *Inconsistency) Error() string {
	if i.reason == "" {
		return "inconsistency"
	}
	return fmt.Sprintf("inconsistency: %s", i.reason)
}

// Misuse indicates a malformed problem -- an unknown variable referenced by a
// constraint, invalid interval domain parameters, removing a value that isn't
// present, and the like. Unlike Inconsistency, it's surfaced to the caller
// immediately; the repository's state thereafter isn't guaranteed usable.
type Misuse struct {
	reason string
}

// NewMisuse constructs a Misuse error with the given descriptive message.
func NewMisuse(format string, args ...interface{}) *Misuse {
	return &Misuse{reason: fmt.Sprintf(format, args...)}
}

// Error is part of the error interface.
func (m *Misuse) Error() string {
	return m.reason
}

// isInconsistency returns true iff err is (or wraps) an *Inconsistency.
func isInconsistency(err error) bool {
	var inc *Inconsistency
	return errors.As(err, &inc)
}
