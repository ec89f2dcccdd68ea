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
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Value is a single candidate value held by a domain. It must be usable as a
// map key (comparable) -- integers, strings, and structs/arrays of
// comparable fields are all valid; slices and maps are not, and using one
// will panic the first time it's inserted into a domain.
type Value interface{}

// Domain holds the current set of candidate values for one variable and
// tracks whether it has changed since the last reset. Two variants exist:
// FiniteDomain, an arbitrary set of discrete values, and
// FiniteIntervalDomain, a bounded range of scheduling intervals (see
// interval_domain.go).
//
// A domain never grows within a search node; narrowing only ever removes
// candidates. Copying a domain for branching yields an independent instance
// with the changed flag cleared.
type Domain interface {
	fmt.Stringer

	// Size is the domain's current cardinality.
	Size() int

	// HasChanged reports whether any value has been removed since the last
	// ResetChanged.
	HasChanged() bool

	// ResetChanged clears the changed flag.
	ResetChanged()

	// copy returns an independent deep copy with the changed flag cleared.
	copy() Domain

	// soleValue returns the domain's one remaining candidate value. Only
	// meaningful once Size() == 1, e.g. when reading off a found solution.
	soleValue() Value
}

// FiniteDomain is a finite set of discrete values, the domain implementation
// backing most CSP variables (as opposed to FiniteIntervalDomain, used for
// scheduling).
type FiniteDomain struct {
	values  map[Value]struct{}
	changed bool
}

var _ Domain = &FiniteDomain{}

// NewFiniteDomain constructs a domain from the given values. Duplicates are
// coalesced; an empty value list is accepted (size-zero domains are only an
// error once they're the result of narrowing, per Inconsistency).
func NewFiniteDomain(values ...Value) *FiniteDomain {
	d := &FiniteDomain{values: make(map[Value]struct{}, len(values))}
	for _, v := range values {
		d.values[v] = struct{}{}
	}
	return d
}

// Values returns a snapshot of the domain's current values; order is
// unspecified.
func (d *FiniteDomain) Values() []Value {
	vs := make([]Value, 0, len(d.values))
	for v := range d.values {
		vs = append(vs, v)
	}
	return vs
}

// Size is part of the Domain interface.
func (d *FiniteDomain) Size() int {
	return len(d.values)
}

// Contains reports whether v is currently a candidate value.
func (d *FiniteDomain) Contains(v Value) bool {
	_, ok := d.values[v]
	return ok
}

// Remove removes v from the domain. Removing a value that isn't present is a
// Misuse. If removing v empties the domain, Remove returns Inconsistency.
func (d *FiniteDomain) Remove(v Value) error {
	if _, ok := d.values[v]; !ok {
		return NewMisuse("cannot remove value %v: not present in domain", v)
	}
	delete(d.values, v)
	d.changed = true
	if len(d.values) == 0 {
		return NewInconsistency("domain emptied by removing last value")
	}
	return nil
}

// RemoveMany removes every value in vs, skipping ones already absent. It
// stops and returns the first error encountered.
func (d *FiniteDomain) RemoveMany(vs []Value) error {
	for _, v := range vs {
		if !d.Contains(v) {
			continue
		}
		if err := d.Remove(v); err != nil {
			return err
		}
	}
	return nil
}

// HasChanged is part of the Domain interface.
func (d *FiniteDomain) HasChanged() bool { return d.changed }

// ResetChanged is part of the Domain interface.
func (d *FiniteDomain) ResetChanged() { d.changed = false }

// copy is part of the Domain interface.
func (d *FiniteDomain) copy() Domain {
	cp := make(map[Value]struct{}, len(d.values))
	for v := range d.values {
		cp[v] = struct{}{}
	}
	return &FiniteDomain{values: cp}
}

// String is part of the Domain interface.
func (d *FiniteDomain) String() string {
	vs := d.Values()
	strs := make([]string, len(vs))
	for i, v := range vs {
		strs[i] = fmt.Sprintf("%v", v)
	}
	sort.Strings(strs)
	return fmt.Sprintf("{%s} (%s value%s)", strings.Join(strs, ", "),
		humanize.Comma(int64(len(strs))), plural(len(strs)))
}

// soleValue is part of the Domain interface.
func (d *FiniteDomain) soleValue() Value {
	for v := range d.values {
		return v
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
