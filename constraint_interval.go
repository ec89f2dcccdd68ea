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

import "fmt"

// endpoint selects which bound of a FiniteIntervalDomain a relation
// constraint reasons about.
type endpoint int

const (
	startEndpoint endpoint = iota
	endEndpoint
)

func (e endpoint) String() string {
	if e == startEndpoint {
		return "start"
	}
	return "end"
}

// endpointLower is the earliest value the given endpoint could still take.
func endpointLower(d *FiniteIntervalDomain, e endpoint) int64 {
	if e == startEndpoint {
		return d.LowestMin()
	}
	return d.LowestMax()
}

// endpointUpper is the latest value the given endpoint could still take.
func endpointUpper(d *FiniteIntervalDomain, e endpoint) int64 {
	if e == startEndpoint {
		return d.HighestMin()
	}
	return d.HighestMax()
}

// tightenUpper enforces endpoint <= x, the only way available being through
// the domain's length/bound setters (FiniteIntervalDomain has no direct
// per-endpoint setter, only lowestMin/highestMax/minLength/maxLength -- so
// tightening the start's upper bound necessarily raises minLength, which in
// turn raises the end's lower bound too; this cascade is intentional).
func tightenUpper(d *FiniteIntervalDomain, e endpoint, x int64) error {
	if e == startEndpoint {
		return d.SetMinLength(d.HighestMax() - x)
	}
	return d.SetHighestMax(x)
}

// tightenLower enforces endpoint >= x.
func tightenLower(d *FiniteIntervalDomain, e endpoint, x int64) error {
	if e == startEndpoint {
		return d.SetLowestMin(x)
	}
	return d.SetMinLength(x - d.LowestMin())
}

// intervalRelationConstraint enforces x's xEndpoint <= y's yEndpoint,
// propagated to a fixed point on each Narrow call. All eight named relations
// (StartsBeforeStart, StartsBeforeEnd, ..., EndsAfterEnd) reduce to this one
// shape, with operands swapped for the "After" relations (a After b is just
// b Before a).
type intervalRelationConstraint struct {
	arcConstraint
	xVar, yVar string
	xEP, yEP   endpoint
}

var _ Constraint = &intervalRelationConstraint{}

func newIntervalRelation(name, xVar string, xEP endpoint, yVar string, yEP endpoint) Constraint {
	return &intervalRelationConstraint{
		arcConstraint: arcConstraint{variables: []string{xVar, yVar}, kind: name},
		xVar:          xVar, yVar: yVar, xEP: xEP, yEP: yEP,
	}
}

// StartsBeforeStart constrains a's start to be no later than b's start.
func StartsBeforeStart(a, b string) Constraint {
	return newIntervalRelation("starts-before-start", a, startEndpoint, b, startEndpoint)
}

// StartsBeforeEnd constrains a's start to be no later than b's end.
func StartsBeforeEnd(a, b string) Constraint {
	return newIntervalRelation("starts-before-end", a, startEndpoint, b, endEndpoint)
}

// StartsAfterStart constrains a's start to be no earlier than b's start.
func StartsAfterStart(a, b string) Constraint {
	return newIntervalRelation("starts-after-start", b, startEndpoint, a, startEndpoint)
}

// StartsAfterEnd constrains a's start to be no earlier than b's end.
func StartsAfterEnd(a, b string) Constraint {
	return newIntervalRelation("starts-after-end", b, endEndpoint, a, startEndpoint)
}

// EndsBeforeStart constrains a's end to be no later than b's start.
func EndsBeforeStart(a, b string) Constraint {
	return newIntervalRelation("ends-before-start", a, endEndpoint, b, startEndpoint)
}

// EndsBeforeEnd constrains a's end to be no later than b's end.
func EndsBeforeEnd(a, b string) Constraint {
	return newIntervalRelation("ends-before-end", a, endEndpoint, b, endEndpoint)
}

// EndsAfterStart constrains a's end to be no earlier than b's start.
func EndsAfterStart(a, b string) Constraint {
	return newIntervalRelation("ends-after-start", b, startEndpoint, a, endEndpoint)
}

// EndsAfterEnd constrains a's end to be no earlier than b's end.
func EndsAfterEnd(a, b string) Constraint {
	return newIntervalRelation("ends-after-end", b, endEndpoint, a, endEndpoint)
}

// Narrow is part of the Constraint interface.
func (c *intervalRelationConstraint) Narrow(domains DomainMap) (bool, error) {
	x, ok := domains[c.xVar].(*FiniteIntervalDomain)
	if !ok {
		return false, NewMisuse("%s: variable %q not found or not a FiniteIntervalDomain", c.kind, c.xVar)
	}
	y, ok := domains[c.yVar].(*FiniteIntervalDomain)
	if !ok {
		return false, NewMisuse("%s: variable %q not found or not a FiniteIntervalDomain", c.kind, c.yVar)
	}

	for {
		progress := false

		if newUpper := endpointUpper(y, c.yEP); newUpper < endpointUpper(x, c.xEP) {
			if err := tightenUpper(x, c.xEP, newUpper); err != nil {
				return false, err
			}
			progress = true
		}
		if newLower := endpointLower(x, c.xEP); newLower > endpointLower(y, c.yEP) {
			if err := tightenLower(y, c.yEP, newLower); err != nil {
				return false, err
			}
			progress = true
		}
		if !progress {
			break
		}
	}

	entailed := endpointUpper(x, c.xEP) <= endpointLower(y, c.yEP)
	return entailed, nil
}

// noOverlapConstraint forces two scheduling intervals to not overlap, in
// either order.
type noOverlapConstraint struct {
	arcConstraint
	aVar, bVar string
}

var _ Constraint = &noOverlapConstraint{}

// NoOverlap constrains intervals a and b to never overlap: either a ends
// before b starts, or b ends before a starts. The relation is symmetric, so
// the variables are stored in a canonical (sorted) order: NoOverlap("a",
// "b") and NoOverlap("b", "a") build identical constraints, comparable with
// reflect.DeepEqual.
func NoOverlap(a, b string) Constraint {
	if a > b {
		a, b = b, a
	}
	return &noOverlapConstraint{
		arcConstraint: arcConstraint{variables: []string{a, b}, kind: "no-overlap"},
		aVar:          a, bVar: b,
	}
}

// Narrow is part of the Constraint interface. If only one ordering (a before
// b, or b before a) remains feasible, it's enforced by tightening both
// intervals' bounds, and the constraint is entailed once those bounds already
// keep the two intervals apart; if both remain feasible, nothing can be
// narrowed yet; if neither does, the domains are inconsistent.
func (c *noOverlapConstraint) Narrow(domains DomainMap) (bool, error) {
	a, ok := domains[c.aVar].(*FiniteIntervalDomain)
	if !ok {
		return false, NewMisuse("no-overlap: variable %q not found or not a FiniteIntervalDomain", c.aVar)
	}
	b, ok := domains[c.bVar].(*FiniteIntervalDomain)
	if !ok {
		return false, NewMisuse("no-overlap: variable %q not found or not a FiniteIntervalDomain", c.bVar)
	}

	feasAB := a.LowestMax() <= b.HighestMin() // a could end before b's latest possible start
	feasBA := b.LowestMax() <= a.HighestMin() // b could end before a's latest possible start

	switch {
	case !feasAB && !feasBA:
		return false, NewInconsistency(fmt.Sprintf("no-overlap(%s, %s): neither ordering is feasible", c.aVar, c.bVar))
	case feasAB && feasBA:
		return false, nil
	case feasAB:
		if err := a.SetHighestMax(min64(a.HighestMax(), b.HighestMin())); err != nil {
			return false, err
		}
		if err := b.SetLowestMin(max64(b.LowestMin(), a.LowestMax())); err != nil {
			return false, err
		}
		return a.HighestMax() <= b.LowestMin(), nil
	default: // feasBA
		if err := b.SetHighestMax(min64(b.HighestMax(), a.HighestMin())); err != nil {
			return false, err
		}
		if err := a.SetLowestMin(max64(a.LowestMin(), b.LowestMax())); err != nil {
			return false, err
		}
		return b.HighestMax() <= a.LowestMin(), nil
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
