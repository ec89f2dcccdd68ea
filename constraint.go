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
	"strings"
)

// DomainMap maps a variable identifier to its current domain. A Repository
// exclusively owns one; child repositories created by a Distributor own
// fresh copies.
type DomainMap map[string]Domain

// Constraint is a pure relation over a subset of variables. It carries no
// mutable state of its own between invocations -- everything it needs beyond
// its affected variables is read from the DomainMap passed to Narrow.
//
// Two families implement Constraint: basic constraints (one variable,
// applied once at registration and never queued) and arc constraints (two or
// more variables, subscribed to the Repository's listener index).
type Constraint interface {
	fmt.Stringer

	// AffectedVariables returns the stable set of variable ids this
	// constraint restricts.
	AffectedVariables() []string

	// IsVariableRelevant reports whether v is among AffectedVariables.
	IsVariableRelevant(v string) bool

	// EstimateCost returns a non-negative priority for the propagation
	// queue -- smaller runs first. Cheap, more-constraining constraints
	// should sort low.
	EstimateCost(domains DomainMap) int

	// Narrow mutates the given domains to enforce the constraint's local
	// consistency projection. It returns true iff the constraint can no
	// longer fail regardless of further narrowing of its affected
	// variables' domains (it's then safe to drop from the repository).
	// Narrow returns an *Inconsistency if enforcing it would empty a
	// domain, and a *Misuse if it references a variable absent from
	// domains.
	Narrow(domains DomainMap) (entailed bool, err error)
}

// isBasic is implemented by constraints that affect exactly one variable and
// are applied once at registration time rather than queued.
type isBasic interface {
	basicVariable() string
}

// basicConstraint implements the one-variable-at-registration family
// ("Equals(v,c)", "NotEquals(v,c)", the four comparisons, and value-set
// filters). Each holds a predicate over a single value and its own
// descriptive name for String().
type basicConstraint struct {
	variable string
	name     string
	keep     func(v Value) bool
}

var _ Constraint = &basicConstraint{}
var _ isBasic = &basicConstraint{}

// AffectedVariables is part of the Constraint interface.
func (c *basicConstraint) AffectedVariables() []string { return []string{c.variable} }

// IsVariableRelevant is part of the Constraint interface.
func (c *basicConstraint) IsVariableRelevant(v string) bool { return v == c.variable }

// EstimateCost is part of the Constraint interface: basic constraints are
// never queued, but the zero cost means they'd sort first if they were.
func (c *basicConstraint) EstimateCost(DomainMap) int { return 0 }

// basicVariable is part of isBasic.
func (c *basicConstraint) basicVariable() string { return c.variable }

// String is part of the Constraint interface.
func (c *basicConstraint) String() string { return c.name }

// Narrow is part of the Constraint interface. It removes every value from
// the variable's domain that fails the predicate, and is always entailed.
func (c *basicConstraint) Narrow(domains DomainMap) (bool, error) {
	dom, ok := domains[c.variable].(*FiniteDomain)
	if !ok {
		return false, NewMisuse("%s: variable %q not found or not a FiniteDomain", c.name, c.variable)
	}
	var toRemove []Value
	for _, v := range dom.Values() {
		if !c.keep(v) {
			toRemove = append(toRemove, v)
		}
	}
	if err := dom.RemoveMany(toRemove); err != nil {
		return false, err
	}
	return true, nil
}

// Equals constrains v to equal the constant c.
func Equals(v string, c Value) Constraint {
	return &basicConstraint{
		variable: v, name: fmt.Sprintf("%s == %v", v, c),
		keep: func(val Value) bool { return val == c },
	}
}

// NotEquals constrains v to differ from the constant c.
func NotEquals(v string, c Value) Constraint {
	return &basicConstraint{
		variable: v, name: fmt.Sprintf("%s != %v", v, c),
		keep: func(val Value) bool { return val != c },
	}
}

// LessThan constrains v to be strictly less than the constant c (v must hold
// orderable values, e.g. int).
func LessThan(v string, c int) Constraint {
	return &basicConstraint{
		variable: v, name: fmt.Sprintf("%s < %d", v, c),
		keep: func(val Value) bool { i, ok := val.(int); return ok && i < c },
	}
}

// LessOrEqual constrains v to be at most the constant c.
func LessOrEqual(v string, c int) Constraint {
	return &basicConstraint{
		variable: v, name: fmt.Sprintf("%s <= %d", v, c),
		keep: func(val Value) bool { i, ok := val.(int); return ok && i <= c },
	}
}

// GreaterThan constrains v to be strictly greater than the constant c.
func GreaterThan(v string, c int) Constraint {
	return &basicConstraint{
		variable: v, name: fmt.Sprintf("%s > %d", v, c),
		keep: func(val Value) bool { i, ok := val.(int); return ok && i > c },
	}
}

// GreaterOrEqual constrains v to be at least the constant c.
func GreaterOrEqual(v string, c int) Constraint {
	return &basicConstraint{
		variable: v, name: fmt.Sprintf("%s >= %d", v, c),
		keep: func(val Value) bool { i, ok := val.(int); return ok && i >= c },
	}
}

// InSet constrains v to one of the given allowed values.
func InSet(v string, allowed ...Value) Constraint {
	set := make(map[Value]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return &basicConstraint{
		variable: v, name: fmt.Sprintf("%s in %v", v, allowed),
		keep: func(val Value) bool { _, ok := set[val]; return ok },
	}
}

// NotInSet constrains v to avoid every one of the given forbidden values.
func NotInSet(v string, forbidden ...Value) Constraint {
	set := make(map[Value]struct{}, len(forbidden))
	for _, f := range forbidden {
		set[f] = struct{}{}
	}
	return &basicConstraint{
		variable: v, name: fmt.Sprintf("%s not in %v", v, forbidden),
		keep: func(val Value) bool { _, ok := set[val]; return !ok },
	}
}

// arcConstraint is embedded by every multi-variable constraint family
// (AllDistinct, Predicate, the interval relations) to supply the shared
// AffectedVariables/IsVariableRelevant/EstimateCost/String plumbing.
type arcConstraint struct {
	variables []string
	kind      string
}

// AffectedVariables is part of the Constraint interface.
func (c *arcConstraint) AffectedVariables() []string { return c.variables }

// IsVariableRelevant is part of the Constraint interface.
func (c *arcConstraint) IsVariableRelevant(v string) bool {
	for _, x := range c.variables {
		if x == v {
			return true
		}
	}
	return false
}

// EstimateCost is part of the Constraint interface: the product of affected
// domains' sizes, used as the queue priority -- cheaper constraints narrow
// first.
func (c *arcConstraint) EstimateCost(domains DomainMap) int {
	cost := 1
	for _, v := range c.variables {
		cost *= domains[v].Size()
	}
	return cost
}

// String is part of the Constraint interface.
func (c *arcConstraint) String() string {
	return fmt.Sprintf("%s(%s)", c.kind, strings.Join(c.variables, ", "))
}
