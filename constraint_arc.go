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

// allDistinctConstraint forces every affected variable to take a pairwise
// distinct value.
type allDistinctConstraint struct {
	arcConstraint
}

var _ Constraint = &allDistinctConstraint{}

// AllDistinct constrains every one of vars to take a different value from
// all the others.
func AllDistinct(vars ...string) Constraint {
	return &allDistinctConstraint{arcConstraint{variables: vars, kind: "all-distinct"}}
}

// Narrow is part of the Constraint interface. It repeatedly propagates every
// singleton-valued variable's value out of every other affected variable's
// domain until a fixed point, then verifies a satisfying assignment remains
// possible at all via a bipartite matching between variables and values
// (detects pigeonhole failures no singleton-propagation pass alone would
// catch, e.g. three variables sharing a two-value domain).
func (c *allDistinctConstraint) Narrow(domains DomainMap) (bool, error) {
	doms := make(map[string]*FiniteDomain, len(c.variables))
	for _, v := range c.variables {
		dom, ok := domains[v].(*FiniteDomain)
		if !ok {
			return false, NewMisuse("all-distinct: variable %q not found or not a FiniteDomain", v)
		}
		doms[v] = dom
	}

	for {
		progress := false
		for _, v := range c.variables {
			dom := doms[v]
			if dom.Size() != 1 {
				continue
			}
			singleton := dom.Values()[0]
			for _, other := range c.variables {
				if other == v {
					continue
				}
				od := doms[other]
				if !od.Contains(singleton) {
					continue
				}
				if err := od.Remove(singleton); err != nil {
					return false, err
				}
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	if !c.hasPerfectMatching(doms) {
		return false, NewInconsistency(fmt.Sprintf("%s: no assignment satisfies all-distinct", c.String()))
	}

	// Entailed once no value remains in more than one affected domain.
	seen := make(map[Value]bool)
	for _, v := range c.variables {
		for _, val := range doms[v].Values() {
			if seen[val] {
				return false, nil
			}
			seen[val] = true
		}
	}
	return true, nil
}

// hasPerfectMatching reports whether every variable in c.variables can be
// assigned a distinct value from its current domain, via Kuhn's augmenting
// path algorithm over the variable/value bipartite graph.
func (c *allDistinctConstraint) hasPerfectMatching(doms map[string]*FiniteDomain) bool {
	matchedValue := make(map[Value]string) // value -> variable currently holding it
	var tryAssign func(v string, visited map[Value]bool) bool
	tryAssign = func(v string, visited map[Value]bool) bool {
		for _, val := range doms[v].Values() {
			if visited[val] {
				continue
			}
			visited[val] = true
			holder, taken := matchedValue[val]
			if !taken || tryAssign(holder, visited) {
				matchedValue[val] = v
				return true
			}
		}
		return false
	}

	for _, v := range c.variables {
		if !tryAssign(v, make(map[Value]bool)) {
			return false
		}
	}
	return true
}

// Predicate is a user-supplied relation over one or more variables, in the
// spirit of `make_expression` but without a textual-expression surface
// syntax: callers supply a Go function instead.
type predicateConstraint struct {
	arcConstraint
	fn func(args []Value) bool
}

var _ Constraint = &predicateConstraint{}

// Predicate constrains the values assigned to vars (in order) to satisfy fn.
// Narrowing is by support enumeration: a candidate value for one variable
// survives iff some assignment of all other variables' current domains makes
// fn true.
func Predicate(vars []string, fn func(args []Value) bool) Constraint {
	return &predicateConstraint{
		arcConstraint{variables: vars, kind: "predicate"},
		fn,
	}
}

// Narrow is part of the Constraint interface.
func (c *predicateConstraint) Narrow(domains DomainMap) (bool, error) {
	n := len(c.variables)
	doms := make([]*FiniteDomain, n)
	values := make([][]Value, n)
	for i, v := range c.variables {
		dom, ok := domains[v].(*FiniteDomain)
		if !ok {
			return false, NewMisuse("predicate: variable %q not found or not a FiniteDomain", v)
		}
		doms[i] = dom
		values[i] = dom.Values()
	}

	supported := make([]map[Value]bool, n)
	for i := range supported {
		supported[i] = make(map[Value]bool)
	}

	args := make([]Value, n)
	var visit func(i int)
	visit = func(i int) {
		if i == n {
			if c.fn(args) {
				for j, a := range args {
					supported[j][a] = true
				}
			}
			return
		}
		for _, v := range values[i] {
			args[i] = v
			visit(i + 1)
		}
	}
	visit(0)

	narrowed := make([][]Value, n)
	for i, dom := range doms {
		var toRemove []Value
		for _, v := range values[i] {
			if !supported[i][v] {
				toRemove = append(toRemove, v)
			}
		}
		if err := dom.RemoveMany(toRemove); err != nil {
			return false, err
		}
		narrowed[i] = dom.Values()
	}
	return allTuplesSatisfy(narrowed, c.fn), nil
}

// allTuplesSatisfy reports whether every tuple in the Cartesian product of
// values satisfies fn, short-circuiting on the first counterexample.
func allTuplesSatisfy(values [][]Value, fn func([]Value) bool) bool {
	args := make([]Value, len(values))
	var visit func(i int) bool
	visit = func(i int) bool {
		if i == len(values) {
			return fn(args)
		}
		for _, v := range values[i] {
			args[i] = v
			if !visit(i + 1) {
				return false
			}
		}
		return true
	}
	return visit(0)
}
