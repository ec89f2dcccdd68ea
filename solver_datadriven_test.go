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

package solver_test

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	solver "github.com/irfansharif/csp"
)

// argVals returns the comma-split values bound to key in a datadriven
// directive's arguments, e.g. "values=1,2,3" -> ["1","2","3"].
func argVals(d *datadriven.TestData, key string) []string {
	for _, arg := range d.CmdArgs {
		if arg.Key == key {
			var vals []string
			for _, v := range arg.Vals {
				vals = append(vals, strings.Split(v, ",")...)
			}
			return vals
		}
	}
	return nil
}

func argVal(d *datadriven.TestData, key string) string {
	vs := argVals(d, key)
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func atoiValues(t *testing.T, raw []string) []solver.Value {
	t.Helper()
	vs := make([]solver.Value, len(raw))
	for i, s := range raw {
		n, err := strconv.Atoi(s)
		if err != nil {
			t.Fatalf("bad integer %q: %v", s, err)
		}
		vs[i] = n
	}
	return vs
}

// TestDatadriven runs the propagation and search engine against golden
// files under testdata/, using a small line-oriented directive set built
// directly atop the public package -- not a general expression-reading
// parser, since arbitrary predicate bodies can't be named from text.
func TestDatadriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		var names []string
		domains := make(solver.DomainMap)
		var constraints []solver.Constraint

		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "domain":
				name := argVal(d, "var")
				names = append(names, name)
				domains[name] = solver.NewFiniteDomain(atoiValues(t, argVals(d, "values"))...)
				return ""

			case "constraint":
				kind := argVal(d, "kind")
				switch kind {
				case "equals":
					n, _ := strconv.Atoi(argVal(d, "value"))
					constraints = append(constraints, solver.Equals(argVal(d, "var"), n))
				case "notequals":
					n, _ := strconv.Atoi(argVal(d, "value"))
					constraints = append(constraints, solver.NotEquals(argVal(d, "var"), n))
				case "lessthan":
					n, _ := strconv.Atoi(argVal(d, "value"))
					constraints = append(constraints, solver.LessThan(argVal(d, "var"), n))
				case "greaterthan":
					n, _ := strconv.Atoi(argVal(d, "value"))
					constraints = append(constraints, solver.GreaterThan(argVal(d, "var"), n))
				case "inset":
					constraints = append(constraints, solver.InSet(argVal(d, "var"), atoiValues(t, argVals(d, "values"))...))
				case "alldistinct":
					constraints = append(constraints, solver.AllDistinct(argVals(d, "vars")...))
				default:
					t.Fatalf("unrecognized constraint kind: %s", kind)
				}
				return ""

			case "consistency":
				repo, err := solver.NewRepository(names, domains, constraints...)
				if err != nil {
					return fmt.Sprintf("error: %v\n", err)
				}
				solved, err := repo.Consistency()
				if err != nil {
					return fmt.Sprintf("error: %v\n", err)
				}
				domains = repo.GetDomains()
				return fmt.Sprintf("solved=%t\n%s", solved, dumpDomains(names, domains))

			case "solve":
				repo, err := solver.NewRepository(names, domains, constraints...)
				if err != nil {
					return fmt.Sprintf("error: %v\n", err)
				}
				solutions, err := solver.NewSolver(solver.WithDistributor(solver.Enumerator())).SolveAll(repo)
				if err != nil {
					return fmt.Sprintf("error: %v\n", err)
				}
				return dumpSolutions(names, solutions)

			default:
				t.Fatalf("unrecognized command: %s", d.Cmd)
				return ""
			}
		})
	})
}

func dumpDomains(names []string, domains solver.DomainMap) string {
	var b strings.Builder
	for _, v := range names {
		fmt.Fprintf(&b, "%s = %s\n", v, domains[v])
	}
	return b.String()
}

func dumpSolutions(names []string, solutions []solver.Solution) string {
	rendered := make([]string, len(solutions))
	for i, sol := range solutions {
		var parts []string
		for _, v := range names {
			parts = append(parts, fmt.Sprintf("%s=%v", v, sol[v]))
		}
		rendered[i] = strings.Join(parts, " ")
	}
	sort.Strings(rendered)

	var b strings.Builder
	for _, r := range rendered {
		b.WriteString(r)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "count=%d\n", len(solutions))
	return b.String()
}
