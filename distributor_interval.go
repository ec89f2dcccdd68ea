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

// finiteIntervalDistributor branches the first-fail scheduling-interval
// variable along whichever axis is still unresolved: if its length isn't
// pinned down yet, it splits on length (shortest-possible-length branch vs.
// the rest); otherwise it splits on start position (earliest-possible-start
// branch vs. the rest).
type finiteIntervalDistributor struct{}

var _ Distributor = finiteIntervalDistributor{}

// FiniteIntervalDistributor returns a Distributor suited to scheduling
// problems built from FiniteIntervalDomain variables.
func FiniteIntervalDistributor() Distributor { return finiteIntervalDistributor{} }

// Distribute is part of the Distributor interface.
func (finiteIntervalDistributor) Distribute(domains DomainMap) ([]DomainMap, error) {
	v := findSmallestDomain(domains)
	if v == "" {
		return []DomainMap{copyDomains(domains)}, nil
	}
	dom, ok := domains[v].(*FiniteIntervalDomain)
	if !ok {
		return nil, NewMisuse("finite-interval distributor: variable %q is not a FiniteIntervalDomain", v)
	}

	lo := dom.copy().(*FiniteIntervalDomain)
	hi := dom.copy().(*FiniteIntervalDomain)

	if dom.MinLength() < dom.MaxLength() {
		if err := lo.SetMaxLength(dom.MinLength()); err != nil {
			return nil, err
		}
		if err := hi.SetMinLength(dom.MinLength() + dom.Resolution()); err != nil {
			return nil, err
		}
	} else {
		if err := lo.SetHighestMax(dom.LowestMin() + dom.MinLength()); err != nil {
			return nil, err
		}
		if err := hi.SetLowestMin(dom.LowestMin() + dom.Resolution()); err != nil {
			return nil, err
		}
	}
	lo.ResetChanged()
	hi.ResetChanged()

	branchOne := copyDomains(domains)
	branchOne[v] = lo
	branchTwo := copyDomains(domains)
	branchTwo[v] = hi
	return []DomainMap{branchOne, branchTwo}, nil
}
