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

import "sync"

// Solution maps every variable to the single value it was narrowed down to.
type Solution map[string]Value

// SolverStats reports statistics accumulated over the most recent search.
type SolverStats struct {
	// MaxDepth is the deepest recursion level reached during the search.
	MaxDepth int
	// Distributions is the number of times a repository was branched
	// because propagation alone couldn't resolve it.
	Distributions int
}

// Solver is the depth-first search driver: it repeatedly narrows a
// Repository to a fixed point and, whenever that isn't enough to resolve
// every variable, branches via a Distributor and recurses into each branch.
type Solver struct {
	opts  *solverOptions
	stats SolverStats
}

// NewSolver constructs a Solver, defaulting to Naive() distribution and a
// discarding logger.
func NewSolver(opts ...SolverOption) *Solver {
	o := defaultSolverOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Solver{opts: o}
}

// Stats returns statistics from the most recently completed search.
func (s *Solver) Stats() SolverStats { return s.stats }

// SolutionIter lazily streams the solutions to a repository, one at a time,
// as found by a depth-first search running on its own goroutine. Pulling a
// value only runs the search as far as needed to produce it -- a caller that
// stops calling Next early leaves the remainder of the search tree
// unexplored. The underlying goroutine is reclaimed by Close, which must be
// called once the caller is done iterating (whether or not Next ran to
// exhaustion).
type SolutionIter struct {
	ch       <-chan Solution
	done     chan struct{}
	errCh    <-chan error
	err      error
	finished bool
	once     sync.Once
}

// Next blocks until either a solution is available or the search is
// exhausted, returning ok == false in the latter case. Once ok is false,
// Err reports whether the search ended in failure rather than simply
// running out of solutions.
func (it *SolutionIter) Next() (Solution, bool) {
	sol, ok := <-it.ch
	if !ok {
		it.err = <-it.errCh
		it.finished = true
		return nil, false
	}
	return sol, true
}

// Err returns the error that ended the search, if any. Only meaningful
// after Next has returned ok == false.
func (it *SolutionIter) Err() error { return it.err }

// Close cancels the in-flight search, if any is still running, by signalling
// its generator goroutine via done, then waits for that goroutine to
// actually exit before returning. Safe to call multiple times and after the
// search has already completed on its own.
func (it *SolutionIter) Close() {
	it.once.Do(func() {
		close(it.done)
		if it.finished {
			return
		}
		for range it.ch {
		}
		it.err = <-it.errCh
		it.finished = true
	})
}

// Iterate starts a depth-first search of repo on its own goroutine and
// returns immediately with a SolutionIter streaming its solutions lazily.
// Callers that want every solution eagerly collected into a slice should use
// SolveAll instead; Iterate is for callers that want to stop early, e.g.
// once they've seen a good-enough solution.
func (s *Solver) Iterate(repo *Repository) *SolutionIter {
	s.stats = SolverStats{}
	ch := make(chan Solution)
	done := make(chan struct{})
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		errCh <- s.solve(repo, 0, ch, done)
	}()

	return &SolutionIter{ch: ch, done: done, errCh: errCh}
}

// SolveOne returns the first solution found, or ok == false if the
// repository has none. It stops searching as soon as one is found by
// closing the iterator, cancelling the in-flight generator goroutine.
func (s *Solver) SolveOne(repo *Repository) (Solution, bool, error) {
	it := s.Iterate(repo)
	defer it.Close()

	sol, ok := it.Next()
	if !ok {
		return nil, false, it.Err()
	}
	return sol, true, nil
}

// SolveAll eagerly collects every solution to the repository into a slice.
// It's a convenience wrapper around Iterate for callers that want a batch
// result rather than a lazy stream.
func (s *Solver) SolveAll(repo *Repository) ([]Solution, error) {
	it := s.Iterate(repo)
	defer it.Close()

	var solutions []Solution
	for {
		sol, ok := it.Next()
		if !ok {
			break
		}
		solutions = append(solutions, sol)
	}
	return solutions, it.Err()
}

// BestIter lazily streams improving solutions: every value it yields has a
// cost (per the costFunc it was built with) no worse than every solution
// yielded before it. A caller can stop pulling as soon as the current best
// is good enough, leaving the rest of the search tree unexplored via Close.
type BestIter struct {
	iter     *SolutionIter
	costFunc func(Solution) int
	started  bool
	best     int
}

// Next returns the next improving solution, or ok == false once the search
// is exhausted.
func (it *BestIter) Next() (Solution, bool) {
	for {
		sol, ok := it.iter.Next()
		if !ok {
			return nil, false
		}
		cost := it.costFunc(sol)
		if it.started && cost > it.best {
			continue
		}
		it.started = true
		it.best = cost
		return sol, true
	}
}

// Err is part of the same contract as SolutionIter.Err.
func (it *BestIter) Err() error { return it.iter.Err() }

// Close is part of the same contract as SolutionIter.Close.
func (it *BestIter) Close() { it.iter.Close() }

// IterateBest starts a depth-first search of repo and returns a BestIter
// streaming its improving solutions lazily, per costFunc. There's no
// branch-and-bound pruning of the search tree itself (global optimization is
// explicitly out of scope) -- every solution is still found, just not all of
// them are yielded.
func (s *Solver) IterateBest(repo *Repository, costFunc func(Solution) int) *BestIter {
	return &BestIter{iter: s.Iterate(repo), costFunc: costFunc}
}

// SolveBest eagerly collects every improving solution (per costFunc) into a
// slice, in the order they're discovered -- the last one is the overall
// best. It's a convenience wrapper around IterateBest for callers that want
// a batch result; callers that want to stop early once satisfied with the
// current best should use IterateBest directly.
func (s *Solver) SolveBest(repo *Repository, costFunc func(Solution) int) ([]Solution, error) {
	it := s.IterateBest(repo, costFunc)
	defer it.Close()

	var improving []Solution
	for {
		sol, ok := it.Next()
		if !ok {
			break
		}
		improving = append(improving, sol)
	}
	return improving, it.Err()
}

// solve is the recursive search generator: it narrows repo to a fixed
// point, yields a solution if that resolved every variable, or otherwise
// branches via the configured Distributor and recurses into each child.
func (s *Solver) solve(repo *Repository, depth int, ch chan<- Solution, done <-chan struct{}) error {
	if depth == 0 {
		repo.withLogger(s.opts.logger)
	}
	if depth > s.stats.MaxDepth {
		s.stats.MaxDepth = depth
	}
	s.opts.logger.trace(2, "*** [%d] solve called with repository\n%s", depth, repo)

	solved, err := repo.Consistency()
	if err != nil {
		if isInconsistency(err) {
			s.opts.logger.trace(1, "%s", err)
			return nil
		}
		return err
	}

	if solved {
		sol := make(Solution, len(repo.Variables()))
		for v, dom := range repo.GetDomains() {
			sol[v] = dom.soleValue()
		}
		s.opts.logger.trace(1, "### found solution %v", sol)
		select {
		case ch <- sol:
		case <-done:
		}
		return nil
	}

	s.stats.Distributions++
	children, err := repo.Distribute(s.opts.distributor)
	if err != nil {
		return err
	}
	for _, child := range children {
		select {
		case <-done:
			return nil
		default:
		}
		if err := s.solve(child, depth+1, ch, done); err != nil {
			return err
		}
	}
	return nil
}
