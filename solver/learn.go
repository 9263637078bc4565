package solver

// Conflict analysis: resolution from the conflicting clause back to the
// first unique implication point of the current decision level.

// analyze derives a learnt clause from the given conflict, backjumps to the
// highest decision level among the learnt clause's non-asserting literals
// and asserts the negated UIP there.
// Must only be called at decision level >= 1.
func (s *Solver) analyze(conflict *Clause) {
	lvl := s.decisionLevel()
	learnt := s.learntBuf[:1] // Slot 0 is reserved for the asserting literal
	count := 0                // Nb of marked vars from the current level not resolved yet
	cur := Lit(-1)
	i := len(s.trail) - 1
	c := conflict
	for {
		for j := 0; j < c.Len(); j++ {
			l := c.Get(j)
			v := l.Var()
			if s.seen[v] {
				continue
			}
			s.seen[v] = true
			s.bumpActivity(v)
			if s.level[v] == lvl {
				count++
			} else {
				learnt = append(learnt, l)
			}
		}
		if cur != -1 {
			s.seen[cur.Var()] = false
		}
		for {
			cur = s.trail[i]
			i--
			if s.seen[cur.Var()] {
				break
			}
		}
		count--
		if count == 0 {
			break // cur is the first UIP
		}
		c = s.reason[cur.Var()]
	}
	learnt[0] = cur.Negation()
	for _, l := range learnt {
		s.seen[l.Var()] = false
	}

	// The second watch must be the literal with the highest level, so that
	// the clause stays correctly watched right after the backjump.
	maxLvl, maxIdx := 0, 1
	for j := 1; j < len(learnt); j++ {
		if l := s.level[learnt[j].Var()]; l > maxLvl {
			maxLvl, maxIdx = l, j
		}
	}
	s.backjump(maxLvl)
	if len(learnt) == 1 {
		s.Stats.NbUnitLearned++
		s.Stats.NbLearned++
		s.push(learnt[0], nil) // Level-0 fact, no reason needed
		s.decayActivity()
		return
	}
	learnt[1], learnt[maxIdx] = learnt[maxIdx], learnt[1]
	lits := make([]Lit, len(learnt))
	copy(lits, learnt)
	learned := NewLearnedClause(lits, s.clauseScore(len(lits)))
	if learned.Len() == 2 {
		s.Stats.NbBinaryLearned++
		s.insertPersistent(learned)
	} else {
		s.appendLearned(learned)
	}
	s.Stats.NbLearned++
	s.push(learned.First(), learned) // Short-cut the next unit propagation
	s.decayActivity()
}

// clauseScore computes the eviction score for a learnt clause of n literals.
// Short clauses are scored by their length; longer ones all share the same
// base score with a random tiebreak.
func (s *Solver) clauseScore(n int) float64 {
	if n < sbrBound {
		return float64(n)
	}
	return sbrBound + s.rng.Float64()
}

// bumpActivity increases v's activity, rescaling all activities when they
// grow too large to avoid overflow.
func (s *Solver) bumpActivity(v Var) {
	s.activity[v] += s.varInc
	if s.activity[v] > 1e100 {
		for i := range s.activity {
			s.activity[i] *= 1e-100
		}
		s.varInc *= 1e-100
	}
	if s.varQueue.contains(int(v)) {
		s.varQueue.bubbleUp(int(v))
	}
}

// decayActivity makes future bumps weigh more, which is equivalent to an
// exponential decay of all existing activities.
func (s *Solver) decayActivity() {
	s.varInc *= 1 / varDecay
}
