package solver

// A watcherList stores the clause database and, for each literal, the list
// of clauses currently watching it.
// The database is partitioned: the first nbPersistent clauses are problem
// clauses and learnt binaries, never evicted; the suffix holds the other
// learnt clauses, candidates for eviction during reduce.
type watcherList struct {
	db           []*Clause   // All the clauses
	nbPersistent int         // Length of the persistent prefix
	wlist        [][]*Clause // For each literal, the clauses in which it is one of the two watches
}

// The outcome of inspecting one clause during propagation.
type watchResult byte

const (
	clauseSat       = watchResult(iota) // Satisfied through its other watch, left in place
	clauseRelocated                     // Found a replacement watch, moved to another list
	clauseUnit                          // No replacement and the other watch is free
	clauseConflict                      // No replacement and the other watch is false
)

// initWatcherList makes a new watcherList for the solver.
func (s *Solver) initWatcherList(clauses []*Clause) {
	db := make([]*Clause, len(clauses), len(clauses)*2) // Make room for future learnt clauses
	copy(db, clauses)
	s.wl = watcherList{
		db:           db,
		nbPersistent: len(clauses),
		wlist:        make([][]*Clause, s.nbVars*2),
	}
	for _, c := range db {
		s.watchClause(c)
	}
}

// watchClause adds c to the watch lists of its first two literals.
func (s *Solver) watchClause(c *Clause) {
	first := c.First()
	second := c.Second()
	s.wl.wlist[first] = append(s.wl.wlist[first], c)
	s.wl.wlist[second] = append(s.wl.wlist[second], c)
}

// unwatchClause removes c from the watch lists of its first two literals.
// Must be called before the clause is dropped from the database.
func (s *Solver) unwatchClause(c *Clause) {
	for i := 0; i < 2; i++ {
		lit := c.Get(i)
		lst := s.wl.wlist[lit]
		j := 0
		// This will panic if c is not in wlist[lit], but this shouldn't happen.
		for lst[j] != c {
			j++
		}
		last := len(lst) - 1
		lst[j] = lst[last]
		s.wl.wlist[lit] = lst[:last]
	}
}

// appendLearned adds c at the end of the evictable suffix.
func (s *Solver) appendLearned(c *Clause) {
	s.wl.db = append(s.wl.db, c)
	s.watchClause(c)
}

// insertPersistent promotes c into the persistent prefix.
// Learnt binary clauses are stored there so that reduce never drops them.
func (s *Solver) insertPersistent(c *Clause) {
	wl := &s.wl
	wl.db = append(wl.db, nil)
	copy(wl.db[wl.nbPersistent+1:], wl.db[wl.nbPersistent:])
	wl.db[wl.nbPersistent] = c
	wl.nbPersistent++
	s.watchClause(c)
}

// propagate performs boolean constraint propagation over the unprocessed
// suffix of the trail. It returns the first conflicting clause found, or
// nil once the trail is saturated.
// After a nil return, no clause in the database is unit or falsified.
func (s *Solver) propagate() *Clause {
	for s.qhead < len(s.trail) {
		lit := s.trail[s.qhead]
		s.qhead++
		neg := lit.Negation()
		ws := s.wl.wlist[neg]
		for i := 0; i < len(ws); i++ {
			c := ws[i]
			switch s.inspectClause(c, neg) {
			case clauseRelocated:
				last := len(ws) - 1
				ws[i] = ws[last]
				ws = ws[:last]
				i--
			case clauseUnit:
				s.push(c.First(), c)
			case clauseConflict:
				s.wl.wlist[neg] = ws
				return c
			}
		}
		s.wl.wlist[neg] = ws
	}
	return nil
}

// inspectClause examines one clause from the watch list of falseLit, which
// just became false. It normalizes the clause so that the false watch sits
// at position 1, then either leaves the clause in place (satisfied), finds
// a replacement watch, or reports it unit or conflicting.
// On clauseRelocated, the caller must remove c from falseLit's list; the
// clause was already appended to its new watch's list.
func (s *Solver) inspectClause(c *Clause, falseLit Lit) watchResult {
	if c.First() == falseLit {
		c.swap(0, 1)
	}
	other := c.First()
	if s.litValue(other) == 1 {
		return clauseSat
	}
	for j := 2; j < c.Len(); j++ {
		w := c.Get(j)
		if s.litValue(w) != -1 {
			c.swap(1, j)
			s.wl.wlist[w] = append(s.wl.wlist[w], c)
			return clauseRelocated
		}
	}
	if s.litValue(other) == 0 {
		return clauseUnit
	}
	return clauseConflict
}
