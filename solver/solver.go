package solver

import (
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
)

const (
	varDecay           = 0.9 // The activity increment is divided by this after each conflict.
	initBackoffLimit   = 100 // Initial nb of conflicts before the budgets grow.
	backoffLimitGrowth = 1.5
	dbLimitGrowth      = 1.1
	initDbLimitFactor  = 1.5 // The initial clause budget, relative to the problem size.
)

// Stats are statistics about the resolution of the problem.
// They are provided for information purpose only.
type Stats struct {
	NbConflicts     int
	NbDecisions     int
	NbPropagations  int
	NbLearned       int // How many clauses were learned
	NbUnitLearned   int // How many unit clauses were learned
	NbBinaryLearned int // How many binary clauses were learned
	NbDeleted       int // How many clauses were deleted
	NbReduces       int // How many times the learnt DB was reduced
}

// A Solver solves a given problem. It is the main data structure.
// A Solver must not be reused across problems: make a new one per Solve call.
type Solver struct {
	Verbose    bool           // Indicates whether the solver should log progress information while solving. False by default.
	Logger     *logrus.Logger // Where progress information is logged when Verbose is true. Defaults to the standard logrus logger.
	CertWriter io.Writer      // If non-nil, an UNSAT certificate stub is written there when the problem is proven UNSAT.

	nbVars int
	status Status
	Stats  Stats // Statistics about the solving process.

	assign   []int8    // Current binding of each var: 0 free, 1 true, -1 false
	polarity []bool    // Preferred sign for each var; kept across unassignments for phase saving
	level    []int     // Decision level each var was assigned at
	reason   []*Clause // For each var, the clause that propagated it; nil for decisions and level-0 facts

	trail    []Lit // Current assignment stack, in chronological order
	trailLim []int // Trail length at the start of each decision level
	qhead    int   // First unprocessed trail position

	activity []float64 // How often each var is involved in conflicts
	varInc   float64   // On each var bump, how big the increment should be
	varQueue queue

	wl        watcherList
	seen      []bool // Marks used by analyze
	learntBuf []Lit

	units       []Lit     // Level-0 facts from the problem, kept for the final model check too
	origClauses []*Clause // Problem clauses, kept around for the final model check

	dbLimit      float64 // Clause budget triggering a reduce, persistent clauses included
	backoffTimer int
	backoffLimit float64

	rng *rand.Rand
}

// New makes a solver for the given problem.
func New(pb *Problem) *Solver {
	if pb.Status == Unsat {
		return &Solver{status: Unsat}
	}
	nbVars := pb.NbVars
	s := &Solver{
		nbVars:       nbVars,
		status:       pb.Status,
		assign:       make([]int8, nbVars),
		polarity:     make([]bool, nbVars),
		level:        make([]int, nbVars),
		reason:       make([]*Clause, nbVars),
		trail:        make([]Lit, 0, nbVars),
		activity:     make([]float64, nbVars),
		varInc:       1.0,
		seen:         make([]bool, nbVars),
		learntBuf:    make([]Lit, nbVars+1),
		units:        pb.Units,
		origClauses:  pb.Clauses,
		dbLimit:      initDbLimitFactor * float64(len(pb.Clauses)+len(pb.Units)),
		backoffLimit: initBackoffLimit,
		rng:          rand.New(rand.NewSource(0)),
	}
	s.initWatcherList(pb.Clauses)
	s.varQueue = newQueue(s.activity)
	return s
}

func (s *Solver) decisionLevel() int {
	return len(s.trailLim)
}

// litValue returns 1 if l is true under the current binding, -1 if it is
// false and 0 if its variable is free.
func (s *Solver) litValue(l Lit) int8 {
	a := s.assign[l.Var()]
	if a == 0 {
		return 0
	}
	if (a > 0) == l.IsPositive() {
		return 1
	}
	return -1
}

// push assigns l, records its reason and appends it to the trail.
// A non-nil reason clause gets locked so that reduce cannot evict it.
func (s *Solver) push(l Lit, from *Clause) {
	v := l.Var()
	if l.IsPositive() {
		s.assign[v] = 1
		s.polarity[v] = true
	} else {
		s.assign[v] = -1
		s.polarity[v] = false
	}
	s.level[v] = s.decisionLevel()
	s.reason[v] = from
	if from != nil {
		from.lock()
		s.Stats.NbPropagations++
	}
	s.trail = append(s.trail, l)
}

// unassignTop undoes the most recent trail entry.
// The variable's polarity is kept so that later decisions reuse it.
func (s *Solver) unassignTop() {
	l := s.trail[len(s.trail)-1]
	v := l.Var()
	if r := s.reason[v]; r != nil {
		r.unlock()
		s.reason[v] = nil
	}
	s.assign[v] = 0
	s.trail = s.trail[:len(s.trail)-1]
	if !s.varQueue.contains(int(v)) {
		s.varQueue.insert(int(v))
	}
}

// backjump undoes all assignments above the given decision level.
func (s *Solver) backjump(lvl int) {
	for s.decisionLevel() > lvl {
		mark := s.trailLim[len(s.trailLim)-1]
		for len(s.trail) > mark {
			s.unassignTop()
		}
		s.trailLim = s.trailLim[:len(s.trailLim)-1]
	}
	s.qhead = len(s.trail)
}

// choose pops the heap until it yields a free variable and returns the
// literal to branch on, reusing the variable's saved phase.
// It returns -1 when every variable is assigned.
func (s *Solver) choose() Lit {
	for !s.varQueue.empty() {
		v := Var(s.varQueue.removeMax())
		if s.assign[v] == 0 {
			return v.SignedLit(!s.polarity[v])
		}
	}
	return -1
}

// decide opens a new decision level and assigns the next decision literal.
// It returns false when no free variable remains.
func (s *Solver) decide() bool {
	l := s.choose()
	if l == -1 {
		return false
	}
	s.Stats.NbDecisions++
	s.trailLim = append(s.trailLim, len(s.trail))
	s.push(l, nil)
	return true
}

// backoff updates the conflict budget after each conflict. Once the budget
// is exhausted, both the budget and the clause database limit grow.
// There is no trail restart here: backjumping alone rewinds the search.
func (s *Solver) backoff() {
	s.backoffTimer++
	if float64(s.backoffTimer) >= s.backoffLimit {
		s.backoffTimer = 0
		s.backoffLimit *= backoffLimitGrowth
		persistent := float64(s.wl.nbPersistent)
		s.dbLimit = persistent + (s.dbLimit-persistent)*dbLimitGrowth
	}
}

// learntSorter sorts a learnt suffix by ascending score, best clauses first.
type learntSorter []*Clause

func (ls learntSorter) Len() int           { return len(ls) }
func (ls learntSorter) Less(i, j int) bool { return ls[i].score < ls[j].score }
func (ls learntSorter) Swap(i, j int)      { ls[i], ls[j] = ls[j], ls[i] }

// reduce drops the worst half of the learnt clauses once the database
// outgrows its budget. Locked clauses are retained regardless of score.
func (s *Solver) reduce() {
	wl := &s.wl
	if float64(len(wl.db)) < s.dbLimit {
		return
	}
	sort.Sort(learntSorter(wl.db[wl.nbPersistent:]))
	newSize := wl.nbPersistent + (len(wl.db)-wl.nbPersistent)/2
	for i := newSize; i < len(wl.db); i++ {
		c := wl.db[i]
		if c.isLocked() {
			wl.db[newSize] = c
			newSize++
			continue
		}
		s.unwatchClause(c)
		s.Stats.NbDeleted++
	}
	wl.db = wl.db[:newSize]
	s.Stats.NbReduces++
	if s.Verbose {
		s.logger().WithFields(logrus.Fields{
			"clauses":   len(wl.db),
			"deleted":   s.Stats.NbDeleted,
			"conflicts": s.Stats.NbConflicts,
		}).Info("reduced clause database")
	}
}

func (s *Solver) logger() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}

// setUnsat records the UNSAT status, emitting the certificate stub if one
// was requested.
func (s *Solver) setUnsat() Status {
	if s.CertWriter != nil {
		fmt.Fprintf(s.CertWriter, "0\n")
	}
	s.status = Unsat
	if s.Verbose {
		s.logStats()
	}
	return Unsat
}

// Solve solves the problem associated with the solver and returns Sat or Unsat.
// It always terminates on a finite CNF.
func (s *Solver) Solve() Status {
	if s.status == Unsat {
		return s.setUnsat()
	}
	for _, u := range s.units {
		switch s.litValue(u) {
		case 1: // Already implied
		case -1:
			return s.setUnsat()
		default:
			s.push(u, nil)
		}
	}
	if conflict := s.propagate(); conflict != nil {
		return s.setUnsat()
	}
	for {
		for conflict := s.propagate(); conflict != nil; conflict = s.propagate() {
			s.Stats.NbConflicts++
			if s.decisionLevel() == 0 {
				return s.setUnsat()
			}
			s.analyze(conflict)
			s.backoff()
		}
		if !s.decide() {
			s.status = Sat
			if s.Verbose {
				s.logStats()
			}
			return Sat
		}
		s.reduce()
	}
}

func (s *Solver) logStats() {
	s.logger().WithFields(logrus.Fields{
		"conflicts":    s.Stats.NbConflicts,
		"decisions":    s.Stats.NbDecisions,
		"propagations": s.Stats.NbPropagations,
		"learned":      s.Stats.NbLearned,
		"deleted":      s.Stats.NbDeleted,
		"reduces":      s.Stats.NbReduces,
	}).Info("search finished")
}

// Model returns a slice that associates, to each variable, its binding.
// Free variables default to true. If s's status is not Sat, the method panics.
func (s *Solver) Model() []bool {
	if s.status != Sat {
		panic("cannot call Model() on a non-Sat solver")
	}
	res := make([]bool, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		res[v] = s.assign[v] >= 0
	}
	return res
}

// CheckModel verifies the current model against every original clause of
// the problem. It returns false when at least one clause is not satisfied,
// which means the solver is broken.
func (s *Solver) CheckModel() bool {
	for _, u := range s.units {
		if s.litValue(u) != 1 {
			return false
		}
	}
	for _, c := range s.origClauses {
		sat := false
		for i := 0; i < c.Len(); i++ {
			if s.litValue(c.Get(i)) == 1 {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

// OutputModel writes the result on w, following the SAT competition output
// format: an "s" status line and, on SAT, a "v" line holding one literal
// per variable, terminated by 0. Free variables are reported positive.
func (s *Solver) OutputModel(w io.Writer) error {
	switch s.status {
	case Sat:
		if _, err := fmt.Fprintf(w, "s SATISFIABLE\nv "); err != nil {
			return err
		}
		for v := 0; v < s.nbVars; v++ {
			lit := v + 1
			if s.assign[v] < 0 {
				lit = -lit
			}
			if _, err := fmt.Fprintf(w, "%d ", lit); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "0\n")
		return err
	case Unsat:
		_, err := fmt.Fprintf(w, "s UNSATISFIABLE\n")
		return err
	default:
		_, err := fmt.Fprintf(w, "s INDETERMINATE\n")
		return err
	}
}
