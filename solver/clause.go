package solver

import "fmt"

// sbrBound is the length from which on learnt clauses stop being scored by
// their length and get a randomized tiebreak instead.
const sbrBound = 12

const (
	learntFlag uint8 = 1 << 0
	lockedFlag uint8 = 1 << 1
)

// A Clause is a disjunction of literals.
// Its first two literals are the watched ones; their positions matter,
// the rest of the clause is unordered.
// Learnt clauses carry a score used to order them for eviction:
// the lower the score, the more valuable the clause.
type Clause struct {
	lits  []Lit
	score float64
	flags uint8
}

// NewClause returns a problem clause over the given lits.
func NewClause(lits []Lit) *Clause {
	return &Clause{lits: lits, score: -1}
}

// NewLearnedClause returns a clause marked as learnt, with the given eviction score.
func NewLearnedClause(lits []Lit, score float64) *Clause {
	return &Clause{lits: lits, score: score, flags: learntFlag}
}

// Learned returns true iff c was deduced during search rather than read from the problem.
func (c *Clause) Learned() bool {
	return c.flags&learntFlag != 0
}

// Score returns the clause's eviction score. Problem clauses have a negative score.
func (c *Clause) Score() float64 {
	return c.score
}

// lock marks c as being the reason for a currently assigned variable.
// A locked clause must not be evicted.
func (c *Clause) lock() {
	c.flags |= lockedFlag
}

func (c *Clause) unlock() {
	c.flags &^= lockedFlag
}

func (c *Clause) isLocked() bool {
	return c.flags&lockedFlag != 0
}

// Len returns the nb of lits in the clause.
func (c *Clause) Len() int {
	return len(c.lits)
}

// First returns the first lit from the clause.
func (c *Clause) First() Lit {
	return c.lits[0]
}

// Second returns the second lit from the clause.
func (c *Clause) Second() Lit {
	return c.lits[1]
}

// Get returns the ith literal from the clause.
func (c *Clause) Get(i int) Lit {
	return c.lits[i]
}

// swap swaps the ith and jth lits from the clause.
func (c *Clause) swap(i, j int) {
	c.lits[i], c.lits[j] = c.lits[j], c.lits[i]
}

// CNF returns a DIMACS CNF representation of the clause.
func (c *Clause) CNF() string {
	res := ""
	for _, lit := range c.lits {
		res += fmt.Sprintf("%d ", lit.Int())
	}
	return fmt.Sprintf("%s0", res)
}
