package solver

import "fmt"

// A Problem is a list of clauses and a nb of vars.
// Duplicate literals are collapsed and tautological clauses dropped when
// clauses are added; unit clauses are routed to Units rather than Clauses.
type Problem struct {
	NbVars  int       // Total nb of vars
	Clauses []*Clause // List of non-empty, non-unit clauses
	Units   []Lit     // Unit literals found in the problem, to be asserted at level 0
	Status  Status    // Indet, or Unsat when an empty clause or contradictory units were met
	unitVal []int8    // Level-0 binding implied by Units, for contradiction detection
}

// CNF returns a DIMACS CNF representation of the problem.
func (pb *Problem) CNF() string {
	res := fmt.Sprintf("p cnf %d %d\n", pb.NbVars, len(pb.Clauses)+len(pb.Units))
	for _, unit := range pb.Units {
		res += fmt.Sprintf("%d 0\n", unit.Int())
	}
	for _, clause := range pb.Clauses {
		res += fmt.Sprintf("%s\n", clause.CNF())
	}
	return res
}

// normalizeClause collapses duplicate literals in lits.
// It returns the cleaned-up slice and true when the clause is a tautology,
// i.e it contains both a literal and its negation.
func normalizeClause(lits []Lit) ([]Lit, bool) {
	res := lits[:0]
	for _, l := range lits {
		dup := false
		for _, l2 := range res {
			if l2 == l {
				dup = true
				break
			}
			if l2 == l.Negation() {
				return nil, true
			}
		}
		if !dup {
			res = append(res, l)
		}
	}
	return res, false
}

// addClause normalizes lits and adds the resulting clause to the problem.
// Empty clauses make the problem Unsat, unit clauses become level-0 facts.
func (pb *Problem) addClause(lits []Lit) {
	lits, taut := normalizeClause(lits)
	if taut {
		return
	}
	switch len(lits) {
	case 0:
		pb.Status = Unsat
	case 1:
		pb.addUnit(lits[0])
	default:
		pb.Clauses = append(pb.Clauses, NewClause(lits))
	}
}

// addUnit records a unit literal, detecting contradictory units.
func (pb *Problem) addUnit(l Lit) {
	v := l.Var()
	val := int8(1)
	if !l.IsPositive() {
		val = -1
	}
	switch pb.unitVal[v] {
	case 0:
		pb.unitVal[v] = val
		pb.Units = append(pb.Units, l)
	case val:
		// Same unit twice, nothing to do.
	default:
		pb.Status = Unsat
	}
}

// grow makes room for nbVars variables.
func (pb *Problem) grow(nbVars int) {
	if nbVars > pb.NbVars {
		pb.NbVars = nbVars
	}
	for len(pb.unitVal) < pb.NbVars {
		pb.unitVal = append(pb.unitVal, 0)
	}
}

// ParseSlice parses a slice of slices of CNF literals and returns the
// equivalent problem. The argument is supposed to be a well-formed CNF:
// the function panics on null literals.
func ParseSlice(cnf [][]int) *Problem {
	var pb Problem
	for _, line := range cnf {
		lits := make([]Lit, len(line))
		for j, val := range line {
			if val == 0 {
				panic("null literal in clause")
			}
			lits[j] = IntToLit(val)
			if v := int(lits[j].Var()) + 1; v > pb.NbVars {
				pb.grow(v)
			}
		}
		pb.addClause(lits)
	}
	return &pb
}
