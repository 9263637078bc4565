package logic

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/satkit/satkit/solver"
)

// A CNF is the result of the Tseitin encoding of a formula: a set of
// clauses over integer variables, plus the mapping from atom names to
// their DIMACS variable.
// Variables beyond the named ones are fresh equivalence variables, one
// per non-leaf subformula.
type CNF struct {
	NbVars  int
	Clauses [][]int
	Vars    map[string]int
}

type encoder struct {
	cnf CNF
}

func (e *encoder) fresh() int {
	e.cnf.NbVars++
	return e.cnf.NbVars
}

func (e *encoder) emit(clauses ...[]int) {
	e.cnf.Clauses = append(e.cnf.Clauses, clauses...)
}

// walk returns the variable equivalent to f, introducing a fresh variable
// r and the clauses for "r <-> op(p, q)" on each non-leaf subformula.
func (e *encoder) walk(f Formula) int {
	switch f := f.(type) {
	case atom:
		if idx, ok := e.cnf.Vars[string(f)]; ok {
			return idx
		}
		idx := e.fresh()
		e.cnf.Vars[string(f)] = idx
		return idx
	case not:
		p := e.walk(f[0])
		r := e.fresh()
		e.emit([]int{r, p}, []int{-r, -p})
		return r
	case and:
		p, q := e.walk(f.p), e.walk(f.q)
		r := e.fresh()
		e.emit([]int{-r, p}, []int{-r, q}, []int{r, -p, -q})
		return r
	case or:
		p, q := e.walk(f.p), e.walk(f.q)
		r := e.fresh()
		e.emit([]int{r, -p}, []int{r, -q}, []int{-r, p, q})
		return r
	case implies:
		p, q := e.walk(f.p), e.walk(f.q)
		r := e.fresh()
		e.emit([]int{r, p}, []int{r, -q}, []int{-r, -p, q})
		return r
	case equiv:
		p, q := e.walk(f.p), e.walk(f.q)
		r := e.fresh()
		e.emit([]int{-r, p, -q}, []int{-r, -p, q}, []int{r, -p, -q}, []int{r, p, q})
		return r
	default:
		panic("invalid formula type")
	}
}

// Encode translates f into an equisatisfiable CNF using the Tseitin
// transformation. A final unit clause asserts the root subformula.
func Encode(f Formula) *CNF {
	e := encoder{cnf: CNF{Vars: map[string]int{}}}
	root := e.walk(f)
	e.emit([]int{root})
	return &e.cnf
}

// Dimacs writes the DIMACS CNF version of the encoded formula on w.
// The original names of atoms are associated with their DIMACS integer
// counterparts in comments between the header and the clauses: if the
// atom "a" was given the index 1, there will be a comment line "c a=1".
func (c *CNF) Dimacs(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", c.NbVars, len(c.Clauses)); err != nil {
		return errors.Wrap(err, "could not write DIMACS output")
	}
	names := make([]string, 0, len(c.Vars))
	for name := range c.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "c %s=%d\n", name, c.Vars[name]); err != nil {
			return errors.Wrap(err, "could not write DIMACS output")
		}
	}
	for _, clause := range c.Clauses {
		for _, lit := range clause {
			if _, err := fmt.Fprintf(w, "%d ", lit); err != nil {
				return errors.Wrap(err, "could not write DIMACS output")
			}
		}
		if _, err := fmt.Fprintf(w, "0\n"); err != nil {
			return errors.Wrap(err, "could not write DIMACS output")
		}
	}
	return nil
}

// Solve encodes f and solves it.
// It returns a model associating each atom name with its binding, or nil
// if the formula is unsatisfiable.
func Solve(f Formula) map[string]bool {
	cnf := Encode(f)
	s := solver.New(solver.ParseSlice(cnf.Clauses))
	if s.Solve() != solver.Sat {
		return nil
	}
	model := s.Model()
	res := make(map[string]bool, len(cnf.Vars))
	for name, idx := range cnf.Vars {
		res[name] = model[idx-1]
	}
	return res
}
