/*
Package solver gives access to a CDCL SAT solver.
Its input can be either a DIMACS CNF stream or a solver.Problem object
containing the set of clauses to be solved.

The solver will then indicate whether the problem is satisfiable or not.
In the former case, it will be able to provide a model, i.e a set of
bindings for all variables that makes the problem true.

# Describing a problem

A problem can be described in two ways:

1. parse a DIMACS stream (io.Reader). If the io.Reader produces the
following content:

	p cnf 6 7
	1 2 3 0
	4 5 6 0
	-1 -4 0
	-2 -5 0
	-3 -6 0
	-1 -3 0
	-4 -6 0

the programmer can create the Problem by doing:

	pb, err := solver.ParseCNF(f)

2. create the equivalent list of lists of literals. The problem above can
be created programmatically this way:

	clauses := [][]int{
		{1, 2, 3},
		{4, 5, 6},
		{-1, -4},
		{-2, -5},
		{-3, -6},
		{-1, -3},
		{-4, -6},
	}
	pb := solver.ParseSlice(clauses)

At load time, duplicate literals are collapsed, tautological clauses are
dropped and unit clauses are turned into level-0 facts. A problem holding
an empty clause or two contradictory unit clauses is Unsat without any
search.

# Solving a problem

To solve a problem, one creates a solver with said problem.
The Solve() method then runs the CDCL search, i.e unit propagation with
two watched literals per clause, first-UIP clause learning,
non-chronological backjumping, activity-driven branching and periodic
reduction of the learnt clause database. It returns the corresponding
status, Sat or Unsat:

	s := solver.New(pb)
	status := s.Solve()

If the status was Sat, the programmer can ask for a model, i.e an
assignment that makes all the clauses of the problem true:

	m := s.Model()

Alternatively, the result and model (if any) can be written in the SAT
competition format:

	s.OutputModel(os.Stdout)

For the problem described above, the output can be:

	s SATISFIABLE
	v -1 2 -3 4 -5 -6 0

A solver is a single-use, single-goroutine object: make a fresh one for
each problem.
*/
package solver
