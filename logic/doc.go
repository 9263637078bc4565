/*
Package logic deals with propositional formulas over named atoms.
Formulas can be built programmatically with the And, Or, Not, Implies,
Equiv and Atom constructors, or parsed from an infix syntax:

	~(A & B) <-> (~A | ~B)

Operator precedence is, from highest to lowest, "~", "&", "|", "->" and
"<->". Implication is right-associative, equivalence does not chain.

A formula is translated to CNF with the Tseitin transformation: each
non-leaf subformula gets a fresh variable constrained to be equivalent to
it, so the encoding stays linear in the size of the formula. The
resulting CNF can be written in the DIMACS format for any SAT solver, or
handed directly to this module's solver:

	f, err := logic.Parse(strings.NewReader("A & (A -> B)"))
	if err != nil { ... }
	model := logic.Solve(f) // map[A:true B:true]
*/
package logic
