package logic

// A Formula is any kind of propositional formula, not necessarily in CNF.
type Formula interface {
	// Eval returns the truth value of the formula under the given binding
	// of its atoms. It panics if an atom is missing from the model.
	Eval(model map[string]bool) bool
	String() string
}

// Atom returns a named propositional variable.
func Atom(name string) Formula {
	return atom(name)
}

type atom string

func (a atom) Eval(model map[string]bool) bool {
	b, ok := model[string(a)]
	if !ok {
		panic("model lacks a binding for atom " + string(a))
	}
	return b
}

func (a atom) String() string {
	return string(a)
}

// Not returns the negation of the given formula.
func Not(f Formula) Formula {
	return not{f}
}

type not [1]Formula

func (n not) Eval(model map[string]bool) bool {
	return !n[0].Eval(model)
}

func (n not) String() string {
	return "~" + n[0].String()
}

// And returns the conjunction of the two given formulas.
func And(p, q Formula) Formula {
	return and{p, q}
}

type and struct{ p, q Formula }

func (a and) Eval(model map[string]bool) bool {
	return a.p.Eval(model) && a.q.Eval(model)
}

func (a and) String() string {
	return "(" + a.p.String() + " & " + a.q.String() + ")"
}

// Or returns the disjunction of the two given formulas.
func Or(p, q Formula) Formula {
	return or{p, q}
}

type or struct{ p, q Formula }

func (o or) Eval(model map[string]bool) bool {
	return o.p.Eval(model) || o.q.Eval(model)
}

func (o or) String() string {
	return "(" + o.p.String() + " | " + o.q.String() + ")"
}

// Implies returns the implication of q by p.
func Implies(p, q Formula) Formula {
	return implies{p, q}
}

type implies struct{ p, q Formula }

func (i implies) Eval(model map[string]bool) bool {
	return !i.p.Eval(model) || i.q.Eval(model)
}

func (i implies) String() string {
	return "(" + i.p.String() + " -> " + i.q.String() + ")"
}

// Equiv returns the equivalence of the two given formulas.
func Equiv(p, q Formula) Formula {
	return equiv{p, q}
}

type equiv struct{ p, q Formula }

func (e equiv) Eval(model map[string]bool) bool {
	return e.p.Eval(model) == e.q.Eval(model)
}

func (e equiv) String() string {
	return "(" + e.p.String() + " <-> " + e.q.String() + ")"
}

// Atoms returns the names of all atoms appearing in f, in first-come order.
func Atoms(f Formula) []string {
	var res []string
	seen := map[string]bool{}
	var walk func(Formula)
	walk = func(f Formula) {
		switch f := f.(type) {
		case atom:
			if !seen[string(f)] {
				seen[string(f)] = true
				res = append(res, string(f))
			}
		case not:
			walk(f[0])
		case and:
			walk(f.p)
			walk(f.q)
		case or:
			walk(f.p)
			walk(f.q)
		case implies:
			walk(f.p)
			walk(f.q)
		case equiv:
			walk(f.p)
			walk(f.q)
		}
	}
	walk(f)
	return res
}
