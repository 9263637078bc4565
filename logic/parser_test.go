package logic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) Formula {
	t.Helper()
	f, err := Parse(strings.NewReader(input))
	require.NoError(t, err, "could not parse %q", input)
	return f
}

func TestParseString(t *testing.T) {
	for input, want := range map[string]string{
		"A":                 "A",
		"~A":                "~A",
		"~~A":               "~~A",
		"A & B":             "(A & B)",
		"A & B & C":         "((A & B) & C)",
		"A | B & C":         "(A | (B & C))",
		"~A | ~B":           "(~A | ~B)",
		"A -> B":            "(A -> B)",
		"A -> B -> C":       "(A -> (B -> C))",
		"A & B -> C":        "((A & B) -> C)",
		"A <-> B":           "(A <-> B)",
		"(A | B) & C":       "((A | B) & C)",
		"~(A & B)":          "~(A & B)",
		"my_atom & _other":  "(my_atom & _other)",
		"A <-> (B <-> C)":   "(A <-> (B <-> C))",
		"~ (A -> B) <-> ~C": "(~(A -> B) <-> ~C)",
	} {
		assert.Equal(t, want, parse(t, input).String(), "input %q", input)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"A &",
		"& A",
		"A B",
		"(A",
		"A)",
		"A -> ",
		"A - B",
		"A <- B",
		"A <-> B <-> C",
		"A ~ B",
		"A3",
		"5",
		"A ! B",
	} {
		_, err := Parse(strings.NewReader(input))
		assert.Error(t, err, "input %q should not parse", input)
	}
}

func TestImpliesRightAssociative(t *testing.T) {
	f := parse(t, "A -> B -> C")
	g := parse(t, "~A | ~B | C")
	assertEquivalent(t, f, g)
	h := parse(t, "(A -> B) -> C")
	assertNotEquivalent(t, f, h)
}

// assertEquivalent checks that f and g agree under every assignment, by
// asserting that their non-equivalence has no model.
func assertEquivalent(t *testing.T, f, g Formula) {
	t.Helper()
	model := Solve(Not(Equiv(f, g)))
	assert.Nil(t, model, "%s and %s differ under %v", f, g, model)
}

func assertNotEquivalent(t *testing.T, f, g Formula) {
	t.Helper()
	assert.NotNil(t, Solve(Not(Equiv(f, g))), "%s and %s should not be equivalent", f, g)
}
