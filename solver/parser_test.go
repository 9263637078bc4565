package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCNF(t *testing.T) {
	input := "c a comment\nc another one\np cnf 3 3\n1 -2 0\n2 -3 0\n3 0\n"
	pb, err := ParseCNF(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, pb.NbVars)
	assert.Len(t, pb.Clauses, 2)
	require.Len(t, pb.Units, 1)
	assert.Equal(t, int32(3), pb.Units[0].Int())
}

func TestParseCNFNoTrailingNewline(t *testing.T) {
	pb, err := ParseCNF(strings.NewReader("p cnf 2 1\n1 2 0"))
	require.NoError(t, err)
	assert.Len(t, pb.Clauses, 1)
}

func TestParseCNFSeveralClausesPerLine(t *testing.T) {
	pb, err := ParseCNF(strings.NewReader("p cnf 4 2\n1 2 0 3 4 0\n"))
	require.NoError(t, err)
	assert.Len(t, pb.Clauses, 2)
}

func TestParseCNFTrivialUnsat(t *testing.T) {
	pb, err := ParseCNF(strings.NewReader("p cnf 1 2\n1 0\n-1 0\n"))
	require.NoError(t, err)
	assert.Equal(t, Unsat, pb.Status)
}

func TestParseCNFErrors(t *testing.T) {
	for name, input := range map[string]string{
		"no header":         "1 2 0\n",
		"bad header":        "p dnf 2 1\n1 2 0\n",
		"nbvars not an int": "p cnf two 1\n1 2 0\n",
		"unfinished clause": "p cnf 2 1\n1 2\n",
		"not a digit":       "p cnf 2 1\n1 x 0\n",
		"out of range":      "p cnf 2 1\n1 3 0\n",
		"empty input":       "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCNF(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestParseCNFRoundTrip(t *testing.T) {
	pb, err := ParseCNF(strings.NewReader("p cnf 3 2\n1 -2 0\n-1 2 3 0\n"))
	require.NoError(t, err)
	pb2, err := ParseCNF(strings.NewReader(pb.CNF()))
	require.NoError(t, err)
	assert.Equal(t, pb.NbVars, pb2.NbVars)
	require.Len(t, pb2.Clauses, len(pb.Clauses))
	for i := range pb.Clauses {
		assert.Equal(t, pb.Clauses[i].CNF(), pb2.Clauses[i].CNF())
	}
}
