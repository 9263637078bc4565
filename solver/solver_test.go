package solver

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrivialUnsat(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {-1}})
	s := New(pb)
	require.Equal(t, Unsat, s.Solve())
}

func TestSimpleSat(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2}, {-1, 2}})
	s := New(pb)
	require.Equal(t, Sat, s.Solve())
	require.True(t, s.CheckModel())
	model := s.Model()
	assert.True(t, model[1], "both clauses force variable 2 to true")
}

func TestPropagationChain(t *testing.T) {
	pb := ParseSlice([][]int{{1, -2}, {2, -3}, {3}})
	s := New(pb)
	require.Equal(t, Sat, s.Solve())
	require.True(t, s.CheckModel())
	model := s.Model()
	assert.True(t, model[0])
	assert.True(t, model[1])
	assert.True(t, model[2])
}

func TestExactlyOne(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2, 3}, {-1, -2}, {-1, -3}, {-2, -3}})
	s := New(pb)
	require.Equal(t, Sat, s.Solve())
	require.True(t, s.CheckModel())
	model := s.Model()
	nbTrue := 0
	for v := 0; v < 3; v++ {
		if model[v] {
			nbTrue++
		}
	}
	assert.Equal(t, 1, nbTrue, "exactly one of the three variables must be true")
}

func TestKnownSat(t *testing.T) {
	cnf := [][]int{{1}, {-2, 3}, {-2, 4}, {-5, 3}, {-5, 6}, {-7, 3}, {-7, 8}, {-9, 10}, {-9, 4}, {-1, 10}, {-1, 6}, {3, 10}, {-3, -10}, {4, 6, 8}}
	s := New(ParseSlice(cnf))
	require.Equal(t, Sat, s.Solve())
	require.True(t, s.CheckModel())
}

// pigeonhole encodes the pigeonhole principle with nbPigeons pigeons and
// nbHoles holes: each pigeon sits in a hole, no two pigeons share one.
// It is UNSAT whenever nbPigeons > nbHoles.
func pigeonhole(nbPigeons, nbHoles int) [][]int {
	p := func(i, j int) int { return i*nbHoles + j + 1 }
	var cnf [][]int
	for i := 0; i < nbPigeons; i++ {
		clause := make([]int, nbHoles)
		for j := 0; j < nbHoles; j++ {
			clause[j] = p(i, j)
		}
		cnf = append(cnf, clause)
	}
	for j := 0; j < nbHoles; j++ {
		for i := 0; i < nbPigeons; i++ {
			for i2 := i + 1; i2 < nbPigeons; i2++ {
				cnf = append(cnf, []int{-p(i, j), -p(i2, j)})
			}
		}
	}
	return cnf
}

func TestPigeonhole(t *testing.T) {
	for _, nbHoles := range []int{2, 3, 4} {
		s := New(ParseSlice(pigeonhole(nbHoles+1, nbHoles)))
		require.Equal(t, Unsat, s.Solve(), "PHP(%d,%d) must be UNSAT", nbHoles+1, nbHoles)
	}
	s := New(ParseSlice(pigeonhole(3, 3)))
	require.Equal(t, Sat, s.Solve())
	require.True(t, s.CheckModel())
}

func TestTautologyDropped(t *testing.T) {
	pb := ParseSlice([][]int{{1, -1}, {2, -2, 3}})
	assert.Empty(t, pb.Clauses)
	assert.Empty(t, pb.Units)
	s := New(pb)
	require.Equal(t, Sat, s.Solve())
}

func TestDuplicateLitsCollapsed(t *testing.T) {
	pb := ParseSlice([][]int{{1, 1, 2}, {3, 3}})
	require.Len(t, pb.Clauses, 1)
	assert.Equal(t, 2, pb.Clauses[0].Len())
	require.Len(t, pb.Units, 1)
	assert.Equal(t, int32(3), pb.Units[0].Int())
}

func TestEmptyClauseUnsat(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2}, {}})
	require.Equal(t, Unsat, pb.Status)
	require.Equal(t, Unsat, New(pb).Solve())
}

func TestContradictoryUnits(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {2}, {-1}})
	require.Equal(t, Unsat, pb.Status)
}

func TestFirstDecisionIsNegative(t *testing.T) {
	// A single clause over fresh variables: phase saving starts with the
	// phase bit unset, so the first decision must be a negative literal.
	pb := ParseSlice([][]int{{1, 2}})
	s := New(pb)
	require.Equal(t, Sat, s.Solve())
	require.True(t, s.CheckModel())
	model := s.Model()
	assert.False(t, model[0] && model[1], "at least one variable should have been decided negative")
}

func TestPropagateSaturation(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2, 3}, {-1, 2}})
	s := New(pb)
	s.trailLim = append(s.trailLim, len(s.trail))
	s.push(IntToLit(1), nil)
	require.Nil(t, s.propagate())
	// 1 true falsifies -1, so the second clause becomes unit and propagates 2.
	require.Equal(t, 2, len(s.trail))
	assert.Equal(t, int8(1), s.litValue(IntToLit(2)))
	s.backjump(0)
	s.trailLim = append(s.trailLim, len(s.trail))
	s.push(IntToLit(-2), nil)
	require.Nil(t, s.propagate())
	// With 2 false, clause {-1, 2} propagates -1, which in turn makes clause
	// {1, 2, 3} unit and propagates 3.
	for _, l := range s.trail {
		assert.Equal(t, int8(1), s.litValue(l), "every trail literal must be true")
	}
}

func TestConflictAtLevelZero(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {-1, 2}, {-2, -1}})
	s := New(pb)
	require.Equal(t, Unsat, s.Solve())
}

func TestBackjumpRestoresHeap(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2, 3}})
	s := New(pb)
	s.trailLim = append(s.trailLim, len(s.trail))
	s.push(IntToLit(-1), nil)
	s.trailLim = append(s.trailLim, len(s.trail))
	s.push(IntToLit(-2), nil)
	s.backjump(0)
	assert.Equal(t, 0, s.decisionLevel())
	assert.Empty(t, s.trail)
	assert.True(t, s.varQueue.contains(0))
	assert.True(t, s.varQueue.contains(1))
}

func TestOutputModelSat(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {-2}})
	s := New(pb)
	require.Equal(t, Sat, s.Solve())
	var buf bytes.Buffer
	require.NoError(t, s.OutputModel(&buf))
	assert.Equal(t, "s SATISFIABLE\nv 1 -2 0\n", buf.String())
}

func TestOutputModelUnsat(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {-1}})
	s := New(pb)
	require.Equal(t, Unsat, s.Solve())
	var buf bytes.Buffer
	require.NoError(t, s.OutputModel(&buf))
	assert.Equal(t, "s UNSATISFIABLE\n", buf.String())
}

func TestCertificateStub(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {-1}})
	s := New(pb)
	var cert bytes.Buffer
	s.CertWriter = &cert
	require.Equal(t, Unsat, s.Solve())
	assert.Equal(t, "0\n", cert.String())
}

func TestIndependentSolvers(t *testing.T) {
	// Two solvers over the same clause slices must not share state.
	cnf := [][]int{{1, 2, 3}, {-1, -2}, {-1, -3}, {-2, -3}}
	s1 := New(ParseSlice(cnf))
	s2 := New(ParseSlice(cnf))
	require.Equal(t, Sat, s1.Solve())
	require.Equal(t, Sat, s2.Solve())
	assert.Equal(t, s1.Model(), s2.Model(), "identical fresh solvers must behave deterministically")
}

func BenchmarkSolverPigeonhole(b *testing.B) {
	cnf := pigeonhole(7, 6)
	for i := 0; i < b.N; i++ {
		s := New(ParseSlice(cnf))
		s.Solve()
	}
}

func TestReduceKeepsLockedClauses(t *testing.T) {
	// Force a reduce by shrinking the budget, then check that every
	// variable's reason clause survived.
	cnf := pigeonhole(5, 4)
	pb := ParseSlice(cnf)
	s := New(pb)
	s.dbLimit = float64(len(s.wl.db))
	require.Equal(t, Unsat, s.Solve())
	for v := 0; v < s.nbVars; v++ {
		if r := s.reason[v]; r != nil {
			found := false
			for _, c := range s.wl.db {
				if c == r {
					found = true
					break
				}
			}
			assert.True(t, found, "reason clause of variable %d was evicted", v+1)
		}
	}
}
