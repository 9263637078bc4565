// Package sudoku encodes 9x9 sudoku boards as CNF problems and decodes
// solver models back into boards.
// The cell (i,j) holding the digit n+1 is represented by the variable
// p(i,j,n) = 81*i + 9*j + n + 1, for i, j, n in [0,9).
package sudoku

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/satkit/satkit/solver"
)

// NbVars is the number of variables of the encoding, one per (cell, digit) pair.
const NbVars = 9 * 9 * 9

// ErrUnsolvable is returned when a board admits no solution.
var ErrUnsolvable = errors.New("board has no solution")

// A Board is a 9x9 sudoku grid. 0 means the cell is blank.
type Board [9][9]int

// p returns the variable stating that cell (i,j) holds the digit n+1.
func p(i, j, n int) int {
	return 81*i + 9*j + n + 1
}

// ParseBoard reads a board as nine lines of nine digits, 0 for a blank.
// Blank lines and spaces between digits are ignored.
func ParseBoard(r io.Reader) (*Board, error) {
	var b Board
	sc := bufio.NewScanner(r)
	i := 0
	for sc.Scan() && i < 9 {
		line := strings.Join(strings.Fields(sc.Text()), "")
		if line == "" {
			continue
		}
		if len(line) != 9 {
			return nil, errors.Errorf("invalid board line %q: expected 9 digits, got %d", line, len(line))
		}
		for j, c := range line {
			if c < '0' || c > '9' {
				return nil, errors.Errorf("invalid character %q in board line %q", c, line)
			}
			b[i][j] = int(c - '0')
		}
		i++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read board")
	}
	if i < 9 {
		return nil, errors.Errorf("incomplete board: expected 9 lines, got %d", i)
	}
	return &b, nil
}

// Clauses returns the CNF encoding of the board: the given cells as unit
// clauses, then for each cell at least one digit and at most one digit,
// and for each row, column and 3x3 box each digit appearing somewhere.
func (b *Board) Clauses() [][]int {
	var db [][]int
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			if b[i][j] != 0 {
				db = append(db, []int{p(i, j, b[i][j]-1)})
			}
		}
	}
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			c := make([]int, 9)
			for n := 0; n < 9; n++ {
				c[n] = p(i, j, n)
			}
			db = append(db, c)
		}
	}
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			for x := 0; x < 8; x++ {
				for y := x + 1; y < 9; y++ {
					db = append(db, []int{-p(i, j, x), -p(i, j, y)})
				}
			}
		}
	}
	for i := 0; i < 9; i++ {
		for n := 0; n < 9; n++ {
			c := make([]int, 9)
			for j := 0; j < 9; j++ {
				c[j] = p(i, j, n)
			}
			db = append(db, c)
		}
	}
	for j := 0; j < 9; j++ {
		for n := 0; n < 9; n++ {
			c := make([]int, 9)
			for i := 0; i < 9; i++ {
				c[i] = p(i, j, n)
			}
			db = append(db, c)
		}
	}
	for r := 0; r < 3; r++ {
		for s := 0; s < 3; s++ {
			for n := 0; n < 9; n++ {
				var c []int
				for i := 0; i < 3; i++ {
					for j := 0; j < 3; j++ {
						c = append(c, p(3*r+i, 3*s+j, n))
					}
				}
				db = append(db, c)
			}
		}
	}
	return db
}

// Dimacs writes the board's CNF encoding on w in the DIMACS format.
func (b *Board) Dimacs(w io.Writer) error {
	db := b.Clauses()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", NbVars, len(db))
	for _, c := range db {
		for _, lit := range c {
			fmt.Fprintf(bw, "%d ", lit)
		}
		fmt.Fprintf(bw, "0\n")
	}
	return errors.Wrap(bw.Flush(), "could not write DIMACS output")
}

// Decode fills a copy of the board from the positive literals of a model.
// Negative and out-of-range literals are ignored.
func (b *Board) Decode(lits []int) *Board {
	res := *b
	for _, lit := range lits {
		if lit <= 0 || lit > NbVars {
			continue
		}
		lit--
		i := lit / 81
		j := (lit % 81) / 9
		n := lit % 9
		res[i][j] = n + 1
	}
	return &res
}

// Solve solves the board in process and returns the completed grid.
// It returns ErrUnsolvable when the constraints cannot be met.
func (b *Board) Solve() (*Board, error) {
	s := solver.New(solver.ParseSlice(b.Clauses()))
	if s.Solve() != solver.Sat {
		return nil, ErrUnsolvable
	}
	model := s.Model()
	lits := make([]int, 0, NbVars)
	for v, val := range model {
		if val {
			lits = append(lits, v+1)
		}
	}
	return b.Decode(lits), nil
}

func (b *Board) String() string {
	var sb strings.Builder
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			fmt.Fprintf(&sb, "%d", b[i][j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
