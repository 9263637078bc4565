package solver

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads an int from r.
// 'b' is the last read byte. It can be a space, a '-' or a digit.
// The int can be negated.
// All spaces before the int value are ignored.
// Returns io.EOF when the end of input was reached before any digit;
// an EOF right after the last digit terminates the value silently.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err == io.EOF {
		return res, io.EOF
	}
	if err != nil {
		return res, errors.Wrap(err, "could not read digit")
	}
	neg := 1
	if *b == '-' {
		neg = -1
		*b, err = r.ReadByte()
		if err != nil {
			return 0, errors.Wrap(err, "cannot read int")
		}
	}
	for {
		if *b < '0' || *b > '9' {
			return 0, errors.Errorf("cannot read int: %q is not a digit", *b)
		}
		res = 10*res + int(*b-'0')
		*b, err = r.ReadByte()
		if err == io.EOF || (err == nil && isSpace(*b)) {
			break
		}
		if err != nil {
			return 0, errors.Wrap(err, "cannot read int")
		}
	}
	return res * neg, nil
}

func parseHeader(r *bufio.Reader) (nbVars, nbClauses int, err error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, 0, errors.Wrap(err, "cannot read header")
	}
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "cnf" {
		return 0, 0, errors.Errorf("invalid syntax %q in header", line)
	}
	nbVars, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errors.Errorf("nbvars not an int : %q", fields[1])
	}
	nbClauses, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, errors.Errorf("nbClauses not an int : %q", fields[2])
	}
	return nbVars, nbClauses, nil
}

// ParseCNF parses a DIMACS CNF stream and returns the corresponding Problem.
// Comment lines starting with 'c' are skipped, the "p cnf" header gives the
// number of variables, then each clause is a whitespace-separated list of
// nonzero literals terminated by a 0.
func ParseCNF(f io.Reader) (*Problem, error) {
	r := bufio.NewReader(f)
	var (
		pb        Problem
		sawHeader bool
	)
	b, err := r.ReadByte()
	for err == nil {
		switch {
		case b == 'c': // Ignore comment
			b, err = r.ReadByte()
			for err == nil && b != '\n' {
				b, err = r.ReadByte()
			}
		case b == 'p': // Parse header
			var nbVars int
			nbVars, _, err = parseHeader(r)
			if err != nil {
				return nil, errors.Wrap(err, "cannot parse CNF header")
			}
			pb.grow(nbVars)
			sawHeader = true
		case isSpace(b): // Blank space between clauses
		default:
			if !sawHeader {
				return nil, errors.New("clause found before CNF header")
			}
			lits := make([]Lit, 0, 3)
			for {
				val, errRead := readInt(&b, r)
				if errRead == io.EOF {
					if len(lits) != 0 {
						return nil, errors.New("unfinished clause while EOF found")
					}
					break // Trailing spaces at the end of the file are fine.
				}
				if errRead != nil {
					return nil, errors.Wrap(errRead, "cannot parse clause")
				}
				if val == 0 {
					pb.addClause(lits)
					break
				}
				if val > pb.NbVars || -val > pb.NbVars {
					return nil, errors.Errorf("invalid literal %d for problem with %d vars only", val, pb.NbVars)
				}
				lits = append(lits, IntToLit(val))
			}
		}
		b, err = r.ReadByte()
	}
	if err != io.EOF {
		return nil, err
	}
	if !sawHeader {
		return nil, errors.New("no CNF header found")
	}
	return &pb, nil
}
