package sudoku

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// SolveWith solves the board by piping its DIMACS encoding to an external
// SAT solver binary and decoding the model it reports.
// The solver is expected to follow the SAT competition output format: an
// "s SATISFIABLE" or "s UNSATISFIABLE" status line and, on SAT, "v" lines
// holding the model. Cancelling ctx kills the solver process.
func SolveWith(ctx context.Context, path string, b *Board) (*Board, error) {
	cmd := exec.CommandContext(ctx, path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "could not open solver stdin")
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "could not start solver %q", path)
	}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stdin.Close()
		return b.Dimacs(stdin)
	})
	g.Go(func() error {
		err := cmd.Wait()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// SAT solvers exit with 10 on SAT and 20 on UNSAT;
			// the status line disambiguates.
			if code := exitErr.ExitCode(); code == 10 || code == 20 {
				return nil
			}
		}
		return errors.Wrapf(err, "solver %q failed", path)
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	sat, lits, err := ParseSolverOutput(out.String())
	if err != nil {
		return nil, err
	}
	if !sat {
		return nil, ErrUnsolvable
	}
	return b.Decode(lits), nil
}

// ParseSolverOutput extracts the status and model literals from a solver's
// SAT competition formatted output.
func ParseSolverOutput(out string) (sat bool, lits []int, err error) {
	status := ""
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "s "):
			status = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "v "):
			for _, field := range strings.Fields(line[2:]) {
				n, err := strconv.Atoi(field)
				if err != nil {
					return false, nil, errors.Errorf("invalid literal %q in solver output", field)
				}
				if n != 0 {
					lits = append(lits, n)
				}
			}
		}
	}
	switch status {
	case "SATISFIABLE":
		return true, lits, nil
	case "UNSATISFIABLE":
		return false, nil, nil
	case "":
		return false, nil, errors.New("no status line found in solver output")
	default:
		return false, nil, errors.Errorf("unknown solver status %q", status)
	}
}
