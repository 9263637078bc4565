// Command sudoku solves 9x9 sudoku boards by reduction to SAT.
// The board is read as nine lines of nine digits, 0 standing for a blank
// cell. By default the grid is solved in process; with --solver the
// DIMACS encoding is piped to an external SAT solver binary instead.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satkit/satkit/sudoku"
)

func main() {
	log := logrus.New()
	var solverPath string
	cmd := &cobra.Command{
		Use:           "sudoku [input]",
		Short:         "Solve a sudoku board by reduction to SAT",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := io.Reader(os.Stdin)
			if len(args) > 0 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "could not open input file")
				}
				defer f.Close()
				input = f
			}
			b, err := sudoku.ParseBoard(input)
			if err != nil {
				return errors.Wrap(err, "could not read board")
			}
			var res *sudoku.Board
			if solverPath != "" {
				res, err = sudoku.SolveWith(context.Background(), solverPath, b)
			} else {
				res, err = b.Solve()
			}
			if err != nil {
				return err
			}
			fmt.Print(res)
			return nil
		},
	}
	cmd.Flags().StringVar(&solverPath, "solver", "", "pipe the encoding to the SAT solver binary at `PATH` instead of solving in process")
	if err := cmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
