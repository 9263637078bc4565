// Command logic translates a propositional formula to DIMACS CNF using
// the Tseitin transformation, or solves it directly.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satkit/satkit/logic"
)

func main() {
	log := logrus.New()
	var (
		solve      bool
		outputPath string
	)
	cmd := &cobra.Command{
		Use:   "logic [input]",
		Short: "Translate a propositional formula to DIMACS CNF, or solve it",
		Long: `Reads an infix propositional formula built from atoms, parentheses and
the operators ~ & | -> <-> and writes its Tseitin CNF encoding in the
DIMACS format. With --solve, the formula is solved in process instead
and the atom bindings are printed.`,
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
			f, err := logic.Parse(input)
			if err != nil {
				return errors.Wrap(err, "could not parse formula")
			}
			if solve {
				return solveFormula(f)
			}
			output := io.Writer(os.Stdout)
			if outputPath != "" {
				out, err := os.Create(outputPath)
				if err != nil {
					return errors.Wrap(err, "could not open output file")
				}
				defer out.Close()
				output = out
			}
			return logic.Encode(f).Dimacs(output)
		},
	}
	cmd.Flags().BoolVar(&solve, "solve", false, "solve the formula instead of printing its encoding")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the DIMACS encoding to `FILE` instead of stdout")
	if err := cmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func solveFormula(f logic.Formula) error {
	model := logic.Solve(f)
	if model == nil {
		fmt.Println("UNSATISFIABLE")
		return nil
	}
	fmt.Println("SATISFIABLE")
	names := make([]string, 0, len(model))
	for name := range model {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s: %t\n", name, model[name])
	}
	return nil
}
