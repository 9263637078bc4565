// Command sat is a CDCL SAT solver.
// It reads a DIMACS CNF problem and reports the result in the SAT
// competition output format, with the usual exit codes: 10 when the
// problem is satisfiable, 20 when it is not, 1 on usage or I/O errors
// and 2 when the final model self-check fails.
package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/satkit/satkit/solver"
)

const (
	exitSat    = 10
	exitUnsat  = 20
	exitUsage  = 1
	exitBroken = 2
)

type options struct {
	quiet    bool
	verbose  bool
	certPath string
}

func addFlags(fs *pflag.FlagSet, opts *options) {
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print results to stdout")
	fs.BoolVar(&opts.verbose, "verbose", false, "log solver statistics to stderr")
	fs.StringVarP(&opts.certPath, "cert", "C", "", "write an UNSAT certificate to `FILE`")
}

func main() {
	log := logrus.New()
	var opts options
	code := exitUsage
	cmd := &cobra.Command{
		Use:           "sat [input] [output]",
		Short:         "A CDCL SAT solver over DIMACS CNF problems",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			code, err = run(log, &opts, args)
			return err
		},
	}
	addFlags(cmd.Flags(), &opts)
	if err := cmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(exitUsage)
	}
	os.Exit(code)
}

func run(log *logrus.Logger, opts *options, args []string) (int, error) {
	if len(args) > 1 && opts.quiet {
		return exitUsage, errors.New("an output file makes no sense with --quiet")
	}
	input := io.Reader(os.Stdin)
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return exitUsage, errors.Wrap(err, "could not open input file")
		}
		defer f.Close()
		input = f
	}
	output := io.Writer(os.Stdout)
	if len(args) > 1 {
		f, err := os.Create(args[1])
		if err != nil {
			return exitUsage, errors.Wrap(err, "could not open output file")
		}
		defer f.Close()
		output = f
	}
	pb, err := solver.ParseCNF(input)
	if err != nil {
		return exitUsage, errors.Wrap(err, "could not parse problem")
	}
	s := solver.New(pb)
	s.Verbose = opts.verbose
	s.Logger = log
	if opts.certPath != "" {
		cert, err := os.Create(opts.certPath)
		if err != nil {
			return exitUsage, errors.Wrap(err, "could not open certificate file")
		}
		defer cert.Close()
		s.CertWriter = cert
	}
	status := s.Solve()
	if status == solver.Sat && !s.CheckModel() {
		log.Error("model broken")
		return exitBroken, nil
	}
	if !opts.quiet {
		if err := s.OutputModel(output); err != nil {
			return exitUsage, errors.Wrap(err, "could not write result")
		}
	}
	if status == solver.Sat {
		return exitSat, nil
	}
	return exitUnsat, nil
}
