package cli

import (
	"github.com/spf13/cobra"

	"seqkernel/core/kernel"
	"seqkernel/internal/output"
	"seqkernel/internal/pipeline"
	"seqkernel/pkg/api"
)

// noMatch maps an empty scan onto the configured exit code.
func noMatch(n, code int) error {
	if n > 0 || code == ExitSuccess {
		return nil
	}
	return &ExitError{Code: code}
}

// NewPalindromesCommand creates the palindromes command.
func NewPalindromesCommand(opts *RootOptions) *cobra.Command {
	var minArm, maxGap, noMatchCode int
	cmd := &cobra.Command{
		Use:   "palindromes [FASTA...]",
		Short: "Find inverted repeats (reverse-complement palindromes with an optional spacer)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("min-arm") {
				minArm = opts.cfg.Scan.MinArm
			}
			if !cmd.Flags().Changed("max-gap") {
				maxGap = opts.cfg.Scan.MaxGap
			}
			n, err := streamRecords(cmd, opts, "palindromes", inputs(args), palindromeSpec,
				func(kn *kernel.Kernel, it pipeline.Item) ([]api.PalindromeV1, error) {
					hits, err := kn.Palindromes(it.Record.Seq, minArm, maxGap)
					if err != nil {
						return nil, err
					}
					out := make([]api.PalindromeV1, len(hits))
					for i, p := range hits {
						out[i] = output.ToAPIPalindrome(it.Record.ID, it.Record.Seq, p)
					}
					return out, nil
				})
			if err != nil {
				return err
			}
			opts.log.Debug("palindromes done", "hits", n)
			return noMatch(n, noMatchCode)
		},
	}
	cmd.Flags().IntVar(&minArm, "min-arm", 6, "minimum arm length (default from config) [6]")
	cmd.Flags().IntVar(&maxGap, "max-gap", 3, "maximum spacer between the arms (default from config) [3]")
	cmd.Flags().IntVar(&noMatchCode, "no-match-exit-code", ExitFailure, "exit code when nothing is found [1]")
	return cmd
}

// NewRepeatsCommand creates the repeats command.
func NewRepeatsCommand(opts *RootOptions) *cobra.Command {
	var minUnit, maxUnit, minCopies, noMatchCode int
	cmd := &cobra.Command{
		Use:   "repeats [FASTA...]",
		Short: "Find tandem repeats of short primitive units",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("min-unit") {
				minUnit = opts.cfg.Scan.MinUnit
			}
			if !cmd.Flags().Changed("max-unit") {
				maxUnit = opts.cfg.Scan.MaxUnit
			}
			if !cmd.Flags().Changed("min-copies") {
				minCopies = opts.cfg.Scan.MinCopies
			}
			n, err := streamRecords(cmd, opts, "repeats", inputs(args), repeatSpec,
				func(kn *kernel.Kernel, it pipeline.Item) ([]api.TandemRepeatV1, error) {
					hits, err := kn.TandemRepeats(it.Record.Seq, minUnit, maxUnit, minCopies)
					if err != nil {
						return nil, err
					}
					out := make([]api.TandemRepeatV1, len(hits))
					for i, r := range hits {
						out[i] = output.ToAPITandemRepeat(it.Record.ID, r)
					}
					return out, nil
				})
			if err != nil {
				return err
			}
			opts.log.Debug("repeats done", "hits", n)
			return noMatch(n, noMatchCode)
		},
	}
	cmd.Flags().IntVar(&minUnit, "min-unit", 1, "shortest repeat unit (default from config) [1]")
	cmd.Flags().IntVar(&maxUnit, "max-unit", 6, "longest repeat unit (default from config) [6]")
	cmd.Flags().IntVar(&minCopies, "min-copies", 3, "minimum number of adjacent copies (default from config) [3]")
	cmd.Flags().IntVar(&noMatchCode, "no-match-exit-code", ExitFailure, "exit code when nothing is found [1]")
	return cmd
}
