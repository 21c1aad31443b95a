package cli

import (
	"github.com/spf13/cobra"

	"seqkernel/internal/pipeline"
)

// NewProfileCommand creates the profile command.
func NewProfileCommand(opts *RootOptions) *cobra.Command {
	var k, window, step int
	cmd := &cobra.Command{
		Use:   "profile [FASTA...]",
		Short: "Per-record summary: length, GC%, k-mer diversity and cumulative skew extremes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("k") {
				k = min(opts.cfg.Kmer.DefaultK, 10)
			}
			if !cmd.Flags().Changed("window") {
				window = opts.cfg.Scan.Window
			}
			if !cmd.Flags().Changed("step") {
				step = opts.cfg.Scan.Step
			}
			n, err := streamRecords(cmd, opts, "profile", inputs(args), profileSpec,
				single(pipeline.Profile(pipeline.ProfileOptions{K: k, Window: window, Step: step})))
			opts.log.Debug("profile done", "records", n)
			return err
		},
	}
	cmd.Flags().IntVar(&k, "k", 4, "k-mer size, 1..10 (default from config) [4]")
	cmd.Flags().IntVar(&window, "window", 1000, "GC-skew window (default from config) [1000]")
	cmd.Flags().IntVar(&step, "step", 500, "GC-skew step (default from config) [500]")
	return cmd
}
