package cli

import (
	"github.com/spf13/cobra"

	"seqkernel/core/grid"
	"seqkernel/core/kernel"
	"seqkernel/internal/dispatch"
	"seqkernel/internal/output"
	"seqkernel/internal/pretty"
	"seqkernel/pkg/api"
)

// gridResult carries the wire form of a grid and its text rendering, both
// taken while the kernel still owned the cells.
type gridResult struct {
	api.GridV1
	rendered string
}

// NewGridCommand creates the grid command.
func NewGridCommand(opts *RootOptions) *cobra.Command {
	var (
		id         string
		start      int
		cols, nRow int
		modeName   string
		frame      int
		cells      bool
	)
	cmd := &cobra.Command{
		Use:   "grid [FASTA...]",
		Short: "Lay out a viewport of one record as bases, amino acids or both",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("cols") {
				cols = opts.cfg.Grid.Cols
			}
			if !cmd.Flags().Changed("rows") {
				nRow = opts.cfg.Grid.Rows
			}
			mode, err := grid.ParseMode(modeName)
			if err != nil {
				return WrapExitError(ExitUsage, "--mode", err)
			}
			recs, err := readRecords(cmd.Context(), opts, inputs(args))
			if err != nil {
				return err
			}
			rec, err := pick(recs, id)
			if err != nil {
				return err
			}
			v, err := dispatch.Call(cmd.Context(), opts.pool, "grid", func(kn *kernel.Kernel) (v gridResult, err error) {
				h, err := kn.BuildGrid(rec.Seq, start, cols, nRow, mode, frame)
				if err != nil {
					return v, err
				}
				defer release(kn, h, &err)
				g, err := kn.Grid(h)
				if err != nil {
					return v, err
				}
				return gridResult{
					GridV1:   output.ToAPIGrid(rec.ID, g, cells),
					rendered: pretty.RenderGrid(rec.ID, g, pretty.DefaultOptions),
				}, nil
			})
			if err != nil {
				return err
			}
			return emit(cmd, opts, gridSpec, []gridResult{v})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "record to show (default: the first) []")
	cmd.Flags().IntVar(&start, "start", 0, "0-based index of the first base shown; may be negative [0]")
	cmd.Flags().IntVar(&cols, "cols", 60, "cells per row (default from config) [60]")
	cmd.Flags().IntVar(&nRow, "rows", 10, "logical rows (default from config) [10]")
	cmd.Flags().StringVar(&modeName, "mode", "dna", "layout: dna | aa | dual [dna]")
	cmd.Flags().IntVar(&frame, "frame", 0, "reading frame 0..2 [0]")
	cmd.Flags().BoolVar(&cells, "cells", false, "include per-cell detail in json output [false]")
	return cmd
}
