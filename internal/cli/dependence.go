package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"seqkernel/core/fasta"
	"seqkernel/core/kernel"
	"seqkernel/core/stats"
	"seqkernel/internal/dispatch"
	"seqkernel/internal/output"
	"seqkernel/pkg/api"
)

// readColumns pulls two numeric columns (1-based) out of whitespace
// separated text. Blank and '#' lines are skipped; a first line that does
// not parse is taken as a header.
func readColumns(r io.Reader, xCol, yCol int) (x, y []float64, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line, header := 0, false
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		f := strings.Fields(text)
		if len(f) < max(xCol, yCol) {
			return nil, nil, NewExitError(ExitUsage, fmt.Sprintf("line %d: %d columns, need %d", line, len(f), max(xCol, yCol)))
		}
		a, aErr := strconv.ParseFloat(f[xCol-1], 64)
		b, bErr := strconv.ParseFloat(f[yCol-1], 64)
		if aErr != nil || bErr != nil {
			if !header && len(x) == 0 {
				header = true
				continue
			}
			return nil, nil, NewExitError(ExitUsage, fmt.Sprintf("line %d: not a number pair: %q", line, text))
		}
		x = append(x, a)
		y = append(y, b)
	}
	return x, y, sc.Err()
}

// NewDependenceCommand creates the dependence command.
func NewDependenceCommand(opts *RootOptions) *cobra.Command {
	var xCol, yCol, maxPoints int
	cmd := &cobra.Command{
		Use:   "dependence [TSV]",
		Short: "Hoeffding's D between two numeric columns",
		Long: "Reads two whitespace separated numeric columns ('-' or no argument for stdin)\n" +
			"and reports Hoeffding's D. Inputs above --max-points are thinned evenly first.",
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("max-points") {
				maxPoints = opts.cfg.Hoeffding.MaxPoints
			}
			if xCol < 1 || yCol < 1 {
				return NewExitError(ExitUsage, "--x and --y must be ≥ 1")
			}
			rc, err := fasta.Open(inputs(args)[0])
			if err != nil {
				return err
			}
			x, y, err := readColumns(rc, xCol, yCol)
			_ = rc.Close()
			if err != nil {
				return err
			}
			n := len(x)
			xs, ys := stats.Subsample(x, y, maxPoints)
			if len(xs) < n {
				opts.log.Info("input thinned", "points", n, "kept", len(xs))
			}
			v, err := dispatch.Call(cmd.Context(), opts.pool, "hoeffding", func(kn *kernel.Kernel) (v api.HoeffdingV1, err error) {
				h, err := kn.HoeffdingsD(xs, ys)
				if err != nil {
					return v, err
				}
				defer release(kn, h, &err)
				d, err := kn.Hoeffding(h)
				if err != nil {
					return v, err
				}
				return output.ToAPIHoeffding(d, n), nil
			})
			if err != nil {
				return err
			}
			return emit(cmd, opts, hoeffdingSpec, []api.HoeffdingV1{v})
		},
	}
	cmd.Flags().IntVar(&xCol, "x", 1, "1-based column holding x [1]")
	cmd.Flags().IntVar(&yCol, "y", 2, "1-based column holding y [2]")
	cmd.Flags().IntVar(&maxPoints, "max-points", 10000, "thin inputs above this many points (default from config) [10000]")
	return cmd
}
