package cli

import (
	"github.com/spf13/cobra"

	"seqkernel/core/kernel"
	"seqkernel/core/structure"
	"seqkernel/internal/dispatch"
	"seqkernel/internal/output"
	"seqkernel/pkg/api"
)

// NewBondsCommand creates the bonds command.
func NewBondsCommand(opts *RootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "bonds FILE",
		Short: "Detect covalent bonds in an XYZ or PDB structure",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := structure.ParseFormat(format)
			if err != nil {
				return WrapExitError(ExitUsage, "--structure", err)
			}
			atoms, err := structure.ReadFile(cmd.Context(), args[0], f)
			if err != nil {
				return err
			}
			opts.log.Debug("structure loaded", "file", args[0], "atoms", atoms.Len(), "title", atoms.Title)
			v, err := dispatch.Call(cmd.Context(), opts.pool, "bonds", func(kn *kernel.Kernel) (v api.BondListV1, err error) {
				h, err := kn.DetectBonds(atoms.Positions, atoms.Elements)
				if err != nil {
					return v, err
				}
				defer release(kn, h, &err)
				l, err := kn.Bonds(h)
				if err != nil {
					return v, err
				}
				return output.ToAPIBonds(atoms.Title, atoms.Len(), l), nil
			})
			if err != nil {
				return err
			}
			return emit(cmd, opts, bondSpec, []api.BondListV1{v})
		},
	}
	cmd.Flags().StringVar(&format, "structure", "auto", "input format: auto | xyz | pdb [auto]")
	return cmd
}
