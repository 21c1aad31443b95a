package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"seqkernel/core/fasta"
	"seqkernel/core/kerr"
	"seqkernel/core/kernel"
	"seqkernel/core/kmer"
	"seqkernel/internal/dispatch"
	"seqkernel/internal/output"
	"seqkernel/pkg/api"
)

type recordPair struct{ a, b fasta.Record }

// pairs returns (0,1), or every i<j pair when all is set.
func pairs(recs []fasta.Record, all bool) ([]recordPair, error) {
	if len(recs) < 2 {
		return nil, NewExitError(ExitUsage, fmt.Sprintf("need at least two records, got %d", len(recs)))
	}
	if !all {
		return []recordPair{{recs[0], recs[1]}}, nil
	}
	out := make([]recordPair, 0, len(recs)*(len(recs)-1)/2)
	for i := range recs {
		for j := i + 1; j < len(recs); j++ {
			out = append(out, recordPair{recs[i], recs[j]})
		}
	}
	return out, nil
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(opts *RootOptions) *cobra.Command {
	var (
		k      int
		hashes int
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "compare [FASTA...]",
		Short: "Compare the k-mer content of the first two records (or all pairs)",
		Long: "Exact set metrics (Jaccard, containment, cosine, Bray-Curtis), the Jensen-Shannon\n" +
			"divergence of the k-mer frequencies (k <= 10) and a MinHash Jaccard estimate.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("k") {
				k = opts.cfg.Kmer.DefaultK
			}
			if !cmd.Flags().Changed("hashes") {
				hashes = opts.cfg.Kmer.DefaultHashes
			}
			if hashes < 0 {
				return NewExitError(ExitUsage, "--hashes must be ≥ 0")
			}
			recs, err := readRecords(cmd.Context(), opts, inputs(args))
			if err != nil {
				return err
			}
			ps, err := pairs(recs, all)
			if err != nil {
				return err
			}
			out, err := dispatch.Map(cmd.Context(), opts.pool, "compare", ps, func(kn *kernel.Kernel, p recordPair) (api.ComparisonV1, error) {
				return compareOne(kn, p, k, hashes)
			})
			if err != nil {
				return err
			}
			return emit(cmd, opts, comparisonSpec, out)
		},
	}
	cmd.Flags().IntVar(&k, "k", 4, "k-mer size, 1..32 (default from config) [4]")
	cmd.Flags().IntVar(&hashes, "hashes", 256, "MinHash functions, 0 disables the estimate (default from config) [256]")
	cmd.Flags().BoolVar(&all, "all", false, "compare every pair of records [false]")
	return cmd
}

func compareOne(kn *kernel.Kernel, p recordPair, k, hashes int) (v api.ComparisonV1, err error) {
	h, err := kn.AnalyzeKmers(p.a.Seq, p.b.Seq, k)
	if err != nil {
		return v, err
	}
	c, err := kn.Comparison(h)
	if rErr := kn.Release(h); err == nil {
		err = rErr
	}
	if err != nil {
		return v, err
	}
	v = output.ToAPIComparison(p.a.ID, p.b.ID, c)

	if k <= kmer.MaxK {
		jsd, ok, err := divergence(kn, p, k)
		if err != nil {
			return v, err
		}
		if ok {
			v.JensenShannon = &jsd
		}
	}
	if hashes > 0 {
		mh, err := kn.MinHashJaccard(p.a.Seq, p.b.Seq, k, hashes)
		if err != nil {
			return v, err
		}
		v.MinHashJaccard = &mh
		v.MinHashes = hashes
	}
	return v, nil
}

// divergence compares the dense k-mer tables of both records. ok is false
// when either record is shorter than k.
func divergence(kn *kernel.Kernel, p recordPair, k int) (d float64, ok bool, err error) {
	ha, err := kn.CountKmers(p.a.Seq, k)
	if kerr.KindOf(err) == kerr.KindSequenceTooShort {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	defer release(kn, ha, &err)
	hb, err := kn.CountKmers(p.b.Seq, k)
	if kerr.KindOf(err) == kerr.KindSequenceTooShort {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	defer release(kn, hb, &err)
	d, err = kn.KmerDivergence(ha, hb)
	return d, err == nil, err
}

// NewDistanceCommand creates the distance command.
func NewDistanceCommand(opts *RootOptions) *cobra.Command {
	var (
		literal bool
		all     bool
	)
	cmd := &cobra.Command{
		Use:   "distance [FASTA...] | --seq A B",
		Short: "Levenshtein edit distance between records (or two literal strings)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var recs []fasta.Record
			if literal {
				if len(args) != 2 {
					return NewExitError(ExitUsage, "--seq takes exactly two sequences")
				}
				recs = []fasta.Record{{ID: "a", Seq: []byte(args[0])}, {ID: "b", Seq: []byte(args[1])}}
			} else {
				var err error
				if recs, err = readRecords(cmd.Context(), opts, inputs(args)); err != nil {
					return err
				}
			}
			ps, err := pairs(recs, all)
			if err != nil {
				return err
			}
			out, err := dispatch.Map(cmd.Context(), opts.pool, "distance", ps, func(kn *kernel.Kernel, p recordPair) (api.ScalarV1, error) {
				d, err := kn.Levenshtein(string(p.a.Seq), string(p.b.Seq))
				return api.ScalarV1{Name: "levenshtein", SequenceID: p.a.ID + "/" + p.b.ID, Value: float64(d)}, err
			})
			if err != nil {
				return err
			}
			return emit(cmd, opts, scalarSpec, out)
		},
	}
	cmd.Flags().BoolVar(&literal, "seq", false, "treat the two arguments as sequences, not files [false]")
	cmd.Flags().BoolVar(&all, "all", false, "measure every pair of records [false]")
	return cmd
}

// NewPCACommand creates the pca command.
func NewPCACommand(opts *RootOptions) *cobra.Command {
	var k, components int
	cmd := &cobra.Command{
		Use:   "pca [FASTA...]",
		Short: "Principal components of the records' k-mer frequency profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("k") {
				k = min(opts.cfg.Kmer.DefaultK, 6)
			}
			if !cmd.Flags().Changed("components") {
				components = opts.cfg.PCA.Components
			}
			recs, err := readRecords(cmd.Context(), opts, inputs(args))
			if err != nil {
				return err
			}
			if len(recs) < 2 {
				return NewExitError(ExitUsage, fmt.Sprintf("pca needs at least two records, got %d", len(recs)))
			}
			freqs, err := dispatch.Map(cmd.Context(), opts.pool, "kmer_profile", recs, func(kn *kernel.Kernel, r fasta.Record) (f []float64, err error) {
				h, err := kn.CountKmers(r.Seq, k)
				if kerr.KindOf(err) == kerr.KindSequenceTooShort {
					opts.log.Warn("record shorter than k, using an empty profile", "id", r.ID, "k", k)
					return make([]float64, 1<<(2*uint(k))), nil
				}
				if err != nil {
					return nil, err
				}
				defer release(kn, h, &err)
				t, err := kn.KmerTable(h)
				if err != nil {
					return nil, err
				}
				return t.Frequencies(), nil
			})
			if err != nil {
				return err
			}

			nFeatures := len(freqs[0])
			data := make([]float64, 0, len(recs)*nFeatures)
			labels := make([]string, len(recs))
			for i, f := range freqs {
				data = append(data, f...)
				labels[i] = recs[i].ID
			}
			v, err := dispatch.Call(cmd.Context(), opts.pool, "pca", func(kn *kernel.Kernel) (v api.PCAV1, err error) {
				h, err := kn.PCA(data, len(recs), nFeatures, components, 0, 0)
				if err != nil {
					return v, err
				}
				defer release(kn, h, &err)
				p, err := kn.PCAResult(h)
				if err != nil {
					return v, err
				}
				scores, err := p.Transform(data, len(recs))
				if err != nil {
					return v, err
				}
				return output.ToAPIPCA(labels, k, p, scores), nil
			})
			if err != nil {
				return err
			}
			return emit(cmd, opts, pcaSpec, []api.PCAV1{v})
		},
	}
	cmd.Flags().IntVar(&k, "k", 4, "k-mer size, 1..10 (default from config) [4]")
	cmd.Flags().IntVar(&components, "components", 2, "number of components (default from config) [2]")
	return cmd
}
