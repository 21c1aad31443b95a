package pipeline

import (
	"seqkernel/core/kerr"
	"seqkernel/core/kernel"
	"seqkernel/core/scan"
	"seqkernel/pkg/api"
)

// ProfileOptions parameterise Profile.
type ProfileOptions struct {
	K      int // k-mer size for entropy and uniqueness (<= kmer.MaxK)
	Window int // GC-skew window
	Step   int
}

// Profile summarises one record: length, GC content, k-mer diversity and
// the extremes of its cumulative GC skew. Records shorter than K report
// zero k-mer statistics; records shorter than Window report -1 extremes.
func Profile(opts ProfileOptions) Work[api.ProfileV1] {
	return func(k *kernel.Kernel, it Item) (api.ProfileV1, error) {
		seq := it.Record.Seq
		p := api.ProfileV1{
			SequenceID:   it.Record.ID,
			Length:       len(seq),
			K:            opts.K,
			SkewMinIndex: -1,
			SkewMaxIndex: -1,
			SourceFile:   it.File,
		}
		var err error
		if p.GCPercent, err = k.GCContent(seq); err != nil {
			return p, err
		}

		h, err := k.CountKmers(seq, opts.K)
		switch {
		case kerr.KindOf(err) == kerr.KindSequenceTooShort:
		case err != nil:
			return p, err
		default:
			tb, terr := k.KmerTable(h)
			if terr == nil {
				p.UniqueKmers = tb.UniqueCount
				p.KmerEntropy, terr = k.KmerEntropy(h)
			}
			if rerr := k.Release(h); terr == nil {
				terr = rerr
			}
			if terr != nil {
				return p, terr
			}
		}

		skew, err := k.CumulativeGCSkew(seq, opts.Window, opts.Step)
		if err != nil {
			return p, err
		}
		p.SkewMinIndex, p.SkewMaxIndex = scan.Extremes(skew)
		return p, nil
	}
}
