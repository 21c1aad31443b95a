package output

// TSV headers are the single source of truth for text outputs; every
// writer uses them.
const (
	KmerHeader       = "sequence_id\tkmer\tcount"
	ComparisonHeader = "sequence_a\tsequence_b\tk\tunique_a\tunique_b\tshared\tjaccard\tcontainment_a_in_b\tcontainment_b_in_a\tcosine\tbray_curtis\tjensen_shannon\tminhash_jaccard"
	ProfileHeader    = "source_file\tsequence_id\tlength\tgc_percent\tk\tunique_kmers\tkmer_entropy_bits\tskew_min\tskew_max"
	BondHeader       = "i\tj"
	PalindromeHeader = "sequence_id\tstart\tend\tarm_length\tgap\tseq"
	RepeatHeader     = "sequence_id\tstart\tend\tunit\tcopies"
	SkewHeader       = "sequence_id\twindow_start\tvalue"
	PCAHeader        = "sample\tcomponent\tscore"
	ScalarHeader     = "name\tsequence_id\tvalue"
	SequenceHeader   = "sequence_id\tseq"
	GridHeader       = "sequence_id\trow\tline"
	HoeffdingHeader  = "d\tn\tinput_count"
)
