// pkg/api/kmers_v1.go
package api

// KmerCountV1 is one ranked k-mer.
type KmerCountV1 struct {
	Kmer  string `json:"kmer"`
	Count uint32 `json:"count"`
}

// KmerTableV1 is the stable JSON/JSONL schema for a k-mer count table.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type KmerTableV1 struct {
	SequenceID  string        `json:"sequence_id"`
	K           int           `json:"k"`
	Canonical   bool          `json:"canonical"`
	TotalValid  uint64        `json:"total_valid"`
	UniqueCount uint32        `json:"unique_count"`
	Entropy     float64       `json:"entropy_bits"`
	Top         []KmerCountV1 `json:"top,omitempty"`
}

// ComparisonV1 is the schema for a pairwise k-mer comparison.
type ComparisonV1 struct {
	SequenceA               string   `json:"sequence_a"`
	SequenceB               string   `json:"sequence_b"`
	K                       int      `json:"k"`
	UniqueKmersA            int      `json:"unique_kmers_a"`
	UniqueKmersB            int      `json:"unique_kmers_b"`
	SharedKmers             int      `json:"shared_kmers"`
	JaccardIndex            float64  `json:"jaccard_index"`
	ContainmentAInB         float64  `json:"containment_a_in_b"`
	ContainmentBInA         float64  `json:"containment_b_in_a"`
	CosineSimilarity        float64  `json:"cosine_similarity"`
	BrayCurtisDissimilarity float64  `json:"bray_curtis_dissimilarity"`
	JensenShannon           *float64 `json:"jensen_shannon,omitempty"`
	MinHashJaccard          *float64 `json:"minhash_jaccard,omitempty"`
	MinHashes               int      `json:"minhash_hashes,omitempty"`
}

// ProfileV1 summarises one sequence record.
type ProfileV1 struct {
	SequenceID   string  `json:"sequence_id"`
	Length       int     `json:"length"`
	GCPercent    float64 `json:"gc_percent"`
	K            int     `json:"k"`
	UniqueKmers  uint32  `json:"unique_kmers"`
	KmerEntropy  float64 `json:"kmer_entropy_bits"`
	SkewMinIndex int     `json:"cumulative_skew_min"`
	SkewMaxIndex int     `json:"cumulative_skew_max"`
	SourceFile   string  `json:"source_file,omitempty"`
}
