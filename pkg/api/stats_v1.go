// pkg/api/stats_v1.go
package api

// PCAV1 is the stable schema for a PCA fit. Components[c] is the unit
// loading vector of component c; Scores[i] projects sample i.
type PCAV1 struct {
	K           int         `json:"k,omitempty"`
	Samples     []string    `json:"samples"`
	NFeatures   int         `json:"n_features"`
	Eigenvalues []float64   `json:"eigenvalues"`
	Components  [][]float64 `json:"components"`
	Scores      [][]float64 `json:"scores,omitempty"`
	Iterations  []int       `json:"iterations"`
	Converged   []bool      `json:"converged"`
}

// HoeffdingV1 reports Hoeffding's D on the (possibly thinned) input.
type HoeffdingV1 struct {
	D          float64 `json:"d"`
	N          int     `json:"n"`
	InputCount int     `json:"input_count,omitempty"`
}

// SkewV1 lists GC skew per window.
type SkewV1 struct {
	SequenceID string    `json:"sequence_id"`
	Window     int       `json:"window"`
	Step       int       `json:"step"`
	Cumulative bool      `json:"cumulative"`
	Values     []float64 `json:"values"`
	MinIndex   int       `json:"min_index"`
	MaxIndex   int       `json:"max_index"`
}

// PalindromeV1 is one inverted repeat. End is exclusive.
type PalindromeV1 struct {
	SequenceID string `json:"sequence_id"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	ArmLength  int    `json:"arm_length"`
	Gap        int    `json:"gap"`
	Seq        string `json:"seq,omitempty"`
}

// TandemRepeatV1 is one tandem repeat run. End is exclusive.
type TandemRepeatV1 struct {
	SequenceID string `json:"sequence_id"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Unit       string `json:"unit"`
	Copies     int    `json:"copies"`
}

// ScalarV1 carries a single named measurement (entropy, distance, GC%).
type ScalarV1 struct {
	Name       string  `json:"name"`
	SequenceID string  `json:"sequence_id,omitempty"`
	Value      float64 `json:"value"`
}

// SequenceV1 carries a transformed sequence (encoding, reverse complement).
type SequenceV1 struct {
	SequenceID string `json:"sequence_id"`
	Seq        string `json:"seq,omitempty"`
	Codes      []int  `json:"codes,omitempty"`
}

// ErrorV1 is emitted on stderr in json modes when a command fails.
type ErrorV1 struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	JobID   string `json:"job_id,omitempty"`
}
