// pkg/api/grid_v1.go
package api

// GridCellV1 is one viewport cell. Empty cells carry only "empty": true.
type GridCellV1 struct {
	Char  string `json:"char,omitempty"`
	Codon string `json:"codon,omitempty"`
	Pos   int    `json:"pos"`
	Phase int    `json:"phase"`
	Start bool   `json:"start,omitempty"`
	Stop  bool   `json:"stop,omitempty"`
	Empty bool   `json:"empty,omitempty"`
}

// GridV1 is the stable schema for a viewport grid. Lines holds one string
// per physical row; Cells is row-major and present only when requested.
type GridV1 struct {
	SequenceID string       `json:"sequence_id"`
	Mode       string       `json:"mode"`
	Frame      int          `json:"frame"`
	Start      int          `json:"start"`
	Rows       int          `json:"rows"`
	Cols       int          `json:"cols"`
	Lines      []string     `json:"lines"`
	Cells      []GridCellV1 `json:"cells,omitempty"`
}
