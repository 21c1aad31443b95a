// pkg/api/structure_v1.go
package api

// BondListV1 is the stable schema for detected bonds. Bonds holds [i, j]
// atom index pairs with i < j in ascending order.
type BondListV1 struct {
	Title     string      `json:"title,omitempty"`
	AtomCount int         `json:"atom_count"`
	BondCount int         `json:"bond_count"`
	Bonds     [][2]uint32 `json:"bonds"`
}
