package bonds

// Covalent radii in angstroms for the single-letter element symbols a
// structure can carry. Unknown symbols fall back to Params.DefaultRadius.
var defaultRadii = map[byte]float32{
	'H': 0.31,
	'B': 0.84,
	'C': 0.76,
	'N': 0.71,
	'O': 0.66,
	'F': 0.57,
	'P': 1.07,
	'S': 1.05,
}

const (
	DefaultCellSize      float32 = 2.7
	DefaultTolerance     float32 = 1.25
	DefaultRadiusUnknown float32 = 0.77
)

// Params tunes bond detection.
type Params struct {
	CellSize      float32          // spatial hash cell edge
	Tolerance     float32          // multiplier on the summed covalent radii
	DefaultRadius float32          // radius for symbols missing from Radii
	Radii         map[byte]float32 // keyed by upper-case element symbol
}

// DefaultParams returns the built-in constants. The returned Radii map is a
// copy and may be modified.
func DefaultParams() Params {
	r := make(map[byte]float32, len(defaultRadii))
	for k, v := range defaultRadii {
		r[k] = v
	}
	return Params{
		CellSize:      DefaultCellSize,
		Tolerance:     DefaultTolerance,
		DefaultRadius: DefaultRadiusUnknown,
		Radii:         r,
	}
}

// radiusTable flattens Params into a 256-entry lookup so the inner loop
// never touches a map.
func (p Params) radiusTable() *[256]float32 {
	var t [256]float32
	for i := range t {
		t[i] = p.DefaultRadius
	}
	for sym, r := range p.Radii {
		t[sym] = r
		if sym >= 'A' && sym <= 'Z' {
			t[sym|0x20] = r
		}
	}
	return &t
}
