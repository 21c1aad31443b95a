// Package config loads the tunable constants of the kernel and the host
// settings from YAML. The embedded default.yaml is always applied first.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"seqkernel/core/bonds"
	"seqkernel/core/grid"
	"seqkernel/core/kernel"
)

// EnvPath names the environment variable consulted when no --config flag
// is given.
const EnvPath = "SEQKERNEL_CONFIG"

// MaxFileSize bounds a user config file.
const MaxFileSize = 1 << 20

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	Bonds     Bonds     `yaml:"bonds"`
	Kmer      Kmer      `yaml:"kmer"`
	PCA       PCA       `yaml:"pca"`
	Hoeffding Hoeffding `yaml:"hoeffding"`
	Grid      Grid      `yaml:"grid"`
	Scan      Scan      `yaml:"scan"`
	Workers   Workers   `yaml:"workers"`
}

type Bonds struct {
	CellSize      float32            `yaml:"cell_size" validate:"gt=0"`
	Tolerance     float32            `yaml:"tolerance" validate:"gt=0"`
	DefaultRadius float32            `yaml:"default_radius" validate:"gt=0"`
	Radii         map[string]float32 `yaml:"radii" validate:"dive,keys,len=1,endkeys,gt=0"`
}

type Kmer struct {
	DefaultK      int    `yaml:"default_k" validate:"min=1,max=32"`
	MinHashSeed   uint64 `yaml:"minhash_seed"`
	DefaultHashes int    `yaml:"default_hashes" validate:"min=1,max=65536"`
	Top           int    `yaml:"top" validate:"min=0"`
	ArenaMaxBytes int    `yaml:"arena_max_bytes" validate:"min=0"`
}

type PCA struct {
	Components    int     `yaml:"components" validate:"min=1"`
	MaxIterations int     `yaml:"max_iterations" validate:"min=1"`
	Tolerance     float64 `yaml:"tolerance" validate:"gt=0,lt=1"`
}

type Hoeffding struct {
	MaxPoints int `yaml:"max_points" validate:"min=5"`
}

type Grid struct {
	AlternativeStarts bool `yaml:"alternative_starts"`
	Cols              int  `yaml:"cols" validate:"min=1"`
	Rows              int  `yaml:"rows" validate:"min=1"`
}

type Scan struct {
	Window    int `yaml:"window" validate:"min=1"`
	Step      int `yaml:"step" validate:"min=1"`
	MinArm    int `yaml:"min_arm" validate:"min=1"`
	MaxGap    int `yaml:"max_gap" validate:"min=0"`
	MinUnit   int `yaml:"min_unit" validate:"min=1"`
	MaxUnit   int `yaml:"max_unit" validate:"min=1,gtefield=MinUnit"`
	MinCopies int `yaml:"min_copies" validate:"min=2"`
}

type Workers struct {
	Threads int `yaml:"threads" validate:"min=0"` // 0 = one per CPU
	Queue   int `yaml:"queue" validate:"min=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the embedded configuration.
func Default() *Config {
	c, err := decode(&Config{}, bytes.NewReader(defaultYAML))
	if err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return c
}

// Path picks the config file: the flag value if set, else $SEQKERNEL_CONFIG.
// An empty result means defaults only.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvPath)
}

// Load returns the defaults overlaid with the file at path (if non-empty),
// validated.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer fh.Close()
	if _, err := decode(c, io.LimitReader(fh, MaxFileSize)); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func decode(dst *Config, r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return dst, nil
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// ThreadCount resolves Workers.Threads, mapping 0 to the CPU count.
func (c *Config) ThreadCount() int {
	if c.Workers.Threads > 0 {
		return c.Workers.Threads
	}
	return runtime.NumCPU()
}

// BondParams converts the bonds section.
func (c *Config) BondParams() bonds.Params {
	p := bonds.Params{
		CellSize:      c.Bonds.CellSize,
		Tolerance:     c.Bonds.Tolerance,
		DefaultRadius: c.Bonds.DefaultRadius,
		Radii:         make(map[byte]float32, len(c.Bonds.Radii)),
	}
	// sorted so a lower-case key deterministically overrides its upper-case twin
	syms := make([]string, 0, len(c.Bonds.Radii))
	for sym := range c.Bonds.Radii {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	for _, sym := range syms {
		p.Radii[strings.ToUpper(sym)[0]] = c.Bonds.Radii[sym]
	}
	return p
}

// KernelOptions builds the options every worker kernel is created with.
func (c *Config) KernelOptions() kernel.Options {
	return kernel.Options{
		Bonds:         c.BondParams(),
		Grid:          grid.Options{AlternativeStarts: c.Grid.AlternativeStarts},
		MinHashSeed:   c.Kmer.MinHashSeed,
		PCAMaxIter:    c.PCA.MaxIterations,
		PCATolerance:  c.PCA.Tolerance,
		ArenaMaxBytes: c.Kmer.ArenaMaxBytes,
	}
}
