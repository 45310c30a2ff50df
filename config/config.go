// Package config validates command-line arguments and loads run parameters
// from YAML.
//
// Params carries every tunable of a fill run. Default returns the values the
// CLI uses when nothing is given; Load overlays a YAML file on those
// defaults, so partial files are safe. Positional arguments are checked with
// ValidateNumeric and ParseConnectivityArg before any image work starts.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/holefill/fill"
	"github.com/katalvlaran/holefill/grid"
	"github.com/katalvlaran/holefill/imageio"
)

// MaxFileSize bounds the size of a YAML parameter file.
const MaxFileSize = 1 << 20

var (
	// ErrInvalidArgument indicates a malformed command-line argument.
	ErrInvalidArgument = errors.New("config: invalid argument")
	// ErrInvalidParams indicates a Params value that fails Validate.
	ErrInvalidParams = errors.New("config: invalid parameters")
	// ErrBadFile indicates an unusable parameter file (extension, size or syntax).
	ErrBadFile = errors.New("config: bad parameter file")
)

// Params holds the parameters of one fill run.
//
// Epsilon, Z and Connectivity are accepted in a file for library callers
// of Load; the holefill command always replaces them with its required
// positional arguments, so in a file passed to --config they have no effect.
type Params struct {
	Epsilon       float64 `yaml:"epsilon"`
	Z             float64 `yaml:"z"`
	Connectivity  int     `yaml:"connectivity"`
	Strategy      string  `yaml:"strategy"`
	Policy        string  `yaml:"policy"`
	Workers       int     `yaml:"workers"`
	FallbackK     int     `yaml:"fallback_k"`
	MaskThreshold float64 `yaml:"mask_threshold"`
	MaskBlur      float64 `yaml:"mask_blur"`
	FitMask       bool    `yaml:"fit_mask"`
	Output        string  `yaml:"output"`
}

// Default returns the built-in parameters.
func Default() Params {
	return Params{
		Epsilon:       1e-6,
		Z:             3,
		Connectivity:  int(grid.Conn4),
		Strategy:      fill.BoundaryWide.String(),
		Policy:        fill.Reject.String(),
		Workers:       1,
		FallbackK:     fill.DefaultFallbackK,
		MaskThreshold: 0.5,
	}
}

// Load reads a YAML parameter file over Default. Only .yaml and .yml files
// up to MaxFileSize are accepted; unknown keys are an error.
func Load(path string) (Params, error) {
	p := Default()

	clean := filepath.Clean(path)
	if ext := strings.ToLower(filepath.Ext(clean)); ext != ".yaml" && ext != ".yml" {
		return p, fmt.Errorf("%w: want .yaml or .yml extension, got %q", ErrBadFile, ext)
	}
	info, err := os.Stat(clean)
	if err != nil {
		return p, fmt.Errorf("config: stat %q: %w", clean, err)
	}
	if info.Size() > MaxFileSize {
		return p, fmt.Errorf("%w: %d bytes (max %d)", ErrBadFile, info.Size(), MaxFileSize)
	}

	f, err := os.Open(clean)
	if err != nil {
		return p, fmt.Errorf("config: open %q: %w", clean, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return p, fmt.Errorf("%w: %s: %v", ErrBadFile, clean, err)
	}
	return p, nil
}

// Validate checks every field and returns the first problem found.
func (p Params) Validate() error {
	if !(p.Epsilon > 0) || math.IsInf(p.Epsilon, 0) {
		return fmt.Errorf("%w: epsilon must be > 0 and finite, got %v", ErrInvalidParams, p.Epsilon)
	}
	if math.IsNaN(p.Z) || math.IsInf(p.Z, 0) {
		return fmt.Errorf("%w: z must be finite, got %v", ErrInvalidParams, p.Z)
	}
	if !grid.Connectivity(p.Connectivity).Valid() {
		return fmt.Errorf("%w: connectivity must be 4 or 8, got %d", ErrInvalidParams, p.Connectivity)
	}
	if _, err := ParseStrategy(p.Strategy); err != nil {
		return err
	}
	if _, err := ParsePolicy(p.Policy); err != nil {
		return err
	}
	if p.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidParams, p.Workers)
	}
	if p.FallbackK < 1 {
		return fmt.Errorf("%w: fallback_k must be >= 1, got %d", ErrInvalidParams, p.FallbackK)
	}
	if p.MaskThreshold < 0 || p.MaskThreshold > 1 {
		return fmt.Errorf("%w: mask_threshold must be in [0,1], got %v", ErrInvalidParams, p.MaskThreshold)
	}
	if !(p.MaskBlur >= 0) || math.IsInf(p.MaskBlur, 0) {
		return fmt.Errorf("%w: mask_blur must be >= 0 and finite, got %v", ErrInvalidParams, p.MaskBlur)
	}
	return nil
}

// FillOptions translates p into the strategy and options of a fill run.
// p must already pass Validate.
func (p Params) FillOptions() (fill.Strategy, []fill.Option, error) {
	s, err := ParseStrategy(p.Strategy)
	if err != nil {
		return 0, nil, err
	}
	pol, err := ParsePolicy(p.Policy)
	if err != nil {
		return 0, nil, err
	}
	return s, []fill.Option{
		fill.WithPolicy(pol),
		fill.WithWorkers(p.Workers),
		fill.WithFallbackK(p.FallbackK),
	}, nil
}

// MaskOptions returns the mask settings of p.
func (p Params) MaskOptions() imageio.MaskOptions {
	return imageio.MaskOptions{
		Threshold: p.MaskThreshold,
		Blur:      float32(p.MaskBlur),
		Fit:       p.FitMask,
	}
}

// ValidateNumeric reports whether s is a non-empty run of decimal digits
// with at most one '.'. Signs and exponents are rejected.
func ValidateNumeric(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty number", ErrInvalidArgument)
	}
	digits, points := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			points++
		default:
			return fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, s)
		}
	}
	if digits == 0 || points > 1 {
		return fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, s)
	}
	return nil
}

// ParseFloatArg validates s with ValidateNumeric and parses it.
func ParseFloatArg(s string) (float64, error) {
	if err := ValidateNumeric(s); err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return v, nil
}

// ParseConnectivityArg accepts exactly "4" or "8".
func ParseConnectivityArg(s string) (grid.Connectivity, error) {
	switch s {
	case "4":
		return grid.Conn4, nil
	case "8":
		return grid.Conn8, nil
	default:
		return 0, fmt.Errorf("%w: connectivity %q, want 4 or 8", ErrInvalidArgument, s)
	}
}

// ParseStrategy maps "boundary" and "neighbor" to a fill.Strategy.
func ParseStrategy(s string) (fill.Strategy, error) {
	switch strings.ToLower(s) {
	case "boundary":
		return fill.BoundaryWide, nil
	case "neighbor":
		return fill.NeighborLocal, nil
	default:
		return 0, fmt.Errorf("%w: strategy %q, want boundary or neighbor", ErrInvalidParams, s)
	}
}

// ParsePolicy maps "reject", "skip" and "fallback" to a fill.Policy.
func ParsePolicy(s string) (fill.Policy, error) {
	switch strings.ToLower(s) {
	case "reject":
		return fill.Reject, nil
	case "skip":
		return fill.Skip, nil
	case "fallback":
		return fill.Fallback, nil
	default:
		return 0, fmt.Errorf("%w: policy %q, want reject, skip or fallback", ErrInvalidParams, s)
	}
}
