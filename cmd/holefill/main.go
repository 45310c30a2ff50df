// Command holefill detects the missing region of a grayscale image and fills
// it by weighted interpolation.
//
//	holefill <image_path> <epsilon> <z> <connectivity> [flags]
//
// Missing pixels come from a mask image (--mask), a carved rectangle
// (--rect) or a random blob (--random). The filled image is written next to
// the input as <name>_filled<ext> unless --out or the config file names
// another path.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/holefill/carve"
	"github.com/katalvlaran/holefill/config"
	"github.com/katalvlaran/holefill/fill"
	"github.com/katalvlaran/holefill/grid"
	"github.com/katalvlaran/holefill/hole"
	"github.com/katalvlaran/holefill/imageio"
	"github.com/katalvlaran/holefill/internal/monitoring"
	"github.com/katalvlaran/holefill/weight"
)

const usage = "Usage: holefill <image_path> <epsilon> <z> <connectivity> [flags]"

var errUsage = errors.New(usage)

// flags holds the optional command-line settings. Fill parameters given
// here override the config file only when set explicitly.
type flags struct {
	configPath string
	maskPath   string
	maskBlur   float64
	fitMask    bool
	rect       string
	random     int
	seed       int64
	strategy   string
	policy     string
	workers    int
	fallbackK  int
	out        string
	all        bool
	verbose    bool
}

// positional holds the four validated positional arguments.
type positional struct {
	imagePath string
	epsilon   float64
	z         float64
	conn      grid.Connectivity
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, usage)
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var (
		f   flags
		pos positional
	)
	cmd := &cobra.Command{
		Use:           "holefill <image_path> <epsilon> <z> <connectivity>",
		Short:         "Fill the missing region of a grayscale image",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			var err error
			pos, err = parsePositional(args)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := resolveParams(cmd, f, pos)
			if err != nil {
				return err
			}
			return fillImage(stdout, f, pos.imagePath, p)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "YAML parameter file")
	fs.StringVar(&f.maskPath, "mask", "", "mask image; dark pixels become missing")
	fs.Float64Var(&f.maskBlur, "mask-blur", 0, "Gaussian blur sigma applied to the mask before thresholding")
	fs.BoolVar(&f.fitMask, "fit-mask", false, "resize a mask of another size to the image")
	fs.StringVar(&f.rect, "rect", "", "carve a missing rectangle: top,left,height,width")
	fs.IntVar(&f.random, "random", 0, "carve a random connected hole of n pixels")
	fs.Int64Var(&f.seed, "seed", 1, "seed for --random")
	fs.StringVar(&f.strategy, "strategy", "", "fill strategy: boundary or neighbor")
	fs.StringVar(&f.policy, "policy", "", "degenerate-weight policy: reject, skip or fallback")
	fs.IntVar(&f.workers, "workers", 0, "goroutines for the boundary strategy")
	fs.IntVar(&f.fallbackK, "fallback-k", 0, "nearest boundary pixels used by the fallback policy")
	fs.StringVar(&f.out, "out", "", "output image path")
	fs.BoolVar(&f.all, "all", false, "fill every hole, not only the first")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")

	return cmd
}

// parsePositional validates the positional arguments before any image work.
func parsePositional(args []string) (positional, error) {
	if len(args) != 4 {
		return positional{}, errUsage
	}
	eps, err := config.ParseFloatArg(args[1])
	if err != nil {
		return positional{}, errors.New("epsilon should be float")
	}
	z, err := config.ParseFloatArg(args[2])
	if err != nil {
		return positional{}, errors.New("z value should be float")
	}
	conn, err := config.ParseConnectivityArg(args[3])
	if err != nil {
		return positional{}, errors.New("pixel connectivity value should be 4 or 8")
	}
	return positional{imagePath: args[0], epsilon: eps, z: z, conn: conn}, nil
}

// resolveParams layers the config file, the positional arguments and any
// explicitly set flags, in that order, and validates the result.
func resolveParams(cmd *cobra.Command, f flags, pos positional) (config.Params, error) {
	p := config.Default()
	if f.configPath != "" {
		var err error
		if p, err = config.Load(f.configPath); err != nil {
			return p, err
		}
	}
	p.Epsilon, p.Z, p.Connectivity = pos.epsilon, pos.z, int(pos.conn)

	changed := cmd.Flags().Changed
	if changed("strategy") {
		p.Strategy = f.strategy
	}
	if changed("policy") {
		p.Policy = f.policy
	}
	if changed("workers") {
		p.Workers = f.workers
	}
	if changed("fallback-k") {
		p.FallbackK = f.fallbackK
	}
	if changed("mask-blur") {
		p.MaskBlur = f.maskBlur
	}
	if changed("fit-mask") {
		p.FitMask = f.fitMask
	}
	if changed("out") {
		p.Output = f.out
	}
	return p, p.Validate()
}

func fillImage(stdout io.Writer, f flags, imagePath string, p config.Params) error {
	if f.verbose {
		monitoring.SetLogger(log.New(os.Stderr, "holefill: ", log.Ltime).Printf)
	} else {
		monitoring.SetLogger(nil)
	}

	g, err := imageio.Load(imagePath)
	if err != nil {
		return err
	}
	monitoring.Logf("loaded %s: %dx%d", imagePath, g.Cols(), g.Rows())

	if err = carveHoles(g, f, p); err != nil {
		return err
	}

	conn := grid.Connectivity(p.Connectivity)
	var holes []*hole.Hole
	if f.all {
		holes, err = hole.DetectAll(g, conn)
	} else {
		var h *hole.Hole
		if h, err = hole.Detect(g, conn); err == nil {
			holes = []*hole.Hole{h}
		}
	}
	if errors.Is(err, hole.ErrNoMissingPixel) {
		fmt.Fprintln(stdout, "No missing pixel in the image.")
		return nil
	}
	if err != nil {
		return err
	}

	strategy, opts, err := p.FillOptions()
	if err != nil {
		return err
	}
	w := weight.Default(p.Z, p.Epsilon)

	for i, h := range holes {
		monitoring.Logf("hole %d: seed %s, %d pixels, boundary %d", i+1, h.Seed(), h.Len(), h.BoundaryLen())
		res, err := fill.Apply(strategy, g, h, w, opts...)
		if err != nil {
			return fmt.Errorf("hole %d: %w", i+1, err)
		}
		g = res.Grid
		fmt.Fprintf(stdout, "hole %d: %d pixels, boundary %d, filled %d", i+1, h.Len(), h.BoundaryLen(), res.Filled)
		if res.Fallbacks > 0 {
			fmt.Fprintf(stdout, " (%d by fallback)", res.Fallbacks)
		}
		if !res.Complete() {
			fmt.Fprintf(stdout, ", %d left missing", len(res.Unfilled))
		}
		fmt.Fprintln(stdout)
	}

	out := p.Output
	if out == "" {
		out = filledPath(imagePath)
	}
	if err = imageio.Save(out, g); err != nil {
		return err
	}
	monitoring.Logf("wrote %s", out)
	return nil
}

// carveHoles applies --mask, --rect and --random, in that order.
func carveHoles(g *grid.Grid, f flags, p config.Params) error {
	if f.maskPath != "" {
		n, err := imageio.LoadMask(g, f.maskPath, p.MaskOptions())
		if err != nil {
			return err
		}
		monitoring.Logf("mask %s: %d pixels missing", f.maskPath, n)
	}
	if f.rect != "" {
		r, err := parseRect(f.rect)
		if err != nil {
			return err
		}
		n, err := carve.Rect(g, r[0], r[1], r[2], r[3])
		if err != nil {
			return err
		}
		monitoring.Logf("rect %s: %d pixels missing", f.rect, n)
	}
	if f.random > 0 {
		cells, err := carve.Random(g, f.random, carve.WithSeed(f.seed))
		if err != nil {
			return err
		}
		monitoring.Logf("random blob: %d pixels missing", len(cells))
	}
	return nil
}

// parseRect parses "top,left,height,width".
func parseRect(s string) ([4]int, error) {
	var r [4]int
	parts := strings.Split(s, ",")
	if len(parts) != len(r) {
		return r, fmt.Errorf("--rect %q: want top,left,height,width", s)
	}
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return r, fmt.Errorf("--rect %q: %w", s, err)
		}
		r[i] = v
	}
	return r, nil
}

// filledPath returns path with "_filled" inserted before the extension.
func filledPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_filled" + ext
}
