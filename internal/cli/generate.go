package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hilbertmaze/pkg/colorize"
	"github.com/matzehuels/hilbertmaze/pkg/config"
	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
	"github.com/matzehuels/hilbertmaze/pkg/lattice"
	"github.com/matzehuels/hilbertmaze/pkg/pipeline"
	"github.com/matzehuels/hilbertmaze/pkg/sink"
	"github.com/matzehuels/hilbertmaze/pkg/treeviz"
)

// generateOpts holds the flag values of the generate command. Only flags the
// user set override the config file.
type generateOpts struct {
	output  string
	formats string
	palette string
	zoom    int
	noCache bool
	refresh bool
	verify  bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := &generateOpts{}

	cmd := &cobra.Command{
		Use:     "generate <scale> <seed>",
		Aliases: []string{"gen"},
		Short:   "Paint the maze for a scale and seed",
		Long: `Paint the maze for a scale and seed.

The image is scale³ pixels on each side. Every pixel is one grid cell,
colored by the order in which a depth-first walk of a random spanning tree
reaches it. Files are named img-<scale>-<seed>.<format>.`,
		Example: `  hilbertmaze generate 4 42
  hilbertmaze gen 8 7 -f png,svg --zoom 4 -o out/
  hilbertmaze gen 6 1 --palette hsluv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, seed, err := parseScaleSeed(args)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, &cfg); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), scale, seed, cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output formats, comma-separated: png, bmp, tiff, svg")
	cmd.Flags().StringVar(&opts.palette, "palette", "", "color palette: rgb or hsluv")
	cmd.Flags().IntVar(&opts.zoom, "zoom", 0, "integer upscale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even when cached")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "check the spanning tree before painting")

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(sink.Formats))
	_ = cmd.RegisterFlagCompletionFunc("palette", fixedCompletion(colorize.Palettes))

	return cmd
}

// apply overlays the flags the user set onto cfg and validates the result.
func (o *generateOpts) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = o.output
	}
	if flags.Changed("format") {
		formats, err := sink.ParseFormats(o.formats)
		if err != nil {
			return err
		}
		cfg.Formats = formats
	}
	if flags.Changed("palette") {
		cfg.Palette = o.palette
	}
	if flags.Changed("zoom") {
		cfg.Zoom = o.zoom
	}
	if flags.Changed("no-cache") {
		cfg.NoCache = o.noCache
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = []string{sink.FormatPNG}
	}
	return cfg.Validate()
}

func (c *CLI) runGenerate(ctx context.Context, scale int, seed uint64, cfg config.Config, opts *generateOpts) error {
	runner, err := c.newRunner(cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	size := scale * scale * scale
	spinner := newSpinner(ctx, fmt.Sprintf("Generating %d×%d maze...", size, size))
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Scale:   scale,
		Seed:    seed,
		Palette: cfg.Palette,
		Zoom:    cfg.Zoom,
		Formats: cfg.Formats,
		Refresh: opts.refresh,
		Verify:  opts.verify,
		Logger:  c.Logger,
	})
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithSuccess("Maze " + StyleHighlight.Render(fmt.Sprintf("scale %d, seed %d", scale, seed)))

	prog := newProgress(loggerFromContext(ctx))
	w := sink.NewDirWriter(cfg.OutputDir)
	for _, format := range cfg.Formats {
		path, err := w.Write(sink.Filename(scale, seed, format), result.Artifacts[format])
		if err != nil {
			return err
		}
		printFile(path)
	}
	printStats(size, result.Stats.TreeEdges, result.Stats.GenerateTime+result.Stats.EncodeTime, result.CacheInfo.Hit)
	prog.done(fmt.Sprintf("Wrote %d files", len(cfg.Formats)))

	if size*size <= treeviz.MaxVertices {
		printNextStep("Draw the spanning tree", fmt.Sprintf("%s tree %d %d", appName, scale, seed))
	}
	return nil
}

// parseScaleSeed parses the positional <scale> <seed> arguments.
func parseScaleSeed(args []string) (int, uint64, error) {
	scale, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, apperr.New(apperr.ErrCodeInvalidScale, "scale must be an integer, got %q", args[0])
	}
	if err := apperr.ValidateScale(scale, lattice.MaxScale); err != nil {
		return 0, 0, err
	}
	seed, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return 0, 0, apperr.New(apperr.ErrCodeInvalidSeed, "seed must be an unsigned 64-bit integer, got %q", args[1])
	}
	return scale, seed, nil
}
