package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hilbertmaze/pkg/colorize"
	"github.com/matzehuels/hilbertmaze/pkg/config"
	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
	"github.com/matzehuels/hilbertmaze/pkg/pipeline"
	"github.com/matzehuels/hilbertmaze/pkg/sink"
)

type treeOpts struct {
	output   string
	formats  string
	palette  string
	detailed bool
	noCache  bool
	refresh  bool
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	opts := &treeOpts{}

	cmd := &cobra.Command{
		Use:   "tree <scale> <seed>",
		Short: "Draw the spanning tree behind a maze",
		Long: `Draw the spanning tree behind a maze as a Graphviz diagram.

Nodes sit at their grid position and are filled with their pixel color.
Edges that wrap around the torus are dashed and the walk's start node is
outlined. Only small scales fit in a readable diagram.`,
		Example: `  hilbertmaze tree 2 42
  hilbertmaze tree 3 7 -f dot,svg --detailed`,
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
			formats, err := opts.apply(cmd, &cfg)
			if err != nil {
				return err
			}
			return c.runTree(cmd.Context(), scale, seed, cfg, formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "diagram formats, comma-separated: dot, svg")
	cmd.Flags().StringVar(&opts.palette, "palette", "", "color palette: rgb or hsluv")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with their visit index")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(pipeline.TreeFormats))
	_ = cmd.RegisterFlagCompletionFunc("palette", fixedCompletion(colorize.Palettes))

	return cmd
}

// apply overlays the flags the user set onto cfg and returns the diagram
// formats.
func (o *treeOpts) apply(cmd *cobra.Command, cfg *config.Config) ([]string, error) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = o.output
	}
	if flags.Changed("palette") {
		cfg.Palette = o.palette
	}
	if flags.Changed("no-cache") {
		cfg.NoCache = o.noCache
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return parseTreeFormats(o.formats)
}

func (c *CLI) runTree(ctx context.Context, scale int, seed uint64, cfg config.Config, formats []string, opts *treeOpts) error {
	runner, err := c.newRunner(cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	artifacts, cached, err := runner.RenderTree(ctx, pipeline.Options{
		Scale:    scale,
		Seed:     seed,
		Palette:  cfg.Palette,
		Formats:  formats,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}

	w := sink.NewDirWriter(cfg.OutputDir)
	printSuccess("Spanning tree %s", StyleHighlight.Render(fmt.Sprintf("scale %d, seed %d", scale, seed)))
	for _, format := range formats {
		path, err := w.Write(treeFilename(scale, seed, format), artifacts[format])
		if err != nil {
			return err
		}
		printFile(path)
	}
	size := scale * scale * scale
	printStats(size, size*size-1, 0, cached)
	prog.done(fmt.Sprintf("Wrote %d diagrams", len(formats)))
	return nil
}

// parseTreeFormats splits a comma-separated diagram format list, dropping
// blanks and duplicates.
func parseTreeFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "no diagram format given")
	}
	if err := pipeline.ValidateTreeFormats(out); err != nil {
		return nil, err
	}
	return out, nil
}

// treeFilename returns the diagram name for a run: tree-{scale}-{seed}.{format}.
func treeFilename(scale int, seed uint64, format string) string {
	return fmt.Sprintf("tree-%d-%d.%s", scale, seed, format)
}
