// Package pipeline provides the generate → encode pipeline behind the
// hilbertmaze CLI.
//
// The pipeline wraps the pure generator with the concerns a command needs:
// option defaults and validation, upscaling, encoding into every requested
// format, artifact caching, and observability hooks.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: build the spanning tree, walk it, and color the pixmap
//  2. Encode: upscale the pixmap and encode it (PNG, BMP, TIFF, SVG)
//
// Encoded artifacts are cached by their full set of inputs. Because the
// generator is deterministic, a cache hit for every requested format skips
// both stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Scale:   3,
//	    Seed:    42,
//	    Formats: []string{"png", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Render the spanning tree as a diagram:
//
//	artifacts, hit, err := runner.RenderTree(ctx, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hilbertmaze/pkg/cache"
	"github.com/matzehuels/hilbertmaze/pkg/colorize"
	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
	"github.com/matzehuels/hilbertmaze/pkg/lattice"
	"github.com/matzehuels/hilbertmaze/pkg/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultZoom keeps one pixel per lattice vertex.
	DefaultZoom = 1

	// DefaultPalette is the plain RGB cube.
	DefaultPalette = string(colorize.RGB)
)

// Tree diagram formats.
const (
	FormatDOT = "dot"
	FormatSVG = sink.FormatSVG
)

// TreeFormats lists the supported tree diagram formats.
var TreeFormats = []string{FormatDOT, FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	Scale   int      `json:"scale"`
	Seed    uint64   `json:"seed"`
	Palette string   `json:"palette,omitempty"`
	Zoom    int      `json:"zoom,omitempty"`
	Formats []string `json:"formats,omitempty"`

	// Detailed labels tree diagram nodes with their visitation index.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Verify re-checks the spanning property of every generated tree.
	Verify bool `json:"verify,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Start is the walk's start vertex. It is unknown when every artifact
	// came from the cache.
	Start *lattice.Vertex

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Size         int
	Vertices     int
	TreeEdges    int
	TreeTime     time.Duration
	WalkTime     time.Duration
	GenerateTime time.Duration
	EncodeTime   time.Duration
}

// CacheInfo tracks cache hits for the run.
type CacheInfo struct {
	Hit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all image formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := sink.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTreeFormats checks that all tree diagram formats are valid.
func ValidateTreeFormats(formats []string) error {
	for _, f := range formats {
		if err := apperr.ValidateToken(apperr.ErrCodeInvalidFormat, "tree format", f, TreeFormats); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for image
// generation. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.validateCommon(); err != nil {
		return err
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	if err := apperr.ValidateZoom(o.Zoom, sink.MaxZoom); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{sink.FormatPNG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForTree checks fields and applies defaults for tree rendering.
func (o *Options) ValidateForTree() error {
	if err := o.validateCommon(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	return ValidateTreeFormats(o.Formats)
}

func (o *Options) validateCommon() error {
	if err := apperr.ValidateScale(o.Scale, lattice.MaxScale); err != nil {
		return err
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if _, err := colorize.ParsePalette(o.Palette); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ImageKeyOpts returns cache key options for one encoded image.
func (o *Options) ImageKeyOpts(format string) cache.ImageKeyOpts {
	return cache.ImageKeyOpts{
		Scale:   o.Scale,
		Seed:    o.Seed,
		Palette: o.Palette,
		Zoom:    o.Zoom,
		Format:  format,
	}
}

// TreeKeyOpts returns cache key options for one tree diagram.
func (o *Options) TreeKeyOpts(format string) cache.TreeKeyOpts {
	return cache.TreeKeyOpts{
		Scale:    o.Scale,
		Seed:     o.Seed,
		Palette:  o.Palette,
		Format:   format,
		Detailed: o.Detailed,
	}
}
