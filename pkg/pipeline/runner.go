package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hilbertmaze/pkg/cache"
	"github.com/matzehuels/hilbertmaze/pkg/colorize"
	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
	"github.com/matzehuels/hilbertmaze/pkg/generator"
	"github.com/matzehuels/hilbertmaze/pkg/observability"
	"github.com/matzehuels/hilbertmaze/pkg/treeviz"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the generate → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ImageKey(opts.ImageKeyOpts(format))
	}

	if !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, cache.KeyTypeImage, keys); ok {
			r.Logger.Debug("artifacts from cache", "formats", opts.Formats)
			return &Result{Artifacts: artifacts, CacheInfo: CacheInfo{Hit: true}}, nil
		}
	}

	// Stage 1: Generate
	gen, err := generator.Generate(ctx, generator.Options{
		Scale:   opts.Scale,
		Seed:    opts.Seed,
		Palette: colorize.Palette(opts.Palette),
		Verify:  opts.Verify,
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result := &Result{
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Start:     &gen.Start,
		Stats: Stats{
			Size:         gen.Stats.Size,
			Vertices:     gen.Stats.Vertices,
			TreeEdges:    gen.Stats.TreeEdges,
			TreeTime:     gen.Stats.TreeTime,
			WalkTime:     gen.Stats.WalkTime,
			GenerateTime: gen.Stats.Total,
		},
	}
	r.Logger.Info("generated maze",
		"size", gen.Stats.Size,
		"edges", gen.Stats.TreeEdges,
		"start", gen.Start,
		"duration", gen.Stats.Total)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Encode
	encodeStart := time.Now()
	artifacts, err := Encode(ctx, gen.Image, opts)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.EncodeTime = time.Since(encodeStart)

	r.Logger.Info("encoded outputs",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	r.store(ctx, cache.KeyTypeImage, keys, artifacts, r.ttl(cache.TTLImage))
	return result, nil
}

// RenderTree renders the spanning tree of a run as DOT or SVG diagrams and
// reports whether every diagram came from the cache.
func (r *Runner) RenderTree(ctx context.Context, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForTree(); err != nil {
		return nil, false, err
	}

	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.TreeKey(opts.TreeKeyOpts(format))
	}
	if !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, cache.KeyTypeTree, keys); ok {
			return artifacts, true, nil
		}
	}

	gen, err := generator.Generate(ctx, generator.Options{
		Scale:   opts.Scale,
		Seed:    opts.Seed,
		Palette: colorize.Palette(opts.Palette),
		Verify:  opts.Verify,
	})
	if err != nil {
		return nil, false, fmt.Errorf("generate: %w", err)
	}

	dot, err := treeviz.ToDOT(gen.Tree, gen.Start,
		colorize.New(opts.Scale, colorize.Palette(opts.Palette)),
		treeviz.Options{Detailed: opts.Detailed})
	if errors.Is(err, treeviz.ErrTooLarge) {
		return nil, false, apperr.Wrap(apperr.ErrCodeTooLarge, err,
			"scale %d is too large for a tree diagram (at most %d vertices)", opts.Scale, treeviz.MaxVertices)
	}
	if err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			artifacts[format] = []byte(dot)
		case FormatSVG:
			svg, err := treeviz.RenderSVG(ctx, dot)
			if err != nil {
				return nil, false, fmt.Errorf("render %s: %w", format, err)
			}
			artifacts[format] = svg
		}
	}
	r.Logger.Info("rendered tree",
		"vertices", gen.Stats.Vertices,
		"formats", opts.Formats)

	r.store(ctx, cache.KeyTypeTree, keys, artifacts, r.ttl(cache.TTLTree))
	return artifacts, false, nil
}

// lookup returns the cached artifacts when every key hits.
// Cache errors are logged and treated as misses.
func (r *Runner) lookup(ctx context.Context, keyType string, keys map[string]string) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(keys))
	for format, key := range keys {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, keyType)
			return nil, false
		}
		hooks.OnCacheHit(ctx, keyType)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, keyType string, keys map[string]string, artifacts map[string][]byte, ttl time.Duration) {
	hooks := observability.Cache()
	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keys[format], data, ttl); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, keyType, len(data))
	}
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
