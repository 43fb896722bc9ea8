// Package generator turns a (scale, seed) pair into a maze image.
//
// # Overview
//
// A run builds the toroidal lattice of side scale³, selects a random spanning
// tree with randomized Kruskal, walks the tree depth-first from a random start
// vertex, and paints every vertex with the 3D Hilbert color of its visitation
// index. The output is a pure function of its inputs: the same scale and seed
// always produce byte-identical pixels.
//
// # Randomness
//
// A run owns a single PCG stream seeded from the seed. It is consumed in a
// fixed order: first by the edge shuffle, then by the start row, then by the
// start column. Nothing else draws from it.
//
// # Usage
//
//	img, err := generator.MakeImage(3, 42)
//	if err != nil {
//	    return err
//	}
//	png.Encode(w, img)
package generator

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/hilbertmaze/pkg/colorize"
	"github.com/matzehuels/hilbertmaze/pkg/lattice"
	"github.com/matzehuels/hilbertmaze/pkg/observability"
	"github.com/matzehuels/hilbertmaze/pkg/pixmap"
	"github.com/matzehuels/hilbertmaze/pkg/spantree"
	"github.com/matzehuels/hilbertmaze/pkg/walk"
)

// Stage names reported to observability hooks.
const (
	StageTree = "spanning_tree"
	StageWalk = "walk"
)

// Options configures a generation run.
type Options struct {
	Scale   int
	Seed    uint64
	Palette colorize.Palette

	// Verify re-checks the spanning property of the tree before walking it.
	Verify bool
}

// Result holds the outputs of a run.
type Result struct {
	Image *pixmap.Pixmap
	Tree  *spantree.Tree
	Start lattice.Vertex
	Stats Stats
}

// Stats contains timing and size information for a run.
type Stats struct {
	Size      int
	Vertices  int
	TreeEdges int
	TreeTime  time.Duration
	WalkTime  time.Duration
	Total     time.Duration
}

// NewRand returns the generator stream for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// MakeImage generates the image for scale and seed with the RGB palette.
func MakeImage(scale int, seed uint64) (*pixmap.Pixmap, error) {
	res, err := Generate(context.Background(), Options{Scale: scale, Seed: seed})
	if err != nil {
		return nil, err
	}
	return res.Image, nil
}

// Generate runs the full pipeline. The context is checked between stages;
// a stage in progress always runs to completion.
func Generate(ctx context.Context, opts Options) (res *Result, err error) {
	start := time.Now()
	hooks := observability.Pipeline()

	l, err := lattice.New(opts.Scale)
	if err != nil {
		return nil, err
	}
	if opts.Palette == "" {
		opts.Palette = colorize.RGB
	}
	if _, err := colorize.ParsePalette(string(opts.Palette)); err != nil {
		return nil, err
	}

	hooks.OnGenerateStart(ctx, opts.Scale, opts.Seed)
	defer func() {
		hooks.OnGenerateComplete(ctx, opts.Scale, l.Vertices(), time.Since(start), err)
	}()

	res = &Result{Stats: Stats{Size: l.Size(), Vertices: l.Vertices()}}
	rng := NewRand(opts.Seed)

	stageStart := time.Now()
	res.Tree = spantree.Build(l, rng)
	if opts.Verify {
		err = res.Tree.Verify()
	}
	res.Stats.TreeTime = time.Since(stageStart)
	res.Stats.TreeEdges = res.Tree.Len()
	hooks.OnStageComplete(ctx, StageTree, res.Stats.TreeTime, err)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	row := rng.IntN(l.Size())
	col := rng.IntN(l.Size())
	res.Start = lattice.Vertex{Row: row, Col: col}

	stageStart = time.Now()
	res.Image, err = paint(res.Tree, res.Start, colorize.New(opts.Scale, opts.Palette))
	res.Stats.WalkTime = time.Since(stageStart)
	hooks.OnStageComplete(ctx, StageWalk, res.Stats.WalkTime, err)
	if err != nil {
		return nil, err
	}

	res.Stats.Total = time.Since(start)
	return res, nil
}

// paint walks t from start and colors each vertex by its visitation index.
func paint(t *spantree.Tree, start lattice.Vertex, c *colorize.Colorizer) (*pixmap.Pixmap, error) {
	img := pixmap.New(t.Lattice().Size())
	err := walk.Walk(t, start, func(v walk.Visit) error {
		img.Set(v.Vertex, c.Color(v.Index))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}
