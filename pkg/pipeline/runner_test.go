package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/hilbertmaze/pkg/cache"
	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
	"github.com/matzehuels/hilbertmaze/pkg/observability"

	"gopkg.in/src-d/go-billy.v4/memfs"
)

type countingCacheHooks struct {
	observability.NoopCacheHooks
	mu     sync.Mutex
	hits   int
	misses int
	sets   int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingCacheHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{Scale: 2, Seed: 42, Formats: []string{"png", "svg"}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.CacheInfo.Hit {
		t.Error("NullCache run should not hit")
	}
	if res.Stats.Vertices != 64 || res.Stats.TreeEdges != 63 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.Start == nil {
		t.Error("Start should be set on a fresh run")
	}

	img, err := png.Decode(bytes.NewReader(res.Artifacts["png"]))
	if err != nil {
		t.Fatalf("png decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("png bounds = %v, want 8x8", b)
	}
	if !strings.Contains(string(res.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact missing <svg>")
	}
}

func TestExecuteZoom(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Scale: 2, Seed: 1, Zoom: 4})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(res.Artifacts["png"]))
	if err != nil {
		t.Fatalf("png decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("png bounds = %v, want 32x32", b)
	}
}

func TestExecuteDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{Scale: 3, Seed: 7, Formats: []string{"bmp"}}
	a, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Artifacts["bmp"], b.Artifacts["bmp"]) {
		t.Error("same inputs should encode identically")
	}
}

func TestExecuteCaches(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	r := NewRunner(cache.NewFileCache(memfs.New()), nil, nil)
	opts := Options{Scale: 2, Seed: 5, Formats: []string{"png", "tiff"}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.Hit {
		t.Error("first run should miss")
	}
	if hooks.sets != 2 {
		t.Errorf("sets = %d, want 2", hooks.sets)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.Hit {
		t.Error("second run should hit")
	}
	if second.Start != nil {
		t.Error("Start is unknown for cached runs")
	}
	if !bytes.Equal(first.Artifacts["tiff"], second.Artifacts["tiff"]) {
		t.Error("cached artifact differs")
	}
	if hooks.hits != 2 {
		t.Errorf("hits = %d, want 2", hooks.hits)
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.Hit {
		t.Error("refresh should bypass cache reads")
	}
}

func TestExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Scale: 0})
	if !apperr.Is(err, apperr.ErrCodeInvalidScale) {
		t.Errorf("Execute() error = %v, want INVALID_SCALE", err)
	}
}

func TestRenderTree(t *testing.T) {
	r := NewRunner(cache.NewFileCache(memfs.New()), nil, nil)
	opts := Options{Scale: 2, Seed: 3, Formats: []string{"dot", "svg"}, Detailed: true}

	artifacts, hit, err := r.RenderTree(context.Background(), opts)
	if err != nil {
		t.Fatalf("RenderTree() error: %v", err)
	}
	if hit {
		t.Error("first render should miss")
	}
	if !strings.HasPrefix(string(artifacts["dot"]), "graph T {") {
		t.Error("dot artifact missing graph header")
	}
	if !strings.Contains(string(artifacts["svg"]), "<svg") {
		t.Error("svg artifact missing <svg>")
	}

	_, hit, err = r.RenderTree(context.Background(), opts)
	if err != nil || !hit {
		t.Errorf("second render: hit %v, err %v", hit, err)
	}
}

func TestRenderTreeTooLarge(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, _, err := r.RenderTree(context.Background(), Options{Scale: 5, Formats: []string{"dot"}})
	if !apperr.Is(err, apperr.ErrCodeTooLarge) {
		t.Errorf("RenderTree() error = %v, want TOO_LARGE", err)
	}
}
