// Package observability lets callers watch maze generation without tying the
// library packages to a metrics backend.
//
// Two hook sets exist: [PipelineHooks] for generation stages and encoding,
// and [CacheHooks] for artifact cache traffic. Both default to no-ops. A
// binary installs real implementations once at startup:
//
//	m := prom.New()
//	observability.SetPipelineHooks(m)
//	observability.SetCacheHooks(m)
//
// and library code reports through the accessors:
//
//	observability.Pipeline().OnStageComplete(ctx, "walk", elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives generation and encoding events.
type PipelineHooks interface {
	OnGenerateStart(ctx context.Context, scale int, seed uint64)

	// OnStageComplete fires after each generation stage (spanning tree,
	// walk) whether or not it failed.
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)

	OnGenerateComplete(ctx context.Context, scale, vertices int, duration time.Duration, err error)

	// OnEncodeComplete reports one output format; size is the encoded length.
	OnEncodeComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives artifact cache events. keyType is cache.KeyTypeImage
// or cache.KeyTypeTree.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, int, uint64)                        {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, time.Duration, error)       {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnEncodeComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// registry holds the installed hooks.
var registry = struct {
	sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
}{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
}

// SetPipelineHooks installs h. A nil h leaves the current hooks in place.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.pipeline = h
	registry.Unlock()
}

// SetCacheHooks installs h. A nil h leaves the current hooks in place.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.cache = h
	registry.Unlock()
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.pipeline
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

// Reset reinstalls the no-op hooks.
func Reset() {
	registry.Lock()
	registry.pipeline = NoopPipelineHooks{}
	registry.cache = NoopCacheHooks{}
	registry.Unlock()
}
