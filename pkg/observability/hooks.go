// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about the two render passes, cache
// operations and HTTP requests served by the serve command.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnStaticStart(ctx, len(rec.Features))
//	// ... static layout pass ...
//	observability.Pipeline().OnStaticComplete(ctx, levels, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the render pipeline.
type PipelineHooks interface {
	// Capability probe
	OnProbe(ctx context.Context, requirements int, err error)

	// Static layout pass
	OnStaticStart(ctx context.Context, features int)
	OnStaticComplete(ctx context.Context, levels int, duration time.Duration, err error)

	// Interactive build
	OnBuildStart(ctx context.Context, features int)
	OnBuildComplete(ctx context.Context, patches int, duration time.Duration, err error)

	// Output rendering
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the figure server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnProbe(context.Context, int, error)                              {}
func (NoopPipelineHooks) OnStaticStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnStaticComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}

// =============================================================================
// Recorder
// =============================================================================

// Recorder counts pipeline, cache and HTTP events. It is safe for
// concurrent use and is mainly useful in tests.
type Recorder struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[string]int)}
}

func (r *Recorder) inc(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[event]++
}

// Count returns how often event was recorded.
func (r *Recorder) Count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[event]
}

func (r *Recorder) OnProbe(context.Context, int, error) { r.inc("probe") }
func (r *Recorder) OnStaticStart(context.Context, int)  { r.inc("static_start") }
func (r *Recorder) OnBuildStart(context.Context, int)   { r.inc("build_start") }

func (r *Recorder) OnStaticComplete(context.Context, int, time.Duration, error) {
	r.inc("static_complete")
}

func (r *Recorder) OnBuildComplete(context.Context, int, time.Duration, error) {
	r.inc("build_complete")
}

func (r *Recorder) OnRenderStart(context.Context, []string) { r.inc("render_start") }

func (r *Recorder) OnRenderComplete(context.Context, []string, time.Duration, error) {
	r.inc("render_complete")
}

func (r *Recorder) OnCacheHit(_ context.Context, keyType string)  { r.inc("cache_hit:" + keyType) }
func (r *Recorder) OnCacheMiss(_ context.Context, keyType string) { r.inc("cache_miss:" + keyType) }

func (r *Recorder) OnCacheSet(_ context.Context, keyType string, _ int) {
	r.inc("cache_set:" + keyType)
}

func (r *Recorder) OnRequest(context.Context, string, string) { r.inc("request") }

func (r *Recorder) OnResponse(context.Context, string, string, int, time.Duration) {
	r.inc("response")
}

var (
	_ PipelineHooks = (*Recorder)(nil)
	_ CacheHooks    = (*Recorder)(nil)
	_ HTTPHooks     = (*Recorder)(nil)
)
