// Package observability provides hooks for metrics and tracing of the
// shape cache.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup or
// pass them to a single cache, and receive events about insertions and
// flushes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Kinds are passed by name so that backends need not import the shape
// packages.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFlushHooks(&myFlushHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// The cache calls hooks to emit events:
//
//	observability.Flush().OnFlushStart("box", unique)
//	// ... write records ...
//	observability.Flush().OnFlushComplete("box", records, duration, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Flush Hooks
// =============================================================================

// FlushHooks receives events from cache flushes.
type FlushHooks interface {
	// OnFlushStart is called before a kind's unique shapes are written.
	OnFlushStart(kind string, unique int)

	// OnFlushComplete is called after the flush, with the number of records
	// written and the writer error that aborted it, if any.
	OnFlushComplete(kind string, records int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache insertions.
type CacheHooks interface {
	// OnInsert records one occurrence; repeated is true when its content
	// was already cached.
	OnInsert(kind string, repeated bool)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFlushHooks is a no-op implementation of FlushHooks.
type NoopFlushHooks struct{}

func (NoopFlushHooks) OnFlushStart(string, int)                          {}
func (NoopFlushHooks) OnFlushComplete(string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnInsert(string, bool) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	flushHooks FlushHooks = NoopFlushHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetFlushHooks registers custom flush hooks.
// This should be called once at application startup before any cache is created.
func SetFlushHooks(h FlushHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		flushHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache is created.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Flush returns the registered flush hooks.
func Flush() FlushHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return flushHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	flushHooks = NoopFlushHooks{}
	cacheHooks = NoopCacheHooks{}
}
