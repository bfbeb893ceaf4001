// Package observability provides hooks for metrics and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline execution.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for run events
//   - Provide a no-op default implementation
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRunHooks(&myRunHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks to emit events:
//
//	observability.Run().OnScanStart(ctx, root)
//	// ... scan environments ...
//	observability.Run().OnScanComplete(ctx, root, envCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RunHooks receives events from the generation pipeline.
type RunHooks interface {
	// Scan events
	OnScanStart(ctx context.Context, root string)
	OnScanComplete(ctx context.Context, root string, envCount int, duration time.Duration, err error)

	// Cluster events
	OnClusterComplete(ctx context.Context, clusterCount, packageCount, driftCount int)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)

	// Output events
	OnWrite(ctx context.Context, path string, size int)
}

// NoopRunHooks is a no-op implementation of RunHooks.
type NoopRunHooks struct{}

func (NoopRunHooks) OnScanStart(context.Context, string)                               {}
func (NoopRunHooks) OnScanComplete(context.Context, string, int, time.Duration, error) {}
func (NoopRunHooks) OnClusterComplete(context.Context, int, int, int)                  {}
func (NoopRunHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopRunHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}
func (NoopRunHooks) OnWrite(context.Context, string, int)                              {}

var (
	runHooks RunHooks = NoopRunHooks{}
	hooksMu  sync.RWMutex
)

// SetRunHooks registers custom run hooks.
// This should be called once at application startup before any pipeline operations.
func SetRunHooks(h RunHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		runHooks = h
	}
}

// Run returns the registered run hooks.
func Run() RunHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return runHooks
}

// Reset restores the hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	runHooks = NoopRunHooks{}
}
