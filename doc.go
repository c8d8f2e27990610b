// Package ctxpool arbitrates access to a scarce set of GPU drawing contexts
// across many visual surfaces.
//
// # Overview
//
// Platforms can create only a handful of hardware-accelerated drawing
// contexts at once (typical driver limits are 4-16 per process); exceeding
// the limit silently breaks rendering elsewhere. ctxpool lets many logical
// consumers (terminal panes, canvases, tiles) share a small number of
// contexts: each consumer that currently needs accelerated rendering is
// allocated one, and consumers that cannot obtain one degrade to their
// software rendering path.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/ctxpool"
//	    _ "github.com/gogpu/ctxpool/wgpu" // register the wgpu factory/detector
//	)
//
//	pool := ctxpool.New()
//
//	// Consumer became visible.
//	res := pool.Acquire("pane-1", surface)
//	if res != nil {
//	    // attach res to the surface, render accelerated
//	} else {
//	    // pool exhausted or creation failed: render in software
//	}
//
//	// Consumer torn down.
//	pool.Release("pane-1")
//
// Acquire is idempotent: calling it again for a still-visible consumer
// returns the same handle without consuming extra capacity, so hosts may
// call it on every re-render. Release is a safe no-op for consumers that
// never acquired, so teardown paths may call it unconditionally.
//
// # Capacity
//
// The pool sizes itself lazily on the first Acquire by running a capability
// detector that inspects the rendering device. Detection never fails: an
// undetectable or unrecognized device resolves to a conservative default
// (DefaultCapacity). SetCapacity overrides the detected value.
//
// # Ownership
//
// The pool exclusively owns every Resource it hands out. A handle is never
// shared between two consumers, and only the pool calls Dispose. Hosts that
// dispose handles themselves leave the pool's bookkeeping inconsistent with
// reality.
//
// # Loss
//
// The platform may revoke a context at any time (driver reset, device lost).
// The pool reclaims the slot and the consumer falls back to software
// rendering on its next pass; it may attempt a fresh Acquire afterwards.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Pool, Resource, Factory, Detector, Binding
//   - wgpu/: production factory and detector on gogpu/wgpu
//   - cmd/poolprobe: capability probe CLI
//
// # Thread Safety
//
// Pool is safe for concurrent use. All state transitions happen under a
// pool-scoped mutex; loss notifications may arrive from any goroutine.
package ctxpool
