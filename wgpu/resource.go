package wgpu

import (
	"sync"

	"github.com/gogpu/ctxpool"
	"github.com/gogpu/wgpu/hal"
)

// lossTracker implements the one-shot loss semantics shared by both
// resource kinds. Callbacks registered after the loss already happened are
// still invoked exactly once, on a fresh goroutine so that registration
// never re-enters the caller (the pool registers while holding its lock).
type lossTracker struct {
	mu      sync.Mutex
	lost    bool
	lossFns []func()
}

func (t *lossTracker) onLoss(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	if t.lost {
		t.mu.Unlock()
		go fn()
		return
	}
	t.lossFns = append(t.lossFns, fn)
	t.mu.Unlock()
}

// markLost fires every registered callback exactly once. Subsequent calls
// are no-ops.
func (t *lossTracker) markLost() {
	t.mu.Lock()
	if t.lost {
		t.mu.Unlock()
		return
	}
	t.lost = true
	fns := t.lossFns
	t.lossFns = nil
	t.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// DeviceResource is one pooled drawing context backed by a wgpu logical
// device. It implements ctxpool.Resource and is created exclusively by
// DeviceFactory; the pool owns it and is the only caller of Dispose.
type DeviceResource struct {
	lossTracker

	disposeMu sync.Mutex
	disposed  bool
	device    hal.Device
	queue     hal.Queue
}

var _ ctxpool.Resource = (*DeviceResource)(nil)

// HalDevice returns the HAL device for attaching to a surface, or nil
// after Dispose.
func (r *DeviceResource) HalDevice() hal.Device {
	r.disposeMu.Lock()
	defer r.disposeMu.Unlock()
	return r.device
}

// HalQueue returns the HAL queue for submitting work, or nil after
// Dispose.
func (r *DeviceResource) HalQueue() hal.Queue {
	r.disposeMu.Lock()
	defer r.disposeMu.Unlock()
	return r.queue
}

// Dispose destroys the logical device. Safe to call more than once and
// safe to call on a device the platform already revoked.
func (r *DeviceResource) Dispose() {
	r.disposeMu.Lock()
	defer r.disposeMu.Unlock()

	if r.disposed {
		return
	}
	r.disposed = true

	// Queue is released with its device.
	if r.device != nil {
		r.device.Destroy()
		r.device = nil
	}
	r.queue = nil
}

// OnLoss registers a callback invoked exactly once when MarkLost is
// called. See ctxpool.Resource.
func (r *DeviceResource) OnLoss(fn func()) { r.onLoss(fn) }

// MarkLost reports that the platform revoked this device. Integration
// layers call this when they observe device loss out of band (swapchain
// errors, surface invalidation). Idempotent.
func (r *DeviceResource) MarkLost() { r.markLost() }

// SharedResource is a pooled drawing context borrowing a host-owned HAL
// device. Dispose releases nothing device-side: the host provider owns the
// device and queue; only the pool's bookkeeping slot is given up.
type SharedResource struct {
	lossTracker

	disposeMu sync.Mutex
	disposed  bool
	device    hal.Device
	queue     hal.Queue
}

var _ ctxpool.Resource = (*SharedResource)(nil)

// HalDevice returns the borrowed HAL device, or nil after Dispose.
func (r *SharedResource) HalDevice() hal.Device {
	r.disposeMu.Lock()
	defer r.disposeMu.Unlock()
	return r.device
}

// HalQueue returns the borrowed HAL queue, or nil after Dispose.
func (r *SharedResource) HalQueue() hal.Queue {
	r.disposeMu.Lock()
	defer r.disposeMu.Unlock()
	return r.queue
}

// Dispose detaches from the borrowed device. Idempotent.
func (r *SharedResource) Dispose() {
	r.disposeMu.Lock()
	defer r.disposeMu.Unlock()
	if r.disposed {
		return
	}
	r.disposed = true
	r.device = nil
	r.queue = nil
}

// OnLoss registers a callback invoked exactly once when MarkLost is
// called. See ctxpool.Resource.
func (r *SharedResource) OnLoss(fn func()) { r.onLoss(fn) }

// MarkLost reports that the host's device was lost. Idempotent.
func (r *SharedResource) MarkLost() { r.markLost() }
