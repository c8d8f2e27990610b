package ctxpool

// SurfaceBinder is implemented by host surfaces that can switch between an
// accelerated and a software rendering path. The software path must be
// functional at all times; BindSoftware only confirms it is the one in use.
type SurfaceBinder interface {
	// BindAccelerated attaches the resource to the surface. The surface
	// must not dispose the resource; the pool owns it.
	BindAccelerated(Resource)

	// BindSoftware ensures the surface renders via its software path.
	BindSoftware()
}

// Binding drives a Pool from host attach/detach notifications, keeping the
// pool free of any dependency on a particular UI framework's lifecycle
// mechanism. Hosts call Attach whenever a consumer appears or re-renders
// and Detach exactly once during teardown.
type Binding struct {
	pool *Pool
}

// NewBinding creates a binding around the given pool.
func NewBinding(pool *Pool) *Binding {
	return &Binding{pool: pool}
}

// Attach acquires a resource for the consumer and binds the surface to the
// matching rendering path. It reports whether the surface is accelerated.
//
// Attach may be called repeatedly for a still-visible consumer (e.g., on
// every re-render); the pool's idempotency absorbs this, and a consumer
// whose resource was lost since the previous call falls back to software
// or picks up a fresh context if capacity allows.
func (b *Binding) Attach(consumerID string, surface SurfaceBinder) bool {
	res := b.pool.Acquire(consumerID, surface)
	if res == nil {
		surface.BindSoftware()
		return false
	}
	surface.BindAccelerated(res)
	return true
}

// Detach releases the consumer's resource, if any. Safe to call
// speculatively, regardless of whether any Attach ever succeeded.
func (b *Binding) Detach(consumerID string) {
	b.pool.Release(consumerID)
}
