package ctxpool

import "sync"

// Surface is an opaque reference to the visual surface a resource is
// attached to. The pool never inspects it; it is carried on the slot so
// hosts and debugging displays can correlate consumers with surfaces.
type Surface any

// Resource is an opaque capability wrapping one scarce drawing context.
//
// A Resource is exclusively owned by the pool that created it: it is never
// shared between two consumers and only the pool calls Dispose.
type Resource interface {
	// Dispose releases the underlying context. It is safe to call on a
	// resource the platform has already revoked, and safe to call more
	// than once; implementations must make repeated calls no-ops.
	Dispose()

	// OnLoss registers a callback invoked exactly once if the platform
	// unilaterally revokes the resource (e.g., driver reset).
	//
	// The callback may run on any goroutine. Implementations must never
	// invoke it synchronously from within OnLoss itself, even when the
	// resource is already lost at registration time.
	OnLoss(fn func())
}

// Factory creates new resources on demand.
//
// Production implementations call through to the platform API and surface
// creation failure as an error, never as a partially-initialized handle.
// Tests substitute a deterministic implementation that records disposal
// calls and can simulate loss on demand.
type Factory interface {
	// Create produces a new resource, or an error if the platform
	// cannot supply one.
	Create() (Resource, error)
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc func() (Resource, error)

// Create calls f.
func (f FactoryFunc) Create() (Resource, error) { return f() }

var (
	factoryMu      sync.RWMutex
	defaultFactory Factory
)

// RegisterFactory registers the process-wide default resource factory,
// used by pools created without WithFactory.
//
// Only one factory can be registered; subsequent calls replace the
// previous one. Pass nil to unregister. Backend packages register
// themselves via blank import:
//
//	import _ "github.com/gogpu/ctxpool/wgpu"
func RegisterFactory(f Factory) {
	factoryMu.Lock()
	defaultFactory = f
	factoryMu.Unlock()
	if f != nil {
		propagateLogger(f, Logger())
	}
}

// DefaultFactory returns the currently registered factory, or nil if none.
func DefaultFactory() Factory {
	factoryMu.RLock()
	f := defaultFactory
	factoryMu.RUnlock()
	return f
}
