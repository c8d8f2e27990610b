package ctxpool

import (
	"fmt"
	"sync"
	"time"
)

// slot binds one consumer identity to a live resource.
// A slot exists for a consumer if and only if that consumer currently
// holds a resource.
type slot struct {
	resource   Resource
	surface    Surface
	lastAccess time.Time
	active     bool
}

// Stats is a read-only snapshot of the pool, computed fresh from the slot
// map on every call.
type Stats struct {
	// MaxCapacity is the current admission ceiling.
	MaxCapacity int

	// ActiveCount is the number of consumers currently holding a resource.
	ActiveCount int
}

// String returns a human-readable description of the stats.
func (s Stats) String() string {
	return fmt.Sprintf("%d/%d contexts in use", s.ActiveCount, s.MaxCapacity)
}

// Pool arbitrates a bounded set of drawing contexts across consumers.
//
// Each consumer moves through Unallocated -> Active -> (Released | Lost)
// -> Unallocated; no other transitions exist. The pool never evicts an
// active slot to make room for a new request: a consumer that holds a
// resource keeps it until it releases it or the platform revokes it.
//
// Capacity initializes lazily: the first Acquire runs the capability
// detector exactly once and caches the result until Reset. SetCapacity
// overrides the detected value.
//
// All fallible operations resolve to a nil handle or a no-op rather than
// an error, so callers need only nil-checks and idempotent cleanup calls.
type Pool struct {
	mu sync.Mutex

	slots               map[string]*slot
	maxCapacity         int
	capacityInitialized bool

	factory  Factory
	detector Detector
	now      func() time.Time
}

// New creates an empty pool with the conservative default capacity.
// The capacity is replaced by capability detection on the first Acquire
// unless WithCapacity pinned it.
func New(opts ...Option) *Pool {
	o := defaultPoolOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool{
		slots:               make(map[string]*slot),
		maxCapacity:         pickCapacity(o),
		capacityInitialized: o.capacitySet,
		factory:             o.factory,
		detector:            o.detector,
		now:                 o.now,
	}
}

func pickCapacity(o poolOptions) int {
	if o.capacitySet {
		return o.capacity
	}
	return DefaultCapacity
}

// Acquire allocates a resource to the given consumer, or returns nil when
// none can be provided. The surface reference is recorded on the slot for
// correlation; the pool never inspects it.
//
// Acquire is idempotent: if the consumer already holds a resource, the
// same handle is returned, its last-access timestamp is refreshed, and no
// capacity is consumed. A nil return means the pool is exhausted or
// resource creation failed; the consumer must use its software rendering
// path. Neither condition is an error.
func (p *Pool) Acquire(consumerID string, surface Surface) Resource {
	if consumerID == "" {
		Logger().Warn("ctxpool: acquire with empty consumer id")
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Idempotent re-acquire: overlapping lifecycle events may call
	// Acquire repeatedly for the same consumer without de-duplication.
	if s, ok := p.slots[consumerID]; ok && s.active {
		s.lastAccess = p.now()
		return s.resource
	}

	p.initCapacityLocked()

	if p.activeCountLocked() >= p.maxCapacity {
		Logger().Debug("ctxpool: pool exhausted",
			"consumer", consumerID, "capacity", p.maxCapacity)
		return nil
	}

	factory := p.factory
	if factory == nil {
		factory = DefaultFactory()
	}
	if factory == nil {
		Logger().Warn("ctxpool: no resource factory configured or registered",
			"consumer", consumerID)
		return nil
	}

	res, err := factory.Create()
	if err != nil || res == nil {
		// Creation failure degrades exactly like exhaustion from the
		// caller's point of view, but is reported distinctly.
		Logger().Warn("ctxpool: resource creation failed",
			"consumer", consumerID, "err", err)
		return nil
	}

	res.OnLoss(func() {
		p.handleLoss(consumerID, res)
	})

	p.slots[consumerID] = &slot{
		resource:   res,
		surface:    surface,
		lastAccess: p.now(),
		active:     true,
	}
	Logger().Debug("ctxpool: context acquired",
		"consumer", consumerID, "active", p.activeCountLocked(), "capacity", p.maxCapacity)
	return res
}

// Release disposes the consumer's resource and frees its slot. By the
// time Release returns, the slot is gone and the active count has
// decremented.
//
// Release is idempotent: releasing a consumer that holds nothing is a
// no-op, so cleanup paths may call it unconditionally.
func (p *Pool) Release(consumerID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.slots[consumerID]
	if !ok || !s.active {
		return
	}
	s.resource.Dispose()
	delete(p.slots, consumerID)
	Logger().Debug("ctxpool: context released",
		"consumer", consumerID, "active", p.activeCountLocked())
}

// handleLoss is the one-shot loss callback registered at acquire time.
// It reclaims the slot of whatever consumer still owns this exact
// resource instance. The identity check matters: the consumer id may have
// been released and reacquired with a different resource, and that newer
// slot must survive.
func (p *Pool) handleLoss(consumerID string, res Resource) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.slots[consumerID]
	if !ok || s.resource != res {
		return
	}
	// Already-revoked resources tolerate a redundant dispose call.
	s.resource.Dispose()
	delete(p.slots, consumerID)
	Logger().Warn("ctxpool: context lost",
		"consumer", consumerID, "active", p.activeCountLocked())
}

// HasResource reports whether the consumer currently holds a resource.
func (p *Pool) HasResource(consumerID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.slots[consumerID]
	return ok && s.active
}

// Stats returns a snapshot of the pool. It has no side effects and can be
// queried at any time, including before the first Acquire.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		MaxCapacity: p.maxCapacity,
		ActiveCount: p.activeCountLocked(),
	}
}

// SetCapacity overrides the pool capacity, pinning it so lazy detection
// will not replace it. Values below zero are clamped to zero.
//
// Shrinking below the current active count never revokes live slots; the
// pool simply admits nothing new until consumers release.
func (p *Pool) SetCapacity(n int) {
	if n < 0 {
		n = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maxCapacity = n
	p.capacityInitialized = true
}

// Reset disposes every slot's resource and returns the pool to its
// pristine, uninitialized state: empty slot map, default capacity, and
// capability detection re-armed for the next Acquire. Intended for test
// isolation.
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, s := range p.slots {
		s.resource.Dispose()
		delete(p.slots, id)
	}
	p.maxCapacity = DefaultCapacity
	p.capacityInitialized = false
}

// initCapacityLocked runs capability detection exactly once per pool
// lifetime. Detection failure of any kind resolves to DefaultCapacity.
func (p *Pool) initCapacityLocked() {
	if p.capacityInitialized {
		return
	}
	d := p.detector
	if d == nil {
		d = DefaultDetector()
	}
	c := detectCapacity(d)
	p.maxCapacity = c.Capacity
	p.capacityInitialized = true
	if c.Succeeded {
		Logger().Info("ctxpool: capability detected",
			"device", c.DeviceLabel, "capacity", c.Capacity)
	} else {
		Logger().Info("ctxpool: capability detection unavailable, using default",
			"capacity", c.Capacity)
	}
}

func (p *Pool) activeCountLocked() int {
	n := 0
	for _, s := range p.slots {
		if s.active {
			n++
		}
	}
	return n
}
