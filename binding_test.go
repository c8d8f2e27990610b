package ctxpool

import "testing"

// mockSurface implements SurfaceBinder, recording which rendering path it
// was last bound to.
type mockSurface struct {
	resource    Resource
	accelerated bool
	softBinds   int
}

func (s *mockSurface) BindAccelerated(r Resource) {
	s.resource = r
	s.accelerated = true
}

func (s *mockSurface) BindSoftware() {
	s.resource = nil
	s.accelerated = false
	s.softBinds++
}

func TestBindingAttachAccelerated(t *testing.T) {
	p, _ := newTestPool(t, 2)
	b := NewBinding(p)
	s := &mockSurface{}

	if !b.Attach("a", s) {
		t.Fatal("Attach should succeed with capacity available")
	}
	if !s.accelerated || s.resource == nil {
		t.Error("surface was not bound to the accelerated path")
	}
	if !p.HasResource("a") {
		t.Error("pool has no slot for the attached consumer")
	}
}

func TestBindingAttachFallsBackWhenExhausted(t *testing.T) {
	p, _ := newTestPool(t, 1)
	b := NewBinding(p)

	b.Attach("a", &mockSurface{})

	s := &mockSurface{}
	if b.Attach("b", s) {
		t.Fatal("Attach should report fallback with the pool full")
	}
	if s.accelerated {
		t.Error("exhausted surface left on the accelerated path")
	}
	if s.softBinds != 1 {
		t.Errorf("BindSoftware called %d times, want 1", s.softBinds)
	}
}

func TestBindingReattachKeepsIdentity(t *testing.T) {
	p, _ := newTestPool(t, 2)
	b := NewBinding(p)
	s := &mockSurface{}

	b.Attach("a", s)
	first := s.resource

	// Re-render: the host calls Attach again for the same consumer.
	b.Attach("a", s)

	if s.resource != first {
		t.Error("re-attach changed the resource identity")
	}
	if got := p.Stats().ActiveCount; got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}
}

func TestBindingDetachReleases(t *testing.T) {
	p, f := newTestPool(t, 2)
	b := NewBinding(p)

	b.Attach("a", &mockSurface{})
	b.Detach("a")

	if p.HasResource("a") {
		t.Error("slot survived Detach")
	}
	if got := f.created[0].disposeCount(); got != 1 {
		t.Errorf("Dispose called %d times, want 1", got)
	}

	// Speculative detach of an unknown consumer is a no-op.
	b.Detach("never-attached")
}

func TestBindingReattachAfterLoss(t *testing.T) {
	p, f := newTestPool(t, 1)
	b := NewBinding(p)
	s := &mockSurface{}

	b.Attach("a", s)
	f.created[0].simulateLoss()

	// Next render pass: the consumer re-attaches and gets a fresh context
	// since the loss freed capacity.
	if !b.Attach("a", s) {
		t.Fatal("re-attach after loss should succeed with capacity free")
	}
	if s.resource == f.created[0] {
		t.Error("re-attach returned the lost resource instance")
	}
}
