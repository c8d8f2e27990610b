package wgpu

import (
	"testing"
	"time"
)

func TestLossCallbackFiresOnce(t *testing.T) {
	r := &DeviceResource{}

	calls := 0
	r.OnLoss(func() { calls++ })

	r.MarkLost()
	r.MarkLost()

	if calls != 1 {
		t.Errorf("loss callback fired %d times, want 1", calls)
	}
}

func TestLossCallbackAllRegistrationsFire(t *testing.T) {
	r := &DeviceResource{}

	a, b := 0, 0
	r.OnLoss(func() { a++ })
	r.OnLoss(func() { b++ })

	r.MarkLost()

	if a != 1 || b != 1 {
		t.Errorf("callbacks fired a=%d b=%d, want 1 each", a, b)
	}
}

func TestOnLossAfterLostStillFires(t *testing.T) {
	r := &DeviceResource{}
	r.MarkLost()

	fired := make(chan struct{})
	r.OnLoss(func() { close(fired) })

	// Late registration fires asynchronously, never from inside OnLoss.
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback registered after loss never fired")
	}
}

func TestOnLossNilCallback(t *testing.T) {
	r := &DeviceResource{}
	r.OnLoss(nil)
	r.MarkLost() // must not panic
}

func TestDeviceResourceDisposeIdempotent(t *testing.T) {
	// Nil device: nothing to destroy, only the bookkeeping paths run.
	r := &DeviceResource{}
	r.Dispose()
	r.Dispose()

	if r.HalDevice() != nil {
		t.Error("HalDevice() should be nil after Dispose")
	}
	if r.HalQueue() != nil {
		t.Error("HalQueue() should be nil after Dispose")
	}
}

func TestDeviceResourceDisposeAfterLoss(t *testing.T) {
	// The pool disposes a resource it was just told is lost; the
	// redundant dispose must be tolerated.
	r := &DeviceResource{}
	r.MarkLost()
	r.Dispose()
}

func TestSharedResourceDisposeDetaches(t *testing.T) {
	r := &SharedResource{}
	r.Dispose()
	r.Dispose()

	if r.HalDevice() != nil {
		t.Error("HalDevice() should be nil after Dispose")
	}
	if r.HalQueue() != nil {
		t.Error("HalQueue() should be nil after Dispose")
	}
}

func TestSharedFactoryNilProvider(t *testing.T) {
	if _, err := NewSharedFactory(nil); err != ErrNilProvider {
		t.Errorf("NewSharedFactory(nil) = %v, want ErrNilProvider", err)
	}
}
