package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// noopFactory returns a factory wired to the GPU-less noop driver.
func noopFactory() *DeviceFactory {
	f := NewDeviceFactory()
	f.driver = noop.API{}
	return f
}

func TestDeviceFactoryCreate(t *testing.T) {
	f := noopFactory()
	defer f.Close()

	res, err := f.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	dr, ok := res.(*DeviceResource)
	if !ok {
		t.Fatalf("Create() returned %T, want *DeviceResource", res)
	}
	if dr.HalDevice() == nil {
		t.Error("created resource has no device")
	}
	if dr.HalQueue() == nil {
		t.Error("created resource has no queue")
	}
	if f.AdapterLabel() == "" {
		t.Error("AdapterLabel() empty after bootstrap")
	}

	dr.Dispose()
	if dr.HalDevice() != nil {
		t.Error("HalDevice() should be nil after Dispose")
	}
}

func TestDeviceFactoryCreatesDistinctDevices(t *testing.T) {
	f := noopFactory()
	defer f.Close()

	a, err := f.Create()
	if err != nil {
		t.Fatalf("first Create() error: %v", err)
	}
	b, err := f.Create()
	if err != nil {
		t.Fatalf("second Create() error: %v", err)
	}
	if a == b {
		t.Error("Create() returned the same resource twice")
	}
	a.Dispose()
	b.Dispose()
}

func TestDeviceFactoryCreateAfterClose(t *testing.T) {
	f := noopFactory()
	f.Close()
	f.Close() // idempotent

	if _, err := f.Create(); !errors.Is(err, ErrFactoryClosed) {
		t.Errorf("Create() after Close = %v, want ErrFactoryClosed", err)
	}
}

func TestSelectAdapterEmpty(t *testing.T) {
	if got := selectAdapter(nil); got != nil {
		t.Errorf("selectAdapter(nil) = %v, want nil", got)
	}
}

func TestSelectAdapterPrefersGPU(t *testing.T) {
	adapters := make([]hal.ExposedAdapter, 3)
	adapters[2].Info.DeviceType = gputypes.DeviceTypeDiscreteGPU

	if got := selectAdapter(adapters); got != &adapters[2] {
		t.Error("selectAdapter did not prefer the discrete GPU")
	}
}

func TestSelectAdapterFallsBackToFirst(t *testing.T) {
	adapters := make([]hal.ExposedAdapter, 2)

	if got := selectAdapter(adapters); got != &adapters[0] {
		t.Error("selectAdapter did not fall back to the first adapter")
	}
}
