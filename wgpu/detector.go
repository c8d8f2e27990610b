package wgpu

import (
	"fmt"

	"github.com/gogpu/ctxpool"
	"github.com/gogpu/wgpu/hal"
)

// AdapterDetector sizes the pool from the platform's adapter info.
//
// Detect enumerates adapters through the registered HAL driver, classifies
// the selected adapter's name through ctxpool.ClassifyDevice, and destroys
// the probe instance again. Any failure along the way, including no HAL
// driver being registered at all, resolves to the conservative default
// with Succeeded false; Detect never returns an error and never panics.
type AdapterDetector struct {
	// driver overrides the registered platform driver; tests set it to
	// hal/noop.API.
	driver halDriver
}

var _ ctxpool.Detector = (*AdapterDetector)(nil)

// NewAdapterDetector creates a detector.
func NewAdapterDetector() *AdapterDetector {
	return &AdapterDetector{}
}

// Detect inspects the rendering adapter and returns a recommended pool
// capacity.
func (d *AdapterDetector) Detect() ctxpool.Capability {
	driver := d.driver
	if driver == nil {
		pd, ok := platformDriver()
		if !ok {
			ctxpool.Logger().Warn("wgpu: capability probe found no HAL driver")
			return ctxpool.Capability{Capacity: ctxpool.DefaultCapacity}
		}
		driver = pd
	}

	instance, err := driver.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		ctxpool.Logger().Warn("wgpu: capability probe failed to create instance", "err", err)
		return ctxpool.Capability{Capacity: ctxpool.DefaultCapacity}
	}
	defer instance.Destroy()

	selected := selectAdapter(instance.EnumerateAdapters(nil))
	if selected == nil {
		ctxpool.Logger().Warn("wgpu: capability probe found no adapter")
		return ctxpool.Capability{Capacity: ctxpool.DefaultCapacity}
	}

	return ctxpool.Capability{
		Capacity:    ctxpool.ClassifyDevice(selected.Info.Name),
		DeviceLabel: fmt.Sprintf("%s (%v)", selected.Info.Name, selected.Info.DeviceType),
		Succeeded:   true,
	}
}
