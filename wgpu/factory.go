package wgpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/ctxpool"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// halDriver is the subset of the wgpu HAL backend API the factory and
// detector use. Satisfied by the drivers hal.GetBackend returns and by
// hal/noop.API in tests.
type halDriver interface {
	CreateInstance(*hal.InstanceDescriptor) (hal.Instance, error)
}

// platformDriver returns the registered Vulkan HAL driver. It reports
// false when no driver registered itself, which means real hardware is
// unreachable and callers must degrade honestly rather than pretend.
func platformDriver() (halDriver, bool) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, false
	}
	return backend, true
}

// selectAdapter picks the adapter to pool devices from: the first
// discrete or integrated GPU, falling back to the first adapter of any
// kind. Returns nil when none exist.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return &adapters[i]
		}
	}
	if len(adapters) == 0 {
		return nil
	}
	return &adapters[0]
}

// DeviceFactory creates one wgpu logical device per pool slot.
//
// The factory bootstraps lazily: the HAL instance is created and an
// adapter selected on the first Create call, so constructing (and
// registering) a factory does no GPU work. When no HAL driver is
// registered or the driver exposes no adapters, Create returns ErrNoGPU
// and the pool degrades consumers to their software path; the factory
// never manufactures a device it cannot back with real hardware.
type DeviceFactory struct {
	mu sync.Mutex

	logger *slog.Logger

	// driver overrides the registered platform driver; tests set it to
	// hal/noop.API.
	driver halDriver

	instance     hal.Instance
	adapter      *hal.ExposedAdapter
	adapterLabel string
	bootstrapped bool
	closed       bool
}

var _ ctxpool.Factory = (*DeviceFactory)(nil)

// NewDeviceFactory creates a factory. No GPU resources are touched until
// the first Create.
func NewDeviceFactory() *DeviceFactory {
	return &DeviceFactory{}
}

// SetLogger sets a dedicated logger for this factory. By default the
// factory shares the ctxpool package logger.
func (f *DeviceFactory) SetLogger(l *slog.Logger) {
	f.mu.Lock()
	f.logger = l
	f.mu.Unlock()
}

// loggerLocked returns the factory logger. Callers hold f.mu.
func (f *DeviceFactory) loggerLocked() *slog.Logger {
	if f.logger != nil {
		return f.logger
	}
	return ctxpool.Logger()
}

// Create produces a new device-backed resource. Returns an error when no
// HAL driver is registered, no adapter exists, or opening the device
// fails; the resource is never partially initialized.
func (f *DeviceFactory) Create() (ctxpool.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrFactoryClosed
	}
	if err := f.bootstrapLocked(); err != nil {
		return nil, err
	}

	openDev, err := f.adapter.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}

	f.loggerLocked().Debug("wgpu: device created", "adapter", f.adapterLabel)
	return &DeviceResource{device: openDev.Device, queue: openDev.Queue}, nil
}

// bootstrapLocked creates the HAL instance and selects an adapter once.
// Callers hold f.mu.
func (f *DeviceFactory) bootstrapLocked() error {
	if f.bootstrapped {
		return nil
	}

	driver := f.driver
	if driver == nil {
		d, ok := platformDriver()
		if !ok {
			return fmt.Errorf("%w: no HAL driver registered", ErrNoGPU)
		}
		driver = d
	}

	instance, err := driver.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("%w: create instance: %w", ErrNoGPU, err)
	}

	adapters := instance.EnumerateAdapters(nil)
	selected := selectAdapter(adapters)
	if selected == nil {
		instance.Destroy()
		return fmt.Errorf("%w: no adapters exposed", ErrNoGPU)
	}

	f.instance = instance
	f.adapter = selected
	f.adapterLabel = fmt.Sprintf("%s (%v)", selected.Info.Name, selected.Info.DeviceType)

	f.bootstrapped = true
	f.loggerLocked().Info("wgpu: adapter selected", "adapter", f.adapterLabel)
	return nil
}

// AdapterLabel returns a human-readable description of the selected
// adapter, or empty before the first Create.
func (f *DeviceFactory) AdapterLabel() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.adapterLabel
}

// Close destroys the HAL instance. Resources already handed to a pool
// stay valid until the pool disposes them; the factory itself must not
// be used after Close.
func (f *DeviceFactory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true

	if f.instance != nil {
		f.instance.Destroy()
		f.instance = nil
	}
	f.adapter = nil
}

// halProvider is the structural interface a device provider must satisfy
// to lend its device. Matches the gogpu window provider shape.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// SharedFactory creates resources that borrow a host-owned device instead
// of creating standalone ones. Use this when the application already runs
// a gogpu window: a second instance would compete with the host's device
// on some drivers.
type SharedFactory struct {
	provider gpucontext.DeviceProvider
	device   hal.Device
	queue    hal.Queue
}

var _ ctxpool.Factory = (*SharedFactory)(nil)

// NewSharedFactory creates a factory around the host's device provider,
// typically obtained from gogpu.App.GPUContextProvider().
//
// Returns ErrNilProvider for a nil provider and ErrProviderHAL when the
// provider does not expose HAL device and queue types.
func NewSharedFactory(provider gpucontext.DeviceProvider) (*SharedFactory, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProviderHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProviderHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProviderHAL)
	}
	return &SharedFactory{provider: provider, device: device, queue: queue}, nil
}

// Create produces a resource borrowing the host device.
func (f *SharedFactory) Create() (ctxpool.Resource, error) {
	return &SharedResource{device: f.device, queue: f.queue}, nil
}

// Provider returns the device provider this factory borrows from.
func (f *SharedFactory) Provider() gpucontext.DeviceProvider {
	return f.provider
}
