package wgpu

import "errors"

// Common errors returned by this package.
var (
	// ErrNoGPU is returned when no compatible GPU adapter is available.
	ErrNoGPU = errors.New("wgpu: no compatible GPU adapter")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("wgpu: nil DeviceProvider")

	// ErrProviderHAL is returned when a device provider does not expose
	// usable HAL device and queue types.
	ErrProviderHAL = errors.New("wgpu: provider does not expose HAL types")

	// ErrFactoryClosed is returned when Create is called on a closed
	// factory.
	ErrFactoryClosed = errors.New("wgpu: factory is closed")
)
