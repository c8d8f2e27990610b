// Package wgpu provides the production resource factory and capability
// detector for ctxpool, built on the gogpu/wgpu Pure Go WebGPU
// implementation (Vulkan, Metal, or DX12 depending on the platform).
//
// # Registration
//
// Importing this package registers a DeviceFactory and an AdapterDetector
// as the process-wide defaults, and pulls in the Vulkan HAL driver so it
// registers via init():
//
//	import _ "github.com/gogpu/ctxpool/wgpu"
//
//	pool := ctxpool.New() // sized by the adapter, backed by real devices
//
// Registration is cheap: no GPU work happens until the pool's first
// Acquire. If no HAL driver or compatible adapter is found at that point,
// creation fails and the pool degrades consumers to their software path;
// the factory never substitutes a fake device. Build with the nogpu tag to
// skip registration entirely.
//
// # Standalone vs. shared devices
//
// DeviceFactory bootstraps its own instance and adapter, then creates one
// logical device per pool slot. When the host application already owns a
// GPU device (e.g., a gogpu window), use NewSharedFactory with the host's
// gpucontext.DeviceProvider instead; resources then borrow the host device
// and disposing them releases nothing the host still needs.
//
// # Loss
//
// gogpu/wgpu does not deliver asynchronous device-lost events yet.
// Integration layers that learn of device loss out of band (swapchain
// errors, surface invalidation) call MarkLost on the affected resource,
// which feeds the pool's reclamation path with the same exactly-once
// semantics a platform callback would have.
//
// # Errors
//
//   - ErrNoGPU: no compatible adapter found
//   - ErrNilProvider: NewSharedFactory received a nil provider
//   - ErrProviderHAL: the provider does not expose usable HAL types
package wgpu
