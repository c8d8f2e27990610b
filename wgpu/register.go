//go:build !nogpu

package wgpu

import (
	"github.com/gogpu/ctxpool"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func init() {
	// Registration does no GPU work: the factory bootstraps on the
	// pool's first Acquire and the detector probes on first detection.
	ctxpool.RegisterFactory(NewDeviceFactory())
	ctxpool.RegisterDetector(NewAdapterDetector())
}
