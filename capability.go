package ctxpool

import (
	"strings"
	"sync"
)

// DefaultCapacity is the conservative pool capacity used when capability
// detection is unavailable, fails, or does not recognize the device.
// It stays well below the smallest known platform context limit.
const DefaultCapacity = 4

// Capability is the result of a capability detection run.
type Capability struct {
	// Capacity is the recommended maximum number of concurrently
	// allocated contexts.
	Capacity int

	// DeviceLabel is a human-readable description of the inspected
	// device, or empty when detection could not identify one.
	DeviceLabel string

	// Succeeded reports whether the device was actually inspected.
	// When false, Capacity carries the conservative default.
	Succeeded bool
}

// Detector sizes the pool by inspecting the rendering device.
//
// Detect must never panic and never block for long; the pool invokes it
// lazily on the first Acquire and caches the result for the pool's
// lifetime. Implementations that cannot probe the device return the
// conservative default with Succeeded set to false.
type Detector interface {
	Detect() Capability
}

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func() Capability

// Detect calls f.
func (f DetectorFunc) Detect() Capability { return f() }

// failedCapability is what every detection failure resolves to.
func failedCapability() Capability {
	return Capability{Capacity: DefaultCapacity, Succeeded: false}
}

// detectCapacity runs d, converting any failure mode (nil detector, panic,
// nonsensical capacity) into the conservative default. Callers can rely on
// the returned capacity being positive.
func detectCapacity(d Detector) (c Capability) {
	if d == nil {
		return failedCapability()
	}
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("ctxpool: capability detector panicked", "panic", r)
			c = failedCapability()
		}
	}()
	c = d.Detect()
	if c.Capacity <= 0 {
		c = Capability{Capacity: DefaultCapacity, DeviceLabel: c.DeviceLabel, Succeeded: false}
	}
	return c
}

// deviceCapacities maps known device/vendor substrings to a recommended
// capacity. Matched in order against the lowercased device label, so
// software rasterizers are recognized before the vendors they emulate.
var deviceCapacities = []struct {
	substr   string
	capacity int
}{
	// Software rasterizers: contexts are cheap CPU objects but each one
	// burns memory and the fallback path is just as fast.
	{"llvmpipe", 2},
	{"swiftshader", 2},
	{"lavapipe", 2},
	{"softpipe", 2},
	{"microsoft basic render", 2},

	// Discrete silicon with dedicated memory.
	{"geforce", 16},
	{"quadro", 16},
	{"nvidia", 16},
	{"radeon", 16},
	// "intel arc", not bare "arc": labels like "RDNA Architecture" would
	// otherwise match. Trademark marks are stripped before lookup.
	{"intel arc", 12},

	// Integrated, shared-memory silicon.
	{"apple", 8},
	{"iris", 8},
	{"uhd graphics", 8},
	{"hd graphics", 8},
	{"intel", 8},
	{"adreno", 6},
	{"mali", 6},
}

// ClassifyDevice maps a device label (adapter name, optionally with the
// vendor appended) to a recommended capacity. Unrecognized labels map to
// DefaultCapacity. Matching is case-insensitive and ignores the "(R)" and
// "(TM)" marks vendors embed in adapter names.
func ClassifyDevice(label string) int {
	l := strings.ToLower(label)
	l = strings.ReplaceAll(l, "(r)", "")
	l = strings.ReplaceAll(l, "(tm)", "")
	for _, dc := range deviceCapacities {
		if strings.Contains(l, dc.substr) {
			return dc.capacity
		}
	}
	return DefaultCapacity
}

var (
	detectorMu      sync.RWMutex
	defaultDetector Detector
)

// RegisterDetector registers the process-wide default capability detector,
// used by pools created without WithDetector. Pass nil to unregister.
// Backend packages register themselves via blank import alongside their
// factory.
func RegisterDetector(d Detector) {
	detectorMu.Lock()
	defaultDetector = d
	detectorMu.Unlock()
}

// DefaultDetector returns the currently registered detector, or nil if none.
func DefaultDetector() Detector {
	detectorMu.RLock()
	d := defaultDetector
	detectorMu.RUnlock()
	return d
}
