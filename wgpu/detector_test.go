package wgpu

import (
	"testing"

	"github.com/gogpu/ctxpool"
	"github.com/gogpu/wgpu/hal/noop"
)

func TestAdapterDetectorDetect(t *testing.T) {
	d := NewAdapterDetector()
	d.driver = noop.API{}

	c := d.Detect()
	if !c.Succeeded {
		t.Error("Detect() with a working driver reported failure")
	}
	if c.Capacity <= 0 {
		t.Errorf("Capacity = %d, want > 0", c.Capacity)
	}
	if c.DeviceLabel == "" {
		t.Error("Detect() left DeviceLabel empty")
	}
}

func TestAdapterDetectorPoolIntegration(t *testing.T) {
	d := NewAdapterDetector()
	d.driver = noop.API{}

	f := noopFactory()
	defer f.Close()

	p := ctxpool.New(ctxpool.WithFactory(f), ctxpool.WithDetector(d))
	res := p.Acquire("pane-1", nil)
	if res == nil {
		t.Fatal("Acquire returned nil with a working driver")
	}
	if got := p.Stats().ActiveCount; got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}
	p.Release("pane-1")
}
