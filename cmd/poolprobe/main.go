// Command poolprobe inspects the rendering adapter, prints the detected
// pool capability, and dry-runs an acquire/release cycle against it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/ctxpool"
	"github.com/gogpu/ctxpool/wgpu"
)

func main() {
	var (
		consumers = flag.Int("consumers", 8, "number of consumers to simulate")
		verbose   = flag.Bool("v", false, "enable debug logging")
		dryRun    = flag.Bool("probe-only", false, "detect capability without creating devices")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	ctxpool.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	detector := wgpu.NewAdapterDetector()
	capability := detector.Detect()
	if capability.Succeeded {
		fmt.Printf("adapter:  %s\n", capability.DeviceLabel)
	} else {
		fmt.Println("adapter:  not detected")
	}
	fmt.Printf("capacity: %d\n", capability.Capacity)

	if *dryRun {
		return
	}

	factory := wgpu.NewDeviceFactory()
	defer factory.Close()

	pool := ctxpool.New(
		ctxpool.WithFactory(factory),
		ctxpool.WithDetector(detector),
	)
	defer pool.Reset()

	accelerated := 0
	for i := range *consumers {
		id := fmt.Sprintf("probe-%d", i)
		if pool.Acquire(id, nil) != nil {
			accelerated++
		}
	}

	stats := pool.Stats()
	fmt.Printf("dry run:  %d consumers, %d accelerated, %d on software fallback\n",
		*consumers, accelerated, *consumers-accelerated)
	fmt.Printf("stats:    %s\n", stats)
}
