// Package profile provides optional runtime profiling for config-dz.
//
// Profiling integrates [github.com/pkg/profile] and is compiled in only
// when building with the "pprof" build tag:
//
//	go build -tags pprof
//
// Without the tag every operation is a no-op with zero overhead, so
// callers never need to guard profiling calls.
//
// A profiler is configured through a [Config] function and started with
// [Config.Start]:
//
//	var cfg profile.Config = func() (string, string, bool) {
//		return "cpu", "/tmp/profiles", true
//	}
//	defer cfg.Start().Stop()
//
// Supported modes when built with the tag: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, and trace. Use [Modes] to retrieve
// the list programmatically. Profile files are written to the configured
// directory with names matching the mode (cpu.pprof, heap.pprof, ...) and
// are analyzed with:
//
//	go tool pprof <binary> <dir>/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
