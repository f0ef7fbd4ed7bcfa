package metrics

import "runtime"

// RuntimeSnapshot holds a point-in-time reading of the Go runtime, logged
// after verbose runs.
type RuntimeSnapshot struct {
	HeapAlloc  uint64 // bytes in use by the heap
	Sys        uint64 // total bytes obtained from the OS
	NumGC      uint32 // completed GC cycles
	Goroutines int    // live goroutines
}

// ReadRuntime takes a RuntimeSnapshot.
func ReadRuntime() RuntimeSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeSnapshot{
		HeapAlloc:  m.HeapAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
}
