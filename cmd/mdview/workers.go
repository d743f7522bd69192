package main

import (
	"runtime"
)

// resolveWorkers determines the number of render workers.
// Priority: explicit flag > MDVIEW_WORKERS > GOMAXPROCS-based calculation.
// Never exceeds the number of files.
func resolveWorkers(flagWorkers, envWorkers, files int) int {
	n := flagWorkers
	if n <= 0 {
		n = envWorkers
	}
	if n <= 0 {
		// GOMAXPROCS is adjusted by automaxprocs for containers.
		// Rendering is CPU-bound, so one worker per available CPU.
		n = runtime.GOMAXPROCS(0)
	}

	if n > MaxWorkers {
		n = MaxWorkers
	}
	if files > 0 && n > files {
		n = files
	}
	if n < 1 {
		return 1
	}
	return n
}
