package pool

import "go.uber.org/atomic"

// Stats holds the pool's lifetime counters. Counters only ever grow; the
// live idle/in-use numbers come from Pool.Counts.
type Stats struct {
	// Created counts instances materialized from templates.
	Created atomic.Int64
	// Evicted counts instances destroyed because a kind's idle collection
	// was at capacity on return.
	Evicted atomic.Int64
	// Destroyed counts every instance finalization (evictions, clears,
	// defective returns).
	Destroyed atomic.Int64
	// Defects counts protocol violations: double releases, returns for
	// unregistered kinds, type mismatches.
	Defects atomic.Int64
}
