// Package elastichash implements an Elastic Hash Table: an
// open-addressing associative container that never relocates a stored
// entry after insertion, while bounding worst-case probe length by a
// logarithmic function of a configured free-space fraction δ. It is
// based on the technique of Farach-Colton, Krapivin, and Kuszmaul
// (2025).
//
// # Overview
//
// A Table partitions its N slots into L geometrically-sized levels. An
// insertion walks levels in ascending order; within a level it probes a
// quadratic sequence bounded by a probe limit derived from that level's
// current occupancy, and spills to the next level once that limit is
// exceeded. A search walks the same levels with an unbounded
// within-level probe limit, so it will always find a key that was ever
// successfully placed.
//
// # Quick start
//
//	t, err := elastichash.New[string, int](elastichash.Config[string]{
//	    Capacity: 1024,
//	    Delta:    0.1,
//	})
//	if err != nil {
//	    // InvalidParameter
//	}
//	if err := t.Insert("answer", 42); err != nil {
//	    // TableFull
//	}
//	v, ok := t.Search("answer")
//
// # Concurrency
//
// A Table is single-writer: it performs no internal synchronization.
// Concurrent readers are safe on a quiescent table; a writer with
// concurrent readers, or concurrent writers, must be serialized by the
// caller.
//
// # Scope
//
// This package implements only the core table: level layout, hashing,
// probing and the insertion policy. Wire bindings, CLI/HTML front ends,
// persistence, and dynamic growth/rehashing are explicitly out of scope
// — a Table's capacity is fixed for its lifetime.
package elastichash
