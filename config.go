// config.go: configuration for the Elastic Table.
package elastichash

import "hash/maphash"

// DefaultProbeConstant is the default value of the probe-limit constant
// c used in f(ε,δ) = ⌈c·min(log₂(1/ε), log₂(1/δ))⌉ (§3, §9: "the source
// appears to use c≈4").
const DefaultProbeConstant = 4.0

// Config holds the construction-time parameters for a Table[K,V].
type Config[K comparable] struct {
	// Capacity is the total number of slots N across all levels.
	// Must be >= 1.
	Capacity int

	// Delta is the target free-space fraction δ. Must satisfy 0 < δ < 1.
	Delta float64

	// ProbeConstant is the probe-limit constant c. If 0,
	// DefaultProbeConstant is used; a negative value is rejected as
	// InvalidParameter.
	ProbeConstant float64

	// HashFunc is the base hash function for K. If nil, a built-in
	// default is selected: HashString(0) for string keys, and a
	// hash/maphash-based fallback for any other comparable K.
	HashFunc HashFunc[K]

	// HasherFactory builds the per-table Hasher from HashFunc and Seed.
	// If nil, DefaultHasherFactory[K]() is used.
	HasherFactory HasherFactory[K]

	// Seed seeds the table's Hasher. If 0, a random seed is generated
	// at construction so that distinct tables don't share a probe
	// trajectory; callers that need the §8 "Determinism" property
	// (identical insertion sequences producing identical per-level
	// occupancy vectors) should set this explicitly. A fixed Seed alone
	// gives that property only when the base HashFunc is itself
	// deterministic: the built-in fallback for key types other than
	// string draws a fresh random maphash seed for every table.
	Seed uint64

	// Logger receives optional structured log callouts. Defaults to
	// NoOpLogger.
	Logger Logger

	// Metrics receives optional operation counters. Defaults to
	// NoOpMetricsCollector.
	Metrics MetricsCollector

	// Clock supplies timestamps for logging/metrics callouts only; it
	// never affects table correctness. Defaults to a go-timecache-backed
	// clock.
	Clock TimeProvider
}

// Validate normalizes zero-value Config fields to their documented
// defaults and reports construction-time misuse as InvalidParameter
// errors (§6). It never mutates Capacity or Delta once they pass
// validation.
func (c *Config[K]) Validate() error {
	if c.Capacity < 1 {
		return NewErrInvalidCapacity(c.Capacity)
	}
	if c.Delta <= 0 || c.Delta >= 1 {
		return NewErrInvalidDelta(c.Delta)
	}
	if c.ProbeConstant < 0 {
		return NewErrInvalidProbeConstant(c.ProbeConstant)
	}
	if c.ProbeConstant == 0 {
		c.ProbeConstant = DefaultProbeConstant
	}

	if c.HasherFactory == nil {
		c.HasherFactory = DefaultHasherFactory[K]()
	}
	if c.HashFunc == nil {
		fallback, ok := defaultHashFunc[K]()
		if !ok {
			return NewErrInvalidHashFunc()
		}
		c.HashFunc = fallback
	}
	if c.Seed == 0 {
		c.Seed = randomSeed()
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}
	if c.Metrics == nil {
		c.Metrics = NoOpMetricsCollector{}
	}
	if c.Clock == nil {
		c.Clock = systemTimeProvider{}
	}
	return nil
}

// defaultHashFunc returns the library's zero-config HashFunc for string
// keys and falls back to hashAnyComparable
// for any other comparable K. ok is false only if K cannot be hashed at
// all by the fallback (never happens in practice, since maphash.Comparable
// accepts any comparable type), kept for symmetry with the error path.
func defaultHashFunc[K comparable]() (HashFunc[K], bool) {
	var zero K
	switch any(zero).(type) {
	case string:
		f := HashString(0)
		return any(f).(HashFunc[K]), true
	default:
		return hashAnyComparable[K](maphash.MakeSeed()), true
	}
}

// randomSeed produces a non-zero random seed for tables that don't ask
// for a specific one, using the same maphash source as the generic
// fallback hasher so we don't need an extra source of entropy.
func randomSeed() uint64 {
	seed := maphash.MakeSeed()
	var h maphash.Hash
	h.SetSeed(seed)
	v := h.Sum64()
	if v == 0 {
		v = 1
	}
	return v
}
