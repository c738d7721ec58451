// table.go: the Elastic Table — an open-addressing associative container
// that never relocates a stored entry, bounding worst-case probe length
// by a logarithmic function of the guaranteed free-space fraction δ.
//
// Based on the technique of Farach-Colton, Krapivin, and Kuszmaul (2025).
package elastichash

import (
	"math"

	"github.com/google/uuid"
)

// Table is an Elastic Table mapping keys of type K to values of type V.
// A Table is single-writer: concurrent mutation, or a writer with
// concurrent readers, is the caller's responsibility to serialize (§5).
type Table[K comparable, V any] struct {
	levels []*level[K, V]

	delta         float64
	probeConstant float64
	capacity      int // N
	maxOccupancy  int // floor(N*(1-delta))
	n             int // total occupancy

	hasher  Hasher[K]
	logger  Logger
	metrics MetricsCollector
	clock   TimeProvider
	id      string
}

// New constructs an Elastic Table from cfg. It validates cfg (§6) and
// returns InvalidParameter on misuse; it never returns a partially
// constructed table.
func New[K comparable, V any](cfg Config[K]) (*Table[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sizes := computeLevelSizes(cfg.Capacity)
	levels := make([]*level[K, V], len(sizes))
	for i, s := range sizes {
		levels[i] = newLevel[K, V](s)
	}

	t := &Table[K, V]{
		levels:        levels,
		delta:         cfg.Delta,
		probeConstant: cfg.ProbeConstant,
		capacity:      cfg.Capacity,
		maxOccupancy:  int(float64(cfg.Capacity) * (1 - cfg.Delta)),
		hasher:        cfg.HasherFactory(cfg.HashFunc, cfg.Seed),
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
		clock:         cfg.Clock,
		id:            uuid.NewString(),
	}
	t.logger.Info("elastic table constructed",
		"ts", t.clock.Now(), "id", t.id, "capacity", t.capacity, "levels", len(levels), "delta", cfg.Delta)
	return t, nil
}

// ID returns the table's random per-instance identifier, attached to the
// table's own log callouts so multiple tables in the same process can be
// told apart in a shared logging sink. MetricsCollector calls do not
// carry it.
func (t *Table[K, V]) ID() string { return t.id }

// computeLevelSizes partitions N geometrically into L = max(1, ⌈log₂N⌉)
// levels with sᵢ ≈ N/2^(i+1), the last level absorbing rounding so that
// Σsᵢ = N exactly (§3).
func computeLevelSizes(n int) []int {
	l := int(math.Ceil(math.Log2(float64(n))))
	if l < 1 {
		l = 1
	}
	sizes := make([]int, l)
	remaining := n
	for i := 0; i < l-1; i++ {
		s := n / (1 << uint(i+1))
		if s < 1 {
			s = 1
		}
		sizes[i] = s
		remaining -= s
	}
	sizes[l-1] = remaining
	return sizes
}

// Len returns the current total occupancy n.
func (t *Table[K, V]) Len() int { return t.n }

// Capacity returns the configured total capacity N.
func (t *Table[K, V]) Capacity() int { return t.capacity }

// LevelOccupancy returns a snapshot of the per-level occupancy vector nᵢ.
func (t *Table[K, V]) LevelOccupancy() []int {
	occ := make([]int, len(t.levels))
	for i, lv := range t.levels {
		occ[i] = lv.n
	}
	return occ
}

// LevelSizes returns the per-level capacity vector sᵢ.
func (t *Table[K, V]) LevelSizes() []int {
	sizes := make([]int, len(t.levels))
	for i, lv := range t.levels {
		sizes[i] = lv.size()
	}
	return sizes
}

// Insert stores value under key, per the insertion policy of §4.4:
//
//  1. if n >= floor(N*(1-δ)), fail with TableFull.
//  2. for each level i in ascending order: skip it without probing if
//     saturated (εᵢ <= δ); otherwise try_insert with the insertion-time
//     probe limit f(εᵢ,δ); on Placed, return success; on
//     ProbeLimitExceeded or LevelFull, advance to the next level.
//  3. if every level is exhausted, fail with TableFull.
//
// On failure the table's state is left completely unmodified (§7).
func (t *Table[K, V]) Insert(key K, value V) error {
	if t.n >= t.maxOccupancy {
		t.logger.Warn("insert rejected: table full",
			"ts", t.clock.Now(), "id", t.id, "occupancy", t.n, "max_occupancy", t.maxOccupancy)
		return NewErrTableFull(t.n, t.maxOccupancy, t.capacity)
	}

	for i, lv := range t.levels {
		if lv.saturated(t.delta) {
			continue
		}

		base := int(t.hasher.HashAt(key, i) % uint64(lv.size()))
		limit := insertionProbeLimit(lv.epsilon(), t.delta, t.probeConstant)

		before := lv.n
		switch lv.tryInsert(base, limit, key, value) {
		case placed:
			t.n += lv.n - before // 0 on an in-place overwrite, 1 on a fresh insert
			t.metrics.RecordInsert(i, limit)
			t.logger.Debug("insert placed",
				"ts", t.clock.Now(), "id", t.id, "level", i, "probes", limit)
			return nil
		case probeLimitExceeded, levelFull:
			t.metrics.RecordSpill(i)
			continue
		}
	}

	t.logger.Warn("insert rejected: every level declined the key",
		"ts", t.clock.Now(), "id", t.id, "occupancy", t.n)
	return NewErrTableFull(t.n, t.maxOccupancy, t.capacity)
}

// InsertStrict behaves like Insert, but first performs the same unbounded
// search InsertOrUpdate uses to detect an existing key, and rejects the
// call with a DuplicateKey error rather than overwriting it. It is the
// strict no-overwrite insertion variant §7 describes as optional: offered
// here because the table already needs the unbounded duplicate-detecting
// search for InsertOrUpdate, so exposing a no-overwrite sibling costs
// nothing extra.
func (t *Table[K, V]) InsertStrict(key K, value V) error {
	for i, lv := range t.levels {
		base := int(t.hasher.HashAt(key, i) % uint64(lv.size()))
		if lv.find(base, key) != nil {
			t.logger.Debug("insert rejected: duplicate key",
				"ts", t.clock.Now(), "id", t.id)
			return NewErrDuplicateKey()
		}
	}
	return t.Insert(key, value)
}

// InsertOrUpdate behaves like Insert, except it first performs an
// unbounded Search across all levels; if key is already present, its
// value is overwritten in place and no new slot is consumed. This is the
// opt-in variant §4.3/§9 describe for callers that cannot tolerate the
// bounded-probe insertion's documented duplicate-key subtlety (a key
// placed deeper than the current insertion-time probe limit will not be
// detected by a bare Insert, and a second Insert of the same key can
// create a shadowed duplicate).
func (t *Table[K, V]) InsertOrUpdate(key K, value V) error {
	for i, lv := range t.levels {
		base := int(t.hasher.HashAt(key, i) % uint64(lv.size()))
		if s := lv.find(base, key); s != nil {
			s.value = value
			return nil
		}
	}
	return t.Insert(key, value)
}

// Search returns the value stored under key, if any. It walks each level
// in ascending order using the unbounded search probe limit (§4.2) and
// returns the first match. Search never fails; absence is reported via
// the boolean return, never an error (§7).
func (t *Table[K, V]) Search(key K) (V, bool) {
	probes := 0
	for i, lv := range t.levels {
		base := int(t.hasher.HashAt(key, i) % uint64(lv.size()))
		seq := newProbeSequence(base, lv.size())
		for j := 0; j < lv.size(); j++ {
			s := &lv.slots[seq.at(j)]
			probes++
			if s.state == stateEmpty {
				break
			}
			if s.state == stateOccupied && s.key == key {
				t.metrics.RecordSearch(true, probes)
				t.logger.Debug("search hit", "ts", t.clock.Now(), "id", t.id, "level", i, "probes", probes)
				return s.value, true
			}
		}
	}
	var zero V
	t.metrics.RecordSearch(false, probes)
	t.logger.Debug("search miss", "ts", t.clock.Now(), "id", t.id, "probes", probes)
	return zero, false
}

// Remove deletes key from the table, if present, marking its slot a
// tombstone without relocating any other entry. It reports whether key
// was found and removed. Deletion is optional per §9; this table offers
// it because the slot state it requires (Tombstone) is already fully
// specified at the data-model level (§3).
func (t *Table[K, V]) Remove(key K) bool {
	for i, lv := range t.levels {
		base := int(t.hasher.HashAt(key, i) % uint64(lv.size()))
		if lv.remove(base, key) {
			t.n--
			t.logger.Debug("remove", "ts", t.clock.Now(), "id", t.id, "level", i)
			return true
		}
	}
	return false
}
