package elastichash

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// HashString returns a HashFunc for string keys backed by xxhash, the
// pack's idiomatic choice for fast non-cryptographic string hashing
// (mirrors the xxhash dependency pulled in by the pack's own caches for
// exactly this purpose). seed lets callers reproduce a deterministic
// probe trajectory across runs, satisfying the §8 "Determinism" property.
func HashString(seed uint64) HashFunc[string] {
	return func(key string) uint64 {
		return xxhash.Sum64String(key) ^ seed
	}
}

// HashUint64 returns a HashFunc for uint64 keys using the SplitMix64
// mixer, seeded for determinism.
func HashUint64(seed uint64) HashFunc[uint64] {
	return func(key uint64) uint64 {
		return splitMix64(key ^ seed)
	}
}

// HashInt returns a HashFunc for int keys using the SplitMix64 mixer.
func HashInt(seed uint64) HashFunc[int] {
	return func(key int) uint64 {
		return splitMix64(uint64(key) ^ seed)
	}
}

// HashInt64 returns a HashFunc for int64 keys using the SplitMix64 mixer.
func HashInt64(seed uint64) HashFunc[int64] {
	return func(key int64) uint64 {
		return splitMix64(uint64(key) ^ seed)
	}
}

// hashAnyComparable is the fallback base hash used when a Config supplies
// no HashFunc and K is not string. It uses hash/maphash's
// generic Comparable entry point, the only hashing facility in the pack
// (third-party or standard library) able to hash an arbitrary comparable
// type without reflection or an unsafe byte encoding; see DESIGN.md for
// why no third-party alternative covers this case.
func hashAnyComparable[K comparable](seed maphash.Seed) HashFunc[K] {
	return func(key K) uint64 {
		return maphash.Comparable(seed, key)
	}
}
