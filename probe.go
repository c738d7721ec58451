package elastichash

import "math"

// probeSequence walks the quadratic probe sequence of §4.2: the j-th probe
// index within a level of size s starting at base b is (b+j+j²) mod s.
// Per the spec, this is the literal recurrence to implement; the engine
// does not attempt to detect or skip repeated indices within a walk, it
// simply bounds the number of steps taken.
type probeSequence struct {
	base int
	size int
}

func newProbeSequence(base, size int) probeSequence {
	b := base % size
	if b < 0 {
		b += size
	}
	return probeSequence{base: b, size: size}
}

// at returns the j-th probe index (j = 0, 1, 2, ...).
func (p probeSequence) at(j int) int {
	idx := (p.base + j + j*j) % p.size
	if idx < 0 {
		idx += p.size
	}
	return idx
}

// epsilonMin is the floor applied to a level's free-space fraction before
// computing a probe limit, per §4.2 ("clamped to a small positive ε_min,
// e.g. 1/sᵢ").
func epsilonMin(levelSize int) float64 {
	if levelSize <= 0 {
		return 1
	}
	return 1 / float64(levelSize)
}

// insertionProbeLimit computes f(ε,δ) = ⌈c·min(log₂(1/ε), log₂(1/δ))⌉,
// the maximum number of slots an insertion attempt examines within a
// level before declaring ProbeLimitExceeded and spilling to the next
// level (§4.2).
func insertionProbeLimit(epsilon, delta, c float64) int {
	limit := c * math.Min(log2Inv(epsilon), log2Inv(delta))
	if limit < 1 {
		limit = 1
	}
	return int(math.Ceil(limit))
}

// log2Inv returns log2(1/x), guarding against x <= 0.
func log2Inv(x float64) float64 {
	if x <= 0 {
		x = math.SmallestNonzeroFloat64
	}
	return math.Log2(1 / x)
}
