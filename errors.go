// errors.go: structured error handling for elastic table operations.
//
// This file mirrors the pack's structured-error idiom: rich, queryable
// error context built on github.com/agilira/go-errors rather than bare
// sentinel errors or fmt.Errorf strings.
package elastichash

import (
	"github.com/agilira/go-errors"
)

// Error codes for Elastic Table operations, grouped by the taxonomy of
// spec §7.
const (
	// Construction-time misuse (§6 "Parameter validation").
	ErrCodeInvalidCapacity      errors.ErrorCode = "ELASTICHASH_INVALID_CAPACITY"
	ErrCodeInvalidDelta         errors.ErrorCode = "ELASTICHASH_INVALID_DELTA"
	ErrCodeInvalidProbeConstant errors.ErrorCode = "ELASTICHASH_INVALID_PROBE_CONSTANT"
	ErrCodeInvalidHashFunc      errors.ErrorCode = "ELASTICHASH_INVALID_HASH_FUNC"

	// Operation errors.
	ErrCodeTableFull    errors.ErrorCode = "ELASTICHASH_TABLE_FULL"
	ErrCodeDuplicateKey errors.ErrorCode = "ELASTICHASH_DUPLICATE_KEY"
)

const (
	msgInvalidCapacity      = "invalid capacity: must be >= 1"
	msgInvalidDelta         = "invalid delta: must satisfy 0 < delta < 1"
	msgInvalidProbeConstant = "invalid probe constant: must be > 0"
	msgInvalidHashFunc      = "invalid hash function: must be non-nil for this key type"
	msgTableFull            = "elastic table is full: capacity ceiling reached or all levels declined the key"
	msgDuplicateKey         = "key already present and strict no-overwrite insertion was requested"
)

// NewErrInvalidCapacity reports a construction-time capacity out of range.
func NewErrInvalidCapacity(capacity int) error {
	return errors.NewWithContext(ErrCodeInvalidCapacity, msgInvalidCapacity, map[string]interface{}{
		"provided_capacity": capacity,
		"minimum_required":  1,
	})
}

// NewErrInvalidDelta reports a construction-time delta out of range.
func NewErrInvalidDelta(delta float64) error {
	return errors.NewWithContext(ErrCodeInvalidDelta, msgInvalidDelta, map[string]interface{}{
		"provided_delta": delta,
		"valid_range":    "0.0 < delta < 1.0",
	})
}

// NewErrInvalidProbeConstant reports a construction-time probe constant
// that is not strictly positive.
func NewErrInvalidProbeConstant(c float64) error {
	return errors.NewWithContext(ErrCodeInvalidProbeConstant, msgInvalidProbeConstant, map[string]interface{}{
		"provided_c": c,
	})
}

// NewErrInvalidHashFunc reports a missing HashFunc for a key type that has
// no built-in default.
func NewErrInvalidHashFunc() error {
	return errors.NewWithField(ErrCodeInvalidHashFunc, msgInvalidHashFunc, "hash_func", nil)
}

// NewErrTableFull reports that an insertion was refused: either the
// δ-based occupancy ceiling was reached, or every level declined the key
// within its probe limit. The table's state is left unmodified (§7).
func NewErrTableFull(n, maxOccupancy, capacity int) error {
	return errors.NewWithContext(ErrCodeTableFull, msgTableFull, map[string]interface{}{
		"occupancy":     n,
		"max_occupancy": maxOccupancy,
		"capacity":      capacity,
	}).AsRetryable() // may succeed later if the caller removes entries first
}

// NewErrDuplicateKey reports a rejected duplicate key under strict
// no-overwrite insertion (§7 "(Optional) DuplicateKey"), returned by
// Table.InsertStrict.
func NewErrDuplicateKey() error {
	return errors.NewWithField(ErrCodeDuplicateKey, msgDuplicateKey, "reason", "strict_no_overwrite")
}

// IsDuplicateKey reports whether err is a rejected-duplicate error from
// InsertStrict.
func IsDuplicateKey(err error) bool {
	return errors.HasCode(err, ErrCodeDuplicateKey)
}

// IsTableFull reports whether err is (or wraps) a TableFull error.
func IsTableFull(err error) bool {
	return errors.HasCode(err, ErrCodeTableFull)
}

// IsInvalidParameter reports whether err is a construction-time parameter
// validation error.
func IsInvalidParameter(err error) bool {
	switch {
	case errors.HasCode(err, ErrCodeInvalidCapacity):
		return true
	case errors.HasCode(err, ErrCodeInvalidDelta):
		return true
	case errors.HasCode(err, ErrCodeInvalidProbeConstant):
		return true
	case errors.HasCode(err, ErrCodeInvalidHashFunc):
		return true
	}
	return false
}
