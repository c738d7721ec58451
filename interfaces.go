// interfaces.go: optional observability hooks for the Elastic Table.
//
// None of these interfaces affect correctness or the core algorithm —
// per spec §5 the table performs no internal synchronization and no
// background work, so every hook here is a synchronous, best-effort
// callout fired inline with the operation that triggered it.
package elastichash

import "github.com/agilira/go-timecache"

// Logger defines a minimal structured logging interface with zero
// overhead when unused (mirrors agilira-balios's Logger).
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger discards everything. It is the default when no Logger is
// configured, so callers pay nothing for logging they don't use.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}
func (NoOpLogger) Info(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Warn(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// MetricsCollector records operational counters about table usage: how
// many probes an insertion or search examined, and how often insertions
// spill from one level to the next. Implementations must be fast and
// non-blocking; they are called synchronously on the hot path.
type MetricsCollector interface {
	// RecordInsert is called once per successful Insert (including the
	// Insert that InsertStrict and InsertOrUpdate fall through to for a
	// key not yet present), reporting the level it finally landed in and
	// the insertion-time probe limit applied in that level. probes is the
	// most slots the attempt could examine, not a count of the slots it
	// did examine. An in-place update by InsertOrUpdate does not call it.
	RecordInsert(level, probes int)

	// RecordSpill is called each time an insertion exceeds a level's
	// probe limit (or finds it LevelFull) and advances to the next level.
	RecordSpill(fromLevel int)

	// RecordSearch is called once per Search call, reporting whether the
	// key was found and how many slots were examined across all levels
	// visited.
	RecordSearch(found bool, probes int)
}

// NoOpMetricsCollector discards everything. It is the default when no
// MetricsCollector is configured.
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) RecordInsert(level, probes int) {}
func (NoOpMetricsCollector) RecordSpill(fromLevel int)       {}
func (NoOpMetricsCollector) RecordSearch(found bool, probes int) {}

// TimeProvider supplies the current time for callers that want to
// timestamp log/metrics callouts. It is never consulted by the core
// algorithm itself.
type TimeProvider interface {
	// Now returns the current time in nanoseconds since epoch.
	Now() int64
}

// systemTimeProvider is the default TimeProvider, backed by
// github.com/agilira/go-timecache for a cached, low-overhead clock read
// (mirrors agilira-balios's systemTimeProvider).
type systemTimeProvider struct{}

func (systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
