// Package postgres provides the GORM-backed persistence layer and the
// manifold metrics archive built on it.
//
// The wrapper guards all database access with a read-write mutex so the
// underlying client can be swapped by the reconnection goroutine, and it
// ships its own health monitoring: MonitorConnection pings the database
// on an interval and RetryConnection re-dials until the connection is
// back. Both run under the fx lifecycle.
//
// The MetricsArchive is deliberately best-effort from the caller's point
// of view: the engine archives computations after responding, and a
// failed insert costs a log line, never a failed request. The history
// endpoint reads the archive back per document.
package postgres
