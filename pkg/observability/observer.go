package observability

import "time"

// Observer receives events about operations performed by infrastructure
// clients (cache, bus, vector store). Implementations typically translate
// these into prometheus metrics; a nil observer is always allowed and
// means "no instrumentation".
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the client that performed the operation, e.g. "cache",
	// "bus", "vectordb".
	Component string

	// Operation is the verb, e.g. "get", "put", "publish", "fetch".
	Operation string

	// Resource is the primary target of the operation, e.g. a cache key
	// prefix, an exchange name, a collection name.
	Resource string

	// SubResource further qualifies the target, e.g. a routing key or a
	// cache mode suffix. May be empty.
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Err is the error returned by the operation, or nil on success.
	Err error

	// Size is an operation-specific payload size in bytes, or 0.
	Size int64
}

// Observe is a convenience helper that forwards to obs when it is non-nil.
func Observe(obs Observer, ctx OperationContext) {
	if obs == nil {
		return
	}
	obs.ObserveOperation(ctx)
}
