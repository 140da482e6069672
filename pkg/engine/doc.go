// Package engine orchestrates the manifold analysis pipeline. One compute
// call checks the metrics cache, fetches embeddings from the vector store,
// runs the analyzer, derives the geometry packet and spectrum, fills the
// cache, enqueues a visualization event and archives the result.
//
// The service depends on small local interfaces so concrete components
// plug in without this package importing them. Optional collaborators
// (instrumentation, archive, tracer) attach via With* builders.
//
// Example usage:
//
//	svc := engine.NewService(cfg, source, analyzer, store, publisher, log).
//		WithInstrumentation(m).
//		WithArchiver(archive)
//	result, err := svc.Compute(ctx, "doc-1", manifold.ModeHeuristic, nil)
package engine
