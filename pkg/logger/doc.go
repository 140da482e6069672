// Package logger provides structured JSON logging for the geometry engine.
//
// It wraps Uber's Zap logger behind a small surface
// (Info/Debug/Warn/Error/Fatal) that accepts an optional error plus
// free-form field maps, so call sites never deal with zap.Field directly:
//
//	log := logger.NewLoggerClient(logger.NewConfig())
//	log.Info("manifold computed", nil, map[string]interface{}{
//		"document_id": "doc-42",
//		"curvature_k": -2.3,
//	})
//
// Every entry carries the process id and a "service" field so entries from
// multiple services can be separated in a shared log pipeline.
//
// The package exports an Fx module that provides *Logger and flushes
// buffered entries on shutdown. Other packages in this repository declare
// their own minimal Logger interface and accept anything that satisfies it;
// *Logger satisfies all of them.
//
// All methods are safe for concurrent use.
package logger
