// Package tracer wires OpenTelemetry distributed tracing into the
// geometry engine.
//
// NewClient builds a TracerProvider tagged with the service name and
// deployment environment, optionally attaches an OTLP HTTP exporter, and
// registers the provider and a W3C Trace Context propagator globally.
// The engine opens a span per manifold computation and the HTTP layer
// links incoming requests to upstream traces via the carrier helpers.
//
// Export is disabled by default so local development needs no collector;
// set TRACER_ENABLE_EXPORT=true and the standard OTEL_EXPORTER_OTLP_*
// variables to ship traces.
package tracer
