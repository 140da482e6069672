// Package server exposes the geometry engine over HTTP.
//
// Routes:
//
//	POST /cipher/geometry/visualize_manifold  compute metrics, packet and spectrum
//	GET  /cipher/geometry/demo-packet         fixed synthetic packet for UI smoke tests
//	POST /cipher/geometry/simulate            normalize and echo a caller packet
//	POST /cipher/geometry/invalidate          drop cached results for a document
//	GET  /cipher/geometry/history             archived computations, newest first
//	GET  /healthz                             liveness probe
//
// Malformed bodies and unknown modes answer 400; an unreachable vector
// store answers 502. The server is plain net/http behind an fx lifecycle.
package server
