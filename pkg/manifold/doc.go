// Package manifold infers the geometric shape of a document's embedding
// cloud: tree-like (hyperbolic), clustered or cyclic (spherical), or flat
// (euclidean).
//
// The default heuristic path measures the coefficient of variation of the
// sampled centroid distances; high dispersion indicates hierarchy, low
// dispersion indicates a shell around a common center. The opt-in exact
// path additionally computes four-point Gromov hyperbolicity over a
// reduced sample, bounded by an iteration budget so the O(N^4) scan can
// never stall a request.
//
// The package is an approximation tool: it derives curvature from sampled
// pairwise-distance statistics, not from a reconstructed Riemannian
// metric, and it trades rigor for interactive latency. Outputs are always
// finite and fall inside documented ranges; conditions that would break
// these guarantees degrade to an indeterminate result instead of failing
// the request.
package manifold
