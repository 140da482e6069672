// Package chit derives rendering parameters from manifold metrics.
//
// The generator is a pure function: identical metrics always produce an
// identical packet, there are no side effects, and the package holds no
// state. That keeps the mapping trivially unit-testable and guarantees
// that cached metrics reproduce the exact packet the original request saw.
package chit

import (
	"github.com/cipheratlas/geometry-engine/pkg/manifold"
)

// Color gradients per manifold class, ordered start → end stop.
var (
	gradientHyperbolic = []string{"#8b5cf6", "#06b6d4"} // purple → cyan
	gradientSpherical  = []string{"#f97316", "#fbbf24"} // orange → gold
	gradientEuclidean  = []string{"#6b7280", "#3b82f6"} // gray → blue
)

// FromMetrics maps manifold metrics onto a geometry packet. Indeterminate
// metrics receive the flat defaults so renderers always have a drawable
// surface.
func FromMetrics(m manifold.Metrics) GeometryPacket {
	packet := GeometryPacket{
		Spec:       SpecVersion,
		CurvatureK: m.CurvatureK,
		Epsilon:    m.Epsilon,
		Segments:   DefaultSegments,
	}

	switch m.Classification {
	case manifold.Hyperbolic:
		packet.SurfaceFn = SurfaceTractrix
		packet.ColorGradient = append([]string(nil), gradientHyperbolic...)
	case manifold.Spherical:
		packet.SurfaceFn = SurfaceSphere
		packet.ColorGradient = append([]string(nil), gradientSpherical...)
	default:
		packet.SurfaceFn = SurfacePlane
		packet.ColorGradient = append([]string(nil), gradientEuclidean...)
	}

	return packet
}

// WithSuperNodes returns a copy of the packet carrying the given
// structural decomposition.
func (p GeometryPacket) WithSuperNodes(nodes []SuperNode) GeometryPacket {
	p.SuperNodes = append([]SuperNode(nil), nodes...)
	return p
}

// Normalize clamps a caller-supplied packet into the documented ranges and
// fills defaulted fields. Used by the simulate endpoint so front-end
// fixtures can never inject out-of-range uniforms.
func Normalize(p GeometryPacket) GeometryPacket {
	p.Spec = SpecVersion
	p.CurvatureK = clamp(p.CurvatureK, -5, 5)
	p.Epsilon = clamp(p.Epsilon, 0, 1)
	if p.Segments <= 0 {
		p.Segments = DefaultSegments
	}
	switch p.SurfaceFn {
	case SurfaceTractrix, SurfaceSphere, SurfacePlane:
	default:
		p.SurfaceFn = surfaceForCurvature(p.CurvatureK)
	}
	if len(p.ColorGradient) < 2 {
		p.ColorGradient = gradientForSurface(p.SurfaceFn)
	}
	return p
}

// Demo returns the fixed synthetic packet served by the demo endpoint for
// UI smoke testing.
func Demo() GeometryPacket {
	return GeometryPacket{
		Spec:          SpecVersion,
		CurvatureK:    -2.5,
		Epsilon:       0.35,
		SurfaceFn:     SurfaceTractrix,
		ColorGradient: append([]string(nil), gradientHyperbolic...),
		Segments:      DefaultSegments,
		SuperNodes: []SuperNode{
			{ID: "alpha", X: 0.2, Y: 0.3, R: 0.12, Constellations: []string{"lyra", "cygnus"}},
			{ID: "beta", X: -0.4, Y: 0.1, R: 0.08, Constellations: []string{"orion"}},
			{ID: "gamma", X: 0.1, Y: -0.5, R: 0.05},
		},
	}
}

func surfaceForCurvature(k float64) string {
	switch {
	case k < -1:
		return SurfaceTractrix
	case k > 1:
		return SurfaceSphere
	default:
		return SurfacePlane
	}
}

func gradientForSurface(surface string) []string {
	switch surface {
	case SurfaceTractrix:
		return append([]string(nil), gradientHyperbolic...)
	case SurfaceSphere:
		return append([]string(nil), gradientSpherical...)
	default:
		return append([]string(nil), gradientEuclidean...)
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
