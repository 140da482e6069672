package chit

// SpecVersion tags every packet so renderers can reject formats they do
// not understand.
const SpecVersion = "cgp/1"

// Surface functions understood by the 2D/3D renderers.
const (
	SurfaceTractrix = "tractrix"
	SurfaceSphere   = "sphere"
	SurfacePlane    = "plane"
)

// DefaultSegments is the mesh density handed to the renderer. Fifty
// segments keeps tractrix and sphere meshes under the vertex count that
// sustains interactive frame rates in the dashboard.
const DefaultSegments = 50

// SuperNode is a structural cluster placed on the rendered surface when a
// packet is driven by a document's decomposition rather than a synthetic
// demo.
type SuperNode struct {
	ID             string   `json:"id"`
	X              float64  `json:"x"`
	Y              float64  `json:"y"`
	R              float64  `json:"r"`
	Constellations []string `json:"constellations,omitempty"`
}

// GeometryPacket is the renderer-agnostic parameter bundle derived from
// manifold metrics. It is ephemeral: recomputed per request, never
// persisted.
type GeometryPacket struct {
	Spec          string      `json:"spec"`
	CurvatureK    float64     `json:"curvatureK"`
	Epsilon       float64     `json:"epsilon"`
	SurfaceFn     string      `json:"surfaceFn"`
	ColorGradient []string    `json:"colorGradient"`
	Segments      int         `json:"segments"`
	SuperNodes    []SuperNode `json:"superNodes,omitempty"`
}
