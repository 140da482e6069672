package bus

import (
	"encoding/json"
	"time"

	"github.com/cipheratlas/geometry-engine/pkg/chit"
	"github.com/cipheratlas/geometry-engine/pkg/zeta"
)

// VisualizationEvent is the payload published after a fresh manifold
// computation. It is transient: produced once, consumed by zero or more
// subscribers, never persisted by this service.
type VisualizationEvent struct {
	DocumentID string              `json:"document_id"`
	Packet     chit.GeometryPacket `json:"cgp"`
	Spectrum   zeta.Spectrum       `json:"spectrum"`
	Timestamp  time.Time           `json:"timestamp"`
}

// Encode serializes the event for the wire.
func (e VisualizationEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}
