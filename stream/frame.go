package stream

import (
	"encoding/json"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/vmath"
)

// Frame is the JSON document sent per snapshot
type Frame struct {
	Tick   uint64       `json:"tick"`
	Bodies []BodyFrame  `json:"bodies"`
	Stars  [][3]float64 `json:"stars,omitempty"`
}

// BodyFrame is one body within a Frame
type BodyFrame struct {
	ID       string     `json:"id"`
	Position [3]float64 `json:"position"`
	Spin     float64    `json:"spin"`
	Faulted  bool       `json:"faulted"`
}

func point(v vmath.Vec3F) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// NewFrame converts a snapshot; stars are included only when withStars is set
func NewFrame(s *engine.Snapshot, withStars bool) Frame {
	f := Frame{
		Tick:   s.Tick,
		Bodies: make([]BodyFrame, len(s.Bodies)),
	}
	for i, b := range s.Bodies {
		f.Bodies[i] = BodyFrame{
			ID:       b.ID,
			Position: point(b.Position),
			Spin:     b.Spin,
			Faulted:  b.Faulted,
		}
	}
	if withStars {
		f.Stars = make([][3]float64, len(s.Stars))
		for i, p := range s.Stars {
			f.Stars[i] = point(p)
		}
	}
	return f
}

// Encode marshals a snapshot into a text frame payload
func Encode(s *engine.Snapshot, withStars bool) ([]byte, error) {
	return json.Marshal(NewFrame(s, withStars))
}

// RingSource yields static ring polylines; engine.Simulation satisfies it
type RingSource interface {
	BodyIDs() []string
	RingPolylineOf(id string) ([]vmath.Vec3F, error)
}

// EncodeRings collects every ring once; rings never change after a body is added
// Bodies without a ring are omitted
func EncodeRings(src RingSource) ([]byte, error) {
	rings := make(map[string][][3]float64)
	for _, id := range src.BodyIDs() {
		poly, err := src.RingPolylineOf(id)
		if err != nil {
			return nil, err
		}
		if len(poly) == 0 {
			continue
		}
		pts := make([][3]float64, len(poly))
		for i, p := range poly {
			pts[i] = point(p)
		}
		rings[id] = pts
	}
	return json.Marshal(rings)
}
