package engine

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/lixenwraith/orrery/vmath"
)

// BodyState is one body's published state for a tick
type BodyState struct {
	ID       string
	Parent   string
	Position vmath.Vec3F
	Spin     float64
	Progress float64
	// Center is the orbit centre used this tick: plane origin, or the parent's position
	Center  vmath.Vec3F
	Reset   bool
	Faulted bool
}

// Snapshot is the complete state published after a tick
// Each tick allocates a new Snapshot; consumers must treat it as read-only
type Snapshot struct {
	Tick      uint64
	Time      time.Time
	Viewpoint vmath.Vec3F
	Bodies    []BodyState
	Stars     []vmath.Vec3F
}

// Body returns the state of id
func (s *Snapshot) Body(id string) (BodyState, bool) {
	for _, b := range s.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return BodyState{}, false
}

// Fingerprint hashes the bit patterns of every published position and spin
// Identical inputs produce identical fingerprints across runs
func (s *Snapshot) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)

	buf = binary.LittleEndian.AppendUint64(buf, s.Tick)
	_, _ = d.Write(buf)

	for _, b := range s.Bodies {
		buf = buf[:0]
		_, _ = d.WriteString(b.ID)
		buf = appendVec(buf, b.Position)
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(b.Spin))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(b.Progress))
		if b.Faulted {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		_, _ = d.Write(buf)
	}

	for _, p := range s.Stars {
		buf = appendVec(buf[:0], p)
		_, _ = d.Write(buf)
	}

	return d.Sum64()
}

func appendVec(buf []byte, v vmath.Vec3F) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.X))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Y))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Z))
	return buf
}
