package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/orrery/vmath"
)

// ErrUnknownBody is returned by queries for an id that was never added
var ErrUnknownBody = errors.New("unknown body")

// DomainError reports a body whose computed position was not finite on a tick
// The body keeps its previous position; other bodies are unaffected
type DomainError struct {
	ID       string
	Tick     uint64
	Position vmath.Vec3F // last finite position, still published
	Err      error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("tick %d: body %q: %v", e.Tick, e.ID, e.Err)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
