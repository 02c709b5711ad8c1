package render

import (
	"math"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// Projected is a point in terminal cell space
// Col and Row may lie outside the viewport; callers clip
type Projected struct {
	Col, Row float64
	Depth    float64
}

// Projector maps scene points onto a viewport of terminal cells with a pinhole camera
type Projector struct {
	eye                  vmath.Vec3F
	right, up, forward   vmath.Vec3F
	focal                float64 // rows per unit at depth 1
	centerCol, centerRow float64
	width, height        int
}

// NewProjector builds the view basis for cam over a width x height viewport
func NewProjector(cam *Camera, width, height int) *Projector {
	eye := cam.Eye()
	forward := vmath.V3FNormalize(vmath.V3FSub(cam.Target, eye))
	right := vmath.V3FNormalize(vmath.V3FCross(forward, vmath.Vec3F{Y: 1}))
	up := vmath.V3FCross(right, forward)

	return &Projector{
		eye:       eye,
		right:     right,
		up:        up,
		forward:   forward,
		focal:     (float64(height) / 2) / math.Tan(parameter.CameraFOV/2),
		centerCol: float64(width) / 2,
		centerRow: float64(height) / 2,
		width:     width,
		height:    height,
	}
}

// Project returns the cell position of p; ok is false behind the near plane
func (p *Projector) Project(pt vmath.Vec3F) (Projected, bool) {
	rel := vmath.V3FSub(pt, p.eye)
	z := vmath.V3FDot(rel, p.forward)
	if z < parameter.CameraNear {
		return Projected{}, false
	}
	x := vmath.V3FDot(rel, p.right)
	y := vmath.V3FDot(rel, p.up)

	// Cells are taller than wide, so horizontal offsets are stretched by the cell aspect
	return Projected{
		Col:   p.centerCol + x/z*p.focal*parameter.CellAspect,
		Row:   p.centerRow - y/z*p.focal,
		Depth: z,
	}, true
}

// Radius returns the on-screen radius in rows of a sphere of size at depth
func (p *Projector) Radius(size, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return size / depth * p.focal
}

// Visible reports whether a projected point falls inside the viewport
func (p *Projector) Visible(pr Projected) bool {
	return pr.Col >= 0 && pr.Row >= 0 && pr.Col < float64(p.width) && pr.Row < float64(p.height)
}
