package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

// HUDRows is the number of status lines below the viewport
const HUDRows = 2

// bandSegments is the sampling of a planetary band around its body
const bandSegments = 48

// spinGlyphs cycle with a body's self-rotation angle
var spinGlyphs = []rune{'|', '/', '-', '\\'}

// HUD is the host state shown in the status lines
type HUD struct {
	Paused   bool
	Audio    bool
	Volume   float64
	Clients  int
	Faulted  int
	FPS      int
	Rings    bool
	Distance float64
}

type appearance struct {
	size  float64
	color RGB

	// Flat band on the orbital plane around the body; zero radius draws none
	bandRadius float64
	bandColor  RGB
}

// Renderer draws snapshots onto a tcell screen
type Renderer struct {
	screen tcell.Screen
	looks  map[string]appearance
	sun    appearance
	rings  map[string][]vmath.Vec3F
}

// NewRenderer takes body appearance from sc and static rings keyed by body id
// Satellite rings are parent-relative, as returned by engine.Simulation.RingPolylineOf
func NewRenderer(screen tcell.Screen, sc *scene.File, rings map[string][]vmath.Vec3F) *Renderer {
	r := &Renderer{
		screen: screen,
		looks:  make(map[string]appearance, len(sc.Bodies)),
		sun:    appearanceOf(sc.Sun.Size, sc.Sun.Color, RGB{255, 255, 0}),
		rings:  rings,
	}
	for _, b := range sc.Bodies {
		look := appearanceOf(b.Size, b.Color, RGBWhite)
		if b.Band != nil && b.Band.Radius > 0 {
			look.bandRadius = b.Band.Radius
			look.bandColor = appearanceOf(1, b.Band.Color, RGBDim).color
		}
		r.looks[b.ID] = look
	}
	return r
}

func appearanceOf(size float64, hex string, fallback RGB) appearance {
	c, ok := ParseHex(hex)
	if !ok {
		c = fallback
	}
	if size <= 0 {
		size = 1
	}
	return appearance{size: size, color: c}
}

// sphere is a body queued for painter's ordering
type sphere struct {
	pos   vmath.Vec3F
	at    Projected
	look  appearance
	spin  float64
	fault bool
	sun   bool
}

// Draw renders one frame and shows it
func (r *Renderer) Draw(snap *engine.Snapshot, cam *Camera, hud HUD) {
	r.screen.Clear()
	width, height := r.screen.Size()
	viewH := height - HUDRows
	if width <= 0 || viewH <= 0 {
		r.screen.Show()
		return
	}
	proj := NewProjector(cam, width, viewH)

	r.drawStars(proj, snap.Stars)
	if hud.Rings {
		r.drawRings(proj, snap)
	}

	spheres := make([]sphere, 0, len(snap.Bodies)+1)
	if at, ok := proj.Project(cam.Target); ok {
		spheres = append(spheres, sphere{pos: cam.Target, at: at, look: r.sun, sun: true})
	}
	for _, b := range snap.Bodies {
		at, ok := proj.Project(b.Position)
		if !ok {
			continue
		}
		look, found := r.looks[b.ID]
		if !found {
			look = appearance{size: 1, color: RGBWhite}
		}
		spheres = append(spheres, sphere{pos: b.Position, at: at, look: look, spin: b.Spin, fault: b.Faulted})
	}

	// Painter's algorithm: far to near
	sort.SliceStable(spheres, func(i, j int) bool { return spheres[i].at.Depth > spheres[j].at.Depth })
	for _, s := range spheres {
		r.drawBand(proj, s, width, viewH, true)
		r.drawSphere(proj, s, width, viewH)
		r.drawBand(proj, s, width, viewH, false)
	}

	r.drawHUD(snap, hud, width, height)
	r.screen.Show()
}

func (r *Renderer) set(x, y, w, h int, ch rune, c RGB) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	r.screen.SetContent(x, y, ch, nil, c.Style())
}

func (r *Renderer) drawStars(proj *Projector, stars []vmath.Vec3F) {
	w, h := proj.width, proj.height
	for _, s := range stars {
		at, ok := proj.Project(s)
		if !ok || !proj.Visible(at) {
			continue
		}
		// Nearer stars are brighter
		b := max(0.25, min(1, 60/at.Depth))
		ch := '.'
		if b > 0.8 {
			ch = '*'
		}
		r.set(int(at.Col), int(at.Row), w, h, ch, RGBWhite.Scale(b))
	}
}

func (r *Renderer) drawRings(proj *Projector, snap *engine.Snapshot) {
	for _, b := range snap.Bodies {
		ring, ok := r.rings[b.ID]
		if !ok || len(ring) < 2 {
			continue
		}
		offset := vmath.Vec3F{}
		if b.Parent != "" {
			offset = b.Center
		}
		prev, prevOK := proj.Project(vmath.V3FAdd(ring[0], offset))
		for _, pt := range ring[1:] {
			cur, curOK := proj.Project(vmath.V3FAdd(pt, offset))
			if prevOK && curOK {
				r.line(prev, cur, proj.width, proj.height, '·', RGBRing)
			}
			prev, prevOK = cur, curOK
		}
	}
}

// line rasterises a segment with Bresenham; segments far outside the viewport are skipped
func (r *Renderer) line(a, b Projected, w, h int, ch rune, c RGB) {
	x0, y0 := int(math.Round(a.Col)), int(math.Round(a.Row))
	x1, y1 := int(math.Round(b.Col)), int(math.Round(b.Row))
	if abs(x1-x0)+abs(y1-y0) > 4*(w+h) {
		return
	}

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		r.set(x0, y0, w, h, ch, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// drawBand draws the half of a body's band behind it (back) or in front of it
func (r *Renderer) drawBand(proj *Projector, s sphere, w, h int, back bool) {
	radius := s.look.bandRadius
	if radius <= 0 {
		return
	}
	point := func(i int) vmath.Vec3F {
		theta := float64(i) * vmath.TwoPi / bandSegments
		return vmath.V3FAdd(s.pos, vmath.Vec3F{X: radius * math.Cos(theta), Z: radius * math.Sin(theta)})
	}

	prev, prevOK := proj.Project(point(0))
	for i := 1; i <= bandSegments; i++ {
		cur, curOK := proj.Project(point(i))
		if prevOK && curOK {
			behind := (prev.Depth+cur.Depth)/2 > s.at.Depth
			if behind == back {
				r.line(prev, cur, w, h, '░', s.look.bandColor)
			}
		}
		prev, prevOK = cur, curOK
	}
}

func (r *Renderer) drawSphere(proj *Projector, s sphere, w, h int) {
	radius := proj.Radius(s.look.size, s.at.Depth)
	color := s.look.color
	if s.fault {
		color = color.Lerp(RGBAmber, 0.6)
	}

	cx, cy := int(s.at.Col), int(s.at.Row)
	if radius < 0.75 {
		r.set(cx, cy, w, h, '•', color)
		return
	}

	rx := radius * 2
	minX, maxX := int(s.at.Col-rx-1), int(s.at.Col+rx+1)
	minY, maxY := int(s.at.Row-radius-1), int(s.at.Row+radius+1)
	minX, maxX = max(0, minX), min(w-1, maxX)
	minY, maxY = max(0, minY), min(h-1, maxY)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			nx := (float64(x) + 0.5 - s.at.Col) / rx
			ny := (float64(y) + 0.5 - s.at.Row) / radius
			d := nx*nx + ny*ny
			if d > 1 {
				continue
			}
			// Limb darkening
			r.set(x, y, w, h, '█', color.Scale(1-0.5*d))
		}
	}

	if !s.sun && cx >= 0 && cy >= 0 && cx < w && cy < h {
		style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(color.Color())
		r.screen.SetContent(cx, cy, SpinGlyph(s.spin), nil, style)
	}
}

func (r *Renderer) drawHUD(snap *engine.Snapshot, hud HUD, w, h int) {
	statusY := h - 2
	controlY := h - 1

	status := fmt.Sprintf("tick %d  bodies %d  stars %d  fps %d  dist %.0f",
		snap.Tick, len(snap.Bodies), len(snap.Stars), hud.FPS, hud.Distance)
	if hud.Audio {
		status += fmt.Sprintf("  vol %d%%", int(math.Round(hud.Volume*100)))
	}
	if hud.Clients > 0 {
		status += fmt.Sprintf("  clients %d", hud.Clients)
	}
	if hud.Faulted > 0 {
		status += fmt.Sprintf("  faulted %d", hud.Faulted)
	}
	r.writeStr(1, statusY, w, h, status, RGBWhite)

	if hud.Paused {
		r.writeStr(w-9, statusY, w, h, "[PAUSED]", RGBAmber)
	}

	r.writeStr(1, controlY, w, h, "arrows:orbit  +/-:zoom  space:pause  [/]:volume  r:rings  q:quit", RGBDim)
}

func (r *Renderer) writeStr(x, y, w, h int, s string, c RGB) {
	for _, ch := range s {
		r.set(x, y, w, h, ch, c)
		x++
	}
}

// SpinGlyph picks the marker for a self-rotation angle; the glyph repeats every half turn
func SpinGlyph(spin float64) rune {
	idx := int(math.Floor(spin/(math.Pi/4))) % len(spinGlyphs)
	if idx < 0 {
		idx += len(spinGlyphs)
	}
	return spinGlyphs[idx]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
