package viz

import (
	"math"
	"sort"

	"github.com/san-kum/shakebox/internal/scene"
)

// Camera manages 3D projection to a 2D plane.
type Camera struct {
	Position         scene.Vec3
	FOV, Near        float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Position: scene.CameraPosition, FOV: math.Pi / 4, Near: 0.1, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p scene.Vec3) scene.Vec3 {
	return scene.Euler{X: c.RotX, Y: c.RotY, Z: c.RotZ}.Rotate(p)
}

// Project converts 3D world coordinates to 2D sub-pixel coordinates.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p scene.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Position.Z
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 30.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// ScreenRadius converts a world-space radius at the given depth to
// sub-pixels.
func (c *Camera) ScreenRadius(r, depth float64, sw, sh int) int {
	dist := c.Position.Z
	if depth >= dist-c.Near {
		return 0
	}
	scale := dist / (dist - depth)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	return int(r * c.Zoom * scale * minDim / 30.0)
}

type Edge struct {
	Start, End scene.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe            { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e scene.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) Clear()               { w.Edges = w.Edges[:0] }

// Render3D draws the wireframe to the canvas, far edges first.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Width*2, c.Height*4
	type projectedEdge struct {
		x1, y1, x2, y2 int
		depth          float64
	}
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

// RenderSpheres projects sphere centers and fills discs back to front.
func RenderSpheres(c *Canvas, cam *Camera, centers []scene.Vec3, radius float64) {
	if c == nil || cam == nil {
		return
	}
	cw, ch := c.Width*2, c.Height*4
	type disc struct {
		x, y, r int
		depth   float64
	}
	discs := make([]disc, 0, len(centers))
	for _, p := range centers {
		x, y, d, visible := cam.Project(p, cw, ch)
		if !visible {
			continue
		}
		discs = append(discs, disc{x, y, cam.ScreenRadius(radius, d, cw, ch), d})
	}
	sort.Slice(discs, func(i, j int) bool { return discs[i].depth < discs[j].depth })
	for _, d := range discs {
		c.FillCircle(d.x, d.y, d.r)
	}
}

// RoomWireframe builds the open-box outline from the static planes: the box
// spans the wall extents with the camera-facing face left open.
func RoomWireframe(planes []scene.Plane) *Wireframe {
	minX, maxX := -10.0, 10.0
	minY, maxY := -5.0, 20.0
	backZ := -5.0
	for _, p := range planes {
		n := p.Normal()
		switch {
		case n.Y > 0.9:
			minY = p.Position.Y
		case n.Y < -0.9:
			maxY = p.Position.Y
		case n.X > 0.9:
			minX = p.Position.X
		case n.X < -0.9:
			maxX = p.Position.X
		case n.Z > 0.9:
			backZ = p.Position.Z
		}
	}
	frontZ := backZ + (maxX - minX)

	w := NewWireframe()
	v := []scene.Vec3{
		{X: minX, Y: minY, Z: backZ}, {X: maxX, Y: minY, Z: backZ},
		{X: maxX, Y: maxY, Z: backZ}, {X: minX, Y: maxY, Z: backZ},
		{X: minX, Y: minY, Z: frontZ}, {X: maxX, Y: minY, Z: frontZ},
		{X: maxX, Y: maxY, Z: frontZ}, {X: minX, Y: maxY, Z: frontZ},
	}
	edges := [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
		{4, 5}, {6, 7},
	}
	for _, e := range edges {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	return w
}
