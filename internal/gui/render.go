package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/shakebox/internal/scene"
)

const wallThickness = 0.2

// renderRoom draws each bounding plane as a thin slab sized to the room
// extents, colored from the palette. The camera-facing side stays open.
func (a *App) renderRoom() {
	minX, maxX := -10.0, 10.0
	minY, maxY := -5.0, 20.0
	backZ := -5.0
	for _, p := range a.Planes {
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

	w := float32(maxX - minX)
	h := float32(maxY - minY)
	depth := w
	cx := float32(minX+maxX) / 2
	cy := float32(minY+maxY) / 2
	cz := float32(backZ) + depth/2

	for _, p := range a.Planes {
		n := p.Normal()
		col := lit(planeColor(p.Color), p.Position, n)
		pos := rl.NewVector3(float32(p.Position.X), float32(p.Position.Y), float32(p.Position.Z))
		switch {
		case n.Y > 0.9 || n.Y < -0.9:
			pos.X, pos.Z = cx, cz
			rl.DrawCube(pos, w, wallThickness, depth, col)
		case n.X > 0.9 || n.X < -0.9:
			pos.Y, pos.Z = cy, cz
			rl.DrawCube(pos, wallThickness, h, depth, col)
		default:
			pos.X, pos.Y = cx, cy
			rl.DrawCube(pos, w, h, wallThickness, col)
		}
	}
}

func (a *App) renderSpheres() {
	up := scene.Vec3{Y: 1}
	for i := 0; i < a.World.NumBodies(); i++ {
		b := a.World.Body(i)
		pos := rl.NewVector3(float32(b.Position.X), float32(b.Position.Y), float32(b.Position.Z))
		rl.DrawSphere(pos, float32(b.Radius), lit(planeColor(b.Color), b.Position, up))
	}
}

// renderShadows casts each sphere onto the floor along the spot light ray
// and stamps a soft blob there.
func (a *App) renderShadows() {
	floorY := -5.0
	for _, p := range a.Planes {
		if p.Normal().Y > 0.9 {
			floorY = p.Position.Y
		}
	}

	for i := 0; i < a.World.NumBodies(); i++ {
		b := a.World.Body(i)
		d := b.Position.Sub(scene.SpotLightPos).Normalize()
		if d.Y >= 0 {
			continue
		}
		t := (floorY - b.Position.Y) / d.Y
		if t < 0 {
			continue
		}
		hit := b.Position.Add(d.Scale(t))
		pos := rl.NewVector3(float32(hit.X), float32(floorY)+0.05, float32(hit.Z))
		rl.DrawBillboard(a.Camera, a.ShadowTex, pos, float32(b.Radius)*2.2, rl.NewColor(0, 0, 0, 110))
	}
}

// lit scales a base color by a flat two-light lambert term: the spot light
// carries the diffuse, the point light fills from the front.
func lit(base rl.Color, at scene.Vec3, normal scene.Vec3) rl.Color {
	f := 0.45
	if d := normal.Dot(scene.SpotLightPos.Sub(at).Normalize()); d > 0 {
		f += 0.4 * d
	}
	if d := normal.Dot(scene.PointLightPos.Sub(at).Normalize()); d > 0 {
		f += 0.15 * d
	}
	if f > 1 {
		f = 1
	}
	return rl.NewColor(
		uint8(float64(base.R)*f),
		uint8(float64(base.G)*f),
		uint8(float64(base.B)*f),
		base.A,
	)
}

func planeColor(c scene.RGB) rl.Color {
	r, g, b := c.Display()
	return rl.NewColor(r, g, b, 255)
}
