// Package world is the rigid-body solver behind the demo: a dense arena of
// dynamic spheres bounded by static planes, with contact response driven by
// the material registry.
package world

import (
	"fmt"
	"math"

	"github.com/san-kum/shakebox/internal/material"
	"github.com/san-kum/shakebox/internal/scene"
)

// Vec3 is re-exported so callers mixing scene description and solver state
// use one vector type.
type Vec3 = scene.Vec3

// DefaultGravity matches the reference solver's default.
var DefaultGravity = Vec3{X: 0, Y: -9.82, Z: 0}

// MaxSpeed caps body speed so impulse storms stay numerically tame.
const MaxSpeed = 150.0

// restVelocity below which a contact is treated as resting rather than a
// bounce, scaled by the pair's relaxation.
const restVelocityPerRelaxation = 0.01

// Body is a dynamic sphere, addressed by dense index.
type Body struct {
	Index        int
	Radius       float64
	Mass         float64
	MaterialName string
	Position     Vec3
	Velocity     Vec3
	Color        scene.RGB
}

type boundary struct {
	point        Vec3
	normal       Vec3
	materialName string
}

// World steps the arena. Contact properties are resolved through the
// material registry and cached per pair until the registry version moves.
type World struct {
	Gravity Vec3

	reg      *material.Registry
	regVer   uint64
	planes   []boundary
	bodies   []Body
	initial  []Body
	contacts map[[2]string]material.Contact
}

// New builds a world from a scene description. Every body must name a
// registered material; an unknown name aborts construction.
func New(reg *material.Registry, sc scene.Scene) (*World, error) {
	w := &World{
		Gravity:  DefaultGravity,
		reg:      reg,
		regVer:   reg.Version(),
		contacts: make(map[[2]string]material.Contact),
	}

	for _, p := range sc.Planes {
		if _, ok := reg.Material(p.MaterialName); !ok {
			return nil, fmt.Errorf("world: plane: %w: %q", material.ErrUnknownMaterial, p.MaterialName)
		}
		w.planes = append(w.planes, boundary{
			point:        p.Position,
			normal:       p.Normal(),
			materialName: p.MaterialName,
		})
	}

	for _, s := range sc.Spheres {
		if _, ok := reg.Material(s.MaterialName); !ok {
			return nil, fmt.Errorf("world: sphere %d: %w: %q", s.Index, material.ErrUnknownMaterial, s.MaterialName)
		}
		w.bodies = append(w.bodies, Body{
			Index:        s.Index,
			Radius:       s.Radius,
			Mass:         s.Mass,
			MaterialName: s.MaterialName,
			Position:     s.Position,
			Color:        s.Color,
		})
	}

	w.initial = make([]Body, len(w.bodies))
	copy(w.initial, w.bodies)
	return w, nil
}

// NumBodies reports the arena size, fixed for the session.
func (w *World) NumBodies() int { return len(w.bodies) }

// Body returns the body at index i for mutation-free inspection.
func (w *World) Body(i int) Body { return w.bodies[i] }

// Reset restores every body to its scene-construction state.
func (w *World) Reset() {
	copy(w.bodies, w.initial)
}

// ApplyImpulse applies an instantaneous momentum change at body i's local
// origin.
func (w *World) ApplyImpulse(i int, imp Vec3) {
	b := &w.bodies[i]
	b.Velocity = b.Velocity.Add(imp.Scale(1 / b.Mass))
}

// Step advances the world by dt: integrate gravity, move, then resolve
// plane and sphere contacts.
func (w *World) Step(dt float64) {
	if v := w.reg.Version(); v != w.regVer {
		w.contacts = make(map[[2]string]material.Contact)
		w.regVer = v
	}

	for i := range w.bodies {
		b := &w.bodies[i]
		b.Velocity = b.Velocity.Add(w.Gravity.Scale(dt))
		if s := b.Velocity.Length(); s > MaxSpeed {
			b.Velocity = b.Velocity.Scale(MaxSpeed / s)
		}
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}

	for i := range w.bodies {
		w.collidePlanes(&w.bodies[i])
	}
	w.collideSpheres()
}

func (w *World) resolve(a, b string) material.Contact {
	key := [2]string{a, b}
	if b < a {
		key = [2]string{b, a}
	}
	if c, ok := w.contacts[key]; ok {
		return c
	}
	c, err := w.reg.Resolve(a, b)
	if err != nil {
		// Unknown names are rejected at construction; keep stepping with
		// solver defaults if the registry was mutated underneath us.
		c = material.DefaultContact()
	}
	w.contacts[key] = c
	return c
}

func (w *World) collidePlanes(b *Body) {
	for _, p := range w.planes {
		depth := b.Radius - b.Position.Sub(p.point).Dot(p.normal)
		if depth <= 0 {
			continue
		}

		c := w.resolve(b.MaterialName, p.materialName)

		// Stiffness maps to the positional correction gain: stiffer pairs
		// recover penetration faster.
		gain := c.ContactStiffness / (c.ContactStiffness + 1e7)
		b.Position = b.Position.Add(p.normal.Scale(depth * gain))

		vn := b.Velocity.Dot(p.normal)
		if vn >= 0 {
			continue
		}

		normal := p.normal.Scale(vn)
		tangent := b.Velocity.Sub(normal)

		rest := restVelocityPerRelaxation * c.ContactRelaxation
		e := c.Restitution
		if -vn < rest {
			e = 0
		}

		grip := 1 - math.Min(c.Friction, 1)
		b.Velocity = tangent.Scale(grip).Sub(normal.Scale(e))
	}
}

func (w *World) collideSpheres() {
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := &w.bodies[i], &w.bodies[j]
			delta := b.Position.Sub(a.Position)
			dist := delta.Length()
			minDist := a.Radius + b.Radius
			if dist >= minDist || dist == 0 {
				continue
			}

			n := delta.Scale(1 / dist)
			overlap := minDist - dist
			a.Position = a.Position.Sub(n.Scale(overlap / 2))
			b.Position = b.Position.Add(n.Scale(overlap / 2))

			vrel := b.Velocity.Sub(a.Velocity).Dot(n)
			if vrel >= 0 {
				continue
			}

			c := w.resolve(a.MaterialName, b.MaterialName)
			imp := -(1 + c.Restitution) * vrel / (1/a.Mass + 1/b.Mass)
			a.Velocity = a.Velocity.Sub(n.Scale(imp / a.Mass))
			b.Velocity = b.Velocity.Add(n.Scale(imp / b.Mass))
		}
	}
}

// Frame flattens the sphere centers into x,y,z triples, the layout used by
// the recorder and the plotting commands.
func (w *World) Frame() []float64 {
	frame := make([]float64, 0, len(w.bodies)*3)
	for i := range w.bodies {
		p := w.bodies[i].Position
		frame = append(frame, p.X, p.Y, p.Z)
	}
	return frame
}

// KineticEnergy sums ½mv² over the arena.
func (w *World) KineticEnergy() float64 {
	total := 0.0
	for i := range w.bodies {
		v := w.bodies[i].Velocity
		total += 0.5 * w.bodies[i].Mass * v.Dot(v)
	}
	return total
}
