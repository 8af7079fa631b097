// Package scene holds the declarative description of the demo: five bounding
// planes forming an open box, a batch of bouncy spheres, and the fixed camera
// and light poses the frontends share.
package scene

import (
	"math"
	"math/rand"

	"github.com/san-kum/shakebox/internal/material"
)

// DefaultSpheres is the stock sphere count.
const DefaultSpheres = 100

// SphereRadius is shared by every sphere in the demo.
const SphereRadius = 1.0

// Render constants shared by the frontends.
var (
	CameraPosition = Vec3{0, 0, 40}
	SpotLightPos   = Vec3{15, 30, 30}
	PointLightPos  = Vec3{0, 10, 10}
)

// ShadowMapSize is the spot light's shadow map resolution.
const ShadowMapSize = 256

// Plane is a static bounding plane. It never moves; the solver treats it as
// infinite with the normal given by the pose.
type Plane struct {
	Position     Vec3
	Rotation     Euler
	MaterialName string
	Color        RGB
}

// Normal is the plane's local +Z axis rotated by its pose.
func (p Plane) Normal() Vec3 {
	return p.Rotation.Rotate(Vec3{0, 0, 1})
}

// Sphere is a dynamic body at scene-construction time. Position and color are
// randomized per index; everything else is fixed.
type Sphere struct {
	Index        int
	Radius       float64
	Mass         float64
	MaterialName string
	Position     Vec3
	Color        RGB
}

// BuildPlanes returns the five planes of the open box: floor, ceiling, left
// and right walls, and a back wall. The front face is intentionally missing
// so the camera looks inside.
func BuildPlanes() []Plane {
	pal := Palette()
	half := math.Pi / 2
	return []Plane{
		{Position: Vec3{0, -5, 0}, Rotation: Euler{-half, 0, 0}, MaterialName: material.Ground, Color: pal[0]},
		{Position: Vec3{0, 20, 0}, Rotation: Euler{half, 0, 0}, MaterialName: material.Ground, Color: pal[1]},
		{Position: Vec3{-10, 0, 0}, Rotation: Euler{0, half, 0}, MaterialName: material.Ground, Color: pal[2]},
		{Position: Vec3{10, 0, 0}, Rotation: Euler{0, -half, 0}, MaterialName: material.Ground, Color: pal[3]},
		{Position: Vec3{0, 0, -5}, Rotation: Euler{0, 0, 0}, MaterialName: material.Ground, Color: pal[4]},
	}
}

// BuildSpheres returns n dynamic spheres: radius 1, mass 1, material bouncy,
// position (rand-0.5, rand-5, 2*index), color drawn uniformly from the
// palette.
func BuildSpheres(n int, rng *rand.Rand) []Sphere {
	pal := Palette()
	spheres := make([]Sphere, n)
	for i := range spheres {
		spheres[i] = Sphere{
			Index:        i,
			Radius:       SphereRadius,
			Mass:         1,
			MaterialName: material.Bouncy,
			Position: Vec3{
				X: rng.Float64() - 0.5,
				Y: rng.Float64() - 5,
				Z: float64(i) * 2,
			},
			Color: pal[rng.Intn(len(pal))],
		}
	}
	return spheres
}

// Scene bundles the full static description.
type Scene struct {
	Planes  []Plane
	Spheres []Sphere
}

// Build constructs the demo scene with a seeded source so runs are
// reproducible.
func Build(n int, seed int64) Scene {
	rng := rand.New(rand.NewSource(seed))
	return Scene{
		Planes:  BuildPlanes(),
		Spheres: BuildSpheres(n, rng),
	}
}
