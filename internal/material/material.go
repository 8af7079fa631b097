package material

// Names of the materials used by the demo scene.
const (
	Ground   = "ground"
	Box      = "box"
	Rubber   = "rubber"
	Slippery = "slippery"
	Bouncy   = "bouncy"
)

// Material is an immutable named surface. Friction and Restitution are only
// meaningful when the matching Has flag is set; a declared value beats any
// contact rule for pairs involving this material.
type Material struct {
	Name           string
	Friction       float64
	Restitution    float64
	HasFriction    bool
	HasRestitution bool
}

// New returns a material with no declared properties.
func New(name string) Material {
	return Material{Name: name}
}

// WithFriction declares friction directly on the material.
func (m Material) WithFriction(f float64) Material {
	m.Friction = f
	m.HasFriction = true
	return m
}

// WithRestitution declares restitution directly on the material.
func (m Material) WithRestitution(r float64) Material {
	m.Restitution = r
	m.HasRestitution = true
	return m
}

// Contact holds the resolved response properties for a touching pair.
type Contact struct {
	Friction          float64
	Restitution       float64
	ContactStiffness  float64
	ContactRelaxation float64
	FrictionStiffness float64
}

// DefaultContact mirrors the solver defaults used when no rule is registered
// for a pair and neither material declares anything.
func DefaultContact() Contact {
	return Contact{
		Friction:          0.3,
		Restitution:       0.3,
		ContactStiffness:  1e7,
		ContactRelaxation: 3,
		FrictionStiffness: 1e7,
	}
}
