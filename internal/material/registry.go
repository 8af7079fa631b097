package material

import (
	"fmt"
	"math"
	"sort"
)

// pairKey is an unordered material pair. normalize keeps lookup symmetric.
type pairKey struct {
	a, b string
}

func makeKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Builder recomputes a reactive rule's properties from the registry's current
// flag values.
type Builder func(r *Registry) Contact

type reactiveRule struct {
	key   pairKey
	deps  []string
	build Builder
}

// Registry holds the material set and the pairwise contact rules. It is built
// once at startup; SetFlag is the only mutation after that and replaces the
// affected reactive rules in place, bumping Version so cached resolutions can
// be invalidated.
type Registry struct {
	materials map[string]Material
	rules     map[pairKey]Contact
	flags     map[string]bool
	reactive  []reactiveRule
	version   uint64
}

func NewRegistry() *Registry {
	return &Registry{
		materials: make(map[string]Material),
		rules:     make(map[pairKey]Contact),
		flags:     make(map[string]bool),
	}
}

// RegisterMaterial adds a material. At most one material exists per name.
func (r *Registry) RegisterMaterial(m Material) error {
	if _, ok := r.materials[m.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateMaterial, m.Name)
	}
	r.materials[m.Name] = m
	r.version++
	return nil
}

// Material looks up a registered material by name.
func (r *Registry) Material(name string) (Material, bool) {
	m, ok := r.materials[name]
	return m, ok
}

// Materials returns the registered material names in sorted order.
func (r *Registry) Materials() []string {
	names := make([]string, 0, len(r.materials))
	for name := range r.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterContactRule adds a pairwise override. Lookup is unordered: the rule
// for (a, b) applies equally to (b, a). Unknown names and duplicate pairs are
// configuration errors.
func (r *Registry) RegisterContactRule(a, b string, c Contact) error {
	key, err := r.checkPair(a, b)
	if err != nil {
		return err
	}
	r.rules[key] = c
	r.version++
	return nil
}

// RegisterReactiveContactRule adds a rule whose properties are a function of
// the named flags. The rule is built immediately and rebuilt (replaced, never
// duplicated) every time SetFlag changes one of its dependencies.
func (r *Registry) RegisterReactiveContactRule(a, b string, deps []string, build Builder) error {
	key, err := r.checkPair(a, b)
	if err != nil {
		return err
	}
	r.rules[key] = build(r)
	r.reactive = append(r.reactive, reactiveRule{key: key, deps: deps, build: build})
	r.version++
	return nil
}

func (r *Registry) checkPair(a, b string) (pairKey, error) {
	if _, ok := r.materials[a]; !ok {
		return pairKey{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, a)
	}
	if _, ok := r.materials[b]; !ok {
		return pairKey{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, b)
	}
	key := makeKey(a, b)
	if _, ok := r.rules[key]; ok {
		return pairKey{}, fmt.Errorf("%w: (%s, %s)", ErrDuplicateRule, a, b)
	}
	return key, nil
}

// Flag returns the current value of a named configuration flag.
func (r *Registry) Flag(name string) bool {
	return r.flags[name]
}

// SetFlag updates a configuration flag and rebuilds every reactive rule that
// depends on it. A no-op write leaves the version untouched.
func (r *Registry) SetFlag(name string, v bool) {
	if r.flags[name] == v {
		return
	}
	r.flags[name] = v
	for _, rr := range r.reactive {
		for _, dep := range rr.deps {
			if dep == name {
				r.rules[rr.key] = rr.build(r)
				break
			}
		}
	}
	r.version++
}

// Version increases on every mutation. Consumers caching resolved contacts
// compare it to decide when to re-resolve.
func (r *Registry) Version() uint64 {
	return r.version
}

// Rule returns the registered pair rule, if any. Order of a and b is
// irrelevant.
func (r *Registry) Rule(a, b string) (Contact, bool) {
	c, ok := r.rules[makeKey(a, b)]
	return c, ok
}

// RuleCount reports how many pair rules are registered.
func (r *Registry) RuleCount() int {
	return len(r.rules)
}

// Resolve computes the effective contact properties for two touching
// materials: solver defaults, overlaid by the pair rule if one exists, then by
// properties declared directly on either material. A direct declaration beats
// the pair rule; when both materials declare the same property the larger
// value wins.
func (r *Registry) Resolve(a, b string) (Contact, error) {
	ma, ok := r.materials[a]
	if !ok {
		return Contact{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, a)
	}
	mb, ok := r.materials[b]
	if !ok {
		return Contact{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, b)
	}

	c := DefaultContact()
	if rule, ok := r.rules[makeKey(a, b)]; ok {
		c = rule
	}

	if f, ok := declared(ma.HasFriction, ma.Friction, mb.HasFriction, mb.Friction); ok {
		c.Friction = f
	}
	if e, ok := declared(ma.HasRestitution, ma.Restitution, mb.HasRestitution, mb.Restitution); ok {
		c.Restitution = e
	}
	return c, nil
}

func declared(hasA bool, a float64, hasB bool, b float64) (float64, bool) {
	switch {
	case hasA && hasB:
		return math.Max(a, b), true
	case hasA:
		return a, true
	case hasB:
		return b, true
	}
	return 0, false
}
