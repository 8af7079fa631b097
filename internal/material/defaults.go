package material

// FlagRubberSlips switches the rubber/slippery pair between grippy and
// frictionless. Constant false in the stock scene, but the rule stays
// reactive so flipping it at runtime replaces the registered rule.
const FlagRubberSlips = "rubber_slips"

// Install registers the demo's material set and pairwise rules. The bouncy
// material declares restitution directly (1.1, beats every pair rule it is
// part of) and slippery declares zero friction directly.
func Install(r *Registry) error {
	materials := []Material{
		New(Ground),
		New(Box),
		New(Rubber),
		New(Slippery).WithFriction(0),
		New(Bouncy).WithRestitution(1.1),
	}
	for _, m := range materials {
		if err := r.RegisterMaterial(m); err != nil {
			return err
		}
	}

	stiff := DefaultContact()
	stiff.Friction = 0.4
	stiff.Restitution = 0.3
	stiff.ContactStiffness = 1e8
	stiff.ContactRelaxation = 3
	if err := r.RegisterContactRule(Ground, Ground, stiff); err != nil {
		return err
	}
	if err := r.RegisterContactRule(Box, Ground, stiff); err != nil {
		return err
	}

	slick := DefaultContact()
	slick.Friction = 0
	slick.Restitution = 0.3
	if err := r.RegisterContactRule(Box, Slippery, slick); err != nil {
		return err
	}
	if err := r.RegisterContactRule(Ground, Slippery, slick); err != nil {
		return err
	}

	slide := DefaultContact()
	slide.Friction = 0.1
	slide.Restitution = 0.3
	if err := r.RegisterContactRule(Slippery, Slippery, slide); err != nil {
		return err
	}

	bounceSlick := DefaultContact()
	bounceSlick.Friction = 0
	bounceSlick.Restitution = 0.5
	if err := r.RegisterContactRule(Bouncy, Slippery, bounceSlick); err != nil {
		return err
	}

	bounceGround := DefaultContact()
	bounceGround.Restitution = 0.8
	if err := r.RegisterContactRule(Bouncy, Ground, bounceGround); err != nil {
		return err
	}

	// No effect in practice: bouncy declares 1.1 on the material itself, which
	// beats this rule whenever both bodies use it.
	bounceBounce := DefaultContact()
	bounceBounce.Restitution = 0.8
	if err := r.RegisterContactRule(Bouncy, Bouncy, bounceBounce); err != nil {
		return err
	}

	err := r.RegisterReactiveContactRule(Rubber, Slippery, []string{FlagRubberSlips}, func(r *Registry) Contact {
		c := DefaultContact()
		c.Restitution = 0.3
		if r.Flag(FlagRubberSlips) {
			c.Friction = 0
		} else {
			c.Friction = 1
		}
		return c
	})
	if err != nil {
		return err
	}

	rubberBounce := DefaultContact()
	rubberBounce.Restitution = 0.5
	return r.RegisterContactRule(Rubber, Bouncy, rubberBounce)
}
