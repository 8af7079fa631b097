package material_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shakebox/internal/material"
)

var _ = Describe("Registry", func() {
	var reg *material.Registry

	BeforeEach(func() {
		reg = material.NewRegistry()
	})

	Describe("material registration", func() {
		It("rejects a second material with the same name", func() {
			Expect(reg.RegisterMaterial(material.New("steel"))).To(Succeed())
			err := reg.RegisterMaterial(material.New("steel"))
			Expect(err).To(MatchError(material.ErrDuplicateMaterial))
		})
	})

	Describe("contact rules", func() {
		BeforeEach(func() {
			Expect(reg.RegisterMaterial(material.New("a"))).To(Succeed())
			Expect(reg.RegisterMaterial(material.New("b"))).To(Succeed())
		})

		It("fails fast when a rule names an unknown material", func() {
			err := reg.RegisterContactRule("a", "foo", material.DefaultContact())
			Expect(err).To(MatchError(material.ErrUnknownMaterial))
		})

		It("looks rules up regardless of pair order", func() {
			c := material.DefaultContact()
			c.Restitution = 0.9
			Expect(reg.RegisterContactRule("a", "b", c)).To(Succeed())

			got, ok := reg.Rule("b", "a")
			Expect(ok).To(BeTrue())
			Expect(got.Restitution).To(Equal(0.9))
		})

		It("rejects a duplicate rule for the same unordered pair", func() {
			Expect(reg.RegisterContactRule("a", "b", material.DefaultContact())).To(Succeed())
			err := reg.RegisterContactRule("b", "a", material.DefaultContact())
			Expect(err).To(MatchError(material.ErrDuplicateRule))
		})

		It("reports no rule for pairs never registered", func() {
			_, ok := reg.Rule("a", "b")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("resolution precedence", func() {
		BeforeEach(func() {
			Expect(material.Install(reg)).To(Succeed())
		})

		It("registers exactly the demo rule set", func() {
			Expect(reg.RuleCount()).To(Equal(10))
			Expect(reg.Materials()).To(ConsistOf("ground", "box", "rubber", "slippery", "bouncy"))
		})

		It("lets the bouncy material's own restitution beat the pair rule", func() {
			c, err := reg.Resolve(material.Bouncy, material.Bouncy)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Restitution).To(Equal(1.1))
		})

		It("applies a direct declaration against any partner", func() {
			c, err := reg.Resolve(material.Bouncy, material.Ground)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Restitution).To(Equal(1.1))

			// the raw rule survives untouched underneath
			rule, ok := reg.Rule(material.Bouncy, material.Ground)
			Expect(ok).To(BeTrue())
			Expect(rule.Restitution).To(Equal(0.8))
		})

		It("resolves slippery pairs frictionless through the direct declaration", func() {
			c, err := reg.Resolve(material.Slippery, material.Slippery)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Friction).To(BeZero())
		})

		It("falls back to solver defaults for unlisted pairs", func() {
			c, err := reg.Resolve(material.Rubber, material.Ground)
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(Equal(material.DefaultContact()))
		})

		It("errors on unknown material names", func() {
			_, err := reg.Resolve("foo", material.Ground)
			Expect(err).To(MatchError(material.ErrUnknownMaterial))
		})
	})

	Describe("reactive rules", func() {
		BeforeEach(func() {
			Expect(material.Install(reg)).To(Succeed())
		})

		It("replaces the rubber/slippery rule when the flag flips", func() {
			before, ok := reg.Rule(material.Rubber, material.Slippery)
			Expect(ok).To(BeTrue())
			Expect(before.Friction).To(Equal(1.0))

			v := reg.Version()
			reg.SetFlag(material.FlagRubberSlips, true)
			Expect(reg.Version()).To(BeNumerically(">", v))

			after, ok := reg.Rule(material.Rubber, material.Slippery)
			Expect(ok).To(BeTrue())
			Expect(after.Friction).To(BeZero())
			Expect(reg.RuleCount()).To(Equal(10), "replacement must not duplicate the rule")
		})

		It("ignores a no-op flag write", func() {
			v := reg.Version()
			reg.SetFlag(material.FlagRubberSlips, false)
			Expect(reg.Version()).To(Equal(v))
		})
	})
})
