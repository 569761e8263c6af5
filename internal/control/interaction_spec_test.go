package control

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/circlesim/internal/dynamo"
	"github.com/san-kum/circlesim/internal/physics"
)

var _ = Describe("Interaction", func() {
	var (
		store *physics.Store
		ctl   *Interaction
	)

	at := func(x, y float64) dynamo.Vec2 { return dynamo.Vec2{X: x, Y: y} }

	BeforeEach(func() {
		store = physics.NewStore(100)
		_, err := store.AddBall(100, 100, 20)
		Expect(err).NotTo(HaveOccurred())
		_, err = store.AddBall(300, 100, 15)
		Expect(err).NotTo(HaveOccurred())
		ctl = NewInteraction(0.02)
	})

	It("starts idle", func() {
		Expect(ctl.State()).To(Equal(Idle))
		_, ok := ctl.Selected()
		Expect(ok).To(BeFalse())
	})

	DescribeTable("pressing selects the body under the pointer",
		func(in dynamo.Input, want dynamo.BodyID) {
			ctl.Apply(store, in)
			id, _ := ctl.Selected()
			Expect(id).To(Equal(want))
		},
		Entry("primary on body 0", dynamo.Input{Pointer: at(100, 110), PrimaryPressed: true}, dynamo.BodyID(0)),
		Entry("secondary on body 1", dynamo.Input{Pointer: at(305, 95), SecondaryPressed: true}, dynamo.BodyID(1)),
		Entry("primary on nothing", dynamo.Input{Pointer: at(200, 300), PrimaryPressed: true}, dynamo.NoBody),
		Entry("motion without a press", dynamo.Input{Pointer: at(100, 100)}, dynamo.NoBody),
	)

	Context("with a body selected by the secondary button", func() {
		BeforeEach(func() {
			ctl.Apply(store, dynamo.Input{Pointer: at(300, 100), SecondaryPressed: true})
			Expect(ctl.State()).To(Equal(Selected))
		})

		It("throws the body away from the pointer on release", func() {
			ctl.Apply(store, dynamo.Input{Pointer: at(300, 150), SecondaryReleased: true})

			b, _ := store.Body(1)
			Expect(b.Vel.X).To(BeNumerically("~", 0, 1e-12))
			Expect(b.Vel.Y).To(BeNumerically("~", -1, 1e-12))
			Expect(ctl.State()).To(Equal(Idle))
		})

		It("is cleared by a primary release without a throw", func() {
			ctl.Apply(store, dynamo.Input{Pointer: at(320, 100), PrimaryReleased: true})

			b, _ := store.Body(1)
			Expect(b.Vel).To(Equal(dynamo.Vec2{}))
			Expect(ctl.State()).To(Equal(Idle))
		})

		It("still drags while the primary button is held", func() {
			ctl.Apply(store, dynamo.Input{Pointer: at(250, 60), PrimaryDown: true})

			b, _ := store.Body(1)
			Expect(b.Pos).To(Equal(at(250, 60)))
		})
	})

	It("drops a stale handle instead of panicking", func() {
		ctl.selected = 42
		ctl.Apply(store, dynamo.Input{Pointer: at(0, 0), PrimaryDown: true, SecondaryReleased: true})
		Expect(ctl.State()).To(Equal(Idle))
	})
})
