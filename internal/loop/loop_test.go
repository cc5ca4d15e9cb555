package loop_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mathgallery/internal/loop"
)

var _ = Describe("Loop", func() {
	var (
		l   *loop.Loop
		now time.Time
	)

	BeforeEach(func() {
		l = loop.New(60)
		now = time.Unix(0, 0)
	})

	Describe("frames", func() {
		It("runs a requested frame exactly once", func() {
			calls := 0
			l.RequestFrame(func(time.Time) { calls++ })
			l.Tick(now)
			l.Tick(now)
			Expect(calls).To(Equal(1))
		})

		It("defers frames requested during a tick to the next tick", func() {
			var seen []int
			var frame loop.FrameFunc
			n := 0
			frame = func(time.Time) {
				n++
				seen = append(seen, n)
				l.RequestFrame(frame)
			}
			l.RequestFrame(frame)
			l.Tick(now)
			Expect(seen).To(Equal([]int{1}))
			Expect(l.Pending()).To(Equal(1))
			l.Tick(now)
			Expect(seen).To(Equal([]int{1, 2}))
		})

		It("skips cancelled frames", func() {
			ran := false
			id := l.RequestFrame(func(time.Time) { ran = true })
			l.CancelFrame(id)
			l.CancelFrame(id)
			l.Tick(now)
			Expect(ran).To(BeFalse())
			Expect(l.Pending()).To(BeZero())
		})

		It("lets a frame cancel a later one in the same tick", func() {
			ran := false
			var second loop.FrameID
			l.RequestFrame(func(time.Time) { l.CancelFrame(second) })
			second = l.RequestFrame(func(time.Time) { ran = true })
			l.Tick(now)
			Expect(ran).To(BeFalse())
		})

		It("isolates a panicking callback", func() {
			ran := false
			l.RequestFrame(func(time.Time) { panic("boom") })
			l.RequestFrame(func(time.Time) { ran = true })
			Expect(func() { l.Tick(now) }).NotTo(Panic())
			Expect(ran).To(BeTrue())
			Expect(l.Ticks()).To(Equal(uint64(1)))
		})
	})

	Describe("resize listeners", func() {
		It("notifies in registration order until removed", func() {
			var order []string
			a := l.AddResizeListener(func() { order = append(order, "a") })
			l.AddResizeListener(func() { order = append(order, "b") })
			l.NotifyResize()
			l.RemoveResizeListener(a)
			l.RemoveResizeListener(a)
			l.NotifyResize()
			Expect(order).To(Equal([]string{"a", "b", "b"}))
		})
	})

	Describe("tasks", func() {
		It("drains posted tasks in order", func() {
			var got []int
			for i := 0; i < 3; i++ {
				i := i
				l.Post(func() { got = append(got, i) })
			}
			Expect(l.Drain()).To(Equal(3))
			Expect(got).To(Equal([]int{0, 1, 2}))
		})

		It("runs Call on the Run goroutine", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go l.Run(ctx)

			ran := false
			Expect(l.Call(ctx, func() { ran = true })).To(Succeed())
			Expect(ran).To(BeTrue())

			ticked := make(chan struct{})
			Expect(l.Call(ctx, func() {
				l.RequestFrame(func(time.Time) { close(ticked) })
			})).To(Succeed())
			Eventually(ticked).Should(BeClosed())
		})

		It("fails Call after close", func() {
			l.Close()
			err := l.Call(context.Background(), func() {})
			Expect(err).To(Equal(loop.ErrClosed))
		})
	})
})
