package engine_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spheresim/internal/engine"
)

func TestEngineSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Engine Suite")
}

var _ = Describe("InnerProductMatrix", func() {
	var eng *engine.Engine

	BeforeEach(func() {
		cfg := engine.DefaultConfig()
		cfg.Particles = 16
		cfg.Dimensions = 4
		cfg.Seed = 7

		var err error
		eng, err = engine.New(cfg)
		Expect(err).NotTo(HaveOccurred())

		_, err = eng.Simulate(context.Background(), 25)
		Expect(err).NotTo(HaveOccurred())
	})

	It("is symmetric with unit diagonal and entries in [-1, 1]", func() {
		m := eng.InnerProductMatrix()
		Expect(m).To(HaveLen(16))

		for i := range m {
			Expect(m[i][i]).To(BeNumerically("~", 1.0, 1e-6))
			for j := range m[i] {
				Expect(m[i][j]).To(Equal(m[j][i]))
				Expect(m[i][j]).To(BeNumerically(">=", -1.0-1e-9))
				Expect(m[i][j]).To(BeNumerically("<=", 1.0+1e-9))
			}
		}
	})

	It("is idempotent between steps", func() {
		a := eng.InnerProductMatrix()
		b := eng.InnerProductMatrix()

		for i := range a {
			for j := range a[i] {
				Expect(a[i][j]).To(Equal(b[i][j]))
			}
		}
	})

	It("reflects the state after the most recent run", func() {
		before := eng.InnerProductMatrix()

		_, err := eng.Simulate(context.Background(), 10)
		Expect(err).NotTo(HaveOccurred())

		after := eng.InnerProductMatrix()

		changed := false
		for i := range before {
			for j := range before[i] {
				if before[i][j] != after[i][j] {
					changed = true
				}
			}
		}
		Expect(changed).To(BeTrue(), "matrix should track the evolving positions")
	})
})
