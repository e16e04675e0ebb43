package zone

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/zonesim/pid"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Zone", func() {
	var (
		mockCtrl *gomock.Controller
		noise    *MockNoiseSource
		z        *Zone
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		noise = NewMockNoiseSource(mockCtrl)
		z = New(3, pid.Gains{Kp: 1}, 20, noise)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should start with the sensed temperature at the initial temperature", func() {
		Expect(z.Index()).To(Equal(3))
		Expect(z.Temperature()).To(Equal(20.0))
		Expect(z.SensedTemperature()).To(Equal(20.0))
		Expect(z.CommandedOutput()).To(Equal(0.0))
		Expect(z.HeatFraction()).To(Equal(0.0))
	})

	Context("when reading the sensor", func() {
		It("should keep the previous value with alpha 0", func() {
			noise.EXPECT().Float64().Return(0.99).Times(3)

			for i := 0; i < 3; i++ {
				Expect(z.ReadSensor(0)).To(Equal(20.0))
			}
			Expect(z.SensedTemperature()).To(Equal(20.0))
		})

		It("should return the raw sample with alpha 1", func() {
			noise.EXPECT().Float64().Return(0.75)

			raw := 20.0 + NoiseAmplitude*(2*0.75-1)

			Expect(z.ReadSensor(1)).To(Equal(raw))
			Expect(z.SensedTemperature()).To(Equal(raw))
		})

		It("should smooth toward the raw sample", func() {
			noise.EXPECT().Float64().Return(1.0)

			got := z.ReadSensor(DefaultAlpha)

			Expect(got).To(BeNumerically("~", 20.0+0.2*0.05, 1e-9))
		})

		It("should bound the noise", func() {
			z = New(0, pid.Gains{}, 20, NewNoiseSource(7, 0))

			for i := 0; i < 1000; i++ {
				v := z.ReadSensor(1)
				Expect(v).To(BeNumerically(">=", 20-NoiseAmplitude))
				Expect(v).To(BeNumerically("<=", 20+NoiseAmplitude))
			}
		})
	})

	Context("when computing control", func() {
		It("should drive the controller with the sensed temperature", func() {
			out := z.ComputeControl(75, 0.02)

			Expect(out).To(BeNumerically("~", 55, 1e-9))
			Expect(z.CommandedOutput()).To(Equal(out))
			Expect(z.HeatFraction()).To(BeNumerically("~", 0.55, 1e-9))
		})

		It("should saturate a large positive output", func() {
			z.ComputeControl(20+1000, 0.02)

			Expect(z.CommandedOutput()).To(BeNumerically("~", 1000, 1e-9))
			Expect(z.HeatFraction()).To(Equal(1.0))
		})

		It("should saturate a large negative output", func() {
			z.ComputeControl(20-1000, 0.02)

			Expect(z.CommandedOutput()).To(BeNumerically("~", -1000, 1e-9))
			Expect(z.HeatFraction()).To(Equal(0.0))
		})
	})

	Context("when applying heat", func() {
		It("should heat, cool, and couple at full duty", func() {
			z.ComputeControl(20+1000, 0.02)

			z.ApplyHeat(20, 1.0)

			Expect(z.Temperature()).To(BeNumerically("~", 20.5-0.0105+1.0, 1e-9))
		})

		It("should only cool with zero duty", func() {
			z.ApplyHeat(20, 0)

			Expect(z.Temperature()).To(BeNumerically("~", 19.99, 1e-12))
		})

		It("should not scale heating with the step length", func() {
			a := New(0, pid.Gains{Kp: 1}, 20, noise)
			b := New(1, pid.Gains{Kp: 1}, 20, noise)

			a.ComputeControl(500, 0.001)
			b.ComputeControl(500, 5)
			a.ApplyHeat(20, 0)
			b.ApplyHeat(20, 0)

			Expect(a.Temperature()).To(Equal(b.Temperature()))
		})
	})
})

var _ = Describe("DutyFromOutput", func() {
	DescribeTable("clamps into [0, 1]",
		func(output, want float64) {
			Expect(DutyFromOutput(output)).To(BeNumerically("~", want, 1e-12))
		},
		Entry("far below", -1000.0, 0.0),
		Entry("slightly below", -0.1, 0.0),
		Entry("zero", 0.0, 0.0),
		Entry("half", 50.0, 0.5),
		Entry("full scale", 100.0, 1.0),
		Entry("far above", 1000.0, 1.0),
	)

	It("should grow cooling with the excess over ambient", func() {
		Expect(PassiveCooling(20, 20)).To(BeNumerically("~", 0.01, 1e-12))
		Expect(PassiveCooling(70, 20)).To(BeNumerically("~", 0.06, 1e-12))
		Expect(PassiveCooling(10, 20)).To(BeNumerically("~", 0.0, 1e-12))
	})
})

var _ = Describe("NoiseSource", func() {
	It("should be reproducible per seed and index", func() {
		a := NewNoiseSource(42, 1)
		b := NewNoiseSource(42, 1)
		c := NewNoiseSource(42, 2)

		sameAsC := true
		for i := 0; i < 16; i++ {
			va, vb, vc := a.Float64(), b.Float64(), c.Float64()
			Expect(va).To(Equal(vb))
			Expect(math.IsNaN(va)).To(BeFalse())
			if va != vc {
				sameAsC = false
			}
		}

		Expect(sameAsC).To(BeFalse())
	})
})
