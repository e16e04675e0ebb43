package report

import (
	"bytes"
	"math"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/zonesim/instrumentation/hooking"
	"github.com/sarchlab/zonesim/pid"
	"github.com/sarchlab/zonesim/simulation"
)

var _ = Describe("Console rendering", func() {
	DescribeTable("temperature bar length",
		func(temp, setpoint float64, want int) {
			Expect(TempBarLength(temp, setpoint)).To(Equal(want))
		},
		Entry("at ambient", 20.0, 75.0, 26),
		Entry("half way", 37.5, 75.0, 50),
		Entry("capped", 150.0, 75.0, MaxTempBar),
		Entry("negative", -5.0, 75.0, 0),
		Entry("zero setpoint", 20.0, 0.0, MaxTempBar),
		Entry("NaN", math.NaN(), 75.0, 0),
	)

	DescribeTable("heat bar length",
		func(fraction float64, want int) {
			Expect(HeatBarLength(fraction)).To(Equal(want))
		},
		Entry("off", 0.0, 0),
		Entry("partial", 0.55, 55),
		Entry("full", 1.0, FullHeatBar),
		Entry("above full", 2.0, FullHeatBar),
		Entry("negative", -1.0, 0),
	)

	It("should render both bars of a zone", func() {
		out := RenderZone(simulation.ZoneReading{
			Index:           1,
			TrueTemperature: 37.5,
			HeatFraction:    0.5,
			ElapsedSeconds:  0.02,
		}, 75)

		Expect(out).To(Equal(
			"Zone 1 Temp: " + strings.Repeat("=", 50) + "> 37.50 [0.0200 sec]\n" +
				"Zone 1 Heat: " + strings.Repeat("-", 50) + "> 0.50 [0.0200 sec]\n\n"))
	})

	It("should print the banner", func() {
		var buf bytes.Buffer

		err := WriteBanner(&buf, simulation.Config{
			RunID:    "abc",
			Setpoint: 75,
			Gains:    pid.Gains{Kp: 2, Ki: 0.5, Kd: 1},
			NumZones: 2,
			Duration: 10 * time.Second,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("Setpoint: 75 Degrees C"))
		Expect(buf.String()).To(ContainSubstring("PID: P=2, I=0.5, D=1"))
		Expect(buf.String()).To(ContainSubstring("Duration: 10 sec"))
		Expect(buf.String()).To(ContainSubstring("Zones: 2"))
	})
})

var _ = Describe("ConsoleSink", func() {
	var (
		buf  *bytes.Buffer
		sink *ConsoleSink
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		sink = NewConsoleSink(buf)
	})

	It("should render every zone of a tick", func() {
		sink.Func(hooking.HookCtx{
			Pos: simulation.HookPosTick,
			Item: simulation.Snapshot{
				Setpoint: 75,
				Zones: []simulation.ZoneReading{
					{Index: 0, TrueTemperature: 20},
					{Index: 1, TrueTemperature: 21},
				},
			},
		})

		Expect(sink.Flush()).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("Zone 0 Temp:"))
		Expect(buf.String()).To(ContainSubstring("Zone 1 Heat:"))
	})

	It("should announce completion on stop", func() {
		sink.Func(hooking.HookCtx{
			Pos:  simulation.HookPosStop,
			Item: simulation.Result{},
		})

		Expect(buf.String()).To(HaveSuffix("Simulation complete.\n"))
	})

	It("should ignore the start hook", func() {
		sink.Func(hooking.HookCtx{
			Pos:  simulation.HookPosStart,
			Item: simulation.Config{},
		})

		Expect(sink.Flush()).To(Succeed())
		Expect(buf.Len()).To(Equal(0))
	})
})
