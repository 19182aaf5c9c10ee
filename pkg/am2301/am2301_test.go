package am2301_test

import (
	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/xanderflood/pihal/pkg/am2301"
	"github.com/xanderflood/pihal/pkg/hal"
	"github.com/xanderflood/pihal/pkg/hal/haltest"
)

// settle repeats each level three times, enough for one WaitChange.
func settle(levels ...bool) []bool {
	var out []bool
	for _, l := range levels {
		out = append(out, l, l, l)
	}
	return out
}

// handshake is what the sensor answers to a start signal.
func handshake() []bool {
	return settle(true, false, true, false, true)
}

// frame is 40 bits of low-then-high pulses. Mock reads take no time, so
// every bit decodes as 0.
func frame() []bool {
	var levels []bool
	for i := 0; i < 40; i++ {
		levels = append(levels, settle(false, true)...)
	}
	return levels
}

var _ = Describe("Parse", func() {
	table.DescribeTable("decodes datasheet frames",
		func(vals [5]byte, rh, temp float64) {
			s, err := am2301.Parse(vals)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.RH).To(BeNumerically("~", rh, 1e-9))
			Expect(s.Temp).To(BeNumerically("~", temp, 1e-9))
			Expect(s.Valid()).To(BeTrue())
		},
		table.Entry("positive", [5]byte{0x02, 0x8C, 0x01, 0x5F, 0xEE}, 65.2, 35.1),
		table.Entry("negative", [5]byte{0x02, 0x8C, 0x80, 0x65, 0x73}, 65.2, -10.1),
	)

	It("rejects a bad checksum", func() {
		_, err := am2301.Parse([5]byte{0x02, 0x8C, 0x01, 0x5F, 0x00})
		Expect(err).To(MatchError("invalid checksum"))
	})
})

var _ = Describe("State", func() {
	table.DescribeTable("Valid",
		func(s am2301.State, valid bool) {
			Expect(s.Valid()).To(Equal(valid))
		},
		table.Entry("room", am2301.State{RH: 40, Temp: 21}, true),
		table.Entry("cold", am2301.State{RH: 40, Temp: -40}, true),
		table.Entry("too cold", am2301.State{RH: 40, Temp: -40.1}, false),
		table.Entry("too hot", am2301.State{RH: 40, Temp: 80.1}, false),
		table.Entry("too wet", am2301.State{RH: 100.1, Temp: 20}, false),
	)
})

var _ = Describe("Impl", func() {
	var port *haltest.GPIO

	BeforeEach(func() {
		port = haltest.NewGPIO()
	})

	It("walks the handshake and decodes a frame", func() {
		port.SetScriptedResponses(4, append(handshake(), frame()...)...)

		s, err := am2301.New(port, 4).Check()
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(am2301.State{}))

		Expect(port.WriteCount(4)).To(Equal(4))
		Expect(port.ReadCount(4)).To(Equal(15 + 240))
		high, _ := port.PinState(4)
		Expect(high).To(BeTrue())
	})

	It("gives up on a sensor that never answers", func() {
		port.SetScriptedResponses(4, settle(false, false, false)...)

		err := am2301.New(port, 4).Request()
		Expect(err).To(HaveOccurred())
	})

	It("reports a dead data pin", func() {
		port.SetPinFailure(4)

		_, err := am2301.New(port, 4).Check()
		Expect(hal.IsFault(err)).To(BeTrue())
	})
})
