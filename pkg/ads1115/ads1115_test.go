package ads1115_test

import (
	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/experimental/conn/analog"

	"github.com/xanderflood/pihal/pkg/ads1115"
	"github.com/xanderflood/pihal/pkg/hal"
	"github.com/xanderflood/pihal/pkg/hal/haltest"
)

var _ = Describe("ADS1115", func() {
	var bus *haltest.I2C

	BeforeEach(func() {
		bus = haltest.NewI2C()
	})

	open := func(ch int) analog.PinADC {
		pin, err := ads1115.Open(bus, ads1115.DefaultAddress, ch)
		Expect(err).NotTo(HaveOccurred())
		return pin
	}

	It("starts a single-shot conversion then selects the conversion register", func() {
		bus.SetReadResponse(0x48, []byte{0x00, 0x00})

		_, err := open(0).Read()
		Expect(err).NotTo(HaveOccurred())
		// OS=1 MUX=AIN0/GND PGA=6.144V MODE=single DR=860SPS COMP_QUE=off
		Expect(bus.WriteLog()).To(Equal([]haltest.I2CWrite{
			{Addr: 0x48, Data: []byte{0x01, 0xC1, 0xE3}},
			{Addr: 0x48, Data: []byte{0x00}},
		}))
	})

	table.DescribeTable("encodes the channel into the multiplexer bits",
		func(ch int, config []byte) {
			_, err := open(ch).Read()
			Expect(err).NotTo(HaveOccurred())
			Expect(bus.WriteLog()[0].Data).To(Equal(config))
		},
		table.Entry("AIN1", 1, []byte{0x01, 0xD1, 0xE3}),
		table.Entry("AIN2", 2, []byte{0x01, 0xE1, 0xE3}),
		table.Entry("AIN3", 3, []byte{0x01, 0xF1, 0xE3}),
	)

	table.DescribeTable("scales readings by the 6.144V range",
		func(resp []byte, raw int32, want physic.ElectricPotential) {
			bus.SetReadResponse(0x48, resp)

			s, err := open(0).Read()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Raw).To(Equal(raw))
			Expect(s.V).To(Equal(want))
		},
		table.Entry("half scale", []byte{0x40, 0x00}, int32(16384), 3072*physic.MilliVolt),
		table.Entry("quarter scale", []byte{0x20, 0x00}, int32(8192), 1536*physic.MilliVolt),
		table.Entry("zero", []byte{0x00, 0x00}, int32(0), physic.ElectricPotential(0)),
		table.Entry("negative half scale", []byte{0xC0, 0x00}, int32(-16384), -3072*physic.MilliVolt),
		table.Entry("minimum", []byte{0x80, 0x00}, int32(-32768), -6144*physic.MilliVolt),
	)

	It("reads zero volts from a silent device", func() {
		s, err := open(1).Read()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.V).To(BeZero())
	})

	It("rejects a short conversion read", func() {
		bus.SetReadResponse(0x48, []byte{0x40})

		_, err := open(0).Read()
		Expect(err).To(MatchError(ContainSubstring("short read from 0x48: got 1 of 2 bytes")))
	})

	It("passes bus faults through", func() {
		bus.SetAddressFailure(0x48)

		_, err := open(0).Read()
		Expect(hal.IsFault(err)).To(BeTrue())
		Expect(bus.WriteLog()).To(BeEmpty())
	})

	It("talks to the address it was given", func() {
		bus.SetReadResponse(0x4B, []byte{0x40, 0x00})

		pin, err := ads1115.Open(bus, 0x4B, 0)
		Expect(err).NotTo(HaveOccurred())

		s, err := pin.Read()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.V).To(Equal(3072 * physic.MilliVolt))
		Expect(bus.WriteLog()).To(HaveLen(2))
		Expect(bus.WriteLog()[0].Addr).To(Equal(uint8(0x4B)))
	})

	It("rejects channels past AIN3", func() {
		_, err := ads1115.Open(bus, ads1115.DefaultAddress, 4)
		Expect(err).To(MatchError("failed configuring ADS1115 channel 4: no such channel 4"))

		_, err = ads1115.Open(bus, ads1115.DefaultAddress, -1)
		Expect(err).To(HaveOccurred())
		Expect(bus.WriteLog()).To(BeEmpty())
	})

	It("does not touch the bus until a read", func() {
		dev, err := ads1115.New(bus, ads1115.DefaultAddress)
		Expect(err).NotTo(HaveOccurred())

		_, err = ads1115.PinForChannel(dev, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(bus.WriteLog()).To(BeEmpty())
	})
})
