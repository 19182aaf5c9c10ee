package periphhal

import (
	"periph.io/x/periph/conn/i2c"

	"github.com/xanderflood/pihal/pkg/hal"
)

//I2C a periph I2C bus
type I2C struct {
	bus i2c.Bus
}

var _ hal.I2C = (*I2C)(nil)

func NewI2C(bus i2c.Bus) *I2C {
	return &I2C{bus: bus}
}

func (b *I2C) Write(addr uint8, data []byte) error {
	if err := b.bus.Tx(uint16(addr), data, nil); err != nil {
		return hal.AddressFault(addr, err)
	}
	return nil
}

//Read always fills the whole buffer; periph has no notion of a short read.
func (b *I2C) Read(addr uint8, buf []byte) (int, error) {
	if err := b.bus.Tx(uint16(addr), nil, buf); err != nil {
		return 0, hal.AddressFault(addr, err)
	}
	return len(buf), nil
}
