package periphhal

import (
	"fmt"

	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/physic"

	"github.com/xanderflood/pihal/pkg/hal"
)

//Bus presents a hal.I2C as a periph i2c.Bus, so periph device drivers can
//run against any backend, mocks included.
type Bus struct {
	i2c  hal.I2C
	name string
}

var _ i2c.Bus = (*Bus)(nil)

func NewBus(b hal.I2C, name string) *Bus {
	return &Bus{i2c: b, name: name}
}

func (b *Bus) String() string {
	return b.name
}

//Tx writes w then reads r as two separate operations. A read that comes back
//short is an error, since periph drivers expect r to be filled.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7F {
		return fmt.Errorf("%s: invalid 7-bit address 0x%X", b.name, addr)
	}

	if len(w) > 0 {
		if err := b.i2c.Write(uint8(addr), w); err != nil {
			return err
		}
	}

	if len(r) > 0 {
		n, err := b.i2c.Read(uint8(addr), r)
		if err != nil {
			return err
		}
		if n != len(r) {
			return fmt.Errorf("%s: short read from 0x%02X: got %d of %d bytes", b.name, addr, n, len(r))
		}
	}
	return nil
}

//SetSpeed is a no-op; hal buses have no clock to tune.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return nil
}
