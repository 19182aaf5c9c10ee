package haltest

import "github.com/xanderflood/pihal/pkg/hal"

//I2CWrite one entry of the write log
type I2CWrite struct {
	Addr uint8
	Data []byte
}

//I2C a mock I2C bus
type I2C struct {
	writes    []I2CWrite
	responses map[uint8][]byte
	failing   map[uint8]struct{}
}

var _ hal.I2C = (*I2C)(nil)

func NewI2C() *I2C {
	return &I2C{
		responses: map[uint8][]byte{},
		failing:   map[uint8]struct{}{},
	}
}

//SetReadResponse sets the bytes served by reads from addr, replacing any
//previous response.
func (b *I2C) SetReadResponse(addr uint8, data []byte) {
	b.responses[addr] = append([]byte(nil), data...)
}

//SetAddressFailure makes every operation on addr fail for the life of the bus.
func (b *I2C) SetAddressFailure(addr uint8) {
	b.failing[addr] = struct{}{}
}

//WriteLog every successful write, in call order
func (b *I2C) WriteLog() []I2CWrite {
	log := make([]I2CWrite, len(b.writes))
	for i, w := range b.writes {
		log[i] = I2CWrite{Addr: w.Addr, Data: append([]byte{}, w.Data...)}
	}
	return log
}

func (b *I2C) Write(addr uint8, data []byte) error {
	if _, ok := b.failing[addr]; ok {
		return hal.AddressFault(addr, hal.ErrSimulated)
	}

	b.writes = append(b.writes, I2CWrite{Addr: addr, Data: append([]byte{}, data...)})
	return nil
}

//Read copies the configured response for addr into buf and returns how much
//was copied, leaving the rest of buf alone. An address with no response
//behaves like a silent device: buf is zeroed and its full length returned.
func (b *I2C) Read(addr uint8, buf []byte) (int, error) {
	if _, ok := b.failing[addr]; ok {
		return 0, hal.AddressFault(addr, hal.ErrSimulated)
	}

	resp, ok := b.responses[addr]
	if !ok {
		for i := range buf {
			buf[i] = 0
		}
		return len(buf), nil
	}
	return copy(buf, resp), nil
}
