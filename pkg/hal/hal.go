// Package hal defines the peripheral capabilities device logic is written
// against. Backends live elsewhere: haltest for scripted mocks, periphhal for
// periph.io hosts and gpio.RPIO for memory-mapped Raspberry Pi GPIO.
package hal

//GPIO digital pins addressed by number
type GPIO interface {
	Write(pin uint8, high bool) error
	Read(pin uint8) (bool, error)
}

//I2C a bus of devices addressed by their 7-bit address
type I2C interface {
	Write(addr uint8, data []byte) error

	//Read fills buf from the device at addr and reports how many bytes were
	//produced. Bytes past that count are left as they were.
	Read(addr uint8, buf []byte) (int, error)
}

//SPI a single full-duplex channel
type SPI interface {
	//Transfer clocks buf out and overwrites it in place with what was clocked in.
	Transfer(buf []byte) error
}

//Backend groups one implementation of each capability
type Backend struct {
	GPIO GPIO
	I2C  I2C
	SPI  SPI

	closers []func() error
}

//OnClose registers fn to run when the backend is closed
func (b *Backend) OnClose(fn func() error) {
	b.closers = append(b.closers, fn)
}

//Close releases everything registered with OnClose, in reverse order,
//returning the first error
func (b *Backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	b.closers = nil
	return first
}
