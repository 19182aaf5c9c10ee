package hal

import (
	"errors"
	"fmt"
)

//Bus names a peripheral bus
type Bus string

const (
	BusGPIO Bus = "gpio"
	BusI2C  Bus = "i2c"
	BusSPI  Bus = "spi"
)

var (
	//ErrSimulated is the cause carried by every fault a mock injects
	ErrSimulated = errors.New("simulated failure")

	//ErrUnknownPin a pin number the backend cannot resolve
	ErrUnknownPin = errors.New("unknown pin")

	//ErrNotOpen the backend was used before being opened
	ErrNotOpen = errors.New("backend not open")
)

//HardwareFault is the single error kind returned by capability operations.
type HardwareFault struct {
	Bus Bus

	//Target is "pin 3", "address 0x48" and so on; empty for unaddressed buses.
	Target string

	Err error
}

//PinFault builds a fault for a GPIO pin
func PinFault(pin uint8, err error) *HardwareFault {
	return &HardwareFault{Bus: BusGPIO, Target: fmt.Sprintf("pin %d", pin), Err: err}
}

//AddressFault builds a fault for an I2C address
func AddressFault(addr uint8, err error) *HardwareFault {
	return &HardwareFault{Bus: BusI2C, Target: fmt.Sprintf("address 0x%02X", addr), Err: err}
}

//ChannelFault builds a fault for the SPI channel
func ChannelFault(err error) *HardwareFault {
	return &HardwareFault{Bus: BusSPI, Err: err}
}

func (f *HardwareFault) Error() string {
	if f.Target == "" {
		return fmt.Sprintf("%s: %v", f.Bus, f.Err)
	}
	return fmt.Sprintf("%s %s: %v", f.Bus, f.Target, f.Err)
}

func (f *HardwareFault) Unwrap() error { return f.Err }

//IsFault reports whether err is, or wraps, a HardwareFault
func IsFault(err error) bool {
	var f *HardwareFault
	return errors.As(err, &f)
}
