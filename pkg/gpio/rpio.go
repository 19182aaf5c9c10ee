package gpio

import (
	"fmt"

	rpio "github.com/stianeikeland/go-rpio"

	"github.com/xanderflood/pihal/pkg/hal"
)

//RPIO drives Raspberry Pi pins (BCM numbering) through /dev/gpiomem.
//Operations fail with hal.ErrNotOpen until Open succeeds.
type RPIO struct {
	open bool
}

var _ hal.GPIO = (*RPIO)(nil)

//Open initialize memory buffers for GPIO
func (r *RPIO) Open() error {
	if err := rpio.Open(); err != nil {
		return fmt.Errorf("failed mapping gpio memory: %w", err)
	}
	r.open = true
	return nil
}

//Close unmaps the GPIO memory
func (r *RPIO) Close() error {
	if !r.open {
		return nil
	}
	r.open = false
	return rpio.Close()
}

//Write switches pin to output and drives it
func (r *RPIO) Write(pin uint8, high bool) error {
	if !r.open {
		return hal.PinFault(pin, hal.ErrNotOpen)
	}

	p := rpio.Pin(pin)
	p.Output()
	p.Write(StateOf(high))
	return nil
}

//Read samples the level register; the pin keeps whatever mode it is in
func (r *RPIO) Read(pin uint8) (bool, error) {
	if !r.open {
		return false, hal.PinFault(pin, hal.ErrNotOpen)
	}

	return rpio.Pin(pin).Read() == High, nil
}

//Input switches pin to input mode
func (r *RPIO) Input(pin uint8) error {
	if !r.open {
		return hal.PinFault(pin, hal.ErrNotOpen)
	}

	rpio.Pin(pin).Input()
	return nil
}
