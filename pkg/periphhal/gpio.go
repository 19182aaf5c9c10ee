package periphhal

import (
	"strconv"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"

	"github.com/xanderflood/pihal/pkg/hal"
)

//PinLookup resolves a pin name to a pin, or nil if there is none
type PinLookup func(name string) gpio.PinIO

//GPIO pins resolved by number through a PinLookup
type GPIO struct {
	lookup PinLookup
}

var _ hal.GPIO = (*GPIO)(nil)

//NewGPIO resolves pins through lookup; nil means periph's gpioreg
func NewGPIO(lookup PinLookup) *GPIO {
	if lookup == nil {
		lookup = gpioreg.ByName
	}
	return &GPIO{lookup: lookup}
}

func (g *GPIO) pin(n uint8) (gpio.PinIO, error) {
	p := g.lookup(strconv.Itoa(int(n)))
	if p == nil {
		return nil, hal.PinFault(n, hal.ErrUnknownPin)
	}
	return p, nil
}

func (g *GPIO) Write(pin uint8, high bool) error {
	p, err := g.pin(pin)
	if err != nil {
		return err
	}
	if err := p.Out(gpio.Level(high)); err != nil {
		return hal.PinFault(pin, err)
	}
	return nil
}

//Read samples the pin level without touching its direction, so a pin that
//was just written reads back what it drives.
func (g *GPIO) Read(pin uint8) (bool, error) {
	p, err := g.pin(pin)
	if err != nil {
		return false, err
	}
	return p.Read() == gpio.High, nil
}

//Input releases pin to be driven from outside, leaving its pull as it is
func (g *GPIO) Input(pin uint8) error {
	p, err := g.pin(pin)
	if err != nil {
		return err
	}
	if err := p.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return hal.PinFault(pin, err)
	}
	return nil
}
