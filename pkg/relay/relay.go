package relay

import (
	"fmt"

	"github.com/xanderflood/pihal/pkg/hal"
)

//Relay a relay module
type Relay interface {
	Set(bool) error
}

//RelayAgent standard relay implementation
type RelayAgent struct {
	gpio     hal.GPIO
	pin      uint8
	inverted bool
}

//New control a relay wired to pin. Inverted relays close on a low signal.
func New(g hal.GPIO, pin uint8, inverted bool) *RelayAgent {
	return &RelayAgent{
		gpio:     g,
		pin:      pin,
		inverted: inverted,
	}
}

//Set turn the relay on or off
func (r *RelayAgent) Set(on bool) error {
	val := (on != r.inverted) //xor
	if err := r.gpio.Write(r.pin, val); err != nil {
		return fmt.Errorf("failed switching relay on pin %d: %w", r.pin, err)
	}
	return nil
}
