package ads1115

import (
	"fmt"

	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/experimental/conn/analog"
	"periph.io/x/periph/experimental/devices/ads1x15"

	"github.com/xanderflood/pihal/pkg/hal"
	"github.com/xanderflood/pihal/pkg/periphhal"
)

//DefaultAddress the address with ADDR tied to ground
const DefaultAddress uint8 = 0x48

//MaxVoltage the largest input a channel is sized for; the driver picks the
//6.144V range to cover it
const MaxVoltage = 5 * physic.Volt

//New runs periph's ADS1115 driver over any hal.I2C bus
func New(bus hal.I2C, addr uint8) (*ads1x15.Dev, error) {
	opts := ads1x15.DefaultOpts
	opts.I2cAddress = uint16(addr)

	name := fmt.Sprintf("ads1115@0x%02X", addr)
	return ads1x15.NewADS1115(periphhal.NewBus(bus, name), &opts)
}

//PinForChannel binds single-ended input ch (AIN0 to AIN3) for one-shot
//reads at the fastest data rate
func PinForChannel(dev *ads1x15.Dev, ch int) (analog.PinADC, error) {
	if ch < 0 || ch > 3 {
		return nil, fmt.Errorf("no such channel %d", ch)
	}
	return dev.PinForChannel(ads1x15.Channel0+ads1x15.Channel(ch), MaxVoltage, 1*physic.Hertz, ads1x15.SaveEnergy)
}

//Open is New followed by PinForChannel
func Open(bus hal.I2C, addr uint8, ch int) (analog.PinADC, error) {
	dev, err := New(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("failed initializing ADS1115: %w", err)
	}

	pin, err := PinForChannel(dev, ch)
	if err != nil {
		return nil, fmt.Errorf("failed configuring ADS1115 channel %d: %w", ch, err)
	}
	return pin, nil
}
