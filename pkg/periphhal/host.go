package periphhal

import (
	"fmt"
	"log/slog"

	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi"
	"periph.io/x/periph/conn/spi/spireg"
	"periph.io/x/periph/host"

	"github.com/xanderflood/pihal/pkg/hal"
)

//Options selects the buses Open binds
type Options struct {
	//I2CBus and SPIPort are registry names; empty picks the first available.
	I2CBus  string
	SPIPort string

	SPIFrequency physic.Frequency
	SPIMode      spi.Mode
}

//DefaultOptions first I2C bus, first SPI port at 1MHz in mode 0
var DefaultOptions = Options{
	SPIFrequency: physic.MegaHertz,
	SPIMode:      spi.Mode0,
}

//Open initializes the periph host and binds its GPIO registry, I2C bus and
//SPI port. A missing bus is logged and left nil rather than failing, since
//plenty of boards have GPIO only.
func Open(opts Options, log *slog.Logger) (*hal.Backend, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed initializing periph.io host: %w", err)
	}

	b := &hal.Backend{GPIO: NewGPIO(nil)}

	bus, err := i2creg.Open(opts.I2CBus)
	if err != nil {
		log.Warn("no i2c bus, modules relying on I2C will fail", "error", err)
	} else {
		b.I2C = NewI2C(bus)
		b.OnClose(bus.Close)
		log.Debug("opened i2c bus", "bus", bus.String())
	}

	port, err := spireg.Open(opts.SPIPort)
	if err != nil {
		log.Warn("no spi port, modules relying on SPI will fail", "error", err)
		return b, nil
	}
	b.OnClose(port.Close)

	c, err := port.Connect(opts.SPIFrequency, opts.SPIMode, 8)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("failed connecting spi port %s: %w", port, err)
	}
	b.SPI = NewSPI(c)
	log.Debug("opened spi port", "port", port.String(), "frequency", opts.SPIFrequency.String())

	return b, nil
}
