package main

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/xanderflood/pihal/pkg/gpio"
	"github.com/xanderflood/pihal/pkg/hal"
	"github.com/xanderflood/pihal/pkg/hal/haltest"
	"github.com/xanderflood/pihal/pkg/ident"
	"github.com/xanderflood/pihal/pkg/periphhal"
)

const (
	backendMock   = "mock"
	backendPeriph = "periph"
	backendRPIO   = "rpio"
)

//openBackend accepts backend names in any case, e.g. "Periph"
func openBackend(name string, log *slog.Logger) (*hal.Backend, error) {
	switch ident.Normalize(name) {
	case backendMock:
		return &hal.Backend{
			GPIO: haltest.NewGPIO(),
			I2C:  haltest.NewI2C(),
			SPI:  haltest.NewSPI(),
		}, nil

	case backendPeriph:
		b, err := periphhal.Open(periphhal.DefaultOptions, log)
		if err != nil {
			return nil, errors.Wrap(err, "opening periph backend")
		}
		return b, nil

	case backendRPIO:
		r := &gpio.RPIO{}
		if err := r.Open(); err != nil {
			return nil, errors.Wrap(err, "opening rpio backend")
		}
		b := &hal.Backend{GPIO: r}
		b.OnClose(r.Close)
		return b, nil

	default:
		return nil, errors.Errorf("unknown backend %q", name)
	}
}
