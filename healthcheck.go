package main

import (
	"log/slog"

	"github.com/xanderflood/pihal/pkg/hal"
)

const healthcheckPin = 1

// runHealthcheck exercises logging and a GPIO write/read round trip.
func runHealthcheck(g hal.GPIO, log *slog.Logger) (passed, total int) {
	total = 3

	log.Info("health check: logging system")
	passed++

	if err := g.Write(healthcheckPin, true); err != nil {
		log.Warn("health check: gpio write failed", "error", err)
	} else {
		log.Info("health check: gpio write ok")
		passed++
	}

	if high, err := g.Read(healthcheckPin); err != nil {
		log.Warn("health check: gpio read failed", "error", err)
	} else {
		log.Info("health check: gpio read ok", "high", high)
		passed++
	}

	return passed, total
}
