package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/xanderflood/pihal/pkg/gpio"
	"github.com/xanderflood/pihal/pkg/hal/haltest"
)

const (
	appName = "pihal"
	version = "0.3.0"
)

type options struct {
	healthcheck bool
	selfTest    bool
	version     bool

	backend string
	pin     uint
	level   string

	logLevel  string
	logFormat string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "%s drives GPIO, I2C and SPI peripherals through a hardware abstraction layer, with mock hardware for testing.\n\nUsage:\n", appName)
		fs.PrintDefaults()
	}

	fs.BoolVar(&opts.healthcheck, "healthcheck", false, "run health check and exit")
	fs.BoolVar(&opts.selfTest, "self-test", false, "run self-test without real hardware")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.StringVar(&opts.backend, "backend", backendMock, "hardware backend: mock, periph or rpio")
	fs.UintVar(&opts.pin, "pin", 18, "GPIO pin for the default run")
	fs.StringVar(&opts.level, "level", "high", "level to drive the pin to: high or low")
	fs.StringVar(&opts.logLevel, "log-level", os.Getenv("PIHAL_LOG_LEVEL"), "debug, info, warn or error (default info, env PIHAL_LOG_LEVEL)")
	fs.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.pin > 255 {
		return opts, fmt.Errorf("pin %d out of range", opts.pin)
	}
	if _, err := gpio.ParseState(opts.level); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err == flag.ErrHelp {
		return 0
	} else if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	log, err := newLogger(opts.logLevel, opts.logFormat, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	switch {
	case opts.version:
		fmt.Fprintf(stdout, "%s %s\n", appName, version)
		return 0

	case opts.healthcheck:
		passed, total := runHealthcheck(haltest.NewGPIO(), log)
		if passed != total {
			log.Warn("health check failed", "passed", passed, "total", total)
			return 1
		}
		log.Info("health check passed", "passed", passed, "total", total)
		return 0

	case opts.selfTest:
		log.Info("running self-test")
		report := runSelfTest(newRig(), time.Now())

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Error("failed writing report", "error", err)
			return 1
		}
		return 0

	default:
		if err := runDefault(opts, stdout, log); err != nil {
			log.Error("run failed", "error", err)
			return 1
		}
		return 0
	}
}

func runDefault(opts options, stdout io.Writer, log *slog.Logger) error {
	log.Info("starting", "backend", opts.backend)
	fmt.Fprintln(stdout, "Hello from Raspberry Pi!")

	b, err := openBackend(opts.backend, log)
	if err != nil {
		return err
	}
	defer b.Close()

	level, _ := gpio.ParseState(opts.level)
	pin := uint8(opts.pin)

	if err := gpio.Set(b.GPIO, pin, level); err != nil {
		return err
	}
	high, err := b.GPIO.Read(pin)
	if err != nil {
		return err
	}
	log.Info("gpio pin state", "pin", pin, "high", high)
	return nil
}
