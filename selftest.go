package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"periph.io/x/periph/conn/physic"

	"github.com/xanderflood/pihal/pkg/ads1115"
	"github.com/xanderflood/pihal/pkg/hal"
	"github.com/xanderflood/pihal/pkg/hal/haltest"
	"github.com/xanderflood/pihal/pkg/relay"
)

const (
	statusPass = "pass"
	statusFail = "fail"
)

type Diagnostic struct {
	Test    string `json:"test"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
	Error   string `json:"error,omitempty"`
}

type SelfTestResults struct {
	Timestamp   string       `json:"timestamp"`
	TotalTests  int          `json:"total_tests"`
	Passed      int          `json:"passed"`
	Failed      int          `json:"failed"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

type SelfTestReport struct {
	Results SelfTestResults `json:"self_test_results"`
}

// rig is the mock hardware the self-test runs against. Checks share it and
// run in order, so later checks see what earlier ones did.
type rig struct {
	gpio *haltest.GPIO
	i2c  *haltest.I2C
	spi  *haltest.SPI
}

func newRig() *rig {
	return &rig{
		gpio: haltest.NewGPIO(),
		i2c:  haltest.NewI2C(),
		spi:  haltest.NewSPI(),
	}
}

type check struct {
	name string
	run  func(r *rig) (details string, err error)
}

var selfTestChecks = []check{
	{"gpio_write", checkGPIOWrite},
	{"gpio_read", checkGPIORead},
	{"call_counting", checkCallCounting},
	{"i2c_write", checkI2CWrite},
	{"i2c_read", checkI2CRead},
	{"spi_transfer", checkSPITransfer},
	{"fault_injection", checkFaultInjection},
	{"relay_switch", checkRelaySwitch},
	{"adc_read", checkADCRead},
}

func runSelfTest(r *rig, now time.Time) SelfTestReport {
	res := SelfTestResults{
		Timestamp:   now.UTC().Format(time.RFC3339Nano),
		Diagnostics: []Diagnostic{},
	}

	for _, c := range selfTestChecks {
		d := Diagnostic{Test: c.name}
		if details, err := c.run(r); err != nil {
			d.Status = statusFail
			d.Error = err.Error()
			res.Failed++
		} else {
			d.Status = statusPass
			d.Details = details
			res.Passed++
		}
		res.Diagnostics = append(res.Diagnostics, d)
	}
	res.TotalTests = len(res.Diagnostics)

	return SelfTestReport{Results: res}
}

func checkGPIOWrite(r *rig) (string, error) {
	if err := r.gpio.Write(1, true); err != nil {
		return "", err
	}
	return "Pin 1 set to HIGH", nil
}

func checkGPIORead(r *rig) (string, error) {
	high, err := r.gpio.Read(1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Pin 1 state: %t", high), nil
}

func checkCallCounting(r *rig) (string, error) {
	writes, reads := r.gpio.WriteCount(1), r.gpio.ReadCount(1)
	if writes != 1 || reads != 1 {
		return "", errors.Errorf("pin 1 counted %d writes and %d reads, expected 1 of each", writes, reads)
	}
	return fmt.Sprintf("Pin 1 write count: %d", writes), nil
}

func checkI2CWrite(r *rig) (string, error) {
	if err := r.i2c.Write(0x48, []byte{0x01, 0x02}); err != nil {
		return "", err
	}
	if n := len(r.i2c.WriteLog()); n != 1 {
		return "", errors.Errorf("write log holds %d entries, expected 1", n)
	}
	return "Wrote 2 bytes to 0x48", nil
}

func checkI2CRead(r *rig) (string, error) {
	r.i2c.SetReadResponse(0x48, []byte{0xAA, 0xBB, 0xCC})

	buf := make([]byte, 5)
	n, err := r.i2c.Read(0x48, buf)
	if err != nil {
		return "", err
	}
	if n != 3 {
		return "", errors.Errorf("read %d bytes, expected 3", n)
	}
	return fmt.Sprintf("Read %d bytes from 0x48: %x", n, buf[:n]), nil
}

func checkSPITransfer(r *rig) (string, error) {
	r.spi.AddResponse([]byte{0xFF, 0xEE})

	buf := []byte{0x01, 0x02}
	if err := r.spi.Transfer(buf); err != nil {
		return "", err
	}
	if buf[0] != 0xFF || buf[1] != 0xEE {
		return "", errors.Errorf("received %x, expected ffee", buf)
	}
	return fmt.Sprintf("Sent 0102, received %x", buf), nil
}

func checkFaultInjection(r *rig) (string, error) {
	const pin = 5
	r.gpio.SetPinFailure(pin)

	err := r.gpio.Write(pin, true)
	if err == nil {
		return "", errors.New("write to a failed pin succeeded")
	}
	if !hal.IsFault(err) {
		return "", errors.Wrap(err, "unexpected error kind")
	}
	if n := r.gpio.WriteCount(pin); n != 0 {
		return "", errors.Errorf("failed write was counted %d times", n)
	}
	return fmt.Sprintf("Pin %d rejected write: %v", pin, err), nil
}

func checkRelaySwitch(r *rig) (string, error) {
	const pin = 23
	if err := relay.New(r.gpio, pin, true).Set(true); err != nil {
		return "", err
	}
	if err := expectDrivenLow(r.gpio, pin); err != nil {
		return "", err
	}
	return fmt.Sprintf("Inverted relay on pin %d switched on", pin), nil
}

func expectDrivenLow(g *haltest.GPIO, pin uint8) error {
	high, ok := g.PinState(pin)
	if !ok {
		return errors.Errorf("relay never drove pin %d", pin)
	}
	if high {
		return errors.New("inverted relay drove its pin high when switched on")
	}
	return nil
}

func checkADCRead(r *rig) (string, error) {
	const addr = 0x49
	r.i2c.SetReadResponse(addr, []byte{0x40, 0x00})

	pin, err := ads1115.Open(r.i2c, addr, 0)
	if err != nil {
		return "", err
	}

	sample, err := pin.Read()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ADS1115 at 0x%02X channel 0: %.3fV", addr, float64(sample.V)/float64(physic.Volt)), nil
}
