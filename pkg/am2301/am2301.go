package am2301

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xanderflood/pihal/pkg/gpio"
	"github.com/xanderflood/pihal/pkg/hal"
)

////////////////
// this is a golang port of the C library found at:
// https://github.com/kporembinski/DHT21-AM2301/blob/master/am2301.c
////////////////

//ErrInvalidReading a frame that passed its checksum but is out of range
var ErrInvalidReading = errors.New("reading out of range")

//State state of an AM2301 sensor
type State struct {
	RH   float64
	Temp float64
}

//AM2301 minimal interface
type AM2301 interface {
	Check() (State, error)
}

//Impl standard implementation of a Monitor
type Impl struct {
	gpio hal.GPIO
	pin  uint8
	mode int // should always be 1 - something to do with restarting

	sync.Mutex
}

//New new am2301 on the given data pin
func New(g hal.GPIO, pin uint8) *Impl {
	return &Impl{
		gpio: g,
		pin:  pin,
		mode: 1,
	}
}

//Check request and decode a single measurement
func (am *Impl) Check() (State, error) {
	am.Mutex.Lock()
	defer am.Mutex.Unlock()

	err := am.Request()
	if err != nil {
		return State{}, err
	}

	vals, err := am.Read()
	if err != nil {
		return State{}, err
	}

	//parse the results
	state, err := Parse(vals)
	if err != nil {
		return State{}, err
	}

	if !state.Valid() {
		return State{}, fmt.Errorf("%w: %+v", ErrInvalidReading, state)
	}

	return state, nil
}

func (am *Impl) wait(level gpio.State, timeout time.Duration, step string) error {
	_, ok, err := gpio.WaitChange(am.gpio, am.pin, level, timeout)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unexpected request sequence %s", step)
	}
	return nil
}

//Request send the signal to request a new measurement
func (am *Impl) Request() error {
	// Leave it high for a while
	if err := am.gpio.Write(am.pin, true); err != nil {
		return err
	}
	time.Sleep(100 * time.Microsecond)

	// Set it low to give the start signal
	if err := am.gpio.Write(am.pin, false); err != nil {
		return err
	}
	time.Sleep(1000 * time.Microsecond)

	// Now set the pin high to let the sensor start communicating
	if err := am.gpio.Write(am.pin, true); err != nil {
		return err
	}
	if err := am.wait(gpio.High, 100*time.Microsecond, "1"); err != nil {
		return err
	}

	// Wait for ACK
	if err := am.wait(gpio.Low, 100*time.Microsecond, "2"); err != nil {
		return err
	}
	if err := am.wait(gpio.High, 100*time.Microsecond, "3"); err != nil {
		return err
	}

	// When restarting, it looks like this look for start bit is not needed
	if am.mode != 0 {
		// Wait for the start bit
		if err := am.wait(gpio.Low, 200*time.Microsecond, "4"); err != nil {
			return err
		}
		if err := am.wait(gpio.High, 200*time.Microsecond, "5"); err != nil {
			return err
		}
	}

	return nil
}

//Read read a 5-byte sequence from the pin. A bit is a 1 when the line
//takes 50us or more to fall.
func (am *Impl) Read() ([5]byte, error) {
	var vals [5]byte
	for i := 0; i < 5; i++ {
		for j := 7; j >= 0; j-- {
			val, ok, err := gpio.WaitChange(am.gpio, am.pin, gpio.Low, 500*time.Microsecond)
			if err != nil {
				return [5]byte{}, err
			}
			if !ok {
				return [5]byte{}, fmt.Errorf("unexpected read signal %v:%v:1", i, j)
			}

			if val >= 50*time.Microsecond {
				vals[i] = vals[i] | (1 << uint(j))
			}

			_, ok, err = gpio.WaitChange(am.gpio, am.pin, gpio.High, 500*time.Microsecond)
			if err != nil {
				return [5]byte{}, err
			}
			if !ok {
				return [5]byte{}, fmt.Errorf("unexpected read signal %v:%v:2", i, j)
			}
		}
	}

	if err := am.gpio.Write(am.pin, true); err != nil {
		return [5]byte{}, err
	}

	return vals, nil
}

//Parse parse a State from a 5-byte input stream
func Parse(vals [5]byte) (State, error) {
	// Verify checksum
	if vals[0]+vals[1]+vals[2]+vals[3] != vals[4] {
		return State{}, errors.New("invalid checksum")
	}

	tempSign := 1
	if (vals[2] >> 7) != 0 {
		//turn off the sign bit and set the sign
		vals[2] ^= (1 << 7)
		tempSign = -1
	}

	return State{
		RH:   float64((int(vals[0])<<8)|int(vals[1])) / 10.0,
		Temp: float64(tempSign*((int(vals[2])<<8)|int(vals[3]))) / 10.0,
	}, nil
}

//Valid check that values are within the specifed range
func (s State) Valid() bool {
	return (s.RH <= 100.0) && (s.RH >= 0.0) && (s.Temp <= 80.0) && (s.Temp >= -40.0)
}
