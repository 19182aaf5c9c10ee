package gpio

import (
	"fmt"
	"strings"
	"time"

	rpio "github.com/stianeikeland/go-rpio"

	"github.com/xanderflood/pihal/pkg/hal"
)

//State IO pin state
type State = rpio.State

//States state names
var States = map[State]string{
	Low:  "low",
	High: "high",
}

const (
	//Low signal
	Low = rpio.Low

	//High signal
	High = rpio.High
)

//ParseState parse a state from a string
func ParseState(s string) (State, error) {
	if strings.ToLower(s) == States[Low] {
		return Low, nil
	} else if strings.ToLower(s) == States[High] {
		return High, nil
	}
	return State(0), fmt.Errorf("unexpected string %s, expected HIGH or LOW", s)
}

//StateOf the state for a boolean level
func StateOf(high bool) State {
	if high {
		return High
	}
	return Low
}

//Set drives pin to the given state
func Set(g hal.GPIO, pin uint8, s State) error {
	return g.Write(pin, s == High)
}

//WaitChange wait until the pin reliably reads `mode`, returning the elapsed duration.
//A reading only counts once three consecutive samples agree. If `timeout`
//elapses first, ok is false. A read error ends the wait immediately.
func WaitChange(g hal.GPIO, pin uint8, mode State, timeout time.Duration) (elapsed time.Duration, ok bool, err error) {
	start := time.Now()
	want := mode == High

	for {
		elapsed = time.Since(start)

		if elapsed > timeout {
			return
		}

		var samples [3]bool
		for i := range samples {
			if samples[i], err = g.Read(pin); err != nil {
				return
			}
		}

		if samples[0] == samples[1] && samples[1] == samples[2] && samples[2] == want {
			ok = true
			return
		}
	}
}
