package haltest

import "github.com/xanderflood/pihal/pkg/hal"

//GPIO a mock GPIO port
type GPIO struct {
	pinStates   map[uint8]bool
	writeCounts map[uint8]int
	readCounts  map[uint8]int
	scripts     map[uint8][]bool
	cursors     map[uint8]int
	failing     map[uint8]struct{}
}

var _ hal.GPIO = (*GPIO)(nil)

//NewGPIO an empty port: no pin written, nothing scripted, nothing failing
func NewGPIO() *GPIO {
	g := &GPIO{}
	g.Reset()
	return g
}

//Reset returns the port to the state NewGPIO produced
func (g *GPIO) Reset() {
	g.pinStates = map[uint8]bool{}
	g.writeCounts = map[uint8]int{}
	g.readCounts = map[uint8]int{}
	g.scripts = map[uint8][]bool{}
	g.cursors = map[uint8]int{}
	g.failing = map[uint8]struct{}{}
}

//SetScriptedResponses replaces the levels returned by successive reads of pin.
//Once they run out, reads return the last written level.
func (g *GPIO) SetScriptedResponses(pin uint8, levels ...bool) {
	g.scripts[pin] = append([]bool(nil), levels...)
	g.cursors[pin] = 0
}

//SetPinFailure makes every operation on pin fail until the port is Reset.
func (g *GPIO) SetPinFailure(pin uint8) {
	g.failing[pin] = struct{}{}
}

func (g *GPIO) Write(pin uint8, high bool) error {
	if _, ok := g.failing[pin]; ok {
		return hal.PinFault(pin, hal.ErrSimulated)
	}

	g.writeCounts[pin]++
	g.pinStates[pin] = high
	return nil
}

func (g *GPIO) Read(pin uint8) (bool, error) {
	if _, ok := g.failing[pin]; ok {
		return false, hal.PinFault(pin, hal.ErrSimulated)
	}

	g.readCounts[pin]++

	if i, script := g.cursors[pin], g.scripts[pin]; i < len(script) {
		g.cursors[pin] = i + 1
		return script[i], nil
	}
	return g.pinStates[pin], nil
}

//WriteCount number of successful writes to pin
func (g *GPIO) WriteCount(pin uint8) int { return g.writeCounts[pin] }

//ReadCount number of successful reads of pin
func (g *GPIO) ReadCount(pin uint8) int { return g.readCounts[pin] }

//PinState the last level written to pin; ok is false if it was never written
func (g *GPIO) PinState(pin uint8) (high, ok bool) {
	high, ok = g.pinStates[pin]
	return
}
