// Package periphhal implements the hal capabilities on top of periph.io, so
// device logic written against hal runs unchanged on a real host.
//
// Every error coming back from periph is wrapped in a *hal.HardwareFault.
package periphhal
