// Package haltest provides scripted, instrumented mocks of the hal
// capabilities for exercising device logic without hardware.
//
// Each mock is owned by a single caller and is not safe for concurrent use.
// Wrap it in a mutex if it has to be shared.
package haltest
