package timing

import (
	"errors"
)

// FreqInHz is a clock frequency in hertz.
type FreqInHz uint64

// Frequency units.
const (
	Hz  FreqInHz = 1
	KHz FreqInHz = 1e3
	MHz FreqInHz = 1e6
	GHz FreqInHz = 1e9
)

// ErrZeroFrequency is returned when a zero frequency is used to derive a
// period.
var ErrZeroFrequency = errors.New("timing: frequency must be non-zero")

// PeriodNS returns the length of one cycle in nanoseconds.
func (f FreqInHz) PeriodNS() (float64, error) {
	if f == 0 {
		return 0, ErrZeroFrequency
	}

	return 1e9 / float64(f), nil
}

// CyclesToNS converts a cycle count of this clock into nanoseconds.
func (f FreqInHz) CyclesToNS(cycles VTimeInCycle) float64 {
	if f == 0 {
		return 0
	}

	return float64(cycles) * 1e9 / float64(f)
}
