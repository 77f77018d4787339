// internal/calibration/command.go

// Package calibration sequences the register writes that drive the
// sensor's built-in calibration procedures.
package calibration

import (
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/sensor"
)

// Mode selects one calibration procedure.
type Mode int

const (
	// ModeSkip performs no wire traffic.
	ModeSkip Mode = 0
	// ModeStandard writes 2 to the mode register.
	ModeStandard Mode = 1
	// ModeCoefficient writes the calibration coefficient to the float
	// pair, then 3 to the mode register.
	ModeCoefficient Mode = 2
	// ModeTestK writes a scaled integer coefficient (k x 10000) to
	// register 16 to probe whether the sensor accepts that encoding.
	ModeTestK Mode = 3
)

func (m Mode) String() string {
	switch m {
	case ModeSkip:
		return "mode 0 (skip)"
	case ModeStandard:
		return "mode 1"
	case ModeCoefficient:
		return "mode 2"
	case ModeTestK:
		return "mode 3 (test K)"
	default:
		return "invalid mode"
	}
}

// ParseMode normalizes a user selection. Anything outside 0..3 falls
// back to ModeSkip; an out-of-range selection is never an error.
func ParseMode(v int) Mode {
	if v < int(ModeSkip) || v > int(ModeTestK) {
		return ModeSkip
	}
	return Mode(v)
}

// Values the procedures write.
const (
	// DefaultCoeffValue is the standard EC calibration coefficient
	// written during mode 2.
	DefaultCoeffValue float32 = 12880

	modeOneValue uint16 = 2
	modeTwoValue uint16 = 3
	testKValue   uint16 = 190 // 0.0190 x 10000
)

// Step is one register write with optional read-back verification.
// Width 1 writes Value; width 2 writes FloatValue to the pair starting
// at Register.
type Step struct {
	Register   uint16
	Width      uint16
	Value      uint16
	FloatValue float32
	Verify     bool
}

// Command builds the ordered write list for mode. It is built once per
// invocation and never mutated; coeff is the float written during
// mode 2.
func Command(mode Mode, coeff float32) []Step {
	switch mode {
	case ModeStandard:
		return []Step{
			{Register: sensor.RegCalMode, Width: 1, Value: modeOneValue, Verify: true},
		}
	case ModeCoefficient:
		return []Step{
			{Register: sensor.RegCalCoeff, Width: 2, FloatValue: coeff, Verify: true},
			{Register: sensor.RegCalMode, Width: 1, Value: modeTwoValue, Verify: true},
		}
	case ModeTestK:
		return []Step{
			{Register: sensor.RegTestK, Width: 1, Value: testKValue, Verify: true},
		}
	default:
		return nil
	}
}
