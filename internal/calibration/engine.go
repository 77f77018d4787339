// internal/calibration/engine.go
package calibration

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/clock"
)

const (
	// verifyTolerance is the float read-back comparison tolerance.
	verifyTolerance = 0.001

	// settleDelay gives the firmware a beat between a float write and
	// its read-back.
	settleDelay = 100 * time.Millisecond

	// applyDelay lets the firmware apply a completed sequence before
	// normal register access resumes.
	applyDelay = time.Second
)

// Error reports the register address of the failing wire operation.
// Verification mismatches are advisory and never produce an Error.
type Error struct {
	Addr uint16
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("calibration: register %d: %v", e.Addr, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// RegisterAccess is the subset of the sensor link the engine drives.
type RegisterAccess interface {
	ReadRegisters(addr, count uint16) ([]uint16, error)
	WriteRegister(addr, value uint16) error
	ReadFloat(addr uint16) (float32, string, error)
	WriteFloat(addr uint16, v float32) error
}

// Engine executes calibration commands against one sensor link.
type Engine struct {
	link   RegisterAccess
	coeff  float32
	clock  clock.Clock
	logger *log.Logger
}

// NewEngine builds an engine. coeff is the value written to the
// coefficient pair during mode 2; nil clock and logger fall back to
// real time and the default logger.
func NewEngine(link RegisterAccess, coeff float32, clk clock.Clock, logger *log.Logger) *Engine {
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{link: link, coeff: coeff, clock: clk, logger: logger}
}

// Execute runs the command for mode. A wire-level write failure aborts
// the remaining steps and is returned as *Error; a read-back mismatch
// only warns the operator and the sequence continues.
func (e *Engine) Execute(mode Mode) error {
	steps := Command(mode, e.coeff)
	if len(steps) == 0 {
		e.logger.Printf("calibration skipped (mode 0)")
		return nil
	}

	e.logger.Printf("executing calibration %s", mode)

	for _, step := range steps {
		if err := e.run(step); err != nil {
			return err
		}
	}

	// Give the sensor time to process the calibration.
	e.clock.Sleep(applyDelay)
	e.logger.Printf("calibration %s completed", mode)
	return nil
}

func (e *Engine) run(step Step) error {
	if step.Width == 2 {
		e.logger.Printf("write float %.3f -> registers %d-%d",
			step.FloatValue, step.Register, step.Register+1)
		if err := e.link.WriteFloat(step.Register, step.FloatValue); err != nil {
			return &Error{Addr: step.Register, Err: err}
		}
		if step.Verify {
			e.clock.Sleep(settleDelay)
			e.verifyFloat(step)
		}
		return nil
	}

	e.logger.Printf("write %d (0x%04X) -> register %d",
		step.Value, step.Value, step.Register)
	if err := e.link.WriteRegister(step.Register, step.Value); err != nil {
		return &Error{Addr: step.Register, Err: err}
	}
	if step.Verify {
		e.verifyWord(step)
	}
	return nil
}

// verifyWord reads back a single register. A mismatch is advisory: it
// confirms to the operator whether the write took, nothing more.
func (e *Engine) verifyWord(step Step) {
	regs, err := e.link.ReadRegisters(step.Register, 1)
	if err != nil {
		e.logger.Printf("warning: could not verify register %d (read-back failed: %v)",
			step.Register, err)
		return
	}
	if regs[0] != step.Value {
		e.logger.Printf("warning: register %d read-back differs: wrote %d, got %d",
			step.Register, step.Value, regs[0])
		return
	}
	e.logger.Printf("register %d write verified", step.Register)
}

func (e *Engine) verifyFloat(step Step) {
	got, hex, err := e.link.ReadFloat(step.Register)
	if err != nil {
		e.logger.Printf("warning: could not verify registers %d-%d (read-back failed: %v)",
			step.Register, step.Register+1, err)
		return
	}
	if math.Abs(float64(got)-float64(step.FloatValue)) >= verifyTolerance {
		e.logger.Printf("warning: registers %d-%d read-back differs: wrote %.3f, got %.3f (hex %s)",
			step.Register, step.Register+1, step.FloatValue, got, hex)
		return
	}
	e.logger.Printf("registers %d-%d write verified (%.3f, hex %s)",
		step.Register, step.Register+1, got, hex)
}
