// internal/display/diagnostics.go
package display

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/clock"
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/ec"
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/sensor"
)

// RegisterReader is the read-only view of the sensor link the monitor
// needs.
type RegisterReader interface {
	ReadRegisters(addr, count uint16) ([]uint16, error)
}

// Monitor renders the sensor's diagnostic and calibration registers at
// 1 Hz until the operator presses Enter (or the context is cancelled).
// Read errors render as placeholders and never abort the monitor.
type Monitor struct {
	link  RegisterReader
	out   io.Writer
	term  TerminalController
	input io.Reader
	clock clock.Clock
}

// NewMonitor builds a monitor reading keypresses from input.
func NewMonitor(link RegisterReader, out io.Writer, term TerminalController, input io.Reader, clk clock.Clock) *Monitor {
	if term == nil {
		term = Nop{}
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Monitor{link: link, out: out, term: term, input: input, clock: clk}
}

// Run redraws until Enter or Space is pressed. The terminal is put in
// raw mode so the keypress is seen without a newline; if raw mode is
// unavailable the monitor still runs and stops on ctx cancellation.
func (m *Monitor) Run(ctx context.Context) error {
	restore, err := m.term.EnterRaw()
	if err == nil {
		defer restore()
	}

	updates := 0
	buf := make([]byte, 1)

	for {
		updates++
		m.term.Clear()

		fmt.Fprintln(m.out, "==================== SENSOR DIAGNOSTIC REGISTERS ====================")
		fmt.Fprintf(m.out, "Time: %s | Updates: %d\n\n",
			m.clock.Now().Format(timestampLayout), updates)

		m.word(sensor.RegDiag1, "")
		m.word(sensor.RegDiag2, "")
		m.word(sensor.RegTestK, "")

		fmt.Fprintln(m.out, "\n--- calibration registers ---")
		m.word(sensor.RegCalMode, "calibration mode")
		m.pair(sensor.RegCalCoeff, "calibration coefficient")

		fmt.Fprintln(m.out, "\nUse these values to verify sensor state.")
		fmt.Fprintln(m.out, ">>> press ENTER to proceed to calibration mode selection <<<")

		if n, _ := m.input.Read(buf); n > 0 {
			if buf[0] == '\n' || buf[0] == '\r' || buf[0] == ' ' {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		m.clock.Sleep(time.Second)
	}
}

func (m *Monitor) word(addr uint16, note string) {
	if note != "" {
		note = "  <- " + note
	}
	regs, err := m.link.ReadRegisters(addr, 1)
	if err != nil {
		fmt.Fprintf(m.out, "  register %2d = [READ ERROR]%s\n", addr, note)
		return
	}
	fmt.Fprintf(m.out, "  register %2d = %5d (0x%04X)%s\n", addr, regs[0], regs[0], note)
}

func (m *Monitor) pair(addr uint16, note string) {
	if note != "" {
		note = "  <- " + note
	}
	regs, err := m.link.ReadRegisters(addr, sensor.FloatWidth)
	if err != nil {
		fmt.Fprintf(m.out, "  register %2d = [READ ERROR]%s\n", addr, note)
		return
	}
	fmt.Fprintf(m.out, "  register %2d = %.3f (hex %s)%s\n",
		addr, ec.FromRegisters(regs[0], regs[1]), ec.HexString(regs[0], regs[1]), note)
}
