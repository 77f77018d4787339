// internal/display/dashboard.go
package display

import (
	"fmt"
	"io"
	"math"

	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/acquisition"
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/ec"
)

// Validation reference: the 12.88 mS/cm standard solution at 25 C.
const (
	StandardEC = 12.88
	Tolerance  = 0.10 // mS/cm
)

const timestampLayout = "2006-01-02 15:04:05"

// Dashboard renders each reading as a live validation view comparing
// the sensor's fixed-coefficient output against the dynamic
// compensation. It implements acquisition.Sink.
type Dashboard struct {
	out     io.Writer
	term    TerminalController
	port    string
	samples int
}

// NewDashboard builds a dashboard writing to out for the sensor bound
// at port.
func NewDashboard(out io.Writer, term TerminalController, port string) *Dashboard {
	if term == nil {
		term = Nop{}
	}
	return &Dashboard{out: out, term: term, port: port}
}

func (d *Dashboard) Emit(r acquisition.Reading) error {
	d.samples++
	d.term.Clear()

	sensorErr := math.Abs(r.SensorEC - StandardEC)
	smartErr := math.Abs(r.SmartEC - StandardEC)
	improvement := sensorErr - smartErr

	w := d.out
	fmt.Fprintln(w, "========================= LIVE ALGORITHM VALIDATION =========================")
	fmt.Fprintf(w, "Port: %s | Samples: %d | Time: %s\n\n",
		d.port, d.samples, r.At.Format(timestampLayout))

	fmt.Fprintf(w, "Temperature = %.2f C (hex %s) -> %s\n",
		r.Temperature, r.HexTemp, tempRange(r.Temperature))
	fmt.Fprintf(w, "Dynamic k = %.4f (%.2f%%); sensor fixed k = %.4f\n\n",
		r.Coefficient, r.Coefficient*100, ec.SensorFixedK)

	fmt.Fprintln(w, "C25 = Raw_EC / (1 + k * (Temp - 25))")
	fmt.Fprintf(w, "  sensor: %.2f = %.2f / %.4f  (fixed k)\n",
		r.SensorEC, r.RawEC, 1.0+ec.SensorFixedK*(r.Temperature-25.0))
	fmt.Fprintf(w, "  smart:  %.2f = %.2f / %.4f  (dynamic k)\n\n",
		r.SmartEC, r.RawEC, 1.0+r.Coefficient*(r.Temperature-25.0))

	fmt.Fprintf(w, "Standard reference %.2f mS/cm, tolerance +/- %.2f\n", StandardEC, Tolerance)
	fmt.Fprintf(w, "  sensor error: %8.4f mS/cm  %s\n", sensorErr, verdict(sensorErr))
	fmt.Fprintf(w, "  smart error:  %8.4f mS/cm  %s\n", smartErr, verdict(smartErr))
	fmt.Fprintf(w, "  error reduction: %.4f mS/cm (%s)\n\n", improvement, improvementNote(improvement))

	fmt.Fprintf(w, "Raw EC %.4f mS/cm (hex %s) | deviation %.4f mS/cm\n",
		r.RawEC, r.HexRawEC, r.Deviation)
	fmt.Fprintln(w, "Press Ctrl+C to stop.")
	return nil
}

func verdict(errVal float64) string {
	if errVal <= Tolerance {
		return "PASS"
	}
	return "FAIL (exceeds tolerance)"
}

func improvementNote(improvement float64) string {
	switch {
	case improvement > 0:
		return "smart algorithm is closer to the standard"
	case improvement < 0:
		return "sensor default is closer (rare)"
	default:
		return "no difference"
	}
}

// tempRange names the calibration bucket for the operator.
func tempRange(temp float64) string {
	switch {
	case temp <= 5.0:
		return "very cold range (<=5 C)"
	case temp <= 10.0:
		return "cold range (5-10 C)"
	case temp <= 15.0:
		return "cool range (10-15 C)"
	case temp <= 25.0:
		return "normal range (15-25 C)"
	default:
		return "warm range (>25 C)"
	}
}
