// internal/display/dashboard_test.go
package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/acquisition"
)

func validationReading() acquisition.Reading {
	return acquisition.Reading{
		At:          time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC),
		Temperature: 20.0,
		HexTemp:     "41A00000",
		RawEC:       11.65,
		HexRawEC:    "413A6666",
		SensorEC:    12.95,
		SmartEC:     12.90,
		Coefficient: 0.0190,
		Deviation:   0.05,
	}
}

func TestDashboardRendersValidationView(t *testing.T) {
	var buf bytes.Buffer
	d := NewDashboard(&buf, Nop{}, "/dev/ttyUSB0")

	if err := d.Emit(validationReading()); err != nil {
		t.Fatalf("Emit err = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"LIVE ALGORITHM VALIDATION",
		"Port: /dev/ttyUSB0",
		"Samples: 1",
		"2025-06-01 12:30:45",
		"hex 41A00000",
		"normal range (15-25 C)",
		"Dynamic k = 0.0190",
		"fixed k = 0.0200",
		"C25 = Raw_EC / (1 + k * (Temp - 25))",
		"hex 413A6666",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDashboardVerdictsAgainstStandard(t *testing.T) {
	var buf bytes.Buffer
	d := NewDashboard(&buf, Nop{}, "/dev/ttyUSB0")

	// Smart within tolerance of 12.88, sensor outside it.
	r := validationReading()
	r.SensorEC = 13.20
	r.SmartEC = 12.90
	if err := d.Emit(r); err != nil {
		t.Fatalf("Emit err = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "PASS") {
		t.Fatalf("expected a PASS verdict:\n%s", out)
	}
	if !strings.Contains(out, "FAIL (exceeds tolerance)") {
		t.Fatalf("expected a FAIL verdict:\n%s", out)
	}
	if !strings.Contains(out, "smart algorithm is closer to the standard") {
		t.Fatalf("expected the improvement note:\n%s", out)
	}
}

func TestDashboardCountsSamplesAcrossEmits(t *testing.T) {
	var buf bytes.Buffer
	d := NewDashboard(&buf, Nop{}, "/dev/ttyS0")

	for i := 0; i < 3; i++ {
		if err := d.Emit(validationReading()); err != nil {
			t.Fatalf("Emit err = %v", err)
		}
	}
	if !strings.Contains(buf.String(), "Samples: 3") {
		t.Fatalf("sample counter did not advance:\n%s", buf.String())
	}
}

func TestTempRangeBuckets(t *testing.T) {
	cases := []struct {
		temp float64
		want string
	}{
		{2.0, "very cold range (<=5 C)"},
		{5.0, "very cold range (<=5 C)"},
		{7.5, "cold range (5-10 C)"},
		{12.0, "cool range (10-15 C)"},
		{25.0, "normal range (15-25 C)"},
		{30.0, "warm range (>25 C)"},
	}
	for _, c := range cases {
		if got := tempRange(c.temp); got != c.want {
			t.Fatalf("tempRange(%v) = %q, want %q", c.temp, got, c.want)
		}
	}
}
