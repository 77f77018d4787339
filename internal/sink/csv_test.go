// internal/sink/csv_test.go
package sink

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/acquisition"
)

func sampleReading() acquisition.Reading {
	return acquisition.Reading{
		At:          time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC),
		Temperature: 5.0,
		HexTemp:     "40A00000",
		RawEC:       10.0,
		HexRawEC:    "41200000",
		SensorEC:    16.0,
		SmartEC:     15.625,
		Deviation:   0.375,
	}
}

func TestCSVWritesHeaderOnceForNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ec_data_log.csv")

	c, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("OpenCSV err = %v", err)
	}
	if err := c.Emit(sampleReading()); err != nil {
		t.Fatalf("Emit err = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close err = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row:\n%s", len(lines), data)
	}
	if lines[0] != "Timestamp,Temperature,Hex_Temp,Raw_EC,Hex_Raw_EC,Sensor_Default_EC,Smart_Calc_EC,Deviation" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "2025-06-01 12:30:45,5.0000,40A00000,10.0000,41200000,16.0000,15.6250,0.3750" {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestCSVAppendsWithoutDuplicatingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ec_data_log.csv")

	first, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("OpenCSV err = %v", err)
	}
	if err := first.Emit(sampleReading()); err != nil {
		t.Fatalf("Emit err = %v", err)
	}
	first.Close()

	// Reopen as a restarted run would.
	second, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("reopen err = %v", err)
	}
	if err := second.Emit(sampleReading()); err != nil {
		t.Fatalf("Emit after reopen err = %v", err)
	}
	second.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if n := strings.Count(string(data), "Timestamp,"); n != 1 {
		t.Fatalf("header appears %d times, want 1:\n%s", n, data)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
}

func TestFanoutDeliversToAllChildren(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}

	f := Fanout{a, b}
	if err := f.Emit(sampleReading()); err != nil {
		t.Fatalf("Emit err = %v", err)
	}
	if a.count != 1 || b.count != 1 {
		t.Fatalf("delivery counts a=%d b=%d, want 1 each", a.count, b.count)
	}
}

func TestFanoutFailingChildDoesNotBlockOthers(t *testing.T) {
	a := &recordingSink{err: errors.New("disk full")}
	b := &recordingSink{}

	f := Fanout{a, b}
	err := f.Emit(sampleReading())
	if err == nil {
		t.Fatalf("expected the child failure to surface")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("error lost the child cause: %v", err)
	}
	if b.count != 1 {
		t.Fatalf("healthy child received %d readings, want 1", b.count)
	}
}

type recordingSink struct {
	count int
	err   error
}

func (s *recordingSink) Emit(acquisition.Reading) error {
	s.count++
	return s.err
}
