// internal/sink/csv.go

// Package sink delivers readings to their destinations.
package sink

import (
	"fmt"
	"os"

	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/acquisition"
)

const (
	csvHeader = "Timestamp,Temperature,Hex_Temp,Raw_EC,Hex_Raw_EC,Sensor_Default_EC,Smart_Calc_EC,Deviation"

	timestampLayout = "2006-01-02 15:04:05"
)

// CSV appends readings to a log file. The header is written only when
// the file did not exist before this run; an existing log is appended
// to, preserving history across restarts.
type CSV struct {
	f *os.File
}

// OpenCSV opens (or creates) the log file at path in append mode.
func OpenCSV(path string) (*CSV, error) {
	_, statErr := os.Stat(path)
	existed := statErr == nil

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("sink: open csv %s: %w", path, err)
	}

	if !existed {
		if _, err := fmt.Fprintln(f, csvHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("sink: write csv header: %w", err)
		}
	}

	return &CSV{f: f}, nil
}

// Emit appends one row and flushes it to disk, so an interrupted run
// loses at most the in-flight row.
func (c *CSV) Emit(r acquisition.Reading) error {
	_, err := fmt.Fprintf(c.f, "%s,%.4f,%s,%.4f,%s,%.4f,%.4f,%.4f\n",
		r.At.Format(timestampLayout),
		r.Temperature, r.HexTemp,
		r.RawEC, r.HexRawEC,
		r.SensorEC, r.SmartEC, r.Deviation,
	)
	if err != nil {
		return fmt.Errorf("sink: append csv row: %w", err)
	}
	return c.f.Sync()
}

// Close closes the underlying file.
func (c *CSV) Close() error { return c.f.Close() }
