// internal/config/config.go

// Package config loads the logger's yaml configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. Defaults match the
// IOT-485-EC4A factory settings; a config file only needs the fields
// it wants to change.
type Config struct {
	Serial      SerialConfig      `yaml:"serial"`
	Scan        ScanConfig        `yaml:"scan"`
	Poll        PollConfig        `yaml:"poll"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Log         LogConfig         `yaml:"log"`
}

// ---- SERIAL ----

// SerialConfig is the fixed link geometry of the sensor bus. These are
// constants for the life of a bound link.
type SerialConfig struct {
	BaudRate  int    `yaml:"baud_rate" validate:"required,gt=0"`
	DataBits  int    `yaml:"data_bits" validate:"required,oneof=5 6 7 8"`
	Parity    string `yaml:"parity" validate:"required,oneof=N E O"`
	StopBits  int    `yaml:"stop_bits" validate:"required,oneof=1 2"`
	SlaveID   uint8  `yaml:"slave_id" validate:"required"`
	TimeoutMs int    `yaml:"timeout_ms" validate:"required,gt=0"`
}

// Timeout is the per-operation response timeout of the main link.
func (c SerialConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// ---- SCAN ----

// ScanConfig controls port discovery.
type ScanConfig struct {
	// Ports overrides the built-in candidate order when non-empty.
	Ports     []string `yaml:"ports"`
	TimeoutMs int      `yaml:"timeout_ms" validate:"required,gt=0"`
}

// Timeout is the short per-candidate probe timeout.
func (c ScanConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms" validate:"required,gt=0"`
}

// Interval paces the acquisition loop and its retries.
func (c PollConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// ---- CALIBRATION ----

type CalibrationConfig struct {
	// CoefficientValue is written to the float pair during mode 2.
	CoefficientValue float64 `yaml:"coefficient_value" validate:"required,gt=0"`
}

// ---- LOG ----

type LogConfig struct {
	CSVPath string `yaml:"csv_path" validate:"required"`
}

// Default returns the IOT-485-EC4A factory settings.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			BaudRate:  9600,
			DataBits:  8,
			Parity:    "N",
			StopBits:  1,
			SlaveID:   4,
			TimeoutMs: 1000,
		},
		Scan: ScanConfig{
			TimeoutMs: 100,
		},
		Poll: PollConfig{
			IntervalMs: 1000,
		},
		Calibration: CalibrationConfig{
			CoefficientValue: 12880,
		},
		Log: LogConfig{
			CSVPath: "ec_data_log.csv",
		},
	}
}

// Load returns the defaults overlaid with the yaml file at path, if
// any. The result is always validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
