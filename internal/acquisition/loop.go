// internal/acquisition/loop.go

// Package acquisition implements the steady-state polling cycle:
// temperature, raw EC and sensor EC are read each period, the dynamic
// compensation is applied, and one Reading is emitted to the sink.
package acquisition

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/clock"
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/ec"
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/sensor"
)

// FloatReader is the subset of the sensor link the loop needs.
type FloatReader interface {
	ReadFloat(addr uint16) (float32, string, error)
}

// Config is the loop's runtime policy.
type Config struct {
	// Interval paces both the cycle and per-register retries.
	Interval time.Duration

	// MaxAttempts bounds retries of a single register read.
	// 0 means retry forever, which is the production behavior.
	MaxAttempts int

	// MaxCycles bounds the number of emitted readings.
	// 0 means run until the context is cancelled.
	MaxCycles int
}

// Loop is a clock-driven reader over one bound sensor link.
type Loop struct {
	cfg    Config
	link   FloatReader
	sink   Sink
	clock  clock.Clock
	logger *log.Logger
}

// New creates a loop with immutable config.
func New(cfg Config, link FloatReader, sink Sink, clk clock.Clock, logger *log.Logger) (*Loop, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("acquisition: interval must be > 0")
	}
	if link == nil {
		return nil, errors.New("acquisition: link required")
	}
	if sink == nil {
		return nil, errors.New("acquisition: sink required")
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loop{cfg: cfg, link: link, sink: sink, clock: clk, logger: logger}, nil
}

// Run polls until ctx is done or MaxCycles readings have been emitted.
// Each register read retries in place: the cycle never advances past a
// failing register. There is deliberately no backoff; a disconnected
// sensor is retried every interval.
func (l *Loop) Run(ctx context.Context) error {
	for cycle := 0; l.cfg.MaxCycles == 0 || cycle < l.cfg.MaxCycles; cycle++ {
		reading, err := l.Once(ctx)
		if err != nil {
			return err
		}

		if err := l.sink.Emit(reading); err != nil {
			l.logger.Printf("warning: sink delivery failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		l.clock.Sleep(l.cfg.Interval)
	}
	return nil
}

// Once performs one full cycle and returns the assembled reading.
// The register order is fixed: temperature, raw EC, sensor EC.
func (l *Loop) Once(ctx context.Context) (Reading, error) {
	temp, hexTemp, err := l.readFloat(ctx, sensor.RegTemperature, "temperature")
	if err != nil {
		return Reading{}, err
	}
	rawEC, hexRawEC, err := l.readFloat(ctx, sensor.RegRawEC, "raw EC")
	if err != nil {
		return Reading{}, err
	}
	sensorEC, _, err := l.readFloat(ctx, sensor.RegSensorEC, "sensor EC")
	if err != nil {
		return Reading{}, err
	}

	t := float64(temp)
	raw := float64(rawEC)
	smart := ec.Compensate(raw, t)

	return Reading{
		At:          l.clock.Now(),
		Temperature: t,
		HexTemp:     hexTemp,
		RawEC:       raw,
		HexRawEC:    hexRawEC,
		SensorEC:    float64(sensorEC),
		SmartEC:     smart,
		Coefficient: ec.Coefficient(t),
		Deviation:   float64(sensorEC) - smart,
	}, nil
}

// readFloat retries one register pair until it succeeds, the attempt
// budget is spent, or ctx is cancelled. Failures warn and wait one
// interval.
func (l *Loop) readFloat(ctx context.Context, addr uint16, name string) (float32, string, error) {
	for attempt := 1; ; attempt++ {
		v, hex, err := l.link.ReadFloat(addr)
		if err == nil {
			return v, hex, nil
		}

		l.logger.Printf("warning: failed to read %s (register %d): %v", name, addr, err)

		if l.cfg.MaxAttempts > 0 && attempt >= l.cfg.MaxAttempts {
			return 0, "", err
		}

		select {
		case <-ctx.Done():
			return 0, "", ctx.Err()
		default:
		}
		l.clock.Sleep(l.cfg.Interval)
	}
}
