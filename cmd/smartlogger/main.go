// cmd/smartlogger/main.go

// Smart EC logger for the BOQU IOT-485-EC4A conductivity sensor.
//
// Discovers the sensor on a serial port, optionally runs a guided
// calibration sequence, then polls temperature and EC once per second,
// replacing the firmware's fixed-coefficient temperature compensation
// with a dynamic one. Readings go to a CSV log and a live console
// dashboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/acquisition"
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/calibration"
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/clock"
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/config"
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/display"
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/sensor"
	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/sink"
)

var (
	cfgFile         string
	calMode         int
	csvPath         string
	noDashboard     bool
	skipDiagnostics bool
	verbose         bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "smartlogger",
		Short: "Smart EC logger for the BOQU IOT-485-EC4A sensor",
		Long: `smartlogger reads electrical conductivity and temperature from a
BOQU IOT-485-EC4A sensor over Modbus RTU (9600 8N1, slave id 4),
corrects the firmware's fixed-coefficient temperature compensation
with a temperature-bucketed one, and logs every reading to CSV with
the raw register words kept for audit.

Calibration modes:
  0    skip calibration (use existing sensor settings)
  1    write register 13 = 2
  2    write register 28 = 12880 (float) + register 13 = 3
  3    TEST: write K=190 to register 16 (K x 10000 format)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run()
		},
	}

	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml)")
	rootCmd.Flags().IntVarP(&calMode, "mode", "m", -1, "calibration mode 0-3 (omit for interactive selection)")
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "csv log path (default ec_data_log.csv)")
	rootCmd.Flags().BoolVar(&noDashboard, "no-dashboard", false, "disable the console dashboard")
	rootCmd.Flags().BoolVar(&skipDiagnostics, "skip-diagnostics", false, "skip the diagnostic register monitor")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log raw modbus frames")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if csvPath != "" {
		cfg.Log.CSVPath = csvPath
	}

	logger := log.New(os.Stderr, "smartlogger: ", log.LstdFlags)

	var wireLog *log.Logger
	if verbose {
		wireLog = log.New(os.Stderr, "modbus: ", log.LstdFlags)
	}

	// --------------------
	// Discover the sensor
	// --------------------

	candidates := cfg.Scan.Ports
	if len(candidates) == 0 {
		candidates = sensor.CandidatePorts()
	}

	logger.Printf("scanning ports for IOT-485-EC4A (slave id %d)...", cfg.Serial.SlaveID)

	device, err := sensor.Discover(
		candidates,
		sensor.LinkProber(cfg.Serial.SlaveID, cfg.Scan.Timeout()),
		logger,
	)
	if err != nil {
		return fmt.Errorf("sensor not found (check USB connection, slave id %d, baud rate %d): %w",
			cfg.Serial.SlaveID, cfg.Serial.BaudRate, err)
	}

	// --------------------
	// Bind the main link
	// --------------------

	endpoint := sensor.Endpoint{
		Device:   device,
		BaudRate: cfg.Serial.BaudRate,
		DataBits: cfg.Serial.DataBits,
		Parity:   cfg.Serial.Parity,
		StopBits: cfg.Serial.StopBits,
	}

	link, err := sensor.Bind(endpoint, cfg.Serial.SlaveID, cfg.Serial.Timeout(), wireLog)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer link.Close()

	logger.Printf("connected to sensor on %s", device)
	logger.Printf("data will be logged to %s", cfg.Log.CSVPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	term := display.Console{}
	clk := clock.Real{}

	// --------------------
	// Diagnostic monitor
	// --------------------

	if !skipDiagnostics {
		mon := display.NewMonitor(link, os.Stdout, term, os.Stdin, clk)
		if err := mon.Run(ctx); err != nil {
			return err
		}
	}

	// --------------------
	// Calibration (one-shot, optional)
	// --------------------

	mode := selectMode(calMode, os.Stdin, os.Stdout)

	engine := calibration.NewEngine(link, float32(cfg.Calibration.CoefficientValue), clk, logger)
	if err := engine.Execute(mode); err != nil {
		logger.Printf("calibration failed (%v); continuing with sensor defaults", err)
	}

	// --------------------
	// Sinks + acquisition loop
	// --------------------

	csvSink, err := sink.OpenCSV(cfg.Log.CSVPath)
	if err != nil {
		return err
	}
	defer csvSink.Close()

	var out acquisition.Sink = csvSink
	if !noDashboard {
		out = sink.Fanout{csvSink, display.NewDashboard(os.Stdout, term, device)}
	}

	loop, err := acquisition.New(
		acquisition.Config{Interval: cfg.Poll.Interval()},
		link, out, clk, logger,
	)
	if err != nil {
		return err
	}

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// selectMode resolves the calibration mode from the flag, falling back
// to an interactive prompt. Invalid interactive input defaults to
// skip.
func selectMode(flagMode int, in io.Reader, out io.Writer) calibration.Mode {
	if flagMode >= 0 && flagMode <= 3 {
		fmt.Fprintf(out, "using calibration mode %d from command line\n", flagMode)
		return calibration.Mode(flagMode)
	}
	if flagMode > 3 {
		fmt.Fprintf(out, "invalid mode %d; using interactive selection\n", flagMode)
	}

	fmt.Fprintln(out, "select calibration mode:")
	fmt.Fprintln(out, "  [0] skip calibration (use existing sensor settings)")
	fmt.Fprintln(out, "  [1] mode 1: write register 13 = 2 (integer)")
	fmt.Fprintln(out, "  [2] mode 2: write register 28 = 12880 (float) + register 13 = 3")
	fmt.Fprintln(out, "  [3] mode 3: TEST - write K=190 to register 16 (x10000 format)")
	fmt.Fprint(out, "enter mode (0/1/2/3): ")

	var choice int
	if _, err := fmt.Fscanln(in, &choice); err != nil {
		fmt.Fprintln(out, "invalid choice, defaulting to mode 0 (skip)")
		return calibration.ModeSkip
	}
	if choice < 0 || choice > 3 {
		fmt.Fprintln(out, "invalid choice, defaulting to mode 0 (skip)")
	}
	return calibration.ParseMode(choice)
}
