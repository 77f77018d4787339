// internal/sensor/scanner.go
package sensor

import (
	"fmt"
	"log"
	"time"
)

// DefaultScanTimeout is the per-candidate probe timeout.
const DefaultScanTimeout = 100 * time.Millisecond

// CandidatePorts returns the fixed probe order: legacy /dev/ttyS0..20
// first (WSL1 serial passthrough appears there), then USB-serial
// adapters, then ACM adapters.
func CandidatePorts() []string {
	ports := make([]string, 0, 31)
	for i := 0; i <= 20; i++ {
		ports = append(ports, fmt.Sprintf("/dev/ttyS%d", i))
	}
	for i := 0; i < 5; i++ {
		ports = append(ports, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for i := 0; i < 5; i++ {
		ports = append(ports, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	return ports
}

// Prober attempts one handshake against a device path and reports
// whether the sensor answered there.
type Prober func(device string) bool

// LinkProber probes by binding the port with a short timeout and
// reading the temperature pair once. Any bind or read failure closes
// the port and reports no sensor.
func LinkProber(slaveID byte, timeout time.Duration) Prober {
	return func(device string) bool {
		link, err := Bind(DefaultEndpoint(device), slaveID, timeout, nil)
		if err != nil {
			return false
		}
		defer link.Close()

		_, _, err = link.ReadFloat(RegTemperature)
		return err == nil
	}
}

// Discover probes candidates strictly in order and returns the first
// responsive device path. Probing stops at the first hit; candidates
// after it are never touched. All candidates failing is
// ErrPortNotFound.
func Discover(candidates []string, probe Prober, logger *log.Logger) (string, error) {
	for _, device := range candidates {
		if probe(device) {
			if logger != nil {
				logger.Printf("found sensor at %s", device)
			}
			return device, nil
		}
	}
	return "", ErrPortNotFound
}
