// internal/sensor/link.go
package sensor

import (
	"fmt"
	"log"
	"time"

	"github.com/goburrow/modbus"

	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/ec"
)

// Endpoint is the serial geometry of one device path. Immutable once a
// link is bound; changing device identity requires rebinding.
type Endpoint struct {
	Device   string
	BaudRate int
	DataBits int
	Parity   string
	StopBits int
}

// DefaultEndpoint returns the IOT-485-EC4A factory geometry
// (9600 8N1) for device.
func DefaultEndpoint(device string) Endpoint {
	return Endpoint{
		Device:   device,
		BaudRate: DefaultBaudRate,
		DataBits: DefaultDataBits,
		Parity:   DefaultParity,
		StopBits: DefaultStopBits,
	}
}

// registerClient is the subset of the goburrow client the link uses.
// The link depends on geometry only.
type registerClient interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	WriteSingleRegister(address, value uint16) ([]byte, error)
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

// Link owns the single serial connection to the sensor. Every register
// access goes through it and blocks until the transport answers or the
// configured timeout elapses. The link performs no retries of its own;
// retry policy belongs to callers.
type Link struct {
	endpoint Endpoint
	handler  *modbus.RTUClientHandler
	client   registerClient
}

// Bind opens the serial transport and returns a connected Link.
func Bind(endpoint Endpoint, slaveID byte, timeout time.Duration, wireLog *log.Logger) (*Link, error) {
	h := modbus.NewRTUClientHandler(endpoint.Device)
	h.BaudRate = endpoint.BaudRate
	h.DataBits = endpoint.DataBits
	h.Parity = endpoint.Parity
	h.StopBits = endpoint.StopBits
	h.SlaveId = slaveID
	h.Timeout = timeout
	h.Logger = wireLog

	if err := h.Connect(); err != nil {
		return nil, &ConnectError{Port: endpoint.Device, Err: err}
	}

	return &Link{
		endpoint: endpoint,
		handler:  h,
		client:   modbus.NewClient(h),
	}, nil
}

// Device reports the bound device path.
func (l *Link) Device() string { return l.endpoint.Device }

// Close releases the serial port.
func (l *Link) Close() error {
	if l == nil || l.handler == nil {
		return nil
	}
	return l.handler.Close()
}

// ReadRegisters reads count holding registers starting at addr.
// All-or-nothing: a short or odd-length response is a ReadError, never
// a partial result.
func (l *Link) ReadRegisters(addr, count uint16) ([]uint16, error) {
	payload, err := l.client.ReadHoldingRegisters(addr, count)
	if err != nil {
		return nil, &ReadError{Addr: addr, Err: err}
	}
	if len(payload) != int(count)*2 {
		return nil, &ReadError{
			Addr: addr,
			Err:  fmt.Errorf("short payload: %d bytes for %d registers", len(payload), count),
		}
	}

	regs := make([]uint16, count)
	for i := range regs {
		regs[i] = uint16(payload[2*i])<<8 | uint16(payload[2*i+1])
	}
	return regs, nil
}

// WriteRegister writes one holding register as a single wire
// transaction.
func (l *Link) WriteRegister(addr, value uint16) error {
	if _, err := l.client.WriteSingleRegister(addr, value); err != nil {
		return &WriteError{Addr: addr, Err: err}
	}
	return nil
}

// WriteRegisters writes consecutive holding registers as a single wire
// transaction.
func (l *Link) WriteRegisters(addr uint16, values []uint16) error {
	payload := packRegisters(values)
	if _, err := l.client.WriteMultipleRegisters(addr, uint16(len(values)), payload); err != nil {
		return &WriteError{Addr: addr, Err: err}
	}
	return nil
}

// ReadFloat reads the ABCD float pair at addr. The hex string carries
// the raw words, captured before conversion, for audit.
func (l *Link) ReadFloat(addr uint16) (float32, string, error) {
	regs, err := l.ReadRegisters(addr, FloatWidth)
	if err != nil {
		return 0, "", err
	}
	return ec.FromRegisters(regs[0], regs[1]), ec.HexString(regs[0], regs[1]), nil
}

// WriteFloat writes v to the ABCD float pair starting at addr. The
// pair is written as one transaction; partial float writes are never
// issued.
func (l *Link) WriteFloat(addr uint16, v float32) error {
	high, low := ec.ToRegisters(v)
	return l.WriteRegisters(addr, []uint16{high, low})
}

// Modbus register memory order (big-endian).
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
