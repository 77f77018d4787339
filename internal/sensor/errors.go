// internal/sensor/errors.go
package sensor

import (
	"errors"
	"fmt"
)

// ErrPortNotFound is returned by Discover when every candidate port
// has been probed without an answer.
var ErrPortNotFound = errors.New("sensor: no responsive port found")

// ConnectError wraps a failure to open the serial transport.
type ConnectError struct {
	Port string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("sensor: connect %s: %v", e.Port, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// ReadError is a wire-level read failure at a register address.
type ReadError struct {
	Addr uint16
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("sensor: read register %d: %v", e.Addr, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError is a wire-level write failure at a register address.
type WriteError struct {
	Addr uint16
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("sensor: write register %d: %v", e.Addr, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
