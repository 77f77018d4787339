// internal/display/raw_other.go

//go:build !linux

package display

// EnterRaw is a no-op where termios control is unavailable.
func (Console) EnterRaw() (func(), error) {
	return func() {}, nil
}
