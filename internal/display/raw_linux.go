// internal/display/raw_linux.go
package display

import (
	"os"

	"golang.org/x/sys/unix"
)

// EnterRaw puts stdin into unbuffered, non-blocking mode so a single
// keypress can be detected between redraws, and returns a function
// restoring the previous settings.
func (Console) EnterRaw() (func(), error) {
	fd := int(os.Stdin.Fd())

	old, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return func() {}, err
	}

	raw := *old
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return func() {}, err
	}

	return func() {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, old)
	}, nil
}
