// internal/display/terminal.go

// Package display renders the operator-facing views: the live
// validation dashboard and the diagnostic register monitor. Core
// protocol packages never depend on it.
package display

import "fmt"

// TerminalController is the console capability the views need.
// Implementations may be no-ops for non-interactive runs.
type TerminalController interface {
	// Clear wipes the screen before a redraw.
	Clear()

	// EnterRaw switches the terminal to unbuffered, non-blocking input
	// for keypress detection and returns a restore function.
	EnterRaw() (restore func(), err error)
}

// Nop is a TerminalController that does nothing.
type Nop struct{}

func (Nop) Clear()                    {}
func (Nop) EnterRaw() (func(), error) { return func() {}, nil }

// Console drives the real terminal with ANSI clears; raw mode is
// platform-specific.
type Console struct{}

func (Console) Clear() {
	fmt.Print("\033[2J\033[H")
}
