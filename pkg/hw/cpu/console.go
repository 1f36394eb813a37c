package cpu

import (
	"fmt"
	"io"
)

// Console receives the visible output of a program run
type Console interface {
	// Called by shw with the register index and its value
	Show(register int, value Word)
	// Called once when a line fails to decode or execute
	Error(err *ExecutionError)
}

type textConsole struct {
	w io.Writer
}

// Returns a console writing plain text lines: shown values in decimal, errors
// as their formatted message.
func MakeTextConsole(w io.Writer) Console {
	return &textConsole{w: w}
}

func (c *textConsole) Show(register int, value Word) {
	fmt.Fprintln(c.w, value)
}

func (c *textConsole) Error(err *ExecutionError) {
	fmt.Fprintln(c.w, err.Error())
}
