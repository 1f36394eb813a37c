package cpu

import (
	"errors"
	"fmt"
)

// Messages are capitalized since they are printed verbatim as the cause of
// an execution error.
var (
	ErrRegisterOutOfRange   = errors.New("Register index out of range")
	ErrInvalidRegisterToken = errors.New("Invalid register name")
	ErrMalformedInstruction = errors.New("Missing operand")
	ErrUnknownInstruction   = errors.New("Unknown instruction")
	ErrPersistence          = errors.New("could not persist registers")
)

type Error error

func makeError(err Error, message string, args ...interface{}) Error {
	return fmt.Errorf("%w: "+message, append([]any{err}, args...)...)
}

// ExecutionError reports a program line that could not be decoded or executed
type ExecutionError struct {
	// 1-based line number within the program
	Line int
	// Line text, without surrounding whitespace
	Text string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("ERROR at line %d: '%s' -> %v", e.Line, e.Text, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
