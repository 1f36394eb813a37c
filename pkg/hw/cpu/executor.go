package cpu

import (
	"fmt"
	"log/slog"
)

// ExecutionState is the state of the executor control loop
type ExecutionState int

const (
	// StateRunning indicates there are lines left to execute
	StateRunning ExecutionState = iota
	// StateHalted indicates a halt instruction was executed
	StateHalted
	// StateErrored indicates a line failed to decode or execute
	StateErrored
	// StateCompleted indicates execution ran past the last line
	StateCompleted
)

// String returns the string representation of an ExecutionState
func (s ExecutionState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	case StateErrored:
		return "errored"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Terminal returns true for every state that ends execution
func (s ExecutionState) Terminal() bool {
	return s != StateRunning
}

// ExecutionResult summarizes a program run
type ExecutionResult struct {
	// State the executor stopped in
	State ExecutionState
	// 0-based index of the next line to run, or the line execution stopped at
	Line int
	// Number of instructions executed, halt included and nops excluded
	Executed int
	// Set when State is StateErrored
	Err *ExecutionError
}

// Executor runs programs line by line against a register file.
//
// Execution is fail-fast: the first line that cannot be decoded or executed
// is reported on the console and stops the run. Every terminal state (halt,
// error or end of program) persists the whole register file exactly once.
type Executor struct {
	registers *RegisterFile
	store     RegisterStore
	isa       *InstructionSet
	console   Console
	log       *slog.Logger

	program  Program
	line     int
	state    ExecutionState
	executed int
	err      *ExecutionError
}

// Creates an executor. A nil logger discards log output.
func MakeExecutor(registers *RegisterFile, store RegisterStore, console Console, log *slog.Logger) *Executor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Executor{
		registers: registers,
		store:     store,
		isa:       MakeInstructionSet(registers, console),
		console:   console,
		log:       log,
		state:     StateCompleted,
	}
}

// Resets the executor to run the given program from its first line
func (e *Executor) Load(program Program) {
	e.program = program
	e.line = 0
	e.state = StateRunning
	e.executed = 0
	e.err = nil
}

// Returns the current execution state
func (e *Executor) State() ExecutionState {
	return e.state
}

// Returns the registers the executor operates on
func (e *Executor) Registers() *RegisterFile {
	return e.registers
}

// Returns the result of the current or last run
func (e *Executor) Result() *ExecutionResult {
	return &ExecutionResult{
		State:    e.state,
		Line:     e.line,
		Executed: e.executed,
		Err:      e.err,
	}
}

// Advances the executor by one line. Does nothing once a terminal state is reached.
//
// Line errors are not returned: they are reported on the console and recorded in the
// result. The returned error is only set if the registers could not be persisted.
func (e *Executor) Step() error {
	if e.state.Terminal() {
		return nil
	}

	if e.line >= len(e.program) {
		return e.terminate(StateCompleted)
	}

	text := e.program.Line(e.line)

	instruction, err := Decode(text)
	if err != nil {
		return e.fail(text, err)
	}

	if _, isNop := instruction.(Nop); isNop {
		e.line++
		return nil
	}

	e.log.Debug("executing instruction", "line", e.line+1, "instruction", instruction.String())

	halted, err := e.isa.Execute(instruction)
	if err != nil {
		return e.fail(text, err)
	}

	e.executed++

	if halted {
		return e.terminate(StateHalted)
	}

	e.line++
	return nil
}

// Runs a program until it halts, fails or completes.
func (e *Executor) Run(program Program) (*ExecutionResult, error) {
	e.Load(program)

	for !e.state.Terminal() {
		if err := e.Step(); err != nil {
			return e.Result(), err
		}
	}

	return e.Result(), nil
}

func (e *Executor) fail(text string, err error) error {
	e.err = &ExecutionError{
		Line: e.line + 1,
		Text: text,
		Err:  err,
	}

	e.console.Error(e.err)
	return e.terminate(StateErrored)
}

func (e *Executor) terminate(state ExecutionState) error {
	e.state = state

	e.log.Info("execution stopped",
		"state", state.String(),
		"line", e.line+1,
		"executed", e.executed)

	if err := e.store.Save(e.registers); err != nil {
		e.log.Error("could not persist registers", "error", err)
		return makeError(ErrPersistence, "%w", err)
	}

	return nil
}
