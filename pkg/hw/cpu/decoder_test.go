package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		line     string
		expected Instruction
	}{
		{"", Nop{}},
		{"   \t ", Nop{}},
		{"# a comment", Nop{}},
		{"   #indented comment", Nop{}},
		{"add x1 x2", Add{Dst: 1, Src: 2}},
		{"  sub   x15\tx0  ", Sub{Dst: 15, Src: 0}},
		{"sll x1 x2 x3", ShiftLeftLogical{Src: 1, Dst: 2, Shift: 3}},
		{"srl x4 x5 x6", ShiftRightLogical{Src: 4, Dst: 5, Shift: 6}},
		{"shw x7", Show{Src: 7}},
		{"halt", Halt{}},
		{"add x1 x2 x3 trailing", Add{Dst: 1, Src: 2}},
		{"halt # done", Halt{}},
	}

	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			instruction, err := Decode(c.line)
			require.NoError(t, err)
			assert.Equal(t, c.expected, instruction)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		line    string
		err     error
		message string
	}{
		{"foo", ErrUnknownInstruction, "Unknown instruction: foo"},
		{"ADD x1 x2", ErrUnknownInstruction, "Unknown instruction: ADD"},
		{"add x1", ErrMalformedInstruction, "Missing operand: add expects 2 operands, got 1"},
		{"sll x1 x2", ErrMalformedInstruction, "Missing operand: sll expects 3 operands, got 2"},
		{"shw", ErrMalformedInstruction, "Missing operand: shw expects 1 operands, got 0"},
		{"add x1 x20", ErrRegisterOutOfRange, "Register index out of range: x20"},
		{"shw x20", ErrRegisterOutOfRange, "Register index out of range: x20"},
		{"srl x20 x1 x2", ErrRegisterOutOfRange, "Register index out of range: x20"},
		{"sub r1 x2", ErrInvalidRegisterToken, "Invalid register name: r1"},
		{"add x1 y1", ErrInvalidRegisterToken, "Invalid register name: y1"},
	}

	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			instruction, err := Decode(c.line)
			assert.Nil(t, instruction)
			assert.ErrorIs(t, err, c.err)
			assert.EqualError(t, err, c.message)
		})
	}
}

func TestDecode_FirstBadOperandWins(t *testing.T) {
	_, err := Decode("add y1 x20")
	assert.ErrorIs(t, err, ErrInvalidRegisterToken)
}

func TestInstruction_String(t *testing.T) {
	for _, line := range []string{"add x1 x2", "sub x3 x4", "sll x1 x2 x3", "srl x1 x2 x3", "shw x9", "halt"} {
		instruction, err := Decode(line)
		require.NoError(t, err)
		assert.Equal(t, line, instruction.String())
	}
}

func TestOpCodes(t *testing.T) {
	descriptors := OpCodes()
	require.Len(t, descriptors, int(TOTAL_OPCODES))

	for i, d := range descriptors {
		assert.Equal(t, OpCode(i), d.OpCode)
		assert.Equal(t, d.Mnemonic, d.OpCode.String())
	}

	assert.NotContains(t, opcodesByMnemonic, "nop")
	assert.Nil(t, TOTAL_OPCODES.Descriptor())
	assert.Equal(t, "OpCode(7)", TOTAL_OPCODES.String())

	nop, err := Decode("nop")
	assert.Nil(t, nop)
	assert.ErrorIs(t, err, ErrUnknownInstruction)
}
