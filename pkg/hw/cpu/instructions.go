package cpu

import (
	"fmt"
	"strings"

	"github.com/Manu343726/cpx/pkg/utils"
)

// Represents an instruction opcode
type OpCode uint

const (
	// No-Operation (blank and comment lines)
	OpCode_NOP OpCode = iota
	// Add source register into destination register
	OpCode_ADD
	// Substract source register from destination register
	OpCode_SUB
	// Shift left logical by the amount held in a third register
	OpCode_SLL
	// Shift right logical by the amount held in a third register
	OpCode_SRL
	// Print register value
	OpCode_SHW
	// Stop execution
	OpCode_HALT

	// Total opcodes implemented
	TOTAL_OPCODES
)

// Describes the textual form of an opcode
type OpCodeDescriptor struct {
	OpCode      OpCode
	Mnemonic    string
	Description string
	// Number of register operands the instruction takes
	Operands int
	// Builds the instruction from its already resolved register operands
	build func(operands []int) Instruction
}

var opcodes = []OpCodeDescriptor{
	{
		OpCode:      OpCode_NOP,
		Mnemonic:    "nop",
		Description: "Blank or comment line, does nothing",
		build:       func([]int) Instruction { return Nop{} },
	},
	{
		OpCode:      OpCode_ADD,
		Mnemonic:    "add",
		Description: "dst <- dst + src",
		Operands:    2,
		build: func(ops []int) Instruction {
			return Add{Dst: ops[0], Src: ops[1]}
		},
	},
	{
		OpCode:      OpCode_SUB,
		Mnemonic:    "sub",
		Description: "dst <- dst - src",
		Operands:    2,
		build: func(ops []int) Instruction {
			return Sub{Dst: ops[0], Src: ops[1]}
		},
	},
	{
		OpCode:      OpCode_SLL,
		Mnemonic:    "sll",
		Description: "dst <- src << (shift & 31)",
		Operands:    3,
		build: func(ops []int) Instruction {
			return ShiftLeftLogical{Src: ops[0], Dst: ops[1], Shift: ops[2]}
		},
	},
	{
		OpCode:      OpCode_SRL,
		Mnemonic:    "srl",
		Description: "dst <- src >> (shift & 31), zero filled",
		Operands:    3,
		build: func(ops []int) Instruction {
			return ShiftRightLogical{Src: ops[0], Dst: ops[1], Shift: ops[2]}
		},
	},
	{
		OpCode:      OpCode_SHW,
		Mnemonic:    "shw",
		Description: "Print the unsigned decimal value of src",
		Operands:    1,
		build: func(ops []int) Instruction {
			return Show{Src: ops[0]}
		},
	},
	{
		OpCode:      OpCode_HALT,
		Mnemonic:    "halt",
		Description: "Persist registers and stop",
		build:       func([]int) Instruction { return Halt{} },
	},
}

// Mnemonics that may appear in a program. nop is implicit and cannot be written.
var opcodesByMnemonic = utils.GenMap(utils.Filter(opcodes, func(d OpCodeDescriptor) bool {
	return d.OpCode != OpCode_NOP
}), func(d OpCodeDescriptor) string {
	return d.Mnemonic
})

// Returns the descriptors of all opcodes, in opcode order
func OpCodes() []OpCodeDescriptor {
	return opcodes
}

// Returns the descriptor of an opcode
func (op OpCode) Descriptor() *OpCodeDescriptor {
	if op >= TOTAL_OPCODES {
		return nil
	}

	return &opcodes[op]
}

// Returns the mnemonic of the instruction opcode
func (op OpCode) String() string {
	if d := op.Descriptor(); d != nil {
		return d.Mnemonic
	}

	return fmt.Sprintf("OpCode(%d)", uint(op))
}

// Instruction is a decoded program line. The set of implementations is closed:
// Nop, Add, Sub, ShiftLeftLogical, ShiftRightLogical, Show and Halt.
type Instruction interface {
	fmt.Stringer
	OpCode() OpCode
	instruction()
}

type Nop struct{}

type Add struct {
	Dst int
	Src int
}

type Sub struct {
	Dst int
	Src int
}

type ShiftLeftLogical struct {
	Src   int
	Dst   int
	Shift int
}

type ShiftRightLogical struct {
	Src   int
	Dst   int
	Shift int
}

type Show struct {
	Src int
}

type Halt struct{}

func (Nop) OpCode() OpCode               { return OpCode_NOP }
func (Add) OpCode() OpCode               { return OpCode_ADD }
func (Sub) OpCode() OpCode               { return OpCode_SUB }
func (ShiftLeftLogical) OpCode() OpCode  { return OpCode_SLL }
func (ShiftRightLogical) OpCode() OpCode { return OpCode_SRL }
func (Show) OpCode() OpCode              { return OpCode_SHW }
func (Halt) OpCode() OpCode              { return OpCode_HALT }

func (Nop) instruction()               {}
func (Add) instruction()               {}
func (Sub) instruction()               {}
func (ShiftLeftLogical) instruction()  {}
func (ShiftRightLogical) instruction() {}
func (Show) instruction()              {}
func (Halt) instruction()              {}

func formatInstruction(op OpCode, operands ...int) string {
	return strings.Join(append([]string{op.String()}, utils.Map(operands, RegisterName)...), " ")
}

func (i Nop) String() string  { return formatInstruction(i.OpCode()) }
func (i Add) String() string  { return formatInstruction(i.OpCode(), i.Dst, i.Src) }
func (i Sub) String() string  { return formatInstruction(i.OpCode(), i.Dst, i.Src) }
func (i Show) String() string { return formatInstruction(i.OpCode(), i.Src) }
func (i Halt) String() string { return formatInstruction(i.OpCode()) }

func (i ShiftLeftLogical) String() string {
	return formatInstruction(i.OpCode(), i.Src, i.Dst, i.Shift)
}

func (i ShiftRightLogical) String() string {
	return formatInstruction(i.OpCode(), i.Src, i.Dst, i.Shift)
}
