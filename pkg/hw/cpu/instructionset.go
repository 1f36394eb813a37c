package cpu

import (
	"errors"

	"github.com/Manu343726/cpx/pkg/utils"
)

// Shift amounts only use the low bits of the shift register needed to count up to WordBits-1
var ShiftAmountBits = utils.Log2(uint(WordBits))

// Returns the effective shift amount encoded in a register value (0 to 31)
func ShiftAmount(value Word) Word {
	return utils.Truncate(value, ShiftAmountBits)
}

type arithmeticUnit struct {
	rs *RegisterFile
}

func (u *arithmeticUnit) BinaryOp(lhs int, rhs int, dest int, opBody func(Word, Word) Word) error {
	lhsValue, lhsErr := u.rs.Get(lhs)
	rhsValue, rhsErr := u.rs.Get(rhs)

	if lhsErr != nil || rhsErr != nil {
		return errors.Join(lhsErr, rhsErr)
	}

	return u.rs.Set(dest, uint64(opBody(lhsValue, rhsValue)))
}

// InstructionSet implements the semantics of every opcode over a register file
type InstructionSet struct {
	au      arithmeticUnit
	console Console
}

// Creates an instruction set operating on the given registers. shw output goes to console.
func MakeInstructionSet(rs *RegisterFile, console Console) *InstructionSet {
	return &InstructionSet{
		au:      arithmeticUnit{rs: rs},
		console: console,
	}
}

// dst <- (dst + src) mod 2^32
func (s *InstructionSet) Add(dst int, src int) error {
	return s.au.BinaryOp(dst, src, dst, func(lhs Word, rhs Word) Word {
		return lhs + rhs
	})
}

// dst <- (dst - src) mod 2^32
func (s *InstructionSet) Sub(dst int, src int) error {
	return s.au.BinaryOp(dst, src, dst, func(lhs Word, rhs Word) Word {
		return lhs - rhs
	})
}

// dst <- (src << (shift & 31)) mod 2^32
func (s *InstructionSet) ShiftLeftLogical(src int, dst int, shift int) error {
	return s.au.BinaryOp(src, shift, dst, func(value Word, amount Word) Word {
		return value << ShiftAmount(amount)
	})
}

// dst <- src >> (shift & 31), vacated bits are zero
func (s *InstructionSet) ShiftRightLogical(src int, dst int, shift int) error {
	return s.au.BinaryOp(src, shift, dst, func(value Word, amount Word) Word {
		return value >> ShiftAmount(amount)
	})
}

// Prints the unsigned decimal value of a register
func (s *InstructionSet) Show(src int) error {
	value, err := s.au.rs.Get(src)
	if err != nil {
		return err
	}

	s.console.Show(src, value)
	return nil
}

// Executes a decoded instruction. Returns true if the instruction halts the machine.
func (s *InstructionSet) Execute(instruction Instruction) (halted bool, err error) {
	switch i := instruction.(type) {
	case Nop:
		return false, nil
	case Add:
		return false, s.Add(i.Dst, i.Src)
	case Sub:
		return false, s.Sub(i.Dst, i.Src)
	case ShiftLeftLogical:
		return false, s.ShiftLeftLogical(i.Src, i.Dst, i.Shift)
	case ShiftRightLogical:
		return false, s.ShiftRightLogical(i.Src, i.Dst, i.Shift)
	case Show:
		return false, s.Show(i.Src)
	case Halt:
		return true, nil
	default:
		return false, makeError(ErrUnknownInstruction, "%v", instruction)
	}
}
