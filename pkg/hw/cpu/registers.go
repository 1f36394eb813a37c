package cpu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Manu343726/cpx/pkg/utils"
)

// Word is the register width. Arithmetic on words wraps modulo 2^32.
type Word = uint32

const (
	// Total number of registers in the bank
	RegisterCount = 16
	// Register tokens are spelled as this prefix followed by the register index
	RegisterPrefix = "x"
	// Width of a register in bits
	WordBits = 32
)

// Returns the name of the register with the given index (x0, x1, ...)
func RegisterName(index int) string {
	return fmt.Sprintf("%s%d", RegisterPrefix, index)
}

// Resolves a register token (x0 to x15) into its index
func ParseRegister(token string) (int, error) {
	digits, ok := strings.CutPrefix(token, RegisterPrefix)
	if !ok {
		return 0, makeError(ErrInvalidRegisterToken, "%s", token)
	}

	index, err := strconv.Atoi(digits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, makeError(ErrRegisterOutOfRange, "%s", token)
		}

		return 0, makeError(ErrInvalidRegisterToken, "%s", token)
	}

	if err := checkRegisterIndex(index); err != nil {
		return 0, makeError(ErrRegisterOutOfRange, "%s", token)
	}

	return index, nil
}

func checkRegisterIndex(index int) error {
	if index < 0 || index >= RegisterCount {
		return makeError(ErrRegisterOutOfRange, "%s", RegisterName(index))
	}

	return nil
}

// RegisterFile is the fixed bank of RegisterCount word registers
type RegisterFile struct {
	rs [RegisterCount]Word
}

// Creates a register file. The first registers are initialized from the given values,
// the rest are zero. Values beyond RegisterCount are ignored.
func MakeRegisterFile(values ...Word) *RegisterFile {
	rf := &RegisterFile{}
	copy(rf.rs[:], values)
	return rf
}

// Returns the value of a register
func (rf *RegisterFile) Get(index int) (Word, error) {
	if err := checkRegisterIndex(index); err != nil {
		return 0, err
	}

	return rf.rs[index], nil
}

// Stores a value into a register. Values wider than a word are truncated.
func (rf *RegisterFile) Set(index int, value uint64) error {
	if err := checkRegisterIndex(index); err != nil {
		return err
	}

	rf.rs[index] = Word(utils.Truncate(value, WordBits))
	return nil
}

// Returns a copy of all register values, indexed by register
func (rf *RegisterFile) Values() [RegisterCount]Word {
	return rf.rs
}

// Sets all registers to zero
func (rf *RegisterFile) Reset() {
	rf.rs = [RegisterCount]Word{}
}

func (rf *RegisterFile) String() string {
	return strings.Join(utils.Map(utils.Indices(RegisterCount), func(i int) string {
		return fmt.Sprintf("%s=%d", RegisterName(i), rf.rs[i])
	}), " ")
}

// RegisterStore persists a register file between runs
type RegisterStore interface {
	// Loads every register from the store. Registers with no stored value are set to zero.
	Load(rf *RegisterFile) error
	// Writes every register to the store
	Save(rf *RegisterFile) error
}
