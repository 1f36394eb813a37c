package cpu

import "strings"

// Lines starting with this marker are ignored
const CommentMarker = "#"

// Decodes a single program line.
//
// Blank and comment lines decode to Nop. Otherwise the first whitespace separated
// token selects the opcode and the following tokens are resolved as register
// operands, left to right. Tokens past the opcode arity are ignored.
func Decode(line string) (Instruction, error) {
	line = strings.TrimSpace(line)

	if len(line) <= 0 || strings.HasPrefix(line, CommentMarker) {
		return Nop{}, nil
	}

	fields := strings.Fields(line)
	mnemonic, args := fields[0], fields[1:]

	descriptor, known := opcodesByMnemonic[mnemonic]
	if !known {
		return nil, makeError(ErrUnknownInstruction, "%s", mnemonic)
	}

	if len(args) < descriptor.Operands {
		return nil, makeError(ErrMalformedInstruction, "%s expects %d operands, got %d", mnemonic, descriptor.Operands, len(args))
	}

	operands := make([]int, descriptor.Operands)

	for i := range operands {
		r, err := ParseRegister(args[i])
		if err != nil {
			return nil, err
		}

		operands[i] = r
	}

	return descriptor.build(operands), nil
}
