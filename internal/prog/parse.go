package prog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidInstruction = errors.New("invalid instruction")

// Parse decodes the whitespace-separated text form of a program.
// Instructions are either a bare mnemonic (DUP, ADD, ...), a mnemonic
// followed by one integer literal (PUSH 3), a mnemonic followed by one
// name (CALL square), or an argument reference with the index embedded
// in the mnemonic (ARG0).
func Parse(text string) (Program, error) {
	fields := strings.Fields(text)

	var program Program
	for i := 0; i < len(fields); i++ {
		field := fields[i]

		switch {
		case field == string(PUSH):
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("%w: PUSH expects one integer operand", ErrInvalidInstruction)
			}
			i++
			n, err := strconv.ParseInt(fields[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: PUSH operand %q is not an integer", ErrInvalidInstruction, fields[i])
			}
			program = append(program, Push(n))
		case field == string(CALL):
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("%w: CALL expects a function name", ErrInvalidInstruction)
			}
			i++
			program = append(program, Call(fields[i]))
		case strings.HasPrefix(field, string(ARG)):
			index, err := strconv.ParseInt(field[len(ARG):], 10, 64)
			if err != nil || index < 0 {
				return nil, fmt.Errorf("%w: %q is not an argument reference", ErrInvalidInstruction, field)
			}
			program = append(program, Arg(index))
		case isBareOpcode(Opcode(field)):
			program = append(program, Token{Op: Opcode(field)})
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidInstruction, field)
		}
	}
	return program, nil
}

// MustParse is Parse for programs known to be well-formed, it panics on error.
func MustParse(text string) Program {
	program, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return program
}

func isBareOpcode(op Opcode) bool {
	switch op {
	case DUP, ADD, SUB, MUL, PRINT, SELECT, EQ:
		return true
	}
	return false
}
