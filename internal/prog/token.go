package prog

import (
	"strconv"
	"strings"
)

// Opcode is the mnemonic of an instruction.
type Opcode string

const (
	PUSH   Opcode = "PUSH"
	DUP    Opcode = "DUP"
	ADD    Opcode = "ADD"
	SUB    Opcode = "SUB"
	MUL    Opcode = "MUL"
	PRINT  Opcode = "PRINT"
	SELECT Opcode = "SELECT"
	EQ     Opcode = "EQ"
	ARG    Opcode = "ARG"
	CALL   Opcode = "CALL"
)

// Token is a single instruction: an opcode plus at most one operand.
// PUSH carries an integer literal, ARG the index of the referenced argument
// (embedded in the mnemonic, e.g. ARG0) and CALL the name of the callee.
// Tokens are immutable values and are comparable with ==.
type Token struct {
	Op   Opcode
	Num  int64  // operand of PUSH, index of ARG
	Name string // callee of CALL
}

func Push(n int64) Token {
	return Token{Op: PUSH, Num: n}
}

func Arg(index int64) Token {
	return Token{Op: ARG, Num: index}
}

func Call(name string) Token {
	return Token{Op: CALL, Name: name}
}

func (t Token) String() string {
	switch t.Op {
	case PUSH:
		return string(PUSH) + " " + strconv.FormatInt(t.Num, 10)
	case ARG:
		return string(ARG) + strconv.FormatInt(t.Num, 10)
	case CALL:
		return string(CALL) + " " + t.Name
	default:
		return string(t.Op)
	}
}

// Program is an order-significant token sequence.
type Program []Token

// String returns the canonical whitespace-separated text form of the program,
// the only interchange format. Parse is the exact inverse.
func (p Program) String() string {
	var b strings.Builder
	for i, tok := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.String())
	}
	return b.String()
}
