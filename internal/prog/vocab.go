package prog

import (
	"slices"
)

const (
	// MAX_ARGS is the number of exposed argument references (ARG0..ARG<n-1>).
	MAX_ARGS = 2

	// integer literal range of the primitive vocabulary
	MIN_LITERAL = -2
	MAX_LITERAL = 5
)

var primitives = buildPrimitives()

// Primitives returns the fixed primitive vocabulary: the bare operations,
// small integer literal pushes and the argument references. CALL is not a
// primitive; it only enters a token space explicitly (wildcard expansion)
// or through program text.
func Primitives() []Token {
	return slices.Clone(primitives)
}

func buildPrimitives() []Token {
	tokens := []Token{
		{Op: DUP},
		{Op: ADD},
		{Op: SUB},
		{Op: MUL},
		{Op: PRINT},
		{Op: SELECT},
		{Op: EQ},
	}
	for n := int64(MIN_LITERAL); n <= MAX_LITERAL; n++ {
		tokens = append(tokens, Push(n))
	}
	for i := int64(0); i < MAX_ARGS; i++ {
		tokens = append(tokens, Arg(i))
	}
	return tokens
}
