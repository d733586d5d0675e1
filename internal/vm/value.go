package vm

import "strconv"

// SENTINEL_TEXT is the text rendering of the unknown value.
const SENTINEL_TEXT = "T"

// Value is a single data-stack slot: either a signed integer or the
// sentinel marking an unknown (overflowed) value. The zero Value is Int(0).
//
// The sentinel is absorbing under arithmetic: once an operand is unknown
// the result is unknown, a sentinel never recovers into a concrete integer.
type Value struct {
	n       int64
	unknown bool
}

// Unknown is the sentinel value.
var Unknown = Value{unknown: true}

func Int(n int64) Value {
	return Value{n: n}
}

// IsInt returns true if v holds a concrete integer.
func (v Value) IsInt() bool {
	return !v.unknown
}

// Int returns the held integer, or 0 for the sentinel.
func (v Value) Int() int64 {
	return v.n
}

func (v Value) String() string {
	if v.unknown {
		return SENTINEL_TEXT
	}
	return strconv.FormatInt(v.n, 10)
}
