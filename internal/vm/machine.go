// Package vm implements the bounded stack machine that executes token
// programs.
package vm

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/siftlang/sift/internal/bodycache"
	"github.com/siftlang/sift/internal/prog"
)

const (
	// STACK_CAP bounds the data stack. The cap is soft: pushing onto a full
	// stack overwrites the current top with the sentinel instead of failing.
	STACK_CAP = 6

	// CALL_CAP bounds the call stack, root frame included. The cap is hard:
	// a call attempted at capacity fails with ErrCallDepth.
	CALL_CAP = 6

	// BODY_MAX_TOKENS is the upper bound for any sampled wildcard body.
	BODY_MAX_TOKENS = 12

	DEFAULT_MAX_STEPS = 1000
)

// Machine failures. None of them are recoverable mid-run: the caller is
// expected to discard the instance on any error.
var (
	ErrStepLimit      = errors.New("step limit exceeded")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrCallDepth      = errors.New("call depth cap exceeded")
	ErrBadOpcode      = errors.New("bad opcode")
)

type frame struct {
	body prog.Program
	ip   int
}

// Machine is a stack machine with soft caps and lazy library growth.
// A Machine owns its data stack, call stack, output sequence and library;
// only the body cache may be shared with other instances.
type Machine struct {
	library map[string]prog.Program
	rand    *rand.Rand
	cache   *bodycache.Cache

	stack  []Value
	output []Value
	frames []frame
	inputs []int64
}

type Config struct {
	// Library pre-binds function names, it is copied in, never aliased.
	Library map[string]prog.Program

	// Rand drives wildcard body sampling. Defaults to a time-seeded source.
	Rand *rand.Rand

	// Cache, if set, deduplicates sampled bodies across machine instances.
	Cache *bodycache.Cache
}

func NewMachine(config Config) *Machine {
	rng := config.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Machine{
		library: cloneLibrary(config.Library),
		rand:    rng,
		cache:   config.Cache,
	}
}

// cloneLibrary deep-copies a library: bindings are copy-in/copy-out, never
// shared by reference with the caller.
func cloneLibrary(library map[string]prog.Program) map[string]prog.Program {
	clone := make(map[string]prog.Program, len(library))
	for name, body := range library {
		clone[name] = slices.Clone(body)
	}
	return clone
}

// Library returns a copy of the machine's current name -> body bindings,
// including any entries created by wildcard calls.
func (m *Machine) Library() map[string]prog.Program {
	return cloneLibrary(m.library)
}

// Run executes program against inputs and returns the emitted output
// sequence. Execution halts normally when the call stack becomes empty and
// fails with ErrStepLimit once maxSteps instructions have been executed.
// Argument references read inputs; missing indices read as zero.
func (m *Machine) Run(program prog.Program, inputs []int64, maxSteps int) ([]Value, error) {
	m.stack = m.stack[:0]
	m.output = m.output[:0]
	m.frames = append(m.frames[:0], frame{body: program})
	m.inputs = slices.Clone(inputs)

	steps := 0
	for len(m.frames) > 0 {
		if steps >= maxSteps {
			return nil, fmt.Errorf("%w (%d instructions)", ErrStepLimit, steps)
		}

		top := &m.frames[len(m.frames)-1]
		if top.ip >= len(top.body) {
			//function return; popping the last frame halts execution
			m.frames = m.frames[:len(m.frames)-1]
			continue
		}

		token := top.body[top.ip]
		top.ip++
		if err := m.exec(token); err != nil {
			return nil, err
		}
		steps++
	}

	return slices.Clone(m.output), nil
}

func (m *Machine) exec(token prog.Token) error {
	switch token.Op {
	case prog.PUSH:
		m.push(Int(token.Num))
	case prog.DUP:
		if err := m.need(1, token.Op); err != nil {
			return err
		}
		m.push(m.stack[len(m.stack)-1])
	case prog.ADD:
		return m.binary(token.Op, func(a, b int64) int64 { return a + b })
	case prog.SUB:
		return m.binary(token.Op, func(a, b int64) int64 { return a - b })
	case prog.MUL:
		return m.binary(token.Op, func(a, b int64) int64 { return a * b })
	case prog.PRINT:
		if err := m.need(1, token.Op); err != nil {
			return err
		}
		m.output = append(m.output, m.stack[len(m.stack)-1])
	case prog.ARG:
		if index := int(token.Num); index >= 0 && index < len(m.inputs) {
			m.push(Int(m.inputs[index]))
		} else {
			m.push(Int(0))
		}
	case prog.CALL:
		return m.call(token.Name)
	case prog.SELECT:
		if err := m.need(3, token.Op); err != nil {
			return err
		}
		b := m.pop()
		a := m.pop()
		cond := m.pop()
		if cond.IsInt() && cond.Int() != 0 {
			m.push(a)
		} else {
			m.push(b)
		}
	case prog.EQ:
		if err := m.need(2, token.Op); err != nil {
			return err
		}
		b := m.pop()
		a := m.pop()
		if a.IsInt() && b.IsInt() && a.Int() == b.Int() {
			m.push(Int(1))
		} else {
			m.push(Int(0))
		}
	default:
		return fmt.Errorf("%w: %q", ErrBadOpcode, string(token.Op))
	}
	return nil
}

// push respects the soft overflow rule: at capacity the current top is
// overwritten with the sentinel and the stack does not grow.
func (m *Machine) push(v Value) {
	if len(m.stack) >= STACK_CAP {
		m.stack[len(m.stack)-1] = Unknown
		return
	}
	m.stack = append(m.stack, v)
}

func (m *Machine) pop() Value {
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v
}

func (m *Machine) need(n int, op prog.Opcode) error {
	if len(m.stack) < n {
		return fmt.Errorf("%w: %s needs %d stack values, have %d", ErrStackUnderflow, op, n, len(m.stack))
	}
	return nil
}

func (m *Machine) binary(op prog.Opcode, apply func(a, b int64) int64) error {
	if err := m.need(2, op); err != nil {
		return err
	}
	b := m.pop()
	a := m.pop()
	if a.IsInt() && b.IsInt() {
		m.push(Int(apply(a.Int(), b.Int())))
	} else {
		//propagate uncertainty
		m.push(Unknown)
	}
	return nil
}

func (m *Machine) call(name string) error {
	if len(m.frames) >= CALL_CAP {
		return fmt.Errorf("%w (%d frames)", ErrCallDepth, len(m.frames))
	}

	body, bound := m.library[name]
	if !bound {
		//unknown name: wildcard call, lazily sample a body and bind it
		//for the remainder of the run
		body = m.sampleBody()
		if m.cache != nil {
			body = m.cache.Intern(body)
		}
		m.library[name] = body
	}

	m.frames = append(m.frames, frame{body: body})
	return nil
}

func (m *Machine) sampleBody() prog.Program {
	vocabulary := prog.Primitives()

	body := make(prog.Program, 1+m.rand.Intn(BODY_MAX_TOKENS))
	for i := range body {
		body[i] = vocabulary[m.rand.Intn(len(vocabulary))]
	}
	return body
}
