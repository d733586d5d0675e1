// Package synth implements enumerative program synthesis from input/output
// examples.
package synth

import (
	"math/rand"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/siftlang/sift/internal/bodycache"
	"github.com/siftlang/sift/internal/memds"
	"github.com/siftlang/sift/internal/prog"
	"github.com/siftlang/sift/internal/vm"
)

// WILDCARD_NAME is the callee of the wildcard-call token added to the token
// space when wildcard expansion is enabled.
const WILDCARD_NAME = "_"

// Example is one input/output pair a candidate program must satisfy.
// A program satisfies an example iff its full output sequence equals Out
// exactly, not a prefix.
type Example struct {
	In  []int64
	Out []int64
}

type Config struct {
	// MaxTokens is the length cutoff: programs at this length are not
	// expanded further.
	MaxTokens int

	// FrontierWidth bounds the work queue; before every pop the queue is
	// trimmed from the back until it is within bound. Zero or negative
	// means unbounded. This is lossy admission control, not an error
	// condition: trimmed nodes are silently lost.
	FrontierWidth int

	// AllowWildcards adds a wildcard-call token to the expansion
	// vocabulary.
	AllowWildcards bool

	// Seed fixes the master pseudorandom stream; nil means
	// non-reproducible sampling.
	Seed *int64

	// MaxSteps is the per-run step budget of the machine, defaults to
	// vm.DEFAULT_MAX_STEPS.
	MaxSteps int

	// Cache deduplicates wildcard bodies across the machines spawned by
	// the search; defaults to a fresh cache.
	Cache *bodycache.Cache
}

// Searcher explores the space of token programs breadth-first with a
// front-biased, prefix-pruned frontier.
type Searcher struct {
	config Config
	vocab  []prog.Token
	logger zerolog.Logger
}

func NewSearcher(logger zerolog.Logger, config Config) *Searcher {
	if config.MaxSteps <= 0 {
		config.MaxSteps = vm.DEFAULT_MAX_STEPS
	}
	if config.Cache == nil {
		config.Cache = bodycache.New()
	}

	vocab := prog.Primitives()
	if config.AllowWildcards {
		vocab = append(vocab, prog.Call(WILDCARD_NAME))
	}

	return &Searcher{
		config: config,
		vocab:  vocab,
		logger: logger,
	}
}

// node is a partial program paired with its own pseudorandom stream; the
// stream makes any wildcard sampling triggered while testing the node
// reproducible per node yet varied across siblings.
type node struct {
	program prog.Program
	rand    *rand.Rand
}

// Search returns every program that exactly satisfies all examples within
// the configured budget, in discovery order. It does not stop at the first
// solution. Machine failures during testing silently prune the candidate.
func (s *Searcher) Search(examples []Example) []prog.Program {
	master := s.masterRand()

	frontier := memds.NewArrayDeque[node]()
	frontier.PushFront(node{program: nil, rand: derive(master)})

	var solutions []prog.Program
	visited := 0

	for !frontier.Empty() {
		if s.config.FrontierWidth > 0 {
			for frontier.Size() > s.config.FrontierWidth {
				frontier.PopBack()
			}
		}

		current, _ := frontier.PopFront()
		visited++

		if s.accepted(current.program, examples, current.rand) {
			solutions = append(solutions, slices.Clone(current.program))
			s.logger.Debug().
				Str("program", current.program.String()).
				Msg("solution found")
			continue
		}

		if len(current.program) >= s.config.MaxTokens {
			continue
		}

		for _, token := range s.vocab {
			candidate := append(slices.Clone(current.program), token)
			if s.prefixOK(candidate, examples, current.rand) {
				frontier.PushFront(node{program: candidate, rand: derive(current.rand)})
			}
		}
	}

	s.logger.Debug().
		Int("visited", visited).
		Int("solutions", len(solutions)).
		Msg("search finished")

	return solutions
}

// accepted reports whether program reproduces every example exactly.
func (s *Searcher) accepted(program prog.Program, examples []Example, nodeRand *rand.Rand) bool {
	for _, example := range examples {
		output, err := s.run(program, example.In, derive(nodeRand))
		if err != nil || !outputEquals(output, example.Out) {
			return false
		}
	}
	return true
}

// prefixOK reports whether candidate is still consistent with every
// example: no machine failure, and every emitted position matches the
// expected output positionally. Positions the candidate has not reached
// yet are not checked.
func (s *Searcher) prefixOK(candidate prog.Program, examples []Example, nodeRand *rand.Rand) bool {
	for _, example := range examples {
		output, err := s.run(candidate, example.In, derive(nodeRand))
		if err != nil {
			return false
		}
		limit := min(len(output), len(example.Out))
		for i := 0; i < limit; i++ {
			if !output[i].IsInt() || output[i].Int() != example.Out[i] {
				return false
			}
		}
	}
	return true
}

func (s *Searcher) run(program prog.Program, inputs []int64, rng *rand.Rand) ([]vm.Value, error) {
	machine := vm.NewMachine(vm.Config{
		Rand:  rng,
		Cache: s.config.Cache,
	})
	return machine.Run(program, inputs, s.config.MaxSteps)
}

func (s *Searcher) masterRand() *rand.Rand {
	if s.config.Seed != nil {
		return rand.New(rand.NewSource(*s.config.Seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// derive creates an independently seeded stream from parent; every child
// node and every per-example machine run gets its own stream so traversal
// is reproducible given the master seed.
func derive(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewSource(parent.Int63()))
}

func outputEquals(output []vm.Value, expected []int64) bool {
	if len(output) != len(expected) {
		return false
	}
	for i, v := range output {
		if !v.IsInt() || v.Int() != expected[i] {
			return false
		}
	}
	return true
}
