// Package exparse parses the textual [in]->[out] example syntax consumed
// by the CLI.
package exparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/siftlang/sift/internal/synth"
)

// matches [2]->[5] or [[2]->[5]] (extra brackets optional)
var exampleRegex = regexp.MustCompile(`\[+\s*(.*?)\s*\]+\s*->\s*\[+\s*(.*?)\s*\]+`)

var ErrNoExamples = errors.New("no examples parsed, expected format [in]->[out]")

// Parse extracts every [in]->[out] pair from s. Vectors are comma-separated
// integers, an empty vector is written [].
func Parse(s string) ([]synth.Example, error) {
	var examples []synth.Example

	for _, match := range exampleRegex.FindAllStringSubmatch(s, -1) {
		in, err := parseVector(match[1])
		if err != nil {
			return nil, fmt.Errorf("example %q: %w", match[0], err)
		}
		out, err := parseVector(match[2])
		if err != nil {
			return nil, fmt.Errorf("example %q: %w", match[0], err)
		}
		examples = append(examples, synth.Example{In: in, Out: out})
	}

	if len(examples) == 0 {
		return nil, ErrNoExamples
	}
	return examples, nil
}

func parseVector(s string) ([]int64, error) {
	var values []int64

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", part)
		}
		values = append(values, n)
	}
	return values, nil
}
