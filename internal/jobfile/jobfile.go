// Package jobfile loads YAML synthesis-job descriptions for the CLI.
package jobfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

var ErrNoJobExamples = errors.New("job lists no examples")

// Job is a synthesis job description. Unset fields fall back to the CLI
// flags and defaults.
type Job struct {
	// Examples holds [in]->[out] strings, one example each.
	Examples []string `yaml:"examples"`

	MaxTokens      int    `yaml:"max-tokens"`
	FrontierWidth  int    `yaml:"frontier-width"`
	AllowWildcards *bool  `yaml:"wildcards"`
	Seed           *int64 `yaml:"seed"`
	StepBudget     int    `yaml:"step-budget"`
}

func Load(path string) (*Job, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var job Job
	if err := yaml.Unmarshal(content, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job file %s: %w", path, err)
	}

	if len(job.Examples) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoJobExamples, path)
	}
	return &job, nil
}
