package exparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siftlang/sift/internal/synth"
)

func TestParse(t *testing.T) {

	t.Run("single example", func(t *testing.T) {
		examples, err := Parse("[2]->[5]")
		require.NoError(t, err)
		assert.Equal(t, []synth.Example{{In: []int64{2}, Out: []int64{5}}}, examples)
	})

	t.Run("extra brackets are tolerated", func(t *testing.T) {
		examples, err := Parse("[[2]->[5]]")
		require.NoError(t, err)
		assert.Equal(t, []synth.Example{{In: []int64{2}, Out: []int64{5}}}, examples)
	})

	t.Run("several examples in one string", func(t *testing.T) {
		examples, err := Parse("[[2]->[5]] [[3]->[10]]")
		require.NoError(t, err)
		assert.Equal(t, []synth.Example{
			{In: []int64{2}, Out: []int64{5}},
			{In: []int64{3}, Out: []int64{10}},
		}, examples)
	})

	t.Run("comma-separated vectors", func(t *testing.T) {
		examples, err := Parse("[1, 2,-3]->[0,4]")
		require.NoError(t, err)
		assert.Equal(t, []synth.Example{
			{In: []int64{1, 2, -3}, Out: []int64{0, 4}},
		}, examples)
	})

	t.Run("empty vectors", func(t *testing.T) {
		examples, err := Parse("[]->[3]")
		require.NoError(t, err)
		assert.Equal(t, []synth.Example{{In: nil, Out: []int64{3}}}, examples)
	})

	t.Run("no examples at all", func(t *testing.T) {
		for _, s := range []string{"", "nonsense", "[1] [2]"} {
			_, err := Parse(s)
			assert.ErrorIs(t, err, ErrNoExamples, "input %q", s)
		}
	})

	t.Run("non-integer vector entry", func(t *testing.T) {
		_, err := Parse("[a]->[1]")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoExamples)
	})
}
