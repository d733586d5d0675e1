package memds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayDeque(t *testing.T) {

	t.Run("empty deque", func(t *testing.T) {
		q := NewArrayDeque[int]()

		assert.True(t, q.Empty())
		assert.Zero(t, q.Size())
		assert.Empty(t, q.Values())

		_, ok := q.PopFront()
		assert.False(t, ok)
		_, ok = q.PopBack()
		assert.False(t, ok)
		_, ok = q.PeekFront()
		assert.False(t, ok)
	})

	t.Run("PushBack keeps FIFO order", func(t *testing.T) {
		q := NewArrayDeque[int]()
		q.PushBack(1)
		q.PushBack(2)
		q.PushBack(3)

		assert.Equal(t, 3, q.Size())
		assert.Equal(t, []int{1, 2, 3}, q.Values())

		v, ok := q.PopFront()
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		v, ok = q.PopFront()
		assert.True(t, ok)
		assert.Equal(t, 2, v)

		v, ok = q.PopFront()
		assert.True(t, ok)
		assert.Equal(t, 3, v)

		assert.True(t, q.Empty())
	})

	t.Run("PushFront puts the newest element first", func(t *testing.T) {
		q := NewArrayDeque[string]()
		q.PushBack("a")
		q.PushFront("b")
		q.PushFront("c")

		assert.Equal(t, []string{"c", "b", "a"}, q.Values())

		v, ok := q.PeekFront()
		assert.True(t, ok)
		assert.Equal(t, "c", v)
		assert.Equal(t, 3, q.Size())
	})

	t.Run("PopBack removes from the back", func(t *testing.T) {
		q := NewArrayDeque[int]()
		q.PushBack(1)
		q.PushBack(2)
		q.PushBack(3)

		v, ok := q.PopBack()
		assert.True(t, ok)
		assert.Equal(t, 3, v)
		assert.Equal(t, []int{1, 2}, q.Values())
	})

	t.Run("Clear", func(t *testing.T) {
		q := NewArrayDeque[int]()
		q.PushBack(1)
		q.PushBack(2)
		q.Clear()

		assert.True(t, q.Empty())

		q.PushBack(3)
		assert.Equal(t, []int{3}, q.Values())
	})

	t.Run("Values returns a copy", func(t *testing.T) {
		q := NewArrayDeque[int]()
		q.PushBack(1)

		values := q.Values()
		values[0] = 100

		v, _ := q.PeekFront()
		assert.Equal(t, 1, v)
	})
}
