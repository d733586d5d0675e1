package bodycache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siftlang/sift/internal/prog"
)

func TestIntern(t *testing.T) {

	t.Run("first insertion returns the body itself", func(t *testing.T) {
		cache := New()
		body := prog.MustParse("PUSH 1 ADD")

		canonical := cache.Intern(body)
		assert.Equal(t, body, canonical)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("equal content is deduplicated to the first stored body", func(t *testing.T) {
		cache := New()
		first := prog.MustParse("DUP MUL PRINT")
		second := prog.MustParse("DUP MUL PRINT")

		stored := cache.Intern(first)
		again := cache.Intern(second)

		assert.Equal(t, 1, cache.Len())
		assert.Equal(t, first, again)

		//both interned values share the first body's backing array
		assert.Same(t, &stored[0], &again[0])
	})

	t.Run("distinct bodies are stored separately", func(t *testing.T) {
		cache := New()
		cache.Intern(prog.MustParse("DUP"))
		cache.Intern(prog.MustParse("ADD"))
		cache.Intern(prog.MustParse("DUP ADD"))

		assert.Equal(t, 3, cache.Len())
	})

	t.Run("concurrent interns of the same body collapse to one entry", func(t *testing.T) {
		cache := New()
		body := prog.MustParse("ARG0 PUSH 2 MUL PRINT")

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cache.Intern(prog.MustParse("ARG0 PUSH 2 MUL PRINT"))
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, cache.Len())
		assert.Equal(t, body, cache.Intern(body))
	})
}
