package types

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncMapBasics(t *testing.T) {
	m := NewSyncMap()

	assert.Equal(t, 0, m.Size())
	assert.Nil(t, m.GetGeneric("missing"))

	assert.NoError(t, m.Set("a", 1))
	assert.Equal(t, 1, m.GetGeneric("a"))
	assert.Equal(t, 1, m.Size())

	m.Remove("a")
	assert.Equal(t, 0, m.Size())
	assert.Nil(t, m.GetGeneric("a"))
}

func TestSyncMapConcurrentAccess(t *testing.T) {
	m := NewSyncMap()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := strconv.Itoa(i*100 + j)
				m.Set(key, j)
				m.GetGeneric(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1000, m.Size())
}
