package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterGetAndReset(t *testing.T) {
	counter := NewCounter()

	counter.Add(1)
	counter.Add(41)

	assert.Equal(t, 42, counter.GetAndReset())
	assert.Equal(t, 0, counter.GetAndReset())
}

func TestCounterConcurrentAdds(t *testing.T) {
	counter := NewCounter()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				counter.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10000, counter.GetAndReset())
}
