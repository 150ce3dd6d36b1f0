package metrics

import (
	"sync/atomic"
)

type Counter struct {
	count int64
}

func NewCounter() *Counter {
	return &Counter{0}
}

func (counter *Counter) Add(nbr int) {
	atomic.AddInt64(&counter.count, int64(nbr))
}

func (counter *Counter) GetAndReset() int {
	count := atomic.SwapInt64(&counter.count, 0)

	return int(count)
}
