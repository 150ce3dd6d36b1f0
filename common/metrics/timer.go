package metrics

import (
	"sync"
	"time"
)

// FrameTimer accumulates per-section wall time over the course of one frame.
// It is handed explicitly to whoever needs instrumentation; there is no
// process-wide instance. A disabled timer is a strict no-op.
type FrameTimer struct {
	enabled bool

	mutex      sync.Mutex
	sectionsMs map[string]float64
	frames     int
}

func NewFrameTimer(enabled bool) *FrameTimer {
	return &FrameTimer{
		enabled:    enabled,
		sectionsMs: make(map[string]float64),
	}
}

func (timer *FrameTimer) Enabled() bool {
	return timer.enabled
}

// Section starts timing a named section; the returned func stops it.
// Typical use: defer timer.Section("collide")()
func (timer *FrameTimer) Section(name string) func() {
	if !timer.enabled {
		return func() {}
	}

	t0 := time.Now()

	return func() {
		elapsedMs := float64(time.Since(t0).Nanoseconds()) / 1e6

		timer.mutex.Lock()
		timer.sectionsMs[name] += elapsedMs
		timer.mutex.Unlock()
	}
}

func (timer *FrameTimer) EndFrame() {
	if !timer.enabled {
		return
	}

	timer.mutex.Lock()
	timer.frames++
	timer.mutex.Unlock()
}

// FlushInto reports the accumulated section times since the last flush as
// fields of one measurement, and resets the accumulators.
func (timer *FrameTimer) FlushInto(client *Client, measurement string) {
	if !timer.enabled {
		return
	}

	timer.mutex.Lock()
	fields := make(map[string]interface{}, len(timer.sectionsMs)+1)
	for name, ms := range timer.sectionsMs {
		fields[name+"_ms"] = ms
	}
	fields["frames"] = timer.frames

	timer.sectionsMs = make(map[string]float64)
	timer.frames = 0
	timer.mutex.Unlock()

	client.WriteAppMetric(measurement, fields)
}
