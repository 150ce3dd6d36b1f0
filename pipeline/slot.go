// Package pipeline implements the capture → inference frame pipeline:
// two background workers exchanging data through latest-value slots.
//
// The slots are intentionally lossy: a slow consumer silently misses
// intermediate values. The pipeline favors freshness over completeness so
// end-to-end latency stays bounded even when inference is slower than
// capture.
package pipeline

import (
	"sync"
	"time"

	"github.com/zenjiro/pose-game/camera"
	"github.com/zenjiro/pose-game/pose"
)

// FrameSlot holds the latest camera frame. Update never blocks readers,
// Get never blocks writers; no history is retained.
type FrameSlot struct {
	mutex sync.Mutex
	frame *camera.Frame
	seq   uint64
	ts    time.Time
}

func NewFrameSlot() *FrameSlot {
	return &FrameSlot{}
}

// Update replaces the held frame, increments the sequence number and
// records the wall clock.
func (s *FrameSlot) Update(frame *camera.Frame) {
	s.mutex.Lock()
	s.frame = frame
	s.seq++
	s.ts = time.Now()
	s.mutex.Unlock()
}

// Get returns a snapshot of the latest frame. The empty initial state is
// (nil, 0, zero time).
func (s *FrameSlot) Get() (*camera.Frame, uint64, time.Time) {
	s.mutex.Lock()
	frame, seq, ts := s.frame, s.seq, s.ts
	s.mutex.Unlock()

	return frame, seq, ts
}

// PoseSlot holds the latest pose-detection result, tagged with the sequence
// number of the frame it was computed from.
type PoseSlot struct {
	mutex    sync.Mutex
	people   []pose.Person
	frameSeq uint64
	ts       time.Time
}

func NewPoseSlot() *PoseSlot {
	return &PoseSlot{}
}

func (s *PoseSlot) Update(people []pose.Person, frameSeq uint64) {
	s.mutex.Lock()
	s.people = people
	s.frameSeq = frameSeq
	s.ts = time.Now()
	s.mutex.Unlock()
}

// Get returns a snapshot of the latest result. The returned slice is a
// copy; callers may keep it across ticks.
func (s *PoseSlot) Get() ([]pose.Person, uint64, time.Time) {
	s.mutex.Lock()
	people := make([]pose.Person, len(s.people))
	copy(people, s.people)
	frameSeq, ts := s.frameSeq, s.ts
	s.mutex.Unlock()

	return people, frameSeq, ts
}
