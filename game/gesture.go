package game

import (
	"time"

	"github.com/zenjiro/pose-game/pose"
)

const GestureHoldDuration = 2 * time.Second

// HoldTimer requires a condition to stay continuously satisfied for a
// minimum duration before triggering. Any gap resets the hold; no partial
// credit is carried across gaps.
type HoldTimer struct {
	required time.Duration
	since    time.Time
	holding  bool
}

func NewHoldTimer(required time.Duration) *HoldTimer {
	return &HoldTimer{required: required}
}

// Observe advances the timer with the current condition state. It returns
// true exactly once per completed hold.
func (t *HoldTimer) Observe(satisfied bool, now time.Time) bool {
	if !satisfied {
		t.holding = false
		return false
	}

	if !t.holding {
		t.holding = true
		t.since = now
		return false
	}

	if now.Sub(t.since) >= t.required {
		t.holding = false
		return true
	}

	return false
}

// Holding reports whether a hold is in progress, and for how long.
func (t *HoldTimer) Holding(now time.Time) (bool, time.Duration) {
	if !t.holding {
		return false, 0
	}

	return true, now.Sub(t.since)
}

// HandRaised reports whether any detected person holds a hand above their
// head. Coordinates are top-left origin, so above means a smaller y.
func HandRaised(people []pose.Person) bool {
	for _, person := range people {
		if len(person.Head) == 0 {
			continue
		}

		head := person.Head[0]
		for _, hand := range person.Hands {
			if hand.Y < head.Y {
				return true
			}
		}
	}

	return false
}
