package game

import (
	"time"

	notify "github.com/bitly/go-notify"
)

// Cue names a fire-and-forget sound event for the external audio
// collaborator. Cues are published as process events; whoever renders audio
// subscribes to AudioEvent.
type Cue string

const (
	CueGameStart  Cue = "game_start"
	CueHeadHit    Cue = "head_hit"
	CueHandHit    Cue = "hand_hit"
	CueFootHit    Cue = "foot_hit"
	CueHurryAlarm Cue = "hurry_alarm"
	CueGameOver   Cue = "game_over"
	CueRockDrop   Cue = "rock_drop"
)

const AudioEvent = "audio:cue"

const hurryAlarmInterval = 2 * time.Second

// CueDispatcher publishes audio cues. The hurry alarm is throttled here,
// on the calling side, so the audio collaborator stays trivial.
type CueDispatcher struct {
	lastHurryAlarm time.Time

	now func() time.Time
}

func NewCueDispatcher() *CueDispatcher {
	return &CueDispatcher{
		now: time.Now,
	}
}

func (d *CueDispatcher) Play(cue Cue) {
	notify.Post(AudioEvent, cue)
}

// PlayHurryAlarm plays the hurry cue at most once per throttle interval,
// regardless of call frequency. Returns whether the cue was published.
func (d *CueDispatcher) PlayHurryAlarm() bool {
	now := d.now()
	if now.Sub(d.lastHurryAlarm) < hurryAlarmInterval {
		return false
	}

	d.lastHurryAlarm = now
	d.Play(CueHurryAlarm)

	return true
}
