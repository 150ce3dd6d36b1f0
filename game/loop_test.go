package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zenjiro/pose-game/camera"
	"github.com/zenjiro/pose-game/common/metrics"
	"github.com/zenjiro/pose-game/pipeline"
	"github.com/zenjiro/pose-game/pose"
)

type recordingRenderer struct {
	frames []*RenderFrame
}

func (r *recordingRenderer) Render(frame *RenderFrame) {
	r.frames = append(r.frames, frame)
}

func (r *recordingRenderer) last() *RenderFrame {
	if len(r.frames) == 0 {
		return nil
	}

	return r.frames[len(r.frames)-1]
}

type loopFixture struct {
	clock    *fakeClock
	frames   *pipeline.FrameSlot
	poses    *pipeline.PoseSlot
	game     *Game
	hazards  *HazardManager
	effects  *EffectsManager
	cues     *CueDispatcher
	renderer *recordingRenderer
	loop     *Loop
}

func newLoopFixture(rules PlayerRules) *loopFixture {
	clock := newFakeClock()

	f := &loopFixture{
		clock:    clock,
		frames:   pipeline.NewFrameSlot(),
		poses:    pipeline.NewPoseSlot(),
		game:     NewGame(2, 60*time.Second, rules),
		hazards:  NewHazardManager(800, 600),
		effects:  NewEffectsManager(),
		cues:     NewCueDispatcher(),
		renderer: &recordingRenderer{},
	}

	f.game.now = clock.now
	for _, p := range f.game.Players {
		p.now = clock.now
	}
	f.hazards.now = clock.now
	f.cues.now = clock.now

	f.loop = NewLoop(LoopConfig{
		Frames:   f.frames,
		Poses:    f.poses,
		Game:     f.game,
		Hazards:  f.hazards,
		Effects:  f.effects,
		Cues:     f.cues,
		Timer:    metrics.NewFrameTimer(false),
		Renderer: f.renderer,
		Tps:      60,
		Width:    800,
		Height:   600,
	})
	f.loop.now = clock.now

	f.frames.Update(&camera.Frame{Width: 4, Height: 4, Pix: make([]byte, 4*4*3)})

	// Pin the spawner so ticks only see hazards the test placed.
	f.hazards.lastSpawn = clock.t.Add(time.Hour)

	return f
}

func (f *loopFixture) setPerson(person pose.Person) {
	f.poses.Update([]pose.Person{person}, 1)
}

// leftPlayer builds a detection that lands in slot 0, with the hand
// optionally raised above the head.
func leftPlayer(raised bool) pose.Person {
	handY := 200.0
	if raised {
		handY = 50.0
	}

	return pose.Person{
		Head:  []pose.Circle{{X: 200, Y: 100, R: 20}},
		Hands: []pose.Circle{{X: 160, Y: handY, R: 10}},
		Feet:  []pose.Circle{{X: 200, Y: 550, R: 12}},
	}
}

func TestDoTickWithoutFrameIsInert(t *testing.T) {
	f := newLoopFixture(DefaultPlayerRules())
	f.frames = pipeline.NewFrameSlot()
	f.loop.frames = f.frames

	f.setPerson(leftPlayer(true))
	f.loop.DoTick()

	assert.False(t, f.game.Started())
	assert.Empty(t, f.renderer.frames)
}

func TestStartGestureHold(t *testing.T) {
	f := newLoopFixture(DefaultPlayerRules())
	f.hazards.lastSpawn = time.Time{}
	f.setPerson(leftPlayer(true))

	f.loop.DoTick()
	assert.False(t, f.game.Started())

	f.clock.advance(time.Second)
	f.loop.DoTick()
	assert.False(t, f.game.Started())

	f.clock.advance(time.Second)
	f.loop.DoTick()
	assert.True(t, f.game.Started())

	// The first active tick already drops a rock.
	assert.NotEmpty(t, f.hazards.Hazards())
}

func TestStartGestureGapCancelsHold(t *testing.T) {
	f := newLoopFixture(DefaultPlayerRules())

	f.setPerson(leftPlayer(true))
	f.loop.DoTick()

	f.clock.advance(1900 * time.Millisecond)
	f.setPerson(leftPlayer(false))
	f.loop.DoTick()

	f.clock.advance(200 * time.Millisecond)
	f.setPerson(leftPlayer(true))
	f.loop.DoTick()
	assert.False(t, f.game.Started())
}

func TestHeadHitDamagesAssignedPlayer(t *testing.T) {
	f := newLoopFixture(DefaultPlayerRules())
	f.game.StartGame()
	f.setPerson(leftPlayer(false))

	h := addHazard(f.hazards, 200, 100, 20)

	f.loop.DoTick()

	assert.Equal(t, 2, f.game.Players[0].Lives)
	assert.Equal(t, 3, f.game.Players[1].Lives)
	assert.True(t, h.Hit)
	assert.NotZero(t, f.effects.Count())
}

func TestFootHitScoresAssignedPlayer(t *testing.T) {
	f := newLoopFixture(DefaultPlayerRules())
	f.game.StartGame()
	f.setPerson(leftPlayer(false))

	addHazard(f.hazards, 200, 550, 20)

	f.loop.DoTick()

	assert.Equal(t, 1, f.game.Players[0].Score)
	assert.Equal(t, 3, f.game.Players[0].Lives)
	assert.Equal(t, 0, f.game.Players[1].Score)
}

func TestHandHitIsFeedbackOnly(t *testing.T) {
	f := newLoopFixture(DefaultPlayerRules())
	f.game.StartGame()
	f.setPerson(leftPlayer(false))

	h := addHazard(f.hazards, 160, 200, 20)

	f.loop.DoTick()

	// Deflected: consumed without damage or score.
	assert.True(t, h.Hit)
	assert.Equal(t, 0, f.game.Players[0].Score)
	assert.Equal(t, 3, f.game.Players[0].Lives)
	assert.NotZero(t, f.effects.Count())
}

func TestInvulnerabilityAbsorbsSecondRock(t *testing.T) {
	f := newLoopFixture(DefaultPlayerRules())
	f.game.StartGame()
	f.setPerson(leftPlayer(false))

	addHazard(f.hazards, 200, 100, 20)
	f.loop.DoTick()
	assert.Equal(t, 2, f.game.Players[0].Lives)

	// A second rock during the grace period is consumed without damage.
	f.clock.advance(100 * time.Millisecond)
	second := addHazard(f.hazards, 200, 100, 20)
	f.loop.DoTick()
	assert.Equal(t, 2, f.game.Players[0].Lives)
	assert.True(t, second.Hit)
}

func TestRestartGestureAfterGameOver(t *testing.T) {
	f := newLoopFixture(PlayerRules{StartingLives: 1, Invulnerability: time.Second, LifeThreshold: 10})
	f.game.StartGame()
	f.setPerson(leftPlayer(false))

	addHazard(f.hazards, 200, 100, 20)
	f.loop.DoTick()
	assert.True(t, f.game.Over())

	// Hold a hand up for two seconds to play again.
	f.setPerson(leftPlayer(true))
	f.loop.DoTick()
	f.clock.advance(2 * time.Second)
	f.loop.DoTick()

	assert.True(t, f.game.Started())
	assert.False(t, f.game.Over())
	assert.Equal(t, 1, f.game.Players[0].Lives)
	assert.Empty(t, f.hazards.Hazards())
	assert.Equal(t, 60.0, f.renderer.last().Remaining)
}

func TestRenderFrameDescribesScene(t *testing.T) {
	f := newLoopFixture(DefaultPlayerRules())
	f.game.StartGame()
	f.setPerson(leftPlayer(false))

	addHazard(f.hazards, 400, 50, 20)

	f.loop.DoTick()

	rf := f.renderer.last()
	assert.NotNil(t, rf)
	assert.True(t, rf.Started)
	assert.False(t, rf.Over)

	// One rock plus the person's head, hand and two feet... the fixture
	// person has one hand, so four player circles.
	assert.Len(t, rf.Circles, 5)
	assert.Equal(t, RockGray, rf.Circles[0].Color)
	assert.NotEmpty(t, rf.Texts)
	assert.Equal(t, []int{0, 0}, rf.Scores)
	assert.Equal(t, []int{3, 3}, rf.Lives)
}

func TestOSDBeforeStartAndAfterOver(t *testing.T) {
	f := newLoopFixture(PlayerRules{StartingLives: 1, Invulnerability: time.Second, LifeThreshold: 10})
	f.setPerson(leftPlayer(false))

	f.loop.DoTick()
	rf := f.renderer.last()
	assert.False(t, rf.Started)
	assert.NotEmpty(t, rf.Texts)

	f.game.StartGame()
	addHazard(f.hazards, 200, 100, 20)
	f.loop.DoTick()
	assert.True(t, f.game.Over())

	rf = f.renderer.last()
	assert.True(t, rf.Over)

	// Sole survivor is announced.
	found := false
	for _, text := range rf.Texts {
		if text.Text == "Player 2 wins!" {
			found = true
		}
	}
	assert.True(t, found)
}
