package game

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	notify "github.com/bitly/go-notify"
	"github.com/ttacon/chalk"

	"github.com/zenjiro/pose-game/camera"
	"github.com/zenjiro/pose-game/common/metrics"
	"github.com/zenjiro/pose-game/pipeline"
	"github.com/zenjiro/pose-game/pose"
)

const (
	// maxTickDt bounds the integration step so frame hitches cannot
	// destabilize the physics.
	maxTickDt = 0.05
	// hurryThreshold is the remaining time below which the hurry cue fires.
	hurryThreshold = 10 * time.Second

	footHitPoints = 1

	explosionParticles = 56
)

// VizEvent is the notify event carrying the JSON render frame for the
// viz server.
const VizEvent = "viz:message"

// StopEvent is posted once the loop has stopped ticking.
const StopEvent = "app:stopticking"

// LoopConfig wires the orchestrator.
type LoopConfig struct {
	Frames     *pipeline.FrameSlot
	Poses      *pipeline.PoseSlot
	Game       *Game
	Hazards    *HazardManager
	Effects    *EffectsManager
	Cues       *CueDispatcher
	Timer      *metrics.FrameTimer
	Renderer   Renderer
	Tps        int
	Width      int
	Height     int
	FlipY      bool
	PublishViz bool
}

// Loop drives the game tick: fetch the latest frame and pose snapshot,
// route detections to player slots, resolve collisions, advance physics and
// hand a render description to the external renderer.
type Loop struct {
	frames  *pipeline.FrameSlot
	poses   *pipeline.PoseSlot
	game    *Game
	hazards *HazardManager
	effects *EffectsManager
	cues    *CueDispatcher
	timer   *metrics.FrameTimer

	renderer   Renderer
	publishViz bool
	flipY      bool

	tickspersec int
	width       int
	height      int

	startHold   *HoldTimer
	restartHold *HoldTimer

	ticknum  int
	lastTick time.Time

	ticksCounter *metrics.Counter

	stopticking chan struct{}

	now func() time.Time
}

func NewLoop(config LoopConfig) *Loop {
	return &Loop{
		frames:       config.Frames,
		poses:        config.Poses,
		game:         config.Game,
		hazards:      config.Hazards,
		effects:      config.Effects,
		cues:         config.Cues,
		timer:        config.Timer,
		renderer:     config.Renderer,
		publishViz:   config.PublishViz,
		flipY:        config.FlipY,
		tickspersec:  config.Tps,
		width:        config.Width,
		height:       config.Height,
		startHold:    NewHoldTimer(GestureHoldDuration),
		restartHold:  NewHoldTimer(GestureHoldDuration),
		ticksCounter: metrics.NewCounter(),
		stopticking:  make(chan struct{}),
		now:          time.Now,
	}
}

// Start begins ticking; the returned channel receives one value once the
// loop has stopped.
func (l *Loop) Start() chan interface{} {
	go l.monitoring()
	go l.startTicking()

	block := make(chan interface{})
	notify.Start(StopEvent, block)

	return block
}

func (l *Loop) Stop() {
	close(l.stopticking)
}

func (l *Loop) startTicking() {
	tickduration := time.Duration((1000000 / time.Duration(l.tickspersec)) * time.Microsecond)
	ticker := time.NewTicker(tickduration)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopticking:
			log.Println("Received stop ticking signal")
			notify.Post(StopEvent, nil)
			return
		case <-ticker.C:
			l.DoTick()
		}
	}
}

func (l *Loop) monitoring() {
	monitorfreq := time.Second

	for {
		select {
		case <-l.stopticking:
			return
		case <-time.After(monitorfreq):
			fmt.Print(chalk.Cyan)
			log.Println(
				"-- MONITORING --",
				l.ticksCounter.GetAndReset(), "ticks per", monitorfreq,
				";",
				l.hazards.CollisionTestsAndReset(), "collision tests per", monitorfreq,
				chalk.Reset,
			)
		}
	}
}

// DoTick runs one tick of the game. Safe to call directly in tests.
func (l *Loop) DoTick() {
	l.ticksCounter.Add(1)

	frame, _, _ := l.frames.Get()
	if frame == nil {
		// No camera frame yet; nothing to react to.
		return
	}

	people, _, _ := l.poses.Get()

	now := l.now()
	dt := 0.0
	if !l.lastTick.IsZero() {
		dt = now.Sub(l.lastTick).Seconds()
		if dt > maxTickDt {
			dt = maxTickDt
		}
	}
	l.lastTick = now
	l.ticknum++

	raised := HandRaised(people)

	if !l.game.Started() {
		if l.startHold.Observe(raised, now) {
			l.game.StartGame()
			l.cues.Play(CueGameStart)
		}
	} else if !l.game.Over() {
		l.playTick(people, now)
	}

	if l.game.Over() {
		if l.restartHold.Observe(raised, now) {
			l.game.Reset()
			l.hazards.Reset()
			l.cues.Play(CueGameStart)
		}
	}

	stopHazards := l.timer.Section("hazards")
	l.hazards.Update(dt)
	if l.game.Started() && !l.game.Over() {
		if spawned := l.hazards.MaybeSpawn(); spawned != nil {
			l.cues.Play(CueRockDrop)
		}
	}
	stopHazards()

	stopFx := l.timer.Section("draw_fx")
	l.effects.Update(dt)
	stopFx()

	stopOsd := l.timer.Section("draw_osd")
	l.emitRenderFrame(frame, people)
	stopOsd()

	l.timer.EndFrame()
}

// playTick advances an active round: timer, hurry cue, collisions, scoring.
func (l *Loop) playTick(people []pose.Person, now time.Time) {
	wasOver := l.game.Over()

	l.game.Update()

	if !l.game.Over() && l.game.RemainingTime() <= hurryThreshold {
		l.cues.PlayHurryAlarm()
	}

	stopCollide := l.timer.Section("collide")

	slots := AssignPlayers(people, float64(l.width))

	// Heads: damage, per player.
	for playerID, person := range slots {
		if person == nil {
			continue
		}

		hits, positions := l.hazards.HandleCollisions("head", person.Head)
		for i := 0; i < hits; i++ {
			if l.game.HandleHeadHit(playerID) {
				l.cues.Play(CueHeadHit)
				l.effects.SpawnExplosion(positions[i].X, positions[i].Y, TangoRed, explosionParticles)
			}
		}
	}

	// Hands: feedback only, pooled across both players. Deflecting a rock
	// neither scores nor damages.
	pooledHands := make([]pose.Circle, 0, 4)
	for _, person := range slots {
		if person != nil {
			pooledHands = append(pooledHands, person.Hands...)
		}
	}
	handHits, handPositions := l.hazards.HandleCollisions("hands", pooledHands)
	for i := 0; i < handHits; i++ {
		l.cues.Play(CueHandHit)
		l.effects.SpawnExplosion(handPositions[i].X, handPositions[i].Y, TangoYellow, explosionParticles)
	}

	// Feet: scoring, per player.
	for playerID, person := range slots {
		if person == nil {
			continue
		}

		hits, positions := l.hazards.HandleCollisions("feet", person.Feet)
		if hits > 0 {
			l.game.HandleFootHit(playerID, hits*footHitPoints)
			l.cues.Play(CueFootHit)
			for i := 0; i < hits; i++ {
				l.effects.SpawnExplosion(positions[i].X, positions[i].Y, TangoGreen, explosionParticles)
			}
		}
	}

	stopCollide()

	if !wasOver && l.game.Over() {
		l.cues.Play(CueGameOver)
	}
}

// emitRenderFrame builds this tick's draw description and hands it to the
// renderer and the viz stream. No gameplay side effects.
func (l *Loop) emitRenderFrame(background *camera.Frame, people []pose.Person) {
	rf := &RenderFrame{
		TickNum:    l.ticknum,
		Background: background,
		Circles:    make([]RenderCircle, 0),
		Texts:      make([]RenderText, 0),
		Particles:  l.effects.Snapshot(),
		Remaining:  l.game.RemainingTime().Seconds(),
		Scores:     make([]int, len(l.game.Players)),
		Lives:      make([]int, len(l.game.Players)),
		Started:    l.game.Started(),
		Over:       l.game.Over(),
	}

	for i, p := range l.game.Players {
		rf.Scores[i] = p.Score
		rf.Lives[i] = p.Lives
	}

	for _, hazard := range l.hazards.Hazards() {
		rf.Circles = append(rf.Circles, RenderCircle{
			X:      hazard.X,
			Y:      hazard.Y,
			R:      hazard.R,
			Color:  RockGray,
			Filled: true,
		})
	}

	slots := AssignPlayers(people, float64(l.width))
	playerColors := [2]Color{ColorPlayer0, ColorPlayer1}
	for playerID, person := range slots {
		if person == nil {
			continue
		}

		color := playerColors[playerID]
		for _, group := range [][]pose.Circle{person.Head, person.Hands, person.Feet} {
			for _, c := range group {
				rf.Circles = append(rf.Circles, RenderCircle{X: c.X, Y: c.Y, R: c.R, Color: color})
			}
		}
	}

	l.buildOSD(rf)

	if l.flipY {
		rf.FlipY(float64(l.height))
	}

	if l.renderer != nil {
		l.renderer.Render(rf)
	}

	if l.publishViz {
		if data, err := json.Marshal(rf); err == nil {
			notify.Post(VizEvent, string(data))
		}
	}
}

// buildOSD appends the on-screen text for the current lifecycle phase.
func (l *Loop) buildOSD(rf *RenderFrame) {
	switch {
	case !l.game.Started():
		rf.Texts = append(rf.Texts,
			RenderText{Text: "POSE GAME", X: float64(l.width) / 2, Y: float64(l.height) * 0.35, Size: 2, Color: ColorOSDTitle, Anchor: AnchorCenter},
			RenderText{Text: "Raise a hand for 2s to start", X: float64(l.width) / 2, Y: float64(l.height) * 0.5, Size: 1, Color: ColorOSDHint, Anchor: AnchorCenter},
		)
	case l.game.Over():
		winnerText := "Draw"
		if winner, ok := l.game.Winner(); ok {
			winnerText = "Player " + strconv.Itoa(winner+1) + " wins!"
		}
		rf.Texts = append(rf.Texts,
			RenderText{Text: "GAME OVER", X: float64(l.width) / 2, Y: float64(l.height) * 0.35, Size: 2, Color: ColorOSDTitle, Anchor: AnchorCenter},
			RenderText{Text: winnerText, X: float64(l.width) / 2, Y: float64(l.height) * 0.45, Size: 1.2, Color: ColorOSDTitle, Anchor: AnchorCenter},
			RenderText{Text: "Raise a hand for 2s to play again", X: float64(l.width) / 2, Y: float64(l.height) * 0.55, Size: 1, Color: ColorOSDHint, Anchor: AnchorCenter},
		)
	default:
		remaining := l.game.RemainingTime().Seconds()
		rf.Texts = append(rf.Texts,
			RenderText{Text: fmt.Sprintf("TIME %4.1f", remaining), X: float64(l.width) / 2, Y: 30, Size: 1, Color: ColorOSDTitle, Anchor: AnchorCenter},
		)
		for i, p := range l.game.Players {
			anchor := AnchorTopLeft
			x := 20.0
			if i == 1 {
				anchor = AnchorTopRight
				x = float64(l.width) - 20
			}
			rf.Texts = append(rf.Texts, RenderText{
				Text:   fmt.Sprintf("P%d  score %d  lives %d", i+1, p.Score, p.Lives),
				X:      x,
				Y:      30,
				Size:   1,
				Color:  playerColor(i),
				Anchor: anchor,
			})
		}
	}
}

func playerColor(playerID int) Color {
	if playerID == 0 {
		return ColorPlayer0
	}

	return ColorPlayer1
}
