package game

import "time"

const DefaultTimeLimit = 60 * time.Second

// Game owns all player states and the session lifecycle:
// not started → started (not over) → over. The over transition is a
// one-way latch per round; Reset re-enters started.
type Game struct {
	Players []*Player

	started       bool
	over          bool
	timeLimit     time.Duration
	startTime     time.Time
	overRemaining time.Duration

	now func() time.Time
}

func NewGame(numPlayers int, timeLimit time.Duration, rules PlayerRules) *Game {
	players := make([]*Player, numPlayers)
	for i := range players {
		players[i] = NewPlayer(i, rules)
	}

	return &Game{
		Players:   players,
		timeLimit: timeLimit,
		now:       time.Now,
	}
}

func (g *Game) Started() bool {
	return g.started
}

func (g *Game) Over() bool {
	return g.over
}

// StartGame transitions to started and resets all players.
func (g *Game) StartGame() {
	g.started = true
	g.over = false
	g.startTime = g.now()

	for _, p := range g.Players {
		p.Reset()
	}
}

// Update forces game over once the round time is exhausted.
func (g *Game) Update() {
	if !g.started || g.over {
		return
	}

	if g.RemainingTime() <= 0 {
		g.latchOver()
	}
}

// HandleHeadHit routes damage to the given player. Returns whether damage
// was actually taken. Any player reaching game over ends the round.
func (g *Game) HandleHeadHit(playerID int) bool {
	if g.over {
		return false
	}

	damaged := g.Players[playerID].TakeDamage()

	for _, p := range g.Players {
		if p.IsGameOver() {
			g.latchOver()
			break
		}
	}

	return damaged
}

// HandleFootHit credits a scoring event to the given player.
func (g *Game) HandleFootHit(playerID int, points int) {
	if g.over {
		return
	}

	g.Players[playerID].AddScore(points)
}

// RemainingTime reports the time left in the round: the full limit before
// the round starts, the frozen value captured at the over transition once
// it has ended, the live countdown otherwise.
func (g *Game) RemainingTime() time.Duration {
	if !g.started {
		return g.timeLimit
	}

	if g.over {
		return g.overRemaining
	}

	remaining := g.timeLimit - g.now().Sub(g.startTime)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// Winner returns the winning player id. The second value is false while the
// round is running or when the round is a tie.
func (g *Game) Winner() (int, bool) {
	if !g.over {
		return 0, false
	}

	alive := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if !p.IsGameOver() {
			alive = append(alive, p)
		}
	}

	// Sole survivor wins outright.
	if len(alive) == 1 {
		return alive[0].ID, true
	}

	// Otherwise the round ended on the clock or in mutual elimination;
	// the higher score wins, equal scores tie.
	best := g.Players[0]
	tied := false
	for _, p := range g.Players[1:] {
		if p.Score > best.Score {
			best = p
			tied = false
		} else if p.Score == best.Score {
			tied = true
		}
	}

	if tied {
		return 0, false
	}

	return best.ID, true
}

// Reset re-enters started (not over), resets all players and the timer.
func (g *Game) Reset() {
	for _, p := range g.Players {
		p.Reset()
	}

	g.over = false
	g.overRemaining = 0
	g.started = true
	g.startTime = g.now()
}

func (g *Game) latchOver() {
	remaining := g.RemainingTime()

	g.over = true
	g.overRemaining = remaining
}
