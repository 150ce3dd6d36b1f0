package game

import "time"

const (
	DefaultStartingLives   = 3
	DefaultInvulnerability = 1 * time.Second
	DefaultLifeThreshold   = 10
)

// PlayerRules groups the tunable per-player constants.
type PlayerRules struct {
	StartingLives int
	// Invulnerability is the grace period after a head hit during which
	// further damage is ignored.
	Invulnerability time.Duration
	// LifeThreshold is both the score of the first bonus life and the step
	// between consecutive bonus lives. Zero disables bonus lives.
	LifeThreshold int
}

func DefaultPlayerRules() PlayerRules {
	return PlayerRules{
		StartingLives:   DefaultStartingLives,
		Invulnerability: DefaultInvulnerability,
		LifeThreshold:   DefaultLifeThreshold,
	}
}

// Player holds one player's score, lives and invulnerability state.
type Player struct {
	ID    int
	Score int
	Lives int

	rules             PlayerRules
	lastHitTime       time.Time
	nextLifeThreshold int
	gameOver          bool

	now func() time.Time
}

func NewPlayer(id int, rules PlayerRules) *Player {
	p := &Player{
		ID:    id,
		rules: rules,
		now:   time.Now,
	}
	p.Reset()

	return p
}

// TakeDamage decrements lives unless the player is still within the
// invulnerability window. Returns whether damage was taken. Reaching zero
// lives latches game over; the latch is only cleared by Reset.
func (p *Player) TakeDamage() bool {
	now := p.now()

	if now.Sub(p.lastHitTime) < p.rules.Invulnerability {
		return false
	}

	p.Lives--
	p.lastHitTime = now

	if p.Lives <= 0 {
		p.gameOver = true
	}

	return true
}

// AddScore credits points and grants one bonus life per threshold crossed.
// The loop handles several thresholds crossed by a single batched gain.
// No-op once the player is game over.
func (p *Player) AddScore(points int) {
	if p.gameOver {
		return
	}

	p.Score += points

	for p.rules.LifeThreshold > 0 && p.Score >= p.nextLifeThreshold {
		p.Lives++
		p.nextLifeThreshold += p.rules.LifeThreshold
	}
}

func (p *Player) IsInvulnerable() bool {
	return p.now().Sub(p.lastHitTime) < p.rules.Invulnerability
}

func (p *Player) IsGameOver() bool {
	return p.gameOver
}

// NextLifeThreshold returns the score at which the next bonus life is won.
func (p *Player) NextLifeThreshold() int {
	return p.nextLifeThreshold
}

// Reset restores the starting state for a new round.
func (p *Player) Reset() {
	p.Score = 0
	p.Lives = p.rules.StartingLives
	p.lastHitTime = time.Time{}
	p.nextLifeThreshold = p.rules.LifeThreshold
	p.gameOver = false
}
