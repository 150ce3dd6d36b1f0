package game

import (
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"

	"github.com/zenjiro/pose-game/pose"
)

func newTestHazardManager(clock *fakeClock) *HazardManager {
	m := NewHazardManager(800, 600)
	m.now = clock.now

	return m
}

func addHazard(m *HazardManager, x, y, r float64) *Hazard {
	h := &Hazard{ID: uuid.NewV4(), X: x, Y: y, R: r}
	m.hazards = append(m.hazards, h)

	return h
}

func TestSpawnCadence(t *testing.T) {
	clock := newFakeClock()
	m := newTestHazardManager(clock)

	assert.NotNil(t, m.MaybeSpawn())
	assert.Nil(t, m.MaybeSpawn())

	clock.advance(500 * time.Millisecond)
	assert.Nil(t, m.MaybeSpawn())

	clock.advance(400 * time.Millisecond)
	assert.NotNil(t, m.MaybeSpawn())
	assert.Len(t, m.Hazards(), 2)
}

func TestSpawnBounds(t *testing.T) {
	clock := newFakeClock()
	m := newTestHazardManager(clock)

	for i := 0; i < 200; i++ {
		clock.advance(time.Second)
		h := m.MaybeSpawn()
		assert.NotNil(t, h)

		assert.GreaterOrEqual(t, h.R, 14.0)
		assert.LessOrEqual(t, h.R, 36.0)
		assert.GreaterOrEqual(t, h.X, h.R)
		assert.LessOrEqual(t, h.X, 800-h.R)
		assert.Equal(t, -h.R, h.Y)
		assert.GreaterOrEqual(t, h.VX, -60.0)
		assert.LessOrEqual(t, h.VX, 60.0)
		assert.GreaterOrEqual(t, h.VY, 180.0)
		assert.LessOrEqual(t, h.VY, 360.0)
	}
}

func TestUpdateIntegratesAndCulls(t *testing.T) {
	clock := newFakeClock()
	m := newTestHazardManager(clock)

	h := addHazard(m, 100, 0, 20)
	h.VX = 10
	h.VY = 100

	m.Update(0.5)
	assert.Equal(t, 105.0, h.X)
	assert.Equal(t, 50.0, h.Y)
	assert.Len(t, m.Hazards(), 1)

	// Falls below the bottom bound and is culled.
	h.Y = 590
	m.Update(0.5)
	assert.Empty(t, m.Hazards())
}

func TestHazardHitAtMostOnce(t *testing.T) {
	clock := newFakeClock()
	m := newTestHazardManager(clock)

	addHazard(m, 100, 100, 20)
	target := []pose.Circle{{X: 100, Y: 100, R: 10}}

	hits, positions := m.HandleCollisions("head", target)
	assert.Equal(t, 1, hits)
	assert.Len(t, positions, 1)
	assert.Equal(t, 100.0, positions[0].X)

	// Same hazard never hits again, whatever the target kind.
	hits, _ = m.HandleCollisions("head", target)
	assert.Equal(t, 0, hits)
	hits, _ = m.HandleCollisions("foot", target)
	assert.Equal(t, 0, hits)
}

func TestFirstMatchingTargetWins(t *testing.T) {
	clock := newFakeClock()
	m := newTestHazardManager(clock)

	addHazard(m, 100, 100, 20)

	// Both targets overlap the hazard; only one hit is counted.
	targets := []pose.Circle{
		{X: 95, Y: 100, R: 10},
		{X: 105, Y: 100, R: 10},
	}

	hits, _ := m.HandleCollisions("foot", targets)
	assert.Equal(t, 1, hits)
}

func TestNoTargetsShortCircuits(t *testing.T) {
	clock := newFakeClock()
	m := newTestHazardManager(clock)
	addHazard(m, 100, 100, 20)

	hits, positions := m.HandleCollisions("hand", nil)
	assert.Equal(t, 0, hits)
	assert.Nil(t, positions)
	assert.Equal(t, 0, m.CollisionTestsAndReset())
}

func TestHitHazardLingersThenLeaves(t *testing.T) {
	clock := newFakeClock()
	m := newTestHazardManager(clock)

	h := addHazard(m, 100, 100, 20)
	hits, _ := m.HandleCollisions("head", []pose.Circle{{X: 100, Y: 100, R: 10}})
	assert.Equal(t, 1, hits)
	assert.True(t, h.Hit)

	// Within the linger window the hazard stays visible.
	clock.advance(100 * time.Millisecond)
	m.Update(0)
	assert.Len(t, m.Hazards(), 1)

	// Past the window it is forced offscreen and culled.
	clock.advance(200 * time.Millisecond)
	m.Update(0)
	assert.Empty(t, m.Hazards())
}

func TestCollisionTestCounter(t *testing.T) {
	clock := newFakeClock()
	m := newTestHazardManager(clock)

	addHazard(m, 100, 100, 20)
	addHazard(m, 700, 100, 20)

	targets := []pose.Circle{
		{X: 400, Y: 400, R: 10},
		{X: 500, Y: 500, R: 10},
	}

	hits, _ := m.HandleCollisions("foot", targets)
	assert.Equal(t, 0, hits)
	assert.Equal(t, 4, m.CollisionTestsAndReset())
	assert.Equal(t, 0, m.CollisionTestsAndReset())
}

func TestResetClearsHazards(t *testing.T) {
	clock := newFakeClock()
	m := newTestHazardManager(clock)

	addHazard(m, 100, 100, 20)
	addHazard(m, 200, 100, 20)
	m.Reset()

	assert.Empty(t, m.Hazards())
}
