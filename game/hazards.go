package game

import (
	"math/rand"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/zenjiro/pose-game/common/metrics"
	"github.com/zenjiro/pose-game/pose"
)

// Hazard is one falling rock. Owned exclusively by the HazardManager;
// once flagged hit it never participates in further collision tests.
type Hazard struct {
	ID      uuid.UUID
	X, Y    float64
	VX, VY  float64
	R       float64
	Hit     bool
	hitTime time.Time
}

func (h *Hazard) integrate(dt float64) {
	h.X += h.VX * dt
	h.Y += h.VY * dt
}

// Circle returns the hazard's current bounding region.
func (h *Hazard) Circle() pose.Circle {
	return pose.Circle{X: h.X, Y: h.Y, R: h.R}
}

const (
	hazardSpawnInterval = 800 * time.Millisecond
	hazardLingerAfter   = 250 * time.Millisecond
	hazardMinRadius     = 14.0
	hazardMaxRadius     = 36.0
	hazardDriftMax      = 60.0
	hazardFallMin       = 180.0
	hazardFallMax       = 360.0
	hazardCullMargin    = 5.0
)

// HazardManager owns the set of falling hazards: spawn cadence, physics
// integration, collision testing against supplied target circles, culling.
// It is agnostic to scoring semantics; the caller interprets the kind of
// target it tested against.
type HazardManager struct {
	width  float64
	height float64

	hazards   []*Hazard
	lastSpawn time.Time

	collisionTests *metrics.Counter

	rng *rand.Rand
	now func() time.Time
}

func NewHazardManager(width, height float64) *HazardManager {
	return &HazardManager{
		width:          width,
		height:         height,
		hazards:        make([]*Hazard, 0),
		collisionTests: metrics.NewCounter(),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		now:            time.Now,
	}
}

func (m *HazardManager) Hazards() []*Hazard {
	return m.hazards
}

// MaybeSpawn spawns one hazard when the spawn interval has elapsed.
// Returns the spawned hazard, or nil when it is not time yet.
func (m *HazardManager) MaybeSpawn() *Hazard {
	now := m.now()
	if now.Sub(m.lastSpawn) < hazardSpawnInterval {
		return nil
	}
	m.lastSpawn = now

	r := hazardMinRadius + m.rng.Float64()*(hazardMaxRadius-hazardMinRadius)

	hazard := &Hazard{
		ID: uuid.NewV4(),
		X:  r + m.rng.Float64()*(m.width-2*r),
		Y:  -r,
		VX: -hazardDriftMax + m.rng.Float64()*2*hazardDriftMax,
		VY: hazardFallMin + m.rng.Float64()*(hazardFallMax-hazardFallMin),
		R:  r,
	}

	m.hazards = append(m.hazards, hazard)

	return hazard
}

// Update integrates hazard positions and culls spent hazards. Hazards hit
// longer than the linger window ago are forced far offscreen so that a
// single bottom-bound rule removes everything.
func (m *HazardManager) Update(dt float64) {
	now := m.now()

	kept := m.hazards[:0]
	for _, hazard := range m.hazards {
		hazard.integrate(dt)

		if hazard.Hit && now.Sub(hazard.hitTime) > hazardLingerAfter {
			hazard.Y = m.height * 10
		}

		if hazard.Y-hazard.R < m.height+hazardCullMargin {
			kept = append(kept, hazard)
		}
	}
	m.hazards = kept
}

// HandleCollisions tests every not-yet-hit hazard against the supplied
// target circles, in hazard order, first matching target wins. A hazard is
// hit at most once per call and ever. Returns the number of hits and the
// hazard positions at the moment of impact.
func (m *HazardManager) HandleCollisions(kind string, targets []pose.Circle) (int, []pose.Circle) {
	if len(targets) == 0 {
		return 0, nil
	}

	now := m.now()

	hits := 0
	positions := make([]pose.Circle, 0)

	for _, hazard := range m.hazards {
		if hazard.Hit {
			continue
		}

		for _, target := range targets {
			m.collisionTests.Add(1)

			if CirclesOverlap(hazard.Circle(), target) {
				hazard.Hit = true
				hazard.hitTime = now
				hits++
				positions = append(positions, hazard.Circle())
				break
			}
		}
	}

	return hits, positions
}

// CollisionTestsAndReset drains the collision-test counter, for monitoring.
func (m *HazardManager) CollisionTestsAndReset() int {
	return m.collisionTests.GetAndReset()
}

// Reset clears all hazards. Used on game restart.
func (m *HazardManager) Reset() {
	m.hazards = m.hazards[:0]
}
