package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/bytearena/ecs"
)

// Color is an RGB triple for the render description.
type Color [3]uint8

type particle struct {
	x, y       float64
	vx, vy     float64
	life       float64
	maxLife    float64
	size       float64
	gravity    float64
	colorStart Color
	colorEnd   Color
}

func (p *particle) update(dt float64) {
	p.vy += p.gravity * dt
	p.x += p.vx * dt
	p.y += p.vy * dt
	p.life -= dt
}

func (p *particle) alive() bool {
	return p.life > 0
}

// t maps particle age to [0,1]: 0 at birth, 1 at death.
func (p *particle) t() float64 {
	if p.maxLife <= 1e-6 {
		return 1
	}

	tt := 1 - p.life/p.maxLife
	return math.Max(0, math.Min(1, tt))
}

func (p *particle) color() Color {
	tt := p.t()

	lerp := func(a, b uint8) uint8 {
		return uint8((1-tt)*float64(a) + tt*float64(b))
	}

	return Color{
		lerp(p.colorStart[0], p.colorEnd[0]),
		lerp(p.colorStart[1], p.colorEnd[1]),
		lerp(p.colorStart[2], p.colorEnd[2]),
	}
}

func (p *particle) radius() float64 {
	r := p.size * (1 - 0.6*p.t())
	if r < 1 {
		return 1
	}

	return r
}

// ParticleDot is one particle as handed to the renderer.
type ParticleDot struct {
	X, Y      float64
	R         float64
	Color     Color
	Intensity float64
}

const (
	explosionCountScale = 0.5
	explosionSizeScale  = 1.5
)

// EffectsManager runs the short-lived particle entities spawned on hits.
// Purely visual; no gameplay side effects.
type EffectsManager struct {
	manager           *ecs.Manager
	particleComponent *ecs.Component
	particlesView     *ecs.View

	rng *rand.Rand
}

func NewEffectsManager() *EffectsManager {
	manager := ecs.NewManager()

	em := &EffectsManager{
		manager:           manager,
		particleComponent: manager.NewComponent(),
	}
	em.particlesView = manager.CreateView(em.particleComponent)
	em.rng = rand.New(rand.NewSource(time.Now().UnixNano()))

	return em
}

// SpawnExplosion emits a radial particle burst at (x, y).
func (em *EffectsManager) SpawnExplosion(x, y float64, baseColor Color, count int) {
	scaledCount := int(float64(count) * explosionCountScale)
	if scaledCount < 1 {
		scaledCount = 1
	}

	endColor := Color{60, 60, 40}

	for i := 0; i < scaledCount; i++ {
		angle := em.rng.Float64() * 2 * math.Pi
		speed := 90 + em.rng.Float64()*(240-90)
		life := 1.0 + em.rng.Float64()*(2.2-1.0)

		jitter := func(c uint8) uint8 {
			v := int(c) + int(em.rng.Float64()*40-20)
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			return uint8(v)
		}

		em.manager.NewEntity().
			AddComponent(em.particleComponent, &particle{
				x:       x,
				y:       y,
				vx:      math.Cos(angle) * speed,
				vy:      math.Sin(angle) * speed,
				life:    life,
				maxLife: life,
				size:    (2 + em.rng.Float64()*4) * explosionSizeScale,
				gravity: -90 + em.rng.Float64()*60,
				colorStart: Color{
					jitter(baseColor[0]),
					jitter(baseColor[1]),
					jitter(baseColor[2]),
				},
				colorEnd: endColor,
			})
	}
}

// Update advances all particles and disposes the dead ones.
func (em *EffectsManager) Update(dt float64) {
	if dt <= 0 {
		return
	}

	dead := make([]*ecs.Entity, 0)

	for _, qr := range em.particlesView.Get() {
		p := qr.Components[em.particleComponent].(*particle)
		p.update(dt)

		if !p.alive() {
			dead = append(dead, qr.Entity)
		}
	}

	if len(dead) > 0 {
		em.manager.DisposeEntities(dead...)
	}
}

// Snapshot renders the current particles into draw primitives.
func (em *EffectsManager) Snapshot() []ParticleDot {
	dots := make([]ParticleDot, 0)

	for _, qr := range em.particlesView.Get() {
		p := qr.Components[em.particleComponent].(*particle)

		intensity := 1 - p.t()
		intensity *= intensity

		dots = append(dots, ParticleDot{
			X:         p.x,
			Y:         p.y,
			R:         p.radius(),
			Color:     p.color(),
			Intensity: intensity,
		})
	}

	return dots
}

// Count returns the number of live particles.
func (em *EffectsManager) Count() int {
	return len(em.particlesView.Get())
}
