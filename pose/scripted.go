package pose

import (
	"math"
	"time"

	"github.com/zenjiro/pose-game/camera"
)

// ScriptedDetector fabricates one moving person from nothing. It stands in
// for a real pose backend so the pipeline and game can be exercised end to
// end without a model.
type ScriptedDetector struct {
	start time.Time
}

func NewScriptedDetector() *ScriptedDetector {
	return &ScriptedDetector{start: time.Now()}
}

func (d *ScriptedDetector) Process(frame *camera.Frame) []Person {
	t := time.Since(d.start).Seconds()

	w := float64(frame.Width)
	h := float64(frame.Height)

	headX := w/2 + math.Sin(t*0.7)*w*0.3
	headY := h * 0.25
	headR := h * 0.06

	// Raise one hand above the head periodically so the start gesture
	// eventually triggers.
	handY := headY + headR*2
	if math.Mod(t, 8) > 4 {
		handY = headY - headR*2
	}

	return []Person{
		{
			Head: []Circle{{X: headX, Y: headY, R: headR}},
			Hands: []Circle{
				{X: headX - headR*2, Y: handY, R: headR * 0.6},
				{X: headX + headR*2, Y: headY + headR*2, R: headR * 0.6},
			},
			Feet: []Circle{
				{X: headX - headR, Y: h * 0.9, R: headR * 0.7},
				{X: headX + headR, Y: h * 0.9, R: headR * 0.7},
			},
		},
	}
}
