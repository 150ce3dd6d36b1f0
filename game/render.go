package game

import (
	"github.com/zenjiro/pose-game/camera"
)

// Tango-inspired palette for the on-screen display.
var (
	TangoYellow = Color{237, 212, 0}
	TangoBlue   = Color{52, 101, 164}
	TangoRed    = Color{204, 0, 0}
	TangoGreen  = Color{115, 210, 22}
	RockGray    = Color{80, 80, 80}
)

// Semantic aliases.
var (
	ColorOSDTitle = TangoYellow
	ColorOSDHint  = TangoGreen
	ColorPlayer0  = TangoBlue
	ColorPlayer1  = TangoRed
)

// TextAnchor is a placement hint for the renderer.
type TextAnchor string

const (
	AnchorTopLeft  TextAnchor = "top-left"
	AnchorTopRight TextAnchor = "top-right"
	AnchorCenter   TextAnchor = "center"
)

type RenderCircle struct {
	X, Y   float64
	R      float64
	Color  Color
	Filled bool
}

type RenderText struct {
	Text   string
	X, Y   float64
	Size   float64
	Color  Color
	Anchor TextAnchor
}

// RenderFrame is one tick's complete draw description. Emitting it has no
// gameplay side effects.
type RenderFrame struct {
	TickNum    int            `json:"tick"`
	Background *camera.Frame  `json:"-"`
	Circles    []RenderCircle `json:"circles"`
	Texts      []RenderText   `json:"texts"`
	Particles  []ParticleDot  `json:"particles"`
	Remaining  float64        `json:"remaining"`
	Scores     []int          `json:"scores"`
	Lives      []int          `json:"lives"`
	Started    bool           `json:"started"`
	Over       bool           `json:"over"`
}

// Renderer consumes draw primitives and a frame-buffer background. The game
// hands y coordinates already converted to the renderer's convention.
type Renderer interface {
	Render(frame *RenderFrame)
}

// FlipY converts every y coordinate of the frame in place between top-left
// and bottom-left origin conventions.
func (rf *RenderFrame) FlipY(height float64) {
	for i := range rf.Circles {
		rf.Circles[i].Y = height - rf.Circles[i].Y
	}
	for i := range rf.Texts {
		rf.Texts[i].Y = height - rf.Texts[i].Y
	}
	for i := range rf.Particles {
		rf.Particles[i].Y = height - rf.Particles[i].Y
	}
}
