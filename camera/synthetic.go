package camera

import (
	"math"
	"time"
)

// SyntheticDevice generates moving-gradient frames at a fixed rate. It
// stands in for a real capture backend so the full pipeline can run
// without camera hardware.
type SyntheticDevice struct {
	width  int
	height int
	fps    int

	index    int
	start    time.Time
	released bool
}

func NewSyntheticDevice(index, width, height, fps int) *SyntheticDevice {
	return &SyntheticDevice{
		width:  width,
		height: height,
		fps:    fps,
		index:  index,
		start:  time.Now(),
	}
}

func (d *SyntheticDevice) Read() (*Frame, bool) {
	if d.released {
		return nil, false
	}

	time.Sleep(time.Second / time.Duration(d.fps))

	t := time.Since(d.start).Seconds()
	phase := math.Sin(t) * 0.5

	frame := NewFrame(d.width, d.height)
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			i := (y*d.width + x) * 3
			frame.Pix[i] = uint8((x + int(phase*float64(d.width))) * 255 / d.width)
			frame.Pix[i+1] = uint8(y * 255 / d.height)
			frame.Pix[i+2] = uint8(d.index * 85)
		}
	}

	return frame, true
}

func (d *SyntheticDevice) Release() {
	d.released = true
}

// SyntheticProvider opens synthetic devices for any index.
func SyntheticProvider(fps int) Provider {
	return func(index int, width, height int) (Device, error) {
		return NewSyntheticDevice(index, width, height, fps), nil
	}
}
