package pipeline

import (
	"time"

	"github.com/zenjiro/pose-game/camera"
	"github.com/zenjiro/pose-game/common/metrics"
	"github.com/zenjiro/pose-game/pose"
)

// InferenceConfig tunes the inference worker.
type InferenceConfig struct {
	// InferSize downscales the frame so its shorter side matches this value
	// before inference, when that is actually smaller. Zero disables it.
	InferSize int
	// Duplicate mirrors the center band of the frame to both halves,
	// simulating two players from one camera.
	Duplicate bool
}

// InferenceWorker consumes the latest frames, runs pose detection and
// publishes the latest result. Frames already processed are skipped by
// sequence number, bounding CPU use; frame skipping under load is expected
// and tolerated.
type InferenceWorker struct {
	detector pose.Detector
	in       *FrameSlot
	out      *PoseSlot
	config   InferenceConfig

	PosesComputed *metrics.Counter

	lastSeq uint64

	stop chan struct{}
	done chan struct{}
}

func NewInferenceWorker(detector pose.Detector, in *FrameSlot, out *PoseSlot, config InferenceConfig) *InferenceWorker {
	return &InferenceWorker{
		detector:      detector,
		in:            in,
		out:           out,
		config:        config,
		PosesComputed: metrics.NewCounter(),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

func (w *InferenceWorker) Start() {
	go w.run()
}

func (w *InferenceWorker) run() {
	defer close(w.done)

	for {
		select {
		case <-w.stop:
			return
		default:
		}

		frame, seq, _ := w.in.Get()
		if frame == nil || seq == w.lastSeq {
			time.Sleep(time.Millisecond)
			continue
		}

		people := w.processFrame(frame)

		w.out.Update(people, seq)
		w.lastSeq = seq
		w.PosesComputed.Add(1)
	}
}

func (w *InferenceWorker) processFrame(frame *camera.Frame) []pose.Person {
	work := frame
	if w.config.Duplicate {
		work = camera.DuplicateCenter(work)
	}

	infer := work
	scaleBackX := 1.0
	scaleBackY := 1.0

	if w.config.InferSize > 0 && w.config.InferSize < work.ShortSide() {
		var newW, newH int
		if work.Width <= work.Height {
			newW = w.config.InferSize
			newH = work.Height * w.config.InferSize / work.Width
		} else {
			newH = w.config.InferSize
			newW = work.Width * w.config.InferSize / work.Height
		}

		infer = camera.Resize(work, newW, newH)
		scaleBackX = float64(work.Width) / float64(newW)
		scaleBackY = float64(work.Height) / float64(newH)
	}

	people := w.detector.Process(infer)

	if scaleBackX != 1.0 || scaleBackY != 1.0 {
		people = rescalePeople(people, scaleBackX, scaleBackY)
	}

	return people
}

// rescalePeople maps circles detected on the downscaled frame back to
// working-frame coordinates. Radius uses the average of the two axis
// factors; the minor eccentricity error is an accepted trade-off.
func rescalePeople(people []pose.Person, sx, sy float64) []pose.Person {
	sr := (sx + sy) * 0.5

	rescale := func(circles []pose.Circle) []pose.Circle {
		out := make([]pose.Circle, len(circles))
		for i, c := range circles {
			out[i] = pose.Circle{X: c.X * sx, Y: c.Y * sy, R: c.R * sr}
		}
		return out
	}

	out := make([]pose.Person, len(people))
	for i, p := range people {
		out[i] = pose.Person{
			Head:  rescale(p.Head),
			Hands: rescale(p.Hands),
			Feet:  rescale(p.Feet),
		}
	}

	return out
}

// Stop signals the worker and waits up to timeout for it to exit.
func (w *InferenceWorker) Stop(timeout time.Duration) bool {
	close(w.stop)

	select {
	case <-w.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
