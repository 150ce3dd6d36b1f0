package pipeline

import (
	"time"

	"github.com/cenkalti/backoff"

	"github.com/zenjiro/pose-game/camera"
	"github.com/zenjiro/pose-game/common/metrics"
	"github.com/zenjiro/pose-game/common/utils"
)

const captureFailureThreshold = 30

// CaptureWorker continuously reads frames from a camera device and
// publishes the latest one. Worker objects are disposable: camera switching
// stops one worker and starts a fresh one on the same slot.
//
// Read failures are never fatal; a persistently failing camera simply
// starves the pipeline until it is switched or the process exits.
type CaptureWorker struct {
	device camera.Device
	out    *FrameSlot

	FramesRead *metrics.Counter

	consecutiveFailures int
	failureBackoff      backoff.BackOff

	stop chan struct{}
	done chan struct{}
}

func NewCaptureWorker(device camera.Device, out *FrameSlot) *CaptureWorker {
	return &CaptureWorker{
		device:         device,
		out:            out,
		FramesRead:     metrics.NewCounter(),
		failureBackoff: backoff.NewConstantBackOff(20 * time.Millisecond),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

func (w *CaptureWorker) Start() {
	go w.run()
}

func (w *CaptureWorker) run() {
	defer close(w.done)

	for {
		select {
		case <-w.stop:
			return
		default:
		}

		frame, ok := w.device.Read()
		if !ok || frame == nil {
			w.consecutiveFailures++
			if w.consecutiveFailures > captureFailureThreshold {
				// Give the device a short break.
				time.Sleep(w.failureBackoff.NextBackOff())
			}
			continue
		}

		w.consecutiveFailures = 0
		w.failureBackoff.Reset()
		w.out.Update(frame)
		w.FramesRead.Add(1)
	}
}

// Stop signals the worker and waits up to timeout for it to exit. A worker
// that fails to observe the signal in time is abandoned.
func (w *CaptureWorker) Stop(timeout time.Duration) bool {
	close(w.stop)

	select {
	case <-w.done:
		return true
	case <-time.After(timeout):
		utils.Debug("pipeline", "capture worker did not stop in time; abandoning it")
		return false
	}
}
