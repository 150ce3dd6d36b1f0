package pipeline

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	bettererrors "github.com/xtuc/better-errors"

	"github.com/zenjiro/pose-game/camera"
	"github.com/zenjiro/pose-game/common/utils"
)

const (
	// releaseSettle gives the OS time to fully release a camera before it
	// is reopened, avoiding backend lock errors.
	releaseSettle = 150 * time.Millisecond
	joinTimeout   = 1 * time.Second
)

// CameraSupervisor owns the camera device handle and the capture worker
// lifecycle. The frame slot is long-lived and shared; workers are
// disposable and recreated on every device switch.
type CameraSupervisor struct {
	provider camera.Provider
	slot     *FrameSlot
	width    int
	height   int

	index  int
	device camera.Device
	worker *CaptureWorker
}

func NewCameraSupervisor(provider camera.Provider, slot *FrameSlot, width, height int) *CameraSupervisor {
	return &CameraSupervisor{
		provider: provider,
		slot:     slot,
		width:    width,
		height:   height,
	}
}

func (s *CameraSupervisor) Worker() *CaptureWorker {
	return s.worker
}

func (s *CameraSupervisor) CurrentIndex() int {
	return s.index
}

// Start opens the camera at the given index and starts a capture worker.
func (s *CameraSupervisor) Start(index int) error {
	device, err := s.provider(index, s.width, s.height)
	if err != nil {
		return errors.Wrap(err, "could not open camera "+strconv.Itoa(index))
	}

	s.index = index
	s.device = device
	s.worker = NewCaptureWorker(device, s.slot)
	s.worker.Start()

	return nil
}

// Switch cycles to another camera: stop the worker, join it, release the
// old device, wait for the OS to let go, open the new device and start a
// fresh worker on the same slot. On failure the previous camera is
// reopened; if that also fails there is no camera left and the error is
// fatal to the session.
func (s *CameraSupervisor) Switch(newIndex int) error {
	previousIndex := s.index

	s.worker.Stop(joinTimeout)
	s.device.Release()
	time.Sleep(releaseSettle)

	err := s.Start(newIndex)
	if err == nil {
		utils.DebugWith("pipeline", "switched camera", utils.Context{
			"from": previousIndex,
			"to":   newIndex,
		})
		return nil
	}

	utils.WarnWith(bettererrors.
		New("camera failed to open; falling back").
		SetContext("requested", strconv.Itoa(newIndex)).
		SetContext("fallback", strconv.Itoa(previousIndex)).
		With(bettererrors.NewFromErr(err)))

	fallbackErr := s.Start(previousIndex)
	if fallbackErr == nil {
		return nil
	}

	return bettererrors.
		New("no camera available").
		SetContext("requested", strconv.Itoa(newIndex)).
		SetContext("previous", strconv.Itoa(previousIndex)).
		With(bettererrors.NewFromErr(fallbackErr))
}

// TearDown stops the worker and releases the device.
func (s *CameraSupervisor) TearDown() {
	if s.worker != nil {
		s.worker.Stop(joinTimeout)
	}
	if s.device != nil {
		s.device.Release()
	}
}
