// Package pose defines the detection types exchanged between the inference
// worker and the game, and the detector capability the game consumes.
// Landmark extraction itself lives behind the Detector interface.
package pose

import "github.com/zenjiro/pose-game/camera"

// Circle is a detection's bounding region in frame pixel coordinates.
type Circle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// Person groups the tracked body parts of one detected person.
// A missing limb is an empty list, never an absent key; each list holds
// 0-2 entries depending on occlusion.
type Person struct {
	Head  []Circle `json:"head"`
	Hands []Circle `json:"hands"`
	Feet  []Circle `json:"feet"`
}

// HeadX returns the horizontal position of the first head circle.
func (p Person) HeadX() (float64, bool) {
	if len(p.Head) == 0 {
		return 0, false
	}

	return p.Head[0].X, true
}

// Detector turns an image into zero or more detected people. Implementations
// must tolerate repeated calls from a single dedicated goroutine; they are
// not required to be safe for concurrent calls.
type Detector interface {
	Process(frame *camera.Frame) []Person
}
