package camera

// Device is an opened camera handle. It is owned exclusively by one capture
// worker at a time; Read failures are transient, Release returns the device
// to the OS.
type Device interface {
	// Read grabs one frame. ok is false on a transient read failure.
	Read() (frame *Frame, ok bool)
	Release()
}

// Provider opens the camera at the given index with a requested resolution.
type Provider func(index int, width, height int) (Device, error)
