package camera

// Frame is one captured image, packed BGR, 3 bytes per pixel, row-major.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// ShortSide returns the smaller of the frame's dimensions.
func (f *Frame) ShortSide() int {
	if f.Width < f.Height {
		return f.Width
	}

	return f.Height
}

// DuplicateCenter copies the center vertical band to both halves of a new
// frame of the same size, simulating two players from one camera.
func DuplicateCenter(f *Frame) *Frame {
	left := f.Width / 4
	right := left + f.Width/2

	out := NewFrame((right-left)*2, f.Height)

	bandBytes := (right - left) * 3
	for y := 0; y < f.Height; y++ {
		src := f.Pix[(y*f.Width+left)*3 : (y*f.Width+right)*3]
		dst := out.Pix[y*out.Width*3:]
		copy(dst[:bandBytes], src)
		copy(dst[bandBytes:bandBytes*2], src)
	}

	return out
}

// Resize produces a nearest-neighbour rescale of f. Inference input only;
// the working frame handed to the renderer is never resized.
func Resize(f *Frame, width, height int) *Frame {
	out := NewFrame(width, height)

	for y := 0; y < height; y++ {
		sy := y * f.Height / height
		for x := 0; x < width; x++ {
			sx := x * f.Width / width
			si := (sy*f.Width + sx) * 3
			di := (y*width + x) * 3
			out.Pix[di] = f.Pix[si]
			out.Pix[di+1] = f.Pix[si+1]
			out.Pix[di+2] = f.Pix[si+2]
		}
	}

	return out
}
