package machine

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Framebuffer holds the monochrome display contents, row-major.
// A true cell is a lit pixel.
type Framebuffer [DisplayWidth * DisplayHeight]bool

// At returns true if the pixel at x, y is lit.
// Coordinates wrap around the display edges.
func (fb *Framebuffer) At(x, y int) bool {
	return fb[offset(x, y)]
}

// Lit returns the number of lit pixels.
func (fb *Framebuffer) Lit() int {
	var n int
	for _, v := range fb {
		if v {
			n++
		}
	}
	return n
}

// clear turns all pixels off.
func (fb *Framebuffer) clear() {
	*fb = Framebuffer{}
}

// toggle flips the pixel at x, y and returns true if it was lit before.
func (fb *Framebuffer) toggle(x, y int) bool {
	i := offset(x, y)
	was := fb[i]
	fb[i] = !was
	return was
}

func offset(x, y int) int {
	x %= DisplayWidth
	y %= DisplayHeight
	if x < 0 {
		x += DisplayWidth
	}
	if y < 0 {
		y += DisplayHeight
	}
	return y*DisplayWidth + x
}
