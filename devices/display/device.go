// Package display renders the machine framebuffer through OpenGL.
package display

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/machine"
)

// Pixel values in the texture uploaded to the GPU.
const (
	pixelOff = 0x00
	pixelOn  = 0xff
)

// Device defines all internal doodads for the display.
type Device struct {
	pixels      [machine.DisplayWidth * machine.DisplayHeight]byte
	palette     [2 * 4]float32 // Background and foreground colors as RGBA.
	shader      uint32
	vao         uint32
	vbo         uint32
	tex         uint32
	dirty       bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new display drawing lit pixels in fg and unlit pixels
// in bg. Both are 0xRRGGBB values.
func New(fg, bg uint32) *Device {
	var d Device
	rgb2f(bg, d.palette[0:4])
	rgb2f(fg, d.palette[4:8])
	return &d
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Vendor, 0x0001)
}

// Startup initializes device resources.
// It requires a current OpenGL context.
func (d *Device) Startup() error {
	var err error

	d.shader, err = linkProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	gl.Uniform1i(gl.GetUniformLocation(d.shader, glStr("pixels")), 0)
	gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("palette")), 2, &d.palette[0])

	d.tex = newTexture(machine.DisplayWidth, machine.DisplayHeight)
	d.dirty = true
	d.initialized = true
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Sync copies the machine framebuffer into the display.
func (d *Device) Sync(m devices.Machine) error {
	fb := m.Framebuffer()

	for i, lit := range fb {
		v := byte(pixelOff)
		if lit {
			v = pixelOn
		}

		if d.pixels[i] != v {
			d.pixels[i] = v
			d.dirty = true
		}
	}

	return nil
}

// Draw renders the display contents.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	if d.dirty {
		updateTexture(d.tex, machine.DisplayWidth, machine.DisplayHeight, d.pixels[:])
		d.dirty = false
	}

	gl.UseProgram(d.shader)
	gl.BindVertexArray(d.vao)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)

	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// rgb2f sets p to the RGBA float representation of the 0xRRGGBB color in n.
func rgb2f(n uint32, p []float32) {
	p[0] = float32((n>>16)&0xff) / 255
	p[1] = float32((n>>8)&0xff) / 255
	p[2] = float32(n&0xff) / 255
	p[3] = 1
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
