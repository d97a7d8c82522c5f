package devices

import "github.com/hexaflex/chip8/machine"

// Machine defines the part of the virtual machine peripherals interact with.
type Machine interface {
	// SetKey marks a keypad key as held down or released.
	SetKey(key int, pressed bool) error

	// Framebuffer returns a copy of the display contents.
	Framebuffer() machine.Framebuffer

	// SoundActive returns true while the sound timer is running.
	SoundActive() bool
}

var _ Machine = (*machine.Machine)(nil)
