// Package keypad maps the host keyboard and an optional gamepad onto
// the 16 key hex keypad.
package keypad

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/machine"
)

// Keyboard maps each keypad key to a host key. The layout mirrors the
// COSMAC VIP hex keypad on the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var Keyboard = [machine.KeyCount]glfw.Key{
	0x0: glfw.KeyX,
	0x1: glfw.Key1,
	0x2: glfw.Key2,
	0x3: glfw.Key3,
	0x4: glfw.KeyQ,
	0x5: glfw.KeyW,
	0x6: glfw.KeyE,
	0x7: glfw.KeyA,
	0x8: glfw.KeyS,
	0x9: glfw.KeyD,
	0xa: glfw.KeyZ,
	0xb: glfw.KeyC,
	0xc: glfw.Key4,
	0xd: glfw.KeyR,
	0xe: glfw.KeyF,
	0xf: glfw.KeyV,
}

// Gamepad maps gamepad buttons to keypad keys. Most games use
// 2/4/6/8 for movement and 5 for action.
var Gamepad = map[glfw.GamepadButton]int{
	glfw.ButtonDpadUp:    0x2,
	glfw.ButtonDpadDown:  0x8,
	glfw.ButtonDpadLeft:  0x4,
	glfw.ButtonDpadRight: 0x6,
	glfw.ButtonA:         0x5,
	glfw.ButtonB:         0x0,
	glfw.ButtonX:         0xa,
	glfw.ButtonY:         0xb,
	glfw.ButtonStart:     0xf,
	glfw.ButtonBack:      0xe,
}

// Device polls host input and forwards it to the machine keypad.
type Device struct {
	window  *glfw.Window
	joy     glfw.Joystick
	gamepad bool
	state   [machine.KeyCount]bool
}

var _ devices.Device = &Device{}

// New creates a new keypad reading keyboard input from the given window.
func New(window *glfw.Window) *Device {
	return &Device{window: window}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Vendor, 0x0002)
}

// Startup detects any connected gamepad.
func (d *Device) Startup() error {
	glfw.SetJoystickCallback(d.configure)

	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			d.configure(joy, glfw.Connected)
			break
		}
	}

	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	glfw.SetJoystickCallback(nil)
	return nil
}

// Sync samples the keyboard and gamepad and updates the machine keypad.
func (d *Device) Sync(m devices.Machine) error {
	var state [machine.KeyCount]bool

	if d.window != nil {
		for key, hk := range Keyboard {
			state[key] = d.window.GetKey(hk) == glfw.Press
		}
	}

	if d.gamepad {
		if gs := d.joy.GetGamepadState(); gs != nil {
			merge(&state, gs.Buttons[:])
		}
	}

	for key, pressed := range state {
		if pressed == d.state[key] {
			continue
		}

		if err := m.SetKey(key, pressed); err != nil {
			return err
		}

		d.state[key] = pressed
	}

	return nil
}

// merge marks keys as held for every pressed gamepad button.
func merge(state *[machine.KeyCount]bool, buttons []glfw.Action) {
	for btn, action := range buttons {
		key, ok := Gamepad[glfw.GamepadButton(btn)]
		if ok && action == glfw.Press {
			state[key] = true
		}
	}
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (d *Device) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	if event != glfw.Connected && joy != d.joy {
		return
	}

	d.gamepad = event == glfw.Connected && joy.IsGamepad()
	d.joy = joy

	if d.gamepad {
		log.Println(d.ID(), "gamepad connected:", joy.GetGamepadName())
	} else {
		log.Println(d.ID(), "gamepad disconnected")
	}
}
