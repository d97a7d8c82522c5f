package main

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/machine"
)

func TestControllerStep(t *testing.T) {
	c := NewMachineController(600, 1, nil)

	// LD V3, 0x42; JP 0x200
	if err := c.Load([]byte{0x63, 0x42, 0x12, 0x00}); err != nil {
		t.Fatal(err)
	}

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}

	state := c.State()
	if state.Registers[3] != 0x42 || state.PC != 0x202 {
		t.Fatalf("unexpected state:\n%s", state)
	}
}

func TestControllerHalts(t *testing.T) {
	c := NewMachineController(600, 1, nil)
	c.Load([]byte{0x00, 0xee}) // RET with an empty stack.
	c.Start()

	err := c.Step()
	if !errors.Is(err, machine.ErrStackUnderflow) {
		t.Fatalf("expected ErrStackUnderflow; have %v", err)
	}

	if c.Running() {
		t.Fatal("expected the controller to stop after a fault")
	}

	if c.Frequency() != 0 {
		t.Fatal("expected zero frequency while stopped")
	}
}

func TestControllerLoadTooLarge(t *testing.T) {
	c := NewMachineController(600, 1, nil)

	err := c.Load(make([]byte, machine.ProgramCapacity+1))
	if !errors.Is(err, machine.ErrProgramTooLarge) {
		t.Fatalf("expected ErrProgramTooLarge; have %v", err)
	}
}

func TestControllerToggleRun(t *testing.T) {
	c := NewMachineController(600, 1, nil)

	c.ToggleRun()
	if !c.Running() {
		t.Fatal("expected running")
	}

	c.ToggleRun()
	if c.Running() {
		t.Fatal("expected paused")
	}
}

func TestControllerSyncsDevices(t *testing.T) {
	dev := &syncDevice{}
	c := NewMachineController(600, 1, nil, dev)

	if err := c.Startup(); err != nil {
		t.Fatal(err)
	}

	// CLS; DRW V0, V0, 1 draws the top row of glyph 0.
	c.Load([]byte{0x00, 0xe0, 0xd0, 0x01})
	c.Step()
	c.Step()

	if err := c.Update(); err != nil {
		t.Fatal(err)
	}

	if dev.lit != 4 {
		t.Fatalf("want 4 lit pixels, have %d", dev.lit)
	}

	if err := c.Shutdown(); err != nil {
		t.Fatal(err)
	}

	if !dev.started || !dev.stopped {
		t.Fatal("expected startup and shutdown to reach the device")
	}
}

type syncDevice struct {
	lit     int
	started bool
	stopped bool
}

func (d *syncDevice) ID() devices.ID {
	return devices.NewID(devices.Vendor, 0xff)
}

func (d *syncDevice) Startup() error {
	d.started = true
	return nil
}

func (d *syncDevice) Shutdown() error {
	d.stopped = true
	return nil
}

func (d *syncDevice) Sync(m devices.Machine) error {
	fb := m.Framebuffer()
	d.lit = fb.Lit()
	return nil
}
