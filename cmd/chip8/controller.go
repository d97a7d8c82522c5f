package main

import (
	"github.com/hexaflex/chip8/clock"
	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/machine"
)

// TimerFrequency is the rate at which the delay and sound timers count down.
const TimerFrequency = 60

// MachineController controls the execution of a machine and keeps its
// peripherals in sync with it.
type MachineController struct {
	machine *machine.Machine
	devices devices.Map
	cpu     *clock.Clock // Paces instruction execution.
	timer   *clock.Clock // Paces the delay and sound timers.
	seed    int64
	running bool
}

// NewMachineController creates a new controller executing hz instructions
// per second.
func NewMachineController(hz int, seed int64, trace machine.TraceFunc, devs ...devices.Device) *MachineController {
	c := &MachineController{
		machine: machine.New(trace),
		cpu:     clock.New(hz),
		timer:   clock.New(TimerFrequency),
		seed:    seed,
	}

	for _, dev := range devs {
		c.devices.Connect(dev)
	}

	return c
}

// Running returns true if the machine is currently running.
func (c *MachineController) Running() bool {
	return c.running
}

// Frequency returns the current instruction rate in herz.
func (c *MachineController) Frequency() float64 {
	if c.running {
		return c.cpu.Frequency()
	}
	return 0
}

// ToggleRun starts or stops program execution.
func (c *MachineController) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *MachineController) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *MachineController) Stop() {
	c.setRunning(false)
}

// Step performs a single execution step. Execution stops if it fails.
func (c *MachineController) Step() error {
	err := c.machine.Step()
	if err != nil {
		c.setRunning(false)
	}
	return err
}

// Update runs all instructions and timer ticks that came due since the
// previous call, then syncs the peripherals.
func (c *MachineController) Update() error {
	if c.running {
		for n := c.cpu.Due(); n > 0; n-- {
			if err := c.Step(); err != nil {
				return err
			}
		}

		for n := c.timer.Due(); n > 0; n-- {
			c.machine.Tick()
		}
	}

	return c.devices.Sync(c.machine)
}

// Load resets the machine and loads the given program into it.
func (c *MachineController) Load(program []byte) error {
	c.machine.Reset()

	if c.seed != 0 {
		c.machine.Seed(c.seed)
	}

	if err := c.machine.Load(program); err != nil {
		return err
	}

	c.setRunning(c.running)
	return nil
}

// State returns a snapshot of the machine state.
func (c *MachineController) State() machine.State {
	return c.machine.State()
}

// Startup initializes the connected peripherals.
func (c *MachineController) Startup() error {
	return c.devices.Startup()
}

// Shutdown disposes of peripheral resources.
func (c *MachineController) Shutdown() error {
	return c.devices.Shutdown()
}

// setRunning determines if the machine is running or is paused.
func (c *MachineController) setRunning(v bool) {
	c.running = v
	c.cpu.Reset()
	c.timer.Reset()
}
