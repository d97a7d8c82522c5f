package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/beeper"
	"github.com/hexaflex/chip8/devices/display"
	"github.com/hexaflex/chip8/devices/keypad"
	"github.com/hexaflex/chip8/machine"
)

// FrameRate is the rate at which the display is redrawn.
const FrameRate = 60

// App defines application context.
type App struct {
	config       *Config            // Application configuration.
	window       *glfw.Window       // OpenGL/GLFW context.
	controller   *MachineController // Machine with program to be run.
	display      *display.Device    // Display peripheral.
	titleUpdated time.Time          // Value used to periodically update window title.
	lastRendered time.Time          // Last time a frame was rendered.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.display = display.New(uint32(config.Foreground), uint32(config.Background))
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	devs := []devices.Device{a.display, keypad.New(a.window)}
	if !a.config.Mute {
		devs = append(devs, beeper.New())
	}

	a.controller = NewMachineController(a.config.Frequency, a.config.Seed, a.printTrace, devs...)
	if err := a.controller.Startup(); err != nil {
		return errors.Wrapf(err, "device startup failed")
	}

	log.Println(Version())
	printHelp()

	if err := a.loadProgram(); err != nil {
		return err
	}

	if !a.config.Debug {
		a.controller.Start()
	}

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	glfw.PollEvents()

	if err := a.controller.Update(); err != nil {
		log.Println(err)
	}

	// Periodically render display contents.
	if time.Since(a.lastRendered) >= time.Second/FrameRate {
		a.lastRendered = time.Now()

		width, height := a.window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.Clear(gl.COLOR_BUFFER_BIT)
		a.display.Draw()
		a.window.SwapBuffers()
	}

	// Periodically update the window title to show the current instruction rate.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		freq := prettyFrequency(a.controller.Frequency())
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", AppName, AppVersion, freq))
	}

	// The clocks account for time spent here.
	time.Sleep(time.Millisecond)
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	if a.controller != nil {
		a.controller.Stop()
		if err := a.controller.Shutdown(); err != nil {
			log.Println(err)
		}
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF2:
		a.config.Debug = !a.config.Debug
		a.config.PrintTrace = a.config.Debug
		if a.config.Debug {
			a.controller.Stop()
		}
		log.Println("debug mode:", a.config.Debug)
	case glfw.KeyF3:
		log.Printf("machine state:\n%s", a.controller.State())
	case glfw.KeyF5:
		err = a.loadProgram()
	case glfw.KeyF6:
		a.controller.ToggleRun()
	case glfw.KeyF7:
		err = a.controller.Step()
	case glfw.KeyF8:
		a.config.PrintTrace = !a.config.PrintTrace
	}

	if err != nil {
		log.Println(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := machine.DisplayWidth * a.config.ScaleFactor
	height := machine.DisplayHeight * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the current program from disk and resets the machine.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.ROM)

	program, err := os.ReadFile(a.config.ROM)
	if err != nil {
		return errors.Wrapf(err, "failed to read program")
	}

	return a.controller.Load(program)
}

// printTrace prints instruction trace data. This can be toggled
// on off through a.config.PrintTrace.
func (a *App) printTrace(i *arch.Instruction) {
	if !a.config.PrintTrace {
		return
	}

	fmt.Printf("%04x  %04x  %s\n", i.Addr, i.Word, i)
}

// printHelp writes a short overview of supported shortcut keys to stdout.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F2       Enable/Disable debug mode.\n")
	sb.WriteString(" F3       Print the machine state.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the machine.\n")
	sb.WriteString(" F6       Start/Stop program execution.\n")
	sb.WriteString(" F7       Perform a single execution step.\n")
	sb.WriteString(" F8       Enable/Disable trace output.\n")
	sb.WriteString("keypad:\n")
	sb.WriteString(" 1 2 3 4\n")
	sb.WriteString(" Q W E R\n")
	sb.WriteString(" A S D F\n")
	sb.WriteString(" Z X C V")
	log.Println(sb.String())
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
