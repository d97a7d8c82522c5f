// Package beeper sounds a square wave while the machine's sound timer runs.
package beeper

import (
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
)

// Output format.
const (
	SampleRate = 44100
	Frequency  = 440
	Volume     = 0.2
)

// Device drives the host audio output.
type Device struct {
	mutex  sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	wave   *Wave
}

var _ devices.Device = &Device{}

// New creates a new, silent beeper.
func New() *Device {
	return &Device{
		wave: NewWave(SampleRate, Frequency, Volume),
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Vendor, 0x0003)
}

// Startup opens the audio device and starts streaming the wave.
// The wave is silent until Sync sees an active sound timer.
func (d *Device) Startup() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return errors.Wrapf(err, "failed to open audio device")
	}
	<-ready

	d.ctx = ctx
	d.player = ctx.NewPlayer(d.wave)
	d.player.Play()
	return nil
}

// Shutdown stops audio playback.
func (d *Device) Shutdown() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.player == nil {
		return nil
	}

	err := d.player.Close()
	d.player = nil
	return err
}

// Sync turns the tone on or off to match the machine's sound timer.
func (d *Device) Sync(m devices.Machine) error {
	d.wave.SetActive(m.SoundActive())
	return nil
}
