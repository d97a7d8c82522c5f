package beeper

import (
	"math"
	"sync/atomic"
)

// Wave is an endless square wave encoded as signed 16 bit little endian
// mono samples. It produces silence while inactive.
type Wave struct {
	active    atomic.Bool
	period    int // Samples per full cycle.
	position  int
	amplitude int16
}

// NewWave creates a square wave of the given frequency. Volume is
// clamped to [0, 1].
func NewWave(sampleRate, frequency int, volume float64) *Wave {
	period := 2
	if frequency > 0 && sampleRate/frequency > period {
		period = sampleRate / frequency
	}

	volume = math.Max(0, math.Min(1, volume))

	return &Wave{
		period:    period,
		amplitude: int16(volume * math.MaxInt16),
	}
}

// SetActive turns the tone on or off.
func (w *Wave) SetActive(v bool) {
	w.active.Store(v)
}

// Active returns true if the tone is on.
func (w *Wave) Active() bool {
	return w.active.Load()
}

// Read fills p with whole samples. It never fails.
func (w *Wave) Read(p []byte) (int, error) {
	n := len(p) &^ 1

	if !w.active.Load() {
		clear(p[:n])
		w.position = 0
		return n, nil
	}

	for i := 0; i < n; i += 2 {
		s := w.amplitude
		if w.position >= w.period/2 {
			s = -s
		}

		p[i] = byte(uint16(s))
		p[i+1] = byte(uint16(s) >> 8)

		w.position++
		if w.position >= w.period {
			w.position = 0
		}
	}

	return n, nil
}
