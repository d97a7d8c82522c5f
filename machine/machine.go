// Package machine implements the CHIP-8 virtual machine.
package machine

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*arch.Instruction)

// Machine holds all emulation state.
type Machine struct {
	memory    Memory                   // System memory, font included.
	registers [arch.RegisterCount]byte // V0-VF.
	stack     [StackCapacity]uint16    // Return addresses.
	sp        int                      // Number of entries on the stack.
	pc        uint16                   // Address of the next instruction.
	index     uint16                   // I register.
	delay     byte                     // Delay timer.
	sound     byte                     // Sound timer.
	display   Framebuffer              // Display contents.
	keys      [KeyCount]bool           // Keys currently held down.
	instr     arch.Instruction         // Last decoded instruction.
	rng       *rand.Rand               // Random number generator.
	trace     TraceFunc                // Handler for debug trace output.
	fault     error                    // Set once a fatal error has occurred.
}

// New creates a new machine in its initial state.
// Optionally with the given debug trace handler.
func New(trace TraceFunc) *Machine {
	if trace == nil {
		trace = func(*arch.Instruction) { /* nop */ }
	}

	m := &Machine{
		trace: trace,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	m.Reset()
	return m
}

// Reset returns the machine to its initial state.
// This clears a halt caused by an earlier error.
func (m *Machine) Reset() {
	m.memory = Memory{}
	m.memory.Write(0, font[:])
	m.registers = [arch.RegisterCount]byte{}
	m.stack = [StackCapacity]uint16{}
	m.sp = 0
	m.pc = ProgramAddress
	m.index = 0
	m.delay = 0
	m.sound = 0
	m.display.clear()
	m.keys = [KeyCount]bool{}
	m.instr = arch.Instruction{}
	m.fault = nil
}

// Seed reseeds the random number generator used by RND.
func (m *Machine) Seed(seed int64) {
	m.rng = rand.New(rand.NewSource(seed))
}

// Load copies the given program into memory at ProgramAddress.
// Returns an error if it does not fit. Memory is left untouched in that case.
func (m *Machine) Load(program []byte) error {
	if len(program) > ProgramCapacity {
		return errors.Wrapf(ErrProgramTooLarge, "%d bytes exceeds capacity of %d", len(program), ProgramCapacity)
	}

	m.memory.Write(ProgramAddress, program)
	return nil
}

// Step performs a single fetch, decode and execute cycle.
//
// Any returned error is fatal: the machine halts and keeps returning
// the same error until Reset is called.
func (m *Machine) Step() error {
	if m.fault != nil {
		return m.fault
	}

	addr := m.pc

	word, err := m.fetch()
	if err != nil {
		return m.halt(err)
	}

	instr, ok := arch.Decode(addr, word)
	if !ok {
		return m.halt(NewError(addr, word, ErrUnknownOpcode, "no instruction matches %04x", word))
	}

	m.instr = instr
	m.trace(&m.instr)

	if err := m.execute(&m.instr); err != nil {
		return m.halt(&Error{Addr: addr, Word: word, Err: err})
	}

	return nil
}

// Tick decrements the delay and sound timers by one, stopping at zero.
// Returns true if the sound timer reached zero on this tick, meaning the
// tone ends now.
func (m *Machine) Tick() bool {
	if m.delay > 0 {
		m.delay--
	}

	expired := m.sound == 1
	if m.sound > 0 {
		m.sound--
	}

	return expired
}

// SoundActive returns true while the sound timer is running.
func (m *Machine) SoundActive() bool {
	return m.sound > 0
}

// SetKey marks the given key as held down or released.
func (m *Machine) SetKey(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return errors.Wrapf(ErrKeyRange, "key %d", key)
	}
	m.keys[key] = pressed
	return nil
}

// Key returns true if the given key is held down.
func (m *Machine) Key(key int) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return m.keys[key]
}

// Framebuffer returns a copy of the current display contents.
func (m *Machine) Framebuffer() Framebuffer {
	return m.display
}

// PC returns the address of the next instruction.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Register returns the value of register Vn.
func (m *Machine) Register(n int) byte {
	return m.registers[n&0xf]
}

// Halted returns the error which halted the machine, if any.
func (m *Machine) Halted() error {
	return m.fault
}

// fetch reads the instruction word at the program counter and advances it.
func (m *Machine) fetch() (uint16, error) {
	pc := m.pc
	if err := checkRange(int(pc), arch.InstructionSize); err != nil {
		return 0, &Error{Addr: pc, Err: errors.Wrapf(err, "fetch")}
	}

	m.pc += arch.InstructionSize
	return uint16(m.memory.U16(int(pc))), nil
}

// halt stops the machine with the given error.
func (m *Machine) halt(err error) error {
	m.fault = err
	return err
}

// push pushes the given return address onto the call stack.
func (m *Machine) push(addr uint16) error {
	if m.sp >= StackCapacity {
		return errors.Wrapf(ErrStackOverflow, "call depth %d", m.sp)
	}
	m.stack[m.sp] = addr
	m.sp++
	return nil
}

// pop returns the top return address from the call stack.
func (m *Machine) pop() (uint16, error) {
	if m.sp <= 0 {
		return 0, errors.Wrapf(ErrStackUnderflow, "return with empty stack")
	}
	m.sp--
	return m.stack[m.sp], nil
}
