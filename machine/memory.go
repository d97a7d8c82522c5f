package machine

import "github.com/pkg/errors"

const (
	MemorySize      = 0x1000                      // Size of addressable memory.
	ProgramAddress  = 0x200                       // Address at which programs are loaded.
	ProgramCapacity = MemorySize - ProgramAddress // Largest program that fits in memory.
	StackCapacity   = 16                          // Maximum call depth.
	KeyCount        = 16                          // Number of keypad keys.
)

// Memory defines the system's memory bank.
type Memory [MemorySize]byte

// U16 returns the big-endian 16-bit value at the given address.
func (m *Memory) U16(addr int) int {
	return int(m[addr])<<8 | int(m[addr+1])
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m *Memory) Write(addr int, p []byte) {
	copy(m[addr:], p)
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m *Memory) Read(addr int, p []byte) {
	copy(p, m[addr:])
}

// checkRange returns ErrAddressRange if [addr, addr+size) does not fit in memory.
func checkRange(addr, size int) error {
	if addr < 0 || size < 0 || addr+size > MemorySize {
		return errors.Wrapf(ErrAddressRange, "%d bytes at %04x", size, addr)
	}
	return nil
}
