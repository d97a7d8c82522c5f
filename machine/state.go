package machine

import (
	"fmt"
	"strings"

	"github.com/hexaflex/chip8/arch"
)

// State is a snapshot of the machine's registers, timers and call stack.
type State struct {
	PC        uint16
	Index     uint16
	Registers [arch.RegisterCount]byte
	Stack     []uint16 // Return addresses, oldest first.
	Delay     byte
	Sound     byte
}

// State returns a snapshot of the current machine state.
func (m *Machine) State() State {
	stack := make([]uint16, m.sp)
	copy(stack, m.stack[:m.sp])

	return State{
		PC:        m.pc,
		Index:     m.index,
		Registers: m.registers,
		Stack:     stack,
		Delay:     m.delay,
		Sound:     m.sound,
	}
}

func (s State) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "PC %04x  I %04x  DT %02x  ST %02x  SP %d\n", s.PC, s.Index, s.Delay, s.Sound, len(s.Stack))

	for i, v := range s.Registers {
		fmt.Fprintf(&sb, "%s %02x", arch.RegisterName(i), v)
		if i%8 == 7 {
			sb.WriteString("\n")
		} else {
			sb.WriteString("  ")
		}
	}

	if len(s.Stack) > 0 {
		sb.WriteString("stack:")
		for _, addr := range s.Stack {
			fmt.Fprintf(&sb, " %04x", addr)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
