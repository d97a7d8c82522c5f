package machine

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// execute applies the effects of the given instruction.
// The program counter already points past it.
func (m *Machine) execute(instr *arch.Instruction) error {
	v := m.registers[:]
	x := instr.X
	y := instr.Y
	kk := instr.KK
	nnn := instr.NNN

	switch instr.Opcode {
	case arch.NOP:
		/* nop */
	case arch.CLS:
		m.display.clear()
	case arch.RET:
		addr, err := m.pop()
		if err != nil {
			return err
		}
		m.pc = addr
	case arch.JP:
		m.pc = nnn
	case arch.CALL:
		if err := m.push(m.pc); err != nil {
			return err
		}
		m.pc = nnn
	case arch.JPV0:
		m.pc = nnn + uint16(v[0])

	case arch.SEB:
		m.skipIf(v[x] == kk)
	case arch.SNEB:
		m.skipIf(v[x] != kk)
	case arch.SE:
		m.skipIf(v[x] == v[y])
	case arch.SNE:
		m.skipIf(v[x] != v[y])

	case arch.LDB:
		v[x] = kk
	case arch.ADDB:
		v[x] += kk
	case arch.LD:
		v[x] = v[y]
	case arch.OR:
		v[x] |= v[y]
	case arch.AND:
		v[x] &= v[y]
	case arch.XOR:
		v[x] ^= v[y]
	case arch.ADD:
		sum := int(v[x]) + int(v[y])
		v[x] = byte(sum)
		v[arch.FlagRegister] = _bool(sum > 0xff)
	case arch.SUB:
		a, b := v[x], v[y]
		v[x] = a - b
		v[arch.FlagRegister] = _bool(a >= b)
	case arch.SUBN:
		a, b := v[x], v[y]
		v[x] = b - a
		v[arch.FlagRegister] = _bool(b >= a)
	case arch.SHR:
		a := v[x]
		v[x] = a >> 1
		v[arch.FlagRegister] = a & 1
	case arch.SHL:
		a := v[x]
		v[x] = a << 1
		v[arch.FlagRegister] = a >> 7
	case arch.RND:
		v[x] = byte(m.rng.Intn(0x100)) & kk

	case arch.LDI:
		m.index = nnn
	case arch.ADDI:
		m.index += uint16(v[x])
	case arch.LDF:
		m.index = uint16(v[x]) * GlyphSize

	case arch.DRW:
		collision, err := m.draw(int(v[x]), int(v[y]), instr.N)
		if err != nil {
			return err
		}
		v[arch.FlagRegister] = _bool(collision)

	case arch.SKP, arch.SKNP:
		key := int(v[x])
		if key >= KeyCount {
			return errors.Wrapf(ErrKeyRange, "%s holds key %d", arch.RegisterName(x), key)
		}
		m.skipIf(m.keys[key] == (instr.Opcode == arch.SKP))
	case arch.LDK:
		key := -1
		for i, down := range m.keys {
			if down {
				key = i
			}
		}
		if key < 0 {
			m.pc -= arch.InstructionSize
		} else {
			v[x] = byte(key)
		}

	case arch.LDVDT:
		v[x] = m.delay
	case arch.LDDT:
		m.delay = v[x]
	case arch.LDST:
		m.sound = v[x]

	case arch.LDBCD:
		addr := int(m.index)
		if err := checkRange(addr, 3); err != nil {
			return err
		}
		n := v[x]
		m.memory[addr+0] = n / 100
		m.memory[addr+1] = (n % 100) / 10
		m.memory[addr+2] = n % 10
	case arch.STM:
		addr := int(m.index)
		if err := checkRange(addr, x+1); err != nil {
			return err
		}
		m.memory.Write(addr, v[:x+1])
	case arch.LDM:
		addr := int(m.index)
		if err := checkRange(addr, x+1); err != nil {
			return err
		}
		m.memory.Read(addr, v[:x+1])

	default:
		return errors.Wrapf(ErrUnknownOpcode, "opcode %d", instr.Opcode)
	}

	return nil
}

// skipIf skips the next instruction if cond is true.
func (m *Machine) skipIf(cond bool) {
	if cond {
		m.pc += arch.InstructionSize
	}
}

// draw XORs the height-byte sprite at I onto the display at x, y.
// Returns true if any lit pixel was turned off.
func (m *Machine) draw(x, y, height int) (bool, error) {
	addr := int(m.index)
	if err := checkRange(addr, height); err != nil {
		return false, err
	}

	var collision bool

	for row := 0; row < height; row++ {
		bits := m.memory[addr+row]

		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}

			if m.display.toggle(x+col, y+row) {
				collision = true
			}
		}
	}

	return collision, nil
}

func _bool(v bool) byte {
	if v {
		return 1
	}
	return 0
}
