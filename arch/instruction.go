package arch

import (
	"fmt"
	"strings"
)

// InstructionSize is the size of an encoded instruction in bytes.
const InstructionSize = 2

// Instruction defines decoded instruction data.
type Instruction struct {
	Addr   uint16 // Instruction address.
	Word   uint16 // Raw instruction word.
	Opcode Opcode // Decoded operation.
	X      int    // Register operand x (bits 8-11).
	Y      int    // Register operand y (bits 4-7).
	N      int    // 4-bit immediate (bits 0-3).
	KK     byte   // 8-bit immediate (bits 0-7).
	NNN    uint16 // 12-bit address (bits 0-11).
}

// Decode decodes the given instruction word, fetched from addr.
// Returns false if the word does not encode a known instruction.
func Decode(addr, word uint16) (Instruction, bool) {
	i := Instruction{
		Addr:   addr,
		Word:   word,
		Opcode: UNKNOWN,
		X:      int(word>>8) & 0xf,
		Y:      int(word>>4) & 0xf,
		N:      int(word) & 0xf,
		KK:     byte(word),
		NNN:    word & 0xfff,
	}

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x0000:
			i.Opcode = NOP
		case 0x00e0:
			i.Opcode = CLS
		case 0x00ee:
			i.Opcode = RET
		default:
			return i, false
		}
	case 0x1:
		i.Opcode = JP
	case 0x2:
		i.Opcode = CALL
	case 0x3:
		i.Opcode = SEB
	case 0x4:
		i.Opcode = SNEB
	case 0x5:
		if i.N != 0 {
			return i, false
		}
		i.Opcode = SE
	case 0x6:
		i.Opcode = LDB
	case 0x7:
		i.Opcode = ADDB
	case 0x8:
		switch i.N {
		case 0x0:
			i.Opcode = LD
		case 0x1:
			i.Opcode = OR
		case 0x2:
			i.Opcode = AND
		case 0x3:
			i.Opcode = XOR
		case 0x4:
			i.Opcode = ADD
		case 0x5:
			i.Opcode = SUB
		case 0x6:
			i.Opcode = SHR
		case 0x7:
			i.Opcode = SUBN
		case 0xe:
			i.Opcode = SHL
		default:
			return i, false
		}
	case 0x9:
		if i.N != 0 {
			return i, false
		}
		i.Opcode = SNE
	case 0xa:
		i.Opcode = LDI
	case 0xb:
		i.Opcode = JPV0
	case 0xc:
		i.Opcode = RND
	case 0xd:
		i.Opcode = DRW
	case 0xe:
		switch i.KK {
		case 0x9e:
			i.Opcode = SKP
		case 0xa1:
			i.Opcode = SKNP
		default:
			return i, false
		}
	case 0xf:
		switch i.KK {
		case 0x07:
			i.Opcode = LDVDT
		case 0x0a:
			i.Opcode = LDK
		case 0x15:
			i.Opcode = LDDT
		case 0x18:
			i.Opcode = LDST
		case 0x1e:
			i.Opcode = ADDI
		case 0x29:
			i.Opcode = LDF
		case 0x33:
			i.Opcode = LDBCD
		case 0x55:
			i.Opcode = STM
		case 0x65:
			i.Opcode = LDM
		default:
			return i, false
		}
	}

	return i, true
}

// Operands returns the operand list in assembler notation.
func (i Instruction) Operands() []string {
	vx := RegisterName(i.X)
	vy := RegisterName(i.Y)
	kk := fmt.Sprintf("0x%02x", i.KK)
	nnn := fmt.Sprintf("0x%03x", i.NNN)

	switch i.Opcode {
	case JP, CALL:
		return []string{nnn}
	case LDI:
		return []string{"I", nnn}
	case JPV0:
		return []string{"V0", nnn}
	case SEB, SNEB, LDB, ADDB, RND:
		return []string{vx, kk}
	case SE, SNE, LD, OR, AND, XOR, ADD, SUB, SUBN:
		return []string{vx, vy}
	case SHR, SHL, SKP, SKNP:
		return []string{vx}
	case DRW:
		return []string{vx, vy, fmt.Sprintf("%d", i.N)}
	case LDVDT:
		return []string{vx, "DT"}
	case LDK:
		return []string{vx, "K"}
	case LDDT:
		return []string{"DT", vx}
	case LDST:
		return []string{"ST", vx}
	case ADDI:
		return []string{"I", vx}
	case LDF:
		return []string{"F", vx}
	case LDBCD:
		return []string{"B", vx}
	case STM:
		return []string{"[I]", vx}
	case LDM:
		return []string{vx, "[I]"}
	}
	return nil
}

// String returns the instruction in assembler notation.
func (i Instruction) String() string {
	name, ok := Name(i.Opcode)
	if !ok {
		return fmt.Sprintf("DW 0x%04x", i.Word)
	}

	args := i.Operands()
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, ", ")
}
