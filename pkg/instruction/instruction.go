// Copyright (C) 2023  Afnan Enayet

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package instruction decodes raw LC-3 machine words into a tagged
// operand structure. Decoding is a pure function of the word: no
// machine state is consulted and nothing is mutated.
package instruction

import (
	"errors"
	"fmt"

	"github.com/afnanenayet/lc3-vm/pkg/encoding"
)

// Opcode is the 4-bit instruction class tag held in bits 15-12 of an
// instruction word.
type Opcode uint16

const (
	OP_BR   Opcode = 0b0000
	OP_ADD  Opcode = 0b0001
	OP_LD   Opcode = 0b0010
	OP_ST   Opcode = 0b0011
	OP_JSR  Opcode = 0b0100
	OP_AND  Opcode = 0b0101
	OP_LDR  Opcode = 0b0110
	OP_STR  Opcode = 0b0111
	OP_RTI  Opcode = 0b1000
	OP_NOT  Opcode = 0b1001
	OP_LDI  Opcode = 0b1010
	OP_STI  Opcode = 0b1011
	OP_JMP  Opcode = 0b1100
	OP_RES  Opcode = 0b1101
	OP_LEA  Opcode = 0b1110
	OP_TRAP Opcode = 0b1111
)

// Trap service vectors from the LC-3 OS service table.
const (
	TRAP_GETC  uint16 = 0x20
	TRAP_OUT   uint16 = 0x21
	TRAP_PUTS  uint16 = 0x22
	TRAP_IN    uint16 = 0x23
	TRAP_PUTSP uint16 = 0x24
	TRAP_HALT  uint16 = 0x25
)

// ErrInvalidOpcode is returned by Decode for the reserved 1101 bit
// pattern, which has no defined behavior.
var ErrInvalidOpcode = errors.New("invalid opcode (reserved pattern 1101)")

// Instruction is the decoded form of one machine word. Op selects
// which of the operand fields are meaningful; offsets and immediates
// are stored already sign-extended to 16 bits.
type Instruction struct {
	Op  Opcode
	Raw uint16

	DR    uint16 // destination register
	SR    uint16 // source register (NOT, ST, STI, STR)
	SR1   uint16 // first operand register (ADD, AND)
	SR2   uint16 // second operand register (ADD, AND register form)
	BaseR uint16 // base register (JMP, JSRR, LDR, STR)

	// Immediate selects the imm5 form of ADD/AND and the PCoffset11
	// form of JSR.
	Immediate bool

	Imm5     uint16
	Offset6  uint16
	Offset9  uint16
	Offset11 uint16

	Cond   uint16 // BR condition bits (N|Z|P)
	Vector uint16 // TRAP service vector
}

// Decode splits a raw instruction word into opcode and operand fields.
func Decode(word uint16) (Instruction, error) {
	inst := Instruction{
		Op:  Opcode(word >> 12),
		Raw: word,
	}

	switch inst.Op {
	// ADD  |0001    |DR   |SR1  |0|00 |SR2   |
	// ADD  |0001    |DR   |SR1  |1|imm5      |
	// AND  |0101    |DR   |SR1  |0|00 |SR2   |
	// AND  |0101    |DR   |SR1  |1|imm5      |
	case OP_ADD, OP_AND:
		inst.DR = (word >> 9) & 0x7
		inst.SR1 = (word >> 6) & 0x7

		if (word>>5)&0x1 == 1 {
			inst.Immediate = true
			inst.Imm5 = encoding.SignExtend(word&0x1F, 5)
		} else {
			inst.SR2 = word & 0x7
		}

	// NOT  |1001    |DR   |SR   |1|11111     |
	case OP_NOT:
		inst.DR = (word >> 9) & 0x7
		inst.SR = (word >> 6) & 0x7

	// BR   |0000    |N|Z|P|PCoffset9         |
	case OP_BR:
		inst.Cond = (word >> 9) & 0x7
		inst.Offset9 = encoding.SignExtend(word&0x1FF, 9)

	// LD   |0010    |DR   |PCoffset9         |
	// LDI  |1010    |DR   |PCoffset9         |
	// LEA  |1110    |DR   |PCoffset9         |
	case OP_LD, OP_LDI, OP_LEA:
		inst.DR = (word >> 9) & 0x7
		inst.Offset9 = encoding.SignExtend(word&0x1FF, 9)

	// ST   |0011    |SR   |PCoffset9         |
	// STI  |1011    |SR   |PCoffset9         |
	case OP_ST, OP_STI:
		inst.SR = (word >> 9) & 0x7
		inst.Offset9 = encoding.SignExtend(word&0x1FF, 9)

	// LDR  |0110    |DR   |BaseR|offset6     |
	case OP_LDR:
		inst.DR = (word >> 9) & 0x7
		inst.BaseR = (word >> 6) & 0x7
		inst.Offset6 = encoding.SignExtend(word&0x3F, 6)

	// STR  |0111    |SR   |BaseR|offset6     |
	case OP_STR:
		inst.SR = (word >> 9) & 0x7
		inst.BaseR = (word >> 6) & 0x7
		inst.Offset6 = encoding.SignExtend(word&0x3F, 6)

	// JMP  |1100    |000  |BaseR|000000      |
	// RET  |1100    |000  |111  |000000      |
	case OP_JMP:
		inst.BaseR = (word >> 6) & 0x7

	// JSR  |0100    |1|PCoffset11            |
	// JSRR |0100    |0|00 |BaseR|000000      |
	case OP_JSR:
		if (word>>11)&0x1 == 1 {
			inst.Immediate = true
			inst.Offset11 = encoding.SignExtend(word&0x7FF, 11)
		} else {
			inst.BaseR = (word >> 6) & 0x7
		}

	// TRAP |1111    |0000 |trapvect8         |
	case OP_TRAP:
		inst.Vector = word & 0xFF

	// RTI  |1000    |000000000000            |
	case OP_RTI:
		// No operands; execution rejects it

	// RES  |1101    |                        |
	case OP_RES:
		return inst, ErrInvalidOpcode
	}

	return inst, nil
}

func (op Opcode) String() string {
	switch op {
	case OP_BR:
		return "BR"
	case OP_ADD:
		return "ADD"
	case OP_LD:
		return "LD"
	case OP_ST:
		return "ST"
	case OP_JSR:
		return "JSR"
	case OP_AND:
		return "AND"
	case OP_LDR:
		return "LDR"
	case OP_STR:
		return "STR"
	case OP_RTI:
		return "RTI"
	case OP_NOT:
		return "NOT"
	case OP_LDI:
		return "LDI"
	case OP_STI:
		return "STI"
	case OP_JMP:
		return "JMP"
	case OP_RES:
		return "RES"
	case OP_LEA:
		return "LEA"
	case OP_TRAP:
		return "TRAP"
	}

	return "???"
}

// String renders the instruction in LC-3 assembly mnemonics, using the
// RET and JSRR idioms and named trap services where they apply.
func (inst Instruction) String() string {
	switch inst.Op {
	case OP_BR:
		cond := ""
		if inst.Cond&0x4 != 0 {
			cond += "n"
		}
		if inst.Cond&0x2 != 0 {
			cond += "z"
		}
		if inst.Cond&0x1 != 0 {
			cond += "p"
		}
		return fmt.Sprintf("BR%s #%d", cond, int16(inst.Offset9))

	case OP_ADD, OP_AND:
		if inst.Immediate {
			return fmt.Sprintf(
				"%s R%d, R%d, #%d",
				inst.Op, inst.DR, inst.SR1, int16(inst.Imm5),
			)
		}
		return fmt.Sprintf(
			"%s R%d, R%d, R%d",
			inst.Op, inst.DR, inst.SR1, inst.SR2,
		)

	case OP_NOT:
		return fmt.Sprintf("NOT R%d, R%d", inst.DR, inst.SR)

	case OP_LD, OP_LDI, OP_LEA:
		return fmt.Sprintf("%s R%d, #%d", inst.Op, inst.DR, int16(inst.Offset9))

	case OP_ST, OP_STI:
		return fmt.Sprintf("%s R%d, #%d", inst.Op, inst.SR, int16(inst.Offset9))

	case OP_LDR:
		return fmt.Sprintf(
			"LDR R%d, R%d, #%d", inst.DR, inst.BaseR, int16(inst.Offset6),
		)

	case OP_STR:
		return fmt.Sprintf(
			"STR R%d, R%d, #%d", inst.SR, inst.BaseR, int16(inst.Offset6),
		)

	case OP_JMP:
		if inst.BaseR == 7 {
			return "RET"
		}
		return fmt.Sprintf("JMP R%d", inst.BaseR)

	case OP_JSR:
		if inst.Immediate {
			return fmt.Sprintf("JSR #%d", int16(inst.Offset11))
		}
		return fmt.Sprintf("JSRR R%d", inst.BaseR)

	case OP_RTI:
		return "RTI"

	case OP_TRAP:
		switch inst.Vector {
		case TRAP_GETC:
			return "GETC"
		case TRAP_OUT:
			return "OUT"
		case TRAP_PUTS:
			return "PUTS"
		case TRAP_IN:
			return "IN"
		case TRAP_PUTSP:
			return "PUTSP"
		case TRAP_HALT:
			return "HALT"
		}
		return fmt.Sprintf("TRAP x%02X", inst.Vector)
	}

	return fmt.Sprintf(".FILL x%04X", inst.Raw)
}
