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

package machine

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/afnanenayet/lc3-vm/pkg/instruction"
)

func (mc *MachineState) Reset() {
	for i := range mc.Registers {
		mc.Registers[i] = 0x0000
	}

	for i := range mc.Memory {
		mc.Memory[i] = 0x0000
	}

	mc.Program = PC_START
	mc.Condition = FLAG_ZERO
}

// Reset returns the machine to its power-on state: zeroed registers
// and memory, PC at the conventional load address, Running.
func (mc *Machine) Reset() {
	mc.State.Reset()
	mc.Status = Running
	mc.fault = nil
}

// LoadImage resets the machine and copies a flat program image into
// memory. The first big-endian word of the image is the origin
// address; the remaining words are loaded contiguously from there and
// the PC is set to the origin. An image that would run past the top of
// the address space is rejected with ErrImageOverflow.
func (mc *Machine) LoadImage(reader io.Reader) error {
	mc.Reset()

	scratch := make([]byte, 2)

	if _, err := io.ReadFull(reader, scratch); err != nil {
		return errors.New("image too short to hold an origin word")
	}

	origin := binary.BigEndian.Uint16(scratch)
	addr := uint32(origin)

	for {
		_, err := io.ReadFull(reader, scratch)

		if err == io.EOF {
			break
		} else if err == io.ErrUnexpectedEOF {
			return errors.New("image ends mid-word")
		} else if err != nil {
			return err
		}

		if addr > 0xFFFF {
			return ErrImageOverflow
		}

		mc.State.Memory[addr] = binary.BigEndian.Uint16(scratch)
		addr++
	}

	mc.State.Program = origin
	return nil
}

// read returns the word at addr, applying the keyboard device
// semantics: reading the status register polls for a key and latches
// it into the data register; reading the data register clears the
// ready bit. All opcode handlers go through here so the side effects
// stay centralized.
func (mc *Machine) read(addr uint16) uint16 {
	switch addr {
	case DEV_KBSR:
		if mc.State.Memory[DEV_KBSR]&KB_READY == 0 {
			mc.pollKey()
		}
	case DEV_KBDR:
		// The latched key stays readable, but it is no longer "new"
		mc.State.Memory[DEV_KBSR] &^= KB_READY
	}

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return mc.State.Memory[addr]
}

// write stores a word at addr. Stores to the device registers are
// plain stores; only reads carry device side effects.
func (mc *Machine) write(addr uint16, value uint16) {
	mc.State.Memory[addr] = value

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}
}

// pollKey tries to latch one key from the keyboard without blocking
// the machine on an empty source.
func (mc *Machine) pollKey() {
	if mc.Devices == nil || mc.Devices.Keyboard == nil {
		mc.State.Memory[DEV_KBSR] = 0
		return
	}

	if _, err := mc.Devices.Keyboard.Peek(1); err != nil {
		mc.State.Memory[DEV_KBSR] = 0
		return
	}

	key, err := mc.Devices.Keyboard.ReadByte()

	if err != nil {
		mc.State.Memory[DEV_KBSR] = 0
		return
	}

	mc.State.Memory[DEV_KBSR] = KB_READY
	mc.State.Memory[DEV_KBDR] = uint16(key)
}

func (mc *Machine) setFlags(value uint16) {
	if value == 0 {
		mc.State.Condition = FLAG_ZERO
	} else if value>>15 == 1 {
		mc.State.Condition = FLAG_NEG
	} else {
		mc.State.Condition = FLAG_POS
	}
}

// fail freezes the machine at the faulting instruction. The PC is
// rolled back to the fetch address so the snapshot shows exactly where
// execution stopped.
func (mc *Machine) fail(pc uint16, err error) (Status, error) {
	mc.State.Program = pc
	mc.fault = &Error{PC: pc, Err: err}
	return mc.Status, mc.fault
}

// Fault returns the error that stopped the machine, or nil while it is
// healthy.
func (mc *Machine) Fault() error {
	return mc.fault
}

// Step runs one fetch-decode-execute cycle and reports the resulting
// run state. Once the machine has halted or faulted, Step is a no-op
// that repeats the same report.
func (mc *Machine) Step() (Status, error) {
	if mc.fault != nil {
		return mc.Status, mc.fault
	}

	if mc.Status == Halted {
		return Halted, nil
	}

	fetch := mc.State.Program
	word := mc.read(fetch)

	mc.State.Program++

	inst, err := instruction.Decode(word)

	if err != nil {
		return mc.fail(fetch, err)
	}

	switch inst.Op {
	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	case instruction.OP_BR:
		if inst.Cond&mc.State.Condition != 0 {
			mc.State.Program += inst.Offset9
		}

	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	case instruction.OP_ADD:
		if inst.Immediate {
			mc.State.Registers[inst.DR] = mc.State.Registers[inst.SR1] +
				inst.Imm5
		} else {
			mc.State.Registers[inst.DR] = mc.State.Registers[inst.SR1] +
				mc.State.Registers[inst.SR2]
		}

		mc.setFlags(mc.State.Registers[inst.DR])

	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
	case instruction.OP_AND:
		if inst.Immediate {
			mc.State.Registers[inst.DR] = mc.State.Registers[inst.SR1] &
				inst.Imm5
		} else {
			mc.State.Registers[inst.DR] = mc.State.Registers[inst.SR1] &
				mc.State.Registers[inst.SR2]
		}

		mc.setFlags(mc.State.Registers[inst.DR])

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	case instruction.OP_NOT:
		mc.State.Registers[inst.DR] = ^mc.State.Registers[inst.SR]

		mc.setFlags(mc.State.Registers[inst.DR])

	// LD   |0010    |DR   |PCoffset9         | Load
	case instruction.OP_LD:
		mc.State.Registers[inst.DR] = mc.read(mc.State.Program + inst.Offset9)

		mc.setFlags(mc.State.Registers[inst.DR])

	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	case instruction.OP_LDI:
		addr := mc.read(mc.State.Program + inst.Offset9)
		mc.State.Registers[inst.DR] = mc.read(addr)

		mc.setFlags(mc.State.Registers[inst.DR])

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	case instruction.OP_LDR:
		addr := mc.State.Registers[inst.BaseR] + inst.Offset6
		mc.State.Registers[inst.DR] = mc.read(addr)

		mc.setFlags(mc.State.Registers[inst.DR])

	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	case instruction.OP_LEA:
		mc.State.Registers[inst.DR] = mc.State.Program + inst.Offset9

		mc.setFlags(mc.State.Registers[inst.DR])

	// ST   |0011    |SR   |PCoffset9         | Store
	case instruction.OP_ST:
		mc.write(mc.State.Program+inst.Offset9, mc.State.Registers[inst.SR])

	// STI  |1011    |SR   |PCoffset9         | Store indirect
	case instruction.OP_STI:
		addr := mc.read(mc.State.Program + inst.Offset9)
		mc.write(addr, mc.State.Registers[inst.SR])

	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	case instruction.OP_STR:
		addr := mc.State.Registers[inst.BaseR] + inst.Offset6
		mc.write(addr, mc.State.Registers[inst.SR])

	// JMP  |1100    |000  |BaseR|000000      | Jump
	// RET  |1100    |000  |111  |000000      | Return
	case instruction.OP_JMP:
		mc.State.Program = mc.State.Registers[inst.BaseR]

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	case instruction.OP_JSR:
		// Read the base register before writing R7 so JSRR R7 works
		target := mc.State.Program + inst.Offset11
		if !inst.Immediate {
			target = mc.State.Registers[inst.BaseR]
		}

		mc.State.Registers[7] = mc.State.Program
		mc.State.Program = target

	// TRAP |1111    |0000 |trapvect8         | OS service call
	case instruction.OP_TRAP:
		if err := mc.trap(inst.Vector); err != nil {
			return mc.fail(fetch, err)
		}

	// RTI  |1000    |000000000000            | Not part of this profile
	case instruction.OP_RTI:
		return mc.fail(fetch, ErrIllegalInstruction)

	// RES  |1101    |                        | Rejected by Decode
	case instruction.OP_RES:
	}

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}

	return mc.Status, nil
}
