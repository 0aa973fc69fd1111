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
	"github.com/afnanenayet/lc3-vm/pkg/instruction"
)

// Snapshot is the read-only view a debugger frontend renders between
// steps: the PC, the register file, the condition flags, the run
// state, and the decoded instruction the next Step would execute.
type Snapshot struct {
	Program   uint16
	Registers [8]uint16
	Condition uint16
	Status    Status

	NextWord uint16
	Next     instruction.Instruction

	// NextValid is false when the word at the PC does not decode
	// (reserved opcode); Next is then meaningless.
	NextValid bool
}

// Snapshot captures the machine without disturbing it. The word at the
// PC is peeked directly from storage so that snapshotting never
// triggers device side effects, no matter where the PC points.
func (mc *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Program:   mc.State.Program,
		Registers: mc.State.Registers,
		Condition: mc.State.Condition,
		Status:    mc.Status,
		NextWord:  mc.State.Memory[mc.State.Program],
	}

	if inst, err := instruction.Decode(snap.NextWord); err == nil {
		snap.Next = inst
		snap.NextValid = true
	}

	return snap
}
