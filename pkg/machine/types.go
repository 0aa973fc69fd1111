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
	"bufio"
)

// DeviceHandler carries the peripheral endpoints of one machine: a
// buffered keyboard source and a display sink. cmd/lc3 wires stdin and
// stdout; tests supply in-memory buffers.
type DeviceHandler struct {
	Keyboard *bufio.Reader
	Display  *bufio.Writer
}

// MachineState is the architectural state of one LC-3: register file,
// program counter, condition flags, and the full 65,536-word address
// space. Each Machine owns exactly one MachineState and never shares
// it.
type MachineState struct {
	Registers [8]uint16
	Program   uint16
	Condition uint16
	Memory    [1 << 16]uint16
}

// Status is the run state of a machine. A machine leaves Running only
// through the HALT service routine; fatal errors freeze it in place.
type Status int

const (
	Running Status = iota
	Halted
)

func (s Status) String() string {
	if s == Halted {
		return "halted"
	}
	return "running"
}

// MachineDebugger receives hooks after every executed instruction and
// on every memory access, letting an attached debugger implement
// breakpoints and watchpoints without the machine knowing about
// either.
type MachineDebugger interface {
	Step(mc *Machine)
	Read(addr uint16, mc *Machine)
	Write(addr uint16, mc *Machine)
}

type Machine struct {
	Devices  *DeviceHandler
	State    MachineState
	Status   Status
	Debugger MachineDebugger

	fault error
}
