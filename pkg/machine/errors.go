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
	"errors"
	"fmt"
)

// Fatal error kinds. Any of these stops the current run: the program
// counter is restored to the faulting instruction and every later Step
// reports the same error. The LC-3 defines no recovery mechanism in
// this profile, so there is none here.
var (
	ErrIllegalInstruction = errors.New("illegal instruction (RTI)")
	ErrInvalidTrap        = errors.New("invalid trap vector")
	ErrImageOverflow      = errors.New("program image overflows the address space")
	ErrInputExhausted     = errors.New("keyboard input exhausted")
)

// Error wraps a fatal error kind with the address of the instruction
// that raised it.
type Error struct {
	PC  uint16
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at %#04x", e.Err, e.PC)
}

func (e *Error) Unwrap() error {
	return e.Err
}
