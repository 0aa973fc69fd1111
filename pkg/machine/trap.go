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
	"fmt"

	"github.com/afnanenayet/lc3-vm/pkg/instruction"
)

// trap dispatches one OS service routine. The routines run on the host
// rather than in LC-3 code, so no register besides R0 is touched and
// the condition flags are left alone. An unrecognized vector fails
// with ErrInvalidTrap before any state changes.
func (mc *Machine) trap(vector uint16) error {
	switch vector {
	case instruction.TRAP_GETC:
		key, err := mc.readKey()
		if err != nil {
			return err
		}
		mc.State.Registers[0] = uint16(key)

	case instruction.TRAP_OUT:
		if err := mc.putc(byte(mc.State.Registers[0])); err != nil {
			return err
		}
		return mc.flush()

	case instruction.TRAP_PUTS:
		// One character per word, low byte only, until a null word
		addr := mc.State.Registers[0]
		for c := mc.read(addr); c != 0; {
			if err := mc.putc(byte(c)); err != nil {
				return err
			}
			addr++
			c = mc.read(addr)
		}
		return mc.flush()

	case instruction.TRAP_IN:
		for _, c := range []byte("Enter a character: ") {
			if err := mc.putc(c); err != nil {
				return err
			}
		}
		if err := mc.flush(); err != nil {
			return err
		}

		key, err := mc.readKey()
		if err != nil {
			return err
		}

		if err := mc.putc(key); err != nil {
			return err
		}
		if err := mc.flush(); err != nil {
			return err
		}

		mc.State.Registers[0] = uint16(key)

	case instruction.TRAP_PUTSP:
		// Two characters packed per word, low byte first; a zero high
		// byte inside a non-null word is padding for odd-length strings
		addr := mc.State.Registers[0]
		for c := mc.read(addr); c != 0; {
			if err := mc.putc(byte(c)); err != nil {
				return err
			}
			if c>>8 != 0 {
				if err := mc.putc(byte(c >> 8)); err != nil {
					return err
				}
			}
			addr++
			c = mc.read(addr)
		}
		return mc.flush()

	case instruction.TRAP_HALT:
		if err := mc.flush(); err != nil {
			return err
		}
		mc.Status = Halted

	default:
		return fmt.Errorf("%w %#02x", ErrInvalidTrap, vector)
	}

	return nil
}

// readKey blocks until one byte is available from the keyboard.
// Running out of input is fatal: looping on an empty source would spin
// forever.
func (mc *Machine) readKey() (byte, error) {
	if mc.Devices == nil || mc.Devices.Keyboard == nil {
		return 0, ErrInputExhausted
	}

	key, err := mc.Devices.Keyboard.ReadByte()

	if err != nil {
		return 0, ErrInputExhausted
	}

	return key, nil
}

func (mc *Machine) putc(c byte) error {
	if mc.Devices == nil || mc.Devices.Display == nil {
		return nil
	}

	return mc.Devices.Display.WriteByte(c)
}

func (mc *Machine) flush() error {
	if mc.Devices == nil || mc.Devices.Display == nil {
		return nil
	}

	return mc.Devices.Display.Flush()
}
