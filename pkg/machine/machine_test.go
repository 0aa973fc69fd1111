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

package machine_test

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/afnanenayet/lc3-vm/pkg/instruction"
	"github.com/afnanenayet/lc3-vm/pkg/machine"
)

type testMachineState struct {
	Registers [8]uint16
	Program   uint16
	Condition uint16
	Memory    map[uint16]uint16
}

type testCase struct {
	Name     string
	Steps    uint
	Keyboard string
	Display  string
	Input    testMachineState
	Output   testMachineState
	Status   machine.Status
	Err      error
}

func testMachineRun(t *testing.T, test *testCase) {
	if test.Input.Memory == nil {
		panic("No input memory map provided")
	}

	var mc machine.Machine
	var devices machine.DeviceHandler
	var displayBuf bytes.Buffer

	if len(test.Keyboard) > 0 {
		devices.Keyboard = bufio.NewReader(
			bytes.NewReader([]byte(test.Keyboard)),
		)
	}

	if len(test.Display) > 0 {
		devices.Display = bufio.NewWriter(&displayBuf)
	}

	if devices.Keyboard != nil || devices.Display != nil {
		mc.Devices = &devices
	}

	mc.Reset()
	mc.State.Registers = test.Input.Registers
	mc.State.Program = test.Input.Program

	if test.Input.Condition != 0 {
		mc.State.Condition = test.Input.Condition
	}

	for addr, value := range test.Input.Memory {
		mc.State.Memory[addr] = value
	}

	if test.Steps == 0 {
		test.Steps = 1
	}

	var status machine.Status
	var err error

	for i := uint(0); i < test.Steps; i++ {
		status, err = mc.Step()
	}

	if test.Err != nil {
		if !errors.Is(err, test.Err) {
			t.Fatalf(
				"Error mismatch\nwant:%v (test.Err)\nhave:%v",
				test.Err,
				err,
			)
		}

		var merr *machine.Error

		if !errors.As(err, &merr) {
			t.Fatalf("Expected a *machine.Error, have %T", err)
		}

		if merr.PC != test.Output.Program {
			t.Errorf(
				"Fault PC mismatch"+
					"\nwant:%#04x (test.Output.Program)\nhave:%#04x",
				test.Output.Program,
				merr.PC,
			)
		}

		if mc.Fault() == nil {
			t.Error("Machine did not record the fault")
		}
	} else if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if status != test.Status {
		t.Errorf(
			"Status mismatch\nwant:%v (test.Status)\nhave:%v",
			test.Status,
			status,
		)
	}

	for i := 0; i < 8; i++ {
		want := test.Output.Registers[i]
		have := mc.State.Registers[i]
		if have != want {
			t.Errorf(
				"Register mismatch"+
					"\nwant:%#04x (test.Output.Registers[%d])\nhave:%#04x",
				want,
				i,
				have,
			)
		}
	}

	if mc.State.Program != test.Output.Program {
		t.Errorf(
			"Program register mismatch"+
				"\nwant:%#04x (test.Output.Program)\nhave:%#04x",
			test.Output.Program,
			mc.State.Program,
		)
	}

	wantCond := test.Output.Condition

	if wantCond == 0 {
		wantCond = machine.FLAG_ZERO
	}

	if have := mc.State.Condition; have != wantCond {
		t.Errorf(
			"Condition flag mismatch"+
				"\nwant:%#03b (test.Output.Condition)\nhave:%#03b",
			wantCond,
			have,
		)
	}

	for i, value := range mc.State.Memory {
		input, expectingInput := test.Input.Memory[uint16(i)]
		output, expectingOutput := test.Output.Memory[uint16(i)]

		if expectingOutput {
			// Value was supposed to change
			if value != output {
				t.Fatalf(
					"Memory value mismatch"+
						"\nwant:%#02x (test.Output.Memory[%#04x])\nhave:%#02x",
					output,
					i,
					value,
				)
			}
		} else if expectingInput {
			// Value was supposed to remain
			if value != input {
				t.Fatalf(
					"Memory value mismatch"+
						"\nwant:%#02x (test.Input.Memory[%#04x])\nhave:%#02x",
					input,
					i,
					value,
				)
			}
		} else if value != 0 {
			// Value was expected to remain uninitialized
			t.Fatalf(
				"Memory unexpectedly changed"+
					"\nwant:0x00 (test.Output.Memory[%#04x])\nhave:%#02x",
				i,
				value,
			)
		}
	}

	if len(test.Display) > 0 {
		if have := displayBuf.String(); have != test.Display {
			t.Errorf(
				"Display output mismatch"+
					"\nwant:%s (test.Display)\nhave:%s",
				test.Display,
				have,
			)
		}
	}
}

func runTests(t *testing.T, tests []testCase) {
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			testMachineRun(t, &test)
		})
	}
}

// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
func TestAdd(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "ADD SR2 Negative",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE, // DR
					1: 0x0001, // SR1
					2: 0x8001, // SR2
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0001_000_001_000_010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_NEG,
				Registers: [8]uint16{
					0: 0x8002,
					1: 0x0001,
					2: 0x8001,
				},
			},
		},
		{
			Name: "ADD SR2 Wraparound Zero",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					1: 0xFFFF,
					2: 0x0001,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0001_000_001_000_010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_ZERO,
				Registers: [8]uint16{
					1: 0xFFFF,
					2: 0x0001,
				},
			},
		},
		{
			Name: "ADD Imm5 Zero Operand",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0x0005,
				},
				Memory: map[uint16]uint16{
					0x3000: 0x1220, // ADD R1, R0, #0
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					0: 0x0005,
					1: 0x0005,
				},
			},
		},
		{
			Name: "ADD Imm5 Negative Operand",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b0001_010_010_1_11111, // ADD R2, R2, #-1
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_NEG,
				Registers: [8]uint16{
					2: 0xFFFF,
				},
			},
		},
	})
}

// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
func TestAnd(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "AND SR2 Negative",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					1: 0xF0F0,
					2: 0xFF00,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0101_000_001_000_010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_NEG,
				Registers: [8]uint16{
					0: 0xF000,
					1: 0xF0F0,
					2: 0xFF00,
				},
			},
		},
		{
			Name: "AND Imm5 Clear",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					3: 0x1234,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0101_011_011_1_00000, // AND R3, R3, #0
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_ZERO,
			},
		},
		{
			Name: "AND Imm5 Identity",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					1: 0x1234,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0101_001_001_1_11111, // AND R1, R1, #-1
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					1: 0x1234,
				},
			},
		},
	})
}

// The immediate and register forms must agree whenever the immediate
// equals the register operand's value.
func TestAddAndModesAgree(t *testing.T) {
	for _, imm := range []uint16{0x0000, 0x000F, 0xFFFF} {
		for _, op := range []uint16{0b0001, 0b0101} {
			var immMachine, regMachine machine.Machine

			immMachine.Reset()
			immMachine.State.Registers[1] = 0x00FF
			immMachine.State.Memory[0x3000] = op<<12 |
				0b000_001_1_00000 | (imm & 0x1F)

			regMachine.Reset()
			regMachine.State.Registers[1] = 0x00FF
			regMachine.State.Registers[2] = imm
			regMachine.State.Memory[0x3000] = op<<12 | 0b000_001_000_010

			if _, err := immMachine.Step(); err != nil {
				t.Fatal(err)
			}

			if _, err := regMachine.Step(); err != nil {
				t.Fatal(err)
			}

			if immMachine.State.Registers[0] != regMachine.State.Registers[0] {
				t.Errorf(
					"Mode mismatch for op %#04b imm %#04x"+
						"\nimmediate:%#04x\nregister:%#04x",
					op,
					imm,
					immMachine.State.Registers[0],
					regMachine.State.Registers[0],
				)
			}

			if immMachine.State.Condition != regMachine.State.Condition {
				t.Errorf(
					"Condition mismatch for op %#04b imm %#04x",
					op,
					imm,
				)
			}
		}
	}
}

// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
func TestNot(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "NOT Negative",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					2: 0x0F0F,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1001_001_010_111111,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_NEG,
				Registers: [8]uint16{
					1: 0xF0F0,
					2: 0x0F0F,
				},
			},
		},
		{
			Name: "NOT Zero",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					2: 0xFFFF,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1001_001_010_111111,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_ZERO,
				Registers: [8]uint16{
					2: 0xFFFF,
				},
			},
		},
	})
}

// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
func TestBr(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "BRn Taken",
			Input: testMachineState{
				Program:   0x3000,
				Condition: machine.FLAG_NEG,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_100_000000010, // BRn #2
				},
			},
			Output: testMachineState{
				Program:   0x3003,
				Condition: machine.FLAG_NEG,
			},
		},
		{
			Name: "BRn Not Taken",
			Input: testMachineState{
				Program:   0x3000,
				Condition: machine.FLAG_POS,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_100_000000010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
			},
		},
		{
			Name: "BRzp Taken On Zero",
			Input: testMachineState{
				Program:   0x3000,
				Condition: machine.FLAG_ZERO,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_011_000000010, // BRzp #2
				},
			},
			Output: testMachineState{
				Program:   0x3003,
				Condition: machine.FLAG_ZERO,
			},
		},
		{
			Name: "BRnzp Negative Offset",
			Input: testMachineState{
				Program:   0x3000,
				Condition: machine.FLAG_POS,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_111_111111101, // BRnzp #-3
				},
			},
			Output: testMachineState{
				Program:   0x2FFE,
				Condition: machine.FLAG_POS,
			},
		},
		{
			Name: "BR No Condition Bits Never Taken",
			Input: testMachineState{
				Program:   0x3000,
				Condition: machine.FLAG_POS,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_000_000000010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
			},
		},
	})
}

// JMP  |1100    |000  |BaseR|000000      | Jump
// RET  |1100    |000  |111  |000000      | Return
func TestJmp(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "JMP BaseR",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					2: 0x4000,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1100_000_010_000000,
				},
			},
			Output: testMachineState{
				Program: 0x4000,
				Registers: [8]uint16{
					2: 0x4000,
				},
			},
		},
		{
			Name: "RET",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					7: 0x1234,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1100_000_111_000000,
				},
			},
			Output: testMachineState{
				Program: 0x1234,
				Registers: [8]uint16{
					7: 0x1234,
				},
			},
		},
	})
}

// JSR  |0100    |1|PCoffset11            | Jump to subroutine
// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
func TestJsr(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "JSR Positive Offset",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b0100_1_00000001010, // JSR #10
				},
			},
			Output: testMachineState{
				Program: 0x300B,
				Registers: [8]uint16{
					7: 0x3001,
				},
			},
		},
		{
			Name: "JSR Negative Offset",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b0100_1_11111111100, // JSR #-4
				},
			},
			Output: testMachineState{
				Program: 0x2FFD,
				Registers: [8]uint16{
					7: 0x3001,
				},
			},
		},
		{
			Name: "JSRR BaseR",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					3: 0x5000,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0100_0_00_011_000000,
				},
			},
			Output: testMachineState{
				Program: 0x5000,
				Registers: [8]uint16{
					3: 0x5000,
					7: 0x3001,
				},
			},
		},
		{
			Name: "JSRR R7 Reads Base Before Link",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					7: 0x5000,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0100_0_00_111_000000,
				},
			},
			Output: testMachineState{
				Program: 0x5000,
				Registers: [8]uint16{
					7: 0x3001,
				},
			},
		},
	})
}

// LD   |0010    |DR   |PCoffset9         | Load
func TestLd(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "LD Negative Value",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b0010_001_000000001, // LD R1, #1
					0x3002: 0xBEEF,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_NEG,
				Registers: [8]uint16{
					1: 0xBEEF,
				},
			},
		},
		{
			Name: "LD Negative Offset",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b0010_010_111111111, // LD R2, #-1
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					2: 0b0010_010_111111111,
				},
			},
		},
	})
}

// LDI  |1010    |DR   |PCoffset9         | Load indirect
func TestLdi(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "LDI Double Dereference",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b1010_100_000000001, // LDI R4, #1
					0x3002: 0x4000,
					0x4000: 0x0042,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					4: 0x0042,
				},
			},
		},
	})
}

// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
func TestLdr(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "LDR Zero Offset",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					1: 0x4000,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0110_010_001_000000, // LDR R2, R1, #0
					0x4000: 0x8000,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_NEG,
				Registers: [8]uint16{
					1: 0x4000,
					2: 0x8000,
				},
			},
		},
		{
			Name: "LDR Negative Offset",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					1: 0x4000,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0110_011_001_111111, // LDR R3, R1, #-1
					0x3FFF: 0x0005,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					1: 0x4000,
					3: 0x0005,
				},
			},
		},
	})
}

// LEA  |1110    |DR   |PCoffset9         | Load effective address
func TestLea(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "LEA Positive Offset",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b1110_111_000000101, // LEA R7, #5
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					7: 0x3006,
				},
			},
		},
		{
			Name: "LEA Negative Offset",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b1110_000_111111010, // LEA R0, #-6
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					0: 0x2FFB,
				},
			},
		},
	})
}

// ST   |0011    |SR   |PCoffset9         | Store
func TestSt(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "ST No Flag Update",
			Input: testMachineState{
				Program:   0x3000,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					2: 0xCAFE,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0011_010_000001000, // ST R2, #8
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					2: 0xCAFE,
				},
				Memory: map[uint16]uint16{
					0x3009: 0xCAFE,
				},
			},
		},
	})
}

// STI  |1011    |SR   |PCoffset9         | Store indirect
func TestSti(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "STI Double Dereference",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					5: 0x0077,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1011_101_000000001, // STI R5, #1
					0x3002: 0x4000,
				},
			},
			Output: testMachineState{
				Program: 0x3001,
				Registers: [8]uint16{
					5: 0x0077,
				},
				Memory: map[uint16]uint16{
					0x4000: 0x0077,
				},
			},
		},
	})
}

// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
func TestStr(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "STR Negative Offset",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xABCD,
					6: 0x4002,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0111_000_110_111110, // STR R0, R6, #-2
				},
			},
			Output: testMachineState{
				Program: 0x3001,
				Registers: [8]uint16{
					0: 0xABCD,
					6: 0x4002,
				},
				Memory: map[uint16]uint16{
					0x4000: 0xABCD,
				},
			},
		},
	})
}

// Exactly one flag is set after any register write, chosen by the
// signed value of the written word.
func TestConditionFlags(t *testing.T) {
	values := map[uint16]uint16{
		0x0000: machine.FLAG_ZERO,
		0x0001: machine.FLAG_POS,
		0x7FFF: machine.FLAG_POS,
		0x8000: machine.FLAG_NEG,
		0xFFFF: machine.FLAG_NEG,
	}

	for value, flag := range values {
		var mc machine.Machine

		mc.Reset()
		mc.State.Condition = machine.FLAG_POS
		mc.State.Memory[0x3000] = 0b0010_001_000000001 // LD R1, #1
		mc.State.Memory[0x3002] = value

		if _, err := mc.Step(); err != nil {
			t.Fatal(err)
		}

		if mc.State.Condition != flag {
			t.Errorf(
				"Condition mismatch for %#04x\nwant:%#03b\nhave:%#03b",
				value,
				flag,
				mc.State.Condition,
			)
		}
	}
}

func TestInvalidOpcode(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "Reserved Opcode Faults",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0xD000,
				},
			},
			Output: testMachineState{
				Program: 0x3000, // PC not advanced past the fetch
			},
			Status: machine.Running,
			Err:    instruction.ErrInvalidOpcode,
		},
		{
			Name:  "Fault Repeats Without Executing",
			Steps: 3,
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0xD123,
				},
			},
			Output: testMachineState{
				Program: 0x3000,
			},
			Status: machine.Running,
			Err:    instruction.ErrInvalidOpcode,
		},
	})
}

func TestIllegalInstruction(t *testing.T) {
	runTests(t, []testCase{
		{
			Name: "RTI Faults",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0x8000,
				},
			},
			Output: testMachineState{
				Program: 0x3000,
			},
			Status: machine.Running,
			Err:    machine.ErrIllegalInstruction,
		},
	})
}

func TestLoadImage(t *testing.T) {
	var mc machine.Machine

	image := []byte{0x30, 0x00, 0x12, 0x20, 0xF0, 0x25}

	if err := mc.LoadImage(bytes.NewReader(image)); err != nil {
		t.Fatal(err)
	}

	if mc.State.Program != 0x3000 {
		t.Errorf(
			"PC mismatch\nwant:0x3000\nhave:%#04x", mc.State.Program,
		)
	}

	if mc.State.Memory[0x3000] != 0x1220 {
		t.Errorf(
			"Memory mismatch at 0x3000\nwant:0x1220\nhave:%#04x",
			mc.State.Memory[0x3000],
		)
	}

	if mc.State.Memory[0x3001] != 0xF025 {
		t.Errorf(
			"Memory mismatch at 0x3001\nwant:0xf025\nhave:%#04x",
			mc.State.Memory[0x3001],
		)
	}
}

func TestLoadImageOverflow(t *testing.T) {
	var mc machine.Machine

	// Origin 0xFFFF leaves room for exactly one word
	image := []byte{0xFF, 0xFF, 0x12, 0x20, 0xF0, 0x25}

	err := mc.LoadImage(bytes.NewReader(image))

	if !errors.Is(err, machine.ErrImageOverflow) {
		t.Fatalf(
			"Error mismatch\nwant:%v\nhave:%v",
			machine.ErrImageOverflow,
			err,
		)
	}
}

func TestLoadImageMalformed(t *testing.T) {
	var mc machine.Machine

	if err := mc.LoadImage(bytes.NewReader(nil)); err == nil {
		t.Error("Expected an error for an empty image")
	}

	if err := mc.LoadImage(bytes.NewReader([]byte{0x30})); err == nil {
		t.Error("Expected an error for a truncated origin")
	}

	image := []byte{0x30, 0x00, 0x12}

	if err := mc.LoadImage(bytes.NewReader(image)); err == nil {
		t.Error("Expected an error for an image ending mid-word")
	}
}
