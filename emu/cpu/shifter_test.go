package cpu

/*
 * GBA - Barrel shifter tests.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import (
	"testing"
)

// Run one shift with a known carry-in and report result and carry-out.
func doShift(kind int, value uint32, amount uint8, carryIn bool) (uint32, bool) {
	var c cpuState
	c.cpsr.Carry = carryIn
	result := c.shift(kind, value, amount, true)
	return result, c.cpsr.Carry
}

func TestLSL(t *testing.T) {
	cases := []struct {
		value  uint32
		amount uint8
		result uint32
		carry  bool
	}{
		{0x80000001, 1, 0x00000002, true},
		{0x00000001, 31, 0x80000000, false},
		{0x40000000, 1, 0x80000000, false},
		{0xc0000000, 1, 0x80000000, true},
		{0x00000001, 32, 0, true},
		{0x00000002, 32, 0, false},
		{0xffffffff, 33, 0, false},
	}
	for _, test := range cases {
		result, carry := doShift(shiftLSL, test.value, test.amount, false)
		if result != test.result || carry != test.carry {
			t.Errorf("LSL %08x by %d got: %08x C=%v expected: %08x C=%v",
				test.value, test.amount, result, carry, test.result, test.carry)
		}
	}

	// Amount zero leaves value and carry alone.
	result, carry := doShift(shiftLSL, 0x1234, 0, true)
	if result != 0x1234 || !carry {
		t.Errorf("LSL by 0 got: %08x C=%v expected: 00001234 C=true", result, carry)
	}
}

// An encoded amount of zero means 32 for LSR: the carry path must produce
// bit 31 of the value.
func TestLSRZeroIsThirtyTwo(t *testing.T) {
	result, carry := doShift(shiftLSR, 0x80000000, 0, false)
	if result != 0 || !carry {
		t.Errorf("LSR by 0 got: %08x C=%v expected: 00000000 C=true", result, carry)
	}
	result, carry = doShift(shiftLSR, 0x7fffffff, 0, true)
	if result != 0 || carry {
		t.Errorf("LSR by 0 got: %08x C=%v expected: 00000000 C=false", result, carry)
	}
}

func TestLSR(t *testing.T) {
	cases := []struct {
		value  uint32
		amount uint8
		result uint32
		carry  bool
	}{
		{0x80000003, 1, 0x40000001, true},
		{0x80000000, 31, 0x00000001, false},
		{0x80000000, 32, 0, true},
		{0x7fffffff, 32, 0, false},
		{0xffffffff, 40, 0, false},
	}
	for _, test := range cases {
		result, carry := doShift(shiftLSR, test.value, test.amount, false)
		if result != test.result || carry != test.carry {
			t.Errorf("LSR %08x by %d got: %08x C=%v expected: %08x C=%v",
				test.value, test.amount, result, carry, test.result, test.carry)
		}
	}
}

func TestASR(t *testing.T) {
	cases := []struct {
		value  uint32
		amount uint8
		result uint32
		carry  bool
	}{
		{0x80000000, 1, 0xc0000000, false},
		{0x80000001, 1, 0xc0000000, true},
		{0x40000000, 2, 0x10000000, false},
		// Zero means 32: all bits of sign, carry from bit 31.
		{0x80000000, 0, 0xffffffff, true},
		{0x40000000, 0, 0x00000000, false},
		{0x80000000, 40, 0xffffffff, true},
		{0x7fffffff, 33, 0x00000000, false},
	}
	for _, test := range cases {
		result, carry := doShift(shiftASR, test.value, test.amount, false)
		if result != test.result || carry != test.carry {
			t.Errorf("ASR %08x by %d got: %08x C=%v expected: %08x C=%v",
				test.value, test.amount, result, carry, test.result, test.carry)
		}
	}
}

func TestROR(t *testing.T) {
	cases := []struct {
		value  uint32
		amount uint8
		result uint32
		carry  bool
	}{
		{0x000000f1, 4, 0x1000000f, false},
		{0x00000001, 1, 0x80000000, true},
		{0x80000000, 31, 0x00000001, false},
		// Multiples of 32 leave the value, carry from bit 31.
		{0x80001234, 32, 0x80001234, true},
		{0x00001234, 64, 0x00001234, false},
		{0x000000f1, 36, 0x1000000f, false},
	}
	for _, test := range cases {
		result, carry := doShift(shiftROR, test.value, test.amount, false)
		if result != test.result || carry != test.carry {
			t.Errorf("ROR %08x by %d got: %08x C=%v expected: %08x C=%v",
				test.value, test.amount, result, carry, test.result, test.carry)
		}
	}

	// Register-sourced amount of zero leaves value and carry alone.
	result, carry := doShift(shiftROR, 0x8000beef, 0, true)
	if result != 0x8000beef || !carry {
		t.Errorf("ROR by 0 got: %08x C=%v expected: 8000beef C=true", result, carry)
	}
}

// The shift-immediate ROR-by-0 encoding rotates through carry by one.
func TestRRX(t *testing.T) {
	var c cpuState
	c.cpsr.Carry = true
	c.reg[2] = 3

	// ROR #0 on R2 selects RRX.
	result := c.shiftOperand(2|shiftROR<<5, true)
	if result != 0x80000001 {
		t.Errorf("RRX got: %08x expected: 80000001", result)
	}
	if !c.cpsr.Carry {
		t.Errorf("RRX carry got: false expected: true")
	}

	c.cpsr.Carry = false
	c.reg[2] = 2
	result = c.shiftOperand(2|shiftROR<<5, true)
	if result != 1 || c.cpsr.Carry {
		t.Errorf("RRX got: %08x C=%v expected: 00000001 C=false", result, c.cpsr.Carry)
	}
}

// Register-specified amounts use only the low 8 bits.
func TestShiftAmountLowByte(t *testing.T) {
	var c cpuState
	c.reg[2] = 0x00000100
	c.reg[3] = 0x00000101 // amount 1 after masking

	// R2, LSL R3.
	result := c.shiftOperand(2|1<<4|3<<8, false)
	if result != 0x00000200 {
		t.Errorf("LSL by reg got: %08x expected: 00000200", result)
	}

	// An amount register holding 0x100 masks to zero: value unchanged.
	c.reg[3] = 0x00000100
	c.cpsr.Carry = true
	result = c.shiftOperand(2|1<<4|3<<8|shiftLSR<<5, true)
	if result != 0x00000100 || !c.cpsr.Carry {
		t.Errorf("LSR by reg 0x100 got: %08x C=%v expected: 00000100 C=true",
			result, c.cpsr.Carry)
	}
}
