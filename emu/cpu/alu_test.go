package cpu

/*
 * GBA - Arithmetic primitive tests.
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

func TestAddFlags(t *testing.T) {
	cases := []struct {
		op, op2, result uint32
		carry, overflow bool
	}{
		{1, 2, 3, false, false},
		{0xffffffff, 1, 0, true, false},
		{0x7fffffff, 1, 0x80000000, false, true},
		{0x80000000, 0x80000000, 0, true, true},
		{0xfffffffe, 1, 0xffffffff, false, false},
	}
	for _, test := range cases {
		var c cpuState
		result := c.add(test.op, test.op2, true)
		if result != test.result || c.cpsr.Carry != test.carry || c.cpsr.Overflow != test.overflow {
			t.Errorf("ADD %08x+%08x got: %08x C=%v V=%v expected: %08x C=%v V=%v",
				test.op, test.op2, result, c.cpsr.Carry, c.cpsr.Overflow,
				test.result, test.carry, test.overflow)
		}
	}
}

// Carry on subtract means no borrow: op >= op2.
func TestSubFlags(t *testing.T) {
	cases := []struct {
		op, op2, result uint32
		carry, overflow bool
	}{
		{5, 3, 2, true, false},
		{3, 5, 0xfffffffe, false, false},
		{5, 5, 0, true, false},
		{0x80000000, 1, 0x7fffffff, true, true},
		{0x7fffffff, 0xffffffff, 0x80000000, false, true},
	}
	for _, test := range cases {
		var c cpuState
		result := c.sub(test.op, test.op2, true)
		if result != test.result || c.cpsr.Carry != test.carry || c.cpsr.Overflow != test.overflow {
			t.Errorf("SUB %08x-%08x got: %08x C=%v V=%v expected: %08x C=%v V=%v",
				test.op, test.op2, result, c.cpsr.Carry, c.cpsr.Overflow,
				test.result, test.carry, test.overflow)
		}
	}
}

func TestAdcFoldsCarry(t *testing.T) {
	var c cpuState
	c.cpsr.Carry = true
	if result := c.adc(1, 2, true); result != 4 {
		t.Errorf("ADC with carry got: %d expected: 4", result)
	}
	c.cpsr.Carry = false
	if result := c.adc(1, 2, true); result != 3 {
		t.Errorf("ADC without carry got: %d expected: 3", result)
	}

	// Carry-out when the carry-in tips the sum over.
	c.cpsr.Carry = true
	if result := c.adc(0xffffffff, 0, true); result != 0 || !c.cpsr.Carry {
		t.Errorf("ADC wrap got: %08x C=%v expected: 00000000 C=true", result, c.cpsr.Carry)
	}
}

// SBC follows op - op2 - (1 - C) with C-out as the 64 bit no-borrow test.
func TestSbcCanonicalRule(t *testing.T) {
	cases := []struct {
		op, op2  uint32
		carryIn  bool
		result   uint32
		carryOut bool
	}{
		{5, 3, true, 2, true},
		{5, 3, false, 1, true},
		{3, 3, false, 0xffffffff, false},
		{3, 3, true, 0, true},
		{0, 0xffffffff, true, 1, false},
	}
	for _, test := range cases {
		var c cpuState
		c.cpsr.Carry = test.carryIn
		result := c.sbc(test.op, test.op2, true)
		if result != test.result || c.cpsr.Carry != test.carryOut {
			t.Errorf("SBC %08x-%08x C=%v got: %08x C=%v expected: %08x C=%v",
				test.op, test.op2, test.carryIn, result, c.cpsr.Carry,
				test.result, test.carryOut)
		}
	}
}
