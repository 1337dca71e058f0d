package cpu

/*
 * GBA - Arithmetic primitives.
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

// Flag-setting arithmetic. N and Z are set by the executor from the final
// result; these primitives own C and V only.

// Add, C from unsigned overflow, V from signed overflow.
func (c *cpuState) add(op, op2 uint32, setFlags bool) uint32 {
	result := op + op2
	if setFlags {
		c.cpsr.Carry = uint64(op)+uint64(op2) > 0xffffffff
		c.cpsr.Overflow = (op^result)&(op2^result)&0x80000000 != 0
	}
	return result
}

// Subtract, C means no borrow.
func (c *cpuState) sub(op, op2 uint32, setFlags bool) uint32 {
	result := op - op2
	if setFlags {
		c.cpsr.Carry = op >= op2
		c.cpsr.Overflow = (op^op2)&(op^result)&0x80000000 != 0
	}
	return result
}

// Add with the current carry folded in.
func (c *cpuState) adc(op, op2 uint32, setFlags bool) uint32 {
	var carry uint32
	if c.cpsr.Carry {
		carry = 1
	}
	result := op + op2 + carry
	if setFlags {
		c.cpsr.Carry = uint64(op)+uint64(op2)+uint64(carry) > 0xffffffff
		c.cpsr.Overflow = (op^result)&(op2^result)&0x80000000 != 0
	}
	return result
}

// Subtract with borrow: op - op2 - (1 - C). C-out is the no-borrow
// condition op >= op2 + (1 - C) over 64 bits.
func (c *cpuState) sbc(op, op2 uint32, setFlags bool) uint32 {
	var borrow uint32 = 1
	if c.cpsr.Carry {
		borrow = 0
	}
	result := op - op2 - borrow
	if setFlags {
		c.cpsr.Carry = uint64(op) >= uint64(op2)+uint64(borrow)
		c.cpsr.Overflow = (op^op2)&(op^result)&0x80000000 != 0
	}
	return result
}
