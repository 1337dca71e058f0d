package cpu

/*
 * GBA - Barrel shifter.
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

// Shift type field values.
const (
	shiftLSL = iota
	shiftLSR
	shiftASR
	shiftROR
)

// Decode and apply the shifted-register form of operand two. The low 12
// bits of the instruction select the register, shift type and either a 5
// bit immediate amount or a shift register whose low 8 bits are used. When
// PC is the shifted register under a register-specified amount it reads 4
// higher, the extra fetch the real pipeline performs.
func (c *cpuState) shiftOperand(field uint32, setCarry bool) uint32 {
	rm := int(field & 0xf)
	value := c.reg[rm]

	if field&0x10 != 0 {
		// Register-specified amount.
		if rm == regPC {
			value += 4
		}
		amount := uint8(c.reg[(field>>8)&0xf])
		if amount == 0 {
			return value
		}
		return c.shift(int((field>>5)&3), value, amount, setCarry)
	}

	amount := uint8((field >> 7) & 0x1f)
	kind := int((field >> 5) & 3)
	if amount == 0 && kind == shiftROR {
		return c.rrx(value, setCarry)
	}
	return c.shift(kind, value, amount, setCarry)
}

func (c *cpuState) shift(kind int, value uint32, amount uint8, setCarry bool) uint32 {
	switch kind {
	case shiftLSL:
		return c.lsl(value, amount, setCarry)
	case shiftLSR:
		return c.lsr(value, amount, setCarry)
	case shiftASR:
		return c.asr(value, amount, setCarry)
	}
	return c.ror(value, amount, setCarry)
}

// Logical shift left. Amount 0 leaves the value and carry untouched.
func (c *cpuState) lsl(value uint32, amount uint8, setCarry bool) uint32 {
	switch {
	case amount == 0:
		return value
	case amount < 32:
		if setCarry {
			c.cpsr.Carry = value&(1<<(32-amount)) != 0
		}
		return value << amount
	case amount == 32:
		if setCarry {
			c.cpsr.Carry = value&1 != 0
		}
		return 0
	}
	if setCarry {
		c.cpsr.Carry = false
	}
	return 0
}

// Logical shift right. Amount 0 is the shift-immediate encoding of 32.
func (c *cpuState) lsr(value uint32, amount uint8, setCarry bool) uint32 {
	switch {
	case amount == 0 || amount == 32:
		if setCarry {
			c.cpsr.Carry = value&0x80000000 != 0
		}
		return 0
	case amount < 32:
		if setCarry {
			c.cpsr.Carry = value&(1<<(amount-1)) != 0
		}
		return value >> amount
	}
	if setCarry {
		c.cpsr.Carry = false
	}
	return 0
}

// Arithmetic shift right. Amount 0 is the shift-immediate encoding of 32;
// 32 and beyond fill with the sign bit.
func (c *cpuState) asr(value uint32, amount uint8, setCarry bool) uint32 {
	if amount == 0 || amount >= 32 {
		if setCarry {
			c.cpsr.Carry = value&0x80000000 != 0
		}
		if value&0x80000000 != 0 {
			return 0xffffffff
		}
		return 0
	}
	if setCarry {
		c.cpsr.Carry = value&(1<<(amount-1)) != 0
	}
	return uint32(int32(value) >> amount)
}

// Rotate right. Amounts at or above 32 reduce mod 32; a reduced amount of
// zero leaves the value intact with carry from bit 31.
func (c *cpuState) ror(value uint32, amount uint8, setCarry bool) uint32 {
	if amount == 0 {
		return value
	}
	count := uint32(amount) & 31
	result := rotr(value, count)
	if setCarry {
		c.cpsr.Carry = result&0x80000000 != 0
	}
	return result
}

// Rotate right through carry by one, the shift-immediate ROR-by-0
// encoding.
func (c *cpuState) rrx(value uint32, setCarry bool) uint32 {
	var carryIn uint32
	if c.cpsr.Carry {
		carryIn = 1
	}
	if setCarry {
		c.cpsr.Carry = value&1 != 0
	}
	return value>>1 | carryIn<<31
}
