package cpu

/*
 * GBA - 32 bit instruction set.
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
	"math/bits"

	memory "github.com/rcornwell/GBA/emu/memory"
)

// Condition field truth table over NZCV.
func (c *cpuState) conditionCheck(cond uint32) bool {
	p := &c.cpsr
	switch cond & 0xf {
	case 0x0: // EQ
		return p.Zero
	case 0x1: // NE
		return !p.Zero
	case 0x2: // CS
		return p.Carry
	case 0x3: // CC
		return !p.Carry
	case 0x4: // MI
		return p.Negative
	case 0x5: // PL
		return !p.Negative
	case 0x6: // VS
		return p.Overflow
	case 0x7: // VC
		return !p.Overflow
	case 0x8: // HI
		return p.Carry && !p.Zero
	case 0x9: // LS
		return !p.Carry || p.Zero
	case 0xa: // GE
		return p.Negative == p.Overflow
	case 0xb: // LT
		return p.Negative != p.Overflow
	case 0xc: // GT
		return !p.Zero && p.Negative == p.Overflow
	case 0xd: // LE
		return p.Zero || p.Negative != p.Overflow
	case 0xe: // AL
		return true
	}
	// NV, reserved.
	return false
}

func bitSet(inst uint32, num uint) bool {
	return inst&(1<<num) != 0
}

// Execute one 32 bit instruction. A failing condition guard makes the
// whole instruction a no-op. Dispatch is an ordered pattern match; the
// more specific patterns come before the classes that would otherwise
// swallow them (BX and the PSR transfers before data processing, multiply
// and swap before the half-word transfers).
func (c *cpuState) executeARM(inst uint32) {
	if !c.conditionCheck(inst >> 28) {
		return
	}

	switch {
	case inst&0x0ffffff0 == 0x012fff10:
		c.branchExchange(int(inst & 0xf))
	case inst&0x0fc000f0 == 0x00000090:
		c.multiply(bitSet(inst, 21), bitSet(inst, 20),
			int(inst>>16)&0xf, int(inst>>12)&0xf, int(inst>>8)&0xf, int(inst)&0xf)
	case inst&0x0f8000f0 == 0x00800090:
		c.multiplyLong(bitSet(inst, 22), bitSet(inst, 21), bitSet(inst, 20),
			int(inst>>16)&0xf, int(inst>>12)&0xf, int(inst>>8)&0xf, int(inst)&0xf)
	case inst&0x0fbf0fff == 0x010f0000:
		c.statusToRegister(bitSet(inst, 22), int(inst>>12)&0xf)
	case inst&0x0dbef000 == 0x0128f000:
		c.registerToStatus(bitSet(inst, 25), bitSet(inst, 22), !bitSet(inst, 16), inst&0xfff)
	case inst&0x0fb00ff0 == 0x01000090:
		c.swap(bitSet(inst, 22), int(inst>>16)&0xf, int(inst>>12)&0xf, int(inst)&0xf)
	case inst&0x0e000090 == 0x00000090:
		c.halfTransfer(bitSet(inst, 24), bitSet(inst, 23), bitSet(inst, 22),
			bitSet(inst, 21), bitSet(inst, 20), int(inst>>16)&0xf, int(inst>>12)&0xf,
			(inst>>8)&0xf, bitSet(inst, 6), bitSet(inst, 5), inst&0xf)
	case inst&0x0f000000 == 0x0a000000:
		c.branch(inst&0x00ffffff, false)
	case inst&0x0f000000 == 0x0b000000:
		c.branch(inst&0x00ffffff, true)
	case inst&0x0e000010 == 0x06000010:
		c.enterException(ExcUndefined, c.instrAddr()+4)
	case inst&0x0e000000 == 0x08000000:
		c.blockTransfer(bitSet(inst, 20), bitSet(inst, 24), bitSet(inst, 23),
			bitSet(inst, 22), bitSet(inst, 21), int(inst>>16)&0xf, uint16(inst))
	case inst&0x0c000000 == 0x00000000:
		c.dataProcessing(bitSet(inst, 25), int(inst>>21)&0xf, bitSet(inst, 20),
			int(inst>>16)&0xf, int(inst>>12)&0xf, inst&0xfff)
	case inst&0x0c000000 == 0x04000000:
		c.singleTransfer(bitSet(inst, 20), bitSet(inst, 25), bitSet(inst, 24),
			bitSet(inst, 23), bitSet(inst, 22), bitSet(inst, 21),
			int(inst>>16)&0xf, int(inst>>12)&0xf, inst&0xfff)
	case inst&0x0f000000 == 0x0f000000:
		c.enterException(ExcSoftwareInterrupt, c.instrAddr()+4)
	default:
		c.enterException(ExcUndefined, c.instrAddr()+4)
	}
}

// Branch and branch with link: 24 bit signed word offset relative to the
// fetch address.
func (c *cpuState) branch(offset uint32, link bool) {
	if link {
		c.reg[regLR] = c.instrAddr() + 4
	}
	c.reg[regPC] += uint32(int32(offset<<8) >> 6)
	c.flushPipeline()
}

// Branch and exchange: bit 0 of the target selects the 16 bit state. The
// flush masks the low address bits for the new state.
func (c *cpuState) branchExchange(rn int) {
	target := c.reg[rn]
	c.reg[regPC] = target
	if target&1 != 0 {
		c.cpsr.State = StateThumb
	} else {
		c.cpsr.State = StateARM
	}
	c.flushPipeline()
}

// MRS: read CPSR or SPSR into a register.
func (c *cpuState) statusToRegister(useSPSR bool, rd int) {
	if useSPSR {
		c.reg[rd] = c.spsr
	} else {
		c.reg[rd] = c.cpsr.Pack()
	}
}

// MSR: write CPSR or SPSR from a register or rotated immediate. The
// flags-only form touches the top nibble; the full form additionally
// writes the control byte, in which case a mode change goes through the
// bank switch. An illegal mode value is an undefined instruction.
func (c *cpuState) registerToStatus(imm, useSPSR, flagsOnly bool, op uint32) {
	var value uint32
	if imm {
		value = c.ror(op&0xff, uint8(2*((op>>8)&0xf)), false)
	} else {
		value = c.reg[op&0xf]
	}
	mask := uint32(0xf0000000)
	if !flagsOnly {
		mask = 0xf00000df
	}

	if useSPSR {
		c.spsr = c.spsr&^mask | value&mask
		return
	}

	psr, err := UnpackPSR(c.cpsr.Pack()&^mask | value&mask)
	if err != nil {
		c.enterException(ExcUndefined, c.nextAddr())
		return
	}
	c.setBank(psr.Mode)
	c.cpsr = psr
}

// Data processing opcodes.
const (
	opAND = iota
	opEOR
	opSUB
	opRSB
	opADD
	opADC
	opSBC
	opRSC
	opTST
	opTEQ
	opCMP
	opCMN
	opORR
	opMOV
	opBIC
	opMVN
)

func isTest(opcode int) bool {
	return opcode >= opTST && opcode <= opCMN
}

// Data processing. Operand two is an 8 bit immediate rotated by twice the
// rotate field, or a shifted register. With a register-specified shift the
// PC operand reads 4 higher. TST/TEQ/CMP/CMN set flags and discard the
// result. S with Rd=PC restores the SPSR outside User/System.
func (c *cpuState) dataProcessing(imm bool, opcode int, s bool, rn, rd int, field uint32) {
	op := c.reg[rn]
	setFlags := s && rd != regPC

	var op2 uint32
	if imm {
		op2 = c.ror(uint32(field&0xff), uint8(2*((field>>8)&0xf)), setFlags)
	} else {
		op2 = c.shiftOperand(field, setFlags)
		if rn == regPC && field&0x10 != 0 {
			op += 4
		}
	}

	var result uint32
	switch opcode {
	case opAND, opTST:
		result = op & op2
	case opEOR, opTEQ:
		result = op ^ op2
	case opSUB:
		result = c.sub(op, op2, setFlags)
	case opRSB:
		result = c.sub(op2, op, setFlags)
	case opADD:
		result = c.add(op, op2, setFlags)
	case opADC:
		result = c.adc(op, op2, setFlags)
	case opSBC:
		result = c.sbc(op, op2, setFlags)
	case opRSC:
		result = c.sbc(op2, op, setFlags)
	case opCMP:
		result = c.sub(op, op2, true)
	case opCMN:
		result = c.add(op, op2, true)
	case opORR:
		result = op | op2
	case opMOV:
		result = op2
	case opBIC:
		result = op &^ op2
	default: // opMVN
		result = ^op2
	}

	if setFlags || isTest(opcode) {
		c.setNZ(result)
	}
	if isTest(opcode) {
		return
	}

	c.reg[rd] = result
	if rd == regPC {
		if s && c.cpsr.Mode != ModeUser && c.cpsr.Mode != ModeSystem {
			c.restoreSPSR()
		}
		c.flushPipeline()
	}
}

// Single word or byte transfer. Post-indexing with the W bit forces the
// access into the User register set. Unaligned word loads rotate the read
// value into place. Base write-back happens after the transfer.
func (c *cpuState) singleTransfer(load, reg, pre, up, byteOp, writeback bool, rn, rd int, field uint32) {
	offset := field
	if reg {
		offset = c.shiftOperand(field, false)
	}

	addr := c.reg[rn]
	if pre {
		if up {
			addr += offset
		} else {
			addr -= offset
		}
	}

	userAccess := writeback && !pre
	prevMode := c.cpsr.Mode
	if userAccess {
		c.setMode(ModeUser)
	}

	if load {
		if byteOp {
			c.reg[rd] = uint32(memory.ReadByte(addr))
		} else {
			c.reg[rd] = rotr(memory.ReadWord(addr), 8*(addr&3))
		}
	} else {
		value := c.reg[rd]
		if rd == regPC {
			value += 4
		}
		if byteOp {
			memory.WriteByte(addr, uint8(value))
		} else {
			memory.WriteWord(addr, value)
		}
	}

	if userAccess {
		c.setMode(prevMode)
	}

	if writeback || !pre {
		if up {
			c.reg[rn] += offset
		} else {
			c.reg[rn] -= offset
		}
	}

	if load && rd == regPC {
		c.flushPipeline()
	}
}

// Half word and signed transfers. The offset is either a split 4+4 bit
// immediate or a register. A signed half load from an odd address
// sign-extends from the high byte.
func (c *cpuState) halfTransfer(pre, up, imm, writeback, load bool, rn, rd int, offHi uint32, sign, half bool, offLo uint32) {
	var offset uint32
	if imm {
		offset = offHi<<4 | offLo
	} else {
		offset = c.reg[offLo]
	}

	addr := c.reg[rn]
	if pre {
		if up {
			addr += offset
		} else {
			addr -= offset
		}
	}

	if load {
		switch {
		case half && sign:
			c.reg[rd] = uint32(int32(int16(memory.ReadHword(addr))) >> (8 * (addr & 1)))
		case half:
			c.reg[rd] = rotr(uint32(memory.ReadHword(addr)), 8*(addr&1))
		default:
			c.reg[rd] = uint32(int32(int8(memory.ReadByte(addr))))
		}
	} else {
		memory.WriteHword(addr, uint16(c.reg[rd]))
	}

	if writeback || !pre {
		if up {
			c.reg[rn] += offset
		} else {
			c.reg[rn] -= offset
		}
	}
}

// Block transfer. Registers move in ascending order from the lowest
// involved address regardless of direction. The S bit without PC in the
// list forces the User register set; with PC on a load it restores the
// SPSR. Write-back is suppressed on a load that includes the base.
func (c *cpuState) blockTransfer(load, pre, up, psrUser bool, writeback bool, rn int, list uint16) {
	count := uint32(bits.OnesCount16(list))

	base := c.reg[rn]
	switch {
	case pre && up:
		base += 4
	case !pre && !up:
		base -= 4 * (count - 1)
	case pre && !up:
		base -= 4 * count
	}

	userBank := psrUser && list&(1<<regPC) == 0
	prevMode := c.cpsr.Mode
	if userBank {
		c.setMode(ModeUser)
	}

	addr := base
	for r := 0; r <= regPC; r++ {
		if list&(1<<r) == 0 {
			continue
		}
		if load {
			c.reg[r] = memory.ReadWord(addr)
			if r == regPC && psrUser && c.cpsr.Mode != ModeUser && c.cpsr.Mode != ModeSystem {
				c.restoreSPSR()
			}
		} else {
			value := c.reg[r]
			if r == regPC {
				value += 4
			}
			memory.WriteWord(addr, value)
		}
		addr += 4
	}

	if userBank {
		c.setMode(prevMode)
	}

	if writeback && !(load && list&(1<<rn) != 0) {
		switch {
		case !pre && up:
			c.reg[rn] = addr
		case pre && up:
			c.reg[rn] = addr - 4
		case !pre && !up:
			c.reg[rn] = addr - 4*(count+1)
		default:
			c.reg[rn] = addr - 4*count
		}
	}

	if load && list&(1<<regPC) != 0 {
		c.flushPipeline()
	}
}

// Swap: read then write at [Rn], byte or word, atomic from the core's
// point of view. The word form rotates the read value like LDR.
func (c *cpuState) swap(byteOp bool, rn, rd, rm int) {
	addr := c.reg[rn]
	if byteOp {
		value := memory.ReadByte(addr)
		memory.WriteByte(addr, uint8(c.reg[rm]))
		c.reg[rd] = uint32(value)
	} else {
		value := rotr(memory.ReadWord(addr), 8*(addr&3))
		memory.WriteWord(addr, c.reg[rm])
		c.reg[rd] = value
	}
}

// MUL and MLA.
func (c *cpuState) multiply(accumulate, s bool, rd, rn, rs, rm int) {
	product := c.reg[rm] * c.reg[rs]
	if accumulate {
		product += c.reg[rn]
	}
	c.reg[rd] = product
	if s {
		c.setNZ(product)
	}
}

// The 64 bit multiplies. Signed selects sign-extended operands; the
// accumulate forms add the previous RdHi:RdLo.
func (c *cpuState) multiplyLong(signed, accumulate, s bool, rdHi, rdLo, rs, rm int) {
	var acc uint64
	if accumulate {
		acc = uint64(c.reg[rdHi])<<32 | uint64(c.reg[rdLo])
	}
	var product uint64
	if signed {
		product = uint64(int64(int32(c.reg[rm])) * int64(int32(c.reg[rs])))
	} else {
		product = uint64(c.reg[rm]) * uint64(c.reg[rs])
	}
	product += acc
	c.reg[rdHi] = uint32(product >> 32)
	c.reg[rdLo] = uint32(product)
	if s {
		c.setNZ64(product)
	}
}
