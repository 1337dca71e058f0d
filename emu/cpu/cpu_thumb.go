package cpu

/*
 * GBA - 16 bit instruction set.
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
	memory "github.com/rcornwell/GBA/emu/memory"
)

// Execute one 16 bit instruction. The formats are narrow projections onto
// the 32 bit behaviors and share their helpers. Only the conditional
// branch carries a condition field.
func (c *cpuState) executeThumb(inst uint16) {
	switch {
	case inst&0xf800 == 0x1800:
		c.thumbAddSub(bitSet(uint32(inst), 10), bitSet(uint32(inst), 9),
			int(inst>>6)&7, int(inst>>3)&7, int(inst)&7)
	case inst&0xe000 == 0x0000:
		c.thumbMoveShifted(int(inst>>11)&3, uint8(inst>>6)&0x1f, int(inst>>3)&7, int(inst)&7)
	case inst&0xe000 == 0x2000:
		c.thumbImmediate(int(inst>>11)&3, int(inst>>8)&7, uint32(inst&0xff))
	case inst&0xfc00 == 0x4000:
		c.thumbALU(int(inst>>6)&0xf, int(inst>>3)&7, int(inst)&7)
	case inst&0xfc00 == 0x4400:
		c.thumbHiRegister(int(inst>>8)&3, bitSet(uint32(inst), 7), bitSet(uint32(inst), 6),
			int(inst>>3)&7, int(inst)&7)
	case inst&0xf800 == 0x4800:
		c.thumbLoadPCRelative(int(inst>>8)&7, uint32(inst&0xff))
	case inst&0xf200 == 0x5000:
		c.singleTransfer(bitSet(uint32(inst), 11), false, true, true,
			bitSet(uint32(inst), 10), false, int(inst>>3)&7, int(inst)&7,
			c.reg[int(inst>>6)&7])
	case inst&0xf200 == 0x5200:
		c.thumbTransferSigned(bitSet(uint32(inst), 11), bitSet(uint32(inst), 10),
			int(inst>>6)&7, int(inst>>3)&7, int(inst)&7)
	case inst&0xe000 == 0x6000:
		c.thumbTransferImmediate(bitSet(uint32(inst), 12), bitSet(uint32(inst), 11),
			uint32(inst>>6)&0x1f, int(inst>>3)&7, int(inst)&7)
	case inst&0xf000 == 0x8000:
		c.thumbTransferHalf(bitSet(uint32(inst), 11), uint32(inst>>6)&0x1f,
			int(inst>>3)&7, int(inst)&7)
	case inst&0xf000 == 0x9000:
		c.singleTransfer(bitSet(uint32(inst), 11), false, true, true, false, false,
			regSP, int(inst>>8)&7, uint32(inst&0xff)<<2)
	case inst&0xf000 == 0xa000:
		c.thumbLoadAddress(bitSet(uint32(inst), 11), int(inst>>8)&7, uint32(inst&0xff)<<2)
	case inst&0xff00 == 0xb000:
		c.thumbAdjustSP(bitSet(uint32(inst), 7), uint32(inst&0x7f)<<2)
	case inst&0xf600 == 0xb400:
		c.thumbPushPop(bitSet(uint32(inst), 11), bitSet(uint32(inst), 8), inst&0xff)
	case inst&0xf000 == 0xc000:
		c.thumbBlockTransfer(bitSet(uint32(inst), 11), int(inst>>8)&7, inst&0xff)
	case inst&0xff00 == 0xdf00:
		c.enterException(ExcSoftwareInterrupt, c.nextAddr())
	case inst&0xf000 == 0xd000:
		c.thumbBranchConditional(uint32(inst>>8)&0xf, uint8(inst))
	case inst&0xf800 == 0xe000:
		c.thumbBranch(uint32(inst & 0x7ff))
	case inst&0xf000 == 0xf000:
		c.thumbLongBranch(bitSet(uint32(inst), 11), uint32(inst&0x7ff))
	default:
		c.enterException(ExcUndefined, c.nextAddr())
	}
}

// Format 1: move shifted register, flag setting.
func (c *cpuState) thumbMoveShifted(op int, offset uint8, rs, rd int) {
	switch op {
	case 0:
		c.reg[rd] = c.lsl(c.reg[rs], offset, true)
	case 1:
		c.reg[rd] = c.lsr(c.reg[rs], offset, true)
	default:
		c.reg[rd] = c.asr(c.reg[rs], offset, true)
	}
	c.setNZ(c.reg[rd])
}

// Format 2: three-register or small-immediate add/subtract.
func (c *cpuState) thumbAddSub(imm, subtract bool, field, rs, rd int) {
	op2 := uint32(field)
	if !imm {
		op2 = c.reg[field]
	}
	if subtract {
		c.reg[rd] = c.sub(c.reg[rs], op2, true)
	} else {
		c.reg[rd] = c.add(c.reg[rs], op2, true)
	}
	c.setNZ(c.reg[rd])
}

// Format 3: move/compare/add/subtract with 8 bit immediate.
func (c *cpuState) thumbImmediate(op, rd int, value uint32) {
	var result uint32
	switch op {
	case 0:
		result = value
	case 2:
		result = c.add(c.reg[rd], value, true)
	default: // CMP and SUB
		result = c.sub(c.reg[rd], value, true)
	}
	if op != 1 {
		c.reg[rd] = result
	}
	c.setNZ(result)
}

// Format 4: register ALU operations, always flag setting.
func (c *cpuState) thumbALU(opcode, rs, rd int) {
	op := c.reg[rd]
	op2 := c.reg[rs]

	var result uint32
	switch opcode {
	case 0x0, 0x8: // AND, TST
		result = op & op2
	case 0x1: // EOR
		result = op ^ op2
	case 0x2: // LSL
		result = c.lsl(op, uint8(op2), true)
	case 0x3: // LSR
		// A register amount of zero leaves value and carry alone; the
		// primitive's zero branch is the shift-immediate rule for 32.
		if uint8(op2) == 0 {
			result = op
		} else {
			result = c.lsr(op, uint8(op2), true)
		}
	case 0x4: // ASR
		if uint8(op2) == 0 {
			result = op
		} else {
			result = c.asr(op, uint8(op2), true)
		}
	case 0x5: // ADC
		result = c.adc(op, op2, true)
	case 0x6: // SBC
		result = c.sbc(op, op2, true)
	case 0x7: // ROR
		result = c.ror(op, uint8(op2), true)
	case 0x9: // NEG
		result = c.sub(0, op2, true)
	case 0xa: // CMP
		result = c.sub(op, op2, true)
	case 0xb: // CMN
		result = c.add(op, op2, true)
	case 0xc: // ORR
		result = op | op2
	case 0xd: // MUL
		result = op * op2
	case 0xe: // BIC
		result = op &^ op2
	default: // MVN
		result = ^op2
	}

	// TST, CMP and CMN discard the result.
	if opcode != 0x8 && opcode != 0xa && opcode != 0xb {
		c.reg[rd] = result
	}
	c.setNZ(result)
}

// Format 5: operations on the full register set, plus BX. Only CMP sets
// flags; a PC destination flushes.
func (c *cpuState) thumbHiRegister(op int, h1, h2 bool, rs, rd int) {
	if h2 {
		rs += 8
	}
	if h1 {
		rd += 8
	}

	switch op {
	case 0:
		c.reg[rd] = c.add(c.reg[rd], c.reg[rs], false)
	case 1:
		c.setNZ(c.sub(c.reg[rd], c.reg[rs], true))
		return
	case 2:
		c.reg[rd] = c.reg[rs]
	default:
		c.branchExchange(rs)
		return
	}

	if rd == regPC {
		c.flushPipeline()
	}
}

// Format 6: PC-relative word load. The pipeline PC reads with bit 1
// cleared.
func (c *cpuState) thumbLoadPCRelative(rd int, offset uint32) {
	addr := (c.reg[regPC] &^ 2) + offset<<2
	c.reg[rd] = memory.ReadWord(addr)
}

// Format 8: sign-extending and half-word transfers with register offset.
func (c *cpuState) thumbTransferSigned(h, sign bool, ro, rb, rd int) {
	c.halfTransfer(true, true, false, false, h || sign, rb, rd, 0, sign, h, uint32(ro))
}

// Format 9: word/byte transfer with scaled immediate offset.
func (c *cpuState) thumbTransferImmediate(byteOp, load bool, offset uint32, rb, rd int) {
	if !byteOp {
		offset <<= 2
	}
	c.singleTransfer(load, false, true, true, byteOp, false, rb, rd, offset)
}

// Format 10: half-word transfer with scaled immediate offset.
func (c *cpuState) thumbTransferHalf(load bool, offset uint32, rb, rd int) {
	offset <<= 1
	c.halfTransfer(true, true, true, false, load, rb, rd, offset>>4, false, true, offset&0xf)
}

// Format 12: address generation from PC or SP.
func (c *cpuState) thumbLoadAddress(sp bool, rd int, offset uint32) {
	if sp {
		c.reg[rd] = c.reg[regSP] + offset
	} else {
		c.reg[rd] = (c.reg[regPC] &^ 2) + offset
	}
}

// Format 13: SP adjustment.
func (c *cpuState) thumbAdjustSP(negative bool, offset uint32) {
	if negative {
		c.reg[regSP] -= offset
	} else {
		c.reg[regSP] += offset
	}
}

// Format 14: push/pop, optionally with LR/PC. Push is a pre-decrement
// store, pop a post-increment load.
func (c *cpuState) thumbPushPop(load, extra bool, list uint16) {
	if extra {
		if load {
			list |= 1 << regPC
		} else {
			list |= 1 << regLR
		}
	}
	c.blockTransfer(load, !load, load, false, true, regSP, list)
}

// Format 15: multiple load/store, ascending with write-back.
func (c *cpuState) thumbBlockTransfer(load bool, rb int, list uint16) {
	c.blockTransfer(load, false, true, false, true, rb, list)
}

// Format 16: conditional branch with signed 8 bit offset.
func (c *cpuState) thumbBranchConditional(cond uint32, offset uint8) {
	if !c.conditionCheck(cond) {
		return
	}
	c.reg[regPC] += uint32(int32(int8(offset)) << 1)
	c.flushPipeline()
}

// Format 18: unconditional branch with signed 11 bit offset.
func (c *cpuState) thumbBranch(offset uint32) {
	c.reg[regPC] += uint32(int32(offset<<21) >> 20)
	c.flushPipeline()
}

// Format 19: long branch with link, encoded as a pair. The first half
// stages the sign-extended high offset in LR; the second adds the low
// offset, exchanges LR with the return address, and marks the return as
// 16 bit state with bit 0.
func (c *cpuState) thumbLongBranch(low bool, offset uint32) {
	if low {
		target := c.reg[regLR] + offset<<1
		c.reg[regLR] = c.nextAddr() | 1
		c.reg[regPC] = target
		c.flushPipeline()
	} else {
		c.reg[regLR] = c.reg[regPC] + uint32(int32(offset<<21)>>9)
	}
}
