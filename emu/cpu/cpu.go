package cpu

/*
 * GBA - CPU state, register banking and pipeline.
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

// Register indices with architectural roles.
const (
	regSP = 13
	regLR = 14
	regPC = 15
)

// Banked (SP, LR, SPSR) triple for one privileged mode.
type bankRegs struct {
	sp   uint32
	lr   uint32
	spsr uint32
}

// Holds the state of the CPU. The visible register file stores PC as the
// address the next fetch will use; during execution that is two
// instruction sizes past the executing instruction.
type cpuState struct {
	reg       [16]uint32
	fiqShadow [5]uint32 // R8-R12 of the FIQ bank
	banks     [6]bankRegs
	cpsr      PSR
	spsr      uint32
	pipeline  [3]uint32
}

var sysCPU cpuState

// Initialize CPU to its reset state and prime the pipeline from the reset
// vector. Memory must be initialized first.
func InitializeCPU() {
	sysCPU = cpuState{}
	sysCPU.cpsr = PSR{
		Mode:       ModeSupervisor,
		IRQDisable: true,
		FIQDisable: true,
	}
	sysCPU.pipeline[1] = sysCPU.fetch()
	sysCPU.pipeline[2] = sysCPU.fetch()
}

// Cycle executes one instruction: rotate the pipeline, run the oldest
// slot, then refill the youngest from the current fetch address.
func Cycle() {
	sysCPU.pipeline[0] = sysCPU.pipeline[1]
	sysCPU.pipeline[1] = sysCPU.pipeline[2]
	sysCPU.execute(sysCPU.pipeline[0])
	sysCPU.pipeline[2] = sysCPU.fetch()
}

// PC returns the address of the instruction currently executing (or, at a
// tick boundary, the next instruction due to execute).
func PC() uint32 {
	return sysCPU.instrAddr()
}

// Register returns a visible register of the current bank.
func Register(num int) uint32 {
	return sysCPU.reg[num&0xf]
}

// SetRegister writes a visible register of the current bank.
func SetRegister(num int, value uint32) {
	sysCPU.reg[num&0xf] = value
}

// CurrentPSR returns the structured status register.
func CurrentPSR() PSR {
	return sysCPU.cpsr
}

// SetPSR replaces the status register, switching banks if the mode
// changed.
func SetPSR(psr PSR) {
	sysCPU.setBank(psr.Mode)
	sysCPU.cpsr = psr
}

// SPSR returns the saved status register of the current mode.
func SPSR() uint32 {
	return sysCPU.spsr
}

// FlushPipeline refetches after an external PC write, for example from the
// monitor console.
func FlushPipeline() {
	sysCPU.flushPipeline()
	sysCPU.pipeline[2] = sysCPU.fetch()
}

func (c *cpuState) instrAddr() uint32 {
	if c.cpsr.State == StateThumb {
		return c.reg[regPC] - 4
	}
	return c.reg[regPC] - 8
}

// Address of the instruction following the one executing.
func (c *cpuState) nextAddr() uint32 {
	if c.cpsr.State == StateThumb {
		return c.reg[regPC] - 2
	}
	return c.reg[regPC] - 4
}

// Fetch one instruction at PC and advance PC by the instruction size.
func (c *cpuState) fetch() uint32 {
	addr := c.reg[regPC]
	if c.cpsr.State == StateThumb {
		c.reg[regPC] += 2
		return uint32(memory.ReadHword(addr))
	}
	c.reg[regPC] += 4
	return memory.ReadWord(addr)
}

func (c *cpuState) execute(inst uint32) {
	if c.cpsr.State == StateThumb {
		c.executeThumb(uint16(inst))
	} else {
		c.executeARM(inst)
	}
}

// Discard the prefetched slots and refetch at the redirected PC. The low
// address bits are cleared for the current instruction size. The youngest
// slot is refilled by the tail of Cycle.
func (c *cpuState) flushPipeline() {
	if c.cpsr.State == StateThumb {
		c.reg[regPC] &^= 1
	} else {
		c.reg[regPC] &^= 3
	}
	c.pipeline[1] = c.fetch()
}

// Switch operating mode, swapping register banks.
func (c *cpuState) setMode(mode Mode) {
	c.setBank(mode)
	c.cpsr.Mode = mode
}

// Save the outgoing mode's bank and load the incoming one. When exactly
// one of the two modes is FIQ, R8-R12 swap with the FIQ shadow set.
func (c *cpuState) setBank(mode Mode) {
	oldIndex := c.cpsr.Mode.bankIndex()
	newIndex := mode.bankIndex()
	if oldIndex == newIndex {
		return
	}

	c.banks[oldIndex].sp = c.reg[regSP]
	c.banks[oldIndex].lr = c.reg[regLR]
	c.banks[oldIndex].spsr = c.spsr

	c.reg[regSP] = c.banks[newIndex].sp
	c.reg[regLR] = c.banks[newIndex].lr
	c.spsr = c.banks[newIndex].spsr

	if (c.cpsr.Mode == ModeFIQ) != (mode == ModeFIQ) {
		for i := range c.fiqShadow {
			c.fiqShadow[i], c.reg[8+i] = c.reg[8+i], c.fiqShadow[i]
		}
	}
}

// Copy the current SPSR into the CPSR, applying any implied mode change.
// An illegal mode field in the SPSR surfaces as an undefined instruction.
func (c *cpuState) restoreSPSR() {
	psr, err := UnpackPSR(c.spsr)
	if err != nil {
		c.enterException(ExcUndefined, c.nextAddr())
		return
	}
	c.setBank(psr.Mode)
	c.cpsr = psr
}

func (c *cpuState) setNZ(value uint32) {
	c.cpsr.Negative = value&0x80000000 != 0
	c.cpsr.Zero = value == 0
}

func (c *cpuState) setNZ64(value uint64) {
	c.cpsr.Negative = value&0x8000000000000000 != 0
	c.cpsr.Zero = value == 0
}

// Rotate right, used for unaligned load adjustment.
func rotr(value uint32, count uint32) uint32 {
	count &= 31
	if count == 0 {
		return value
	}
	return value>>count | value<<(32-count)
}
